package prometheus_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/equinor/radix-console-api/api/metrics/prometheus"
	"github.com/equinor/radix-console-api/api/metrics/prometheus/mock"
	"github.com/equinor/radix-console-api/api/middleware/auth"
	tokenmock "github.com/equinor/radix-console-api/api/utils/token/mock"
	"github.com/golang/mock/gomock"
	prometheusApi "github.com/prometheus/client_golang/api"
	prometheusV1 "github.com/prometheus/client_golang/api/prometheus/v1"
	"github.com/prometheus/common/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/negroni/v3"
)

func Test_QueryValue_FirstSample(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	api := mock.NewMockQueryAPI(ctrl)
	api.EXPECT().Query(gomock.Any(), "sum(ALERTS)", gomock.Any()).Return(model.Vector{
		&model.Sample{Value: 3.7},
		&model.Sample{Value: 10},
	}, nil, nil)

	client := prometheus.NewClient(api, nil)
	value, found, err := client.QueryValue(context.Background(), "sum(ALERTS)")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 3.7, value)
}

func Test_QueryValue_EmptyResult(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	api := mock.NewMockQueryAPI(ctrl)
	api.EXPECT().Query(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Vector{}, prometheusV1.Warnings{"partial"}, nil)

	client := prometheus.NewClient(api, nil)
	_, found, err := client.QueryValue(context.Background(), "up")
	require.NoError(t, err)
	assert.False(t, found)
}

func Test_QueryValue_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	api := mock.NewMockQueryAPI(ctrl)
	apiErr := &prometheusV1.Error{Type: prometheusV1.ErrServer, Msg: "server error: 503"}
	api.EXPECT().Query(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil, apiErr)

	client := prometheus.NewClient(api, nil)
	_, _, err := client.QueryValue(context.Background(), "up")
	assert.ErrorIs(t, err, apiErr)
	assert.True(t, prometheus.IsResponseError(err))
}

func Test_IsResponseError(t *testing.T) {
	assert.False(t, prometheus.IsResponseError(errors.New("dial tcp: connection refused")))
	assert.False(t, prometheus.IsResponseError(&prometheusV1.Error{Type: prometheusV1.ErrTimeout}))
	assert.True(t, prometheus.IsResponseError(&prometheusV1.Error{Type: prometheusV1.ErrClient}))
	assert.True(t, prometheus.IsResponseError(&prometheusV1.Error{Type: prometheusV1.ErrBadResponse}))
}

func Test_ErrorMessage(t *testing.T) {
	assert.Equal(t, "server error: 502", prometheus.ErrorMessage(&prometheusV1.Error{Type: prometheusV1.ErrServer, Msg: "server error: 502"}))
	assert.Equal(t, "dial tcp: connection refused", prometheus.ErrorMessage(errors.New("dial tcp: connection refused")))
}

func Test_GetQueryStatusCode(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("query")
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	apiClient, err := prometheusApi.NewClient(prometheusApi.Config{Address: server.URL})
	require.NoError(t, err)
	client := prometheus.NewClient(prometheusV1.NewAPI(apiClient), apiClient)

	code, err := client.GetQueryStatusCode(context.Background(), "up")
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "up", gotQuery)
}

func Test_NewPrometheusClient_QueriesServer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"success","data":{"resultType":"vector","result":[{"metric":{},"value":[1700000000,"2"]}]}}`))
	}))
	defer server.Close()

	client, err := prometheus.NewPrometheusClient(server.URL, true)
	require.NoError(t, err)
	value, found, err := client.QueryValue(context.Background(), "up")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, float64(2), value)
}

func Test_NewPrometheusClient_ForwardsUserToken(t *testing.T) {
	var authorization []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authorization = append(authorization, r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"success","data":{"resultType":"vector","result":[]}}`))
	}))
	defer server.Close()

	client, err := prometheus.NewPrometheusClient(server.URL, true)
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	principal := tokenmock.NewMockTokenPrincipal(ctrl)
	principal.EXPECT().Token().Return("user-token").AnyTimes()
	principal.EXPECT().IsAuthenticated().Return(true).AnyTimes()
	validator := tokenmock.NewMockValidatorInterface(ctrl)
	validator.EXPECT().ValidateToken(gomock.Any(), "user-token").Return(principal, nil)

	n := negroni.New(auth.NewAuthenticationMiddleware(validator))
	n.UseHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, found, err := client.QueryValue(r.Context(), "up")
		assert.NoError(t, err)
		assert.False(t, found)
	}))
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cluster/overview", nil)
	req.Header.Set("Authorization", "Bearer user-token")
	n.ServeHTTP(httptest.NewRecorder(), req)

	_, _, err = client.QueryValue(context.Background(), "up")
	require.NoError(t, err)
	assert.Equal(t, []string{"Bearer user-token", ""}, authorization)
}

func Test_NewPrometheusClient_ServiceCredentials(t *testing.T) {
	var authorization string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authorization = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"success","data":{"resultType":"vector","result":[]}}`))
	}))
	defer server.Close()

	client, err := prometheus.NewPrometheusClient(server.URL, false)
	require.NoError(t, err)
	ctrl := gomock.NewController(t)
	principal := tokenmock.NewMockTokenPrincipal(ctrl)
	principal.EXPECT().Token().Return("user-token").AnyTimes()
	validator := tokenmock.NewMockValidatorInterface(ctrl)
	validator.EXPECT().ValidateToken(gomock.Any(), "user-token").Return(principal, nil)

	n := negroni.New(auth.NewAuthenticationMiddleware(validator))
	n.UseHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _, err := client.QueryValue(r.Context(), "up")
		assert.NoError(t, err)
	}))
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cluster/overview", nil)
	req.Header.Set("Authorization", "Bearer user-token")
	n.ServeHTTP(httptest.NewRecorder(), req)

	assert.Empty(t, authorization)
}
