package prometheus

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/equinor/radix-console-api/api/middleware/auth"
	"github.com/equinor/radix-console-api/api/utils/logs"
	prometheusApi "github.com/prometheus/client_golang/api"
	prometheusV1 "github.com/prometheus/client_golang/api/prometheus/v1"
	"github.com/prometheus/common/model"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const queryEndpoint = "/api/v1/query"

type QueryAPI interface {
	Query(ctx context.Context, query string, ts time.Time, opts ...prometheusV1.Option) (model.Value, prometheusV1.Warnings, error)
}

// Client Prometheus query client for the cluster overview
type Client interface {
	// QueryValue returns the value of the first sample of an instant query, false when the result is empty
	QueryValue(ctx context.Context, query string) (float64, bool, error)
	// GetQueryStatusCode returns the HTTP status code Prometheus responds with to the query
	GetQueryStatusCode(ctx context.Context, query string) (int, error)
}

type client struct {
	api       QueryAPI
	apiClient prometheusApi.Client
}

// NewPrometheusClient Constructor for a Prometheus Client. With forwardUserToken the bearer token of the
// request in the query context is sent to Prometheus, so queries run with the permissions of the user
func NewPrometheusClient(prometheusUrl string, forwardUserToken bool) (Client, error) {
	logger := logs.NewRoundtripLogger(func(e *zerolog.Event) {
		e.Str("PrometheusClient", "prometheus")
	})

	roundTripper := logger(prometheusApi.DefaultRoundTripper)
	if forwardUserToken {
		roundTripper = NewUserTokenRoundTripper(roundTripper)
	}
	apiClient, err := prometheusApi.NewClient(prometheusApi.Config{Address: prometheusUrl, RoundTripper: roundTripper})
	if err != nil {
		return nil, errors.New("failed to create the Prometheus API client")
	}

	return NewClient(prometheusV1.NewAPI(apiClient), apiClient), nil
}

// NewUserTokenRoundTripper sets the bearer token of the request context as Authorization header.
// Requests without a token in the context are sent as is
func NewUserTokenRoundTripper(next http.RoundTripper) http.RoundTripper {
	return logs.RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
		token := auth.CtxToken(r.Context())
		if len(token) == 0 {
			return next.RoundTrip(r)
		}
		r = r.Clone(r.Context())
		r.Header.Set("Authorization", "Bearer "+token)
		return next.RoundTrip(r)
	})
}

// NewClient Constructor
func NewClient(api QueryAPI, apiClient prometheusApi.Client) Client {
	return &client{api: api, apiClient: apiClient}
}

func (c *client) QueryValue(ctx context.Context, query string) (float64, bool, error) {
	response, w, err := c.api.Query(ctx, query, time.Now())
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("query", query).Msg("fetching instant query")
		return 0, false, err
	}
	if len(w) > 0 {
		log.Ctx(ctx).Warn().Str("query", query).Strs("warnings", w).Msg("fetching instant query")
	} else {
		log.Ctx(ctx).Trace().Str("query", query).Msg("fetching instant query")
	}

	switch r := response.(type) {
	case model.Vector:
		if len(r) == 0 {
			return 0, false, nil
		}
		return float64(r[0].Value), true, nil
	case *model.Scalar:
		return float64(r.Value), true, nil
	case nil:
		return 0, false, nil
	}
	return 0, false, fmt.Errorf("query returned unsupported response type %s", response.Type())
}

func (c *client) GetQueryStatusCode(ctx context.Context, query string) (int, error) {
	u := c.apiClient.URL(queryEndpoint, nil)
	q := u.Query()
	q.Set("query", query)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return 0, err
	}
	resp, _, err := c.apiClient.Do(ctx, req)
	if err != nil {
		return 0, err
	}
	return resp.StatusCode, nil
}

// IsResponseError Indicates that Prometheus responded with an error, rather than not being reachable
func IsResponseError(err error) bool {
	var apiErr *prometheusV1.Error
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Type != prometheusV1.ErrTimeout && apiErr.Type != prometheusV1.ErrCanceled
}

// ErrorMessage the message Prometheus responded with, the error text for any other error
func ErrorMessage(err error) string {
	var apiErr *prometheusV1.Error
	if errors.As(err, &apiErr) {
		return apiErr.Msg
	}
	return err.Error()
}
