package test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"

	radixmodels "github.com/equinor/radix-common/models"
	radixhttp "github.com/equinor/radix-common/net/http"
	"github.com/equinor/radix-console-api/api/router"
	"github.com/equinor/radix-console-api/api/utils"
	"github.com/equinor/radix-console-api/api/utils/token"
	"github.com/equinor/radix-console-api/models"
	"github.com/rs/zerolog/log"
	tektonclient "github.com/tektoncd/pipeline/pkg/client/clientset/versioned"
	"k8s.io/client-go/kubernetes"
)

// Utils Instance variables
type Utils struct {
	client       kubernetes.Interface
	tektonClient tektonclient.Interface
	controllers  []models.Controller
	token        string
}

// NewTestUtils Constructor
func NewTestUtils(client kubernetes.Interface, tektonClient tektonclient.Interface, controllers ...models.Controller) Utils {
	return Utils{
		client:       client,
		tektonClient: tektonClient,
		controllers:  controllers,
		token:        "xyz",
	}
}

// WithBearerToken Copy of the test utils sending requests with another bearer token
func (tu Utils) WithBearerToken(token string) Utils {
	tu.token = token
	return tu
}

// ExecuteRequest Helper method to issue a http request
func (tu *Utils) ExecuteRequest(method, endpoint string) <-chan *httptest.ResponseRecorder {
	return tu.ExecuteRequestWithParameters(method, endpoint, nil)
}

// ExecuteUnAuthorizedRequest Helper method to issue a http request without bearer token
func (tu *Utils) ExecuteUnAuthorizedRequest(method, endpoint string) <-chan *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, endpoint, nil)
	return tu.serve(req)
}

// ExecuteRequestWithParameters Helper method to issue a http request with payload
func (tu *Utils) ExecuteRequestWithParameters(method, endpoint string, parameters interface{}) <-chan *httptest.ResponseRecorder {
	var reader io.Reader

	if parameters != nil {
		payload, _ := json.Marshal(parameters)
		reader = bytes.NewReader(payload)
	}

	req, _ := http.NewRequest(method, endpoint, reader)
	req.Header.Add("Authorization", "bearer "+tu.token)
	req.Header.Add("Accept", "application/json")

	return tu.serve(req)
}

func (tu *Utils) serve(req *http.Request) <-chan *httptest.ResponseRecorder {
	response := make(chan *httptest.ResponseRecorder)
	go func() {
		rr := httptest.NewRecorder()
		router.NewAPIHandler("anyClusterName", "dev.example.com", &acceptAnyTokenValidator{}, NewKubeUtilMock(tu.client, tu.tektonClient), tu.controllers...).ServeHTTP(rr, req)
		response <- rr
		close(response)
	}()

	return response
}

// GetErrorResponse Gets error response
func GetErrorResponse(response *httptest.ResponseRecorder) (*radixhttp.Error, error) {
	errorResponse := &radixhttp.Error{}
	err := GetResponseBody(response, errorResponse)
	if err != nil {
		log.Info().Msg(err.Error())
		return nil, err
	}

	return errorResponse, nil
}

// GetResponseBody Gets response payload as type
func GetResponseBody(response *httptest.ResponseRecorder, target interface{}) error {
	body, _ := io.ReadAll(response.Body)
	log.Info().Msg(string(body))

	return json.Unmarshal(body, target)
}

type kubeUtilMock struct {
	kubeFake   kubernetes.Interface
	tektonFake tektonclient.Interface
}

// NewKubeUtilMock Constructor
func NewKubeUtilMock(client kubernetes.Interface, tektonClient tektonclient.Interface) utils.KubeUtil {
	return &kubeUtilMock{
		client,
		tektonClient,
	}
}

// GetOutClusterKubernetesClient Gets a kubefake client using the bearer token from the console api client
func (ku *kubeUtilMock) GetOutClusterKubernetesClient(_ string, _ ...utils.RestClientConfigOption) (kubernetes.Interface, tektonclient.Interface) {
	return ku.kubeFake, ku.tektonFake
}

// GetOutClusterKubernetesClientWithImpersonation Gets a kubefake client
func (ku *kubeUtilMock) GetOutClusterKubernetesClientWithImpersonation(_ string, _ radixmodels.Impersonation, _ ...utils.RestClientConfigOption) (kubernetes.Interface, tektonclient.Interface) {
	return ku.kubeFake, ku.tektonFake
}

// GetInClusterKubernetesClient Gets a kubefake client using the config of the running pod
func (ku *kubeUtilMock) GetInClusterKubernetesClient(_ ...utils.RestClientConfigOption) (kubernetes.Interface, tektonclient.Interface) {
	return ku.kubeFake, ku.tektonFake
}

// IsUseOutClusterClient is always true for tests
func (ku *kubeUtilMock) IsUseOutClusterClient() bool {
	return true
}

// acceptAnyTokenValidator accepts any bearer token, the principal id is the token
type acceptAnyTokenValidator struct{}

func (v *acceptAnyTokenValidator) ValidateToken(_ context.Context, bearerToken string) (token.TokenPrincipal, error) {
	return &testPrincipal{token: bearerToken}, nil
}

type testPrincipal struct {
	token string
}

func (p *testPrincipal) IsAuthenticated() bool { return true }
func (p *testPrincipal) Token() string         { return p.token }
func (p *testPrincipal) Id() string            { return p.token }
func (p *testPrincipal) Name() string          { return p.token }
