package utils

import (
	"net/http"
	"time"

	"github.com/equinor/radix-console-api/api/metrics"
	"github.com/equinor/radix-console-api/api/middleware/auth"
	"github.com/equinor/radix-console-api/models"
)

// ConsoleMiddleware The middleware between router and console handler functions
type ConsoleMiddleware struct {
	kubeUtil     KubeUtil
	path         string
	method       string
	allowNoAuth  bool
	kubeApiQPS   float32
	kubeApiBurst int
	next         models.ConsoleHandlerFunc
}

// NewConsoleMiddleware Constructor for console middleware
func NewConsoleMiddleware(kubeUtil KubeUtil, path, method string, allowUnauthenticatedUsers bool, kubeApiQPS float32, kubeApiBurst int, next models.ConsoleHandlerFunc) *ConsoleMiddleware {
	handler := &ConsoleMiddleware{
		kubeUtil,
		path,
		method,
		allowUnauthenticatedUsers,
		kubeApiQPS,
		kubeApiBurst,
		next,
	}

	return handler
}

// ServeHTTP Wraps console handler methods
func (handler *ConsoleMiddleware) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	defer func() {
		httpDuration := time.Since(start)
		metrics.AddRequestDuration(handler.path, handler.method, httpDuration)
	}()

	switch {
	case handler.allowNoAuth:
		handler.handleAnonymous(w, r)
	default:
		handler.handleAuthorization(w, r)
	}
}

func (handler *ConsoleMiddleware) handleAuthorization(w http.ResponseWriter, r *http.Request) {
	token := auth.CtxToken(r.Context())
	impersonation := auth.CtxImpersonation(r.Context())

	restOptions := handler.getRestClientOptions()
	inClusterClient, inClusterTektonClient := handler.kubeUtil.GetInClusterKubernetesClient(restOptions...)
	outClusterClient, outClusterTektonClient := handler.kubeUtil.GetOutClusterKubernetesClientWithImpersonation(token, impersonation, restOptions...)

	accounts := models.NewAccounts(
		inClusterClient,
		inClusterTektonClient,
		outClusterClient,
		outClusterTektonClient,
		token,
		impersonation)

	handler.next(accounts, w, r)
}

func (handler *ConsoleMiddleware) getRestClientOptions() []RestClientConfigOption {
	var options []RestClientConfigOption

	if handler.kubeApiQPS > 0.0 {
		options = append(options, WithQPS(handler.kubeApiQPS))
	}

	if handler.kubeApiBurst > 0 {
		options = append(options, WithBurst(handler.kubeApiBurst))
	}

	return options
}

func (handler *ConsoleMiddleware) handleAnonymous(w http.ResponseWriter, r *http.Request) {
	restOptions := handler.getRestClientOptions()
	inClusterClient, inClusterTektonClient := handler.kubeUtil.GetInClusterKubernetesClient(restOptions...)

	accounts := models.Accounts{ServiceAccount: models.NewServiceAccount(inClusterClient, inClusterTektonClient)}

	handler.next(accounts, w, r)
}
