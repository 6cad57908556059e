package router

import (
	"net/http"

	"github.com/equinor/radix-console-api/api/middleware/auth"
	"github.com/equinor/radix-console-api/api/middleware/cors"
	"github.com/equinor/radix-console-api/api/middleware/logger"
	"github.com/equinor/radix-console-api/api/middleware/recovery"
	"github.com/equinor/radix-console-api/api/utils"
	"github.com/equinor/radix-console-api/api/utils/token"
	"github.com/equinor/radix-console-api/models"
	"github.com/gorilla/mux"
	"github.com/urfave/negroni/v3"
)

const (
	apiVersionRoute = "/api/v1"
)

// NewAPIHandler Constructor function
func NewAPIHandler(clusterName, dnsZone string, validator token.ValidatorInterface, kubeUtil utils.KubeUtil, controllers ...models.Controller) http.Handler {
	serveMux := http.NewServeMux()
	serveMux.Handle("/health/", createHealthHandler())
	serveMux.Handle("/api/", createApiRouter(kubeUtil, controllers))

	n := negroni.New(
		recovery.NewMiddleware(),
		cors.CreateMiddleware(clusterName, dnsZone),
		logger.NewZerologRequestIdMiddleware(),
		logger.NewZerologRequestDetailsMiddleware(),
		auth.NewAuthenticationMiddleware(validator),
		auth.NewZerologAuthenticationDetailsMiddleware(),
		logger.NewZerologResponseLoggerMiddleware(),
	)
	n.UseHandler(serveMux)

	return n
}

func createApiRouter(kubeUtil utils.KubeUtil, controllers []models.Controller) *mux.Router {
	router := mux.NewRouter().StrictSlash(true)
	for _, controller := range controllers {
		for _, route := range controller.GetRoutes() {
			path := apiVersionRoute + route.Path
			handler := utils.NewConsoleMiddleware(
				kubeUtil,
				path,
				route.Method,
				route.AllowUnauthenticatedUsers,
				route.KubeApiConfig.QPS,
				route.KubeApiConfig.Burst,
				route.HandlerFunc,
			)

			n := negroni.New()
			if !route.AllowUnauthenticatedUsers {
				n.Use(auth.NewAuthorizeRequiredMiddleware())
			}
			n.UseHandler(handler)
			router.Handle(path, n).Methods(route.Method)
		}
	}
	return router
}

func createHealthHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}
