package clusterhealth

import (
	"net/http"

	"github.com/equinor/radix-console-api/models"
)

type clusterHealthController struct {
	*models.DefaultController
	options HandlerOptions
}

// NewClusterHealthController Constructor
func NewClusterHealthController(options HandlerOptions) models.Controller {
	return &clusterHealthController{options: options}
}

// GetRoutes List the supported routes of this controller
func (c *clusterHealthController) GetRoutes() models.Routes {
	routes := models.Routes{
		models.Route{
			Path:        "/cluster/overview",
			Method:      "GET",
			HandlerFunc: c.GetClusterOverview,
			KubeApiConfig: models.KubeApiConfig{
				QPS:   50,
				Burst: 100,
			},
		},
	}

	return routes
}

// GetClusterOverview Gets health, control plane status and capacity of the cluster
func (c *clusterHealthController) GetClusterOverview(accounts models.Accounts, w http.ResponseWriter, r *http.Request) {
	// swagger:operation GET /cluster/overview cluster getClusterOverview
	// ---
	// summary: Gets health, control plane status and capacity of the cluster, with recent events.
	//   Only the Kubernetes API and console statuses are included when the user is not allowed to query Prometheus
	// parameters:
	// - name: Impersonate-User
	//   in: header
	//   description: Works only with custom setup of cluster. Allow impersonation of test users (Required if Impersonate-Group is set)
	//   type: string
	//   required: false
	// - name: Impersonate-Group
	//   in: header
	//   description: Works only with custom setup of cluster. Allow impersonation of test group (Required if Impersonate-User is set)
	//   type: string
	//   required: false
	// responses:
	//   "200":
	//     description: "Successful operation"
	//     schema:
	//        "$ref": "#/definitions/ClusterOverview"
	//   "401":
	//     description: "Unauthorized"
	overview, err := Init(accounts.UserAccount.Client, c.options).GetClusterOverview(r.Context())
	if err != nil {
		c.ErrorResponse(w, r, err)
		return
	}

	c.JSONResponse(w, r, overview)
}
