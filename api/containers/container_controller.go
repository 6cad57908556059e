package containers

import (
	"net/http"

	"github.com/equinor/radix-console-api/models"
	"github.com/gorilla/mux"
)

const rootPath = "/namespaces/{namespace}/pods/{podName}"

type containerController struct {
	*models.DefaultController
}

// NewContainerController Constructor
func NewContainerController() models.Controller {
	return &containerController{}
}

// GetRoutes List the supported routes of this controller
func (c *containerController) GetRoutes() models.Routes {
	routes := models.Routes{
		models.Route{
			Path:        rootPath + "/containers/{containerName}",
			Method:      "GET",
			HandlerFunc: c.GetContainer,
		},
	}

	return routes
}

// GetContainer Gets a container of a pod
func (c *containerController) GetContainer(accounts models.Accounts, w http.ResponseWriter, r *http.Request) {
	// swagger:operation GET /namespaces/{namespace}/pods/{podName}/containers/{containerName} pod getContainer
	// ---
	// summary: Gets spec, status and state of a container in a pod
	// parameters:
	// - name: namespace
	//   in: path
	//   description: namespace of the pod
	//   type: string
	//   required: true
	// - name: podName
	//   in: path
	//   description: name of the pod
	//   type: string
	//   required: true
	// - name: containerName
	//   in: path
	//   description: name of the container
	//   type: string
	//   required: true
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
	//        "$ref": "#/definitions/Container"
	//   "401":
	//     description: "Unauthorized"
	//   "404":
	//     description: "Not found"
	vars := mux.Vars(r)

	container, err := Init(accounts.UserAccount.Client).GetContainer(r.Context(), vars["namespace"], vars["podName"], vars["containerName"])
	if err != nil {
		c.ErrorResponse(w, r, err)
		return
	}

	c.JSONResponse(w, r, container)
}
