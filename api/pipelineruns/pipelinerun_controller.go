package pipelineruns

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	radixhttp "github.com/equinor/radix-common/net/http"
	pipelineRunModels "github.com/equinor/radix-console-api/api/pipelineruns/models"
	"github.com/equinor/radix-console-api/api/utils/logs"
	"github.com/equinor/radix-console-api/models"
	"github.com/gorilla/mux"
)

const (
	rootPath      = "/namespaces/{namespace}/pipelineruns/{pipelineRunName}"
	logViewerPath = rootPath + "/logviewers/{viewerId}"
)

type pipelineRunController struct {
	*models.DefaultController
	store *ViewerStore
}

// NewPipelineRunController Constructor
func NewPipelineRunController(store *ViewerStore) models.Controller {
	return &pipelineRunController{store: store}
}

// GetRoutes List the supported routes of this controller
func (c *pipelineRunController) GetRoutes() models.Routes {
	routes := models.Routes{
		models.Route{
			Path:        rootPath + "/taskruns",
			Method:      "GET",
			HandlerFunc: c.GetTaskRuns,
		},
		models.Route{
			Path:        rootPath + "/logviewers",
			Method:      "POST",
			HandlerFunc: c.CreateLogViewer,
		},
		models.Route{
			Path:        logViewerPath,
			Method:      "GET",
			HandlerFunc: c.GetLogViewer,
		},
		models.Route{
			Path:        logViewerPath + "/activeitem",
			Method:      "PUT",
			HandlerFunc: c.SelectActiveItem,
		},
		models.Route{
			Path:        logViewerPath,
			Method:      "DELETE",
			HandlerFunc: c.DeleteLogViewer,
		},
		models.Route{
			Path:        logViewerPath + "/logs",
			Method:      "GET",
			HandlerFunc: c.GetLogViewerLog,
		},
	}

	return routes
}

// GetTaskRuns Lists the task runs of a pipeline run in navigation order
func (c *pipelineRunController) GetTaskRuns(accounts models.Accounts, w http.ResponseWriter, r *http.Request) {
	// swagger:operation GET /namespaces/{namespace}/pipelineruns/{pipelineRunName}/taskruns pipelinerun getTaskRuns
	// ---
	// summary: Gets the task runs of a pipeline run, ordered for navigation, with the default active task run
	// parameters:
	// - name: namespace
	//   in: path
	//   description: namespace of the pipeline run
	//   type: string
	//   required: true
	// - name: pipelineRunName
	//   in: path
	//   description: name of the Tekton pipeline run
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
	//        "$ref": "#/definitions/Navigation"
	//   "401":
	//     description: "Unauthorized"
	//   "404":
	//     description: "Not found"
	namespace, pipelineRunName := getPipelineRunVars(r)

	navigation, err := Init(accounts, c.store).GetTaskRuns(r.Context(), namespace, pipelineRunName)
	if err != nil {
		c.ErrorResponse(w, r, err)
		return
	}

	c.JSONResponse(w, r, navigation)
}

// CreateLogViewer Opens a log viewer for a pipeline run
func (c *pipelineRunController) CreateLogViewer(accounts models.Accounts, w http.ResponseWriter, r *http.Request) {
	// swagger:operation POST /namespaces/{namespace}/pipelineruns/{pipelineRunName}/logviewers pipelinerun createLogViewer
	// ---
	// summary: Opens a log viewer, following the default active task run until one is selected
	// parameters:
	// - name: namespace
	//   in: path
	//   description: namespace of the pipeline run
	//   type: string
	//   required: true
	// - name: pipelineRunName
	//   in: path
	//   description: name of the Tekton pipeline run
	//   type: string
	//   required: true
	// responses:
	//   "200":
	//     description: "Successful operation"
	//     schema:
	//        "$ref": "#/definitions/LogViewer"
	//   "401":
	//     description: "Unauthorized"
	//   "404":
	//     description: "Not found"
	namespace, pipelineRunName := getPipelineRunVars(r)

	logViewer, err := Init(accounts, c.store).CreateLogViewer(r.Context(), namespace, pipelineRunName)
	if err != nil {
		c.ErrorResponse(w, r, err)
		return
	}

	c.JSONResponse(w, r, logViewer)
}

// GetLogViewer Refreshes and gets a log viewer
func (c *pipelineRunController) GetLogViewer(accounts models.Accounts, w http.ResponseWriter, r *http.Request) {
	// swagger:operation GET /namespaces/{namespace}/pipelineruns/{pipelineRunName}/logviewers/{viewerId} pipelinerun getLogViewer
	// ---
	// summary: Re-reads the task runs of the pipeline run and gets the state of the log viewer
	// parameters:
	// - name: namespace
	//   in: path
	//   description: namespace of the pipeline run
	//   type: string
	//   required: true
	// - name: pipelineRunName
	//   in: path
	//   description: name of the Tekton pipeline run
	//   type: string
	//   required: true
	// - name: viewerId
	//   in: path
	//   description: id of the log viewer
	//   type: string
	//   required: true
	// responses:
	//   "200":
	//     description: "Successful operation"
	//     schema:
	//        "$ref": "#/definitions/LogViewer"
	//   "401":
	//     description: "Unauthorized"
	//   "404":
	//     description: "Not found"
	namespace, pipelineRunName := getPipelineRunVars(r)
	viewerId := mux.Vars(r)["viewerId"]

	logViewer, err := Init(accounts, c.store).GetLogViewer(r.Context(), namespace, pipelineRunName, viewerId)
	if err != nil {
		c.ErrorResponse(w, r, err)
		return
	}

	c.JSONResponse(w, r, logViewer)
}

// SelectActiveItem Selects the task run to show logs for
func (c *pipelineRunController) SelectActiveItem(accounts models.Accounts, w http.ResponseWriter, r *http.Request) {
	// swagger:operation PUT /namespaces/{namespace}/pipelineruns/{pipelineRunName}/logviewers/{viewerId}/activeitem pipelinerun selectActiveItem
	// ---
	// summary: Selects the task run to show logs for. The selection is kept when the task runs change
	// parameters:
	// - name: namespace
	//   in: path
	//   description: namespace of the pipeline run
	//   type: string
	//   required: true
	// - name: pipelineRunName
	//   in: path
	//   description: name of the Tekton pipeline run
	//   type: string
	//   required: true
	// - name: viewerId
	//   in: path
	//   description: id of the log viewer
	//   type: string
	//   required: true
	// - name: selection
	//   in: body
	//   description: task run to select
	//   required: true
	//   schema:
	//       "$ref": "#/definitions/ActiveItemSelection"
	// responses:
	//   "200":
	//     description: "Successful operation"
	//     schema:
	//        "$ref": "#/definitions/LogViewer"
	//   "400":
	//     description: "Invalid selection"
	//   "401":
	//     description: "Unauthorized"
	//   "404":
	//     description: "Not found"
	namespace, pipelineRunName := getPipelineRunVars(r)
	viewerId := mux.Vars(r)["viewerId"]

	var selection pipelineRunModels.ActiveItemSelection
	if err := json.NewDecoder(r.Body).Decode(&selection); err != nil {
		c.ErrorResponse(w, r, radixhttp.ValidationError("ActiveItemSelection", err.Error()))
		return
	}

	logViewer, err := Init(accounts, c.store).SelectActiveItem(r.Context(), namespace, pipelineRunName, viewerId, selection)
	if err != nil {
		c.ErrorResponse(w, r, err)
		return
	}

	c.JSONResponse(w, r, logViewer)
}

// DeleteLogViewer Closes a log viewer
func (c *pipelineRunController) DeleteLogViewer(accounts models.Accounts, w http.ResponseWriter, r *http.Request) {
	// swagger:operation DELETE /namespaces/{namespace}/pipelineruns/{pipelineRunName}/logviewers/{viewerId} pipelinerun deleteLogViewer
	// ---
	// summary: Closes a log viewer
	// parameters:
	// - name: namespace
	//   in: path
	//   description: namespace of the pipeline run
	//   type: string
	//   required: true
	// - name: pipelineRunName
	//   in: path
	//   description: name of the Tekton pipeline run
	//   type: string
	//   required: true
	// - name: viewerId
	//   in: path
	//   description: id of the log viewer
	//   type: string
	//   required: true
	// responses:
	//   "204":
	//     description: "Log viewer closed"
	//   "401":
	//     description: "Unauthorized"
	//   "404":
	//     description: "Not found"
	namespace, pipelineRunName := getPipelineRunVars(r)
	viewerId := mux.Vars(r)["viewerId"]

	if err := Init(accounts, c.store).DeleteLogViewer(r.Context(), namespace, pipelineRunName, viewerId); err != nil {
		c.ErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetLogViewerLog Gets the log of the active task run of a log viewer
func (c *pipelineRunController) GetLogViewerLog(accounts models.Accounts, w http.ResponseWriter, r *http.Request) {
	// swagger:operation GET /namespaces/{namespace}/pipelineruns/{pipelineRunName}/logviewers/{viewerId}/logs pipelinerun getLogViewerLog
	// ---
	// summary: Gets the log of the active task run, the message of the pipeline run when no task run is active
	// parameters:
	// - name: namespace
	//   in: path
	//   description: namespace of the pipeline run
	//   type: string
	//   required: true
	// - name: pipelineRunName
	//   in: path
	//   description: name of the Tekton pipeline run
	//   type: string
	//   required: true
	// - name: viewerId
	//   in: path
	//   description: id of the log viewer
	//   type: string
	//   required: true
	// - name: container
	//   in: query
	//   description: container (task step) of the task run pod, all containers when not set
	//   type: string
	//   required: false
	// - name: sinceTime
	//   in: query
	//   description: Get log only from sinceTime (example 2020-03-18T07:20:41+00:00)
	//   type: string
	//   format: date-time
	//   required: false
	// - name: lines
	//   in: query
	//   description: Get log lines (example 1000)
	//   type: string
	//   format: number
	//   required: false
	// - name: follow
	//   in: query
	//   description: Follow the log of a single container
	//   type: boolean
	//   required: false
	// - name: file
	//   in: query
	//   description: Get log as a file if true
	//   type: string
	//   format: boolean
	//   required: false
	// responses:
	//   "200":
	//     description: "Task run log"
	//     schema:
	//        type: "string"
	//   "400":
	//     description: "Invalid log parameters"
	//   "401":
	//     description: "Unauthorized"
	//   "404":
	//     description: "Not found"
	namespace, pipelineRunName := getPipelineRunVars(r)
	viewerId := mux.Vars(r)["viewerId"]

	params, err := logs.GetLogParams(r)
	if err != nil {
		c.ErrorResponse(w, r, err)
		return
	}

	logReader, err := Init(accounts, c.store).GetLogViewerLog(r.Context(), namespace, pipelineRunName, viewerId, params)
	if err != nil {
		c.ErrorResponse(w, r, err)
		return
	}
	defer func() { _ = logReader.Close() }()

	if params.AsFile {
		fileName := fmt.Sprintf("%s-%s.log", pipelineRunName, time.Now().Format("20060102150405"))
		c.ReaderFileResponse(w, r, logReader, fileName, "text/plain; charset=utf-8")
	} else {
		c.ReaderResponse(w, r, logReader, "text/plain; charset=utf-8")
	}
}

func getPipelineRunVars(r *http.Request) (string, string) {
	vars := mux.Vars(r)
	return vars["namespace"], vars["pipelineRunName"]
}
