package models

// NoTaskRunsMessage shown when the pipeline run has no task runs
const NoTaskRunsMessage = "No Task Runs Found"

// Navigation ordered task runs of a pipeline run and the one active for log display
// swagger:model Navigation
type Navigation struct {
	// TaskRuns in navigation order
	//
	// required: true
	TaskRuns []TaskRun `json:"taskRuns"`

	// ActiveItem name of the active task run
	//
	// required: false
	ActiveItem string `json:"activeItem,omitempty"`

	// Touched indicates that a task run has been selected
	//
	// required: true
	Touched bool `json:"touched"`

	// Message when there is nothing to navigate
	//
	// required: false
	// example: No Task Runs Found
	Message string `json:"message,omitempty"`
}

// LogViewer a log viewer session for a pipeline run
// swagger:model LogViewer
type LogViewer struct {
	// Id of the log viewer
	//
	// required: true
	Id string `json:"id"`

	// Namespace of the pipeline run
	//
	// required: true
	Namespace string `json:"namespace"`

	// PipelineRunName name of the pipeline run
	//
	// required: true
	PipelineRunName string `json:"pipelineRunName"`

	// Navigation state
	//
	// required: true
	Navigation Navigation `json:"navigation"`
}

// ActiveItemSelection selects the active task run of a log viewer
// swagger:model ActiveItemSelection
type ActiveItemSelection struct {
	// TaskRun name of the task run to show logs for
	//
	// required: true
	TaskRun string `json:"taskRun"`
}
