package models

// TaskRun navigation item of a task run in a pipeline run
// swagger:model TaskRun
type TaskRun struct {
	// Name of the task run
	//
	// required: true
	// example: radix-pipeline-20240101-abcde-clone
	Name string `json:"name"`

	// DisplayName name of the pipeline task, or - when unknown
	//
	// required: true
	// example: clone
	DisplayName string `json:"displayName"`

	// Status of the task run
	//
	// required: true
	// enum: Pending,Running,Succeeded,Cancelled,Failed
	// example: Succeeded
	Status string `json:"status"`

	// PodName name of the pod running the task
	//
	// required: false
	PodName string `json:"podName,omitempty"`

	// Started timestamp
	//
	// required: false
	// swagger:strfmt date-time
	Started string `json:"started,omitempty"`

	// Ended timestamp
	//
	// required: false
	// swagger:strfmt date-time
	Ended string `json:"ended,omitempty"`
}
