package navigation

import "time"

// NoTaskName is displayed for a task run without a pipeline task name
const NoTaskName = "-"

// Record holds the fields of a task run used for ordering and display
type Record struct {
	// Name identifier of the task run
	Name string
	// PipelineTaskName name of the task in the pipeline, empty when unknown
	PipelineTaskName string
	// StartTime nil when the task run has not started
	StartTime *time.Time
	// CompletionTime nil when the task run has not completed
	CompletionTime *time.Time
	// PodName name of the pod running the task, empty when not scheduled
	PodName string
}

// DisplayName Name of the pipeline task, or NoTaskName
func (r Record) DisplayName() string {
	if len(r.PipelineTaskName) == 0 {
		return NoTaskName
	}
	return r.PipelineTaskName
}

// IsCompleted Indicates if the record has a completion time
func (r Record) IsCompleted() bool {
	return r.CompletionTime != nil
}

// Set task run records by task run name
type Set map[string]Record
