package models

import (
	"fmt"

	radixhttp "github.com/equinor/radix-common/net/http"
)

// PipelineRunNotFoundError Pipeline run not found
func PipelineRunNotFoundError(namespace, pipelineRunName string) error {
	return radixhttp.NotFoundError(fmt.Sprintf("pipeline run %s not found in namespace %s", pipelineRunName, namespace))
}

// TaskRunNotFoundError Task run not found in the pipeline run
func TaskRunNotFoundError(pipelineRunName, taskRunName string) error {
	return radixhttp.NotFoundError(fmt.Sprintf("task run %s not found in pipeline run %s", taskRunName, pipelineRunName))
}

// LogViewerNotFoundError Log viewer does not exist or has expired
func LogViewerNotFoundError(viewerId string) error {
	return radixhttp.NotFoundError(fmt.Sprintf("log viewer %s not found", viewerId))
}

// MissingTaskRunError Selection without a task run
func MissingTaskRunError() error {
	return radixhttp.ValidationError("ActiveItemSelection", "taskRun is required")
}
