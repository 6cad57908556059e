package tekton

import (
	pipelinev1 "github.com/tektoncd/pipeline/pkg/apis/pipeline/v1"
	corev1 "k8s.io/api/core/v1"
	"knative.dev/pkg/apis"
)

// Status of a task run, as shown next to it in the log viewer
type Status string

const (
	StatusPending   Status = "Pending"
	StatusRunning   Status = "Running"
	StatusSucceeded Status = "Succeeded"
	StatusCancelled Status = "Cancelled"
	StatusFailed    Status = "Failed"
)

// GetTaskRunStatus Reduces the Succeeded condition of a task run to a status
func GetTaskRunStatus(taskRun *pipelinev1.TaskRun) Status {
	if taskRun == nil {
		return StatusPending
	}
	condition := taskRun.Status.GetCondition(apis.ConditionSucceeded)
	if condition == nil {
		return StatusPending
	}
	switch condition.Status {
	case corev1.ConditionTrue:
		return StatusSucceeded
	case corev1.ConditionFalse:
		if condition.Reason == pipelinev1.TaskRunReasonCancelled.String() {
			return StatusCancelled
		}
		return StatusFailed
	default:
		return StatusRunning
	}
}

// GetFirstConditionMessage The message of the first condition of the pipeline run, if it has a condition.
// An empty message of an existing condition is returned as is
func GetFirstConditionMessage(pipelineRun *pipelinev1.PipelineRun) (string, bool) {
	if pipelineRun == nil || len(pipelineRun.Status.Conditions) == 0 {
		return "", false
	}
	return pipelineRun.Status.Conditions[0].Message, true
}
