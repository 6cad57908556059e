package tekton

import (
	"context"
	"time"

	"github.com/equinor/radix-common/utils/slice"
	"github.com/equinor/radix-console-api/internal/navigation"
	pipelinev1 "github.com/tektoncd/pipeline/pkg/apis/pipeline/v1"
	tektonclient "github.com/tektoncd/pipeline/pkg/client/clientset/versioned"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	kubeLabels "k8s.io/apimachinery/pkg/labels"
)

const (
	PipelineRunLabel  = "tekton.dev/pipelineRun"
	PipelineTaskLabel = "tekton.dev/pipelineTask"
	taskRunKind       = "TaskRun"
)

// GetPipelineRun Get Tekton PipelineRun
func GetPipelineRun(ctx context.Context, tektonClient tektonclient.Interface, namespace, pipelineRunName string) (*pipelinev1.PipelineRun, error) {
	return tektonClient.TektonV1().PipelineRuns(namespace).Get(ctx, pipelineRunName, metav1.GetOptions{})
}

// GetTaskRuns Get Tekton TaskRuns created for the pipeline run
func GetTaskRuns(ctx context.Context, tektonClient tektonclient.Interface, namespace, pipelineRunName string) ([]pipelinev1.TaskRun, error) {
	taskRunList, err := tektonClient.TektonV1().TaskRuns(namespace).List(ctx, metav1.ListOptions{
		LabelSelector: kubeLabels.Set{PipelineRunLabel: pipelineRunName}.String(),
	})
	if err != nil {
		return nil, err
	}
	return taskRunList.Items, nil
}

// GetPipelineTaskNames Get pipeline task name per task run name from the child references of the pipeline run
func GetPipelineTaskNames(pipelineRun *pipelinev1.PipelineRun) map[string]string {
	if pipelineRun == nil {
		return make(map[string]string)
	}
	return slice.Reduce(pipelineRun.Status.ChildReferences, make(map[string]string), func(acc map[string]string, ref pipelinev1.ChildStatusReference) map[string]string {
		if ref.Kind == taskRunKind || len(ref.Kind) == 0 {
			acc[ref.Name] = ref.PipelineTaskName
		}
		return acc
	})
}

// GetTaskRunSet Reads the task runs of the pipeline run as a navigation set, together with the task runs by name
func GetTaskRunSet(ctx context.Context, tektonClient tektonclient.Interface, pipelineRun *pipelinev1.PipelineRun) (navigation.Set, map[string]pipelinev1.TaskRun, error) {
	taskRuns, err := GetTaskRuns(ctx, tektonClient, pipelineRun.GetNamespace(), pipelineRun.GetName())
	if err != nil {
		return nil, nil, err
	}
	pipelineTaskNames := GetPipelineTaskNames(pipelineRun)

	set := make(navigation.Set, len(taskRuns))
	taskRunMap := make(map[string]pipelinev1.TaskRun, len(taskRuns))
	for _, taskRun := range taskRuns {
		set[taskRun.GetName()] = ToRecord(&taskRun, pipelineTaskNames)
		taskRunMap[taskRun.GetName()] = taskRun
	}
	return set, taskRunMap, nil
}

// ToRecord Converts a task run to a navigation record
func ToRecord(taskRun *pipelinev1.TaskRun, pipelineTaskNames map[string]string) navigation.Record {
	pipelineTaskName := taskRun.GetLabels()[PipelineTaskLabel]
	if len(pipelineTaskName) == 0 {
		pipelineTaskName = pipelineTaskNames[taskRun.GetName()]
	}
	return navigation.Record{
		Name:             taskRun.GetName(),
		PipelineTaskName: pipelineTaskName,
		StartTime:        toTime(taskRun.Status.StartTime),
		CompletionTime:   toTime(taskRun.Status.CompletionTime),
		PodName:          taskRun.Status.PodName,
	}
}

func toTime(t *metav1.Time) *time.Time {
	if t == nil {
		return nil
	}
	value := t.Time
	return &value
}
