package containers

import (
	"context"

	radixutils "github.com/equinor/radix-common/utils"
	"github.com/equinor/radix-common/utils/pointers"
	"github.com/equinor/radix-common/utils/slice"
	containerModels "github.com/equinor/radix-console-api/api/containers/models"
	"github.com/equinor/radix-console-api/api/pods"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
)

// ContainerHandler Instance variables
type ContainerHandler struct {
	client kubernetes.Interface
}

// Init Constructor
func Init(client kubernetes.Interface) ContainerHandler {
	return ContainerHandler{client: client}
}

// GetContainer Get spec, status and state of a container in a pod
func (h ContainerHandler) GetContainer(ctx context.Context, namespace, podName, containerName string) (*containerModels.Container, error) {
	pod, err := pods.Init(h.client).GetPod(ctx, namespace, podName)
	if err != nil {
		return nil, err
	}

	spec, isInit, ok := findContainer(pod, containerName)
	if !ok {
		return nil, pods.ContainerNotFoundError(podName, containerName)
	}

	container := &containerModels.Container{
		Name:            spec.Name,
		PodName:         pod.GetName(),
		Image:           spec.Image,
		ImagePullPolicy: string(spec.ImagePullPolicy),
		Init:            isInit,
		Command:         spec.Command,
		Args:            spec.Args,
		Ports: slice.Map(spec.Ports, func(p corev1.ContainerPort) containerModels.Port {
			return containerModels.Port{Name: p.Name, ContainerPort: p.ContainerPort, Protocol: string(p.Protocol)}
		}),
		State: containerModels.ContainerState{Label: containerModels.StateUnknown},
	}

	statuses := pod.Status.ContainerStatuses
	if isInit {
		statuses = pod.Status.InitContainerStatuses
	}
	if status, ok := slice.FindFirst(statuses, func(s corev1.ContainerStatus) bool { return s.Name == containerName }); ok {
		container.Info = &containerModels.ContainerInfo{
			Ready:        status.Ready,
			RestartCount: status.RestartCount,
			ContainerID:  status.ContainerID,
			ImageID:      status.ImageID,
		}
		container.State = GetContainerState(status.State)
	}
	return container, nil
}

// GetContainerState Derives the state of a container. A container without any state set is unknown
func GetContainerState(state corev1.ContainerState) containerModels.ContainerState {
	switch {
	case state.Running != nil:
		return containerModels.ContainerState{
			Label:     containerModels.StateRunning,
			StartedAt: radixutils.FormatTime(&state.Running.StartedAt),
		}
	case state.Terminated != nil:
		return containerModels.ContainerState{
			Label:      containerModels.StateTerminated,
			StartedAt:  formatNonZero(state.Terminated.StartedAt),
			FinishedAt: formatNonZero(state.Terminated.FinishedAt),
			Reason:     state.Terminated.Reason,
			Message:    state.Terminated.Message,
			ExitCode:   pointers.Ptr(state.Terminated.ExitCode),
		}
	case state.Waiting != nil:
		return containerModels.ContainerState{
			Label:   containerModels.StateWaiting,
			Reason:  state.Waiting.Reason,
			Message: state.Waiting.Message,
		}
	default:
		return containerModels.ContainerState{Label: containerModels.StateUnknown}
	}
}

func findContainer(pod *corev1.Pod, containerName string) (corev1.Container, bool, bool) {
	byName := func(c corev1.Container) bool { return c.Name == containerName }
	if container, ok := slice.FindFirst(pod.Spec.Containers, byName); ok {
		return container, false, true
	}
	if container, ok := slice.FindFirst(pod.Spec.InitContainers, byName); ok {
		return container, true, true
	}
	return corev1.Container{}, false, false
}

func formatNonZero(t metav1.Time) string {
	if t.IsZero() {
		return ""
	}
	return radixutils.FormatTime(&t)
}
