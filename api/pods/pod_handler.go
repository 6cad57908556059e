package pods

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/equinor/radix-common/utils/slice"
	"github.com/equinor/radix-console-api/api/utils/logs"
	"github.com/rs/zerolog/log"
	corev1 "k8s.io/api/core/v1"
	k8serrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
)

// PodHandler Instance variables
type PodHandler struct {
	client kubernetes.Interface
}

// Init Constructor
func Init(client kubernetes.Interface) PodHandler {
	return PodHandler{client}
}

// GetPod Get pod in namespace
func (ph PodHandler) GetPod(ctx context.Context, namespace, podName string) (*corev1.Pod, error) {
	pod, err := ph.client.CoreV1().Pods(namespace).Get(ctx, podName, metav1.GetOptions{})
	if err != nil {
		if k8serrors.IsNotFound(err) {
			return nil, PodNotFoundError(podName)
		}
		return nil, err
	}
	return pod, nil
}

// GetPodLog Get log of a container in the pod. Logs of all containers, each under a header, when no container is given
func (ph PodHandler) GetPodLog(ctx context.Context, namespace, podName string, params logs.Params) (io.ReadCloser, error) {
	pod, err := ph.GetPod(ctx, namespace, podName)
	if err != nil {
		return nil, err
	}

	if len(params.Container) > 0 {
		if !hasContainer(pod, params.Container) {
			return nil, ContainerNotFoundError(podName, params.Container)
		}
		return ph.streamContainerLog(ctx, pod, params.Container, params)
	}

	containers := getContainerNames(pod)
	if len(containers) == 1 {
		return ph.streamContainerLog(ctx, pod, containers[0], params)
	}

	// follow is only supported for a single container
	params.Follow = false
	readers := make([]io.Reader, 0, 2*len(containers))
	closers := make([]io.Closer, 0, len(containers))
	var lastErr error
	for _, containerName := range containers {
		stream, err := ph.streamContainerLog(ctx, pod, containerName, params)
		if err != nil {
			log.Ctx(ctx).Warn().Err(err).Str("pod", podName).Str("container", containerName).Msg("failed to get container log")
			lastErr = err
			continue
		}
		readers = append(readers, strings.NewReader(fmt.Sprintf("==== %s ====\n", containerName)), stream)
		closers = append(closers, stream)
	}
	if len(closers) == 0 && lastErr != nil {
		return nil, lastErr
	}
	return &multiReadCloser{Reader: io.MultiReader(readers...), closers: closers}, nil
}

func (ph PodHandler) streamContainerLog(ctx context.Context, pod *corev1.Pod, containerName string, params logs.Params) (io.ReadCloser, error) {
	podLogOption := corev1.PodLogOptions{
		Container: containerName,
		Follow:    params.Follow,
		TailLines: params.Lines,
	}
	if params.Since != nil {
		podLogOption.SinceTime = &metav1.Time{Time: *params.Since}
	}

	return ph.client.CoreV1().Pods(pod.GetNamespace()).GetLogs(pod.GetName(), &podLogOption).Stream(ctx)
}

func getContainerNames(pod *corev1.Pod) []string {
	return slice.Map(pod.Spec.Containers, func(c corev1.Container) string { return c.Name })
}

func hasContainer(pod *corev1.Pod, containerName string) bool {
	return slice.Any(pod.Spec.Containers, func(c corev1.Container) bool { return c.Name == containerName })
}

type multiReadCloser struct {
	io.Reader
	closers []io.Closer
}

func (m *multiReadCloser) Close() error {
	var errs []error
	for _, c := range m.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
