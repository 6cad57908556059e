package pods

import (
	"fmt"

	radixhttp "github.com/equinor/radix-common/net/http"
)

// PodNotFoundError Pod not found
func PodNotFoundError(podName string) error {
	return radixhttp.TypeMissingError(fmt.Sprintf("Pod %s not found", podName), nil)
}

// ContainerNotFoundError Container not found in pod
func ContainerNotFoundError(podName, containerName string) error {
	return radixhttp.TypeMissingError(fmt.Sprintf("Container %s not found in pod %s", containerName, podName), nil)
}
