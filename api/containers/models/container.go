package models

// Container states
const (
	StateWaiting    = "waiting"
	StateRunning    = "running"
	StateTerminated = "terminated"
	StateUnknown    = "unknown"
)

// Container spec and status of a container in a pod
// swagger:model Container
type Container struct {
	// Name of the container
	//
	// required: true
	// example: step-build
	Name string `json:"name"`

	// PodName name of the pod running the container
	//
	// required: true
	PodName string `json:"podName"`

	// Image of the container
	//
	// required: true
	// example: radixdev.azurecr.io/radix-pipeline:main-latest
	Image string `json:"image"`

	// ImagePullPolicy of the container
	//
	// required: false
	ImagePullPolicy string `json:"imagePullPolicy,omitempty"`

	// Init is true for an init container
	//
	// required: true
	Init bool `json:"init"`

	// Command entrypoint of the container
	//
	// required: false
	Command []string `json:"command,omitempty"`

	// Args to the entrypoint
	//
	// required: false
	Args []string `json:"args,omitempty"`

	// Ports exposed by the container
	//
	// required: false
	Ports []Port `json:"ports,omitempty"`

	// Info status from the pod, not set before the container is created
	//
	// required: false
	Info *ContainerInfo `json:"info,omitempty"`

	// State of the container
	//
	// required: true
	State ContainerState `json:"state"`
}

// Port exposed by a container
// swagger:model ContainerPort
type Port struct {
	// Name of the port
	//
	// required: false
	Name string `json:"name,omitempty"`

	// ContainerPort number
	//
	// required: true
	// example: 8080
	ContainerPort int32 `json:"containerPort"`

	// Protocol TCP, UDP or SCTP
	//
	// required: true
	Protocol string `json:"protocol"`
}

// ContainerInfo status of a container in a pod
// swagger:model ContainerInfo
type ContainerInfo struct {
	// Ready indicates that the container passes its readiness probe
	//
	// required: true
	Ready bool `json:"ready"`

	// RestartCount number of times the container has been restarted
	//
	// required: true
	RestartCount int32 `json:"restartCount"`

	// ContainerID id of the container
	//
	// required: false
	ContainerID string `json:"containerID,omitempty"`

	// ImageID id of the image the container runs
	//
	// required: false
	ImageID string `json:"imageID,omitempty"`
}

// ContainerState derived state of a container
// swagger:model ContainerState
type ContainerState struct {
	// Label waiting, running, terminated or unknown
	//
	// required: true
	// enum: waiting,running,terminated,unknown
	Label string `json:"label"`

	// StartedAt timestamp when running or terminated
	//
	// required: false
	// swagger:strfmt date-time
	StartedAt string `json:"startedAt,omitempty"`

	// FinishedAt timestamp when terminated
	//
	// required: false
	// swagger:strfmt date-time
	FinishedAt string `json:"finishedAt,omitempty"`

	// Reason of a waiting or terminated state
	//
	// required: false
	// example: CrashLoopBackOff
	Reason string `json:"reason,omitempty"`

	// Message of a waiting or terminated state
	//
	// required: false
	Message string `json:"message,omitempty"`

	// ExitCode of a terminated container
	//
	// required: false
	ExitCode *int32 `json:"exitCode,omitempty"`
}
