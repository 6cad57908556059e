package models

// ClusterOverview health, control plane and capacity of the cluster with recent events
// swagger:model ClusterOverview
type ClusterOverview struct {
	// Limited is true when the user is not allowed to query Prometheus.
	// Only the Kubernetes API and console statuses are included
	//
	// required: true
	Limited bool `json:"limited"`

	// Sections of the overview
	//
	// required: true
	Sections []Section `json:"sections"`

	// Events recent cluster events, newest first
	//
	// required: true
	Events []Event `json:"events"`

	// EventsMessage when events could not be listed
	//
	// required: false
	EventsMessage string `json:"eventsMessage,omitempty"`
}

// Event a Kubernetes event
// swagger:model Event
type Event struct {
	// Namespace of the event
	//
	// required: true
	Namespace string `json:"namespace"`

	// Type Normal or Warning
	//
	// required: true
	// example: Warning
	Type string `json:"type"`

	// Reason of the event
	//
	// required: true
	// example: BackOff
	Reason string `json:"reason"`

	// Message of the event
	//
	// required: true
	Message string `json:"message"`

	// InvolvedObjectKind kind of the object the event is about
	//
	// required: true
	// example: Pod
	InvolvedObjectKind string `json:"involvedObjectKind"`

	// InvolvedObjectName name of the object the event is about
	//
	// required: true
	InvolvedObjectName string `json:"involvedObjectName"`

	// Count of occurrences
	//
	// required: true
	Count int32 `json:"count"`

	// LastTimestamp of the latest occurrence
	//
	// required: true
	// swagger:strfmt date-time
	LastTimestamp string `json:"lastTimestamp"`
}
