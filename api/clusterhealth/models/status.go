package models

// Status values of a health status or gauge. StatusUnknown is shown gray
const (
	StatusOK      = "OK"
	StatusWarn    = "WARN"
	StatusError   = "ERROR"
	StatusUnknown = ""
)

// Status health of a cluster component
// swagger:model Status
type Status struct {
	// Title of the status
	//
	// required: true
	// example: Kubernetes API
	Title string `json:"title"`

	// Short value to display
	//
	// required: true
	// example: UP
	Short string `json:"short"`

	// Long description of the value
	//
	// required: true
	// example: All good
	Long string `json:"long"`

	// Status OK, WARN, ERROR or empty when unknown
	//
	// required: true
	// enum: OK,WARN,ERROR,
	Status string `json:"status"`

	// Link to details
	//
	// required: false
	// example: /alertmanager/#/alerts
	Link string `json:"link,omitempty"`
}

// Gauge a percentage measured by a Prometheus query
// swagger:model Gauge
type Gauge struct {
	// Title of the gauge
	//
	// required: true
	// example: CPU Usage
	Title string `json:"title"`

	// Value percentage, not set when there is no data
	//
	// required: false
	Value *float64 `json:"value,omitempty"`

	// Status OK, WARN, ERROR or empty when unknown
	//
	// required: true
	Status string `json:"status"`

	// WarnThreshold value from which the status is WARN
	//
	// required: true
	WarnThreshold float64 `json:"warnThreshold"`

	// ErrorThreshold value from which the status is ERROR
	//
	// required: true
	ErrorThreshold float64 `json:"errorThreshold"`

	// Invert thresholds apply to 100 - value
	//
	// required: true
	Invert bool `json:"invert"`

	// Message when the value could not be read
	//
	// required: false
	Message string `json:"message,omitempty"`
}

// Section group of statuses and gauges
// swagger:model Section
type Section struct {
	// Title of the section
	//
	// required: true
	// example: Cluster Health
	Title string `json:"title"`

	// DashboardLink link to the Grafana dashboard of the section
	//
	// required: false
	DashboardLink string `json:"dashboardLink,omitempty"`

	// Statuses of the section
	//
	// required: false
	Statuses []Status `json:"statuses,omitempty"`

	// Gauges of the section
	//
	// required: false
	Gauges []Gauge `json:"gauges,omitempty"`
}
