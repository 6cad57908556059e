package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	requestDurationMetric       = "console_api_request_duration_seconds"
	requestDurationBucketMetric = "console_api_request_duration_seconds_hist"
	logViewersOpenMetric        = "console_api_log_viewers_open"
	logViewerSelectionsMetric   = "console_api_log_viewer_selections_total"
	clusterProbesMetric         = "console_api_cluster_probes_total"

	pathLabel   = "path"
	methodLabel = "method"
	probeLabel  = "probe"
	statusLabel = "status"
)

var (
	resTime = promauto.NewSummaryVec(
		prometheus.SummaryOpts{
			Name:       requestDurationMetric,
			Help:       "Request duration seconds",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		},
		[]string{pathLabel, methodLabel},
	)
	resTimeBucket = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    requestDurationBucketMetric,
			Help:    "Request duration seconds bucket",
			Buckets: DefaultBuckets(),
		},
		[]string{pathLabel, methodLabel},
	)
	logViewersOpen = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: logViewersOpenMetric,
			Help: "The number of open pipeline run log viewers",
		})
	logViewerSelections = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: logViewerSelectionsMetric,
			Help: "The total number of task runs selected in log viewers",
		})
	clusterProbes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: clusterProbesMetric,
			Help: "The total number of cluster overview probes by result status",
		}, []string{probeLabel, statusLabel})
)

func DefaultBuckets() []float64 {
	return []float64{0.03, 0.1, 0.3, 1, 2, 3, 5, 10}
}

// AddRequestDuration Add request duration for given endpoint
func AddRequestDuration(path, method string, duration time.Duration) {
	resTime.WithLabelValues(path, method).Observe(duration.Seconds())
	resTimeBucket.WithLabelValues(path, method).Observe(duration.Seconds())
}

// SetLogViewersOpen Set the number of open log viewers
func SetLogViewersOpen(count int) {
	logViewersOpen.Set(float64(count))
}

// AddLogViewerSelection A task run was selected in a log viewer
func AddLogViewerSelection() {
	logViewerSelections.Inc()
}

// AddClusterProbe A cluster overview probe completed with the status, an empty status is counted as unknown
func AddClusterProbe(probe, status string) {
	if len(status) == 0 {
		status = "UNKNOWN"
	}
	clusterProbes.With(prometheus.Labels{probeLabel: probe, statusLabel: status}).Inc()
}
