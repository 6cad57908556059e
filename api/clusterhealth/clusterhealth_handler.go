package clusterhealth

import (
	"context"
	"errors"
	"math"
	"net/http"
	"sort"
	"strconv"

	radixutils "github.com/equinor/radix-common/utils"
	"github.com/equinor/radix-common/utils/pointers"
	"github.com/equinor/radix-common/utils/slice"
	"github.com/equinor/radix-console-api/api/clusterhealth/models"
	"github.com/equinor/radix-console-api/api/metrics"
	"github.com/equinor/radix-console-api/api/metrics/prometheus"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	corev1 "k8s.io/api/core/v1"
	k8serrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
)

const (
	probeKubernetes     = "kubernetes"
	probeConsole        = "console"
	probeAlerts         = "alerts"
	probeCrashloops     = "crashlooping_pods"
	probeGauge          = "gauge"
	consoleNotReachable = "The console service cannot be reached"

	alertsQuery     = `sum(ALERTS{alertstate="firing", alertname!="DeadMansSwitch"})`
	crashloopsQuery = `count(increase(kube_pod_container_status_restarts[1h]) > 5)`
)

// HandlerOptions services the cluster overview reads from
type HandlerOptions struct {
	PrometheusClient prometheus.Client
	KubernetesProbe  KubernetesProbe
	ConsoleProbe     ConsoleProbe
	EventsLimit      int
}

// ClusterHealthHandler Instance variables
type ClusterHealthHandler struct {
	kubeClient kubernetes.Interface
	options    HandlerOptions
}

// Init Constructor
func Init(kubeClient kubernetes.Interface, options HandlerOptions) ClusterHealthHandler {
	return ClusterHealthHandler{kubeClient: kubeClient, options: options}
}

// GetClusterOverview Gets the cluster overview. The overview is limited to the Kubernetes API and
// console statuses when the user is forbidden to query Prometheus
func (h ClusterHealthHandler) GetClusterOverview(ctx context.Context) (*models.ClusterOverview, error) {
	limited := h.isPrometheusForbidden(ctx)

	var kubernetesStatus, consoleStatus, alertsStatus, crashloopsStatus models.Status
	var events []models.Event
	var eventsMessage string
	controlPlane, capacity := controlPlaneGauges(), capacityGauges()

	var g errgroup.Group
	g.Go(func() error {
		kubernetesStatus = h.getKubernetesStatus(ctx)
		return nil
	})
	g.Go(func() error {
		consoleStatus = h.getConsoleStatus(ctx)
		return nil
	})
	g.Go(func() error {
		var err error
		events, err = h.getEvents(ctx)
		if err != nil {
			log.Ctx(ctx).Warn().Err(err).Msg("failed to list cluster events")
			eventsMessage = err.Error()
		}
		return nil
	})
	if !limited {
		g.Go(func() error {
			alertsStatus = h.getQueryStatus(ctx, probeAlerts, "Alerts Firing", "Alerts", alertsQuery, "/alertmanager/#/alerts")
			return nil
		})
		g.Go(func() error {
			crashloopsStatus = h.getQueryStatus(ctx, probeCrashloops, "Crashlooping Pods", "Pods", crashloopsQuery, "/all-namespaces/pods?rowFilter-pod-status=CrashLoopBackOff")
			return nil
		})
		for i := range controlPlane {
			g.Go(func() error {
				h.readGauge(ctx, &controlPlane[i].gauge, controlPlane[i].query)
				return nil
			})
		}
		for i := range capacity {
			g.Go(func() error {
				h.readGauge(ctx, &capacity[i].gauge, capacity[i].query)
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	overview := &models.ClusterOverview{
		Limited:       limited,
		Events:        events,
		EventsMessage: eventsMessage,
	}
	if limited {
		overview.Sections = []models.Section{
			{Title: "Cluster Health", Statuses: []models.Status{kubernetesStatus, consoleStatus}},
		}
		return overview, nil
	}

	overview.Sections = []models.Section{
		{
			Title:         "Cluster Health",
			DashboardLink: "/grafana/dashboard/db/kubernetes-cluster-health?orgId=1",
			Statuses:      []models.Status{kubernetesStatus, consoleStatus, alertsStatus, crashloopsStatus},
		},
		{
			Title:         "Control Plane Status",
			DashboardLink: "/grafana/dashboard/db/kubernetes-control-plane-status?orgId=1",
			Gauges:        slice.Map(controlPlane, func(q gaugeQuery) models.Gauge { return q.gauge }),
		},
		{
			Title:         "Capacity Planning",
			DashboardLink: "/grafana/dashboard/db/kubernetes-capacity-planning?orgId=1",
			Gauges:        slice.Map(capacity, func(q gaugeQuery) models.Gauge { return q.gauge }),
		},
	}
	return overview, nil
}

// isPrometheusForbidden only a 403 from Prometheus limits the overview, any other outcome gives the full overview
func (h ClusterHealthHandler) isPrometheusForbidden(ctx context.Context) bool {
	statusCode, err := h.options.PrometheusClient.GetQueryStatusCode(ctx, alertsQuery)
	if err != nil {
		log.Ctx(ctx).Debug().Err(err).Msg("failed to probe Prometheus permissions")
		return false
	}
	return statusCode == http.StatusForbidden
}

func (h ClusterHealthHandler) getKubernetesStatus(ctx context.Context) models.Status {
	status := models.Status{Title: "Kubernetes API"}
	body, err := h.options.KubernetesProbe.Healthz(ctx, h.kubeClient)
	switch {
	case err != nil:
		var apiStatus k8serrors.APIStatus
		status = withErrorStatus(status, err, errors.As(err, &apiStatus))
	case body == "ok":
		status.Short, status.Long, status.Status = "UP", "All good", models.StatusOK
	default:
		status.Short, status.Long, status.Status = "ERROR", body, models.StatusError
	}
	metrics.AddClusterProbe(probeKubernetes, status.Status)
	return status
}

func (h ClusterHealthHandler) getConsoleStatus(ctx context.Context) models.Status {
	status := models.Status{Title: "Console", Short: "UP", Long: "All good", Status: models.StatusOK}
	if err := h.options.ConsoleProbe.Check(ctx); err != nil {
		log.Ctx(ctx).Debug().Err(err).Msg("console health check failed")
		status.Short, status.Long, status.Status = "ERROR", consoleNotReachable, models.StatusError
	}
	metrics.AddClusterProbe(probeConsole, status.Status)
	return status
}

func (h ClusterHealthHandler) getQueryStatus(ctx context.Context, probe, title, name, query, link string) models.Status {
	status := models.Status{Title: title, Link: link, Long: name}
	value, _, err := h.options.PrometheusClient.QueryValue(ctx, query)
	if err != nil {
		status = withErrorStatus(status, err, prometheus.IsResponseError(err))
	} else {
		count := truncate(value)
		status.Short = strconv.Itoa(count)
		status.Status = models.StatusOK
		if count != 0 {
			status.Status = models.StatusWarn
		}
	}
	metrics.AddClusterProbe(probe, status.Status)
	return status
}

func (h ClusterHealthHandler) readGauge(ctx context.Context, gauge *models.Gauge, query string) {
	value, found, err := h.options.PrometheusClient.QueryValue(ctx, query)
	switch {
	case err != nil:
		gauge.Message = prometheus.ErrorMessage(err)
		gauge.Status = models.StatusError
		if prometheus.IsResponseError(err) {
			gauge.Status = models.StatusUnknown
		}
	case !found || math.IsNaN(value):
		gauge.Status = models.StatusUnknown
	default:
		gauge.Value = pointers.Ptr(value)
		gauge.Status = GetGaugeStatus(value, gauge.WarnThreshold, gauge.ErrorThreshold, gauge.Invert)
	}
	metrics.AddClusterProbe(probeGauge, gauge.Status)
}

func (h ClusterHealthHandler) getEvents(ctx context.Context) ([]models.Event, error) {
	eventList, err := h.kubeClient.CoreV1().Events(metav1.NamespaceAll).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, err
	}

	items := eventList.Items
	sort.SliceStable(items, func(i, j int) bool {
		return eventTime(&items[i]).After(eventTime(&items[j]).Time)
	})
	if h.options.EventsLimit > 0 && len(items) > h.options.EventsLimit {
		items = items[:h.options.EventsLimit]
	}

	return slice.Map(items, func(ev corev1.Event) models.Event {
		lastTimestamp := eventTime(&ev)
		return models.Event{
			Namespace:          ev.GetNamespace(),
			Type:               ev.Type,
			Reason:             ev.Reason,
			Message:            ev.Message,
			InvolvedObjectKind: ev.InvolvedObject.Kind,
			InvolvedObjectName: ev.InvolvedObject.Name,
			Count:              ev.Count,
			LastTimestamp:      radixutils.FormatTime(&lastTimestamp),
		}
	}), nil
}

// GetGaugeStatus ERROR from the error threshold, WARN from the warn threshold, else OK.
// Thresholds of an inverted gauge apply to 100 - value
func GetGaugeStatus(value, warnThreshold, errorThreshold float64, invert bool) string {
	if invert {
		value = 100 - value
	}
	switch {
	case value >= errorThreshold:
		return models.StatusError
	case value >= warnThreshold:
		return models.StatusWarn
	default:
		return models.StatusOK
	}
}

// withErrorStatus an error in the response is unknown (gray), a failed request is an ERROR
func withErrorStatus(status models.Status, err error, isResponseError bool) models.Status {
	status.Long = prometheus.ErrorMessage(err)
	if isResponseError {
		status.Short, status.Status = "?", models.StatusUnknown
		return status
	}
	status.Short, status.Status = "ERROR", models.StatusError
	return status
}

func truncate(value float64) int {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	return int(value)
}

func eventTime(ev *corev1.Event) metav1.Time {
	switch {
	case !ev.LastTimestamp.IsZero():
		return ev.LastTimestamp
	case !ev.EventTime.IsZero():
		return metav1.Time{Time: ev.EventTime.Time}
	default:
		return ev.CreationTimestamp
	}
}
