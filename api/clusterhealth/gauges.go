package clusterhealth

import "github.com/equinor/radix-console-api/api/clusterhealth/models"

const (
	defaultWarnThreshold  = 67
	defaultErrorThreshold = 92
)

type gaugeQuery struct {
	gauge models.Gauge
	query string
}

func newGaugeQuery(title, query string, warnThreshold, errorThreshold float64, invert bool) gaugeQuery {
	return gaugeQuery{
		gauge: models.Gauge{Title: title, WarnThreshold: warnThreshold, ErrorThreshold: errorThreshold, Invert: invert},
		query: query,
	}
}

func controlPlaneGauges() []gaugeQuery {
	return []gaugeQuery{
		newGaugeQuery("API Servers Up", `(sum(up{job="apiserver"} == 1) / count(up{job="apiserver"})) * 100`, 15, 50, true),
		newGaugeQuery("Controller Managers Up", `(sum(up{job="kube-controller-manager"} == 1) / count(up{job="kube-controller-manager"})) * 100`, 15, 50, true),
		newGaugeQuery("Schedulers Up", `(sum(up{job="kube-scheduler"} == 1) / count(up{job="kube-scheduler"})) * 100`, 15, 50, true),
		newGaugeQuery("API Request Success Rate", `sum(rate(apiserver_request_total{code=~"2.."}[5m])) / sum(rate(apiserver_request_total[5m])) * 100`, 15, 30, true),
	}
}

func capacityGauges() []gaugeQuery {
	return []gaugeQuery{
		newGaugeQuery("CPU Usage", `100 - (sum(rate(node_cpu_seconds_total{job="node-exporter",mode="idle"}[2m])) / count(node_cpu_seconds_total{job="node-exporter", mode="idle"})) * 100`, defaultWarnThreshold, defaultErrorThreshold, false),
		newGaugeQuery("Memory Usage", `((sum(node_memory_MemTotal_bytes) - sum(node_memory_MemFree_bytes) - sum(node_memory_Buffers_bytes) - sum(node_memory_Cached_bytes)) / sum(node_memory_MemTotal_bytes)) * 100`, defaultWarnThreshold, defaultErrorThreshold, false),
		newGaugeQuery("Disk Usage", `(sum(node_filesystem_size_bytes{device!="rootfs"}) - sum(node_filesystem_free_bytes{device!="rootfs"})) / sum(node_filesystem_size_bytes{device!="rootfs"}) * 100`, defaultWarnThreshold, defaultErrorThreshold, false),
		newGaugeQuery("Pod Usage", `100 - (sum(kube_node_status_capacity{resource="pods"}) - sum(kube_pod_info)) / sum(kube_node_status_capacity{resource="pods"}) * 100`, defaultWarnThreshold, defaultErrorThreshold, false),
	}
}
