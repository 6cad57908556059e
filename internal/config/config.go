package config

import (
	"errors"
	"net/url"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Port                int     `envconfig:"PORT" default:"3002" desc:"Port where API will be served"`
	MetricsPort         int     `envconfig:"METRICS_PORT" default:"9090"  desc:"Port where Metrics will be served"`
	LogLevel            string  `envconfig:"LOG_LEVEL" default:"info"`
	LogPrettyPrint      bool    `envconfig:"LOG_PRETTY" default:"false"`
	UseOutClusterClient bool    `envconfig:"USE_OUT_CLUSTER_CLIENT" default:"true" desc:"Use the bearer token of the request when calling the Kubernetes API"`
	KubernetesApiHost   string  `envconfig:"K8S_API_HOST" default:"https://kubernetes.default.svc"`
	KubeApiQPS          float32 `envconfig:"KUBE_API_QPS" default:"0" desc:"QPS of the Kubernetes client, 0 for client default"`
	KubeApiBurst        int     `envconfig:"KUBE_API_BURST" default:"0" desc:"Burst of the Kubernetes client, 0 for client default"`

	ClusterName    string `envconfig:"CLUSTER_NAME" required:"true"`
	DNSZone        string `envconfig:"DNS_ZONE" required:"true" desc:"DNS zone of the console, used for CORS origins"`
	AzureOidc      Oidc   `envconfig:"OIDC_AZURE" desc:"Issuer and audience of user tokens, required"`
	KubernetesOidc Oidc   `envconfig:"OIDC_KUBERNETES" desc:"Optional second issuer, for service account tokens"`

	PrometheusUrl              string `envconfig:"PROMETHEUS_URL" required:"true"`
	PrometheusForwardUserToken bool   `envconfig:"PROMETHEUS_FORWARD_USER_TOKEN" default:"true" desc:"Query Prometheus with the bearer token of the request"`
	ConsoleHealthUrl           string `envconfig:"CONSOLE_HEALTH_URL" required:"true" desc:"Health endpoint of the console service"`

	LogViewerMaxSessions int           `envconfig:"LOG_VIEWER_MAX_SESSIONS" default:"1000"`
	LogViewerSessionTTL  time.Duration `envconfig:"LOG_VIEWER_SESSION_TTL" default:"30m"`
	ClusterEventsLimit   int           `envconfig:"CLUSTER_EVENTS_LIMIT" default:"50"`
}

type Oidc struct {
	Issuer   url.URL `envconfig:"ISSUER"`
	Audience string  `envconfig:"AUDIENCE"`
}

// IsSet an issuer is configured
func (o Oidc) IsSet() bool {
	return len(o.Issuer.Host) > 0
}

// Validate the azure issuer is required, the kubernetes issuer needs an audience when set
func (c Config) Validate() error {
	var errs []error
	if !c.AzureOidc.IsSet() || len(c.AzureOidc.Audience) == 0 {
		errs = append(errs, errors.New("required keys OIDC_AZURE_ISSUER and OIDC_AZURE_AUDIENCE missing value"))
	}
	if c.KubernetesOidc.IsSet() && len(c.KubernetesOidc.Audience) == 0 {
		errs = append(errs, errors.New("required key OIDC_KUBERNETES_AUDIENCE missing value"))
	}
	return errors.Join(errs...)
}

func MustParse() Config {
	var s Config
	err := envconfig.Process("", &s)
	if err == nil {
		err = s.Validate()
	}
	if err != nil {
		_ = envconfig.Usage("", &s)
		log.Fatal().Msg(err.Error())
	}

	return s
}
