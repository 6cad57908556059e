package utils

import (
	"net/http"
	"slices"

	radixmodels "github.com/equinor/radix-common/models"
	"github.com/equinor/radix-console-api/api/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	tektonclient "github.com/tektoncd/pipeline/pkg/client/clientset/versioned"
	"k8s.io/client-go/kubernetes"
	restclient "k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
)

// KubeUtil Interface to be mocked in tests
type KubeUtil interface {
	GetOutClusterKubernetesClient(string, ...RestClientConfigOption) (kubernetes.Interface, tektonclient.Interface)
	GetOutClusterKubernetesClientWithImpersonation(string, radixmodels.Impersonation, ...RestClientConfigOption) (kubernetes.Interface, tektonclient.Interface)
	GetInClusterKubernetesClient(...RestClientConfigOption) (kubernetes.Interface, tektonclient.Interface)
	IsUseOutClusterClient() bool
}

// RestClientConfigOption Options for the Kubernetes REST client config
type RestClientConfigOption func(*restclient.Config)

// WithQPS Sets QPS of the client
func WithQPS(qps float32) RestClientConfigOption {
	return func(config *restclient.Config) {
		config.QPS = qps
	}
}

// WithBurst Sets burst of the client
func WithBurst(burst int) RestClientConfigOption {
	return func(config *restclient.Config) {
		config.Burst = burst
	}
}

type kubeUtil struct {
	useOutClusterClient bool
	kubernetesApiHost   string
	defaultOptions      []RestClientConfigOption
}

var (
	nrRequests = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "console_api_k8s_request_duration_seconds",
		Help:    "request duration done to k8s api in seconds bucket",
		Buckets: metrics.DefaultBuckets(),
	}, []string{"code", "method"})
)

// NewKubeUtil Constructor. The default options apply to all clients, before the options of each call
func NewKubeUtil(useOutClusterClient bool, kubernetesApiHost string, defaultOptions ...RestClientConfigOption) KubeUtil {
	return &kubeUtil{
		useOutClusterClient: useOutClusterClient,
		kubernetesApiHost:   kubernetesApiHost,
		defaultOptions:      defaultOptions,
	}
}

// IsUseOutClusterClient Indicates if the bearer token of the request is used to access the Kubernetes API
func (ku *kubeUtil) IsUseOutClusterClient() bool {
	return ku.useOutClusterClient
}

// GetOutClusterKubernetesClient Gets a kubernetes client using the bearer token from the console api client
func (ku *kubeUtil) GetOutClusterKubernetesClient(token string, options ...RestClientConfigOption) (kubernetes.Interface, tektonclient.Interface) {
	return ku.GetOutClusterKubernetesClientWithImpersonation(token, radixmodels.Impersonation{}, options...)
}

// GetOutClusterKubernetesClientWithImpersonation Gets a kubernetes client using the bearer token from the console api client, impersonating the given user and groups
func (ku *kubeUtil) GetOutClusterKubernetesClientWithImpersonation(token string, impersonation radixmodels.Impersonation, options ...RestClientConfigOption) (kubernetes.Interface, tektonclient.Interface) {
	if ku.useOutClusterClient {
		config := getOutClusterClientConfig(ku.kubernetesApiHost, token, impersonation, slices.Concat(ku.defaultOptions, options))
		return getKubernetesClientFromConfig(config)
	}

	return ku.GetInClusterKubernetesClient(options...)
}

// GetInClusterKubernetesClient Gets a kubernetes client using the config of the running pod
func (ku *kubeUtil) GetInClusterKubernetesClient(options ...RestClientConfigOption) (kubernetes.Interface, tektonclient.Interface) {
	config := getInClusterClientConfig(slices.Concat(ku.defaultOptions, options))
	return getKubernetesClientFromConfig(config)
}

func getOutClusterClientConfig(host, token string, impersonation radixmodels.Impersonation, options []RestClientConfigOption) *restclient.Config {
	kubeConfig := &restclient.Config{
		Host:        host,
		BearerToken: token,
		TLSClientConfig: restclient.TLSClientConfig{
			Insecure: true,
		},
	}

	if impersonation.PerformImpersonation() {
		kubeConfig.Impersonate = restclient.ImpersonationConfig{
			UserName: impersonation.User,
			Groups:   impersonation.Groups,
		}
	}

	return addCommonConfigs(kubeConfig, options)
}

func getInClusterClientConfig(options []RestClientConfigOption) *restclient.Config {
	config, err := restclient.InClusterConfig()
	if err != nil {
		loadingRules := clientcmd.NewDefaultClientConfigLoadingRules()
		config, err = clientcmd.NewNonInteractiveDeferredLoadingClientConfig(loadingRules, &clientcmd.ConfigOverrides{}).ClientConfig()
		if err != nil {
			log.Fatal().Err(err).Msg("getClusterConfig InClusterConfig")
		}
	}

	return addCommonConfigs(config, options)
}

func addCommonConfigs(config *restclient.Config, options []RestClientConfigOption) *restclient.Config {
	for _, option := range options {
		option(config)
	}
	config.WrapTransport = func(rt http.RoundTripper) http.RoundTripper {
		return promhttp.InstrumentRoundTripperDuration(nrRequests, rt)
	}
	return config
}

func getKubernetesClientFromConfig(config *restclient.Config) (kubernetes.Interface, tektonclient.Interface) {
	client, err := kubernetes.NewForConfig(config)
	if err != nil {
		log.Fatal().Err(err).Msg("getClusterConfig k8s client")
	}

	tektonClient, err := tektonclient.NewForConfig(config)
	if err != nil {
		log.Fatal().Err(err).Msg("getClusterConfig tekton client")
	}

	return client, tektonClient
}
