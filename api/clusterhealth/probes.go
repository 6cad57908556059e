package clusterhealth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/equinor/radix-console-api/api/utils/logs"
	"github.com/rs/zerolog"
	"k8s.io/client-go/kubernetes"
)

const consoleProbeTimeout = 10 * time.Second

// KubernetesProbe reads the health of the Kubernetes API server
type KubernetesProbe interface {
	// Healthz returns the body of the /healthz endpoint
	Healthz(ctx context.Context, client kubernetes.Interface) (string, error)
}

// KubernetesProbeFunc adapts a function to a KubernetesProbe
type KubernetesProbeFunc func(ctx context.Context, client kubernetes.Interface) (string, error)

// Healthz calls fn
func (fn KubernetesProbeFunc) Healthz(ctx context.Context, client kubernetes.Interface) (string, error) {
	return fn(ctx, client)
}

// NewKubernetesProbe Constructor
func NewKubernetesProbe() KubernetesProbe {
	return KubernetesProbeFunc(func(ctx context.Context, client kubernetes.Interface) (string, error) {
		body, err := client.Discovery().RESTClient().Get().AbsPath("/healthz").DoRaw(ctx)
		return string(body), err
	})
}

// ConsoleProbe checks that the console service is reachable
type ConsoleProbe interface {
	Check(ctx context.Context) error
}

type consoleProbe struct {
	healthUrl string
	client    *http.Client
}

// NewConsoleProbe Constructor
func NewConsoleProbe(healthUrl string) ConsoleProbe {
	roundTripLogger := logs.NewRoundtripLogger(func(e *zerolog.Event) {
		e.Str("probe", probeConsole)
	})
	return &consoleProbe{
		healthUrl: healthUrl,
		client: &http.Client{
			Transport: roundTripLogger(http.DefaultTransport),
			Timeout:   consoleProbeTimeout,
		},
	}
}

// Check requires a successful response with a JSON body
func (p *consoleProbe) Check(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.healthUrl, nil)
	if err != nil {
		return err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("console health responded with status %d", resp.StatusCode)
	}
	var body interface{}
	return json.NewDecoder(resp.Body).Decode(&body)
}
