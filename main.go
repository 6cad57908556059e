// Console API Server.
// This is the API Server for the cluster console: pipeline run log navigation,
// cluster overview and container details.
//
//	Schemes: http, https
//	BasePath: /api/v1
//	Version: 1.0.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//
//	Security:
//	- bearer:
//
//	SecurityDefinitions:
//	bearer:
//	     type: apiKey
//	     name: Authorization
//	     in: header
//
// swagger:meta
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/equinor/radix-console-api/api/clusterhealth"
	"github.com/equinor/radix-console-api/api/containers"
	"github.com/equinor/radix-console-api/api/metrics/prometheus"
	"github.com/equinor/radix-console-api/api/pipelineruns"
	"github.com/equinor/radix-console-api/api/router"
	"github.com/equinor/radix-console-api/api/utils"
	"github.com/equinor/radix-console-api/api/utils/token"
	"github.com/equinor/radix-console-api/internal/config"
	"github.com/equinor/radix-console-api/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	// Force loading of needed authentication library
	_ "k8s.io/client-go/plugin/pkg/client/auth"
)

const shutdownTimeout = 10 * time.Second

func main() {
	c := config.MustParse()
	initLogger(c)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	controllers, err := getControllers(c)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize controllers")
	}

	validator, err := getTokenValidator(c)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create token validator")
	}

	kubeUtil := utils.NewKubeUtil(c.UseOutClusterClient, c.KubernetesApiHost, getKubeClientOptions(c)...)
	servers := []*http.Server{
		{
			Addr:    fmt.Sprintf(":%d", c.Port),
			Handler: router.NewAPIHandler(c.ClusterName, c.DNSZone, validator, kubeUtil, controllers...),
		},
		{
			Addr:    fmt.Sprintf(":%d", c.MetricsPort),
			Handler: router.NewMetricsHandler(),
		},
	}

	g, gCtx := errgroup.WithContext(ctx)
	for _, srv := range servers {
		g.Go(func() error {
			log.Ctx(ctx).Info().Msgf("Api is serving on address %s", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server on address %s failed: %w", srv.Addr, err)
			}
			return nil
		})
	}
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()
		for _, srv := range servers {
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Ctx(ctx).Warn().Err(err).Msgf("shutdown of server on address %s failed", srv.Addr)
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("stopped")
	}
	log.Info().Msg("stopped")
}

func initLogger(c config.Config) {
	logLevel, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || logLevel == zerolog.NoLevel {
		logLevel = zerolog.InfoLevel
	}

	var logWriter = os.Stderr
	if c.LogPrettyPrint {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: logWriter, TimeFormat: time.TimeOnly})
	} else {
		log.Logger = zerolog.New(logWriter)
	}
	zerolog.SetGlobalLevel(logLevel)
	log.Logger = log.Logger.With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &log.Logger

	if err != nil {
		log.Warn().Msgf("Invalid log level '%s', fallback to '%s'", c.LogLevel, logLevel.String())
	}
}

func getControllers(c config.Config) ([]models.Controller, error) {
	prometheusClient, err := prometheus.NewPrometheusClient(c.PrometheusUrl, c.PrometheusForwardUserToken)
	if err != nil {
		return nil, err
	}

	return []models.Controller{
		pipelineruns.NewPipelineRunController(pipelineruns.NewViewerStore(c.LogViewerMaxSessions, c.LogViewerSessionTTL)),
		clusterhealth.NewClusterHealthController(clusterhealth.HandlerOptions{
			PrometheusClient: prometheusClient,
			KubernetesProbe:  clusterhealth.NewKubernetesProbe(),
			ConsoleProbe:     clusterhealth.NewConsoleProbe(c.ConsoleHealthUrl),
			EventsLimit:      c.ClusterEventsLimit,
		}),
		containers.NewContainerController(),
	}, nil
}

func getTokenValidator(c config.Config) (token.ValidatorInterface, error) {
	azureValidator, err := token.NewValidator(c.AzureOidc.Issuer, c.AzureOidc.Audience)
	if err != nil {
		return nil, err
	}
	if !c.KubernetesOidc.IsSet() {
		return azureValidator, nil
	}

	kubernetesValidator, err := token.NewValidator(c.KubernetesOidc.Issuer, c.KubernetesOidc.Audience)
	if err != nil {
		return nil, err
	}
	return token.NewChainedValidator(azureValidator, kubernetesValidator), nil
}

func getKubeClientOptions(c config.Config) []utils.RestClientConfigOption {
	var options []utils.RestClientConfigOption
	if c.KubeApiQPS > 0 {
		options = append(options, utils.WithQPS(c.KubeApiQPS))
	}
	if c.KubeApiBurst > 0 {
		options = append(options, utils.WithBurst(c.KubeApiBurst))
	}
	return options
}
