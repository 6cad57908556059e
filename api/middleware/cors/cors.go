package cors

import (
	"fmt"

	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func CreateMiddleware(clusterName, dnsZone string) *cors.Cors {

	corsOptions := cors.Options{
		AllowedOrigins: []string{
			"http://localhost:3000",
			"http://localhost:3001",
			"http://127.0.0.1:3000",
			fmt.Sprintf("https://console.%s", dnsZone),
			fmt.Sprintf("https://console.%s.%s", clusterName, dnsZone),
		},
		AllowCredentials: true,
		MaxAge:           600,
		AllowedHeaders:   []string{"Accept", "Content-Type", "Content-Length", "Accept-Encoding", "X-CSRF-Token", "Authorization", "Impersonate-User", "Impersonate-Group"},
		AllowedMethods:   []string{"GET", "PUT", "POST", "OPTIONS", "DELETE"},
		ExposedHeaders:   []string{"X-Request-Id"},
	}

	if zerolog.GlobalLevel() <= zerolog.DebugLevel {
		// debugging mode
		corsOptions.Debug = true
		corsLogger := log.Logger.With().Str("pkg", "cors-middleware").Logger()
		corsOptions.Logger = &corsLogger
		// necessary header to allow ajax requests directly from the console app in browser
		corsOptions.AllowedHeaders = append(corsOptions.AllowedHeaders, "X-Requested-With")
	}

	return cors.New(corsOptions)
}
