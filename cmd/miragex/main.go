package main

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rassi0429/miragex.app/internal/config"
	"github.com/rassi0429/miragex.app/internal/deploy"
	"github.com/rassi0429/miragex.app/internal/k8s"
	"github.com/rassi0429/miragex.app/internal/logger"
	"github.com/rassi0429/miragex.app/internal/web"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/sdk/metric"
)

func main() {
	cfg := config.New()

	log, err := logger.New(cfg.LogFormat, cfg.LogLevel)
	if err != nil {
		logrus.Fatal(err)
	}

	exporter, err := prometheus.New()
	if err != nil {
		log.Fatal(err)
	}
	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	meter := provider.Meter("github.com/rassi0429/miragex.app")

	errors, err := meter.Int64Counter("errors")
	if err != nil {
		log.Fatalf("creating error counter: %v", err)
	}

	platform, err := k8s.New(cfg.Namespace, cfg.Kubeconfig, errors, log.WithField("client", "k8s"))
	if err != nil {
		log.Fatal(err)
	}

	handler := web.New(platform, &deploy.TimestampGenerator{}, cfg.ContainerPort, log)

	corsMW := cors.New(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST"},
		AllowCredentials: true,
		Debug:            cfg.LogLevel == "debug",
	})

	router := handler.Routes()
	router.Handle("/metrics", promhttp.Handler())

	log.Printf("listening on http://%s:%s/", cfg.BindHost, cfg.Port)
	log.Fatal(http.ListenAndServe(cfg.BindHost+":"+cfg.Port, corsMW.Handler(router)))
}
