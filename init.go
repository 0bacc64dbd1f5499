package main

import (
	"context"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/trace"

	"github.com/tournevent/dhlbridge/internal/config"
	"github.com/tournevent/dhlbridge/internal/telemetry"
	"github.com/tournevent/dhlbridge/pkg/carrier"
	"github.com/tournevent/dhlbridge/pkg/carrier/dhl"
)

func loadConfig() (*config.Config, error) {
	return config.Load()
}

func initLogger(level string) (*otelzap.Logger, error) {
	return telemetry.NewLogger(level)
}

func initTracer(ctx context.Context, cfg *config.Config) (trace.Tracer, func(context.Context) error, error) {
	if !cfg.OTELEnabled {
		return nil, func(context.Context) error { return nil }, nil
	}

	return telemetry.InitTracer(ctx, cfg.OTELEndpoint, cfg.ServiceName, cfg.Version)
}

func initCarrierRegistry(cfg *config.Config, logger *otelzap.Logger, tracer trace.Tracer) (*carrier.Registry, error) {
	registry := carrier.NewRegistry()

	client, err := dhl.New(dhl.Config{
		URL:                cfg.DHLBaseURL,
		SettlementCurrency: cfg.DHLSettlementCurrency,
		Timezone:           cfg.DHLTimezone,
		PaymentCountryCode: cfg.DHLPaymentCountry,
		UseMock:            cfg.DHLUseMock,
	}, logger, tracer)
	if err != nil {
		return nil, err
	}
	registry.Register(client)

	return registry, nil
}
