package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"go.opentelemetry.io/otel/attribute"
)

// Config holds all configuration for the service.
type Config struct {
	// Server
	Port     int    `envconfig:"PORT" default:"80"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// DHL XML-PI
	DHLSiteID             string `envconfig:"DHL_SITE_ID"`
	DHLPassword           string `envconfig:"DHL_PASSWORD"`
	DHLBaseURL            string `envconfig:"DHL_BASE_URL" default:"http://xmlpitest-ea.dhl.com/XMLShippingServlet"`
	DHLSettlementCurrency string `envconfig:"DHL_SETTLEMENT_CURRENCY" default:"MXN"`
	DHLTimezone           string `envconfig:"DHL_TIMEZONE" default:"America/Hermosillo"`
	DHLPaymentCountry     string `envconfig:"DHL_PAYMENT_COUNTRY" default:"MX"`
	DHLUseMock            bool   `envconfig:"DHL_USE_MOCK" default:"false"`

	// Telemetry
	OTELEnabled  bool   `envconfig:"OTEL_ENABLED" default:"true"`
	OTELEndpoint string `envconfig:"OTEL_ENDPOINT" default:"http://jaeger-collector.claude.svc.cluster.local:4318"`
	ServiceName  string `envconfig:"SERVICE_NAME" default:"dhl-bridge"`
	Version      string `envconfig:"SERVICE_VERSION" default:"0.0.1"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return &cfg, nil
}

// Attributes returns OpenTelemetry attributes for this configuration.
func (c *Config) Attributes() []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("service.name", c.ServiceName),
		attribute.String("service.version", c.Version),
		attribute.String("dhl.settlement_currency", c.DHLSettlementCurrency),
		attribute.String("dhl.timezone", c.DHLTimezone),
		attribute.Bool("dhl.use_mock", c.DHLUseMock),
	}
}
