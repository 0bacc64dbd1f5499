// Package dhl provides integration with the DHL XML-PI rating servlet.
package dhl

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/tournevent/dhlbridge/pkg/carrier"
)

const carrierName = "dhl"

// DefaultURL is the XML-PI test servlet.
const DefaultURL = "http://xmlpitest-ea.dhl.com/XMLShippingServlet"

// Config holds DHL configuration. Settlement currency, operating timezone,
// payment country, and schema identity vary per carrier deployment and are
// explicit inputs rather than literals.
type Config struct {
	URL                string
	SettlementCurrency string // all estimates are normalized into this currency
	Timezone           string // carrier operating timezone for ship dates
	PaymentCountryCode string
	SchemaLocation     string
	UseMock            bool
}

// Client is the DHL carrier bridge.
type Client struct {
	config Config
	poster XMLPoster
	loc    *time.Location
	logger *otelzap.Logger
	tracer trace.Tracer
}

// New creates a new DHL client. It fails if the configured operating
// timezone is unknown.
func New(cfg Config, logger *otelzap.Logger, tracer trace.Tracer) (*Client, error) {
	applyDefaults(&cfg)

	var poster XMLPoster
	if cfg.UseMock {
		poster = NewMockPoster()
	} else {
		poster = NewHTTPPoster(HTTPPosterConfig{
			URL:     cfg.URL,
			Timeout: 30 * time.Second,
		})
	}

	return newClient(cfg, poster, logger, tracer)
}

// NewWithPoster creates a new DHL client with a custom transport collaborator.
func NewWithPoster(cfg Config, poster XMLPoster, logger *otelzap.Logger, tracer trace.Tracer) (*Client, error) {
	applyDefaults(&cfg)
	return newClient(cfg, poster, logger, tracer)
}

func newClient(cfg Config, poster XMLPoster, logger *otelzap.Logger, tracer trace.Tracer) (*Client, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", cfg.Timezone, err)
	}

	return &Client{
		config: cfg,
		poster: poster,
		loc:    loc,
		logger: logger,
		tracer: tracer,
	}, nil
}

func applyDefaults(cfg *Config) {
	if cfg.URL == "" {
		cfg.URL = DefaultURL
	}
	if cfg.SettlementCurrency == "" {
		cfg.SettlementCurrency = "MXN"
	}
	if cfg.Timezone == "" {
		cfg.Timezone = "America/Hermosillo"
	}
	if cfg.PaymentCountryCode == "" {
		cfg.PaymentCountryCode = "MX"
	}
}

// Name returns the carrier name.
func (c *Client) Name() string {
	return carrierName
}

// GetRates fetches rate quotes from DHL. A single request yields a single
// attempt: no caching, no retry. The client holds no mutable state between
// calls, so concurrent use is safe as long as the poster is.
func (c *Client) GetRates(ctx context.Context, req *carrier.RateRequest) ([]carrier.RateEstimate, error) {
	if c.tracer != nil {
		var span trace.Span
		ctx, span = c.tracer.Start(ctx, "dhl.GetRates")
		defer span.End()
	}

	if err := validateRateRequest(req); err != nil {
		return nil, err
	}

	c.logger.Info("Getting DHL quotes",
		zap.String("origin_postal", req.Origin.PostalCode),
		zap.String("destination_postal", req.Destination.PostalCode),
		zap.Float64("kilograms", req.Package.Kilograms),
	)

	body, err := buildRateRequest(req, c.config, c.loc, time.Now())
	if err != nil {
		return nil, carrier.NewError(carrierName, carrier.KindValidation, "failed to build rate request").
			WithCause(err)
	}

	resp, err := c.poster.PostXML(ctx, body)
	if err != nil {
		c.logger.Error("DHL transport error", zap.Error(err))
		return nil, carrier.NewError(carrierName, carrier.KindTransport, "posting rate request").
			WithCause(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.httpFailure(resp)
	}

	estimates, err := parseRateResponse(resp.Body, req.Origin, req.Destination, c.config)
	if err != nil {
		c.logger.Error("DHL response error", zap.Error(err))
		return nil, err
	}

	c.logger.Info("DHL quotes parsed", zap.Int("estimates", len(estimates)))
	return estimates, nil
}

// httpFailure maps a non-2xx response. A body is still forwarded through the
// error parser so carrier diagnostic XML surfaces as a carrier error instead
// of a generic network failure; without a body this is a transport failure.
func (c *Client) httpFailure(resp *XMLResponse) error {
	if len(resp.Body) > 0 {
		if ce := parseErrorBody(resp.Body); ce != nil {
			c.logger.Warn("DHL carrier error",
				zap.Int("status", resp.StatusCode),
				zap.String("condition", ce.Code),
			)
			return ce.WithStatusCode(resp.StatusCode)
		}
		return carrier.NewError(carrierName, carrier.KindCarrier,
			fmt.Sprintf("carrier returned HTTP %d", resp.StatusCode)).
			WithStatusCode(resp.StatusCode).
			WithRawBody(resp.Body)
	}

	return carrier.NewError(carrierName, carrier.KindTransport,
		fmt.Sprintf("carrier returned HTTP %d with empty body", resp.StatusCode)).
		WithStatusCode(resp.StatusCode)
}

func validateRateRequest(req *carrier.RateRequest) error {
	if req.Credentials.Login == "" || req.Credentials.Password == "" {
		return carrier.NewError(carrierName, carrier.KindValidation, "login and password are required").
			WithCause(carrier.ErrMissingCredentials)
	}
	if req.Package.Kilograms <= 0 {
		return carrier.NewError(carrierName, carrier.KindValidation, "package weight must be positive").
			WithCause(carrier.ErrInvalidPackage)
	}
	return nil
}

// CreateShipment is not implemented for the XML-PI bridge yet. Booking uses
// the same builder/parser pattern against ship-val-global-req.xsd.
func (c *Client) CreateShipment(ctx context.Context, req *carrier.ShipmentRequest) (*carrier.ShipmentResponse, error) {
	return nil, fmt.Errorf("%s: create shipment: %w", carrierName, carrier.ErrNotSupported)
}

// CancelShipment is not implemented for the XML-PI bridge yet.
func (c *Client) CancelShipment(ctx context.Context, shipmentID string) error {
	return fmt.Errorf("%s: cancel shipment: %w", carrierName, carrier.ErrNotSupported)
}

// GetTracking is not implemented for the XML-PI bridge yet.
func (c *Client) GetTracking(ctx context.Context, trackingNumber string) ([]carrier.TrackingEvent, error) {
	return nil, fmt.Errorf("%s: tracking: %w", carrierName, carrier.ErrNotSupported)
}

var _ carrier.Carrier = (*Client)(nil)
