// Package mock provides a mock carrier implementation for testing.
package mock

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tournevent/dhlbridge/pkg/carrier"
)

// Client is a mock carrier for testing.
type Client struct {
	name string
}

// New creates a new mock carrier.
func New(name string) *Client {
	return &Client{name: name}
}

// Name returns the carrier name.
func (c *Client) Name() string {
	return c.name
}

// GetRates returns canned rate estimates.
func (c *Client) GetRates(ctx context.Context, req *carrier.RateRequest) ([]carrier.RateEstimate, error) {
	return []carrier.RateEstimate{
		{
			Origin:      req.Origin,
			Destination: req.Destination,
			Carrier:     c.name,
			ServiceName: fmt.Sprintf("%s Domestic", c.name),
			ServiceCode: "N",
			Currency:    "MXN",
			TotalPrice:  decimal.NewFromFloat(150.00),
		},
		{
			Origin:      req.Origin,
			Destination: req.Destination,
			Carrier:     c.name,
			ServiceName: fmt.Sprintf("%s Express", c.name),
			ServiceCode: "E",
			Currency:    "MXN",
			TotalPrice:  decimal.NewFromFloat(289.50),
		},
	}, nil
}

// CreateShipment is not supported by the mock carrier.
func (c *Client) CreateShipment(ctx context.Context, req *carrier.ShipmentRequest) (*carrier.ShipmentResponse, error) {
	return nil, fmt.Errorf("%s: %w", c.name, carrier.ErrNotSupported)
}

// CancelShipment is not supported by the mock carrier.
func (c *Client) CancelShipment(ctx context.Context, shipmentID string) error {
	return fmt.Errorf("%s: %w", c.name, carrier.ErrNotSupported)
}

// GetTracking is not supported by the mock carrier.
func (c *Client) GetTracking(ctx context.Context, trackingNumber string) ([]carrier.TrackingEvent, error) {
	return nil, fmt.Errorf("%s: %w", c.name, carrier.ErrNotSupported)
}

var _ carrier.Carrier = (*Client)(nil)
