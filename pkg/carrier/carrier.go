// Package carrier provides an abstraction layer for shipping carriers.
package carrier

import (
	"context"
)

// Carrier defines the interface that all shipping carrier bridges must implement.
type Carrier interface {
	// Name returns the carrier identifier (e.g., "dhl").
	Name() string

	// GetRates returns rate estimates for shipping a package between two
	// locations. An empty slice is a valid result and means no service is
	// available for the route/weight, not an error.
	GetRates(ctx context.Context, req *RateRequest) ([]RateEstimate, error)

	// CreateShipment books a shipment with the carrier.
	CreateShipment(ctx context.Context, req *ShipmentRequest) (*ShipmentResponse, error)

	// CancelShipment cancels a previously booked shipment.
	CancelShipment(ctx context.Context, shipmentID string) error

	// GetTracking retrieves tracking events for a shipment.
	GetTracking(ctx context.Context, trackingNumber string) ([]TrackingEvent, error)
}
