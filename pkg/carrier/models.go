package carrier

import (
	"time"

	"github.com/shopspring/decimal"
)

// Location identifies one end of a shipment. Values are passed through to the
// carrier as-is; the carrier's own schema validation is the authority on
// whether a postal code or city is acceptable.
type Location struct {
	CountryCode string // ISO 3166-1 alpha-2, e.g. "MX", "CA"
	PostalCode  string
	City        string
	Suburb      string // secondary address line (suburb/district), optional
}

// Package describes a physical parcel. Only the weight is required by the
// rating protocols; dimensions are optional.
type Package struct {
	Kilograms float64 // must be > 0

	// Optional dimensions in centimeters.
	LengthCM float64
	WidthCM  float64
	HeightCM float64
}

// Credentials is the login/password pair embedded in carrier request bodies.
// Transport-level confidentiality (HTTPS) is the transport's responsibility.
type Credentials struct {
	Login    string
	Password string
}

// RateRequest is the carrier-agnostic rate quote request.
type RateRequest struct {
	Origin      Location
	Destination Location
	Package     Package
	Credentials Credentials
}

// RateEstimate is one normalized shipping-service offer. TotalPrice is always
// expressed in the bridge's settlement currency, never in the carrier's
// native quote currency.
type RateEstimate struct {
	Origin      Location
	Destination Location
	Carrier     string
	ServiceName string
	ServiceCode string
	Currency    string
	TotalPrice  decimal.Decimal
}

// ShipmentRequest books a shipment for a previously quoted service.
type ShipmentRequest struct {
	Origin      Location
	Destination Location
	Package     Package
	Credentials Credentials
	ServiceCode string
	Reference   string
}

// ShipmentResponse is the result of booking a shipment.
type ShipmentResponse struct {
	ShipmentID     string
	TrackingNumber string
	ServiceName    string
	TotalCharged   decimal.Decimal
	Currency       string
}

// TrackingEvent is a single scan/checkpoint reported by the carrier.
type TrackingEvent struct {
	Timestamp   time.Time
	Description string
	Location    string
	Code        string
}
