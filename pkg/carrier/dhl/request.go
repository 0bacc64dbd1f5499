package dhl

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"time"

	"github.com/tournevent/dhlbridge/pkg/carrier"
)

// DHL XML-PI namespace identities. The servlet validates the request against
// this exact schema identity, so these are compatibility-significant.
const (
	dctNamespace          = "http://www.dhl.com"
	dctDatatypesNamespace = "http://www.dhl.com/datatypes"
	dctRequestNamespace   = "http://www.dhl.com/DCTRequestdatatypes"
	xsiNamespace          = "http://www.w3.org/2001/XMLSchema-instance"

	defaultSchemaLocation = "http://www.dhl.com DCT-req.xsd"
)

// Fixed booking conventions of the rate quote protocol. Quotes are always for
// next-day pickup with a 24h ready window, one piece, metric units.
const (
	readyTime     = "PT24H00M"
	dimensionUnit = "CM"
	weightUnit    = "KG"
	pieceCount    = 1
	notDutiable   = "N"
)

// ============================================================================
// XML request structures (DCT-req.xsd)
// ============================================================================

type dctRequest struct {
	XMLName        xml.Name `xml:"p:DCTRequest"`
	NamespaceP     string   `xml:"xmlns:p,attr"`
	NamespaceP1    string   `xml:"xmlns:p1,attr"`
	NamespaceP2    string   `xml:"xmlns:p2,attr"`
	NamespaceXSI   string   `xml:"xmlns:xsi,attr"`
	SchemaLocation string   `xml:"xsi:schemaLocation,attr"`
	GetQuote       getQuote `xml:"GetQuote"`
}

type getQuote struct {
	Request    requestHeader  `xml:"Request"`
	From       quoteLocation  `xml:"From"`
	BkgDetails bookingDetails `xml:"BkgDetails"`
	To         quoteLocation  `xml:"To"`
}

type requestHeader struct {
	ServiceHeader serviceHeader `xml:"ServiceHeader"`
}

type serviceHeader struct {
	MessageTime string `xml:"MessageTime"`
	SiteID      string `xml:"SiteID"`
	Password    string `xml:"Password"`
}

type quoteLocation struct {
	CountryCode string `xml:"CountryCode"`
	Postalcode  string `xml:"Postalcode"`
	City        string `xml:"City"`
	Suburb      string `xml:"Suburb,omitempty"`
}

type bookingDetails struct {
	PaymentCountryCode string `xml:"PaymentCountryCode"`
	Date               string `xml:"Date"`
	ReadyTime          string `xml:"ReadyTime"`
	DimensionUnit      string `xml:"DimensionUnit"`
	WeightUnit         string `xml:"WeightUnit"`
	NumberOfPieces     int    `xml:"NumberOfPieces"`
	ShipmentWeight     string `xml:"ShipmentWeight"`
	IsDutiable         string `xml:"IsDutiable"`
}

// ============================================================================
// Builder
// ============================================================================

// buildRateRequest produces the serialized GetQuote document. Construction is
// pure: no validation happens here beyond what the adapter already did, and
// malformed location fields pass through untouched.
func buildRateRequest(req *carrier.RateRequest, cfg Config, loc *time.Location, now time.Time) ([]byte, error) {
	schemaLocation := cfg.SchemaLocation
	if schemaLocation == "" {
		schemaLocation = defaultSchemaLocation
	}

	doc := dctRequest{
		NamespaceP:     dctNamespace,
		NamespaceP1:    dctDatatypesNamespace,
		NamespaceP2:    dctRequestNamespace,
		NamespaceXSI:   xsiNamespace,
		SchemaLocation: schemaLocation,
		GetQuote: getQuote{
			Request: requestHeader{
				ServiceHeader: serviceHeader{
					MessageTime: now.Format(time.RFC3339),
					SiteID:      req.Credentials.Login,
					Password:    req.Credentials.Password,
				},
			},
			From: quoteLocation{
				CountryCode: req.Origin.CountryCode,
				Postalcode:  req.Origin.PostalCode,
				City:        req.Origin.City,
			},
			BkgDetails: bookingDetails{
				PaymentCountryCode: cfg.PaymentCountryCode,
				Date:               shipDate(loc, now),
				ReadyTime:          readyTime,
				DimensionUnit:      dimensionUnit,
				WeightUnit:         weightUnit,
				NumberOfPieces:     pieceCount,
				ShipmentWeight:     formatWeight(req.Package.Kilograms),
				IsDutiable:         notDutiable,
			},
			To: quoteLocation{
				CountryCode: req.Destination.CountryCode,
				Postalcode:  req.Destination.PostalCode,
				City:        req.Destination.City,
				Suburb:      req.Destination.Suburb,
			},
		},
	}

	body, err := xml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	return append([]byte(xml.Header), body...), nil
}

// shipDate is tomorrow in the carrier's operating timezone. Quotes are always
// for next-day pickup.
func shipDate(loc *time.Location, now time.Time) string {
	return now.In(loc).AddDate(0, 0, 1).Format("2006-01-02")
}

func formatWeight(kilograms float64) string {
	return strconv.FormatFloat(kilograms, 'f', -1, 64)
}
