package dhl

import (
	"encoding/xml"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tournevent/dhlbridge/pkg/carrier"
)

// ============================================================================
// XML response structures
//
// Element tags are deliberately unqualified: the carrier mixes prefixed and
// unprefixed namespaces inconsistently across elements, and encoding/xml
// matches unqualified tags by local name regardless of namespace. Prefixed
// and unprefixed variants therefore parse identically.
// ============================================================================

type rateResponseDocument struct {
	XMLName          xml.Name
	GetQuoteResponse *quoteResponse `xml:"GetQuoteResponse"`
}

type quoteResponse struct {
	BkgDetails quotedBookingDetails `xml:"BkgDetails"`
}

type quotedBookingDetails struct {
	QtdShp []quotedShipment `xml:"QtdShp"`
}

// quotedShipment is one quote line: a candidate shipping-service offer.
type quotedShipment struct {
	GlobalProductCode string              `xml:"GlobalProductCode"`
	ProductShortName  string              `xml:"ProductShortName"`
	CurrencyCode      string              `xml:"CurrencyCode"`
	ShippingCharge    string              `xml:"ShippingCharge"`
	QtdSInAdCur       []alternateCurrency `xml:"QtdSInAdCur"`
}

// alternateCurrency is one currency-alternative amount attached to a quote
// line (multi-currency quote).
type alternateCurrency struct {
	CurrencyCode string `xml:"CurrencyCode"`
	TotalAmount  string `xml:"TotalAmount"`
}

// errorResponseDocument matches the carrier's error body shape.
type errorResponseDocument struct {
	XMLName  xml.Name
	Response errorResponse `xml:"Response"`
}

type errorResponse struct {
	Status errorStatus `xml:"Status"`
}

type errorStatus struct {
	ActionStatus string           `xml:"ActionStatus"`
	Condition    []errorCondition `xml:"Condition"`
}

type errorCondition struct {
	ConditionCode string `xml:"ConditionCode"`
	ConditionData string `xml:"ConditionData"`
}

// ============================================================================
// Parser
// ============================================================================

// parseRateResponse turns a raw quote response body into normalized rate
// estimates. Quote lines that cannot be priced in the settlement currency,
// carry a non-positive charge, or lack required service identifiers are
// dropped; a single bad line never fails the whole quote set. Line order is
// preserved as returned by the carrier.
func parseRateResponse(raw []byte, origin, destination carrier.Location, cfg Config) ([]carrier.RateEstimate, error) {
	var doc rateResponseDocument
	if err := xml.Unmarshal(raw, &doc); err != nil {
		return nil, carrier.NewError(carrierName, carrier.KindNoQuotes, "no usable quote data returned").
			WithCause(err).WithRawBody(raw)
	}

	quote := doc.GetQuoteResponse
	if quote == nil && doc.XMLName.Local == "GetQuoteResponse" {
		// Some deployments return GetQuoteResponse as the document root.
		quote = &quoteResponse{}
		if err := xml.Unmarshal(raw, quote); err != nil {
			quote = nil
		}
	}
	if quote == nil {
		if ce := parseErrorBody(raw); ce != nil {
			return nil, ce
		}
		return nil, carrier.NewError(carrierName, carrier.KindNoQuotes, "no usable quote data returned").
			WithRawBody(raw)
	}

	lines := quote.BkgDetails.QtdShp
	estimates := make([]carrier.RateEstimate, 0, len(lines))
	for _, line := range lines {
		price, ok := settlementAmount(line, cfg.SettlementCurrency)
		if !ok {
			continue
		}
		if line.ProductShortName == "" || line.GlobalProductCode == "" {
			// Malformed line; drop it rather than aborting the batch.
			continue
		}

		estimates = append(estimates, carrier.RateEstimate{
			Origin:      origin,
			Destination: destination,
			Carrier:     carrierName,
			ServiceName: line.ProductShortName,
			ServiceCode: line.GlobalProductCode,
			Currency:    cfg.SettlementCurrency,
			TotalPrice:  price,
		})
	}

	return estimates, nil
}

// settlementAmount resolves a quote line's charge in the settlement currency.
// A line quoted natively in the settlement currency uses its shipping charge
// directly; otherwise the line's alternate-currency amounts are searched for
// a settlement match. Lines with no match or a non-positive amount are
// unusable: a zero charge means "service unavailable", not "free".
func settlementAmount(line quotedShipment, settlementCurrency string) (decimal.Decimal, bool) {
	amount := line.ShippingCharge
	if line.CurrencyCode != settlementCurrency {
		amount = ""
		for _, alt := range line.QtdSInAdCur {
			if alt.CurrencyCode == settlementCurrency {
				amount = alt.TotalAmount
				break
			}
		}
		if amount == "" {
			return decimal.Decimal{}, false
		}
	}

	price, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil || price.Sign() <= 0 {
		return decimal.Decimal{}, false
	}
	return price, true
}

// parseErrorBody tries to interpret raw as a carrier error document. Returns
// nil if the body does not carry one.
func parseErrorBody(raw []byte) *carrier.Error {
	var doc errorResponseDocument
	if err := xml.Unmarshal(raw, &doc); err != nil {
		return nil
	}
	if len(doc.Response.Status.Condition) == 0 {
		return nil
	}

	cond := doc.Response.Status.Condition[0]
	message := strings.TrimSpace(cond.ConditionData)
	if message == "" {
		message = "carrier rejected the request"
	}

	return carrier.NewError(carrierName, carrier.KindCarrier, message).
		WithCode(cond.ConditionCode).
		WithRawBody(raw)
}
