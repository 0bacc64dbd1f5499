package dhl

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tournevent/dhlbridge/pkg/carrier"
)

var (
	testOrigin      = carrier.Location{CountryCode: "MX", PostalCode: "83000", City: "Hermosillo"}
	testDestination = carrier.Location{CountryCode: "MX", PostalCode: "01000", City: "Mexico City"}
)

func parseBody(t *testing.T, body string) ([]carrier.RateEstimate, error) {
	t.Helper()
	return parseRateResponse([]byte(body), testOrigin, testDestination, testConfig())
}

func quoteDocument(lines string) string {
	return `<?xml version="1.0" encoding="UTF-8"?>
<res:DCTResponse xmlns:res="http://www.dhl.com">
  <GetQuoteResponse>
    <BkgDetails>` + lines + `
    </BkgDetails>
  </GetQuoteResponse>
</res:DCTResponse>`
}

const settlementLine = `
      <QtdShp>
        <GlobalProductCode>N</GlobalProductCode>
        <ProductShortName>EXPRESS DOMESTIC</ProductShortName>
        <CurrencyCode>MXN</CurrencyCode>
        <ShippingCharge>150.00</ShippingCharge>
      </QtdShp>`

const foreignLineWithAlternate = `
      <QtdShp>
        <GlobalProductCode>D</GlobalProductCode>
        <ProductShortName>EXPRESS WORLDWIDE</ProductShortName>
        <CurrencyCode>USD</CurrencyCode>
        <ShippingCharge>12.40</ShippingCharge>
        <QtdSInAdCur>
          <CurrencyCode>EUR</CurrencyCode>
          <TotalAmount>11.10</TotalAmount>
        </QtdSInAdCur>
        <QtdSInAdCur>
          <CurrencyCode>MXN</CurrencyCode>
          <TotalAmount>215.75</TotalAmount>
        </QtdSInAdCur>
      </QtdShp>`

func TestParseRateResponse_SettlementCurrencyDirect(t *testing.T) {
	estimates, err := parseBody(t, quoteDocument(settlementLine))
	require.NoError(t, err)
	require.Len(t, estimates, 1)

	e := estimates[0]
	assert.Equal(t, "dhl", e.Carrier)
	assert.Equal(t, "EXPRESS DOMESTIC", e.ServiceName)
	assert.Equal(t, "N", e.ServiceCode)
	assert.Equal(t, "MXN", e.Currency)
	assert.True(t, e.TotalPrice.Equal(decimal.RequireFromString("150.00")),
		"price must equal the shipping charge exactly, got %s", e.TotalPrice)
	assert.Equal(t, testOrigin, e.Origin)
	assert.Equal(t, testDestination, e.Destination)
}

func TestParseRateResponse_ForeignCurrencyUsesAlternateAmount(t *testing.T) {
	estimates, err := parseBody(t, quoteDocument(foreignLineWithAlternate))
	require.NoError(t, err)
	require.Len(t, estimates, 1)

	e := estimates[0]
	assert.Equal(t, "MXN", e.Currency)
	assert.True(t, e.TotalPrice.Equal(decimal.RequireFromString("215.75")),
		"price must come from the MXN alternate amount, got %s", e.TotalPrice)
}

func TestParseRateResponse_ForeignCurrencyWithoutAlternateIsDropped(t *testing.T) {
	line := `
      <QtdShp>
        <GlobalProductCode>D</GlobalProductCode>
        <ProductShortName>EXPRESS WORLDWIDE</ProductShortName>
        <CurrencyCode>USD</CurrencyCode>
        <ShippingCharge>12.40</ShippingCharge>
        <QtdSInAdCur>
          <CurrencyCode>EUR</CurrencyCode>
          <TotalAmount>11.10</TotalAmount>
        </QtdSInAdCur>
      </QtdShp>`

	estimates, err := parseBody(t, quoteDocument(line+settlementLine))
	require.NoError(t, err)
	require.Len(t, estimates, 1, "the unconvertible line is dropped, not fatal")
	assert.Equal(t, "N", estimates[0].ServiceCode)
}

func TestParseRateResponse_ZeroChargeIsDropped(t *testing.T) {
	zeroLine := `
      <QtdShp>
        <GlobalProductCode>Z</GlobalProductCode>
        <ProductShortName>SAME DAY</ProductShortName>
        <CurrencyCode>MXN</CurrencyCode>
        <ShippingCharge>0</ShippingCharge>
      </QtdShp>`

	estimates, err := parseBody(t, quoteDocument(settlementLine+zeroLine))
	require.NoError(t, err)
	require.Len(t, estimates, 1)
	assert.True(t, estimates[0].TotalPrice.Equal(decimal.RequireFromString("150.00")))
}

func TestParseRateResponse_SubUnitChargeSurvives(t *testing.T) {
	// "0.50" truncates to zero as an integer; positivity must be decimal-aware.
	line := `
      <QtdShp>
        <GlobalProductCode>N</GlobalProductCode>
        <ProductShortName>EXPRESS DOMESTIC</ProductShortName>
        <CurrencyCode>MXN</CurrencyCode>
        <ShippingCharge>0.50</ShippingCharge>
      </QtdShp>`

	estimates, err := parseBody(t, quoteDocument(line))
	require.NoError(t, err)
	require.Len(t, estimates, 1)
	assert.True(t, estimates[0].TotalPrice.Equal(decimal.RequireFromString("0.50")))
}

func TestParseRateResponse_UnparsableChargeIsDropped(t *testing.T) {
	line := `
      <QtdShp>
        <GlobalProductCode>N</GlobalProductCode>
        <ProductShortName>EXPRESS DOMESTIC</ProductShortName>
        <CurrencyCode>MXN</CurrencyCode>
        <ShippingCharge>n/a</ShippingCharge>
      </QtdShp>`

	estimates, err := parseBody(t, quoteDocument(line))
	require.NoError(t, err)
	assert.Empty(t, estimates)
}

func TestParseRateResponse_MissingServiceFieldsDropsLineOnly(t *testing.T) {
	incomplete := `
      <QtdShp>
        <CurrencyCode>MXN</CurrencyCode>
        <ShippingCharge>99.00</ShippingCharge>
      </QtdShp>`

	estimates, err := parseBody(t, quoteDocument(incomplete+settlementLine))
	require.NoError(t, err)
	require.Len(t, estimates, 1, "malformed line must not abort the batch")
	assert.Equal(t, "N", estimates[0].ServiceCode)
}

func TestParseRateResponse_EmptyLineSetIsValidSuccess(t *testing.T) {
	estimates, err := parseBody(t, quoteDocument(""))
	require.NoError(t, err)
	assert.Empty(t, estimates, "no services for the route is a success, not an error")
}

func TestParseRateResponse_MissingQuoteResponseIsNoQuotes(t *testing.T) {
	body := `<?xml version="1.0" encoding="UTF-8"?>
<res:DCTResponse xmlns:res="http://www.dhl.com">
  <SomethingElse/>
</res:DCTResponse>`

	estimates, err := parseBody(t, body)
	require.Error(t, err)
	assert.Nil(t, estimates, "an empty list must never stand in for the error")
	assert.True(t, carrier.IsNoQuotes(err))
	assert.Contains(t, err.Error(), "no usable quote data")
}

func TestParseRateResponse_NotXMLIsNoQuotes(t *testing.T) {
	_, err := parseBody(t, "definitely not xml")
	require.Error(t, err)
	assert.True(t, carrier.IsNoQuotes(err))
}

func TestParseRateResponse_QuoteResponseAtRoot(t *testing.T) {
	body := `<?xml version="1.0" encoding="UTF-8"?>
<GetQuoteResponse>
  <BkgDetails>` + settlementLine + `
  </BkgDetails>
</GetQuoteResponse>`

	estimates, err := parseBody(t, body)
	require.NoError(t, err)
	assert.Len(t, estimates, 1)
}

func TestParseRateResponse_PrefixedAndUnprefixedParseIdentically(t *testing.T) {
	prefixed := `<?xml version="1.0" encoding="UTF-8"?>
<res:DCTResponse xmlns:res="http://www.dhl.com">
  <res:GetQuoteResponse>
    <res:BkgDetails>
      <res:QtdShp>
        <res:GlobalProductCode>N</res:GlobalProductCode>
        <res:ProductShortName>EXPRESS DOMESTIC</res:ProductShortName>
        <res:CurrencyCode>MXN</res:CurrencyCode>
        <res:ShippingCharge>150.00</res:ShippingCharge>
      </res:QtdShp>
    </res:BkgDetails>
  </res:GetQuoteResponse>
</res:DCTResponse>`

	fromPrefixed, err := parseBody(t, prefixed)
	require.NoError(t, err)

	fromPlain, err := parseBody(t, quoteDocument(settlementLine))
	require.NoError(t, err)

	assert.Equal(t, fromPlain, fromPrefixed)
}

func TestParseRateResponse_OrderPreservedAndIdempotent(t *testing.T) {
	expensive := `
      <QtdShp>
        <GlobalProductCode>E</GlobalProductCode>
        <ProductShortName>EXPRESS 9:00</ProductShortName>
        <CurrencyCode>MXN</CurrencyCode>
        <ShippingCharge>999.00</ShippingCharge>
      </QtdShp>`

	// The cheap line comes second; intentionally no re-sorting by price.
	body := quoteDocument(expensive + settlementLine)

	first, err := parseBody(t, body)
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, "E", first[0].ServiceCode)
	assert.Equal(t, "N", first[1].ServiceCode)

	second, err := parseBody(t, body)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestParseErrorBody_ConditionSurfaced(t *testing.T) {
	body := []byte(`<?xml version="1.0" encoding="UTF-8"?>
<res:ErrorResponse xmlns:res="http://www.dhl.com">
  <Response>
    <Status>
      <ActionStatus>Error</ActionStatus>
      <Condition>
        <ConditionCode>111</ConditionCode>
        <ConditionData>Agreement with specified account number not found</ConditionData>
      </Condition>
    </Status>
  </Response>
</res:ErrorResponse>`)

	ce := parseErrorBody(body)
	require.NotNil(t, ce)
	assert.Equal(t, carrier.KindCarrier, ce.Kind)
	assert.Equal(t, "111", ce.Code)
	assert.Contains(t, ce.Message, "account number not found")
	assert.Equal(t, body, ce.RawBody)
}

func TestParseErrorBody_NotAnErrorDocument(t *testing.T) {
	assert.Nil(t, parseErrorBody([]byte(quoteDocument(settlementLine))))
	assert.Nil(t, parseErrorBody([]byte("not xml")))
}

func TestParseRateResponse_ErrorDocumentIsCarrierError(t *testing.T) {
	body := `<?xml version="1.0" encoding="UTF-8"?>
<res:ErrorResponse xmlns:res="http://www.dhl.com">
  <Response>
    <Status>
      <ActionStatus>Error</ActionStatus>
      <Condition>
        <ConditionCode>100</ConditionCode>
        <ConditionData>Validation failure</ConditionData>
      </Condition>
    </Status>
  </Response>
</res:ErrorResponse>`

	_, err := parseBody(t, body)
	require.Error(t, err)
	assert.True(t, carrier.IsCarrierError(err))
}
