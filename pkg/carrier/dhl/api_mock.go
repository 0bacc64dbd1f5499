package dhl

import (
	"context"
	"net/http"
	"time"
)

// MockPoster is a mock implementation of XMLPoster for testing.
type MockPoster struct {
	SimulateErrors  bool
	SimulateLatency time.Duration

	// Response is returned when OnPostXML is not set.
	Response *XMLResponse

	OnPostXML func(ctx context.Context, body []byte) (*XMLResponse, error)

	// Requests records every body posted, in order.
	Requests [][]byte
}

// NewMockPoster creates a new mock poster with default behavior: a 200
// response carrying a minimal quote document with a single priced line.
func NewMockPoster() *MockPoster {
	return &MockPoster{}
}

// PostXML records the request and returns the configured response.
func (m *MockPoster) PostXML(ctx context.Context, body []byte) (*XMLResponse, error) {
	if m.SimulateLatency > 0 {
		time.Sleep(m.SimulateLatency)
	}

	m.Requests = append(m.Requests, body)

	if m.SimulateErrors {
		return nil, context.DeadlineExceeded
	}

	if m.OnPostXML != nil {
		return m.OnPostXML(ctx, body)
	}

	if m.Response != nil {
		return m.Response, nil
	}

	return &XMLResponse{
		StatusCode: http.StatusOK,
		Body:       []byte(defaultMockQuoteBody),
	}, nil
}

const defaultMockQuoteBody = `<?xml version="1.0" encoding="UTF-8"?>
<res:DCTResponse xmlns:res="http://www.dhl.com">
  <GetQuoteResponse>
    <BkgDetails>
      <QtdShp>
        <GlobalProductCode>N</GlobalProductCode>
        <ProductShortName>EXPRESS DOMESTIC</ProductShortName>
        <CurrencyCode>MXN</CurrencyCode>
        <ShippingCharge>150.00</ShippingCharge>
      </QtdShp>
    </BkgDetails>
  </GetQuoteResponse>
</res:DCTResponse>`

var _ XMLPoster = (*MockPoster)(nil)
