package carrier

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a carrier bridge failure.
type ErrorKind string

const (
	// KindValidation covers inputs rejected before any request is built or
	// sent: missing credentials, non-positive weight.
	KindValidation ErrorKind = "validation"

	// KindTransport is a network or HTTP failure with no usable response body.
	KindTransport ErrorKind = "transport"

	// KindCarrier is a failure where the carrier returned a diagnostic body;
	// the raw body is preserved for caller inspection.
	KindCarrier ErrorKind = "carrier_error"

	// KindNoQuotes means the response parsed but carried no quote-response
	// element. Distinct from a transport failure and from an empty rate list.
	KindNoQuotes ErrorKind = "no_quotes"

	// KindMissingField marks a quote line lacking a required field. These are
	// absorbed by dropping the line and never escalate out of GetRates.
	KindMissingField ErrorKind = "missing_field"
)

// Error represents an error from a shipping carrier bridge.
type Error struct {
	Carrier    string
	Kind       ErrorKind
	Code       string // carrier-specific condition code, if any
	Message    string
	StatusCode int
	RawBody    []byte // carrier error body, if one was returned
	Cause      error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s %s: %s: %v", e.Carrier, e.Kind, e.Message, e.Cause)
	}
	if e.Code != "" {
		return fmt.Sprintf("%s %s (%s): %s", e.Carrier, e.Kind, e.Code, e.Message)
	}
	return fmt.Sprintf("%s %s: %s", e.Carrier, e.Kind, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches errors of the same kind. A target with a condition code set also
// requires the code to match.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if e.Kind != t.Kind {
		return false
	}
	return t.Code == "" || e.Code == t.Code
}

// NewError creates a new carrier Error.
func NewError(carrierName string, kind ErrorKind, message string) *Error {
	return &Error{
		Carrier: carrierName,
		Kind:    kind,
		Message: message,
	}
}

// WithCode attaches a carrier condition code.
func (e *Error) WithCode(code string) *Error {
	e.Code = code
	return e
}

// WithCause attaches an underlying cause.
func (e *Error) WithCause(err error) *Error {
	e.Cause = err
	return e
}

// WithStatusCode attaches the HTTP status code.
func (e *Error) WithStatusCode(code int) *Error {
	e.StatusCode = code
	return e
}

// WithRawBody attaches the raw carrier response body.
func (e *Error) WithRawBody(body []byte) *Error {
	e.RawBody = body
	return e
}

// Sentinel errors for common bridge scenarios.
var (
	// ErrMissingCredentials indicates an empty login or password.
	ErrMissingCredentials = errors.New("missing credentials")

	// ErrInvalidPackage indicates a non-positive package weight.
	ErrInvalidPackage = errors.New("invalid package")

	// ErrNotSupported indicates the carrier bridge does not implement the
	// requested capability.
	ErrNotSupported = errors.New("operation not supported by carrier")

	// ErrCarrierNotFound indicates the requested carrier is not registered.
	ErrCarrierNotFound = errors.New("carrier not found")
)

// KindOf returns the ErrorKind of err, or "" if err is not a carrier Error.
func KindOf(err error) ErrorKind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return ""
}

// IsValidation reports whether err was rejected before reaching the carrier.
func IsValidation(err error) bool {
	return KindOf(err) == KindValidation
}

// IsTransport reports whether err is a network/HTTP failure without a body.
func IsTransport(err error) bool {
	return KindOf(err) == KindTransport
}

// IsNoQuotes reports whether the carrier response carried no quote data.
func IsNoQuotes(err error) bool {
	return KindOf(err) == KindNoQuotes
}

// IsCarrierError reports whether the carrier returned a diagnostic body.
func IsCarrierError(err error) bool {
	return KindOf(err) == KindCarrier
}
