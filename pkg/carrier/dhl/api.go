package dhl

import (
	"context"
)

// XMLPoster is the transport collaborator for the DHL XML-PI servlet. The
// bridge treats it as opaque: it owns TLS, connection pooling, and timeouts.
// This abstraction allows for mock implementations during testing and real
// implementations in production.
type XMLPoster interface {
	// PostXML posts a serialized XML document and returns the raw response.
	// A non-2xx status is not an error at this layer; the response body (if
	// any) is returned alongside the status so the caller can surface
	// carrier error documents.
	PostXML(ctx context.Context, body []byte) (*XMLResponse, error)
}

// XMLResponse is the raw result of posting an XML document.
type XMLResponse struct {
	StatusCode int
	Body       []byte
}
