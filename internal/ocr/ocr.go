// Package ocr sends document bytes to external OCR backends and normalizes
// their responses. Each backend protocol is a closed variant in a dispatch
// table keyed by provider type; unknown types never reach call time because
// provider registration validates against the same closed set.
package ocr

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"time"

	"docpipe/internal/domain"
	"docpipe/internal/provider"
)

const requestTimeout = 30 * time.Second

// Input carries one document for text extraction. Content is consumed
// exactly once per Extract call.
type Input struct {
	Content  io.Reader
	FileName string
	Language string
}

// Result is a normalized OCR outcome. Raw holds the provider's response body
// when it was structured JSON; for plain-text backends it is nil.
type Result struct {
	Text string
	Raw  json.RawMessage
}

type requestBuilder func(ctx context.Context, p *domain.Provider, in Input) (*http.Request, error)

type responseParser func(p *domain.Provider, statusCode int, body []byte) (*Result, error)

type variant struct {
	build requestBuilder
	parse responseParser
}

var variants = map[domain.ProviderType]variant{
	domain.ProviderOCRSpace: {build: buildOCRSpaceRequest, parse: parseOCRSpaceResponse},
	domain.ProviderOpenOCR:  {build: buildOpenOCRRequest, parse: parseOpenOCRResponse},
}

// Client executes OCR extraction against whichever backend a provider record
// points at. Safe for concurrent use.
type Client struct {
	httpClient *http.Client
}

// NewClient creates an OCR client with the fixed request timeout.
func NewClient() *Client {
	return &Client{httpClient: &http.Client{Timeout: requestTimeout}}
}

// Extract runs OCR on the input document using the given provider and returns
// the extracted text. All failures come back as typed errors from the
// provider package; Extract itself never panics.
func (c *Client) Extract(ctx context.Context, p *domain.Provider, in Input) (*Result, error) {
	v, ok := variants[p.Type]
	if !ok {
		return nil, provider.NewConfigurationError(string(p.Type), "provider type is not implemented")
	}

	req, err := v.build(ctx, p, in)
	if err != nil {
		return nil, err
	}

	log.Printf("ocr.Extract: sending request to %s provider %q (%s)", p.Type, p.Name, req.URL.String())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("ocr.Extract: %s request failed: %v", p.Type, err)
		return nil, provider.NewTransportError(string(p.Type), err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("ocr.Extract: reading %s response failed: %v", p.Type, err)
		return nil, provider.NewTransportError(string(p.Type), err)
	}

	result, err := v.parse(p, resp.StatusCode, body)
	if err != nil {
		log.Printf("ocr.Extract: %s returned an error: %v", p.Type, err)
		return nil, err
	}
	return result, nil
}
