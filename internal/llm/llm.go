// Package llm sends prompts to external LLM backends and normalizes their
// completions. Backend protocols are closed variants in a dispatch table
// keyed by provider type: groq and openai share the chat-completions wire
// shape, anthropic uses the messages protocol, and custom covers generic
// bearer-token completion endpoints.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"docpipe/internal/domain"
	"docpipe/internal/provider"
)

const requestTimeout = 30 * time.Second

// Options tunes a single completion call. Zero values fall back to the
// provider record's own tuning parameters.
type Options struct {
	MaxTokens      int
	Temperature    *float64
	ResponseFormat string // ResponseFormatJSON requests a structured JSON reply
}

// ResponseFormatJSON asks the backend for a JSON object response where the
// protocol supports it, and enables the parse-or-passthrough post-processing.
const ResponseFormatJSON = "json_object"

// Result is a normalized completion. Parsed is set only when JSON output was
// requested and the content was valid JSON; callers must handle either shape.
type Result struct {
	Content string
	Parsed  json.RawMessage
	Raw     json.RawMessage
}

type variant struct {
	setHeaders func(req *http.Request, p *domain.Provider)
	buildBody  func(p *domain.Provider, prompt string, maxTokens int, temperature float64, opts Options) map[string]interface{}
	extract    func(body []byte) string
}

var variants = map[domain.ProviderType]variant{
	domain.ProviderGroq:      chatCompletionVariant,
	domain.ProviderOpenAI:    chatCompletionVariant,
	domain.ProviderAnthropic: anthropicVariant,
	domain.ProviderCustom:    customVariant,
}

// Client executes prompt completions against whichever backend a provider
// record points at. Safe for concurrent use.
type Client struct {
	httpClient *http.Client
}

// NewClient creates an LLM client with the fixed request timeout.
func NewClient() *Client {
	return &Client{httpClient: &http.Client{Timeout: requestTimeout}}
}

// Complete sends the prompt to the provider's backend and returns the
// normalized completion. An inactive provider is refused before any network
// call. All failures come back as typed errors; a panic anywhere in request
// or response shaping is recovered and normalized the same way.
func (c *Client) Complete(ctx context.Context, p *domain.Provider, prompt string, opts Options) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("llm.Complete: unexpected error from %s provider %q: %v", p.Type, p.Name, r)
			result = nil
			err = provider.NewTransportError(string(p.Type), fmt.Errorf("unexpected error: %v", r))
		}
	}()

	if !p.IsActive {
		return nil, domain.ErrProviderInactive
	}

	v, ok := variants[p.Type]
	if !ok {
		return nil, provider.NewConfigurationError(string(p.Type), "provider type is not implemented")
	}

	maxTokens := opts.MaxTokens
	if maxTokens == 0 {
		maxTokens = p.MaxTokens
	}
	temperature := p.Temperature
	if opts.Temperature != nil {
		temperature = *opts.Temperature
	}

	bodyBytes, err := json.Marshal(v.buildBody(p, prompt, maxTokens, temperature, opts))
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.Endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	v.setHeaders(req, p)

	log.Printf("llm.Complete: sending request to %s provider %q (%s)", p.Type, p.Name, p.Endpoint)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("llm.Complete: %s request failed: %v", p.Type, err)
		return nil, provider.NewTransportError(string(p.Type), err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, provider.NewTransportError(string(p.Type), err)
	}

	if resp.StatusCode != http.StatusOK {
		upErr := provider.NewUpstreamError(string(p.Type), resp.StatusCode, string(respBody))
		log.Printf("llm.Complete: %s", upErr.Error())
		return nil, upErr
	}

	content := v.extract(respBody)

	res := &Result{Content: content, Raw: respBody}
	if opts.ResponseFormat == ResponseFormatJSON {
		// Parse-or-passthrough: a completion that is not valid JSON is still
		// a successful call, it just stays unparsed.
		if json.Valid([]byte(content)) {
			res.Parsed = json.RawMessage(content)
		} else {
			log.Printf("llm.Complete: failed to parse %s response as JSON, returning raw text", p.Type)
		}
	}
	return res, nil
}
