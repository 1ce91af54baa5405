package ocr

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"docpipe/internal/domain"
	"docpipe/internal/language"
	"docpipe/internal/provider"
)

const defaultOpenOCREndpoint = "http://localhost:9292"

// openOCRRequest is the JSON body of the open-ocr /ocr endpoint.
type openOCRRequest struct {
	ImgBase64     string            `json:"img_base64"`
	Engine        string            `json:"engine"`
	EngineArgs    map[string]string `json:"engine_args"`
	Preprocessors []string          `json:"preprocessors,omitempty"`
}

// buildOpenOCRRequest encodes the document as base64 for the self-hosted
// open-ocr service. No API key is required. PDFs get the convert-pdf
// preprocessor; everything else is fed to tesseract directly.
func buildOpenOCRRequest(ctx context.Context, p *domain.Provider, in Input) (*http.Request, error) {
	endpoint := p.Endpoint
	if endpoint == "" {
		endpoint = defaultOpenOCREndpoint
	}

	lang := language.Translate(in.Language, "", language.VocabOpenOCR)

	raw, err := io.ReadAll(in.Content)
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}

	payload := openOCRRequest{
		ImgBase64:  base64.StdEncoding.EncodeToString(raw),
		Engine:     "tesseract",
		EngineArgs: map[string]string{"lang": lang},
	}
	if strings.HasSuffix(strings.ToLower(in.FileName), ".pdf") {
		payload.Preprocessors = []string{"convert-pdf"}
	}

	bodyBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		strings.TrimRight(endpoint, "/")+"/ocr", bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// parseOpenOCRResponse treats the raw body as the extracted text verbatim;
// open-ocr returns plain text, not a structured envelope.
func parseOpenOCRResponse(_ *domain.Provider, statusCode int, body []byte) (*Result, error) {
	if statusCode < 200 || statusCode > 299 {
		return nil, provider.NewUpstreamError("openocr", statusCode, string(body))
	}
	return &Result{Text: string(body)}, nil
}
