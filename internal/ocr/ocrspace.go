package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"docpipe/internal/domain"
	"docpipe/internal/language"
	"docpipe/internal/provider"
)

const defaultOCRSpaceEndpoint = "https://api.ocr.space/parse/image"

// buildOCRSpaceRequest shapes the multipart form the OCR.space parse API
// expects: fixed processing flags, translated language, derived file type and
// the document content as the "file" part.
func buildOCRSpaceRequest(ctx context.Context, p *domain.Provider, in Input) (*http.Request, error) {
	if p.APIKey == "" {
		return nil, provider.NewConfigurationError("ocrspace", "API key is not configured")
	}

	endpoint := p.Endpoint
	if endpoint == "" {
		endpoint = defaultOCRSpaceEndpoint
	}

	ext := fileExtension(in.FileName)
	lang := language.Translate(in.Language, "", language.VocabOCRSpace)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := map[string]string{
		"language":          lang,
		"isOverlayRequired": "false",
		"OCREngine":         "1",
		"isTable":           "true",
		"scale":             "true",
		"filetype":          ext,
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, fmt.Errorf("writing form field %s: %w", k, err)
		}
	}

	fileName := in.FileName
	if fileName == "" {
		fileName = "document." + strings.ToLower(ext)
	}
	part, err := w.CreateFormFile("file", fileName)
	if err != nil {
		return nil, fmt.Errorf("creating file part: %w", err)
	}
	if _, err := io.Copy(part, in.Content); err != nil {
		return nil, fmt.Errorf("writing file part: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("closing multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("apikey", p.APIKey)
	return req, nil
}

// ocrSpaceResponse models the OCR.space parse API response. ErrorMessage may
// be a string or an array of strings depending on the failure.
type ocrSpaceResponse struct {
	ParsedResults []struct {
		ParsedText string `json:"ParsedText"`
	} `json:"ParsedResults"`
	ErrorMessage json.RawMessage `json:"ErrorMessage"`
}

func parseOCRSpaceResponse(_ *domain.Provider, statusCode int, body []byte) (*Result, error) {
	if statusCode != http.StatusOK {
		return nil, provider.NewUpstreamError("ocrspace", statusCode, string(body))
	}

	var resp ocrSpaceResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, provider.NewTransportError("ocrspace", fmt.Errorf("invalid JSON response: %w", err))
	}

	// A 200 with no parsed results is still a failure; the body carries the
	// provider's own error message.
	if len(resp.ParsedResults) == 0 {
		return nil, provider.NewProviderReportedError("ocrspace", errorMessageString(resp.ErrorMessage))
	}

	return &Result{
		Text: resp.ParsedResults[0].ParsedText,
		Raw:  body,
	}, nil
}

func errorMessageString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return "Unknown error occurred"
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil && s != "" {
		return s
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil && len(list) > 0 {
		return strings.Join(list, "; ")
	}
	return string(raw)
}

// fileExtension derives the uppercased extension from a filename, defaulting
// to PNG when the name carries none.
func fileExtension(fileName string) string {
	ext := strings.TrimPrefix(filepath.Ext(fileName), ".")
	if ext == "" {
		return "PNG"
	}
	return strings.ToUpper(ext)
}
