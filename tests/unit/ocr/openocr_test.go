package ocr_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docpipe/internal/domain"
	"docpipe/internal/ocr"
	"docpipe/internal/provider"
)

func openOCRProvider(endpoint string) *domain.Provider {
	return &domain.Provider{
		ID:       uuid.New(),
		TenantID: uuid.New(),
		Name:     "open-ocr test",
		Kind:     domain.ProviderKindOCR,
		Type:     domain.ProviderOpenOCR,
		Endpoint: endpoint,
		IsActive: true,
	}
}

func TestOpenOCR_Extract_Image(t *testing.T) {
	docBytes := []byte("fake image bytes")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ocr", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, base64.StdEncoding.EncodeToString(docBytes), body["img_base64"])
		assert.Equal(t, "tesseract", body["engine"])
		assert.Equal(t, map[string]interface{}{"lang": "eng"}, body["engine_args"])
		_, hasPreprocessors := body["preprocessors"]
		assert.False(t, hasPreprocessors, "images must not request preprocessors")

		_, _ = w.Write([]byte("extracted plain text"))
	}))
	defer server.Close()

	client := ocr.NewClient()
	result, err := client.Extract(context.Background(), openOCRProvider(server.URL), ocr.Input{
		Content:  bytes.NewReader(docBytes),
		FileName: "scan.png",
		Language: "eng",
	})

	require.NoError(t, err)
	assert.Equal(t, "extracted plain text", result.Text)
	assert.Nil(t, result.Raw)
}

func TestOpenOCR_Extract_PDFAddsPreprocessor(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []interface{}{"convert-pdf"}, body["preprocessors"])
		_, _ = w.Write([]byte("pdf text"))
	}))
	defer server.Close()

	client := ocr.NewClient()
	result, err := client.Extract(context.Background(), openOCRProvider(server.URL), ocr.Input{
		Content:  bytes.NewReader([]byte("%PDF-1.4")),
		FileName: "Invoice.PDF",
		Language: "eng",
	})

	require.NoError(t, err)
	assert.Equal(t, "pdf text", result.Text)
}

func TestOpenOCR_Extract_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("engine crashed"))
	}))
	defer server.Close()

	client := ocr.NewClient()
	_, err := client.Extract(context.Background(), openOCRProvider(server.URL), ocr.Input{
		Content: bytes.NewReader([]byte("x")), FileName: "a.png",
	})

	var upErr *provider.UpstreamError
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, http.StatusInternalServerError, upErr.StatusCode)
	assert.Contains(t, upErr.Message, "engine crashed")
}

func TestExtract_UnknownProviderType(t *testing.T) {
	p := openOCRProvider("http://localhost:9292")
	p.Type = domain.ProviderType("tesseract-local")

	client := ocr.NewClient()
	_, err := client.Extract(context.Background(), p, ocr.Input{Content: bytes.NewReader([]byte("x"))})

	var cfgErr *provider.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
}
