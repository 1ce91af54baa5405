package handler_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"docpipe/internal/domain"
	"docpipe/internal/handler"
	"docpipe/internal/service"
	"docpipe/mocks"
)

func newJobHandler() (*handler.JobHandler, *mocks.MockJobService) {
	mockSvc := new(mocks.MockJobService)
	h := handler.NewJobHandler(mockSvc)
	return h, mockSvc
}

func multipartUpload(t *testing.T, fields map[string]string, fileName string, fileContent []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if fileName != "" {
		part, err := w.CreateFormFile("file", fileName)
		require.NoError(t, err)
		_, err = part.Write(fileContent)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestJobHandler_Create_Success(t *testing.T) {
	h, mockSvc := newJobHandler()
	tenantID := uuid.New()
	ocrProviderID := uuid.New()

	expected := &domain.ProcessingJob{
		ID:       uuid.New(),
		TenantID: tenantID,
		Name:     "my invoice",
		State:    domain.JobStateDraft,
	}
	mockSvc.On("CreateJob", mock.Anything, mock.MatchedBy(func(input *service.CreateJobInput) bool {
		return input.TenantID == tenantID &&
			input.Name == "my invoice" &&
			input.FileName == "invoice.pdf" &&
			string(input.Data) == "%PDF-1.4" &&
			input.DocumentType == "vendor_bill" &&
			input.AutoProcess &&
			input.OCRProviderID != nil && *input.OCRProviderID == ocrProviderID &&
			input.LLMProviderID == nil
	})).Return(expected, nil)

	body, contentType := multipartUpload(t, map[string]string{
		"name":            "my invoice",
		"document_type":   "vendor_bill",
		"auto_process":    "true",
		"ocr_provider_id": ocrProviderID.String(),
	}, "invoice.pdf", []byte("%PDF-1.4"))

	w := httptest.NewRecorder()
	c := authedContext(w, tenantID)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/jobs", body)
	c.Request.Header.Set("Content-Type", contentType)

	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestJobHandler_Create_MissingFile(t *testing.T) {
	h, mockSvc := newJobHandler()

	body, contentType := multipartUpload(t, map[string]string{"name": "no file"}, "", nil)

	w := httptest.NewRecorder()
	c := authedContext(w, uuid.New())
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/jobs", body)
	c.Request.Header.Set("Content-Type", contentType)

	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "CreateJob", mock.Anything, mock.Anything)
}

func TestJobHandler_Create_InvalidProviderID(t *testing.T) {
	h, mockSvc := newJobHandler()

	body, contentType := multipartUpload(t, map[string]string{
		"ocr_provider_id": "not-a-uuid",
	}, "invoice.pdf", []byte("%PDF-1.4"))

	w := httptest.NewRecorder()
	c := authedContext(w, uuid.New())
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/jobs", body)
	c.Request.Header.Set("Content-Type", contentType)

	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "CreateJob", mock.Anything, mock.Anything)
}

func TestJobHandler_Create_UnsupportedType(t *testing.T) {
	h, mockSvc := newJobHandler()

	mockSvc.On("CreateJob", mock.Anything, mock.Anything).Return(nil, domain.ErrUnsupportedFileType)

	body, contentType := multipartUpload(t, nil, "notes.docx", []byte("doc"))

	w := httptest.NewRecorder()
	c := authedContext(w, uuid.New())
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/jobs", body)
	c.Request.Header.Set("Content-Type", contentType)

	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "UNSUPPORTED_FILE_TYPE")
}

func TestJobHandler_Create_UnknownDocumentType(t *testing.T) {
	h, mockSvc := newJobHandler()

	mockSvc.On("CreateJob", mock.Anything, mock.Anything).Return(nil, domain.ErrUnknownDocumentType)

	body, contentType := multipartUpload(t, map[string]string{
		"document_type": "vendor_bil",
	}, "invoice.pdf", []byte("%PDF-1.4"))

	w := httptest.NewRecorder()
	c := authedContext(w, uuid.New())
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/jobs", body)
	c.Request.Header.Set("Content-Type", contentType)

	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "UNKNOWN_DOCUMENT_TYPE")
}

func TestJobHandler_Process_Success(t *testing.T) {
	h, mockSvc := newJobHandler()
	tenantID := uuid.New()
	jobID := uuid.New()

	processed := &domain.ProcessingJob{ID: jobID, TenantID: tenantID, State: domain.JobStateDone}
	mockSvc.On("ProcessJob", mock.Anything, tenantID, jobID).Return(processed, nil)

	w := httptest.NewRecorder()
	c := authedContext(w, tenantID)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/jobs/"+jobID.String()+"/process", http.NoBody)
	c.Params = gin.Params{{Key: "id", Value: jobID.String()}}

	h.Process(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"state":"done"`)
}

func TestJobHandler_Process_NotDraft(t *testing.T) {
	h, mockSvc := newJobHandler()
	tenantID := uuid.New()
	jobID := uuid.New()

	mockSvc.On("ProcessJob", mock.Anything, tenantID, jobID).Return(nil, domain.ErrJobNotDraft)

	w := httptest.NewRecorder()
	c := authedContext(w, tenantID)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/jobs/"+jobID.String()+"/process", http.NoBody)
	c.Params = gin.Params{{Key: "id", Value: jobID.String()}}

	h.Process(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "JOB_NOT_DRAFT")
}

func TestJobHandler_List_PaginationBounds(t *testing.T) {
	h, mockSvc := newJobHandler()
	tenantID := uuid.New()

	// Out-of-range limit falls back to the default page size.
	mockSvc.On("ListByTenant", mock.Anything, tenantID, 0, 20).
		Return([]domain.ProcessingJob{}, 0, nil)

	w := httptest.NewRecorder()
	c := authedContext(w, tenantID)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/jobs?offset=-5&limit=1000", http.NoBody)

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}
