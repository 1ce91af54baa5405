package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"docpipe/internal/domain"
	"docpipe/internal/handler"
	"docpipe/internal/middleware"
	"docpipe/internal/service"
	"docpipe/mocks"
)

func newProviderHandler() (*handler.ProviderHandler, *mocks.MockProviderService) {
	mockSvc := new(mocks.MockProviderService)
	h := handler.NewProviderHandler(mockSvc)
	return h, mockSvc
}

func authedContext(w *httptest.ResponseRecorder, tenantID uuid.UUID) *gin.Context {
	c, _ := gin.CreateTestContext(w)
	c.Set(middleware.ContextKeyTenantID, tenantID)
	return c
}

func TestProviderHandler_Create_Success(t *testing.T) {
	h, mockSvc := newProviderHandler()
	tenantID := uuid.New()

	expected := &domain.Provider{
		ID:       uuid.New(),
		TenantID: tenantID,
		Name:     "groq main",
		Kind:     domain.ProviderKindLLM,
		Type:     domain.ProviderGroq,
		IsActive: true,
	}
	mockSvc.On("Create", mock.Anything, mock.MatchedBy(func(input *service.CreateProviderInput) bool {
		return input.TenantID == tenantID && input.Kind == domain.ProviderKindLLM &&
			input.Type == domain.ProviderGroq && input.IsActive
	})).Return(expected, nil)

	body, _ := json.Marshal(map[string]interface{}{
		"name":    "groq main",
		"kind":    "llm",
		"type":    "groq",
		"api_key": "gsk_test",
		"model":   "llama-3.3-70b-versatile",
	})

	w := httptest.NewRecorder()
	c := authedContext(w, tenantID)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/providers", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp handler.APIResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	mockSvc.AssertExpectations(t)
}

func TestProviderHandler_Create_InvalidKind(t *testing.T) {
	h, mockSvc := newProviderHandler()

	body, _ := json.Marshal(map[string]interface{}{
		"name": "bad",
		"kind": "parser",
		"type": "groq",
	})

	w := httptest.NewRecorder()
	c := authedContext(w, uuid.New())
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/providers", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProviderHandler_Create_UnknownTypeForKind(t *testing.T) {
	h, mockSvc := newProviderHandler()

	mockSvc.On("Create", mock.Anything, mock.Anything).Return(nil, domain.ErrUnknownProviderType)

	body, _ := json.Marshal(map[string]interface{}{
		"name": "bad",
		"kind": "ocr",
		"type": "groq",
	})

	w := httptest.NewRecorder()
	c := authedContext(w, uuid.New())
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/providers", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProviderHandler_Create_MissingTenantContext(t *testing.T) {
	h, _ := newProviderHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/providers", http.NoBody)

	h.Create(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProviderHandler_List_RequiresKind(t *testing.T) {
	h, mockSvc := newProviderHandler()

	w := httptest.NewRecorder()
	c := authedContext(w, uuid.New())
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/providers", http.NoBody)

	h.List(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "ListByTenant", mock.Anything, mock.Anything, mock.Anything)
}

func TestProviderHandler_List_Success(t *testing.T) {
	h, mockSvc := newProviderHandler()
	tenantID := uuid.New()

	providers := []domain.Provider{
		{ID: uuid.New(), TenantID: tenantID, Kind: domain.ProviderKindOCR, Type: domain.ProviderOCRSpace},
	}
	mockSvc.On("ListByTenant", mock.Anything, tenantID, domain.ProviderKindOCR).Return(providers, nil)

	w := httptest.NewRecorder()
	c := authedContext(w, tenantID)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/providers?kind=ocr", http.NoBody)

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProviderHandler_GetByID_NotFound(t *testing.T) {
	h, mockSvc := newProviderHandler()
	tenantID := uuid.New()
	providerID := uuid.New()

	mockSvc.On("GetByID", mock.Anything, tenantID, providerID).Return(nil, domain.ErrNotFound)

	w := httptest.NewRecorder()
	c := authedContext(w, tenantID)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/providers/"+providerID.String(), http.NoBody)
	c.Params = gin.Params{{Key: "id", Value: providerID.String()}}

	h.GetByID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProviderHandler_GetByID_InvalidID(t *testing.T) {
	h, _ := newProviderHandler()

	w := httptest.NewRecorder()
	c := authedContext(w, uuid.New())
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/providers/not-a-uuid", http.NoBody)
	c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}

	h.GetByID(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProviderHandler_TestConnection_Success(t *testing.T) {
	h, mockSvc := newProviderHandler()
	tenantID := uuid.New()
	providerID := uuid.New()

	mockSvc.On("TestConnection", mock.Anything, tenantID, providerID).
		Return("Connection confirmed.", nil)

	w := httptest.NewRecorder()
	c := authedContext(w, tenantID)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/providers/"+providerID.String()+"/test", http.NoBody)
	c.Params = gin.Params{{Key: "id", Value: providerID.String()}}

	h.TestConnection(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Connection confirmed.")
}
