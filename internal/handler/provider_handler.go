package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"docpipe/internal/domain"
	"docpipe/internal/middleware"
	"docpipe/internal/service"
)

// ProviderHandler handles provider configuration endpoints.
type ProviderHandler struct {
	providerService service.ProviderService
}

// NewProviderHandler creates a new ProviderHandler.
func NewProviderHandler(providerService service.ProviderService) *ProviderHandler {
	return &ProviderHandler{providerService: providerService}
}

type createProviderRequest struct {
	Name        string  `json:"name" binding:"required"`
	Kind        string  `json:"kind" binding:"required,oneof=ocr llm"`
	Type        string  `json:"type" binding:"required"`
	Sequence    int     `json:"sequence"`
	APIKey      string  `json:"api_key"`
	Endpoint    string  `json:"endpoint"`
	Model       string  `json:"model"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
	IsActive    *bool   `json:"is_active"`
	IsDefault   bool    `json:"is_default"`
}

type updateProviderRequest struct {
	Name        string  `json:"name" binding:"required"`
	Sequence    int     `json:"sequence"`
	APIKey      string  `json:"api_key"`
	Endpoint    string  `json:"endpoint"`
	Model       string  `json:"model"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
	IsActive    bool    `json:"is_active"`
	IsDefault   bool    `json:"is_default"`
}

// Create handles POST /api/v1/providers
func (h *ProviderHandler) Create(c *gin.Context) {
	tenantID, err := middleware.GetTenantID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing tenant context")
		return
	}

	var req createProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	p, err := h.providerService.Create(c.Request.Context(), &service.CreateProviderInput{
		TenantID:    tenantID,
		Name:        req.Name,
		Kind:        domain.ProviderKind(req.Kind),
		Type:        domain.ProviderType(req.Type),
		Sequence:    req.Sequence,
		APIKey:      req.APIKey,
		Endpoint:    req.Endpoint,
		Model:       req.Model,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
		IsActive:    isActive,
		IsDefault:   req.IsDefault,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, p)
}

// Update handles PUT /api/v1/providers/:id
func (h *ProviderHandler) Update(c *gin.Context) {
	tenantID, err := middleware.GetTenantID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing tenant context")
		return
	}
	providerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid provider id")
		return
	}

	var req updateProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	p, err := h.providerService.Update(c.Request.Context(), &service.UpdateProviderInput{
		TenantID:    tenantID,
		ProviderID:  providerID,
		Name:        req.Name,
		Sequence:    req.Sequence,
		APIKey:      req.APIKey,
		Endpoint:    req.Endpoint,
		Model:       req.Model,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
		IsActive:    req.IsActive,
		IsDefault:   req.IsDefault,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, p)
}

// List handles GET /api/v1/providers?kind=ocr|llm
func (h *ProviderHandler) List(c *gin.Context) {
	tenantID, err := middleware.GetTenantID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing tenant context")
		return
	}

	kind := domain.ProviderKind(c.Query("kind"))
	if kind != domain.ProviderKindOCR && kind != domain.ProviderKindLLM {
		RespondError(c, http.StatusBadRequest, "INVALID_KIND", "kind query parameter must be ocr or llm")
		return
	}

	providers, err := h.providerService.ListByTenant(c.Request.Context(), tenantID, kind)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, providers)
}

// GetByID handles GET /api/v1/providers/:id
func (h *ProviderHandler) GetByID(c *gin.Context) {
	tenantID, err := middleware.GetTenantID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing tenant context")
		return
	}
	providerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid provider id")
		return
	}

	p, err := h.providerService.GetByID(c.Request.Context(), tenantID, providerID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, p)
}

// Delete handles DELETE /api/v1/providers/:id
func (h *ProviderHandler) Delete(c *gin.Context) {
	tenantID, err := middleware.GetTenantID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing tenant context")
		return
	}
	providerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid provider id")
		return
	}

	if err := h.providerService.Delete(c.Request.Context(), tenantID, providerID); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": providerID})
}

// TestConnection handles POST /api/v1/providers/:id/test
func (h *ProviderHandler) TestConnection(c *gin.Context) {
	tenantID, err := middleware.GetTenantID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing tenant context")
		return
	}
	providerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid provider id")
		return
	}

	reply, err := h.providerService.TestConnection(c.Request.Context(), tenantID, providerID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"reply": reply})
}
