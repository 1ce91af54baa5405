package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"docpipe/internal/export"
	"docpipe/internal/middleware"
	"docpipe/internal/port"
)

// xlsxContentType is the MIME type for Office Open XML spreadsheets.
const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// BillHandler handles vendor bill endpoints.
type BillHandler struct {
	bills port.VendorBillRepository
}

// NewBillHandler creates a new BillHandler.
func NewBillHandler(bills port.VendorBillRepository) *BillHandler {
	return &BillHandler{bills: bills}
}

// List handles GET /api/v1/bills
func (h *BillHandler) List(c *gin.Context) {
	tenantID, err := middleware.GetTenantID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing tenant context")
		return
	}

	offset, limit := parsePagination(c)
	bills, total, err := h.bills.ListByTenant(c.Request.Context(), tenantID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, bills, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/bills/:id
func (h *BillHandler) GetByID(c *gin.Context) {
	tenantID, err := middleware.GetTenantID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing tenant context")
		return
	}
	billID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid bill id")
		return
	}

	bill, err := h.bills.GetByID(c.Request.Context(), tenantID, billID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, bill)
}

// Export handles GET /api/v1/bills/export and streams an XLSX workbook. Lines
// are loaded per bill so the workbook's line sheet is complete.
func (h *BillHandler) Export(c *gin.Context) {
	tenantID, err := middleware.GetTenantID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing tenant context")
		return
	}

	const exportBatch = 1000
	bills, _, err := h.bills.ListByTenant(c.Request.Context(), tenantID, 0, exportBatch)
	if err != nil {
		HandleError(c, err)
		return
	}
	for i := range bills {
		full, err := h.bills.GetByID(c.Request.Context(), tenantID, bills[i].ID)
		if err != nil {
			HandleError(c, err)
			return
		}
		bills[i].Lines = full.Lines
	}

	data, err := export.WriteBills(bills)
	if err != nil {
		HandleError(c, err)
		return
	}

	filename := export.BuildFilename("vendor_bills")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}
