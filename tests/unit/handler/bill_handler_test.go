package handler_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"docpipe/internal/domain"
	"docpipe/internal/handler"
	"docpipe/mocks"
)

func TestBillHandler_GetByID_Success(t *testing.T) {
	mockRepo := new(mocks.MockBillRepo)
	h := handler.NewBillHandler(mockRepo)
	tenantID := uuid.New()

	bill := &domain.VendorBill{
		ID:            uuid.New(),
		TenantID:      tenantID,
		VendorName:    "Acme Supplies",
		InvoiceNumber: "INV-001",
		Total:         38.5,
	}
	mockRepo.On("GetByID", mock.Anything, tenantID, bill.ID).Return(bill, nil)

	w := httptest.NewRecorder()
	c := authedContext(w, tenantID)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/bills/"+bill.ID.String(), http.NoBody)
	c.Params = gin.Params{{Key: "id", Value: bill.ID.String()}}

	h.GetByID(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "INV-001")
}

func TestBillHandler_GetByID_NotFound(t *testing.T) {
	mockRepo := new(mocks.MockBillRepo)
	h := handler.NewBillHandler(mockRepo)
	tenantID := uuid.New()
	billID := uuid.New()

	mockRepo.On("GetByID", mock.Anything, tenantID, billID).Return(nil, domain.ErrBillNotFound)

	w := httptest.NewRecorder()
	c := authedContext(w, tenantID)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/bills/"+billID.String(), http.NoBody)
	c.Params = gin.Params{{Key: "id", Value: billID.String()}}

	h.GetByID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "BILL_NOT_FOUND")
}

func TestBillHandler_Export_StreamsWorkbook(t *testing.T) {
	mockRepo := new(mocks.MockBillRepo)
	h := handler.NewBillHandler(mockRepo)
	tenantID := uuid.New()

	listed := domain.VendorBill{
		ID:            uuid.New(),
		TenantID:      tenantID,
		VendorName:    "Acme Supplies",
		InvoiceNumber: "INV-001",
		InvoiceDate:   time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		Total:         38.5,
	}
	full := listed
	full.Lines = []domain.VendorBillLine{
		{Product: "Widget", Description: "Blue widget", Quantity: 3, PriceUnit: 10, Subtotal: 30},
	}

	mockRepo.On("ListByTenant", mock.Anything, tenantID, 0, 1000).
		Return([]domain.VendorBill{listed}, 1, nil)
	mockRepo.On("GetByID", mock.Anything, tenantID, listed.ID).Return(&full, nil)

	w := httptest.NewRecorder()
	c := authedContext(w, tenantID)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/bills/export", http.NoBody)

	h.Export(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "vendor_bills_")
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	vendor, err := f.GetCellValue("Bills", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Acme Supplies", vendor)

	product, err := f.GetCellValue("Line Items", "C2")
	require.NoError(t, err)
	assert.Equal(t, "Widget", product)
}
