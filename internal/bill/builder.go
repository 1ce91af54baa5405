// Package bill builds vendor bill records from parsed document data. It
// registers itself for the vendor_bill document type through the record and
// prompt registries; the pipeline stays ignorant of bill specifics.
package bill

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/google/uuid"

	"docpipe/internal/domain"
	"docpipe/internal/port"
)

// billData mirrors the JSON shape declared in Template.
type billData struct {
	VendorName    string     `json:"vendor_name"`
	InvoiceNumber string     `json:"invoice_number"`
	Date          string     `json:"date"`
	LineItems     []lineItem `json:"line_items"`
	Total         float64    `json:"total"`
	TotalTax      float64    `json:"total_tax"`
	TotalDiscount float64    `json:"total_discount"`
}

type lineItem struct {
	Product     string  `json:"product"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Price       float64 `json:"price"`
	Subtotal    float64 `json:"subtotal"`
}

// Builder creates vendor bills from parsed extraction output.
type Builder struct {
	vendors port.VendorRepository
	bills   port.VendorBillRepository
}

// NewBuilder creates a vendor bill Builder.
func NewBuilder(vendors port.VendorRepository, bills port.VendorBillRepository) *Builder {
	return &Builder{vendors: vendors, bills: bills}
}

// Build persists a vendor bill from the parsed data and returns its record
// reference. The vendor is matched by name or created; tax and discount come
// in as synthetic lines, with the discount amount always forced negative.
func (b *Builder) Build(ctx context.Context, tenantID, jobID uuid.UUID, parsed json.RawMessage) (string, error) {
	var data billData
	if err := json.Unmarshal(parsed, &data); err != nil {
		return "", fmt.Errorf("parsing vendor bill data: %w", err)
	}
	if data.VendorName == "" {
		return "", fmt.Errorf("vendor bill data has no vendor_name")
	}

	vendor, err := b.findOrCreateVendor(ctx, tenantID, data.VendorName)
	if err != nil {
		return "", err
	}

	lines := make([]domain.VendorBillLine, 0, len(data.LineItems)+2)
	for _, item := range data.LineItems {
		qty := item.Quantity
		if qty == 0 {
			qty = 1.0
		}
		desc := item.Description
		if desc == "" {
			desc = item.Product
		}
		lines = append(lines, domain.VendorBillLine{
			ID:          uuid.New(),
			Product:     item.Product,
			Description: desc,
			Quantity:    qty,
			PriceUnit:   item.Price,
			Subtotal:    item.Subtotal,
		})
	}

	if data.TotalTax != 0 {
		lines = append(lines, domain.VendorBillLine{
			ID:          uuid.New(),
			Product:     "Tax",
			Description: "Tax",
			Quantity:    1.0,
			PriceUnit:   data.TotalTax,
			Subtotal:    data.TotalTax,
		})
	}
	if data.TotalDiscount != 0 {
		// Discounts reduce the bill no matter how the model signed them.
		discount := -math.Abs(data.TotalDiscount)
		lines = append(lines, domain.VendorBillLine{
			ID:          uuid.New(),
			Product:     "Discount",
			Description: "Discount",
			Quantity:    1.0,
			PriceUnit:   discount,
			Subtotal:    discount,
		})
	}

	billRec := &domain.VendorBill{
		ID:            uuid.New(),
		TenantID:      tenantID,
		JobID:         jobID,
		VendorID:      vendor.ID,
		VendorName:    vendor.Name,
		InvoiceNumber: data.InvoiceNumber,
		InvoiceDate:   parseDate(data.Date, time.Now().UTC()),
		Total:         data.Total,
		TotalTax:      data.TotalTax,
		TotalDiscount: -math.Abs(data.TotalDiscount),
		Lines:         lines,
	}
	for i := range billRec.Lines {
		billRec.Lines[i].BillID = billRec.ID
	}

	if err := b.bills.Create(ctx, billRec); err != nil {
		return "", fmt.Errorf("creating vendor bill: %w", err)
	}

	log.Printf("bill.Build: created vendor bill %s for job %s (vendor %q, %d lines)",
		billRec.ID, jobID, vendor.Name, len(billRec.Lines))

	return fmt.Sprintf("vendor.bill,%s", billRec.ID), nil
}

func (b *Builder) findOrCreateVendor(ctx context.Context, tenantID uuid.UUID, name string) (*domain.Vendor, error) {
	vendor, err := b.vendors.FindByName(ctx, tenantID, name)
	if err == nil {
		return vendor, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("looking up vendor: %w", err)
	}

	vendor = &domain.Vendor{
		ID:       uuid.New(),
		TenantID: tenantID,
		Name:     name,
	}
	if err := b.vendors.Create(ctx, vendor); err != nil {
		return nil, fmt.Errorf("creating vendor: %w", err)
	}
	return vendor, nil
}
