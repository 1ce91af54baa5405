// Package export renders vendor bills as Excel workbooks for download.
package export

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"docpipe/internal/domain"
)

const billSheet = "Bills"
const lineSheet = "Line Items"

// billColumns defines the header row of the Bills sheet.
var billColumns = []string{
	"Vendor",
	"Invoice Number",
	"Invoice Date",
	"Total",
	"Tax",
	"Discount",
	"Line Item Count",
	"Created At",
}

// lineColumns defines the header row of the Line Items sheet.
var lineColumns = []string{
	"Vendor",
	"Invoice Number",
	"Product",
	"Description",
	"Quantity",
	"Unit Price",
	"Subtotal",
}

// WriteBills renders bills into a two-sheet XLSX workbook and returns the
// serialized bytes.
func WriteBills(bills []domain.VendorBill) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	f.SetSheetName("Sheet1", billSheet)
	if _, err := f.NewSheet(lineSheet); err != nil {
		return nil, fmt.Errorf("creating line items sheet: %w", err)
	}

	if err := writeRow(f, billSheet, 1, toAny(billColumns)); err != nil {
		return nil, err
	}
	if err := writeRow(f, lineSheet, 1, toAny(lineColumns)); err != nil {
		return nil, err
	}

	lineRow := 2
	for i := range bills {
		bill := &bills[i]
		row := []any{
			bill.VendorName,
			bill.InvoiceNumber,
			bill.InvoiceDate.Format("2006-01-02"),
			bill.Total,
			bill.TotalTax,
			bill.TotalDiscount,
			len(bill.Lines),
			bill.CreatedAt.Format(time.RFC3339),
		}
		if err := writeRow(f, billSheet, i+2, row); err != nil {
			return nil, err
		}

		for j := range bill.Lines {
			line := &bill.Lines[j]
			if err := writeRow(f, lineSheet, lineRow, []any{
				bill.VendorName,
				bill.InvoiceNumber,
				line.Product,
				line.Description,
				line.Quantity,
				line.PriceUnit,
				line.Subtotal,
			}); err != nil {
				return nil, err
			}
			lineRow++
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("serializing workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("cell name for row %d: %w", row, err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("writing row %d on %s: %w", row, sheet, err)
	}
	return nil
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition. Replaces
// non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for the Content-Disposition
// header. Format: {sanitized_name}_{YYYY-MM-DD}.xlsx
func BuildFilename(name string) string {
	sanitized := SanitizeFilename(name)
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("%s_%s.xlsx", sanitized, date)
}
