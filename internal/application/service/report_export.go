package service

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const salesSheet = "Sales"

// WriteSalesXLSX writes a sales report as a one-sheet workbook: a summary
// block followed by one row per bucket.
func WriteSalesXLSX(w io.Writer, r *SalesReport) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", salesSheet); err != nil {
		return err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	yen, err := f.NewStyle(&excelize.Style{CustomNumFmt: strPtr("¥#,##0")})
	if err != nil {
		return err
	}

	summary := [][]interface{}{
		{"Period", string(r.Period)},
		{"Date", r.Date},
		{"Timezone", r.Timezone},
		{"Status", string(r.Status)},
		{"Sales", r.Sales.Count},
		{"Revenue", r.Sales.Sum},
	}
	for i, row := range summary {
		if err := setRow(f, i+1, row); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(salesSheet, "A1", fmt.Sprintf("A%d", len(summary)), bold); err != nil {
		return err
	}
	revenueCell := fmt.Sprintf("B%d", len(summary))
	if err := f.SetCellStyle(salesSheet, revenueCell, revenueCell, yen); err != nil {
		return err
	}

	header := len(summary) + 2
	if err := setRow(f, header, []interface{}{"Bucket", "Sales", "Revenue"}); err != nil {
		return err
	}
	if err := f.SetCellStyle(salesSheet, fmt.Sprintf("A%d", header), fmt.Sprintf("C%d", header), bold); err != nil {
		return err
	}

	for i, b := range r.Sales.Buckets {
		if err := setRow(f, header+1+i, []interface{}{b.Label, b.Count, b.Sum}); err != nil {
			return err
		}
	}
	if n := len(r.Sales.Buckets); n > 0 {
		first := fmt.Sprintf("C%d", header+1)
		last := fmt.Sprintf("C%d", header+n)
		if err := f.SetCellStyle(salesSheet, first, last, yen); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(salesSheet, "A", "C", 16); err != nil {
		return err
	}

	return f.Write(w)
}

func setRow(f *excelize.File, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(salesSheet, cell, &values)
}

func strPtr(s string) *string {
	return &s
}
