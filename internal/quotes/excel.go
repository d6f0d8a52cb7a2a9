package quotes

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/Simplici0/windowquote/internal/catalog"
	"github.com/Simplici0/windowquote/internal/money"
)

const sheetName = "Quotation"

// ExportExcel renders a saved quotation as an .xlsx workbook.
func ExportExcel(q Quote, company catalog.Company) ([]byte, error) {
	doc, err := buildDocument(q, company)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	columns := []string{"A", "B", "C", "D", "E"}
	lastCol := columns[len(columns)-1]
	widths := []float64{6, 60, 8, 18, 18}
	for i, col := range columns {
		if err := f.SetColWidth(sheetName, col, col, widths[i]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 16}})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	lineStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Size: 10}, Border: thinBorders()})
	if err != nil {
		return nil, fmt.Errorf("create line style: %w", err)
	}
	totalStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return nil, fmt.Errorf("create total style: %w", err)
	}

	row := 1
	put := func(text string, style int) error {
		cell := fmt.Sprintf("A%d", row)
		if err := f.MergeCell(sheetName, cell, fmt.Sprintf("%s%d", lastCol, row)); err != nil {
			return fmt.Errorf("merge row %d: %w", row, err)
		}
		f.SetCellValue(sheetName, cell, sanitizeExcelCell(text))
		if style != 0 {
			f.SetCellStyle(sheetName, cell, cell, style)
		}
		row++
		return nil
	}

	header := []string{doc.Company.Name, doc.Company.Address}
	if doc.Company.GSTIN != "" {
		header = append(header, "GSTIN: "+doc.Company.GSTIN)
	}
	header = append(header, "Quotation: "+doc.Reference, "Date: "+doc.Date)
	if doc.Title != "" {
		header = append(header, "Title: "+doc.Title)
	}
	if cust := customerLine(doc.Customer); cust != "" {
		header = append(header, "Customer: "+cust)
	}
	header = append(header, doc.Details...)

	for i, text := range header {
		if text == "" {
			continue
		}
		style := 0
		if i == 0 {
			style = titleStyle
		}
		if err := put(text, style); err != nil {
			return nil, err
		}
	}
	row++

	headerRow := row
	for i, h := range []string{"#", "Description", "Qty", "Unit Price", "Amount"} {
		f.SetCellValue(sheetName, fmt.Sprintf("%s%d", columns[i], row), h)
	}
	f.SetCellStyle(sheetName, fmt.Sprintf("A%d", headerRow), fmt.Sprintf("%s%d", lastCol, headerRow), headerStyle)
	row++

	for i, l := range doc.Lines {
		r := fmt.Sprintf("%d", row)
		f.SetCellValue(sheetName, "A"+r, i+1)
		f.SetCellValue(sheetName, "B"+r, sanitizeExcelCell(l.Description))
		f.SetCellValue(sheetName, "C"+r, l.Quantity)
		f.SetCellValue(sheetName, "D"+r, money.FormatINR(l.UnitPrice))
		f.SetCellValue(sheetName, "E"+r, money.FormatINR(l.Amount))
		f.SetCellStyle(sheetName, "A"+r, lastCol+r, lineStyle)
		row++
	}
	row++

	for _, t := range doc.Totals {
		r := fmt.Sprintf("%d", row)
		f.SetCellValue(sheetName, "D"+r, t.Label+":")
		f.SetCellValue(sheetName, "E"+r, money.FormatINR(t.Amount))
		f.SetCellStyle(sheetName, "D"+r, "E"+r, totalStyle)
		row++
	}

	if doc.Notes != "" {
		row++
		if err := put("Notes: "+doc.Notes, 0); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}
	return buf.Bytes(), nil
}

// sanitizeExcelCell prefixes a quote to text that spreadsheet applications
// would otherwise evaluate as a formula.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{Type: side, Color: "#000000", Style: 1}
	}
	return borders
}
