package dataset

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

func headerOf(t *Table) []string {
	h := make([]string, len(t.schema.Columns))
	for i, c := range t.schema.Columns {
		h[i] = c.Name
	}
	return h
}

// WriteCSV writes the table with a header row. Missing cells are written empty.
func WriteCSV(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(headerOf(t)); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	rec := make([]string, len(t.schema.Columns))
	for r, row := range t.rows {
		for i, v := range row {
			if v.IsMissing() {
				rec[i] = ""
				continue
			}
			rec[i] = v.String()
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write row %d: %w", r+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX saves the table as a single-sheet workbook named after sheet.
func WriteXLSX(path, sheet string, t *Table) error {
	f := excelize.NewFile()
	defer f.Close()
	if sheet == "" {
		sheet = "data"
	}
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}
	header := headerOf(t)
	hdr := make([]interface{}, len(header))
	for i, h := range header {
		hdr[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &hdr); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for r, row := range t.rows {
		vals := make([]interface{}, len(row))
		for i, v := range row {
			switch {
			case v.IsMissing():
				vals[i] = nil
			case v.kind == Numeric:
				vals[i] = v.num
			default:
				vals[i] = v.str
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &vals); err != nil {
			return fmt.Errorf("write row %d: %w", r+1, err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save xlsx: %w", err)
	}
	return nil
}
