package store

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/kgp-ops/wpr-portal/internal/tabular"
)

const workbookSheet = "Sheet1"

// WorkbookCodec reads and writes the tracking table as an Excel workbook.
// Only the first sheet is used; the first row is the header row.
type WorkbookCodec struct{}

func (WorkbookCodec) Ext() string { return ".xlsx" }

func (WorkbookCodec) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (WorkbookCodec) Decode(r io.Reader) (*tabular.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return tabular.NewEmpty(), nil
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return tabular.NewEmpty(), nil
	}
	return tabular.New(rows[0], rows[1:]), nil
}

func (WorkbookCodec) Encode(w io.Writer, t *tabular.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeSheetRow(f, 1, t.Headers()); err != nil {
		return err
	}
	for i, row := range t.Rows() {
		if err := writeSheetRow(f, i+2, row); err != nil {
			return err
		}
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeSheetRow(f *excelize.File, rowNum int, cells []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("row %d: %w", rowNum, err)
	}
	vals := make([]interface{}, len(cells))
	for i, c := range cells {
		vals[i] = c
	}
	if err := f.SetSheetRow(workbookSheet, cell, &vals); err != nil {
		return fmt.Errorf("set row %d: %w", rowNum, err)
	}
	return nil
}
