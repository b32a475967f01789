package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const (
	SheetName   = "Equipment Log"
	Filename    = "equipment_log.xlsx"
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// WriteWorkbook writes records as a single-sheet xlsx workbook. The header is
// columns followed by any field name first seen in records. With no records
// only the header row is written.
func WriteWorkbook(w io.Writer, columns []string, records []Record) error {
	header := headerOf(columns, records)

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	row := make([]any, len(header))
	for i, name := range header {
		row[i] = name
	}
	if err := f.SetSheetRow(SheetName, "A1", &row); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}

	for n, rec := range records {
		cells := make([]any, len(header))
		for i := range cells {
			cells[i] = ""
		}
		for _, fld := range rec {
			if fld.Value == nil {
				continue
			}
			cells[index[fld.Name]] = fld.Value
		}

		cell, err := excelize.CoordinatesToCellName(1, n+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetName, cell, &cells); err != nil {
			return fmt.Errorf("write row %d: %w", n+1, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func headerOf(columns []string, records []Record) []string {
	seen := make(map[string]bool, len(columns))
	header := make([]string, 0, len(columns))
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			header = append(header, name)
		}
	}
	for _, c := range columns {
		add(c)
	}
	for _, rec := range records {
		for _, fld := range rec {
			add(fld.Name)
		}
	}
	return header
}
