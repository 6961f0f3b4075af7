// Package export renders extraction results to spreadsheet formats.
package export

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/tsawler/pdftables/engine"
	"github.com/tsawler/pdftables/model"
)

// TablesXLSX builds an XLSX workbook from detected tables, one sheet
// per table. The grid's header row becomes the sheet's first row and
// column order follows the grid, so the workbook is a faithful view of
// the reconstructed structure.
func TablesXLSX(tables []*model.DetectedTable) ([]byte, error) {
	if len(tables) == 0 {
		return nil, fmt.Errorf("export: no tables to export")
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	for i, t := range tables {
		sheet := fmt.Sprintf("Page%d_Table%d", t.PageNumber+1, i+1)
		if i == 0 {
			// Rename the default sheet rather than leaving it empty.
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return nil, err
			}
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				return nil, err
			}
		}
		if err := writeGrid(f, sheet, t.Grid); err != nil {
			return nil, fmt.Errorf("sheet %s: %w", sheet, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeGrid(f *excelize.File, sheet string, g *model.TableGrid) error {
	if g == nil {
		return nil
	}

	headers := g.Headers()
	for c, h := range headers {
		cell, err := excelize.CoordinatesToCellName(c+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}

	for r := 1; r < g.NRows(); r++ {
		for c := 0; c < g.NCols(); c++ {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, g.Cell(r, c).Text); err != nil {
				return err
			}
		}
	}
	return nil
}

// ResultsXLSX builds an XLSX workbook from serialized table results,
// one sheet per table. Record keys are written in sorted order since
// the serialized form does not preserve column order; prefer
// TablesXLSX when grids are still available.
func ResultsXLSX(tables []engine.TableResult) ([]byte, error) {
	if len(tables) == 0 {
		return nil, fmt.Errorf("export: no tables to export")
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	for i, t := range tables {
		sheet := fmt.Sprintf("Page%d_Table%d", t.Metadata.PageNumber+1, i+1)
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return nil, err
			}
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				return nil, err
			}
		}

		headers := sortedKeys(t.Data)
		for c, h := range headers {
			cell, err := excelize.CoordinatesToCellName(c+1, 1)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, h); err != nil {
				return nil, err
			}
		}
		for r, record := range t.Data {
			for c, h := range headers {
				cell, err := excelize.CoordinatesToCellName(c+1, r+2)
				if err != nil {
					return nil, err
				}
				if err := f.SetCellValue(sheet, cell, record[h]); err != nil {
					return nil, err
				}
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func sortedKeys(records []map[string]string) []string {
	seen := map[string]bool{}
	var keys []string
	for _, record := range records {
		for k := range record {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	sort.Strings(keys)
	return keys
}
