// Package export writes the roster to an Excel workbook.
package export

import (
	"fmt"
	"io"

	"github.com/rogersnm/roster/internal/model"
	"github.com/xuri/excelize/v2"
)

const SheetName = "Employees"

var Header = []string{"ID", "Name", "Role", "Salary", "Active"}

var columnWidths = []float64{8, 30, 30, 14, 10}

// WriteXLSX encodes employees as a single-sheet workbook to w.
func WriteXLSX(w io.Writer, employees []model.Employee) error {
	f, err := build(employees)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// SaveXLSX writes employees to the workbook at path.
func SaveXLSX(path string, employees []model.Employee) error {
	f, err := build(employees)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

func build(employees []model.Employee) (*excelize.File, error) {
	f := excelize.NewFile()

	if _, err := f.NewSheet(SheetName); err != nil {
		f.Close()
		return nil, fmt.Errorf("creating sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		f.Close()
		return nil, fmt.Errorf("removing default sheet: %w", err)
	}
	index, err := f.GetSheetIndex(SheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("locating sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("creating header style: %w", err)
	}
	salaryFmt := "0.00"
	salaryStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &salaryFmt})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("creating salary style: %w", err)
	}

	if err := f.SetSheetRow(SheetName, "A1", &Header); err != nil {
		f.Close()
		return nil, fmt.Errorf("writing header: %w", err)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(Header))
	if err := f.SetCellStyle(SheetName, "A1", lastCol+"1", headerStyle); err != nil {
		f.Close()
		return nil, fmt.Errorf("styling header: %w", err)
	}
	for i, width := range columnWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(SheetName, col, col, width); err != nil {
			f.Close()
			return nil, fmt.Errorf("setting width of %s: %w", col, err)
		}
	}

	for i, e := range employees {
		row := i + 2
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		values := []any{e.ID, e.Name, e.Role, e.Salary, yesNo(e.Active)}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			f.Close()
			return nil, fmt.Errorf("writing row %d: %w", row, err)
		}
		salaryCell, _ := excelize.CoordinatesToCellName(4, row)
		if err := f.SetCellStyle(SheetName, salaryCell, salaryCell, salaryStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("styling %s: %w", salaryCell, err)
		}
	}
	return f, nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
