package render

import (
	"context"
	"fmt"

	"go-hrdocs/internal/composer"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Salary"

type XLSX struct{}

// Render writes one sheet with a block per section: a title row, a
// header row for the requested columns, the rows and an optional total.
func (XLSX) Render(_ context.Context, model composer.RenderModel) (Artifact, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return Artifact{}, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return Artifact{}, err
	}

	row := 1
	set := func(col, r int, v any) error {
		cell, err := excelize.CoordinatesToCellName(col, r)
		if err != nil {
			return err
		}
		return f.SetCellValue(sheetName, cell, v)
	}
	styleRow := func(r, cols int) error {
		first, _ := excelize.CoordinatesToCellName(1, r)
		last, _ := excelize.CoordinatesToCellName(cols, r)
		return f.SetCellStyle(sheetName, first, last, bold)
	}

	if err := set(1, row, fmt.Sprintf("%s (version %d)", model.DocumentType, model.SnapshotVersion)); err != nil {
		return Artifact{}, err
	}
	row += 2

	for _, sec := range model.Sections {
		headers := []string{"Component"}
		if sec.Columns.Monthly {
			headers = append(headers, "Monthly")
		}
		if sec.Columns.Yearly {
			headers = append(headers, "Annual")
		}

		if err := set(1, row, sec.Title); err != nil {
			return Artifact{}, err
		}
		if err := styleRow(row, 1); err != nil {
			return Artifact{}, err
		}
		row++

		for i, h := range headers {
			if err := set(i+1, row, h); err != nil {
				return Artifact{}, err
			}
		}
		if err := styleRow(row, len(headers)); err != nil {
			return Artifact{}, err
		}
		row++

		for _, r := range sec.Rows {
			values := []any{r.Name}
			if sec.Columns.Monthly {
				values = append(values, formatAmount(r.MonthlyAmount))
			}
			if sec.Columns.Yearly {
				values = append(values, formatAmount(r.AnnualAmount))
			}
			for i, v := range values {
				if err := set(i+1, row, v); err != nil {
					return Artifact{}, err
				}
			}
			row++
		}

		if sec.Total != nil {
			label := sec.TotalLabel
			if label == "" {
				label = "Total"
			}
			values := []any{label, formatAmount(sec.Total)}
			if sec.Columns.Yearly {
				values = append(values, formatAmount(sec.TotalYearly))
			}
			for i, v := range values {
				if err := set(i+1, row, v); err != nil {
					return Artifact{}, err
				}
			}
			if err := styleRow(row, len(values)); err != nil {
				return Artifact{}, err
			}
			row++
		}
		row++
	}

	if err := f.SetColWidth(sheetName, "A", "A", 32); err != nil {
		return Artifact{}, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return Artifact{}, err
	}
	return Artifact{
		Content:     buf.Bytes(),
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Extension:   "xlsx",
	}, nil
}
