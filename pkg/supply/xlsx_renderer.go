package supply

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

type XlsxRendererImpl struct {
}

func NewXlsxRenderer() *XlsxRendererImpl {
	return &XlsxRendererImpl{}
}

// RenderWorkbook produces a two-sheet workbook: the product pivot and the
// per-recipe breakdown.
func (t *XlsxRendererImpl) RenderWorkbook(result Result) ([]byte, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.Errorf("Error closing xlsx file: %v", err)
		}
	}()

	const pivotSheet = "Resumen"
	f.SetSheetName("Sheet1", pivotSheet)
	if err := t.writePivotSheet(f, pivotSheet, result); err != nil {
		return nil, err
	}

	const sourcesSheet = "Recetas"
	if _, err := f.NewSheet(sourcesSheet); err != nil {
		return nil, err
	}
	if err := t.writeSourcesSheet(f, sourcesSheet, result); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		log.Errorf("Error writing xlsx file: %v", err)
		return nil, err
	}
	return buf.Bytes(), nil
}

func (t *XlsxRendererImpl) writePivotSheet(f *excelize.File, sheet string, result Result) error {
	header := make([]any, 0, len(result.Columns)+4)
	header = append(header, "Producto", "Clasificación", "Unidad")
	for _, column := range result.Columns {
		header = append(header, column)
	}
	header = append(header, "TOTAL")
	if err := setRow(f, sheet, 1, header); err != nil {
		return err
	}

	for i, row := range result.Totals {
		record := make([]any, 0, len(header))
		record = append(record, row.Name, string(row.Classification), row.Unit)
		for _, column := range result.Columns {
			record = append(record, row.Cells[column].InexactFloat64())
		}
		record = append(record, row.Total.InexactFloat64())
		if err := setRow(f, sheet, i+2, record); err != nil {
			return err
		}
	}
	return nil
}

func (t *XlsxRendererImpl) writeSourcesSheet(f *excelize.File, sheet string, result Result) error {
	header := []any{
		"Producto", "Clasificación", "Unidad", "Total Producto",
		"Receta", "Temporalidad", "SemanaCrec.", "Aporte Receta", "Ocurrencias",
	}
	if err := setRow(f, sheet, 1, header); err != nil {
		return err
	}

	rowNum := 2
	for _, row := range result.Totals {
		for _, src := range row.Sources {
			record := []any{
				row.Name,
				string(row.Classification),
				row.Unit,
				row.Total.InexactFloat64(),
				src.RecipeName,
				temporalidadLabel(src.Temporalidad),
				fmt.Sprintf("S%d", src.GrowthWeek),
				src.TotalFromThisRecipe.InexactFloat64(),
				src.Occurrences,
			}
			if err := setRow(f, sheet, rowNum, record); err != nil {
				return err
			}
			rowNum++
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, rowNum int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}
