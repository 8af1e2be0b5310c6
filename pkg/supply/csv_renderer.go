package supply

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// Renderer serializes a pivot result for download. Quantities are rounded
// to 3 decimals here and nowhere earlier.
type Renderer interface {
	RenderPivot(result Result) (string, error)
	RenderSources(result Result) (string, error)
}

type CsvRendererImpl struct {
}

func NewCsvRenderer() *CsvRendererImpl {
	return &CsvRendererImpl{}
}

// RenderPivot writes one row per product with a column per week.
func (t *CsvRendererImpl) RenderPivot(result Result) (string, error) {
	header := make([]string, 0, len(result.Columns)+4)
	header = append(header, "Producto", "Clasificación", "Unidad")
	header = append(header, result.Columns...)
	header = append(header, "TOTAL")

	data := make([][]string, 0, len(result.Totals)+1)
	data = append(data, header)
	for _, row := range result.Totals {
		record := make([]string, 0, len(header))
		record = append(record, row.Name, string(row.Classification), row.Unit)
		for _, column := range result.Columns {
			record = append(record, quantityToString(row.Cells[column]))
		}
		record = append(record, quantityToString(row.Total))
		data = append(data, record)
	}
	return writeCsv(data)
}

// RenderSources expands the pivot to one row per (product, recipe) pair.
func (t *CsvRendererImpl) RenderSources(result Result) (string, error) {
	data := [][]string{{
		"Producto", "Clasificación", "Unidad", "Total Producto",
		"Receta", "Temporalidad", "SemanaCrec.", "Aporte Receta", "Ocurrencias",
	}}
	for _, row := range result.Totals {
		for _, src := range row.Sources {
			data = append(data, []string{
				row.Name,
				string(row.Classification),
				row.Unit,
				quantityToString(row.Total),
				src.RecipeName,
				temporalidadLabel(src.Temporalidad),
				"S" + strconv.Itoa(src.GrowthWeek),
				quantityToString(src.TotalFromThisRecipe),
				strconv.Itoa(src.Occurrences),
			})
		}
	}
	return writeCsv(data)
}

func writeCsv(data [][]string) (string, error) {
	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	for _, row := range data {
		if err := writer.Write(row); err != nil {
			log.Errorf("Error writing to csv: %v", err)
			return "", err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return "", err
	}
	return b.String(), nil
}

func quantityToString(q decimal.Decimal) string {
	return q.StringFixed(3)
}

func temporalidadLabel(temporalidad string) string {
	if temporalidad == "" {
		return "Anual"
	}
	return temporalidad
}
