package google

import (
	"context"
	"fmt"

	"github.com/agroplan/agroplan/pkg/supply"
	log "github.com/sirupsen/logrus"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// SheetsExporter writes a supply pivot into a freshly created Google
// spreadsheet and returns its URL.
type SheetsExporter interface {
	ExportSupply(ctx context.Context, result supply.Result) (string, error)
}

type SheetsExporterImpl struct {
	auth *GoogleAuth
}

func NewSheetsExporter(auth *GoogleAuth) *SheetsExporterImpl {
	return &SheetsExporterImpl{auth: auth}
}

func (s *SheetsExporterImpl) ExportSupply(ctx context.Context, result supply.Result) (string, error) {
	service, err := s.prepareSheetsService(ctx)
	if err != nil {
		return "", err
	}

	title := fmt.Sprintf("Suministro semanal %d", result.Year)
	if result.Meta.Scope == supply.ScopeWeek {
		title = fmt.Sprintf("Suministro semanal %d-W%02d", result.Year, result.Week)
	}
	spreadsheet, err := service.Spreadsheets.Create(&sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{Title: title},
		Sheets: []*sheets.Sheet{
			{Properties: &sheets.SheetProperties{Title: "Resumen"}},
			{Properties: &sheets.SheetProperties{Title: "Recetas"}},
		},
	}).Context(ctx).Do()
	if err != nil {
		err = fmt.Errorf("unable to create spreadsheet: %w", err)
		log.Error(err)
		return "", err
	}

	if err := s.writeValues(ctx, service, spreadsheet.SpreadsheetId, "Resumen", pivotValues(result)); err != nil {
		return "", err
	}
	if err := s.writeValues(ctx, service, spreadsheet.SpreadsheetId, "Recetas", sourcesValues(result)); err != nil {
		return "", err
	}

	log.Infof("Exported weekly supply to spreadsheet %s", spreadsheet.SpreadsheetId)
	return spreadsheet.SpreadsheetUrl, nil
}

func (s *SheetsExporterImpl) writeValues(ctx context.Context, service *sheets.Service, spreadsheetId, sheet string, values [][]any) error {
	_, err := service.Spreadsheets.Values.Update(spreadsheetId, sheet+"!A1", &sheets.ValueRange{
		Values: values,
	}).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		err = fmt.Errorf("unable to write values to sheet %s: %w", sheet, err)
		log.Error(err)
		return err
	}
	return nil
}

func (s *SheetsExporterImpl) prepareSheetsService(ctx context.Context) (*sheets.Service, error) {
	client, err := s.auth.getClient(ctx)
	if err != nil {
		err = fmt.Errorf("unable to retrieve Google auth client: %w", err)
		log.Error(err)
		return nil, err
	}
	if client == nil {
		log.Debug("no Google account connected, authentication is required")
		return nil, ErrUnauthenticated
	}
	service, err := sheets.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		err = fmt.Errorf("unable to create Sheets client: %w", err)
		log.Error(err)
		return nil, err
	}
	return service, nil
}

func pivotValues(result supply.Result) [][]any {
	header := make([]any, 0, len(result.Columns)+4)
	header = append(header, "Producto", "Clasificación", "Unidad")
	for _, column := range result.Columns {
		header = append(header, column)
	}
	header = append(header, "TOTAL")

	values := [][]any{header}
	for _, row := range result.Totals {
		record := make([]any, 0, len(header))
		record = append(record, row.Name, string(row.Classification), row.Unit)
		for _, column := range result.Columns {
			record = append(record, row.Cells[column].InexactFloat64())
		}
		record = append(record, row.Total.InexactFloat64())
		values = append(values, record)
	}
	return values
}

func sourcesValues(result supply.Result) [][]any {
	values := [][]any{{
		"Producto", "Clasificación", "Unidad", "Total Producto",
		"Receta", "Temporalidad", "SemanaCrec.", "Aporte Receta", "Ocurrencias",
	}}
	for _, row := range result.Totals {
		for _, src := range row.Sources {
			temporalidad := src.Temporalidad
			if temporalidad == "" {
				temporalidad = "Anual"
			}
			values = append(values, []any{
				row.Name,
				string(row.Classification),
				row.Unit,
				row.Total.InexactFloat64(),
				src.RecipeName,
				temporalidad,
				fmt.Sprintf("S%d", src.GrowthWeek),
				src.TotalFromThisRecipe.InexactFloat64(),
				src.Occurrences,
			})
		}
	}
	return values
}
