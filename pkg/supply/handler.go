package supply

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/agroplan/agroplan/internal/rest"
)

type ResultDTO struct {
	Year    int             `json:"year"`
	Week    int             `json:"week"`
	Columns []string        `json:"columns"`
	Totals  []ProductRowDTO `json:"totals"`
	Meta    MetaDTO         `json:"meta"`
}

type ProductRowDTO struct {
	ProductId      string             `json:"productId"`
	Name           string             `json:"name"`
	Unit           string             `json:"unit"`
	Classification string             `json:"classification"`
	Total          float64            `json:"total"`
	Cells          map[string]float64 `json:"cells"`
	Sources        []SourceDTO        `json:"sources"`
}

type SourceDTO struct {
	RecipeId            string  `json:"recipeId"`
	RecipeName          string  `json:"recipeName"`
	Temporalidad        string  `json:"temporalidad"`
	GrowthWeek          int     `json:"growthWeek"`
	Classification      string  `json:"classification"`
	TotalFromThisRecipe float64 `json:"totalFromThisRecipe"`
	Occurrences         int     `json:"occurrences"`
}

type MetaDTO struct {
	CountPlantings int      `json:"countPlantings"`
	ZoneUsed       string   `json:"zoneUsed,omitempty"`
	RanchIdsUsed   []string `json:"ranchIdsUsed"`
	RanchNamesUsed []string `json:"ranchNamesUsed"`
	Scope          string   `json:"scope"`
	WeekStart      int      `json:"weekStart"`
	WeekEnd        int      `json:"weekEnd"`
}

type Handler struct {
	service      Service
	csvRenderer  Renderer
	xlsxRenderer *XlsxRendererImpl
}

func NewHandler(service Service, csvRenderer Renderer, xlsxRenderer *XlsxRendererImpl) *Handler {
	return &Handler{service, csvRenderer, xlsxRenderer}
}

func (h *Handler) GetWeeklySupply(w http.ResponseWriter, r *http.Request) {
	query, ok := parseQuery(w, r)
	if !ok {
		return
	}
	result, err := h.service.Aggregate(r.Context(), query)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if r.Header.Get("Accept") == "text/csv" {
		var rendered string
		if r.URL.Query().Get("csv") == "sources" {
			rendered, err = h.csvRenderer.RenderSources(result)
		} else {
			rendered, err = h.csvRenderer.RenderPivot(result)
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		if _, err := w.Write([]byte(rendered)); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(toResultDTO(result)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) GetWeeklySupplyXlsx(w http.ResponseWriter, r *http.Request) {
	query, ok := parseQuery(w, r)
	if !ok {
		return
	}
	result, err := h.service.Aggregate(r.Context(), query)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	workbook, err := h.xlsxRenderer.RenderWorkbook(result)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="weekly-supply.xlsx"`)
	if _, err := w.Write(workbook); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func parseQuery(w http.ResponseWriter, r *http.Request) (Query, bool) {
	query, err := ParseQuery(r)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid query", err.Error())
		return Query{}, false
	}
	return query, true
}

// ParseQuery reads the aggregation filters from the request query string.
func ParseQuery(r *http.Request) (Query, error) {
	params := r.URL.Query()
	query := Query{
		Scope:   Scope(params.Get("scope")),
		RanchId: params.Get("ranchId"),
		Zone:    params.Get("zone"),
		CropId:  params.Get("cropId"),
	}
	if query.Scope != "" && query.Scope != ScopeWeek && query.Scope != ScopeYear {
		return Query{}, fmt.Errorf("%w: scope must be \"week\" or \"year\"", ErrInvalidQuery)
	}
	for _, field := range []struct {
		name   string
		target *int
	}{
		{"year", &query.Year},
		{"week", &query.Week},
		{"weekStart", &query.WeekStart},
		{"weekEnd", &query.WeekEnd},
	} {
		raw := params.Get(field.name)
		if raw == "" {
			continue
		}
		value, err := strconv.Atoi(raw)
		if err != nil {
			return Query{}, fmt.Errorf("%w: %s must be an integer", ErrInvalidQuery, field.name)
		}
		*field.target = value
	}
	return query, nil
}

func toResultDTO(result Result) ResultDTO {
	dto := ResultDTO{
		Year:    result.Year,
		Week:    result.Week,
		Columns: result.Columns,
		Totals:  make([]ProductRowDTO, 0, len(result.Totals)),
		Meta: MetaDTO{
			CountPlantings: result.Meta.CountPlantings,
			ZoneUsed:       result.Meta.ZoneUsed,
			RanchIdsUsed:   result.Meta.RanchIdsUsed,
			RanchNamesUsed: result.Meta.RanchNamesUsed,
			Scope:          string(result.Meta.Scope),
			WeekStart:      result.Meta.WeekStart,
			WeekEnd:        result.Meta.WeekEnd,
		},
	}
	for _, row := range result.Totals {
		rowDTO := ProductRowDTO{
			ProductId:      row.ProductId,
			Name:           row.Name,
			Unit:           row.Unit,
			Classification: string(row.Classification),
			Total:          row.Total.InexactFloat64(),
			Cells:          make(map[string]float64, len(row.Cells)),
			Sources:        make([]SourceDTO, 0, len(row.Sources)),
		}
		for key, qty := range row.Cells {
			rowDTO.Cells[key] = qty.InexactFloat64()
		}
		for _, src := range row.Sources {
			rowDTO.Sources = append(rowDTO.Sources, SourceDTO{
				RecipeId:            src.RecipeId,
				RecipeName:          src.RecipeName,
				Temporalidad:        src.Temporalidad,
				GrowthWeek:          src.GrowthWeek,
				Classification:      string(src.Classification),
				TotalFromThisRecipe: src.TotalFromThisRecipe.InexactFloat64(),
				Occurrences:         src.Occurrences,
			})
		}
		dto.Totals = append(dto.Totals, rowDTO)
	}
	return dto
}
