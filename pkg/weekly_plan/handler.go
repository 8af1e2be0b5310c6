package weekly_plan

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/agroplan/agroplan/internal/rest"
	"github.com/agroplan/agroplan/pkg/isoweek"
)

type WeekPlanDTO struct {
	IsoWeek string       `json:"isoWeek"`
	Range   RangeDTO     `json:"range"`
	Totals  TotalsDTO    `json:"totals"`
	Plan    []PlanRowDTO `json:"plan"`
}

type RangeDTO struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type TotalsDTO struct {
	Plantings int     `json:"plantings"`
	Hectares  float64 `json:"hectares"`
}

type PlanRowDTO struct {
	Planting   PlantingDTO  `json:"planting"`
	GrowthWeek int          `json:"growthWeek"`
	Packages   []PackageDTO `json:"packages"`
}

type PlantingDTO struct {
	Id          string  `json:"id"`
	Crop        string  `json:"crop"`
	Variety     string  `json:"variety,omitempty"`
	Ranch       string  `json:"ranch"`
	Plot        string  `json:"plot"`
	Tabla       string  `json:"tabla,omitempty"`
	Hectares    float64 `json:"hectares"`
	SowingDate  string  `json:"sowingDate"`
	HarvestDate string  `json:"harvestDate"`
}

type PackageDTO struct {
	Id             string           `json:"id"`
	Name           string           `json:"name"`
	Classification string           `json:"classification"`
	GrowthWeek     int              `json:"growthWeek"`
	Temporalidad   string           `json:"temporalidad"`
	Items          []PackageItemDTO `json:"items"`
}

type PackageItemDTO struct {
	ProductId     string  `json:"productId"`
	Product       string  `json:"product"`
	Unit          string  `json:"unit"`
	QtyPerHectare float64 `json:"qtyPerHectare"`
	QtyTotal      float64 `json:"qtyTotal"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetPlan(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	week, err := isoweek.Parse(r.URL.Query().Get("iso"))
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid iso week", "iso must match YYYY-Www")
		return
	}
	plan, err := h.service.GetPlanForWeek(r.Context(), week)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := json.NewEncoder(w).Encode(toWeekPlanDTO(plan)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

const dateLayout = "2006-01-02"

func toWeekPlanDTO(plan WeekPlan) WeekPlanDTO {
	dto := WeekPlanDTO{
		IsoWeek: plan.IsoWeek,
		Range: RangeDTO{
			Start: plan.RangeStart.Format(time.RFC3339),
			End:   plan.RangeEnd.Format(time.RFC3339),
		},
		Totals: TotalsDTO{
			Plantings: plan.Totals.Plantings,
			Hectares:  plan.Totals.Hectares.InexactFloat64(),
		},
		Plan: make([]PlanRowDTO, 0, len(plan.Plan)),
	}
	for _, entry := range plan.Plan {
		row := PlanRowDTO{
			Planting: PlantingDTO{
				Id:          entry.Planting.Id,
				Crop:        entry.Planting.CropName,
				Variety:     entry.Planting.VarietyName,
				Ranch:       entry.Planting.RanchName,
				Plot:        entry.Planting.PlotName,
				Tabla:       entry.Planting.Tabla,
				Hectares:    entry.Planting.Hectares.InexactFloat64(),
				SowingDate:  entry.Planting.SowingDate.Format(dateLayout),
				HarvestDate: entry.Planting.HarvestDate.Format(dateLayout),
			},
			GrowthWeek: entry.GrowthWeek,
			Packages:   make([]PackageDTO, 0, len(entry.Packages)),
		}
		for _, pkg := range entry.Packages {
			pkgDTO := PackageDTO{
				Id:             pkg.Id,
				Name:           pkg.Name,
				Classification: string(pkg.Classification),
				GrowthWeek:     pkg.GrowthWeek,
				Temporalidad:   temporalidadLabel(pkg.Temporalidad),
			}
			for _, item := range pkg.Items {
				pkgDTO.Items = append(pkgDTO.Items, PackageItemDTO{
					ProductId:     item.ProductId,
					Product:       item.Product,
					Unit:          item.Unit,
					QtyPerHectare: item.QtyPerHectare.InexactFloat64(),
					QtyTotal:      item.QtyTotal.InexactFloat64(),
				})
			}
			row.Packages = append(row.Packages, pkgDTO)
		}
		dto.Plan = append(dto.Plan, row)
	}
	return dto
}

func temporalidadLabel(temporalidad string) string {
	if temporalidad == "" {
		return "Anual"
	}
	return temporalidad
}
