package recipe

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/agroplan/agroplan/internal/rest"
	"github.com/agroplan/agroplan/pkg/product"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type RecipeDTO struct {
	Id             string    `json:"id"`
	Name           string    `json:"name"`
	Classification string    `json:"classification"`
	CropId         string    `json:"cropId"`
	VarietyId      string    `json:"varietyId,omitempty"`
	GrowthWeek     int       `json:"growthWeek"`
	Temporalidad   string    `json:"temporalidad,omitempty"`
	SowingType     string    `json:"sowingType,omitempty"`
	IsActive       bool      `json:"isActive"`
	Items          []ItemDTO `json:"items"`
}

type ItemDTO struct {
	Id            string  `json:"id,omitempty"`
	ProductId     string  `json:"productId"`
	Product       string  `json:"product,omitempty"`
	Unit          string  `json:"unit,omitempty"`
	QtyPerHectare float64 `json:"qtyPerHectare"`
	Notes         string  `json:"notes,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (h *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	recipes, err := h.service.GetRecipes(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	dtos := make([]RecipeDTO, 0, len(recipes))
	for _, rec := range recipes {
		dtos = append(dtos, toDTO(rec))
	}
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	rec, err := h.service.GetRecipe(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeRecipeError(w, err)
		return
	}
	if err := json.NewEncoder(w).Encode(toDTO(rec)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Registering new recipe")
	w.Header().Set("Content-Type", "application/json")

	rec, ok := decodeWrite(w, r)
	if !ok {
		return
	}
	created, err := h.service.CreateRecipe(r.Context(), rec)
	if err != nil {
		writeRecipeError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(toDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	rec, ok := decodeWrite(w, r)
	if !ok {
		return
	}
	rec.Id = mux.Vars(r)["id"]
	updated, err := h.service.UpdateRecipe(r.Context(), rec)
	if err != nil {
		writeRecipeError(w, err)
		return
	}
	if err := json.NewEncoder(w).Encode(toDTO(updated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteRecipe(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeRecipeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decodeWrite(w http.ResponseWriter, r *http.Request) (Recipe, bool) {
	var dto RecipeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return Recipe{}, false
	}
	rec := Recipe{
		Name:           dto.Name,
		Classification: product.Classification(dto.Classification),
		CropId:         dto.CropId,
		VarietyId:      dto.VarietyId,
		GrowthWeek:     dto.GrowthWeek,
		Temporalidad:   dto.Temporalidad,
		SowingType:     dto.SowingType,
	}
	for _, item := range dto.Items {
		rec.Items = append(rec.Items, Item{
			ProductId:     item.ProductId,
			QtyPerHectare: decimal.NewFromFloat(item.QtyPerHectare),
			Notes:         item.Notes,
		})
	}
	return rec, true
}

func toDTO(rec Recipe) RecipeDTO {
	dto := RecipeDTO{
		Id:             rec.Id,
		Name:           rec.Name,
		Classification: string(rec.Classification),
		CropId:         rec.CropId,
		VarietyId:      rec.VarietyId,
		GrowthWeek:     rec.GrowthWeek,
		Temporalidad:   rec.Temporalidad,
		SowingType:     rec.SowingType,
		IsActive:       rec.IsActive,
		Items:          make([]ItemDTO, 0, len(rec.Items)),
	}
	for _, item := range rec.Items {
		dto.Items = append(dto.Items, ItemDTO{
			Id:            item.Id,
			ProductId:     item.ProductId,
			Product:       item.Product,
			Unit:          item.Unit,
			QtyPerHectare: item.QtyPerHectare.InexactFloat64(),
			Notes:         item.Notes,
		})
	}
	return dto
}

func writeRecipeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrMissingFields), errors.Is(err, ErrInvalidSeasonality):
		rest.WriteError(w, http.StatusBadRequest, err.Error(), "")
	case errors.Is(err, ErrNotFound):
		rest.WriteError(w, http.StatusNotFound, "Recipe not found", "")
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
