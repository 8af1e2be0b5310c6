package ranch

import (
	"encoding/json"
	"net/http"
)

type RanchDTO struct {
	Id   string `json:"id"`
	Name string `json:"name"`
}

type PlotDTO struct {
	Id       string  `json:"id"`
	Name     string  `json:"name"`
	Hectares float64 `json:"hectares"`
}

type Handler struct {
	repo Repo
}

func NewHandler(repo Repo) *Handler {
	return &Handler{repo}
}

func (h *Handler) GetRanches(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ranches, err := h.repo.GetAll(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	dtos := make([]RanchDTO, 0, len(ranches))
	for _, item := range ranches {
		dtos = append(dtos, RanchDTO{Id: item.Id, Name: item.Name})
	}
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// GetPlots lists the plots of one ranch; without a ranchId it returns an
// empty list rather than the whole table.
func (h *Handler) GetPlots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ranchId := r.URL.Query().Get("ranchId")
	dtos := make([]PlotDTO, 0)
	if ranchId != "" {
		plots, err := h.repo.GetPlots(r.Context(), ranchId)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		for _, p := range plots {
			dtos = append(dtos, PlotDTO{Id: p.Id, Name: p.Name, Hectares: p.Hectares.InexactFloat64()})
		}
	}
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
