package crop

import (
	"encoding/json"
	"net/http"

	"github.com/agroplan/agroplan/internal/rest"
	"github.com/gorilla/mux"
)

type VarietyDTO struct {
	Id     string `json:"id"`
	Name   string `json:"name"`
	CropId string `json:"cropId"`
}

type VarietyHandler struct {
	service VarietyService
}

func NewVarietyHandler(service VarietyService) *VarietyHandler {
	return &VarietyHandler{service}
}

func (h *VarietyHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	varieties, err := h.service.GetAll(r.Context(), r.URL.Query().Get("cropId"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	dtos := make([]VarietyDTO, 0, len(varieties))
	for _, v := range varieties {
		dtos = append(dtos, VarietyDTO{Id: v.Id, Name: v.Name, CropId: v.CropId})
	}
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *VarietyHandler) Get(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	v, err := h.service.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeCropError(w, err)
		return
	}
	if err := json.NewEncoder(w).Encode(VarietyDTO{Id: v.Id, Name: v.Name, CropId: v.CropId}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *VarietyHandler) Create(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	var dto VarietyDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	created, err := h.service.Create(r.Context(), dto.Name, dto.CropId)
	if err != nil {
		writeCropError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(VarietyDTO{Id: created.Id, Name: created.Name, CropId: created.CropId}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *VarietyHandler) Update(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	var dto VarietyDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	dto.Id = mux.Vars(r)["id"]
	ok, err := h.service.Update(r.Context(), Variety{Id: dto.Id, Name: dto.Name, CropId: dto.CropId})
	if err != nil {
		writeCropError(w, err)
		return
	}
	if !ok {
		rest.WriteError(w, http.StatusNotFound, "Variety not found", "")
		return
	}
	if err := json.NewEncoder(w).Encode(dto); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *VarietyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeCropError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
