package planting

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/agroplan/agroplan/internal/rest"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"github.com/shopspring/decimal"
)

type RefDTO struct {
	Id   string `json:"id"`
	Name string `json:"name"`
}

type PlantingDTO struct {
	Id             string  `json:"id"`
	Crop           RefDTO  `json:"crop"`
	Variety        *RefDTO `json:"variety"`
	Ranch          RefDTO  `json:"ranch"`
	Plot           RefDTO  `json:"plot"`
	Hectares       float64 `json:"hectares"`
	SowingDate     string  `json:"sowingDate"`
	HarvestDate    string  `json:"harvestDate"`
	SowingIsoWeek  string  `json:"sowingIsoWeek"`
	HarvestIsoWeek string  `json:"harvestIsoWeek"`
	Status         string  `json:"status"`
	Tabla          string  `json:"tabla,omitempty"`
}

type writeDTO struct {
	CropId      string  `json:"cropId"`
	VarietyId   string  `json:"varietyId"`
	RanchId     string  `json:"ranchId"`
	PlotId      string  `json:"plotId"`
	Hectares    float64 `json:"hectares"`
	SowingDate  string  `json:"sowingDate"`
	HarvestDate string  `json:"harvestDate"`
	Status      string  `json:"status"`
	Tabla       string  `json:"tabla"`
}

const dateLayout = "2006-01-02"

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	q := r.URL.Query()

	filter := Filter{
		CropId:  q.Get("cropId"),
		RanchId: q.Get("ranchId"),
		PlotId:  q.Get("plotId"),
		Tabla:   q.Get("tabla"),
	}
	var err error
	if filter.SowFrom, err = parseDateParam(q.Get("sowFrom"), false); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid sowFrom date", "expected YYYY-MM-DD")
		return
	}
	if filter.SowTo, err = parseDateParam(q.Get("sowTo"), true); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid sowTo date", "expected YYYY-MM-DD")
		return
	}
	if filter.HarvestFrom, err = parseDateParam(q.Get("harFrom"), false); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid harFrom date", "expected YYYY-MM-DD")
		return
	}
	if filter.HarvestTo, err = parseDateParam(q.Get("harTo"), true); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid harTo date", "expected YYYY-MM-DD")
		return
	}

	plantings, err := h.service.Find(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]PlantingDTO, 0, len(plantings))
	for _, p := range plantings {
		dtos = append(dtos, detailedToDTO(p))
	}
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	p, err := h.service.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writePlantingError(w, err)
		return
	}
	dto := struct {
		Id          string  `json:"id"`
		CropId      string  `json:"cropId"`
		VarietyId   string  `json:"varietyId,omitempty"`
		RanchId     string  `json:"ranchId"`
		PlotId      string  `json:"plotId"`
		Hectares    float64 `json:"hectares"`
		SowingDate  string  `json:"sowingDate"`
		HarvestDate string  `json:"harvestDate"`
		Status      string  `json:"status"`
		Tabla       string  `json:"tabla,omitempty"`
	}{
		Id: p.Id, CropId: p.CropId, VarietyId: p.VarietyId, RanchId: p.RanchId, PlotId: p.PlotId,
		Hectares: p.Hectares.InexactFloat64(), SowingDate: p.SowingDate.Format(dateLayout),
		HarvestDate: p.HarvestDate.Format(dateLayout), Status: string(p.Status), Tabla: p.Tabla,
	}
	if err := json.NewEncoder(w).Encode(dto); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Registering new planting")
	w.Header().Set("Content-Type", "application/json")

	p, err := decodeWrite(r)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, err.Error(), "")
		return
	}
	created, err := h.service.Create(r.Context(), p)
	if err != nil {
		writePlantingError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(map[string]string{"id": created.Id}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	p, err := decodeWrite(r)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, err.Error(), "")
		return
	}
	p.Id = mux.Vars(r)["id"]
	ok, err := h.service.Update(r.Context(), p)
	if err != nil {
		writePlantingError(w, err)
		return
	}
	if !ok {
		rest.WriteError(w, http.StatusNotFound, "Planting not found", "")
		return
	}
	if err := json.NewEncoder(w).Encode(map[string]bool{"ok": true}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ok, err := h.service.Delete(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !ok {
		rest.WriteError(w, http.StatusNotFound, "Planting not found", "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decodeWrite(r *http.Request) (Planting, error) {
	var dto writeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		return Planting{}, err
	}
	p := Planting{
		CropId:    dto.CropId,
		VarietyId: dto.VarietyId,
		RanchId:   dto.RanchId,
		PlotId:    dto.PlotId,
		Hectares:  decimal.NewFromFloat(dto.Hectares),
		Status:    Status(dto.Status),
		Tabla:     dto.Tabla,
	}
	var err error
	if p.SowingDate, err = time.Parse(dateLayout, dto.SowingDate); err != nil {
		return Planting{}, ErrMissingFields
	}
	if p.HarvestDate, err = time.Parse(dateLayout, dto.HarvestDate); err != nil {
		return Planting{}, ErrMissingFields
	}
	return p, nil
}

func detailedToDTO(p Detailed) PlantingDTO {
	dto := PlantingDTO{
		Id:             p.Id,
		Crop:           RefDTO{Id: p.CropId, Name: p.CropName},
		Ranch:          RefDTO{Id: p.RanchId, Name: p.RanchName},
		Plot:           RefDTO{Id: p.PlotId, Name: p.PlotName},
		Hectares:       p.Hectares.InexactFloat64(),
		SowingDate:     p.SowingDate.Format(dateLayout),
		HarvestDate:    p.HarvestDate.Format(dateLayout),
		SowingIsoWeek:  p.SowingIsoWeek,
		HarvestIsoWeek: p.HarvestIsoWeek,
		Status:         string(p.Status),
		Tabla:          p.Tabla,
	}
	if p.VarietyId != "" {
		dto.Variety = &RefDTO{Id: p.VarietyId, Name: p.VarietyName}
	}
	return dto
}

func writePlantingError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrMissingFields),
		errors.Is(err, ErrDatesOutOfOrder),
		errors.Is(err, ErrNonPositiveHectares):
		rest.WriteError(w, http.StatusBadRequest, err.Error(), "")
	case errors.Is(err, ErrNotFound):
		rest.WriteError(w, http.StatusNotFound, "Planting not found", "")
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func parseDateParam(value string, endOfDay bool) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	d, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, err
	}
	if endOfDay {
		d = d.Add(24*time.Hour - time.Millisecond)
	}
	return d, nil
}
