package crop

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/agroplan/agroplan/internal/rest"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type CropDTO struct {
	Id   string `json:"id"`
	Name string `json:"name"`
}

type CropHandler struct {
	service CropService
}

func NewCropHandler(service CropService) *CropHandler {
	return &CropHandler{service}
}

func (h *CropHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	crops, err := h.service.GetAll(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	dtos := make([]CropDTO, 0, len(crops))
	for _, c := range crops {
		dtos = append(dtos, CropDTO{Id: c.Id, Name: c.Name})
	}
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *CropHandler) Get(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	c, err := h.service.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeCropError(w, err)
		return
	}
	if err := json.NewEncoder(w).Encode(CropDTO{Id: c.Id, Name: c.Name}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *CropHandler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Registering new crop")
	w.Header().Set("Content-Type", "application/json")

	var dto CropDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	created, err := h.service.Create(r.Context(), dto.Name)
	if err != nil {
		writeCropError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(CropDTO{Id: created.Id, Name: created.Name}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *CropHandler) Update(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	var dto CropDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	dto.Id = mux.Vars(r)["id"]
	ok, err := h.service.Update(r.Context(), Crop{Id: dto.Id, Name: dto.Name})
	if err != nil {
		writeCropError(w, err)
		return
	}
	if !ok {
		rest.WriteError(w, http.StatusNotFound, "Crop not found", "")
		return
	}
	if err := json.NewEncoder(w).Encode(dto); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *CropHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeCropError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeCropError maps service errors to HTTP statuses: validation 400,
// missing 404, conflicts and blocked deletes 409.
func writeCropError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNameRequired):
		rest.WriteError(w, http.StatusBadRequest, err.Error(), "")
	case errors.Is(err, ErrCropNotFound), errors.Is(err, ErrVarietyNotFound):
		rest.WriteError(w, http.StatusNotFound, "Not found", "")
	case errors.Is(err, ErrNameConflict), errors.Is(err, ErrHasDependencies):
		rest.WriteError(w, http.StatusConflict, err.Error(), "")
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
