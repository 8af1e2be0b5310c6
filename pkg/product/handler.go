package product

import (
	"encoding/json"
	"net/http"
)

type ProductDTO struct {
	Id             string `json:"id"`
	Name           string `json:"name"`
	Unit           string `json:"unit"`
	Classification string `json:"classification"`
}

type Handler struct {
	repo Repo
}

func NewHandler(repo Repo) *Handler {
	return &Handler{repo}
}

func (h *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	products, err := h.repo.GetAll(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	dtos := make([]ProductDTO, 0, len(products))
	for _, p := range products {
		dtos = append(dtos, ProductDTO{Id: p.Id, Name: p.Name, Unit: p.Unit, Classification: string(p.Classification)})
	}
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
