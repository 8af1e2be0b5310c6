package google

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/agroplan/agroplan/internal/rest"
	"github.com/agroplan/agroplan/pkg/supply"
)

type exportResponse struct {
	SpreadsheetUrl string `json:"spreadsheetUrl"`
}

type Handler struct {
	supplyService supply.Service
	exporter      SheetsExporter
}

func NewHandler(supplyService supply.Service, exporter SheetsExporter) *Handler {
	return &Handler{supplyService: supplyService, exporter: exporter}
}

// ExportWeeklySupply aggregates with the same filters as the JSON endpoint
// and writes the pivot into a new Google spreadsheet.
func (h *Handler) ExportWeeklySupply(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	query, err := supply.ParseQuery(r)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid query", err.Error())
		return
	}
	result, err := h.supplyService.Aggregate(r.Context(), query)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	url, err := h.exporter.ExportSupply(r.Context(), result)
	if err != nil {
		if errors.Is(err, ErrUnauthenticated) {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := json.NewEncoder(w).Encode(exportResponse{SpreadsheetUrl: url}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
