package weekly_plan

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/agroplan/agroplan/pkg/isoweek"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPlanService struct {
	requested isoweek.WeekNumber
}

func (s *stubPlanService) GetPlanForWeek(ctx context.Context, week isoweek.WeekNumber) (WeekPlan, error) {
	s.requested = week
	start, end := week.Range()
	return WeekPlan{IsoWeek: week.String(), RangeStart: start, RangeEnd: end, Plan: []PlanEntry{}}, nil
}

func TestGetPlan(t *testing.T) {
	service := &stubPlanService{}
	handler := NewHandler(service)

	req := httptest.NewRequest(http.MethodGet, "/api/weekly-plan?iso=2025-W19", nil)
	w := httptest.NewRecorder()
	handler.GetPlan(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, isoweek.WeekNumber{Year: 2025, Week: 19}, service.requested)
	var dto WeekPlanDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dto))
	assert.Equal(t, "2025-W19", dto.IsoWeek)
}

func TestGetPlan_MissingIsoParam(t *testing.T) {
	handler := NewHandler(&stubPlanService{})

	req := httptest.NewRequest(http.MethodGet, "/api/weekly-plan", nil)
	w := httptest.NewRecorder()
	handler.GetPlan(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "iso")
}

func TestGetPlan_MalformedIso(t *testing.T) {
	handler := NewHandler(&stubPlanService{})

	req := httptest.NewRequest(http.MethodGet, "/api/weekly-plan?iso=2025-19", nil)
	w := httptest.NewRecorder()
	handler.GetPlan(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
