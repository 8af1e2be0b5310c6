package recipe

import (
	"testing"
	"time"

	"github.com/agroplan/agroplan/pkg/ranch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func week(year int, month time.Month, day int) (time.Time, time.Time) {
	start := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 6)
}

func names(recipes []*Recipe) []string {
	out := make([]string, 0, len(recipes))
	for _, r := range recipes {
		out = append(out, r.Name)
	}
	return out
}

func TestIndex_Candidates(t *testing.T) {
	recipes := []Recipe{
		{Id: "1", Name: "generic", CropId: "maiz", GrowthWeek: 3},
		{Id: "2", Name: "specific", CropId: "maiz", VarietyId: "dulce", GrowthWeek: 3},
		{Id: "3", Name: "other-week", CropId: "maiz", GrowthWeek: 4},
		{Id: "4", Name: "other-crop", CropId: "tomate", GrowthWeek: 3},
	}
	idx := BuildIndex(recipes)

	t.Run("variety-specific and generic are pooled", func(t *testing.T) {
		got := idx.Candidates("maiz", "dulce", 3)
		assert.ElementsMatch(t, []string{"specific", "generic"}, names(got))
	})

	t.Run("no variety only returns generic", func(t *testing.T) {
		got := idx.Candidates("maiz", "", 3)
		assert.ElementsMatch(t, []string{"generic"}, names(got))
	})

	t.Run("unknown key returns nothing", func(t *testing.T) {
		assert.Empty(t, idx.Candidates("maiz", "dulce", 99))
	})
}

func TestTemporalidadStrategy_SeasonalMatchWins(t *testing.T) {
	// a recipe scoped OCT-MAR and a year-round one on the same key: during
	// October only the seasonal recipe applies
	idx := BuildIndex([]Recipe{
		{Id: "a", Name: "invierno", CropId: "maiz", GrowthWeek: 2, Temporalidad: "OCT-MAR"},
		{Id: "b", Name: "anual", CropId: "maiz", GrowthWeek: 2, Temporalidad: "Anual"},
	})
	start, end := week(2025, time.October, 13)
	got := TemporalidadStrategy{}.Select(idx, Selection{
		CropId: "maiz", GrowthWeek: 2, WeekStart: start, WeekEnd: end,
	})
	require.Len(t, got, 1)
	assert.Equal(t, "invierno", got[0].Name)
}

func TestTemporalidadStrategy_AnnualFallback(t *testing.T) {
	idx := BuildIndex([]Recipe{
		{Id: "a", Name: "invierno", CropId: "maiz", GrowthWeek: 2, Temporalidad: "OCT-MAR"},
		{Id: "b", Name: "anual", CropId: "maiz", GrowthWeek: 2, Temporalidad: "Anual"},
	})
	start, end := week(2025, time.June, 9)
	got := TemporalidadStrategy{}.Select(idx, Selection{
		CropId: "maiz", GrowthWeek: 2, WeekStart: start, WeekEnd: end,
	})
	require.Len(t, got, 1)
	assert.Equal(t, "anual", got[0].Name)
}

func TestTemporalidadStrategy_NoMatch(t *testing.T) {
	idx := BuildIndex([]Recipe{
		{Id: "a", Name: "invierno", CropId: "maiz", GrowthWeek: 2, Temporalidad: "OCT-MAR"},
	})
	start, end := week(2025, time.June, 9)
	got := TemporalidadStrategy{}.Select(idx, Selection{
		CropId: "maiz", GrowthWeek: 2, WeekStart: start, WeekEnd: end,
	})
	assert.Empty(t, got)
}

func TestTemporalidadStrategy_MultipleSeasonalMatches(t *testing.T) {
	idx := BuildIndex([]Recipe{
		{Id: "a", Name: "otono", CropId: "maiz", GrowthWeek: 2, Temporalidad: "SEP-NOV"},
		{Id: "b", Name: "invierno", CropId: "maiz", GrowthWeek: 2, Temporalidad: "OCT-MAR"},
		{Id: "c", Name: "anual", CropId: "maiz", GrowthWeek: 2},
	})
	start, end := week(2025, time.October, 13)
	got := TemporalidadStrategy{}.Select(idx, Selection{
		CropId: "maiz", GrowthWeek: 2, WeekStart: start, WeekEnd: end,
	})
	assert.ElementsMatch(t, []string{"otono", "invierno"}, names(got))
}

func TestTemporalidadSiembraStrategy(t *testing.T) {
	idx := BuildIndex([]Recipe{
		{Id: "a", Name: "invernadero", CropId: "maiz", GrowthWeek: 2, SowingType: "Invernadero", Temporalidad: "Anual"},
		{Id: "b", Name: "campo", CropId: "maiz", GrowthWeek: 2, SowingType: "Campo Abierto", Temporalidad: "Anual"},
		{Id: "c", Name: "sin-tipo", CropId: "maiz", GrowthWeek: 2, Temporalidad: "Anual"},
	})
	start, end := week(2025, time.October, 13)

	t.Run("greenhouse planting only gets greenhouse recipes", func(t *testing.T) {
		got := TemporalidadSiembraStrategy{}.Select(idx, Selection{
			CropId: "maiz", GrowthWeek: 2, WeekStart: start, WeekEnd: end,
			SowingType: ranch.SowingTypeGreenhouse,
		})
		assert.ElementsMatch(t, []string{"invernadero"}, names(got))
	})

	t.Run("open field planting only gets open field recipes", func(t *testing.T) {
		got := TemporalidadSiembraStrategy{}.Select(idx, Selection{
			CropId: "maiz", GrowthWeek: 2, WeekStart: start, WeekEnd: end,
			SowingType: ranch.SowingTypeOpenField,
		})
		assert.ElementsMatch(t, []string{"campo"}, names(got))
	})

	t.Run("seasonality still applies after the sowing filter", func(t *testing.T) {
		idx := BuildIndex([]Recipe{
			{Id: "a", Name: "inv-verano", CropId: "maiz", GrowthWeek: 2, SowingType: "INVERNADERO", Temporalidad: "JUN-AGO"},
			{Id: "b", Name: "inv-anual", CropId: "maiz", GrowthWeek: 2, SowingType: "INVERNADERO", Temporalidad: "Anual"},
		})
		got := TemporalidadSiembraStrategy{}.Select(idx, Selection{
			CropId: "maiz", GrowthWeek: 2, WeekStart: start, WeekEnd: end,
			SowingType: ranch.SowingTypeGreenhouse,
		})
		assert.ElementsMatch(t, []string{"inv-anual"}, names(got))
	})
}

func TestStrategyByName(t *testing.T) {
	s, err := StrategyByName("")
	require.NoError(t, err)
	assert.Equal(t, StrategyTemporalidad, s.Name())

	s, err = StrategyByName("temporalidad_siembra")
	require.NoError(t, err)
	assert.Equal(t, StrategyTemporalidadSiembra, s.Name())

	_, err = StrategyByName("bogus")
	assert.ErrorIs(t, err, ErrUnknownStrategy)
}

func TestRecipe_NormalizedSowingType(t *testing.T) {
	tests := []struct {
		raw  string
		want ranch.SowingType
		ok   bool
	}{
		{"INVERNADERO", ranch.SowingTypeGreenhouse, true},
		{"invernadero", ranch.SowingTypeGreenhouse, true},
		{" Campo Abierto ", ranch.SowingTypeOpenField, true},
		{"túnel", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		r := Recipe{SowingType: tt.raw}
		got, ok := r.NormalizedSowingType()
		assert.Equal(t, tt.ok, ok, tt.raw)
		assert.Equal(t, tt.want, got, tt.raw)
	}
}
