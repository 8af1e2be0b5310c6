package supply

import (
	"context"
	"testing"
	"time"

	"github.com/agroplan/agroplan/internal/utils"
	"github.com/agroplan/agroplan/pkg/isoweek"
	"github.com/agroplan/agroplan/pkg/planting"
	"github.com/agroplan/agroplan/pkg/product"
	"github.com/agroplan/agroplan/pkg/ranch"
	"github.com/agroplan/agroplan/pkg/recipe"
	"github.com/agroplan/agroplan/pkg/zone"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRanchRepo struct {
	byName map[string]ranch.Ranch
}

func (s *stubRanchRepo) GetAll(ctx context.Context) ([]ranch.Ranch, error) { return nil, nil }

func (s *stubRanchRepo) FindByNames(ctx context.Context, names []string) ([]ranch.Ranch, error) {
	var out []ranch.Ranch
	for _, name := range names {
		if r, ok := s.byName[name]; ok {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *stubRanchRepo) GetPlots(ctx context.Context, ranchId string) ([]ranch.Plot, error) {
	return nil, nil
}

type fixture struct {
	plantings *planting.StubRepo
	recipes   *recipe.StubRepo
	service   *ServiceImpl
}

func newFixture(t *testing.T, zones map[string][]string, ranches ranch.Repo) *fixture {
	t.Helper()
	plantings := planting.NewStubRepo()
	recipes := recipe.NewStubRepo()
	service := NewService(
		plantings,
		recipes,
		zone.NewResolver(zones, ranches),
		recipe.TemporalidadStrategy{},
		&utils.MockClock{FixedNow: time.Date(2025, 5, 15, 12, 0, 0, 0, time.UTC)},
	)
	return &fixture{plantings: plantings, recipes: recipes, service: service}
}

// seedMaiz installs the competing recipes from the seasonality-match
// scenario: a seasonal ABR-SEP recipe at 2 per hectare and a year-round one
// at 1 per hectare, both at growth week 3 for the same crop and product.
func seedMaiz(t *testing.T, f *fixture) {
	t.Helper()
	ctx := context.Background()
	_, err := f.recipes.Store(ctx, recipe.Recipe{
		Name:           "Maíz abril-septiembre",
		Classification: product.ClassificationFertilizante,
		CropId:         "maiz",
		GrowthWeek:     3,
		Temporalidad:   "ABR-SEP",
		Items: []recipe.Item{{
			ProductId:     "product-x",
			Product:       "Producto X",
			Unit:          "kg",
			QtyPerHectare: decimal.NewFromInt(2),
		}},
	})
	require.NoError(t, err)
	_, err = f.recipes.Store(ctx, recipe.Recipe{
		Name:           "Maíz anual",
		Classification: product.ClassificationFertilizante,
		CropId:         "maiz",
		GrowthWeek:     3,
		Temporalidad:   "Anual",
		Items: []recipe.Item{{
			ProductId:     "product-x",
			Product:       "Producto X",
			Unit:          "kg",
			QtyPerHectare: decimal.NewFromInt(1),
		}},
	})
	require.NoError(t, err)
}

// seedPlanting sows 10 hectares so that the given week is the planting's
// growth week 3 (sown two weeks before the week's Monday).
func seedPlanting(f *fixture, year, week int, ranchName string) planting.Detailed {
	monday := isoweek.Monday(year, week)
	return f.plantings.Add(planting.Detailed{
		Planting: planting.Planting{
			CropId:      "maiz",
			RanchId:     "ranch-1",
			PlotId:      "plot-1",
			Hectares:    decimal.NewFromInt(10),
			SowingDate:  monday.AddDate(0, 0, -14),
			HarvestDate: monday.AddDate(0, 0, 60),
			Status:      planting.StatusActive,
		},
		CropName:  "Maíz",
		RanchName: ranchName,
	})
}

func TestAggregate_SeasonalRecipeWins(t *testing.T) {
	f := newFixture(t, nil, nil)
	seedMaiz(t, f)
	// week 19 of 2025 starts May 5: inside ABR-SEP
	seedPlanting(f, 2025, 19, "Rancho Norte")

	result, err := f.service.Aggregate(context.Background(), Query{Year: 2025, Week: 19})
	require.NoError(t, err)

	assert.Equal(t, []string{"2025-W19"}, result.Columns)
	require.Len(t, result.Totals, 1)
	row := result.Totals[0]
	assert.Equal(t, "Producto X", row.Name)
	assert.True(t, row.Total.Equal(decimal.NewFromInt(20)), "total = %s", row.Total)
	assert.True(t, row.Cells["2025-W19"].Equal(decimal.NewFromInt(20)))
	require.Len(t, row.Sources, 1)
	assert.Equal(t, "Maíz abril-septiembre", row.Sources[0].RecipeName)
	assert.Equal(t, 1, row.Sources[0].Occurrences)
	assert.Equal(t, 1, result.Meta.CountPlantings)
}

func TestAggregate_AnnualFallbackOutOfSeason(t *testing.T) {
	f := newFixture(t, nil, nil)
	seedMaiz(t, f)
	// week 50 of 2025 starts December 8: outside ABR-SEP
	seedPlanting(f, 2025, 50, "Rancho Norte")

	result, err := f.service.Aggregate(context.Background(), Query{Year: 2025, Week: 50})
	require.NoError(t, err)

	require.Len(t, result.Totals, 1)
	row := result.Totals[0]
	assert.True(t, row.Total.Equal(decimal.NewFromInt(10)), "total = %s", row.Total)
	require.Len(t, row.Sources, 1)
	assert.Equal(t, "Maíz anual", row.Sources[0].RecipeName)
}

func TestAggregate_NoRecipeForGrowthWeek(t *testing.T) {
	f := newFixture(t, nil, nil)
	seedMaiz(t, f)
	// growth week 1, nothing is defined there
	monday := isoweek.Monday(2025, 19)
	f.plantings.Add(planting.Detailed{
		Planting: planting.Planting{
			CropId:      "maiz",
			RanchId:     "ranch-1",
			PlotId:      "plot-1",
			Hectares:    decimal.NewFromInt(10),
			SowingDate:  monday,
			HarvestDate: monday.AddDate(0, 0, 60),
			Status:      planting.StatusActive,
		},
		RanchName: "Rancho Norte",
	})

	result, err := f.service.Aggregate(context.Background(), Query{Year: 2025, Week: 19})
	require.NoError(t, err)
	assert.Empty(t, result.Totals)
	assert.Equal(t, 1, result.Meta.CountPlantings)
}

func TestAggregate_YearScopeWalksPlantingWeeks(t *testing.T) {
	f := newFixture(t, nil, nil)
	seedMaiz(t, f)
	// sown at week 18's Monday: growth week 3 falls in week 20
	monday := isoweek.Monday(2025, 18)
	f.plantings.Add(planting.Detailed{
		Planting: planting.Planting{
			CropId:      "maiz",
			RanchId:     "ranch-1",
			PlotId:      "plot-1",
			Hectares:    decimal.NewFromInt(10),
			SowingDate:  monday,
			HarvestDate: monday.AddDate(0, 0, 27),
			Status:      planting.StatusActive,
		},
		RanchName: "Rancho Norte",
	})

	result, err := f.service.Aggregate(context.Background(), Query{
		Year: 2025, Scope: ScopeYear, WeekStart: 18, WeekEnd: 22,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"2025-W18", "2025-W19", "2025-W20", "2025-W21", "2025-W22"}, result.Columns)
	require.Len(t, result.Totals, 1)
	row := result.Totals[0]
	// only week 20 hits growth week 3; the rest resolve no recipes
	assert.True(t, row.Cells["2025-W20"].Equal(decimal.NewFromInt(20)))
	assert.True(t, row.Total.Equal(decimal.NewFromInt(20)))
}

func TestAggregate_EmptyResultKeepsColumns(t *testing.T) {
	f := newFixture(t, nil, nil)

	result, err := f.service.Aggregate(context.Background(), Query{Year: 2025, Week: 19})
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-W19"}, result.Columns)
	assert.NotNil(t, result.Totals)
	assert.Empty(t, result.Totals)
	assert.Equal(t, 0, result.Meta.CountPlantings)
}

func TestAggregate_ZoneWithNoRanchesMatchesNothing(t *testing.T) {
	ranches := &stubRanchRepo{byName: map[string]ranch.Ranch{}}
	f := newFixture(t, map[string][]string{"A": {"Rancho Fantasma"}}, ranches)
	seedMaiz(t, f)
	seedPlanting(f, 2025, 19, "Rancho Norte")

	result, err := f.service.Aggregate(context.Background(), Query{Year: 2025, Week: 19, Zone: "A"})
	require.NoError(t, err)
	assert.Empty(t, result.Totals)
	assert.Equal(t, 0, result.Meta.CountPlantings)
	assert.Equal(t, "A", result.Meta.ZoneUsed)
}

func TestAggregate_ZoneFiltersPlantings(t *testing.T) {
	ranches := &stubRanchRepo{byName: map[string]ranch.Ranch{
		"Rancho Norte": {Id: "ranch-1", Name: "Rancho Norte"},
	}}
	f := newFixture(t, map[string][]string{"A": {"Rancho Norte"}}, ranches)
	seedMaiz(t, f)
	seedPlanting(f, 2025, 19, "Rancho Norte")
	// second planting on a ranch outside the zone
	monday := isoweek.Monday(2025, 19)
	f.plantings.Add(planting.Detailed{
		Planting: planting.Planting{
			CropId:      "maiz",
			RanchId:     "ranch-2",
			PlotId:      "plot-9",
			Hectares:    decimal.NewFromInt(50),
			SowingDate:  monday.AddDate(0, 0, -14),
			HarvestDate: monday.AddDate(0, 0, 60),
			Status:      planting.StatusActive,
		},
		RanchName: "Rancho Sur",
	})

	result, err := f.service.Aggregate(context.Background(), Query{Year: 2025, Week: 19, Zone: "A"})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Meta.CountPlantings)
	assert.Equal(t, []string{"ranch-1"}, result.Meta.RanchIdsUsed)
	require.Len(t, result.Totals, 1)
	assert.True(t, result.Totals[0].Total.Equal(decimal.NewFromInt(20)))
}

func TestAggregate_Idempotent(t *testing.T) {
	f := newFixture(t, nil, nil)
	seedMaiz(t, f)
	seedPlanting(f, 2025, 19, "Rancho Norte")
	seedPlanting(f, 2025, 19, "Rancho Sur")

	query := Query{Year: 2025, Scope: ScopeYear, WeekStart: 17, WeekEnd: 21}
	first, err := f.service.Aggregate(context.Background(), query)
	require.NoError(t, err)
	second, err := f.service.Aggregate(context.Background(), query)
	require.NoError(t, err)

	renderer := NewCsvRenderer()
	firstCsv, err := renderer.RenderPivot(first)
	require.NoError(t, err)
	secondCsv, err := renderer.RenderPivot(second)
	require.NoError(t, err)
	assert.Equal(t, firstCsv, secondCsv)
}

func TestAggregate_DefaultsFromClock(t *testing.T) {
	f := newFixture(t, nil, nil)
	result, err := f.service.Aggregate(context.Background(), Query{})
	require.NoError(t, err)
	assert.Equal(t, 2025, result.Year)
	assert.Equal(t, 1, result.Week)
	assert.Equal(t, ScopeWeek, result.Meta.Scope)
}
