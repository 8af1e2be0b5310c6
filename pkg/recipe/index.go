package recipe

import (
	"fmt"
	"time"

	"github.com/agroplan/agroplan/pkg/ranch"
)

// Index is an in-memory lookup from (crop, variety-or-none, growthWeek) to
// candidate recipes, built per aggregation request from a prefetched set.
type Index struct {
	byKey map[string][]*Recipe
}

func indexKey(cropId, varietyId string, growthWeek int) string {
	if varietyId == "" {
		varietyId = "null"
	}
	return fmt.Sprintf("%s|%s|%d", cropId, varietyId, growthWeek)
}

func BuildIndex(recipes []Recipe) *Index {
	idx := &Index{byKey: make(map[string][]*Recipe)}
	for i := range recipes {
		r := &recipes[i]
		key := indexKey(r.CropId, r.VarietyId, r.GrowthWeek)
		idx.byKey[key] = append(idx.byKey[key], r)
	}
	return idx
}

// Candidates pools the variety-specific and the crop-generic recipes for a
// planting at a growth week. Variety-specific entries do not exclude the
// generic ones; both lists are candidates.
func (idx *Index) Candidates(cropId, varietyId string, growthWeek int) []*Recipe {
	candidates := append([]*Recipe{}, idx.byKey[indexKey(cropId, varietyId, growthWeek)]...)
	if varietyId != "" {
		candidates = append(candidates, idx.byKey[indexKey(cropId, "", growthWeek)]...)
	}
	return candidates
}

// Selection describes the planting-week pair a recipe set is resolved for.
type Selection struct {
	CropId     string
	VarietyId  string
	GrowthWeek int
	WeekStart  time.Time
	WeekEnd    time.Time
	// SowingType is the environment derived from the planting's ranch; only
	// consulted by the sowing-type-aware strategy.
	SowingType ranch.SowingType
}

// SelectionStrategy resolves the effective recipe set for a planting-week
// pair. Two competing resolution modes exist in production use; both are
// provided as explicit named strategies and chosen by configuration.
type SelectionStrategy interface {
	Name() string
	Select(idx *Index, sel Selection) []*Recipe
}

const (
	StrategyTemporalidad        = "temporalidad"
	StrategyTemporalidadSiembra = "temporalidad_siembra"
)

func StrategyByName(name string) (SelectionStrategy, error) {
	switch name {
	case StrategyTemporalidad, "":
		return TemporalidadStrategy{}, nil
	case StrategyTemporalidadSiembra:
		return TemporalidadSiembraStrategy{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

// TemporalidadStrategy filters the candidate pool by seasonality alone:
// recipes whose season touches any day of the week win outright; otherwise
// year-round recipes apply; otherwise nothing does.
type TemporalidadStrategy struct{}

func (TemporalidadStrategy) Name() string { return StrategyTemporalidad }

func (TemporalidadStrategy) Select(idx *Index, sel Selection) []*Recipe {
	candidates := idx.Candidates(sel.CropId, sel.VarietyId, sel.GrowthWeek)
	return filterBySeason(candidates, sel.WeekStart, sel.WeekEnd)
}

// TemporalidadSiembraStrategy additionally requires the recipe's sowing type
// to match the planting's environment exactly. The sowing-type filter runs
// before the seasonality steps; recipes without a recognizable sowing type
// never match in this mode.
type TemporalidadSiembraStrategy struct{}

func (TemporalidadSiembraStrategy) Name() string { return StrategyTemporalidadSiembra }

func (TemporalidadSiembraStrategy) Select(idx *Index, sel Selection) []*Recipe {
	candidates := idx.Candidates(sel.CropId, sel.VarietyId, sel.GrowthWeek)
	matching := make([]*Recipe, 0, len(candidates))
	for _, r := range candidates {
		st, ok := r.NormalizedSowingType()
		if ok && st == sel.SowingType {
			matching = append(matching, r)
		}
	}
	return filterBySeason(matching, sel.WeekStart, sel.WeekEnd)
}

func filterBySeason(candidates []*Recipe, weekStart, weekEnd time.Time) []*Recipe {
	if len(candidates) == 0 {
		return nil
	}

	// an explicit seasonal match wins outright; year-round recipes only
	// apply when no seasonal recipe covers the week
	var matching []*Recipe
	for _, r := range candidates {
		if !r.Season().IsAnnual() && r.Season().MatchesRange(weekStart, weekEnd) {
			matching = append(matching, r)
		}
	}
	if len(matching) > 0 {
		return matching
	}

	// fallback: year-round recipes
	var annual []*Recipe
	for _, r := range candidates {
		if r.Season().IsAnnual() {
			annual = append(annual, r)
		}
	}
	return annual
}
