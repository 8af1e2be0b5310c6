package supply

import (
	"context"
	"sort"

	"github.com/agroplan/agroplan/internal/utils"
	"github.com/agroplan/agroplan/pkg/isoweek"
	"github.com/agroplan/agroplan/pkg/planting"
	"github.com/agroplan/agroplan/pkg/ranch"
	"github.com/agroplan/agroplan/pkg/recipe"
	"github.com/agroplan/agroplan/pkg/zone"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	Aggregate(ctx context.Context, q Query) (Result, error)
}

type ServiceImpl struct {
	plantings planting.Repo
	recipes   recipe.Repo
	zones     zone.Resolver
	strategy  recipe.SelectionStrategy
	clock     utils.Clock
}

func NewService(plantings planting.Repo, recipes recipe.Repo, zones zone.Resolver,
	strategy recipe.SelectionStrategy, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{
		plantings: plantings,
		recipes:   recipes,
		zones:     zones,
		strategy:  strategy,
		clock:     clock,
	}
}

// Aggregate runs the full pivot: fetch the live plantings for the window,
// prefetch only the recipes their growth weeks can need, resolve the
// effective recipe set per planting-week, and accumulate quantities per
// product and week column.
func (s *ServiceImpl) Aggregate(ctx context.Context, q Query) (Result, error) {
	q = s.withDefaults(q)
	weeks := weeksInScope(q)
	columns := make([]string, 0, len(weeks))
	for _, w := range weeks {
		columns = append(columns, w.String())
	}

	meta := Meta{
		ZoneUsed:  q.Zone,
		Scope:     q.Scope,
		WeekStart: weeks[0].Week,
		WeekEnd:   weeks[len(weeks)-1].Week,
	}
	empty := Result{Year: q.Year, Week: q.Week, Columns: columns, Totals: []ProductRow{}, Meta: meta}

	ranchIds, ranchNames, matched, err := s.resolveRanchFilter(ctx, q)
	if err != nil {
		return Result{}, err
	}
	meta.RanchIdsUsed = ranchIds
	meta.RanchNamesUsed = ranchNames
	empty.Meta = meta
	if !matched {
		// the zone exists but covers no known ranch: filter down to nothing
		return empty, nil
	}

	rangeStart := weeks[0].Monday()
	_, rangeEnd := weeks[len(weeks)-1].Range()
	plantings, err := s.plantings.FindActiveOverlapping(ctx, rangeStart, rangeEnd, ranchIds, q.CropId)
	if err != nil {
		return Result{}, err
	}
	meta.CountPlantings = len(plantings)
	empty.Meta = meta
	if len(plantings) == 0 {
		return empty, nil
	}

	idx, err := s.prefetchRecipes(ctx, plantings, weeks)
	if err != nil {
		return Result{}, err
	}

	rows := map[string]*ProductRow{}
	for i := range plantings {
		p := &plantings[i]
		for _, w := range weeks {
			weekStart, weekEnd := w.Range()
			if !p.OverlapsRange(weekStart, weekEnd) {
				continue
			}
			growthWeek := isoweek.GrowthWeekAt(w.Monday(), p.SowingDate)
			selected := s.strategy.Select(idx, recipe.Selection{
				CropId:     p.CropId,
				VarietyId:  p.VarietyId,
				GrowthWeek: growthWeek,
				WeekStart:  weekStart,
				WeekEnd:    weekEnd,
				SowingType: ranch.SowingTypeOf(p.RanchName),
			})
			for _, r := range selected {
				accumulate(rows, r, p, w.String())
			}
		}
	}

	result := Result{Year: q.Year, Week: q.Week, Columns: columns, Totals: make([]ProductRow, 0, len(rows)), Meta: meta}
	for _, row := range rows {
		sort.Slice(row.Sources, func(i, j int) bool {
			return row.Sources[i].RecipeName < row.Sources[j].RecipeName
		})
		result.Totals = append(result.Totals, *row)
	}
	sort.Slice(result.Totals, func(i, j int) bool {
		return result.Totals[i].Name < result.Totals[j].Name
	})
	log.WithFields(log.Fields{
		"year": q.Year, "scope": q.Scope, "plantings": len(plantings), "products": len(result.Totals),
	}).Debug("Aggregated weekly supply")
	return result, nil
}

func (s *ServiceImpl) withDefaults(q Query) Query {
	if q.Year == 0 {
		q.Year = s.clock.Now().UTC().Year()
	}
	if q.Scope == "" {
		q.Scope = ScopeWeek
	}
	last := isoweek.WeeksInYear(q.Year)
	q.Week = clamp(q.Week, 1, last)
	if q.Scope == ScopeYear {
		if q.WeekStart == 0 {
			q.WeekStart = 1
		}
		if q.WeekEnd == 0 {
			q.WeekEnd = last
		}
		q.WeekStart = clamp(q.WeekStart, 1, last)
		q.WeekEnd = clamp(q.WeekEnd, 1, last)
		if q.WeekEnd < q.WeekStart {
			q.WeekEnd = q.WeekStart
		}
	}
	return q
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func weeksInScope(q Query) []isoweek.WeekNumber {
	if q.Scope != ScopeYear {
		return []isoweek.WeekNumber{{Year: q.Year, Week: q.Week}}
	}
	weeks := make([]isoweek.WeekNumber, 0, q.WeekEnd-q.WeekStart+1)
	for w := q.WeekStart; w <= q.WeekEnd; w++ {
		weeks = append(weeks, isoweek.WeekNumber{Year: q.Year, Week: w})
	}
	return weeks
}

// resolveRanchFilter turns the zone or ranch filter into a ranch id set.
// matched=false means a zone was requested but covers nothing; the result
// must then be empty rather than unfiltered.
func (s *ServiceImpl) resolveRanchFilter(ctx context.Context, q Query) (ids, names []string, matched bool, err error) {
	if q.Zone == "" {
		if q.RanchId != "" {
			return []string{q.RanchId}, nil, true, nil
		}
		return nil, nil, true, nil
	}
	res, err := s.zones.Resolve(ctx, q.Zone)
	if err != nil {
		return nil, nil, false, err
	}
	if len(res.RanchIds) == 0 {
		return nil, nil, false, nil
	}
	return res.RanchIds, res.RanchNames, true, nil
}

// prefetchRecipes loads only the recipes an aggregation pass can touch:
// the plantings' crops crossed with the growth weeks they reach inside
// the window.
func (s *ServiceImpl) prefetchRecipes(ctx context.Context, plantings []planting.Detailed, weeks []isoweek.WeekNumber) (*recipe.Index, error) {
	cropSet := map[string]bool{}
	weekSet := map[int]bool{}
	for i := range plantings {
		p := &plantings[i]
		cropSet[p.CropId] = true
		for _, w := range weeks {
			weekStart, weekEnd := w.Range()
			if p.OverlapsRange(weekStart, weekEnd) {
				weekSet[isoweek.GrowthWeekAt(w.Monday(), p.SowingDate)] = true
			}
		}
	}
	cropIds := make([]string, 0, len(cropSet))
	for id := range cropSet {
		cropIds = append(cropIds, id)
	}
	growthWeeks := make([]int, 0, len(weekSet))
	for w := range weekSet {
		growthWeeks = append(growthWeeks, w)
	}
	recipes, err := s.recipes.FindForAggregation(ctx, cropIds, growthWeeks)
	if err != nil {
		return nil, err
	}
	return recipe.BuildIndex(recipes), nil
}

func accumulate(rows map[string]*ProductRow, r *recipe.Recipe, p *planting.Detailed, weekKey string) {
	for _, item := range r.Items {
		contribution := item.QtyPerHectare.Mul(p.Hectares)

		row, ok := rows[item.ProductId]
		if !ok {
			row = &ProductRow{
				ProductId:      item.ProductId,
				Name:           item.Product,
				Unit:           item.Unit,
				Classification: r.Classification,
				Cells:          map[string]decimal.Decimal{},
			}
			rows[item.ProductId] = row
		}
		row.Cells[weekKey] = row.Cells[weekKey].Add(contribution)
		row.Total = row.Total.Add(contribution)

		var src *Source
		for i := range row.Sources {
			if row.Sources[i].RecipeId == r.Id {
				src = &row.Sources[i]
				break
			}
		}
		if src == nil {
			row.Sources = append(row.Sources, Source{
				RecipeId:       r.Id,
				RecipeName:     r.Name,
				Temporalidad:   r.Temporalidad,
				GrowthWeek:     r.GrowthWeek,
				Classification: r.Classification,
			})
			src = &row.Sources[len(row.Sources)-1]
		}
		src.TotalFromThisRecipe = src.TotalFromThisRecipe.Add(contribution)
		src.Occurrences++
	}
}
