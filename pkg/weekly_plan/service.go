package weekly_plan

import (
	"context"

	"github.com/agroplan/agroplan/pkg/isoweek"
	"github.com/agroplan/agroplan/pkg/planting"
	"github.com/agroplan/agroplan/pkg/ranch"
	"github.com/agroplan/agroplan/pkg/recipe"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	GetPlanForWeek(ctx context.Context, week isoweek.WeekNumber) (WeekPlan, error)
}

type ServiceImpl struct {
	plantings planting.Repo
	recipes   recipe.Repo
	strategy  recipe.SelectionStrategy
}

func NewService(plantings planting.Repo, recipes recipe.Repo, strategy recipe.SelectionStrategy) *ServiceImpl {
	return &ServiceImpl{plantings: plantings, recipes: recipes, strategy: strategy}
}

func (s *ServiceImpl) GetPlanForWeek(ctx context.Context, week isoweek.WeekNumber) (WeekPlan, error) {
	weekStart, weekEnd := week.Range()
	plan := WeekPlan{
		IsoWeek:    week.String(),
		RangeStart: weekStart,
		RangeEnd:   weekEnd,
		Plan:       []PlanEntry{},
	}

	plantings, err := s.plantings.FindActiveOverlapping(ctx, weekStart, weekEnd, nil, "")
	if err != nil {
		return WeekPlan{}, err
	}
	if len(plantings) == 0 {
		return plan, nil
	}

	idx, err := s.prefetchRecipes(ctx, plantings, week)
	if err != nil {
		return WeekPlan{}, err
	}

	for i := range plantings {
		p := &plantings[i]
		growthWeek := isoweek.GrowthWeekAt(week.Monday(), p.SowingDate)
		selected := s.strategy.Select(idx, recipe.Selection{
			CropId:     p.CropId,
			VarietyId:  p.VarietyId,
			GrowthWeek: growthWeek,
			WeekStart:  weekStart,
			WeekEnd:    weekEnd,
			SowingType: ranch.SowingTypeOf(p.RanchName),
		})

		entry := PlanEntry{Planting: *p, GrowthWeek: growthWeek, Packages: make([]Package, 0, len(selected))}
		for _, r := range selected {
			pkg := Package{
				Id:             r.Id,
				Name:           r.Name,
				Classification: r.Classification,
				GrowthWeek:     r.GrowthWeek,
				Temporalidad:   r.Temporalidad,
			}
			for _, item := range r.Items {
				pkg.Items = append(pkg.Items, PackageItem{
					ProductId:     item.ProductId,
					Product:       item.Product,
					Unit:          item.Unit,
					QtyPerHectare: item.QtyPerHectare,
					QtyTotal:      item.QtyPerHectare.Mul(p.Hectares),
				})
			}
			entry.Packages = append(entry.Packages, pkg)
		}
		plan.Plan = append(plan.Plan, entry)
		plan.Totals.Plantings++
		plan.Totals.Hectares = plan.Totals.Hectares.Add(p.Hectares)
	}

	log.WithFields(log.Fields{"week": week.String(), "plantings": plan.Totals.Plantings}).
		Debug("Built weekly plan")
	return plan, nil
}

func (s *ServiceImpl) prefetchRecipes(ctx context.Context, plantings []planting.Detailed, week isoweek.WeekNumber) (*recipe.Index, error) {
	cropSet := map[string]bool{}
	weekSet := map[int]bool{}
	for i := range plantings {
		cropSet[plantings[i].CropId] = true
		weekSet[isoweek.GrowthWeekAt(week.Monday(), plantings[i].SowingDate)] = true
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
