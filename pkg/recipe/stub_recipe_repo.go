package recipe

import (
	"context"
	"slices"
	"strconv"
)

type StubRepo struct {
	nextId int
	data   map[string]Recipe
}

func NewStubRepo() *StubRepo {
	return &StubRepo{data: map[string]Recipe{}}
}

func (s *StubRepo) Store(ctx context.Context, r Recipe) (Recipe, error) {
	s.nextId++
	r.Id = "recipe-" + strconv.Itoa(s.nextId)
	r.IsActive = true
	s.data[r.Id] = r
	return r, nil
}

func (s *StubRepo) Get(ctx context.Context, id string) (Recipe, error) {
	r, ok := s.data[id]
	if !ok {
		return Recipe{}, ErrNotFound
	}
	return r, nil
}

func (s *StubRepo) GetAll(ctx context.Context) ([]Recipe, error) {
	recipes := make([]Recipe, 0, len(s.data))
	for _, r := range s.data {
		if r.IsActive {
			recipes = append(recipes, r)
		}
	}
	return recipes, nil
}

func (s *StubRepo) Update(ctx context.Context, r Recipe) (bool, error) {
	existing, ok := s.data[r.Id]
	if !ok {
		return false, nil
	}
	r.IsActive = existing.IsActive
	s.data[r.Id] = r
	return true, nil
}

func (s *StubRepo) Delete(ctx context.Context, id string) (bool, error) {
	if _, ok := s.data[id]; !ok {
		return false, nil
	}
	delete(s.data, id)
	return true, nil
}

func (s *StubRepo) FindForAggregation(ctx context.Context, cropIds []string, growthWeeks []int) ([]Recipe, error) {
	var recipes []Recipe
	for _, r := range s.data {
		if r.IsActive && slices.Contains(cropIds, r.CropId) && slices.Contains(growthWeeks, r.GrowthWeek) {
			recipes = append(recipes, r)
		}
	}
	return recipes, nil
}

func (s *StubRepo) Cleanup() {
	s.data = map[string]Recipe{}
}
