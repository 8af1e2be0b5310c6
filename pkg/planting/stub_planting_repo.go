package planting

import (
	"context"
	"slices"
	"strconv"
	"strings"
	"time"
)

type StubRepo struct {
	nextId int
	data   map[string]Detailed
}

func NewStubRepo() *StubRepo {
	return &StubRepo{data: map[string]Detailed{}}
}

// Add seeds a detailed planting directly, for tests that need the joined
// catalog names without a catalog.
func (s *StubRepo) Add(d Detailed) Detailed {
	if d.Id == "" {
		s.nextId++
		d.Id = "planting-" + strconv.Itoa(s.nextId)
	}
	s.data[d.Id] = d
	return d
}

func (s *StubRepo) Store(ctx context.Context, p Planting) (Planting, error) {
	d := s.Add(Detailed{Planting: p})
	return d.Planting, nil
}

func (s *StubRepo) Get(ctx context.Context, id string) (Planting, error) {
	d, ok := s.data[id]
	if !ok {
		return Planting{}, ErrNotFound
	}
	return d.Planting, nil
}

func (s *StubRepo) Find(ctx context.Context, filter Filter) ([]Detailed, error) {
	var found []Detailed
	for _, d := range s.data {
		if filter.CropId != "" && d.CropId != filter.CropId {
			continue
		}
		if filter.RanchId != "" && d.RanchId != filter.RanchId {
			continue
		}
		if filter.PlotId != "" && d.PlotId != filter.PlotId {
			continue
		}
		if filter.Tabla != "" && !strings.Contains(strings.ToLower(d.Tabla), strings.ToLower(filter.Tabla)) {
			continue
		}
		found = append(found, d)
	}
	return found, nil
}

func (s *StubRepo) Update(ctx context.Context, p Planting) (bool, error) {
	d, ok := s.data[p.Id]
	if !ok {
		return false, nil
	}
	d.Planting = p
	s.data[p.Id] = d
	return true, nil
}

func (s *StubRepo) Delete(ctx context.Context, id string) (bool, error) {
	if _, ok := s.data[id]; !ok {
		return false, nil
	}
	delete(s.data, id)
	return true, nil
}

func (s *StubRepo) FindActiveOverlapping(ctx context.Context, start, end time.Time, ranchIds []string, cropId string) ([]Detailed, error) {
	var found []Detailed
	for _, d := range s.data {
		if d.Status != StatusActive || !d.OverlapsRange(start, end) {
			continue
		}
		if len(ranchIds) > 0 && !slices.Contains(ranchIds, d.RanchId) {
			continue
		}
		if cropId != "" && d.CropId != cropId {
			continue
		}
		found = append(found, d)
	}
	slices.SortFunc(found, func(a, b Detailed) int {
		return a.SowingDate.Compare(b.SowingDate)
	})
	return found, nil
}

func (s *StubRepo) Cleanup() {
	s.data = map[string]Detailed{}
}
