package planting

import (
	"context"

	"github.com/agroplan/agroplan/pkg/isoweek"
)

type Service interface {
	Find(ctx context.Context, filter Filter) ([]Detailed, error)
	Get(ctx context.Context, id string) (Planting, error)
	Create(ctx context.Context, p Planting) (Planting, error)
	Update(ctx context.Context, p Planting) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type ServiceImpl struct {
	repo Repo
}

func NewService(repo Repo) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) Find(ctx context.Context, filter Filter) ([]Detailed, error) {
	return s.repo.Find(ctx, filter)
}

func (s *ServiceImpl) Get(ctx context.Context, id string) (Planting, error) {
	return s.repo.Get(ctx, id)
}

func (s *ServiceImpl) Create(ctx context.Context, p Planting) (Planting, error) {
	if err := p.Validate(); err != nil {
		return Planting{}, err
	}
	if p.Status == "" {
		p.Status = StatusActive
	}
	p.SowingIsoWeek = isoweek.KeyOf(p.SowingDate)
	p.HarvestIsoWeek = isoweek.KeyOf(p.HarvestDate)
	return s.repo.Store(ctx, p)
}

func (s *ServiceImpl) Update(ctx context.Context, p Planting) (bool, error) {
	if err := p.Validate(); err != nil {
		return false, err
	}
	if p.Status == "" {
		p.Status = StatusActive
	}
	// derived week keys follow the dates on every write
	p.SowingIsoWeek = isoweek.KeyOf(p.SowingDate)
	p.HarvestIsoWeek = isoweek.KeyOf(p.HarvestDate)
	return s.repo.Update(ctx, p)
}

func (s *ServiceImpl) Delete(ctx context.Context, id string) (bool, error) {
	return s.repo.Delete(ctx, id)
}
