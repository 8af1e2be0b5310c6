package recipe

import (
	"context"
	"fmt"

	"github.com/agroplan/agroplan/pkg/seasonality"
)

type Service interface {
	CreateRecipe(ctx context.Context, r Recipe) (Recipe, error)
	GetRecipe(ctx context.Context, id string) (Recipe, error)
	GetRecipes(ctx context.Context) ([]Recipe, error)
	UpdateRecipe(ctx context.Context, r Recipe) (Recipe, error)
	DeleteRecipe(ctx context.Context, id string) error
}

type ServiceImpl struct {
	repo Repo
	// strictSeasonality rejects writes whose temporalidad does not parse,
	// instead of silently skipping the bad tokens at read time.
	strictSeasonality bool
}

func NewService(repo Repo, strictSeasonality bool) *ServiceImpl {
	return &ServiceImpl{repo: repo, strictSeasonality: strictSeasonality}
}

func (s *ServiceImpl) CreateRecipe(ctx context.Context, r Recipe) (Recipe, error) {
	if err := s.validate(r); err != nil {
		return Recipe{}, err
	}
	return s.repo.Store(ctx, r)
}

func (s *ServiceImpl) GetRecipe(ctx context.Context, id string) (Recipe, error) {
	return s.repo.Get(ctx, id)
}

func (s *ServiceImpl) GetRecipes(ctx context.Context) ([]Recipe, error) {
	return s.repo.GetAll(ctx)
}

func (s *ServiceImpl) UpdateRecipe(ctx context.Context, r Recipe) (Recipe, error) {
	if err := s.validate(r); err != nil {
		return Recipe{}, err
	}
	found, err := s.repo.Update(ctx, r)
	if err != nil {
		return Recipe{}, err
	}
	if !found {
		return Recipe{}, ErrNotFound
	}
	return s.repo.Get(ctx, r.Id)
}

func (s *ServiceImpl) DeleteRecipe(ctx context.Context, id string) error {
	found, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound
	}
	return nil
}

func (s *ServiceImpl) validate(r Recipe) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if s.strictSeasonality && r.Temporalidad != "" {
		if err := seasonality.Validate(r.Temporalidad); err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidSeasonality, err)
		}
	}
	return nil
}
