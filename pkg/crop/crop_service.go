package crop

import (
	"context"
	"fmt"
	"strings"
)

var ErrNameRequired = fmt.Errorf("name is required")

type CropService interface {
	GetAll(ctx context.Context) ([]Crop, error)
	Get(ctx context.Context, id string) (Crop, error)
	Create(ctx context.Context, name string) (Crop, error)
	Update(ctx context.Context, crop Crop) (bool, error)
	Delete(ctx context.Context, id string) error
}

type CropServiceImpl struct {
	repo CropRepo
}

func NewCropService(repo CropRepo) *CropServiceImpl {
	return &CropServiceImpl{repo: repo}
}

func (s *CropServiceImpl) GetAll(ctx context.Context) ([]Crop, error) {
	return s.repo.GetAll(ctx)
}

func (s *CropServiceImpl) Get(ctx context.Context, id string) (Crop, error) {
	return s.repo.Get(ctx, id)
}

func (s *CropServiceImpl) Create(ctx context.Context, name string) (Crop, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Crop{}, ErrNameRequired
	}
	return s.repo.Store(ctx, Crop{Name: name})
}

func (s *CropServiceImpl) Update(ctx context.Context, crop Crop) (bool, error) {
	crop.Name = strings.TrimSpace(crop.Name)
	if crop.Name == "" {
		return false, ErrNameRequired
	}
	return s.repo.Update(ctx, crop)
}

// Delete refuses to remove a crop that is still referenced by varieties,
// plantings or recipes. Catalog deletes never cascade.
func (s *CropServiceImpl) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return err
	}
	linked, err := s.repo.HasDependencies(ctx, id)
	if err != nil {
		return err
	}
	if linked {
		return fmt.Errorf("%w: crop is referenced by varieties, plantings or recipes", ErrHasDependencies)
	}
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrCropNotFound
	}
	return nil
}

type VarietyService interface {
	GetAll(ctx context.Context, cropId string) ([]Variety, error)
	Get(ctx context.Context, id string) (Variety, error)
	Create(ctx context.Context, name string, cropId string) (Variety, error)
	Update(ctx context.Context, variety Variety) (bool, error)
	Delete(ctx context.Context, id string) error
}

type VarietyServiceImpl struct {
	repo VarietyRepo
}

func NewVarietyService(repo VarietyRepo) *VarietyServiceImpl {
	return &VarietyServiceImpl{repo: repo}
}

func (s *VarietyServiceImpl) GetAll(ctx context.Context, cropId string) ([]Variety, error) {
	return s.repo.GetAll(ctx, cropId)
}

func (s *VarietyServiceImpl) Get(ctx context.Context, id string) (Variety, error) {
	return s.repo.Get(ctx, id)
}

func (s *VarietyServiceImpl) Create(ctx context.Context, name string, cropId string) (Variety, error) {
	name = strings.TrimSpace(name)
	if name == "" || cropId == "" {
		return Variety{}, fmt.Errorf("%w: name and crop are required", ErrNameRequired)
	}
	return s.repo.Store(ctx, Variety{Name: name, CropId: cropId})
}

func (s *VarietyServiceImpl) Update(ctx context.Context, variety Variety) (bool, error) {
	variety.Name = strings.TrimSpace(variety.Name)
	if variety.Name == "" || variety.CropId == "" {
		return false, fmt.Errorf("%w: name and crop are required", ErrNameRequired)
	}
	return s.repo.Update(ctx, variety)
}

func (s *VarietyServiceImpl) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return err
	}
	linked, err := s.repo.HasDependencies(ctx, id)
	if err != nil {
		return err
	}
	if linked {
		return fmt.Errorf("%w: variety is referenced by plantings or recipes", ErrHasDependencies)
	}
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrVarietyNotFound
	}
	return nil
}
