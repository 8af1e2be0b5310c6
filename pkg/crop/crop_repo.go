package crop

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type CropRepo interface {
	Store(ctx context.Context, crop Crop) (Crop, error)
	GetAll(ctx context.Context) ([]Crop, error)
	Get(ctx context.Context, id string) (Crop, error)
	Update(ctx context.Context, crop Crop) (bool, error)
	// HasDependencies reports whether any variety, planting or recipe still
	// references the crop.
	HasDependencies(ctx context.Context, id string) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type CropRepoImpl struct {
	db *pgxpool.Pool
}

func NewCropRepo(db *pgxpool.Pool) *CropRepoImpl {
	return &CropRepoImpl{db: db}
}

// uniqueViolation is the Postgres error code for unique constraint violations.
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func (r *CropRepoImpl) Store(ctx context.Context, crop Crop) (Crop, error) {
	crop.Id = uuid.NewString()
	_, err := r.db.Exec(ctx, "INSERT INTO crop (id, name) VALUES ($1, $2)", crop.Id, crop.Name)
	if err != nil {
		if isUniqueViolation(err) {
			return Crop{}, fmt.Errorf("%w: crop %q", ErrNameConflict, crop.Name)
		}
		err = fmt.Errorf("could not store crop: %w", err)
		log.Error(err)
		return Crop{}, err
	}
	return crop, nil
}

func (r *CropRepoImpl) GetAll(ctx context.Context) ([]Crop, error) {
	rows, err := r.db.Query(ctx, "SELECT id, name FROM crop ORDER BY name")
	if err != nil {
		err = fmt.Errorf("could not query crops: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var crops []Crop
	for rows.Next() {
		var c Crop
		if err := rows.Scan(&c.Id, &c.Name); err != nil {
			return nil, fmt.Errorf("could not scan crop: %w", err)
		}
		crops = append(crops, c)
	}
	return crops, rows.Err()
}

func (r *CropRepoImpl) Get(ctx context.Context, id string) (Crop, error) {
	var c Crop
	err := r.db.QueryRow(ctx, "SELECT id, name FROM crop WHERE id = $1", id).Scan(&c.Id, &c.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return Crop{}, ErrCropNotFound
	}
	if err != nil {
		return Crop{}, fmt.Errorf("could not get crop: %w", err)
	}
	return c, nil
}

func (r *CropRepoImpl) Update(ctx context.Context, crop Crop) (bool, error) {
	tag, err := r.db.Exec(ctx, "UPDATE crop SET name = $1 WHERE id = $2", crop.Name, crop.Id)
	if err != nil {
		if isUniqueViolation(err) {
			return false, fmt.Errorf("%w: crop %q", ErrNameConflict, crop.Name)
		}
		err = fmt.Errorf("could not update crop: %w", err)
		log.Error(err)
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *CropRepoImpl) HasDependencies(ctx context.Context, id string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM variety WHERE crop_id = $1)
			  OR EXISTS (SELECT 1 FROM planting WHERE crop_id = $1)
			  OR EXISTS (SELECT 1 FROM recipe WHERE crop_id = $1)`
	var linked bool
	if err := r.db.QueryRow(ctx, query, id).Scan(&linked); err != nil {
		return false, fmt.Errorf("could not check crop dependencies: %w", err)
	}
	return linked, nil
}

func (r *CropRepoImpl) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.db.Exec(ctx, "DELETE FROM crop WHERE id = $1", id)
	if err != nil {
		err = fmt.Errorf("could not delete crop: %w", err)
		log.Error(err)
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
