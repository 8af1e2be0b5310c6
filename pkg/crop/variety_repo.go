package crop

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type VarietyRepo interface {
	Store(ctx context.Context, variety Variety) (Variety, error)
	GetAll(ctx context.Context, cropId string) ([]Variety, error)
	Get(ctx context.Context, id string) (Variety, error)
	Update(ctx context.Context, variety Variety) (bool, error)
	HasDependencies(ctx context.Context, id string) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type VarietyRepoImpl struct {
	db *pgxpool.Pool
}

func NewVarietyRepo(db *pgxpool.Pool) *VarietyRepoImpl {
	return &VarietyRepoImpl{db: db}
}

func (r *VarietyRepoImpl) Store(ctx context.Context, variety Variety) (Variety, error) {
	variety.Id = uuid.NewString()
	_, err := r.db.Exec(ctx, "INSERT INTO variety (id, crop_id, name) VALUES ($1, $2, $3)",
		variety.Id, variety.CropId, variety.Name)
	if err != nil {
		if isUniqueViolation(err) {
			return Variety{}, fmt.Errorf("%w: variety %q", ErrNameConflict, variety.Name)
		}
		err = fmt.Errorf("could not store variety: %w", err)
		log.Error(err)
		return Variety{}, err
	}
	return variety, nil
}

// GetAll lists varieties, optionally restricted to one crop when cropId is
// not empty. Ordered by crop then name.
func (r *VarietyRepoImpl) GetAll(ctx context.Context, cropId string) ([]Variety, error) {
	query := "SELECT id, crop_id, name FROM variety"
	args := []any{}
	if cropId != "" {
		query += " WHERE crop_id = $1"
		args = append(args, cropId)
	}
	query += " ORDER BY crop_id, name"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		err = fmt.Errorf("could not query varieties: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var varieties []Variety
	for rows.Next() {
		var v Variety
		if err := rows.Scan(&v.Id, &v.CropId, &v.Name); err != nil {
			return nil, fmt.Errorf("could not scan variety: %w", err)
		}
		varieties = append(varieties, v)
	}
	return varieties, rows.Err()
}

func (r *VarietyRepoImpl) Get(ctx context.Context, id string) (Variety, error) {
	var v Variety
	err := r.db.QueryRow(ctx, "SELECT id, crop_id, name FROM variety WHERE id = $1", id).
		Scan(&v.Id, &v.CropId, &v.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return Variety{}, ErrVarietyNotFound
	}
	if err != nil {
		return Variety{}, fmt.Errorf("could not get variety: %w", err)
	}
	return v, nil
}

func (r *VarietyRepoImpl) Update(ctx context.Context, variety Variety) (bool, error) {
	tag, err := r.db.Exec(ctx, "UPDATE variety SET name = $1, crop_id = $2 WHERE id = $3",
		variety.Name, variety.CropId, variety.Id)
	if err != nil {
		if isUniqueViolation(err) {
			return false, fmt.Errorf("%w: variety %q", ErrNameConflict, variety.Name)
		}
		err = fmt.Errorf("could not update variety: %w", err)
		log.Error(err)
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *VarietyRepoImpl) HasDependencies(ctx context.Context, id string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM planting WHERE variety_id = $1)
			  OR EXISTS (SELECT 1 FROM recipe WHERE variety_id = $1)`
	var linked bool
	if err := r.db.QueryRow(ctx, query, id).Scan(&linked); err != nil {
		return false, fmt.Errorf("could not check variety dependencies: %w", err)
	}
	return linked, nil
}

func (r *VarietyRepoImpl) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.db.Exec(ctx, "DELETE FROM variety WHERE id = $1", id)
	if err != nil {
		err = fmt.Errorf("could not delete variety: %w", err)
		log.Error(err)
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
