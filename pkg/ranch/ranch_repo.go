package ranch

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type Repo interface {
	GetAll(ctx context.Context) ([]Ranch, error)
	// FindByNames resolves ranch names to catalog entries. Unknown names are
	// simply absent from the result.
	FindByNames(ctx context.Context, names []string) ([]Ranch, error)
	GetPlots(ctx context.Context, ranchId string) ([]Plot, error)
}

type RepoImpl struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) GetAll(ctx context.Context) ([]Ranch, error) {
	rows, err := r.db.Query(ctx, "SELECT id, name FROM ranch ORDER BY name")
	if err != nil {
		err = fmt.Errorf("could not query ranches: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var ranches []Ranch
	for rows.Next() {
		var item Ranch
		if err := rows.Scan(&item.Id, &item.Name); err != nil {
			return nil, fmt.Errorf("could not scan ranch: %w", err)
		}
		ranches = append(ranches, item)
	}
	return ranches, rows.Err()
}

func (r *RepoImpl) FindByNames(ctx context.Context, names []string) ([]Ranch, error) {
	if len(names) == 0 {
		return nil, nil
	}
	rows, err := r.db.Query(ctx, "SELECT id, name FROM ranch WHERE name = ANY($1)", names)
	if err != nil {
		err = fmt.Errorf("could not query ranches by name: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var ranches []Ranch
	for rows.Next() {
		var item Ranch
		if err := rows.Scan(&item.Id, &item.Name); err != nil {
			return nil, fmt.Errorf("could not scan ranch: %w", err)
		}
		ranches = append(ranches, item)
	}
	return ranches, rows.Err()
}

func (r *RepoImpl) GetPlots(ctx context.Context, ranchId string) ([]Plot, error) {
	rows, err := r.db.Query(ctx,
		"SELECT id, ranch_id, name, hectares FROM plot WHERE ranch_id = $1 ORDER BY name", ranchId)
	if err != nil {
		err = fmt.Errorf("could not query plots: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var plots []Plot
	for rows.Next() {
		var p Plot
		if err := rows.Scan(&p.Id, &p.RanchId, &p.Name, &p.Hectares); err != nil {
			return nil, fmt.Errorf("could not scan plot: %w", err)
		}
		plots = append(plots, p)
	}
	return plots, rows.Err()
}
