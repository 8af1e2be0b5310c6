package product

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type Repo interface {
	GetAll(ctx context.Context) ([]Product, error)
}

type RepoImpl struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) GetAll(ctx context.Context) ([]Product, error) {
	rows, err := r.db.Query(ctx, "SELECT id, name, unit, classification FROM product ORDER BY name")
	if err != nil {
		err = fmt.Errorf("could not query products: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.Id, &p.Name, &p.Unit, &p.Classification); err != nil {
			return nil, fmt.Errorf("could not scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
