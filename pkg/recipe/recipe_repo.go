package recipe

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type Repo interface {
	Store(ctx context.Context, r Recipe) (Recipe, error)
	Get(ctx context.Context, id string) (Recipe, error)
	// GetAll returns active recipes ordered by crop, growth week and name.
	GetAll(ctx context.Context) ([]Recipe, error)
	// Update replaces the recipe head and all of its items inside a single
	// transaction (delete-all-then-insert-all, never an incremental patch).
	Update(ctx context.Context, r Recipe) (bool, error)
	// Delete removes the recipe; items go with it and nothing else does.
	Delete(ctx context.Context, id string) (bool, error)
	// FindForAggregation prefetches the active recipes relevant to an
	// aggregation pass: only the given crops and growth weeks, with items.
	FindForAggregation(ctx context.Context, cropIds []string, growthWeeks []int) ([]Recipe, error)
}

type RepoImpl struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *RepoImpl {
	return &RepoImpl{db: db}
}

func (repo *RepoImpl) Store(ctx context.Context, r Recipe) (Recipe, error) {
	r.Id = uuid.NewString()
	err := pgx.BeginFunc(ctx, repo.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `INSERT INTO recipe (
					id, name, classification, crop_id, variety_id, growth_week,
					temporalidad, sowing_type, is_active
				) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, TRUE)`,
			r.Id, r.Name, r.Classification, r.CropId, nullable(r.VarietyId),
			r.GrowthWeek, nullable(r.Temporalidad), nullable(r.SowingType),
		)
		if err != nil {
			return err
		}
		return insertItems(ctx, tx, r.Id, r.Items)
	})
	if err != nil {
		err = fmt.Errorf("could not store recipe: %w", err)
		log.Error(err)
		return Recipe{}, err
	}
	r.IsActive = true
	return r, nil
}

func (repo *RepoImpl) Update(ctx context.Context, r Recipe) (bool, error) {
	var found bool
	err := pgx.BeginFunc(ctx, repo.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `UPDATE recipe SET
					name = $1,
					classification = $2,
					crop_id = $3,
					variety_id = $4,
					growth_week = $5,
					temporalidad = $6,
					sowing_type = $7
				WHERE id = $8`,
			r.Name, r.Classification, r.CropId, nullable(r.VarietyId),
			r.GrowthWeek, nullable(r.Temporalidad), nullable(r.SowingType), r.Id,
		)
		if err != nil {
			return err
		}
		found = tag.RowsAffected() == 1
		if !found {
			return nil
		}
		if _, err := tx.Exec(ctx, "DELETE FROM recipe_item WHERE recipe_id = $1", r.Id); err != nil {
			return err
		}
		return insertItems(ctx, tx, r.Id, r.Items)
	})
	if err != nil {
		err = fmt.Errorf("could not update recipe: %w", err)
		log.Error(err)
		return false, err
	}
	return found, nil
}

func insertItems(ctx context.Context, tx pgx.Tx, recipeId string, items []Item) error {
	for _, item := range items {
		_, err := tx.Exec(ctx, `INSERT INTO recipe_item (id, recipe_id, product_id, qty_per_hectare, notes)
				VALUES ($1, $2, $3, $4, $5)`,
			uuid.NewString(), recipeId, item.ProductId, item.QtyPerHectare, nullable(item.Notes),
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (repo *RepoImpl) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := repo.db.Exec(ctx, "DELETE FROM recipe WHERE id = $1", id)
	if err != nil {
		err = fmt.Errorf("could not delete recipe: %w", err)
		log.Error(err)
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

const recipeColumns = `r.id, r.name, r.classification, r.crop_id, COALESCE(r.variety_id, ''),
	r.growth_week, COALESCE(r.temporalidad, ''), COALESCE(r.sowing_type, ''), r.is_active`

func (repo *RepoImpl) Get(ctx context.Context, id string) (Recipe, error) {
	query := "SELECT " + recipeColumns + " FROM recipe r WHERE r.id = $1"
	var r Recipe
	err := repo.db.QueryRow(ctx, query, id).Scan(
		&r.Id, &r.Name, &r.Classification, &r.CropId, &r.VarietyId,
		&r.GrowthWeek, &r.Temporalidad, &r.SowingType, &r.IsActive,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Recipe{}, ErrNotFound
	}
	if err != nil {
		return Recipe{}, fmt.Errorf("could not get recipe: %w", err)
	}
	recipes := []Recipe{r}
	if err := repo.loadItems(ctx, recipes); err != nil {
		return Recipe{}, err
	}
	return recipes[0], nil
}

func (repo *RepoImpl) GetAll(ctx context.Context) ([]Recipe, error) {
	query := "SELECT " + recipeColumns + ` FROM recipe r
		WHERE r.is_active ORDER BY r.crop_id, r.growth_week, r.name`
	return repo.queryWithItems(ctx, query)
}

func (repo *RepoImpl) FindForAggregation(ctx context.Context, cropIds []string, growthWeeks []int) ([]Recipe, error) {
	if len(cropIds) == 0 || len(growthWeeks) == 0 {
		return nil, nil
	}
	query := "SELECT " + recipeColumns + ` FROM recipe r
		WHERE r.is_active AND r.crop_id = ANY($1) AND r.growth_week = ANY($2)`
	return repo.queryWithItems(ctx, query, cropIds, growthWeeks)
}

func (repo *RepoImpl) queryWithItems(ctx context.Context, query string, args ...any) ([]Recipe, error) {
	rows, err := repo.db.Query(ctx, query, args...)
	if err != nil {
		err = fmt.Errorf("could not query recipes: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var recipes []Recipe
	for rows.Next() {
		var r Recipe
		if err := rows.Scan(
			&r.Id, &r.Name, &r.Classification, &r.CropId, &r.VarietyId,
			&r.GrowthWeek, &r.Temporalidad, &r.SowingType, &r.IsActive,
		); err != nil {
			return nil, fmt.Errorf("could not scan recipe: %w", err)
		}
		recipes = append(recipes, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := repo.loadItems(ctx, recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

// loadItems attaches items (with product name and unit) to the given recipes.
func (repo *RepoImpl) loadItems(ctx context.Context, recipes []Recipe) error {
	if len(recipes) == 0 {
		return nil
	}
	ids := make([]string, 0, len(recipes))
	byId := make(map[string]*Recipe, len(recipes))
	for i := range recipes {
		ids = append(ids, recipes[i].Id)
		byId[recipes[i].Id] = &recipes[i]
	}

	query := `SELECT i.recipe_id, i.id, i.product_id, p.name, p.unit, i.qty_per_hectare, COALESCE(i.notes, '')
			  FROM recipe_item i
			  JOIN product p ON p.id = i.product_id
			  WHERE i.recipe_id = ANY($1)
			  ORDER BY p.name`
	rows, err := repo.db.Query(ctx, query, ids)
	if err != nil {
		err = fmt.Errorf("could not query recipe items: %w", err)
		log.Error(err)
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var recipeId string
		var item Item
		if err := rows.Scan(&recipeId, &item.Id, &item.ProductId, &item.Product, &item.Unit, &item.QtyPerHectare, &item.Notes); err != nil {
			return fmt.Errorf("could not scan recipe item: %w", err)
		}
		if r, ok := byId[recipeId]; ok {
			r.Items = append(r.Items, item)
		}
	}
	return rows.Err()
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
