package recipe

import (
	"context"
	"os"
	"testing"

	"github.com/agroplan/agroplan/internal/test_utils"
	"github.com/agroplan/agroplan/pkg/product"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

var pgContainer *postgres.PostgresContainer
var openDb func() *pgxpool.Pool

func TestMain(m *testing.M) {
	pgContainer, openDb = test_utils.TestWithDB()
	defer func() {
		if err := testcontainers.TerminateContainer(pgContainer); err != nil {
			log.Errorf("failed to terminate container: %s", err)
		}
	}()
	code := m.Run()
	os.Exit(code)
}

func setupTestRepository(t *testing.T) (context.Context, *RepoImpl, *pgxpool.Pool) {
	ctx := context.Background()
	db := openDb()
	repository := NewRepo(db)
	t.Cleanup(func() {
		db.Close()
		err := pgContainer.Restore(ctx)
		require.NoError(t, err)
	})
	return ctx, repository, db
}

// seedCatalog inserts the crop and two products recipes can reference.
func seedCatalog(t *testing.T, ctx context.Context, db *pgxpool.Pool) (cropId, productA, productB string) {
	t.Helper()
	cropId = uuid.NewString()
	productA = uuid.NewString()
	productB = uuid.NewString()
	_, err := db.Exec(ctx, "INSERT INTO crop (id, name) VALUES ($1, $2)", cropId, "Maíz")
	require.NoError(t, err)
	_, err = db.Exec(ctx, "INSERT INTO product (id, name, unit, classification) VALUES ($1, $2, $3, $4)",
		productA, "Producto A", "kg", "FERTILIZANTE")
	require.NoError(t, err)
	_, err = db.Exec(ctx, "INSERT INTO product (id, name, unit, classification) VALUES ($1, $2, $3, $4)",
		productB, "Producto B", "l", "AGROQUIMICO")
	require.NoError(t, err)
	return cropId, productA, productB
}

func testRecipe(cropId, productId string) Recipe {
	return Recipe{
		Name:           "Maíz semana 3",
		Classification: product.ClassificationFertilizante,
		CropId:         cropId,
		GrowthWeek:     3,
		Temporalidad:   "ABR-SEP",
		Items: []Item{{
			ProductId:     productId,
			QtyPerHectare: decimal.NewFromInt(2),
		}},
	}
}

func TestRepoImpl_StoreAndGet(t *testing.T) {
	ctx, repo, db := setupTestRepository(t)
	cropId, productA, _ := seedCatalog(t, ctx, db)

	stored, err := repo.Store(ctx, testRecipe(cropId, productA))
	require.NoError(t, err)
	require.NotEmpty(t, stored.Id)
	require.True(t, stored.IsActive)

	got, err := repo.Get(ctx, stored.Id)
	require.NoError(t, err)
	require.Equal(t, "Maíz semana 3", got.Name)
	require.Equal(t, "ABR-SEP", got.Temporalidad)
	require.Len(t, got.Items, 1)
	require.Equal(t, "Producto A", got.Items[0].Product)
	require.Equal(t, "kg", got.Items[0].Unit)
	require.True(t, got.Items[0].QtyPerHectare.Equal(decimal.NewFromInt(2)))
}

func TestRepoImpl_Get_NotFound(t *testing.T) {
	ctx, repo, _ := setupTestRepository(t)
	_, err := repo.Get(ctx, uuid.NewString())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRepoImpl_Update_ReplacesItems(t *testing.T) {
	ctx, repo, db := setupTestRepository(t)
	cropId, productA, productB := seedCatalog(t, ctx, db)

	stored, err := repo.Store(ctx, testRecipe(cropId, productA))
	require.NoError(t, err)

	updated := stored
	updated.Name = "Maíz semana 3 v2"
	updated.Items = []Item{
		{ProductId: productA, QtyPerHectare: decimal.NewFromInt(1)},
		{ProductId: productB, QtyPerHectare: decimal.RequireFromString("0.5")},
	}
	found, err := repo.Update(ctx, updated)
	require.NoError(t, err)
	require.True(t, found)

	got, err := repo.Get(ctx, stored.Id)
	require.NoError(t, err)
	require.Equal(t, "Maíz semana 3 v2", got.Name)
	require.Len(t, got.Items, 2)

	var count int
	err = db.QueryRow(ctx, "SELECT COUNT(*) FROM recipe_item WHERE recipe_id = $1", stored.Id).Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 2, count)
}

func TestRepoImpl_Update_NotFound(t *testing.T) {
	ctx, repo, db := setupTestRepository(t)
	cropId, productA, _ := seedCatalog(t, ctx, db)

	missing := testRecipe(cropId, productA)
	missing.Id = uuid.NewString()
	found, err := repo.Update(ctx, missing)
	require.NoError(t, err)
	require.False(t, found)
}

func TestRepoImpl_Delete_CascadesOwnItemsOnly(t *testing.T) {
	ctx, repo, db := setupTestRepository(t)
	cropId, productA, productB := seedCatalog(t, ctx, db)

	first, err := repo.Store(ctx, testRecipe(cropId, productA))
	require.NoError(t, err)
	second := testRecipe(cropId, productB)
	second.Name = "Maíz semana 3 alterno"
	secondStored, err := repo.Store(ctx, second)
	require.NoError(t, err)

	found, err := repo.Delete(ctx, first.Id)
	require.NoError(t, err)
	require.True(t, found)

	var orphaned int
	err = db.QueryRow(ctx, "SELECT COUNT(*) FROM recipe_item WHERE recipe_id = $1", first.Id).Scan(&orphaned)
	require.NoError(t, err)
	require.Equal(t, 0, orphaned)

	remaining, err := repo.Get(ctx, secondStored.Id)
	require.NoError(t, err)
	require.Len(t, remaining.Items, 1)
}

func TestRepoImpl_FindForAggregation(t *testing.T) {
	ctx, repo, db := setupTestRepository(t)
	cropId, productA, productB := seedCatalog(t, ctx, db)

	matching, err := repo.Store(ctx, testRecipe(cropId, productA))
	require.NoError(t, err)
	otherWeek := testRecipe(cropId, productB)
	otherWeek.GrowthWeek = 7
	_, err = repo.Store(ctx, otherWeek)
	require.NoError(t, err)

	recipes, err := repo.FindForAggregation(ctx, []string{cropId}, []int{3})
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	require.Equal(t, matching.Id, recipes[0].Id)
	require.Len(t, recipes[0].Items, 1)

	recipes, err = repo.FindForAggregation(ctx, nil, []int{3})
	require.NoError(t, err)
	require.Empty(t, recipes)
}
