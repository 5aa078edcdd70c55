package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/happyshop/storefront/internal/domain"
	"github.com/happyshop/storefront/internal/server/repository"
)

func setupTestDB(t *testing.T) *repository.Repository {
	t.Helper()
	repo, err := repository.New(":memory:")
	if err != nil {
		t.Fatalf("Failed to create test repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	if err := repo.RunMigrations("../../../migrations"); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	return repo
}

func TestGetProducts_ReturnsSeededCatalog(t *testing.T) {
	repo := setupTestDB(t)

	products, err := repo.GetProducts(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, products, 8)

	assert.Equal(t, int64(1), products[0].ID)
	assert.Equal(t, "Educational Toy Block Set", products[0].Name)
	assert.Equal(t, 29.99, products[0].Price)
	assert.Equal(t, 4.5, products[0].Rating)
}

func TestGetProducts_FilterByCategory(t *testing.T) {
	repo := setupTestDB(t)

	toys, err := repo.GetProducts(context.Background(), "Toys")
	require.NoError(t, err)
	require.Len(t, toys, 2)
	for _, p := range toys {
		assert.Equal(t, "Toys", p.Category)
	}

	none, err := repo.GetProducts(context.Background(), "Electronics")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestGetProduct_ByID(t *testing.T) {
	repo := setupTestDB(t)

	p, err := repo.GetProduct(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "Premium Fountain Pen", p.Name)
	assert.Equal(t, "Gifts", p.Category)
	assert.Equal(t, 89.99, p.Price)
}

func TestGetProduct_NotFound(t *testing.T) {
	repo := setupTestDB(t)

	_, err := repo.GetProduct(context.Background(), 999)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}
