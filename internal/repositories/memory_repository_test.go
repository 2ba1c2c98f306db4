package repositories_test

import (
	"context"
	"testing"

	"tienda/internal/models"
	"tienda/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryProductRepository(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewMemoryProductRepository()

	desk := mustProduct(t, "Desk", 80, 1, "Furniture")
	require.NoError(t, repo.Create(ctx, desk))
	assert.Equal(t, int64(1), desk.ID())

	books := mustProduct(t, "Book lot", 12, 10, "Books")
	require.NoError(t, repo.Create(ctx, books))
	assert.Equal(t, int64(2), books.ID())

	// Mutating the caller's copy does not touch the store.
	require.NoError(t, desk.SetStock(99))
	stored, err := repo.GetByID(ctx, desk.ID())
	require.NoError(t, err)
	assert.Equal(t, 1, stored.Stock())

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Desk", all[0].Name())

	byCategory, err := repo.GetByCategory(ctx, "Books")
	require.NoError(t, err)
	require.Len(t, byCategory, 1)

	require.NoError(t, repo.AddToStock(ctx, books.ID(), 5))
	assert.ErrorIs(t, repo.AddToStock(ctx, books.ID(), -100), models.ErrInvalidProduct)
	require.NoError(t, repo.UpdateStock(ctx, desk.ID(), 4))
	assert.ErrorIs(t, repo.UpdateStock(ctx, desk.ID(), -4), models.ErrInvalidProduct)

	stored, err = repo.GetByID(ctx, books.ID())
	require.NoError(t, err)
	assert.Equal(t, 15, stored.Stock())

	assert.ErrorIs(t, repo.Create(ctx, &models.Product{}), models.ErrInvalidProduct)

	require.NoError(t, repo.Delete(ctx, desk.ID()))
	assert.ErrorIs(t, repo.Delete(ctx, desk.ID()), repositories.ErrProductNotFound)
	_, err = repo.GetByID(ctx, desk.ID())
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)
	assert.ErrorIs(t, repo.Update(ctx, desk), repositories.ErrProductNotFound)
}

func TestSaleRepositories(t *testing.T) {
	ctx := context.Background()
	repos := map[string]repositories.SaleRepository{
		"memory": repositories.NewMemorySaleRepository(),
		"gorm":   repositories.NewGORMSaleRepository(openTestDB(t)),
	}
	for name, repo := range repos {
		t.Run(name, func(t *testing.T) {
			sale := &models.Sale{
				Items: []models.SaleItem{
					{ProductID: 1, Name: "Desk", Quantity: 1, UnitPrice: 80},
					{ProductID: 2, Name: "Vinyl", Quantity: 2, UnitPrice: 15},
				},
				Total: 110,
				Staff: "ana",
			}
			require.NoError(t, repo.Create(ctx, sale))
			assert.NotEmpty(t, sale.ID)
			assert.False(t, sale.CreatedAt.IsZero())

			got, err := repo.GetByID(ctx, sale.ID)
			require.NoError(t, err)
			assert.Equal(t, 110.0, got.Total)
			assert.Equal(t, "ana", got.Staff)
			require.Len(t, got.Items, 2)

			all, err := repo.GetAll(ctx)
			require.NoError(t, err)
			assert.Len(t, all, 1)

			_, err = repo.GetByID(ctx, "missing")
			assert.ErrorIs(t, err, repositories.ErrSaleNotFound)
		})
	}
}

func TestStaffRepositories(t *testing.T) {
	ctx := context.Background()
	repos := map[string]repositories.StaffRepository{
		"memory": repositories.NewMemoryStaffRepository(),
		"gorm":   repositories.NewGORMStaffRepository(openTestDB(t)),
	}
	for name, repo := range repos {
		t.Run(name, func(t *testing.T) {
			n, err := repo.Count(ctx)
			require.NoError(t, err)
			assert.Zero(t, n)

			staff := &models.Staff{Username: "ana", Email: "ana@example.com", Password: "hash", Role: models.RoleAdmin}
			require.NoError(t, repo.Create(ctx, staff))
			assert.NotEmpty(t, staff.ID)

			byName, err := repo.GetByUsername(ctx, "ana")
			require.NoError(t, err)
			assert.Equal(t, staff.ID, byName.ID)

			byEmail, err := repo.GetByEmail(ctx, "ana@example.com")
			require.NoError(t, err)
			assert.True(t, byEmail.IsAdmin())

			byID, err := repo.GetByID(ctx, staff.ID)
			require.NoError(t, err)
			assert.Equal(t, "hash", byID.Password)

			assert.Error(t, repo.Create(ctx, &models.Staff{Username: "ana", Email: "other@example.com", Password: "x"}))

			_, err = repo.GetByUsername(ctx, "nobody")
			assert.ErrorIs(t, err, repositories.ErrStaffNotFound)

			n, err = repo.Count(ctx)
			require.NoError(t, err)
			assert.Equal(t, int64(1), n)
		})
	}
}
