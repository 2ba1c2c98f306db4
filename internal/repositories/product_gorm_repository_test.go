package repositories_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"tienda/internal/database"
	"tienda/internal/models"
	"tienda/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := database.Open(database.DriverSQLite, dsn, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func mustProduct(t *testing.T, name string, price float64, stock int, category string) *models.Product {
	t.Helper()
	p, err := models.NewProduct(name, price, stock, category, name+" description")
	require.NoError(t, err)
	return p
}

func insertRawProduct(t *testing.T, db *gorm.DB, name string, price float64, stock int, category, description string) int64 {
	t.Helper()
	now := time.Now()
	require.NoError(t, db.Exec(
		"INSERT INTO products (name, price, stock, category, description, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		name, price, stock, category, description, now, now).Error)
	var id int64
	require.NoError(t, db.Raw("SELECT MAX(id) FROM products").Scan(&id).Error)
	return id
}

func TestGORMProductRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewGORMProductRepository(openTestDB(t), discardLogger())

	table := mustProduct(t, "Oak table", 120, 2, "Furniture")
	require.NoError(t, repo.Create(ctx, table))
	assert.True(t, table.HasID())

	vinyl := mustProduct(t, "Vinyl record", 15, 8, "Music")
	require.NoError(t, repo.Create(ctx, vinyl))
	assert.Greater(t, vinyl.ID(), table.ID())

	fetched, err := repo.GetByID(ctx, table.ID())
	require.NoError(t, err)
	assert.Equal(t, table, fetched)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Oak table", all[0].Name())
	assert.Equal(t, "Vinyl record", all[1].Name())

	music, err := repo.GetByCategory(ctx, "Music")
	require.NoError(t, err)
	require.Len(t, music, 1)
	assert.Equal(t, vinyl.ID(), music[0].ID())

	require.NoError(t, fetched.ReduceStock(1))
	require.NoError(t, fetched.SetPrice(99.5))
	require.NoError(t, repo.Update(ctx, fetched))

	updated, err := repo.GetByID(ctx, table.ID())
	require.NoError(t, err)
	assert.Equal(t, 1, updated.Stock())
	assert.Equal(t, 99.5, updated.Price())

	require.NoError(t, repo.Delete(ctx, table.ID()))
	_, err = repo.GetByID(ctx, table.ID())
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)
}

func TestGORMProductRepository_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewGORMProductRepository(openTestDB(t), discardLogger())

	_, err := repo.GetByID(ctx, 404)
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)

	ghost, err := models.NewProductWithID(404, "Ghost", 1, 1, "Toys", "Not stored")
	require.NoError(t, err)
	assert.ErrorIs(t, repo.Update(ctx, ghost), repositories.ErrProductNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, 404), repositories.ErrProductNotFound)
	assert.ErrorIs(t, repo.UpdateStock(ctx, 404, 3), repositories.ErrProductNotFound)
	assert.ErrorIs(t, repo.AddToStock(ctx, 404, 3), repositories.ErrProductNotFound)
}

func TestGORMProductRepository_RejectsInvalidProductBeforeWriting(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := repositories.NewGORMProductRepository(db, discardLogger())

	err := repo.Create(ctx, &models.Product{})
	assert.ErrorIs(t, err, models.ErrInvalidProduct)

	err = repo.Update(ctx, &models.Product{})
	assert.ErrorIs(t, err, models.ErrInvalidProduct)

	var count int64
	require.NoError(t, db.Table("products").Count(&count).Error)
	assert.Zero(t, count)
}

func TestGORMProductRepository_InvalidRows(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := repositories.NewGORMProductRepository(db, discardLogger())

	require.NoError(t, repo.Create(ctx, mustProduct(t, "Lamp", 30, 2, "Decor")))
	badID := insertRawProduct(t, db, "Broken", -10, 1, "Decor", "negative price in storage")
	require.NoError(t, repo.Create(ctx, mustProduct(t, "Mirror", 45, 1, "Decor")))

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Lamp", all[0].Name())
	assert.Equal(t, "Mirror", all[1].Name())

	decor, err := repo.GetByCategory(ctx, "Decor")
	require.NoError(t, err)
	assert.Len(t, decor, 2)

	_, err = repo.GetByID(ctx, badID)
	require.Error(t, err)
	assert.ErrorIs(t, err, repositories.ErrInvalidRecord)
	assert.False(t, errors.Is(err, models.ErrInvalidProduct))
	_, isRule := models.AsInvalidProduct(err)
	assert.False(t, isRule)
	assert.Contains(t, err.Error(), "price cannot be negative")
	assert.False(t, errors.Is(err, repositories.ErrProductNotFound))
}

func TestGORMProductRepository_StockOperations(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewGORMProductRepository(openTestDB(t), discardLogger())

	guitar := mustProduct(t, "Acoustic guitar", 180, 2, "Music")
	require.NoError(t, repo.Create(ctx, guitar))

	require.NoError(t, repo.AddToStock(ctx, guitar.ID(), 3))
	got, err := repo.GetByID(ctx, guitar.ID())
	require.NoError(t, err)
	assert.Equal(t, 5, got.Stock())

	err = repo.AddToStock(ctx, guitar.ID(), -6)
	assert.ErrorIs(t, err, models.ErrInvalidProduct)
	assert.Contains(t, err.Error(), "current: 5, change: -6")

	err = repo.AddToStock(ctx, 999, 1)
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)

	require.NoError(t, repo.AddToStock(ctx, guitar.ID(), -5))
	got, err = repo.GetByID(ctx, guitar.ID())
	require.NoError(t, err)
	assert.Equal(t, 0, got.Stock())

	err = repo.UpdateStock(ctx, guitar.ID(), -1)
	assert.ErrorIs(t, err, models.ErrInvalidProduct)

	require.NoError(t, repo.UpdateStock(ctx, guitar.ID(), 0))
	got, err = repo.GetByID(ctx, guitar.ID())
	require.NoError(t, err)
	assert.Equal(t, 0, got.Stock())
}
