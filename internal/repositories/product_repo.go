package repositories

import (
	"context"
	"errors"

	"tienda/internal/models"
)

var (
	// ErrProductNotFound is returned when no row exists for the requested id.
	ErrProductNotFound = errors.New("product not found")
	// ErrInvalidRecord is returned when a stored row no longer satisfies the product rules.
	ErrInvalidRecord = errors.New("invalid product record")
)

// ProductRepository defines the interface for product data access.
// Create and Update validate the whole product before writing.
type ProductRepository interface {
	GetAll(ctx context.Context) ([]*models.Product, error)
	GetByCategory(ctx context.Context, category string) ([]*models.Product, error)
	GetByID(ctx context.Context, id int64) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id int64) error
	UpdateStock(ctx context.Context, id int64, newStock int) error
	AddToStock(ctx context.Context, id int64, quantity int) error
}
