package repositories

import (
	"context"
	"errors"

	"tienda/internal/models"
)

// ErrSaleNotFound is returned when no sale exists for the requested id.
var ErrSaleNotFound = errors.New("sale not found")

// SaleRepository defines the interface for sale data access.
type SaleRepository interface {
	GetAll(ctx context.Context) ([]models.Sale, error)
	GetByID(ctx context.Context, id string) (*models.Sale, error)
	Create(ctx context.Context, sale *models.Sale) error
}
