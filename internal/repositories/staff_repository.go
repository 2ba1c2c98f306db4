package repositories

import (
	"context"
	"errors"

	"tienda/internal/models"
)

// ErrStaffNotFound is returned when no staff account matches the lookup.
var ErrStaffNotFound = errors.New("staff account not found")

// StaffRepository defines the interface for staff account data access.
type StaffRepository interface {
	Create(ctx context.Context, staff *models.Staff) error
	GetByUsername(ctx context.Context, username string) (*models.Staff, error)
	GetByEmail(ctx context.Context, email string) (*models.Staff, error)
	GetByID(ctx context.Context, id string) (*models.Staff, error)
	Count(ctx context.Context) (int64, error)
}
