package repositories

import (
	"context"
	"errors"
	"fmt"

	"tienda/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMStaffRepository is a GORM implementation of StaffRepository.
type GORMStaffRepository struct {
	db *gorm.DB
}

// NewGORMStaffRepository creates a new instance of GORMStaffRepository.
func NewGORMStaffRepository(db *gorm.DB) *GORMStaffRepository {
	return &GORMStaffRepository{
		db: db,
	}
}

// Create creates a new staff account in the database.
func (r *GORMStaffRepository) Create(ctx context.Context, staff *models.Staff) error {
	if staff.ID == "" {
		staff.ID = uuid.New().String()
	}
	rec := staffRecord{
		ID:       staff.ID,
		Username: staff.Username,
		Email:    staff.Email,
		Password: staff.Password,
		Role:     staff.Role,
	}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return fmt.Errorf("failed to create staff account: %w", err)
	}
	staff.CreatedAt = rec.CreatedAt
	return nil
}

// GetByUsername retrieves a staff account by username.
func (r *GORMStaffRepository) GetByUsername(ctx context.Context, username string) (*models.Staff, error) {
	return r.first(ctx, "username = ?", username)
}

// GetByEmail retrieves a staff account by email.
func (r *GORMStaffRepository) GetByEmail(ctx context.Context, email string) (*models.Staff, error) {
	return r.first(ctx, "email = ?", email)
}

// GetByID retrieves a staff account by ID.
func (r *GORMStaffRepository) GetByID(ctx context.Context, id string) (*models.Staff, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *GORMStaffRepository) first(ctx context.Context, query string, arg string) (*models.Staff, error) {
	var rec staffRecord
	if err := r.db.WithContext(ctx).First(&rec, query, arg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("staff %q: %w", arg, ErrStaffNotFound)
		}
		return nil, fmt.Errorf("failed to get staff account %q: %w", arg, err)
	}
	return rec.toStaff(), nil
}

// Count returns the number of staff accounts.
func (r *GORMStaffRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&staffRecord{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count staff accounts: %w", err)
	}
	return n, nil
}
