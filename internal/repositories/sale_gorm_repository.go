package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tienda/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMSaleRepository is a GORM implementation of SaleRepository.
type GORMSaleRepository struct {
	db *gorm.DB
}

// NewGORMSaleRepository creates a new instance of GORMSaleRepository.
func NewGORMSaleRepository(db *gorm.DB) *GORMSaleRepository {
	return &GORMSaleRepository{db: db}
}

// GetAll returns all sales, newest first.
func (r *GORMSaleRepository) GetAll(ctx context.Context) ([]models.Sale, error) {
	var records []saleRecord
	if err := r.db.WithContext(ctx).Preload("Items").Order("created_at desc").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to get all sales: %w", err)
	}
	sales := make([]models.Sale, 0, len(records))
	for _, rec := range records {
		sales = append(sales, rec.toSale())
	}
	return sales, nil
}

// GetByID returns a sale with its items.
func (r *GORMSaleRepository) GetByID(ctx context.Context, id string) (*models.Sale, error) {
	var rec saleRecord
	if err := r.db.WithContext(ctx).Preload("Items").First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("sale with ID %s: %w", id, ErrSaleNotFound)
		}
		return nil, fmt.Errorf("failed to get sale by ID %s: %w", id, err)
	}
	sale := rec.toSale()
	return &sale, nil
}

// Create stores a sale and its items in one transaction.
func (r *GORMSaleRepository) Create(ctx context.Context, sale *models.Sale) error {
	if sale.ID == "" {
		sale.ID = uuid.New().String()
	}
	if sale.CreatedAt.IsZero() {
		sale.CreatedAt = time.Now()
	}
	rec := newSaleRecord(sale)
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return fmt.Errorf("failed to create sale: %w", err)
	}
	return nil
}
