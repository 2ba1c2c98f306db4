package repositories

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"tienda/internal/models"

	"gorm.io/gorm"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB, logger *slog.Logger) *GORMProductRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &GORMProductRepository{
		db:     db,
		logger: logger,
	}
}

// GetAll retrieves every valid product ordered by id. Rows that fail
// validation are logged and skipped.
func (r *GORMProductRepository) GetAll(ctx context.Context) ([]*models.Product, error) {
	var records []productRecord
	if err := r.db.WithContext(ctx).Order("id").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	return r.toProducts(records), nil
}

// GetByCategory retrieves every valid product of the given category ordered by id.
func (r *GORMProductRepository) GetByCategory(ctx context.Context, category string) ([]*models.Product, error) {
	var records []productRecord
	if err := r.db.WithContext(ctx).Where("category = ?", category).Order("id").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to get products in category %s: %w", category, err)
	}
	return r.toProducts(records), nil
}

func (r *GORMProductRepository) toProducts(records []productRecord) []*models.Product {
	products := make([]*models.Product, 0, len(records))
	for _, rec := range records {
		p, err := rec.toProduct()
		if err != nil {
			r.logger.Warn("skipping invalid product row", "id", rec.ID, "error", err)
			continue
		}
		products = append(products, p)
	}
	return products
}

// GetByID retrieves a single product by its ID from the database.
func (r *GORMProductRepository) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	var rec productRecord
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product with ID %d: %w", id, ErrProductNotFound)
		}
		return nil, fmt.Errorf("failed to get product by ID %d: %w", id, err)
	}
	return rec.toProduct()
}

// Create validates and inserts a product, then assigns the generated ID to it.
func (r *GORMProductRepository) Create(ctx context.Context, product *models.Product) error {
	if err := models.Validate(product); err != nil {
		return err
	}
	rec := newProductRecord(product)
	rec.ID = 0
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	product.SetID(rec.ID)
	return nil
}

// Update validates and replaces every field of an existing product.
func (r *GORMProductRepository) Update(ctx context.Context, product *models.Product) error {
	if err := models.Validate(product); err != nil {
		return err
	}
	res := r.db.WithContext(ctx).Model(&productRecord{}).Where("id = ?", product.ID()).Updates(map[string]any{
		"name":        product.Name(),
		"price":       product.Price(),
		"stock":       product.Stock(),
		"category":    product.Category(),
		"description": product.Description(),
	})
	if res.Error != nil {
		return fmt.Errorf("failed to update product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product with ID %d: %w", product.ID(), ErrProductNotFound)
	}
	return nil
}

// Delete deletes a product by its ID from the database.
func (r *GORMProductRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&productRecord{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product with ID %d: %w", id, ErrProductNotFound)
	}
	return nil
}

// UpdateStock sets the stock column of a product.
func (r *GORMProductRepository) UpdateStock(ctx context.Context, id int64, newStock int) error {
	if err := models.ValidateStock(newStock); err != nil {
		return err
	}
	res := r.db.WithContext(ctx).Model(&productRecord{}).Where("id = ?", id).Update("stock", newStock)
	if res.Error != nil {
		return fmt.Errorf("failed to update stock of product %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product with ID %d: %w", id, ErrProductNotFound)
	}
	return nil
}

// AddToStock adds quantity to the stored stock in a single conditional
// update, so the stock can never be written below zero.
func (r *GORMProductRepository) AddToStock(ctx context.Context, id int64, quantity int) error {
	res := r.db.WithContext(ctx).Model(&productRecord{}).
		Where("id = ? AND stock + ? >= 0", id, quantity).
		Update("stock", gorm.Expr("stock + ?", quantity))
	if res.Error != nil {
		return fmt.Errorf("failed to add stock to product %d: %w", id, res.Error)
	}
	if res.RowsAffected > 0 {
		return nil
	}

	// Nothing matched: report why.
	product, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := models.ValidateStockUpdate(product.Stock(), quantity); err != nil {
		return err
	}
	return fmt.Errorf("failed to add stock to product %d: row not updated", id)
}
