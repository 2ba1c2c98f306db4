package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"tienda/internal/models"
	"tienda/internal/repositories"
)

// DefaultLowStockThreshold marks products with fewer units as low on stock.
const DefaultLowStockThreshold = 3

// ErrZeroAdjustment is returned when a stock adjustment of 0 units is requested.
var ErrZeroAdjustment = errors.New("stock adjustment must not be zero")

// ProductInput carries raw product fields supplied by a user.
type ProductInput struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
}

// CategoryCount is the number of products and units in one category.
type CategoryCount struct {
	Category string  `json:"category"`
	Products int     `json:"products"`
	Units    int     `json:"units"`
	Value    float64 `json:"value"`
}

// InventorySummary aggregates the whole catalog.
type InventorySummary struct {
	Products   int             `json:"products"`
	Units      int             `json:"units"`
	TotalValue float64         `json:"total_value"`
	Categories []CategoryCount `json:"categories"`
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo      repositories.ProductRepository
	publisher EventPublisher
	logger    *slog.Logger
}

// NewProductService creates a new ProductService. publisher may be nil.
func NewProductService(repo repositories.ProductRepository, publisher EventPublisher, logger *slog.Logger) *ProductService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProductService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

// ListProducts retrieves all products.
func (s *ProductService) ListProducts(ctx context.Context) ([]*models.Product, error) {
	return s.repo.GetAll(ctx)
}

// ListByCategory retrieves the products of one category.
func (s *ProductService) ListByCategory(ctx context.Context, category string) ([]*models.Product, error) {
	return s.repo.GetByCategory(ctx, category)
}

// GetProduct retrieves a single product by its ID.
func (s *ProductService) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateProduct builds a product from raw input and stores it.
func (s *ProductService) CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error) {
	product, err := models.NewProduct(in.Name, in.Price, in.Stock, in.Category, in.Description)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	s.logger.Info("product created", "id", product.ID(), "name", product.Name())
	return product, nil
}

// UpdateProduct replaces every field of an existing product.
func (s *ProductService) UpdateProduct(ctx context.Context, id int64, in ProductInput) (*models.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := product.Update(in.Name, in.Price, in.Stock, in.Category, in.Description); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	s.logger.Info("product updated", "id", product.ID())
	return product, nil
}

// AdjustStock applies a signed stock movement: positive deltas add units,
// negative deltas remove them. Removing more than is on hand fails.
func (s *ProductService) AdjustStock(ctx context.Context, id int64, delta int, reason string) (*models.Product, error) {
	if delta == 0 {
		return nil, ErrZeroAdjustment
	}
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if delta < 0 {
		err = product.ReduceStock(-delta)
	} else {
		err = product.AddStock(delta)
	}
	if err != nil {
		return nil, err
	}
	if err := s.repo.AddToStock(ctx, id, delta); err != nil {
		return nil, err
	}

	s.logger.Info("stock adjusted", "id", product.ID(), "delta", delta, "stock", product.Stock())
	publishEvent(s.logger, s.publisher, EventStockAdjusted, StockAdjustedEvent{
		ProductID: product.ID(),
		Name:      product.Name(),
		Delta:     delta,
		Stock:     product.Stock(),
		Reason:    reason,
		At:        time.Now(),
	})
	return product, nil
}

// SetStock overwrites the stock of a product after a physical count.
// The published event carries the difference to the previous stock.
func (s *ProductService) SetStock(ctx context.Context, id int64, stock int, reason string) (*models.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	previous := product.Stock()
	if err := product.SetStock(stock); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateStock(ctx, id, stock); err != nil {
		return nil, err
	}

	s.logger.Info("stock set", "id", id, "previous", previous, "stock", stock)
	publishEvent(s.logger, s.publisher, EventStockAdjusted, StockAdjustedEvent{
		ProductID: id,
		Name:      product.Name(),
		Delta:     stock - previous,
		Stock:     stock,
		Reason:    reason,
		At:        time.Now(),
	})
	return product, nil
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("product deleted", "id", id)
	publishEvent(s.logger, s.publisher, EventProductDeleted, ProductDeletedEvent{ProductID: id, At: time.Now()})
	return nil
}

// LowStock returns the products with fewer than threshold units.
func (s *ProductService) LowStock(ctx context.Context, threshold int) ([]*models.Product, error) {
	products, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products for low stock report: %w", err)
	}
	low := make([]*models.Product, 0)
	for _, p := range products {
		if p.Stock() < threshold {
			low = append(low, p)
		}
	}
	return low, nil
}

// Summary computes per-category counts and the total inventory value.
func (s *ProductService) Summary(ctx context.Context) (*InventorySummary, error) {
	products, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products for summary: %w", err)
	}
	return Summarize(products), nil
}

// Summarize aggregates a product list. Categories are sorted by name.
func Summarize(products []*models.Product) *InventorySummary {
	summary := &InventorySummary{Categories: make([]CategoryCount, 0)}
	byCategory := make(map[string]*CategoryCount)
	for _, p := range products {
		summary.Products++
		summary.Units += p.Stock()
		summary.TotalValue += p.Value()

		c, ok := byCategory[p.Category()]
		if !ok {
			c = &CategoryCount{Category: p.Category()}
			byCategory[p.Category()] = c
		}
		c.Products++
		c.Units += p.Stock()
		c.Value += p.Value()
	}
	for _, c := range byCategory {
		summary.Categories = append(summary.Categories, *c)
	}
	sort.Slice(summary.Categories, func(i, j int) bool {
		return summary.Categories[i].Category < summary.Categories[j].Category
	})
	return summary
}
