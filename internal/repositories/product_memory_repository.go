package repositories

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"tienda/internal/models"
)

// MemoryProductRepository is an in-memory implementation of ProductRepository.
// It stores copies, so callers never share a *models.Product with the store.
type MemoryProductRepository struct {
	products map[int64]*models.Product
	nextID   int64
	mu       sync.RWMutex
}

// NewMemoryProductRepository creates a new instance of MemoryProductRepository.
func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{
		products: make(map[int64]*models.Product),
		nextID:   1,
	}
}

// GetAll returns all products ordered by id.
func (r *MemoryProductRepository) GetAll(_ context.Context) ([]*models.Product, error) {
	return r.filter(func(*models.Product) bool { return true }), nil
}

// GetByCategory returns the products of one category ordered by id.
func (r *MemoryProductRepository) GetByCategory(_ context.Context, category string) ([]*models.Product, error) {
	return r.filter(func(p *models.Product) bool { return p.Category() == category }), nil
}

func (r *MemoryProductRepository) filter(keep func(*models.Product) bool) []*models.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]*models.Product, 0, len(r.products))
	for _, p := range r.products {
		if keep(p) {
			productList = append(productList, p.Clone())
		}
	}
	sort.Slice(productList, func(i, j int) bool { return productList[i].ID() < productList[j].ID() })
	return productList
}

// GetByID returns a product by its ID.
func (r *MemoryProductRepository) GetByID(_ context.Context, id int64) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("product with ID %d: %w", id, ErrProductNotFound)
	}
	return product.Clone(), nil
}

// Create adds a new product and assigns its ID.
func (r *MemoryProductRepository) Create(_ context.Context, product *models.Product) error {
	if err := models.Validate(product); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	product.SetID(r.nextID)
	r.nextID++
	r.products[product.ID()] = product.Clone()
	return nil
}

// Update replaces an existing product.
func (r *MemoryProductRepository) Update(_ context.Context, product *models.Product) error {
	if err := models.Validate(product); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[product.ID()]; !ok {
		return fmt.Errorf("product with ID %d: %w", product.ID(), ErrProductNotFound)
	}
	r.products[product.ID()] = product.Clone()
	return nil
}

// Delete removes a product by its ID.
func (r *MemoryProductRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return fmt.Errorf("product with ID %d: %w", id, ErrProductNotFound)
	}
	delete(r.products, id)
	return nil
}

// UpdateStock sets the stock of a product.
func (r *MemoryProductRepository) UpdateStock(_ context.Context, id int64, newStock int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return fmt.Errorf("product with ID %d: %w", id, ErrProductNotFound)
	}
	return product.SetStock(newStock)
}

// AddToStock adds quantity to the stock of a product.
func (r *MemoryProductRepository) AddToStock(_ context.Context, id int64, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return fmt.Errorf("product with ID %d: %w", id, ErrProductNotFound)
	}
	return product.AddStock(quantity)
}
