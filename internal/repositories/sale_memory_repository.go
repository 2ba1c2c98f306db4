package repositories

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"tienda/internal/models"

	"github.com/google/uuid"
)

// MemorySaleRepository is an in-memory implementation of SaleRepository.
type MemorySaleRepository struct {
	sales map[string]models.Sale
	mu    sync.RWMutex
}

// NewMemorySaleRepository creates a new instance of MemorySaleRepository.
func NewMemorySaleRepository() *MemorySaleRepository {
	return &MemorySaleRepository{
		sales: make(map[string]models.Sale),
	}
}

// GetAll returns all sales, newest first.
func (r *MemorySaleRepository) GetAll(_ context.Context) ([]models.Sale, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	saleList := make([]models.Sale, 0, len(r.sales))
	for _, sale := range r.sales {
		saleList = append(saleList, sale)
	}
	sort.Slice(saleList, func(i, j int) bool { return saleList[i].CreatedAt.After(saleList[j].CreatedAt) })
	return saleList, nil
}

// GetByID returns a sale by its ID.
func (r *MemorySaleRepository) GetByID(_ context.Context, id string) (*models.Sale, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sale, ok := r.sales[id]
	if !ok {
		return nil, fmt.Errorf("sale with ID %s: %w", id, ErrSaleNotFound)
	}
	return &sale, nil
}

// Create adds a new sale.
func (r *MemorySaleRepository) Create(_ context.Context, sale *models.Sale) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if sale.ID == "" {
		sale.ID = uuid.New().String()
	}
	if sale.CreatedAt.IsZero() {
		sale.CreatedAt = time.Now()
	}
	stored := *sale
	stored.Items = append([]models.SaleItem(nil), sale.Items...)
	r.sales[sale.ID] = stored
	return nil
}
