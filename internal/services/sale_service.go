package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"tienda/internal/models"
	"tienda/internal/repositories"

	"github.com/google/uuid"
)

var (
	// ErrEmptySale is returned when a sale has no items.
	ErrEmptySale = errors.New("a sale needs at least one item")
	// ErrInvalidQuantity is returned for sale lines with zero or negative quantity.
	ErrInvalidQuantity = errors.New("sale quantity must be positive")
)

// SaleLine is one requested line of a sale.
type SaleLine struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"required,gt=0"`
}

// SaleService handles business logic related to sales.
type SaleService struct {
	saleRepo  repositories.SaleRepository
	uow       repositories.UnitOfWork
	publisher EventPublisher
	logger    *slog.Logger
}

// NewSaleService creates a new SaleService. Stock updates and the sale row
// are written through uow. publisher may be nil.
func NewSaleService(saleRepo repositories.SaleRepository, uow repositories.UnitOfWork, publisher EventPublisher, logger *slog.Logger) *SaleService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SaleService{
		saleRepo:  saleRepo,
		uow:       uow,
		publisher: publisher,
		logger:    logger,
	}
}

// ListSales retrieves all sales.
func (s *SaleService) ListSales(ctx context.Context) ([]models.Sale, error) {
	return s.saleRepo.GetAll(ctx)
}

// GetSale retrieves a single sale by its ID.
func (s *SaleService) GetSale(ctx context.Context, id string) (*models.Sale, error) {
	return s.saleRepo.GetByID(ctx, id)
}

// RecordSale removes the sold units from stock and stores the sale in one
// transaction. Every line is checked against current stock before anything
// is written; any failure leaves stock and sales untouched.
func (s *SaleService) RecordSale(ctx context.Context, lines []SaleLine, staff string) (*models.Sale, error) {
	if len(lines) == 0 {
		return nil, ErrEmptySale
	}

	// Merge repeated products so the stock check sees the full quantity.
	order := make([]int64, 0, len(lines))
	quantities := make(map[int64]int, len(lines))
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("product %d: %w", line.ProductID, ErrInvalidQuantity)
		}
		if quantities[line.ProductID] > math.MaxInt-line.Quantity {
			return nil, fmt.Errorf("product %d: total quantity too large: %w", line.ProductID, ErrInvalidQuantity)
		}
		if _, seen := quantities[line.ProductID]; !seen {
			order = append(order, line.ProductID)
		}
		quantities[line.ProductID] += line.Quantity
	}

	sale := &models.Sale{
		ID:        uuid.New().String(),
		Staff:     staff,
		CreatedAt: time.Now(),
	}
	units := 0
	err := s.uow.WithinTransaction(ctx, func(tx repositories.Tx) error {
		sale.Items = sale.Items[:0]
		sale.Total = 0
		units = 0
		for _, id := range order {
			product, err := tx.Products.GetByID(ctx, id)
			if err != nil {
				return err
			}
			quantity := quantities[id]
			if err := product.ReduceStock(quantity); err != nil {
				return fmt.Errorf("cannot sell %d of %q: %w", quantity, product.Name(), err)
			}
			item := models.SaleItem{
				ProductID: id,
				Name:      product.Name(),
				Quantity:  quantity,
				UnitPrice: product.Price(),
			}
			sale.Items = append(sale.Items, item)
			sale.Total += item.Subtotal()
			units += quantity
		}

		for _, item := range sale.Items {
			if err := tx.Products.AddToStock(ctx, item.ProductID, -item.Quantity); err != nil {
				return fmt.Errorf("failed to update stock of product %d: %w", item.ProductID, err)
			}
		}
		if err := tx.Sales.Create(ctx, sale); err != nil {
			return fmt.Errorf("failed to store sale: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("sale recorded", "id", sale.ID, "units", units, "total", sale.Total)
	publishEvent(s.logger, s.publisher, EventSaleRecorded, SaleRecordedEvent{
		SaleID: sale.ID,
		Units:  units,
		Total:  sale.Total,
		At:     sale.CreatedAt,
	})
	return sale, nil
}
