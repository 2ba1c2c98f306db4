package repositories

import (
	"context"
	"log/slog"

	"gorm.io/gorm"
)

// Tx is the set of repositories bound to one transaction.
type Tx struct {
	Products ProductRepository
	Sales    SaleRepository
}

// UnitOfWork runs fn in a transaction: everything fn wrote through tx is
// committed when it returns nil and discarded otherwise.
type UnitOfWork interface {
	WithinTransaction(ctx context.Context, fn func(tx Tx) error) error
}

// GORMUnitOfWork runs units of work in database transactions.
type GORMUnitOfWork struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewGORMUnitOfWork creates a new instance of GORMUnitOfWork.
func NewGORMUnitOfWork(db *gorm.DB, logger *slog.Logger) *GORMUnitOfWork {
	return &GORMUnitOfWork{db: db, logger: logger}
}

// WithinTransaction implements UnitOfWork.
func (u *GORMUnitOfWork) WithinTransaction(ctx context.Context, fn func(tx Tx) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(Tx{
			Products: NewGORMProductRepository(tx, u.logger),
			Sales:    NewGORMSaleRepository(tx),
		})
	})
}

// MemoryUnitOfWork runs units of work against copies of the in-memory stores
// and swaps them in on success. Both stores stay write-locked meanwhile.
type MemoryUnitOfWork struct {
	products *MemoryProductRepository
	sales    *MemorySaleRepository
}

// NewMemoryUnitOfWork creates a unit of work over the given stores.
func NewMemoryUnitOfWork(products *MemoryProductRepository, sales *MemorySaleRepository) *MemoryUnitOfWork {
	return &MemoryUnitOfWork{products: products, sales: sales}
}

// WithinTransaction implements UnitOfWork.
func (u *MemoryUnitOfWork) WithinTransaction(_ context.Context, fn func(tx Tx) error) error {
	u.products.mu.Lock()
	defer u.products.mu.Unlock()
	u.sales.mu.Lock()
	defer u.sales.mu.Unlock()

	products := NewMemoryProductRepository()
	products.nextID = u.products.nextID
	for id, p := range u.products.products {
		products.products[id] = p.Clone()
	}
	sales := NewMemorySaleRepository()
	for id, s := range u.sales.sales {
		sales.sales[id] = s
	}

	if err := fn(Tx{Products: products, Sales: sales}); err != nil {
		return err
	}

	u.products.products = products.products
	u.products.nextID = products.nextID
	u.sales.sales = sales.sales
	return nil
}
