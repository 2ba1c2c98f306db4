package models

import (
	"encoding/json"
	"fmt"
)

// SuggestedCategories is the fixed list offered to users when picking a category.
// Any non-blank label is accepted.
var SuggestedCategories = []string{
	"Furniture",
	"Music",
	"Electronics",
	"Clothing",
	"Decor",
	"Books",
	"Home",
	"Sports",
	"Toys",
	"Jewelry",
}

// Product represents one catalog item of the store.
// Fields are only reachable through validated accessors, so a Product
// obtained from NewProduct or NewProductWithID is always valid.
type Product struct {
	id          int64
	name        string
	price       float64
	stock       int
	category    string
	description string
}

// NewProduct creates a product that has not been persisted yet.
func NewProduct(name string, price float64, stock int, category, description string) (*Product, error) {
	return NewProductWithID(0, name, price, stock, category, description)
}

// NewProductWithID creates a product that already has an identity in the store.
func NewProductWithID(id int64, name string, price float64, stock int, category, description string) (*Product, error) {
	if err := ValidateFields(name, price, stock, category, description); err != nil {
		return nil, err
	}
	return &Product{
		id:          id,
		name:        name,
		price:       price,
		stock:       stock,
		category:    category,
		description: description,
	}, nil
}

func (p *Product) ID() int64           { return p.id }
func (p *Product) Name() string        { return p.name }
func (p *Product) Price() float64      { return p.price }
func (p *Product) Stock() int          { return p.stock }
func (p *Product) Category() string    { return p.category }
func (p *Product) Description() string { return p.description }

// HasID reports whether the product has been assigned an identity.
func (p *Product) HasID() bool { return p.id != 0 }

// SetID is used by the persistence layer once a row has been created.
func (p *Product) SetID(id int64) { p.id = id }

func (p *Product) SetName(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	p.name = name
	return nil
}

func (p *Product) SetPrice(price float64) error {
	if err := ValidatePrice(price); err != nil {
		return err
	}
	p.price = price
	return nil
}

// SetStock replaces the stock level. Prefer AddStock and ReduceStock for movements.
func (p *Product) SetStock(stock int) error {
	if err := ValidateStock(stock); err != nil {
		return err
	}
	p.stock = stock
	return nil
}

func (p *Product) SetCategory(category string) error {
	if err := ValidateCategory(category); err != nil {
		return err
	}
	p.category = category
	return nil
}

func (p *Product) SetDescription(description string) error {
	if err := ValidateDescription(description); err != nil {
		return err
	}
	p.description = description
	return nil
}

// Update replaces all editable fields at once. Nothing changes unless every
// value is valid.
func (p *Product) Update(name string, price float64, stock int, category, description string) error {
	if err := ValidateFields(name, price, stock, category, description); err != nil {
		return err
	}
	p.name = name
	p.price = price
	p.stock = stock
	p.category = category
	p.description = description
	return nil
}

// AddStock increases stock by quantity.
func (p *Product) AddStock(quantity int) error {
	if err := ValidateStockUpdate(p.stock, quantity); err != nil {
		return err
	}
	p.stock += quantity
	return nil
}

// ReduceStock decreases stock by quantity. Reducing below zero fails and
// leaves stock untouched.
func (p *Product) ReduceStock(quantity int) error {
	if err := ValidateStockUpdate(p.stock, -quantity); err != nil {
		return err
	}
	p.stock -= quantity
	return nil
}

// Value is the inventory value of the item (price times units on hand).
func (p *Product) Value() float64 {
	return p.price * float64(p.stock)
}

// Clone returns an independent copy.
func (p *Product) Clone() *Product {
	c := *p
	return &c
}

func (p *Product) String() string {
	return fmt.Sprintf("Product{id=%d, name=%q, price=%.2f, stock=%d, category=%q, description=%q}",
		p.id, p.name, p.price, p.stock, p.category, p.description)
}

type productJSON struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
}

// MarshalJSON implements json.Marshaler.
func (p *Product) MarshalJSON() ([]byte, error) {
	return json.Marshal(productJSON{
		ID:          p.id,
		Name:        p.name,
		Price:       p.price,
		Stock:       p.stock,
		Category:    p.category,
		Description: p.description,
	})
}

// UnmarshalJSON implements json.Unmarshaler and rejects invalid payloads.
func (p *Product) UnmarshalJSON(data []byte) error {
	var raw productJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	decoded, err := NewProductWithID(raw.ID, raw.Name, raw.Price, raw.Stock, raw.Category, raw.Description)
	if err != nil {
		return err
	}
	*p = *decoded
	return nil
}
