package models

import (
	"math"
	"strings"
	"unicode/utf8"
)

// Catalog limits.
const (
	MinPrice             = 0.0
	MinStock             = 0
	MaxNameLength        = 100
	MaxDescriptionLength = 500
)

// Validate checks every field of p in the order name, price, stock, category,
// description and returns the first failure.
func Validate(p *Product) error {
	if p == nil {
		return invalid("product", ConditionEmpty, nil, "product is required")
	}
	return ValidateFields(p.name, p.price, p.stock, p.category, p.description)
}

// ValidateFields runs the whole-entity check over raw field values.
func ValidateFields(name string, price float64, stock int, category, description string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if err := ValidatePrice(price); err != nil {
		return err
	}
	if err := ValidateStock(stock); err != nil {
		return err
	}
	if err := ValidateCategory(category); err != nil {
		return err
	}
	return ValidateDescription(description)
}

// ValidateName rejects blank names and names longer than MaxNameLength characters.
func ValidateName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return invalid("name", ConditionEmpty, name, "product name cannot be empty (got %q)", name)
	}
	if n := utf8.RuneCountInString(trimmed); n > MaxNameLength {
		return invalid("name", ConditionTooLong, name,
			"product name cannot exceed %d characters (got %d: %q)", MaxNameLength, n, name)
	}
	return nil
}

// ValidatePrice rejects negative, NaN and infinite prices.
func ValidatePrice(price float64) error {
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return invalid("price", ConditionNotFinite, price, "price must be a finite number (got %v)", price)
	}
	if price < MinPrice {
		return invalid("price", ConditionNegative, price, "price cannot be negative (got %.2f)", price)
	}
	return nil
}

// ValidateStock rejects negative stock.
func ValidateStock(stock int) error {
	if stock < MinStock {
		return invalid("stock", ConditionNegative, stock, "stock cannot be negative (got %d)", stock)
	}
	return nil
}

// ValidateCategory rejects blank categories.
func ValidateCategory(category string) error {
	if strings.TrimSpace(category) == "" {
		return invalid("category", ConditionEmpty, category, "product category cannot be empty (got %q)", category)
	}
	return nil
}

// ValidateDescription rejects blank descriptions and descriptions longer than
// MaxDescriptionLength characters.
func ValidateDescription(description string) error {
	trimmed := strings.TrimSpace(description)
	if trimmed == "" {
		return invalid("description", ConditionEmpty, description, "description cannot be empty (got %q)", description)
	}
	if n := utf8.RuneCountInString(trimmed); n > MaxDescriptionLength {
		return invalid("description", ConditionTooLong, description,
			"description cannot exceed %d characters (got %d)", MaxDescriptionLength, n)
	}
	return nil
}

// ValidateStockUpdate rejects a delta that would leave stock below zero.
// Reductions are passed as a negative delta.
func ValidateStockUpdate(currentStock, delta int) error {
	if currentStock+delta < MinStock {
		return invalid("stock", ConditionNegativeResult, delta,
			"operation would result in negative stock (current: %d, change: %d)", currentStock, delta)
	}
	return nil
}
