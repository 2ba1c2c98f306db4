package models_test

import (
	"errors"
	"math"
	"strings"
	"testing"

	"tienda/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireInvalid(t *testing.T, err error, field, condition string) *models.InvalidProductError {
	t.Helper()
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrInvalidProduct))
	invalidErr, ok := models.AsInvalidProduct(err)
	require.True(t, ok, "expected InvalidProductError, got %T", err)
	assert.Equal(t, field, invalidErr.Field)
	assert.Equal(t, condition, invalidErr.Condition)
	return invalidErr
}

func TestBlankStringsAreRejected(t *testing.T) {
	blanks := []string{"", " ", "   ", "\t", "\n", " \t\r\n "}
	for _, s := range blanks {
		requireInvalid(t, models.ValidateName(s), "name", models.ConditionEmpty)
		requireInvalid(t, models.ValidateCategory(s), "category", models.ConditionEmpty)
		requireInvalid(t, models.ValidateDescription(s), "description", models.ConditionEmpty)
	}
}

func TestValidateName_Length(t *testing.T) {
	assert.NoError(t, models.ValidateName(strings.Repeat("a", 100)))
	requireInvalid(t, models.ValidateName(strings.Repeat("a", 101)), "name", models.ConditionTooLong)

	// characters, not bytes
	assert.NoError(t, models.ValidateName(strings.Repeat("ñ", 100)))
	// surrounding whitespace is not counted
	assert.NoError(t, models.ValidateName("  "+strings.Repeat("a", 100)+"  "))
}

func TestValidateDescription_Length(t *testing.T) {
	assert.NoError(t, models.ValidateDescription("x"))
	assert.NoError(t, models.ValidateDescription(strings.Repeat("d", 500)))
	requireInvalid(t, models.ValidateDescription(strings.Repeat("d", 501)), "description", models.ConditionTooLong)
}

func TestValidatePrice(t *testing.T) {
	tests := []struct {
		name      string
		price     float64
		condition string
	}{
		{"zero", 0, ""},
		{"positive", 19.99, ""},
		{"large", math.MaxFloat64, ""},
		{"smallest negative", -math.SmallestNonzeroFloat64, models.ConditionNegative},
		{"negative", -50, models.ConditionNegative},
		{"nan", math.NaN(), models.ConditionNotFinite},
		{"positive infinity", math.Inf(1), models.ConditionNotFinite},
		{"negative infinity", math.Inf(-1), models.ConditionNotFinite},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := models.ValidatePrice(tt.price)
			if tt.condition == "" {
				assert.NoError(t, err)
				return
			}
			requireInvalid(t, err, "price", tt.condition)
		})
	}
}

func TestValidateStock(t *testing.T) {
	for _, n := range []int{0, 1, 42, math.MaxInt} {
		assert.NoError(t, models.ValidateStock(n))
	}
	for _, n := range []int{-1, -5, math.MinInt} {
		requireInvalid(t, models.ValidateStock(n), "stock", models.ConditionNegative)
	}
}

func TestValidateStockUpdate(t *testing.T) {
	for current := 0; current <= 10; current++ {
		for delta := -15; delta <= 15; delta++ {
			err := models.ValidateStockUpdate(current, delta)
			if current+delta < 0 {
				requireInvalid(t, err, "stock", models.ConditionNegativeResult)
			} else {
				assert.NoError(t, err, "current=%d delta=%d", current, delta)
			}
		}
	}
}

func TestValidate_FirstFailureWins(t *testing.T) {
	err := models.ValidateFields("", -1, -1, "", "")
	requireInvalid(t, err, "name", models.ConditionEmpty)

	err = models.ValidateFields("Lamp", -1, -1, "", "")
	requireInvalid(t, err, "price", models.ConditionNegative)

	err = models.ValidateFields("Lamp", 1, -1, "", "")
	requireInvalid(t, err, "stock", models.ConditionNegative)

	err = models.ValidateFields("Lamp", 1, 1, "", "")
	requireInvalid(t, err, "category", models.ConditionEmpty)

	err = models.ValidateFields("Lamp", 1, 1, "Decor", "")
	requireInvalid(t, err, "description", models.ConditionEmpty)
}

func TestValidate_ZeroValueProduct(t *testing.T) {
	requireInvalid(t, models.Validate(&models.Product{}), "name", models.ConditionEmpty)
	assert.Error(t, models.Validate(nil))

	p, err := models.NewProduct("Lamp", 10, 1, "Decor", "Brass desk lamp")
	require.NoError(t, err)
	assert.NoError(t, models.Validate(p))
}

func TestInvalidProductError_MessageCarriesValue(t *testing.T) {
	err := models.ValidatePrice(-50)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "-50.00")

	err = models.ValidateStockUpdate(2, -7)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "current: 2")
	assert.Contains(t, err.Error(), "change: -7")
}
