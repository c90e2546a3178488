package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"validation", Validation("items must not be empty"), KindValidation},
		{"not found", NotFound("inventory item %d not found", 7), KindNotFound},
		{"conflict", Conflict("concurrent checkout, retry"), KindConflict},
		{"internal wrap", Internal(errors.New("pg down")), KindInternal},
		{"insufficient stock", &InsufficientStockError{InventoryID: 3, Available: 1, Requested: 2}, KindInsufficientStock},
		{"plain error", errors.New("boom"), KindInternal},
		{"wrapped app error", fmt.Errorf("checkout: %w", NotFound("customer 9 not found")), KindNotFound},
		{"wrapped stock error", fmt.Errorf("checkout: %w", &InsufficientStockError{InventoryID: 1, Available: 0, Requested: 1}), KindInsufficientStock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestInsufficientStockErrorNamesItemAndQuantities(t *testing.T) {
	err := &InsufficientStockError{InventoryID: 42, Available: 3, Requested: 11}
	msg := err.Error()
	assert.Contains(t, msg, "42")
	assert.Contains(t, msg, "3 available")
	assert.Contains(t, msg, "11 requested")
}

func TestMessageHidesInternalCause(t *testing.T) {
	err := Internal(errors.New("connection refused to 10.0.0.5"))
	assert.Equal(t, "internal server error", Message(err))
	assert.NotContains(t, Message(err), "10.0.0.5")
}

func TestMessagePassesThroughBusinessErrors(t *testing.T) {
	assert.Equal(t, "quantity must be a positive integer", Message(Validation("quantity must be a positive integer")))

	stock := &InsufficientStockError{InventoryID: 1, Available: 0, Requested: 1}
	assert.Equal(t, stock.Error(), Message(stock))
}
