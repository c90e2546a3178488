package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVariant(t *testing.T) {
	tests := []struct {
		name    string
		storage string
		ram     string
		want    string
	}{
		{"both", "256GB", "8GB", "256GB 8GB"},
		{"storage only", "128GB", "", "128GB"},
		{"ram only", "", "6GB", "6GB"},
		{"neither", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := &InventoryItem{Storage: tt.storage, RAM: tt.ram}
			assert.Equal(t, tt.want, item.Variant())
		})
	}
}

func TestIsLowStock(t *testing.T) {
	assert.True(t, (&InventoryItem{Quantity: 2, LowStockThreshold: 2}).IsLowStock())
	assert.True(t, (&InventoryItem{Quantity: 0, LowStockThreshold: 2}).IsLowStock())
	assert.False(t, (&InventoryItem{Quantity: 3, LowStockThreshold: 2}).IsLowStock())
}

func TestCanSeeProfit(t *testing.T) {
	assert.True(t, CanSeeProfit(RoleSuperuser))
	assert.False(t, CanSeeProfit(RoleStaff))
	assert.False(t, CanSeeProfit(""))
}
