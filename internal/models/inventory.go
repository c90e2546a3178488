package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem is one stocked phone variant in a shop. CostPrice is a
// pointer so the redaction projection can drop it for staff viewers;
// rows read from storage always carry it.
type InventoryItem struct {
	ID                int              `json:"id"`
	ShopID            int              `json:"shop_id"`
	Brand             string           `json:"brand"`
	Model             string           `json:"model"`
	Storage           string           `json:"storage"`
	RAM               string           `json:"ram"`
	Color             string           `json:"color,omitempty"`
	Quantity          int              `json:"quantity"`
	CostPrice         *decimal.Decimal `json:"cost_price,omitempty"`
	SellingPrice      decimal.Decimal  `json:"selling_price"`
	LowStockThreshold int              `json:"low_stock_threshold"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// Variant is the snapshot description carried onto sale lines.
func (i *InventoryItem) Variant() string {
	if i.Storage == "" && i.RAM == "" {
		return ""
	}
	if i.RAM == "" {
		return i.Storage
	}
	if i.Storage == "" {
		return i.RAM
	}
	return i.Storage + " " + i.RAM
}

// IsLowStock reports whether the item is at or below its threshold.
func (i *InventoryItem) IsLowStock() bool {
	return i.Quantity <= i.LowStockThreshold
}

// CreateInventoryRequest represents the request body for adding stock
type CreateInventoryRequest struct {
	Brand             string          `json:"brand"`
	Model             string          `json:"model"`
	Storage           string          `json:"storage"`
	RAM               string          `json:"ram"`
	Color             string          `json:"color"`
	Quantity          int             `json:"quantity"`
	CostPrice         decimal.Decimal `json:"cost_price"`
	SellingPrice      decimal.Decimal `json:"selling_price"`
	LowStockThreshold int             `json:"low_stock_threshold"`
}

// UpdateInventoryRequest represents the request body for editing an item
type UpdateInventoryRequest struct {
	Brand             string          `json:"brand"`
	Model             string          `json:"model"`
	Storage           string          `json:"storage"`
	RAM               string          `json:"ram"`
	Color             string          `json:"color"`
	Quantity          int             `json:"quantity"`
	CostPrice         decimal.Decimal `json:"cost_price"`
	SellingPrice      decimal.Decimal `json:"selling_price"`
	LowStockThreshold int             `json:"low_stock_threshold"`
}

// InventoryFilter narrows inventory listings.
type InventoryFilter struct {
	Brand    string
	Search   string
	LowStock bool
}
