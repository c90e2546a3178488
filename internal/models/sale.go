package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale is an immutable ledger entry: once committed it is never updated
// or deleted. TotalProfit is a pointer so the redaction projection can
// drop it for staff viewers; stored rows always carry it.
type Sale struct {
	ID          int              `json:"id"`
	ShopID      int              `json:"shop_id"`
	CustomerID  int              `json:"customer_id"`
	InvoiceCode string           `json:"invoice_code"`
	TotalAmount decimal.Decimal  `json:"total_amount"`
	TotalProfit *decimal.Decimal `json:"total_profit,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}

// SaleItem is one line of a sale, carrying point-in-time snapshots of
// the product description and prices so later inventory edits never
// rewrite history.
type SaleItem struct {
	ID          int              `json:"id"`
	SaleID      int              `json:"sale_id"`
	InventoryID int              `json:"inventory_id"`
	Brand       string           `json:"brand"`
	Model       string           `json:"model"`
	Variant     string           `json:"variant"`
	Quantity    int              `json:"quantity"`
	UnitPrice   decimal.Decimal  `json:"unit_price"`
	CostPrice   *decimal.Decimal `json:"cost_price,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}

// SaleWithDetails is a sale with its customer and lines, as returned by
// the ledger listing.
type SaleWithDetails struct {
	Sale
	Customer *Customer   `json:"customer,omitempty"`
	Items    []*SaleItem `json:"items"`
}

// CreateSaleRequest is the checkout input. UnitPrice, when present and
// positive, overrides the item's current selling price.
type CreateSaleRequest struct {
	CustomerID int                     `json:"customer_id"`
	Items      []CreateSaleItemRequest `json:"items"`
}

type CreateSaleItemRequest struct {
	InventoryID int              `json:"inventory_id"`
	Quantity    int              `json:"quantity"`
	UnitPrice   *decimal.Decimal `json:"unit_price,omitempty"`
}

// ShopSummary is the dashboard report for a shop and date range.
type ShopSummary struct {
	ShopID        int              `json:"shop_id"`
	SalesCount    int              `json:"sales_count"`
	TotalRevenue  decimal.Decimal  `json:"total_revenue"`
	TotalProfit   *decimal.Decimal `json:"total_profit,omitempty"`
	UnitsSold     int              `json:"units_sold"`
	LowStockCount int              `json:"low_stock_count"`
	TopModels     []TopModel       `json:"top_models"`
}

// TopModel is one row of the best-sellers table on the dashboard.
type TopModel struct {
	Brand     string `json:"brand"`
	Model     string `json:"model"`
	UnitsSold int    `json:"units_sold"`
}
