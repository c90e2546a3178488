package services

import (
	"context"
	"fmt"
	"log"

	"github.com/shopspring/decimal"

	"pos-backend/internal/apperrors"
	"pos-backend/internal/cache"
	"pos-backend/internal/metrics"
	"pos-backend/internal/models"
)

// InventoryStore is the slice of the inventory layer checkout needs.
type InventoryStore interface {
	GetForShop(ctx context.Context, id, shopID int) (*models.InventoryItem, error)
}

// CustomerStore resolves the customer a sale is billed to.
type CustomerStore interface {
	GetForShop(ctx context.Context, id, shopID int) (*models.Customer, error)
}

// SaleLedger persists a sale header plus lines atomically, decrementing
// stock in the same transaction.
type SaleLedger interface {
	CreateSale(ctx context.Context, sale *models.Sale, items []*models.SaleItem) error
}

// CheckoutService turns a validated cart into an immutable sale. All
// validation happens before any write; the ledger transaction is the
// only place state changes.
type CheckoutService struct {
	Inventory InventoryStore
	Customers CustomerStore
	Ledger    SaleLedger
}

func NewCheckoutService(inventory InventoryStore, customers CustomerStore, ledger SaleLedger) *CheckoutService {
	return &CheckoutService{
		Inventory: inventory,
		Customers: customers,
		Ledger:    ledger,
	}
}

// CreateSale validates the cart, computes totals and per-line profit in
// decimal arithmetic, and commits the sale atomically. Cost price is
// always server-derived; the caller can only override the unit price.
func (s *CheckoutService) CreateSale(ctx context.Context, shopID int, req *models.CreateSaleRequest) (*models.SaleWithDetails, error) {
	if req == nil || len(req.Items) == 0 {
		return nil, fail(apperrors.Validation("items must not be empty"))
	}
	for _, line := range req.Items {
		if line.Quantity <= 0 {
			return nil, fail(apperrors.Validation("quantity must be a positive integer (inventory item %d)", line.InventoryID))
		}
	}
	if req.CustomerID <= 0 {
		return nil, fail(apperrors.Validation("customer_id is required"))
	}

	// Walk-in sales still go through a registered customer; there is no
	// anonymous checkout.
	customer, err := s.Customers.GetForShop(ctx, req.CustomerID, shopID)
	if err != nil {
		return nil, fail(err)
	}

	// Aggregate requested quantities so a cart with two lines for the
	// same item is validated against combined demand.
	requested := make(map[int]int)
	for _, line := range req.Items {
		requested[line.InventoryID] += line.Quantity
	}

	totalAmount := decimal.Zero
	totalProfit := decimal.Zero
	saleItems := make([]*models.SaleItem, 0, len(req.Items))
	seen := make(map[int]*models.InventoryItem)

	for _, line := range req.Items {
		item, ok := seen[line.InventoryID]
		if !ok {
			item, err = s.Inventory.GetForShop(ctx, line.InventoryID, shopID)
			if err != nil {
				return nil, fail(err)
			}
			if item.CostPrice == nil {
				return nil, fail(apperrors.Internal(fmt.Errorf("inventory item %d has no cost price", item.ID)))
			}
			seen[line.InventoryID] = item
		}

		if requested[line.InventoryID] > item.Quantity {
			return nil, fail(&apperrors.InsufficientStockError{
				InventoryID: item.ID,
				Available:   item.Quantity,
				Requested:   requested[line.InventoryID],
			})
		}

		unitPrice := item.SellingPrice
		if line.UnitPrice != nil && line.UnitPrice.IsPositive() {
			unitPrice = *line.UnitPrice
		}
		costPrice := *item.CostPrice
		qty := decimal.NewFromInt(int64(line.Quantity))

		totalAmount = totalAmount.Add(unitPrice.Mul(qty))
		totalProfit = totalProfit.Add(unitPrice.Sub(costPrice).Mul(qty))

		cost := costPrice
		saleItems = append(saleItems, &models.SaleItem{
			InventoryID: item.ID,
			Brand:       item.Brand,
			Model:       item.Model,
			Variant:     item.Variant(),
			Quantity:    line.Quantity,
			UnitPrice:   unitPrice,
			CostPrice:   &cost,
		})
	}

	profit := totalProfit
	sale := &models.Sale{
		ShopID:      shopID,
		CustomerID:  customer.ID,
		TotalAmount: totalAmount,
		TotalProfit: &profit,
	}

	if err := s.Ledger.CreateSale(ctx, sale, saleItems); err != nil {
		return nil, fail(err)
	}

	metrics.SalesCreatedTotal.Inc()
	cache.InvalidateShopSummaries(ctx, shopID)
	log.Printf("[Checkout] Sale %s committed for shop %d: %d line(s), total %s",
		sale.InvoiceCode, shopID, len(saleItems), totalAmount.StringFixed(2))

	return &models.SaleWithDetails{
		Sale:     *sale,
		Customer: customer,
		Items:    saleItems,
	}, nil
}

func fail(err error) error {
	metrics.CheckoutFailuresTotal.WithLabelValues(string(apperrors.KindOf(err))).Inc()
	return err
}
