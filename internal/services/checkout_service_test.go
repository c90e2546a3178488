package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pos-backend/internal/apperrors"
	"pos-backend/internal/models"
)

type fakeInventoryStore struct {
	items map[int]*models.InventoryItem
}

func (f *fakeInventoryStore) GetForShop(_ context.Context, id, shopID int) (*models.InventoryItem, error) {
	item, ok := f.items[id]
	if !ok || item.ShopID != shopID {
		return nil, apperrors.NotFound("inventory item %d not found", id)
	}
	cp := *item
	cost := *item.CostPrice
	cp.CostPrice = &cost
	return &cp, nil
}

type fakeCustomerStore struct {
	customers map[int]*models.Customer
}

func (f *fakeCustomerStore) GetForShop(_ context.Context, id, shopID int) (*models.Customer, error) {
	c, ok := f.customers[id]
	if !ok || c.ShopID != shopID {
		return nil, apperrors.NotFound("customer %d not found", id)
	}
	return c, nil
}

type fakeLedger struct {
	sales   []*models.Sale
	items   [][]*models.SaleItem
	failing error
}

func (f *fakeLedger) CreateSale(_ context.Context, sale *models.Sale, items []*models.SaleItem) error {
	if f.failing != nil {
		return f.failing
	}
	sale.ID = len(f.sales) + 1
	sale.InvoiceCode = "INV-000001"
	f.sales = append(f.sales, sale)
	f.items = append(f.items, items)
	return nil
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func newCheckoutFixture() (*CheckoutService, *fakeInventoryStore, *fakeLedger) {
	inventory := &fakeInventoryStore{items: map[int]*models.InventoryItem{
		1: {ID: 1, ShopID: 10, Brand: "Samsung", Model: "Galaxy S24", Storage: "256GB", RAM: "8GB",
			Quantity: 5, CostPrice: decPtr("48000"), SellingPrice: dec("55000")},
		2: {ID: 2, ShopID: 10, Brand: "Apple", Model: "iPhone 15",
			Quantity: 2, CostPrice: decPtr("65000.50"), SellingPrice: dec("79900.99")},
	}}
	customers := &fakeCustomerStore{customers: map[int]*models.Customer{
		7: {ID: 7, ShopID: 10, Name: "Ravi", Mobile: "9876543210"},
	}}
	ledger := &fakeLedger{}
	return NewCheckoutService(inventory, customers, ledger), inventory, ledger
}

func TestCreateSaleComputesTotalsAndProfit(t *testing.T) {
	svc, _, ledger := newCheckoutFixture()

	sale, err := svc.CreateSale(context.Background(), 10, &models.CreateSaleRequest{
		CustomerID: 7,
		Items: []models.CreateSaleItemRequest{
			{InventoryID: 1, Quantity: 2},
			{InventoryID: 2, Quantity: 1},
		},
	})
	require.NoError(t, err)
	require.Len(t, ledger.sales, 1)

	// 2*55000 + 1*79900.99
	assert.True(t, sale.TotalAmount.Equal(dec("189900.99")), "total %s", sale.TotalAmount)
	// 2*(55000-48000) + 1*(79900.99-65000.50)
	require.NotNil(t, sale.TotalProfit)
	assert.True(t, sale.TotalProfit.Equal(dec("28900.49")), "profit %s", sale.TotalProfit)

	require.Len(t, sale.Items, 2)
	assert.Equal(t, "Samsung", sale.Items[0].Brand)
	assert.Equal(t, "256GB 8GB", sale.Items[0].Variant)
	assert.Equal(t, "INV-000001", sale.InvoiceCode)
	require.NotNil(t, sale.Customer)
	assert.Equal(t, "Ravi", sale.Customer.Name)
}

func TestCreateSaleDecimalExactnessAcrossManyLines(t *testing.T) {
	inventory := &fakeInventoryStore{items: map[int]*models.InventoryItem{
		1: {ID: 1, ShopID: 10, Brand: "Acc", Model: "Case",
			Quantity: 1000, CostPrice: decPtr("0.10"), SellingPrice: dec("0.30")},
	}}
	customers := &fakeCustomerStore{customers: map[int]*models.Customer{
		7: {ID: 7, ShopID: 10, Name: "Ravi"},
	}}
	svc := NewCheckoutService(inventory, customers, &fakeLedger{})

	items := make([]models.CreateSaleItemRequest, 100)
	for i := range items {
		items[i] = models.CreateSaleItemRequest{InventoryID: 1, Quantity: 1}
	}

	sale, err := svc.CreateSale(context.Background(), 10, &models.CreateSaleRequest{CustomerID: 7, Items: items})
	require.NoError(t, err)
	assert.True(t, sale.TotalAmount.Equal(dec("30")), "total %s", sale.TotalAmount)
	assert.True(t, sale.TotalProfit.Equal(dec("20")), "profit %s", sale.TotalProfit)
}

func TestCreateSalePriceOverride(t *testing.T) {
	t.Run("positive override wins", func(t *testing.T) {
		svc, _, ledger := newCheckoutFixture()
		sale, err := svc.CreateSale(context.Background(), 10, &models.CreateSaleRequest{
			CustomerID: 7,
			Items:      []models.CreateSaleItemRequest{{InventoryID: 1, Quantity: 1, UnitPrice: decPtr("52000")}},
		})
		require.NoError(t, err)
		assert.True(t, sale.TotalAmount.Equal(dec("52000")))
		assert.True(t, sale.TotalProfit.Equal(dec("4000")))
		assert.True(t, ledger.items[0][0].UnitPrice.Equal(dec("52000")))
	})

	t.Run("zero override falls back to selling price", func(t *testing.T) {
		svc, _, _ := newCheckoutFixture()
		sale, err := svc.CreateSale(context.Background(), 10, &models.CreateSaleRequest{
			CustomerID: 7,
			Items:      []models.CreateSaleItemRequest{{InventoryID: 1, Quantity: 1, UnitPrice: decPtr("0")}},
		})
		require.NoError(t, err)
		assert.True(t, sale.TotalAmount.Equal(dec("55000")))
	})

	t.Run("negative override falls back to selling price", func(t *testing.T) {
		svc, _, _ := newCheckoutFixture()
		sale, err := svc.CreateSale(context.Background(), 10, &models.CreateSaleRequest{
			CustomerID: 7,
			Items:      []models.CreateSaleItemRequest{{InventoryID: 1, Quantity: 1, UnitPrice: decPtr("-5")}},
		})
		require.NoError(t, err)
		assert.True(t, sale.TotalAmount.Equal(dec("55000")))
	})
}

func TestCreateSaleValidation(t *testing.T) {
	svc, _, ledger := newCheckoutFixture()

	tests := []struct {
		name string
		req  *models.CreateSaleRequest
		kind apperrors.Kind
	}{
		{"empty cart", &models.CreateSaleRequest{CustomerID: 7}, apperrors.KindValidation},
		{"zero quantity", &models.CreateSaleRequest{CustomerID: 7,
			Items: []models.CreateSaleItemRequest{{InventoryID: 1, Quantity: 0}}}, apperrors.KindValidation},
		{"negative quantity", &models.CreateSaleRequest{CustomerID: 7,
			Items: []models.CreateSaleItemRequest{{InventoryID: 1, Quantity: -2}}}, apperrors.KindValidation},
		{"missing customer id", &models.CreateSaleRequest{
			Items: []models.CreateSaleItemRequest{{InventoryID: 1, Quantity: 1}}}, apperrors.KindValidation},
		{"unknown customer", &models.CreateSaleRequest{CustomerID: 99,
			Items: []models.CreateSaleItemRequest{{InventoryID: 1, Quantity: 1}}}, apperrors.KindNotFound},
		{"unknown inventory item", &models.CreateSaleRequest{CustomerID: 7,
			Items: []models.CreateSaleItemRequest{{InventoryID: 99, Quantity: 1}}}, apperrors.KindNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateSale(context.Background(), 10, tt.req)
			require.Error(t, err)
			assert.Equal(t, tt.kind, apperrors.KindOf(err))
		})
	}

	assert.Empty(t, ledger.sales, "no sale may be written on a failed checkout")
}

func TestCreateSaleInsufficientStock(t *testing.T) {
	svc, _, ledger := newCheckoutFixture()

	_, err := svc.CreateSale(context.Background(), 10, &models.CreateSaleRequest{
		CustomerID: 7,
		Items:      []models.CreateSaleItemRequest{{InventoryID: 2, Quantity: 3}},
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindInsufficientStock, apperrors.KindOf(err))

	var stockErr *apperrors.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 2, stockErr.InventoryID)
	assert.Equal(t, 2, stockErr.Available)
	assert.Equal(t, 3, stockErr.Requested)
	assert.Empty(t, ledger.sales)
}

func TestCreateSaleAggregatesDuplicateLines(t *testing.T) {
	svc, _, _ := newCheckoutFixture()

	// Item 2 has 2 in stock; two lines of 1 pass, two lines of 1+2 fail.
	_, err := svc.CreateSale(context.Background(), 10, &models.CreateSaleRequest{
		CustomerID: 7,
		Items: []models.CreateSaleItemRequest{
			{InventoryID: 2, Quantity: 1},
			{InventoryID: 2, Quantity: 2},
		},
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindInsufficientStock, apperrors.KindOf(err))

	sale, err := svc.CreateSale(context.Background(), 10, &models.CreateSaleRequest{
		CustomerID: 7,
		Items: []models.CreateSaleItemRequest{
			{InventoryID: 2, Quantity: 1},
			{InventoryID: 2, Quantity: 1},
		},
	})
	require.NoError(t, err)
	require.Len(t, sale.Items, 2)
}

func TestCreateSaleWrongShopIsNotFound(t *testing.T) {
	svc, _, _ := newCheckoutFixture()

	_, err := svc.CreateSale(context.Background(), 11, &models.CreateSaleRequest{
		CustomerID: 7,
		Items:      []models.CreateSaleItemRequest{{InventoryID: 1, Quantity: 1}},
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestCreateSalePropagatesLedgerFailure(t *testing.T) {
	svc, _, ledger := newCheckoutFixture()
	ledger.failing = apperrors.Conflict("concurrent checkout, retry")

	_, err := svc.CreateSale(context.Background(), 10, &models.CreateSaleRequest{
		CustomerID: 7,
		Items:      []models.CreateSaleItemRequest{{InventoryID: 1, Quantity: 1}},
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
}
