package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pos-backend/internal/models"
)

func sampleSales() []*models.SaleWithDetails {
	return []*models.SaleWithDetails{
		{
			Sale: models.Sale{
				ID:          1,
				InvoiceCode: "INV-000001",
				TotalAmount: dec("55000"),
				TotalProfit: decPtr("7000"),
			},
			Items: []*models.SaleItem{
				{Brand: "Samsung", Model: "Galaxy S24", UnitPrice: dec("55000"), CostPrice: decPtr("48000")},
			},
		},
	}
}

func TestRedactSalesForStaff(t *testing.T) {
	sales := sampleSales()
	out := RedactSalesForViewer(sales, models.RoleStaff)

	require.Len(t, out, 1)
	assert.Nil(t, out[0].TotalProfit)
	assert.Nil(t, out[0].Items[0].CostPrice)

	// The redacted fields survive everywhere else.
	assert.Equal(t, "INV-000001", out[0].InvoiceCode)
	assert.True(t, out[0].TotalAmount.Equal(dec("55000")))
	assert.True(t, out[0].Items[0].UnitPrice.Equal(dec("55000")))
}

func TestRedactSalesDoesNotMutateInput(t *testing.T) {
	sales := sampleSales()
	_ = RedactSalesForViewer(sales, models.RoleStaff)

	require.NotNil(t, sales[0].TotalProfit)
	assert.True(t, sales[0].TotalProfit.Equal(dec("7000")))
	require.NotNil(t, sales[0].Items[0].CostPrice)
	assert.True(t, sales[0].Items[0].CostPrice.Equal(dec("48000")))
}

func TestRedactSalesPassThroughForSuperuser(t *testing.T) {
	sales := sampleSales()
	out := RedactSalesForViewer(sales, models.RoleSuperuser)

	require.Len(t, out, 1)
	require.NotNil(t, out[0].TotalProfit)
	require.NotNil(t, out[0].Items[0].CostPrice)
}

func TestRedactInventoryForViewer(t *testing.T) {
	items := []*models.InventoryItem{
		{ID: 1, Brand: "Apple", CostPrice: decPtr("65000"), SellingPrice: dec("79900")},
	}

	staff := RedactInventoryForViewer(items, models.RoleStaff)
	assert.Nil(t, staff[0].CostPrice)
	assert.True(t, staff[0].SellingPrice.Equal(dec("79900")))
	require.NotNil(t, items[0].CostPrice, "input must not be mutated")

	super := RedactInventoryForViewer(items, models.RoleSuperuser)
	require.NotNil(t, super[0].CostPrice)
}

func TestRedactSummaryForViewer(t *testing.T) {
	summary := &models.ShopSummary{
		ShopID:       10,
		SalesCount:   3,
		TotalRevenue: dec("150000"),
		TotalProfit:  decPtr("21000"),
	}

	staff := RedactSummaryForViewer(summary, models.RoleStaff)
	assert.Nil(t, staff.TotalProfit)
	assert.True(t, staff.TotalRevenue.Equal(dec("150000")))
	require.NotNil(t, summary.TotalProfit, "input must not be mutated")

	assert.Same(t, summary, RedactSummaryForViewer(summary, models.RoleSuperuser))
	assert.Nil(t, RedactSummaryForViewer(nil, models.RoleStaff))
}
