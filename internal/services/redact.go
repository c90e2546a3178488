package services

import (
	"pos-backend/internal/models"
)

// Redaction is the single place cost and profit fields are stripped for
// viewers without profit visibility. It always copies: stored rows and
// shared slices are never mutated.

// RedactSalesForViewer projects sales for the given role. Staff viewers
// lose total_profit and per-line cost_price.
func RedactSalesForViewer(sales []*models.SaleWithDetails, role string) []*models.SaleWithDetails {
	if models.CanSeeProfit(role) {
		return sales
	}
	out := make([]*models.SaleWithDetails, len(sales))
	for i, s := range sales {
		cp := *s
		cp.TotalProfit = nil
		cp.Items = make([]*models.SaleItem, len(s.Items))
		for j, item := range s.Items {
			ic := *item
			ic.CostPrice = nil
			cp.Items[j] = &ic
		}
		out[i] = &cp
	}
	return out
}

// RedactInventoryForViewer hides cost prices from staff viewers.
func RedactInventoryForViewer(items []*models.InventoryItem, role string) []*models.InventoryItem {
	if models.CanSeeProfit(role) {
		return items
	}
	out := make([]*models.InventoryItem, len(items))
	for i, item := range items {
		cp := *item
		cp.CostPrice = nil
		out[i] = &cp
	}
	return out
}

// RedactSummaryForViewer hides the profit aggregate from staff viewers.
func RedactSummaryForViewer(summary *models.ShopSummary, role string) *models.ShopSummary {
	if summary == nil || models.CanSeeProfit(role) {
		return summary
	}
	cp := *summary
	cp.TotalProfit = nil
	return &cp
}
