package handlers

import (
	"net/http"

	"pos-backend/internal/services"
	"pos-backend/pkg/utils"
)

type ReportHandler struct {
	Service *services.ReportService
	Shops   *services.ShopService
}

func NewReportHandler(s *services.ReportService, shops *services.ShopService) *ReportHandler {
	return &ReportHandler{Service: s, Shops: shops}
}

// Summary returns the shop dashboard aggregates for a date range.
func (h *ReportHandler) Summary(w http.ResponseWriter, r *http.Request) {
	scope, err := resolveShopScope(r, h.Shops)
	if err != nil {
		utils.Error(w, err)
		return
	}

	q := r.URL.Query()
	dr, err := services.ParseDateRange(q.Get("startDate"), q.Get("endDate"))
	if err != nil {
		utils.Error(w, err)
		return
	}

	summary, err := h.Service.Summary(r.Context(), scope.ShopID, dr, scope.Role)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, summary)
}
