package handlers

import (
	"net/http"

	"pos-backend/internal/middleware"
	"pos-backend/internal/models"
	"pos-backend/internal/services"
	"pos-backend/pkg/utils"
)

type InventoryHandler struct {
	Service *services.InventoryService
	Shops   *services.ShopService
}

func NewInventoryHandler(s *services.InventoryService, shops *services.ShopService) *InventoryHandler {
	return &InventoryHandler{Service: s, Shops: shops}
}

func (h *InventoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	scope, err := resolveShopScope(r, h.Shops)
	if err != nil {
		utils.Error(w, err)
		return
	}

	var req models.CreateInventoryRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.Error(w, err)
		return
	}

	item, err := h.Service.AddItem(r.Context(), scope.ShopID, &req)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, item)
}

func (h *InventoryHandler) List(w http.ResponseWriter, r *http.Request) {
	scope, err := resolveShopScope(r, h.Shops)
	if err != nil {
		utils.Error(w, err)
		return
	}

	q := r.URL.Query()
	filter := models.InventoryFilter{
		Brand:    q.Get("brand"),
		Search:   q.Get("search"),
		LowStock: q.Get("lowStock") == "true",
	}

	items, err := h.Service.ListItems(r.Context(), scope.ShopID, filter, scope.Role)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, items)
}

func (h *InventoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	scope, err := resolveShopScope(r, h.Shops)
	if err != nil {
		utils.Error(w, err)
		return
	}

	id, err := pathInt(r, "id")
	if err != nil {
		utils.Error(w, err)
		return
	}

	item, err := h.Service.GetItem(r.Context(), id, scope.ShopID, scope.Role)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, item)
}

// authorizeItem resolves an item-id-only route to its owning shop and
// checks the caller may act on that shop.
func (h *InventoryHandler) authorizeItem(r *http.Request) (*models.InventoryItem, error) {
	id, err := pathInt(r, "id")
	if err != nil {
		return nil, err
	}

	item, err := h.Service.ResolveItem(r.Context(), id)
	if err != nil {
		return nil, err
	}

	userID, _ := middleware.GetUserIDFromContext(r.Context())
	role, _ := middleware.GetRoleFromContext(r.Context())
	if _, err := h.Shops.AuthorizeShopAccess(r.Context(), item.ShopID, userID, role); err != nil {
		return nil, err
	}
	return item, nil
}

func (h *InventoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	item, err := h.authorizeItem(r)
	if err != nil {
		utils.Error(w, err)
		return
	}

	var req models.UpdateInventoryRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.Error(w, err)
		return
	}

	updated, err := h.Service.UpdateItem(r.Context(), item.ID, item.ShopID, &req)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, updated)
}

func (h *InventoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	item, err := h.authorizeItem(r)
	if err != nil {
		utils.Error(w, err)
		return
	}

	if err := h.Service.DeleteItem(r.Context(), item.ID, item.ShopID); err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "inventory item deleted"})
}
