package handlers

import (
	"net/http"

	"pos-backend/internal/middleware"
	"pos-backend/internal/models"
	"pos-backend/internal/services"
	"pos-backend/pkg/utils"
)

type ShopHandler struct {
	Service *services.ShopService
}

func NewShopHandler(s *services.ShopService) *ShopHandler {
	return &ShopHandler{Service: s}
}

func (h *ShopHandler) identity(r *http.Request) (int, string) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	role, _ := middleware.GetRoleFromContext(r.Context())
	return userID, role
}

func (h *ShopHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := h.identity(r)

	var req models.CreateShopRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.Error(w, err)
		return
	}

	shop, err := h.Service.CreateShop(r.Context(), userID, &req)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, shop)
}

func (h *ShopHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, role := h.identity(r)

	shops, err := h.Service.ListShops(r.Context(), userID, role)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, shops)
}

func (h *ShopHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		utils.Error(w, err)
		return
	}
	userID, role := h.identity(r)

	shop, err := h.Service.GetShop(r.Context(), id, userID, role)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, shop)
}

func (h *ShopHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		utils.Error(w, err)
		return
	}
	userID, role := h.identity(r)

	var req models.UpdateShopRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.Error(w, err)
		return
	}

	shop, err := h.Service.UpdateShop(r.Context(), id, userID, role, &req)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, shop)
}

func (h *ShopHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		utils.Error(w, err)
		return
	}
	userID, role := h.identity(r)

	if err := h.Service.DeleteShop(r.Context(), id, userID, role); err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "shop deleted"})
}
