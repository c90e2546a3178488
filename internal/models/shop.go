package models

import "time"

// Shop is a tenant: it owns its own inventory, customers and sales.
type Shop struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	OwnerID   int       `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateShopRequest represents the request body for registering a shop
type CreateShopRequest struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
}

// UpdateShopRequest represents the request body for updating a shop
type UpdateShopRequest struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
}
