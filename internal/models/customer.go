package models

import "time"

type Customer struct {
	ID        int       `json:"id"`
	ShopID    int       `json:"shop_id"`
	Name      string    `json:"name"`
	Mobile    string    `json:"mobile"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateCustomerRequest represents the request body for creating a customer
type CreateCustomerRequest struct {
	Name    string `json:"name"`
	Mobile  string `json:"mobile"`
	Address string `json:"address"`
}
