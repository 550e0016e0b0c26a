package models

import "time"

type Cart struct {
	UserID string     `json:"user_id"`
	Items  []CartItem `json:"items"`
}

type CartItem struct {
	ProductID string    `json:"product_id"`
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"added_at"`
}

// CartLine est une ligne du panier valorisée au prix catalogue actuel
type CartLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
	Subtotal float64 `json:"subtotal"`
}

type CartSnapshot struct {
	Items       []CartLine `json:"items"`
	TotalItems  int        `json:"total_items"`
	TotalAmount float64    `json:"total_amount"`
}

type CartIssue struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name,omitempty"`
	Reason    string `json:"reason"`
	Available int    `json:"available,omitempty"`
	Requested int    `json:"requested,omitempty"`
}

type CartValidation struct {
	IsValid    bool        `json:"is_valid"`
	Issues     []CartIssue `json:"issues"`
	ValidItems []CartItem  `json:"valid_items"`
}
