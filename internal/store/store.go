package store

import (
	"context"
	"errors"

	"velora_back_end/internal/models"
)

// ErrNotFound est renvoyé par tous les stores quand la clé n'existe pas
var ErrNotFound = errors.New("enregistrement introuvable")

// ProductStore — accès au catalogue et au stock. SaveProduct est un upsert,
// les produits ne sont jamais supprimés (seulement désactivés).
type ProductStore interface {
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	ListProducts(ctx context.Context) ([]models.Product, error)
	SaveProduct(ctx context.Context, p *models.Product) error
}

// CartStore — un panier par utilisateur, créé au premier ajout
type CartStore interface {
	GetCart(ctx context.Context, userID string) (*models.Cart, error)
	SaveCart(ctx context.Context, cart *models.Cart) error
	ClearCart(ctx context.Context, userID string) error
}

// CouponStore — registre des coupons, recherche par id ou par code unique
type CouponStore interface {
	GetCoupon(ctx context.Context, id string) (*models.Coupon, error)
	GetCouponByCode(ctx context.Context, code string) (*models.Coupon, error)
	SaveCoupon(ctx context.Context, coupon *models.Coupon) error
	ListCoupons(ctx context.Context) ([]models.Coupon, error)
}

// OrderStore — commandes par id, avec index secondaire par utilisateur
type OrderStore interface {
	GetOrder(ctx context.Context, id string) (*models.Order, error)
	SaveOrder(ctx context.Context, order *models.Order) error
	ListOrdersByUser(ctx context.Context, userID string) ([]models.Order, error)
	ListOrders(ctx context.Context) ([]models.Order, error)
	// CountNonCancelledOrders compte les commandes non annulées d'un
	// utilisateur — sert à calculer le numéro d'ordre pour la fidélité
	CountNonCancelledOrders(ctx context.Context, userID string) (int, error)
}
