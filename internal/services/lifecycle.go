package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"velora_back_end/internal/models"
	"velora_back_end/internal/store"
)

// Cancel annule une commande PENDING et compense exactement le checkout :
// le stock de chaque ligne est restitué, et le coupon éventuel (fidélité
// ou manuel) redevient utilisable.
//
// Une commande appartenant à un autre utilisateur renvoie ErrOrderNotFound
// et non une erreur d'autorisation, pour ne pas révéler son existence.
func (s *OrderService) Cancel(ctx context.Context, orderID, requesterID string, isAdmin bool) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, err := s.orders.GetOrder(ctx, orderID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, storageError("lecture commande", err)
	}
	if !isAdmin && order.UserID != requesterID {
		return nil, ErrOrderNotFound
	}
	if order.Status != models.OrderStatusPending {
		return nil, ErrInvalidTransition
	}

	now := time.Now()
	order.Status = models.OrderStatusCancelled
	order.UpdatedAt = now
	if err := s.orders.SaveOrder(ctx, order); err != nil {
		return nil, storageError("sauvegarde commande", err)
	}

	// Restitution du stock — l'inverse exact du débit au checkout
	for _, item := range order.Items {
		product, err := s.products.GetProduct(ctx, item.ProductID)
		if errors.Is(err, store.ErrNotFound) {
			// Les produits ne sont jamais supprimés, mais on ne bloque
			// pas l'annulation pour autant
			log.Printf("⚠️ Produit %s introuvable lors de la restitution du stock", item.ProductID)
			continue
		}
		if err != nil {
			return nil, storageError("lecture produit", err)
		}
		product.Stock += item.Quantity
		product.UpdatedAt = now
		if err := s.products.SaveProduct(ctx, product); err != nil {
			return nil, storageError("restitution stock", err)
		}
	}

	// Retour du coupon au pool, qu'il soit manuel ou frappé par la fidélité
	if order.DiscountCode != "" {
		coupon, err := s.coupons.GetCouponByCode(ctx, order.DiscountCode)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return nil, storageError("lecture coupon", err)
		}
		if err == nil && coupon.IsUsed {
			coupon.IsUsed = false
			coupon.UsedBy = nil
			coupon.UsedAt = nil
			if err := s.coupons.SaveCoupon(ctx, coupon); err != nil {
				return nil, storageError("restitution coupon", err)
			}
			log.Printf("🎟️ Coupon %s restitué", coupon.Code)
		}
	}

	log.Printf("↩️ Commande %s annulée (stock restitué)", order.ID)
	return order, nil
}

// UpdateStatus fait avancer le statut d'une commande (parcours admin).
// Seule l'appartenance à l'énumération est vérifiée : aucune contrainte
// sur la paire source/cible et aucune compensation — seul Cancel restitue
// stock et coupon.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID, newStatus string) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !models.IsValidOrderStatus(newStatus) {
		return nil, fmt.Errorf("%w: statut inconnu %q", ErrInvalidTransition, newStatus)
	}

	order, err := s.orders.GetOrder(ctx, orderID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, storageError("lecture commande", err)
	}

	order.Status = newStatus
	order.UpdatedAt = time.Now()
	if err := s.orders.SaveOrder(ctx, order); err != nil {
		return nil, storageError("sauvegarde commande", err)
	}

	log.Printf("📦 Commande %s → statut %q", order.ID, newStatus)
	return order, nil
}

// GetOrderForUser renvoie une commande en appliquant la même règle de
// visibilité que Cancel
func (s *OrderService) GetOrderForUser(ctx context.Context, orderID, requesterID string, isAdmin bool) (*models.Order, error) {
	order, err := s.orders.GetOrder(ctx, orderID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, storageError("lecture commande", err)
	}
	if !isAdmin && order.UserID != requesterID {
		return nil, ErrOrderNotFound
	}
	return order, nil
}
