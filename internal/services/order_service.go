package services

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"velora_back_end/internal/models"
	"velora_back_end/internal/store"
)

// OrderService est le cœur transactionnel de la boutique. Checkout,
// annulation et changement de statut partagent le même mutex : un seul
// écrivain à la fois sur le stock, les coupons et les commandes — sans
// quoi deux checkouts concurrents sur le même panier peuvent débiter le
// stock deux fois, ou deux requêtes consommer le même coupon.
type OrderService struct {
	mu       sync.Mutex
	products store.ProductStore
	carts    store.CartStore
	coupons  store.CouponStore
	orders   store.OrderStore
	loyalty  LoyaltyConfig
}

func NewOrderService(products store.ProductStore, carts store.CartStore, coupons store.CouponStore, orders store.OrderStore, loyalty LoyaltyConfig) *OrderService {
	if loyalty.Interval <= 0 {
		loyalty.Interval = DefaultLoyaltyInterval
	}
	if loyalty.Percent <= 0 {
		loyalty.Percent = DefaultLoyaltyPercent
	}
	return &OrderService{
		products: products,
		carts:    carts,
		coupons:  coupons,
		orders:   orders,
		loyalty:  loyalty,
	}
}

// CheckoutResult annote la commande créée avec les métadonnées de
// présentation (la remise fidélité a-t-elle joué, numéro d'ordre,
// pourcentage) — elles ne font pas partie de l'entité Order.
type CheckoutResult struct {
	Order          *models.Order `json:"order"`
	LoyaltyApplied bool          `json:"loyalty_applied"`
	OrderNumber    int           `json:"order_number"`
	LoyaltyPercent float64       `json:"loyalty_percent,omitempty"`
}

// Checkout convertit le panier en commande immuable : tout ou rien.
// Le moindre échec de précondition (panier vide, produit indisponible,
// stock insuffisant, coupon invalide) abandonne sans aucune écriture.
func (s *OrderService) Checkout(ctx context.Context, userID, couponCode string) (*CheckoutResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// 1. Charger le panier
	cart, err := s.carts.GetCart(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrEmptyCart
	}
	if err != nil {
		return nil, storageError("lecture panier", err)
	}
	if len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}

	// 2. Relire chaque produit — on ne fait jamais confiance à un
	// snapshot pris avant : le catalogue et le stock ont pu changer
	now := time.Now()
	items := make([]models.OrderItem, 0, len(cart.Items))
	products := make([]*models.Product, 0, len(cart.Items))
	subtotal := 0.0

	for _, ci := range cart.Items {
		product, err := s.products.GetProduct(ctx, ci.ProductID)
		if errors.Is(err, store.ErrNotFound) {
			return nil, &ProductUnavailableError{ProductID: ci.ProductID}
		}
		if err != nil {
			return nil, storageError("lecture produit", err)
		}
		if !product.IsActive {
			return nil, &ProductUnavailableError{ProductID: product.ID, Name: product.Name}
		}
		if product.Stock < ci.Quantity {
			return nil, &InsufficientStockError{
				ProductID: product.ID,
				Name:      product.Name,
				Available: product.Stock,
				Requested: ci.Quantity,
			}
		}

		lineSubtotal := Round2(product.Price * float64(ci.Quantity))
		items = append(items, models.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			UnitPrice:   product.Price,
			Quantity:    ci.Quantity,
			Subtotal:    lineSubtotal,
		})
		subtotal += lineSubtotal
		products = append(products, product)
	}
	subtotal = Round2(subtotal)

	// 3. Décider la remise. La fidélité prime : dans ce cas le code
	// manuel n'est même pas consulté.
	priorCount, err := s.orders.CountNonCancelledOrders(ctx, userID)
	if err != nil {
		return nil, storageError("comptage commandes", err)
	}
	orderNumber := priorCount + 1

	var manualCoupon *models.Coupon
	if !s.loyalty.Applies(orderNumber) && couponCode != "" {
		manualCoupon, err = s.coupons.GetCouponByCode(ctx, couponCode)
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrCouponNotFound
		}
		if err != nil {
			return nil, storageError("lecture coupon", err)
		}
	}

	decision, err := DecideDiscount(s.loyalty, userID, orderNumber, manualCoupon, subtotal, now)
	if err != nil {
		return nil, err
	}

	// 3 bis. Frappe/consommation du coupon — l'étape d'écriture est
	// séparée de la décision, qui reste pure
	if decision.LoyaltyApplied {
		minted := &models.Coupon{
			ID:        uuid.NewString(),
			Code:      decision.Code,
			Type:      models.CouponTypePercentage,
			Value:     s.loyalty.Percent,
			IsUsed:    true,
			UsedBy:    &userID,
			UsedAt:    &now,
			CreatedAt: now,
		}
		if err := s.coupons.SaveCoupon(ctx, minted); err != nil {
			return nil, storageError("frappe coupon fidélité", err)
		}
		log.Printf("🎟️ Coupon fidélité %s frappé pour %s (commande n°%d)", minted.Code, userID, orderNumber)
	} else if manualCoupon != nil {
		manualCoupon.IsUsed = true
		manualCoupon.UsedBy = &userID
		manualCoupon.UsedAt = &now
		if err := s.coupons.SaveCoupon(ctx, manualCoupon); err != nil {
			return nil, storageError("consommation coupon", err)
		}
		log.Printf("✅ Coupon %s consommé par %s (-%.2f€)", manualCoupon.Code, userID, decision.Amount)
	}

	// 4-5. Construire et persister la commande
	order := &models.Order{
		ID:             uuid.NewString(),
		UserID:         userID,
		Items:          items,
		Subtotal:       subtotal,
		DiscountAmount: decision.Amount,
		DiscountCode:   decision.Code,
		TotalPrice:     FinalTotal(subtotal, decision.Amount),
		Status:         models.OrderStatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.orders.SaveOrder(ctx, order); err != nil {
		return nil, storageError("sauvegarde commande", err)
	}

	// 6. Débiter le stock (plancher à 0 — l'étape 2 garantit normalement
	// l'absence de découvert)
	for i, product := range products {
		newStock := product.Stock - items[i].Quantity
		if newStock < 0 {
			newStock = 0
		}
		product.Stock = newStock
		product.UpdatedAt = now
		if err := s.products.SaveProduct(ctx, product); err != nil {
			return nil, storageError("débit stock", err)
		}
	}

	// 7. Vider le panier
	if err := s.carts.ClearCart(ctx, userID); err != nil {
		return nil, storageError("vidage panier", err)
	}

	log.Printf("🛒 Commande %s créée pour %s: %.2f€ - %.2f€ = %.2f€ (n°%d)",
		order.ID, userID, order.Subtotal, order.DiscountAmount, order.TotalPrice, orderNumber)

	return &CheckoutResult{
		Order:          order,
		LoyaltyApplied: decision.LoyaltyApplied,
		OrderNumber:    orderNumber,
		LoyaltyPercent: decision.Percent,
	}, nil
}
