package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"velora_back_end/internal/models"
)

func TestCancelRestoresStockExactly(t *testing.T) {
	svc, mem := newTestService(t)
	ctx := context.Background()

	seedProduct(t, mem, "p-a", "Produit A", 10.00, 5, true)
	seedProduct(t, mem, "p-b", "Produit B", 20.00, 8, true)
	seedCart(t, mem, "user-1", map[string]int{"p-a": 3, "p-b": 2})

	result, err := svc.Checkout(ctx, "user-1", "")
	require.NoError(t, err)
	require.Equal(t, 2, stockOf(t, mem, "p-a"))
	require.Equal(t, 6, stockOf(t, mem, "p-b"))

	cancelled, err := svc.Cancel(ctx, result.Order.ID, "user-1", false)
	require.NoError(t, err)
	require.Equal(t, models.OrderStatusCancelled, cancelled.Status)

	require.Equal(t, 5, stockOf(t, mem, "p-a"))
	require.Equal(t, 8, stockOf(t, mem, "p-b"))
}

func TestCancelReturnsCouponToPool(t *testing.T) {
	svc, mem := newTestService(t)
	ctx := context.Background()

	seedProduct(t, mem, "p-a", "Produit A", 100.00, 10, true)
	seedCart(t, mem, "user-1", map[string]int{"p-a": 1})
	require.NoError(t, mem.SaveCoupon(ctx, &models.Coupon{
		ID:        uuid.NewString(),
		Code:      "PROMO10",
		Type:      models.CouponTypePercentage,
		Value:     10,
		CreatedAt: time.Now(),
	}))

	result, err := svc.Checkout(ctx, "user-1", "PROMO10")
	require.NoError(t, err)

	_, err = svc.Cancel(ctx, result.Order.ID, "user-1", false)
	require.NoError(t, err)

	coupon, err := mem.GetCouponByCode(ctx, "PROMO10")
	require.NoError(t, err)
	require.False(t, coupon.IsUsed)
	require.Nil(t, coupon.UsedBy)
	require.Nil(t, coupon.UsedAt)
}

func TestCancelNonPendingOrder(t *testing.T) {
	svc, mem := newTestService(t)
	ctx := context.Background()

	seedProduct(t, mem, "p-a", "Produit A", 10.00, 5, true)
	seedCart(t, mem, "user-1", map[string]int{"p-a": 1})

	result, err := svc.Checkout(ctx, "user-1", "")
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, result.Order.ID, models.OrderStatusShipped)
	require.NoError(t, err)

	_, err = svc.Cancel(ctx, result.Order.ID, "user-1", false)
	require.ErrorIs(t, err, ErrInvalidTransition)

	// Pas de double restitution possible
	require.Equal(t, 4, stockOf(t, mem, "p-a"))
}

func TestCancelOtherUsersOrderLooksAbsent(t *testing.T) {
	svc, mem := newTestService(t)
	ctx := context.Background()

	seedProduct(t, mem, "p-a", "Produit A", 10.00, 5, true)
	seedCart(t, mem, "user-1", map[string]int{"p-a": 1})

	result, err := svc.Checkout(ctx, "user-1", "")
	require.NoError(t, err)

	// Un autre utilisateur ne doit même pas savoir que la commande existe
	_, err = svc.Cancel(ctx, result.Order.ID, "user-2", false)
	require.ErrorIs(t, err, ErrOrderNotFound)

	// L'admin, lui, peut annuler
	_, err = svc.Cancel(ctx, result.Order.ID, "user-2", true)
	require.NoError(t, err)
}

func TestCancelUnknownOrder(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Cancel(context.Background(), "inexistante", "user-1", false)
	require.ErrorIs(t, err, ErrOrderNotFound)
}

func TestUpdateStatusValidatesEnum(t *testing.T) {
	svc, mem := newTestService(t)
	ctx := context.Background()

	seedProduct(t, mem, "p-a", "Produit A", 10.00, 5, true)
	seedCart(t, mem, "user-1", map[string]int{"p-a": 1})
	result, err := svc.Checkout(ctx, "user-1", "")
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, result.Order.ID, "expédiée")
	require.ErrorIs(t, err, ErrInvalidTransition)

	order, err := svc.UpdateStatus(ctx, result.Order.ID, models.OrderStatusDelivered)
	require.NoError(t, err)
	require.Equal(t, models.OrderStatusDelivered, order.Status)
}

// Passer une commande à "cancelled" via UpdateStatus ne déclenche aucune
// compensation : seul Cancel restitue stock et coupon
func TestUpdateStatusCancelledDoesNotCompensate(t *testing.T) {
	svc, mem := newTestService(t)
	ctx := context.Background()

	seedProduct(t, mem, "p-a", "Produit A", 10.00, 5, true)
	seedCart(t, mem, "user-1", map[string]int{"p-a": 2})
	result, err := svc.Checkout(ctx, "user-1", "")
	require.NoError(t, err)
	require.Equal(t, 3, stockOf(t, mem, "p-a"))

	_, err = svc.UpdateStatus(ctx, result.Order.ID, models.OrderStatusCancelled)
	require.NoError(t, err)
	require.Equal(t, 3, stockOf(t, mem, "p-a"))
}

func TestGetOrderForUserVisibility(t *testing.T) {
	svc, mem := newTestService(t)
	ctx := context.Background()

	seedProduct(t, mem, "p-a", "Produit A", 10.00, 5, true)
	seedCart(t, mem, "user-1", map[string]int{"p-a": 1})
	result, err := svc.Checkout(ctx, "user-1", "")
	require.NoError(t, err)

	order, err := svc.GetOrderForUser(ctx, result.Order.ID, "user-1", false)
	require.NoError(t, err)
	require.Equal(t, result.Order.ID, order.ID)

	_, err = svc.GetOrderForUser(ctx, result.Order.ID, "user-2", false)
	require.ErrorIs(t, err, ErrOrderNotFound)

	_, err = svc.GetOrderForUser(ctx, result.Order.ID, "user-2", true)
	require.NoError(t, err)
}
