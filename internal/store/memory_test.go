package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"velora_back_end/internal/models"
)

func TestMemoryProductRoundtrip(t *testing.T) {
	mem := NewMemory()
	ctx := context.Background()

	_, err := mem.GetProduct(ctx, "p-1")
	require.ErrorIs(t, err, ErrNotFound)

	now := time.Now()
	require.NoError(t, mem.SaveProduct(ctx, &models.Product{
		ID: "p-1", Name: "Clavier", Price: 49.90, Stock: 12, IsActive: true,
		CreatedAt: now, UpdatedAt: now,
	}))

	p, err := mem.GetProduct(ctx, "p-1")
	require.NoError(t, err)
	require.Equal(t, "Clavier", p.Name)
	require.Equal(t, 12, p.Stock)

	// La valeur rendue est une copie : la modifier ne touche pas le store
	p.Stock = 0
	again, err := mem.GetProduct(ctx, "p-1")
	require.NoError(t, err)
	require.Equal(t, 12, again.Stock)
}

func TestMemoryCouponLookupIsCaseInsensitive(t *testing.T) {
	mem := NewMemory()
	ctx := context.Background()

	require.NoError(t, mem.SaveCoupon(ctx, &models.Coupon{
		ID: "c-1", Code: "Save5", Type: models.CouponTypeFixed, Value: 5,
		CreatedAt: time.Now(),
	}))

	for _, code := range []string{"save5", "SAVE5", "Save5"} {
		c, err := mem.GetCouponByCode(ctx, code)
		require.NoError(t, err, code)
		require.Equal(t, "c-1", c.ID)
	}

	_, err := mem.GetCouponByCode(ctx, "SAVE50")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryCartDefensiveCopies(t *testing.T) {
	mem := NewMemory()
	ctx := context.Background()

	cart := &models.Cart{UserID: "user-1", Items: []models.CartItem{
		{ProductID: "p-1", Quantity: 2, AddedAt: time.Now()},
	}}
	require.NoError(t, mem.SaveCart(ctx, cart))

	// Mutation côté appelant après sauvegarde
	cart.Items[0].Quantity = 99

	stored, err := mem.GetCart(ctx, "user-1")
	require.NoError(t, err)
	require.Equal(t, 2, stored.Items[0].Quantity)

	require.NoError(t, mem.ClearCart(ctx, "user-1"))
	_, err = mem.GetCart(ctx, "user-1")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryCountNonCancelledOrders(t *testing.T) {
	mem := NewMemory()
	ctx := context.Background()
	now := time.Now()

	save := func(id, userID, status string) {
		require.NoError(t, mem.SaveOrder(ctx, &models.Order{
			ID: id, UserID: userID, Status: status,
			CreatedAt: now, UpdatedAt: now,
		}))
	}
	save("o-1", "user-1", models.OrderStatusConfirmed)
	save("o-2", "user-1", models.OrderStatusCancelled)
	save("o-3", "user-1", models.OrderStatusDelivered)
	save("o-4", "user-2", models.OrderStatusPending)

	count, err := mem.CountNonCancelledOrders(ctx, "user-1")
	require.NoError(t, err)
	require.Equal(t, 2, count)

	count, err = mem.CountNonCancelledOrders(ctx, "user-2")
	require.NoError(t, err)
	require.Equal(t, 1, count)

	count, err = mem.CountNonCancelledOrders(ctx, "user-3")
	require.NoError(t, err)
	require.Equal(t, 0, count)
}

func TestMemoryListOrdersByUser(t *testing.T) {
	mem := NewMemory()
	ctx := context.Background()

	base := time.Now()
	for i, id := range []string{"o-1", "o-2", "o-3"} {
		require.NoError(t, mem.SaveOrder(ctx, &models.Order{
			ID: id, UserID: "user-1", Status: models.OrderStatusPending,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
			UpdatedAt: base,
		}))
	}
	require.NoError(t, mem.SaveOrder(ctx, &models.Order{
		ID: "o-autre", UserID: "user-2", Status: models.OrderStatusPending,
		CreatedAt: base, UpdatedAt: base,
	}))

	orders, err := mem.ListOrdersByUser(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, orders, 3)
	// Tri du plus récent au plus ancien
	require.Equal(t, "o-3", orders[0].ID)
	require.Equal(t, "o-1", orders[2].ID)
}
