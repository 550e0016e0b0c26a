package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"velora_back_end/internal/store"
)

func newTestReader(t *testing.T) (*CartReader, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	return NewCartReader(mem, mem), mem
}

func TestReadCartEmptyForUnknownUser(t *testing.T) {
	reader, _ := newTestReader(t)

	snapshot, err := reader.ReadCart(context.Background(), "inconnu")
	require.NoError(t, err)
	require.Empty(t, snapshot.Items)
	require.Equal(t, 0, snapshot.TotalItems)
	require.Equal(t, 0.0, snapshot.TotalAmount)
}

func TestReadCartPricesAtCurrentCatalog(t *testing.T) {
	reader, mem := newTestReader(t)
	ctx := context.Background()

	seedProduct(t, mem, "p-a", "Produit A", 19.99, 10, true)
	seedProduct(t, mem, "p-b", "Produit B", 5.50, 10, true)
	seedCart(t, mem, "user-1", map[string]int{"p-a": 3, "p-b": 2})

	snapshot, err := reader.ReadCart(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, snapshot.Items, 2)
	require.Equal(t, 5, snapshot.TotalItems)
	require.Equal(t, 70.97, snapshot.TotalAmount)
}

func TestReadCartSilentlyDropsMissingAndInactive(t *testing.T) {
	reader, mem := newTestReader(t)
	ctx := context.Background()

	seedProduct(t, mem, "p-ok", "Produit OK", 10.00, 10, true)
	seedProduct(t, mem, "p-off", "Produit désactivé", 10.00, 10, false)
	seedCart(t, mem, "user-1", map[string]int{"p-ok": 1, "p-off": 1, "p-fantome": 1})

	snapshot, err := reader.ReadCart(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, snapshot.Items, 1)
	require.Equal(t, "p-ok", snapshot.Items[0].Product.ID)
	require.Equal(t, 10.0, snapshot.TotalAmount)
}

func TestValidateCartReportsEveryIssue(t *testing.T) {
	reader, mem := newTestReader(t)
	ctx := context.Background()

	seedProduct(t, mem, "p-ok", "Produit OK", 10.00, 10, true)
	seedProduct(t, mem, "p-off", "Produit désactivé", 10.00, 10, false)
	seedProduct(t, mem, "p-low", "Produit rare", 10.00, 1, true)
	seedCart(t, mem, "user-1", map[string]int{
		"p-ok":      2,
		"p-off":     1,
		"p-low":     3,
		"p-fantome": 1,
	})

	validation, err := reader.ValidateCart(ctx, "user-1")
	require.NoError(t, err)
	require.False(t, validation.IsValid)
	require.Len(t, validation.Issues, 3)
	require.Len(t, validation.ValidItems, 1)
	require.Equal(t, "p-ok", validation.ValidItems[0].ProductID)

	byProduct := map[string]string{}
	for _, issue := range validation.Issues {
		byProduct[issue.ProductID] = issue.Reason
	}
	require.Equal(t, "ce produit n'existe plus", byProduct["p-fantome"])
	require.Equal(t, "ce produit n'est plus disponible", byProduct["p-off"])
	require.Equal(t, "stock insuffisant: 1 disponible(s), 3 demandé(s)", byProduct["p-low"])
}

func TestValidateCartAllGood(t *testing.T) {
	reader, mem := newTestReader(t)
	ctx := context.Background()

	seedProduct(t, mem, "p-a", "Produit A", 10.00, 10, true)
	seedCart(t, mem, "user-1", map[string]int{"p-a": 2})

	validation, err := reader.ValidateCart(ctx, "user-1")
	require.NoError(t, err)
	require.True(t, validation.IsValid)
	require.Empty(t, validation.Issues)
}
