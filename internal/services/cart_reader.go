package services

import (
	"context"
	"errors"
	"fmt"

	"velora_back_end/internal/models"
	"velora_back_end/internal/store"
)

// CartReader matérialise le panier en lignes valorisées au prix catalogue
// actuel. Aucune écriture — le checkout refait ses propres vérifications.
type CartReader struct {
	carts    store.CartStore
	products store.ProductStore
}

func NewCartReader(carts store.CartStore, products store.ProductStore) *CartReader {
	return &CartReader{carts: carts, products: products}
}

// ReadCart construit la vue affichable du panier. Un produit supprimé ou
// désactivé est silencieusement ignoré : c'est une vue, pas une validation.
func (r *CartReader) ReadCart(ctx context.Context, userID string) (*models.CartSnapshot, error) {
	snapshot := &models.CartSnapshot{Items: []models.CartLine{}}

	cart, err := r.carts.GetCart(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return snapshot, nil // panier vide
	}
	if err != nil {
		return nil, storageError("lecture panier", err)
	}

	for _, item := range cart.Items {
		product, err := r.products.GetProduct(ctx, item.ProductID)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, storageError("lecture produit", err)
		}
		if !product.IsActive {
			continue
		}

		snapshot.Items = append(snapshot.Items, models.CartLine{
			Product:  *product,
			Quantity: item.Quantity,
			Subtotal: Round2(product.Price * float64(item.Quantity)),
		})
		snapshot.TotalItems += item.Quantity
		snapshot.TotalAmount += product.Price * float64(item.Quantity)
	}

	snapshot.TotalAmount = Round2(snapshot.TotalAmount)
	return snapshot, nil
}

// ValidateCart vérifie strictement chaque ligne du panier. Purement
// consultatif : l'état du stock peut changer entre cet appel et le
// checkout, qui revalide de toute façon.
func (r *CartReader) ValidateCart(ctx context.Context, userID string) (*models.CartValidation, error) {
	validation := &models.CartValidation{
		IsValid:    true,
		Issues:     []models.CartIssue{},
		ValidItems: []models.CartItem{},
	}

	cart, err := r.carts.GetCart(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return validation, nil
	}
	if err != nil {
		return nil, storageError("lecture panier", err)
	}

	for _, item := range cart.Items {
		product, err := r.products.GetProduct(ctx, item.ProductID)
		if errors.Is(err, store.ErrNotFound) {
			validation.Issues = append(validation.Issues, models.CartIssue{
				ProductID: item.ProductID,
				Reason:    "ce produit n'existe plus",
			})
			continue
		}
		if err != nil {
			return nil, storageError("lecture produit", err)
		}

		if !product.IsActive {
			validation.Issues = append(validation.Issues, models.CartIssue{
				ProductID: product.ID,
				Name:      product.Name,
				Reason:    "ce produit n'est plus disponible",
			})
			continue
		}

		if product.Stock < item.Quantity {
			validation.Issues = append(validation.Issues, models.CartIssue{
				ProductID: product.ID,
				Name:      product.Name,
				Reason:    fmt.Sprintf("stock insuffisant: %d disponible(s), %d demandé(s)", product.Stock, item.Quantity),
				Available: product.Stock,
				Requested: item.Quantity,
			})
			continue
		}

		validation.ValidItems = append(validation.ValidItems, item)
	}

	validation.IsValid = len(validation.Issues) == 0
	return validation, nil
}
