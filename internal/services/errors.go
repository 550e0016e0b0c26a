package services

import (
	"errors"
	"fmt"
)

// Erreurs métier — toutes corrigeables côté client (4xx), sauf ErrStorage
// qui signale un défaut de la couche de persistance
var (
	ErrEmptyCart         = errors.New("le panier est vide")
	ErrCouponNotFound    = errors.New("code coupon invalide")
	ErrCouponAlreadyUsed = errors.New("ce coupon a déjà été utilisé")
	ErrCouponExpired     = errors.New("ce coupon a expiré")
	ErrInvalidTransition = errors.New("transition de statut invalide")
	ErrOrderNotFound     = errors.New("commande introuvable")
	ErrStorage           = errors.New("erreur de stockage")
)

// ProductUnavailableError — produit du panier supprimé ou désactivé
type ProductUnavailableError struct {
	ProductID string
	Name      string
}

func (e *ProductUnavailableError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("le produit %q n'est plus disponible", e.Name)
	}
	return fmt.Sprintf("le produit %s n'existe plus", e.ProductID)
}

// InsufficientStockError porte les quantités disponible/demandée pour que
// le client puisse ajuster son panier
type InsufficientStockError struct {
	ProductID string
	Name      string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuffisant pour %q: %d disponible(s), %d demandé(s)",
		e.Name, e.Available, e.Requested)
}

func storageError(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrStorage, op, err)
}
