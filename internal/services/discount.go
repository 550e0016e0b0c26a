package services

import (
	"fmt"
	"math"
	"strings"
	"time"

	"velora_back_end/internal/models"
)

// Remise fidélité par défaut : 10% toutes les 3 commandes
const (
	DefaultLoyaltyInterval = 3
	DefaultLoyaltyPercent  = 10.0
)

type LoyaltyConfig struct {
	Interval int     // toutes les N commandes
	Percent  float64 // pourcentage de remise
}

// Applies indique si la remise fidélité se déclenche pour la n-ième
// commande non annulée de l'utilisateur
func (cfg LoyaltyConfig) Applies(orderNumber int) bool {
	return cfg.Interval > 0 && orderNumber%cfg.Interval == 0
}

// DiscountDecision est une valeur pure : aucune écriture n'a eu lieu.
// La frappe/consommation effective du coupon est une étape distincte de
// l'orchestrateur de checkout.
type DiscountDecision struct {
	Amount         float64 // montant de la remise, arrondi à 2 décimales
	Code           string  // code du coupon appliqué ("" si aucune remise)
	LoyaltyApplied bool
	OrderNumber    int
	Percent        float64 // renseigné uniquement pour la fidélité
}

// Round2 arrondit un montant à 2 décimales
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// FinalTotal calcule le total à payer : jamais négatif, même si un coupon
// à montant fixe dépasse le sous-total
func FinalTotal(subtotal, discount float64) float64 {
	total := subtotal - discount
	if total < 0 {
		total = 0
	}
	return Round2(total)
}

// LoyaltyCouponCode fabrique le code du coupon fidélité : le préfixe sert
// d'espace de noms pour éviter toute collision avec un code émis à la main,
// le numéro de commande et le fragment d'identifiant servent à la traçabilité
// (ce n'est pas un secret)
func LoyaltyCouponCode(orderNumber int, userID string) string {
	frag := strings.ToUpper(strings.ReplaceAll(userID, "-", ""))
	if len(frag) > 8 {
		frag = frag[:8]
	}
	return fmt.Sprintf("LOYALTY-%d-%s", orderNumber, frag)
}

// DecideDiscount applique la règle de précédence, dans l'ordre strict :
//  1. remise fidélité automatique (ignore tout code manuel)
//  2. coupon manuel, si un coupon a été chargé
//  3. aucune remise
//
// Fonction pure : le coupon manuel éventuel doit déjà avoir été chargé par
// l'appelant (manualCoupon == nil ⇒ pas de code fourni).
func DecideDiscount(cfg LoyaltyConfig, userID string, orderNumber int, manualCoupon *models.Coupon, subtotal float64, now time.Time) (DiscountDecision, error) {
	decision := DiscountDecision{OrderNumber: orderNumber}

	// 1. Fidélité — prioritaire sur tout code manuel
	if cfg.Applies(orderNumber) {
		decision.LoyaltyApplied = true
		decision.Percent = cfg.Percent
		decision.Amount = Round2(subtotal * cfg.Percent / 100)
		decision.Code = LoyaltyCouponCode(orderNumber, userID)
		return decision, nil
	}

	// 2. Coupon manuel
	if manualCoupon != nil {
		if manualCoupon.IsUsed {
			return decision, ErrCouponAlreadyUsed
		}
		if manualCoupon.IsExpired(now) {
			return decision, ErrCouponExpired
		}

		switch manualCoupon.Type {
		case models.CouponTypePercentage:
			decision.Amount = Round2(subtotal * manualCoupon.Value / 100)
		case models.CouponTypeFixed:
			amount := manualCoupon.Value
			if amount > subtotal {
				amount = subtotal
			}
			decision.Amount = Round2(amount)
		}
		decision.Code = manualCoupon.Code
		return decision, nil
	}

	// 3. Aucune remise
	return decision, nil
}
