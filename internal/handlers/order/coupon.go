package order

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"velora_back_end/internal/handlers"
	"velora_back_end/internal/models"
	"velora_back_end/internal/services"
	"velora_back_end/internal/store"
)

// CreateCoupon - Créer un nouveau coupon à usage unique (Admin seulement)
//
// 🛡️ POST /api/coupons
func CreateCoupon(c *gin.Context) {
	var req struct {
		Code      string     `json:"code" binding:"required"`
		Type      string     `json:"type" binding:"required"` // "percentage", "fixed"
		Value     float64    `json:"value" binding:"required"`
		ExpiresAt *time.Time `json:"expires_at"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides: " + err.Error()})
		return
	}

	// Validation du type et des valeurs
	if req.Type != models.CouponTypePercentage && req.Type != models.CouponTypeFixed {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Type de coupon invalide"})
		return
	}
	if req.Type == models.CouponTypePercentage && (req.Value <= 0 || req.Value > 100) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Pourcentage doit être entre 1 et 100"})
		return
	}
	if req.Type == models.CouponTypeFixed && req.Value <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Montant fixe doit être positif"})
		return
	}

	ctx := c.Request.Context()
	code := strings.ToUpper(req.Code)

	// Vérifier si le code existe déjà
	if _, err := coupons.GetCouponByCode(ctx, code); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Ce code coupon existe déjà"})
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		handlers.RespondError(c, err)
		return
	}

	coupon := models.Coupon{
		ID:        uuid.NewString(),
		Code:      code,
		Type:      req.Type,
		Value:     req.Value,
		ExpiresAt: req.ExpiresAt,
		CreatedAt: time.Now(),
	}
	if err := coupons.SaveCoupon(ctx, &coupon); err != nil {
		handlers.RespondError(c, err)
		return
	}

	log.Printf("✅ Coupon créé: %s", coupon.Code)
	c.JSON(http.StatusCreated, gin.H{
		"message": "Coupon créé avec succès",
		"data":    gin.H{"coupon": coupon},
	})
}

// GetAllCoupons - Récupérer tous les coupons (Admin)
//
// 🛡️ GET /api/coupons
func GetAllCoupons(c *gin.Context) {
	list, err := coupons.ListCoupons(c.Request.Context())
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Coupons récupérés",
		"data":    gin.H{"coupons": list, "count": len(list)},
	})
}

// ValidateCoupon - Vérifier un code et la remise qu'il donnerait sur un
// montant de panier. Purement consultatif : rien n'est consommé ici.
//
// 🔎 GET /api/coupons/validate?code=...&cart_total=...
func ValidateCoupon(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Code requis"})
		return
	}

	cartTotal, err := strconv.ParseFloat(c.Query("cart_total"), 64)
	if err != nil || cartTotal < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Montant du panier invalide"})
		return
	}

	coupon, err := coupons.GetCouponByCode(c.Request.Context(), code)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Coupon vérifié",
			"data":    gin.H{"valid": false, "error": services.ErrCouponNotFound.Error()},
		})
		return
	}
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	// La politique pure fait la vérification et le calcul — sans fidélité
	decision, err := services.DecideDiscount(services.LoyaltyConfig{}, "", 1, coupon, cartTotal, time.Now())
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"message": "Coupon vérifié",
			"data":    gin.H{"valid": false, "error": err.Error()},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Coupon vérifié",
		"data": gin.H{
			"valid":    true,
			"code":     coupon.Code,
			"type":     coupon.Type,
			"discount": decision.Amount,
		},
	})
}
