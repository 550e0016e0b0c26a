package order

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"velora_back_end/internal/handlers"
	"velora_back_end/internal/models"
	"velora_back_end/internal/services"
	"velora_back_end/internal/store"
	"velora_back_end/internal/utils"
)

var (
	svc        *services.OrderService
	coupons    store.CouponStore
	orderStore store.OrderStore
)

// Init câble les dépendances du package — appelé une fois au démarrage
func Init(orderService *services.OrderService, couponStore store.CouponStore, orderSt store.OrderStore) {
	svc = orderService
	coupons = couponStore
	orderStore = orderSt
}

// Checkout convertit le panier en commande : validation du stock, remise
// fidélité ou coupon, débit du stock et vidage du panier — tout ou rien
//
// 🟢 POST /api/checkout
func Checkout(c *gin.Context) {
	var req struct {
		CouponCode string `json:"couponCode"` // Optionnel
	}
	// Corps entièrement optionnel
	_ = c.ShouldBindJSON(&req)

	userID := c.GetString("user_id")
	email := c.GetString("email")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	result, err := svc.Checkout(c.Request.Context(), userID, req.CouponCode)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	data := gin.H{"order": result.Order}
	if result.Order.DiscountAmount > 0 {
		data["applied_discount"] = gin.H{
			"code":   result.Order.DiscountCode,
			"amount": result.Order.DiscountAmount,
		}
	}
	if result.LoyaltyApplied {
		// Enveloppe de présentation : la remise fidélité a joué
		data["special_discount"] = gin.H{
			"order_number": result.OrderNumber,
			"percent":      result.LoyaltyPercent,
			"message": fmt.Sprintf("🎉 Félicitations ! -%.0f%% sur votre %de commande",
				result.LoyaltyPercent, result.OrderNumber),
		}
	}

	// E-mail de confirmation en arrière-plan — best effort
	if email != "" {
		go sendConfirmationEmail(email, result.Order)
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Commande créée avec succès",
		"data":    data,
	})
}

func sendConfirmationEmail(email string, o *models.Order) {
	qrBase64, err := utils.GenerateOrderQR(o.ID)
	if err != nil {
		log.Printf("⚠️ QR non généré pour %s: %v", o.ID, err)
	}
	html := utils.GenerateOrderConfirmationHTML(o, qrBase64)
	if err := utils.SendEmail(email, "Confirmation de votre commande Velora", html); err != nil {
		log.Printf("⚠️ Échec envoi e-mail de confirmation pour %s: %v", o.ID, err)
	}
}
