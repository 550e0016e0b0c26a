package user

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"velora_back_end/internal/handlers"
	"velora_back_end/internal/middleware"
	"velora_back_end/internal/utils"
)

// ✅ GET /api/orders — toutes les commandes de l'utilisateur connecté
func GetMyOrders(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	list, err := orderStore.ListOrdersByUser(c.Request.Context(), userID)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	log.Printf("✅ %d commandes trouvées pour user %s", len(list), userID)
	c.JSON(http.StatusOK, gin.H{
		"message": "Commandes récupérées",
		"data":    gin.H{"orders": list, "count": len(list)},
	})
}

// ✅ GET /api/orders/:id — une commande (propriétaire ou admin uniquement)
func GetOrderByID(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	order, err := orders.GetOrderForUser(c.Request.Context(), c.Param("id"), userID, middleware.IsAdmin(c))
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Commande récupérée",
		"data":    gin.H{"order": order},
	})
}

// ↩️ PUT /api/orders/:id/cancel — annulation d'une commande PENDING
func CancelOrder(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	order, err := orders.Cancel(c.Request.Context(), c.Param("id"), userID, middleware.IsAdmin(c))
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	// E-mail d'annulation en arrière-plan — best effort
	if email := c.GetString("email"); email != "" {
		o := order
		go func() {
			html := utils.GenerateOrderCancellationHTML(o)
			if err := utils.SendEmail(email, "Votre commande a été annulée", html); err != nil {
				log.Printf("⚠️ Échec envoi e-mail d'annulation pour %s: %v", o.ID, err)
			}
		}()
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Commande annulée, stock restitué",
		"data":    gin.H{"order": order},
	})
}
