package order

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"velora_back_end/internal/handlers"
)

// GetAllOrders - Toutes les commandes (Admin)
//
// 🛡️ GET /api/orders/admin
func GetAllOrders(c *gin.Context) {
	list, err := orderStore.ListOrders(c.Request.Context())
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Commandes récupérées",
		"data":    gin.H{"orders": list, "count": len(list)},
	})
}

// UpdateOrderStatus - Faire avancer le statut d'une commande (Admin).
// Aucune compensation : seule l'annulation restitue stock et coupon.
//
// 🛡️ PUT /api/orders/admin/:id/status
func UpdateOrderStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	order, err := svc.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Statut mis à jour",
		"data":    gin.H{"order": order},
	})
}
