package product

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"velora_back_end/internal/handlers"
	"velora_back_end/internal/store"
)

// UpdateStock - Réapprovisionner ou corriger le stock d'un produit (Admin).
// Le débit à la commande et la restitution à l'annulation passent par le
// service de commande, jamais par cet endpoint.
//
// 🛡️ PUT /api/products/:id/stock
func UpdateStock(c *gin.Context) {
	var req struct {
		Quantity int    `json:"quantity" binding:"required"`
		Type     string `json:"type" binding:"required"` // "restock", "adjustment"
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides: " + err.Error()})
		return
	}

	ctx := c.Request.Context()
	p, err := products.GetProduct(ctx, c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit non trouvé"})
		return
	}
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	prevStock := p.Stock
	var newStock int
	switch req.Type {
	case "restock":
		newStock = prevStock + req.Quantity
	case "adjustment":
		newStock = req.Quantity // Quantité absolue
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Type d'opération invalide"})
		return
	}

	if newStock < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le stock ne peut pas être négatif"})
		return
	}

	p.Stock = newStock
	p.UpdatedAt = time.Now()
	if err := products.SaveProduct(ctx, p); err != nil {
		handlers.RespondError(c, err)
		return
	}

	log.Printf("✅ Stock mis à jour pour %s: %d -> %d", p.Name, prevStock, newStock)
	c.JSON(http.StatusOK, gin.H{
		"message": "Stock mis à jour avec succès",
		"data": gin.H{
			"prev_stock": prevStock,
			"new_stock":  newStock,
		},
	})
}
