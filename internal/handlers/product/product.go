package product

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"velora_back_end/internal/handlers"
	"velora_back_end/internal/middleware"
	"velora_back_end/internal/models"
	"velora_back_end/internal/services"
	"velora_back_end/internal/store"
)

var products store.ProductStore

// Init câble les dépendances du package — appelé une fois au démarrage
func Init(productStore store.ProductStore) {
	products = productStore
}

// GetProducts - Liste du catalogue. Les produits désactivés ne sont
// visibles que des admins.
//
// 🟢 GET /api/products
func GetProducts(c *gin.Context) {
	list, err := products.ListProducts(c.Request.Context())
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	if !middleware.IsAdmin(c) {
		visible := list[:0]
		for _, p := range list {
			if p.IsActive {
				visible = append(visible, p)
			}
		}
		list = visible
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Produits récupérés",
		"data":    gin.H{"products": list, "count": len(list)},
	})
}

// GetProductByID - Détail d'un produit
//
// 🟢 GET /api/products/:id
func GetProductByID(c *gin.Context) {
	p, err := products.GetProduct(c.Request.Context(), c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	if !p.IsActive && !middleware.IsAdmin(c) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Produit récupéré",
		"data":    gin.H{"product": p},
	})
}

// CreateProduct - Ajouter un produit au catalogue (Admin)
//
// 🛡️ POST /api/products
func CreateProduct(c *gin.Context) {
	var req struct {
		Name        string  `json:"name" binding:"required"`
		Description string  `json:"description"`
		Price       float64 `json:"price" binding:"required"`
		Stock       int     `json:"stock"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides: " + err.Error()})
		return
	}
	if req.Price <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le prix doit être positif"})
		return
	}
	if req.Stock < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le stock ne peut pas être négatif"})
		return
	}

	now := time.Now()
	p := models.Product{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		Price:       services.Round2(req.Price),
		Stock:       req.Stock,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := products.SaveProduct(c.Request.Context(), &p); err != nil {
		handlers.RespondError(c, err)
		return
	}

	log.Printf("✅ Produit créé: %s (%s)", p.Name, p.ID)
	c.JSON(http.StatusCreated, gin.H{
		"message": "Produit créé avec succès",
		"data":    gin.H{"product": p},
	})
}

// UpdateProduct - Modifier un produit (Admin). Le stock passe par
// l'endpoint inventaire, pas par ici.
//
// 🛡️ PUT /api/products/:id
func UpdateProduct(c *gin.Context) {
	var req struct {
		Name        *string  `json:"name"`
		Description *string  `json:"description"`
		Price       *float64 `json:"price"`
		IsActive    *bool    `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	ctx := c.Request.Context()
	p, err := products.GetProduct(ctx, c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Le prix doit être positif"})
			return
		}
		p.Price = services.Round2(*req.Price)
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
	p.UpdatedAt = time.Now()

	if err := products.SaveProduct(ctx, p); err != nil {
		handlers.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Produit mis à jour avec succès",
		"data":    gin.H{"product": p},
	})
}

// DeactivateProduct - Retirer un produit de la vente (Admin). Jamais de
// suppression : les commandes passées y font toujours référence.
//
// 🛡️ DELETE /api/products/:id
func DeactivateProduct(c *gin.Context) {
	ctx := c.Request.Context()
	p, err := products.GetProduct(ctx, c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	p.IsActive = false
	p.UpdatedAt = time.Now()
	if err := products.SaveProduct(ctx, p); err != nil {
		handlers.RespondError(c, err)
		return
	}

	log.Printf("🚫 Produit désactivé: %s", p.ID)
	c.JSON(http.StatusOK, gin.H{
		"message": "Produit désactivé avec succès",
	})
}
