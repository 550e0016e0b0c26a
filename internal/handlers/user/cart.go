package user

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"velora_back_end/internal/handlers"
	"velora_back_end/internal/models"
	"velora_back_end/internal/services"
	"velora_back_end/internal/store"
)

var (
	carts      store.CartStore
	products   store.ProductStore
	orderStore store.OrderStore
	reader     *services.CartReader
	orders     *services.OrderService
)

// Init câble les dépendances du package — appelé une fois au démarrage
func Init(cartStore store.CartStore, productStore store.ProductStore, orderSt store.OrderStore, cartReader *services.CartReader, orderService *services.OrderService) {
	carts = cartStore
	products = productStore
	orderStore = orderSt
	reader = cartReader
	orders = orderService
}

//
// 🟢 GET /api/cart — panier valorisé au prix catalogue actuel
//
func GetCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	snapshot, err := reader.ReadCart(c.Request.Context(), userID)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Panier récupéré",
		"data":    snapshot,
	})
}

//
// 🟢 POST /api/cart/add
//
func AddToCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	var input struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}
	if input.Quantity <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantité invalide"})
		return
	}

	// 🧩 Vérifier que le produit existe et est actif
	ctx := c.Request.Context()
	product, err := products.GetProduct(ctx, input.ProductID)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	if !product.IsActive {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Ce produit n'est plus disponible"})
		return
	}

	// 🧠 Récupère le panier actuel (créé au premier ajout)
	cart, err := carts.GetCart(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		cart = &models.Cart{UserID: userID}
	} else if err != nil {
		handlers.RespondError(c, err)
		return
	}

	// 🔁 Met à jour ou ajoute l'item — l'ordre d'insertion est conservé
	found := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == input.ProductID {
			cart.Items[i].Quantity += input.Quantity
			found = true
			break
		}
	}
	if !found {
		cart.Items = append(cart.Items, models.CartItem{
			ProductID: input.ProductID,
			Quantity:  input.Quantity,
			AddedAt:   time.Now(),
		})
	}

	if err := carts.SaveCart(ctx, cart); err != nil {
		handlers.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Produit ajouté au panier",
		"data":    cart,
	})
}

//
// 🔁 PUT /api/cart/:productId — fixe la quantité d'une ligne
//
func UpdateCartItem(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	var input struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Quantity <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantité invalide"})
		return
	}

	ctx := c.Request.Context()
	productID := c.Param("productId")

	cart, err := carts.GetCart(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Panier vide"})
		return
	}
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	found := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity = input.Quantity
			found = true
			break
		}
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit absent du panier"})
		return
	}

	if err := carts.SaveCart(ctx, cart); err != nil {
		handlers.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Quantité mise à jour",
		"data":    cart,
	})
}

//
// ❌ DELETE /api/cart/:productId
//
func RemoveFromCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	ctx := c.Request.Context()
	productID := c.Param("productId")

	cart, err := carts.GetCart(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusOK, gin.H{"message": "Panier vide"})
		return
	}
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	newItems := cart.Items[:0]
	for _, item := range cart.Items {
		if item.ProductID != productID {
			newItems = append(newItems, item)
		}
	}
	cart.Items = newItems

	if len(cart.Items) == 0 {
		err = carts.ClearCart(ctx, userID)
	} else {
		err = carts.SaveCart(ctx, cart)
	}
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Produit supprimé du panier",
		"data":    cart,
	})
}

//
// 🧹 DELETE /api/cart/clear
//
func ClearCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	if err := carts.ClearCart(c.Request.Context(), userID); err != nil {
		handlers.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Panier vidé avec succès",
	})
}

//
// 🔎 POST /api/cart/validate — validation stricte, purement consultative
//
func ValidateCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	validation, err := reader.ValidateCart(c.Request.Context(), userID)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Panier validé",
		"data":    validation,
	})
}
