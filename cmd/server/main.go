package main

import (
	"log"
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"velora_back_end/internal/config"
	"velora_back_end/internal/database"
	"velora_back_end/internal/handlers/order"
	"velora_back_end/internal/handlers/product"
	"velora_back_end/internal/handlers/user"
	"velora_back_end/internal/routes"
	"velora_back_end/internal/services"
	"velora_back_end/internal/store"
)

func main() {
	config.Load()

	database.ConnectDatabases()
	defer database.CloseScylla()

	// Stores : ScyllaDB pour le catalogue, les coupons et les commandes,
	// Redis pour les paniers
	scylla := store.NewScylla(database.Session)
	redisCart := store.NewRedisCart(database.Redis)

	loyalty := config.Loyalty()
	log.Printf("🎟️ Remise fidélité: -%.0f%% toutes les %d commandes", loyalty.Percent, loyalty.Interval)

	orderService := services.NewOrderService(scylla, redisCart, scylla, scylla, loyalty)
	cartReader := services.NewCartReader(redisCart, scylla)

	user.Init(redisCart, scylla, scylla, cartReader, orderService)
	order.Init(orderService, scylla, scylla)
	product.Init(scylla)

	r := gin.Default()
	r.Use(corsMiddleware())
	routes.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("🚀 Serveur Velora lancé sur le port", port)
	r.Run(":" + port)
}

func corsMiddleware() gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		cfg.AllowOrigins = strings.Split(origins, ",")
	} else {
		cfg.AllowAllOrigins = true
	}
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization")
	return cors.New(cfg)
}
