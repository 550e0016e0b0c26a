package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"velora_back_end/internal/services"
)

func Load() {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println("⚠️  Aucun fichier .env trouvé — on continue avec les variables d'environnement du système")
	} else {
		log.Println("✅ Fichier .env chargé avec succès")
	}
}

// Loyalty lit la configuration de la remise fidélité depuis l'environnement
// (LOYALTY_INTERVAL, LOYALTY_PERCENT), avec les valeurs par défaut du métier
func Loyalty() services.LoyaltyConfig {
	cfg := services.LoyaltyConfig{
		Interval: services.DefaultLoyaltyInterval,
		Percent:  services.DefaultLoyaltyPercent,
	}

	if v, err := strconv.Atoi(os.Getenv("LOYALTY_INTERVAL")); err == nil && v > 0 {
		cfg.Interval = v
	}
	if v, err := strconv.ParseFloat(os.Getenv("LOYALTY_PERCENT"), 64); err == nil && v > 0 {
		cfg.Percent = v
	}
	return cfg
}
