package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"velora_back_end/internal/models"
)

// CartTTL — un panier abandonné expire au bout de 30 jours
const CartTTL = 30 * 24 * time.Hour

// RedisCart stocke le panier de chaque utilisateur sous la clé
// "cart:<userID>" (JSON) et publie sur le même canal pour la synchro
// temps réel (websocket)
type RedisCart struct {
	client *redis.Client
}

func NewRedisCart(client *redis.Client) *RedisCart {
	return &RedisCart{client: client}
}

func cartKey(userID string) string {
	return "cart:" + userID
}

func (r *RedisCart) GetCart(ctx context.Context, userID string) (*models.Cart, error) {
	data, err := r.client.Get(ctx, cartKey(userID)).Result()
	if err == redis.Nil || data == "" {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lecture panier de %s: %w", userID, err)
	}

	var items []models.CartItem
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		return nil, fmt.Errorf("décodage panier de %s: %w", userID, err)
	}
	if len(items) == 0 {
		return nil, ErrNotFound
	}
	return &models.Cart{UserID: userID, Items: items}, nil
}

func (r *RedisCart) SaveCart(ctx context.Context, cart *models.Cart) error {
	data, err := json.Marshal(cart.Items)
	if err != nil {
		return fmt.Errorf("encodage panier de %s: %w", cart.UserID, err)
	}
	if err := r.client.Set(ctx, cartKey(cart.UserID), data, CartTTL).Err(); err != nil {
		return fmt.Errorf("sauvegarde panier de %s: %w", cart.UserID, err)
	}

	// Notifie les websockets ouvertes — best effort
	r.client.Publish(ctx, cartKey(cart.UserID), "updated")
	return nil
}

func (r *RedisCart) ClearCart(ctx context.Context, userID string) error {
	if err := r.client.Del(ctx, cartKey(userID)).Err(); err != nil {
		return fmt.Errorf("vidage panier de %s: %w", userID, err)
	}
	r.client.Publish(ctx, cartKey(userID), "cleared")
	return nil
}
