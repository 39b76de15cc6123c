package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"livra_back_end/internal/database"
	"livra_back_end/internal/models"
)

// Le panier vit dans Redis entre l'ajout d'un article et le checkout.
// Il est détruit après commande réussie ou vidage explicite.
const CartTTL = 24 * time.Hour

var ErrCartEmpty = errors.New("panier vide ou introuvable")

func cartKey(customerID string) string {
	return "cart:" + customerID
}

// GetCart récupère le panier d'un client depuis Redis.
func GetCart(ctx context.Context, customerID string) (*models.Cart, error) {
	data, err := database.Redis.Get(ctx, cartKey(customerID)).Result()
	if err == redis.Nil {
		return nil, ErrCartEmpty
	}
	if err != nil {
		return nil, err
	}

	var cart models.Cart
	if err := json.Unmarshal([]byte(data), &cart); err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, ErrCartEmpty
	}
	return &cart, nil
}

// SaveCart écrit le panier et notifie les sessions websocket du client.
func SaveCart(ctx context.Context, cart *models.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	if err := database.Redis.Set(ctx, cartKey(cart.CustomerID), data, CartTTL).Err(); err != nil {
		return err
	}
	return database.Redis.Publish(ctx, cartKey(cart.CustomerID), "updated").Err()
}

// ClearCart détruit le panier (après checkout réussi ou vidage explicite).
func ClearCart(ctx context.Context, customerID string) error {
	if err := database.Redis.Del(ctx, cartKey(customerID)).Err(); err != nil {
		return err
	}
	return database.Redis.Publish(ctx, cartKey(customerID), "cleared").Err()
}
