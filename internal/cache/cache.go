package cache

import (
	"context"
	"encoding/json"
	"time"

	"livra_back_end/internal/database"
	"livra_back_end/internal/models"
)

const (
	StoreCacheTTL  = 10 * time.Minute
	DriverCacheTTL = 1 * time.Minute // la position bouge, TTL court
)

// GetStoreFromCache récupère une fiche magasin depuis Redis ou ScyllaDB.
func GetStoreFromCache(storeID string) (*models.StoreProfile, error) {
	ctx := context.Background()
	key := "store:" + storeID

	// 1. Essayer le cache Redis
	data, err := database.Redis.Get(ctx, key).Result()
	if err == nil {
		var store models.StoreProfile
		if json.Unmarshal([]byte(data), &store) == nil {
			return &store, nil
		}
	}

	// 2. Récupérer de ScyllaDB
	session, err := database.GetUsersSession()
	if err != nil {
		return nil, err
	}

	store := models.StoreProfile{UserID: storeID}
	err = session.Query(`SELECT name, address, phone, image_url, lat, lng, rating_avg, rating_count
		FROM store_profiles WHERE user_id = ?`, storeID).Scan(
		&store.Name, &store.Address, &store.Phone, &store.ImageURL,
		&store.Location.Lat, &store.Location.Lng, &store.Rating.Average, &store.Rating.Count)
	if err != nil {
		return nil, err
	}

	// 3. Mettre en cache
	jsonData, _ := json.Marshal(store)
	database.Redis.Set(ctx, key, jsonData, StoreCacheTTL)

	return &store, nil
}

// InvalidateStore purge la fiche magasin du cache (après mise à jour profil ou note).
func InvalidateStore(storeID string) {
	database.Redis.Del(context.Background(), "store:"+storeID)
}
