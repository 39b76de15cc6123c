package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"livra_back_end/internal/cache"
	"livra_back_end/internal/database"
	"livra_back_end/internal/models"
	"livra_back_end/internal/services"
)

//
// =========================
// 🟢 CATALOGUE PUBLIC
// =========================
//

// SearchProducts interroge Elasticsearch (nom, description, catégorie).
func SearchProducts(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Paramètre 'q' manquant"})
		return
	}

	results, err := services.SearchProducts(query)
	if err != nil {
		log.Printf("❌ Erreur recherche Elasticsearch: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Recherche indisponible"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"query":   query,
		"count":   len(results),
		"results": results,
	})
}

// ListStores retourne les fiches publiques de tous les magasins.
func ListStores(c *gin.Context) {
	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`SELECT user_id, name, address, phone, image_url, lat, lng, rating_avg, rating_count
		FROM store_profiles`).Iter()

	stores := []models.StoreProfile{}
	var s models.StoreProfile
	for iter.Scan(&s.UserID, &s.Name, &s.Address, &s.Phone, &s.ImageURL,
		&s.Location.Lat, &s.Location.Lng, &s.Rating.Average, &s.Rating.Count) {
		stores = append(stores, s)
	}
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture magasins"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"stores": stores, "count": len(stores)})
}

// GetStore retourne la fiche d'un magasin (cache Redis en première ligne).
func GetStore(c *gin.Context) {
	store, err := cache.GetStoreFromCache(c.Param("storeId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Magasin introuvable"})
		return
	}
	c.JSON(http.StatusOK, store)
}

// GetStoreProducts liste les produits actifs d'un magasin.
func GetStoreProducts(c *gin.Context) {
	storeID := c.Param("storeId")

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`SELECT product_id, store_id, name, description, category, price, stock, image_url, is_active, created_at, updated_at
		FROM products WHERE store_id = ? ALLOW FILTERING`, storeID).Iter()

	products := []models.Product{}
	var p models.Product
	for iter.Scan(&p.ID, &p.StoreID, &p.Name, &p.Description, &p.Category,
		&p.Price, &p.Stock, &p.ImageURL, &p.IsActive, &p.CreatedAt, &p.UpdatedAt) {
		if p.IsActive {
			products = append(products, p)
		}
	}
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produits"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"store_id": storeID, "products": products, "count": len(products)})
}

// GetProduct retourne un produit par son identifiant.
func GetProduct(c *gin.Context) {
	productID, err := gocql.ParseUUID(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var p models.Product
	if err := session.Query(`SELECT product_id, store_id, name, description, category, price, stock, image_url, is_active, created_at, updated_at
		FROM products WHERE product_id = ?`, productID).
		Scan(&p.ID, &p.StoreID, &p.Name, &p.Description, &p.Category,
			&p.Price, &p.Stock, &p.ImageURL, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	c.JSON(http.StatusOK, p)
}

// GetReviews liste les avis reçus par un magasin ou un livreur.
func GetReviews(c *gin.Context) {
	targetID := c.Param("targetId")

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`SELECT review_id, target_id, target_role, order_id, author_id, author_name, score, comment, created_at
		FROM reviews WHERE target_id = ?`, targetID).Iter()

	reviews := []models.Review{}
	var rv models.Review
	var role string
	for iter.Scan(&rv.ID, &rv.TargetID, &role, &rv.OrderID, &rv.AuthorID,
		&rv.AuthorName, &rv.Score, &rv.Comment, &rv.CreatedAt) {
		rv.TargetRole = models.Role(role)
		reviews = append(reviews, rv)
	}
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture avis"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"target_id": targetID, "reviews": reviews, "count": len(reviews)})
}
