package store

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"livra_back_end/internal/database"
	"livra_back_end/internal/models"
	"livra_back_end/internal/services"
)

//
// =========================
// 🏪 CATALOGUE DU MAGASIN
// =========================
//

// CreateProduct ajoute un produit au catalogue puis l'indexe dans Elasticsearch.
func (h *Handler) CreateProduct(c *gin.Context) {
	var input struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
		Category    string `json:"category"`
		Price       int64  `json:"price" binding:"required,min=1"` // en centimes
		Stock       int    `json:"stock" binding:"min=0"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	now := time.Now()
	p := models.Product{
		ID:          gocql.TimeUUID(),
		StoreID:     c.GetString("user_id"),
		Name:        input.Name,
		Description: input.Description,
		Category:    input.Category,
		Price:       input.Price,
		Stock:       input.Stock,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := session.Query(`INSERT INTO products (product_id, store_id, name, description, category, price, stock, image_url, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, '', true, ?, ?)`,
		p.ID, p.StoreID, p.Name, p.Description, p.Category, p.Price, p.Stock, p.CreatedAt, p.UpdatedAt).
		Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création produit"})
		return
	}

	services.IndexProduct(p)
	log.Printf("✅ Produit créé: %s (%s)", p.Name, p.ID)
	c.JSON(http.StatusCreated, p)
}

// UpdateProduct modifie un produit du magasin. Les commandes déjà passées
// gardent leur prix figé.
func (h *Handler) UpdateProduct(c *gin.Context) {
	productID, err := gocql.ParseUUID(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	var input struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		Category    *string `json:"category"`
		Price       *int64  `json:"price"`
		Stock       *int    `json:"stock"`
		IsActive    *bool   `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	p, ok := h.ownedProduct(c, session, productID)
	if !ok {
		return
	}

	if input.Name != nil {
		p.Name = *input.Name
	}
	if input.Description != nil {
		p.Description = *input.Description
	}
	if input.Category != nil {
		p.Category = *input.Category
	}
	if input.Price != nil {
		if *input.Price <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Le prix doit être positif"})
			return
		}
		p.Price = *input.Price
	}
	if input.Stock != nil {
		p.Stock = *input.Stock
	}
	if input.IsActive != nil {
		p.IsActive = *input.IsActive
	}
	p.UpdatedAt = time.Now()

	if err := session.Query(`UPDATE products SET name = ?, description = ?, category = ?, price = ?, stock = ?, is_active = ?, updated_at = ?
		WHERE product_id = ?`,
		p.Name, p.Description, p.Category, p.Price, p.Stock, p.IsActive, p.UpdatedAt, p.ID).
		Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour produit"})
		return
	}

	if p.IsActive {
		services.IndexProduct(p)
	} else {
		services.RemoveProductFromIndex(p.ID.String())
	}

	c.JSON(http.StatusOK, p)
}

// DeleteProduct retire un produit du catalogue et de l'index de recherche.
func (h *Handler) DeleteProduct(c *gin.Context) {
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

	if _, ok := h.ownedProduct(c, session, productID); !ok {
		return
	}

	if err := session.Query("DELETE FROM products WHERE product_id = ?", productID).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression produit"})
		return
	}

	services.RemoveProductFromIndex(productID.String())
	c.JSON(http.StatusOK, gin.H{"message": "🗑️ Produit supprimé", "product_id": productID})
}

// UploadProductImage attache une image MinIO à un produit du magasin.
func (h *Handler) UploadProductImage(c *gin.Context) {
	productID, err := gocql.ParseUUID(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Champ 'file' manquant"})
		return
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	p, ok := h.ownedProduct(c, session, productID)
	if !ok {
		return
	}

	url, err := services.UploadImage(context.Background(), "products", file)
	if err != nil {
		log.Printf("❌ Erreur upload MinIO: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur upload image"})
		return
	}

	p.ImageURL = url
	p.UpdatedAt = time.Now()
	if err := session.Query("UPDATE products SET image_url = ?, updated_at = ? WHERE product_id = ?",
		url, p.UpdatedAt, p.ID).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour produit"})
		return
	}

	services.IndexProduct(p)
	c.JSON(http.StatusOK, gin.H{"message": "✅ Image uploadée avec succès", "image_url": url})
}

// SuggestDescription demande au modèle de langage une description de produit.
// Le magasin reste libre de l'éditer avant de sauvegarder.
func (h *Handler) SuggestDescription(c *gin.Context) {
	var input struct {
		Name     string `json:"name" binding:"required"`
		Category string `json:"category"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	description, err := services.GenerateProductDescription(c.Request.Context(), input.Name, input.Category)
	if err != nil {
		log.Printf("⚠️ Génération description: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Service de génération indisponible"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"description": description})
}

// MyProducts liste tout le catalogue du magasin, produits inactifs compris.
func (h *Handler) MyProducts(c *gin.Context) {
	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`SELECT product_id, store_id, name, description, category, price, stock, image_url, is_active, created_at, updated_at
		FROM products WHERE store_id = ? ALLOW FILTERING`, c.GetString("user_id")).Iter()

	products := []models.Product{}
	var p models.Product
	for iter.Scan(&p.ID, &p.StoreID, &p.Name, &p.Description, &p.Category,
		&p.Price, &p.Stock, &p.ImageURL, &p.IsActive, &p.CreatedAt, &p.UpdatedAt) {
		products = append(products, p)
	}
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produits"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products, "count": len(products)})
}

// ownedProduct charge un produit et vérifie qu'il appartient au magasin appelant.
func (h *Handler) ownedProduct(c *gin.Context, session *gocql.Session, productID gocql.UUID) (models.Product, bool) {
	var p models.Product
	if err := session.Query(`SELECT product_id, store_id, name, description, category, price, stock, image_url, is_active, created_at, updated_at
		FROM products WHERE product_id = ?`, productID).
		Scan(&p.ID, &p.StoreID, &p.Name, &p.Description, &p.Category,
			&p.Price, &p.Stock, &p.ImageURL, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return p, false
	}
	if p.StoreID != c.GetString("user_id") {
		c.JSON(http.StatusForbidden, gin.H{"error": "Ce produit ne vous appartient pas"})
		return p, false
	}
	return p, true
}
