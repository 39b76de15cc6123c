package customer

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"livra_back_end/internal/cache"
	"livra_back_end/internal/database"
	"livra_back_end/internal/models"
)

//
// =========================
// 🛒 PANIER (Redis)
// =========================
//

// GetCart retourne le panier courant du client.
func (h *Handler) GetCart(c *gin.Context) {
	cart, err := cache.GetCart(context.Background(), c.GetString("user_id"))
	if err != nil {
		if errors.Is(err, cache.ErrCartEmpty) {
			c.JSON(http.StatusOK, gin.H{"items": []models.CartItem{}, "store_id": ""})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture panier"})
		return
	}
	c.JSON(http.StatusOK, cart)
}

// AddToCart ajoute un produit au panier. Un panier ne contient que des
// produits d'un seul magasin : en changer vide d'abord le panier.
func (h *Handler) AddToCart(c *gin.Context) {
	var input struct {
		ProductID string `json:"product_id" binding:"required"`
		Quantity  int    `json:"quantity" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	productID, err := gocql.ParseUUID(input.ProductID)
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
	if err := session.Query(`SELECT product_id, store_id, name, price, stock, is_active
		FROM products WHERE product_id = ?`, productID).
		Scan(&p.ID, &p.StoreID, &p.Name, &p.Price, &p.Stock, &p.IsActive); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}
	if !p.IsActive {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Produit indisponible"})
		return
	}

	ctx := context.Background()
	customerID := c.GetString("user_id")

	cart, err := cache.GetCart(ctx, customerID)
	if err != nil {
		if !errors.Is(err, cache.ErrCartEmpty) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture panier"})
			return
		}
		cart = &models.Cart{CustomerID: customerID, StoreID: p.StoreID}
	}

	if cart.StoreID != p.StoreID {
		// Changement de magasin = nouveau panier
		cart = &models.Cart{CustomerID: customerID, StoreID: p.StoreID}
	}

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
			Name:      p.Name,
			Quantity:  input.Quantity,
			UnitPrice: p.Price,
		})
	}

	if err := cache.SaveCart(ctx, cart); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sauvegarde panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "🛒 Produit ajouté", "cart": cart})
}

// RemoveFromCart retire un produit (ou baisse sa quantité).
func (h *Handler) RemoveFromCart(c *gin.Context) {
	productID := c.Param("productId")
	ctx := context.Background()
	customerID := c.GetString("user_id")

	cart, err := cache.GetCart(ctx, customerID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Panier vide"})
		return
	}

	items := cart.Items[:0]
	for _, it := range cart.Items {
		if it.ProductID != productID {
			items = append(items, it)
		}
	}
	cart.Items = items

	if len(cart.Items) == 0 {
		if err := cache.ClearCart(ctx, customerID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sauvegarde panier"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Panier vidé"})
		return
	}

	if err := cache.SaveCart(ctx, cart); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sauvegarde panier"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Produit retiré", "cart": cart})
}

// ClearCart vide le panier.
func (h *Handler) ClearCart(c *gin.Context) {
	if err := cache.ClearCart(context.Background(), c.GetString("user_id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression panier"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Panier vidé"})
}
