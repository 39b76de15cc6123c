package customer

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/paymentintent"

	"livra_back_end/internal/cache"
	"livra_back_end/internal/database"
	"livra_back_end/internal/handlers"
	"livra_back_end/internal/models"
	"livra_back_end/internal/orders"
)

//
// =========================
// 💳 CHECKOUT
// =========================
//

// Checkout transforme le panier Redis en commande : les prix sont relus
// depuis le catalogue (jamais depuis le panier), la commande est créée en
// PENDING puis un PaymentIntent Stripe est ouvert. Si Stripe refuse, la
// commande est annulée immédiatement.
func (h *Handler) Checkout(c *gin.Context) {
	var input struct {
		DropoffLat float64 `json:"dropoff_lat"`
		DropoffLng float64 `json:"dropoff_lng"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := context.Background()
	customerID := c.GetString("user_id")

	cart, err := cache.GetCart(ctx, customerID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Panier vide"})
		return
	}

	dropoff := models.Coordinates{Lat: input.DropoffLat, Lng: input.DropoffLng}
	if !dropoff.IsValid() {
		// Repli sur l'adresse par défaut du profil client
		if session, serr := database.GetUsersSession(); serr == nil {
			_ = session.Query("SELECT lat, lng FROM customer_profiles WHERE user_id = ?", customerID).
				Scan(&dropoff.Lat, &dropoff.Lng)
		}
	}

	store, err := cache.GetStoreFromCache(cart.StoreID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Magasin introuvable"})
		return
	}

	items, err := h.priceCartItems(cart)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	order, err := h.Orders.PlaceOrder(ctx, orders.PlaceOrderInput{
		CustomerID: customerID,
		StoreID:    cart.StoreID,
		Items:      items,
		Pickup:     store.Location,
		Dropoff:    dropoff,
	})
	if err != nil {
		handlers.RespondOrderError(c, err)
		return
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(order.TotalPrice),
		Currency: stripe.String("eur"),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.AddMetadata("order_id", order.ID.String())
	params.AddMetadata("customer_id", customerID)

	intent, err := paymentintent.New(params)
	if err != nil {
		log.Printf("❌ Stripe a refusé le PaymentIntent pour %s: %v", order.ID, err)
		actor := models.Actor{ID: customerID, Role: models.RoleCustomer}
		if _, cerr := h.Orders.Cancel(ctx, order.ID, actor); cerr != nil {
			log.Printf("⚠️ Annulation après échec Stripe impossible pour %s: %v", order.ID, cerr)
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "Paiement indisponible, commande annulée"})
		return
	}

	if err := cache.ClearCart(ctx, customerID); err != nil {
		log.Printf("⚠️ Panier non vidé après checkout %s: %v", order.ID, err)
	}

	log.Printf("📦 Commande %s créée (%d centimes), intent %s", order.ID, order.TotalPrice, intent.ID)
	c.JSON(http.StatusCreated, gin.H{
		"order":        order,
		"clientSecret": intent.ClientSecret,
	})
}

// priceCartItems relit chaque produit du panier dans le catalogue et fige
// les prix courants dans les lignes de commande.
func (h *Handler) priceCartItems(cart *models.Cart) ([]models.OrderItem, error) {
	session, err := database.GetCatalogSession()
	if err != nil {
		return nil, fmt.Errorf("erreur connexion base de données")
	}

	items := make([]models.OrderItem, 0, len(cart.Items))
	for _, it := range cart.Items {
		productID, err := gocql.ParseUUID(it.ProductID)
		if err != nil {
			return nil, fmt.Errorf("produit %s invalide", it.ProductID)
		}

		var name string
		var price int64
		var stock int
		var active bool
		if err := session.Query(`SELECT name, price, stock, is_active FROM products WHERE product_id = ?`,
			productID).Scan(&name, &price, &stock, &active); err != nil {
			return nil, fmt.Errorf("produit %s introuvable", it.ProductID)
		}
		if !active {
			return nil, fmt.Errorf("produit %s indisponible", name)
		}
		if stock < it.Quantity {
			return nil, fmt.Errorf("stock insuffisant pour %s", name)
		}

		items = append(items, models.OrderItem{
			ProductID: productID,
			Name:      name,
			Quantity:  it.Quantity,
			UnitPrice: price,
		})
	}
	return items, nil
}
