package routes

import (
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"livra_back_end/internal/handlers"
	"livra_back_end/internal/handlers/admin"
	"livra_back_end/internal/handlers/customer"
	"livra_back_end/internal/handlers/driver"
	"livra_back_end/internal/handlers/store"
	"livra_back_end/internal/middleware"
	"livra_back_end/internal/models"
)

// Handlers regroupe les handlers à état injectés depuis main.
type Handlers struct {
	Customer *customer.Handler
	Store    *store.Handler
	Driver   *driver.Handler
	Admin    *admin.Handler
}

func RegisterRoutes(r *gin.Engine, h Handlers) {
	r.Use(corsMiddleware())

	api := r.Group("/api")
	api.Use(middleware.APIRateLimit())

	// ---- Public ----
	api.POST("/auth/register", handlers.Register)
	api.POST("/auth/login", middleware.LoginRateLimit(), handlers.Login)
	api.GET("/auth/providers", handlers.ListProviders)
	api.GET("/auth/:provider", handlers.BeginAuth)
	api.GET("/auth/:provider/callback", handlers.CallbackAuth)

	api.GET("/catalog/search", handlers.SearchProducts)
	api.GET("/stores", handlers.ListStores)
	api.GET("/stores/:storeId", handlers.GetStore)
	api.GET("/stores/:storeId/products", handlers.GetStoreProducts)
	api.GET("/products/:productId", handlers.GetProduct)
	api.GET("/reviews/:targetId", handlers.GetReviews)

	// ---- Authentifié (tous rôles) ----
	authed := api.Group("")
	authed.Use(middleware.AuthRequired())
	authed.GET("/me", handlers.Me)
	authed.POST("/me/image", handlers.UploadProfileImage)

	// ---- Client ----
	cust := authed.Group("/customer")
	cust.Use(middleware.RequireRole(models.RoleCustomer))
	cust.GET("/cart", h.Customer.GetCart)
	cust.POST("/cart", h.Customer.AddToCart)
	cust.DELETE("/cart", h.Customer.ClearCart)
	cust.DELETE("/cart/:productId", h.Customer.RemoveFromCart)
	cust.POST("/checkout", middleware.RequireOperation(models.OpPlaceOrder), h.Customer.Checkout)
	cust.GET("/orders", h.Customer.MyOrders)
	cust.GET("/orders/:orderId", h.Customer.GetOrder)
	cust.GET("/orders/:orderId/history", h.Customer.OrderHistory)
	cust.GET("/orders/:orderId/track", h.Customer.TrackOrder)
	cust.GET("/orders/:orderId/receipt", h.Customer.DownloadReceipt)
	cust.POST("/orders/:orderId/cancel", middleware.RequireOperation(models.OpCancel), h.Customer.CancelOrder)
	cust.POST("/reviews", h.Customer.CreateReview)

	// ---- Magasin ----
	st := authed.Group("/store")
	st.Use(middleware.RequireRole(models.RoleStore))
	st.GET("/products", h.Store.MyProducts)
	st.POST("/products", h.Store.CreateProduct)
	st.PUT("/products/:productId", h.Store.UpdateProduct)
	st.DELETE("/products/:productId", h.Store.DeleteProduct)
	st.POST("/products/:productId/image", h.Store.UploadProductImage)
	st.POST("/products/describe", h.Store.SuggestDescription)
	st.GET("/orders", h.Store.IncomingOrders)
	st.POST("/orders/:orderId/accept", middleware.RequireOperation(models.OpStoreAccept), h.Store.AcceptOrder)
	st.POST("/orders/:orderId/cancel", middleware.RequireOperation(models.OpCancel), h.Store.CancelOrder)
	st.GET("/orders/:orderId/pickup-qr", h.Store.PickupQR)
	st.GET("/drivers/nearby", h.Store.NearbyDrivers)

	// ---- Livreur ----
	drv := authed.Group("/driver")
	drv.Use(middleware.RequireRole(models.RoleDriver))
	drv.GET("/orders/available", h.Driver.AvailableOrders)
	drv.POST("/orders/:orderId/claim", middleware.RequireOperation(models.OpDriverClaim), h.Driver.ClaimOrder)
	drv.POST("/orders/:orderId/pickup", middleware.RequireOperation(models.OpConfirmPickup), h.Driver.ConfirmPickup)
	drv.POST("/orders/:orderId/deliver", middleware.RequireOperation(models.OpConfirmDelivery), h.Driver.ConfirmDelivery)
	drv.POST("/orders/:orderId/cancel", middleware.RequireOperation(models.OpCancel), h.Driver.CancelOrder)
	drv.GET("/deliveries", h.Driver.MyDeliveries)
	drv.POST("/location", h.Driver.UpdateLocation)

	// ---- Admin ----
	adm := authed.Group("/admin")
	adm.Use(middleware.RequireAdmin)
	adm.GET("/orders", h.Admin.ListOrders)
	adm.GET("/orders/:orderId", h.Admin.GetOrder)
	adm.POST("/orders/:orderId/cancel", middleware.RequireOperation(models.OpCancel), h.Admin.CancelOrder)
	adm.GET("/users", h.Admin.ListUsers)
	adm.DELETE("/users/:userId", h.Admin.DeleteUser)
	adm.GET("/stats", h.Admin.Stats)
}

func corsMiddleware() gin.HandlerFunc {
	origins := []string{"http://localhost:3000"}
	if raw := os.Getenv("CORS_ORIGINS"); raw != "" {
		origins = strings.Split(raw, ",")
	}
	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}
