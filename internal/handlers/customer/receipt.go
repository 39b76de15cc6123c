package customer

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"livra_back_end/internal/handlers"
	"livra_back_end/internal/models"
	"livra_back_end/internal/utils"
)

//
// =========================
// 🧾 REÇU PDF
// =========================
//

// DownloadReceipt génère le reçu PDF d'une commande livrée via Chrome headless.
func (h *Handler) DownloadReceipt(c *gin.Context) {
	orderID, err := gocql.ParseUUID(c.Param("orderId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID commande invalide"})
		return
	}

	order, err := h.Orders.Get(context.Background(), orderID)
	if err != nil {
		handlers.RespondOrderError(c, err)
		return
	}
	if order.CustomerID != c.GetString("user_id") {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cette commande ne vous appartient pas"})
		return
	}
	if order.Status != models.StatusDelivered {
		c.JSON(http.StatusConflict, gin.H{"error": "Le reçu n'existe qu'après livraison"})
		return
	}

	qr, err := utils.GeneratePickupQR(orderID.String())
	if err != nil {
		qr = ""
	}

	frontendURL := os.Getenv("FRONTEND_RECEIPT_URL")
	if frontendURL == "" {
		frontendURL = "http://localhost:3000/receipt"
	}

	pdf, err := utils.RenderReceiptPDF(frontendURL, orderID.String(), qr)
	if err != nil {
		log.Printf("❌ Génération reçu PDF %s: %v", orderID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération reçu"})
		return
	}

	c.Header("Content-Disposition", "attachment; filename=recu-"+orderID.String()+".pdf")
	c.Data(http.StatusOK, "application/pdf", pdf)
}
