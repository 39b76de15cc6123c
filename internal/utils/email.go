package utils

import (
	"fmt"
	"log"
	"os"

	"github.com/wneessen/go-mail"

	"livra_back_end/internal/models"
)

// SendEmail envoie un e-mail HTML via le SMTP configuré.
func SendEmail(to, subject, htmlBody string) error {
	msg := mail.NewMsg()

	if err := msg.From(os.Getenv("SMTP_FROM")); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	client, err := mail.NewClient(os.Getenv("SMTP_HOST"),
		mail.WithPort(587),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(os.Getenv("SMTP_USERNAME")),
		mail.WithPassword(os.Getenv("SMTP_PASSWORD")),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Println("📤 Envoi de l'e-mail à", to)
	return client.DialAndSend(msg)
}

// SendOrderStatusEmail notifie le client d'un changement de statut de commande.
func SendOrderStatusEmail(order *models.Order, userEmail string) error {
	subject := statusEmailSubject(order.Status)
	html := statusEmailHTML(order)

	if err := SendEmail(userEmail, subject, html); err != nil {
		log.Printf("❌ Erreur envoi email statut: %v", err)
		return err
	}

	log.Printf("📧 Email de statut envoyé: %s → %s", order.Status, userEmail)
	return nil
}

func statusEmailSubject(status models.OrderStatus) string {
	switch status {
	case models.StatusAcceptedByStore:
		return "🏪 Votre commande est en préparation - Livra"
	case models.StatusAcceptedByDriver:
		return "🛵 Un livreur a pris votre commande - Livra"
	case models.StatusPickedUp:
		return "📦 Votre commande est en route - Livra"
	case models.StatusDelivered:
		return "🎉 Votre commande a été livrée - Livra"
	case models.StatusCancelled:
		return "❌ Commande annulée - Livra"
	default:
		return "📋 Mise à jour de votre commande - Livra"
	}
}

func statusMessage(status models.OrderStatus) string {
	switch status {
	case models.StatusAcceptedByStore:
		return "Le magasin a accepté votre commande et la prépare."
	case models.StatusAcceptedByDriver:
		return "Un livreur s'est assigné à votre commande."
	case models.StatusPickedUp:
		return "Votre commande a été récupérée et arrive vers vous."
	case models.StatusDelivered:
		return "Votre commande est arrivée. Bon appétit !"
	case models.StatusCancelled:
		return "Votre commande a été annulée. Aucun montant ne sera prélevé."
	default:
		return "Le statut de votre commande a changé."
	}
}

func statusEmailHTML(order *models.Order) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<body style="font-family: -apple-system, 'Segoe UI', Roboto, Arial, sans-serif; background-color: #f5f5f5; padding: 30px;">
	<div style="max-width: 600px; margin: 0 auto; background: #ffffff; border-radius: 12px; padding: 30px;">
		<h1 style="color: #2b7a4b;">Livra</h1>
		<p style="font-size: 16px; color: #333;">%s</p>
		<table style="width: 100%%; border-collapse: collapse; background: #f8f9fa; border-radius: 8px;">
			<tr><td style="padding: 8px;"><strong>Commande</strong></td><td style="text-align: right;">#%s</td></tr>
			<tr><td style="padding: 8px;"><strong>Montant total</strong></td><td style="text-align: right;">%.2f€</td></tr>
			<tr><td style="padding: 8px;"><strong>Statut</strong></td><td style="text-align: right;">%s</td></tr>
		</table>
	</div>
</body>
</html>`, statusMessage(order.Status), order.ID, float64(order.TotalPrice)/100, order.Status)
}
