package utils

import (
	"fmt"
	"log"
	"strings"

	"github.com/wneessen/go-mail"

	"storefront_back_end/internal/config"
	"storefront_back_end/internal/models"
)

// SendEmail envoie un mail HTML via le SMTP configuré. Sans SMTP_HOST, le
// mail est simplement journalisé : les notifications sont du best-effort.
func SendEmail(to, subject, htmlBody string) error {
	if config.SMTPHost() == "" {
		log.Printf("⚠️  SMTP non configuré, mail ignoré (to=%s, subject=%s)", to, subject)
		return nil
	}

	msg := mail.NewMsg()
	if err := msg.From(config.MailFrom()); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	client, err := mail.NewClient(config.SMTPHost(),
		mail.WithPort(587),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(config.SMTPUsername()),
		mail.WithPassword(config.SMTPPassword()),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Println("📤 Envoi de l'e-mail à", to)
	return client.DialAndSend(msg)
}

// TicketReceiptHTML génère le HTML du reçu d'achat, QR du code inclus.
func TicketReceiptHTML(t models.Ticket, qrDataURI string) string {
	var items strings.Builder
	for _, item := range t.Items {
		items.WriteString(fmt.Sprintf(`
			<tr>
				<td>%s</td>
				<td>%d</td>
				<td>%.2f€</td>
				<td>%.2f€</td>
			</tr>`, item.Title, item.Quantity, item.Price, item.Price*float64(item.Quantity)))
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<head><meta charset="UTF-8"><title>Reçu d'achat</title></head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">Merci pour votre achat</h2>
		<p>Votre code de ticket : <strong>%s</strong></p>
		<table width="100%%" cellpadding="6" style="border-collapse: collapse;">
			<tr><th align="left">Produit</th><th align="left">Qté</th><th align="left">Prix</th><th align="left">Total</th></tr>
			%s
		</table>
		<p><strong>Montant total : %.2f€</strong></p>
		<img src="%s" alt="QR du ticket" width="160" height="160"/>
	</div>
</body>
</html>`, t.Code, items.String(), t.TotalAmount, qrDataURI)
}

// ProductDeletedHTML prévient un vendeur premium que son produit est supprimé.
func ProductDeletedHTML(p models.Product) string {
	return fmt.Sprintf(`<p>Bonjour,</p>
<p>Votre produit <strong>%s</strong> (code %s) a été supprimé de la boutique.</p>
<p>L'équipe Storefront</p>`, p.Title, p.Code)
}

// AccountDeletedHTML prévient un utilisateur supprimé pour inactivité.
func AccountDeletedHTML(u models.User) string {
	return fmt.Sprintf(`<p>Bonjour %s,</p>
<p>Votre compte a été supprimé pour cause d'inactivité.</p>
<p>L'équipe Storefront</p>`, u.FirstName)
}

// PasswordResetHTML porte le lien de réinitialisation de mot de passe.
func PasswordResetHTML(link string) string {
	return fmt.Sprintf(`<p>Bonjour,</p>
<p>Réinitialisez votre mot de passe en suivant ce lien (valable 1h) :</p>
<p><a href="%s">%s</a></p>`, link, link)
}
