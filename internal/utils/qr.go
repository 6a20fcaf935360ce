package utils

import (
	"encoding/base64"

	qrcode "github.com/skip2/go-qrcode"
)

// TicketQR encode le code d'un ticket en QR PNG, montré dans le mail de reçu.
func TicketQR(code string) ([]byte, error) {
	return qrcode.Encode(code, qrcode.Medium, 256)
}

// TicketQRDataURI retourne le QR prêt à mettre dans un <img src="...">.
func TicketQRDataURI(code string) (string, error) {
	png, err := TicketQR(code)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
