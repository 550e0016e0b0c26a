package utils

import (
	"encoding/base64"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// GenerateOrderQR encode la référence de commande en QR (PNG base64) —
// scanné en point relais pour retrouver la commande
func GenerateOrderQR(orderID string) (string, error) {
	png, err := qrcode.Encode("velora:order:"+orderID, qrcode.Medium, 256)
	if err != nil {
		return "", fmt.Errorf("erreur génération QR: %v", err)
	}
	return base64.StdEncoding.EncodeToString(png), nil
}
