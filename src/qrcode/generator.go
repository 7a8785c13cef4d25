package qrcode

import (
	"fmt"
	"os"

	"github.com/skip2/go-qrcode"
)

// RequestTrackingURL is the public URL a printed request QR resolves to.
func RequestTrackingURL(requestID string) string {
	base := os.Getenv("PUBLIC_URL")
	if base == "" {
		base = "http://localhost:8888"
	}
	return fmt.Sprintf("%s/requests/%s", base, requestID)
}

// GenerateRequestQR renders the tracking QR for a request as a PNG.
func GenerateRequestQR(requestID string) ([]byte, error) {
	return qrcode.Encode(RequestTrackingURL(requestID), qrcode.Medium, 256)
}

// GenerateRequestQRFile writes the tracking QR under public/qrcodes for
// printed purchase order headers.
func GenerateRequestQRFile(requestID string) (string, error) {
	filePath := fmt.Sprintf("public/qrcodes/%s.png", requestID)
	if err := qrcode.WriteFile(RequestTrackingURL(requestID), qrcode.Medium, 256, filePath); err != nil {
		return "", err
	}
	return filePath, nil
}
