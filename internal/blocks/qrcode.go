package blocks

import (
	"encoding/base64"
	"html/template"

	qrcode "github.com/skip2/go-qrcode"
)

const (
	minQRSize = 64
	maxQRSize = 1024
)

// QRCodeDataURI encodes content as a PNG QR code data URI.
func QRCodeDataURI(content string, size int) (template.URL, error) {
	if size < minQRSize {
		size = minQRSize
	}
	if size > maxQRSize {
		size = maxQRSize
	}
	png, err := qrcode.Encode(content, qrcode.Medium, size)
	if err != nil {
		return "", err
	}
	return template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(png)), nil
}
