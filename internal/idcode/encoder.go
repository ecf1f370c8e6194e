package idcode

import (
	"fmt"
	"image"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
)

// EncodeImage renders a payload as a QR code image of the given side
// length. The worksheet generator places these near page corners so the
// corner-first decode finds them in one cheap pass.
func EncodeImage(p Payload, size int) (image.Image, error) {
	text, err := Encode(p)
	if err != nil {
		return nil, err
	}

	matrix, err := qrcode.NewQRCodeWriter().Encode(text, gozxing.BarcodeFormat_QR_CODE, size, size, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to render identity code: %w", err)
	}

	return matrix, nil
}
