package idcode

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"

	_ "image/jpeg" // scanned pages arrive as JPEG or PNG
	_ "image/png"
)

// maxRegionSize caps the side length of a corner scan region in pixels.
const maxRegionSize = 400

// Decoder scans page images for identity codes. Codes are conventionally
// printed near page corners, so the four corners are tried first and the
// full image only as a last resort.
type Decoder struct{}

// NewDecoder creates a new identity code decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode scans the encoded page image for an identity code. It returns
// ErrCodeNotFound when no region yields a decodable, structurally valid
// payload; callers treat that as "fall back to remote identification".
func (d *Decoder) Decode(data []byte) (Payload, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return Payload{}, fmt.Errorf("%w: unreadable image", ErrCodeNotFound)
	}
	return d.DecodeImage(img)
}

// DecodeImage scans an already-decoded image for an identity code.
func (d *Decoder) DecodeImage(img image.Image) (Payload, error) {
	for _, region := range scanRegions(img.Bounds()) {
		payload, err := decodeRegion(crop(img, region))
		if err == nil {
			return payload, nil
		}
	}
	return Payload{}, ErrCodeNotFound
}

// decodeRegion attempts a QR decode of a single image region.
func decodeRegion(img image.Image) (Payload, error) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return Payload{}, fmt.Errorf("%w: %v", ErrCodeNotFound, err)
	}

	hints := map[gozxing.DecodeHintType]interface{}{
		gozxing.DecodeHintType_TRY_HARDER: true,
	}

	result, err := qrcode.NewQRCodeReader().Decode(bmp, hints)
	if err != nil {
		return Payload{}, fmt.Errorf("%w: %v", ErrCodeNotFound, err)
	}

	return ParsePayload(result.GetText())
}

// scanRegions returns the ordered list of regions to try: the four corners
// sized min(400px, half the image dimension), then the full image.
func scanRegions(b image.Rectangle) []image.Rectangle {
	w := b.Dx()
	h := b.Dy()

	rw := min(maxRegionSize, w/2)
	rh := min(maxRegionSize, h/2)

	if rw <= 0 || rh <= 0 {
		return []image.Rectangle{b}
	}

	return []image.Rectangle{
		image.Rect(b.Min.X, b.Min.Y, b.Min.X+rw, b.Min.Y+rh), // top-left
		image.Rect(b.Max.X-rw, b.Min.Y, b.Max.X, b.Min.Y+rh), // top-right
		image.Rect(b.Min.X, b.Max.Y-rh, b.Min.X+rw, b.Max.Y), // bottom-left
		image.Rect(b.Max.X-rw, b.Max.Y-rh, b.Max.X, b.Max.Y), // bottom-right
		b, // full page
	}
}

// crop copies a region of the source image into its own buffer.
func crop(img image.Image, region image.Rectangle) image.Image {
	out := image.NewRGBA(image.Rect(0, 0, region.Dx(), region.Dy()))
	draw.Draw(out, out.Bounds(), img, region.Min, draw.Src)
	return out
}
