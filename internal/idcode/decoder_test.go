package idcode

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"testing"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// qrImage renders raw text as a QR image, bypassing payload validation.
func qrImage(t *testing.T, text string, size int) (image.Image, error) {
	t.Helper()
	return qrcode.NewQRCodeWriter().Encode(text, gozxing.BarcodeFormat_QR_CODE, size, size, nil)
}

// testPage renders a white page with an identity code drawn at the given
// offset, returned as PNG bytes the way scans arrive.
func testPage(t *testing.T, payload Payload, pageW, pageH, codeSize, x, y int) []byte {
	t.Helper()

	code, err := EncodeImage(payload, codeSize)
	require.NoError(t, err)

	page := image.NewRGBA(image.Rect(0, 0, pageW, pageH))
	draw.Draw(page, page.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(page, image.Rect(x, y, x+codeSize, y+codeSize), code, image.Point{}, draw.Src)

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, page))
	return buf.Bytes()
}

func TestDecoderFindsCornerCodes(t *testing.T) {
	payload := Payload{Version: 2, Type: TypeStudent, StudentRef: "stu-17"}

	tests := []struct {
		name string
		x, y int
	}{
		{name: "top-left", x: 20, y: 20},
		{name: "top-right", x: 580, y: 20},
		{name: "bottom-left", x: 20, y: 380},
		{name: "bottom-right", x: 580, y: 380},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := testPage(t, payload, 800, 600, 200, tt.x, tt.y)

			decoded, err := NewDecoder().Decode(data)
			require.NoError(t, err)
			assert.Equal(t, payload, decoded)
		})
	}
}

func TestDecoderFallsBackToFullImage(t *testing.T) {
	payload := Payload{Version: 1, StudentRef: "stu-3", QuestionID: "q-1"}

	// Centered code: every corner region misses it, only the full-image
	// scan can find it.
	data := testPage(t, payload, 1200, 1000, 200, 500, 400)

	decoded, err := NewDecoder().Decode(data)
	require.NoError(t, err)
	assert.Equal(t, payload, decoded)
}

func TestDecoderReturnsNotFound(t *testing.T) {
	t.Run("blank page", func(t *testing.T) {
		page := image.NewRGBA(image.Rect(0, 0, 400, 300))
		draw.Draw(page, page.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

		var buf bytes.Buffer
		require.NoError(t, png.Encode(&buf, page))

		_, err := NewDecoder().Decode(buf.Bytes())
		assert.ErrorIs(t, err, ErrCodeNotFound)
	})

	t.Run("unreadable image bytes", func(t *testing.T) {
		_, err := NewDecoder().Decode([]byte("not an image"))
		assert.ErrorIs(t, err, ErrCodeNotFound)
	})

	t.Run("code with unknown payload version", func(t *testing.T) {
		// A decodable QR whose payload fails validation is still a miss.
		code, err := qrImage(t, `{"v":9,"s":"stu-1"}`, 200)
		require.NoError(t, err)

		page := image.NewRGBA(image.Rect(0, 0, 400, 400))
		draw.Draw(page, page.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
		draw.Draw(page, image.Rect(20, 20, 220, 220), code, image.Point{}, draw.Src)

		_, err = NewDecoder().DecodeImage(page)
		assert.ErrorIs(t, err, ErrCodeNotFound)
	})
}
