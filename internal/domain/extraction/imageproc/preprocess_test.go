package imageproc

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func receiptLike(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 235, G: 235, B: 230, A: 255})
		}
	}
	// A few dark strokes standing in for printed text.
	for x := 2; x < w-2; x++ {
		img.SetNRGBA(x, h/3, color.NRGBA{R: 25, G: 25, B: 25, A: 255})
		img.SetNRGBA(x, 2*h/3, color.NRGBA{R: 30, G: 30, B: 30, A: 255})
	}
	return img
}

func TestPreprocess(t *testing.T) {
	t.Run("doubles dimensions and outputs grayscale", func(t *testing.T) {
		in := encodePNG(t, receiptLike(40, 60))

		out := Preprocess(in)
		require.NotEmpty(t, out)

		decoded, err := png.Decode(bytes.NewReader(out))
		require.NoError(t, err)

		bounds := decoded.Bounds()
		assert.Equal(t, 80, bounds.Dx())
		assert.Equal(t, 120, bounds.Dy())

		_, isGray := decoded.(*image.Gray)
		assert.True(t, isGray, "output should be single-channel")
	})

	t.Run("deterministic for identical input", func(t *testing.T) {
		in := encodePNG(t, receiptLike(30, 30))
		assert.Equal(t, Preprocess(in), Preprocess(in))
	})

	t.Run("corrupt buffer falls back to the original", func(t *testing.T) {
		in := []byte("definitely not an image")
		out := Preprocess(in)
		assert.Equal(t, in, out)
	})

	t.Run("empty buffer falls back to the original", func(t *testing.T) {
		assert.Empty(t, Preprocess(nil))
	})
}
