package imageproc

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func grayImage(w, h int, fill uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetGray(x, y, color.Gray{Y: fill})
		}
	}
	return img
}

func TestOtsuThreshold(t *testing.T) {
	t.Run("constant intensity image yields zero", func(t *testing.T) {
		hist := HistogramOf(grayImage(16, 16, 127))
		assert.Equal(t, uint8(0), OtsuThreshold(hist))
	})

	t.Run("empty histogram yields zero", func(t *testing.T) {
		assert.Equal(t, uint8(0), OtsuThreshold(Histogram{}))
	})

	t.Run("bimodal histogram splits at the dark mode", func(t *testing.T) {
		var hist Histogram
		hist[50] = 500
		hist[200] = 500
		// Any split between the modes gives the same between-class
		// variance; the first maximizing threshold wins.
		assert.Equal(t, uint8(50), OtsuThreshold(hist))
	})

	t.Run("threshold separates text from background", func(t *testing.T) {
		img := grayImage(20, 20, 230)
		for x := 0; x < 20; x++ {
			img.SetGray(x, 10, color.Gray{Y: 20})
		}
		threshold := OtsuThreshold(HistogramOf(img))
		assert.GreaterOrEqual(t, threshold, uint8(20))
		assert.Less(t, threshold, uint8(230))
	})
}

func TestHistogramOf(t *testing.T) {
	img := grayImage(4, 4, 9)
	hist := HistogramOf(img)

	assert.Equal(t, 16, hist[9])
	total := 0
	for _, n := range hist {
		total += n
	}
	assert.Equal(t, 16, total)
}
