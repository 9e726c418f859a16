package imageproc

import (
	"bytes"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// sharpenKernel is an edge-enhancing 3x3 convolution: center weight 5,
// cardinal neighbors -1. It crispens character strokes before
// binarization.
var sharpenKernel = [9]float64{
	0, -1, 0,
	-1, 5, -1,
	0, -1, 0,
}

// Preprocess runs the full cleanup pipeline over an encoded image and
// returns a PNG suited for text recognition. Steps, in order:
// grayscale, contrast boost, brightness normalization, sharpening,
// Otsu black/white split, light blur denoise, 2x upscale.
//
// Preprocessing failure must never abort extraction, so any decode or
// encode problem returns the original buffer unchanged.
func Preprocess(buf []byte) []byte {
	src, err := imaging.Decode(bytes.NewReader(buf))
	if err != nil {
		return buf
	}

	img := imaging.Grayscale(src)
	img = imaging.AdjustContrast(img, 30)
	img = normalize(img)
	img = imaging.Convolve3x3(img, sharpenKernel, nil)

	gray := toGray(img)
	threshold := OtsuThreshold(HistogramOf(gray))
	img = imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		// Already grayscale, the red channel is the intensity.
		if c.R > threshold {
			return color.NRGBA{R: 255, G: 255, B: 255, A: 255}
		}
		return color.NRGBA{R: 0, G: 0, B: 0, A: 255}
	})

	img = imaging.Blur(img, 0.7)

	bounds := img.Bounds()
	img = imaging.Resize(img, bounds.Dx()*2, bounds.Dy()*2, imaging.Lanczos)

	var out bytes.Buffer
	if err := imaging.Encode(&out, toGray(img), imaging.PNG); err != nil {
		return buf
	}
	return out.Bytes()
}

// normalize stretches the intensity range to the full 0..255 interval,
// which evens out under- and over-exposed photos.
func normalize(img *image.NRGBA) *image.NRGBA {
	minV, maxV := uint8(255), uint8(0)
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			v := img.NRGBAAt(x, y).R
			if v < minV {
				minV = v
			}
			if v > maxV {
				maxV = v
			}
		}
	}
	if minV >= maxV {
		return img
	}

	scale := 255.0 / float64(maxV-minV)
	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		v := uint8(float64(c.R-minV)*scale + 0.5)
		return color.NRGBA{R: v, G: v, B: v, A: c.A}
	})
}

// toGray converts an already-grayscale NRGBA into a single-channel
// image for histogram math and output encoding.
func toGray(img *image.NRGBA) *image.Gray {
	bounds := img.Bounds()
	gray := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			gray.SetGray(x, y, color.Gray{Y: img.NRGBAAt(x, y).R})
		}
	}
	return gray
}
