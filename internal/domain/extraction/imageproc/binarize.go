// Package imageproc prepares photographed receipts for text
// recognition: grayscale, contrast, sharpening, adaptive binarization
// and upscaling. The pipeline is deterministic and never fails the
// caller; a broken input simply passes through untouched.
package imageproc

import "image"

// Histogram is a 256-bucket grayscale intensity histogram.
type Histogram [256]int

// HistogramOf builds the intensity histogram of a grayscale image.
func HistogramOf(img *image.Gray) Histogram {
	var hist Histogram
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			hist[img.GrayAt(x, y).Y]++
		}
	}
	return hist
}

// OtsuThreshold picks the binarization threshold that maximizes the
// between-class variance of the two pixel populations split at the
// threshold. Splits where either side has zero weight are skipped, so
// a constant-intensity image yields 0 without dividing by zero.
func OtsuThreshold(hist Histogram) uint8 {
	total := 0
	for _, n := range hist {
		total += n
	}
	if total == 0 {
		return 0
	}

	var sum float64
	for i, n := range hist {
		sum += float64(i) * float64(n)
	}

	var sumB float64
	wB := 0
	maxVariance := 0.0
	threshold := uint8(0)

	for t := 0; t < 256; t++ {
		wB += hist[t]
		if wB == 0 {
			continue
		}
		wF := total - wB
		if wF == 0 {
			break
		}

		sumB += float64(t) * float64(hist[t])
		mB := sumB / float64(wB)
		mF := (sum - sumB) / float64(wF)

		variance := float64(wB) * float64(wF) * (mB - mF) * (mB - mF)
		if variance > maxVariance {
			maxVariance = variance
			threshold = uint8(t)
		}
	}

	return threshold
}
