package ocr

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/otiai10/gosseract/v2"
)

// charWhitelist restricts recognition to characters that actually
// occur on itemized receipts; it cuts down on punctuation noise.
const charWhitelist = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz" +
	"ÀÁÂÃÄÅÇÈÉÊËÌÍÎÏÑÒÓÔÕÖÙÚÛÜàáâãäåçèéêëìíîïñòóôõöùúûü ,.-+*xXR$%()/"

// Tesseract is the local recognition collaborator. A fresh client is
// created per call; gosseract clients are not safe for concurrent use.
type Tesseract struct {
	language string
}

// NewTesseract builds a recognizer for the given language ("por" for
// Brazilian receipts).
func NewTesseract(language string) *Tesseract {
	if language == "" {
		language = "por"
	}
	return &Tesseract{language: language}
}

// Recognize runs one recognition pass over the encoded image. The page
// segmentation mode treats the receipt as a single uniform block and
// inter-word spaces are preserved so column layouts survive.
func (t *Tesseract) Recognize(ctx context.Context, image []byte) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(t.language); err != nil {
		return Result{}, fmt.Errorf("setting language: %w", err)
	}
	if err := client.SetVariable("preserve_interword_spaces", "1"); err != nil {
		return Result{}, fmt.Errorf("preserving interword spaces: %w", err)
	}
	if err := client.SetWhitelist(charWhitelist); err != nil {
		return Result{}, fmt.Errorf("setting whitelist: %w", err)
	}
	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_BLOCK); err != nil {
		return Result{}, fmt.Errorf("setting page segmentation mode: %w", err)
	}
	if err := client.SetImageFromBytes(image); err != nil {
		return Result{}, fmt.Errorf("setting image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return Result{}, fmt.Errorf("recognizing text: %w", err)
	}

	return Result{Text: text, Confidence: estimateConfidence(text)}, nil
}

// estimateConfidence scores recognition quality from text shape:
// enough words and a plausible letter ratio suggest a clean read.
func estimateConfidence(text string) float64 {
	if strings.TrimSpace(text) == "" {
		return 0
	}

	confidence := 50.0
	words := strings.Fields(text)
	if len(words) > 20 {
		confidence += 10
	}
	if len(words) > 80 {
		confidence += 10
	}

	letters, runes := 0, 0
	for _, r := range text {
		runes++
		if unicode.IsLetter(r) {
			letters++
		}
	}
	ratio := float64(letters) / float64(runes)
	if ratio > 0.3 && ratio < 0.9 {
		confidence += 15
	}

	if confidence > 85 {
		confidence = 85
	}
	return confidence
}
