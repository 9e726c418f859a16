// Package ocr wraps the local text-recognition collaborator. The
// engine only depends on the Recognizer interface; the Tesseract
// implementation lives behind it so tests can swap in fakes.
package ocr

import "context"

// Result is the raw output of one recognition pass.
type Result struct {
	Text string
	// Confidence is a 0..100 estimate of recognition quality.
	Confidence float64
}

// Recognizer turns an encoded image into raw text. Implementations
// must tolerate noisy binarized input and must not panic past this
// boundary; a failed pass surfaces as an error and is downgraded to an
// empty Result by the caller.
type Recognizer interface {
	Recognize(ctx context.Context, image []byte) (Result, error)
}
