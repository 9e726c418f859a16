// Package service orchestrates receipt extraction: it runs the local
// OCR path and the vision path in parallel, reconciles the two results
// and enriches the winner with categories and subcategories.
package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/receipt-engine/internal/domain/categorization"
	"github.com/FACorreiaa/receipt-engine/internal/domain/extraction"
	"github.com/FACorreiaa/receipt-engine/internal/domain/extraction/imageproc"
	"github.com/FACorreiaa/receipt-engine/internal/domain/extraction/ocr"
	"github.com/FACorreiaa/receipt-engine/internal/domain/extraction/parser"
	"github.com/FACorreiaa/receipt-engine/pkg/metrics"
)

// VisionExtractor is the vision path collaborator. nil disables the
// path; extraction then runs local-only.
type VisionExtractor interface {
	Extract(ctx context.Context, image []byte) (*extraction.ExtractionResult, error)
}

// ErrEmptyImage is returned when the caller hands over no image data.
var ErrEmptyImage = errors.New("extraction: empty image")

var onePercent = decimal.NewFromInt(1)

// Service handles receipt extraction business logic
type Service struct {
	recognizer ocr.Recognizer
	vision     VisionExtractor
	classifier *categorization.Classifier
	logger     *slog.Logger
	tracer     trace.Tracer
	now        func() time.Time
}

// NewService creates a new extraction service. vision may be nil.
func NewService(recognizer ocr.Recognizer, vision VisionExtractor, classifier *categorization.Classifier, logger *slog.Logger) *Service {
	return &Service{
		recognizer: recognizer,
		vision:     vision,
		classifier: classifier,
		logger:     logger,
		tracer:     otel.Tracer("receipt-engine/extraction"),
		now:        time.Now,
	}
}

// ExtractReceiptData runs the full pipeline over one receipt photo and
// returns the reconciled result. The local path works on a preprocessed
// copy of the image; the vision path sees the original photo.
func (s *Service) ExtractReceiptData(ctx context.Context, image []byte) (*extraction.ExtractionResult, error) {
	if len(image) == 0 {
		return nil, ErrEmptyImage
	}

	ctx, span := s.tracer.Start(ctx, "ExtractReceiptData")
	defer span.End()
	started := s.now()

	var (
		wg           sync.WaitGroup
		local        *extraction.ExtractionResult
		localErr     error
		visionResult *extraction.ExtractionResult
		visionErr    error
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		local, localErr = s.extractLocal(ctx, image)
	}()

	if s.vision != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			visionResult, visionErr = s.vision.Extract(ctx, image)
		}()
	}
	wg.Wait()

	if localErr != nil {
		s.logger.Warn("local extraction failed", "error", localErr)
		local = nil
	}
	if visionErr != nil {
		s.logger.Warn("vision extraction failed", "error", visionErr)
		metrics.VisionFailures.Inc()
		visionResult = nil
	}

	// Collaborator failure is never fatal: with both paths down the
	// reconciliation still yields an empty low-confidence result.
	result, decision := reconcile(visionResult, local)
	s.enrich(result, local)

	span.SetAttributes(
		attribute.String("extraction.method", string(result.Method)),
		attribute.String("extraction.confidence", string(result.Confidence)),
		attribute.Int("extraction.items", len(result.Items)),
	)
	metrics.ExtractionsTotal.WithLabelValues(string(result.Method), string(result.Confidence)).Inc()
	metrics.ExtractionDuration.Observe(s.now().Sub(started).Seconds())
	metrics.ItemsExtracted.Observe(float64(len(result.Items)))

	s.logger.Info("receipt extracted",
		"decision_id", decision.ID,
		"method", decision.Method,
		"reason", decision.Reason,
		"items", len(result.Items),
		"vision_items", decision.VisionItems,
		"local_items", decision.LocalItems,
		"fuzzy_overlap", decision.FuzzyOverlap,
		"confidence", result.Confidence,
	)

	return result, nil
}

// extractLocal is the offline path: preprocess, recognize, parse.
func (s *Service) extractLocal(ctx context.Context, image []byte) (*extraction.ExtractionResult, error) {
	ctx, span := s.tracer.Start(ctx, "extractLocal")
	defer span.End()

	prepared := imageproc.Preprocess(image)

	recognized, err := s.recognizer.Recognize(ctx, prepared)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Float64("ocr.confidence", recognized.Confidence))

	items := parser.Parse(recognized.Text)
	meta := parser.ExtractMetadata(recognized.Text)
	validation := parser.Validate(items, meta.DeclaredTotal)

	result := &extraction.ExtractionResult{
		Items:      items,
		Metadata:   meta,
		Method:     extraction.MethodLocal,
		RawText:    recognized.Text,
		Validation: validation,
	}
	result.Confidence = localConfidence(result)
	return result, nil
}

// localConfidence grades the local result: no items is a failed read,
// a declared total the items sum to within 1% is a verified one.
func localConfidence(result *extraction.ExtractionResult) extraction.Confidence {
	if len(result.Items) == 0 {
		return extraction.ConfidenceLow
	}
	if v := result.Validation; v != nil && v.PercentDiff != nil && v.PercentDiff.LessThan(onePercent) {
		return extraction.ConfidenceHigh
	}
	return extraction.ConfidenceMedium
}

// enrich fills the defaults and classifications the reconciled result
// still misses. The establishment name and category always come from
// the local raw text when the scan found one: the model rewrites
// merchant headers, and the classifier's keyword tables were built for
// the noisy all-caps header the scanner sees.
func (s *Service) enrich(result *extraction.ExtractionResult, local *extraction.ExtractionResult) {
	if result.Metadata.Date == nil {
		today := s.now().UTC().Truncate(24 * time.Hour)
		result.Metadata.Date = &today
	}

	name := ""
	if local != nil && local.Metadata.EstablishmentName != nil {
		name = *local.Metadata.EstablishmentName
		result.Metadata.EstablishmentName = local.Metadata.EstablishmentName
	} else if result.Metadata.EstablishmentName != nil {
		name = *result.Metadata.EstablishmentName
	}
	category := s.classifier.CategorizeEstablishment(name)
	result.Metadata.Category = &category

	for i := range result.Items {
		sub := s.classifier.Subcategorize(category.ID, result.Items[i].Description)
		result.Items[i].Subcategory = &sub
	}

	if result.Validation == nil && len(result.Items) > 0 {
		result.Validation = parser.Validate(result.Items, result.Metadata.DeclaredTotal)
	}
}
