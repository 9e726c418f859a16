package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/FACorreiaa/receipt-engine/internal/domain/categorization"
	"github.com/FACorreiaa/receipt-engine/internal/domain/extraction/ocr"
	"github.com/FACorreiaa/receipt-engine/internal/domain/extraction/service"
	"github.com/FACorreiaa/receipt-engine/internal/domain/extraction/vision"
	"github.com/FACorreiaa/receipt-engine/pkg/config"
)

// Dependencies holds all application dependencies
type Dependencies struct {
	Config *config.Config
	Logger *slog.Logger

	Recognizer ocr.Recognizer
	Vision     *vision.Gemini
	Classifier *categorization.Classifier

	ExtractionService *service.Service
}

// InitDependencies initializes all application dependencies. The
// vision path is only wired when an API key is configured.
func InitDependencies(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config:     cfg,
		Logger:     logger,
		Recognizer: ocr.NewTesseract(cfg.OCR.Language),
		Classifier: categorization.NewClassifier(),
	}

	var visionExtractor service.VisionExtractor
	if cfg.VisionEnabled() {
		gemini, err := vision.NewGemini(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil && !errors.Is(err, vision.ErrMissingAPIKey) {
			return nil, fmt.Errorf("failed to init vision client: %w", err)
		}
		if gemini != nil {
			deps.Vision = gemini
			visionExtractor = gemini
		}
	} else {
		logger.Info("no vision API key configured, running local-only")
	}

	deps.ExtractionService = service.NewService(deps.Recognizer, visionExtractor, deps.Classifier, logger)

	logger.Info("all dependencies initialized successfully")
	return deps, nil
}

// Cleanup closes all resources
func (d *Dependencies) Cleanup() {
	if d.Vision != nil {
		if err := d.Vision.Close(); err != nil {
			d.Logger.Warn("closing vision client", "error", err)
		}
	}
	d.Logger.Info("cleanup completed")
}
