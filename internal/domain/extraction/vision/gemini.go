// Package vision extracts receipt data with a multimodal model. It
// sends the original (not preprocessed) photo: the model handles skew
// and lighting better than a hard-thresholded black-and-white scan.
package vision

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/FACorreiaa/receipt-engine/internal/domain/extraction"
)

// ErrMissingAPIKey is returned when vision extraction is requested but
// no API key was configured. Callers treat it as "vision unavailable"
// and fall back to the local path.
var ErrMissingAPIKey = errors.New("vision: missing API key")

const defaultModel = "gemini-1.5-flash"

const extractionPrompt = `Analise esta foto de cupom fiscal brasileiro e extraia os dados em JSON.

Retorne APENAS um objeto JSON valido, sem texto adicional, no formato:
{
  "items": [
    {"description": "NOME DO PRODUTO", "amount": 9.90, "quantity": 1, "unit_price": 9.90}
  ],
  "metadata": {
    "establishment_name": "NOME DO ESTABELECIMENTO",
    "cnpj": "12.345.678/0001-90",
    "date": "2023-08-15",
    "total": 45.67,
    "payment_method": "debit",
    "item_count": 3
  }
}

Regras:
- "items" contem SOMENTE produtos comprados. NUNCA inclua linhas de
  total, subtotal, forma de pagamento, troco, impostos ou cabecalhos.
- "amount" e o valor total da linha em reais, como numero.
- "payment_method" e um de: "credit", "debit", "pix", "cash", "other".
- "date" no formato AAAA-MM-DD.
- Campos ausentes no cupom devem ser null.`

// Gemini is the vision extraction collaborator.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini builds the collaborator. The API key is required; the model
// name defaults to a fast multimodal model when empty.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if model == "" {
		model = defaultModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating vision client: %w", err)
	}
	return &Gemini{client: client, model: model}, nil
}

// Close releases the underlying client.
func (g *Gemini) Close() error {
	return g.client.Close()
}

// Extract sends the receipt photo to the model and converts its JSON
// answer into an extraction result. The temperature is kept near zero;
// receipt reading is transcription, not generation.
func (g *Gemini) Extract(ctx context.Context, image []byte) (*extraction.ExtractionResult, error) {
	model := g.client.GenerativeModel(g.model)
	model.SetTemperature(0.1)

	resp, err := model.GenerateContent(ctx,
		genai.ImageData("png", image),
		genai.Text(extractionPrompt),
	)
	if err != nil {
		return nil, fmt.Errorf("generating content: %w", err)
	}

	raw := responseText(resp)
	if raw == "" {
		return nil, errors.New("vision: empty model response")
	}

	return parseResponse(raw)
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var out string
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			out += string(text)
		}
	}
	return out
}
