package vision

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cloudflare/ahocorasick"
	"github.com/shopspring/decimal"

	"github.com/FACorreiaa/receipt-engine/internal/domain/extraction"
)

// Amount bounds mirror the local parser; a model hallucinating a
// barcode as a price fails the same test a misread line would.
var (
	minAmount = decimal.NewFromFloat(0.01)
	maxAmount = decimal.NewFromInt(50000)
)

// invalidKeywords screen item descriptions the model should never have
// returned: payment lines, totals and document labels that leak into
// the item list on noisy photos.
var invalidKeywords = []string{
	"CARTEIRA DIGITAL", "DEBITO", "CREDITO", "PIX", "DINHEIRO",
	"PAGAMENTO", "TOTAL", "SUBTOTAL", "VALOR A PAGAR",
	"FORMA DE PAGAMENTO", "CNPJ", "CPF", "EMITENTE", "CONSUMIDOR",
	"ENDERECO", "DATA", "HORA", "NFC-e", "SAT", "SERIE",
	"PROTOCOLO", "VENDEDOR", "OPERADOR", "CAIXA",
}

var invalidMatcher = func() *ahocorasick.Matcher {
	patterns := make([][]byte, len(invalidKeywords))
	for i, kw := range invalidKeywords {
		patterns[i] = []byte(strings.ToUpper(kw))
	}
	return ahocorasick.NewMatcher(patterns)
}()

type visionItem struct {
	Description string   `json:"description"`
	Amount      *float64 `json:"amount"`
	Total       *float64 `json:"total"`
	Quantity    *float64 `json:"quantity"`
	UnitPrice   *float64 `json:"unit_price"`
}

type visionMetadata struct {
	EstablishmentName *string  `json:"establishment_name"`
	CNPJ              *string  `json:"cnpj"`
	Date              *string  `json:"date"`
	Total             *float64 `json:"total"`
	PaymentMethod     *string  `json:"payment_method"`
	ItemCount         *int     `json:"item_count"`
}

type visionResponse struct {
	Items    []visionItem   `json:"items"`
	Metadata visionMetadata `json:"metadata"`
}

// parseResponse decodes the model's answer and applies the same item
// sanity rules the local path uses.
func parseResponse(raw string) (*extraction.ExtractionResult, error) {
	payload, err := extractJSON(raw)
	if err != nil {
		return nil, err
	}

	var resp visionResponse
	if err := json.Unmarshal([]byte(payload), &resp); err != nil {
		return nil, fmt.Errorf("decoding vision response: %w", err)
	}

	result := &extraction.ExtractionResult{
		Method:   extraction.MethodVision,
		Metadata: convertMetadata(resp.Metadata),
	}

	for _, item := range resp.Items {
		converted, ok := convertItem(item)
		if !ok {
			continue
		}
		result.Items = append(result.Items, converted)
	}

	result.Confidence = scoreConfidence(result)
	return result, nil
}

// extractJSON isolates the JSON object from a chatty answer: markdown
// fences are stripped and everything outside the outermost braces is
// discarded.
func extractJSON(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return "", fmt.Errorf("no JSON object in vision response")
	}
	return raw[start : end+1], nil
}

func convertItem(item visionItem) (extraction.CandidateItem, bool) {
	description := strings.TrimSpace(item.Description)
	if len(description) < 3 {
		return extraction.CandidateItem{}, false
	}
	if len(invalidMatcher.Match([]byte(strings.ToUpper(description)))) > 0 {
		return extraction.CandidateItem{}, false
	}

	// Some model runs label the line value "total" instead of "amount".
	value := item.Amount
	if value == nil {
		value = item.Total
	}
	if value == nil {
		return extraction.CandidateItem{}, false
	}

	amount := decimal.NewFromFloat(*value)
	if amount.LessThanOrEqual(minAmount) || amount.GreaterThanOrEqual(maxAmount) {
		return extraction.CandidateItem{}, false
	}

	converted := extraction.CandidateItem{
		Description: description,
		Amount:      amount,
		Quantity:    decimal.NewFromInt(1),
	}
	if item.Quantity != nil && *item.Quantity > 0 {
		converted.Quantity = decimal.NewFromFloat(*item.Quantity)
	}
	if item.UnitPrice != nil && *item.UnitPrice > 0 {
		unit := decimal.NewFromFloat(*item.UnitPrice)
		converted.UnitPrice = &unit
	}
	return converted, true
}

func convertMetadata(meta visionMetadata) extraction.ReceiptMetadata {
	out := extraction.ReceiptMetadata{
		EstablishmentName: meta.EstablishmentName,
		CNPJ:              meta.CNPJ,
	}

	if meta.Total != nil && *meta.Total > 0 {
		total := decimal.NewFromFloat(*meta.Total)
		out.DeclaredTotal = &total
	}
	if meta.Date != nil {
		if date, err := time.Parse("2006-01-02", *meta.Date); err == nil {
			out.Date = &date
		}
	}
	if meta.ItemCount != nil && *meta.ItemCount >= 1 && *meta.ItemCount <= 999 {
		out.ExpectedItems = &extraction.ItemCount{Value: *meta.ItemCount}
	}
	if meta.PaymentMethod != nil {
		if method, ok := parsePaymentMethod(*meta.PaymentMethod); ok {
			out.Payment = &extraction.PaymentInfo{Method: method}
		}
	}
	return out
}

func parsePaymentMethod(s string) (extraction.PaymentMethod, bool) {
	switch extraction.PaymentMethod(strings.ToLower(strings.TrimSpace(s))) {
	case extraction.PaymentCredit:
		return extraction.PaymentCredit, true
	case extraction.PaymentDebit:
		return extraction.PaymentDebit, true
	case extraction.PaymentPix:
		return extraction.PaymentPix, true
	case extraction.PaymentCash:
		return extraction.PaymentCash, true
	case extraction.PaymentOther:
		return extraction.PaymentOther, true
	}
	return "", false
}

// scoreConfidence rates the vision result on its own: no items is a
// failed read, items whose sum matches the declared total within 1% is
// a verified one.
func scoreConfidence(result *extraction.ExtractionResult) extraction.Confidence {
	if len(result.Items) == 0 {
		return extraction.ConfidenceLow
	}

	declared := result.Metadata.DeclaredTotal
	if declared != nil && !declared.IsZero() {
		sum := decimal.Zero
		for _, item := range result.Items {
			sum = sum.Add(item.Amount)
		}
		pct := sum.Sub(*declared).Abs().Div(*declared).Mul(decimal.NewFromInt(100))
		if pct.LessThan(decimal.NewFromInt(1)) {
			return extraction.ConfidenceHigh
		}
	}
	return extraction.ConfidenceMedium
}
