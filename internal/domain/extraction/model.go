// Package extraction defines the shared model for receipt extraction:
// candidate items, receipt metadata and the result envelope produced by
// each extraction path and by the reconciliation step.
package extraction

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/FACorreiaa/receipt-engine/internal/domain/categorization"
)

// Confidence summarizes how much a result should be trusted.
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// Method is the provenance tag of an extraction result.
type Method string

const (
	// Path-level methods
	MethodLocal  Method = "local"
	MethodVision Method = "vision"

	// Final methods after reconciliation
	MethodHybridVision Method = "hybrid-vision"
	MethodHybridMerged Method = "hybrid-merged"
	MethodHybridLocal  Method = "hybrid-local"
	MethodHybridFailed Method = "hybrid-failed"
)

// PaymentMethod is the payment type printed on the receipt.
type PaymentMethod string

const (
	PaymentCredit PaymentMethod = "credit"
	PaymentDebit  PaymentMethod = "debit"
	PaymentPix    PaymentMethod = "pix"
	PaymentCash   PaymentMethod = "cash"
	PaymentOther  PaymentMethod = "other"
)

// PaymentInfo carries the detected payment method plus the raw line it
// was detected on, for display purposes.
type PaymentInfo struct {
	Method  PaymentMethod
	Details string
}

// ItemCount is the number of products the receipt itself claims to
// contain. Heuristic is true when the count was inferred from a loose
// pattern (a 2-3 digit number near the word TOTAL) rather than an
// explicit "total items" label; heuristic counts are weaker evidence
// and never justify a "high" confidence on their own.
type ItemCount struct {
	Value     int
	Heuristic bool
}

// CandidateItem is one parsed or inferred receipt line item. Amounts
// are always strictly positive and below 50000; quantity defaults to 1.
type CandidateItem struct {
	Description string
	Amount      decimal.Decimal
	Quantity    decimal.Decimal
	UnitPrice   *decimal.Decimal // nil when the source did not report one

	// Filled in after reconciliation by the classifier.
	Subcategory *categorization.Subcategory
}

// ReceiptMetadata is the receipt-level data scanned from raw text.
// Fields are set additively: once set they are only replaced by an
// explicit override (date defaulting, category backfill).
type ReceiptMetadata struct {
	EstablishmentName *string
	CNPJ              *string
	Date              *time.Time
	DeclaredTotal     *decimal.Decimal
	ExpectedItems     *ItemCount
	Payment           *PaymentInfo
	Category          *categorization.Category
}

// ValidationSummary compares the sum of extracted items against the
// total declared on the receipt.
type ValidationSummary struct {
	ItemsSum      decimal.Decimal
	DeclaredTotal *decimal.Decimal
	Difference    *decimal.Decimal
	PercentDiff   *decimal.Decimal
}

// ExtractionResult is the unit returned by each extraction path and by
// the reconciliation step itself.
type ExtractionResult struct {
	Items      []CandidateItem
	Metadata   ReceiptMetadata
	Confidence Confidence
	Method     Method

	// RawText is the locally recognized text; kept on failed results so
	// the caller can present corrective guidance.
	RawText string

	Validation *ValidationSummary
}

// ItemCountValue is a nil-safe accessor for diagnostics.
func (r *ExtractionResult) ItemCountValue() int {
	if r == nil {
		return 0
	}
	return len(r.Items)
}

// ReconciliationDecision records which path won and why. It is
// diagnostic output only; correctness never depends on it.
type ReconciliationDecision struct {
	ID            uuid.UUID
	Method        Method
	Reason        string
	VisionItems   int
	LocalItems    int
	ExpectedItems *ItemCount
	MergedAdded   int

	// FuzzyOverlap counts local items whose description loosely matches
	// a vision item description. Informational only.
	FuzzyOverlap int
}
