package service

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/shopspring/decimal"

	"github.com/FACorreiaa/receipt-engine/internal/domain/extraction"
)

// reconcile decides the final result when two extraction paths ran. It
// is pure: it inspects the two results, never the collaborators.
//
// Evidence, strongest first: an item count printed on the receipt, a
// declared total the items sum to, and finally just the size of each
// item list.
func reconcile(vision, local *extraction.ExtractionResult) (*extraction.ExtractionResult, extraction.ReconciliationDecision) {
	decision := extraction.ReconciliationDecision{
		ID:            uuid.New(),
		VisionItems:   vision.ItemCountValue(),
		LocalItems:    local.ItemCountValue(),
		ExpectedItems: expectedItems(vision, local),
		FuzzyOverlap:  fuzzyOverlap(vision, local),
	}

	visionCount := decision.VisionItems
	localCount := decision.LocalItems

	if visionCount == 0 && localCount == 0 {
		decision.Method = extraction.MethodHybridFailed
		decision.Reason = "no items from either path"
		result := &extraction.ExtractionResult{
			Method:     extraction.MethodHybridFailed,
			Confidence: extraction.ConfidenceLow,
		}
		if local != nil {
			result.RawText = local.RawText
			result.Metadata = local.Metadata
		}
		return result, decision
	}

	// Only one path produced items.
	if visionCount == 0 {
		decision.Method = extraction.MethodHybridLocal
		decision.Reason = "vision path empty"
		return adopt(local, extraction.MethodHybridLocal, local.Confidence, local), decision
	}
	if localCount == 0 {
		decision.Method = extraction.MethodHybridVision
		decision.Reason = "local path empty"
		return adopt(vision, extraction.MethodHybridVision, vision.Confidence, local), decision
	}

	if expected := decision.ExpectedItems; expected != nil {
		// Vision hitting the printed item count exactly settles it.
		if visionCount == expected.Value {
			decision.Method = extraction.MethodHybridVision
			decision.Reason = fmt.Sprintf("vision matches expected count %d", expected.Value)
			return adopt(vision, extraction.MethodHybridVision, countedConfidence(expected), local), decision
		}

		if visionCount > expected.Value {
			// Vision over-extracted. A local list that hits the count
			// exactly is the better read; otherwise keep the full vision
			// list at its own confidence rather than dropping items.
			if localCount == expected.Value {
				decision.Method = extraction.MethodHybridLocal
				decision.Reason = fmt.Sprintf("local matches expected count %d", expected.Value)
				return adopt(local, extraction.MethodHybridLocal, countedConfidence(expected), local), decision
			}
			decision.Method = extraction.MethodHybridVision
			decision.Reason = fmt.Sprintf("vision exceeds expected count %d", expected.Value)
			return adopt(vision, extraction.MethodHybridVision, vision.Confidence, local), decision
		}

		// Vision is short of the count; combine the lists, vision first
		// since its descriptions are cleaner.
		merged, added := mergeItems(vision.Items, local.Items, expected.Value)
		decision.Method = extraction.MethodHybridMerged
		decision.MergedAdded = added
		decision.Reason = fmt.Sprintf("merged to %d of expected %d items", len(merged), expected.Value)

		confidence := extraction.ConfidenceMedium
		if len(merged) == expected.Value {
			confidence = countedConfidence(expected)
		}
		result := adopt(vision, extraction.MethodHybridMerged, confidence, local)
		result.Items = merged
		return result, decision
	}

	// No printed count: the longer list wins; on a tie vision wins for
	// its cleaner descriptions.
	if visionCount >= localCount {
		decision.Method = extraction.MethodHybridVision
		decision.Reason = fmt.Sprintf("vision found more items (%d vs %d)", visionCount, localCount)
		return adopt(vision, extraction.MethodHybridVision, totalBackedConfidence(vision, local), local), decision
	}

	decision.Method = extraction.MethodHybridLocal
	decision.Reason = fmt.Sprintf("local found more items (%d vs %d)", localCount, visionCount)
	return adopt(local, extraction.MethodHybridLocal, local.Confidence, local), decision
}

// adopt copies the winning result under a new method and confidence,
// backfilling metadata gaps from the local scan, which sees labels the
// vision model tends to skip.
func adopt(winner *extraction.ExtractionResult, method extraction.Method, confidence extraction.Confidence, local *extraction.ExtractionResult) *extraction.ExtractionResult {
	result := &extraction.ExtractionResult{
		Items:      winner.Items,
		Metadata:   winner.Metadata,
		Method:     method,
		Confidence: confidence,
	}
	if local != nil {
		result.RawText = local.RawText
		fillMetadataGaps(&result.Metadata, local.Metadata)
	}
	return result
}

func fillMetadataGaps(dst *extraction.ReceiptMetadata, src extraction.ReceiptMetadata) {
	if dst.EstablishmentName == nil {
		dst.EstablishmentName = src.EstablishmentName
	}
	if dst.CNPJ == nil {
		dst.CNPJ = src.CNPJ
	}
	if dst.Date == nil {
		dst.Date = src.Date
	}
	if dst.DeclaredTotal == nil {
		dst.DeclaredTotal = src.DeclaredTotal
	}
	if dst.ExpectedItems == nil {
		dst.ExpectedItems = src.ExpectedItems
	}
	if dst.Payment == nil {
		dst.Payment = src.Payment
	}
}

// expectedItems prefers the printed count found by the local scan; the
// vision model's count is a fallback.
func expectedItems(vision, local *extraction.ExtractionResult) *extraction.ItemCount {
	if local != nil && local.Metadata.ExpectedItems != nil {
		return local.Metadata.ExpectedItems
	}
	if vision != nil && vision.Metadata.ExpectedItems != nil {
		return vision.Metadata.ExpectedItems
	}
	return nil
}

// countedConfidence is the confidence earned by matching the expected
// item count. A heuristically inferred count is too weak for "high".
func countedConfidence(expected *extraction.ItemCount) extraction.Confidence {
	if expected.Heuristic {
		return extraction.ConfidenceMedium
	}
	return extraction.ConfidenceHigh
}

// totalBackedConfidence grades an adopted vision result by how well
// the two paths agree on the declared receipt total: two independent
// reads of the same printed number within 1% is strong corroboration.
// With no local total to compare against, the vision result keeps its
// own confidence.
func totalBackedConfidence(vision, local *extraction.ExtractionResult) extraction.Confidence {
	baseline := vision.Confidence
	if local == nil || vision.Metadata.DeclaredTotal == nil || local.Metadata.DeclaredTotal == nil {
		return baseline
	}

	visionTotal := *vision.Metadata.DeclaredTotal
	localTotal := *local.Metadata.DeclaredTotal
	if localTotal.IsZero() {
		return baseline
	}

	pct := visionTotal.Sub(localTotal).Abs().Div(localTotal).Mul(decimal.NewFromInt(100))
	switch {
	case pct.LessThan(decimal.NewFromInt(1)):
		return extraction.ConfidenceHigh
	case pct.LessThan(decimal.NewFromInt(5)):
		return extraction.ConfidenceMedium
	default:
		return baseline
	}
}

// mergeItems combines the two item lists, vision first, adding local
// items whose description is not already present until the expected
// count is reached. Returns the merged list and how many local items
// were added.
func mergeItems(visionItems, localItems []extraction.CandidateItem, expected int) ([]extraction.CandidateItem, int) {
	merged := make([]extraction.CandidateItem, 0, expected)
	seen := make(map[string]struct{})

	for _, item := range visionItems {
		if len(merged) >= expected {
			break
		}
		key := normalizeDescription(item.Description)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		merged = append(merged, item)
	}

	added := 0
	for _, item := range localItems {
		if len(merged) >= expected {
			break
		}
		key := normalizeDescription(item.Description)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		merged = append(merged, item)
		added++
	}

	return merged, added
}

func normalizeDescription(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// fuzzyOverlap counts local items whose description loosely matches a
// vision item. Diagnostic only; the merge itself uses exact normalized
// matching so a near-duplicate is never silently dropped.
func fuzzyOverlap(vision, local *extraction.ExtractionResult) int {
	if vision == nil || local == nil {
		return 0
	}

	overlap := 0
	for _, l := range local.Items {
		for _, v := range vision.Items {
			if fuzzy.MatchNormalizedFold(normalizeDescription(l.Description), normalizeDescription(v.Description)) ||
				fuzzy.MatchNormalizedFold(normalizeDescription(v.Description), normalizeDescription(l.Description)) {
				overlap++
				break
			}
		}
	}
	return overlap
}
