// Package parser turns raw recognized receipt text into candidate line
// items and receipt-level metadata. It is pure: the same text always
// yields the same items, and nothing here touches collaborators.
package parser

import (
	"regexp"
	"strings"

	"github.com/cloudflare/ahocorasick"
	"github.com/shopspring/decimal"

	"github.com/FACorreiaa/receipt-engine/internal/domain/extraction"
)

// Amounts outside this range are never accepted as line items; they
// are almost always misread totals, barcodes or tax figures.
var (
	minAmount = decimal.NewFromFloat(0.01)
	maxAmount = decimal.NewFromInt(50000)
)

// blacklist marks lines that can never be products: payment methods,
// document labels, table headers and totals.
var blacklist = []string{
	"CARTEIRA DIGITAL", "FORMA DE PAGAMENTO", "FORMA PAGAMENTO",
	"CARTAO", "DEBITO", "CREDITO", "PIX", "DINHEIRO", "TROCO",
	"CNPJ", "CPF", "EMITENTE", "CONSUMIDOR", "ENDERECO", "TELEFONE",
	"QTD TOTAL", "QTDE TOTAL", "TOTAL DE ITENS", "QUANTIDADE TOTAL",
	"VALOR A PAGAR", "SUBTOTAL", "DESCONTO", "ACRESCIMO",
	"NFC-e", "SAT", "SERIE", "PROTOCOLO", "CHAVE", "DANFE",
	"DATA", "HORA", "DOCUMENTO", "TRIBUTOS", "ARREDONDAMENTO",
	"VENDEDOR", "OPERADOR", "CAIXA", "ESTABELECIMENTO",
	"CODIGO", "DESCRICAO", "QTDE", "VL.UNIT", "VL.TOTAL",
}

// blacklistMatcher screens every line in a single pass instead of one
// substring scan per keyword.
var blacklistMatcher = func() *ahocorasick.Matcher {
	patterns := make([][]byte, len(blacklist))
	for i, kw := range blacklist {
		patterns[i] = []byte(strings.ToUpper(kw))
	}
	return ahocorasick.NewMatcher(patterns)
}()

var (
	digitsOnlyRx   = regexp.MustCompile(`^\d+$`)
	lettersRunRx   = regexp.MustCompile(`[A-Za-z]{3,}`)
	hasLetterRx    = regexp.MustCompile(`[A-Za-z]`)
	labelPrefixRx  = regexp.MustCompile(`(?i)^(TOTAL|SUBTOTAL|PAGAMENTO|FORMA)`)
	priceLineRx    = regexp.MustCompile(`(?i)\d+\s*(?:UN|PC|KG|L|ML|G|PCT)\s+[\d,.]+\s+[\d,.]+`)
	trailingValRx  = regexp.MustCompile(`(\d+[,.]\d{2})\s*$`)
	multiplierRx   = regexp.MustCompile(`^(.+?)\s+\d+\s*(?:UN|PC|KG|L|ML|G)?\s*[xX×]\s*([\d,.]+)\s+([\d,.]+)\s*$`)
	twoColumnRx    = regexp.MustCompile(`^(.+?)\s{2,}(\d+[,.]\d{2})\s*$`)
	codedLineRx    = regexp.MustCompile(`^\d{1,4}\s+(.+?)\s+(\d+[,.]\d{2})\s*$`)
	leadingNumRx   = regexp.MustCompile(`^\d+\s+`)
	barcode13Rx    = regexp.MustCompile(`^\d{13}\s+`)
	barcode12Rx    = regexp.MustCompile(`^\d{12}\s+`)
	barcode8Rx     = regexp.MustCompile(`^\d{8}\s+`)
)

// strategy is one line-shape recognizer. apply reports the extracted
// item and how many lines it consumed (2 when the price sits on the
// following line, 1 otherwise).
type strategy struct {
	name  string
	apply func(line, next string) (extraction.CandidateItem, int, bool)
}

// strategies are tried in priority order per line; the first match
// wins and advances the cursor by its consumed count.
var strategies = []strategy{
	{name: "multi-line-product", apply: matchMultiLineProduct},
	{name: "single-line-multiplier", apply: matchSingleLineMultiplier},
	{name: "simple-two-column", apply: matchSimpleTwoColumn},
	{name: "coded-line", apply: matchCodedLine},
}

// Parse extracts candidate items from raw recognized text. Output
// order follows the text; duplicates (same description and amount,
// case-insensitive) are collapsed to the first occurrence.
func Parse(text string) []extraction.CandidateItem {
	lines := nonEmptyLines(text)

	var items []extraction.CandidateItem
	i := 0
	for i < len(lines) {
		line := lines[i]
		next := ""
		if i+1 < len(lines) {
			next = lines[i+1]
		}

		if rejectLine(line) {
			i++
			continue
		}

		consumed := 1
		for _, s := range strategies {
			if item, n, ok := s.apply(line, next); ok {
				items = append(items, item)
				consumed = n
				break
			}
		}
		i += consumed
	}

	return dedupe(items)
}

func nonEmptyLines(text string) []string {
	var lines []string
	for _, l := range strings.Split(text, "\n") {
		l = strings.TrimSpace(l)
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

func rejectLine(line string) bool {
	if len(line) < 3 || digitsOnlyRx.MatchString(line) {
		return true
	}
	return len(blacklistMatcher.Match([]byte(strings.ToUpper(line)))) > 0
}

// matchMultiLineProduct handles the common NFC-e layout where the
// product name (often behind a barcode) sits on one line and the
// quantity/unit/price/total row on the next:
//
//	7891193010012 BISN SEVEN BOYS 300G TRAD
//	                  1UN   5,49        5,49
func matchMultiLineProduct(line, next string) (extraction.CandidateItem, int, bool) {
	if next == "" || !lettersRunRx.MatchString(line) || labelPrefixRx.MatchString(line) {
		return extraction.CandidateItem{}, 0, false
	}
	if !priceLineRx.MatchString(next) {
		return extraction.CandidateItem{}, 0, false
	}

	description := stripLeadingCodes(line)
	valueMatch := trailingValRx.FindStringSubmatch(next)
	if valueMatch == nil || len(description) <= 3 || !lettersRunRx.MatchString(description) {
		return extraction.CandidateItem{}, 0, false
	}

	amount, ok := parseAmount(valueMatch[1])
	if !ok {
		return extraction.CandidateItem{}, 0, false
	}
	return newItem(description, amount), 2, true
}

// matchSingleLineMultiplier handles "PRODUCT NAME 1UN x 10,50 10,50";
// the trailing number is the line total, never the unit price.
func matchSingleLineMultiplier(line, _ string) (extraction.CandidateItem, int, bool) {
	m := multiplierRx.FindStringSubmatch(line)
	if m == nil {
		return extraction.CandidateItem{}, 0, false
	}

	description := stripLeadingCodes(m[1])
	amount, ok := parseAmount(m[3])
	if !ok || len(description) <= 3 {
		return extraction.CandidateItem{}, 0, false
	}
	return newItem(description, amount), 1, true
}

// matchSimpleTwoColumn handles "PRODUCT NAME    49,90". The column gap
// must be at least two spaces and the description must contain a
// letter, otherwise stray number pairs would qualify.
func matchSimpleTwoColumn(line, _ string) (extraction.CandidateItem, int, bool) {
	m := twoColumnRx.FindStringSubmatch(line)
	if m == nil {
		return extraction.CandidateItem{}, 0, false
	}

	description := stripLeadingCodes(m[1])
	amount, ok := parseAmount(m[2])
	if !ok || len(description) <= 3 || !hasLetterRx.MatchString(description) {
		return extraction.CandidateItem{}, 0, false
	}
	return newItem(description, amount), 1, true
}

// matchCodedLine handles "001 PRODUTO NOME 10,50" where a short
// numeric code prefixes the description.
func matchCodedLine(line, _ string) (extraction.CandidateItem, int, bool) {
	m := codedLineRx.FindStringSubmatch(line)
	if m == nil {
		return extraction.CandidateItem{}, 0, false
	}

	description := strings.TrimSpace(m[1])
	amount, ok := parseAmount(m[2])
	if !ok || len(description) <= 3 || !hasLetterRx.MatchString(description) {
		return extraction.CandidateItem{}, 0, false
	}
	return newItem(description, amount), 1, true
}

// stripLeadingCodes removes item numbers and EAN-8/12/13 barcodes from
// the start of a description.
func stripLeadingCodes(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimSpace(leadingNumRx.ReplaceAllString(s, ""))
	for _, rx := range []*regexp.Regexp{barcode13Rx, barcode12Rx, barcode8Rx} {
		s = strings.TrimSpace(rx.ReplaceAllString(s, ""))
	}
	return s
}

// parseAmount converts a Brazilian-format monetary string ("29,90")
// into a decimal and enforces the plausible amount range.
func parseAmount(s string) (decimal.Decimal, bool) {
	s = strings.Replace(s, ",", ".", 1)
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	if amount.LessThanOrEqual(minAmount) || amount.GreaterThanOrEqual(maxAmount) {
		return decimal.Decimal{}, false
	}
	return amount, true
}

func newItem(description string, amount decimal.Decimal) extraction.CandidateItem {
	return extraction.CandidateItem{
		Description: description,
		Amount:      amount,
		Quantity:    decimal.NewFromInt(1),
	}
}

// dedupe collapses repeated (description, amount) pairs, preserving
// first-occurrence order. Descriptions compare case-insensitively and
// amounts at two decimal places.
func dedupe(items []extraction.CandidateItem) []extraction.CandidateItem {
	seen := make(map[string]struct{}, len(items))
	out := items[:0]
	for _, item := range items {
		key := strings.ToLower(item.Description) + "_" + item.Amount.StringFixed(2)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
	}
	return out
}

// SumItems totals the extracted amounts for cross-validation against
// the declared receipt total.
func SumItems(items []extraction.CandidateItem) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(item.Amount)
	}
	return sum
}

// Validate compares the sum of extracted items with the total printed
// on the receipt, when one was found.
func Validate(items []extraction.CandidateItem, declared *decimal.Decimal) *extraction.ValidationSummary {
	summary := &extraction.ValidationSummary{
		ItemsSum:      SumItems(items),
		DeclaredTotal: declared,
	}
	if declared == nil || declared.IsZero() {
		return summary
	}

	diff := summary.ItemsSum.Sub(*declared).Abs()
	pct := diff.Div(*declared).Mul(decimal.NewFromInt(100))
	summary.Difference = &diff
	summary.PercentDiff = &pct
	return summary
}
