package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/FACorreiaa/receipt-engine/internal/domain/extraction"
)

var (
	totalPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:VALOR\s+A\s+PAGAR|TOTAL|VL\.?\s*TOTAL)[:\s]*R?\$?\s*(\d+[,.]\d{2})`),
		regexp.MustCompile(`(?i)TOTAL[:\s]+(\d+[,.]\d{2})`),
	}

	cnpjRx = regexp.MustCompile(`(?i)CNPJ[:\s]*(\d{2}\.?\d{3}\.?\d{3}/?\d{4}-?\d{2})`)

	dateRx     = regexp.MustCompile(`(\d{2})[/\-](\d{2})[/\-](\d{2,4})`)
	timeOnlyRx = regexp.MustCompile(`(?i)HORA|HORARIO`)
	dateWordRx = regexp.MustCompile(`(?i)DATA`)

	// paymentPatterns are tried in priority order; a digital-wallet line
	// would otherwise be swallowed by the broader card patterns.
	paymentPatterns = []struct {
		rx     *regexp.Regexp
		method extraction.PaymentMethod
	}{
		{regexp.MustCompile(`(?i)CARTAO\s+(?:DE\s+)?CREDITO|CREDITO`), extraction.PaymentCredit},
		{regexp.MustCompile(`(?i)CARTAO\s+(?:DE\s+)?DEBITO|DEBITO`), extraction.PaymentDebit},
		{regexp.MustCompile(`(?i)CARTEIRA\s+DIGITAL`), extraction.PaymentOther},
		{regexp.MustCompile(`(?i)\bPIX\b`), extraction.PaymentPix},
		{regexp.MustCompile(`(?i)DINHEIRO`), extraction.PaymentCash},
	}

	// Expected item count, strongest evidence first.
	countFullTextRx = regexp.MustCompile(`(?i)(?:QTD\.?|QTDE\.?|QUANTIDADE)\s*TOTAL\s*(?:DE\s*)?(?:ITEN[S]?|PRODUTOS)[:\s]*0*(\d{1,3})`)
	countLineHintRx = regexp.MustCompile(`(?i)QTD|QTDE|ITEN`)
	countLineRxs    = []*regexp.Regexp{
		regexp.MustCompile(`(?i)QTD\.?\s*TOTAL\s*DE\s*ITEN[S]?\s+0*(\d{2,3})`),
		regexp.MustCompile(`(?i)QTDE?\.?\s+TOTAL\s+(?:DE\s+)?ITEN[S]?\s+0*(\d{2,3})`),
		regexp.MustCompile(`(?i)TOTAL\s+(?:DE\s+)?ITEN[S]?\s+0*(\d{2,3})`),
		regexp.MustCompile(`(?i)ITEN[S]?\s+0*(\d{2,3})\s*$`),
		regexp.MustCompile(`(?i)(\d{2,3})\s+ITEN[S]?`),
	}
	totalWordRx = regexp.MustCompile(`(?i)TOTAL`)
	smallNumRx  = regexp.MustCompile(`\b(\d{2,3})\b`)

	establishmentSkipRx = regexp.MustCompile(`(?i)CNPJ|CPF|CEP|INSCRI|DOCUMENTO`)
	numericLineRx       = regexp.MustCompile(`^[0-9\-/.\s]+$`)
)

// ExtractMetadata scans raw recognized text for receipt-level data:
// declared total, tax id, date, payment method, establishment name and
// the expected item count. It shares no cursor with Parse; each field
// is found independently.
func ExtractMetadata(text string) extraction.ReceiptMetadata {
	lines := nonEmptyLines(text)

	meta := extraction.ReceiptMetadata{
		EstablishmentName: EstablishmentName(text),
		ExpectedItems:     ExpectedItemCount(text),
	}

	for _, line := range lines {
		if meta.DeclaredTotal != nil {
			break
		}
		for _, rx := range totalPatterns {
			if m := rx.FindStringSubmatch(line); m != nil {
				if total, ok := parseDeclaredTotal(m[1]); ok {
					meta.DeclaredTotal = &total
				}
				break
			}
		}
	}

	for _, line := range lines {
		if m := cnpjRx.FindStringSubmatch(line); m != nil {
			cnpj := m[1]
			meta.CNPJ = &cnpj
			break
		}
	}

	meta.Date = extractDate(lines)

	for _, line := range lines {
		if meta.Payment != nil {
			break
		}
		for _, p := range paymentPatterns {
			if p.rx.MatchString(line) {
				meta.Payment = &extraction.PaymentInfo{Method: p.method, Details: line}
				break
			}
		}
	}

	return meta
}

// extractDate finds the first DD/MM/YY(YY) date, skipping lines that
// only reference a time. Two-digit years of 50 and above land in the
// 1900s, the rest in the 2000s.
func extractDate(lines []string) *time.Time {
	for _, line := range lines {
		if timeOnlyRx.MatchString(line) && !dateWordRx.MatchString(line) {
			continue
		}

		m := dateRx.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if len(m[3]) == 2 {
			if year >= 50 {
				year += 1900
			} else {
				year += 2000
			}
		}
		if month < 1 || month > 12 || day < 1 || day > 31 {
			continue
		}

		date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		return &date
	}
	return nil
}

// ExpectedItemCount finds the count of products the receipt claims to
// contain. Labelled patterns ("QTD. TOTAL DE ITENS 003") are strong
// evidence; the final fallback, a 2-3 digit number on a TOTAL line, is
// marked heuristic since it can as easily be a postal code fragment.
func ExpectedItemCount(text string) *extraction.ItemCount {
	if m := countFullTextRx.FindStringSubmatch(text); m != nil {
		if count, err := strconv.Atoi(m[1]); err == nil && count >= 1 {
			return &extraction.ItemCount{Value: count}
		}
	}

	lines := nonEmptyLines(text)
	for _, line := range lines {
		if !countLineHintRx.MatchString(line) {
			continue
		}
		for _, rx := range countLineRxs {
			m := rx.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			if count, err := strconv.Atoi(m[1]); err == nil && count >= 1 && count <= 999 {
				return &extraction.ItemCount{Value: count}
			}
		}
	}

	for _, line := range lines {
		if !totalWordRx.MatchString(line) {
			continue
		}
		var plausible []int
		for _, m := range smallNumRx.FindAllStringSubmatch(line, -1) {
			if n, err := strconv.Atoi(m[1]); err == nil && n >= 5 && n <= 200 {
				plausible = append(plausible, n)
			}
		}
		if len(plausible) > 0 {
			return &extraction.ItemCount{Value: plausible[len(plausible)-1], Heuristic: true}
		}
	}

	return nil
}

// EstablishmentName picks the merchant name from the receipt header:
// the first of the first five lines that carries at least three
// consecutive letters and is not a tax-id, address or numeric line.
func EstablishmentName(text string) *string {
	lines := strings.Split(text, "\n")
	limit := len(lines)
	if limit > 5 {
		limit = 5
	}

	for i := 0; i < limit; i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" || len(line) < 3 {
			continue
		}
		if establishmentSkipRx.MatchString(line) || numericLineRx.MatchString(line) {
			continue
		}
		if lettersRunRx.MatchString(line) {
			return &line
		}
	}
	return nil
}

func parseDeclaredTotal(s string) (decimal.Decimal, bool) {
	s = strings.Replace(s, ",", ".", 1)
	total, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return total, true
}
