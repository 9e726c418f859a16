package parser

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/receipt-engine/internal/domain/extraction"
)

const sampleReceipt = `SUPERMERCADO GUANABARA LTDA
CNPJ: 12.345.678/0001-90
RUA DAS LARANJEIRAS 123
CUPOM FISCAL ELETRONICO
COCA COLA 2L          9,90
ARROZ TIO JOAO 5KG   25,90
QTD TOTAL DE ITENS 003
VALOR A PAGAR R$ 45,67
CARTAO DE DEBITO
DATA 15/08/23 19:22:01`

func TestExtractMetadata(t *testing.T) {
	meta := ExtractMetadata(sampleReceipt)

	t.Run("establishment name from header", func(t *testing.T) {
		require.NotNil(t, meta.EstablishmentName)
		assert.Equal(t, "SUPERMERCADO GUANABARA LTDA", *meta.EstablishmentName)
	})

	t.Run("cnpj", func(t *testing.T) {
		require.NotNil(t, meta.CNPJ)
		assert.Equal(t, "12.345.678/0001-90", *meta.CNPJ)
	})

	t.Run("declared total", func(t *testing.T) {
		require.NotNil(t, meta.DeclaredTotal)
		assert.True(t, meta.DeclaredTotal.Equal(decimal.RequireFromString("45.67")))
	})

	t.Run("expected item count with explicit label", func(t *testing.T) {
		require.NotNil(t, meta.ExpectedItems)
		assert.Equal(t, 3, meta.ExpectedItems.Value)
		assert.False(t, meta.ExpectedItems.Heuristic)
	})

	t.Run("two digit year lands in the 2000s", func(t *testing.T) {
		require.NotNil(t, meta.Date)
		assert.Equal(t, time.Date(2023, time.August, 15, 0, 0, 0, 0, time.UTC), *meta.Date)
	})

	t.Run("payment method", func(t *testing.T) {
		require.NotNil(t, meta.Payment)
		assert.Equal(t, extraction.PaymentDebit, meta.Payment.Method)
		assert.Equal(t, "CARTAO DE DEBITO", meta.Payment.Details)
	})
}

func TestExtractDate(t *testing.T) {
	t.Run("two digit year of fifty and above lands in the 1900s", func(t *testing.T) {
		date := extractDate([]string{"EMISSAO 01/02/50"})
		require.NotNil(t, date)
		assert.Equal(t, 1950, date.Year())
	})

	t.Run("four digit year kept as is", func(t *testing.T) {
		date := extractDate([]string{"EMISSAO 31/12/2024"})
		require.NotNil(t, date)
		assert.Equal(t, time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC), *date)
	})

	t.Run("time only lines are skipped", func(t *testing.T) {
		assert.Nil(t, extractDate([]string{"HORARIO 15/08/23"}))
	})

	t.Run("line with both date and time labels is used", func(t *testing.T) {
		date := extractDate([]string{"DATA 15/08/23 HORA 19:22"})
		require.NotNil(t, date)
		assert.Equal(t, 2023, date.Year())
	})

	t.Run("implausible day and month are skipped", func(t *testing.T) {
		assert.Nil(t, extractDate([]string{"COD 99/99/2023"}))
	})
}

func TestExpectedItemCount(t *testing.T) {
	t.Run("labelled count is authoritative", func(t *testing.T) {
		count := ExpectedItemCount("QTDE. TOTAL DE ITENS 034")
		require.NotNil(t, count)
		assert.Equal(t, 34, count.Value)
		assert.False(t, count.Heuristic)
	})

	t.Run("items suffix variant", func(t *testing.T) {
		count := ExpectedItemCount("BLA\nITENS 012")
		require.NotNil(t, count)
		assert.Equal(t, 12, count.Value)
		assert.False(t, count.Heuristic)
	})

	t.Run("number near total is heuristic only", func(t *testing.T) {
		count := ExpectedItemCount("TOTAL GERAL 138")
		require.NotNil(t, count)
		assert.Equal(t, 138, count.Value)
		assert.True(t, count.Heuristic)
	})

	t.Run("numbers outside the plausible range are ignored", func(t *testing.T) {
		assert.Nil(t, ExpectedItemCount("TOTAL 2023"))
	})

	t.Run("absent count", func(t *testing.T) {
		assert.Nil(t, ExpectedItemCount("APENAS PRODUTOS AQUI"))
	})
}

func TestEstablishmentName(t *testing.T) {
	t.Run("skips document and numeric header lines", func(t *testing.T) {
		text := strings.Join([]string{
			"12.345.678/0001-90",
			"CNPJ 12.345.678/0001-90",
			"PADARIA DO ZE",
		}, "\n")
		name := EstablishmentName(text)
		require.NotNil(t, name)
		assert.Equal(t, "PADARIA DO ZE", *name)
	})

	t.Run("only the first five lines are considered", func(t *testing.T) {
		text := "1\n2\n3\n4\n5\nMERCADO TARDE DEMAIS"
		assert.Nil(t, EstablishmentName(text))
	})

	t.Run("empty text", func(t *testing.T) {
		assert.Nil(t, EstablishmentName(""))
	})
}
