package vision

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/receipt-engine/internal/domain/extraction"
)

func TestParseResponse(t *testing.T) {
	t.Run("markdown fenced answer", func(t *testing.T) {
		raw := "```json\n" + `{
			"items": [
				{"description": "COCA COLA 2L", "amount": 9.90, "quantity": 1, "unit_price": 9.90},
				{"description": "ARROZ TIO JOAO 5KG", "amount": 25.90}
			],
			"metadata": {
				"establishment_name": "SUPERMERCADO GUANABARA",
				"cnpj": "12.345.678/0001-90",
				"date": "2023-08-15",
				"total": 35.80,
				"payment_method": "debit",
				"item_count": 2
			}
		}` + "\n```"

		result, err := parseResponse(raw)
		require.NoError(t, err)
		require.Len(t, result.Items, 2)

		assert.Equal(t, extraction.MethodVision, result.Method)
		assert.Equal(t, "COCA COLA 2L", result.Items[0].Description)
		assert.True(t, result.Items[0].Amount.Equal(decimal.RequireFromString("9.90")))
		require.NotNil(t, result.Items[0].UnitPrice)
		assert.True(t, result.Items[0].UnitPrice.Equal(decimal.RequireFromString("9.90")))

		require.NotNil(t, result.Metadata.EstablishmentName)
		assert.Equal(t, "SUPERMERCADO GUANABARA", *result.Metadata.EstablishmentName)
		require.NotNil(t, result.Metadata.Date)
		assert.Equal(t, time.Date(2023, time.August, 15, 0, 0, 0, 0, time.UTC), *result.Metadata.Date)
		require.NotNil(t, result.Metadata.ExpectedItems)
		assert.Equal(t, 2, result.Metadata.ExpectedItems.Value)
		assert.False(t, result.Metadata.ExpectedItems.Heuristic)
		require.NotNil(t, result.Metadata.Payment)
		assert.Equal(t, extraction.PaymentDebit, result.Metadata.Payment.Method)

		// Items sum to the declared total, so the read is verified.
		assert.Equal(t, extraction.ConfidenceHigh, result.Confidence)
	})

	t.Run("chatty prose around the object", func(t *testing.T) {
		raw := `Aqui esta o resultado: {"items":[{"description":"LEITE ITALAC 1L","amount":4.99}],"metadata":{}} Espero ter ajudado.`

		result, err := parseResponse(raw)
		require.NoError(t, err)
		require.Len(t, result.Items, 1)
		assert.Equal(t, extraction.ConfidenceMedium, result.Confidence)
	})

	t.Run("total field used when amount is missing", func(t *testing.T) {
		raw := `{"items":[{"description":"PAO FRANCES","total":6.23}],"metadata":{}}`

		result, err := parseResponse(raw)
		require.NoError(t, err)
		require.Len(t, result.Items, 1)
		assert.True(t, result.Items[0].Amount.Equal(decimal.RequireFromString("6.23")))
	})

	t.Run("payment and total lines are dropped", func(t *testing.T) {
		raw := `{"items":[
			{"description":"VALOR A PAGAR","amount":45.67},
			{"description":"CARTAO DE DEBITO","amount":45.67},
			{"description":"FORMA DE PAGAMENTO","amount":45.67},
			{"description":"CAFE PILAO 500G","amount":18.90}
		],"metadata":{}}`

		result, err := parseResponse(raw)
		require.NoError(t, err)
		require.Len(t, result.Items, 1)
		assert.Equal(t, "CAFE PILAO 500G", result.Items[0].Description)
	})

	t.Run("out of range amounts and short names are dropped", func(t *testing.T) {
		raw := `{"items":[
			{"description":"PRODUTO GRATIS","amount":0},
			{"description":"PRODUTO CARO","amount":99999.99},
			{"description":"AB","amount":9.90},
			{"description":"SEM VALOR"}
		],"metadata":{}}`

		result, err := parseResponse(raw)
		require.NoError(t, err)
		assert.Empty(t, result.Items)
		assert.Equal(t, extraction.ConfidenceLow, result.Confidence)
	})

	t.Run("sum far from declared total stays medium", func(t *testing.T) {
		raw := `{"items":[{"description":"QUEIJO MINAS","amount":10.00}],"metadata":{"total":20.00}}`

		result, err := parseResponse(raw)
		require.NoError(t, err)
		assert.Equal(t, extraction.ConfidenceMedium, result.Confidence)
	})

	t.Run("unparseable date and unknown payment are ignored", func(t *testing.T) {
		raw := `{"items":[{"description":"BANANA PRATA","amount":3.50}],"metadata":{"date":"15/08/2023","payment_method":"boleto"}}`

		result, err := parseResponse(raw)
		require.NoError(t, err)
		assert.Nil(t, result.Metadata.Date)
		assert.Nil(t, result.Metadata.Payment)
	})

	t.Run("no JSON object at all", func(t *testing.T) {
		_, err := parseResponse("nao consegui ler o cupom")
		assert.Error(t, err)
	})

	t.Run("malformed JSON", func(t *testing.T) {
		_, err := parseResponse(`{"items": [}`)
		assert.Error(t, err)
	})
}
