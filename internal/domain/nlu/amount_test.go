package nlu

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractAmount(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		wantAmount  string
		wantMatched string
		wantOK      bool
	}{
		{"integer", "gastei 50 reais no mercado", "50", "50", true},
		{"comma decimal", "gastei 50,5 no uber", "50.5", "50,5", true},
		{"dot decimal", "gastei 10.50 na padaria", "10.5", "10.50", true},
		{"thousands comma fraction", "recebi 1.234,56 de salario", "1234.56", "1.234,56", true},
		{"thousands dot fraction", "recebi 1,234.56 de salario", "1234.56", "1,234.56", true},
		{"first match wins", "gastei 10 no lanche e 5 na gorjeta", "10", "10", true},
		{"no digits", "gastei muito no mercado", "", "", false},
		{"empty", "", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractAmount(tt.text)
			require.Equal(t, tt.wantOK, ok)
			if !ok {
				return
			}
			assert.Equal(t, tt.wantMatched, got.Matched)
			want, err := decimal.NewFromString(tt.wantAmount)
			require.NoError(t, err)
			assert.True(t, got.Amount.Equal(want), "amount = %s, want %s", got.Amount, want)
		})
	}
}

func TestExtractAmount_MatchedSpanIsLiteral(t *testing.T) {
	text := "paguei 1.234,56 no cartao"
	got, ok := ExtractAmount(text)
	require.True(t, ok)
	assert.Contains(t, text, got.Matched)
}
