package nlu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifier_Classify(t *testing.T) {
	categories := []string{"Mercado", "Transporte", "Lazer", "Contas", "Saúde"}

	tests := []struct {
		name   string
		token  string
		want   string
		wantOK bool
	}{
		{"exact lowercase", "mercado", "Mercado", true},
		{"accent insensitive", "saude", "Saúde", true},
		{"token contains category", "supermercado", "Mercado", true},
		{"category contains token", "merc", "Mercado", true},
		{"fuzzy typo", "lazr", "Lazer", true},
		{"fuzzy missing letter", "mercdo", "Mercado", true},
		{"no match", "gasolina", "", false},
		{"empty token", "", "", false},
		{"far off", "xyzw", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Classifier{}.Classify(tt.token, categories)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifier_EmptyCategories(t *testing.T) {
	got, ok := Classifier{}.Classify("mercado", nil)
	assert.False(t, ok)
	assert.Empty(t, got)
}
