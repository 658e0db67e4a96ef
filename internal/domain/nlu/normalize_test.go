package nlu

import (
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"GASTEI 50 REAIS", "gastei 50 reais"},
		{"Café  com   Pão", "cafe com pao"},
		{"  viagem à França  ", "viagem a franca"},
		{"ação União ônibus", "acao uniao onibus"},
		{"", ""},
		{"   ", ""},
		{"ja normalizado", "ja normalizado"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Normalize(tt.input)
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"GASTEI R$ 50,00 no Café!",
		"criar meta São Paulo em 6 meses",
		"",
		"já está\tnormalizado",
	}

	for _, input := range inputs {
		once := Normalize(input)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q != %q", input, once, twice)
		}
	}
}
