package nlu

// Locale bundles the language-specific data the parsers depend on. The
// parsing algorithm itself is locale-agnostic; swapping this value retargets
// the bot to another language.
type Locale struct {
	// Trigger keyword sets. A message must contain at least one keyword from
	// a set for the corresponding parser to engage.
	ExpenseKeywords []string
	IncomeKeywords  []string

	// GoalTriggerPhrase must prefix the message for goal creation ("criar meta").
	GoalTriggerPhrase string

	// CardPrepositions introduce a credit-card nickname ("no cartao nubank").
	// Longer prepositions must come before their prefixes so the regex
	// alternation prefers them.
	CardPrepositions []string

	// FillerWords are stripped from the remaining text before the description
	// is derived.
	FillerWords []string

	// Clause markers for voice goal creation. GoalDurationPattern must have
	// exactly one capture group holding the number of months.
	GoalValueMarkers    []string
	GoalDurationPattern string

	// Fallback labels.
	DefaultCategory string
	IncomeFallback  string
	GoalFallback    string
}

// DefaultLocale returns the Brazilian-Portuguese locale the bot ships with.
func DefaultLocale() Locale {
	return Locale{
		ExpenseKeywords:     []string{"gastei", "paguei", "comprei", "despesa de", "uma compra de"},
		IncomeKeywords:      []string{"recebi", "ganhei", "pix de", "pagamento de", "entrou"},
		GoalTriggerPhrase:   "criar meta",
		CardPrepositions:    []string{"no cartao", "no credito", "com o", "pelo", "no"},
		FillerWords:         []string{"em", "no", "na", "para", "com", "de"},
		GoalValueMarkers:    []string{"valor de", "de", "com"},
		GoalDurationPattern: `em\s*(\d+)\s*mes(?:es)?`,
		DefaultCategory:     "Outros",
		IncomeFallback:      "Receita por voz",
		GoalFallback:        "Nova Meta",
	}
}
