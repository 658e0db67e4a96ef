package nlu

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/brazillianlabs/poupazap/pkg/money"
)

// IntentType identifies which recognizer produced an Intent.
type IntentType string

const (
	IntentQuickExpense IntentType = "quick_expense"
	IntentQuickIncome  IntentType = "quick_income"
	IntentCreateGoal   IntentType = "create_goal_intent"
)

// Card is a credit card registered by the user, matched by nickname.
type Card struct {
	ID       uuid.UUID
	Nickname string
}

// Context is the per-user data the parsers match against.
type Context struct {
	Cards      []Card
	Categories []string
}

// Intent is the structured interpretation of one message. It lives for a
// single turn: created by a parser, consumed by the calling state handler,
// never stored.
type Intent struct {
	Type        IntentType
	Amount      decimal.Decimal
	Category    string
	Description string
	CardID      *uuid.UUID
	GoalName    string
	GoalMonths  int
}

// Parser recognizes quick expenses, quick incomes, and voice goal creation.
// The three recognizers are non-exclusive; callers own the attempt order
// (expense before income before goal) and downstream behavior depends on it.
type Parser struct {
	locale     Locale
	expense    *KeywordSet
	income     *KeywordSet
	classifier Classifier

	cardPrepAlt  string
	fillers      []*regexp.Regexp
	incomeStrip  []*regexp.Regexp
	goalValueRe  *regexp.Regexp
	goalMonthsRe *regexp.Regexp
}

// NewParser compiles the locale data into a ready parser.
func NewParser(locale Locale) *Parser {
	p := &Parser{
		locale:  locale,
		expense: NewKeywordSet(locale.ExpenseKeywords),
		income:  NewKeywordSet(locale.IncomeKeywords),
	}

	preps := make([]string, 0, len(locale.CardPrepositions))
	for _, prep := range locale.CardPrepositions {
		preps = append(preps, regexp.QuoteMeta(Normalize(prep)))
	}
	p.cardPrepAlt = strings.Join(preps, "|")

	// Expense keywords double as filler words when deriving the description.
	for _, w := range append(p.expense.Keywords(), normalizeAll(locale.FillerWords)...) {
		p.fillers = append(p.fillers, regexp.MustCompile(`\b`+regexp.QuoteMeta(w)+`\b`))
	}
	for _, w := range p.income.Keywords() {
		p.incomeStrip = append(p.incomeStrip, regexp.MustCompile(regexp.QuoteMeta(w)))
	}

	markers := make([]string, 0, len(locale.GoalValueMarkers))
	for _, m := range locale.GoalValueMarkers {
		markers = append(markers, regexp.QuoteMeta(Normalize(m)))
	}
	p.goalValueRe = regexp.MustCompile(`(?:` + strings.Join(markers, "|") + `)\s*(\d+(?:[.,]\d{1,2})?)`)
	p.goalMonthsRe = regexp.MustCompile(locale.GoalDurationPattern)

	return p
}

// Locale returns the locale the parser was built with.
func (p *Parser) Locale() Locale {
	return p.locale
}

// ParseQuickExpense recognizes messages like "gastei 50 reais no mercado".
// It requires an expense keyword and an amount; the card span, when present,
// is resolved against the user's registered nicknames (first card wins).
func (p *Parser) ParseQuickExpense(text string, sctx Context) (Intent, bool) {
	n := Normalize(text)
	if !p.expense.Contains(n) {
		return Intent{}, false
	}

	m, ok := ExtractAmount(n)
	if !ok {
		return Intent{}, false
	}
	remaining := strings.Replace(n, m.Matched, " ", 1)

	var cardID *uuid.UUID
	for _, card := range sctx.Cards {
		nick := Normalize(card.Nickname)
		if nick == "" {
			continue
		}
		cardRe := regexp.MustCompile(`(?:` + p.cardPrepAlt + `)\s+` + regexp.QuoteMeta(nick))
		if loc := cardRe.FindStringIndex(remaining); loc != nil {
			id := card.ID
			cardID = &id
			remaining = remaining[:loc[0]] + " " + remaining[loc[1]:]
			break
		}
	}

	description := remaining
	for _, re := range p.fillers {
		description = re.ReplaceAllString(description, " ")
	}
	description = cleanPhrase(description)

	category := p.locale.DefaultCategory
	for _, word := range strings.Fields(description) {
		if c, found := p.classifier.Classify(word, sctx.Categories); found {
			category = c
			break
		}
	}
	if description == "" {
		description = category
	}

	return Intent{
		Type:        IntentQuickExpense,
		Amount:      m.Amount,
		Category:    category,
		Description: description,
		CardID:      cardID,
	}, true
}

// ParseQuickIncome recognizes messages like "recebi 1200 de pix".
func (p *Parser) ParseQuickIncome(text string) (Intent, bool) {
	n := Normalize(text)
	if !p.income.Contains(n) {
		return Intent{}, false
	}

	m, ok := ExtractAmount(n)
	if !ok {
		return Intent{}, false
	}

	description := strings.Replace(n, m.Matched, " ", 1)
	for _, re := range p.incomeStrip {
		description = re.ReplaceAllString(description, " ")
	}
	description = cleanPhrase(description)
	if description == "" {
		description = p.locale.IncomeFallback
	}

	return Intent{Type: IntentQuickIncome, Amount: m.Amount, Description: description}, true
}

// ParseGoalCreation recognizes "criar meta viagem de 5000 em 6 meses".
// The duration clause is a hard requirement; the value clause defaults to
// zero so a later dialogue step can ask for it.
func (p *Parser) ParseGoalCreation(text string) (Intent, bool) {
	n := Normalize(text)
	trigger := Normalize(p.locale.GoalTriggerPhrase)
	if !strings.HasPrefix(n, trigger) {
		return Intent{}, false
	}

	monthsLoc := p.goalMonthsRe.FindStringSubmatchIndex(n)
	if monthsLoc == nil {
		return Intent{}, false
	}
	months, err := strconv.Atoi(n[monthsLoc[2]:monthsLoc[3]])
	if err != nil || months <= 0 {
		return Intent{}, false
	}

	value := decimal.Zero
	valueSpan := ""
	if vm := p.goalValueRe.FindStringSubmatch(n); vm != nil {
		if d, perr := money.ParseValue(vm[1]); perr == nil {
			value = d
			valueSpan = vm[0]
		}
	}

	name := strings.Replace(n, trigger, "", 1)
	if valueSpan != "" {
		name = strings.Replace(name, valueSpan, " ", 1)
	}
	name = strings.Replace(name, n[monthsLoc[0]:monthsLoc[1]], " ", 1)
	name = cleanPhrase(name)
	if name == "" {
		name = p.locale.GoalFallback
	}

	return Intent{
		Type:       IntentCreateGoal,
		Amount:     value,
		GoalName:   name,
		GoalMonths: months,
	}, true
}

// cleanPhrase collapses whitespace and trims surrounding punctuation.
func cleanPhrase(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return strings.Trim(s, ".,!? ")
}

func normalizeAll(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if n := Normalize(w); n != "" {
			out = append(out, n)
		}
	}
	return out
}
