package dialog

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/brazillianlabs/poupazap/internal/domain/finance"
	"github.com/brazillianlabs/poupazap/internal/domain/nlu"
	"github.com/brazillianlabs/poupazap/pkg/money"
)

func (m *Machine) handleMainMenu(ctx context.Context, s *Session, input string) string {
	switch nlu.Normalize(input) {
	case "1", "relatorios":
		s.State = StateSelectingReport
		return reportsMenu()
	case "2", "gerenciar":
		s.State = StateManagingFinances
		return manageMenu()
	case "3", "lancar":
		s.State = StateManualEntry
		return manualEntryMenu()
	case "4", "ajuda":
		return helpText()
	case "configuracoes", "config":
		return m.settingsSummary(ctx, s)
	}

	if response, ok := m.tryQuickIntents(ctx, s, input); ok {
		return response
	}
	return "Opção inválida. Por favor, escolha uma das opções abaixo:\n\n" + mainMenu()
}

// tryQuickIntents runs the three recognizers over free text typed at the main
// menu. The attempt order (expense, income, goal) is a depended-upon
// contract: input containing keywords from more than one set resolves to the
// first parser that succeeds.
func (m *Machine) tryQuickIntents(ctx context.Context, s *Session, input string) (string, bool) {
	pctx := nlu.Context{Cards: m.loadParserCards(ctx, s.UserID), Categories: s.Categories}

	if intent, ok := m.parser.ParseQuickExpense(input, pctx); ok {
		s.Temp = TempData{
			Amount:      intent.Amount,
			Category:    intent.Category,
			Description: intent.Description,
			CardID:      intent.CardID,
			IsVoice:     true,
		}
		s.State = StateConfirmQuickExpense
		return fmt.Sprintf("💸 Registrar despesa de %s em %s (%s)? (Sim/Não)",
			money.Format(intent.Amount, m.currency), intent.Category, intent.Description), true
	}

	if intent, ok := m.parser.ParseQuickIncome(input); ok {
		s.Temp = TempData{Amount: intent.Amount, Description: intent.Description, IsVoice: true}
		s.State = StateConfirmQuickIncome
		return fmt.Sprintf("💰 Registrar receita de %s (%s)? (Sim/Não)",
			money.Format(intent.Amount, m.currency), intent.Description), true
	}

	if intent, ok := m.parser.ParseGoalCreation(input); ok {
		s.Temp = TempData{GoalName: intent.GoalName, GoalValue: intent.Amount, GoalMonths: intent.GoalMonths}
		if intent.Amount.IsPositive() {
			s.State = StateConfirmVoiceGoal
			return fmt.Sprintf("🎙️ Meta: %q, Valor: %s, Prazo: %d meses. Correto? (Sim/Não)",
				intent.GoalName, money.Format(intent.Amount, m.currency), intent.GoalMonths), true
		}
		s.State = StateGoalValueFromVoice
		return fmt.Sprintf("🎯 Qual o valor total para a meta %q?", intent.GoalName), true
	}

	return "", false
}

func (m *Machine) handleSelectingReport(ctx context.Context, s *Session, input string) string {
	var response string
	switch nlu.Normalize(input) {
	case "1":
		response = m.statementReport(ctx, s)
	case "2":
		response = m.monthlyReport(ctx, s)
	case "3":
		response = m.categoryReport(ctx, s)
	default:
		response = "Opção inválida.\n\n" + reportsMenu()
	}
	s.State = StateMenu
	return response
}

func (m *Machine) handleManagingFinances(ctx context.Context, s *Session, input string) string {
	switch nlu.Normalize(input) {
	case "1":
		s.State = StateSettingBudget
		return "🎯 *Definir Orçamento Mensal*\n\nDigite o valor:"
	case "2":
		s.State = StateAddingGoal
		return "🎯 *Criar Meta Financeira*\n\nDigite no formato:\nNome | Valor total | Prazo em meses"
	case "3":
		cards, err := m.storage.GetCreditCards(ctx, s.UserID)
		if err != nil {
			m.logger.Error("failed to list cards", slog.String("user", s.UserID), slog.Any("error", err))
			return msgStorageFailure
		}
		s.State = StateManagingCards
		return cardsMenu(cards)
	case "4":
		s.State = StateSelectingCategory
		s.Temp = TempData{Scheduled: true}
		return categoryMenu("Despesa Agendada", s.Categories)
	default:
		return "Opção inválida.\n\n" + manageMenu()
	}
}

func (m *Machine) handleManualEntry(_ context.Context, s *Session, input string) string {
	switch nlu.Normalize(input) {
	case "1":
		s.State = StateSelectingCategory
		s.Temp = TempData{Scheduled: false}
		return categoryMenu("Despesa Única", s.Categories)
	case "2":
		s.State = StateAddingIncome
		return "💰 *Adicionar Receita*\n\nDigite o valor da receita:"
	default:
		return "Opção inválida.\n\n" + manualEntryMenu()
	}
}

func (m *Machine) handleSelectingCategory(_ context.Context, s *Session, input string) string {
	idx, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || idx < 1 || idx > len(s.Categories) {
		title := "Despesa Única"
		if s.Temp.Scheduled {
			title = "Despesa Agendada"
		}
		return "❌ Opção inválida!\n\n" + categoryMenu(title, s.Categories)
	}

	s.Temp.Category = s.Categories[idx-1]
	if s.Temp.Scheduled {
		s.State = StateAddingScheduledDay
		return "📅 Digite no formato: Valor | Dia do mês (1-28)"
	}
	s.State = StateAddingExpenseAmount
	return "✍️ Digite o valor da despesa:"
}

func (m *Machine) handleAddingExpenseAmount(_ context.Context, s *Session, input string) string {
	amount, err := money.ParseValue(input)
	if err != nil || !amount.IsPositive() {
		return msgInvalidValue
	}

	s.Temp.Amount = amount
	s.State = StateAwaitingExpenseDesc
	return fmt.Sprintf("✅ Valor %s anotado.\n📝 Quer adicionar uma descrição? (Ou digite \"não\")",
		money.Format(amount, m.currency))
}

func (m *Machine) handleAddingIncome(ctx context.Context, s *Session, input string) string {
	amount, err := money.ParseValue(input)
	if err != nil || !amount.IsPositive() {
		return msgInvalidValue
	}

	tx := &finance.Transaction{
		UserID:      s.UserID,
		Type:        finance.TransactionIncome,
		AmountMinor: money.ToMinor(amount, m.currency),
		Category:    "Receita",
		Description: "Receita manual",
	}
	if err := m.storage.AddTransaction(ctx, tx); err != nil {
		m.logger.Error("failed to add income", slog.String("user", s.UserID), slog.Any("error", err))
		return msgStorageFailure
	}

	s.State = StateAwaitingNextEntry
	s.Temp = TempData{}
	return fmt.Sprintf("✅ Receita de %s registrada. Deseja lançar outra?", money.Format(amount, m.currency))
}

func (m *Machine) handleExpenseDescription(ctx context.Context, s *Session, input string) string {
	normalized := nlu.Normalize(input)
	finalDescription := s.Temp.Description
	if normalized != "nao" && normalized != "n" && normalized != "pular" {
		finalDescription = strings.TrimSpace(input)
	}

	category := s.Temp.Category
	if category == "" {
		category = m.parser.Locale().DefaultCategory
	}

	tx := &finance.Transaction{
		UserID:      s.UserID,
		Type:        finance.TransactionExpense,
		AmountMinor: money.ToMinor(s.Temp.Amount, m.currency),
		Category:    category,
		Description: finalDescription,
		CardID:      s.Temp.CardID,
		IsVoice:     s.Temp.IsVoice,
	}
	if err := m.storage.AddTransaction(ctx, tx); err != nil {
		// Temp data is kept so the user can retry in place.
		m.logger.Error("failed to add expense", slog.String("user", s.UserID), slog.Any("error", err))
		return msgStorageFailure
	}

	label := finalDescription
	if label == "" {
		label = category
	}

	s.State = StateAwaitingNextEntry
	s.Temp = TempData{}
	return fmt.Sprintf("✅ Despesa de %s (%s) registrada. Deseja lançar outra?",
		money.FormatMinor(tx.AmountMinor, m.currency), label)
}

func (m *Machine) handleAwaitingNextEntry(ctx context.Context, s *Session, input string) string {
	pctx := nlu.Context{Cards: m.loadParserCards(ctx, s.UserID), Categories: s.Categories}

	if intent, ok := m.parser.ParseQuickExpense(input, pctx); ok {
		s.Temp = TempData{
			Amount:      intent.Amount,
			Category:    intent.Category,
			Description: intent.Description,
			CardID:      intent.CardID,
			IsVoice:     true,
		}
		// Quick captures in this state auto-confirm through the same
		// completion path a manual "sim" would take.
		return m.handleConfirmQuickExpense(ctx, s, "sim")
	}

	if intent, ok := m.parser.ParseQuickIncome(input); ok {
		s.Temp = TempData{Amount: intent.Amount, Description: intent.Description, IsVoice: true}
		return m.handleConfirmQuickIncome(ctx, s, "sim")
	}

	switch nlu.Normalize(input) {
	case "nao", "n", "chega", "parar", "menu", "cancelar":
		s.Reset()
		return mainMenu()
	}
	return "Não entendi. Deseja lançar outra transação ou voltar ao \"menu\"?"
}

func (m *Machine) handleConfirmQuickExpense(ctx context.Context, s *Session, input string) string {
	if strings.HasPrefix(nlu.Normalize(input), "s") {
		return m.handleExpenseDescription(ctx, s, "pular")
	}
	s.Reset()
	return "Ok, lançamento cancelado."
}

func (m *Machine) handleConfirmQuickIncome(ctx context.Context, s *Session, input string) string {
	if !strings.HasPrefix(nlu.Normalize(input), "s") {
		s.Reset()
		return "Ok, lançamento cancelado."
	}

	description := s.Temp.Description
	if description == "" {
		description = m.parser.Locale().IncomeFallback
	}

	tx := &finance.Transaction{
		UserID:      s.UserID,
		Type:        finance.TransactionIncome,
		AmountMinor: money.ToMinor(s.Temp.Amount, m.currency),
		Category:    "Receita",
		Description: description,
		IsVoice:     true,
	}
	if err := m.storage.AddTransaction(ctx, tx); err != nil {
		m.logger.Error("failed to add quick income", slog.String("user", s.UserID), slog.Any("error", err))
		return msgStorageFailure
	}

	amount := s.Temp.Amount
	s.State = StateAwaitingNextEntry
	s.Temp = TempData{}
	return fmt.Sprintf("✅ Receita de %s (%s) registrada. Deseja lançar outra?",
		money.Format(amount, m.currency), description)
}

func (m *Machine) handleSettingBudget(ctx context.Context, s *Session, input string) string {
	budget, err := money.ParseValue(input)
	if err != nil || !budget.IsPositive() {
		return msgInvalidValue
	}

	if err := m.storage.SetMonthlyBudget(ctx, s.UserID, money.ToMinor(budget, m.currency)); err != nil {
		m.logger.Error("failed to set budget", slog.String("user", s.UserID), slog.Any("error", err))
		return msgStorageFailure
	}

	s.MonthlyBudget = budget
	s.State = StateMenu
	return fmt.Sprintf("✅ Orçamento mensal definido para %s.", money.Format(budget, m.currency))
}

func (m *Machine) handleAddingGoal(ctx context.Context, s *Session, input string) string {
	parts := strings.Split(input, "|")
	if len(parts) != 3 {
		return "❌ Formato inválido!\nUse: Nome | Valor | Meses"
	}

	name := strings.TrimSpace(parts[0])
	value, verr := money.ParseValue(parts[1])
	months, merr := strconv.Atoi(strings.TrimSpace(nlu.Normalize(parts[2])))
	if name == "" || verr != nil || merr != nil || !value.IsPositive() || months <= 0 {
		return "❌ Valores inválidos!"
	}

	monthlyTarget := value.Div(decimal.NewFromInt(int64(months)))
	goal := &finance.Goal{
		UserID:             s.UserID,
		Name:               name,
		TargetMinor:        money.ToMinor(value, m.currency),
		Months:             months,
		MonthlyTargetMinor: money.ToMinor(monthlyTarget, m.currency),
	}
	if err := m.storage.CreateGoal(ctx, goal); err != nil {
		m.logger.Error("failed to create goal", slog.String("user", s.UserID), slog.Any("error", err))
		return msgStorageFailure
	}

	s.State = StateMenu
	s.Temp = TempData{}
	return fmt.Sprintf("✅ *Meta %q criada!*\n💰 Valor: %s\n📅 Prazo: %d meses\n📈 Guardar por mês: %s",
		name, money.Format(value, m.currency), months, money.Format(monthlyTarget, m.currency))
}

func (m *Machine) handleGoalValueFromVoice(_ context.Context, s *Session, input string) string {
	value, err := money.ParseValue(input)
	if err != nil || !value.IsPositive() {
		return "❌ Valor inválido! Qual o valor total para a meta?"
	}

	s.Temp.GoalValue = value
	s.State = StateConfirmVoiceGoal
	return fmt.Sprintf("🎙️ Ok! Meta: %q, Valor: %s, Prazo: %d meses. Correto? (Sim/Não)",
		s.Temp.GoalName, money.Format(value, m.currency), s.Temp.GoalMonths)
}

func (m *Machine) handleConfirmVoiceGoal(ctx context.Context, s *Session, input string) string {
	if strings.HasPrefix(nlu.Normalize(input), "s") {
		formatted := fmt.Sprintf("%s | %s | %d", s.Temp.GoalName, s.Temp.GoalValue.String(), s.Temp.GoalMonths)
		return m.handleAddingGoal(ctx, s, formatted)
	}
	s.Reset()
	return "Ok, criação de meta cancelada."
}

func (m *Machine) handleManagingCards(ctx context.Context, s *Session, input string) string {
	switch nlu.Normalize(input) {
	case "1":
		s.State = StateAddingCard
		return "💳 Digite o apelido do novo cartão:"
	case "2":
		cards, err := m.storage.GetCreditCards(ctx, s.UserID)
		if err != nil {
			m.logger.Error("failed to list cards", slog.String("user", s.UserID), slog.Any("error", err))
			return msgStorageFailure
		}
		if len(cards) == 0 {
			return "Nenhum cartão para remover.\n\n" + cardsMenu(cards)
		}
		s.State = StateRemovingCard
		var b strings.Builder
		b.WriteString("Qual cartão remover?\n\n")
		for i, c := range cards {
			fmt.Fprintf(&b, "%d. %s\n", i+1, c.Nickname)
		}
		return b.String()
	default:
		cards, err := m.storage.GetCreditCards(ctx, s.UserID)
		if err != nil {
			m.logger.Error("failed to list cards", slog.String("user", s.UserID), slog.Any("error", err))
			return msgStorageFailure
		}
		return "Opção inválida.\n\n" + cardsMenu(cards)
	}
}

func (m *Machine) handleAddingCard(ctx context.Context, s *Session, input string) string {
	nickname := strings.TrimSpace(input)
	if nickname == "" {
		return "❌ Apelido inválido! Digite o apelido do cartão:"
	}

	card, err := m.storage.AddCreditCard(ctx, s.UserID, nickname)
	if err != nil {
		m.logger.Error("failed to add card", slog.String("user", s.UserID), slog.Any("error", err))
		return msgStorageFailure
	}

	s.State = StateMenu
	return fmt.Sprintf("✅ Cartão %q cadastrado.", card.Nickname)
}

func (m *Machine) handleRemovingCard(ctx context.Context, s *Session, input string) string {
	cards, err := m.storage.GetCreditCards(ctx, s.UserID)
	if err != nil {
		m.logger.Error("failed to list cards", slog.String("user", s.UserID), slog.Any("error", err))
		return msgStorageFailure
	}

	idx, aerr := strconv.Atoi(strings.TrimSpace(input))
	if aerr != nil || idx < 1 || idx > len(cards) {
		return "❌ Opção inválida! Digite o número do cartão."
	}

	card := cards[idx-1]
	if err := m.storage.RemoveCreditCard(ctx, s.UserID, card.ID); err != nil {
		m.logger.Error("failed to remove card", slog.String("user", s.UserID), slog.Any("error", err))
		return msgStorageFailure
	}

	s.State = StateMenu
	return fmt.Sprintf("✅ Cartão %q removido.", card.Nickname)
}

func (m *Machine) handleAddingScheduled(ctx context.Context, s *Session, input string) string {
	parts := strings.Split(input, "|")
	if len(parts) != 2 {
		return "❌ Formato inválido!\nUse: Valor | Dia do mês"
	}

	value, verr := money.ParseValue(parts[0])
	day, derr := strconv.Atoi(strings.TrimSpace(parts[1]))
	if verr != nil || !value.IsPositive() || derr != nil || day < 1 || day > 28 {
		return "❌ Valores inválidos! Use um valor positivo e um dia entre 1 e 28."
	}

	exp := &finance.ScheduledExpense{
		UserID:      s.UserID,
		Category:    s.Temp.Category,
		AmountMinor: money.ToMinor(value, m.currency),
		DayOfMonth:  day,
	}
	if err := m.storage.AddScheduledExpense(ctx, exp); err != nil {
		m.logger.Error("failed to add scheduled expense", slog.String("user", s.UserID), slog.Any("error", err))
		return msgStorageFailure
	}

	category := s.Temp.Category
	s.State = StateMenu
	s.Temp = TempData{}
	return fmt.Sprintf("✅ Despesa agendada de %s em %s todo dia %d.",
		money.Format(value, m.currency), category, day)
}

// loadParserCards fetches the user's cards for nickname matching. A storage
// failure degrades to parsing without card detection instead of failing the
// whole message.
func (m *Machine) loadParserCards(ctx context.Context, userID string) []nlu.Card {
	cards, err := m.storage.GetCreditCards(ctx, userID)
	if err != nil {
		m.logger.Warn("failed to load cards for parsing", slog.String("user", userID), slog.Any("error", err))
		return nil
	}

	out := make([]nlu.Card, 0, len(cards))
	for _, c := range cards {
		out = append(out, nlu.Card{ID: c.ID, Nickname: c.Nickname})
	}
	return out
}
