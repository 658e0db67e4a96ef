package dialog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/brazillianlabs/poupazap/internal/domain/finance"
	"github.com/brazillianlabs/poupazap/pkg/money"
)

const statementLimit = 10

var monthNames = []string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

// statementReport renders the user's most recent transactions.
func (m *Machine) statementReport(ctx context.Context, s *Session) string {
	transactions, err := m.storage.GetRecentTransactions(ctx, s.UserID, statementLimit)
	if err != nil {
		m.logger.Error("failed to fetch statement", slog.String("user", s.UserID), slog.Any("error", err))
		return "📋 *Extrato*\n\nNão foi possível buscar as transações."
	}
	if len(transactions) == 0 {
		return "📋 *Extrato*\n\nNenhuma transação encontrada."
	}

	lines := make([]string, 0, len(transactions))
	for _, t := range transactions {
		icon, signal := "💸", "-"
		if t.Type == finance.TransactionIncome {
			icon, signal = "💰", "+"
		}

		label := t.Category
		if t.Description != "" {
			label = fmt.Sprintf("%s (%s)", t.Category, t.Description)
		}
		if t.CardName != nil {
			label += fmt.Sprintf(" [💳 %s]", *t.CardName)
		}

		lines = append(lines, fmt.Sprintf("%s %s%s - %s\n📅 %s às %s",
			icon, signal, money.FormatMinor(t.AmountMinor, m.currency), label,
			t.CreatedAt.Format("02/01/2006"), t.CreatedAt.Format("15:04")))
	}

	return fmt.Sprintf("📋 *Extrato - Últimas %d transações*\n\n%s",
		statementLimit, strings.Join(lines, "\n\n"))
}

// monthlyReport renders the current month's totals and budget status.
func (m *Machine) monthlyReport(ctx context.Context, s *Session) string {
	balance, err := m.storage.GetMonthlyBalance(ctx, s.UserID)
	if err != nil {
		m.logger.Error("failed to fetch monthly balance", slog.String("user", s.UserID), slog.Any("error", err))
		return msgStorageFailure
	}

	budgetMinor := money.ToMinor(s.MonthlyBudget, m.currency)
	var budgetStatus string
	if budgetMinor > 0 {
		remaining := budgetMinor - balance.ExpensesMinor
		percentUsed := float64(balance.ExpensesMinor) / float64(budgetMinor) * 100
		status := "🟢 Status: Dentro do orçamento"
		if balance.ExpensesMinor > budgetMinor {
			status = "🔴 Status: Acima do orçamento"
		}
		budgetStatus = strings.Join([]string{
			fmt.Sprintf("🎯 Orçamento: %s", money.FormatMinor(budgetMinor, m.currency)),
			fmt.Sprintf("Utilizado: %s de %s (%.0f%%)",
				money.FormatMinor(balance.ExpensesMinor, m.currency),
				money.FormatMinor(budgetMinor, m.currency), percentUsed),
			fmt.Sprintf("Saldo do Orçamento: %s", money.FormatMinor(remaining, m.currency)),
			status,
		}, "\n")
	} else {
		budgetStatus = "⚠️ Orçamento mensal não definido."
	}

	now := time.Now()
	return fmt.Sprintf("📊 *Resumo Mensal - %s de %d*\n\n💰 Receitas: %s\n💸 Despesas: %s\n📈 Saldo do Mês: %s\n\n%s",
		monthNames[now.Month()-1], now.Year(),
		money.FormatMinor(balance.IncomeMinor, m.currency),
		money.FormatMinor(balance.ExpensesMinor, m.currency),
		money.FormatMinor(balance.BalanceMinor, m.currency),
		budgetStatus)
}

// categoryReport renders current-month expenses broken down by category.
func (m *Machine) categoryReport(ctx context.Context, s *Session) string {
	totals, err := m.storage.GetCategoryExpenses(ctx, s.UserID, s.Categories)
	if err != nil {
		m.logger.Error("failed to fetch category expenses", slog.String("user", s.UserID), slog.Any("error", err))
		return msgStorageFailure
	}

	var totalExpenses int64
	for _, v := range totals {
		totalExpenses += v
	}
	if totalExpenses == 0 {
		return "📊 *Gastos por Categoria*\n\nNenhuma despesa registrada este mês."
	}

	var b strings.Builder
	b.WriteString("📊 *Gastos por Categoria - Mês Atual*\n\n")
	// Iterate the user's category order, not map order, so the report is stable.
	for _, category := range s.Categories {
		amount := totals[category]
		if amount <= 0 {
			continue
		}
		percentage := float64(amount) / float64(totalExpenses) * 100
		fmt.Fprintf(&b, "📂 %s: %s (%.1f%%)\n", category, money.FormatMinor(amount, m.currency), percentage)
	}
	fmt.Fprintf(&b, "\n💸 *Total de Despesas:* %s", money.FormatMinor(totalExpenses, m.currency))
	return b.String()
}

// settingsSummary renders account totals and the configured budget.
func (m *Machine) settingsSummary(ctx context.Context, s *Session) string {
	txCount, err := m.storage.CountTransactions(ctx, s.UserID)
	if err != nil {
		m.logger.Error("failed to count transactions", slog.String("user", s.UserID), slog.Any("error", err))
		return msgStorageFailure
	}
	goalCount, err := m.storage.CountGoals(ctx, s.UserID)
	if err != nil {
		m.logger.Error("failed to count goals", slog.String("user", s.UserID), slog.Any("error", err))
		return msgStorageFailure
	}

	budget := "Não definido"
	if s.MonthlyBudget.IsPositive() {
		budget = money.Format(s.MonthlyBudget, m.currency)
	}

	return fmt.Sprintf("⚙️ *Configurações*\n\n📊 Total de transações: %d\n🎯 Orçamento mensal: %s\n🏆 Metas ativas: %d\n\nDigite *menu* para voltar.",
		txCount, budget, goalCount)
}
