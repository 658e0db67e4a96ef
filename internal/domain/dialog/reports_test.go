package dialog

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brazillianlabs/poupazap/internal/domain/finance"
)

func seedTransactions(t *testing.T, storage *fakeStorage, userID string) {
	t.Helper()
	ctx := context.Background()
	txs := []finance.Transaction{
		{UserID: userID, Type: finance.TransactionIncome, AmountMinor: 150000, Category: "Receita", Description: "salario"},
		{UserID: userID, Type: finance.TransactionExpense, AmountMinor: 30000, Category: "Mercado", Description: "compras"},
		{UserID: userID, Type: finance.TransactionExpense, AmountMinor: 10000, Category: "Transporte"},
	}
	for i := range txs {
		require.NoError(t, storage.AddTransaction(ctx, &txs[i]))
	}
}

func TestStatementReport(t *testing.T) {
	storage := newFakeStorage()
	m := newTestMachine(storage)
	s := newTestSession(StateSelectingReport)
	seedTransactions(t, storage, s.UserID)

	response := m.ProcessCommand(context.Background(), s, "1")

	assert.Contains(t, response, "Extrato")
	assert.Contains(t, response, "R$1.500,00")
	assert.Contains(t, response, "Mercado (compras)")
	assert.Contains(t, response, "+")
	assert.Contains(t, response, "-")
	assert.Equal(t, StateMenu, s.State)
}

func TestStatementReport_Empty(t *testing.T) {
	m := newTestMachine(newFakeStorage())
	s := newTestSession(StateSelectingReport)

	response := m.ProcessCommand(context.Background(), s, "1")
	assert.Contains(t, response, "Nenhuma transação encontrada")
}

func TestMonthlyReport(t *testing.T) {
	t.Run("with budget", func(t *testing.T) {
		storage := newFakeStorage()
		m := newTestMachine(storage)
		s := newTestSession(StateSelectingReport)
		s.MonthlyBudget = decimal.NewFromInt(1000)
		seedTransactions(t, storage, s.UserID)

		response := m.ProcessCommand(context.Background(), s, "2")

		assert.Contains(t, response, "Receitas: R$1.500,00")
		assert.Contains(t, response, "Despesas: R$400,00")
		assert.Contains(t, response, "Saldo do Mês: R$1.100,00")
		assert.Contains(t, response, "(40%)")
		assert.Contains(t, response, "Dentro do orçamento")
	})

	t.Run("over budget", func(t *testing.T) {
		storage := newFakeStorage()
		m := newTestMachine(storage)
		s := newTestSession(StateSelectingReport)
		s.MonthlyBudget = decimal.NewFromInt(300)
		seedTransactions(t, storage, s.UserID)

		response := m.ProcessCommand(context.Background(), s, "2")
		assert.Contains(t, response, "Acima do orçamento")
	})

	t.Run("without budget", func(t *testing.T) {
		storage := newFakeStorage()
		m := newTestMachine(storage)
		s := newTestSession(StateSelectingReport)
		seedTransactions(t, storage, s.UserID)

		response := m.ProcessCommand(context.Background(), s, "2")
		assert.Contains(t, response, "Orçamento mensal não definido")
	})
}

func TestCategoryReport(t *testing.T) {
	storage := newFakeStorage()
	m := newTestMachine(storage)
	s := newTestSession(StateSelectingReport)
	seedTransactions(t, storage, s.UserID)

	response := m.ProcessCommand(context.Background(), s, "3")

	assert.Contains(t, response, "Mercado: R$300,00 (75.0%)")
	assert.Contains(t, response, "Transporte: R$100,00 (25.0%)")
	assert.Contains(t, response, "Total de Despesas:* R$400,00")
}

func TestCategoryReport_NoExpenses(t *testing.T) {
	m := newTestMachine(newFakeStorage())
	s := newTestSession(StateSelectingReport)

	response := m.ProcessCommand(context.Background(), s, "3")
	assert.Contains(t, response, "Nenhuma despesa registrada este mês")
}

func TestSettingsSummary(t *testing.T) {
	storage := newFakeStorage()
	m := newTestMachine(storage)
	s := newTestSession(StateMenu)
	s.MonthlyBudget = decimal.NewFromInt(2000)
	seedTransactions(t, storage, s.UserID)

	response := m.ProcessCommand(context.Background(), s, "configuracoes")

	assert.Contains(t, response, "Total de transações: 3")
	assert.Contains(t, response, "Orçamento mensal: R$2.000,00")
	assert.Contains(t, response, "Metas ativas: 0")
	assert.Equal(t, StateMenu, s.State)
}
