package dialog

import (
	"fmt"
	"strings"

	"github.com/brazillianlabs/poupazap/internal/domain/finance"
)

// Menu rendering is pure: static text per state, no session access.

func mainMenu() string {
	return strings.Join([]string{
		"*PoupaZap* 💸 Seu assistente financeiro",
		"",
		"1️⃣ Meus Relatórios",
		"2️⃣ Gerenciar Finanças",
		"3️⃣ Lançar Manualmente",
		"4️⃣ Ajuda",
		"",
		"Ou mande algo como \"gastei 50 no mercado\".",
	}, "\n")
}

func reportsMenu() string {
	return strings.Join([]string{
		"*Meus Relatórios* 📊",
		"",
		"Qual relatório você quer ver?",
		"",
		"1️⃣ Extrato Recente",
		"2️⃣ Resumo do Mês",
		"3️⃣ Gastos por Categoria",
		"",
		"Digite \"menu\" para voltar.",
	}, "\n")
}

func manageMenu() string {
	return strings.Join([]string{
		"*Gerenciar Finanças* 🛠️",
		"",
		"O que você quer gerenciar?",
		"",
		"1️⃣ Orçamento Mensal",
		"2️⃣ Minhas Metas",
		"3️⃣ Meus Cartões de Crédito",
		"4️⃣ Despesas Agendadas",
		"",
		"Digite \"menu\" para voltar.",
	}, "\n")
}

func manualEntryMenu() string {
	return strings.Join([]string{
		"*Lançar Manualmente* ✍️",
		"",
		"O que você quer lançar?",
		"",
		"1️⃣ Adicionar Despesa",
		"2️⃣ Adicionar Receita",
		"",
		"Digite \"menu\" para voltar.",
	}, "\n")
}

func categoryMenu(title string, categories []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*%s* 📂\n\nEscolha a categoria:\n\n", title)
	for i, c := range categories {
		fmt.Fprintf(&b, "%d. %s\n", i+1, c)
	}
	b.WriteString("\nDigite \"menu\" para voltar.")
	return b.String()
}

func cardsMenu(cards []finance.CreditCard) string {
	var b strings.Builder
	b.WriteString("*Meus Cartões* 💳\n\n")
	if len(cards) == 0 {
		b.WriteString("Nenhum cartão cadastrado.\n")
	} else {
		for i, c := range cards {
			fmt.Fprintf(&b, "%d. %s\n", i+1, c.Nickname)
		}
	}
	b.WriteString("\n1️⃣ Adicionar cartão\n2️⃣ Remover cartão\n\nDigite \"menu\" para voltar.")
	return b.String()
}

func helpText() string {
	return strings.Join([]string{
		"*Ajuda* 🆘",
		"",
		"Você pode digitar frases naturais:",
		"• \"gastei 50 no mercado\" registra uma despesa",
		"• \"recebi 1200 de pix\" registra uma receita",
		"• \"criar meta viagem de 5000 em 6 meses\" cria uma meta",
		"",
		"Ou navegue pelos números do menu. Digite \"menu\" a qualquer momento para recomeçar.",
	}, "\n")
}
