package dialog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/brazillianlabs/poupazap/internal/domain/finance"
	"github.com/brazillianlabs/poupazap/internal/domain/nlu"
	"github.com/brazillianlabs/poupazap/pkg/money"
)

// SentinelMainMenu always resets the session to the main menu, regardless of
// the current state. It bypasses the handler table entirely and is the only
// hard override in the machine.
const SentinelMainMenu = "nav_menu_principal"

const (
	msgInvalidValue   = "❌ Valor inválido! Digite um valor numérico positivo."
	msgStorageFailure = "😔 Não consegui concluir agora. Tente novamente em instantes."
)

// HandlerFunc consumes one message for one state and returns the outgoing
// text. Handlers mutate the session (state, temp data) and call storage; any
// storage failure is translated into a user-visible message, never an error.
type HandlerFunc func(ctx context.Context, s *Session, input string) string

// Machine drives per-user dialogue. Dispatch is a lookup on the current
// state's handler; sessions are serialized individually, so handlers never
// run concurrently against the same session.
type Machine struct {
	storage           finance.Storage
	parser            *nlu.Parser
	logger            *slog.Logger
	sessions          *sessionStore
	handlers          map[State]HandlerFunc
	currency          string
	defaultCategories []string
}

// NewMachine builds the machine and registers a handler for every state.
func NewMachine(storage finance.Storage, parser *nlu.Parser, currency string, defaultCategories []string, logger *slog.Logger) *Machine {
	m := &Machine{
		storage:           storage,
		parser:            parser,
		logger:            logger,
		sessions:          newSessionStore(),
		currency:          currency,
		defaultCategories: defaultCategories,
	}
	m.registerHandlers()
	return m
}

func (m *Machine) registerHandlers() {
	m.handlers = map[State]HandlerFunc{
		StateMenu:                m.handleMainMenu,
		StateSelectingReport:     m.handleSelectingReport,
		StateManagingFinances:    m.handleManagingFinances,
		StateManualEntry:         m.handleManualEntry,
		StateAwaitingNextEntry:   m.handleAwaitingNextEntry,
		StateAddingIncome:        m.handleAddingIncome,
		StateSelectingCategory:   m.handleSelectingCategory,
		StateAddingExpenseAmount: m.handleAddingExpenseAmount,
		StateAwaitingExpenseDesc: m.handleExpenseDescription,
		StateSettingBudget:       m.handleSettingBudget,
		StateAddingGoal:          m.handleAddingGoal,
		StateConfirmQuickExpense: m.handleConfirmQuickExpense,
		StateConfirmQuickIncome:  m.handleConfirmQuickIncome,
		StateGoalValueFromVoice:  m.handleGoalValueFromVoice,
		StateConfirmVoiceGoal:    m.handleConfirmVoiceGoal,
		StateManagingCards:       m.handleManagingCards,
		StateAddingCard:          m.handleAddingCard,
		StateRemovingCard:        m.handleRemovingCard,
		StateAddingScheduledDay:  m.handleAddingScheduled,
	}

	for _, st := range AllStates {
		if _, ok := m.handlers[st]; !ok {
			panic(fmt.Sprintf("dialog: state %q has no handler", st))
		}
	}
}

// HandleMessage processes one inbound message for one user and returns the
// outgoing text. The session's storage write completes before the response is
// returned, so a report requested next cannot race an uncommitted turn.
func (m *Machine) HandleMessage(ctx context.Context, userID, text string) string {
	session, release := m.sessions.acquire(userID)
	defer release()

	if session.Categories == nil {
		profile, err := m.storage.GetOrCreateUser(ctx, userID, m.defaultCategories)
		if err != nil {
			m.logger.Error("failed to load user profile", slog.String("user", userID), slog.Any("error", err))
			return msgStorageFailure
		}
		session.Categories = profile.Categories
		session.MonthlyBudget = money.FromMinor(profile.MonthlyBudgetMinor, m.currency)
		if profile.State != "" {
			session.State = State(profile.State)
		}
	}

	// The transport maps the user-facing "menu" shortcut onto the reserved
	// navigation sentinel before dispatch.
	if nlu.Normalize(text) == "menu" {
		text = SentinelMainMenu
	}

	response := m.ProcessCommand(ctx, session, text)

	profile := &finance.UserProfile{
		UserID:             session.UserID,
		State:              string(session.State),
		Categories:         session.Categories,
		MonthlyBudgetMinor: money.ToMinor(session.MonthlyBudget, m.currency),
	}
	if err := m.storage.SaveSession(ctx, profile); err != nil {
		m.logger.Error("failed to persist session", slog.String("user", userID), slog.Any("error", err))
	}

	return response
}

// ProcessCommand dispatches one message against the session's current state.
// It is total: every input yields a non-empty response and a defined state.
func (m *Machine) ProcessCommand(ctx context.Context, s *Session, input string) string {
	if strings.TrimSpace(input) == SentinelMainMenu {
		s.Reset()
		return mainMenu()
	}

	handler, ok := m.handlers[s.State]
	if !ok {
		// Recovery path for sessions persisted by an older version whose
		// state no longer exists.
		m.logger.Warn("no handler registered for state, resetting to menu",
			slog.String("user", s.UserID),
			slog.String("state", string(s.State)),
		)
		s.Reset()
		return "😕 Não entendi. Voltando ao menu principal.\n\n" + mainMenu()
	}

	response := handler(ctx, s, input)
	if response == "" {
		s.Reset()
		response = mainMenu()
	}
	return response
}

// Currency returns the display currency of the machine.
func (m *Machine) Currency() string {
	return m.currency
}
