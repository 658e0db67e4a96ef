package dialog

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brazillianlabs/poupazap/internal/domain/nlu"
)

var testCategories = []string{"Mercado", "Transporte", "Lazer", "Contas", "Outros"}

func newTestMachine(storage *fakeStorage) *Machine {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewMachine(storage, nlu.NewParser(nlu.DefaultLocale()), "BRL", testCategories, logger)
}

func newTestSession(state State) *Session {
	return &Session{
		UserID:     gofakeit.UUID(),
		State:      state,
		Categories: testCategories,
	}
}

// Every state handles every input with a non-empty response and lands in a
// registered state.
func TestProcessCommand_Total(t *testing.T) {
	m := newTestMachine(newFakeStorage())

	inputs := []string{"", "zzz nonsense", "999", "|||"}
	for _, state := range AllStates {
		for _, input := range inputs {
			s := newTestSession(state)
			response := m.ProcessCommand(context.Background(), s, input)

			assert.NotEmpty(t, response, "state %s input %q", state, input)
			assert.Contains(t, AllStates, s.State, "state %s input %q left session in %s", state, input, s.State)
		}
	}
}

func TestProcessCommand_SentinelResetsFromAnyState(t *testing.T) {
	m := newTestMachine(newFakeStorage())

	for _, state := range AllStates {
		s := newTestSession(state)
		s.Temp = TempData{Amount: decimal.NewFromInt(42), Category: "Lazer"}

		response := m.ProcessCommand(context.Background(), s, SentinelMainMenu)

		assert.Equal(t, StateMenu, s.State, "from state %s", state)
		assert.Equal(t, TempData{}, s.Temp, "from state %s", state)
		assert.Contains(t, response, "PoupaZap")
	}
}

func TestProcessCommand_UnknownStateResetsToMenu(t *testing.T) {
	m := newTestMachine(newFakeStorage())
	s := newTestSession(State("bogus_state"))
	s.Temp = TempData{Description: "stale"}

	response := m.ProcessCommand(context.Background(), s, "1")

	assert.Equal(t, StateMenu, s.State)
	assert.Equal(t, TempData{}, s.Temp)
	assert.Contains(t, response, "Não entendi")
	assert.Contains(t, response, "PoupaZap")
}

func TestHandleMessage_MenuShortcutWorksInAnyState(t *testing.T) {
	storage := newFakeStorage()
	m := newTestMachine(storage)
	userID := gofakeit.UUID()

	response := m.HandleMessage(context.Background(), userID, "1")
	require.Contains(t, response, "Meus Relatórios")

	response = m.HandleMessage(context.Background(), userID, "  MENU  ")
	assert.Contains(t, response, "PoupaZap")

	profile := storage.profiles[userID]
	require.NotNil(t, profile)
	assert.Equal(t, string(StateMenu), profile.State)
}

func TestHandleMessage_PersistsStateAcrossMessages(t *testing.T) {
	storage := newFakeStorage()
	m := newTestMachine(storage)
	userID := gofakeit.UUID()

	m.HandleMessage(context.Background(), userID, "2")

	profile := storage.profiles[userID]
	require.NotNil(t, profile)
	assert.Equal(t, string(StateManagingFinances), profile.State)
	assert.Equal(t, testCategories, profile.Categories)
}

func TestHandleMessage_ResumesPersistedState(t *testing.T) {
	storage := newFakeStorage()
	userID := gofakeit.UUID()
	ctx := context.Background()

	profile, err := storage.GetOrCreateUser(ctx, userID, testCategories)
	require.NoError(t, err)
	profile.State = string(StateSettingBudget)
	require.NoError(t, storage.SaveSession(ctx, profile))

	m := newTestMachine(storage)
	response := m.HandleMessage(ctx, userID, "1.500,00")

	assert.Contains(t, response, "Orçamento mensal definido")
	assert.Equal(t, int64(150000), storage.profiles[userID].MonthlyBudgetMinor)
}

func TestHandleMessage_SerializesSameUser(t *testing.T) {
	storage := newFakeStorage()
	m := newTestMachine(storage)
	userID := gofakeit.UUID()
	ctx := context.Background()

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			m.HandleMessage(ctx, userID, "gastei 10 no mercado")
			m.HandleMessage(ctx, userID, "sim")
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}

	// Each goroutine either confirmed its own capture or re-parsed at the
	// next-entry prompt; no interleaving may corrupt the session.
	profile := storage.profiles[userID]
	require.NotNil(t, profile)
	assert.Contains(t, AllStates, State(profile.State))
}
