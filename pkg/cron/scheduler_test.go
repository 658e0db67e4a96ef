package cron

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brazillianlabs/poupazap/internal/domain/finance"
)

// stubStorage implements only the two Storage methods the posting job uses.
type stubStorage struct {
	finance.Storage

	due     []finance.ScheduledExpense
	listErr error
	addErr  error
	posted  []finance.Transaction
}

func (s *stubStorage) ListDueScheduledExpenses(_ context.Context, dayOfMonth int) ([]finance.ScheduledExpense, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	var out []finance.ScheduledExpense
	for _, e := range s.due {
		if e.DayOfMonth == dayOfMonth {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *stubStorage) AddTransaction(_ context.Context, tx *finance.Transaction) error {
	if s.addErr != nil {
		return s.addErr
	}
	s.posted = append(s.posted, *tx)
	return nil
}

func newTestScheduler(storage finance.Storage) *Scheduler {
	return NewScheduler(storage, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestPostDueExpenses(t *testing.T) {
	today := time.Now().Day()
	storage := &stubStorage{
		due: []finance.ScheduledExpense{
			{ID: uuid.New(), UserID: "user-1", Category: "Contas", AmountMinor: 8000, DayOfMonth: today},
			{ID: uuid.New(), UserID: "user-2", Category: "Transporte", AmountMinor: 15000, DayOfMonth: today},
			{ID: uuid.New(), UserID: "user-3", Category: "Lazer", AmountMinor: 2000, DayOfMonth: today%28 + 1},
		},
	}

	newTestScheduler(storage).postDueExpenses()

	require.Len(t, storage.posted, 2)
	for _, tx := range storage.posted {
		assert.Equal(t, finance.TransactionExpense, tx.Type)
		assert.Equal(t, "Despesa agendada", tx.Description)
	}
	assert.Equal(t, int64(8000), storage.posted[0].AmountMinor)
}

func TestPostDueExpenses_ListFailure(t *testing.T) {
	storage := &stubStorage{listErr: errors.New("down")}

	newTestScheduler(storage).postDueExpenses()

	assert.Empty(t, storage.posted)
}

func TestPostDueExpenses_ContinuesPastWriteFailure(t *testing.T) {
	today := time.Now().Day()
	storage := &stubStorage{
		due:    []finance.ScheduledExpense{{ID: uuid.New(), UserID: "user-1", DayOfMonth: today}},
		addErr: errors.New("down"),
	}

	newTestScheduler(storage).postDueExpenses()

	assert.Empty(t, storage.posted)
}

func TestSchedulerStartStop(t *testing.T) {
	s := newTestScheduler(&stubStorage{})

	require.NoError(t, s.Start())
	<-s.Stop().Done()
}
