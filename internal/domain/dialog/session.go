package dialog

import (
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TempData is the scratch space a multi-step flow accumulates before a final
// storage write. It is cleared whenever the session resets to the menu.
type TempData struct {
	Amount      decimal.Decimal
	Category    string
	Description string
	CardID      *uuid.UUID
	Scheduled   bool
	IsVoice     bool

	GoalName   string
	GoalValue  decimal.Decimal
	GoalMonths int
}

// Session is the per-user conversational context. It is mutated only by
// state handlers, one message at a time.
type Session struct {
	UserID        string
	State         State
	Temp          TempData
	Categories    []string
	MonthlyBudget decimal.Decimal
}

// Reset forces the session back to the main menu and discards scratch data.
func (s *Session) Reset() {
	s.State = StateMenu
	s.Temp = TempData{}
}

// sessionStore keeps live sessions in memory, one entry per user, and
// serializes dispatch per session: a transport may deliver messages for the
// same user concurrently, but only one handler runs against a session at a
// time. Sessions for different users proceed in parallel.
type sessionStore struct {
	mu      sync.Mutex
	entries map[string]*sessionEntry
}

type sessionEntry struct {
	mu      sync.Mutex
	session *Session
}

func newSessionStore() *sessionStore {
	return &sessionStore{entries: make(map[string]*sessionEntry)}
}

// acquire returns the user's session with its per-session lock held, creating
// the entry on first contact. The caller must invoke release when done.
func (st *sessionStore) acquire(userID string) (*Session, func()) {
	st.mu.Lock()
	entry, ok := st.entries[userID]
	if !ok {
		entry = &sessionEntry{session: &Session{UserID: userID, State: StateMenu}}
		st.entries[userID] = entry
	}
	st.mu.Unlock()

	entry.mu.Lock()
	return entry.session, entry.mu.Unlock
}
