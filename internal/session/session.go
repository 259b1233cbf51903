package session

import (
	"sync"
	"time"

	"github.com/MikeSquared-Agency/decoy/internal/intel"
)

// State tracks where an engagement is in its lifecycle. Escalated is
// terminal only with respect to report delivery: the session keeps
// accepting turns and replying, it just never re-files the report.
type State string

const (
	StateNew       State = "new"
	StateActive    State = "active"
	StateEscalated State = "escalated"
)

// Role identifies who produced a transcript turn.
type Role string

const (
	RoleScammer Role = "scammer"
	RolePersona Role = "persona"
)

// Turn is one message in the transcript.
type Turn struct {
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Session is the per-conversation state machine. ScamConfirmed and
// ReportSent are monotonic: once true they never revert. The intelligence
// record only grows (set union), and the transcript is append-only.
//
// All mutation must happen with the session lock held; the processor holds
// it for the whole turn so the persona reply and escalation decision see
// consistent state.
type Session struct {
	mu sync.Mutex

	ID            string
	CreatedAt     time.Time
	State         State
	TurnCount     int
	ScamConfirmed bool
	ReportSent    bool
	Intelligence  intel.Record
	Transcript    []Turn
	Notes         string
}

func newSession(id string) *Session {
	return &Session{
		ID:           id,
		CreatedAt:    time.Now().UTC(),
		State:        StateActive, // NEW is transient: first contact activates immediately
		Intelligence: intel.NewRecord(),
		Notes:        intel.Notes(intel.NewRecord()),
	}
}

func (s *Session) Lock()   { s.mu.Lock() }
func (s *Session) Unlock() { s.mu.Unlock() }

// Ingest applies one inbound scammer message: transcript append, scam
// classification (one-way latch), signal extraction and ledger merge, turn
// count, and a fresh notes derivation. Caller holds the lock.
func (s *Session) Ingest(text string, now time.Time) {
	s.Transcript = append(s.Transcript, Turn{Role: RoleScammer, Text: text, Timestamp: now})

	if intel.Classify(text) {
		s.ScamConfirmed = true
	}
	s.Intelligence.Merge(intel.Extract(text))
	s.TurnCount++
	s.Notes = intel.Notes(s.Intelligence)
}

// AppendContext records a persona-attributed inbound message for transcript
// context only: it is not classified, not extracted, and not counted.
// Caller holds the lock.
func (s *Session) AppendContext(text string, now time.Time) {
	s.Transcript = append(s.Transcript, Turn{Role: RolePersona, Text: text, Timestamp: now})
}

// AppendReply records the outbound persona reply. Caller holds the lock.
func (s *Session) AppendReply(text string, now time.Time) {
	s.Transcript = append(s.Transcript, Turn{Role: RolePersona, Text: text, Timestamp: now})
}

// MarkReported latches ReportSent and moves the session to Escalated.
// Set after the delivery attempt regardless of outcome, so a permanently
// failing sink is tried at most once per session. Caller holds the lock.
func (s *Session) MarkReported() {
	s.ReportSent = true
	s.State = StateEscalated
}

// PriorTexts returns the transcript texts in order, for the persona
// engine's context window. Caller holds the lock.
func (s *Session) PriorTexts() []string {
	texts := make([]string, len(s.Transcript))
	for i, turn := range s.Transcript {
		texts[i] = string(turn.Role) + ": " + turn.Text
	}
	return texts
}

// Snapshot is an externally safe copy of session state, taken under the
// lock and handed to the report sink, the archive, and API responses.
type Snapshot struct {
	SessionID     string       `json:"sessionId"`
	State         State        `json:"state"`
	CreatedAt     time.Time    `json:"createdAt"`
	TurnCount     int          `json:"totalMessagesExchanged"`
	ScamConfirmed bool         `json:"scamDetected"`
	ReportSent    bool         `json:"reportSent"`
	Intelligence  intel.Record `json:"extractedIntelligence"`
	Notes         string       `json:"agentNotes"`
}

// Snapshot copies the externally visible state. Caller holds the lock.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		SessionID:     s.ID,
		State:         s.State,
		CreatedAt:     s.CreatedAt,
		TurnCount:     s.TurnCount,
		ScamConfirmed: s.ScamConfirmed,
		ReportSent:    s.ReportSent,
		Intelligence:  s.Intelligence.Clone(),
		Notes:         s.Notes,
	}
}
