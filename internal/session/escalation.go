package session

// DefaultTurnThreshold is how many scammer turns to stall for before
// escalating on conversation length alone.
const DefaultTurnThreshold = 5

// Policy decides when an engagement has produced enough to file the final
// report. It fires once the scam is confirmed and either the conversation
// has run long enough or a hard identifier (payment handle, phone number,
// link) is already captured — no point stalling further once the
// actionable intelligence is in hand.
type Policy struct {
	TurnThreshold int
}

func NewPolicy(turnThreshold int) Policy {
	if turnThreshold <= 0 {
		turnThreshold = DefaultTurnThreshold
	}
	return Policy{TurnThreshold: turnThreshold}
}

// ShouldEscalate reports whether to file the report now. Caller holds the
// session lock. Never true once a report has been sent.
func (p Policy) ShouldEscalate(s *Session) bool {
	if !s.ScamConfirmed || s.ReportSent {
		return false
	}
	return s.TurnCount >= p.TurnThreshold || s.Intelligence.HasHardSignal()
}
