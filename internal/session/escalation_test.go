package session

import (
	"testing"
	"time"
)

func TestShouldEscalate_RequiresScamConfirmed(t *testing.T) {
	p := NewPolicy(5)
	s := newSession("s1")
	for i := 0; i < 10; i++ {
		s.Ingest("hello there, lovely weather", time.Now())
	}
	if p.ShouldEscalate(s) {
		t.Error("must not escalate without a confirmed scam")
	}
}

func TestShouldEscalate_TurnThreshold(t *testing.T) {
	p := NewPolicy(5)
	s := newSession("s1")

	// Keyword-only messages: scam confirmed but no hard identifiers.
	for i := 0; i < 4; i++ {
		s.Ingest("you must verify urgently", time.Now())
		if p.ShouldEscalate(s) {
			t.Fatalf("escalated at turn %d, before threshold", s.TurnCount)
		}
	}

	s.Ingest("you must verify urgently", time.Now())
	if !p.ShouldEscalate(s) {
		t.Errorf("expected escalation at turn %d", s.TurnCount)
	}
}

func TestShouldEscalate_EarlyExitOnHardSignal(t *testing.T) {
	p := NewPolicy(5)
	s := newSession("s1")

	s.Ingest("your account is suspended", time.Now())
	s.Ingest("pay the fee at https://evil.example/fee", time.Now())

	if !p.ShouldEscalate(s) {
		t.Error("a captured link should escalate before the turn threshold")
	}
}

func TestShouldEscalate_NeverAfterReport(t *testing.T) {
	p := NewPolicy(5)
	s := newSession("s1")
	s.Ingest("verify via fraud@quickpay", time.Now())

	if !p.ShouldEscalate(s) {
		t.Fatal("expected escalation on payment identifier")
	}
	s.MarkReported()

	s.Ingest("also send to other@quickpay and call 9812345678", time.Now())
	if p.ShouldEscalate(s) {
		t.Error("escalation must fire at most once per session")
	}
}

func TestNewPolicy_DefaultThreshold(t *testing.T) {
	if p := NewPolicy(0); p.TurnThreshold != DefaultTurnThreshold {
		t.Errorf("expected default threshold %d, got %d", DefaultTurnThreshold, p.TurnThreshold)
	}
	if p := NewPolicy(3); p.TurnThreshold != 3 {
		t.Errorf("expected threshold 3, got %d", p.TurnThreshold)
	}
}
