package session

import (
	"testing"
	"time"
)

func TestIngest_UpdatesStateMachine(t *testing.T) {
	s := newSession("s1")
	now := time.Now()

	s.Ingest("your account is blocked, verify at https://evil.example", now)

	if s.TurnCount != 1 {
		t.Errorf("expected turn count 1, got %d", s.TurnCount)
	}
	if !s.ScamConfirmed {
		t.Error("expected scam confirmed")
	}
	if len(s.Intelligence.Links) != 1 {
		t.Errorf("expected 1 link, got %v", s.Intelligence.Links)
	}
	if len(s.Transcript) != 1 || s.Transcript[0].Role != RoleScammer {
		t.Errorf("expected one scammer turn, got %+v", s.Transcript)
	}
	if s.Notes == "" {
		t.Error("expected notes to be derived")
	}
}

func TestScamConfirmed_Monotonic(t *testing.T) {
	s := newSession("s1")
	now := time.Now()

	s.Ingest("urgent: verify your kyc", now)
	if !s.ScamConfirmed {
		t.Fatal("expected scam confirmed after risky message")
	}

	s.Ingest("ok nice talking to you", now)
	if !s.ScamConfirmed {
		t.Error("scam flag must never revert to false")
	}
}

func TestMarkReported_Latches(t *testing.T) {
	s := newSession("s1")
	s.MarkReported()

	if !s.ReportSent {
		t.Error("expected report sent latched")
	}
	if s.State != StateEscalated {
		t.Errorf("expected escalated state, got %s", s.State)
	}

	// Escalated sessions keep taking turns.
	s.Ingest("send money via upi now", time.Now())
	if !s.ReportSent || s.State != StateEscalated {
		t.Error("later turns must not reset the escalation")
	}
}

func TestAppendContext_DoesNotCountOrClassify(t *testing.T) {
	s := newSession("s1")
	s.AppendContext("sure, I will click and transfer right away", time.Now())

	if s.TurnCount != 0 {
		t.Errorf("context turns must not count, got %d", s.TurnCount)
	}
	if s.ScamConfirmed {
		t.Error("context turns must not be classified")
	}
	if !s.Intelligence.Empty() {
		t.Errorf("context turns must not be extracted, got %+v", s.Intelligence)
	}
	if len(s.Transcript) != 1 || s.Transcript[0].Role != RolePersona {
		t.Errorf("context turn should still be in the transcript, got %+v", s.Transcript)
	}
}

func TestPriorTexts_Ordered(t *testing.T) {
	s := newSession("s1")
	now := time.Now()
	s.Ingest("hello urgent verify", now)
	s.AppendReply("oh no, what happened?", now)
	s.Ingest("your account is blocked", now)

	texts := s.PriorTexts()
	if len(texts) != 3 {
		t.Fatalf("expected 3 texts, got %d", len(texts))
	}
	if texts[0] != "scammer: hello urgent verify" {
		t.Errorf("unexpected first text %q", texts[0])
	}
	if texts[1] != "persona: oh no, what happened?" {
		t.Errorf("unexpected second text %q", texts[1])
	}
}

func TestSnapshot_Independent(t *testing.T) {
	s := newSession("s1")
	s.Ingest("call 9812345678", time.Now())

	snap := s.Snapshot()
	snap.Intelligence.PhoneNumbers[0] = "mutated"

	if s.Intelligence.PhoneNumbers[0] != "9812345678" {
		t.Error("snapshot shares intelligence storage with the session")
	}
	if snap.TurnCount != 1 || snap.SessionID != "s1" {
		t.Errorf("unexpected snapshot %+v", snap)
	}
}
