package intel

import (
	"strings"
	"testing"
)

func TestNotes_NoSignals(t *testing.T) {
	got := Notes(NewRecord())
	if !strings.Contains(got, "Engagement ongoing") {
		t.Errorf("expected generic note, got %q", got)
	}
}

func TestNotes_PaymentRedirectionLeads(t *testing.T) {
	rec := NewRecord()
	rec.Merge(Extract("URGENT: send to fraud@quickpay via upi immediately"))

	got := Notes(rec)
	redirIdx := strings.Index(got, "payment redirection")
	urgencyIdx := strings.Index(got, "urgency")
	if redirIdx < 0 || urgencyIdx < 0 {
		t.Fatalf("expected both redirection and urgency tactics, got %q", got)
	}
	if redirIdx > urgencyIdx {
		t.Errorf("hard-signal tactic should be listed first, got %q", got)
	}
}

func TestNotes_PhishingLink(t *testing.T) {
	rec := NewRecord()
	rec.Merge(Extract("see https://evil.example/login"))

	if got := Notes(rec); !strings.Contains(got, "phishing links") {
		t.Errorf("expected phishing note, got %q", got)
	}
}

func TestNotes_CredentialTheft(t *testing.T) {
	rec := NewRecord()
	rec.Merge(Extract("share your OTP to verify your identity"))

	if got := Notes(rec); !strings.Contains(got, "credentials or identity verification") {
		t.Errorf("expected credential-theft note, got %q", got)
	}
}

func TestNotes_StableForSameRecord(t *testing.T) {
	rec := NewRecord()
	rec.Merge(Extract("call 9812345678 now, account suspended"))

	if Notes(rec) != Notes(rec) {
		t.Error("notes must be deterministic for a given record")
	}
}
