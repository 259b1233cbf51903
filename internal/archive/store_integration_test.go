//go:build integration

package archive

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/decoy/internal/intel"
	"github.com/MikeSquared-Agency/decoy/internal/session"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	s, err := New(ctx, dbURL)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}

	t.Cleanup(func() {
		s.Close()
	})
	return s
}

func TestIntegration_SaveReport(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	sessionID := "integration-test-" + uuid.New().String()[:8]

	rec := intel.NewRecord()
	rec.Merge(intel.Extract("urgent: send to fraud@quickpay or call 9812345678"))

	id, err := s.SaveReport(ctx, session.Snapshot{
		SessionID:     sessionID,
		State:         session.StateEscalated,
		TurnCount:     4,
		ScamConfirmed: true,
		ReportSent:    true,
		Intelligence:  rec,
		Notes:         "Observed tactics: attempts payment redirection.",
	})
	if err != nil {
		t.Fatalf("SaveReport failed: %v", err)
	}
	if id == uuid.Nil {
		t.Fatal("expected non-nil report id")
	}

	n, err := s.CountReports(ctx, sessionID)
	if err != nil {
		t.Fatalf("CountReports failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 archived report, got %d", n)
	}
}
