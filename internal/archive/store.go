package archive

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MikeSquared-Agency/decoy/internal/session"
)

// Store keeps a local record of filed reports so intelligence survives the
// external collection endpoint being down. It archives reports only —
// live sessions are never persisted.
//
// Expected table:
//
//	CREATE TABLE honeypot_reports (
//	    id                 uuid PRIMARY KEY,
//	    session_id         text NOT NULL,
//	    scam_detected      boolean NOT NULL,
//	    messages_exchanged integer NOT NULL,
//	    intelligence       jsonb NOT NULL,
//	    agent_notes        text NOT NULL,
//	    filed_at           timestamptz NOT NULL DEFAULT now()
//	);
type Store struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	s.pool.Close()
}

// SaveReport archives one filed report and returns its id.
func (s *Store) SaveReport(ctx context.Context, snap session.Snapshot) (uuid.UUID, error) {
	intelJSON, err := json.Marshal(snap.Intelligence)
	if err != nil {
		return uuid.Nil, fmt.Errorf("marshal intelligence: %w", err)
	}

	id := uuid.New()
	_, err = s.pool.Exec(ctx, `
		INSERT INTO honeypot_reports (id, session_id, scam_detected, messages_exchanged, intelligence, agent_notes, filed_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())`,
		id, snap.SessionID, snap.ScamConfirmed, snap.TurnCount, intelJSON, snap.Notes,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert report: %w", err)
	}
	return id, nil
}

// CountReports returns how many reports are archived for a session id.
func (s *Store) CountReports(ctx context.Context, sessionID string) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx,
		`SELECT count(*) FROM honeypot_reports WHERE session_id = $1`, sessionID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count reports: %w", err)
	}
	return n, nil
}
