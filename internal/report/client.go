package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/MikeSquared-Agency/decoy/internal/intel"
	"github.com/MikeSquared-Agency/decoy/internal/metrics"
	"github.com/MikeSquared-Agency/decoy/internal/session"
)

// FinalReport is the payload filed with the intelligence-collection
// endpoint when an engagement escalates.
type FinalReport struct {
	SessionID              string       `json:"sessionId"`
	ScamDetected           bool         `json:"scamDetected"`
	TotalMessagesExchanged int          `json:"totalMessagesExchanged"`
	ExtractedIntelligence  intel.Record `json:"extractedIntelligence"`
	AgentNotes             string       `json:"agentNotes"`
}

// Client files final reports with the external collection service.
// Delivery is best-effort and at-most-once: failures are logged and
// swallowed, never retried, never surfaced to the turn path.
type Client struct {
	apiURL  string
	apiKey  string
	timeout time.Duration
	client  *http.Client
	logger  *slog.Logger
}

func NewClient(apiURL, apiKey string, timeout time.Duration, logger *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		apiURL:  apiURL,
		apiKey:  apiKey,
		timeout: timeout,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// File dispatches the report asynchronously so a slow or failing sink
// cannot inflate turn latency beyond its own timeout.
func (c *Client) File(snap session.Snapshot) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
		defer cancel()

		if err := c.Submit(ctx, snap); err != nil {
			metrics.ReportsFiled.WithLabelValues("error").Inc()
			c.logger.Warn("final report delivery failed", "session_id", snap.SessionID, "error", err)
			return
		}
		metrics.ReportsFiled.WithLabelValues("ok").Inc()
		c.logger.Info("final report filed", "session_id", snap.SessionID, "turns", snap.TurnCount)
	}()
}

// Submit posts the report synchronously and returns the delivery error.
func (c *Client) Submit(ctx context.Context, snap session.Snapshot) error {
	body, err := json.Marshal(FinalReport{
		SessionID:              snap.SessionID,
		ScamDetected:           snap.ScamConfirmed,
		TotalMessagesExchanged: snap.TurnCount,
		ExtractedIntelligence:  snap.Intelligence,
		AgentNotes:             snap.Notes,
	})
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("post report: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("report sink returned %d", resp.StatusCode)
	}
	return nil
}
