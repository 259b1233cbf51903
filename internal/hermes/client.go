package hermes

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

// Subjects Decoy publishes on the swarm bus.
const (
	SubjectRegistered  = "swarm.agent.decoy.registered"
	SubjectReportFiled = "swarm.decoy.report.filed"
)

// ReportFiledEvent announces that a final report was filed for a session,
// so downstream agents can pick up fresh intelligence without polling.
type ReportFiledEvent struct {
	SessionID              string `json:"session_id"`
	TotalMessagesExchanged int    `json:"total_messages_exchanged"`
	HardSignals            bool   `json:"hard_signals"`
	FiledAt                string `json:"filed_at"`
}

// Client is Decoy's connection to the hermes NATS bus. Publishing is
// best-effort; the bus being down must never affect an engagement.
type Client struct {
	conn   *nats.Conn
	logger *slog.Logger
}

func NewClient(url, token string, logger *slog.Logger) (*Client, error) {
	opts := []nats.Option{
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(60),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			logger.Info("nats reconnected")
		}),
	}
	if token != "" {
		opts = append(opts, nats.Token(token))
	}

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	return &Client{conn: nc, logger: logger}, nil
}

func (c *Client) Publish(subject string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	return c.conn.Publish(subject, payload)
}

func (c *Client) Close() {
	c.conn.Close()
}
