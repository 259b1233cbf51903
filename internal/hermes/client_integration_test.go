//go:build integration

package hermes

import (
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
)

func skipWithoutNATS(t *testing.T) string {
	t.Helper()
	url := os.Getenv("NATS_URL")
	if url == "" {
		t.Skip("NATS_URL not set, skipping integration test")
	}
	return url
}

func TestIntegration_PublishReportFiled(t *testing.T) {
	natsURL := skipWithoutNATS(t)

	client, err := NewClient(natsURL, os.Getenv("NATS_TOKEN"), slog.Default())
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	defer client.Close()

	// Raw subscriber to observe what the publisher puts on the wire.
	nc, err := nats.Connect(natsURL)
	if err != nil {
		t.Fatalf("raw connect: %v", err)
	}
	defer nc.Close()

	received := make(chan *nats.Msg, 1)
	sub, err := nc.ChanSubscribe(SubjectReportFiled, received)
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	defer sub.Unsubscribe()

	// Give subscription time to propagate
	time.Sleep(100 * time.Millisecond)

	err = client.Publish(SubjectReportFiled, ReportFiledEvent{
		SessionID:              "integration-test",
		TotalMessagesExchanged: 3,
		HardSignals:            true,
		FiledAt:                time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	select {
	case msg := <-received:
		if len(msg.Data) == 0 {
			t.Error("expected event payload")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("event never arrived")
	}
}
