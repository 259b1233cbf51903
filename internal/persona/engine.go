package persona

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/MikeSquared-Agency/decoy/internal/anthropic"
	"github.com/MikeSquared-Agency/decoy/internal/metrics"
)

// FallbackReply is returned whenever the model cannot produce a reply.
// It has to read like an ordinary human text, not like an error.
const FallbackReply = "Sorry, my phone is acting up and I missed that. Could you send it once more?"

const maxReplyTokens = 256

// Engine produces the victim persona's next reply. It fails open: any
// model error, timeout, or missing client yields FallbackReply, never an
// error — the remote party must not see the system fail.
type Engine struct {
	llm     *anthropic.Client
	timeout time.Duration
	logger  *slog.Logger
}

// New builds an engine. llm may be nil, in which case every reply is the
// fallback (the agent still engages, just without generated replies).
func New(llm *anthropic.Client, timeout time.Duration, logger *slog.Logger) *Engine {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Engine{llm: llm, timeout: timeout, logger: logger}
}

// GenerateReply returns the persona's reply to incoming, given the prior
// transcript texts in order.
func (e *Engine) GenerateReply(ctx context.Context, incoming string, prior []string) string {
	if e.llm == nil {
		metrics.PersonaFallbacks.Inc()
		return FallbackReply
	}

	history := "(start of conversation)"
	if len(prior) > 0 {
		history = strings.Join(prior, "\n")
	}
	prompt := fmt.Sprintf(userPromptHeader, history, incoming)

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	reply, err := e.llm.Complete(ctx, systemPrompt, []anthropic.Message{
		{Role: "user", Content: prompt},
	}, maxReplyTokens)
	if err != nil {
		e.logger.Warn("persona generation failed, using fallback", "error", err)
		metrics.PersonaFallbacks.Inc()
		return FallbackReply
	}

	reply = strings.TrimSpace(reply)
	if reply == "" {
		metrics.PersonaFallbacks.Inc()
		return FallbackReply
	}
	return reply
}
