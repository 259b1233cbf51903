package processor

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/decoy/internal/hermes"
	"github.com/MikeSquared-Agency/decoy/internal/metrics"
	"github.com/MikeSquared-Agency/decoy/internal/session"
)

// DefaultSessionID is used when the transport supplies no session id.
const DefaultSessionID = "default-session"

// Fixed replies. These never go through the persona engine: one covers
// unreadable input, the other stalls senders the classifier has not
// flagged yet. Both have to read like ordinary human texts.
const (
	ReplyPleaseRepeat = "Sorry, I didn't get anything there. Could you type that again?"
	ReplyFiller       = "Hello, who is this? I don't think I have this number saved."
)

// ReplyGenerator produces the persona's next reply. Implementations fail
// open: they return a usable reply string no matter what.
type ReplyGenerator interface {
	GenerateReply(ctx context.Context, incoming string, prior []string) string
}

// Reporter files a final report, fire-and-forget.
type Reporter interface {
	File(snap session.Snapshot)
}

// Publisher puts events on the swarm bus.
type Publisher interface {
	Publish(subject string, data any) error
}

// Archiver keeps a local copy of filed reports.
type Archiver interface {
	SaveReport(ctx context.Context, snap session.Snapshot) (uuid.UUID, error)
}

const archiveTimeout = 5 * time.Second

// Processor runs the per-turn engagement pipeline: resolve session,
// classify, extract, reply, and escalate when the policy says enough has
// been gathered. Reporter, Publisher, and Archiver may be nil — the agent
// engages fine without them, it just files nothing.
type Processor struct {
	sessions *session.Store
	policy   session.Policy
	persona  ReplyGenerator
	reporter Reporter
	bus      Publisher
	archive  Archiver
	logger   *slog.Logger
}

func New(sessions *session.Store, policy session.Policy, persona ReplyGenerator, reporter Reporter, bus Publisher, archive Archiver, logger *slog.Logger) *Processor {
	return &Processor{
		sessions: sessions,
		policy:   policy,
		persona:  persona,
		reporter: reporter,
		bus:      bus,
		archive:  archive,
		logger:   logger,
	}
}

// Response is the externally visible outcome of one turn.
type Response struct {
	Status                string              `json:"status"`
	Reply                 string              `json:"reply"`
	ScamDetected          bool                `json:"scamDetected"`
	EngagementMetrics     EngagementMetrics   `json:"engagementMetrics"`
	ExtractedIntelligence map[string][]string `json:"extractedIntelligence"`
	AgentNotes            string              `json:"agentNotes"`
}

// EngagementMetrics summarizes conversation progress for the caller.
type EngagementMetrics struct {
	TotalMessagesExchanged int `json:"totalMessagesExchanged"`
}

// HandleMessage processes one inbound message for a conversation. An
// unrecognized sender is treated as the scammer — the safe default for an
// intelligence-gathering tool. The session lock is held for the whole
// turn, persona call included, so the reply and escalation decision see
// consistent state.
func (p *Processor) HandleMessage(ctx context.Context, sessionID, sender, text string) Response {
	if sessionID == "" {
		sessionID = DefaultSessionID
	}

	// Empty input mutates nothing — not even the store.
	if strings.TrimSpace(text) == "" {
		return p.emptyInputResponse(sessionID)
	}

	s := p.sessions.GetOrCreate(sessionID)
	metrics.ActiveSessions.Set(float64(p.sessions.Len()))

	s.Lock()
	defer s.Unlock()

	now := time.Now().UTC()

	// Persona-attributed messages are context only: no classification, no
	// extraction, no turn count, no reply.
	if sender == string(session.RolePersona) {
		s.AppendContext(text, now)
		metrics.MessagesProcessed.WithLabelValues("persona").Inc()
		return buildResponse("", s.Snapshot())
	}
	metrics.MessagesProcessed.WithLabelValues("scammer").Inc()

	prior := s.PriorTexts()
	wasConfirmed := s.ScamConfirmed
	s.Ingest(text, now)
	if s.ScamConfirmed && !wasConfirmed {
		metrics.ScamsConfirmed.Inc()
		p.logger.Info("scam confirmed", "session_id", s.ID, "turn", s.TurnCount)
	}

	// Only confirmed scam sessions get the persona engine; everyone else
	// gets a fixed non-committal stall.
	reply := ReplyFiller
	if s.ScamConfirmed {
		reply = p.persona.GenerateReply(ctx, text, prior)
	}
	s.AppendReply(reply, time.Now().UTC())

	if p.policy.ShouldEscalate(s) {
		p.escalate(ctx, s)
	}

	return buildResponse(reply, s.Snapshot())
}

// escalate files the final report exactly once. ReportSent is latched
// before dispatch and regardless of delivery outcome: at-most-once, by
// policy. Caller holds the session lock.
func (p *Processor) escalate(ctx context.Context, s *session.Session) {
	s.MarkReported()
	snap := s.Snapshot()

	p.logger.Info("escalating session",
		"session_id", snap.SessionID,
		"turns", snap.TurnCount,
		"payment_identifiers", len(snap.Intelligence.PaymentIdentifiers),
		"phone_numbers", len(snap.Intelligence.PhoneNumbers),
		"links", len(snap.Intelligence.Links),
	)

	if p.reporter != nil {
		p.reporter.File(snap)
	}

	if p.archive != nil {
		go func() {
			actx, cancel := context.WithTimeout(context.Background(), archiveTimeout)
			defer cancel()
			if _, err := p.archive.SaveReport(actx, snap); err != nil {
				p.logger.Warn("report archive failed", "session_id", snap.SessionID, "error", err)
			}
		}()
	}

	if p.bus != nil {
		err := p.bus.Publish(hermes.SubjectReportFiled, hermes.ReportFiledEvent{
			SessionID:              snap.SessionID,
			TotalMessagesExchanged: snap.TurnCount,
			HardSignals:            snap.Intelligence.HasHardSignal(),
			FiledAt:                time.Now().UTC().Format(time.RFC3339),
		})
		if err != nil {
			p.logger.Warn("failed to publish report event", "session_id", snap.SessionID, "error", err)
		}
	}
}

func (p *Processor) emptyInputResponse(sessionID string) Response {
	if s, ok := p.sessions.Get(sessionID); ok {
		s.Lock()
		defer s.Unlock()
		return buildResponse(ReplyPleaseRepeat, s.Snapshot())
	}
	return buildResponse(ReplyPleaseRepeat, session.Snapshot{SessionID: sessionID})
}

// SessionSnapshot exposes a session's state for the inspection API.
func (p *Processor) SessionSnapshot(sessionID string) (session.Snapshot, bool) {
	s, ok := p.sessions.Get(sessionID)
	if !ok {
		return session.Snapshot{}, false
	}
	s.Lock()
	defer s.Unlock()
	return s.Snapshot(), true
}

// SessionIDs lists live session ids.
func (p *Processor) SessionIDs() []string {
	return p.sessions.IDs()
}

func buildResponse(reply string, snap session.Snapshot) Response {
	return Response{
		Status:       "success",
		Reply:        reply,
		ScamDetected: snap.ScamConfirmed,
		EngagementMetrics: EngagementMetrics{
			TotalMessagesExchanged: snap.TurnCount,
		},
		ExtractedIntelligence: map[string][]string{
			"paymentIdentifiers": orEmpty(snap.Intelligence.PaymentIdentifiers),
			"phoneNumbers":       orEmpty(snap.Intelligence.PhoneNumbers),
			"links":              orEmpty(snap.Intelligence.Links),
			"accountNumbers":     orEmpty(snap.Intelligence.AccountNumbers),
			"emailAddresses":     orEmpty(snap.Intelligence.EmailAddresses),
			"riskKeywords":       orEmpty(snap.Intelligence.RiskKeywords),
		},
		AgentNotes: snap.Notes,
	}
}

func orEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
