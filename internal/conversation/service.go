package conversation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/brightdoor/realty-ai-platform/internal/leads"
	"github.com/brightdoor/realty-ai-platform/internal/observability/metrics"
	"github.com/brightdoor/realty-ai-platform/pkg/logging"
)

// ErrStoreUnavailable marks a lead lookup or creation failure. The
// request cannot proceed without a lead record, so handlers surface it
// as a service-unavailable condition.
var ErrStoreUnavailable = errors.New("conversation: lead store unavailable")

// richFormattingMinWidth is the client viewport width from which replies
// are asked to use paragraphs and bullets.
const richFormattingMinWidth = 768

// UISize describes the caller's viewport, used as a formatting hint.
type UISize struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// ProcessInput is one incoming chat message.
type ProcessInput struct {
	LeadID  string
	Message string
	UISize  *UISize
}

// ProcessResult is the computed reply for one message.
type ProcessResult struct {
	Reply  string
	LeadID string
	// Warning is set when the reply was produced but could not be
	// durably persisted.
	Warning string
}

// Service runs the extract-then-respond pipeline for each message and
// serves conversation history reads.
type Service struct {
	repo         leads.Repository
	orchestrator *Orchestrator
	cache        *HistoryCache
	metrics      *metrics.Metrics
	logger       *logging.Logger
	now          func() time.Time
}

// NewService wires the message pipeline. cache and metrics may be nil.
func NewService(repo leads.Repository, orchestrator *Orchestrator, cache *HistoryCache, m *metrics.Metrics, logger *logging.Logger) *Service {
	if repo == nil {
		panic("conversation: lead repository is required")
	}
	if orchestrator == nil {
		panic("conversation: orchestrator is required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		repo:         repo,
		orchestrator: orchestrator,
		cache:        cache,
		metrics:      m,
		logger:       logger,
		now:          time.Now,
	}
}

// ProcessMessage resolves the lead, merges extracted attributes, appends
// the user turn, generates a reply, appends the bot turn and persists the
// record. A persistence failure after the reply is computed is reported
// as a warning, not an error.
func (s *Service) ProcessMessage(ctx context.Context, in ProcessInput) (ProcessResult, error) {
	lead, err := s.resolveLead(ctx, in.LeadID)
	if err != nil {
		s.metrics.IncMessage("store_error")
		return ProcessResult{}, err
	}

	if attrs := ExtractAttributes(in.Message); !attrs.Empty() {
		MergeAttributes(lead, attrs)
	}
	lead.AppendTurn(leads.SenderUser, in.Message, s.now())

	flags := PromptFlags{EnforceSingleQuestion: true}
	if in.UISize != nil && in.UISize.Width >= richFormattingMinWidth {
		flags.RichFormatting = true
	}

	reply := s.orchestrator.Reply(ctx, in.Message, lead, flags)
	lead.AppendTurn(leads.SenderBot, reply, s.now())

	result := ProcessResult{Reply: reply, LeadID: lead.ID}
	if err := s.repo.Save(ctx, lead); err != nil {
		s.logger.Error("failed to persist lead after reply", "lead_id", lead.ID, "error", err)
		s.metrics.IncMessage("save_failed")
		result.Warning = "your reply was generated but the conversation could not be saved"
		return result, nil
	}

	if err := s.cache.Save(ctx, lead.ID, lead.History); err != nil {
		s.logger.Warn("failed to refresh history cache", "lead_id", lead.ID, "error", err)
	}

	s.metrics.IncMessage("ok")
	return result, nil
}

// History returns the conversation turns for a lead in append order,
// serving from the cache when it is warm.
func (s *Service) History(ctx context.Context, leadID string) ([]leads.Turn, error) {
	if cached, err := s.cache.Load(ctx, leadID); err != nil {
		s.logger.Warn("history cache read failed", "lead_id", leadID, "error", err)
	} else if cached != nil {
		return cached, nil
	}

	lead, err := s.repo.GetByID(ctx, leadID)
	if err != nil {
		if errors.Is(err, leads.ErrLeadNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	if err := s.cache.Save(ctx, leadID, lead.History); err != nil {
		s.logger.Warn("failed to warm history cache", "lead_id", leadID, "error", err)
	}
	return lead.History, nil
}

// resolveLead loads the lead for an id, creating a fresh one when the id
// is absent or unknown. Store connectivity failures abort the request.
func (s *Service) resolveLead(ctx context.Context, id string) (*leads.Lead, error) {
	if id == "" {
		lead, err := s.repo.Create(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		return lead, nil
	}

	lead, err := s.repo.GetByID(ctx, id)
	if err == nil {
		return lead, nil
	}
	if !errors.Is(err, leads.ErrLeadNotFound) {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	lead, err = s.repo.Create(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return lead, nil
}
