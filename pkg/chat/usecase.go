package chat

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/shappycc2010-ctrl/HinGem/pkg/llm"
	"github.com/shappycc2010-ctrl/HinGem/pkg/telemetry"
)

const (
	SourceServer = "server"

	replyKeyMissing = "(OpenAI API key not configured on server.)"
	replyEmpty      = "(OpenAI returned empty reply)"
)

// Reply is the text returned to the user and the provider that produced it.
type Reply struct {
	Text   string `json:"reply"`
	Source string `json:"source,omitempty"`
}

// UseCase answers a single user message.
type UseCase interface {
	Reply(ctx context.Context, message string) (Reply, error)
}

// Options wires the providers. Primary is optional; Fallback is required.
type Options struct {
	Primary llm.ScoredModel
	// Threshold is a strict lower bound on Primary's confidence.
	Threshold    float64
	Fallback     llm.ScoredModel
	SystemPrompt string
	// Placeholders replaces fallback "not configured" and "empty reply"
	// errors with placeholder replies instead of returning them.
	Placeholders bool
	Logger       *zap.Logger
	Metrics      *telemetry.Metrics
}

type service struct {
	primary      llm.ScoredModel
	threshold    float64
	fallback     llm.ScoredModel
	system       string
	placeholders bool
	log          *zap.Logger
	metrics      *telemetry.Metrics
}

// NewService returns the default implementation of UseCase.
func NewService(opts Options) UseCase {
	lg := opts.Logger
	if lg == nil {
		lg = zap.NewNop()
	}
	return &service{
		primary:      opts.Primary,
		threshold:    opts.Threshold,
		fallback:     opts.Fallback,
		system:       opts.SystemPrompt,
		placeholders: opts.Placeholders,
		log:          lg,
		metrics:      opts.Metrics,
	}
}

// Reply tries the cheap provider first and keeps its answer only when it is
// confident enough; anything else goes to the fallback provider.
func (s *service) Reply(ctx context.Context, message string) (Reply, error) {
	if s.primary != nil {
		out, err := s.call(ctx, s.primary, message)
		switch {
		case err != nil:
			s.log.Warn("primary provider call failed", zap.String("provider", s.primary.Name()), zap.Error(err))
		case out.Confidence > s.threshold && out.Text != "":
			return s.done(Reply{Text: out.Text, Source: s.primary.Name()}), nil
		default:
			s.log.Debug("primary reply below threshold",
				zap.String("provider", s.primary.Name()),
				zap.Float64("confidence", out.Confidence),
				zap.Float64("threshold", s.threshold))
		}
	}

	out, err := s.call(ctx, s.fallback, message)
	if err != nil {
		if s.placeholders {
			switch {
			case errors.Is(err, llm.ErrMissingAPIKey):
				return s.done(Reply{Text: replyKeyMissing, Source: s.fallback.Name()}), nil
			case errors.Is(err, llm.ErrEmptyReply):
				return s.done(Reply{Text: replyEmpty, Source: s.fallback.Name()}), nil
			}
		}
		return Reply{}, err
	}
	return s.done(Reply{Text: strings.TrimSpace(out.Text), Source: s.fallback.Name()}), nil
}

func (s *service) call(ctx context.Context, m llm.ScoredModel, message string) (llm.Completion, error) {
	start := time.Now()
	out, err := m.Complete(ctx, s.system, message)
	if s.metrics != nil {
		s.metrics.ProviderLatency.WithLabelValues(m.Name()).Observe(time.Since(start).Seconds())
		if err != nil {
			s.metrics.ProviderErrors.WithLabelValues(m.Name()).Inc()
		}
	}
	return out, err
}

func (s *service) done(r Reply) Reply {
	if s.metrics != nil {
		s.metrics.ChatReplies.WithLabelValues(r.Source).Inc()
	}
	return r
}
