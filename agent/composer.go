package agent

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"

	"github.com/jobportal/backend/logger"
	"github.com/jobportal/backend/metrics"
	"github.com/jobportal/backend/models"
	"github.com/jobportal/backend/prompts"
)

// DefaultPhraseTimeout bounds one phrase generator call
const DefaultPhraseTimeout = 15 * time.Second

// PhraseGenerator turns job summaries into a natural reply
type PhraseGenerator interface {
	ComposeReply(ctx context.Context, message string, summaries []string) (string, error)
}

// Composer builds the reply for a non-empty search result. It never fails:
// any generator problem yields ReplyFallback.
type Composer struct {
	generator PhraseGenerator
	timeout   time.Duration
	log       zerolog.Logger
}

// NewComposer creates a composer. A nil generator always uses the fallback.
func NewComposer(generator PhraseGenerator) *Composer {
	return &Composer{
		generator: generator,
		timeout:   DefaultPhraseTimeout,
		log:       logger.Component("Composer"),
	}
}

// Compose returns the reply text for the given jobs
func (c *Composer) Compose(ctx context.Context, message string, jobs []models.Job) string {
	if len(jobs) == 0 {
		return ReplyNoMatch
	}
	if c.generator == nil {
		metrics.PhraseFallbackTotal.Inc()
		return ReplyFallback
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	text, err := c.generator.ComposeReply(ctx, message, prompts.JobSummaries(jobs))
	if err != nil || strings.TrimSpace(text) == "" {
		metrics.PhraseFallbackTotal.Inc()
		c.log.Warn().Err(err).Int("jobs", len(jobs)).Msg("phrase generator failed, using fallback")
		return ReplyFallback
	}
	return text
}

// BreakerGenerator stops calling a failing generator for a while
type BreakerGenerator struct {
	next PhraseGenerator
	cb   *gobreaker.CircuitBreaker
}

// NewBreakerGenerator wraps next with a circuit breaker that opens after
// three consecutive failures and probes again after thirty seconds
func NewBreakerGenerator(name string, next PhraseGenerator) *BreakerGenerator {
	log := logger.Component("Composer")
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("phrase generator breaker state changed")
		},
	})
	return &BreakerGenerator{next: next, cb: cb}
}

// ComposeReply implements PhraseGenerator
func (b *BreakerGenerator) ComposeReply(ctx context.Context, message string, summaries []string) (string, error) {
	out, err := b.cb.Execute(func() (interface{}, error) {
		return b.next.ComposeReply(ctx, message, summaries)
	})
	if err != nil {
		return "", err
	}
	return out.(string), nil
}

// State exposes the breaker state
func (b *BreakerGenerator) State() gobreaker.State {
	return b.cb.State()
}
