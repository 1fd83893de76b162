// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/evalio/callaudit/internal/adapters/llm"
	"github.com/evalio/callaudit/internal/adapters/stt"
	"github.com/evalio/callaudit/internal/domain/prompt"
	"github.com/evalio/callaudit/internal/domain/rubric"
	"github.com/evalio/callaudit/internal/domain/score"
	"github.com/evalio/callaudit/internal/domain/types"
	"github.com/evalio/callaudit/pkg/logger"
	"github.com/evalio/callaudit/pkg/metrics"
)

// Default per-call timeout for external services.
const defaultCallTimeout = 60 * time.Second

// Fixed texts substituted when the summary step cannot run. The degraded
// notices are returned whenever scoring hit a quota wall; the unavailable
// texts cover a summary call failing on its own.
const (
	DegradedFeedback       = "Overall feedback was skipped: the completion service quota was exhausted during scoring."
	DegradedObservation    = "Observation was skipped: the completion service quota was exhausted during scoring."
	FeedbackUnavailable    = "Overall feedback is unavailable due to a completion service error."
	ObservationUnavailable = "Observation is unavailable due to a completion service error."
)

// Service orchestrates one call analysis: transcription, per-parameter
// scoring, and summary generation.
type Service struct {
	mu sync.RWMutex

	// Capabilities
	transcriber stt.Transcriber
	completer   llm.Completer

	// Configuration
	params      []rubric.Parameter
	callTimeout time.Duration

	// Counters for /stats
	completed int64
	degraded  int64
	failed    int64

	// Logging
	logger     logger.Logger
	loggerOnce sync.Once
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithTranscriber sets the transcription capability.
func WithTranscriber(t stt.Transcriber) Option {
	return func(s *Service) {
		if t != nil {
			s.transcriber = t
		}
	}
}

// WithCompleter sets the completion capability.
func WithCompleter(c llm.Completer) Option {
	return func(s *Service) {
		if c != nil {
			s.completer = c
		}
	}
}

// WithRubric overrides the evaluation parameters.
func WithRubric(params []rubric.Parameter) Option {
	return func(s *Service) {
		if len(params) > 0 {
			s.params = params
		}
	}
}

// WithCallTimeout bounds each external call.
func WithCallTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.callTimeout = d
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a new Service with default configuration. Both
// capabilities must be supplied through options before Analyze is called.
func New(opts ...Option) *Service {
	s := &Service{
		params:      rubric.Table(),
		callTimeout: defaultCallTimeout,
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Analyze runs the full pipeline for one uploaded recording. A
// transcription failure aborts the request; every later failure degrades
// into default scores and explanatory text instead.
func (s *Service) Analyze(ctx context.Context, filename string, audio io.Reader) (types.AnalysisResult, error) {
	start := time.Now()
	log := s.log()
	id := uuid.NewString()

	log.Info(ctx, "analysis started",
		logger.String("analysisID", id),
		logger.String("filename", filename),
	)

	transcript, err := s.transcribe(ctx, filename, audio)
	if err != nil {
		s.count(&s.failed)
		metrics.RecordAnalysisFailed()
		log.Error(ctx, "transcription failed; aborting analysis",
			logger.String("analysisID", id),
			logger.Error(err),
		)
		return types.AnalysisResult{}, fmt.Errorf("transcribe %s: %w", filename, err)
	}

	scores, total, hitQuota := s.scoreAll(ctx, id, transcript)
	feedback, observation := s.summarize(ctx, transcript, hitQuota)

	if hitQuota {
		s.count(&s.degraded)
		metrics.RecordAnalysisDegraded()
	}
	s.count(&s.completed)
	metrics.RecordAnalysisCompleted()
	metrics.RecordAnalysisDuration(time.Since(start).Seconds())

	log.Info(ctx, "analysis completed",
		logger.String("analysisID", id),
		logger.Int("total", total),
		logger.Bool("degraded", hitQuota),
	)

	return types.AnalysisResult{
		ID:              id,
		Transcript:      transcript,
		Scores:          scores,
		OverallFeedback: feedback,
		Observation:     observation,
		Total:           total,
		MaxTotal:        rubric.MaxTotal(),
	}, nil
}

// transcribe invokes the transcription capability under the call timeout.
func (s *Service) transcribe(ctx context.Context, filename string, audio io.Reader) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	start := time.Now()
	metrics.RecordTranscriptionCall()
	transcript, err := s.transcriber.Transcribe(callCtx, filename, audio)
	metrics.RecordTranscriptionLatency(float64(time.Since(start).Milliseconds()))
	if err != nil {
		metrics.RecordTranscriptionError()
		if stt.IsQuota(err) {
			metrics.RecordQuotaExhaustion()
		}
		return "", err
	}
	return transcript, nil
}

// scoreAll scores every rubric parameter in order. Calls are sequential so
// external rate limits are respected and log ordering stays deterministic.
// The first quota error makes the run sticky-degraded: remaining parameters
// are scored from the quota sentinel without further external calls, but
// every key still lands in the map.
func (s *Service) scoreAll(ctx context.Context, id, transcript string) (map[string]int, int, bool) {
	log := s.log()
	scores := make(map[string]int, len(s.params))
	total := 0
	hitQuota := false

	for _, p := range s.params {
		reply := score.ReplyQuotaError
		if !hitQuota {
			raw, err := s.complete(ctx, prompt.ForParameter(p, transcript))
			switch {
			case err == nil:
				reply = raw
			case llm.IsQuota(err):
				hitQuota = true
				log.Warn(ctx, "completion quota exhausted; scoring remaining parameters as zero",
					logger.String("analysisID", id),
					logger.String("parameter", p.Key),
				)
			default:
				reply = score.ReplyAPIError
				log.Warn(ctx, "completion failed for parameter; defaulting to zero",
					logger.String("analysisID", id),
					logger.String("parameter", p.Key),
					logger.Error(err),
				)
			}
		}

		v := score.Parse(reply, p.Weight, p.Kind)
		scores[p.Key] = v
		total += v
	}

	return scores, total, hitQuota
}

// summarize produces the overall feedback and observation texts. Each call
// fails independently; a degraded run skips both calls outright.
func (s *Service) summarize(ctx context.Context, transcript string, degraded bool) (string, string) {
	if degraded {
		return DegradedFeedback, DegradedObservation
	}

	feedback, err := s.complete(ctx, prompt.ForFeedback(transcript))
	if err != nil {
		feedback = FeedbackUnavailable
	}
	observation, err := s.complete(ctx, prompt.ForObservation(transcript))
	if err != nil {
		observation = ObservationUnavailable
	}
	return feedback, observation
}

// complete invokes the completion capability under the call timeout.
func (s *Service) complete(ctx context.Context, p string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	start := time.Now()
	metrics.RecordCompletionCall()
	reply, err := s.completer.Complete(callCtx, p)
	metrics.RecordCompletionLatency(float64(time.Since(start).Milliseconds()))
	if err != nil {
		metrics.RecordCompletionError()
		if llm.IsQuota(err) {
			metrics.RecordQuotaExhaustion()
		}
		return "", err
	}
	return reply, nil
}

// Rubric returns the evaluation parameters this service scores against.
func (s *Service) Rubric() []rubric.Parameter {
	return s.params
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]interface{}{
		"analysesCompleted": int(s.completed),
		"analysesDegraded":  int(s.degraded),
		"analysesFailed":    int(s.failed),
		"rubricParameters":  len(s.params),
		"callTimeoutMS":     int(s.callTimeout / time.Millisecond),
	}
}

func (s *Service) count(field *int64) {
	s.mu.Lock()
	*field++
	s.mu.Unlock()
}

// log returns the configured logger, falling back to the global one.
func (s *Service) log() logger.Logger {
	s.loggerOnce.Do(func() {
		if s.logger == nil {
			s.logger = logger.Get()
		}
	})
	return s.logger
}
