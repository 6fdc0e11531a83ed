// Package roasting turns résumé text into roast metrics by asking an LLM with a
// fixed instruction and checking the reply against the metrics contract.
package roasting

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/jonathan/resume-roaster/internal/llm"
	"github.com/jonathan/resume-roaster/internal/logging"
	"github.com/jonathan/resume-roaster/internal/prompts"
	"github.com/jonathan/resume-roaster/internal/schemas"
	"github.com/jonathan/resume-roaster/internal/types"
)

// MsgTextRequired is returned for empty or whitespace-only résumé text.
const MsgTextRequired = "Resume text is required"

// Analyzer produces roast metrics for résumé text.
type Analyzer interface {
	Analyze(ctx context.Context, resumeText string) (*types.ResumeMetrics, error)
}

// Requester is the Analyzer backed by an LLM. It keeps no per-request state:
// every Analyze makes exactly one model call.
type Requester struct {
	client llm.Client
	tier   llm.ModelTier
	system string
}

// Option customizes a Requester.
type Option func(*Requester)

// WithTier selects the model tier used for analysis. Default is TierStandard.
func WithTier(tier llm.ModelTier) Option {
	return func(r *Requester) { r.tier = tier }
}

// NewRequester creates a Requester using the embedded analysis instructions.
func NewRequester(client llm.Client, opts ...Option) *Requester {
	r := &Requester{
		client: client,
		tier:   llm.TierStandard,
		system: prompts.MustGet(prompts.RoastFile, prompts.AnalyzeResumeKey),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Analyze sends the résumé text to the model and returns validated metrics.
func (r *Requester) Analyze(ctx context.Context, resumeText string) (*types.ResumeMetrics, error) {
	if strings.TrimSpace(resumeText) == "" {
		return nil, &InputError{Message: MsgTextRequired}
	}

	logger := logging.FromContext(ctx).With(
		slog.String("component", "roasting"),
		slog.String("operation", "analyze"),
		slog.String("model", r.client.GetModel(r.tier)),
	)
	start := time.Now()

	raw, err := r.client.GenerateJSON(ctx, r.system, resumeText, r.tier)
	if err != nil {
		callErr := r.classifyCallError(err)
		logger.Error("model call failed",
			slog.Any("error", callErr),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return nil, callErr
	}

	if strings.TrimSpace(raw) == "" {
		logger.Error("model returned no content")
		return nil, &EmptyResponseError{}
	}

	metrics, err := decodeMetrics(raw)
	if err != nil {
		logger.Error("failed to parse analysis reply",
			slog.Any("error", err),
			slog.String("raw_reply", raw),
		)
		return nil, err
	}

	logger.Info("analysis complete",
		slog.Int("roast_score", int(metrics.RoastScore)),
		slog.Int("text_chars", len(resumeText)),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()),
	)
	return metrics, nil
}

func (r *Requester) classifyCallError(err error) error {
	if errors.Is(err, llm.ErrEmptyResponse) {
		return &EmptyResponseError{Cause: err}
	}

	var svcErr *llm.ServiceError
	if errors.As(err, &svcErr) {
		return &APICallError{
			Service:    svcErr.Provider.ServiceName(),
			StatusCode: svcErr.StatusCode,
			Message:    svcErr.Message,
			Cause:      err,
		}
	}

	return &APICallError{
		Service: r.client.Provider().ServiceName(),
		Message: err.Error(),
		Cause:   err,
	}
}

// decodeMetrics applies the reply contract: JSON, schema (presence and types), then ranges.
func decodeMetrics(raw string) (*types.ResumeMetrics, error) {
	cleaned := llm.CleanJSONBlock(raw)
	if !json.Valid([]byte(cleaned)) {
		return nil, &ParseError{Message: "reply is not valid JSON", Raw: raw}
	}

	if err := schemas.ValidateMetrics(cleaned); err != nil {
		var schemaErr *schemas.ValidationError
		if errors.As(err, &schemaErr) {
			return nil, &ValidationError{
				Message: "reply does not match the metrics schema",
				Field:   strings.Join(schemaErr.Fields(), ", "),
				Cause:   err,
			}
		}
		return nil, &ParseError{Message: "reply could not be checked against the metrics schema", Raw: raw, Cause: err}
	}

	var metrics types.ResumeMetrics
	if err := json.Unmarshal([]byte(cleaned), &metrics); err != nil {
		return nil, &ParseError{Message: "failed to decode metrics", Raw: raw, Cause: err}
	}

	if err := metrics.Validate(); err != nil {
		field := ""
		var rangeErr *types.RangeError
		if errors.As(err, &rangeErr) && len(rangeErr.Violations) > 0 {
			field = rangeErr.Violations[0].Field
		}
		return nil, &ValidationError{Message: "metric out of range", Field: field, Cause: err}
	}

	return &metrics, nil
}
