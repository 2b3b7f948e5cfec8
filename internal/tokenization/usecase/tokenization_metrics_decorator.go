package usecase

import (
	"context"
	"time"

	apperrors "github.com/allisson/pantoken/internal/errors"
	"github.com/allisson/pantoken/internal/metrics"
	tokenizationDomain "github.com/allisson/pantoken/internal/tokenization/domain"
)

const metricsDomain = "tokenization"

// tokenizationUseCaseWithMetrics decorates TokenizationUseCase with metrics instrumentation.
type tokenizationUseCaseWithMetrics struct {
	next    TokenizationUseCase
	metrics metrics.BusinessMetrics
}

// NewTokenizationUseCaseWithMetrics wraps a TokenizationUseCase with metrics recording.
func NewTokenizationUseCaseWithMetrics(
	useCase TokenizationUseCase,
	m metrics.BusinessMetrics,
) TokenizationUseCase {
	return &tokenizationUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (t *tokenizationUseCaseWithMetrics) Tokenize(
	ctx context.Context,
	rawInput string,
) (*tokenizationDomain.TokenDetails, error) {
	start := time.Now()
	details, err := t.next.Tokenize(ctx, rawInput)
	t.record(ctx, "tokenize", start, err)
	return details, err
}

func (t *tokenizationUseCaseWithMetrics) Reveal(
	ctx context.Context,
	token, credential string,
) (tokenizationDomain.PAN, error) {
	start := time.Now()
	pan, err := t.next.Reveal(ctx, token, credential)
	t.record(ctx, "reveal", start, err)
	return pan, err
}

// Authorize is not a business operation and is not recorded.
func (t *tokenizationUseCaseWithMetrics) Authorize(credential string) error {
	return t.next.Authorize(credential)
}

func (t *tokenizationUseCaseWithMetrics) Describe(
	ctx context.Context,
	token string,
) (*tokenizationDomain.TokenDetails, error) {
	start := time.Now()
	details, err := t.next.Describe(ctx, token)
	t.record(ctx, "describe", start, err)
	return details, err
}

func (t *tokenizationUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := metricsStatus(err)
	t.metrics.RecordOperation(ctx, metricsDomain, operation, status)
	t.metrics.RecordDuration(ctx, metricsDomain, operation, time.Since(start), status)
}

// metricsStatus classifies err so tampering stays distinguishable from ordinary misses.
func metricsStatus(err error) string {
	switch {
	case err == nil:
		return "success"
	case apperrors.Is(err, tokenizationDomain.ErrTamperDetected):
		return "tamper_detected"
	case apperrors.Is(err, tokenizationDomain.ErrInvalidPAN):
		return "invalid_pan"
	case apperrors.Is(err, tokenizationDomain.ErrUnauthorized):
		return "unauthorized"
	case apperrors.Is(err, tokenizationDomain.ErrTokenNotFound):
		return "not_found"
	case apperrors.Is(err, tokenizationDomain.ErrStoreConflict):
		return "store_conflict"
	case apperrors.Is(err, tokenizationDomain.ErrStoreUnavailable):
		return "store_unavailable"
	case apperrors.Is(err, tokenizationDomain.ErrTokenSpaceExhausted):
		return "token_space_exhausted"
	default:
		return "error"
	}
}
