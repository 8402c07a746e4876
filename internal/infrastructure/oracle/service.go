package oracle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/lumipay/qr-payment-service/internal/domain"
	"github.com/shopspring/decimal"
)

// targetAmountPrecision is the scale used for computed crypto amounts.
const targetAmountPrecision = 8

type ServiceConfig struct {
	Pair           string
	FallbackRate   decimal.Decimal
	RequestTimeout time.Duration
}

// Service quotes fiat->crypto conversions. The request path never blocks on
// the upstream longer than the configured timeout: a fresh cache entry wins
// outright, a failed live call falls back to the last valid cached value and
// finally to the static fallback rate.
type Service struct {
	provider domain.RateProvider
	cache    *RateCache
	history  domain.QuoteHistoryRepository
	cfg      ServiceConfig
	now      func() time.Time
}

func NewService(
	provider domain.RateProvider,
	cache *RateCache,
	history domain.QuoteHistoryRepository,
	cfg ServiceConfig,
	now func() time.Time) *Service {

	if now == nil {
		now = time.Now
	}
	return &Service{
		provider: provider,
		cache:    cache,
		history:  history,
		cfg:      cfg,
		now:      now,
	}
}

func (s *Service) Quote(ctx context.Context, sourceAmount decimal.Decimal) (*domain.OracleQuote, error) {
	rate, source, obtainedAt, err := s.resolveRate(ctx)
	if err != nil {
		return nil, err
	}

	if source == domain.QuoteSourceFallback {
		slog.Warn("quoting with static fallback rate, not suitable for settlement display without a warning",
			"pair", s.cfg.Pair, "rate", rate.String())
		s.appendHistory(rate, domain.QuoteSourceFallback, obtainedAt)
	}

	return &domain.OracleQuote{
		Pair:         s.cfg.Pair,
		SourceAmount: sourceAmount,
		TargetAmount: sourceAmount.DivRound(rate, targetAmountPrecision),
		Rate:         rate,
		Source:       source,
		ObtainedAt:   obtainedAt,
	}, nil
}

func (s *Service) resolveRate(ctx context.Context) (decimal.Decimal, domain.QuoteSource, time.Time, error) {
	if rate, at, ok := s.cache.Fresh(s.cfg.Pair); ok {
		return rate, domain.QuoteSourceCached, at, nil
	}

	rate, err := s.fetchLive(ctx)
	if err == nil {
		return rate, domain.QuoteSourceLive, s.now(), nil
	}
	slog.Error("live oracle call failed", "provider", s.provider.Name(), "pair", s.cfg.Pair, "error", err.Error())

	if rate, at, ok := s.cache.Last(s.cfg.Pair); ok {
		return rate, domain.QuoteSourceCached, at, nil
	}

	if s.cfg.FallbackRate.IsPositive() {
		return s.cfg.FallbackRate, domain.QuoteSourceFallback, s.now(), nil
	}

	return decimal.Zero, "", time.Time{}, fmt.Errorf("%w: oracle down, no cached rate, no fallback configured", domain.ErrPricingUnavailable)
}

// Refresh performs a single live fetch and warms the cache. The background
// refresher owns retries; a failed or timed-out call leaves the cache as is.
func (s *Service) Refresh(ctx context.Context) error {
	rate, err := s.fetchLive(ctx)
	if err != nil {
		return err
	}
	slog.Info("oracle rate refreshed", "pair", s.cfg.Pair, "rate", rate.String())
	return nil
}

func (s *Service) fetchLive(ctx context.Context) (decimal.Decimal, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.RequestTimeout)
	defer cancel()

	rate, err := s.provider.GetRate(ctx, s.cfg.Pair)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return decimal.Zero, fmt.Errorf("%w: %v", domain.ErrUpstreamTimeout, err)
		}
		return decimal.Zero, err
	}

	// A non-positive rate from upstream is as bad as no rate at all.
	if !rate.IsPositive() {
		return decimal.Zero, fmt.Errorf("oracle returned invalid rate %s for %s", rate.String(), s.cfg.Pair)
	}

	s.cache.Put(s.cfg.Pair, rate)
	s.appendHistory(rate, domain.QuoteSourceLive, s.now())
	return rate, nil
}

func (s *Service) appendHistory(rate decimal.Decimal, source domain.QuoteSource, at time.Time) {
	if s.history == nil {
		return
	}
	if err := s.history.Append(s.cfg.Pair, rate, source, at); err != nil {
		slog.Error("failed to append quote history", "pair", s.cfg.Pair, "error", err.Error())
	}
}
