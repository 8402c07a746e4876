package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type QuoteSource string

const (
	QuoteSourceLive     QuoteSource = "LIVE"
	QuoteSourceCached   QuoteSource = "CACHED"
	QuoteSourceFallback QuoteSource = "FALLBACK"
)

// OracleQuote is an ephemeral priced conversion. It is not a first-class
// entity but every obtained rate lands in the append-only quote history.
type OracleQuote struct {
	Pair         string
	SourceAmount decimal.Decimal
	TargetAmount decimal.Decimal
	Rate         decimal.Decimal
	Source       QuoteSource
	ObtainedAt   time.Time
}

type RateProvider interface {
	GetRate(ctx context.Context, pair string) (decimal.Decimal, error)
	Name() string
}

type QuoteService interface {
	Quote(ctx context.Context, sourceAmount decimal.Decimal) (*OracleQuote, error)
}

type QuoteHistoryRepository interface {
	Append(pair string, rate decimal.Decimal, source QuoteSource, obtainedAt time.Time) error
}
