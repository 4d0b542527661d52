package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aristath/benchcompare/internal/domain"
	"github.com/aristath/benchcompare/internal/modules/comparison"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrInvalidRequest marks requests rejected before any data is fetched.
	ErrInvalidRequest = errors.New("invalid comparison request")
	// ErrUpstream marks failures of the price source.
	ErrUpstream = errors.New("price source unavailable")
)

// Request is a comparison of two symbols over a trailing window of calendar days.
type Request struct {
	SymbolA    string `json:"company1" validate:"required"`
	SymbolB    string `json:"company2" validate:"required"`
	WindowDays int    `json:"days" validate:"required,gte=1"`
}

// Outcome is a completed comparison together with the symbols and window it covers.
type Outcome struct {
	Window    domain.DateRange   `json:"window"`
	Days      int                `json:"days"`
	Benchmark string             `json:"benchmark"`
	Result    *comparison.Result `json:"result"`
}

// SymbolResolver maps user-facing names to provider tickers.
type SymbolResolver interface {
	ResolveSymbol(symbol string) string
}

// ComparisonService turns a request into a comparison.Input and runs the engine.
type ComparisonService struct {
	source        domain.PriceSource
	resolver      SymbolResolver
	benchmark     string
	maxWindowDays int
	validate      *validator.Validate
	now           func() time.Time
	log           zerolog.Logger
}

// NewComparisonService creates a new comparison service
func NewComparisonService(
	source domain.PriceSource,
	resolver SymbolResolver,
	benchmark string,
	maxWindowDays int,
	log zerolog.Logger,
) *ComparisonService {
	return &ComparisonService{
		source:        source,
		resolver:      resolver,
		benchmark:     benchmark,
		maxWindowDays: maxWindowDays,
		validate:      validator.New(),
		now:           time.Now,
		log:           log.With().Str("service", "comparison").Logger(),
	}
}

// Benchmark returns the benchmark symbol used for every comparison.
func (s *ComparisonService) Benchmark() string {
	return s.benchmark
}

// Compare validates req, fetches the three series concurrently and runs the comparison.
// Engine failures are returned as *comparison.Failure.
func (s *ComparisonService) Compare(ctx context.Context, req Request) (*Outcome, error) {
	req.SymbolA = strings.TrimSpace(req.SymbolA)
	req.SymbolB = strings.TrimSpace(req.SymbolB)

	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	symbolA := s.resolve(req.SymbolA)
	symbolB := s.resolve(req.SymbolB)
	window := domain.TrailingWindow(today(s.now()), req.WindowDays)

	log := s.log.With().
		Str("symbol_a", symbolA).
		Str("symbol_b", symbolB).
		Int("days", req.WindowDays).
		Logger()

	start := time.Now()
	input, err := s.fetchInput(ctx, symbolA, symbolB, window)
	if err != nil {
		return nil, err
	}

	result, err := comparison.Compare(input)
	if err != nil {
		log.Info().Err(err).Msg("Comparison failed")
		return nil, err
	}

	for _, undefined := range result.UndefinedMetrics() {
		log.Debug().Err(undefined).Msg("Metric undefined")
	}
	log.Info().
		Str("more_volatile", string(result.MoreVolatile)).
		Dur("duration", time.Since(start)).
		Msg("Comparison completed")

	return &Outcome{
		Window:    window,
		Days:      req.WindowDays,
		Benchmark: s.benchmark,
		Result:    result,
	}, nil
}

func (s *ComparisonService) validateRequest(req Request) error {
	if err := s.validate.Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return fmt.Errorf("%w: %s failed %q", ErrInvalidRequest, fe.Field(), fe.Tag())
		}
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	if s.maxWindowDays > 0 && req.WindowDays > s.maxWindowDays {
		return fmt.Errorf("%w: days must be at most %d", ErrInvalidRequest, s.maxWindowDays)
	}
	return nil
}

func (s *ComparisonService) fetchInput(ctx context.Context, symbolA, symbolB string, window domain.DateRange) (comparison.Input, error) {
	symbols := [3]string{symbolA, symbolB, s.benchmark}
	var series [3]domain.PriceSeries

	g, gctx := errgroup.WithContext(ctx)
	for i, symbol := range symbols {
		i, symbol := i, symbol
		g.Go(func() error {
			prices, err := s.source.GetDailyPrices(gctx, symbol, window)
			if err != nil {
				return fmt.Errorf("%w: failed to fetch %s: %w", ErrUpstream, symbol, err)
			}
			series[i] = prices
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return comparison.Input{}, err
	}

	return comparison.Input{
		A:         comparison.Instrument{Symbol: symbolA, Prices: series[0]},
		B:         comparison.Instrument{Symbol: symbolB, Prices: series[1]},
		Benchmark: comparison.Instrument{Symbol: s.benchmark, Prices: series[2]},
	}, nil
}

func (s *ComparisonService) resolve(symbol string) string {
	if s.resolver == nil {
		return symbol
	}
	return s.resolver.ResolveSymbol(symbol)
}

func today(now time.Time) time.Time {
	now = now.UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
