package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/de-tools/consumption-atlas/pkg/metrics"
	"github.com/de-tools/consumption-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
)

// Service is the request-facing side of the engine. It owns the loaded dataset.
type Service interface {
	Options(ctx context.Context) domain.Options
	Recompute(ctx context.Context, filter domain.FilterState) (domain.Dashboard, error)
}

type service struct {
	dataset domain.Dataset
	options domain.Options
	metrics *metrics.Metrics
}

type Option func(*service)

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *service) {
		s.metrics = m
	}
}

func NewService(ds domain.Dataset, opts ...Option) Service {
	s := &service{
		dataset: ds,
		options: domain.NewOptions(ds),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Options(_ context.Context) domain.Options {
	return s.options
}

// Recompute validates the filter against the dataset before running the engine.
func (s *service) Recompute(ctx context.Context, filter domain.FilterState) (domain.Dashboard, error) {
	logger := zerolog.Ctx(ctx)

	if err := filter.Validate(s.dataset); err != nil {
		return domain.Dashboard{}, fmt.Errorf("recompute dashboard: %w", err)
	}

	start := time.Now()
	result := Recompute(s.dataset, filter)
	elapsed := time.Since(start)

	empty := result.Summaries == domain.UnavailableSummaries()
	s.metrics.ObserveRecompute(elapsed.Seconds(), empty)

	logger.Debug().
		Str("continent", filter.Continent).
		Strs("beverages", filter.Beverages).
		Str("strength", filter.Strength).
		Int("year", filter.Year).
		Bool("empty", empty).
		Dur("elapsed", elapsed).
		Msg("dashboard recomputed")

	return result, nil
}
