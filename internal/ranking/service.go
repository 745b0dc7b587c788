package ranking

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/MikeSquared-Agency/RuralPriority/internal/metrics"
	"github.com/MikeSquared-Agency/RuralPriority/internal/store"
)

// Service answers ranking queries against a Source. Every call loads the
// table afresh; nothing is cached between calls.
type Service struct {
	source store.Source
	logger *slog.Logger
}

func NewService(src store.Source, logger *slog.Logger) *Service {
	return &Service{source: src, logger: logger}
}

func (s *Service) load(ctx context.Context) (*store.Table, error) {
	start := time.Now()
	t, err := s.source.Load(ctx)
	if err != nil {
		metrics.SourceLoadDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		return nil, fmt.Errorf("load source: %w", err)
	}
	metrics.SourceLoadDuration.WithLabelValues("ok").Observe(time.Since(start).Seconds())
	metrics.SourceRows.Set(float64(t.Len()))
	s.logger.Debug("source loaded", "rows", t.Len(), "duration_ms", time.Since(start).Milliseconds())
	return t, nil
}

func (s *Service) Districts(ctx context.Context) ([]string, error) {
	t, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return Districts(t), nil
}

func (s *Service) Priorities(ctx context.Context) ([]PriorityRow, error) {
	t, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := Priorities(t)
	if err != nil {
		s.logger.Warn("priorities: scoring failed", "error", err)
		return nil, err
	}
	return rows, nil
}

func (s *Service) DistrictPriorityIndex(ctx context.Context) ([]DistrictIndex, error) {
	t, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	out, err := DistrictPriorityIndex(t)
	if err != nil {
		s.logger.Warn("district index: scoring failed", "error", err)
		return nil, err
	}
	return out, nil
}

func (s *Service) Talukas(ctx context.Context, district string) ([]string, error) {
	t, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return Talukas(t, district), nil
}

func (s *Service) TalukaBudgetSplit(ctx context.Context, district string) ([]TalukaBudget, error) {
	t, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	out, err := TalukaBudgetSplit(t, district)
	if err != nil {
		s.logger.Warn("taluka budget: scoring failed", "district", district, "error", err)
		return nil, err
	}
	return out, nil
}

func (s *Service) TalukaPriorities(ctx context.Context, taluka string) ([]TalukaPriority, error) {
	t, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	out, err := TalukaPriorities(t, taluka)
	if err != nil {
		s.logger.Warn("taluka priorities: scoring failed", "taluka", taluka, "error", err)
		return nil, err
	}
	return out, nil
}

func (s *Service) BudgetAllocation(ctx context.Context, totalBudget int) ([]Allocation, error) {
	t, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	out, err := BudgetAllocation(t, totalBudget)
	if err != nil {
		s.logger.Warn("budget allocation: scoring failed", "error", err)
		return nil, err
	}
	return out, nil
}
