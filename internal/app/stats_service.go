package app

import (
	"context"
	"fmt"

	"bodycomp/internal/domain"
)

const (
	defaultStatsLimit = 30
	maxStatsLimit     = 366
)

// StatsService reads the body-composition measurement series. The series is
// written by the scale-import pipeline; this service only presents it.
type StatsService struct {
	repo domain.MeasurementRepository
}

// NewStatsService creates a StatsService backed by the given repository.
func NewStatsService(repo domain.MeasurementRepository) *StatsService {
	return &StatsService{repo: repo}
}

// Summary aggregates the weight series returned by Recent.
type Summary struct {
	Count  int     `json:"count"`
	Unit   string  `json:"unit"`
	Latest float64 `json:"latest"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Avg    float64 `json:"avg"`
}

// Recent returns up to limit measurements for the user, newest first, with
// weights converted to the requested unit.
func (s *StatsService) Recent(ctx context.Context, userID int64, limit int, unit string) ([]domain.Measurement, error) {
	if unit != "kg" && unit != "lb" {
		return nil, fmt.Errorf("%w: unit must be \"kg\" or \"lb\"", ErrValidation)
	}
	if limit <= 0 {
		limit = defaultStatsLimit
	}
	if limit > maxStatsLimit {
		limit = maxStatsLimit
	}

	ms, err := s.repo.ListRecentMeasurements(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	for i := range ms {
		if ms[i].Unit != unit {
			ms[i].Weight = domain.ConvertWeight(ms[i].Weight, ms[i].Unit, unit)
			ms[i].Unit = unit
		}
	}
	return ms, nil
}

// WeightSummary computes count, latest, min, max and average weight over the
// most recent measurements.
func (s *StatsService) WeightSummary(ctx context.Context, userID int64, unit string) (*Summary, error) {
	ms, err := s.Recent(ctx, userID, maxStatsLimit, unit)
	if err != nil {
		return nil, err
	}

	sum := &Summary{Unit: unit}
	if len(ms) == 0 {
		return sum, nil
	}

	sum.Count = len(ms)
	sum.Latest = ms[0].Weight
	sum.Min = ms[0].Weight
	sum.Max = ms[0].Weight

	var total float64
	for _, m := range ms {
		total += m.Weight
		if m.Weight < sum.Min {
			sum.Min = m.Weight
		}
		if m.Weight > sum.Max {
			sum.Max = m.Weight
		}
	}
	sum.Avg = total / float64(len(ms))
	return sum, nil
}
