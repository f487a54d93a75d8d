package domain

import (
	"context"
	"time"
)

// Measurement is a single body-composition reading. Weight is stored in kg;
// the Unit field reflects any conversion applied for presentation.
type Measurement struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"userId"`
	Weight     float64   `json:"weight"`
	Unit       string    `json:"unit"`
	BodyFatPct *float64  `json:"bodyFatPct,omitempty"`
	MusclePct  *float64  `json:"musclePct,omitempty"`
	WaterPct   *float64  `json:"waterPct,omitempty"`
	RecordedAt time.Time `json:"recordedAt"`
}

// MeasurementRepository is the read-only port for the statistics table.
// Measurements are written by the scale-import pipeline outside this service.
type MeasurementRepository interface {
	ListRecentMeasurements(ctx context.Context, userID int64, limit int) ([]Measurement, error)
}
