package postgres

import (
	"context"

	"bodycomp/internal/domain"
)

// ListRecentMeasurements returns up to limit measurements for the user,
// newest first. Weights are stored in kg.
func (d *DB) ListRecentMeasurements(ctx context.Context, userID int64, limit int) ([]domain.Measurement, error) {
	rows, err := d.sql.QueryContext(ctx,
		`SELECT id, user_id, weight_kg, body_fat_pct, muscle_pct, water_pct, recorded_at
		 FROM measurements
		 WHERE user_id = $1
		 ORDER BY recorded_at DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Measurement
	for rows.Next() {
		var m domain.Measurement
		if err := rows.Scan(&m.ID, &m.UserID, &m.Weight,
			&m.BodyFatPct, &m.MusclePct, &m.WaterPct, &m.RecordedAt); err != nil {
			return nil, err
		}
		m.Unit = "kg"
		out = append(out, m)
	}
	return out, rows.Err()
}
