package store

import (
	"context"
	"fmt"
	"time"
)

// Seed loads a demo shift into the database so a fresh install renders
// something on the TV. It replaces any existing rows for the demo key.
func (s *Store) Seed(ctx context.Context) error {
	now := time.Now()
	date := now.Format("2006-01-02")
	key := date + "-1"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting seed transaction: %w", err)
	}
	defer tx.Rollback()

	for _, del := range []struct {
		stmt string
		arg  string
	}{
		{`DELETE FROM shift_totals WHERE date_shift_key = ?`, key},
		{`DELETE FROM shift_buckets WHERE date_shift_key = ?`, key},
		{`DELETE FROM runs WHERE date_d = ?`, date},
	} {
		if _, err := tx.ExecContext(ctx, del.stmt, del.arg); err != nil {
			return fmt.Errorf("clearing demo rows: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx, `INSERT INTO shift_totals
        (date_shift_key, day_label, shift, is_current_shift,
         bins_per_hour, bin_hour_target_weighted,
         stamper_ppmh, packs_manhour_target_weighted,
         total_bins, bins_target_full_shift, packs_per_bin,
         bph_target_color, packs_target_color, bins_at_target_elapsed_color)
        VALUES (?, ?, '1', 1, 42.5, 40.0, 118.2, 125.0, 310, 640, 38.4, '#4CAF50', '#FFC107', '#FFC107')`,
		key, now.Format("Monday Jan 2")); err != nil {
		return fmt.Errorf("seeding shift totals: %w", err)
	}

	shiftStart := time.Date(now.Year(), now.Month(), now.Day(), 6, 0, 0, 0, now.Location())
	for i := 0; i < 8; i++ {
		start := shiftStart.Add(time.Duration(i) * 10 * time.Minute)
		if _, err := tx.ExecContext(ctx, `INSERT INTO shift_buckets
            (date_shift_key, bucket_start, run_key,
             bins_per_hour, bin_hour_target,
             est_packs_per_man_hour, packs_manhour_target, minutes_elapsed)
            VALUES (?, ?, 'R-4411', ?, 40.0, ?, 125.0, 10)`,
			key, start.Format("15:04"),
			36.0+float64(i%4)*3.0, 110.0+float64(i%5)*6.0); err != nil {
			return fmt.Errorf("seeding buckets: %w", err)
		}
	}

	for _, run := range [][]any{
		{"R-4411", "G-102", "Gala", 125.0, 40.0},
		{"R-4412", "G-245", "Honeycrisp, Fuji", 118.0, 38.0},
	} {
		if _, err := tx.ExecContext(ctx, `INSERT INTO runs
            (run_key, date_d, shift, grower_number, variety_list,
             packs_manhour_target, bin_hour_target)
            VALUES (?, ?, '1', ?, ?, ?, ?)`,
			run[0], date, run[1], run[2], run[3], run[4]); err != nil {
			return fmt.Errorf("seeding runs: %w", err)
		}
	}

	return tx.Commit()
}
