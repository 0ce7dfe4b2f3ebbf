package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"packtv/internal/kpi"
)

const totalsColumns = `date_shift_key, day_label, shift,
    bins_per_hour, bin_hour_target_weighted,
    stamper_ppmh, packs_manhour_target_weighted,
    total_bins, bins_target_full_shift, packs_per_bin,
    bph_target_color, packs_target_color, bins_at_target_elapsed_color`

// CurrentShift returns the totals row flagged as the live shift, or nil
// when no shift is active right now. Today only, no fallback.
func (s *Store) CurrentShift(ctx context.Context) (*kpi.ShiftTotals, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+totalsColumns+`
        FROM shift_totals
        WHERE is_current_shift = 1
        LIMIT 1`)
	return scanTotals(row)
}

// ShiftForDate returns the most recent totals row for a calendar date
// (YYYY-MM-DD), or nil when the date has no shift data.
func (s *Store) ShiftForDate(ctx context.Context, date string) (*kpi.ShiftTotals, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+totalsColumns+`
        FROM shift_totals
        WHERE date_shift_key LIKE ? || '%'
        ORDER BY date_shift_key DESC
        LIMIT 1`, date)
	return scanTotals(row)
}

// Buckets returns the 10-minute KPI buckets for a date-shift key, summed
// across runs per bucket. Buckets with no elapsed minutes are excluded.
func (s *Store) Buckets(ctx context.Context, dateShiftKey string) ([]kpi.Bucket, error) {
	if dateShiftKey == "" {
		return nil, nil
	}
	rows, err := s.db.QueryContext(ctx, `SELECT
            bucket_start,
            SUM(bins_per_hour),
            AVG(bin_hour_target),
            SUM(est_packs_per_man_hour),
            AVG(packs_manhour_target),
            SUM(minutes_elapsed)
        FROM shift_buckets
        WHERE date_shift_key = ?
        AND minutes_elapsed > 0
        GROUP BY bucket_start
        ORDER BY bucket_start`, dateShiftKey)
	if err != nil {
		return nil, fmt.Errorf("querying buckets: %w", err)
	}
	defer rows.Close()
	var out []kpi.Bucket
	for rows.Next() {
		var b kpi.Bucket
		if err := rows.Scan(&b.Start, &b.BinsPerHour, &b.BinHourTarget, &b.PacksPerManHour, &b.PacksTarget, &b.MinutesElapsed); err != nil {
			return nil, fmt.Errorf("scanning bucket: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// ActiveRuns returns the distinct runs for a date-shift key. The key
// encodes "YYYY-MM-DD-<shift>"; runs are stored per date and shift.
func (s *Store) ActiveRuns(ctx context.Context, dateShiftKey string) ([]kpi.Run, error) {
	if dateShiftKey == "" {
		return nil, nil
	}
	datePart, shiftPart := splitDateShiftKey(dateShiftKey)
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT
            run_key, grower_number, variety_list, shift,
            packs_manhour_target, bin_hour_target
        FROM runs
        WHERE date_d = ?
        AND shift = ?`, datePart, shiftPart)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()
	var out []kpi.Run
	for rows.Next() {
		var r kpi.Run
		if err := rows.Scan(&r.RunKey, &r.GrowerNumber, &r.VarietyList, &r.Shift, &r.PacksManHourTarget, &r.BinHourTarget); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Snapshot composes totals, buckets, and runs for a selected date (empty
// selects the live shift). An empty database is not an error: the
// snapshot simply has nil totals.
func (s *Store) Snapshot(ctx context.Context, date string) (*kpi.Snapshot, error) {
	snap := &kpi.Snapshot{SelectedDate: date, FetchedAt: time.Now()}
	var (
		totals *kpi.ShiftTotals
		err    error
	)
	if date == "" {
		totals, err = s.CurrentShift(ctx)
	} else {
		totals, err = s.ShiftForDate(ctx, date)
	}
	if err != nil {
		return nil, err
	}
	if totals == nil {
		return snap, nil
	}
	snap.Totals = totals
	if snap.Buckets, err = s.Buckets(ctx, totals.DateShiftKey); err != nil {
		return nil, err
	}
	if snap.Runs, err = s.ActiveRuns(ctx, totals.DateShiftKey); err != nil {
		return nil, err
	}
	return snap, nil
}

// splitDateShiftKey splits "2026-08-19-1" into "2026-08-19" and "1". A
// key without a shift part yields an empty shift.
func splitDateShiftKey(key string) (date, shift string) {
	parts := strings.Split(key, "-")
	if len(parts) > 3 {
		return strings.Join(parts[:3], "-"), parts[3]
	}
	return strings.Join(parts, "-"), ""
}

func scanTotals(row *sql.Row) (*kpi.ShiftTotals, error) {
	var t kpi.ShiftTotals
	var bph, bphT, ppmh, ppmhT, bins, binsT, ppb sql.NullFloat64
	err := row.Scan(&t.DateShiftKey, &t.DayLabel, &t.Shift,
		&bph, &bphT, &ppmh, &ppmhT, &bins, &binsT, &ppb,
		&t.BPHColor, &t.PacksColor, &t.BinsColor)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning shift totals: %w", err)
	}
	t.BinsPerHour = nullable(bph)
	t.BinHourTarget = nullable(bphT)
	t.StamperPPMH = nullable(ppmh)
	t.PacksManHourTarget = nullable(ppmhT)
	t.TotalBins = nullable(bins)
	t.BinsTargetFullShift = nullable(binsT)
	t.PacksPerBin = nullable(ppb)
	return &t, nil
}

func nullable(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
