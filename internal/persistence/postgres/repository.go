// Package postgres provides pgx-backed persistence for the dashboard's five
// logical tables.
package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/salesdash/internal/domain"
	"example.com/salesdash/internal/observability"
)

// Repository implements domain.Repository on a pgx connection pool.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ListActiveReps returns the active roster ordered by name.
func (r *Repository) ListActiveReps(ctx context.Context) ([]domain.Rep, error) {
	const query = `SELECT id, name, team, sub_team, active FROM rep WHERE active ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanReps(rows)
}

// GetRep resolves a rep by ID regardless of active state. Returns (nil, nil)
// when the ID is unknown.
func (r *Repository) GetRep(ctx context.Context, id string) (*domain.Rep, error) {
	const query = `SELECT id, name, team, sub_team, active FROM rep WHERE id=$1`

	var rep domain.Rep
	err := r.pool.QueryRow(ctx, query, id).Scan(&rep.ID, &rep.Name, &rep.Team, &rep.SubTeam, &rep.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &rep, nil
}

// ListTargets returns all monthly targets for a month key.
func (r *Repository) ListTargets(ctx context.Context, month string) ([]domain.MonthlyTarget, error) {
	const query = `SELECT rep_id, month, tqr_target, nl_target FROM monthly_target WHERE month=$1`

	rows, err := r.pool.Query(ctx, query, month)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.MonthlyTarget, 0, 32)
	for rows.Next() {
		var t domain.MonthlyTarget
		if err := rows.Scan(&t.RepID, &t.Month, &t.TQRTarget, &t.NLTarget); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// ListTotals returns all reported totals for a month key.
func (r *Repository) ListTotals(ctx context.Context, month string) ([]domain.CurrentTotal, error) {
	const query = `SELECT rep_id, month, tqr_actual, nl_actual, updated_at FROM current_totals WHERE month=$1`

	rows, err := r.pool.Query(ctx, query, month)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.CurrentTotal, 0, 32)
	for rows.Next() {
		var t domain.CurrentTotal
		if err := rows.Scan(&t.RepID, &t.Month, &t.TQRActual, &t.NLActual, &t.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// UpsertTotals overwrites the totals row keyed on (rep_id, month).
// Last write wins; no history is retained.
func (r *Repository) UpsertTotals(ctx context.Context, total domain.CurrentTotal) error {
	const stmt = `INSERT INTO current_totals (rep_id, month, tqr_actual, nl_actual, updated_at)
        VALUES ($1,$2,$3,$4,$5)
        ON CONFLICT (rep_id, month) DO UPDATE SET
            tqr_actual=excluded.tqr_actual,
            nl_actual=excluded.nl_actual,
            updated_at=excluded.updated_at`

	_, err := r.pool.Exec(ctx, stmt, total.RepID, total.Month, total.TQRActual, total.NLActual, total.UpdatedAt)
	if err != nil {
		return err
	}
	observability.RecordTotalsUpserted(total.UpdatedAt)
	return nil
}

// ListActivityByDate returns raw activity rows for a single day, most
// recently updated first.
func (r *Repository) ListActivityByDate(ctx context.Context, date string) ([]domain.DailyActivity, error) {
	const query = `SELECT rep_id, activity_date, sdr_events, events_created, events_held, COALESCE(notes, ''), updated_at
        FROM daily_activity WHERE activity_date=$1 ORDER BY updated_at DESC`

	rows, err := r.pool.Query(ctx, query, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanActivity(rows)
}

// ListActivityByRange returns raw activity rows for an inclusive date range.
func (r *Repository) ListActivityByRange(ctx context.Context, startDate, endDate string) ([]domain.DailyActivity, error) {
	const query = `SELECT rep_id, activity_date, sdr_events, events_created, events_held, COALESCE(notes, ''), updated_at
        FROM daily_activity WHERE activity_date >= $1 AND activity_date <= $2`

	rows, err := r.pool.Query(ctx, query, startDate, endDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanActivity(rows)
}

// UpsertActivity overwrites the activity row keyed on (rep_id,
// activity_date). Last write wins; no history is retained.
func (r *Repository) UpsertActivity(ctx context.Context, activity domain.DailyActivity) error {
	const stmt = `INSERT INTO daily_activity (rep_id, activity_date, sdr_events, events_created, events_held, notes, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        ON CONFLICT (rep_id, activity_date) DO UPDATE SET
            sdr_events=excluded.sdr_events,
            events_created=excluded.events_created,
            events_held=excluded.events_held,
            notes=excluded.notes,
            updated_at=excluded.updated_at`

	_, err := r.pool.Exec(ctx, stmt,
		activity.RepID,
		activity.ActivityDate,
		activity.SDREvents,
		activity.EventsCreated,
		activity.EventsHeld,
		nullIfEmpty(activity.Notes),
		activity.UpdatedAt,
	)
	if err != nil {
		return err
	}
	observability.RecordActivityUpserted(activity.UpdatedAt)
	return nil
}

// InsertRep adds a roster entry. Reps are administered out of band; only the
// seed command uses this.
func (r *Repository) InsertRep(ctx context.Context, rep domain.Rep) error {
	const stmt = `INSERT INTO rep (id, name, team, sub_team, active) VALUES ($1,$2,$3,$4,$5)
        ON CONFLICT (id) DO UPDATE SET
            name=excluded.name,
            team=excluded.team,
            sub_team=excluded.sub_team,
            active=excluded.active`

	_, err := r.pool.Exec(ctx, stmt, rep.ID, rep.Name, rep.Team, rep.SubTeam, rep.Active)
	return err
}

// UpsertTarget writes a rep's quota for a month, keyed on (rep_id, month).
// Administered out of band; only the seed command uses this.
func (r *Repository) UpsertTarget(ctx context.Context, target domain.MonthlyTarget) error {
	const stmt = `INSERT INTO monthly_target (rep_id, month, tqr_target, nl_target) VALUES ($1,$2,$3,$4)
        ON CONFLICT (rep_id, month) DO UPDATE SET
            tqr_target=excluded.tqr_target,
            nl_target=excluded.nl_target`

	_, err := r.pool.Exec(ctx, stmt, target.RepID, target.Month, target.TQRTarget, target.NLTarget)
	return err
}

func scanReps(rows pgx.Rows) ([]domain.Rep, error) {
	out := make([]domain.Rep, 0, 32)
	for rows.Next() {
		var rep domain.Rep
		if err := rows.Scan(&rep.ID, &rep.Name, &rep.Team, &rep.SubTeam, &rep.Active); err != nil {
			return nil, err
		}
		out = append(out, rep)
	}
	return out, rows.Err()
}

func scanActivity(rows pgx.Rows) ([]domain.DailyActivity, error) {
	out := make([]domain.DailyActivity, 0, 32)
	for rows.Next() {
		var a domain.DailyActivity
		if err := rows.Scan(&a.RepID, &a.ActivityDate, &a.SDREvents, &a.EventsCreated, &a.EventsHeld, &a.Notes, &a.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func nullIfEmpty(value string) interface{} {
	if value == "" {
		return nil
	}
	return value
}
