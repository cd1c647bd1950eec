// Package domain holds the scoring engine and business workflows for the
// sales dashboard.
package domain

import (
	"context"
	"math"
	"strings"
	"time"

	"example.com/salesdash/internal/dates"
)

// Repository captures persistence operations against the relational store.
type Repository interface {
	ListActiveReps(ctx context.Context) ([]Rep, error)
	// GetRep resolves any rep, active or not. Returns (nil, nil) when the ID
	// is unknown.
	GetRep(ctx context.Context, id string) (*Rep, error)
	ListTargets(ctx context.Context, month string) ([]MonthlyTarget, error)
	ListTotals(ctx context.Context, month string) ([]CurrentTotal, error)
	// UpsertTotals overwrites the row keyed on (rep, month).
	UpsertTotals(ctx context.Context, total CurrentTotal) error
	ListActivityByDate(ctx context.Context, date string) ([]DailyActivity, error)
	ListActivityByRange(ctx context.Context, startDate, endDate string) ([]DailyActivity, error)
	// UpsertActivity overwrites the row keyed on (rep, date).
	UpsertActivity(ctx context.Context, activity DailyActivity) error
}

// Service orchestrates dashboard reads and manual updates.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService constructs a Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// RosterFilter narrows a view to a team or sub team. Zero values mean "all".
type RosterFilter struct {
	Team    Team
	SubTeam SubTeam
}

func (f RosterFilter) matches(rep Rep) bool {
	if f.Team != "" && rep.Team != f.Team {
		return false
	}
	if f.SubTeam != "" && rep.SubTeam != f.SubTeam {
		return false
	}
	return true
}

func filterReps(reps []Rep, filter RosterFilter) []Rep {
	out := make([]Rep, 0, len(reps))
	for _, rep := range reps {
		if filter.matches(rep) {
			out = append(out, rep)
		}
	}
	return out
}

// Dashboard is the computed monthly view: scored rows plus team rollups.
type Dashboard struct {
	Month  string
	AsOf   time.Time
	Rows   []DashboardRow
	Rollup Rollup
}

// Dashboard fetches the roster, targets and totals for a month and scores
// them. asOf drives only the elapsed-ratio-in-month and defaults to now.
func (s *Service) Dashboard(ctx context.Context, month string, filter RosterFilter, asOf time.Time) (*Dashboard, error) {
	if asOf.IsZero() {
		asOf = s.now()
	}

	reps, err := s.repo.ListActiveReps(ctx)
	if err != nil {
		return nil, err
	}
	targets, err := s.repo.ListTargets(ctx, month)
	if err != nil {
		return nil, err
	}
	totals, err := s.repo.ListTotals(ctx, month)
	if err != nil {
		return nil, err
	}

	rows := BuildDashboardRows(filterReps(reps, filter), targets, totals, dates.MonthElapsedRatio(asOf))
	return &Dashboard{
		Month:  month,
		AsOf:   asOf,
		Rows:   rows,
		Rollup: BuildRollup(rows),
	}, nil
}

// BoardView selects the activity board granularity.
type BoardView string

const (
	ViewDay  BoardView = "day"
	ViewWeek BoardView = "week"
)

// ActivityBoard is the aggregated activity view for a day or a week.
type ActivityBoard struct {
	View        BoardView
	StartDate   string
	EndDate     string
	Rows        []ActivityTotals
	Leaderboard []ActivityTotals
}

// ActivityBoard aggregates raw activity rows for the requested period. For
// the day view startDate is the single day; for the week view it is the
// Monday of the week and the range spans seven days.
func (s *Service) ActivityBoard(ctx context.Context, view BoardView, startDate string, filter RosterFilter) (*ActivityBoard, error) {
	reps, err := s.repo.ListActiveReps(ctx)
	if err != nil {
		return nil, err
	}
	reps = filterReps(reps, filter)

	var raw []DailyActivity
	endDate := startDate
	switch view {
	case ViewWeek:
		endDate, err = dates.AddDays(startDate, 6)
		if err != nil {
			return nil, validationf("weekStart must be in YYYY-MM-DD format.")
		}
		raw, err = s.repo.ListActivityByRange(ctx, startDate, endDate)
	default:
		view = ViewDay
		raw, err = s.repo.ListActivityByDate(ctx, startDate)
	}
	if err != nil {
		return nil, err
	}

	rows := AggregateActivity(reps, raw)
	return &ActivityBoard{
		View:        view,
		StartDate:   startDate,
		EndDate:     endDate,
		Rows:        rows,
		Leaderboard: Leaderboard(rows),
	}, nil
}

// TotalsInput is a manual month-to-date totals update.
type TotalsInput struct {
	RepID     string
	Month     string
	TQRActual float64
	NLActual  *float64
}

// SaveTotals validates and upserts a rep's reported totals for a month.
// New-logo reps must supply an NL actual; for expansion reps any NL value is
// discarded. The rep may be inactive but must exist.
func (s *Service) SaveTotals(ctx context.Context, input TotalsInput) error {
	repID := strings.TrimSpace(input.RepID)
	if repID == "" {
		return validationf("Invalid request payload.")
	}
	if !dates.IsMonthKey(input.Month) {
		return validationf("Month must be in YYYY-MM format.")
	}
	if math.IsNaN(input.TQRActual) || math.IsInf(input.TQRActual, 0) {
		return validationf("Invalid request payload.")
	}
	if input.TQRActual < 0 {
		return validationf("TQR must be non-negative.")
	}

	rep, err := s.repo.GetRep(ctx, repID)
	if err != nil {
		return err
	}
	if rep == nil {
		return ErrRepNotFound
	}

	total := CurrentTotal{
		RepID:     repID,
		Month:     input.Month,
		TQRActual: input.TQRActual,
		UpdatedAt: s.now().UTC(),
	}

	if rep.Team == TeamNewLogo {
		if input.NLActual == nil || math.IsNaN(*input.NLActual) || math.IsInf(*input.NLActual, 0) {
			return validationf("NL value is required for New Logo reps.")
		}
		if *input.NLActual < 0 {
			return validationf("New Logo must be non-negative.")
		}
		nl := *input.NLActual
		total.NLActual = &nl
	}

	return s.repo.UpsertTotals(ctx, total)
}

// ActivityInput is a manual daily-activity update.
type ActivityInput struct {
	RepID         string
	ActivityDate  string
	SDREvents     int
	EventsCreated int
	EventsHeld    int
	Notes         string
}

// SaveActivity validates and upserts a rep's activity counts for a day. The
// rep must exist and be active. Notes are trimmed and an empty string is
// stored as absent.
func (s *Service) SaveActivity(ctx context.Context, input ActivityInput) error {
	repID := strings.TrimSpace(input.RepID)
	if repID == "" {
		return validationf("Invalid request payload.")
	}
	if !dates.IsDateKey(input.ActivityDate) {
		return validationf("Date must be in YYYY-MM-DD format.")
	}
	if input.SDREvents < 0 || input.EventsCreated < 0 || input.EventsHeld < 0 {
		return validationf("Activity values must be non-negative integers.")
	}

	rep, err := s.repo.GetRep(ctx, repID)
	if err != nil {
		return err
	}
	if rep == nil {
		return ErrRepNotFound
	}
	if !rep.Active {
		return ErrRepInactive
	}

	return s.repo.UpsertActivity(ctx, DailyActivity{
		RepID:         repID,
		ActivityDate:  input.ActivityDate,
		SDREvents:     input.SDREvents,
		EventsCreated: input.EventsCreated,
		EventsHeld:    input.EventsHeld,
		Notes:         strings.TrimSpace(input.Notes),
		UpdatedAt:     s.now().UTC(),
	})
}
