package domain

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakeRepo is an in-memory Repository with the store's keyed-upsert
// semantics.
type fakeRepo struct {
	reps     map[string]Rep
	targets  map[string]MonthlyTarget // rep|month
	totals   map[string]CurrentTotal  // rep|month
	activity map[string]DailyActivity // rep|date
	failWith error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		reps:     map[string]Rep{},
		targets:  map[string]MonthlyTarget{},
		totals:   map[string]CurrentTotal{},
		activity: map[string]DailyActivity{},
	}
}

func (f *fakeRepo) addRep(rep Rep) { f.reps[rep.ID] = rep }

func (f *fakeRepo) ListActiveReps(ctx context.Context) ([]Rep, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	out := make([]Rep, 0, len(f.reps))
	for _, rep := range f.reps {
		if rep.Active {
			out = append(out, rep)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetRep(ctx context.Context, id string) (*Rep, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	rep, ok := f.reps[id]
	if !ok {
		return nil, nil
	}
	return &rep, nil
}

func (f *fakeRepo) ListTargets(ctx context.Context, month string) ([]MonthlyTarget, error) {
	out := []MonthlyTarget{}
	for _, t := range f.targets {
		if t.Month == month {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListTotals(ctx context.Context, month string) ([]CurrentTotal, error) {
	out := []CurrentTotal{}
	for _, t := range f.totals {
		if t.Month == month {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeRepo) UpsertTotals(ctx context.Context, total CurrentTotal) error {
	f.totals[total.RepID+"|"+total.Month] = total
	return nil
}

func (f *fakeRepo) ListActivityByDate(ctx context.Context, date string) ([]DailyActivity, error) {
	out := []DailyActivity{}
	for _, a := range f.activity {
		if a.ActivityDate == date {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListActivityByRange(ctx context.Context, startDate, endDate string) ([]DailyActivity, error) {
	out := []DailyActivity{}
	for _, a := range f.activity {
		if a.ActivityDate >= startDate && a.ActivityDate <= endDate {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeRepo) UpsertActivity(ctx context.Context, activity DailyActivity) error {
	f.activity[activity.RepID+"|"+activity.ActivityDate] = activity
	return nil
}

func newTestService(repo *fakeRepo) *Service {
	svc := NewService(repo)
	svc.now = func() time.Time {
		return time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
	}
	return svc
}

func TestSaveTotalsValidation(t *testing.T) {
	repo := newFakeRepo()
	repo.addRep(Rep{ID: "nl-1", Name: "Riley", Team: TeamNewLogo, SubTeam: SubTeamJustin, Active: true})
	svc := newTestService(repo)
	ctx := context.Background()

	var verr *ValidationError

	err := svc.SaveTotals(ctx, TotalsInput{RepID: "", Month: "2025-06", TQRActual: 10})
	require.ErrorAs(t, err, &verr)

	err = svc.SaveTotals(ctx, TotalsInput{RepID: "nl-1", Month: "June 2025", TQRActual: 10})
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "Month must be in YYYY-MM format.", verr.Msg)

	err = svc.SaveTotals(ctx, TotalsInput{RepID: "nl-1", Month: "2025-06", TQRActual: -5, NLActual: f(1)})
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "TQR must be non-negative.", verr.Msg)
}

func TestSaveTotalsRequiresNLForNewLogo(t *testing.T) {
	repo := newFakeRepo()
	repo.addRep(Rep{ID: "nl-1", Name: "Riley", Team: TeamNewLogo, SubTeam: SubTeamJustin, Active: true})
	svc := newTestService(repo)

	err := svc.SaveTotals(context.Background(), TotalsInput{RepID: "nl-1", Month: "2025-06", TQRActual: 100})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "NL value is required for New Logo reps.", verr.Msg)

	err = svc.SaveTotals(context.Background(), TotalsInput{RepID: "nl-1", Month: "2025-06", TQRActual: 100, NLActual: f(-1)})
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "New Logo must be non-negative.", verr.Msg)

	require.NoError(t, svc.SaveTotals(context.Background(), TotalsInput{RepID: "nl-1", Month: "2025-06", TQRActual: 100, NLActual: f(3)}))
	stored := repo.totals["nl-1|2025-06"]
	require.NotNil(t, stored.NLActual)
	require.Equal(t, 3.0, *stored.NLActual)
}

func TestSaveTotalsForcesNLAbsentForExpansion(t *testing.T) {
	repo := newFakeRepo()
	repo.addRep(Rep{ID: "ex-1", Name: "Avery", Team: TeamExpansion, SubTeam: SubTeamLucy, Active: true})
	svc := newTestService(repo)

	// Client sends an NL value anyway; the server discards it.
	err := svc.SaveTotals(context.Background(), TotalsInput{RepID: "ex-1", Month: "2025-06", TQRActual: 100, NLActual: f(7)})
	require.NoError(t, err)
	require.Nil(t, repo.totals["ex-1|2025-06"].NLActual)
}

func TestSaveTotalsAllowsInactiveRepButNotUnknown(t *testing.T) {
	repo := newFakeRepo()
	repo.addRep(Rep{ID: "ex-1", Name: "Avery", Team: TeamExpansion, SubTeam: SubTeamLucy, Active: false})
	svc := newTestService(repo)

	require.NoError(t, svc.SaveTotals(context.Background(), TotalsInput{RepID: "ex-1", Month: "2025-06", TQRActual: 10}))

	err := svc.SaveTotals(context.Background(), TotalsInput{RepID: "ghost", Month: "2025-06", TQRActual: 10})
	require.ErrorIs(t, err, ErrRepNotFound)
}

func TestSaveTotalsLastWriteWins(t *testing.T) {
	repo := newFakeRepo()
	repo.addRep(Rep{ID: "ex-1", Name: "Avery", Team: TeamExpansion, SubTeam: SubTeamLucy, Active: true})
	svc := newTestService(repo)
	ctx := context.Background()

	require.NoError(t, svc.SaveTotals(ctx, TotalsInput{RepID: "ex-1", Month: "2025-06", TQRActual: 100}))
	require.NoError(t, svc.SaveTotals(ctx, TotalsInput{RepID: "ex-1", Month: "2025-06", TQRActual: 250}))

	require.Len(t, repo.totals, 1)
	require.Equal(t, 250.0, repo.totals["ex-1|2025-06"].TQRActual)
}

func TestSaveActivityValidation(t *testing.T) {
	repo := newFakeRepo()
	repo.addRep(Rep{ID: "r1", Name: "Avery", Team: TeamExpansion, SubTeam: SubTeamLucy, Active: true})
	repo.addRep(Rep{ID: "r2", Name: "Blake", Team: TeamExpansion, SubTeam: SubTeamLucy, Active: false})
	svc := newTestService(repo)
	ctx := context.Background()

	var verr *ValidationError

	err := svc.SaveActivity(ctx, ActivityInput{RepID: "r1", ActivityDate: "27/10/2025"})
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "Date must be in YYYY-MM-DD format.", verr.Msg)

	err = svc.SaveActivity(ctx, ActivityInput{RepID: "r1", ActivityDate: "2025-10-27", SDREvents: -1})
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "Activity values must be non-negative integers.", verr.Msg)

	err = svc.SaveActivity(ctx, ActivityInput{RepID: "ghost", ActivityDate: "2025-10-27"})
	require.ErrorIs(t, err, ErrRepNotFound)

	err = svc.SaveActivity(ctx, ActivityInput{RepID: "r2", ActivityDate: "2025-10-27"})
	require.ErrorIs(t, err, ErrRepInactive)
}

func TestSaveActivityTrimsNotes(t *testing.T) {
	repo := newFakeRepo()
	repo.addRep(Rep{ID: "r1", Name: "Avery", Team: TeamExpansion, SubTeam: SubTeamLucy, Active: true})
	svc := newTestService(repo)

	err := svc.SaveActivity(context.Background(), ActivityInput{
		RepID:         "r1",
		ActivityDate:  "2025-10-27",
		SDREvents:     1,
		EventsCreated: 2,
		EventsHeld:    3,
		Notes:         "  good day  ",
	})
	require.NoError(t, err)
	require.Equal(t, "good day", repo.activity["r1|2025-10-27"].Notes)

	err = svc.SaveActivity(context.Background(), ActivityInput{
		RepID:        "r1",
		ActivityDate: "2025-10-28",
		Notes:        "   ",
	})
	require.NoError(t, err)
	require.Equal(t, "", repo.activity["r1|2025-10-28"].Notes)
}

func TestDashboardFiltersRoster(t *testing.T) {
	repo := newFakeRepo()
	repo.addRep(Rep{ID: "e1", Name: "Avery", Team: TeamExpansion, SubTeam: SubTeamLucy, Active: true})
	repo.addRep(Rep{ID: "n1", Name: "Riley", Team: TeamNewLogo, SubTeam: SubTeamJustin, Active: true})
	repo.addRep(Rep{ID: "gone", Name: "Old", Team: TeamExpansion, SubTeam: SubTeamLucy, Active: false})
	svc := newTestService(repo)

	dash, err := svc.Dashboard(context.Background(), "2025-06", RosterFilter{Team: TeamExpansion}, time.Time{})
	require.NoError(t, err)
	require.Equal(t, "2025-06", dash.Month)
	require.Len(t, dash.Rows, 1)
	require.Equal(t, "e1", dash.Rows[0].RepID)

	dash, err = svc.Dashboard(context.Background(), "2025-06", RosterFilter{}, time.Time{})
	require.NoError(t, err)
	require.Len(t, dash.Rows, 2)
}

func TestActivityBoardWeekRange(t *testing.T) {
	repo := newFakeRepo()
	repo.addRep(Rep{ID: "r1", Name: "Avery", Team: TeamExpansion, SubTeam: SubTeamLucy, Active: true})
	repo.activity["r1|2025-10-27"] = DailyActivity{RepID: "r1", ActivityDate: "2025-10-27", EventsCreated: 2}
	repo.activity["r1|2025-11-02"] = DailyActivity{RepID: "r1", ActivityDate: "2025-11-02", EventsHeld: 1}
	repo.activity["r1|2025-11-03"] = DailyActivity{RepID: "r1", ActivityDate: "2025-11-03", EventsHeld: 9} // next week
	svc := newTestService(repo)

	board, err := svc.ActivityBoard(context.Background(), ViewWeek, "2025-10-27", RosterFilter{})
	require.NoError(t, err)
	require.Equal(t, ViewWeek, board.View)
	require.Equal(t, "2025-10-27", board.StartDate)
	require.Equal(t, "2025-11-02", board.EndDate)
	require.Len(t, board.Rows, 1)
	require.Equal(t, 3, board.Rows[0].RankValue())
}

func TestActivityBoardDayView(t *testing.T) {
	repo := newFakeRepo()
	repo.addRep(Rep{ID: "r1", Name: "Avery", Team: TeamExpansion, SubTeam: SubTeamLucy, Active: true})
	repo.activity["r1|2025-10-27"] = DailyActivity{RepID: "r1", ActivityDate: "2025-10-27", EventsCreated: 2, Notes: "demo booked"}
	svc := newTestService(repo)

	board, err := svc.ActivityBoard(context.Background(), ViewDay, "2025-10-27", RosterFilter{})
	require.NoError(t, err)
	require.Equal(t, "2025-10-27", board.EndDate)
	require.Len(t, board.Rows, 1)
	require.Equal(t, "demo booked", board.Rows[0].Notes)
	require.Len(t, board.Leaderboard, 1)
}
