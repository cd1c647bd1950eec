package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var boardRoster = []Rep{
	{ID: "r1", Name: "Avery", Team: TeamNewLogo, SubTeam: SubTeamJustin, Active: true},
	{ID: "r2", Name: "Blake", Team: TeamNewLogo, SubTeam: SubTeamKyra, Active: true},
	{ID: "r3", Name: "Casey", Team: TeamExpansion, SubTeam: SubTeamLucy, Active: true},
}

func TestAggregateActivitySumsAcrossRange(t *testing.T) {
	rows := []DailyActivity{
		{RepID: "r1", ActivityDate: "2025-10-27", SDREvents: 2, EventsCreated: 3, EventsHeld: 1},
		{RepID: "r1", ActivityDate: "2025-10-28", SDREvents: 1, EventsCreated: 2, EventsHeld: 2},
		{RepID: "r2", ActivityDate: "2025-10-27", SDREvents: 5, EventsCreated: 1, EventsHeld: 0},
		{RepID: "ghost", ActivityDate: "2025-10-27", SDREvents: 9, EventsCreated: 9, EventsHeld: 9},
	}

	totals := AggregateActivity(boardRoster, rows)
	require.Len(t, totals, 3)

	// Sorted by name: Avery, Blake, Casey.
	require.Equal(t, "r1", totals[0].RepID)
	require.Equal(t, 3, totals[0].SDREvents)
	require.Equal(t, 5, totals[0].EventsCreated)
	require.Equal(t, 3, totals[0].EventsHeld)

	require.Equal(t, "r2", totals[1].RepID)
	require.Equal(t, 1, totals[1].RankValue())

	// Roster rep with no rows still appears, zeroed.
	require.Equal(t, "r3", totals[2].RepID)
	require.Equal(t, 0, totals[2].RankValue())
}

func TestAggregateActivityKeepsLatestNote(t *testing.T) {
	rows := []DailyActivity{
		{RepID: "r1", ActivityDate: "2025-10-27", Notes: "older"},
		{RepID: "r1", ActivityDate: "2025-10-29", Notes: "newer"},
		{RepID: "r1", ActivityDate: "2025-10-30"},
	}
	totals := AggregateActivity(boardRoster[:1], rows)
	require.Equal(t, "newer", totals[0].Notes)
}

func TestLeaderboardRanksByCreatedPlusHeld(t *testing.T) {
	totals := []ActivityTotals{
		{RepID: "r1", RepName: "Avery", SDREvents: 50, EventsCreated: 1, EventsHeld: 1},
		{RepID: "r2", RepName: "Blake", SDREvents: 0, EventsCreated: 3, EventsHeld: 2},
	}
	ranked := Leaderboard(totals)
	// SDR events never count toward rank.
	require.Equal(t, "r2", ranked[0].RepID)
	require.Equal(t, "r1", ranked[1].RepID)
}

func TestLeaderboardTieBreaksAlphabetically(t *testing.T) {
	totals := []ActivityTotals{
		{RepID: "r2", RepName: "Zoe", EventsCreated: 2, EventsHeld: 2},
		{RepID: "r1", RepName: "Amir", EventsCreated: 3, EventsHeld: 1},
	}
	ranked := Leaderboard(totals)
	require.Equal(t, 4, ranked[0].RankValue())
	require.Equal(t, 4, ranked[1].RankValue())
	require.Equal(t, "Amir", ranked[0].RepName)
	require.Equal(t, "Zoe", ranked[1].RepName)
}

func TestLeaderboardDoesNotMutateInput(t *testing.T) {
	totals := []ActivityTotals{
		{RepID: "r1", RepName: "Avery", EventsCreated: 0},
		{RepID: "r2", RepName: "Blake", EventsCreated: 5},
	}
	_ = Leaderboard(totals)
	require.Equal(t, "r1", totals[0].RepID)
}
