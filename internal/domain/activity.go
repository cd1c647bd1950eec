package domain

import "sort"

// ActivityTotals sums a rep's activity counters over a day or a date range.
// Every rep in the supplied roster gets a row, zeroed when no activity was
// logged.
type ActivityTotals struct {
	RepID         string
	RepName       string
	Team          Team
	SubTeam       SubTeam
	SDREvents     int
	EventsCreated int
	EventsHeld    int
	Notes         string
}

// RankValue is the leaderboard metric: created plus held events. SDR events
// are displayed but never ranked.
func (t ActivityTotals) RankValue() int {
	return t.EventsCreated + t.EventsHeld
}

// AggregateActivity folds raw per-day rows into per-rep totals for the
// roster. Rows for reps outside the roster are ignored. The note carried is
// the one from the latest contributing day, which for a single-day board is
// simply that day's note. Output is sorted by rep name.
func AggregateActivity(reps []Rep, rows []DailyActivity) []ActivityTotals {
	out := make([]ActivityTotals, 0, len(reps))
	for _, rep := range reps {
		out = append(out, ActivityTotals{
			RepID:   rep.ID,
			RepName: rep.Name,
			Team:    rep.Team,
			SubTeam: rep.SubTeam,
		})
	}
	byRep := make(map[string]*ActivityTotals, len(out))
	for i := range out {
		byRep[out[i].RepID] = &out[i]
	}

	noteDate := make(map[string]string, len(reps))
	for _, row := range rows {
		totals, ok := byRep[row.RepID]
		if !ok {
			continue
		}
		totals.SDREvents += row.SDREvents
		totals.EventsCreated += row.EventsCreated
		totals.EventsHeld += row.EventsHeld
		if row.Notes != "" && row.ActivityDate >= noteDate[row.RepID] {
			totals.Notes = row.Notes
			noteDate[row.RepID] = row.ActivityDate
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RepName < out[j].RepName
	})
	return out
}

// Leaderboard orders totals by rank value descending, breaking ties
// alphabetically by rep name.
func Leaderboard(totals []ActivityTotals) []ActivityTotals {
	ranked := make([]ActivityTotals, len(totals))
	copy(ranked, totals)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].RankValue() != ranked[j].RankValue() {
			return ranked[i].RankValue() > ranked[j].RankValue()
		}
		return ranked[i].RepName < ranked[j].RepName
	})
	return ranked
}
