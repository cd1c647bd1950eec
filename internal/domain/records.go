package domain

import "time"

// MonthlyTarget holds a rep's quota for one month. NLTarget is nil for
// expansion reps; the NL metric is never tracked for them.
type MonthlyTarget struct {
	RepID     string
	Month     string // YYYY-MM
	TQRTarget float64
	NLTarget  *float64
}

// CurrentTotal is a rep's manually-reported month-to-date actuals. At most
// one row exists per (rep, month); writes are last-write-wins.
type CurrentTotal struct {
	RepID     string
	Month     string // YYYY-MM
	TQRActual float64
	NLActual  *float64
	UpdatedAt time.Time
}

// DailyActivity is a rep's activity counts for a single day. At most one row
// exists per (rep, date); writes are last-write-wins. Notes is "" when
// absent.
type DailyActivity struct {
	RepID         string
	ActivityDate  string // YYYY-MM-DD
	SDREvents     int
	EventsCreated int
	EventsHeld    int
	Notes         string
	UpdatedAt     time.Time
}
