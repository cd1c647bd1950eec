package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	totalsUpsertCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "salesdash",
		Subsystem: "store",
		Name:      "totals_upserts_total",
		Help:      "Number of monthly totals rows written.",
	})
	activityUpsertCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "salesdash",
		Subsystem: "store",
		Name:      "activity_upserts_total",
		Help:      "Number of daily activity rows written.",
	})
	lastTotalsUpdateGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "salesdash",
		Subsystem: "store",
		Name:      "last_totals_update_timestamp_seconds",
		Help:      "Unix timestamp of the most recent totals upsert.",
	})
	lastActivityUpdateGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "salesdash",
		Subsystem: "store",
		Name:      "last_activity_update_timestamp_seconds",
		Help:      "Unix timestamp of the most recent activity upsert.",
	})
)

func init() {
	prometheus.MustRegister(
		totalsUpsertCounter,
		activityUpsertCounter,
		lastTotalsUpdateGauge,
		lastActivityUpdateGauge,
	)
}

// RecordTotalsUpserted bumps the totals write counter and watermark.
func RecordTotalsUpserted(ts time.Time) {
	totalsUpsertCounter.Inc()
	if !ts.IsZero() {
		lastTotalsUpdateGauge.Set(float64(ts.Unix()))
	}
}

// RecordActivityUpserted bumps the activity write counter and watermark.
func RecordActivityUpserted(ts time.Time) {
	activityUpsertCounter.Inc()
	if !ts.IsZero() {
		lastActivityUpdateGauge.Set(float64(ts.Unix()))
	}
}
