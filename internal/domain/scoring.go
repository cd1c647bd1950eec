package domain

import "sort"

// PaceStatus classifies month-to-date progress against the linear pace line.
type PaceStatus string

const (
	PaceOnTrack PaceStatus = "on_track"
	PaceAtRisk  PaceStatus = "at_risk"
	PaceBehind  PaceStatus = "behind"
)

// atRiskFloor is the actual/expected ratio below which a rep drops from
// at_risk to behind.
const atRiskFloor = 0.9

// New-logo weighted score blend: NL attainment dominates.
const (
	nlWeight  = 0.7
	tqrWeight = 0.3
)

// DashboardRow is the computed attainment/pace view for one rep in one
// month. Rows are derived on every request and never persisted. NL fields
// are nil for expansion reps and when no NL target exists.
type DashboardRow struct {
	RepID   string
	RepName string
	Team    Team
	SubTeam SubTeam

	TQRActual         float64
	TQRTarget         float64
	TQRExpectedToDate float64
	TQRGapToPace      float64
	TQRAttainment     float64

	NLActual         *float64
	NLTarget         *float64
	NLExpectedToDate *float64
	NLGapToPace      *float64
	NLAttainment     *float64

	WeightedScore          float64
	WeightedExpectedToDate float64
	WeightedGapToPace      float64

	PaceStatus PaceStatus
}

// TeamRollup aggregates one team's rows. NL sums are only meaningful for the
// new_logo team and stay zero for expansion.
type TeamRollup struct {
	TQRActual       float64
	TQRTarget       float64
	NLActual        float64
	NLTarget        float64
	WeightedAverage float64
}

// Rollup holds both team aggregates for a dashboard.
type Rollup struct {
	Expansion TeamRollup
	NewLogo   TeamRollup
}

// Attainment returns actual/target, defining zero-or-negative targets as 0%
// attained so a rep without a quota is never counted as on pace through this
// ratio alone.
func Attainment(actual, target float64) float64 {
	if target <= 0 {
		return 0
	}
	return actual / target
}

// ExpectedToDate is the pace line: the share of target that should be done
// by now assuming linear progress through the month.
func ExpectedToDate(target, elapsedRatio float64) float64 {
	if target <= 0 {
		return 0
	}
	return target * elapsedRatio
}

// GapToPace is the deficit against the pace line, floored at zero.
func GapToPace(expected, actual float64) float64 {
	if gap := expected - actual; gap > 0 {
		return gap
	}
	return 0
}

// paceStatus buckets actual progress against the pace line for a single
// metric. No target (or no elapsed time) means nothing to miss.
func paceStatus(actual, target, elapsedRatio float64) PaceStatus {
	if target <= 0 {
		return PaceOnTrack
	}
	expected := ExpectedToDate(target, elapsedRatio)
	if expected <= 0 {
		return PaceOnTrack
	}
	return bucket(actual / expected)
}

// weightedPaceStatus buckets the 0-100 composite score against a pace line
// of elapsedRatio*100. This is the canonical rule for new_logo reps; TQR and
// NL are never classified separately.
func weightedPaceStatus(weightedScore, elapsedRatio float64) PaceStatus {
	expected := elapsedRatio * 100
	if expected <= 0 {
		return PaceOnTrack
	}
	return bucket(weightedScore / expected)
}

func bucket(ratioVsExpected float64) PaceStatus {
	switch {
	case ratioVsExpected >= 1:
		return PaceOnTrack
	case ratioVsExpected >= atRiskFloor:
		return PaceAtRisk
	default:
		return PaceBehind
	}
}

// weightedScore blends attainments into the 0-100 composite. Expansion reps
// score on TQR alone; new_logo reps blend NL and TQR, with a missing NL
// attainment counting as zero.
func weightedScore(team Team, tqrAttainment float64, nlAttainment *float64) float64 {
	if team == TeamExpansion {
		return tqrAttainment * 100
	}
	nl := 0.0
	if nlAttainment != nil {
		nl = *nlAttainment
	}
	return (nl*nlWeight + tqrAttainment*tqrWeight) * 100
}

// BuildDashboardRows computes per-rep rows from the roster, the month's
// targets and the month's reported totals. elapsedRatio is the share of the
// month elapsed at the as-of instant. Rows are sorted descending by weighted
// score; ties keep roster order.
func BuildDashboardRows(reps []Rep, targets []MonthlyTarget, totals []CurrentTotal, elapsedRatio float64) []DashboardRow {
	targetByRep := make(map[string]MonthlyTarget, len(targets))
	for _, t := range targets {
		targetByRep[t.RepID] = t
	}
	totalByRep := make(map[string]CurrentTotal, len(totals))
	for _, t := range totals {
		totalByRep[t.RepID] = t
	}

	rows := make([]DashboardRow, 0, len(reps))
	for _, rep := range reps {
		target := targetByRep[rep.ID]
		total := totalByRep[rep.ID]

		row := DashboardRow{
			RepID:     rep.ID,
			RepName:   rep.Name,
			Team:      rep.Team,
			SubTeam:   rep.SubTeam,
			TQRActual: total.TQRActual,
			TQRTarget: target.TQRTarget,
		}

		row.TQRExpectedToDate = ExpectedToDate(row.TQRTarget, elapsedRatio)
		row.TQRGapToPace = GapToPace(row.TQRExpectedToDate, row.TQRActual)
		row.TQRAttainment = Attainment(row.TQRActual, row.TQRTarget)

		if rep.Team == TeamNewLogo {
			nlActual := 0.0
			if total.NLActual != nil {
				nlActual = *total.NLActual
			}
			row.NLActual = &nlActual

			if target.NLTarget != nil {
				nlTarget := *target.NLTarget
				row.NLTarget = &nlTarget
				nlExpected := ExpectedToDate(nlTarget, elapsedRatio)
				row.NLExpectedToDate = &nlExpected
				nlGap := GapToPace(nlExpected, nlActual)
				row.NLGapToPace = &nlGap
				nlAttainment := Attainment(nlActual, nlTarget)
				row.NLAttainment = &nlAttainment
			}
		}

		row.WeightedScore = weightedScore(rep.Team, row.TQRAttainment, row.NLAttainment)
		row.WeightedExpectedToDate = elapsedRatio * 100
		row.WeightedGapToPace = GapToPace(row.WeightedExpectedToDate, row.WeightedScore)

		if rep.Team == TeamExpansion {
			row.PaceStatus = paceStatus(row.TQRActual, row.TQRTarget, elapsedRatio)
		} else {
			row.PaceStatus = weightedPaceStatus(row.WeightedScore, elapsedRatio)
		}

		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].WeightedScore > rows[j].WeightedScore
	})
	return rows
}

// BuildRollup aggregates rows into per-team sums and a simple-mean weighted
// average. Empty teams roll up to zeros rather than NaN.
func BuildRollup(rows []DashboardRow) Rollup {
	var out Rollup
	var expansionCount, newLogoCount int
	var expansionScoreSum, newLogoScoreSum float64

	for _, row := range rows {
		switch row.Team {
		case TeamExpansion:
			out.Expansion.TQRActual += row.TQRActual
			out.Expansion.TQRTarget += row.TQRTarget
			expansionScoreSum += row.WeightedScore
			expansionCount++
		case TeamNewLogo:
			out.NewLogo.TQRActual += row.TQRActual
			out.NewLogo.TQRTarget += row.TQRTarget
			if row.NLActual != nil {
				out.NewLogo.NLActual += *row.NLActual
			}
			if row.NLTarget != nil {
				out.NewLogo.NLTarget += *row.NLTarget
			}
			newLogoScoreSum += row.WeightedScore
			newLogoCount++
		}
	}

	if expansionCount > 0 {
		out.Expansion.WeightedAverage = expansionScoreSum / float64(expansionCount)
	}
	if newLogoCount > 0 {
		out.NewLogo.WeightedAverage = newLogoScoreSum / float64(newLogoCount)
	}
	return out
}
