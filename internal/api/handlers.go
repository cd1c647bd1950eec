// Package api exposes HTTP handlers for the sales dashboard.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"example.com/salesdash/internal/auth"
	"example.com/salesdash/internal/dates"
	"example.com/salesdash/internal/domain"
)

// Handler coordinates HTTP requests with the domain service.
type Handler struct {
	service *domain.Service
	// dailyActivityEnabled is the process-wide feature flag for the whole
	// activity subsystem, threaded in from config at startup.
	dailyActivityEnabled bool
	now                  func() time.Time
}

// NewHandler builds a Handler.
func NewHandler(service *domain.Service, dailyActivityEnabled bool) *Handler {
	return &Handler{
		service:              service,
		dailyActivityEnabled: dailyActivityEnabled,
		now:                  time.Now,
	}
}

// RegisterRoutes wires endpoints to the mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/v1/dashboard", h.dashboard)
	mux.HandleFunc("/v1/activity", h.activity)
	mux.HandleFunc("/v1/totals", h.totals)
	mux.HandleFunc("/healthz", healthz)
}

// healthz reports a simple OK status for container health checks.
func healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Unsupported method.")
		return
	}
	if !h.authorizeRead(w, r) {
		return
	}

	query := r.URL.Query()
	month := dates.NormalizeMonthParam(query.Get("month"))
	if month == "" {
		month = dates.MonthKey(h.now())
	}

	dash, err := h.service.Dashboard(r.Context(), month, rosterFilter(query.Get("team"), query.Get("subTeam")), time.Time{})
	if err != nil {
		writeServiceError(w, err, "Rep not found.")
		return
	}

	writeJSON(w, http.StatusOK, toDashboardView(dash))
}

func (h *Handler) activity(w http.ResponseWriter, r *http.Request) {
	if !h.dailyActivityEnabled {
		writeError(w, http.StatusNotFound, "Daily activity tracking is disabled.")
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.activityBoard(w, r)
	case http.MethodPost:
		h.updateActivity(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "Unsupported method.")
	}
}

func (h *Handler) activityBoard(w http.ResponseWriter, r *http.Request) {
	if !h.authorizeRead(w, r) {
		return
	}

	query := r.URL.Query()
	filter := rosterFilter(query.Get("team"), query.Get("subTeam"))

	view := domain.ViewDay
	start := dates.NormalizeDateParam(query.Get("date"))
	if query.Get("view") == string(domain.ViewWeek) {
		view = domain.ViewWeek
		start = dates.NormalizeDateParam(query.Get("weekStart"))
		if start == "" {
			start = dates.DateKey(dates.WeekStart(h.now()))
		}
	} else if start == "" {
		start = dates.DateKey(h.now())
	}

	board, err := h.service.ActivityBoard(r.Context(), view, start, filter)
	if err != nil {
		writeServiceError(w, err, "Rep not found.")
		return
	}

	writeJSON(w, http.StatusOK, toBoardView(board))
}

func (h *Handler) updateActivity(w http.ResponseWriter, r *http.Request) {
	if !h.authorizeWrite(w, r) {
		return
	}

	var req ActivityUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload.")
		return
	}

	err := h.service.SaveActivity(r.Context(), domain.ActivityInput{
		RepID:         req.RepID,
		ActivityDate:  req.ActivityDate,
		SDREvents:     req.SDREvents,
		EventsCreated: req.EventsCreated,
		EventsHeld:    req.EventsHeld,
		Notes:         req.Notes,
	})
	if err != nil {
		writeServiceError(w, err, "Active rep not found.")
		return
	}

	writeJSON(w, http.StatusOK, okResponse{OK: true})
}

func (h *Handler) totals(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Unsupported method.")
		return
	}
	if !h.authorizeWrite(w, r) {
		return
	}

	var req TotalsUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload.")
		return
	}

	err := h.service.SaveTotals(r.Context(), domain.TotalsInput{
		RepID:     req.RepID,
		Month:     req.Month,
		TQRActual: req.TQRActual,
		NLActual:  req.NLActual,
	})
	if err != nil {
		writeServiceError(w, err, "Rep not found.")
		return
	}

	writeJSON(w, http.StatusOK, okResponse{OK: true})
}

// rosterFilter parses team/subTeam query parameters defensively; unknown
// values fall back to "all".
func rosterFilter(teamRaw, subTeamRaw string) domain.RosterFilter {
	var filter domain.RosterFilter
	if team, ok := domain.ParseTeam(teamRaw); ok {
		filter.Team = team
	}
	if subTeam, ok := domain.ParseSubTeam(subTeamRaw); ok {
		filter.SubTeam = subTeam
	}
	return filter
}

func (h *Handler) authorizeRead(w http.ResponseWriter, r *http.Request) bool {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Missing bearer token.")
		return false
	}
	if !claims.HasScope(auth.ScopeDashboardRead) && !claims.HasScope(auth.ScopeDashboardWrite) {
		writeError(w, http.StatusForbidden, "Scope dashboard:read required.")
		return false
	}
	return true
}

func (h *Handler) authorizeWrite(w http.ResponseWriter, r *http.Request) bool {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Missing bearer token.")
		return false
	}
	if !claims.HasScope(auth.ScopeDashboardWrite) {
		writeError(w, http.StatusForbidden, "Scope dashboard:write required.")
		return false
	}
	return true
}

// ActivityUpdateRequest is the payload for POST /v1/activity.
type ActivityUpdateRequest struct {
	RepID         string `json:"repId"`
	ActivityDate  string `json:"activityDate"`
	SDREvents     int    `json:"sdrEvents"`
	EventsCreated int    `json:"eventsCreated"`
	EventsHeld    int    `json:"eventsHeld"`
	Notes         string `json:"notes"`
}

// TotalsUpdateRequest is the payload for POST /v1/totals.
type TotalsUpdateRequest struct {
	RepID     string   `json:"repId"`
	Month     string   `json:"month"`
	TQRActual float64  `json:"tqrActual"`
	NLActual  *float64 `json:"nlActual"`
}

type okResponse struct {
	OK bool `json:"ok"`
}

// DashboardRowView is the JSON shape of one scored rep row. NL fields are
// null for expansion reps.
type DashboardRowView struct {
	RepID   string `json:"repId"`
	RepName string `json:"repName"`
	Team    string `json:"team"`
	SubTeam string `json:"subTeam"`

	TQRActual         float64 `json:"tqrActual"`
	TQRTarget         float64 `json:"tqrTarget"`
	TQRExpectedToDate float64 `json:"tqrExpectedToDate"`
	TQRGapToPace      float64 `json:"tqrGapToPace"`
	TQRAttainment     float64 `json:"tqrAttainment"`

	NLActual         *float64 `json:"nlActual"`
	NLTarget         *float64 `json:"nlTarget"`
	NLExpectedToDate *float64 `json:"nlExpectedToDate"`
	NLGapToPace      *float64 `json:"nlGapToPace"`
	NLAttainment     *float64 `json:"nlAttainment"`

	WeightedScore          float64 `json:"weightedScore"`
	WeightedExpectedToDate float64 `json:"weightedExpectedToDate"`
	WeightedGapToPace      float64 `json:"weightedGapToPace"`

	PaceStatus string `json:"paceStatus"`
}

// TeamRollupView aggregates one team. NL sums are omitted for expansion.
type TeamRollupView struct {
	TQRActual       float64  `json:"tqrActual"`
	TQRTarget       float64  `json:"tqrTarget"`
	NLActual        *float64 `json:"nlActual,omitempty"`
	NLTarget        *float64 `json:"nlTarget,omitempty"`
	WeightedAverage float64  `json:"weightedAverage"`
}

// DashboardResponse is the monthly dashboard view.
type DashboardResponse struct {
	Month      string    `json:"month"`
	MonthLabel string    `json:"monthLabel"`
	AsOf       time.Time `json:"asOf"`

	Rows []DashboardRowView `json:"rows"`

	Rollup struct {
		Expansion TeamRollupView `json:"expansion"`
		NewLogo   TeamRollupView `json:"newLogo"`
	} `json:"rollup"`
}

// ActivityRowView is one rep's aggregated activity counters.
type ActivityRowView struct {
	RepID         string `json:"repId"`
	RepName       string `json:"repName"`
	Team          string `json:"team"`
	SubTeam       string `json:"subTeam"`
	SDREvents     int    `json:"sdrEvents"`
	EventsCreated int    `json:"eventsCreated"`
	EventsHeld    int    `json:"eventsHeld"`
	RankValue     int    `json:"rankValue"`
	Notes         string `json:"notes,omitempty"`
}

// ActivityBoardResponse is the day/week activity view.
type ActivityBoardResponse struct {
	View        string            `json:"view"`
	StartDate   string            `json:"startDate"`
	EndDate     string            `json:"endDate"`
	Label       string            `json:"label"`
	Rows        []ActivityRowView `json:"rows"`
	Leaderboard []ActivityRowView `json:"leaderboard"`
}

func toDashboardView(dash *domain.Dashboard) DashboardResponse {
	resp := DashboardResponse{
		Month:      dash.Month,
		MonthLabel: dates.MonthLabel(dash.Month),
		AsOf:       dash.AsOf,
		Rows:       make([]DashboardRowView, 0, len(dash.Rows)),
	}
	for _, row := range dash.Rows {
		resp.Rows = append(resp.Rows, DashboardRowView{
			RepID:                  row.RepID,
			RepName:                row.RepName,
			Team:                   string(row.Team),
			SubTeam:                string(row.SubTeam),
			TQRActual:              row.TQRActual,
			TQRTarget:              row.TQRTarget,
			TQRExpectedToDate:      row.TQRExpectedToDate,
			TQRGapToPace:           row.TQRGapToPace,
			TQRAttainment:          row.TQRAttainment,
			NLActual:               row.NLActual,
			NLTarget:               row.NLTarget,
			NLExpectedToDate:       row.NLExpectedToDate,
			NLGapToPace:            row.NLGapToPace,
			NLAttainment:           row.NLAttainment,
			WeightedScore:          row.WeightedScore,
			WeightedExpectedToDate: row.WeightedExpectedToDate,
			WeightedGapToPace:      row.WeightedGapToPace,
			PaceStatus:             string(row.PaceStatus),
		})
	}

	resp.Rollup.Expansion = TeamRollupView{
		TQRActual:       dash.Rollup.Expansion.TQRActual,
		TQRTarget:       dash.Rollup.Expansion.TQRTarget,
		WeightedAverage: dash.Rollup.Expansion.WeightedAverage,
	}
	nlActual := dash.Rollup.NewLogo.NLActual
	nlTarget := dash.Rollup.NewLogo.NLTarget
	resp.Rollup.NewLogo = TeamRollupView{
		TQRActual:       dash.Rollup.NewLogo.TQRActual,
		TQRTarget:       dash.Rollup.NewLogo.TQRTarget,
		NLActual:        &nlActual,
		NLTarget:        &nlTarget,
		WeightedAverage: dash.Rollup.NewLogo.WeightedAverage,
	}
	return resp
}

func toBoardView(board *domain.ActivityBoard) ActivityBoardResponse {
	label := dates.DateLabel(board.StartDate)
	if board.View == domain.ViewWeek {
		label = dates.WeekLabel(board.StartDate)
	}
	return ActivityBoardResponse{
		View:        string(board.View),
		StartDate:   board.StartDate,
		EndDate:     board.EndDate,
		Label:       label,
		Rows:        toActivityRows(board.Rows),
		Leaderboard: toActivityRows(board.Leaderboard),
	}
}

func toActivityRows(totals []domain.ActivityTotals) []ActivityRowView {
	out := make([]ActivityRowView, 0, len(totals))
	for _, t := range totals {
		out = append(out, ActivityRowView{
			RepID:         t.RepID,
			RepName:       t.RepName,
			Team:          string(t.Team),
			SubTeam:       string(t.SubTeam),
			SDREvents:     t.SDREvents,
			EventsCreated: t.EventsCreated,
			EventsHeld:    t.EventsHeld,
			RankValue:     t.RankValue(),
			Notes:         t.Notes,
		})
	}
	return out
}

// writeServiceError maps domain failures onto the wire taxonomy: validation
// errors are 400s, unknown/inactive reps are 404s, anything else surfaces as
// a 500 with the store's message passed through.
func writeServiceError(w http.ResponseWriter, err error, notFoundMsg string) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, verr.Msg)
	case errors.Is(err, domain.ErrRepNotFound), errors.Is(err, domain.ErrRepInactive):
		writeError(w, http.StatusNotFound, notFoundMsg)
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
