package auth

// Scopes understood by the dashboard API. Reads use the read scope; the two
// mutation endpoints require the write scope.
const (
	ScopeDashboardRead  = "dashboard:read"
	ScopeDashboardWrite = "dashboard:write"
)
