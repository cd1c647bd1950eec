package domain

// Team is the closed set of sales teams.
type Team string

const (
	TeamExpansion Team = "expansion"
	TeamNewLogo   Team = "new_logo"
)

var teamLabels = map[Team]string{
	TeamExpansion: "Expansion",
	TeamNewLogo:   "New Logo",
}

// Valid reports whether t is a known team.
func (t Team) Valid() bool {
	_, ok := teamLabels[t]
	return ok
}

// Label returns the display name for the team.
func (t Team) Label() string {
	return teamLabels[t]
}

// ParseTeam maps a raw string onto a Team.
func ParseTeam(raw string) (Team, bool) {
	t := Team(raw)
	return t, t.Valid()
}

// SubTeam is the closed set of pods within the sales org.
type SubTeam string

const (
	SubTeamLucy   SubTeam = "team_lucy"
	SubTeamRyan   SubTeam = "team_ryan"
	SubTeamJustin SubTeam = "team_justin"
	SubTeamKyra   SubTeam = "team_kyra"
)

var subTeamLabels = map[SubTeam]string{
	SubTeamLucy:   "Team Lucy",
	SubTeamRyan:   "Team Ryan",
	SubTeamJustin: "Team Justin",
	SubTeamKyra:   "Team Kyra",
}

// Valid reports whether s is a known sub team.
func (s SubTeam) Valid() bool {
	_, ok := subTeamLabels[s]
	return ok
}

// Label returns the display name for the sub team.
func (s SubTeam) Label() string {
	return subTeamLabels[s]
}

// ParseSubTeam maps a raw string onto a SubTeam.
func ParseSubTeam(raw string) (SubTeam, bool) {
	s := SubTeam(raw)
	return s, s.Valid()
}

// Rep is a roster entry. Reps are created and deactivated by an
// administrator out of band; the dashboard treats them as read-only.
type Rep struct {
	ID      string
	Name    string
	Team    Team
	SubTeam SubTeam
	Active  bool
}
