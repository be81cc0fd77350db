package leaguestanding

// Standing represents a league table row for one team.
type Standing struct {
	Group          string
	TeamName       string
	Position       int
	Played         int
	Won            int
	Draw           int
	Lost           int
	GoalsFor       int
	GoalsAgainst   int
	GoalDifference int
	Points         int
}

// Table is one rendered standings table: a single group or the combined
// table across rounds.
type Table struct {
	Name     string
	TableIDs []string
	Rows     []Standing
}

const CombinedTableName = "combined"
