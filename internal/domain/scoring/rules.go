package scoring

// MatchPoints is the award ladder for a scoreline prediction.
type MatchPoints struct {
	Exact          int
	GoalDifference int
	Outcome        int
}

// LocationTable describes a "pick the N teams" table. OrderBonus zero means
// the table has no ordering bonus.
type LocationTable struct {
	Questions  int
	TeamsBonus int
	OrderBonus int
}

// Rules stores the toto scoring parameters.
type Rules struct {
	RegularMatch     MatchPoints
	RegionalMatch    MatchPoints
	RegionalTableID  string
	LocationTables   map[string]LocationTable
	GroupStageTables map[string]string
}

func DefaultRules() Rules {
	return Rules{
		RegularMatch:    MatchPoints{Exact: 10, GoalDifference: 7, Outcome: 5},
		RegionalMatch:   MatchPoints{Exact: 6, GoalDifference: 4, Outcome: 2},
		RegionalTableID: "T20",
		LocationTables: map[string]LocationTable{
			"T14": {Questions: 8, TeamsBonus: 20, OrderBonus: 40},
			"T15": {Questions: 8, TeamsBonus: 20, OrderBonus: 40},
			"T16": {Questions: 8, TeamsBonus: 20, OrderBonus: 40},
			"T17": {Questions: 12, TeamsBonus: 30, OrderBonus: 50},
			"T19": {Questions: 8, TeamsBonus: 20},
		},
		GroupStageTables: map[string]string{
			"T2": "Group A",
			"T3": "Group B",
			"T4": "Group C",
			"T5": "Group D",
			"T6": "Group E",
			"T7": "Group F",
		},
	}
}

func (r Rules) matchPoints(tableID string) MatchPoints {
	if r.RegionalTableID != "" && tableID == r.RegionalTableID {
		return r.RegionalMatch
	}
	return r.RegularMatch
}

func (r Rules) IsLocationTable(tableID string) bool {
	_, ok := r.LocationTables[tableID]
	return ok
}
