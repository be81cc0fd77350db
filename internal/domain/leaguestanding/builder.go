package leaguestanding

import (
	"sort"

	"github.com/riskibarqy/toto-league/internal/domain/question"
	"github.com/riskibarqy/toto-league/internal/domain/scoring"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// ResultSource yields the result string to tabulate for a match question.
type ResultSource func(q question.Question) string

// ActualResults tabulates official results.
func ActualResults() ResultSource {
	return func(q question.Question) string {
		return q.ActualResult
	}
}

// PredictedResults tabulates one participant's predictions, keyed by
// question record id.
func PredictedResults(byQuestionID map[string]string) ResultSource {
	return func(q question.Question) string {
		return byQuestionID[q.ID]
	}
}

// Builder derives W/D/L tables from match questions.
type Builder struct {
	normalizer *scoring.Normalizer
	groups     map[string]string
}

func NewBuilder(normalizer *scoring.Normalizer, groupStageTables map[string]string) *Builder {
	if normalizer == nil {
		normalizer = scoring.DefaultNormalizer()
	}
	groups := make(map[string]string, len(groupStageTables))
	for tableID, name := range groupStageTables {
		groups[tableID] = name
	}
	return &Builder{normalizer: normalizer, groups: groups}
}

// Build tabulates matches into one sorted standings table. Non-match
// questions and results that are missing, cleared or not "<int>-<int>" are
// skipped.
func (b *Builder) Build(matches []question.Question, source ResultSource) []Standing {
	if source == nil {
		source = ActualResults()
	}

	index := make(map[string]int)
	rows := make([]Standing, 0)
	ensure := func(team string) int {
		pos, ok := index[team]
		if !ok {
			pos = len(rows)
			index[team] = pos
			rows = append(rows, Standing{TeamName: team})
		}
		return pos
	}

	for _, q := range matches {
		if !q.IsMatch() {
			continue
		}
		raw := source(q)
		if question.IsUndecided(raw) {
			continue
		}
		score, ok := scoring.ParseScore(b.normalizer.NormalizeResult(raw))
		if !ok {
			continue
		}

		homePos := ensure(b.normalizer.NormalizeTeamName(q.HomeTeam))
		awayPos := ensure(b.normalizer.NormalizeTeamName(q.AwayTeam))
		home, away := &rows[homePos], &rows[awayPos]

		home.Played++
		away.Played++
		home.GoalsFor += score.Home
		home.GoalsAgainst += score.Away
		away.GoalsFor += score.Away
		away.GoalsAgainst += score.Home

		switch score.Outcome() {
		case 1:
			home.Won++
			away.Lost++
			home.Points += 3
		case -1:
			away.Won++
			home.Lost++
			away.Points += 3
		default:
			home.Draw++
			away.Draw++
			home.Points++
			away.Points++
		}
	}

	for i := range rows {
		rows[i].GoalDifference = rows[i].GoalsFor - rows[i].GoalsAgainst
	}
	sortStandings(rows)
	for i := range rows {
		rows[i].Position = i + 1
	}
	return rows
}

// BuildTables groups questions by table. When every table is a configured
// group-stage table, one standings table per group is produced. Otherwise a
// single combined table is built across the tables in numeric order, limited
// to the first rounds tables when rounds is positive.
func (b *Builder) BuildTables(questions []question.Question, source ResultSource, rounds int) []Table {
	byTable := make(map[string][]question.Question)
	tableIDs := make([]string, 0)
	for _, q := range questions {
		if _, ok := byTable[q.TableID]; !ok {
			tableIDs = append(tableIDs, q.TableID)
		}
		byTable[q.TableID] = append(byTable[q.TableID], q)
	}
	if len(tableIDs) == 0 {
		return nil
	}
	sort.SliceStable(tableIDs, func(i, j int) bool {
		return question.CompareTableIDs(tableIDs[i], tableIDs[j]) < 0
	})

	if b.allGroupStage(tableIDs) {
		out := make([]Table, 0, len(tableIDs))
		for _, tableID := range tableIDs {
			name := b.groups[tableID]
			rows := b.Build(byTable[tableID], source)
			for i := range rows {
				rows[i].Group = name
			}
			out = append(out, Table{Name: name, TableIDs: []string{tableID}, Rows: rows})
		}
		return out
	}

	if rounds > 0 && rounds < len(tableIDs) {
		tableIDs = tableIDs[:rounds]
	}
	matches := make([]question.Question, 0, len(questions))
	for _, tableID := range tableIDs {
		matches = append(matches, byTable[tableID]...)
	}
	return []Table{{
		Name:     CombinedTableName,
		TableIDs: tableIDs,
		Rows:     b.Build(matches, source),
	}}
}

func (b *Builder) allGroupStage(tableIDs []string) bool {
	for _, tableID := range tableIDs {
		if _, ok := b.groups[tableID]; !ok {
			return false
		}
	}
	return true
}

// sortStandings orders by points, goal difference and goals scored, then by
// team name under Hebrew collation.
func sortStandings(rows []Standing) {
	collator := collate.New(language.Hebrew)
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDifference != b.GoalDifference {
			return a.GoalDifference > b.GoalDifference
		}
		if a.GoalsFor != b.GoalsFor {
			return a.GoalsFor > b.GoalsFor
		}
		return collator.CompareString(a.TeamName, b.TeamName) < 0
	})
}
