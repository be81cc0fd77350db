package scoring

import "github.com/riskibarqy/toto-league/internal/domain/question"

// LocationBonus is the batch evaluation of a "pick N teams" table.
type LocationBonus struct {
	TableID      string
	Expected     int
	CorrectCount int
	AllCorrect   bool
	PerfectOrder bool
	TeamsBonus   int
	OrderBonus   int
}

func (b LocationBonus) Total() int {
	return b.TeamsBonus + b.OrderBonus
}

// EvaluateLocationBonus scores a whole location table for one participant.
// predictions maps question record ids to raw prediction text. ok is false
// when the table is unknown, has the wrong question count, or any result is
// still undecided.
//
// Team matching is exact and unnormalized. A predicted team counts as correct
// when it appears among the table's results; order is perfect only when every
// prediction equals the result of its own question.
func (e *Engine) EvaluateLocationBonus(tableID string, questions []question.Question, predictions map[string]string) (LocationBonus, bool) {
	table, ok := e.rules.LocationTables[tableID]
	if !ok || len(questions) != table.Questions {
		return LocationBonus{}, false
	}

	remaining := make(map[string]int, len(questions))
	for _, q := range questions {
		if !q.HasResult() {
			return LocationBonus{}, false
		}
		remaining[q.ActualResult]++
	}

	out := LocationBonus{
		TableID:      tableID,
		Expected:     table.Questions,
		PerfectOrder: true,
	}
	for _, q := range questions {
		predicted := predictions[q.ID]
		if predicted != q.ActualResult {
			out.PerfectOrder = false
		}
		if remaining[predicted] > 0 {
			remaining[predicted]--
			out.CorrectCount++
		}
	}

	out.AllCorrect = out.CorrectCount == table.Questions
	if !out.AllCorrect {
		return out, true
	}

	out.TeamsBonus = table.TeamsBonus
	if out.PerfectOrder {
		out.OrderBonus = table.OrderBonus
	}
	return out, true
}
