package scoring

import (
	"strconv"
	"strings"

	"github.com/riskibarqy/toto-league/internal/domain/question"
)

// Engine scores predictions against decided results. It holds no mutable
// state and is safe for concurrent use.
type Engine struct {
	rules      Rules
	normalizer *Normalizer
}

func NewEngine(rules Rules, normalizer *Normalizer) *Engine {
	if normalizer == nil {
		normalizer = DefaultNormalizer()
	}
	return &Engine{rules: rules, normalizer: normalizer}
}

func (e *Engine) Rules() Rules {
	return e.rules
}

func (e *Engine) Normalizer() *Normalizer {
	return e.normalizer
}

// Score is a parsed "<home>-<away>" result.
type Score struct {
	Home int
	Away int
}

func (s Score) Diff() int {
	return s.Home - s.Away
}

func (s Score) Outcome() int {
	switch {
	case s.Home > s.Away:
		return 1
	case s.Home < s.Away:
		return -1
	default:
		return 0
	}
}

// ParseScore parses an already normalized "<int>-<int>" string.
func ParseScore(v string) (Score, bool) {
	parts := strings.Split(v, "-")
	if len(parts) != 2 {
		return Score{}, false
	}
	home, err := strconv.Atoi(parts[0])
	if err != nil || home < 0 {
		return Score{}, false
	}
	away, err := strconv.Atoi(parts[1])
	if err != nil || away < 0 {
		return Score{}, false
	}
	return Score{Home: home, Away: away}, true
}

// ScoreQuestion returns the points a prediction earns. decided is false while
// either side is blank or cleared, which callers must treat as pending rather
// than zero.
func (e *Engine) ScoreQuestion(q question.Question, prediction string) (points int, decided bool) {
	if question.IsUndecided(prediction) || question.IsUndecided(q.ActualResult) {
		return 0, false
	}

	actual := e.normalizer.NormalizeResult(q.ActualResult)
	predicted := e.normalizer.NormalizeResult(prediction)

	if q.IsMatch() && strings.Contains(actual, "-") {
		actualScore, okActual := ParseScore(actual)
		predictedScore, okPredicted := ParseScore(predicted)
		if okActual && okPredicted {
			return e.rules.matchPoints(q.TableID).award(actualScore, predictedScore), true
		}
		if actual == predicted {
			return q.PossiblePoints, true
		}
		return 0, true
	}

	if actual == predicted {
		return q.PossiblePoints, true
	}
	return 0, true
}

func (p MatchPoints) award(actual, predicted Score) int {
	switch {
	case actual == predicted:
		return p.Exact
	case actual.Outcome() != predicted.Outcome():
		return 0
	case actual.Diff() == predicted.Diff():
		return p.GoalDifference
	default:
		return p.Outcome
	}
}
