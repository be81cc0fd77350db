package scoring

import (
	"testing"

	"github.com/riskibarqy/toto-league/internal/domain/question"
)

func TestScoreQuestion_Match(t *testing.T) {
	engine := NewEngine(DefaultRules(), nil)
	match := func(tableID, actual string) question.Question {
		return question.Question{ID: "q1", TableID: tableID, HomeTeam: "ברזיל", AwayTeam: "ארגנטינה", ActualResult: actual}
	}

	tests := []struct {
		name       string
		q          question.Question
		prediction string
		want       int
	}{
		{name: "exact", q: match("T8", "2-1"), prediction: "2-1", want: 10},
		{name: "exact with whitespace", q: match("T8", " 2 - 1 "), prediction: "2-1", want: 10},
		{name: "same goal difference", q: match("T8", "2-1"), prediction: "3-2", want: 7},
		{name: "draw with different score", q: match("T8", "1-1"), prediction: "2-2", want: 7},
		{name: "same difference lower score", q: match("T8", "2-1"), prediction: "1-0", want: 7},
		{name: "outcome only wider margin", q: match("T8", "3-0"), prediction: "1-0", want: 5},
		{name: "outcome only predicted wider margin", q: match("T8", "2-1"), prediction: "3-0", want: 5},
		{name: "wrong outcome", q: match("T8", "2-1"), prediction: "1-2", want: 0},
		{name: "regional exact", q: match("T20", "2-1"), prediction: "2-1", want: 6},
		{name: "regional goal difference", q: match("T20", "2-1"), prediction: "3-2", want: 4},
		{name: "regional outcome", q: match("T20", "3-0"), prediction: "1-0", want: 2},
		{name: "unparsable prediction falls back to string", q: match("T8", "2-1"), prediction: "two-one", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, decided := engine.ScoreQuestion(tt.q, tt.prediction)
			if !decided {
				t.Fatalf("expected decided score")
			}
			if got != tt.want {
				t.Fatalf("unexpected points: got=%d want=%d", got, tt.want)
			}
		})
	}
}

func TestScoreQuestion_Pending(t *testing.T) {
	engine := NewEngine(DefaultRules(), nil)
	q := question.Question{TableID: "T8", HomeTeam: "A", AwayTeam: "B", ActualResult: "2-1"}

	tests := []struct {
		name       string
		actual     string
		prediction string
	}{
		{name: "empty prediction", actual: "2-1", prediction: ""},
		{name: "whitespace prediction", actual: "2-1", prediction: "   "},
		{name: "cleared prediction", actual: "2-1", prediction: question.ClearedValue},
		{name: "empty actual", actual: "", prediction: "2-1"},
		{name: "cleared actual", actual: question.ClearedValue, prediction: "2-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := q
			item.ActualResult = tt.actual
			if _, decided := engine.ScoreQuestion(item, tt.prediction); decided {
				t.Fatalf("expected pending result")
			}
		})
	}
}

func TestScoreQuestion_DirectAnswer(t *testing.T) {
	engine := NewEngine(DefaultRules(), nil)

	tests := []struct {
		name       string
		q          question.Question
		prediction string
		want       int
	}{
		{
			name:       "whitespace normalized match",
			q:          question.Question{TableID: "T1", ActualResult: "Brazil", PossiblePoints: 15},
			prediction: " Brazil ",
			want:       15,
		},
		{
			name:       "inner spaces ignored",
			q:          question.Question{TableID: "T1", ActualResult: "ארצות הברית", PossiblePoints: 5},
			prediction: "ארצותהברית",
			want:       5,
		},
		{
			name:       "spaced score as direct answer",
			q:          question.Question{TableID: "T1", ActualResult: "2 : 1", PossiblePoints: 5},
			prediction: "2:1",
			want:       5,
		},
		{
			name:       "aliases are not folded",
			q:          question.Question{TableID: "T1", ActualResult: "ארצות הברית", PossiblePoints: 5},
			prediction: "USA",
			want:       0,
		},
		{
			name:       "trailing space",
			q:          question.Question{TableID: "T1", ActualResult: "כן", PossiblePoints: 5},
			prediction: "כן ",
			want:       5,
		},
		{
			name:       "wrong answer",
			q:          question.Question{TableID: "T1", ActualResult: "Brazil", PossiblePoints: 15},
			prediction: "France",
			want:       0,
		},
		{
			name:       "unset possible points",
			q:          question.Question{TableID: "T1", ActualResult: "Brazil"},
			prediction: "Brazil",
			want:       0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, decided := engine.ScoreQuestion(tt.q, tt.prediction)
			if !decided {
				t.Fatalf("expected decided score")
			}
			if got != tt.want {
				t.Fatalf("unexpected points: got=%d want=%d", got, tt.want)
			}
		})
	}
}

func TestParseScore(t *testing.T) {
	if got, ok := ParseScore("3-0"); !ok || got != (Score{Home: 3, Away: 0}) {
		t.Fatalf("unexpected parse result: %+v ok=%v", got, ok)
	}
	for _, in := range []string{"", "3", "3-", "-1-2", "a-b", "1-2-3"} {
		if _, ok := ParseScore(in); ok {
			t.Fatalf("expected parse failure for %q", in)
		}
	}
}
