package prediction

import (
	"testing"
	"time"
)

func TestLatest(t *testing.T) {
	base := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		items    []Prediction
		wantText map[string]string
	}{
		{
			name: "newest row wins",
			items: []Prediction{
				{ID: "p1", QuestionID: "q1", ParticipantName: "dana", TextPrediction: "1-0", CreatedDate: base.Add(2 * time.Hour)},
				{ID: "p2", QuestionID: "q1", ParticipantName: "dana", TextPrediction: "2-0", CreatedDate: base},
			},
			wantText: map[string]string{"q1|dana": "1-0"},
		},
		{
			name: "equal timestamps resolve to last seen",
			items: []Prediction{
				{ID: "p1", QuestionID: "q1", ParticipantName: "dana", TextPrediction: "1-0", CreatedDate: base},
				{ID: "p2", QuestionID: "q1", ParticipantName: "dana", TextPrediction: "3-3", CreatedDate: base},
			},
			wantText: map[string]string{"q1|dana": "3-3"},
		},
		{
			name: "participants are independent",
			items: []Prediction{
				{ID: "p1", QuestionID: "q1", ParticipantName: "dana", TextPrediction: "1-0", CreatedDate: base},
				{ID: "p2", QuestionID: "q1", ParticipantName: " noa ", TextPrediction: "0-0", CreatedDate: base},
			},
			wantText: map[string]string{"q1|dana": "1-0", "q1|noa": "0-0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Latest(tt.items)
			if len(got) != len(tt.wantText) {
				t.Fatalf("unexpected count: got=%d want=%d", len(got), len(tt.wantText))
			}
			for _, item := range got {
				k := item.QuestionID + "|" + item.ParticipantName
				if want, ok := tt.wantText[k]; !ok || item.TextPrediction != want {
					t.Fatalf("unexpected prediction for %s: got=%q want=%q", k, item.TextPrediction, want)
				}
			}
		})
	}
}

func TestByQuestion(t *testing.T) {
	base := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	items := []Prediction{
		{QuestionID: "q1", ParticipantName: "dana", TextPrediction: "1-0", CreatedDate: base},
		{QuestionID: "q2", ParticipantName: "noa", TextPrediction: "2-2", CreatedDate: base},
		{QuestionID: "q1", ParticipantName: "dana", TextPrediction: "2-1", CreatedDate: base.Add(time.Minute)},
	}

	got := ByQuestion(items, "dana")
	if len(got) != 1 || got["q1"] != "2-1" {
		t.Fatalf("unexpected predictions: %+v", got)
	}
}
