package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/toto-league/internal/domain/prediction"
	"github.com/riskibarqy/toto-league/internal/domain/question"
)

var seedEpoch = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

func SeedQuestions() []question.Question {
	items := []question.Question{
		{ID: "q-t1-1", TableID: "T1", QuestionID: "1", QuestionText: "מי תזכה בטורניר?", PossiblePoints: 25},
		{ID: "q-t1-2", TableID: "T1", QuestionID: "2", QuestionText: "מלך השערים", PossiblePoints: 15},
		{ID: "q-t2-1", TableID: "T2", QuestionID: "1", HomeTeam: "מקסיקו", AwayTeam: "דרום אפריקה", ActualResult: "2-0"},
		{ID: "q-t2-2", TableID: "T2", QuestionID: "2", HomeTeam: "דרום קוריאה", AwayTeam: "צ'כיה", ActualResult: "1-1"},
		{ID: "q-t2-3", TableID: "T2", QuestionID: "3", HomeTeam: "מקסיקו", AwayTeam: "דרום קוריאה", ActualResult: "0-1"},
		{ID: "q-t2-4", TableID: "T2", QuestionID: "4", HomeTeam: "צ'כיה", AwayTeam: "דרום אפריקה"},
		{ID: "q-t3-1", TableID: "T3", QuestionID: "1", HomeTeam: "קנדה", AwayTeam: "בוסניה", ActualResult: "3-1"},
		{ID: "q-t3-2", TableID: "T3", QuestionID: "2", HomeTeam: "קטאר", AwayTeam: "שווייץ", ActualResult: question.ClearedValue},
	}

	quarterFinalists := []string{"ארגנטינה", "ברזיל", "צרפת", "ספרד", "אנגליה", "גרמניה", "פורטוגל", "הולנד"}
	for i, team := range quarterFinalists {
		items = append(items, question.Question{
			ID:           fmt.Sprintf("q-t14-%d", i+1),
			TableID:      "T14",
			QuestionID:   fmt.Sprintf("%d", i+1),
			QuestionText: fmt.Sprintf("רבע גמר, מקום %d", i+1),
			ActualResult: team,
		})
	}

	for i := range items {
		items[i].CreatedDate = seedEpoch.Add(time.Duration(i) * time.Minute)
		items[i].UpdatedDate = items[i].CreatedDate
	}
	return items
}

func SeedPredictions() []prediction.Prediction {
	type answer struct {
		questionID string
		text       string
	}
	byParticipant := map[string][]answer{
		"דנה": {
			{"q-t1-1", "ארגנטינה"},
			{"q-t2-1", "2-0"},
			{"q-t2-2", "2-2"},
			{"q-t2-3", "1-2"},
			{"q-t3-1", "2-1"},
		},
		"יוסי": {
			{"q-t1-1", "ברזיל"},
			{"q-t2-1", "1-0"},
			{"q-t2-2", "0-1"},
			{"q-t2-3", "0-1"},
			{"q-t3-1", "1-1"},
		},
	}
	participants := []string{"דנה", "יוסי"}

	items := make([]prediction.Prediction, 0)
	at := seedEpoch.Add(-24 * time.Hour)
	for _, participant := range participants {
		for _, a := range byParticipant[participant] {
			at = at.Add(time.Minute)
			items = append(items, prediction.Prediction{
				ID:              fmt.Sprintf("p-%d", len(items)+1),
				QuestionID:      a.questionID,
				ParticipantName: participant,
				TextPrediction:  a.text,
				CreatedDate:     at,
			})
		}
	}
	return items
}

// Seed loads the demo tournament into the given tables.
func Seed(ctx context.Context, questions *QuestionRepository, predictions *PredictionRepository) error {
	if _, err := questions.BulkCreate(ctx, SeedQuestions()); err != nil {
		return fmt.Errorf("seed questions: %w", err)
	}
	if _, err := predictions.BulkCreate(ctx, SeedPredictions()); err != nil {
		return fmt.Errorf("seed predictions: %w", err)
	}
	return nil
}
