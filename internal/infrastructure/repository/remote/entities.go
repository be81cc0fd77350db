package remote

import (
	"time"

	"github.com/riskibarqy/toto-league/internal/domain/prediction"
	"github.com/riskibarqy/toto-league/internal/domain/question"
	"github.com/riskibarqy/toto-league/internal/domain/ranking"
)

// questionWire allows possible_points and actual_result to arrive as null.
type questionWire struct {
	ID             string    `json:"id,omitempty"`
	TableID        string    `json:"table_id"`
	QuestionID     string    `json:"question_id"`
	QuestionText   string    `json:"question_text,omitempty"`
	HomeTeam       string    `json:"home_team,omitempty"`
	AwayTeam       string    `json:"away_team,omitempty"`
	PossiblePoints *int      `json:"possible_points,omitempty"`
	ValidationList string    `json:"validation_list,omitempty"`
	ActualResult   *string   `json:"actual_result,omitempty"`
	CreatedDate    time.Time `json:"created_date"`
	UpdatedDate    time.Time `json:"updated_date"`
}

type predictionWire struct {
	ID              string    `json:"id,omitempty"`
	QuestionID      string    `json:"question_id"`
	ParticipantName string    `json:"participant_name"`
	TextPrediction  string    `json:"text_prediction"`
	CreatedDate     time.Time `json:"created_date"`
}

type rankingWire struct {
	ID               string    `json:"id,omitempty"`
	ParticipantName  string    `json:"participant_name"`
	CurrentScore     int       `json:"current_score"`
	CurrentPosition  int       `json:"current_position"`
	PreviousScore    int       `json:"previous_score"`
	PreviousPosition int       `json:"previous_position"`
	ScoreChange      int       `json:"score_change"`
	PositionChange   int       `json:"position_change"`
	LastUpdated      time.Time `json:"last_updated"`
	CreatedDate      time.Time `json:"created_date"`
}

type QuestionRepository = EntityRepository[question.Question, questionWire]

type PredictionRepository = EntityRepository[prediction.Prediction, predictionWire]

type RankingRepository = EntityRepository[ranking.Ranking, rankingWire]

func NewQuestionRepository(client *Client) *QuestionRepository {
	return NewEntityRepository(client, Codec[question.Question, questionWire]{
		Entity: "Question",
		ToWire: func(q question.Question) questionWire {
			points := q.PossiblePoints
			result := q.ActualResult
			return questionWire{
				ID:             q.ID,
				TableID:        q.TableID,
				QuestionID:     q.QuestionID,
				QuestionText:   q.QuestionText,
				HomeTeam:       q.HomeTeam,
				AwayTeam:       q.AwayTeam,
				PossiblePoints: &points,
				ValidationList: q.ValidationList,
				ActualResult:   &result,
				CreatedDate:    q.CreatedDate,
				UpdatedDate:    q.UpdatedDate,
			}
		},
		FromWire: func(w questionWire) question.Question {
			q := question.Question{
				ID:             w.ID,
				TableID:        w.TableID,
				QuestionID:     w.QuestionID,
				QuestionText:   w.QuestionText,
				HomeTeam:       w.HomeTeam,
				AwayTeam:       w.AwayTeam,
				ValidationList: w.ValidationList,
				CreatedDate:    w.CreatedDate,
				UpdatedDate:    w.UpdatedDate,
			}
			if w.PossiblePoints != nil {
				q.PossiblePoints = *w.PossiblePoints
			}
			if w.ActualResult != nil {
				q.ActualResult = *w.ActualResult
			}
			return q
		},
	})
}

func NewPredictionRepository(client *Client) *PredictionRepository {
	return NewEntityRepository(client, Codec[prediction.Prediction, predictionWire]{
		Entity: "Prediction",
		ToWire: func(p prediction.Prediction) predictionWire {
			return predictionWire(p)
		},
		FromWire: func(w predictionWire) prediction.Prediction {
			return prediction.Prediction(w)
		},
	})
}

func NewRankingRepository(client *Client) *RankingRepository {
	return NewEntityRepository(client, Codec[ranking.Ranking, rankingWire]{
		Entity: "Ranking",
		ToWire: func(r ranking.Ranking) rankingWire {
			return rankingWire(r)
		},
		FromWire: func(w rankingWire) ranking.Ranking {
			return ranking.Ranking(w)
		},
	})
}

var (
	_ question.Repository   = (*QuestionRepository)(nil)
	_ prediction.Repository = (*PredictionRepository)(nil)
	_ ranking.Repository    = (*RankingRepository)(nil)
)
