package postgres

import (
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/toto-league/internal/domain/prediction"
	"github.com/riskibarqy/toto-league/internal/domain/question"
	"github.com/riskibarqy/toto-league/internal/domain/ranking"
	"github.com/riskibarqy/toto-league/internal/platform/id"
)

type questionTableModel struct {
	ID             string    `db:"id"`
	TableID        string    `db:"table_id"`
	QuestionID     string    `db:"question_id"`
	QuestionText   string    `db:"question_text"`
	HomeTeam       string    `db:"home_team"`
	AwayTeam       string    `db:"away_team"`
	PossiblePoints int       `db:"possible_points"`
	ValidationList string    `db:"validation_list"`
	ActualResult   string    `db:"actual_result"`
	CreatedDate    time.Time `db:"created_date"`
	UpdatedDate    time.Time `db:"updated_date"`
}

type predictionTableModel struct {
	ID              string    `db:"id"`
	QuestionID      string    `db:"question_id"`
	ParticipantName string    `db:"participant_name"`
	TextPrediction  string    `db:"text_prediction"`
	CreatedDate     time.Time `db:"created_date"`
}

type rankingTableModel struct {
	ID               string    `db:"id"`
	ParticipantName  string    `db:"participant_name"`
	CurrentScore     int       `db:"current_score"`
	CurrentPosition  int       `db:"current_position"`
	PreviousScore    int       `db:"previous_score"`
	PreviousPosition int       `db:"previous_position"`
	ScoreChange      int       `db:"score_change"`
	PositionChange   int       `db:"position_change"`
	LastUpdated      time.Time `db:"last_updated"`
	CreatedDate      time.Time `db:"created_date"`
}

type QuestionRepository = Table[question.Question, questionTableModel]

type PredictionRepository = Table[prediction.Prediction, predictionTableModel]

type RankingRepository = Table[ranking.Ranking, rankingTableModel]

func NewQuestionRepository(db *sqlx.DB, ids id.Generator) *QuestionRepository {
	return NewTable(db, ids, Mapping[question.Question, questionTableModel]{
		Table: "questions",
		ToRow: func(q question.Question) questionTableModel {
			return questionTableModel(q)
		},
		FromRow: func(row questionTableModel) question.Question {
			return question.Question(row)
		},
	})
}

func NewPredictionRepository(db *sqlx.DB, ids id.Generator) *PredictionRepository {
	return NewTable(db, ids, Mapping[prediction.Prediction, predictionTableModel]{
		Table: "predictions",
		ToRow: func(p prediction.Prediction) predictionTableModel {
			return predictionTableModel(p)
		},
		FromRow: func(row predictionTableModel) prediction.Prediction {
			return prediction.Prediction(row)
		},
	})
}

func NewRankingRepository(db *sqlx.DB, ids id.Generator) *RankingRepository {
	return NewTable(db, ids, Mapping[ranking.Ranking, rankingTableModel]{
		Table: "rankings",
		ToRow: func(r ranking.Ranking) rankingTableModel {
			return rankingTableModel(r)
		},
		FromRow: func(row rankingTableModel) ranking.Ranking {
			return ranking.Ranking(row)
		},
	})
}

var (
	_ question.Repository   = (*QuestionRepository)(nil)
	_ prediction.Repository = (*PredictionRepository)(nil)
	_ ranking.Repository    = (*RankingRepository)(nil)
)
