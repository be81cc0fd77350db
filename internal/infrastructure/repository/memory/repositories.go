package memory

import (
	"github.com/riskibarqy/toto-league/internal/domain/prediction"
	"github.com/riskibarqy/toto-league/internal/domain/question"
	"github.com/riskibarqy/toto-league/internal/domain/ranking"
	"github.com/riskibarqy/toto-league/internal/platform/id"
)

type QuestionRepository = Table[question.Question]

type PredictionRepository = Table[prediction.Prediction]

type RankingRepository = Table[ranking.Ranking]

func NewQuestionRepository(ids id.Generator) *QuestionRepository {
	return NewTable[question.Question](ids)
}

func NewPredictionRepository(ids id.Generator) *PredictionRepository {
	return NewTable[prediction.Prediction](ids)
}

func NewRankingRepository(ids id.Generator) *RankingRepository {
	return NewTable[ranking.Ranking](ids)
}

var (
	_ question.Repository   = (*QuestionRepository)(nil)
	_ prediction.Repository = (*PredictionRepository)(nil)
	_ ranking.Repository    = (*RankingRepository)(nil)
)
