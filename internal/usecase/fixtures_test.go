package usecase

import (
	"context"
	"testing"

	"github.com/riskibarqy/toto-league/internal/domain/leaguestanding"
	"github.com/riskibarqy/toto-league/internal/domain/scoring"
	"github.com/riskibarqy/toto-league/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/toto-league/internal/platform/id"
)

type seededStores struct {
	questions   *memory.QuestionRepository
	predictions *memory.PredictionRepository
	rankings    *memory.RankingRepository
}

func newSeededStores(t *testing.T) seededStores {
	t.Helper()

	stores := seededStores{
		questions:   memory.NewQuestionRepository(id.NewSequenceGenerator("q")),
		predictions: memory.NewPredictionRepository(id.NewSequenceGenerator("p")),
		rankings:    memory.NewRankingRepository(id.NewSequenceGenerator("r")),
	}
	if err := memory.Seed(context.Background(), stores.questions, stores.predictions); err != nil {
		t.Fatalf("seed stores: %v", err)
	}
	return stores
}

func newTestEngine() *scoring.Engine {
	return scoring.NewEngine(scoring.DefaultRules(), scoring.DefaultNormalizer())
}

func newTestBuilder() *leaguestanding.Builder {
	return leaguestanding.NewBuilder(scoring.DefaultNormalizer(), scoring.DefaultRules().GroupStageTables)
}
