package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/toto-league/internal/domain/entity"
	"github.com/riskibarqy/toto-league/internal/domain/prediction"
	"github.com/riskibarqy/toto-league/internal/domain/question"
	"github.com/riskibarqy/toto-league/internal/domain/scoring"
	"go.opentelemetry.io/otel/attribute"
)

type ScoringConfig struct {
	Load                 LoadOptions
	IncludeLocationBonus bool
}

// ScoringService answers per-participant scoring queries without touching the
// stored leaderboard.
type ScoringService struct {
	loader snapshotLoader
	engine *scoring.Engine
	cfg    ScoringConfig
}

type QuestionScore struct {
	Question   question.Question
	Prediction string
	Points     int
	Pending    bool
}

type ParticipantScores struct {
	ParticipantName string
	Questions       []QuestionScore
	Bonuses         []scoring.LocationBonus
	QuestionPoints  int
	BonusPoints     int
	Total           int
}

func NewScoringService(
	questionRepo question.Repository,
	predictionRepo prediction.Repository,
	engine *scoring.Engine,
	cfg ScoringConfig,
) *ScoringService {
	if questionRepo == nil || predictionRepo == nil {
		panic("usecase: scoring service requires question and prediction repositories")
	}
	if engine == nil {
		panic("usecase: scoring service requires a scoring engine")
	}
	return &ScoringService{
		loader: snapshotLoader{questions: questionRepo, predictions: predictionRepo, opts: cfg.Load},
		engine: engine,
		cfg:    cfg,
	}
}

// ParticipantScores breaks a participant's total down per question. Bonuses
// are always reported; they only count toward Total when enabled.
func (s *ScoringService) ParticipantScores(ctx context.Context, participant string) (ParticipantScores, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.ParticipantScores")
	defer span.End()

	participant = strings.TrimSpace(participant)
	if participant == "" {
		return ParticipantScores{}, fmt.Errorf("%w: participant name is required", ErrInvalidInput)
	}

	snap, err := s.loader.load(ctx, snapshotParts{
		questions:   true,
		predictions: entity.Filter{"participant_name": participant},
	})
	if err != nil {
		return ParticipantScores{}, fmt.Errorf("load participant scores: %w", err)
	}
	if len(snap.predictions) == 0 {
		return ParticipantScores{}, fmt.Errorf("%w: no predictions for participant=%s", ErrNotFound, participant)
	}

	answers := prediction.ByQuestion(snap.predictions, participant)
	questions := snap.questions
	question.SortByQuestionID(questions)

	out := ParticipantScores{ParticipantName: participant}
	tables := make(map[string][]question.Question)
	tableOrder := make([]string, 0)
	for _, q := range questions {
		if s.engine.Rules().IsLocationTable(q.TableID) {
			if _, ok := tables[q.TableID]; !ok {
				tableOrder = append(tableOrder, q.TableID)
			}
			tables[q.TableID] = append(tables[q.TableID], q)
		}

		answer, ok := answers[q.ID]
		if !ok {
			continue
		}
		points, decided := s.engine.ScoreQuestion(q, answer)
		out.Questions = append(out.Questions, QuestionScore{
			Question:   q,
			Prediction: answer,
			Points:     points,
			Pending:    !decided,
		})
		if decided && points > 0 {
			out.QuestionPoints += points
		}
	}

	for _, tableID := range tableOrder {
		if bonus, ok := s.engine.EvaluateLocationBonus(tableID, tables[tableID], answers); ok {
			out.Bonuses = append(out.Bonuses, bonus)
			out.BonusPoints += bonus.Total()
		}
	}

	out.Total = out.QuestionPoints
	if s.cfg.IncludeLocationBonus {
		out.Total += out.BonusPoints
	}

	span.SetAttributes(
		attribute.String("participant.name", participant),
		attribute.Int("participant.total", out.Total),
	)
	return out, nil
}

// LocationBonus evaluates one location table for one participant. ok is false
// while the table cannot be decided yet.
func (s *ScoringService) LocationBonus(ctx context.Context, tableID, participant string) (scoring.LocationBonus, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.LocationBonus")
	defer span.End()

	tableID = strings.TrimSpace(tableID)
	participant = strings.TrimSpace(participant)
	if participant == "" {
		return scoring.LocationBonus{}, false, fmt.Errorf("%w: participant name is required", ErrInvalidInput)
	}
	if !s.engine.Rules().IsLocationTable(tableID) {
		return scoring.LocationBonus{}, false, fmt.Errorf("%w: table=%s is not a location table", ErrInvalidInput, tableID)
	}

	snap, err := s.loader.load(ctx, snapshotParts{
		questions:   true,
		predictions: entity.Filter{"participant_name": participant},
	})
	if err != nil {
		return scoring.LocationBonus{}, false, fmt.Errorf("load location bonus: %w", err)
	}

	tableQuestions := make([]question.Question, 0)
	for _, q := range snap.questions {
		if q.TableID == tableID {
			tableQuestions = append(tableQuestions, q)
		}
	}
	question.SortByQuestionID(tableQuestions)

	bonus, ok := s.engine.EvaluateLocationBonus(tableID, tableQuestions, prediction.ByQuestion(snap.predictions, participant))
	return bonus, ok, nil
}
