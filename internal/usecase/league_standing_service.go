package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/toto-league/internal/domain/entity"
	"github.com/riskibarqy/toto-league/internal/domain/leaguestanding"
	"github.com/riskibarqy/toto-league/internal/domain/prediction"
	"github.com/riskibarqy/toto-league/internal/domain/question"
	"go.opentelemetry.io/otel/attribute"
)

const (
	StandingsSourceActual      = "actual"
	StandingsSourcePredictions = "predictions"
)

// StandingsQuery selects which tables to tabulate and from which results.
// Empty TableIDs means every group-stage table.
type StandingsQuery struct {
	TableIDs    []string
	Source      string
	Participant string
	Rounds      int
}

type LeagueStandingService struct {
	loader  snapshotLoader
	builder *leaguestanding.Builder
	groups  []string
}

func NewLeagueStandingService(
	questionRepo question.Repository,
	predictionRepo prediction.Repository,
	builder *leaguestanding.Builder,
	groupStageTables map[string]string,
	opts LoadOptions,
) *LeagueStandingService {
	if questionRepo == nil || predictionRepo == nil {
		panic("usecase: standings service requires question and prediction repositories")
	}
	if builder == nil {
		panic("usecase: standings service requires a standings builder")
	}

	groups := make([]string, 0, len(groupStageTables))
	for tableID := range groupStageTables {
		groups = append(groups, tableID)
	}
	return &LeagueStandingService{
		loader:  snapshotLoader{questions: questionRepo, predictions: predictionRepo, opts: opts},
		builder: builder,
		groups:  groups,
	}
}

func (s *LeagueStandingService) Standings(ctx context.Context, query StandingsQuery) ([]leaguestanding.Table, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueStandingService.Standings",
		attribute.String("toto.standings.source", query.Source),
		attribute.Int("toto.standings.rounds", query.Rounds),
	)
	defer span.End()

	query.Source = strings.ToLower(strings.TrimSpace(query.Source))
	query.Participant = strings.TrimSpace(query.Participant)
	if query.Source == "" {
		query.Source = StandingsSourceActual
	}
	if query.Rounds < 0 {
		return nil, fmt.Errorf("%w: rounds must not be negative", ErrInvalidInput)
	}

	parts := snapshotParts{questions: true}
	switch query.Source {
	case StandingsSourceActual:
	case StandingsSourcePredictions:
		if query.Participant == "" {
			return nil, fmt.Errorf("%w: participant is required for predicted standings", ErrInvalidInput)
		}
		parts.predictions = entity.Filter{"participant_name": query.Participant}
	default:
		return nil, fmt.Errorf("%w: unknown standings source=%s", ErrInvalidInput, query.Source)
	}

	tableIDs := s.groups
	if len(query.TableIDs) > 0 {
		tableIDs = query.TableIDs
	}
	wanted := make(map[string]struct{}, len(tableIDs))
	for _, tableID := range tableIDs {
		if tableID = strings.TrimSpace(tableID); tableID != "" {
			wanted[tableID] = struct{}{}
		}
	}
	if len(wanted) == 0 {
		return nil, fmt.Errorf("%w: at least one table id is required", ErrInvalidInput)
	}

	snap, err := s.loader.load(ctx, parts)
	if err != nil {
		return nil, fmt.Errorf("load standings inputs: %w", err)
	}

	matches := make([]question.Question, 0)
	for _, q := range snap.questions {
		if _, ok := wanted[q.TableID]; ok && q.IsMatch() {
			matches = append(matches, q)
		}
	}

	source := leaguestanding.ActualResults()
	if query.Source == StandingsSourcePredictions {
		source = leaguestanding.PredictedResults(prediction.ByQuestion(snap.predictions, query.Participant))
	}

	tables := s.builder.BuildTables(matches, source, query.Rounds)
	span.SetAttributes(
		attribute.String("standings.source", query.Source),
		attribute.Int("standings.tables", len(tables)),
	)
	return tables, nil
}
