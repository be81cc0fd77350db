package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/toto-league/internal/domain/entity"
	"github.com/riskibarqy/toto-league/internal/domain/prediction"
	"github.com/riskibarqy/toto-league/internal/domain/question"
	"github.com/riskibarqy/toto-league/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

// Import record keys.
const (
	ImportKeyQuestionID  = "question_id"
	ImportKeyTableID     = "table_id"
	ImportKeyParticipant = "participant_name"
	ImportKeyText        = "text_prediction"
	ImportKeyCreatedDate = "created_date"
)

type PredictionService struct {
	loader snapshotLoader
	repo   prediction.Repository
	logger *logging.Logger
}

// ImportRowError describes one rejected import record by its input index.
type ImportRowError struct {
	Row    int
	Reason string
}

type ImportResult struct {
	Imported int
	Rejected []ImportRowError
}

func NewPredictionService(
	questionRepo question.Repository,
	predictionRepo prediction.Repository,
	opts LoadOptions,
	logger *logging.Logger,
) *PredictionService {
	if questionRepo == nil || predictionRepo == nil {
		panic("usecase: prediction service requires question and prediction repositories")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &PredictionService{
		loader: snapshotLoader{questions: questionRepo, predictions: predictionRepo, opts: opts},
		repo:   predictionRepo,
		logger: logger,
	}
}

// TakenTeams lists the distinct answers a participant already gave in one
// table, in question order. Cleared answers are skipped.
func (s *PredictionService) TakenTeams(ctx context.Context, tableID, participant string) ([]string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.TakenTeams")
	defer span.End()

	tableID = strings.TrimSpace(tableID)
	participant = strings.TrimSpace(participant)
	if tableID == "" {
		return nil, fmt.Errorf("%w: table id is required", ErrInvalidInput)
	}
	if participant == "" {
		return nil, fmt.Errorf("%w: participant name is required", ErrInvalidInput)
	}

	snap, err := s.loader.load(ctx, snapshotParts{
		questions:   true,
		predictions: entity.Filter{"participant_name": participant},
	})
	if err != nil {
		return nil, fmt.Errorf("load taken teams: %w", err)
	}

	tableQuestions := make([]question.Question, 0)
	for _, q := range snap.questions {
		if q.TableID == tableID {
			tableQuestions = append(tableQuestions, q)
		}
	}
	question.SortByQuestionID(tableQuestions)

	answers := prediction.ByQuestion(snap.predictions, participant)
	seen := make(map[string]struct{})
	out := make([]string, 0, len(tableQuestions))
	for _, q := range tableQuestions {
		answer := strings.TrimSpace(answers[q.ID])
		if question.IsUndecided(answer) {
			continue
		}
		if _, ok := seen[answer]; ok {
			continue
		}
		seen[answer] = struct{}{}
		out = append(out, answer)
	}
	return out, nil
}

// ImportPredictions validates raw records and bulk-creates the valid ones.
// Invalid rows are reported, not fatal. A blank prediction text stores the
// cleared sentinel.
func (s *PredictionService) ImportPredictions(ctx context.Context, records []map[string]string) (ImportResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.ImportPredictions")
	defer span.End()

	if len(records) == 0 {
		return ImportResult{}, fmt.Errorf("%w: no records to import", ErrInvalidInput)
	}

	snap, err := s.loader.load(ctx, snapshotParts{questions: true})
	if err != nil {
		return ImportResult{}, fmt.Errorf("load questions for import: %w", err)
	}
	resolver := newQuestionResolver(snap.questions)

	var result ImportResult
	items := make([]prediction.Prediction, 0, len(records))
	for i, record := range records {
		item, err := parseImportRecord(record, resolver)
		if err != nil {
			result.Rejected = append(result.Rejected, ImportRowError{Row: i, Reason: err.Error()})
			continue
		}
		items = append(items, item)
	}

	if len(items) > 0 {
		created, err := s.repo.BulkCreate(ctx, items)
		if err != nil {
			if crerr.Is(err, entity.ErrDuplicate) {
				return ImportResult{}, fmt.Errorf("%w: import predictions: %w", ErrConflict, err)
			}
			return ImportResult{}, fmt.Errorf("%w: import predictions: %w", ErrDependencyUnavailable, err)
		}
		result.Imported = len(created)
	}

	span.SetAttributes(
		attribute.Int("import.imported", result.Imported),
		attribute.Int("import.rejected", len(result.Rejected)),
	)
	s.logger.InfoContext(ctx, "predictions imported", "imported", result.Imported, "rejected", len(result.Rejected))
	return result, nil
}

type questionResolver struct {
	byRecordID map[string]struct{}
	byTable    map[string]string
}

func newQuestionResolver(questions []question.Question) questionResolver {
	r := questionResolver{
		byRecordID: make(map[string]struct{}, len(questions)),
		byTable:    make(map[string]string, len(questions)),
	}
	for _, q := range questions {
		r.byRecordID[q.ID] = struct{}{}
		r.byTable[q.TableID+"/"+q.QuestionID] = q.ID
	}
	return r
}

// resolve maps an import reference to a question record id. With a table id
// the question id is the per-table label, otherwise it is the record id.
func (r questionResolver) resolve(tableID, questionID string) (string, bool) {
	if tableID != "" {
		id, ok := r.byTable[tableID+"/"+questionID]
		return id, ok
	}
	_, ok := r.byRecordID[questionID]
	return questionID, ok
}

func parseImportRecord(record map[string]string, resolver questionResolver) (prediction.Prediction, error) {
	questionID := strings.TrimSpace(record[ImportKeyQuestionID])
	tableID := strings.TrimSpace(record[ImportKeyTableID])
	participant := strings.TrimSpace(record[ImportKeyParticipant])
	text := strings.TrimSpace(record[ImportKeyText])

	if questionID == "" {
		return prediction.Prediction{}, fmt.Errorf("%s is required", ImportKeyQuestionID)
	}
	if participant == "" {
		return prediction.Prediction{}, fmt.Errorf("%s is required", ImportKeyParticipant)
	}

	recordID, ok := resolver.resolve(tableID, questionID)
	if !ok {
		if tableID != "" {
			return prediction.Prediction{}, fmt.Errorf("unknown question table=%s question=%s", tableID, questionID)
		}
		return prediction.Prediction{}, fmt.Errorf("unknown question id=%s", questionID)
	}
	if text == "" {
		text = question.ClearedValue
	}

	item := prediction.Prediction{
		QuestionID:      recordID,
		ParticipantName: participant,
		TextPrediction:  text,
	}
	if raw := strings.TrimSpace(record[ImportKeyCreatedDate]); raw != "" {
		created, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return prediction.Prediction{}, fmt.Errorf("invalid %s: %q", ImportKeyCreatedDate, raw)
		}
		item.CreatedDate = created.UTC()
	}
	return item, nil
}
