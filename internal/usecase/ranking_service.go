package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/toto-league/internal/domain/prediction"
	"github.com/riskibarqy/toto-league/internal/domain/question"
	"github.com/riskibarqy/toto-league/internal/domain/ranking"
	"github.com/riskibarqy/toto-league/internal/domain/scoring"
	"github.com/riskibarqy/toto-league/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

const defaultRankingWriteWorkers = 4

type RankingConfig struct {
	Load                 LoadOptions
	WriteWorkers         int
	IncludeLocationBonus bool
}

type RankingService struct {
	loader  snapshotLoader
	repo    ranking.Repository
	engine  *scoring.Engine
	cfg     RankingConfig
	logger  *logging.Logger
	now     func() time.Time
	running atomic.Bool
}

type RecomputeResult struct {
	Participants int
	Created      int
	Updated      int
	Rankings     []ranking.Ranking
}

func NewRankingService(
	questionRepo question.Repository,
	predictionRepo prediction.Repository,
	rankingRepo ranking.Repository,
	engine *scoring.Engine,
	cfg RankingConfig,
	logger *logging.Logger,
) *RankingService {
	if questionRepo == nil || predictionRepo == nil || rankingRepo == nil {
		panic("usecase: ranking service requires question, prediction and ranking repositories")
	}
	if engine == nil {
		panic("usecase: ranking service requires a scoring engine")
	}
	if cfg.WriteWorkers <= 0 {
		cfg.WriteWorkers = defaultRankingWriteWorkers
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &RankingService{
		loader: snapshotLoader{
			questions:   questionRepo,
			predictions: predictionRepo,
			rankings:    rankingRepo,
			opts:        cfg.Load,
		},
		repo:   rankingRepo,
		engine: engine,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

// Recompute rescores every participant and overwrites the ranking table.
// Only one recompute runs at a time; a concurrent call fails fast.
func (s *RankingService) Recompute(ctx context.Context) (RecomputeResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RankingService.Recompute")
	defer span.End()

	if !s.running.CompareAndSwap(false, true) {
		return RecomputeResult{}, ErrRecomputeInProgress
	}
	defer s.running.Store(false)

	start := time.Now()
	snap, err := s.loader.load(ctx, snapshotParts{questions: true, predictions: allPredictions, rankings: true})
	if err != nil {
		return RecomputeResult{}, fmt.Errorf("load ranking inputs: %w", err)
	}

	writes := computeRankings(s.engine, snap.questions, snap.predictions, snap.rankings, s.now().UTC(), s.cfg.IncludeLocationBonus)
	persisted, err := s.persist(ctx, writes)
	if err != nil {
		s.logger.ErrorContext(ctx, "ranking recompute write failed", "participants", len(writes), "error", err)
		return RecomputeResult{}, fmt.Errorf("%w: persist rankings: %w", ErrDependencyUnavailable, err)
	}

	result := RecomputeResult{Participants: len(writes), Rankings: persisted}
	for _, w := range writes {
		if w.exists {
			result.Updated++
		} else {
			result.Created++
		}
	}

	span.SetAttributes(
		attribute.Int("ranking.participants", result.Participants),
		attribute.Int("ranking.created", result.Created),
		attribute.Int("ranking.updated", result.Updated),
	)
	s.logger.InfoContext(ctx, "ranking recompute finished",
		"questions", len(snap.questions),
		"predictions", len(snap.predictions),
		"participants", result.Participants,
		"created", result.Created,
		"updated", result.Updated,
		"duration", time.Since(start),
	)
	return result, nil
}

// ListRankings returns the stored leaderboard ordered by position.
func (s *RankingService) ListRankings(ctx context.Context) ([]ranking.Ranking, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RankingService.ListRankings")
	defer span.End()

	snap, err := s.loader.load(ctx, snapshotParts{rankings: true})
	if err != nil {
		return nil, fmt.Errorf("list rankings: %w", err)
	}

	items := snap.rankings
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].CurrentPosition != items[j].CurrentPosition {
			return items[i].CurrentPosition < items[j].CurrentPosition
		}
		return items[i].ParticipantName < items[j].ParticipantName
	})
	return items, nil
}

type rankingWrite struct {
	ranking ranking.Ranking
	exists  bool
}

type participantTotal struct {
	name  string
	total int
}

// computeRankings is the pure half of a recompute. Pending and zero scores
// add nothing; ties on total are broken by participant name.
func computeRankings(
	engine *scoring.Engine,
	questions []question.Question,
	predictions []prediction.Prediction,
	previous []ranking.Ranking,
	now time.Time,
	includeLocationBonus bool,
) []rankingWrite {
	byID := make(map[string]question.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	latest := prediction.Latest(predictions)
	totals := make(map[string]int)
	for _, p := range latest {
		if p.ParticipantName == "" {
			continue
		}
		if _, ok := totals[p.ParticipantName]; !ok {
			totals[p.ParticipantName] = 0
		}
		q, ok := byID[p.QuestionID]
		if !ok {
			continue
		}
		if points, decided := engine.ScoreQuestion(q, p.TextPrediction); decided && points > 0 {
			totals[p.ParticipantName] += points
		}
	}

	if includeLocationBonus {
		for name, bonus := range locationBonusTotals(engine, questions, latest) {
			if _, ok := totals[name]; ok {
				totals[name] += bonus
			}
		}
	}

	ordered := make([]participantTotal, 0, len(totals))
	for name, total := range totals {
		ordered = append(ordered, participantTotal{name: name, total: total})
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].total != ordered[j].total {
			return ordered[i].total > ordered[j].total
		}
		return ordered[i].name < ordered[j].name
	})

	prevByName := make(map[string]ranking.Ranking, len(previous))
	for _, r := range previous {
		prevByName[strings.TrimSpace(r.ParticipantName)] = r
	}

	out := make([]rankingWrite, 0, len(ordered))
	for i, p := range ordered {
		position := i + 1
		row := ranking.Ranking{
			ParticipantName: p.name,
			CurrentScore:    p.total,
			CurrentPosition: position,
			LastUpdated:     now,
		}

		prev, exists := prevByName[p.name]
		if exists {
			row.ID = prev.ID
			row.CreatedDate = prev.CreatedDate
			row.PreviousScore = prev.CurrentScore
			row.PreviousPosition = prev.CurrentPosition
			row.ScoreChange = p.total - prev.CurrentScore
			row.PositionChange = prev.CurrentPosition - position
		}
		out = append(out, rankingWrite{ranking: row, exists: exists})
	}
	return out
}

// locationBonusTotals sums decided location bonuses per participant.
func locationBonusTotals(engine *scoring.Engine, questions []question.Question, latest []prediction.Prediction) map[string]int {
	tables := make(map[string][]question.Question)
	for _, q := range questions {
		if engine.Rules().IsLocationTable(q.TableID) {
			tables[q.TableID] = append(tables[q.TableID], q)
		}
	}
	if len(tables) == 0 {
		return nil
	}

	byParticipant := make(map[string]map[string]string)
	for _, p := range latest {
		answers, ok := byParticipant[p.ParticipantName]
		if !ok {
			answers = make(map[string]string)
			byParticipant[p.ParticipantName] = answers
		}
		answers[p.QuestionID] = p.TextPrediction
	}

	out := make(map[string]int, len(byParticipant))
	for name, answers := range byParticipant {
		for tableID, tableQuestions := range tables {
			if bonus, ok := engine.EvaluateLocationBonus(tableID, tableQuestions, answers); ok {
				out[name] += bonus.Total()
			}
		}
	}
	return out
}

// persist fans the writes out over a bounded worker pool and reports every
// failed write.
func (s *RankingService) persist(ctx context.Context, writes []rankingWrite) ([]ranking.Ranking, error) {
	if len(writes) == 0 {
		return nil, nil
	}

	pool, err := ants.NewPool(min(s.cfg.WriteWorkers, len(writes)))
	if err != nil {
		return nil, crerr.Wrap(err, "create ranking write pool")
	}
	defer pool.Release()

	out := make([]ranking.Ranking, len(writes))
	errs := make([]error, len(writes))
	var workers sync.WaitGroup
	for i, w := range writes {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			out[i], errs[i] = s.write(ctx, w)
		}); err != nil {
			workers.Done()
			errs[i] = crerr.Wrapf(err, "submit ranking write participant=%s", w.ranking.ParticipantName)
		}
	}
	workers.Wait()

	var combined error
	for _, err := range errs {
		combined = crerr.CombineErrors(combined, err)
	}
	if combined != nil {
		return nil, combined
	}
	return out, nil
}

func (s *RankingService) write(ctx context.Context, w rankingWrite) (ranking.Ranking, error) {
	if err := ctx.Err(); err != nil {
		return ranking.Ranking{}, crerr.Wrap(err, "ranking write cancelled")
	}
	if w.exists {
		updated, err := s.repo.Update(ctx, w.ranking.ID, w.ranking)
		if err != nil {
			return ranking.Ranking{}, crerr.Wrapf(err, "update ranking participant=%s", w.ranking.ParticipantName)
		}
		return updated, nil
	}

	created, err := s.repo.Create(ctx, w.ranking)
	if err != nil {
		return ranking.Ranking{}, crerr.Wrapf(err, "create ranking participant=%s", w.ranking.ParticipantName)
	}
	return created, nil
}
