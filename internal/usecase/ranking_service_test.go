package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/toto-league/internal/domain/entity"
	"github.com/riskibarqy/toto-league/internal/domain/prediction"
	"github.com/riskibarqy/toto-league/internal/domain/question"
	"github.com/riskibarqy/toto-league/internal/domain/ranking"
	entitymock "github.com/riskibarqy/toto-league/internal/mocks/domain/entity"
	"github.com/riskibarqy/toto-league/internal/platform/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var rankingNow = time.Date(2026, 7, 1, 18, 0, 0, 0, time.UTC)

func matchQuestion(id, tableID, result string) question.Question {
	return question.Question{ID: id, TableID: tableID, QuestionID: id, HomeTeam: "A", AwayTeam: "B", ActualResult: result}
}

func predictionAt(questionID, participant, text string, minute int) prediction.Prediction {
	return prediction.Prediction{
		QuestionID:      questionID,
		ParticipantName: participant,
		TextPrediction:  text,
		CreatedDate:     rankingNow.Add(time.Duration(minute) * time.Minute),
	}
}

func TestComputeRankings_LatestPredictionWins(t *testing.T) {
	questions := []question.Question{matchQuestion("m1", "T2", "2-1")}
	predictions := []prediction.Prediction{
		predictionAt("m1", "dana", "2-1", 2),
		predictionAt("m1", "dana", "0-0", 1),
		predictionAt("m1", "yossi", "2-1", 1),
		predictionAt("m1", "yossi", "0-3", 5),
	}

	got := computeRankings(newTestEngine(), questions, predictions, nil, rankingNow, false)
	if len(got) != 2 {
		t.Fatalf("expected 2 rankings, got %d", len(got))
	}
	if got[0].ranking.ParticipantName != "dana" || got[0].ranking.CurrentScore != 10 {
		t.Fatalf("unexpected leader: %+v", got[0].ranking)
	}
	if got[1].ranking.ParticipantName != "yossi" || got[1].ranking.CurrentScore != 0 {
		t.Fatalf("unexpected runner-up: %+v", got[1].ranking)
	}
}

func TestComputeRankings_TiesOrderedByName(t *testing.T) {
	questions := []question.Question{matchQuestion("m1", "T2", "1-0")}
	predictions := []prediction.Prediction{
		predictionAt("m1", "zohar", "1-0", 1),
		predictionAt("m1", "avi", "1-0", 2),
		predictionAt("m1", " moshe ", "3-0", 3),
		predictionAt("m1", "", "1-0", 4),
	}

	got := computeRankings(newTestEngine(), questions, predictions, nil, rankingNow, false)
	names := make([]string, 0, len(got))
	for i, w := range got {
		names = append(names, w.ranking.ParticipantName)
		if w.ranking.CurrentPosition != i+1 {
			t.Fatalf("unexpected position for %s: %d", w.ranking.ParticipantName, w.ranking.CurrentPosition)
		}
	}
	if strings.Join(names, ",") != "avi,zohar,moshe" {
		t.Fatalf("unexpected order: %v", names)
	}
}

func TestComputeRankings_PendingAddsNothing(t *testing.T) {
	questions := []question.Question{
		matchQuestion("m1", "T2", ""),
		matchQuestion("m2", "T2", question.ClearedValue),
		matchQuestion("m3", "T2", "2-2"),
	}
	predictions := []prediction.Prediction{
		predictionAt("m1", "dana", "1-0", 1),
		predictionAt("m2", "dana", "1-0", 1),
		predictionAt("m3", "dana", question.ClearedValue, 1),
	}

	got := computeRankings(newTestEngine(), questions, predictions, nil, rankingNow, false)
	require.Len(t, got, 1)
	assert.Equal(t, 0, got[0].ranking.CurrentScore)
	assert.Equal(t, 1, got[0].ranking.CurrentPosition)
	assert.False(t, got[0].exists)
}

func TestComputeRankings_CarriesPreviousValues(t *testing.T) {
	questions := []question.Question{matchQuestion("m1", "T2", "2-0")}
	predictions := []prediction.Prediction{
		predictionAt("m1", "dana", "1-0", 1),
		predictionAt("m1", "yossi", "2-0", 1),
	}
	created := rankingNow.Add(-48 * time.Hour)
	previous := []ranking.Ranking{
		{ID: "r1", ParticipantName: "yossi", CurrentScore: 3, CurrentPosition: 2, CreatedDate: created},
		{ID: "r2", ParticipantName: "dana", CurrentScore: 4, CurrentPosition: 1, CreatedDate: created},
	}

	got := computeRankings(newTestEngine(), questions, predictions, previous, rankingNow, false)
	require.Len(t, got, 2)

	yossi := got[0]
	assert.True(t, yossi.exists)
	assert.Equal(t, "r1", yossi.ranking.ID)
	assert.Equal(t, created, yossi.ranking.CreatedDate)
	assert.Equal(t, 10, yossi.ranking.CurrentScore)
	assert.Equal(t, 3, yossi.ranking.PreviousScore)
	assert.Equal(t, 2, yossi.ranking.PreviousPosition)
	assert.Equal(t, 7, yossi.ranking.ScoreChange)
	assert.Equal(t, 1, yossi.ranking.PositionChange)
	assert.Equal(t, rankingNow, yossi.ranking.LastUpdated)

	dana := got[1]
	assert.Equal(t, 5, dana.ranking.CurrentScore)
	assert.Equal(t, 1, dana.ranking.ScoreChange)
	assert.Equal(t, -1, dana.ranking.PositionChange)
}

func TestComputeRankings_LocationBonus(t *testing.T) {
	teams := []string{"A", "B", "C", "D", "E", "F", "G", "H"}
	questions := make([]question.Question, 0, len(teams))
	predictions := make([]prediction.Prediction, 0, len(teams))
	for i, team := range teams {
		id := "t14-" + team
		questions = append(questions, question.Question{ID: id, TableID: "T14", QuestionID: id, ActualResult: team})
		predictions = append(predictions, predictionAt(id, "dana", team, i))
	}

	withoutBonus := computeRankings(newTestEngine(), questions, predictions, nil, rankingNow, false)
	withBonus := computeRankings(newTestEngine(), questions, predictions, nil, rankingNow, true)
	require.Len(t, withoutBonus, 1)
	require.Len(t, withBonus, 1)
	assert.Equal(t, withoutBonus[0].ranking.CurrentScore+60, withBonus[0].ranking.CurrentScore)
}

func TestRankingService_Recompute_SeededTournament(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	stores := newSeededStores(t)
	service := NewRankingService(stores.questions, stores.predictions, stores.rankings, newTestEngine(), RankingConfig{}, logging.NewNop())

	first, err := service.Recompute(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Participants)
	assert.Equal(t, 2, first.Created)
	assert.Equal(t, 0, first.Updated)

	second, err := service.Recompute(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Created)
	assert.Equal(t, 2, second.Updated)

	got, err := service.ListRankings(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "דנה", got[0].ParticipantName)
	assert.Equal(t, 29, got[0].CurrentScore)
	assert.Equal(t, 1, got[0].CurrentPosition)
	assert.Equal(t, "יוסי", got[1].ParticipantName)
	assert.Equal(t, 15, got[1].CurrentScore)
	assert.Equal(t, 2, got[1].CurrentPosition)

	for _, r := range got {
		assert.Equal(t, r.CurrentScore, r.PreviousScore, "participant=%s", r.ParticipantName)
		assert.Equal(t, r.CurrentPosition, r.PreviousPosition, "participant=%s", r.ParticipantName)
		assert.Zero(t, r.ScoreChange)
		assert.Zero(t, r.PositionChange)
	}
}

func TestRankingService_Recompute_ConcurrentCallRejected(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	stores := newSeededStores(t)
	questionRepo := entitymock.NewStore[question.Question](t)

	started := make(chan struct{})
	release := make(chan struct{})
	questionRepo.
		On("Filter", mock.Anything, mock.Anything, mock.Anything).
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return([]question.Question{}, nil).
		Once()

	service := NewRankingService(questionRepo, stores.predictions, stores.rankings, newTestEngine(), RankingConfig{}, logging.NewNop())

	done := make(chan error, 1)
	go func() {
		_, err := service.Recompute(ctx)
		done <- err
	}()

	<-started
	_, err := service.Recompute(ctx)
	if !errors.Is(err, ErrRecomputeInProgress) {
		t.Fatalf("expected ErrRecomputeInProgress, got %v", err)
	}

	close(release)
	require.NoError(t, <-done)
}

func TestRankingService_Recompute_CombinesWriteErrors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	stores := newSeededStores(t)
	rankingRepo := entitymock.NewStore[ranking.Ranking](t)
	rankingRepo.
		On("Filter", mock.Anything, mock.Anything, mock.Anything).
		Return([]ranking.Ranking{}, nil)
	rankingRepo.
		On("Create", mock.Anything, mock.AnythingOfType("ranking.Ranking")).
		Return(ranking.Ranking{}, errors.New("connection reset")).
		Times(2)

	service := NewRankingService(stores.questions, stores.predictions, rankingRepo, newTestEngine(), RankingConfig{WriteWorkers: 2}, logging.NewNop())

	_, err := service.Recompute(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDependencyUnavailable)
	assert.Contains(t, err.Error(), "create ranking participant=")
}

func TestRankingService_Recompute_LoadFailure(t *testing.T) {
	t.Parallel()

	stores := newSeededStores(t)
	predictionRepo := entitymock.NewStore[prediction.Prediction](t)
	predictionRepo.
		On("Filter", mock.Anything, mock.Anything, mock.Anything).
		Return([]prediction.Prediction(nil), errors.New("timeout")).
		Once()

	service := NewRankingService(stores.questions, predictionRepo, stores.rankings, newTestEngine(), RankingConfig{}, logging.NewNop())

	_, err := service.Recompute(context.Background())
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}

	items, err := stores.rankings.List(context.Background(), entity.ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestNewRankingService_PanicsOnMissingDependencies(t *testing.T) {
	stores := newSeededStores(t)
	assert.Panics(t, func() {
		NewRankingService(stores.questions, stores.predictions, nil, newTestEngine(), RankingConfig{}, nil)
	})
	assert.Panics(t, func() {
		NewRankingService(stores.questions, stores.predictions, stores.rankings, nil, RankingConfig{}, nil)
	})
}
