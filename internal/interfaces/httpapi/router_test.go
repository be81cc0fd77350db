package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/toto-league/internal/domain/leaguestanding"
	"github.com/riskibarqy/toto-league/internal/domain/scoring"
	"github.com/riskibarqy/toto-league/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/toto-league/internal/platform/id"
	"github.com/riskibarqy/toto-league/internal/platform/logging"
	"github.com/riskibarqy/toto-league/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnvelope[T any] struct {
	APIVersion string `json:"apiVersion"`
	Data       T      `json:"data"`
	Error      *struct {
		Code   int    `json:"code"`
		Status string `json:"status"`
	} `json:"error"`
}

func newTestRouter(t *testing.T, adminToken string) http.Handler {
	t.Helper()

	questions := memory.NewQuestionRepository(id.NewSequenceGenerator("q"))
	predictions := memory.NewPredictionRepository(id.NewSequenceGenerator("p"))
	rankings := memory.NewRankingRepository(id.NewSequenceGenerator("r"))
	require.NoError(t, memory.Seed(context.Background(), questions, predictions))

	rules := scoring.DefaultRules()
	normalizer := scoring.DefaultNormalizer()
	engine := scoring.NewEngine(rules, normalizer)
	logger := logging.NewNop()

	handler := NewHandler(
		usecase.NewRankingService(questions, predictions, rankings, engine, usecase.RankingConfig{}, logger),
		usecase.NewScoringService(questions, predictions, engine, usecase.ScoringConfig{}),
		usecase.NewLeagueStandingService(questions, predictions, leaguestanding.NewBuilder(normalizer, rules.GroupStageTables), rules.GroupStageTables, usecase.LoadOptions{}),
		usecase.NewPredictionService(questions, predictions, usecase.LoadOptions{}, logger),
		logger,
	)
	return NewRouter(handler, logger, RouterConfig{AdminToken: adminToken})
}

func serve(t *testing.T, router http.Handler, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope[T any](t *testing.T, rec *httptest.ResponseRecorder) testEnvelope[T] {
	t.Helper()

	var out testEnvelope[T]
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &out), "body=%s", rec.Body.String())
	return out
}

func TestRouter_Healthz(t *testing.T) {
	router := newTestRouter(t, "")

	rec := serve(t, router, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeEnvelope[map[string]string](t, rec)
	assert.Equal(t, "ok", body.Data["status"])
}

func TestRouter_RecomputeThenListRankings(t *testing.T) {
	router := newTestRouter(t, "")

	rec := serve(t, router, http.MethodPost, "/v1/rankings/recompute", "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	recompute := decodeEnvelope[recomputeDTO](t, rec)
	assert.Equal(t, 2, recompute.Data.Participants)
	assert.Equal(t, 2, recompute.Data.Created)

	rec = serve(t, router, http.MethodGet, "/v1/rankings", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rankings := decodeEnvelope[[]rankingDTO](t, rec)
	require.Len(t, rankings.Data, 2)
	assert.Equal(t, "דנה", rankings.Data[0].ParticipantName)
	assert.Equal(t, 29, rankings.Data[0].CurrentScore)
	assert.Equal(t, 1, rankings.Data[0].CurrentPosition)
	assert.NotEmpty(t, rankings.Data[0].LastUpdated)
}

func TestRouter_AdminTokenGuardsMutations(t *testing.T) {
	router := newTestRouter(t, "s3cret")

	tests := []struct {
		name   string
		header map[string]string
		want   int
	}{
		{name: "missing", want: http.StatusUnauthorized},
		{name: "wrong", header: map[string]string{"Authorization": "Bearer nope"}, want: http.StatusUnauthorized},
		{name: "valid", header: map[string]string{"Authorization": "Bearer s3cret"}, want: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, router, http.MethodPost, "/v1/rankings/recompute", "", tt.header)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}

	rec := serve(t, router, http.MethodGet, "/v1/rankings", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code, "read routes stay public")
}

func TestRouter_ParticipantScores(t *testing.T) {
	router := newTestRouter(t, "")

	rec := serve(t, router, http.MethodGet, "/v1/participants/"+url.PathEscape("יוסי")+"/scores", "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodeEnvelope[participantScoresDTO](t, rec)
	assert.Equal(t, "יוסי", body.Data.ParticipantName)
	assert.Equal(t, 15, body.Data.Total)
	assert.Len(t, body.Data.Questions, 5)

	rec = serve(t, router, http.MethodGet, "/v1/participants/nobody/scores", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	notFound := decodeEnvelope[any](t, rec)
	require.NotNil(t, notFound.Error)
	assert.Equal(t, "NOT_FOUND", notFound.Error.Status)
}

func TestRouter_LocationBonusAndTakenTeams(t *testing.T) {
	router := newTestRouter(t, "")
	participant := url.QueryEscape("דנה")

	rec := serve(t, router, http.MethodGet, "/v1/tables/T14/bonus?participant="+participant, "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	bonus := decodeEnvelope[tableBonusDTO](t, rec)
	assert.True(t, bonus.Data.Decided)
	require.NotNil(t, bonus.Data.Bonus)
	assert.Equal(t, 0, bonus.Data.Bonus.CorrectCount)

	rec = serve(t, router, http.MethodGet, "/v1/tables/T2/bonus?participant="+participant, "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(t, router, http.MethodGet, "/v1/tables/T2/taken-teams?participant="+participant, "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	taken := decodeEnvelope[takenTeamsDTO](t, rec)
	assert.Equal(t, []string{"2-0", "2-2", "1-2"}, taken.Data.Teams)

	rec = serve(t, router, http.MethodGet, "/v1/tables/T2/taken-teams", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_Standings(t *testing.T) {
	router := newTestRouter(t, "")

	rec := serve(t, router, http.MethodGet, "/v1/standings", "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	tables := decodeEnvelope[[]standingsTableDTO](t, rec)
	require.Len(t, tables.Data, 2)
	assert.Equal(t, "Group A", tables.Data[0].Name)
	assert.Equal(t, 4, tables.Data[0].Rows[0].Points)

	for _, target := range []string{
		"/v1/standings?source=rumours",
		"/v1/standings?source=predictions",
		"/v1/standings?rounds=two",
		"/v1/standings?rounds=-1",
	} {
		rec := serve(t, router, http.MethodGet, target, "", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestRouter_ImportPredictions(t *testing.T) {
	router := newTestRouter(t, "")

	payload := `{"records":[
		{"table_id":"T2","question_id":"4","participant_name":"רוני","text_prediction":"1-1"},
		{"question_id":"missing","participant_name":"רוני","text_prediction":"1-1"}
	]}`
	rec := serve(t, router, http.MethodPost, "/v1/predictions/import", payload, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	result := decodeEnvelope[importResultDTO](t, rec)
	assert.Equal(t, 1, result.Data.Imported)
	require.Len(t, result.Data.Rejected, 1)
	assert.Equal(t, 1, result.Data.Rejected[0].Row)

	rec = serve(t, router, http.MethodPost, "/v1/predictions/import", `{"records":[],"extra":true}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(t, router, http.MethodPost, "/v1/predictions/import", `{"records":[]}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
