package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/toto-league/internal/domain/leaguestanding"
)

func standingFor(t *testing.T, rows []leaguestanding.Standing, team string) leaguestanding.Standing {
	t.Helper()
	for _, row := range rows {
		if row.TeamName == team {
			return row
		}
	}
	t.Fatalf("team %q not found in %+v", team, rows)
	return leaguestanding.Standing{}
}

func TestLeagueStandingService_Standings_ActualGroups(t *testing.T) {
	t.Parallel()

	stores := newSeededStores(t)
	service := NewLeagueStandingService(stores.questions, stores.predictions, newTestBuilder(), newTestEngine().Rules().GroupStageTables, LoadOptions{})

	tables, err := service.Standings(context.Background(), StandingsQuery{})
	if err != nil {
		t.Fatalf("standings: %v", err)
	}
	if len(tables) != 2 {
		t.Fatalf("expected two group tables, got %d", len(tables))
	}
	if tables[0].Name != "Group A" || tables[1].Name != "Group B" {
		t.Fatalf("unexpected table names: %q %q", tables[0].Name, tables[1].Name)
	}

	groupA := tables[0].Rows
	if len(groupA) != 4 {
		t.Fatalf("expected 4 teams in group A, got %d", len(groupA))
	}
	if groupA[0].TeamName != "קוריאה הדרומית" || groupA[0].Points != 4 || groupA[0].Position != 1 {
		t.Fatalf("unexpected group A leader: %+v", groupA[0])
	}
	mexico := standingFor(t, groupA, "מקסיקו")
	if mexico.Points != 3 || mexico.Played != 2 || mexico.Position != 2 {
		t.Fatalf("unexpected mexico row: %+v", mexico)
	}

	groupB := tables[1].Rows
	if len(groupB) != 2 {
		t.Fatalf("cleared result should be skipped, got %d teams", len(groupB))
	}
	bosnia := standingFor(t, groupB, "בוסניה והרצגובינה")
	if bosnia.Lost != 1 || bosnia.Group != "Group B" {
		t.Fatalf("unexpected bosnia row: %+v", bosnia)
	}
}

func TestLeagueStandingService_Standings_Predicted(t *testing.T) {
	t.Parallel()

	stores := newSeededStores(t)
	service := NewLeagueStandingService(stores.questions, stores.predictions, newTestBuilder(), newTestEngine().Rules().GroupStageTables, LoadOptions{})

	tables, err := service.Standings(context.Background(), StandingsQuery{
		TableIDs:    []string{"T2"},
		Source:      "Predictions",
		Participant: "דנה",
	})
	if err != nil {
		t.Fatalf("standings: %v", err)
	}
	if len(tables) != 1 {
		t.Fatalf("expected one table, got %d", len(tables))
	}

	mexico := standingFor(t, tables[0].Rows, "מקסיקו")
	if mexico.Won != 1 || mexico.Lost != 1 || mexico.GoalsFor != 3 || mexico.GoalsAgainst != 2 {
		t.Fatalf("unexpected predicted mexico row: %+v", mexico)
	}
	czech := standingFor(t, tables[0].Rows, "צ'כיה")
	if czech.Draw != 1 || czech.Points != 1 {
		t.Fatalf("unexpected predicted czech row: %+v", czech)
	}
}

func TestLeagueStandingService_Standings_CombinedRounds(t *testing.T) {
	t.Parallel()

	stores := newSeededStores(t)
	service := NewLeagueStandingService(stores.questions, stores.predictions, newTestBuilder(), map[string]string{}, LoadOptions{})

	tables, err := service.Standings(context.Background(), StandingsQuery{TableIDs: []string{"T3", "T2"}, Rounds: 1})
	if err != nil {
		t.Fatalf("standings: %v", err)
	}
	if len(tables) != 1 || tables[0].Name != leaguestanding.CombinedTableName {
		t.Fatalf("expected one combined table, got %+v", tables)
	}
	if len(tables[0].TableIDs) != 1 || tables[0].TableIDs[0] != "T2" {
		t.Fatalf("expected only the first round, got %v", tables[0].TableIDs)
	}
}

func TestLeagueStandingService_Standings_InvalidInput(t *testing.T) {
	t.Parallel()

	stores := newSeededStores(t)
	service := NewLeagueStandingService(stores.questions, stores.predictions, newTestBuilder(), newTestEngine().Rules().GroupStageTables, LoadOptions{})

	queries := []StandingsQuery{
		{Source: StandingsSourcePredictions},
		{Source: "rumours"},
		{Rounds: -1},
		{TableIDs: []string{" "}},
	}
	for _, query := range queries {
		if _, err := service.Standings(context.Background(), query); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("query %+v: expected ErrInvalidInput, got %v", query, err)
		}
	}
}
