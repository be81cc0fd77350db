package leaguestanding

import (
	"testing"

	"github.com/riskibarqy/toto-league/internal/domain/question"
)

func match(id, tableID, home, away, result string) question.Question {
	return question.Question{
		ID:           id,
		TableID:      tableID,
		QuestionID:   id,
		HomeTeam:     home,
		AwayTeam:     away,
		ActualResult: result,
	}
}

func rowFor(t *testing.T, rows []Standing, team string) Standing {
	t.Helper()
	for _, row := range rows {
		if row.TeamName == team {
			return row
		}
	}
	t.Fatalf("team %q not found in %+v", team, rows)
	return Standing{}
}

func TestBuild_HomeWin(t *testing.T) {
	b := NewBuilder(nil, nil)
	rows := b.Build([]question.Question{match("1", "T2", "ברזיל", "גאנה", "2-1")}, nil)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	home := rowFor(t, rows, "ברזיל")
	if home.Points != 3 || home.Won != 1 || home.GoalsFor != 2 || home.GoalsAgainst != 1 || home.GoalDifference != 1 || home.Position != 1 {
		t.Fatalf("unexpected home row: %+v", home)
	}
	away := rowFor(t, rows, "גאנה")
	if away.Points != 0 || away.Lost != 1 || away.Played != 1 || away.GoalDifference != -1 || away.Position != 2 {
		t.Fatalf("unexpected away row: %+v", away)
	}
}

func TestBuild_SkipsUndecidedAndMalformed(t *testing.T) {
	b := NewBuilder(nil, nil)
	rows := b.Build([]question.Question{
		match("1", "T2", "A", "B", ""),
		match("2", "T2", "A", "B", question.ClearedValue),
		match("3", "T2", "A", "B", "2:1"),
		match("4", "T2", "A", "B", "x-1"),
		{ID: "5", TableID: "T2", ActualResult: "1-0"},
		match("6", "T2", "A", "B", " 1 - 1 "),
	}, nil)

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %+v", rows)
	}
	for _, row := range rows {
		if row.Played != 1 || row.Draw != 1 || row.Points != 1 {
			t.Fatalf("expected a single draw per team, got %+v", row)
		}
	}
}

func TestBuild_NormalizesTeamNames(t *testing.T) {
	b := NewBuilder(nil, nil)
	rows := b.Build([]question.Question{
		match("1", "T2", "ארה\"ב", "ויילס", "1-0"),
		match("2", "T2", "ארהב", "איראן", "2-0"),
	}, nil)

	usa := rowFor(t, rows, "ארצות הברית")
	if usa.Played != 2 || usa.Points != 6 {
		t.Fatalf("expected aliases folded into one row, got %+v", usa)
	}
}

func TestBuild_TieBreakOrder(t *testing.T) {
	b := NewBuilder(nil, nil)
	rows := b.Build([]question.Question{
		match("1", "T2", "ברזיל", "דנמרק", "3-0"),
		match("2", "T2", "ארגנטינה", "גאנה", "3-0"),
		match("3", "T2", "הולנד", "ויילס", "2-1"),
		match("4", "T2", "זמביה", "חוף השנהב", "4-3"),
	}, nil)

	want := []string{"ארגנטינה", "ברזיל", "זמביה", "הולנד", "חוף השנהב", "ויילס", "גאנה", "דנמרק"}
	if len(rows) != len(want) {
		t.Fatalf("unexpected rows: %+v", rows)
	}
	for i, team := range want {
		if rows[i].TeamName != team {
			t.Fatalf("position %d: got=%q want=%q", i+1, rows[i].TeamName, team)
		}
		if rows[i].Position != i+1 {
			t.Fatalf("unexpected position for %q: %d", team, rows[i].Position)
		}
	}
}

func TestBuild_PredictedResults(t *testing.T) {
	b := NewBuilder(nil, nil)
	q := match("q1", "T2", "A", "B", "0-0")
	rows := b.Build([]question.Question{q}, PredictedResults(map[string]string{"q1": "0-2"}))

	if got := rowFor(t, rows, "B"); got.Points != 3 {
		t.Fatalf("expected prediction to drive the table, got %+v", got)
	}
}

func TestBuildTables_PerGroup(t *testing.T) {
	b := NewBuilder(nil, map[string]string{"T2": "Group A", "T3": "Group B"})
	tables := b.BuildTables([]question.Question{
		match("2", "T3", "C", "D", "1-0"),
		match("1", "T2", "A", "B", "1-0"),
	}, nil, 0)

	if len(tables) != 2 {
		t.Fatalf("expected one table per group, got %d", len(tables))
	}
	if tables[0].Name != "Group A" || tables[1].Name != "Group B" {
		t.Fatalf("unexpected table order: %q %q", tables[0].Name, tables[1].Name)
	}
	if tables[1].Rows[0].TeamName != "C" || tables[1].Rows[0].Group != "Group B" {
		t.Fatalf("unexpected group row: %+v", tables[1].Rows[0])
	}
}

func TestBuildTables_CombinedWithRounds(t *testing.T) {
	b := NewBuilder(nil, map[string]string{"T2": "Group A"})
	questions := []question.Question{
		match("3", "T10", "A", "B", "5-0"),
		match("1", "T2", "A", "B", "1-0"),
		match("2", "T9", "A", "B", "0-1"),
	}

	all := b.BuildTables(questions, nil, 0)
	if len(all) != 1 || all[0].Name != CombinedTableName {
		t.Fatalf("expected combined table, got %+v", all)
	}
	if got := all[0].TableIDs; len(got) != 3 || got[0] != "T2" || got[1] != "T9" || got[2] != "T10" {
		t.Fatalf("unexpected table order: %v", got)
	}
	if a := rowFor(t, all[0].Rows, "A"); a.Played != 3 || a.Points != 6 {
		t.Fatalf("unexpected combined row: %+v", a)
	}

	limited := b.BuildTables(questions, nil, 2)
	if got := limited[0].TableIDs; len(got) != 2 || got[1] != "T9" {
		t.Fatalf("unexpected limited tables: %v", got)
	}
	if a := rowFor(t, limited[0].Rows, "A"); a.Played != 2 || a.Points != 3 {
		t.Fatalf("unexpected limited row: %+v", a)
	}
}

func TestBuildTables_Empty(t *testing.T) {
	if got := NewBuilder(nil, nil).BuildTables(nil, nil, 0); got != nil {
		t.Fatalf("expected nil tables, got %+v", got)
	}
}
