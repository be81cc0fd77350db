package httpapi

import (
	"context"
	"time"

	"github.com/riskibarqy/toto-league/internal/domain/leaguestanding"
	"github.com/riskibarqy/toto-league/internal/domain/ranking"
	"github.com/riskibarqy/toto-league/internal/domain/scoring"
	"github.com/riskibarqy/toto-league/internal/usecase"
)

type rankingDTO struct {
	ParticipantName  string `json:"participant_name"`
	CurrentScore     int    `json:"current_score"`
	CurrentPosition  int    `json:"current_position"`
	PreviousScore    int    `json:"previous_score"`
	PreviousPosition int    `json:"previous_position"`
	ScoreChange      int    `json:"score_change"`
	PositionChange   int    `json:"position_change"`
	LastUpdated      string `json:"last_updated"`
}

type recomputeDTO struct {
	Participants int          `json:"participants"`
	Created      int          `json:"created"`
	Updated      int          `json:"updated"`
	Rankings     []rankingDTO `json:"rankings"`
}

type standingDTO struct {
	Position       int    `json:"position"`
	TeamName       string `json:"team_name"`
	Played         int    `json:"played"`
	Won            int    `json:"won"`
	Draw           int    `json:"draw"`
	Lost           int    `json:"lost"`
	GoalsFor       int    `json:"goals_for"`
	GoalsAgainst   int    `json:"goals_against"`
	GoalDifference int    `json:"goal_difference"`
	Points         int    `json:"points"`
}

type standingsTableDTO struct {
	Name     string        `json:"name"`
	TableIDs []string      `json:"table_ids"`
	Rows     []standingDTO `json:"rows"`
}

type questionScoreDTO struct {
	RecordID   string `json:"record_id"`
	TableID    string `json:"table_id"`
	QuestionID string `json:"question_id"`
	Question   string `json:"question,omitempty"`
	HomeTeam   string `json:"home_team,omitempty"`
	AwayTeam   string `json:"away_team,omitempty"`
	Prediction string `json:"prediction"`
	Result     string `json:"result,omitempty"`
	Points     int    `json:"points"`
	Pending    bool   `json:"pending"`
}

type locationBonusDTO struct {
	TableID      string `json:"table_id"`
	Expected     int    `json:"expected"`
	CorrectCount int    `json:"correct_count"`
	AllCorrect   bool   `json:"all_correct"`
	PerfectOrder bool   `json:"perfect_order"`
	TeamsBonus   int    `json:"teams_bonus"`
	OrderBonus   int    `json:"order_bonus"`
	Total        int    `json:"total"`
}

type participantScoresDTO struct {
	ParticipantName string             `json:"participant_name"`
	QuestionPoints  int                `json:"question_points"`
	BonusPoints     int                `json:"bonus_points"`
	Total           int                `json:"total"`
	Questions       []questionScoreDTO `json:"questions"`
	Bonuses         []locationBonusDTO `json:"bonuses"`
}

type tableBonusDTO struct {
	TableID         string            `json:"table_id"`
	ParticipantName string            `json:"participant_name"`
	Decided         bool              `json:"decided"`
	Bonus           *locationBonusDTO `json:"bonus,omitempty"`
}

type takenTeamsDTO struct {
	TableID         string   `json:"table_id"`
	ParticipantName string   `json:"participant_name"`
	Teams           []string `json:"teams"`
}

type importRejectedDTO struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

type importResultDTO struct {
	Imported int                 `json:"imported"`
	Rejected []importRejectedDTO `json:"rejected"`
}

func rankingToDTO(ctx context.Context, v ranking.Ranking) rankingDTO {
	ctx, span := startSpan(ctx, "httpapi.rankingToDTO")
	defer span.End()

	return rankingDTO{
		ParticipantName:  v.ParticipantName,
		CurrentScore:     v.CurrentScore,
		CurrentPosition:  v.CurrentPosition,
		PreviousScore:    v.PreviousScore,
		PreviousPosition: v.PreviousPosition,
		ScoreChange:      v.ScoreChange,
		PositionChange:   v.PositionChange,
		LastUpdated:      formatTime(v.LastUpdated),
	}
}

func rankingsToDTO(ctx context.Context, items []ranking.Ranking) []rankingDTO {
	out := make([]rankingDTO, 0, len(items))
	for _, item := range items {
		out = append(out, rankingToDTO(ctx, item))
	}
	return out
}

func standingsTableToDTO(ctx context.Context, v leaguestanding.Table) standingsTableDTO {
	ctx, span := startSpan(ctx, "httpapi.standingsTableToDTO")
	defer span.End()

	rows := make([]standingDTO, 0, len(v.Rows))
	for _, row := range v.Rows {
		rows = append(rows, standingDTO{
			Position:       row.Position,
			TeamName:       row.TeamName,
			Played:         row.Played,
			Won:            row.Won,
			Draw:           row.Draw,
			Lost:           row.Lost,
			GoalsFor:       row.GoalsFor,
			GoalsAgainst:   row.GoalsAgainst,
			GoalDifference: row.GoalDifference,
			Points:         row.Points,
		})
	}
	return standingsTableDTO{Name: v.Name, TableIDs: v.TableIDs, Rows: rows}
}

func locationBonusToDTO(v scoring.LocationBonus) locationBonusDTO {
	return locationBonusDTO{
		TableID:      v.TableID,
		Expected:     v.Expected,
		CorrectCount: v.CorrectCount,
		AllCorrect:   v.AllCorrect,
		PerfectOrder: v.PerfectOrder,
		TeamsBonus:   v.TeamsBonus,
		OrderBonus:   v.OrderBonus,
		Total:        v.Total(),
	}
}

func participantScoresToDTO(ctx context.Context, v usecase.ParticipantScores) participantScoresDTO {
	ctx, span := startSpan(ctx, "httpapi.participantScoresToDTO")
	defer span.End()

	questions := make([]questionScoreDTO, 0, len(v.Questions))
	for _, item := range v.Questions {
		questions = append(questions, questionScoreDTO{
			RecordID:   item.Question.ID,
			TableID:    item.Question.TableID,
			QuestionID: item.Question.QuestionID,
			Question:   item.Question.QuestionText,
			HomeTeam:   item.Question.HomeTeam,
			AwayTeam:   item.Question.AwayTeam,
			Prediction: item.Prediction,
			Result:     item.Question.ActualResult,
			Points:     item.Points,
			Pending:    item.Pending,
		})
	}
	bonuses := make([]locationBonusDTO, 0, len(v.Bonuses))
	for _, bonus := range v.Bonuses {
		bonuses = append(bonuses, locationBonusToDTO(bonus))
	}

	return participantScoresDTO{
		ParticipantName: v.ParticipantName,
		QuestionPoints:  v.QuestionPoints,
		BonusPoints:     v.BonusPoints,
		Total:           v.Total,
		Questions:       questions,
		Bonuses:         bonuses,
	}
}

func importResultToDTO(v usecase.ImportResult) importResultDTO {
	rejected := make([]importRejectedDTO, 0, len(v.Rejected))
	for _, item := range v.Rejected {
		rejected = append(rejected, importRejectedDTO{Row: item.Row, Reason: item.Reason})
	}
	return importResultDTO{Imported: v.Imported, Rejected: rejected}
}

func formatTime(v time.Time) string {
	if v.IsZero() {
		return ""
	}
	return v.UTC().Format(time.RFC3339)
}
