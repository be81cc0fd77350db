package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/toto-league/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads the demo tournament into an empty database.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM questions`); err != nil {
		return fmt.Errorf("count questions for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, q := range memory.SeedQuestions() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO questions (id, table_id, question_id, question_text, home_team, away_team, possible_points, validation_list, actual_result, created_date, updated_date)
VALUES (:id, :table_id, :question_id, :question_text, :home_team, :away_team, :possible_points, :validation_list, :actual_result, :created_date, :updated_date)
ON CONFLICT (id) DO NOTHING`, questionTableModel(q))
		if err != nil {
			return fmt.Errorf("bind seed question %s query: %w", q.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed question %s: %w", q.ID, err)
		}
	}

	for _, p := range memory.SeedPredictions() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO predictions (id, question_id, participant_name, text_prediction, created_date)
VALUES (:id, :question_id, :participant_name, :text_prediction, :created_date)
ON CONFLICT (id) DO NOTHING`, predictionTableModel(p))
		if err != nil {
			return fmt.Errorf("bind seed prediction %s query: %w", p.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed prediction %s: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}

	return nil
}
