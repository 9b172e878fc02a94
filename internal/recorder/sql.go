package recorder

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"FOMCPulse/internal/model"
)

// SQLRecorder persists attempts and survey submissions to SQLite or Postgres.
type SQLRecorder struct {
	db     *sql.DB
	driver Driver
	mu     sync.Mutex
}

// Open connects to the database and runs migrations.
func Open(ctx context.Context, driver Driver, dsn string) (*SQLRecorder, error) {
	db, err := openDB(ctx, driver, dsn)
	if err != nil {
		return nil, err
	}

	if driver == DriverSQLite {
		// WAL lets the API read while the bot writes.
		if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("set WAL mode: %w", err)
		}
	}

	r := &SQLRecorder{db: db, driver: driver}
	if err := r.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info().Str("driver", string(driver)).Msg("sql recorder opened")
	return r, nil
}

func (r *SQLRecorder) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS attempts (
			id                TEXT PRIMARY KEY,
			user_id           TEXT NOT NULL,
			display_name      TEXT NOT NULL DEFAULT '',
			scenario_id       TEXT NOT NULL,
			guessed_direction TEXT,
			guessed_bps       INTEGER NOT NULL,
			confidence        INTEGER NOT NULL,
			score             INTEGER NOT NULL,
			direction_points  INTEGER NOT NULL,
			yield_points      INTEGER NOT NULL,
			yield_diff_bps    INTEGER NOT NULL,
			accuracy          TEXT NOT NULL,
			tier              TEXT NOT NULL,
			created_at        BIGINT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_attempts_user ON attempts(user_id, created_at)`,

		`CREATE TABLE IF NOT EXISTS survey_submissions (
			id               TEXT PRIMARY KEY,
			user_id          TEXT NOT NULL,
			outlook          TEXT,
			projections_json TEXT NOT NULL DEFAULT '[]',
			comment          TEXT NOT NULL DEFAULT '',
			created_at       BIGINT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_survey_ts ON survey_submissions(created_at)`,
	}

	for _, s := range stmts {
		if _, err := r.db.ExecContext(ctx, s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLRecorder) RecordAttempt(ctx context.Context, a *model.Attempt) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var dir sql.NullString
	if a.Prediction.GuessedDirection != nil {
		dir = sql.NullString{String: string(*a.Prediction.GuessedDirection), Valid: true}
	}
	res := a.Result
	_, err := r.db.ExecContext(ctx, rebind(r.driver, `INSERT INTO attempts
		(id, user_id, display_name, scenario_id, guessed_direction, guessed_bps, confidence,
		 score, direction_points, yield_points, yield_diff_bps, accuracy, tier, created_at)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)`),
		a.ID, a.UserID, a.DisplayName, a.ScenarioID, dir,
		a.Prediction.GuessedYieldChangeBps, a.Prediction.ConfidencePercent,
		res.Score, res.DirectionPoints, res.YieldPoints, res.YieldDiffBps, res.Accuracy, res.Tier,
		a.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("insert attempt: %w", err)
	}
	return nil
}

func (r *SQLRecorder) RecordSurvey(ctx context.Context, s *model.SurveySubmission) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var outlook sql.NullString
	if s.Outlook != nil {
		outlook = sql.NullString{String: string(*s.Outlook), Valid: true}
	}
	projections := s.Projections
	if projections == nil {
		projections = []model.DotProjection{}
	}
	buf, err := json.Marshal(projections)
	if err != nil {
		return fmt.Errorf("marshal projections: %w", err)
	}
	_, err = r.db.ExecContext(ctx, rebind(r.driver, `INSERT INTO survey_submissions
		(id, user_id, outlook, projections_json, comment, created_at)
		VALUES (?,?,?,?,?,?)`),
		s.ID, s.UserID, outlook, string(buf), s.Comment, s.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("insert survey submission: %w", err)
	}
	return nil
}

func (r *SQLRecorder) AttemptsByUser(ctx context.Context, userID string, limit int) ([]model.Attempt, error) {
	rows, err := r.db.QueryContext(ctx, rebind(r.driver, `SELECT
		id, user_id, display_name, scenario_id, guessed_direction, guessed_bps, confidence,
		score, direction_points, yield_points, yield_diff_bps, accuracy, tier, created_at
		FROM attempts WHERE user_id = ? ORDER BY created_at DESC, id DESC LIMIT ?`), userID, limit)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()

	var out []model.Attempt
	for rows.Next() {
		var (
			a       model.Attempt
			dir     sql.NullString
			created int64
		)
		if err := rows.Scan(&a.ID, &a.UserID, &a.DisplayName, &a.ScenarioID, &dir,
			&a.Prediction.GuessedYieldChangeBps, &a.Prediction.ConfidencePercent,
			&a.Result.Score, &a.Result.DirectionPoints, &a.Result.YieldPoints, &a.Result.YieldDiffBps,
			&a.Result.Accuracy, &a.Result.Tier, &created); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		if dir.Valid {
			d := model.Direction(dir.String)
			a.Prediction.GuessedDirection = &d
		}
		a.Result.DirectionCorrect = a.Result.DirectionPoints > 0
		a.CreatedAt = time.UnixMilli(created).UTC()
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *SQLRecorder) SurveySubmissions(ctx context.Context, limit int) ([]model.SurveySubmission, error) {
	rows, err := r.db.QueryContext(ctx, rebind(r.driver, `SELECT
		id, user_id, outlook, projections_json, comment, created_at
		FROM survey_submissions ORDER BY created_at DESC, id DESC LIMIT ?`), limit)
	if err != nil {
		return nil, fmt.Errorf("query survey submissions: %w", err)
	}
	defer rows.Close()

	var out []model.SurveySubmission
	for rows.Next() {
		var (
			s       model.SurveySubmission
			outlook sql.NullString
			dots    string
			created int64
		)
		if err := rows.Scan(&s.ID, &s.UserID, &outlook, &dots, &s.Comment, &created); err != nil {
			return nil, fmt.Errorf("scan survey submission: %w", err)
		}
		if outlook.Valid {
			d := model.Direction(outlook.String)
			s.Outlook = &d
		}
		if err := json.Unmarshal([]byte(dots), &s.Projections); err != nil {
			return nil, fmt.Errorf("decode projections of %s: %w", s.ID, err)
		}
		if len(s.Projections) == 0 {
			s.Projections = nil
		}
		s.CreatedAt = time.UnixMilli(created).UTC()
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SQLRecorder) Close() error {
	log.Info().Msg("closing sql recorder")
	return r.db.Close()
}
