package leaderboard

import (
	"context"
	"errors"

	"github.com/EdsonAvelino/StrikeTec-backend/internal/apperr"
	"github.com/EdsonAvelino/StrikeTec-backend/internal/database"
	model "github.com/EdsonAvelino/StrikeTec-backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// querier couvre indifféremment le pool global et une transaction pgx
type querier interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

// PgStore implémente Store sur le pool Postgres global, ou sur une
// transaction via WithTx
type PgStore struct {
	q querier
}

func NewPgStore() *PgStore {
	return &PgStore{}
}

// WithTx retourne un Store dont toutes les lectures et écritures passent par
// la transaction donnée
func (s *PgStore) WithTx(tx pgx.Tx) *PgStore {
	return &PgStore{q: tx}
}

// conn résout le pool à l'appel, pas à la construction: le store peut être
// créé avant l'ouverture de la connexion
func (s *PgStore) conn() querier {
	if s.q != nil {
		return s.q
	}
	return database.DB
}

func (s *PgStore) Entry(ctx context.Context, userID string) (*model.LeaderboardEntry, error) {
	var e model.LeaderboardEntry
	err := s.conn().QueryRow(ctx, `
		SELECT user_id, sessions_count, avg_speed, avg_force, punches_count,
		       max_speed, max_force, total_time_trained
		FROM leaderboard_entries
		WHERE user_id = $1
	`, userID).Scan(
		&e.UserID, &e.SessionsCount, &e.AvgSpeed, &e.AvgForce, &e.PunchesCount,
		&e.MaxSpeed, &e.MaxForce, &e.TotalTimeTrained,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *PgStore) SaveEntry(ctx context.Context, e *model.LeaderboardEntry) error {
	_, err := s.conn().Exec(ctx, `
		INSERT INTO leaderboard_entries(
			user_id, sessions_count, avg_speed, avg_force, punches_count,
			max_speed, max_force, total_time_trained, updated_at
		) VALUES($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		ON CONFLICT (user_id)
		DO UPDATE SET
			sessions_count = EXCLUDED.sessions_count,
			avg_speed = EXCLUDED.avg_speed,
			avg_force = EXCLUDED.avg_force,
			punches_count = EXCLUDED.punches_count,
			max_speed = EXCLUDED.max_speed,
			max_force = EXCLUDED.max_force,
			total_time_trained = EXCLUDED.total_time_trained,
			updated_at = NOW()
	`, e.UserID, e.SessionsCount, e.AvgSpeed, e.AvgForce, e.PunchesCount,
		e.MaxSpeed, e.MaxForce, e.TotalTimeTrained)
	return err
}

// RoundMaxima scanne les maxima round par round; les sessions sans rounds
// comptent via leur maximum de session
func (s *PgStore) RoundMaxima(ctx context.Context, userID string) ([]float64, []float64, error) {
	rows, err := s.conn().Query(ctx, `
		SELECT COALESCE(r.max_speed, ts.max_speed), COALESCE(r.max_force, ts.max_force)
		FROM training_sessions ts
		LEFT JOIN session_rounds r ON r.session_id = ts.id
		WHERE ts.user_id = $1
	`, userID)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var speeds, forces []float64
	for rows.Next() {
		var sp, fo float64
		if err := rows.Scan(&sp, &fo); err != nil {
			return nil, nil, err
		}
		speeds = append(speeds, sp)
		forces = append(forces, fo)
	}
	return speeds, forces, rows.Err()
}

func (s *PgStore) TrainedMillis(ctx context.Context, userID string) (int64, error) {
	var millis int64
	err := s.conn().QueryRow(ctx, `
		SELECT COALESCE(SUM(end_time - start_time), 0)
		FROM training_sessions
		WHERE user_id = $1
	`, userID).Scan(&millis)
	return millis, err
}

func (s *PgStore) MissingSessions(ctx context.Context, ids []string) ([]string, error) {
	rows, err := s.conn().Query(ctx, `
		SELECT wanted.id
		FROM unnest($1::uuid[]) AS wanted(id)
		LEFT JOIN training_sessions ts ON ts.id = wanted.id
		WHERE ts.id IS NULL
	`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var missing []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		missing = append(missing, id)
	}
	return missing, rows.Err()
}

func (s *PgStore) GameEntry(ctx context.Context, userID string, gameID int) (*model.GameLeaderboardEntry, error) {
	var e model.GameLeaderboardEntry
	err := s.conn().QueryRow(ctx, `
		SELECT user_id, game_id, score, distance
		FROM game_leaderboard_entries
		WHERE user_id = $1 AND game_id = $2
	`, userID, gameID).Scan(&e.UserID, &e.GameID, &e.Score, &e.Distance)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *PgStore) SaveGameEntry(ctx context.Context, e *model.GameLeaderboardEntry) error {
	_, err := s.conn().Exec(ctx, `
		INSERT INTO game_leaderboard_entries(user_id, game_id, score, distance, updated_at)
		VALUES($1, $2, $3, $4, NOW())
		ON CONFLICT (user_id, game_id)
		DO UPDATE SET score = EXCLUDED.score, distance = EXCLUDED.distance, updated_at = NOW()
	`, e.UserID, e.GameID, e.Score, e.Distance)
	return err
}
