package utils

import (
	"context"
	"errors"
	"fmt"

	"github.com/EdsonAvelino/StrikeTec-backend/internal/database"
	model "github.com/EdsonAvelino/StrikeTec-backend/internal/models"
	"github.com/jackc/pgx/v5"
)

// EvaluateAchievements compare l'agrégat courant de l'utilisateur aux seuils
// des badges et débloque ceux qui sont atteints. Appelé après chaque ingestion
// de sessions. Retourne les badges nouvellement débloqués.
func EvaluateAchievements(ctx context.Context, userID string) ([]model.UserAchievement, error) {
	var sessionsCount, punchesCount int
	var maxSpeed, maxForce float64

	err := database.DB.QueryRow(ctx,
		`SELECT sessions_count, punches_count, max_speed, max_force
		 FROM leaderboard_entries WHERE user_id = $1`,
		userID,
	).Scan(&sessionsCount, &punchesCount, &maxSpeed, &maxForce)

	if errors.Is(err, pgx.ErrNoRows) {
		// Pas encore d'agrégat, rien à évaluer
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not read aggregate for achievements: %w", err)
	}

	rows, err := database.DB.Query(ctx, `
		WITH unlocked AS (
			INSERT INTO user_achievements(user_id, achievement_id, unlocked_at)
			SELECT $1, a.id, NOW()
			FROM achievements a
			WHERE a.deleted_at IS NULL
			AND NOT EXISTS (
				SELECT 1 FROM user_achievements ua
				WHERE ua.user_id = $1 AND ua.achievement_id = a.id
			)
			AND (
				(a.metric = 'punches' AND $2 >= a.threshold)
				OR (a.metric = 'sessions' AND $3 >= a.threshold)
				OR (a.metric = 'max_speed' AND $4 >= a.threshold)
				OR (a.metric = 'max_force' AND $5 >= a.threshold)
			)
			RETURNING achievement_id, unlocked_at
		)
		SELECT un.achievement_id, un.unlocked_at, a.name, a.icon, a.points
		FROM unlocked un
		INNER JOIN achievements a ON a.id = un.achievement_id
	`, userID, punchesCount, sessionsCount, maxSpeed, maxForce)
	if err != nil {
		return nil, fmt.Errorf("could not unlock achievements: %w", err)
	}
	defer rows.Close()

	var unlocked []model.UserAchievement
	totalPoints := 0
	for rows.Next() {
		ua := model.UserAchievement{UserID: userID}
		if err := rows.Scan(&ua.AchievementID, &ua.UnlockedAt, &ua.Name, &ua.Icon, &ua.Points); err != nil {
			return nil, fmt.Errorf("could not scan unlocked achievement: %w", err)
		}
		totalPoints += ua.Points
		unlocked = append(unlocked, ua)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if totalPoints > 0 {
		if err := IncrementUserPoints(ctx, userID, totalPoints); err != nil {
			return nil, err
		}
	}

	return unlocked, nil
}
