package handler

import (
	"context"
	"net/http"

	"github.com/EdsonAvelino/StrikeTec-backend/internal/database"
	model "github.com/EdsonAvelino/StrikeTec-backend/internal/models"
	"github.com/EdsonAvelino/StrikeTec-backend/internal/utils"
	"github.com/gorilla/mux"
)

// GetAchievements liste le catalogue des badges
func GetAchievements(w http.ResponseWriter, r *http.Request) {
	ctx := context.Background()

	rows, err := database.DB.Query(ctx, `
		SELECT id, name, description, icon, metric, threshold, points
		FROM achievements
		WHERE deleted_at IS NULL
		ORDER BY metric, threshold
	`)
	if err != nil {
		utils.Error(w, "could not query achievements", err)
		return
	}
	defer rows.Close()

	var achievements []model.Achievement
	for rows.Next() {
		var a model.Achievement
		var description, icon *string
		if err := rows.Scan(&a.ID, &a.Name, &description, &icon,
			&a.Metric, &a.Threshold, &a.Points); err != nil {
			utils.Error(w, "could not scan achievement row", err)
			return
		}
		if description != nil {
			a.Description = *description
		}
		if icon != nil {
			a.Icon = *icon
		}
		achievements = append(achievements, a)
	}

	utils.Success(w, achievements)
}

// GetUserAchievements liste les badges débloqués par un utilisateur
func GetUserAchievements(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	ctx := context.Background()

	rows, err := database.DB.Query(ctx, `
		SELECT ua.user_id, ua.achievement_id, a.name, a.icon, a.points, ua.unlocked_at
		FROM user_achievements ua
		INNER JOIN achievements a ON ua.achievement_id = a.id
		WHERE ua.user_id = $1
		ORDER BY ua.unlocked_at DESC
	`, vars["userId"])
	if err != nil {
		utils.Error(w, "could not query user achievements", err)
		return
	}
	defer rows.Close()

	var unlocked []model.UserAchievement
	for rows.Next() {
		var ua model.UserAchievement
		var icon *string
		if err := rows.Scan(&ua.UserID, &ua.AchievementID, &ua.Name,
			&icon, &ua.Points, &ua.UnlockedAt); err != nil {
			utils.Error(w, "could not scan user achievement row", err)
			return
		}
		if icon != nil {
			ua.Icon = *icon
		}
		unlocked = append(unlocked, ua)
	}

	utils.Success(w, unlocked)
}
