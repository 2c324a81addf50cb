package model

import "time"

// Métriques évaluées pour débloquer un badge
const (
	AchievementMetricPunches  = "punches"
	AchievementMetricSessions = "sessions"
	AchievementMetricMaxSpeed = "max_speed"
	AchievementMetricMaxForce = "max_force"
)

// Achievement est un badge défini par un seuil sur une métrique agrégée.
// Évalué à chaque ingestion de sessions.
type Achievement struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Icon        string  `json:"icon,omitempty"`
	Metric      string  `json:"metric"`
	Threshold   float64 `json:"threshold"`
	Points      int     `json:"points"`
	DateFields
}

// UserAchievement est un badge débloqué par un utilisateur
type UserAchievement struct {
	UserID        string    `json:"userId"`
	AchievementID string    `json:"achievementId"`
	Name          string    `json:"name,omitempty"`
	Icon          string    `json:"icon,omitempty"`
	Points        int       `json:"points,omitempty"`
	UnlockedAt    time.Time `json:"unlockedAt"`
}
