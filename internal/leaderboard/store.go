package leaderboard

import (
	"context"

	model "github.com/EdsonAvelino/StrikeTec-backend/internal/models"
)

// Store est l'accès aux agrégats et aux données historiques nécessaires
// à leur recomputation. L'implémentation Postgres vit dans pgstore.go;
// les tests utilisent une implémentation en mémoire.
type Store interface {
	// Entry retourne l'agrégat d'un utilisateur, apperr.ErrNotFound si absent
	Entry(ctx context.Context, userID string) (*model.LeaderboardEntry, error)

	// SaveEntry persiste l'agrégat (upsert)
	SaveEntry(ctx context.Context, entry *model.LeaderboardEntry) error

	// RoundMaxima retourne les maxima de vitesse et de force de tous les rounds
	// historiques de l'utilisateur (sessions sans rounds incluses via leur maximum
	// de session)
	RoundMaxima(ctx context.Context, userID string) (speeds, forces []float64, err error)

	// TrainedMillis retourne la somme de (end_time - start_time) sur toutes les
	// sessions de l'utilisateur, en millisecondes
	TrainedMillis(ctx context.Context, userID string) (int64, error)

	// MissingSessions retourne les IDs de sessions qui n'existent plus en base
	MissingSessions(ctx context.Context, ids []string) ([]string, error)

	// GameEntry retourne le meilleur score d'un utilisateur pour un jeu,
	// apperr.ErrNotFound si aucun
	GameEntry(ctx context.Context, userID string, gameID int) (*model.GameLeaderboardEntry, error)

	// SaveGameEntry persiste le meilleur score (upsert)
	SaveGameEntry(ctx context.Context, entry *model.GameLeaderboardEntry) error
}
