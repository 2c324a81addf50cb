package leaderboard

import (
	"context"
	"errors"
	"fmt"

	"github.com/EdsonAvelino/StrikeTec-backend/internal/apperr"
	model "github.com/EdsonAvelino/StrikeTec-backend/internal/models"
	"github.com/montanaflynn/stats"
)

// GameReactionTime est le jeu n°1: temps de réaction, plus petit score gagne
const GameReactionTime = 1

// Updater maintient l'agrégat LeaderboardEntry de chaque utilisateur au fil
// des ingestions de sessions, sans rescanner tout l'historique à chaque fois
// pour les moyennes. Seul chemin d'écriture vers les agrégats.
type Updater struct {
	store Store
	locks *userLocks
}

func NewUpdater(store Store) *Updater {
	return &Updater{store: store, locks: newUserLocks()}
}

// WithStore retourne un Updater lisant et écrivant via store, mais partageant
// les verrous par utilisateur de u. Sert à exécuter une mise à jour dans une
// transaction sans perdre la sérialisation des uploads concurrents.
func (u *Updater) WithStore(store Store) *Updater {
	return &Updater{store: store, locks: u.locks}
}

// ApplyNewSessions applique un lot de sessions fraîchement persistées à
// l'agrégat de l'utilisateur.
//
// Les moyennes sont recomputées par l'identité de moyenne pondérée
// (ancienne moyenne × ancien cumul + apports du lot) / nouveau cumul,
// ce qui évite de relire l'historique. Les maxima et le temps total sont
// au contraire re-dérivés entièrement: un maximum ne se décompose pas
// depuis un agrégat périmé plus un delta.
func (u *Updater) ApplyNewSessions(ctx context.Context, userID string, newSessions []model.TrainingSession) error {
	if len(newSessions) == 0 {
		return apperr.Validation("sessions", "empty batch")
	}

	// Un seul écrivain par utilisateur: les uploads rejoués ne doivent pas
	// se marcher dessus sur le read-modify-write
	unlock := u.locks.Lock(userID)
	defer unlock()

	// Vérifier que les sessions référencées existent toujours
	ids := make([]string, 0, len(newSessions))
	for _, s := range newSessions {
		if s.ID != "" {
			ids = append(ids, s.ID)
		}
	}
	if len(ids) > 0 {
		missing, err := u.store.MissingSessions(ctx, ids)
		if err != nil {
			return fmt.Errorf("could not verify sessions: %w", err)
		}
		if len(missing) > 0 {
			return fmt.Errorf("%w: %v", apperr.ErrSessionNotFound, missing)
		}
	}

	entry, err := u.store.Entry(ctx, userID)
	if errors.Is(err, apperr.ErrNotFound) {
		entry = &model.LeaderboardEntry{UserID: userID}
	} else if err != nil {
		return fmt.Errorf("could not read leaderboard entry: %w", err)
	}

	newPunches := entry.PunchesCount
	speedSum := entry.AvgSpeed * float64(entry.PunchesCount)
	forceSum := entry.AvgForce * float64(entry.PunchesCount)

	for _, s := range newSessions {
		newPunches += s.PunchesCount
		speedSum += s.AvgSpeed * float64(s.PunchesCount)
		forceSum += s.AvgForce * float64(s.PunchesCount)
	}

	if newPunches == 0 {
		// Diviser par zéro produirait des NaN silencieux en base
		return apperr.ErrInvalidAggregateState
	}

	entry.PunchesCount = newPunches
	entry.AvgSpeed = speedSum / float64(newPunches)
	entry.AvgForce = forceSum / float64(newPunches)
	entry.SessionsCount += len(newSessions)

	// Re-dérivation complète des maxima sur les rounds historiques
	speeds, forces, err := u.store.RoundMaxima(ctx, userID)
	if err != nil {
		return fmt.Errorf("could not scan round maxima: %w", err)
	}
	if len(speeds) > 0 {
		if m, err := stats.Max(speeds); err == nil {
			entry.MaxSpeed = m
		}
	}
	if len(forces) > 0 {
		if m, err := stats.Max(forces); err == nil {
			entry.MaxForce = m
		}
	}

	// Re-dérivation complète du temps total entraîné
	millis, err := u.store.TrainedMillis(ctx, userID)
	if err != nil {
		return fmt.Errorf("could not sum trained time: %w", err)
	}
	entry.TotalTimeTrained = millis / 1000

	return u.store.SaveEntry(ctx, entry)
}

// ApplyGameSession met à jour le meilleur score (utilisateur, jeu).
// Le score ne remplace l'ancien que s'il est strictement meilleur;
// pour le temps de réaction, meilleur = plus petit.
func (u *Updater) ApplyGameSession(ctx context.Context, userID string, gameID int, score, distance float64) error {
	unlock := u.locks.Lock(userID)
	defer unlock()

	cur, err := u.store.GameEntry(ctx, userID, gameID)
	if errors.Is(err, apperr.ErrNotFound) {
		return u.store.SaveGameEntry(ctx, &model.GameLeaderboardEntry{
			UserID:   userID,
			GameID:   gameID,
			Score:    score,
			Distance: distance,
		})
	}
	if err != nil {
		return fmt.Errorf("could not read game entry: %w", err)
	}

	if !betterScore(gameID, score, cur.Score) {
		return nil
	}

	cur.Score = score
	cur.Distance = distance
	return u.store.SaveGameEntry(ctx, cur)
}

// betterScore compare deux scores selon le sens du jeu
func betterScore(gameID int, candidate, current float64) bool {
	if gameID == GameReactionTime {
		return candidate < current
	}
	return candidate > current
}
