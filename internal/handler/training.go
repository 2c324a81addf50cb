package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/EdsonAvelino/StrikeTec-backend/internal/apperr"
	"github.com/EdsonAvelino/StrikeTec-backend/internal/database"
	"github.com/EdsonAvelino/StrikeTec-backend/internal/leaderboard"
	"github.com/EdsonAvelino/StrikeTec-backend/internal/middleware"
	model "github.com/EdsonAvelino/StrikeTec-backend/internal/models"
	"github.com/EdsonAvelino/StrikeTec-backend/internal/scanner"
	"github.com/EdsonAvelino/StrikeTec-backend/internal/utils"
	"github.com/gorilla/mux"
)

// updater est l'unique chemin d'écriture vers les agrégats de classement
var updater = leaderboard.NewUpdater(leaderboard.NewPgStore())

// aggregateFailureMessage traduit chaque classe d'échec d'agrégation en message
// distinct pour l'enveloppe; l'état invalide ne doit pas se confondre avec une
// panne générique
func aggregateFailureMessage(err error) string {
	switch {
	case errors.Is(err, apperr.ErrInvalidAggregateState):
		return "invalid aggregate state: batch holds no punches"
	case errors.Is(err, apperr.ErrSessionNotFound):
		return "a session of the batch no longer exists"
	case apperr.IsValidation(err):
		return "invalid session batch"
	default:
		return "could not update leaderboard aggregate"
	}
}

// SaveTrainingSessions ingère un lot de sessions uploadées par le mobile.
// Persiste les sessions et leurs rounds, puis applique le lot à l'agrégat
// de classement, met à jour les meilleurs scores de jeu et évalue les badges.
func SaveTrainingSessions(w http.ResponseWriter, r *http.Request) {
	var req model.SessionUploadRequest
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.Error(w, "invalid sessions payload", err)
		return
	}

	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, "user not found in context", err)
		return
	}

	ctx := context.Background()

	// Tout le lot vit ou meurt ensemble: sessions, rounds et agrégats partent
	// dans la même transaction, un échec ne laisse aucun état partiel
	tx, err := database.DB.Begin(ctx)
	if err != nil {
		utils.Error(w, "could not start transaction", err)
		return
	}
	defer tx.Rollback(ctx)

	saved := make([]model.TrainingSession, 0, len(req.Sessions))
	for _, up := range req.Sessions {
		sess := model.TrainingSession{
			UserID:           user.ID,
			BattleID:         up.BattleID,
			GameID:           up.GameID,
			Type:             up.Type,
			StartTime:        up.StartTime,
			EndTime:          up.EndTime,
			AvgSpeed:         up.AvgSpeed,
			AvgForce:         up.AvgForce,
			PunchesCount:     up.PunchesCount,
			MaxSpeed:         up.MaxSpeed,
			MaxForce:         up.MaxForce,
			BestReactionTime: up.BestReactionTime,
			GameScore:        up.GameScore,
			GameDistance:     up.GameDistance,
		}

		err := tx.QueryRow(ctx, `
			INSERT INTO training_sessions(
				user_id, battle_id, game_id, type, start_time, end_time,
				avg_speed, avg_force, punches_count, max_speed, max_force,
				best_reaction_time, game_score, game_distance, archived,
				created_at, created_by
			) VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, false, NOW(), $1)
			RETURNING id, created_at
		`,
			user.ID, sess.BattleID, sess.GameID, sess.Type, sess.StartTime, sess.EndTime,
			sess.AvgSpeed, sess.AvgForce, sess.PunchesCount, sess.MaxSpeed, sess.MaxForce,
			sess.BestReactionTime, sess.GameScore, sess.GameDistance,
		).Scan(&sess.ID, &sess.CreatedAt)

		if err != nil {
			utils.Error(w, "could not save training session", err)
			return
		}

		for _, round := range up.Rounds {
			var roundID string
			err := tx.QueryRow(ctx, `
				INSERT INTO session_rounds(
					session_id, number, start_time, end_time,
					avg_speed, avg_force, punches_count, max_speed, max_force
				) VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9)
				RETURNING id
			`,
				sess.ID, round.Number, round.StartTime, round.EndTime,
				round.AvgSpeed, round.AvgForce, round.PunchesCount, round.MaxSpeed, round.MaxForce,
			).Scan(&roundID)

			if err != nil {
				utils.Error(w, "could not save session round", err)
				return
			}

			sess.Rounds = append(sess.Rounds, model.SessionRound{
				ID:           roundID,
				SessionID:    sess.ID,
				Number:       round.Number,
				StartTime:    round.StartTime,
				EndTime:      round.EndTime,
				AvgSpeed:     round.AvgSpeed,
				AvgForce:     round.AvgForce,
				PunchesCount: round.PunchesCount,
				MaxSpeed:     round.MaxSpeed,
				MaxForce:     round.MaxForce,
			})
		}

		saved = append(saved, sess)
	}

	// Seul chemin d'écriture vers l'agrégat de classement, dans la même
	// transaction que les sessions qu'il applique
	txUpdater := updater.WithStore(leaderboard.NewPgStore().WithTx(tx))
	if err := txUpdater.ApplyNewSessions(ctx, user.ID, saved); err != nil {
		utils.Error(w, aggregateFailureMessage(err), err)
		return
	}

	// Meilleurs scores de jeu pour les sessions liées à un jeu
	for _, sess := range saved {
		if sess.GameID == nil || sess.GameScore == nil {
			continue
		}
		distance := 0.0
		if sess.GameDistance != nil {
			distance = *sess.GameDistance
		}
		if err := txUpdater.ApplyGameSession(ctx, user.ID, *sess.GameID, *sess.GameScore, distance); err != nil {
			utils.Error(w, "could not update game best score", err)
			return
		}
	}

	if err := tx.Commit(ctx); err != nil {
		utils.Error(w, "could not commit session batch", err)
		return
	}

	unlocked, err := utils.EvaluateAchievements(ctx, user.ID)
	if err != nil {
		utils.Error(w, "could not evaluate achievements", err)
		return
	}

	utils.Success(w, map[string]interface{}{
		"sessions":             saved,
		"unlockedAchievements": unlocked,
	})
}

const sessionColumns = `
	ts.id, ts.user_id, ts.battle_id, ts.game_id, ts.type,
	ts.start_time, ts.end_time,
	ts.avg_speed, ts.avg_force, ts.punches_count,
	ts.max_speed, ts.max_force, ts.best_reaction_time,
	ts.game_score, ts.game_distance, ts.archived,
	ts.created_at, ts.updated_at`

// GetTrainingSessions récupère les sessions avec filtres optionnels
func GetTrainingSessions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	startDate := query.Get("startDate")
	endDate := query.Get("endDate")
	sessionType := query.Get("type")

	ctx := context.Background()

	sqlQuery := `
		SELECT ` + sessionColumns + `,
			u.id as user_id, u.first_name, u.last_name, u.photo
		FROM training_sessions ts
		INNER JOIN users u ON ts.user_id = u.id AND u.deleted_at IS NULL
		WHERE ts.archived = false
	`

	args := []interface{}{}
	argCount := 1

	if startDate != "" {
		sqlQuery += " AND ts.start_time >= $" + strconv.Itoa(argCount)
		args = append(args, startDate)
		argCount++
	}

	if endDate != "" {
		sqlQuery += " AND ts.start_time <= $" + strconv.Itoa(argCount)
		args = append(args, endDate)
		argCount++
	}

	if sessionType != "" {
		sqlQuery += " AND ts.type = $" + strconv.Itoa(argCount)
		args = append(args, sessionType)
		argCount++
	}

	sqlQuery += " ORDER BY ts.start_time DESC"

	limit := utils.QueryInt(r, "limit", 50)
	sqlQuery += " LIMIT $" + strconv.Itoa(argCount)
	args = append(args, limit)
	argCount++

	if offset := utils.QueryInt(r, "offset", 0); offset > 0 {
		sqlQuery += " OFFSET $" + strconv.Itoa(argCount)
		args = append(args, offset)
	}

	rows, err := database.DB.Query(ctx, sqlQuery, args...)
	if err != nil {
		utils.Error(w, "could not query training sessions", err)
		return
	}
	defer rows.Close()

	var sessions []model.TrainingSession
	for rows.Next() {
		session, err := scanner.ScanTrainingSessionWithUser(rows)
		if err != nil {
			utils.Error(w, "could not scan session row", err)
			return
		}
		sessions = append(sessions, *session)
	}

	utils.Success(w, sessions)
}

// GetTrainingSession récupère une session par son ID, avec ses rounds
func GetTrainingSession(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["id"]

	ctx := context.Background()

	row := database.DB.QueryRow(ctx, `
		SELECT `+sessionColumns+`
		FROM training_sessions ts
		WHERE ts.id = $1
	`, sessionID)

	session, err := scanner.ScanTrainingSession(row)
	if err != nil {
		utils.Error(w, "session not found", err)
		return
	}

	rows, err := database.DB.Query(ctx, `
		SELECT id, session_id, number, start_time, end_time,
			avg_speed, avg_force, punches_count, max_speed, max_force
		FROM session_rounds
		WHERE session_id = $1
		ORDER BY number
	`, sessionID)
	if err != nil {
		utils.Error(w, "could not query session rounds", err)
		return
	}
	defer rows.Close()

	for rows.Next() {
		round, err := scanner.ScanSessionRound(rows)
		if err != nil {
			utils.Error(w, "could not scan round row", err)
			return
		}
		session.Rounds = append(session.Rounds, *round)
	}

	utils.Success(w, session)
}

// GetUserSessions récupère les sessions d'un utilisateur
func GetUserSessions(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID := vars["userId"]

	ctx := context.Background()

	limit := utils.QueryInt(r, "limit", 50)
	offset := utils.QueryInt(r, "offset", 0)

	rows, err := database.DB.Query(ctx, `
		SELECT `+sessionColumns+`
		FROM training_sessions ts
		WHERE ts.user_id = $1 AND ts.archived = false
		ORDER BY ts.start_time DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		utils.Error(w, "could not query user sessions", err)
		return
	}
	defer rows.Close()

	var sessions []model.TrainingSession
	for rows.Next() {
		session, err := scanner.ScanTrainingSession(rows)
		if err != nil {
			utils.Error(w, "could not scan session row", err)
			return
		}
		sessions = append(sessions, *session)
	}

	utils.Success(w, sessions)
}

// ArchiveSession marque une session comme archivée (seule mutation autorisée
// après création)
func ArchiveSession(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["id"]

	ctx := context.Background()

	var sessionUserID string
	err := database.DB.QueryRow(ctx,
		`SELECT user_id FROM training_sessions WHERE id = $1`,
		sessionID,
	).Scan(&sessionUserID)

	if err != nil {
		utils.ErrorSimple(w, "session not found")
		return
	}

	if !middleware.IsOwnerOrAdmin(r, sessionUserID) {
		utils.ErrorSimple(w, "you are not authorized to archive this session")
		return
	}

	res, err := database.DB.Exec(ctx,
		`UPDATE training_sessions SET archived = true, updated_at = NOW() WHERE id = $1`,
		sessionID,
	)
	if err != nil {
		utils.Error(w, "could not archive session", err)
		return
	}

	if res.RowsAffected() == 0 {
		utils.ErrorSimple(w, "session not found")
		return
	}

	utils.Message(w, "session archived")
}

// GetUserStats récupère les statistiques d'entraînement d'un utilisateur
// pour une période donnée
func GetUserStats(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID := vars["userId"]
	period := vars["period"] // today, week, month, year

	ctx := context.Background()

	interval := "7 days"
	switch period {
	case "today":
		interval = "1 day"
	case "week":
		interval = "7 days"
	case "month":
		interval = "30 days"
	case "year":
		interval = "365 days"
	}

	var stats struct {
		TotalSessions int     `json:"totalSessions"`
		TotalPunches  int     `json:"totalPunches"`
		AvgSpeed      float64 `json:"avgSpeed"`
		AvgForce      float64 `json:"avgForce"`
		MaxSpeed      float64 `json:"maxSpeed"`
		MaxForce      float64 `json:"maxForce"`
		TotalTime     int64   `json:"totalTime"` // secondes
	}

	err := database.DB.QueryRow(ctx, `
		SELECT
			COUNT(*) as total_sessions,
			COALESCE(SUM(punches_count), 0) as total_punches,
			COALESCE(AVG(avg_speed), 0) as avg_speed,
			COALESCE(AVG(avg_force), 0) as avg_force,
			COALESCE(MAX(max_speed), 0) as max_speed,
			COALESCE(MAX(max_force), 0) as max_force,
			COALESCE(SUM(end_time - start_time) / 1000, 0) as total_time
		FROM training_sessions
		WHERE user_id = $1
		AND to_timestamp(start_time / 1000) >= NOW() - $2::interval
	`, userID, interval).Scan(
		&stats.TotalSessions,
		&stats.TotalPunches,
		&stats.AvgSpeed,
		&stats.AvgForce,
		&stats.MaxSpeed,
		&stats.MaxForce,
		&stats.TotalTime,
	)

	if err != nil {
		utils.Error(w, "could not fetch stats", err)
		return
	}

	utils.Success(w, stats)
}
