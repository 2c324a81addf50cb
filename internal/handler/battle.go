package handler

import (
	"context"
	"net/http"

	"github.com/EdsonAvelino/StrikeTec-backend/internal/database"
	"github.com/EdsonAvelino/StrikeTec-backend/internal/middleware"
	model "github.com/EdsonAvelino/StrikeTec-backend/internal/models"
	"github.com/EdsonAvelino/StrikeTec-backend/internal/scanner"
	"github.com/EdsonAvelino/StrikeTec-backend/internal/utils"
	"github.com/gorilla/mux"
)

const battleColumns = `
	b.id, b.challenger_id, b.opponent_id, b.status, b.type,
	b.winner_id, b.challenger_score, b.opponent_score,
	b.created_at, b.updated_at,
	ch.id, ch.first_name, ch.last_name, ch.photo,
	op.id, op.first_name, op.last_name, op.photo`

const battleJoins = `
	FROM battles b
	INNER JOIN users ch ON b.challenger_id = ch.id
	INNER JOIN users op ON b.opponent_id = op.id`

type createBattleRequest struct {
	OpponentID string `json:"opponentId" validate:"required,uuid4"`
	Type       string `json:"type" validate:"required,oneof=quick_start round combo"`
}

type respondBattleRequest struct {
	Accept bool `json:"accept"`
}

// CreateBattle lance un défi contre un autre utilisateur
func CreateBattle(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, "user not found in context", err)
		return
	}

	var req createBattleRequest
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.Error(w, "invalid battle payload", err)
		return
	}

	if req.OpponentID == user.ID {
		utils.ErrorSimple(w, "you cannot challenge yourself")
		return
	}

	ctx := context.Background()

	if _, err := utils.FindUserByID(ctx, req.OpponentID); err != nil {
		utils.ErrorSimple(w, "opponent not found")
		return
	}

	var battleID string
	err = database.DB.QueryRow(ctx, `
		INSERT INTO battles(challenger_id, opponent_id, status, type, created_at, created_by)
		VALUES($1, $2, $3, $4, NOW(), $1)
		RETURNING id
	`, user.ID, req.OpponentID, model.BattleStatusPending, req.Type).Scan(&battleID)

	if err != nil {
		utils.Error(w, "could not create battle", err)
		return
	}

	battle, err := fetchBattle(ctx, battleID)
	if err != nil {
		utils.Error(w, "could not reload battle", err)
		return
	}

	utils.Success(w, battle)
}

// RespondBattle accepte ou décline un défi (opposant uniquement, statut pending)
func RespondBattle(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, "user not found in context", err)
		return
	}

	vars := mux.Vars(r)
	battleID := vars["id"]

	var req respondBattleRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.Error(w, "invalid payload", err)
		return
	}

	ctx := context.Background()

	battle, err := fetchBattle(ctx, battleID)
	if err != nil {
		utils.ErrorSimple(w, "battle not found")
		return
	}

	if battle.OpponentID != user.ID {
		utils.ErrorSimple(w, "only the opponent can respond to this battle")
		return
	}

	if battle.Status != model.BattleStatusPending {
		utils.ErrorSimple(w, "this battle has already been answered")
		return
	}

	status := model.BattleStatusDeclined
	if req.Accept {
		status = model.BattleStatusAccepted
	}

	_, err = database.DB.Exec(ctx, `
		UPDATE battles SET status = $1, updated_at = NOW(), updated_by = $2
		WHERE id = $3
	`, status, user.ID, battleID)
	if err != nil {
		utils.Error(w, "could not update battle", err)
		return
	}

	battle.Status = status
	utils.Success(w, battle)
}

// CompleteBattle clôt un battle accepté: calcule les scores à partir des
// sessions liées et désigne le vainqueur (nil en cas d'égalité)
func CompleteBattle(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, "user not found in context", err)
		return
	}

	vars := mux.Vars(r)
	battleID := vars["id"]

	ctx := context.Background()

	battle, err := fetchBattle(ctx, battleID)
	if err != nil {
		utils.ErrorSimple(w, "battle not found")
		return
	}

	if battle.ChallengerID != user.ID && battle.OpponentID != user.ID && !middleware.IsAdmin(r) {
		utils.ErrorSimple(w, "you are not a participant of this battle")
		return
	}

	if battle.Status != model.BattleStatusAccepted {
		utils.ErrorSimple(w, "battle is not in progress")
		return
	}

	challengerScore, err := battleScore(ctx, battleID, battle.ChallengerID)
	if err != nil {
		utils.Error(w, "could not compute challenger score", err)
		return
	}

	opponentScore, err := battleScore(ctx, battleID, battle.OpponentID)
	if err != nil {
		utils.Error(w, "could not compute opponent score", err)
		return
	}

	var winnerID *string
	switch {
	case challengerScore > opponentScore:
		winnerID = &battle.ChallengerID
	case opponentScore > challengerScore:
		winnerID = &battle.OpponentID
	}

	_, err = database.DB.Exec(ctx, `
		UPDATE battles
		SET status = $1, winner_id = $2, challenger_score = $3, opponent_score = $4,
			updated_at = NOW(), updated_by = $5
		WHERE id = $6
	`, model.BattleStatusCompleted, winnerID, challengerScore, opponentScore, user.ID, battleID)
	if err != nil {
		utils.Error(w, "could not complete battle", err)
		return
	}

	if winnerID != nil {
		// Le vainqueur gagne des points de profil
		if err := utils.IncrementUserPoints(ctx, *winnerID, 25); err != nil {
			utils.LogError("could not award battle points: %v", err)
		}
	}

	battle.Status = model.BattleStatusCompleted
	battle.WinnerID = winnerID
	battle.ChallengerScore = challengerScore
	battle.OpponentScore = opponentScore

	utils.Success(w, battle)
}

// GetBattles liste les battles de l'utilisateur authentifié
func GetBattles(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, "user not found in context", err)
		return
	}

	status := r.URL.Query().Get("status")

	ctx := context.Background()

	sqlQuery := `SELECT ` + battleColumns + battleJoins + `
		WHERE (b.challenger_id = $1 OR b.opponent_id = $1)`
	args := []interface{}{user.ID}

	if status != "" {
		sqlQuery += " AND b.status = $2"
		args = append(args, status)
	}

	sqlQuery += " ORDER BY b.created_at DESC"

	rows, err := database.DB.Query(ctx, sqlQuery, args...)
	if err != nil {
		utils.Error(w, "could not query battles", err)
		return
	}
	defer rows.Close()

	var battles []model.Battle
	for rows.Next() {
		battle, err := scanner.ScanBattle(rows)
		if err != nil {
			utils.Error(w, "could not scan battle row", err)
			return
		}
		battles = append(battles, *battle)
	}

	utils.Success(w, battles)
}

// GetBattle récupère un battle par son ID
func GetBattle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	ctx := context.Background()

	battle, err := fetchBattle(ctx, vars["id"])
	if err != nil {
		utils.ErrorSimple(w, "battle not found")
		return
	}

	utils.Success(w, battle)
}

func fetchBattle(ctx context.Context, battleID string) (*model.Battle, error) {
	row := database.DB.QueryRow(ctx,
		`SELECT `+battleColumns+battleJoins+` WHERE b.id = $1`, battleID)
	return scanner.ScanBattle(row)
}

// battleScore agrège les punches des sessions liées au battle pour un participant
func battleScore(ctx context.Context, battleID, userID string) (float64, error) {
	var score float64
	err := database.DB.QueryRow(ctx, `
		SELECT COALESCE(SUM(punches_count), 0)
		FROM training_sessions
		WHERE battle_id = $1 AND user_id = $2 AND archived = false
	`, battleID, userID).Scan(&score)
	return score, err
}
