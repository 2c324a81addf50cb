package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/EdsonAvelino/StrikeTec-backend/internal/cache"
	"github.com/EdsonAvelino/StrikeTec-backend/internal/leaderboard"
	"github.com/EdsonAvelino/StrikeTec-backend/internal/middleware"
	model "github.com/EdsonAvelino/StrikeTec-backend/internal/models"
	"github.com/EdsonAvelino/StrikeTec-backend/internal/utils"
)

// leaderboardCacheTTL limite la pression sur Postgres pour les pages chaudes
const leaderboardCacheTTL = 30 * time.Second

type rankedPage struct {
	Rows   []model.RankedRow `json:"rows"`
	MyRank int               `json:"myRank"`
}

// GetLeaderboard retourne le classement principal (punches_count > 0),
// filtré, paginé, avec le rang du requérant et le requérant en tête de page
func GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	requesterID := ""
	if user, err := middleware.GetUserFromContext(r); err == nil {
		requesterID = user.ID
	}

	filters := leaderboard.ParseFilters(r.URL.Query())
	opts := leaderboard.QueryOptions{
		Start: utils.QueryInt(r, "start", 0),
		Limit: utils.QueryInt(r, "limit", 0),
	}

	ctx := context.Background()

	cacheKey := "leaderboard:main:" + requesterID + ":" + r.URL.RawQuery
	var cached rankedPage
	if cache.Enabled() && cache.GetJSON(ctx, cacheKey, &cached) {
		utils.SuccessRanked(w, cached.Rows, cached.MyRank)
		return
	}

	rows, myRank, err := leaderboard.Main(ctx, requesterID, filters, opts)
	if err != nil {
		utils.Error(w, "could not fetch leaderboard", err)
		return
	}

	if cache.Enabled() {
		cache.SetJSON(ctx, cacheKey, rankedPage{Rows: rows, MyRank: myRank}, leaderboardCacheTTL)
	}

	utils.SuccessRanked(w, rows, myRank)
}

// GetTrendingLeaderboard retourne le classement hebdomadaire (sessions de la
// semaine ISO courante), avec recherche par nom
func GetTrendingLeaderboard(w http.ResponseWriter, r *http.Request) {
	requesterID := ""
	if user, err := middleware.GetUserFromContext(r); err == nil {
		requesterID = user.ID
	}

	filters := leaderboard.ParseFilters(r.URL.Query())
	opts := leaderboard.QueryOptions{
		Start: utils.QueryInt(r, "start", 0),
		Limit: utils.QueryInt(r, "limit", 0),
	}

	ctx := context.Background()

	cacheKey := "leaderboard:trending:" + requesterID + ":" + r.URL.RawQuery
	var cached rankedPage
	if cache.Enabled() && cache.GetJSON(ctx, cacheKey, &cached) {
		utils.SuccessRanked(w, cached.Rows, cached.MyRank)
		return
	}

	rows, myRank, err := leaderboard.Trending(ctx, requesterID, filters, opts)
	if err != nil {
		utils.Error(w, "could not fetch trending leaderboard", err)
		return
	}

	if cache.Enabled() {
		cache.SetJSON(ctx, cacheKey, rankedPage{Rows: rows, MyRank: myRank}, leaderboardCacheTTL)
	}

	utils.SuccessRanked(w, rows, myRank)
}

// GetGameLeaderboard retourne le classement d'un jeu (game_id 1 à 4).
// Le sens du tri dépend du jeu: temps de réaction croissant, le reste décroissant.
func GetGameLeaderboard(w http.ResponseWriter, r *http.Request) {
	gameID := utils.QueryInt(r, "game_id", 0)
	if gameID < 1 || gameID > 4 {
		utils.ErrorSimple(w, "invalid game_id, must be between 1 and 4")
		return
	}

	requesterID := ""
	if user, err := middleware.GetUserFromContext(r); err == nil {
		requesterID = user.ID
	}

	ctx := context.Background()

	rows, err := leaderboard.Game(ctx, requesterID, gameID)
	if err != nil {
		utils.Error(w, "could not fetch game leaderboard", err)
		return
	}

	utils.Success(w, rows)
}
