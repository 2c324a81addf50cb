package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/EdsonAvelino/StrikeTec-backend/internal/database"
	"github.com/EdsonAvelino/StrikeTec-backend/internal/middleware"
	model "github.com/EdsonAvelino/StrikeTec-backend/internal/models"
	"github.com/EdsonAvelino/StrikeTec-backend/internal/utils"
	"github.com/gorilla/mux"
)

type createAchievementRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=100"`
	Description string  `json:"description,omitempty"`
	Icon        string  `json:"icon,omitempty"`
	Metric      string  `json:"metric" validate:"required,oneof=punches sessions max_speed max_force"`
	Threshold   float64 `json:"threshold" validate:"required,gt=0"`
	Points      int     `json:"points" validate:"required,gt=0"`
}

type createEventRequest struct {
	Name        string    `json:"name" validate:"required,min=1,max=200"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
	Capacity    int       `json:"capacity" validate:"min=0"`
	StartsAt    time.Time `json:"startsAt" validate:"required"`
	EndsAt      time.Time `json:"endsAt" validate:"required,gtfield=StartsAt"`
}

// AdminGetUsers liste tous les comptes, y compris privés et supprimés
func AdminGetUsers(w http.ResponseWriter, r *http.Request) {
	if !middleware.IsAdmin(r) {
		utils.ErrorSimple(w, "admin access required")
		return
	}

	limit := utils.QueryInt(r, "limit", 100)
	offset := utils.QueryInt(r, "offset", 0)

	ctx := context.Background()

	rows, err := database.DB.Query(ctx, `
		SELECT id, first_name, last_name, email, public_profile, points,
			is_admin, provider, created_at, deleted_at
		FROM users
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		utils.Error(w, "could not query users", err)
		return
	}
	defer rows.Close()

	type adminUserRow struct {
		ID            string     `json:"id"`
		FirstName     string     `json:"firstName"`
		LastName      string     `json:"lastName"`
		Email         string     `json:"email"`
		PublicProfile bool       `json:"publicProfile"`
		Points        int        `json:"points"`
		IsAdmin       bool       `json:"isAdmin"`
		Provider      string     `json:"provider"`
		CreatedAt     time.Time  `json:"createdAt"`
		DeletedAt     *time.Time `json:"deletedAt,omitempty"`
	}

	var users []adminUserRow
	for rows.Next() {
		var u adminUserRow
		var provider *string
		if err := rows.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email,
			&u.PublicProfile, &u.Points, &u.IsAdmin, &provider,
			&u.CreatedAt, &u.DeletedAt); err != nil {
			utils.Error(w, "could not scan user row", err)
			return
		}
		if provider != nil {
			u.Provider = *provider
		}
		users = append(users, u)
	}

	utils.Success(w, users)
}

// AdminCreateAchievement ajoute un badge au catalogue
func AdminCreateAchievement(w http.ResponseWriter, r *http.Request) {
	if !middleware.IsAdmin(r) {
		utils.ErrorSimple(w, "admin access required")
		return
	}

	var req createAchievementRequest
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.Error(w, "invalid achievement payload", err)
		return
	}

	admin, _ := middleware.GetUserFromContext(r)
	ctx := context.Background()

	var a model.Achievement
	a.Name = req.Name
	a.Description = req.Description
	a.Icon = req.Icon
	a.Metric = req.Metric
	a.Threshold = req.Threshold
	a.Points = req.Points

	err := database.DB.QueryRow(ctx, `
		INSERT INTO achievements(name, description, icon, metric, threshold, points, created_at, created_by)
		VALUES($1, $2, $3, $4, $5, $6, NOW(), $7)
		RETURNING id
	`, req.Name, req.Description, req.Icon, req.Metric, req.Threshold, req.Points, admin.ID).
		Scan(&a.ID)
	if err != nil {
		utils.Error(w, "could not create achievement", err)
		return
	}

	utils.Success(w, a)
}

// AdminDeleteAchievement retire un badge du catalogue (soft delete)
func AdminDeleteAchievement(w http.ResponseWriter, r *http.Request) {
	if !middleware.IsAdmin(r) {
		utils.ErrorSimple(w, "admin access required")
		return
	}

	vars := mux.Vars(r)
	admin, _ := middleware.GetUserFromContext(r)

	ctx := context.Background()
	res, err := database.DB.Exec(ctx, `
		UPDATE achievements SET deleted_at = NOW(), deleted_by = $1
		WHERE id = $2 AND deleted_at IS NULL
	`, admin.ID, vars["id"])
	if err != nil {
		utils.Error(w, "could not delete achievement", err)
		return
	}
	if res.RowsAffected() == 0 {
		utils.ErrorSimple(w, "achievement not found")
		return
	}

	utils.Message(w, "achievement deleted")
}

// AdminCreateEvent crée un événement
func AdminCreateEvent(w http.ResponseWriter, r *http.Request) {
	if !middleware.IsAdmin(r) {
		utils.ErrorSimple(w, "admin access required")
		return
	}

	var req createEventRequest
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.Error(w, "invalid event payload", err)
		return
	}

	admin, _ := middleware.GetUserFromContext(r)
	ctx := context.Background()

	var e model.Event
	e.Name = req.Name
	e.Description = req.Description
	e.Location = req.Location
	e.Capacity = req.Capacity
	e.StartsAt = req.StartsAt
	e.EndsAt = req.EndsAt

	err := database.DB.QueryRow(ctx, `
		INSERT INTO events(name, description, location, capacity, starts_at, ends_at, created_at, created_by)
		VALUES($1, $2, $3, $4, $5, $6, NOW(), $7)
		RETURNING id
	`, req.Name, req.Description, req.Location, req.Capacity, req.StartsAt, req.EndsAt, admin.ID).
		Scan(&e.ID)
	if err != nil {
		utils.Error(w, "could not create event", err)
		return
	}

	utils.Success(w, e)
}

// AdminDeleteEvent supprime un événement (soft delete)
func AdminDeleteEvent(w http.ResponseWriter, r *http.Request) {
	if !middleware.IsAdmin(r) {
		utils.ErrorSimple(w, "admin access required")
		return
	}

	vars := mux.Vars(r)
	admin, _ := middleware.GetUserFromContext(r)

	ctx := context.Background()
	res, err := database.DB.Exec(ctx, `
		UPDATE events SET deleted_at = NOW(), deleted_by = $1
		WHERE id = $2 AND deleted_at IS NULL
	`, admin.ID, vars["id"])
	if err != nil {
		utils.Error(w, "could not delete event", err)
		return
	}
	if res.RowsAffected() == 0 {
		utils.ErrorSimple(w, "event not found")
		return
	}

	utils.Message(w, "event deleted")
}

// AdminFinalizeEvent fige le classement final d'un événement terminé à partir
// des sessions uploadées pendant sa fenêtre temporelle
func AdminFinalizeEvent(w http.ResponseWriter, r *http.Request) {
	if !middleware.IsAdmin(r) {
		utils.ErrorSimple(w, "admin access required")
		return
	}

	vars := mux.Vars(r)
	eventID := vars["id"]

	ctx := context.Background()

	var endsAt time.Time
	err := database.DB.QueryRow(ctx,
		`SELECT ends_at FROM events WHERE id = $1 AND deleted_at IS NULL`,
		eventID,
	).Scan(&endsAt)
	if err != nil {
		utils.ErrorSimple(w, "event not found")
		return
	}

	if endsAt.After(time.Now()) {
		utils.ErrorSimple(w, "event is not finished yet")
		return
	}

	// Score = punches cumulés pendant l'événement; rang dense par score décroissant
	_, err = database.DB.Exec(ctx, `
		WITH scores AS (
			SELECT er.user_id,
				COALESCE(SUM(ts.punches_count), 0) as score
			FROM event_registrations er
			INNER JOIN events e ON er.event_id = e.id
			LEFT JOIN training_sessions ts ON ts.user_id = er.user_id
				AND ts.archived = false
				AND to_timestamp(ts.start_time / 1000) BETWEEN e.starts_at AND e.ends_at
			WHERE er.event_id = $1
			GROUP BY er.user_id
		),
		ranked AS (
			SELECT user_id, score,
				ROW_NUMBER() OVER (ORDER BY score DESC) as final_rank
			FROM scores
		)
		UPDATE event_registrations er
		SET final_rank = ranked.final_rank, final_score = ranked.score
		FROM ranked
		WHERE er.event_id = $1 AND er.user_id = ranked.user_id
	`, eventID)
	if err != nil {
		utils.Error(w, "could not finalize event", err)
		return
	}

	utils.Message(w, "event finalized")
}
