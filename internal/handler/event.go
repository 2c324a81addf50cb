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

const eventColumns = `
	e.id, e.name, e.description, e.location, e.image_url,
	e.capacity,
	(SELECT COUNT(*) FROM event_registrations er WHERE er.event_id = e.id) as participants,
	e.starts_at, e.ends_at,
	EXISTS(
		SELECT 1 FROM event_registrations er
		WHERE er.event_id = e.id AND er.user_id = $1
	) as registered,
	e.created_at, e.updated_at`

// GetEvents liste les événements à venir et en cours
func GetEvents(w http.ResponseWriter, r *http.Request) {
	requesterID := ""
	if user, err := middleware.GetUserFromContext(r); err == nil {
		requesterID = user.ID
	}

	ctx := context.Background()

	rows, err := database.DB.Query(ctx, `
		SELECT `+eventColumns+`
		FROM events e
		WHERE e.deleted_at IS NULL AND e.ends_at >= NOW()
		ORDER BY e.starts_at ASC
	`, requesterID)
	if err != nil {
		utils.Error(w, "could not query events", err)
		return
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		event, err := scanner.ScanEvent(rows)
		if err != nil {
			utils.Error(w, "could not scan event row", err)
			return
		}
		events = append(events, *event)
	}

	utils.Success(w, events)
}

// GetEvent récupère un événement par son ID
func GetEvent(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	requesterID := ""
	if user, err := middleware.GetUserFromContext(r); err == nil {
		requesterID = user.ID
	}

	ctx := context.Background()

	row := database.DB.QueryRow(ctx, `
		SELECT `+eventColumns+`
		FROM events e
		WHERE e.id = $2 AND e.deleted_at IS NULL
	`, requesterID, vars["id"])

	event, err := scanner.ScanEvent(row)
	if err != nil {
		utils.ErrorSimple(w, "event not found")
		return
	}

	utils.Success(w, event)
}

// RegisterToEvent inscrit l'utilisateur authentifié à un événement
func RegisterToEvent(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, "user not found in context", err)
		return
	}

	vars := mux.Vars(r)
	eventID := vars["id"]

	ctx := context.Background()

	var capacity, participants int
	err = database.DB.QueryRow(ctx, `
		SELECT e.capacity,
			(SELECT COUNT(*) FROM event_registrations er WHERE er.event_id = e.id)
		FROM events e
		WHERE e.id = $1 AND e.deleted_at IS NULL AND e.ends_at >= NOW()
	`, eventID).Scan(&capacity, &participants)
	if err != nil {
		utils.ErrorSimple(w, "event not found")
		return
	}

	if capacity > 0 && participants >= capacity {
		utils.ErrorSimple(w, "event is full")
		return
	}

	res, err := database.DB.Exec(ctx, `
		INSERT INTO event_registrations(event_id, user_id, registered_at)
		VALUES($1, $2, NOW())
		ON CONFLICT (event_id, user_id) DO NOTHING
	`, eventID, user.ID)
	if err != nil {
		utils.Error(w, "could not register to event", err)
		return
	}

	if res.RowsAffected() == 0 {
		utils.ErrorSimple(w, "you are already registered to this event")
		return
	}

	utils.Message(w, "registered")
}

// UnregisterFromEvent annule l'inscription de l'utilisateur
func UnregisterFromEvent(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, "user not found in context", err)
		return
	}

	vars := mux.Vars(r)

	ctx := context.Background()
	res, err := database.DB.Exec(ctx, `
		DELETE FROM event_registrations
		WHERE event_id = $1 AND user_id = $2
	`, vars["id"], user.ID)
	if err != nil {
		utils.Error(w, "could not unregister from event", err)
		return
	}

	if res.RowsAffected() == 0 {
		utils.ErrorSimple(w, "you are not registered to this event")
		return
	}

	utils.Message(w, "unregistered")
}

// GetEventResults retourne le classement final d'un événement terminé
func GetEventResults(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	ctx := context.Background()

	rows, err := database.DB.Query(ctx, `
		SELECT er.id, er.event_id, er.user_id, er.final_rank, er.final_score, er.registered_at,
			u.id, u.first_name, u.last_name, u.photo
		FROM event_registrations er
		INNER JOIN users u ON er.user_id = u.id
		WHERE er.event_id = $1 AND er.final_rank IS NOT NULL
		ORDER BY er.final_rank ASC
	`, vars["id"])
	if err != nil {
		utils.Error(w, "could not query event results", err)
		return
	}
	defer rows.Close()

	var results []model.EventRegistration
	for rows.Next() {
		var reg model.EventRegistration
		var u model.UserSummary
		var photo *string
		if err := rows.Scan(&reg.ID, &reg.EventID, &reg.UserID,
			&reg.FinalRank, &reg.FinalScore, &reg.RegisteredAt,
			&u.ID, &u.FirstName, &u.LastName, &photo); err != nil {
			utils.Error(w, "could not scan result row", err)
			return
		}
		if photo != nil {
			u.Photo = *photo
		}
		reg.User = &u
		results = append(results, reg)
	}

	utils.Success(w, results)
}
