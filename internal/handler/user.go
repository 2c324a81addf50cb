package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/EdsonAvelino/StrikeTec-backend/internal/database"
	"github.com/EdsonAvelino/StrikeTec-backend/internal/middleware"
	model "github.com/EdsonAvelino/StrikeTec-backend/internal/models"
	"github.com/EdsonAvelino/StrikeTec-backend/internal/services"
	"github.com/EdsonAvelino/StrikeTec-backend/internal/utils"
	"github.com/gorilla/mux"
)

// Cloudinary est injecté au démarrage; nil si la config est absente
var Cloudinary *services.CloudinaryService

// GetUser récupère un profil. Les profils privés ne sont visibles que par
// leur propriétaire ou un admin; les autres voient une fiche réduite.
func GetUser(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID := vars["id"]

	ctx := context.Background()

	user, err := utils.FindUserByID(ctx, userID)
	if err != nil {
		utils.ErrorSimple(w, "user not found")
		return
	}

	if !user.PublicProfile && !middleware.IsOwnerOrAdmin(r, user.ID) {
		utils.Success(w, model.UserSummary{
			ID:        user.ID,
			FirstName: user.FirstName,
			LastName:  user.LastName,
			Photo:     user.Photo,
		})
		return
	}

	utils.Success(w, user)
}

// GetUsers liste les profils publics, avec recherche par nom
func GetUsers(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	limit := utils.QueryInt(r, "limit", 50)
	offset := utils.QueryInt(r, "offset", 0)

	ctx := context.Background()

	sqlQuery := `
		SELECT u.id, u.first_name, u.last_name, u.photo,
			u.country_id, u.state_id, u.city, u.skill_level, u.weight
		FROM users u
		WHERE u.deleted_at IS NULL AND u.public_profile = true
	`

	args := []interface{}{}
	argCount := 1

	if search != "" {
		sqlQuery += " AND (u.first_name ILIKE $" + strconv.Itoa(argCount) +
			" OR u.last_name ILIKE $" + strconv.Itoa(argCount+1) + ")"
		args = append(args, "%"+search+"%", "%"+search+"%")
		argCount += 2
	}

	sqlQuery += " ORDER BY u.first_name, u.last_name"
	sqlQuery += " LIMIT $" + strconv.Itoa(argCount) + " OFFSET $" + strconv.Itoa(argCount+1)
	args = append(args, limit, offset)

	rows, err := database.DB.Query(ctx, sqlQuery, args...)
	if err != nil {
		utils.Error(w, "could not query users", err)
		return
	}
	defer rows.Close()

	var users []model.UserSummary
	for rows.Next() {
		var u model.UserSummary
		var photo, city, skillLevel *string
		var weight *float64
		if err := rows.Scan(&u.ID, &u.FirstName, &u.LastName, &photo,
			&u.CountryID, &u.StateID, &city, &skillLevel, &weight); err != nil {
			utils.Error(w, "could not scan user row", err)
			return
		}
		if photo != nil {
			u.Photo = *photo
		}
		if city != nil {
			u.City = *city
		}
		if skillLevel != nil {
			u.SkillLevel = *skillLevel
		}
		if weight != nil {
			u.Weight = *weight
		}
		users = append(users, u)
	}

	utils.Success(w, users)
}

type updateUserRequest struct {
	FirstName     *string    `json:"firstName,omitempty" validate:"omitempty,min=1,max=100"`
	LastName      *string    `json:"lastName,omitempty" validate:"omitempty,min=1,max=100"`
	Birthdate     *time.Time `json:"birthdate,omitempty"`
	Gender        *string    `json:"gender,omitempty" validate:"omitempty,oneof=male female"`
	Weight        *float64   `json:"weight,omitempty" validate:"omitempty,gt=0"`
	Height        *float64   `json:"height,omitempty" validate:"omitempty,gt=0"`
	CountryID     *int       `json:"countryId,omitempty"`
	StateID       *int       `json:"stateId,omitempty"`
	City          *string    `json:"city,omitempty"`
	SkillLevel    *string    `json:"skillLevel,omitempty" validate:"omitempty,oneof=beginner intermediate pro"`
	Stance        *string    `json:"stance,omitempty" validate:"omitempty,oneof=orthodox southpaw"`
	PublicProfile *bool      `json:"publicProfile,omitempty"`
}

// UpdateUser met à jour le profil (propriétaire ou admin), champs optionnels
func UpdateUser(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID := vars["id"]

	if !middleware.IsOwnerOrAdmin(r, userID) {
		utils.ErrorSimple(w, "you are not authorized to update this profile")
		return
	}

	var req updateUserRequest
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.Error(w, "invalid update payload", err)
		return
	}

	sqlQuery := "UPDATE users SET updated_at = NOW()"
	args := []interface{}{}
	argCount := 1

	addField := func(column string, value interface{}) {
		sqlQuery += ", " + column + " = $" + strconv.Itoa(argCount)
		args = append(args, value)
		argCount++
	}

	if req.FirstName != nil {
		addField("first_name", *req.FirstName)
	}
	if req.LastName != nil {
		addField("last_name", *req.LastName)
	}
	if req.Birthdate != nil {
		addField("birthdate", *req.Birthdate)
	}
	if req.Gender != nil {
		addField("gender", *req.Gender)
	}
	if req.Weight != nil {
		addField("weight", *req.Weight)
	}
	if req.Height != nil {
		addField("height", *req.Height)
	}
	if req.CountryID != nil {
		addField("country_id", *req.CountryID)
	}
	if req.StateID != nil {
		addField("state_id", *req.StateID)
	}
	if req.City != nil {
		addField("city", *req.City)
	}
	if req.SkillLevel != nil {
		addField("skill_level", *req.SkillLevel)
	}
	if req.Stance != nil {
		addField("stance", *req.Stance)
	}
	if req.PublicProfile != nil {
		addField("public_profile", *req.PublicProfile)
	}

	if len(args) == 0 {
		utils.ErrorSimple(w, "nothing to update")
		return
	}

	sqlQuery += " WHERE id = $" + strconv.Itoa(argCount) + " AND deleted_at IS NULL"
	args = append(args, userID)

	ctx := context.Background()
	res, err := database.DB.Exec(ctx, sqlQuery, args...)
	if err != nil {
		utils.Error(w, "could not update user", err)
		return
	}
	if res.RowsAffected() == 0 {
		utils.ErrorSimple(w, "user not found")
		return
	}

	user, err := utils.FindUserByID(ctx, userID)
	if err != nil {
		utils.Error(w, "could not reload user", err)
		return
	}

	utils.Success(w, user)
}

// DeleteUser désactive un compte (soft delete, propriétaire ou admin)
func DeleteUser(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID := vars["id"]

	if !middleware.IsOwnerOrAdmin(r, userID) {
		utils.ErrorSimple(w, "you are not authorized to delete this account")
		return
	}

	requester, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, "user not found in context", err)
		return
	}

	ctx := context.Background()
	res, err := database.DB.Exec(ctx, `
		UPDATE users SET deleted_at = NOW(), deleted_by = $1
		WHERE id = $2 AND deleted_at IS NULL
	`, requester.ID, userID)
	if err != nil {
		utils.Error(w, "could not delete user", err)
		return
	}
	if res.RowsAffected() == 0 {
		utils.ErrorSimple(w, "user not found")
		return
	}

	utils.Message(w, "account deleted")
}

// UploadProfilePhoto reçoit un multipart form et stocke la photo sur Cloudinary
func UploadProfilePhoto(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID := vars["id"]

	if !middleware.IsOwnerOrAdmin(r, userID) {
		utils.ErrorSimple(w, "you are not authorized to update this profile")
		return
	}

	if Cloudinary == nil {
		utils.ErrorSimple(w, "photo upload is not configured")
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.Error(w, "invalid multipart form", err)
		return
	}

	file, _, err := r.FormFile("photo")
	if err != nil {
		utils.Error(w, "missing photo file", err)
		return
	}
	defer file.Close()

	ctx := context.Background()

	url, err := Cloudinary.UploadProfilePhoto(ctx, file, userID)
	if err != nil {
		utils.Error(w, "could not upload photo", err)
		return
	}

	_, err = database.DB.Exec(ctx,
		`UPDATE users SET photo = $1, updated_at = NOW() WHERE id = $2`,
		url, userID,
	)
	if err != nil {
		utils.Error(w, "could not save photo url", err)
		return
	}

	utils.Success(w, map[string]string{"photo": url})
}
