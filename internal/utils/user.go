package utils

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/EdsonAvelino/StrikeTec-backend/internal/database"
	model "github.com/EdsonAvelino/StrikeTec-backend/internal/models"
)

// userColumns est la liste de colonnes commune aux lectures de profil
const userColumns = `
	u.id, u.first_name, u.last_name, u.email, u.photo, u.birthdate, u.gender,
	u.weight, u.height, u.country_id, u.state_id, u.city, u.skill_level, u.stance,
	u.public_profile, u.points, u.is_admin, u.provider,
	u.join_date, u.created_at, u.updated_at`

// FindUserByEmail recherche un utilisateur par son email
func FindUserByEmail(ctx context.Context, email string) (*model.UserProfile, error) {
	row := database.DB.QueryRow(ctx,
		`SELECT `+userColumns+`
		 FROM users u WHERE u.email=$1 AND u.deleted_at IS NULL`,
		email,
	)
	return scanProfile(row)
}

// FindUserByID recherche un utilisateur par son ID
func FindUserByID(ctx context.Context, id string) (*model.UserProfile, error) {
	row := database.DB.QueryRow(ctx,
		`SELECT `+userColumns+`
		 FROM users u WHERE u.id=$1 AND u.deleted_at IS NULL`,
		id,
	)
	return scanProfile(row)
}

// FindUserByEmailWithPassword retourne aussi le hash du mot de passe
func FindUserByEmailWithPassword(ctx context.Context, email string) (*model.UserProfile, string, error) {
	row := database.DB.QueryRow(ctx,
		`SELECT `+userColumns+`, u.password_hash
		 FROM users u WHERE u.email=$1 AND u.deleted_at IS NULL`,
		email,
	)

	var passwordHash string
	user, err := scanProfileExtra(row, &passwordHash)
	if err != nil {
		return nil, "", err
	}
	return user, passwordHash, nil
}

// CreateUser crée un nouvel utilisateur
func CreateUser(ctx context.Context, firstName, lastName, email, passwordHash, provider string) (*model.UserProfile, error) {
	var user model.UserProfile
	err := database.DB.QueryRow(ctx,
		`INSERT INTO users(first_name, last_name, email, password_hash, provider, public_profile, points, join_date, created_at, updated_at)
		 VALUES($1, $2, $3, $4, $5, true, 0, NOW(), NOW(), NOW())
		 RETURNING id, first_name, last_name, email, join_date, created_at, updated_at`,
		firstName, lastName, email, passwordHash, provider,
	).Scan(&user.ID, &user.FirstName, &user.LastName, &user.Email,
		&user.JoinDate, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		return nil, err
	}

	// L'utilisateur se crée lui-même
	_, _ = database.DB.Exec(ctx, `UPDATE users SET created_by=$1 WHERE id=$1`, user.ID)

	user.Provider = provider
	user.PublicProfile = true
	return &user, nil
}

// IncrementUserPoints incrémente les points d'un utilisateur (badges débloqués)
func IncrementUserPoints(ctx context.Context, userID string, points int) error {
	_, err := database.DB.Exec(ctx,
		`UPDATE users SET points = points + $1 WHERE id = $2 AND deleted_at IS NULL`,
		points, userID,
	)
	if err != nil {
		return fmt.Errorf("impossible d'incrémenter les points: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProfile(row rowScanner) (*model.UserProfile, error) {
	return scanProfileExtra(row)
}

func scanProfileExtra(row rowScanner, extra ...interface{}) (*model.UserProfile, error) {
	var user model.UserProfile
	var photo, gender, city, skillLevel, stance, provider sql.NullString
	var birthdate sql.NullTime
	var weight, height sql.NullFloat64
	var countryID, stateID sql.NullInt64

	dest := []interface{}{
		&user.ID, &user.FirstName, &user.LastName, &user.Email, &photo, &birthdate, &gender,
		&weight, &height, &countryID, &stateID, &city, &skillLevel, &stance,
		&user.PublicProfile, &user.Points, &user.IsAdmin, &provider,
		&user.JoinDate, &user.CreatedAt, &user.UpdatedAt,
	}
	dest = append(dest, extra...)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	user.Photo = NullStringToString(photo)
	user.Gender = NullStringToString(gender)
	user.City = NullStringToString(city)
	user.SkillLevel = NullStringToString(skillLevel)
	user.Stance = NullStringToString(stance)
	user.Provider = NullStringToString(provider)
	if user.Provider == "" {
		user.Provider = "email"
	}
	user.Birthdate = NullTimeToPointer(birthdate)
	user.Weight = NullFloat64ToFloat64(weight)
	user.Height = NullFloat64ToFloat64(height)
	user.CountryID = NullInt64ToPointer(countryID)
	user.StateID = NullInt64ToPointer(stateID)

	return &user, nil
}
