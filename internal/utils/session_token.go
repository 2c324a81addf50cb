package utils

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/EdsonAvelino/StrikeTec-backend/internal/database"
	"github.com/google/uuid"
)

// TokenDuration durée de validité d'un token de connexion (30 jours,
// l'application mobile ne redemande pas le mot de passe à chaque lancement)
const TokenDuration = 30 * 24 * time.Hour

// CreateAuthToken crée un token de connexion pour un utilisateur
func CreateAuthToken(ctx context.Context, userID, ipAddress, userAgent string) (string, error) {

	token := uuid.NewString()
	now := time.Now()

	var tokenID string
	err := database.DB.QueryRow(ctx,
		`INSERT INTO auth_tokens(user_id, token, ip_address, user_agent, is_active, created_at, expires_at, created_by)
		 VALUES($1, $2, $3, $4, true, $5, $6, $7)
		 RETURNING id`,
		userID, token, ipAddress, userAgent, now, now.Add(TokenDuration), userID,
	).Scan(&tokenID)

	if err != nil {
		return "", err
	}

	return token, nil
}

// InvalidateAuthToken invalide un token de connexion (soft delete)
func InvalidateAuthToken(ctx context.Context, token string) error {

	var userID string
	err := database.DB.QueryRow(ctx,
		`SELECT user_id FROM auth_tokens WHERE token=$1 AND is_active=true AND deleted_at IS NULL`,
		token,
	).Scan(&userID)

	if err != nil {
		return fmt.Errorf("token introuvable ou déjà invalide")
	}

	res, err := database.DB.Exec(ctx,
		`UPDATE auth_tokens
		 SET is_active=false, expires_at=$2, deleted_at=NOW(), deleted_by=$3
		 WHERE token=$1 AND is_active=true AND deleted_at IS NULL`,
		token, time.Now(), userID,
	)

	if err != nil {
		return err
	}

	if res.RowsAffected() == 0 {
		return fmt.Errorf("aucun token à invalider")
	}

	return nil
}

// ExtractIPAndUserAgent extrait l'IP et le User-Agent depuis une requête HTTP
func ExtractIPAndUserAgent(r *http.Request) (string, string) {
	ip := r.RemoteAddr
	userAgent := r.UserAgent()
	return ip, userAgent
}
