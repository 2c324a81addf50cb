package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/EdsonAvelino/StrikeTec-backend/internal/middleware"
	"github.com/EdsonAvelino/StrikeTec-backend/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

type registerRequest struct {
	FirstName string `json:"firstName" validate:"required,min=1,max=100"`
	LastName  string `json:"lastName" validate:"required,min=1,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Register crée un compte avec email et mot de passe
func Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.Error(w, "invalid registration payload", err)
		return
	}

	ctx := context.Background()
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if existing, _ := utils.FindUserByEmail(ctx, email); existing != nil {
		utils.ErrorSimple(w, "an account with this email already exists")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.Error(w, "could not hash password", err)
		return
	}

	user, err := utils.CreateUser(ctx, req.FirstName, req.LastName, email, string(hash), "email")
	if err != nil {
		utils.Error(w, "could not create user", err)
		return
	}

	ip, userAgent := utils.ExtractIPAndUserAgent(r)
	token, err := utils.CreateAuthToken(ctx, user.ID, ip, userAgent)
	if err != nil {
		utils.Error(w, "could not create session", err)
		return
	}

	utils.Success(w, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

// Login authentifie un utilisateur et ouvre une session
func Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.Error(w, "invalid login payload", err)
		return
	}

	ctx := context.Background()
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, passwordHash, err := utils.FindUserByEmailWithPassword(ctx, email)
	if err != nil {
		utils.ErrorSimple(w, "invalid email or password")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(req.Password)); err != nil {
		utils.ErrorSimple(w, "invalid email or password")
		return
	}

	ip, userAgent := utils.ExtractIPAndUserAgent(r)
	token, err := utils.CreateAuthToken(ctx, user.ID, ip, userAgent)
	if err != nil {
		utils.Error(w, "could not create session", err)
		return
	}

	utils.Success(w, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

// Logout invalide le token de la session courante
func Logout(w http.ResponseWriter, r *http.Request) {
	token, err := middleware.GetTokenFromContext(r)
	if err != nil {
		utils.Error(w, "no active session", err)
		return
	}

	ctx := context.Background()
	if err := utils.InvalidateAuthToken(ctx, token); err != nil {
		utils.Error(w, "could not invalidate session", err)
		return
	}

	utils.Message(w, "logged out")
}

// GetMe retourne le profil de l'utilisateur authentifié
func GetMe(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, "user not found in context", err)
		return
	}

	utils.Success(w, user)
}
