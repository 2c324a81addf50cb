package handler

import (
	"net/http"

	"github.com/EdsonAvelino/StrikeTec-backend/internal/utils"
)

// RootHandler affiche toutes les routes disponibles de l'API
func RootHandler(w http.ResponseWriter, r *http.Request) {
	routes := map[string]interface{}{
		"name":    "StrikeTec API",
		"version": "1.0.0",
		"status":  "running",
		"routes": map[string]interface{}{
			"auth": []map[string]string{
				{"method": "POST", "path": "/auth/register", "description": "Inscription utilisateur"},
				{"method": "POST", "path": "/auth/login", "description": "Connexion utilisateur"},
				{"method": "POST", "path": "/auth/logout", "description": "Déconnexion utilisateur"},
				{"method": "GET", "path": "/auth/me", "description": "Profil de l'utilisateur authentifié"},
			},
			"users": []map[string]string{
				{"method": "GET", "path": "/users", "description": "Rechercher les profils publics (params: search, limit, offset)"},
				{"method": "GET", "path": "/users/{id}", "description": "Récupérer un profil par ID"},
				{"method": "PUT", "path": "/users/{id}", "description": "Mettre à jour un profil"},
				{"method": "DELETE", "path": "/users/{id}", "description": "Supprimer un compte (soft delete)"},
				{"method": "POST", "path": "/users/{id}/photo", "description": "Upload photo de profil"},
				{"method": "GET", "path": "/users/{userId}/stats/{period}", "description": "Statistiques d'entraînement (today/week/month/year)"},
				{"method": "GET", "path": "/users/{userId}/sessions", "description": "Sessions d'un utilisateur"},
				{"method": "GET", "path": "/users/{userId}/achievements", "description": "Badges débloqués"},
			},
			"training": []map[string]string{
				{"method": "POST", "path": "/training/sessions", "description": "Upload d'un lot de sessions d'entraînement"},
				{"method": "GET", "path": "/training/sessions", "description": "Récupérer les sessions (params: startDate, endDate, type)"},
				{"method": "GET", "path": "/training/sessions/{id}", "description": "Récupérer une session et ses rounds"},
				{"method": "POST", "path": "/training/sessions/{id}/archive", "description": "Archiver une session"},
			},
			"leaderboard": []map[string]string{
				{"method": "GET", "path": "/leaderboard", "description": "Classement général (params: country_id, state_id, age, weight, gender, start, limit)"},
				{"method": "GET", "path": "/trending", "description": "Classement de la semaine (params: search + filtres)"},
				{"method": "GET", "path": "/leaderboard/game", "description": "Classement d'un jeu (param: game_id 1-4)"},
			},
			"battles": []map[string]string{
				{"method": "GET", "path": "/battles", "description": "Battles de l'utilisateur (param: status)"},
				{"method": "GET", "path": "/battles/{id}", "description": "Récupérer un battle par ID"},
				{"method": "POST", "path": "/battles", "description": "Défier un utilisateur"},
				{"method": "POST", "path": "/battles/{id}/respond", "description": "Accepter ou décliner un défi"},
				{"method": "POST", "path": "/battles/{id}/complete", "description": "Clore un battle et désigner le vainqueur"},
			},
			"events": []map[string]string{
				{"method": "GET", "path": "/events", "description": "Événements à venir et en cours"},
				{"method": "GET", "path": "/events/{id}", "description": "Récupérer un événement par ID"},
				{"method": "POST", "path": "/events/{id}/register", "description": "S'inscrire à un événement"},
				{"method": "DELETE", "path": "/events/{id}/register", "description": "Annuler son inscription"},
				{"method": "GET", "path": "/events/{id}/results", "description": "Classement final d'un événement"},
			},
			"achievements": []map[string]string{
				{"method": "GET", "path": "/achievements", "description": "Catalogue des badges"},
			},
			"feed": []map[string]string{
				{"method": "GET", "path": "/feed", "description": "Feed social (params: limit, offset)"},
				{"method": "POST", "path": "/feed", "description": "Publier un post"},
				{"method": "DELETE", "path": "/feed/{id}", "description": "Supprimer un post"},
				{"method": "POST", "path": "/likes/{entityType}/{entityId}", "description": "Liker un post ou une session"},
				{"method": "DELETE", "path": "/likes/{entityType}/{entityId}", "description": "Retirer un like"},
			},
			"chat": []map[string]string{
				{"method": "GET", "path": "/chat/conversations", "description": "Conversations de l'utilisateur"},
				{"method": "GET", "path": "/chat/conversations/{id}/messages", "description": "Messages d'une conversation"},
				{"method": "POST", "path": "/chat/messages", "description": "Envoyer un message"},
				{"method": "POST", "path": "/chat/conversations/{id}/read", "description": "Marquer les messages comme lus"},
			},
			"subscriptions": []map[string]string{
				{"method": "GET", "path": "/plans", "description": "Offres d'abonnement"},
				{"method": "GET", "path": "/subscriptions/me", "description": "Abonnement courant"},
				{"method": "POST", "path": "/subscriptions", "description": "Souscrire à une offre"},
				{"method": "DELETE", "path": "/subscriptions", "description": "Annuler l'abonnement"},
			},
			"admin": []map[string]string{
				{"method": "GET", "path": "/admin/users", "description": "Tous les comptes (admin)"},
				{"method": "POST", "path": "/admin/achievements", "description": "Créer un badge (admin)"},
				{"method": "DELETE", "path": "/admin/achievements/{id}", "description": "Supprimer un badge (admin)"},
				{"method": "POST", "path": "/admin/events", "description": "Créer un événement (admin)"},
				{"method": "DELETE", "path": "/admin/events/{id}", "description": "Supprimer un événement (admin)"},
				{"method": "POST", "path": "/admin/events/{id}/finalize", "description": "Figer le classement final (admin)"},
			},
			"health": []map[string]string{
				{"method": "GET", "path": "/health", "description": "Health check de l'API"},
			},
		},
		"documentation": map[string]string{
			"description": "API REST pour StrikeTec - Application d'entraînement boxe et kickboxing",
			"contact":     "support@striketec.com",
		},
	}

	utils.Success(w, routes)
}
