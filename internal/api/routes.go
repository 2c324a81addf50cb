package api

import (
	"net/http"

	"github.com/EdsonAvelino/StrikeTec-backend/internal/handler"
	"github.com/EdsonAvelino/StrikeTec-backend/internal/middleware"
	"github.com/EdsonAvelino/StrikeTec-backend/internal/utils"
	"github.com/fatih/color"
	"github.com/gorilla/mux"
)

func SetupRouter() http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.OptionalAuth)

	authenticatedRoutes := r.PathPrefix("/").Subrouter()
	authenticatedRoutes.Use(middleware.AuthMiddleware)
	authenticatedRoutes.Use(middleware.LoggerMiddleware)

	// Root - API documentation
	r.HandleFunc("/", handler.RootHandler).Methods(http.MethodGet)

	// Auth
	r.HandleFunc("/auth/register", handler.Register).Methods(http.MethodPost)
	r.HandleFunc("/auth/login", handler.Login).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/auth/logout", handler.Logout).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/auth/me", handler.GetMe).Methods(http.MethodGet)

	// Users
	r.HandleFunc("/users", handler.GetUsers).Methods(http.MethodGet)
	r.HandleFunc("/users/{id}", handler.GetUser).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/users/{id}", handler.UpdateUser).Methods(http.MethodPut, http.MethodPatch)
	authenticatedRoutes.HandleFunc("/users/{id}", handler.DeleteUser).Methods(http.MethodDelete)
	authenticatedRoutes.HandleFunc("/users/{id}/photo", handler.UploadProfilePhoto).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/users/{userId}/stats/{period}", handler.GetUserStats).Methods(http.MethodGet)
	r.HandleFunc("/users/{userId}/sessions", handler.GetUserSessions).Methods(http.MethodGet)
	r.HandleFunc("/users/{userId}/achievements", handler.GetUserAchievements).Methods(http.MethodGet)

	// Training sessions
	authenticatedRoutes.HandleFunc("/training/sessions", handler.SaveTrainingSessions).Methods(http.MethodPost)
	r.HandleFunc("/training/sessions", handler.GetTrainingSessions).Methods(http.MethodGet)
	r.HandleFunc("/training/sessions/{id}", handler.GetTrainingSession).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/training/sessions/{id}/archive", handler.ArchiveSession).Methods(http.MethodPost)

	// Leaderboards
	r.HandleFunc("/leaderboard", handler.GetLeaderboard).Methods(http.MethodGet)
	r.HandleFunc("/trending", handler.GetTrendingLeaderboard).Methods(http.MethodGet)
	r.HandleFunc("/leaderboard/game", handler.GetGameLeaderboard).Methods(http.MethodGet)

	// Battles
	authenticatedRoutes.HandleFunc("/battles", handler.GetBattles).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/battles", handler.CreateBattle).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/battles/{id}", handler.GetBattle).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/battles/{id}/respond", handler.RespondBattle).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/battles/{id}/complete", handler.CompleteBattle).Methods(http.MethodPost)

	// Events
	r.HandleFunc("/events", handler.GetEvents).Methods(http.MethodGet)
	r.HandleFunc("/events/{id}", handler.GetEvent).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/events/{id}/register", handler.RegisterToEvent).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/events/{id}/register", handler.UnregisterFromEvent).Methods(http.MethodDelete)
	r.HandleFunc("/events/{id}/results", handler.GetEventResults).Methods(http.MethodGet)

	// Achievements
	r.HandleFunc("/achievements", handler.GetAchievements).Methods(http.MethodGet)

	// Social feed
	r.HandleFunc("/feed", handler.GetFeed).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/feed", handler.CreatePost).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/feed/{id}", handler.DeletePost).Methods(http.MethodDelete)
	authenticatedRoutes.HandleFunc("/likes/{entityType}/{entityId}", handler.LikeEntity).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/likes/{entityType}/{entityId}", handler.UnlikeEntity).Methods(http.MethodDelete)

	// Chat
	authenticatedRoutes.HandleFunc("/chat/conversations", handler.GetConversations).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/chat/conversations/{id}/messages", handler.GetMessages).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/chat/messages", handler.SendMessage).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/chat/conversations/{id}/read", handler.MarkMessagesRead).Methods(http.MethodPost)

	// Subscriptions
	r.HandleFunc("/plans", handler.GetPlans).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/subscriptions/me", handler.GetMySubscription).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/subscriptions", handler.Subscribe).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/subscriptions", handler.CancelSubscription).Methods(http.MethodDelete)

	// Admin
	authenticatedRoutes.HandleFunc("/admin/users", handler.AdminGetUsers).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/admin/achievements", handler.AdminCreateAchievement).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/admin/achievements/{id}", handler.AdminDeleteAchievement).Methods(http.MethodDelete)
	authenticatedRoutes.HandleFunc("/admin/events", handler.AdminCreateEvent).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/admin/events/{id}", handler.AdminDeleteEvent).Methods(http.MethodDelete)
	authenticatedRoutes.HandleFunc("/admin/events/{id}/finalize", handler.AdminFinalizeEvent).Methods(http.MethodPost)

	// Health check
	r.HandleFunc("/health", handler.HealthCheck).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		utils.LogError("404 Not Found: %s %s", r.Method, r.URL.Path)
		color.Yellow("[404] %s %s (route non trouvée)", r.Method, r.URL.Path)
		http.Error(w, "Route not found", http.StatusNotFound)
	})

	return r
}
