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

const feedColumns = `
	p.id, p.user_id, p.body, p.image_url, p.session_id,
	(SELECT COUNT(*) FROM likes l WHERE l.entity_type = 'post' AND l.entity_id = p.id) as likes,
	EXISTS(
		SELECT 1 FROM likes l
		WHERE l.entity_type = 'post' AND l.entity_id = p.id AND l.user_id = $1
	) as user_liked,
	p.created_at, p.updated_at,
	u.id, u.first_name, u.last_name, u.photo`

type createPostRequest struct {
	Body      string  `json:"body" validate:"required,min=1,max=2000"`
	SessionID *string `json:"sessionId,omitempty" validate:"omitempty,uuid4"`
}

// GetFeed retourne le feed social: publications des profils publics,
// plus récentes d'abord
func GetFeed(w http.ResponseWriter, r *http.Request) {
	requesterID := ""
	if user, err := middleware.GetUserFromContext(r); err == nil {
		requesterID = user.ID
	}

	limit := utils.QueryInt(r, "limit", 20)
	offset := utils.QueryInt(r, "offset", 0)

	ctx := context.Background()

	rows, err := database.DB.Query(ctx, `
		SELECT `+feedColumns+`
		FROM feed_posts p
		INNER JOIN users u ON p.user_id = u.id AND u.deleted_at IS NULL
		WHERE p.deleted_at IS NULL
		AND (u.public_profile = true OR u.id = $1)
		ORDER BY p.created_at DESC
		LIMIT $2 OFFSET $3
	`, requesterID, limit, offset)
	if err != nil {
		utils.Error(w, "could not query feed", err)
		return
	}
	defer rows.Close()

	var posts []model.FeedPost
	for rows.Next() {
		post, err := scanner.ScanFeedPost(rows)
		if err != nil {
			utils.Error(w, "could not scan post row", err)
			return
		}
		posts = append(posts, *post)
	}

	utils.Success(w, posts)
}

// CreatePost publie un post, éventuellement lié à une session partagée
func CreatePost(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, "user not found in context", err)
		return
	}

	var req createPostRequest
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.Error(w, "invalid post payload", err)
		return
	}

	ctx := context.Background()

	if req.SessionID != nil {
		var ownerID string
		err := database.DB.QueryRow(ctx,
			`SELECT user_id FROM training_sessions WHERE id = $1`,
			*req.SessionID,
		).Scan(&ownerID)
		if err != nil || ownerID != user.ID {
			utils.ErrorSimple(w, "you can only share your own sessions")
			return
		}
	}

	var postID string
	err = database.DB.QueryRow(ctx, `
		INSERT INTO feed_posts(user_id, body, session_id, created_at, created_by)
		VALUES($1, $2, $3, NOW(), $1)
		RETURNING id
	`, user.ID, req.Body, req.SessionID).Scan(&postID)
	if err != nil {
		utils.Error(w, "could not create post", err)
		return
	}

	row := database.DB.QueryRow(ctx, `
		SELECT `+feedColumns+`
		FROM feed_posts p
		INNER JOIN users u ON p.user_id = u.id
		WHERE p.id = $2
	`, user.ID, postID)

	post, err := scanner.ScanFeedPost(row)
	if err != nil {
		utils.Error(w, "could not reload post", err)
		return
	}

	utils.Success(w, post)
}

// DeletePost supprime une publication (auteur ou admin, soft delete)
func DeletePost(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	postID := vars["id"]

	ctx := context.Background()

	var authorID string
	err := database.DB.QueryRow(ctx,
		`SELECT user_id FROM feed_posts WHERE id = $1 AND deleted_at IS NULL`,
		postID,
	).Scan(&authorID)
	if err != nil {
		utils.ErrorSimple(w, "post not found")
		return
	}

	if !middleware.IsOwnerOrAdmin(r, authorID) {
		utils.ErrorSimple(w, "you are not authorized to delete this post")
		return
	}

	requester, _ := middleware.GetUserFromContext(r)
	_, err = database.DB.Exec(ctx, `
		UPDATE feed_posts SET deleted_at = NOW(), deleted_by = $1 WHERE id = $2
	`, requester.ID, postID)
	if err != nil {
		utils.Error(w, "could not delete post", err)
		return
	}

	utils.Message(w, "post deleted")
}

// LikeEntity ajoute un like sur un post ou une session
func LikeEntity(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, "user not found in context", err)
		return
	}

	vars := mux.Vars(r)
	entityType := vars["entityType"]
	entityID := vars["entityId"]

	if entityType != model.EntityTypePost && entityType != model.EntityTypeSession {
		utils.ErrorSimple(w, "invalid entity type")
		return
	}

	ctx := context.Background()

	res, err := database.DB.Exec(ctx, `
		INSERT INTO likes(user_id, entity_type, entity_id, created_at)
		VALUES($1, $2, $3, NOW())
		ON CONFLICT (user_id, entity_type, entity_id) DO NOTHING
	`, user.ID, entityType, entityID)
	if err != nil {
		utils.Error(w, "could not like", err)
		return
	}

	if res.RowsAffected() == 0 {
		utils.ErrorSimple(w, "already liked")
		return
	}

	utils.Message(w, "liked")
}

// UnlikeEntity retire un like
func UnlikeEntity(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, "user not found in context", err)
		return
	}

	vars := mux.Vars(r)

	ctx := context.Background()

	res, err := database.DB.Exec(ctx, `
		DELETE FROM likes
		WHERE user_id = $1 AND entity_type = $2 AND entity_id = $3
	`, user.ID, vars["entityType"], vars["entityId"])
	if err != nil {
		utils.Error(w, "could not unlike", err)
		return
	}

	if res.RowsAffected() == 0 {
		utils.ErrorSimple(w, "not liked")
		return
	}

	utils.Message(w, "unliked")
}
