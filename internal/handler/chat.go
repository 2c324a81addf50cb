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

type sendMessageRequest struct {
	RecipientID string `json:"recipientId" validate:"required,uuid4"`
	Body        string `json:"body" validate:"required,min=1,max=2000"`
}

// GetConversations liste les conversations de l'utilisateur, avec le dernier
// message et le nombre de non-lus
func GetConversations(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, "user not found in context", err)
		return
	}

	ctx := context.Background()

	rows, err := database.DB.Query(ctx, `
		SELECT c.id, c.user_a_id, c.user_b_id, c.created_at, c.updated_at,
			o.id, o.first_name, o.last_name, o.photo,
			m.id, m.sender_id, m.body, m.created_at,
			(SELECT COUNT(*) FROM chat_messages cm
				WHERE cm.conversation_id = c.id
				AND cm.sender_id != $1 AND cm.read_at IS NULL) as unread
		FROM conversations c
		INNER JOIN users o ON o.id = CASE WHEN c.user_a_id = $1 THEN c.user_b_id ELSE c.user_a_id END
		LEFT JOIN LATERAL (
			SELECT id, sender_id, body, created_at
			FROM chat_messages
			WHERE conversation_id = c.id
			ORDER BY created_at DESC
			LIMIT 1
		) m ON true
		WHERE c.user_a_id = $1 OR c.user_b_id = $1
		ORDER BY c.updated_at DESC
	`, user.ID)
	if err != nil {
		utils.Error(w, "could not query conversations", err)
		return
	}
	defer rows.Close()

	var conversations []model.Conversation
	for rows.Next() {
		var c model.Conversation
		var other model.UserSummary
		var photo *string
		var msgID, msgSender, msgBody *string
		var msgCreatedAt *time.Time

		if err := rows.Scan(&c.ID, &c.UserAID, &c.UserBID, &c.CreatedAt, &c.UpdatedAt,
			&other.ID, &other.FirstName, &other.LastName, &photo,
			&msgID, &msgSender, &msgBody, &msgCreatedAt,
			&c.UnreadCount); err != nil {
			utils.Error(w, "could not scan conversation row", err)
			return
		}

		if photo != nil {
			other.Photo = *photo
		}
		c.Other = &other

		if msgID != nil {
			c.LastMessage = &model.ChatMessage{
				ID:             *msgID,
				ConversationID: c.ID,
				SenderID:       *msgSender,
				Body:           *msgBody,
				CreatedAt:      *msgCreatedAt,
			}
		}

		conversations = append(conversations, c)
	}

	utils.Success(w, conversations)
}

// GetMessages liste les messages d'une conversation (participant uniquement)
func GetMessages(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, "user not found in context", err)
		return
	}

	vars := mux.Vars(r)
	conversationID := vars["id"]

	ctx := context.Background()

	if !isParticipant(ctx, conversationID, user.ID) {
		utils.ErrorSimple(w, "conversation not found")
		return
	}

	limit := utils.QueryInt(r, "limit", 50)
	offset := utils.QueryInt(r, "offset", 0)

	rows, err := database.DB.Query(ctx, `
		SELECT id, conversation_id, sender_id, body, read_at, created_at
		FROM chat_messages
		WHERE conversation_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, conversationID, limit, offset)
	if err != nil {
		utils.Error(w, "could not query messages", err)
		return
	}
	defer rows.Close()

	var messages []model.ChatMessage
	for rows.Next() {
		var m model.ChatMessage
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.SenderID,
			&m.Body, &m.ReadAt, &m.CreatedAt); err != nil {
			utils.Error(w, "could not scan message row", err)
			return
		}
		messages = append(messages, m)
	}

	utils.Success(w, messages)
}

// SendMessage envoie un message, en créant la conversation au besoin
func SendMessage(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, "user not found in context", err)
		return
	}

	var req sendMessageRequest
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.Error(w, "invalid message payload", err)
		return
	}

	if req.RecipientID == user.ID {
		utils.ErrorSimple(w, "you cannot message yourself")
		return
	}

	ctx := context.Background()

	if _, err := utils.FindUserByID(ctx, req.RecipientID); err != nil {
		utils.ErrorSimple(w, "recipient not found")
		return
	}

	// Paire normalisée pour garantir une conversation unique par binôme
	userA, userB := user.ID, req.RecipientID
	if userB < userA {
		userA, userB = userB, userA
	}

	var conversationID string
	err = database.DB.QueryRow(ctx, `
		INSERT INTO conversations(user_a_id, user_b_id, created_at, updated_at)
		VALUES($1, $2, NOW(), NOW())
		ON CONFLICT (user_a_id, user_b_id) DO UPDATE SET updated_at = NOW()
		RETURNING id
	`, userA, userB).Scan(&conversationID)
	if err != nil {
		utils.Error(w, "could not open conversation", err)
		return
	}

	var message model.ChatMessage
	message.ConversationID = conversationID
	message.SenderID = user.ID
	message.Body = req.Body

	err = database.DB.QueryRow(ctx, `
		INSERT INTO chat_messages(conversation_id, sender_id, body, created_at)
		VALUES($1, $2, $3, NOW())
		RETURNING id, created_at
	`, conversationID, user.ID, req.Body).Scan(&message.ID, &message.CreatedAt)
	if err != nil {
		utils.Error(w, "could not send message", err)
		return
	}

	utils.Success(w, message)
}

// MarkMessagesRead marque comme lus les messages reçus de la conversation
func MarkMessagesRead(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, "user not found in context", err)
		return
	}

	vars := mux.Vars(r)
	conversationID := vars["id"]

	ctx := context.Background()

	if !isParticipant(ctx, conversationID, user.ID) {
		utils.ErrorSimple(w, "conversation not found")
		return
	}

	_, err = database.DB.Exec(ctx, `
		UPDATE chat_messages SET read_at = NOW()
		WHERE conversation_id = $1 AND sender_id != $2 AND read_at IS NULL
	`, conversationID, user.ID)
	if err != nil {
		utils.Error(w, "could not mark messages read", err)
		return
	}

	utils.Message(w, "messages marked as read")
}

func isParticipant(ctx context.Context, conversationID, userID string) bool {
	var ok bool
	err := database.DB.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM conversations
			WHERE id = $1 AND (user_a_id = $2 OR user_b_id = $2)
		)
	`, conversationID, userID).Scan(&ok)
	return err == nil && ok
}
