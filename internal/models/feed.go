package model

// Types d'entités likables du feed social
const (
	EntityTypePost    = "post"
	EntityTypeSession = "session"
)

// FeedPost est une publication du feed social
type FeedPost struct {
	ID        string       `json:"id"`
	UserID    string       `json:"userId"`
	Body      string       `json:"body"`
	ImageURL  string       `json:"imageUrl,omitempty"`
	SessionID *string      `json:"sessionId,omitempty"` // session partagée, le cas échéant
	Likes     int          `json:"likes"`
	UserLiked bool         `json:"userLiked"`
	Author    *UserSummary `json:"author,omitempty"`
	DateFields
}

// Like est un like générique sur une entité du feed
type Like struct {
	ID         string `json:"id"`
	UserID     string `json:"userId"`
	EntityType string `json:"entityType"`
	EntityID   string `json:"entityId"`
}
