package model

import (
	"time"
)

// DateFields contient les champs d'audit standard pour toutes les entités
type DateFields struct {
	CreatedBy *string   `json:"createdBy,omitempty"`
	UpdatedBy *string   `json:"updatedBy,omitempty"`
	DeletedAt time.Time `json:"deletedAt,omitempty"`
	DeletedBy *string   `json:"deletedBy,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

type UserProfile struct {
	ID            string     `json:"id,omitempty"`
	FirstName     string     `json:"firstName"`
	LastName      string     `json:"lastName"`
	Email         string     `json:"email"`
	Photo         string     `json:"photo,omitempty"`
	Birthdate     *time.Time `json:"birthdate,omitempty"`
	Gender        string     `json:"gender,omitempty"` // male, female
	Weight        float64    `json:"weight,omitempty"`
	Height        float64    `json:"height,omitempty"`
	CountryID     *int       `json:"countryId,omitempty"`
	StateID       *int       `json:"stateId,omitempty"`
	City          string     `json:"city,omitempty"`
	SkillLevel    string     `json:"skillLevel,omitempty"` // beginner, intermediate, pro
	Stance        string     `json:"stance,omitempty"`     // orthodox, southpaw
	PublicProfile bool       `json:"publicProfile"`
	Points        int        `json:"points"`
	IsAdmin       bool       `json:"isAdmin"`
	Provider      string     `json:"provider,omitempty"` // email, google, apple
	JoinDate      time.Time  `json:"joinDate,omitempty"`
	DateFields
}

// UserSummary est le sous-objet utilisateur dénormalisé embarqué dans les
// lignes de classement et le feed
type UserSummary struct {
	ID         string  `json:"id"`
	FirstName  string  `json:"firstName"`
	LastName   string  `json:"lastName"`
	Photo      string  `json:"photo,omitempty"`
	CountryID  *int    `json:"countryId,omitempty"`
	StateID    *int    `json:"stateId,omitempty"`
	City       string  `json:"city,omitempty"`
	SkillLevel string  `json:"skillLevel,omitempty"`
	Weight     float64 `json:"weight,omitempty"`
}
