package model

import "time"

// Event est un tournoi ou événement communautaire, géré depuis le panneau admin
type Event struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	Location     string    `json:"location,omitempty"`
	ImageURL     string    `json:"imageUrl,omitempty"`
	Capacity     int       `json:"capacity"`
	Participants int       `json:"participants"`
	StartsAt     time.Time `json:"startsAt"`
	EndsAt       time.Time `json:"endsAt"`
	Registered   bool      `json:"registered"` // pour l'utilisateur courant
	DateFields
}

// EventRegistration est l'inscription d'un utilisateur à un événement
type EventRegistration struct {
	ID           string       `json:"id"`
	EventID      string       `json:"eventId"`
	UserID       string       `json:"userId"`
	FinalRank    *int         `json:"finalRank,omitempty"`
	FinalScore   *float64     `json:"finalScore,omitempty"`
	User         *UserSummary `json:"user,omitempty"`
	RegisteredAt time.Time    `json:"registeredAt"`
}
