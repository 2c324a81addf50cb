package model

import "time"

// Statuts d'abonnement
const (
	SubscriptionStatusActive   = "active"
	SubscriptionStatusCanceled = "canceled"
	SubscriptionStatusExpired  = "expired"
)

// Plan est une offre d'abonnement
type Plan struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Price    float64  `json:"price"`
	Period   string   `json:"period"` // monthly, yearly
	Features []string `json:"features"`
}

// Subscription est l'abonnement courant d'un utilisateur
type Subscription struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	PlanID    string    `json:"planId"`
	Plan      *Plan     `json:"plan,omitempty"`
	Status    string    `json:"status"`
	StartedAt time.Time `json:"startedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}
