package model

// Statuts d'un battle (défi PvP)
const (
	BattleStatusPending   = "pending"
	BattleStatusAccepted  = "accepted"
	BattleStatusDeclined  = "declined"
	BattleStatusCompleted = "completed"
	BattleStatusExpired   = "expired"
)

// Battle est un défi entre deux utilisateurs, résolu à partir des sessions
// liées uploadées par chacun
type Battle struct {
	ID              string       `json:"id"`
	ChallengerID    string       `json:"challengerId"`
	OpponentID      string       `json:"opponentId"`
	Status          string       `json:"status"`
	Type            string       `json:"type"` // quick_start, round, combo
	WinnerID        *string      `json:"winnerId,omitempty"`
	ChallengerScore float64      `json:"challengerScore"`
	OpponentScore   float64      `json:"opponentScore"`
	Challenger      *UserSummary `json:"challenger,omitempty"`
	Opponent        *UserSummary `json:"opponent,omitempty"`
	DateFields
}
