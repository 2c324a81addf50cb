package model

// Types de sessions d'entraînement
const (
	SessionTypeQuickStart = "quick_start"
	SessionTypeRound      = "round"
	SessionTypeCombo      = "combo"
	SessionTypeSet        = "set"
	SessionTypeWorkout    = "workout"
)

// TrainingSession est une unité d'entraînement terminée, uploadée par le client.
// Les valeurs physiques (vitesse, force) sont calculées côté capteur, jamais recalculées ici.
// Immuable après création, à l'exception du flag archived.
type TrainingSession struct {
	ID               string         `json:"id,omitempty"`
	UserID           string         `json:"userId,omitempty"`
	BattleID         *string        `json:"battleId,omitempty"`
	GameID           *int           `json:"gameId,omitempty"`
	Type             string         `json:"type"`
	StartTime        int64          `json:"startTime"` // epoch millis
	EndTime          int64          `json:"endTime"`   // epoch millis
	AvgSpeed         float64        `json:"avgSpeed"`
	AvgForce         float64        `json:"avgForce"`
	PunchesCount     int            `json:"punchesCount"`
	MaxSpeed         float64        `json:"maxSpeed"`
	MaxForce         float64        `json:"maxForce"`
	BestReactionTime *float64       `json:"bestReactionTime,omitempty"`
	GameScore        *float64       `json:"gameScore,omitempty"`
	GameDistance     *float64       `json:"gameDistance,omitempty"`
	Archived         bool           `json:"archived"`
	Rounds           []SessionRound `json:"rounds,omitempty"`
	User             *UserSummary   `json:"user,omitempty"`
	DateFields
}

// SessionRound est un round individuel d'une session (source des maxima historiques)
type SessionRound struct {
	ID           string  `json:"id,omitempty"`
	SessionID    string  `json:"sessionId,omitempty"`
	Number       int     `json:"number"`
	StartTime    int64   `json:"startTime"`
	EndTime      int64   `json:"endTime"`
	AvgSpeed     float64 `json:"avgSpeed"`
	AvgForce     float64 `json:"avgForce"`
	PunchesCount int     `json:"punchesCount"`
	MaxSpeed     float64 `json:"maxSpeed"`
	MaxForce     float64 `json:"maxForce"`
}

// SessionUploadRequest est le payload du POST /training/sessions
type SessionUploadRequest struct {
	Sessions []SessionUpload `json:"sessions" validate:"required,min=1,dive"`
}

// SessionUpload est une session telle qu'envoyée par l'application mobile
type SessionUpload struct {
	BattleID         *string       `json:"battleId,omitempty"`
	GameID           *int          `json:"gameId,omitempty" validate:"omitempty,min=1,max=4"`
	Type             string        `json:"type" validate:"required,oneof=quick_start round combo set workout"`
	StartTime        int64         `json:"startTime" validate:"required,gt=0"`
	EndTime          int64         `json:"endTime" validate:"required,gtefield=StartTime"`
	AvgSpeed         float64       `json:"avgSpeed" validate:"min=0"`
	AvgForce         float64       `json:"avgForce" validate:"min=0"`
	PunchesCount     int           `json:"punchesCount" validate:"min=0"`
	MaxSpeed         float64       `json:"maxSpeed" validate:"min=0"`
	MaxForce         float64       `json:"maxForce" validate:"min=0"`
	BestReactionTime *float64      `json:"bestReactionTime,omitempty"`
	GameScore        *float64      `json:"gameScore,omitempty"`
	GameDistance     *float64      `json:"gameDistance,omitempty"`
	Rounds           []RoundUpload `json:"rounds,omitempty" validate:"dive"`
}

// RoundUpload est un round tel qu'envoyé par l'application mobile
type RoundUpload struct {
	Number       int     `json:"number" validate:"min=1"`
	StartTime    int64   `json:"startTime"`
	EndTime      int64   `json:"endTime"`
	AvgSpeed     float64 `json:"avgSpeed" validate:"min=0"`
	AvgForce     float64 `json:"avgForce" validate:"min=0"`
	PunchesCount int     `json:"punchesCount" validate:"min=0"`
	MaxSpeed     float64 `json:"maxSpeed" validate:"min=0"`
	MaxForce     float64 `json:"maxForce" validate:"min=0"`
}
