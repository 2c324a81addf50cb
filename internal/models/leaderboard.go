package model

// LeaderboardEntry est l'agrégat par utilisateur, maintenu incrémentalement
// à l'ingestion des sessions. Jamais supprimé: sessions_count et punches_count
// ne font que croître.
type LeaderboardEntry struct {
	UserID           string  `json:"userId"`
	SessionsCount    int     `json:"sessionsCount"`
	AvgSpeed         float64 `json:"avgSpeed"`
	AvgForce         float64 `json:"avgForce"`
	PunchesCount     int     `json:"punchesCount"`
	MaxSpeed         float64 `json:"maxSpeed"`
	MaxForce         float64 `json:"maxForce"`
	TotalTimeTrained int64   `json:"totalTimeTrained"` // secondes
}

// GameLeaderboardEntry garde le meilleur score par (utilisateur, jeu).
// Le sens de comparaison dépend du jeu: temps de réaction = plus petit gagne.
type GameLeaderboardEntry struct {
	UserID   string  `json:"userId"`
	GameID   int     `json:"gameId"`
	Score    float64 `json:"score"`
	Distance float64 `json:"distance"`
}

// RankedRow est l'association éphémère entrée + rang, construite au moment
// de la requête et jamais persistée
type RankedRow struct {
	Rank              int         `json:"rank"`
	WeekSessionsCount int         `json:"weekSessionsCount,omitempty"`
	User              UserSummary `json:"user"`
	LeaderboardEntry
}

// GameRankedRow est la ligne de classement jeu, avec score/distance déjà
// formatés selon le type de jeu
type GameRankedRow struct {
	Rank     int         `json:"rank"`
	User     UserSummary `json:"user"`
	Score    string      `json:"score"`
	Distance string      `json:"distance"`
}
