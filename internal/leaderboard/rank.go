package leaderboard

import (
	model "github.com/EdsonAvelino/StrikeTec-backend/internal/models"
)

// AssignRanks parcourt une liste déjà filtrée et triée et attribue des rangs
// séquentiels denses (base 1). Les égalités ne sont PAS détectées: le premier
// dans l'ordre d'entrée prend le rang le plus bas. Comportement voulu, ne pas
// "corriger" vers un classement par compétition.
//
// Retourne aussi le rang du requérant (0 s'il n'apparaît pas dans la liste).
func AssignRanks(rows []model.RankedRow, requestingUserID string) ([]model.RankedRow, int) {
	requesterRank := 0
	for i := range rows {
		rows[i].Rank = i + 1
		if requesterRank == 0 && rows[i].User.ID == requestingUserID {
			requesterRank = i + 1
		}
	}
	return rows, requesterRank
}

// MoveToFront replace la ligne du requérant (si présente) en position 0 en
// préservant l'ordre relatif des autres lignes. Réinsertion stable, pas de re-tri.
func MoveToFront(rows []model.RankedRow, userID string) []model.RankedRow {
	for i := range rows {
		if rows[i].User.ID == userID {
			row := rows[i]
			copy(rows[1:i+1], rows[:i])
			rows[0] = row
			break
		}
	}
	return rows
}

// Paginate découpe la page [start, start+limit) avec bornes clampées
func Paginate(rows []model.RankedRow, start, limit int) []model.RankedRow {
	if start < 0 {
		start = 0
	}
	if start >= len(rows) {
		return []model.RankedRow{}
	}
	end := len(rows)
	if limit > 0 && start+limit < end {
		end = start + limit
	}
	return rows[start:end]
}

// WindowAroundRequester est le mode optionnel de pagination: top-N fusionné
// avec une fenêtre autour du rang du requérant, dédupliqué, requérant en tête.
// Désactivé par défaut, le contrat courant est offset/limit simple.
func WindowAroundRequester(rows []model.RankedRow, requesterRank, topN, window int) []model.RankedRow {
	if requesterRank == 0 || requesterRank <= topN {
		return Paginate(rows, 0, topN)
	}

	merged := make([]model.RankedRow, 0, topN+2*window+1)
	seen := make(map[int]bool)

	for _, r := range Paginate(rows, 0, topN) {
		merged = append(merged, r)
		seen[r.Rank] = true
	}

	lo := requesterRank - 1 - window
	if lo < 0 {
		lo = 0
	}
	hi := requesterRank + window
	if hi > len(rows) {
		hi = len(rows)
	}
	for _, r := range rows[lo:hi] {
		if !seen[r.Rank] {
			merged = append(merged, r)
			seen[r.Rank] = true
		}
	}

	// Le requérant est toujours trié en position 0
	var requesterID string
	for _, r := range merged {
		if r.Rank == requesterRank {
			requesterID = r.User.ID
			break
		}
	}
	return MoveToFront(merged, requesterID)
}
