package leaderboard

import (
	"context"
	"fmt"

	"github.com/EdsonAvelino/StrikeTec-backend/internal/database"
	model "github.com/EdsonAvelino/StrikeTec-backend/internal/models"
)

// QueryOptions contrôle la pagination d'une requête de classement
type QueryOptions struct {
	Start int
	Limit int

	// WindowAroundRequester active le mode fenêtré (top-N + voisinage du
	// requérant). Désactivé par défaut: le contrat courant est offset/limit
	// simple avec rang du requérant rapporté à part.
	WindowAroundRequester bool
	TopN                  int
	Window                int
}

const defaultLimit = 50

// weekCountJoin compte par utilisateur les sessions non archivées de la
// semaine ISO courante. Les sessions archivées ne pèsent jamais sur le
// classement trending, comme pour les listings.
const weekCountJoin = `
		LEFT JOIN (
			SELECT user_id, COUNT(*) as week_count
			FROM training_sessions
			WHERE archived = false
			AND to_timestamp(start_time / 1000) >= date_trunc('week', NOW())
			GROUP BY user_id
		) w ON w.user_id = e.user_id`

// Main retourne la page du classement général et le rang du requérant.
// Inclusion: punches_count > 0 (les utilisateurs sans activité ne sont pas
// classés du tout).
func Main(ctx context.Context, requesterID string, f Filters, opts QueryOptions) ([]model.RankedRow, int, error) {
	query := `
		SELECT
			e.user_id, e.sessions_count, e.avg_speed, e.avg_force, e.punches_count,
			e.max_speed, e.max_force, e.total_time_trained,
			u.first_name, u.last_name, COALESCE(u.photo, '') as photo,
			u.country_id, u.state_id, COALESCE(u.city, '') as city,
			COALESCE(u.skill_level, '') as skill_level, COALESCE(u.weight, 0) as weight
		FROM leaderboard_entries e
		INNER JOIN users u ON u.id = e.user_id AND u.deleted_at IS NULL
		WHERE e.punches_count > 0
	`

	where, args, _ := f.Conditions(1, requesterID)
	query += where
	query += ` ORDER BY e.punches_count DESC, e.avg_speed DESC, e.user_id`

	rows, err := database.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("could not query leaderboard: %w", err)
	}
	defer rows.Close()

	var all []model.RankedRow
	for rows.Next() {
		var r model.RankedRow
		if err := rows.Scan(
			&r.UserID, &r.SessionsCount, &r.AvgSpeed, &r.AvgForce, &r.PunchesCount,
			&r.MaxSpeed, &r.MaxForce, &r.TotalTimeTrained,
			&r.User.FirstName, &r.User.LastName, &r.User.Photo,
			&r.User.CountryID, &r.User.StateID, &r.User.City,
			&r.User.SkillLevel, &r.User.Weight,
		); err != nil {
			return nil, 0, fmt.Errorf("could not scan leaderboard row: %w", err)
		}
		r.User.ID = r.UserID
		all = append(all, r)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return pageAndRank(all, requesterID, opts)
}

// Trending retourne le classement pondéré par l'activité de la semaine ISO
// courante. Inclusion: sessions_count > 0. Supporte la recherche par nom.
func Trending(ctx context.Context, requesterID string, f Filters, opts QueryOptions) ([]model.RankedRow, int, error) {
	query := `
		SELECT
			e.user_id, e.sessions_count, e.avg_speed, e.avg_force, e.punches_count,
			e.max_speed, e.max_force, e.total_time_trained,
			COALESCE(w.week_count, 0) as week_count,
			u.first_name, u.last_name, COALESCE(u.photo, '') as photo,
			u.country_id, u.state_id, COALESCE(u.city, '') as city,
			COALESCE(u.skill_level, '') as skill_level, COALESCE(u.weight, 0) as weight
		FROM leaderboard_entries e
		INNER JOIN users u ON u.id = e.user_id AND u.deleted_at IS NULL` +
		weekCountJoin + `
		WHERE e.sessions_count > 0
	`

	where, args, argIndex := f.Conditions(1, requesterID)
	query += where

	if f.Search != "" {
		searchWhere, searchArgs, _ := SearchConditions(f.Search, argIndex)
		query += searchWhere
		args = append(args, searchArgs...)
	}

	query += ` ORDER BY COALESCE(w.week_count, 0) DESC, e.sessions_count DESC, e.user_id`

	rows, err := database.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("could not query trending leaderboard: %w", err)
	}
	defer rows.Close()

	var all []model.RankedRow
	for rows.Next() {
		var r model.RankedRow
		if err := rows.Scan(
			&r.UserID, &r.SessionsCount, &r.AvgSpeed, &r.AvgForce, &r.PunchesCount,
			&r.MaxSpeed, &r.MaxForce, &r.TotalTimeTrained,
			&r.WeekSessionsCount,
			&r.User.FirstName, &r.User.LastName, &r.User.Photo,
			&r.User.CountryID, &r.User.StateID, &r.User.City,
			&r.User.SkillLevel, &r.User.Weight,
		); err != nil {
			return nil, 0, fmt.Errorf("could not scan trending row: %w", err)
		}
		r.User.ID = r.UserID
		all = append(all, r)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return pageAndRank(all, requesterID, opts)
}

// Game retourne le classement d'un jeu. Sens du tri selon le jeu:
// temps de réaction ascendant (plus petit gagne) avec distance décroissante en
// secondaire, descendant pour les autres jeux.
func Game(ctx context.Context, requesterID string, gameID int) ([]model.GameRankedRow, error) {
	order := "g.score DESC, g.distance DESC"
	if gameID == GameReactionTime {
		order = "g.score ASC, g.distance DESC"
	}

	query := `
		SELECT
			g.user_id, g.score, g.distance,
			u.first_name, u.last_name, COALESCE(u.photo, '') as photo,
			u.country_id, u.state_id, COALESCE(u.city, '') as city,
			COALESCE(u.skill_level, '') as skill_level, COALESCE(u.weight, 0) as weight
		FROM game_leaderboard_entries g
		INNER JOIN users u ON u.id = g.user_id AND u.deleted_at IS NULL
		WHERE g.game_id = $1
		AND (u.public_profile = true OR u.id = $2)
		ORDER BY ` + order

	rows, err := database.DB.Query(ctx, query, gameID, requesterID)
	if err != nil {
		return nil, fmt.Errorf("could not query game leaderboard: %w", err)
	}
	defer rows.Close()

	var ranked []model.GameRankedRow
	rank := 0
	for rows.Next() {
		var r model.GameRankedRow
		var score, distance float64
		if err := rows.Scan(
			&r.User.ID, &score, &distance,
			&r.User.FirstName, &r.User.LastName, &r.User.Photo,
			&r.User.CountryID, &r.User.StateID, &r.User.City,
			&r.User.SkillLevel, &r.User.Weight,
		); err != nil {
			return nil, fmt.Errorf("could not scan game row: %w", err)
		}
		rank++
		r.Rank = rank
		r.Score = FormatScore(gameID, score)
		r.Distance = FormatDistance(distance)
		ranked = append(ranked, r)
	}
	return ranked, rows.Err()
}

// pageAndRank applique AssignRanks puis la pagination demandée
func pageAndRank(all []model.RankedRow, requesterID string, opts QueryOptions) ([]model.RankedRow, int, error) {
	all, requesterRank := AssignRanks(all, requesterID)

	if opts.Limit <= 0 {
		opts.Limit = defaultLimit
	}

	if opts.WindowAroundRequester {
		topN := opts.TopN
		if topN <= 0 {
			topN = opts.Limit
		}
		window := opts.Window
		if window <= 0 {
			window = 5
		}
		return WindowAroundRequester(all, requesterRank, topN, window), requesterRank, nil
	}

	page := Paginate(all, opts.Start, opts.Limit)
	page = MoveToFront(page, requesterID)
	return page, requesterRank, nil
}

// FormatScore formate un score selon le jeu: temps de réaction à 3 décimales,
// entier pour les autres jeux
func FormatScore(gameID int, score float64) string {
	if gameID == GameReactionTime {
		return fmt.Sprintf("%.3f", score)
	}
	return fmt.Sprintf("%d", int64(score))
}

// FormatDistance formate une distance à 1 décimale
func FormatDistance(distance float64) string {
	return fmt.Sprintf("%.1f", distance)
}
