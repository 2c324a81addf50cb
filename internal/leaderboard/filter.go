package leaderboard

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Filters est le jeu de prédicats optionnels et conjonctifs (AND) appliqués
// avant classement. Les valeurs absentes ou malformées valent "pas de filtre",
// jamais une erreur de validation.
type Filters struct {
	CountryID *int
	StateID   *int // pertinent seulement combiné à CountryID
	AgeMin    *int
	AgeMax    *int
	WeightMin *float64
	WeightMax *float64
	Gender    string // "" = pas de filtre
	Search    string
}

// ParseFilters lit les filtres depuis la query string.
// Les bornes age/weight arrivent en "min-max" (ex: "21-30").
func ParseFilters(q url.Values) Filters {
	var f Filters

	if v, err := strconv.Atoi(q.Get("country_id")); err == nil {
		f.CountryID = &v
	}
	if v, err := strconv.Atoi(q.Get("state_id")); err == nil {
		f.StateID = &v
	}

	f.AgeMin, f.AgeMax = parseIntRange(q.Get("age"))
	f.WeightMin, f.WeightMax = parseFloatRange(q.Get("weight"))

	// Toute autre valeur que male/female est ignorée, pas rejetée
	gender := strings.ToLower(strings.TrimSpace(q.Get("gender")))
	if gender == "male" || gender == "female" {
		f.Gender = gender
	}

	f.Search = strings.TrimSpace(q.Get("search"))

	return f
}

// parseIntRange découpe "min-max" en bornes inclusives. Malformé = nil, nil.
func parseIntRange(s string) (*int, *int) {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return nil, nil
	}
	lo, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	hi, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err1 != nil || err2 != nil {
		return nil, nil
	}
	return &lo, &hi
}

func parseFloatRange(s string) (*float64, *float64) {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return nil, nil
	}
	lo, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	hi, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err1 != nil || err2 != nil {
		return nil, nil
	}
	return &lo, &hi
}

// Conditions compile les prédicats en fragments WHERE paramétrés ($n),
// jamais par concaténation de valeurs. Retourne le fragment (préfixé " AND "),
// les arguments, et le prochain index de placeholder.
//
// Le prédicat de confidentialité est toujours présent: profils publics, ou la
// propre ligne du requérant (un profil privé voit toujours son propre rang).
func (f Filters) Conditions(argIndex int, requesterID string) (string, []interface{}, int) {
	var sb strings.Builder
	var args []interface{}

	next := func() int {
		argIndex++
		return argIndex - 1
	}

	if f.CountryID != nil {
		fmt.Fprintf(&sb, " AND u.country_id = $%d", next())
		args = append(args, *f.CountryID)
	}
	if f.StateID != nil {
		fmt.Fprintf(&sb, " AND u.state_id = $%d", next())
		args = append(args, *f.StateID)
	}
	if f.AgeMin != nil && f.AgeMax != nil {
		// L'âge n'est pas stocké: dérivé de la date de naissance au moment
		// de la requête
		a := next()
		b := next()
		fmt.Fprintf(&sb, " AND u.birthdate IS NOT NULL AND date_part('year', age(u.birthdate)) BETWEEN $%d AND $%d", a, b)
		args = append(args, *f.AgeMin, *f.AgeMax)
	}
	if f.WeightMin != nil && f.WeightMax != nil {
		a := next()
		b := next()
		fmt.Fprintf(&sb, " AND u.weight BETWEEN $%d AND $%d", a, b)
		args = append(args, *f.WeightMin, *f.WeightMax)
	}
	if f.Gender != "" {
		fmt.Fprintf(&sb, " AND u.gender = $%d", next())
		args = append(args, f.Gender)
	}

	fmt.Fprintf(&sb, " AND (u.public_profile = true OR u.id = $%d)", next())
	args = append(args, requesterID)

	return sb.String(), args, argIndex
}

// SearchConditions compile la recherche plein-texte du trending: tokens séparés
// par espaces, chacun matché en sous-chaîne (ILIKE) sur prénom OU nom, tokens
// combinés en OR.
func SearchConditions(search string, argIndex int) (string, []interface{}, int) {
	tokens := strings.Fields(search)
	if len(tokens) == 0 {
		return "", nil, argIndex
	}

	var parts []string
	var args []interface{}
	for _, tok := range tokens {
		parts = append(parts, fmt.Sprintf("(u.first_name ILIKE $%d OR u.last_name ILIKE $%d)", argIndex, argIndex+1))
		pattern := "%" + tok + "%"
		args = append(args, pattern, pattern)
		argIndex += 2
	}

	return " AND (" + strings.Join(parts, " OR ") + ")", args, argIndex
}
