package leaderboard

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFiltersRanges(t *testing.T) {
	q := url.Values{}
	q.Set("country_id", "33")
	q.Set("state_id", "7")
	q.Set("age", "21-30")
	q.Set("weight", "60.5-75")

	f := ParseFilters(q)

	require.NotNil(t, f.CountryID)
	assert.Equal(t, 33, *f.CountryID)
	require.NotNil(t, f.StateID)
	assert.Equal(t, 7, *f.StateID)
	require.NotNil(t, f.AgeMin)
	assert.Equal(t, 21, *f.AgeMin)
	assert.Equal(t, 30, *f.AgeMax)
	require.NotNil(t, f.WeightMin)
	assert.InDelta(t, 60.5, *f.WeightMin, 1e-9)
	assert.InDelta(t, 75, *f.WeightMax, 1e-9)
}

func TestParseFiltersMalformedMeansNoFilter(t *testing.T) {
	q := url.Values{}
	q.Set("age", "abc")
	q.Set("weight", "60")
	q.Set("country_id", "x")

	f := ParseFilters(q)

	assert.Nil(t, f.AgeMin)
	assert.Nil(t, f.AgeMax)
	assert.Nil(t, f.WeightMin)
	assert.Nil(t, f.CountryID)
}

func TestParseFiltersGenderRestricted(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want string
	}{
		{"male", "male"},
		{"female", "female"},
		{"FEMALE", "female"},
		{"unknown", ""}, // valeur hors {male, female}: filtre ignoré
		{"", ""},
	} {
		q := url.Values{}
		q.Set("gender", tc.in)
		f := ParseFilters(q)
		if f.Gender != tc.want {
			t.Errorf("gender %q: expected %q, got %q", tc.in, tc.want, f.Gender)
		}
	}
}

func TestConditionsAlwaysIncludePrivacyPredicate(t *testing.T) {
	where, args, _ := Filters{}.Conditions(1, "me")

	// Un profil privé reste visible pour lui-même
	assert.Contains(t, where, "u.public_profile = true OR u.id = $1")
	require.Len(t, args, 1)
	assert.Equal(t, "me", args[0])
}

func TestConditionsConjunctive(t *testing.T) {
	c, st := 33, 7
	lo, hi := 21, 30
	f := Filters{CountryID: &c, StateID: &st, AgeMin: &lo, AgeMax: &hi, Gender: "female"}

	where, args, next := f.Conditions(1, "me")

	assert.Contains(t, where, "u.country_id = $1")
	assert.Contains(t, where, "u.state_id = $2")
	assert.Contains(t, where, "date_part('year', age(u.birthdate)) BETWEEN $3 AND $4")
	assert.Contains(t, where, "u.gender = $5")
	assert.Contains(t, where, "u.id = $6")
	assert.Equal(t, []interface{}{33, 7, 21, 30, "female", "me"}, args)
	assert.Equal(t, 7, next)

	// Tous les prédicats sont conjonctifs, aucun OR entre filtres
	assert.False(t, strings.Contains(where, ") OR (u.country_id"))
}

func TestSearchConditionsTokens(t *testing.T) {
	where, args, next := SearchConditions("  mike  tyson ", 4)

	assert.Contains(t, where, "u.first_name ILIKE $4 OR u.last_name ILIKE $5")
	assert.Contains(t, where, "u.first_name ILIKE $6 OR u.last_name ILIKE $7")
	// Tokens combinés en OR entre eux
	assert.Contains(t, where, ") OR (u.first_name")
	assert.Equal(t, []interface{}{"%mike%", "%mike%", "%tyson%", "%tyson%"}, args)
	assert.Equal(t, 8, next)
}

func TestSearchConditionsEmpty(t *testing.T) {
	where, args, next := SearchConditions("   ", 4)
	assert.Empty(t, where)
	assert.Empty(t, args)
	assert.Equal(t, 4, next)
}

func TestFormatScore(t *testing.T) {
	assert.Equal(t, "0.400", FormatScore(GameReactionTime, 0.4))
	assert.Equal(t, "142", FormatScore(2, 142.7))
	assert.Equal(t, "3.5", FormatDistance(3.52))
}

func TestWeekCountIgnoresArchivedSessions(t *testing.T) {
	// Le sous-compte hebdomadaire du trending doit porter les mêmes exclusions
	// que les listings de sessions
	assert.True(t, strings.Contains(weekCountJoin, "archived = false"))
	assert.True(t, strings.Contains(weekCountJoin, "date_trunc('week', NOW())"))
}
