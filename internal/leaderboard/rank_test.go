package leaderboard

import (
	"testing"

	model "github.com/EdsonAvelino/StrikeTec-backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func rowsFor(ids ...string) []model.RankedRow {
	rows := make([]model.RankedRow, len(ids))
	for i, id := range ids {
		rows[i].User.ID = id
		rows[i].UserID = id
	}
	return rows
}

func TestAssignRanksSequentialDense(t *testing.T) {
	rows, rank := AssignRanks(rowsFor("a", "b", "c", "d"), "c")

	for i, r := range rows {
		if r.Rank != i+1 {
			t.Errorf("expected rank %d at position %d, got %d", i+1, i, r.Rank)
		}
	}
	if rank != 3 {
		t.Errorf("expected requester rank 3, got %d", rank)
	}
}

func TestAssignRanksTiesKeepInputOrder(t *testing.T) {
	// Deux entrées à égalité de score: celle qui arrive en premier garde le
	// rang le plus bas, pas d'égalité de rang
	rows := rowsFor("first", "second")
	rows[0].PunchesCount = 100
	rows[1].PunchesCount = 100

	ranked, _ := AssignRanks(rows, "")
	assert.Equal(t, 1, ranked[0].Rank)
	assert.Equal(t, 2, ranked[1].Rank)
	assert.Equal(t, "first", ranked[0].User.ID)
}

func TestAssignRanksDeterministic(t *testing.T) {
	a, rankA := AssignRanks(rowsFor("x", "y", "z"), "y")
	b, rankB := AssignRanks(rowsFor("x", "y", "z"), "y")

	assert.Equal(t, a, b)
	assert.Equal(t, rankA, rankB)
}

func TestAssignRanksRequesterAbsent(t *testing.T) {
	_, rank := AssignRanks(rowsFor("a", "b"), "nobody")
	assert.Equal(t, 0, rank)
}

func TestMoveToFrontStable(t *testing.T) {
	rows, _ := AssignRanks(rowsFor("a", "b", "c", "d", "e"), "")

	moved := MoveToFront(rows, "d")

	got := make([]string, len(moved))
	for i, r := range moved {
		got[i] = r.User.ID
	}
	// d en tête, ordre relatif des autres préservé
	assert.Equal(t, []string{"d", "a", "b", "c", "e"}, got)
	// le rang d'origine voyage avec la ligne
	assert.Equal(t, 4, moved[0].Rank)
}

func TestMoveToFrontAbsentNoChange(t *testing.T) {
	rows := rowsFor("a", "b", "c")
	moved := MoveToFront(rows, "zz")

	got := make([]string, len(moved))
	for i, r := range moved {
		got[i] = r.User.ID
	}
	assert.Equal(t, []string{"a", "b", "c"}, got)
}

func TestPaginateBounds(t *testing.T) {
	rows := rowsFor("a", "b", "c", "d", "e")

	assert.Len(t, Paginate(rows, 0, 2), 2)
	assert.Len(t, Paginate(rows, 3, 10), 2)
	assert.Empty(t, Paginate(rows, 10, 5))
	assert.Len(t, Paginate(rows, -1, 3), 3)
}

func TestWindowAroundRequesterMergesAndDedupes(t *testing.T) {
	rows, rank := AssignRanks(rowsFor("a", "b", "c", "d", "e", "f", "g", "h", "i", "j"), "h")
	assert.Equal(t, 8, rank)

	merged := WindowAroundRequester(rows, rank, 3, 1)

	// top 3 (a,b,c) + fenêtre autour du rang 8 (g,h,i), requérant en tête
	got := make([]string, len(merged))
	for i, r := range merged {
		got[i] = r.User.ID
	}
	assert.Equal(t, []string{"h", "a", "b", "c", "g", "i"}, got)
}

func TestWindowAroundRequesterInsideTopN(t *testing.T) {
	rows, rank := AssignRanks(rowsFor("a", "b", "c", "d"), "b")

	merged := WindowAroundRequester(rows, rank, 3, 1)
	// Le requérant est déjà dans le top-N: page simple
	assert.Len(t, merged, 3)
}
