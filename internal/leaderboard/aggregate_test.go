package leaderboard

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/EdsonAvelino/StrikeTec-backend/internal/apperr"
	model "github.com/EdsonAvelino/StrikeTec-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore est une implémentation en mémoire de Store pour les tests
type memStore struct {
	mu          sync.Mutex
	entries     map[string]*model.LeaderboardEntry
	gameEntries map[string]*model.GameLeaderboardEntry
	sessions    map[string]model.TrainingSession
}

func newMemStore() *memStore {
	return &memStore{
		entries:     make(map[string]*model.LeaderboardEntry),
		gameEntries: make(map[string]*model.GameLeaderboardEntry),
		sessions:    make(map[string]model.TrainingSession),
	}
}

func (m *memStore) addSession(s model.TrainingSession) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
}

func (m *memStore) Entry(_ context.Context, userID string) (*model.LeaderboardEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[userID]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (m *memStore) SaveEntry(_ context.Context, e *model.LeaderboardEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *e
	m.entries[e.UserID] = &cp
	return nil
}

func (m *memStore) RoundMaxima(_ context.Context, userID string) ([]float64, []float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var speeds, forces []float64
	for _, s := range m.sessions {
		if s.UserID != userID {
			continue
		}
		if len(s.Rounds) == 0 {
			speeds = append(speeds, s.MaxSpeed)
			forces = append(forces, s.MaxForce)
			continue
		}
		for _, r := range s.Rounds {
			speeds = append(speeds, r.MaxSpeed)
			forces = append(forces, r.MaxForce)
		}
	}
	return speeds, forces, nil
}

func (m *memStore) TrainedMillis(_ context.Context, userID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var total int64
	for _, s := range m.sessions {
		if s.UserID == userID {
			total += s.EndTime - s.StartTime
		}
	}
	return total, nil
}

func (m *memStore) MissingSessions(_ context.Context, ids []string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var missing []string
	for _, id := range ids {
		if _, ok := m.sessions[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

func (m *memStore) GameEntry(_ context.Context, userID string, gameID int) (*model.GameLeaderboardEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.gameEntries[fmt.Sprintf("%s:%d", userID, gameID)]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (m *memStore) SaveGameEntry(_ context.Context, e *model.GameLeaderboardEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *e
	m.gameEntries[fmt.Sprintf("%s:%d", e.UserID, e.GameID)] = &cp
	return nil
}

func newSession(id, userID string, avgSpeed, avgForce float64, punches int, startMillis, endMillis int64) model.TrainingSession {
	return model.TrainingSession{
		ID:           id,
		UserID:       userID,
		Type:         model.SessionTypeQuickStart,
		StartTime:    startMillis,
		EndTime:      endMillis,
		AvgSpeed:     avgSpeed,
		AvgForce:     avgForce,
		PunchesCount: punches,
		MaxSpeed:     avgSpeed * 1.5,
		MaxForce:     avgForce * 1.5,
	}
}

func TestApplyNewSessionsWorkedScenario(t *testing.T) {
	store := newMemStore()
	u := NewUpdater(store)
	ctx := context.Background()

	// État préexistant: 10 sessions, moyenne 20, 100 coups
	require.NoError(t, store.SaveEntry(ctx, &model.LeaderboardEntry{
		UserID:        "user-a",
		SessionsCount: 10,
		AvgSpeed:      20,
		AvgForce:      20,
		PunchesCount:  100,
	}))

	s := newSession("s1", "user-a", 30, 30, 50, 0, 60_000)
	store.addSession(s)

	require.NoError(t, u.ApplyNewSessions(ctx, "user-a", []model.TrainingSession{s}))

	entry, err := store.Entry(ctx, "user-a")
	require.NoError(t, err)

	assert.Equal(t, 150, entry.PunchesCount)
	assert.Equal(t, 11, entry.SessionsCount)
	// (20*100 + 30*50) / 150 = 23.33
	assert.InDelta(t, 23.3333, entry.AvgSpeed, 0.001)
	assert.InDelta(t, 23.3333, entry.AvgForce, 0.001)
	assert.Equal(t, int64(60), entry.TotalTimeTrained)
}

func TestWeightedAverageBatchingInvariance(t *testing.T) {
	ctx := context.Background()

	sessions := []model.TrainingSession{
		newSession("s1", "u", 18.5, 210, 120, 0, 180_000),
		newSession("s2", "u", 22.1, 180, 45, 200_000, 380_000),
		newSession("s3", "u", 15.0, 260, 300, 400_000, 900_000),
		newSession("s4", "u", 27.3, 150, 8, 1_000_000, 1_060_000),
	}

	// Application une par une
	oneByOne := newMemStore()
	updOne := NewUpdater(oneByOne)
	for _, s := range sessions {
		oneByOne.addSession(s)
		require.NoError(t, updOne.ApplyNewSessions(ctx, "u", []model.TrainingSession{s}))
	}

	// Application en un seul lot
	batched := newMemStore()
	updBatch := NewUpdater(batched)
	for _, s := range sessions {
		batched.addSession(s)
	}
	require.NoError(t, updBatch.ApplyNewSessions(ctx, "u", sessions))

	a, err := oneByOne.Entry(ctx, "u")
	require.NoError(t, err)
	b, err := batched.Entry(ctx, "u")
	require.NoError(t, err)

	assert.Equal(t, a.PunchesCount, b.PunchesCount)
	assert.Equal(t, a.SessionsCount, b.SessionsCount)
	assert.InEpsilon(t, a.AvgSpeed, b.AvgSpeed, 1e-9)
	assert.InEpsilon(t, a.AvgForce, b.AvgForce, 1e-9)
	assert.Equal(t, a.TotalTimeTrained, b.TotalTimeTrained)
}

func TestApplyNewSessionsMonotonicity(t *testing.T) {
	store := newMemStore()
	u := NewUpdater(store)
	ctx := context.Background()

	prevPunches, prevSessions := 0, 0
	for i := 0; i < 5; i++ {
		s := newSession(fmt.Sprintf("s%d", i), "u", 20, 100, i*10+1, 0, 60_000)
		store.addSession(s)
		require.NoError(t, u.ApplyNewSessions(ctx, "u", []model.TrainingSession{s}))

		entry, err := store.Entry(ctx, "u")
		require.NoError(t, err)
		assert.GreaterOrEqual(t, entry.PunchesCount, prevPunches)
		assert.GreaterOrEqual(t, entry.SessionsCount, prevSessions)
		prevPunches = entry.PunchesCount
		prevSessions = entry.SessionsCount
	}
}

func TestApplyNewSessionsZeroPunchesGuard(t *testing.T) {
	store := newMemStore()
	u := NewUpdater(store)
	ctx := context.Background()

	s := newSession("s1", "u", 0, 0, 0, 0, 30_000)
	store.addSession(s)

	err := u.ApplyNewSessions(ctx, "u", []model.TrainingSession{s})
	require.ErrorIs(t, err, apperr.ErrInvalidAggregateState)

	// Rien ne doit avoir été persisté
	_, err = store.Entry(ctx, "u")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestApplyNewSessionsEmptyBatch(t *testing.T) {
	u := NewUpdater(newMemStore())
	err := u.ApplyNewSessions(context.Background(), "u", nil)
	assert.True(t, apperr.IsValidation(err))
}

func TestApplyNewSessionsMissingSession(t *testing.T) {
	store := newMemStore()
	u := NewUpdater(store)

	// Session référencée mais jamais persistée
	s := newSession("ghost", "u", 20, 100, 10, 0, 60_000)

	err := u.ApplyNewSessions(context.Background(), "u", []model.TrainingSession{s})
	require.ErrorIs(t, err, apperr.ErrSessionNotFound)
}

func TestMaxFullRederivationFromRounds(t *testing.T) {
	store := newMemStore()
	u := NewUpdater(store)
	ctx := context.Background()

	s1 := newSession("s1", "u", 20, 100, 50, 0, 60_000)
	s1.Rounds = []model.SessionRound{
		{Number: 1, MaxSpeed: 31.2, MaxForce: 410},
		{Number: 2, MaxSpeed: 28.0, MaxForce: 455},
	}
	store.addSession(s1)
	require.NoError(t, u.ApplyNewSessions(ctx, "u", []model.TrainingSession{s1}))

	entry, err := store.Entry(ctx, "u")
	require.NoError(t, err)
	assert.InDelta(t, 31.2, entry.MaxSpeed, 1e-9)
	assert.InDelta(t, 455, entry.MaxForce, 1e-9)

	// Une nouvelle session plus faible ne doit pas faire baisser les maxima
	s2 := newSession("s2", "u", 10, 50, 20, 100_000, 160_000)
	s2.Rounds = []model.SessionRound{{Number: 1, MaxSpeed: 12, MaxForce: 80}}
	store.addSession(s2)
	require.NoError(t, u.ApplyNewSessions(ctx, "u", []model.TrainingSession{s2}))

	entry, err = store.Entry(ctx, "u")
	require.NoError(t, err)
	assert.InDelta(t, 31.2, entry.MaxSpeed, 1e-9)
	assert.InDelta(t, 455, entry.MaxForce, 1e-9)
}

func TestApplyGameSessionReactionLowerIsBetter(t *testing.T) {
	store := newMemStore()
	u := NewUpdater(store)
	ctx := context.Background()

	require.NoError(t, u.ApplyGameSession(ctx, "u", GameReactionTime, 0.45, 2.0))

	// 0.40 est meilleur (plus petit): doit remplacer
	require.NoError(t, u.ApplyGameSession(ctx, "u", GameReactionTime, 0.40, 1.5))
	e, err := store.GameEntry(ctx, "u", GameReactionTime)
	require.NoError(t, err)
	assert.InDelta(t, 0.40, e.Score, 1e-9)
	assert.InDelta(t, 1.5, e.Distance, 1e-9)

	// 0.50 est moins bon: ne doit PAS remplacer
	require.NoError(t, u.ApplyGameSession(ctx, "u", GameReactionTime, 0.50, 3.0))
	e, err = store.GameEntry(ctx, "u", GameReactionTime)
	require.NoError(t, err)
	assert.InDelta(t, 0.40, e.Score, 1e-9)
}

func TestApplyGameSessionHigherIsBetter(t *testing.T) {
	store := newMemStore()
	u := NewUpdater(store)
	ctx := context.Background()

	require.NoError(t, u.ApplyGameSession(ctx, "u", 3, 120, 0))
	require.NoError(t, u.ApplyGameSession(ctx, "u", 3, 90, 0))

	e, err := store.GameEntry(ctx, "u", 3)
	require.NoError(t, err)
	assert.InDelta(t, 120, e.Score, 1e-9)

	require.NoError(t, u.ApplyGameSession(ctx, "u", 3, 150, 0))
	e, err = store.GameEntry(ctx, "u", 3)
	require.NoError(t, err)
	assert.InDelta(t, 150, e.Score, 1e-9)
}

func TestApplyNewSessionsConcurrentSameUser(t *testing.T) {
	store := newMemStore()
	u := NewUpdater(store)
	ctx := context.Background()

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		s := newSession(fmt.Sprintf("s%d", i), "u", 20, 100, 10, 0, 60_000)
		store.addSession(s)
		wg.Add(1)
		go func(s model.TrainingSession) {
			defer wg.Done()
			_ = u.ApplyNewSessions(ctx, "u", []model.TrainingSession{s})
		}(s)
	}
	wg.Wait()

	entry, err := store.Entry(ctx, "u")
	require.NoError(t, err)
	// Aucune mise à jour perdue malgré les écrivains concurrents
	assert.Equal(t, n*10, entry.PunchesCount)
	assert.Equal(t, n, entry.SessionsCount)
}

func TestWithStoreRedirectsWrites(t *testing.T) {
	base := newMemStore()
	scoped := newMemStore()
	u := NewUpdater(base)
	ctx := context.Background()

	sess := newSession("s1", "marc", 20, 200, 100, 0, 60_000)
	scoped.addSession(sess)

	// L'updater dérivé écrit dans le store fourni, pas dans celui d'origine
	err := u.WithStore(scoped).ApplyNewSessions(ctx, "marc", []model.TrainingSession{sess})
	require.NoError(t, err)

	entry, err := scoped.Entry(ctx, "marc")
	require.NoError(t, err)
	assert.Equal(t, 100, entry.PunchesCount)

	_, err = base.Entry(ctx, "marc")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
