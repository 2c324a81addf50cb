package leaderboard

import "sync"

// userLocks sérialise les read-modify-write d'agrégats par utilisateur.
// Sans ce verrou, deux uploads concurrents du même utilisateur (requêtes
// rejouées par le mobile) perdraient des mises à jour.
type userLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newUserLocks() *userLocks {
	return &userLocks{locks: make(map[string]*sync.Mutex)}
}

// Lock verrouille l'utilisateur et retourne la fonction de déverrouillage
func (l *userLocks) Lock(userID string) func() {
	l.mu.Lock()
	m, ok := l.locks[userID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[userID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
