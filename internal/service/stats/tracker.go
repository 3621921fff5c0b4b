package stats

import (
	"context"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/taskmasters/connect4/internal/domain"
	"github.com/taskmasters/connect4/internal/service/persist"
)

// Store is the persistence collaborator for player statistics, keyed by player name.
// Win rate is derived and never stored.
type Store interface {
	LoadPlayerStats(ctx context.Context) ([]domain.PlayerStats, error)
	UpsertPlayerStats(ctx context.Context, name string, wins, totalGames int) error
	DeleteAllPlayerStats(ctx context.Context) error
}

// Tracker aggregates won games into the leaderboard. The in-memory copy is the
// source of truth for the session; store writes are fire-and-forget.
type Tracker struct {
	mu          sync.RWMutex
	leaderboard []domain.PlayerStats
	draws       int
	store       Store
	writer      *persist.Writer
}

// NewTracker creates a tracker. store and writer may be nil.
func NewTracker(store Store, writer *persist.Writer) *Tracker {
	return &Tracker{store: store, writer: writer}
}

// Load replaces the leaderboard with the persisted statistics.
func (t *Tracker) Load(ctx context.Context) error {
	if t.store == nil {
		return nil
	}
	entries, err := t.store.LoadPlayerStats(ctx)
	if err != nil {
		return fmt.Errorf("failed to load player stats: %w", err)
	}

	merged := make([]domain.PlayerStats, 0, len(entries))
	seen := make(map[string]int, len(entries))
	for _, e := range entries {
		if e.Name == "" {
			continue
		}
		if i, ok := seen[e.Name]; ok {
			merged[i].Wins += e.Wins
			merged[i].TotalGames += e.TotalGames
			continue
		}
		seen[e.Name] = len(merged)
		merged = append(merged, e)
	}
	domain.SortLeaderboard(merged)

	t.mu.Lock()
	t.leaderboard = merged
	t.mu.Unlock()

	log.Infof("[STATS] Loaded %d players from store", len(merged))
	return nil
}

// RecordResult credits a win to winner and a game to both players.
func (t *Tracker) RecordResult(winner, loser string) {
	t.mu.Lock()
	w := t.bumpLocked(winner, true)
	l := t.bumpLocked(loser, false)
	domain.SortLeaderboard(t.leaderboard)
	t.mu.Unlock()

	log.WithFields(log.Fields{
		"winner": winner,
		"loser":  loser,
	}).Debug("[STATS] Recorded result")

	t.upsert(w)
	t.upsert(l)
}

func (t *Tracker) bumpLocked(name string, won bool) domain.PlayerStats {
	for i := range t.leaderboard {
		if t.leaderboard[i].Name == name {
			t.leaderboard[i].TotalGames++
			if won {
				t.leaderboard[i].Wins++
			}
			return t.leaderboard[i]
		}
	}

	entry := domain.PlayerStats{Name: name, TotalGames: 1}
	if won {
		entry.Wins = 1
	}
	t.leaderboard = append(t.leaderboard, entry)
	return entry
}

func (t *Tracker) upsert(s domain.PlayerStats) {
	if t.store == nil || t.writer == nil {
		return
	}
	t.writer.Submit(persist.Job{
		Name: "upsert stats " + s.Name,
		Run: func(ctx context.Context) error {
			return t.store.UpsertPlayerStats(ctx, s.Name, s.Wins, s.TotalGames)
		},
	})
}

// RecordDraw counts a drawn game. Draws do not touch the leaderboard.
func (t *Tracker) RecordDraw() {
	t.mu.Lock()
	t.draws++
	t.mu.Unlock()
}

func (t *Tracker) Draws() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.draws
}

// Leaderboard returns a copy ordered by win rate, highest first.
func (t *Tracker) Leaderboard() []domain.PlayerStats {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]domain.PlayerStats, len(t.leaderboard))
	copy(out, t.leaderboard)
	return out
}

func (t *Tracker) Player(name string) (domain.PlayerStats, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, s := range t.leaderboard {
		if s.Name == name {
			return s, true
		}
	}
	return domain.PlayerStats{}, false
}

// Reset clears the leaderboard and the draw counter and asks the store to forget everything.
func (t *Tracker) Reset() {
	t.mu.Lock()
	t.leaderboard = nil
	t.draws = 0
	t.mu.Unlock()

	log.Info("[STATS] Leaderboard cleared")

	if t.store == nil || t.writer == nil {
		return
	}
	t.writer.Submit(persist.Job{
		Name: "delete all stats",
		Run:  t.store.DeleteAllPlayerStats,
	})
}
