package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/taskmasters/connect4/internal/domain"
)

// Store keeps player statistics and matches in process memory.
// It backs the service when no database is configured.
type Store struct {
	mu      sync.RWMutex
	stats   map[string]domain.PlayerStats
	matches []domain.MatchRecord
}

func NewStore() *Store {
	return &Store{stats: make(map[string]domain.PlayerStats)}
}

func (s *Store) LoadPlayerStats(ctx context.Context) ([]domain.PlayerStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.PlayerStats, 0, len(s.stats))
	for _, e := range s.stats {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) UpsertPlayerStats(ctx context.Context, name string, wins, totalGames int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stats[name] = domain.PlayerStats{Name: name, Wins: wins, TotalGames: totalGames}
	return nil
}

func (s *Store) DeleteAllPlayerStats(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stats = make(map[string]domain.PlayerStats)
	return nil
}

func (s *Store) SaveMatch(ctx context.Context, rec domain.MatchRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.matches {
		if s.matches[i].ID == rec.ID {
			s.matches[i] = rec
			return nil
		}
	}
	s.matches = append(s.matches, rec)
	return nil
}

// RecentMatches returns up to limit matches, newest first. limit <= 0 returns all.
func (s *Store) RecentMatches(ctx context.Context, limit int) ([]domain.MatchRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.MatchRecord, len(s.matches))
	copy(out, s.matches)
	sort.SliceStable(out, func(i, j int) bool { return out[i].PlayedAt.After(out[j].PlayedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Store) DeleteMatchesBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.matches[:0]
	var removed int64
	for _, m := range s.matches {
		if m.PlayedAt.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, m)
	}
	s.matches = kept
	return removed, nil
}
