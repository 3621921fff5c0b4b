package match

import (
	"context"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/taskmasters/connect4/internal/domain"
	"github.com/taskmasters/connect4/internal/service/persist"
	"github.com/taskmasters/connect4/pkg/uid"
)

const (
	ErrNotWon        domain.Error = "game has no winner"
	ErrMatchNotFound domain.Error = "match not found"
)

// Store persists match records. Implementations live in the repository packages.
type Store interface {
	SaveMatch(ctx context.Context, rec domain.MatchRecord) error
	RecentMatches(ctx context.Context, limit int) ([]domain.MatchRecord, error)
}

// Names maps each side to the display name used for the record and the leaderboard.
type Names struct {
	First  string `json:"first"`
	Second string `json:"second"`
}

func (n Names) For(p domain.Player) string {
	if p == domain.First {
		return n.First
	}
	return n.Second
}

// Recorder keeps the match history, most recent first.
type Recorder struct {
	mu      sync.RWMutex
	history []domain.MatchRecord
	limit   int // 0 keeps everything
	store   Store
	writer  *persist.Writer
}

// NewRecorder creates a recorder. store and writer may be nil for a purely in-memory history.
func NewRecorder(limit int, store Store, writer *persist.Writer) *Recorder {
	if limit < 0 {
		limit = 0
	}
	return &Recorder{limit: limit, store: store, writer: writer}
}

// Record builds the match record for a won game and puts it at the head of the history.
func (r *Recorder) Record(g *domain.Game, names Names, at time.Time) (domain.MatchRecord, error) {
	outcome := g.Outcome()
	if outcome.Status != domain.StatusWon {
		return domain.MatchRecord{}, ErrNotWon
	}

	winner := outcome.Winner
	rec := domain.MatchRecord{
		ID:         uid.GenerateMatchID(),
		Winner:     winner,
		Loser:      winner.Next(),
		WinnerName: names.For(winner),
		LoserName:  names.For(winner.Next()),
		PlayedAt:   at.UTC(),
		Moves:      g.Moves(),
		Dimensions: g.Dimensions(),
	}

	r.mu.Lock()
	r.history = append([]domain.MatchRecord{rec}, r.history...)
	r.evictLocked()
	r.mu.Unlock()

	log.WithFields(log.Fields{
		"match":  rec.ID,
		"winner": rec.WinnerName,
		"loser":  rec.LoserName,
		"moves":  len(rec.Moves),
	}).Info("[MATCH] Recorded match")

	r.save(rec)
	return cloneRecord(rec), nil
}

func (r *Recorder) save(rec domain.MatchRecord) {
	if r.store == nil || r.writer == nil {
		return
	}
	r.writer.Submit(persist.Job{
		Name: "save match " + rec.ID,
		Run: func(ctx context.Context) error {
			return r.store.SaveMatch(ctx, rec)
		},
	})
}

// Load replaces the in-memory history with records from the store, newest first.
// A load failure leaves the current history untouched.
func (r *Recorder) Load(ctx context.Context) error {
	if r.store == nil {
		return nil
	}
	records, err := r.store.RecentMatches(ctx, r.limit)
	if err != nil {
		return fmt.Errorf("failed to load match history: %w", err)
	}

	r.mu.Lock()
	r.history = append([]domain.MatchRecord(nil), records...)
	r.evictLocked()
	r.mu.Unlock()

	log.Infof("[MATCH] Loaded %d matches from store", len(records))
	return nil
}

func (r *Recorder) evictLocked() {
	if r.limit > 0 && len(r.history) > r.limit {
		r.history = r.history[:r.limit]
	}
}

// History returns a copy of the records, most recent first.
func (r *Recorder) History() []domain.MatchRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.MatchRecord, len(r.history))
	for i, rec := range r.history {
		out[i] = cloneRecord(rec)
	}
	return out
}

// cloneRecord copies the move list so callers cannot alter a stored record.
func cloneRecord(rec domain.MatchRecord) domain.MatchRecord {
	rec.Moves = append([]domain.Move(nil), rec.Moves...)
	return rec
}

func (r *Recorder) Get(id string) (domain.MatchRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rec := range r.history {
		if rec.ID == id {
			return cloneRecord(rec), nil
		}
	}
	return domain.MatchRecord{}, ErrMatchNotFound
}

func (r *Recorder) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.history)
}

// Clear empties the in-memory history. Persisted records are left to the retention worker.
func (r *Recorder) Clear() {
	r.mu.Lock()
	r.history = nil
	r.mu.Unlock()
}
