package redis

import (
	"context"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	"github.com/taskmasters/connect4/internal/domain"
)

const (
	playersKey      = "connect4:players"
	statsKeyPrefix  = "connect4:stats:"
	fieldWins       = "wins"
	fieldTotalGames = "total_games"
)

// StatsStore keeps one hash per player plus a set of known player names.
type StatsStore struct {
	client *redis.Client
}

func NewStatsStore(client *redis.Client) *StatsStore {
	return &StatsStore{client: client}
}

func statsKey(name string) string {
	return statsKeyPrefix + name
}

func (s *StatsStore) LoadPlayerStats(ctx context.Context) ([]domain.PlayerStats, error) {
	names, err := s.client.SMembers(ctx, playersKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	sort.Strings(names)

	pipe := s.client.Pipeline()
	cmds := make([]*redis.MapStringStringCmd, len(names))
	for i, name := range names {
		cmds[i] = pipe.HGetAll(ctx, statsKey(name))
	}
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to read player stats: %w", err)
	}

	out := make([]domain.PlayerStats, 0, len(names))
	for i, name := range names {
		var entry struct {
			Wins       int `redis:"wins"`
			TotalGames int `redis:"total_games"`
		}
		if err := cmds[i].Scan(&entry); err != nil {
			return nil, fmt.Errorf("failed to decode stats for %s: %w", name, err)
		}
		if entry.TotalGames == 0 {
			continue
		}
		out = append(out, domain.PlayerStats{Name: name, Wins: entry.Wins, TotalGames: entry.TotalGames})
	}
	return out, nil
}

func (s *StatsStore) UpsertPlayerStats(ctx context.Context, name string, wins, totalGames int) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, statsKey(name), fieldWins, wins, fieldTotalGames, totalGames)
		pipe.SAdd(ctx, playersKey, name)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to upsert stats for %s: %w", name, err)
	}
	return nil
}

func (s *StatsStore) DeleteAllPlayerStats(ctx context.Context) error {
	names, err := s.client.SMembers(ctx, playersKey).Result()
	if err != nil {
		return fmt.Errorf("failed to list players: %w", err)
	}

	keys := make([]string, 0, len(names)+1)
	for _, name := range names {
		keys = append(keys, statsKey(name))
	}
	keys = append(keys, playersKey)

	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete player stats: %w", err)
	}
	return nil
}
