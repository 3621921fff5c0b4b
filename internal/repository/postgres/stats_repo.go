package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/taskmasters/connect4/internal/domain"
)

type StatsRepo struct {
	DB *sql.DB
}

func NewStatsRepo(db *sql.DB) *StatsRepo {
	return &StatsRepo{DB: db}
}

func (r *StatsRepo) LoadPlayerStats(ctx context.Context) ([]domain.PlayerStats, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT name, wins, total_games FROM player_stats ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query player stats: %w", err)
	}
	defer rows.Close()

	var out []domain.PlayerStats
	for rows.Next() {
		var s domain.PlayerStats
		if err := rows.Scan(&s.Name, &s.Wins, &s.TotalGames); err != nil {
			return nil, fmt.Errorf("failed to scan player stats: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// UpsertPlayerStats writes the absolute counters for name.
func (r *StatsRepo) UpsertPlayerStats(ctx context.Context, name string, wins, totalGames int) error {
	query := `
	INSERT INTO player_stats (name, wins, total_games, updated_at)
	VALUES ($1, $2, $3, NOW())
	ON CONFLICT (name) DO UPDATE SET
		wins = EXCLUDED.wins,
		total_games = EXCLUDED.total_games,
		updated_at = NOW();
	`
	if _, err := r.DB.ExecContext(ctx, query, name, wins, totalGames); err != nil {
		return fmt.Errorf("failed to upsert stats for %s: %w", name, err)
	}
	return nil
}

func (r *StatsRepo) DeleteAllPlayerStats(ctx context.Context) error {
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM player_stats`); err != nil {
		return fmt.Errorf("failed to delete player stats: %w", err)
	}
	return nil
}
