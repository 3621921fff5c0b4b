package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/taskmasters/connect4/internal/domain"
)

type MatchRepo struct {
	DB *sql.DB
}

func NewMatchRepo(db *sql.DB) *MatchRepo {
	return &MatchRepo{DB: db}
}

// SaveMatch stores rec; saving the same match twice keeps a single row.
func (r *MatchRepo) SaveMatch(ctx context.Context, rec domain.MatchRecord) error {
	movesJSON, err := json.Marshal(rec.Moves)
	if err != nil {
		return fmt.Errorf("failed to marshal moves: %w", err)
	}

	query := `
	INSERT INTO match_record (match_id, winner, loser, winner_name, loser_name, columns, rows, moves, played_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	ON CONFLICT (match_id) DO NOTHING;
	`
	_, err = r.DB.ExecContext(ctx, query,
		rec.ID, int(rec.Winner), int(rec.Loser), rec.WinnerName, rec.LoserName,
		rec.Dimensions.Columns, rec.Dimensions.Rows, movesJSON, rec.PlayedAt)
	if err != nil {
		return fmt.Errorf("failed to insert match %s: %w", rec.ID, err)
	}
	return nil
}

// RecentMatches returns up to limit matches, newest first. limit <= 0 returns all.
func (r *MatchRepo) RecentMatches(ctx context.Context, limit int) ([]domain.MatchRecord, error) {
	query := `
	SELECT match_id, winner, loser, winner_name, loser_name, columns, rows, moves, played_at
	FROM match_record
	ORDER BY played_at DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	var out []domain.MatchRecord
	for rows.Next() {
		var (
			rec           domain.MatchRecord
			winner, loser int
			movesJSON     []byte
		)
		err := rows.Scan(&rec.ID, &winner, &loser, &rec.WinnerName, &rec.LoserName,
			&rec.Dimensions.Columns, &rec.Dimensions.Rows, &movesJSON, &rec.PlayedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		if err := json.Unmarshal(movesJSON, &rec.Moves); err != nil {
			return nil, fmt.Errorf("failed to unmarshal moves of match %s: %w", rec.ID, err)
		}
		rec.Winner = domain.Player(winner)
		rec.Loser = domain.Player(loser)
		rec.PlayedAt = rec.PlayedAt.UTC()
		out = append(out, rec)
	}
	return out, rows.Err()
}

// DeleteMatchesBefore removes matches played before cutoff and reports how many went.
func (r *MatchRepo) DeleteMatchesBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM match_record WHERE played_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete old matches: %w", err)
	}
	return res.RowsAffected()
}
