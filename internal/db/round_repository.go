package db

import (
	"context"
	"fmt"
	"time"
)

// RoundRecord is one finished arena round.
type RoundRecord struct {
	ID           int64
	WorldKey     string
	InstanceType string
	FinalState   string
	PlayerCount  int
	CreatedAt    time.Time
	EndedAt      time.Time
}

// RoundRepository persists round history.
type RoundRepository struct {
	db *DB
}

// NewRoundRepository creates a repository over the given DB handle.
func NewRoundRepository(db *DB) *RoundRepository {
	return &RoundRepository{db: db}
}

// Insert stores a finished round and fills in the record's ID.
func (r *RoundRepository) Insert(ctx context.Context, rec *RoundRecord) error {
	err := r.db.pool.QueryRow(ctx,
		`INSERT INTO rounds (world_key, instance_type, final_state, player_count, created_at, ended_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		rec.WorldKey, rec.InstanceType, rec.FinalState, rec.PlayerCount, rec.CreatedAt, rec.EndedAt,
	).Scan(&rec.ID)
	if err != nil {
		return fmt.Errorf("inserting round for %s: %w", rec.WorldKey, err)
	}
	return nil
}

// RecentByWorld returns the most recent rounds for a world key, newest
// first.
func (r *RoundRepository) RecentByWorld(ctx context.Context, worldKey string, limit int) ([]RoundRecord, error) {
	rows, err := r.db.pool.Query(ctx,
		`SELECT id, world_key, instance_type, final_state, player_count, created_at, ended_at
		 FROM rounds WHERE world_key = $1
		 ORDER BY ended_at DESC LIMIT $2`,
		worldKey, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying rounds for %s: %w", worldKey, err)
	}
	defer rows.Close()

	var out []RoundRecord
	for rows.Next() {
		var rec RoundRecord
		if err := rows.Scan(&rec.ID, &rec.WorldKey, &rec.InstanceType, &rec.FinalState,
			&rec.PlayerCount, &rec.CreatedAt, &rec.EndedAt); err != nil {
			return nil, fmt.Errorf("scanning round row: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading round rows: %w", err)
	}
	return out, nil
}
