package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"ai-learning-service/internal/domain"
)

// LevelStore persists level documents as JSONB rows, with the level
// number extracted into its own column for ordered listing and the
// by-number lookup the unlock step does.
type LevelStore struct {
	pool *pgxpool.Pool
}

func NewLevelStore(pool *pgxpool.Pool) *LevelStore {
	return &LevelStore{pool: pool}
}

func (s *LevelStore) FindByID(ctx context.Context, id string) (domain.Level, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx, `SELECT data FROM levels WHERE id=$1`, id).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Level{}, domain.ErrLevelNotFound
		}
		return domain.Level{}, fmt.Errorf("load level: %w", err)
	}
	return unmarshalLevel(raw)
}

func (s *LevelStore) FindByNumber(ctx context.Context, levelNumber int) (domain.Level, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx, `SELECT data FROM levels WHERE level_number=$1`, levelNumber).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Level{}, domain.ErrLevelNotFound
		}
		return domain.Level{}, fmt.Errorf("load level by number: %w", err)
	}
	return unmarshalLevel(raw)
}

func (s *LevelStore) ListOrdered(ctx context.Context) ([]domain.Level, error) {
	rows, err := s.pool.Query(ctx, `SELECT data FROM levels ORDER BY level_number ASC`)
	if err != nil {
		return nil, fmt.Errorf("list levels: %w", err)
	}
	defer rows.Close()

	var levels []domain.Level
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan level: %w", err)
		}
		level, err := unmarshalLevel(raw)
		if err != nil {
			return nil, err
		}
		levels = append(levels, level)
	}
	return levels, rows.Err()
}

func (s *LevelStore) Save(ctx context.Context, level domain.Level) error {
	data, err := json.Marshal(level)
	if err != nil {
		return fmt.Errorf("marshal level: %w", err)
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO levels (id, level_number, data) VALUES ($1, $2, $3)
		 ON CONFLICT (id) DO UPDATE SET level_number=EXCLUDED.level_number, data=EXCLUDED.data`,
		level.ID, level.LevelNumber, data)
	if err != nil {
		return fmt.Errorf("save level: %w", err)
	}
	return nil
}

// InsertMany bulk-seeds levels. Existing level numbers are left alone so
// reseeding never clobbers unlock state.
func (s *LevelStore) InsertMany(ctx context.Context, levels []domain.Level) error {
	for _, level := range levels {
		data, err := json.Marshal(level)
		if err != nil {
			return fmt.Errorf("marshal level %d: %w", level.LevelNumber, err)
		}
		_, err = s.pool.Exec(ctx,
			`INSERT INTO levels (id, level_number, data) VALUES ($1, $2, $3)
			 ON CONFLICT (level_number) DO NOTHING`,
			level.ID, level.LevelNumber, data)
		if err != nil {
			return fmt.Errorf("insert level %d: %w", level.LevelNumber, err)
		}
	}
	return nil
}

func unmarshalLevel(raw []byte) (domain.Level, error) {
	var level domain.Level
	if err := json.Unmarshal(raw, &level); err != nil {
		return domain.Level{}, fmt.Errorf("unmarshal level: %w", err)
	}
	return level, nil
}
