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

// userDoc is the stored shape of a user. The password hash is excluded
// from domain.User's JSON so it can never leak through an API response;
// the document row still has to carry it.
type userDoc struct {
	domain.User
	PasswordHash string `json:"passwordHash"`
}

// UserStore persists user documents as JSONB rows with the email
// extracted for the unique login lookup.
type UserStore struct {
	pool *pgxpool.Pool
}

func NewUserStore(pool *pgxpool.Pool) *UserStore {
	return &UserStore{pool: pool}
}

func (s *UserStore) FindByID(ctx context.Context, id string) (domain.User, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx, `SELECT data FROM users WHERE id=$1`, id).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("load user: %w", err)
	}
	return unmarshalUser(raw)
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx, `SELECT data FROM users WHERE email=$1`, email).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("load user by email: %w", err)
	}
	return unmarshalUser(raw)
}

func (s *UserStore) Create(ctx context.Context, user domain.User) error {
	data, err := marshalUser(user)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO users (id, email, data) VALUES ($1, $2, $3)`,
		user.ID, user.Email, data)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailTaken
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *UserStore) Save(ctx context.Context, user domain.User) error {
	data, err := marshalUser(user)
	if err != nil {
		return err
	}
	tag, err := s.pool.Exec(ctx,
		`UPDATE users SET email=$2, data=$3 WHERE id=$1`,
		user.ID, user.Email, data)
	if err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func marshalUser(user domain.User) ([]byte, error) {
	data, err := json.Marshal(userDoc{User: user, PasswordHash: user.PasswordHash})
	if err != nil {
		return nil, fmt.Errorf("marshal user: %w", err)
	}
	return data, nil
}

func unmarshalUser(raw []byte) (domain.User, error) {
	var doc userDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return domain.User{}, fmt.Errorf("unmarshal user: %w", err)
	}
	user := doc.User
	user.PasswordHash = doc.PasswordHash
	return user, nil
}

// isUniqueViolation matches Postgres error code 23505.
func isUniqueViolation(err error) bool {
	var pgErr interface{ SQLState() string }
	if errors.As(err, &pgErr) {
		return pgErr.SQLState() == "23505"
	}
	return false
}
