package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/hyeon/vocaflash/internal/db"
	"github.com/hyeon/vocaflash/internal/logger"
	"github.com/hyeon/vocaflash/internal/models"
)

// UserRepository handles account rows. Creating a user also seeds the
// default progress row in the same transaction; registration is the only
// place progress is ever auto-created.
type UserRepository struct {
	db *db.DB
}

func NewUserRepository(database *db.DB) *UserRepository {
	return &UserRepository{db: database}
}

func (r *UserRepository) Create(ctx context.Context, username, passwordHash string, email *string) (*models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	id := uuid.NewString()
	log.Debug("creating user: username=%s", username)

	err := db.Tx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO users (id, username, email, password_hash)
VALUES (?, ?, ?, ?)
`, id, username, email, passwordHash); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `INSERT INTO user_progress (user_id) VALUES (?)`, id)
		return err
	})
	if err != nil {
		log.Error("failed to create user: %v", err)
		return nil, err
	}
	return r.ByID(ctx, id)
}

func (r *UserRepository) ByID(ctx context.Context, id string) (*models.User, error) {
	return r.one(ctx, `SELECT id, username, email, password_hash, created_at FROM users WHERE id = ?`, id)
}

func (r *UserRepository) ByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.one(ctx, `SELECT id, username, email, password_hash, created_at FROM users WHERE username = ?`, username)
}

func (r *UserRepository) ByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.one(ctx, `SELECT id, username, email, password_hash, created_at FROM users WHERE email = ?`, email)
}

func (r *UserRepository) one(ctx context.Context, query string, arg any) (*models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")

	var u models.User
	var email sql.NullString
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&u.ID, &u.Username, &email, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get user: %v", err)
		return nil, err
	}
	if email.Valid {
		u.Email = &email.String
	}
	return &u, nil
}
