package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/curator/pkg/domain"
)

// UserRepository handles user-related database operations
type UserRepository struct {
	db *sqlx.DB
}

// userSQL represents a user for SQL operations
type userSQL struct {
	ID        int64     `db:"id"`
	Email     string    `db:"email"`
	Name      string    `db:"name"`
	Active    bool      `db:"active"`
	CreatedAt time.Time `db:"created_at"`
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUser inserts a new user and sets its ID
func (r *UserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	rec := userSQL{Email: user.Email, Name: user.Name, Active: user.Active, CreatedAt: user.CreatedAt.UTC()}

	query := `
		INSERT INTO users (email, name, active, created_at)
		VALUES (:email, :name, :active, :created_at)
	`
	result, err := r.db.NamedExecContext(ctx, query, rec)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get insert id: %w", err)
	}
	user.ID = id
	return nil
}

// GetUser retrieves a user by ID, returns nil if not found
func (r *UserRepository) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	var rec userSQL
	err := r.db.GetContext(ctx, &rec, "SELECT id, email, name, active, created_at FROM users WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &domain.User{ID: rec.ID, Email: rec.Email, Name: rec.Name, Active: rec.Active, CreatedAt: rec.CreatedAt}, nil
}

// ActiveUsersByFrequency returns IDs of active users with the given delivery frequency
func (r *UserRepository) ActiveUsersByFrequency(ctx context.Context, freq domain.DeliveryFrequency) ([]int64, error) {
	query := `
		SELECT u.id FROM users u
		JOIN user_preferences p ON p.user_id = u.id
		WHERE u.active = 1 AND p.delivery_frequency = ?
		ORDER BY u.id
	`
	var ids []int64
	if err := r.db.SelectContext(ctx, &ids, query, string(freq)); err != nil {
		return nil, fmt.Errorf("get active users for %s: %w", freq, err)
	}
	return ids, nil
}
