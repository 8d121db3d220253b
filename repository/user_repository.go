package repository

import (
	"context"
	"fmt"

	"rollf/database"
	"rollf/domain/entities"
	"rollf/domain/interfaces"

	"github.com/jackc/pgx/v5"
)

// userRepository implements interfaces.UserRepository
type userRepository struct {
	q Queryable
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) interfaces.UserRepository {
	return &userRepository{q: db.Pool}
}

// newUserRepositoryWithTx creates a new user repository bound to a transaction
func newUserRepositoryWithTx(tx Queryable) interfaces.UserRepository {
	return &userRepository{q: tx}
}

// Upsert creates the profile on first sight and refreshes the username on
// every subsequent call
func (r *userRepository) Upsert(ctx context.Context, discordID int64, username string) (*entities.User, error) {
	query := `
		INSERT INTO users (discord_id, username)
		VALUES ($1, $2)
		ON CONFLICT (discord_id)
		DO UPDATE SET username = EXCLUDED.username, updated_at = NOW()
		RETURNING created_at, updated_at`

	user := &entities.User{
		DiscordID: discordID,
		Username:  username,
	}
	err := r.q.QueryRow(ctx, query, discordID, username).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user %d: %w", discordID, err)
	}
	return user, nil
}

// GetByDiscordID retrieves a user profile, nil when it does not exist
func (r *userRepository) GetByDiscordID(ctx context.Context, discordID int64) (*entities.User, error) {
	query := `
		SELECT discord_id, username, created_at, updated_at
		FROM users
		WHERE discord_id = $1`

	var user entities.User
	err := r.q.QueryRow(ctx, query, discordID).Scan(
		&user.DiscordID,
		&user.Username,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", discordID, err)
	}
	return &user, nil
}
