package repository

import (
	"context"
	"fmt"

	"rollf/database"
	"rollf/domain/entities"
	"rollf/domain/interfaces"

	"github.com/jackc/pgx/v5"
)

// guildSettingsRepository implements interfaces.GuildSettingsRepository
type guildSettingsRepository struct {
	q Queryable
}

// NewGuildSettingsRepository creates a new guild settings repository
func NewGuildSettingsRepository(db *database.DB) interfaces.GuildSettingsRepository {
	return &guildSettingsRepository{q: db.Pool}
}

// newGuildSettingsRepositoryWithTx creates a new guild settings repository
// bound to a transaction
func newGuildSettingsRepositoryWithTx(tx Queryable) interfaces.GuildSettingsRepository {
	return &guildSettingsRepository{q: tx}
}

// GetOrCreateGuildSettings retrieves guild settings or creates default ones
// if not found
func (r *guildSettingsRepository) GetOrCreateGuildSettings(ctx context.Context, guildID int64) (*entities.GuildSettings, error) {
	query := `
		SELECT guild_id, roll_channel_id, onboarding_sent, created_at, updated_at
		FROM guild_settings
		WHERE guild_id = $1`

	var settings entities.GuildSettings
	err := r.q.QueryRow(ctx, query, guildID).Scan(
		&settings.GuildID,
		&settings.RollChannelID,
		&settings.OnboardingSent,
		&settings.CreatedAt,
		&settings.UpdatedAt,
	)
	if err == nil {
		return &settings, nil
	}
	if err != pgx.ErrNoRows {
		return nil, fmt.Errorf("failed to get guild settings for %d: %w", guildID, err)
	}

	insert := `
		INSERT INTO guild_settings (guild_id)
		VALUES ($1)
		ON CONFLICT (guild_id) DO UPDATE SET guild_id = EXCLUDED.guild_id
		RETURNING guild_id, roll_channel_id, onboarding_sent, created_at, updated_at`

	err = r.q.QueryRow(ctx, insert, guildID).Scan(
		&settings.GuildID,
		&settings.RollChannelID,
		&settings.OnboardingSent,
		&settings.CreatedAt,
		&settings.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create guild settings for %d: %w", guildID, err)
	}
	return &settings, nil
}

// SetRollChannel configures the guild's announcement channel, replacing any
// previous one
func (r *guildSettingsRepository) SetRollChannel(ctx context.Context, guildID, channelID int64) error {
	query := `
		INSERT INTO guild_settings (guild_id, roll_channel_id)
		VALUES ($1, $2)
		ON CONFLICT (guild_id)
		DO UPDATE SET roll_channel_id = EXCLUDED.roll_channel_id, updated_at = NOW()`

	if _, err := r.q.Exec(ctx, query, guildID, channelID); err != nil {
		return fmt.Errorf("failed to set roll channel for guild %d: %w", guildID, err)
	}
	return nil
}

// MarkOnboardingSent records the one-shot welcome as delivered
func (r *guildSettingsRepository) MarkOnboardingSent(ctx context.Context, guildID int64) error {
	query := `
		INSERT INTO guild_settings (guild_id, onboarding_sent)
		VALUES ($1, TRUE)
		ON CONFLICT (guild_id)
		DO UPDATE SET onboarding_sent = TRUE, updated_at = NOW()`

	if _, err := r.q.Exec(ctx, query, guildID); err != nil {
		return fmt.Errorf("failed to mark onboarding sent for guild %d: %w", guildID, err)
	}
	return nil
}

// ListRollChannels returns every guild with a configured channel
func (r *guildSettingsRepository) ListRollChannels(ctx context.Context) ([]*entities.RollChannel, error) {
	query := `
		SELECT guild_id, roll_channel_id
		FROM guild_settings
		WHERE roll_channel_id IS NOT NULL
		ORDER BY guild_id`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query roll channels: %w", err)
	}
	defer rows.Close()

	var channels []*entities.RollChannel
	for rows.Next() {
		var ch entities.RollChannel
		if err := rows.Scan(&ch.GuildID, &ch.ChannelID); err != nil {
			return nil, fmt.Errorf("failed to scan roll channel: %w", err)
		}
		channels = append(channels, &ch)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate roll channels: %w", err)
	}
	return channels, nil
}
