package repository

import (
	"context"
	"fmt"
	"time"

	"rollf/database"
	"rollf/domain/entities"
	"rollf/domain/interfaces"

	"github.com/jackc/pgx/v5"
)

// dateLayout is how calendar dates are sent to the DATE column. Dates travel
// as strings so the session timezone can never shift them.
const dateLayout = "2006-01-02"

// rollRepository implements interfaces.RollRepository
type rollRepository struct {
	q Queryable
}

// NewRollRepository creates a new roll repository
func NewRollRepository(db *database.DB) interfaces.RollRepository {
	return &rollRepository{q: db.Pool}
}

// newRollRepositoryWithTx creates a new roll repository bound to a transaction
func newRollRepositoryWithTx(tx Queryable) interfaces.RollRepository {
	return &rollRepository{q: tx}
}

// Create inserts a roll record. The one_roll_per_actor_per_day constraint
// turns a same-day duplicate into entities.ErrAlreadyRolledToday without a
// prior read, so concurrent attempts cannot both succeed.
func (r *rollRepository) Create(ctx context.Context, roll *entities.Roll) error {
	query := `
		INSERT INTO rolls (actor_id, username, value, actor_type, rolled_at, rolled_on)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT ON CONSTRAINT one_roll_per_actor_per_day DO NOTHING
		RETURNING id, created_at`

	err := r.q.QueryRow(ctx, query,
		roll.ActorID,
		roll.Username,
		roll.Value,
		string(roll.ActorType),
		roll.RolledAt,
		roll.RolledOn.Format(dateLayout),
	).Scan(&roll.ID, &roll.CreatedAt)

	if err == pgx.ErrNoRows {
		return entities.ErrAlreadyRolledToday
	}
	if err != nil {
		return fmt.Errorf("failed to create roll: %w", err)
	}
	return nil
}

// ExistsForDate reports whether the actor has a roll on the given calendar date
func (r *rollRepository) ExistsForDate(ctx context.Context, actorID int64, actorType entities.ActorType, date time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM rolls
			WHERE actor_id = $1 AND actor_type = $2 AND rolled_on = $3
		)`

	var exists bool
	err := r.q.QueryRow(ctx, query, actorID, string(actorType), date.Format(dateLayout)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check roll existence: %w", err)
	}
	return exists, nil
}

// aggExpr maps the aggregate kind onto its SQL expression
func aggExpr(kind interfaces.AggregateKind) string {
	if kind == interfaces.AggregateMax {
		return "MAX(r.value)::BIGINT"
	}
	return "SUM(r.value)::BIGINT"
}

// filterArgs renders the actor and window filters as SQL plus positional args
func filterArgs(filter interfaces.RollFilter) (string, []any) {
	types := make([]string, len(filter.ActorTypes))
	for i, t := range filter.ActorTypes {
		types[i] = string(t)
	}

	args := []any{types}
	clause := ""
	if filter.Window != nil {
		clause = fmt.Sprintf(" AND r.rolled_at >= $%d AND r.rolled_at < $%d", len(args)+1, len(args)+2)
		args = append(args, filter.Window.Start, filter.Window.End)
	}
	return clause, args
}

// Leaderboard returns the best `limit` actors by aggregated score, ordered
// descending. Usernames come from the profile when one exists (the bot has
// none) so renames show up on old boards.
func (r *rollRepository) Leaderboard(ctx context.Context, filter interfaces.RollFilter, kind interfaces.AggregateKind, limit int) ([]*entities.LeaderboardEntry, error) {
	windowClause, args := filterArgs(filter)
	args = append(args, limit)

	query := fmt.Sprintf(`
		SELECT r.actor_id,
		       COALESCE(u.username, MIN(r.username)) AS username,
		       %s AS score
		FROM rolls r
		LEFT JOIN users u ON u.discord_id = r.actor_id AND r.actor_type = 'user'
		WHERE r.actor_type = ANY($1)%s
		GROUP BY r.actor_id, u.username
		ORDER BY score DESC
		LIMIT $%d`, aggExpr(kind), windowClause, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []*entities.LeaderboardEntry
	for rows.Next() {
		var entry entities.LeaderboardEntry
		if err := rows.Scan(&entry.ActorID, &entry.Username, &entry.Score); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard entry: %w", err)
		}
		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leaderboard entries: %w", err)
	}
	return entries, nil
}

// ScoreRank computes the actor's competition rank over the full aggregate,
// not just a truncated top slice. RANK() gives tied scores the same rank and
// leaves the matching gap below them.
func (r *rollRepository) ScoreRank(ctx context.Context, actorID int64, filter interfaces.RollFilter, kind interfaces.AggregateKind) (*entities.RankedScore, error) {
	windowClause, args := filterArgs(filter)
	args = append(args, actorID)
	expr := aggExpr(kind)

	query := fmt.Sprintf(`
		SELECT rank, score FROM (
			SELECT r.actor_id,
			       %s AS score,
			       RANK() OVER (ORDER BY %s DESC) AS rank
			FROM rolls r
			WHERE r.actor_type = ANY($1)%s
			GROUP BY r.actor_id
		) ranked
		WHERE actor_id = $%d`, expr, expr, windowClause, len(args))

	var ranked entities.RankedScore
	var rank int64
	err := r.q.QueryRow(ctx, query, args...).Scan(&rank, &ranked.Score)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query score rank: %w", err)
	}
	ranked.Rank = int(rank)
	return &ranked, nil
}

// ParticipationStats counts distinct actors and total rolls within the filter
func (r *rollRepository) ParticipationStats(ctx context.Context, filter interfaces.RollFilter) (*entities.ParticipationStats, error) {
	windowClause, args := filterArgs(filter)

	query := fmt.Sprintf(`
		SELECT COUNT(DISTINCT r.actor_id), COUNT(*)
		FROM rolls r
		WHERE r.actor_type = ANY($1)%s`, windowClause)

	var stats entities.ParticipationStats
	err := r.q.QueryRow(ctx, query, args...).Scan(&stats.DistinctParticipants, &stats.TotalRolls)
	if err != nil {
		return nil, fmt.Errorf("failed to query participation stats: %w", err)
	}
	return &stats, nil
}

// DistinctRollDates returns the ascending distinct calendar dates of a
// participant's rolls
func (r *rollRepository) DistinctRollDates(ctx context.Context, actorID int64) ([]time.Time, error) {
	query := `
		SELECT rolled_on FROM rolls
		WHERE actor_id = $1 AND actor_type = 'user'
		ORDER BY rolled_on`

	rows, err := r.q.Query(ctx, query, actorID)
	if err != nil {
		return nil, fmt.Errorf("failed to query roll dates: %w", err)
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var date time.Time
		if err := rows.Scan(&date); err != nil {
			return nil, fmt.Errorf("failed to scan roll date: %w", err)
		}
		dates = append(dates, date)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate roll dates: %w", err)
	}
	return dates, nil
}

// AllActorRollDates returns every participant's distinct roll dates, dates
// ascending within each actor
func (r *rollRepository) AllActorRollDates(ctx context.Context) ([]*interfaces.ActorDates, error) {
	query := `
		SELECT r.actor_id,
		       COALESCE(u.username, r.username) AS username,
		       r.rolled_on
		FROM rolls r
		LEFT JOIN users u ON u.discord_id = r.actor_id
		WHERE r.actor_type = 'user'
		ORDER BY r.actor_id, r.rolled_on`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query actor roll dates: %w", err)
	}
	defer rows.Close()

	var actors []*interfaces.ActorDates
	var current *interfaces.ActorDates
	for rows.Next() {
		var actorID int64
		var username string
		var date time.Time
		if err := rows.Scan(&actorID, &username, &date); err != nil {
			return nil, fmt.Errorf("failed to scan actor roll date: %w", err)
		}
		if current == nil || current.ActorID != actorID {
			current = &interfaces.ActorDates{ActorID: actorID, Username: username}
			actors = append(actors, current)
		}
		current.Dates = append(current.Dates, date)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate actor roll dates: %w", err)
	}
	return actors, nil
}

// UserTotals returns the all-time aggregates for one participant
func (r *rollRepository) UserTotals(ctx context.Context, actorID int64) (*interfaces.UserRollTotals, error) {
	query := `
		SELECT COUNT(*),
		       COALESCE(SUM(value), 0)::BIGINT,
		       COALESCE(MAX(value), 0),
		       COALESCE(AVG(value), 0)::FLOAT8
		FROM rolls
		WHERE actor_id = $1 AND actor_type = 'user'`

	var totals interfaces.UserRollTotals
	err := r.q.QueryRow(ctx, query, actorID).Scan(
		&totals.Rolls,
		&totals.Score,
		&totals.Best,
		&totals.Average,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query user totals: %w", err)
	}

	last10Query := `
		SELECT COALESCE(AVG(value), 0)::FLOAT8 FROM (
			SELECT value FROM rolls
			WHERE actor_id = $1 AND actor_type = 'user'
			ORDER BY rolled_at DESC
			LIMIT 10
		) recent`

	if err := r.q.QueryRow(ctx, last10Query, actorID).Scan(&totals.Last10Average); err != nil {
		return nil, fmt.Errorf("failed to query recent average: %w", err)
	}

	return &totals, nil
}
