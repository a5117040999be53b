package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/gdugdh24/cofounder-backend/internal/domain"
	"github.com/gdugdh24/cofounder-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type interactionRow struct {
	ID        string    `db:"id"`
	ProfileID string    `db:"profile_id"`
	VisitorIP string    `db:"visitor_ip"`
	Type      string    `db:"type"`
	CreatedAt time.Time `db:"created_at"`
}

type interactionRepository struct {
	db *sqlx.DB
}

func NewInteractionRepository(db *sqlx.DB) repository.InteractionRepository {
	return &interactionRepository{db: db}
}

func (r *interactionRepository) Create(ctx context.Context, interaction *domain.Interaction) error {
	pid, err := parseID(interaction.ProfileID)
	if err != nil {
		return err
	}

	// ON CONFLICT keeps a surrounding transaction usable when another
	// request inserted the same triple first.
	id := uuid.New()
	query := `
		INSERT INTO cofounder_interactions (id, profile_id, visitor_ip, type)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (profile_id, visitor_ip, type) DO NOTHING
		RETURNING created_at
	`
	err = conn(ctx, r.db).QueryRowContext(ctx, query, id, pid, interaction.VisitorID, string(interaction.Type)).
		Scan(&interaction.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || pqCode(err) == pgUniqueViolation {
			return domain.ErrInteractionExists
		}
		if pqCode(err) == pgForeignKeyViolation {
			return domain.ErrProfileNotFound
		}
		return err
	}

	interaction.ID = id.String()
	return nil
}

func (r *interactionRepository) Find(ctx context.Context, profileID, visitorID string, kind domain.InteractionType) (*domain.Interaction, error) {
	pid, err := parseID(profileID)
	if err != nil {
		return nil, err
	}

	var row interactionRow
	query := `
		SELECT id, profile_id, visitor_ip, type, created_at
		FROM cofounder_interactions
		WHERE profile_id = $1 AND visitor_ip = $2 AND type = $3
	`
	if err := conn(ctx, r.db).GetContext(ctx, &row, query, pid, visitorID, string(kind)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrInteractionNotFound
		}
		return nil, err
	}

	return &domain.Interaction{
		ID:        row.ID,
		ProfileID: row.ProfileID,
		VisitorID: row.VisitorIP,
		Type:      domain.InteractionType(row.Type),
		CreatedAt: row.CreatedAt,
	}, nil
}

func (r *interactionRepository) Delete(ctx context.Context, id string) (bool, error) {
	iid, err := uuid.Parse(id)
	if err != nil {
		return false, nil
	}

	result, err := conn(ctx, r.db).ExecContext(ctx, `DELETE FROM cofounder_interactions WHERE id = $1`, iid)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *interactionRepository) Exists(ctx context.Context, profileID, visitorID string, kind domain.InteractionType) (bool, error) {
	pid, err := parseID(profileID)
	if err != nil {
		return false, err
	}

	var exists bool
	query := `
		SELECT EXISTS (
			SELECT 1 FROM cofounder_interactions
			WHERE profile_id = $1 AND visitor_ip = $2 AND type = $3
		)
	`
	err = conn(ctx, r.db).GetContext(ctx, &exists, query, pid, visitorID, string(kind))
	return exists, err
}

func (r *interactionRepository) CountByProfile(ctx context.Context, profileID string) (domain.InteractionCounts, error) {
	pid, err := parseID(profileID)
	if err != nil {
		return domain.InteractionCounts{}, err
	}

	var counts domain.InteractionCounts
	query := `
		SELECT
			COUNT(*) FILTER (WHERE type = 'view') AS views,
			COUNT(*) FILTER (WHERE type = 'like') AS likes
		FROM cofounder_interactions
		WHERE profile_id = $1
	`
	err = conn(ctx, r.db).QueryRowContext(ctx, query, pid).Scan(&counts.Views, &counts.Likes)
	return counts, err
}
