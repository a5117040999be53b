package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/gdugdh24/cofounder-backend/internal/domain"
	"github.com/gdugdh24/cofounder-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type profileRow struct {
	ID                  string         `db:"id"`
	FirstName           string         `db:"first_name"`
	LastName            string         `db:"last_name"`
	Email               string         `db:"email"`
	LinkedIn            string         `db:"linkedin"`
	ProfilePic          string         `db:"profile_pic"`
	Role                string         `db:"role"`
	Stage               string         `db:"stage"`
	Commitment          string         `db:"commitment"`
	Industries          pq.StringArray `db:"industries"`
	PromptSuperpower    string         `db:"prompt_superpower"`
	PromptObsession     string         `db:"prompt_obsession"`
	PromptCofounderType string         `db:"prompt_cofounder_type"`
	PromptLookingFor    string         `db:"prompt_looking_for"`
	PromptDealbreaker   string         `db:"prompt_dealbreaker"`
	Bio                 string         `db:"bio"`
	Status              string         `db:"status"`
	Views               int64          `db:"views"`
	Likes               int64          `db:"likes"`
	CreatedAt           time.Time      `db:"created_at"`
	UpdatedAt           time.Time      `db:"updated_at"`
}

func (r profileRow) toDomain() *domain.Profile {
	industries := []string(r.Industries)
	if industries == nil {
		industries = []string{}
	}
	return &domain.Profile{
		ID:         r.ID,
		FirstName:  r.FirstName,
		LastName:   r.LastName,
		Email:      r.Email,
		LinkedIn:   r.LinkedIn,
		ProfilePic: r.ProfilePic,
		Role:       domain.Role(r.Role),
		Stage:      domain.Stage(r.Stage),
		Commitment: domain.Commitment(r.Commitment),
		Industries: industries,
		Prompts: domain.Prompts{
			Superpower:    r.PromptSuperpower,
			Obsession:     r.PromptObsession,
			CofounderType: r.PromptCofounderType,
			LookingFor:    r.PromptLookingFor,
			Dealbreaker:   r.PromptDealbreaker,
		},
		Bio:       r.Bio,
		Status:    domain.ProfileStatus(r.Status),
		Views:     r.Views,
		Likes:     r.Likes,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

const profileColumns = `id, first_name, last_name, email, linkedin, profile_pic, role, stage, commitment,
	industries, prompt_superpower, prompt_obsession, prompt_cofounder_type, prompt_looking_for,
	prompt_dealbreaker, bio, status, views, likes, created_at, updated_at`

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	id := uuid.New()
	industries := profile.Industries
	if industries == nil {
		industries = []string{}
	}

	query := `
		INSERT INTO cofounder_matching (
			id, first_name, last_name, email, linkedin, profile_pic, role, stage, commitment,
			industries, prompt_superpower, prompt_obsession, prompt_cofounder_type,
			prompt_looking_for, prompt_dealbreaker, bio, status, views, likes
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		RETURNING created_at, updated_at
	`
	err := conn(ctx, r.db).QueryRowContext(
		ctx, query,
		id, profile.FirstName, profile.LastName, domain.NormalizeEmail(profile.Email),
		profile.LinkedIn, profile.ProfilePic, string(profile.Role), string(profile.Stage),
		string(profile.Commitment), pq.Array(industries),
		profile.Prompts.Superpower, profile.Prompts.Obsession, profile.Prompts.CofounderType,
		profile.Prompts.LookingFor, profile.Prompts.Dealbreaker,
		profile.Bio, string(profile.Status), profile.Views, profile.Likes,
	).Scan(&profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		if pqCode(err) == pgUniqueViolation {
			return domain.ErrDuplicateEmail
		}
		return err
	}

	profile.ID = id.String()
	return nil
}

func (r *profileRepository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	pid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var row profileRow
	query := `SELECT ` + profileColumns + ` FROM cofounder_matching WHERE id = $1`
	if err := conn(ctx, r.db).GetContext(ctx, &row, query, pid); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return row.toDomain(), nil
}

func (r *profileRepository) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	var row profileRow
	query := `SELECT ` + profileColumns + ` FROM cofounder_matching WHERE email = $1`
	if err := conn(ctx, r.db).GetContext(ctx, &row, query, domain.NormalizeEmail(email)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return row.toDomain(), nil
}

func (r *profileRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM cofounder_matching WHERE email = $1)`
	err := conn(ctx, r.db).GetContext(ctx, &exists, query, domain.NormalizeEmail(email))
	return exists, err
}

func (r *profileRepository) ListByStatus(ctx context.Context, statuses []domain.ProfileStatus) ([]*domain.Profile, error) {
	names := make([]string, len(statuses))
	for i, s := range statuses {
		names[i] = string(s)
	}

	var rows []profileRow
	query := `
		SELECT ` + profileColumns + `
		FROM cofounder_matching
		WHERE status = ANY($1)
		ORDER BY created_at DESC
	`
	if err := conn(ctx, r.db).SelectContext(ctx, &rows, query, pq.Array(names)); err != nil {
		return nil, err
	}

	profiles := make([]*domain.Profile, 0, len(rows))
	for _, row := range rows {
		profiles = append(profiles, row.toDomain())
	}
	return profiles, nil
}

func (r *profileRepository) ListIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := conn(ctx, r.db).SelectContext(ctx, &ids, `SELECT id::text FROM cofounder_matching ORDER BY id`)
	return ids, err
}

func (r *profileRepository) IncrementCounter(ctx context.Context, id string, kind domain.InteractionType) error {
	pid, err := parseID(id)
	if err != nil {
		return err
	}

	column := kind.CounterField()
	query := fmt.Sprintf(`UPDATE cofounder_matching SET %[1]s = %[1]s + 1, updated_at = NOW() WHERE id = $1`, column)
	result, err := conn(ctx, r.db).ExecContext(ctx, query, pid)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

func (r *profileRepository) DecrementCounter(ctx context.Context, id string, kind domain.InteractionType) error {
	pid, err := parseID(id)
	if err != nil {
		return err
	}

	column := kind.CounterField()
	query := fmt.Sprintf(`UPDATE cofounder_matching SET %[1]s = %[1]s - 1, updated_at = NOW() WHERE id = $1 AND %[1]s > 0`, column)
	_, err = conn(ctx, r.db).ExecContext(ctx, query, pid)
	return err
}

func (r *profileRepository) SetCounters(ctx context.Context, id string, counts domain.InteractionCounts) error {
	pid, err := parseID(id)
	if err != nil {
		return err
	}

	query := `UPDATE cofounder_matching SET views = $1, likes = $2, updated_at = NOW() WHERE id = $3`
	result, err := conn(ctx, r.db).ExecContext(ctx, query, counts.Views, counts.Likes, pid)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}
