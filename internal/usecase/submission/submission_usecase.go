package submission

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gdugdh24/cofounder-backend/internal/domain"
	"github.com/gdugdh24/cofounder-backend/internal/repository"
	"github.com/sirupsen/logrus"
)

// CacheInvalidator drops the cached public directory after a write.
type CacheInvalidator interface {
	InvalidatePublicProfiles(ctx context.Context) error
}

type SubmissionUseCase struct {
	profileRepo repository.ProfileRepository
	cache       CacheInvalidator
	log         logrus.FieldLogger
}

func NewSubmissionUseCase(
	profileRepo repository.ProfileRepository,
	cache CacheInvalidator,
	log logrus.FieldLogger,
) *SubmissionUseCase {
	return &SubmissionUseCase{
		profileRepo: profileRepo,
		cache:       cache,
		log:         log,
	}
}

// SubmitRequest is the body of POST /api/cofounder/submit
type SubmitRequest struct {
	FirstName  string          `json:"firstName"`
	LastName   string          `json:"lastName"`
	Email      string          `json:"email"`
	LinkedIn   string          `json:"linkedIn"`
	ProfilePic string          `json:"profilePic"`
	Role       string          `json:"role"`
	Stage      string          `json:"stage"`
	Commitment string          `json:"commitment"`
	Industries []string        `json:"industries"`
	Prompts    *domain.Prompts `json:"prompts"`
	Bio        string          `json:"bio"`
}

func (r *SubmitRequest) missingRequired() bool {
	for _, v := range []string{r.FirstName, r.LastName, r.Email, r.LinkedIn, r.ProfilePic, r.Role, r.Stage} {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}
	return false
}

func (r *SubmitRequest) prompts() domain.Prompts {
	if r.Prompts == nil {
		return domain.Prompts{}
	}
	return *r.Prompts
}

func (r *SubmitRequest) toProfile() *domain.Profile {
	return &domain.Profile{
		FirstName:  strings.TrimSpace(r.FirstName),
		LastName:   strings.TrimSpace(r.LastName),
		Email:      domain.NormalizeEmail(r.Email),
		LinkedIn:   strings.TrimSpace(r.LinkedIn),
		ProfilePic: r.ProfilePic,
		Role:       domain.Role(strings.TrimSpace(r.Role)),
		Stage:      domain.Stage(strings.TrimSpace(r.Stage)),
		Commitment: domain.Commitment(strings.TrimSpace(r.Commitment)),
		Industries: domain.NormalizeIndustries(r.Industries),
		Prompts:    r.prompts().Trimmed(),
		Bio:        strings.TrimSpace(r.Bio),
		Status:     domain.StatusPending,
	}
}

// Submit validates and stores a new profile and returns its id.
func (uc *SubmissionUseCase) Submit(ctx context.Context, req *SubmitRequest) (string, error) {
	if req.missingRequired() {
		return "", domain.ErrMissingRequiredFields
	}
	if req.prompts().Filled() < domain.MinFilledPrompt {
		return "", domain.ErrInsufficientPrompts
	}

	email := domain.NormalizeEmail(req.Email)
	if _, err := uc.profileRepo.GetByEmail(ctx, email); err == nil {
		return "", domain.ErrDuplicateEmail
	} else if !errors.Is(err, domain.ErrProfileNotFound) {
		return "", fmt.Errorf("failed to look up email: %w", err)
	}

	profile := req.toProfile()
	if err := domain.ValidateProfile(profile); err != nil {
		return "", err
	}

	if err := uc.profileRepo.Create(ctx, profile); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return "", err
		}
		return "", fmt.Errorf("failed to create profile: %w", err)
	}

	if err := uc.cache.InvalidatePublicProfiles(ctx); err != nil {
		uc.log.WithError(err).Warn("failed to invalidate profile cache")
	}

	uc.log.WithFields(logrus.Fields{
		"profile_id": profile.ID,
		"role":       profile.Role,
		"stage":      profile.Stage,
	}).Info("profile submitted")

	return profile.ID, nil
}

// EmailExists reports whether a profile already uses the normalised email.
func (uc *SubmissionUseCase) EmailExists(ctx context.Context, email string) (bool, error) {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return false, nil
	}
	exists, err := uc.profileRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return exists, nil
}
