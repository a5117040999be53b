package domain

import (
	"strings"
	"time"
)

type Role string

const (
	RoleTechnical    Role = "technical"
	RoleNonTechnical Role = "non-technical"
	RoleDesign       Role = "design"
	RoleHybrid       Role = "hybrid"
)

type Stage string

const (
	StageIdea        Stage = "idea"
	StageExploring   Stage = "exploring"
	StageBuilding    Stage = "building"
	StageExperienced Stage = "experienced"
)

type Commitment string

const (
	CommitmentNone     Commitment = ""
	CommitmentFulltime Commitment = "fulltime"
	CommitmentParttime Commitment = "parttime"
	CommitmentDepends  Commitment = "depends"
)

type ProfileStatus string

const (
	StatusPending  ProfileStatus = "pending"
	StatusApproved ProfileStatus = "approved"
	StatusMatched  ProfileStatus = "matched"
	StatusInactive ProfileStatus = "inactive"
)

// ListedStatuses are the statuses shown in the public directory.
var ListedStatuses = []ProfileStatus{StatusPending, StatusApproved}

const (
	MaxNameLength   = 50
	MaxPromptLength = 300
	MaxBioLength    = 500
	MinFilledPrompt = 3
)

// Prompts are the five named answers shown on a profile card.
type Prompts struct {
	Superpower    string `json:"superpower" validate:"max=300"`
	Obsession     string `json:"obsession" validate:"max=300"`
	CofounderType string `json:"cofounder_type" validate:"max=300"`
	LookingFor    string `json:"looking_for" validate:"max=300"`
	Dealbreaker   string `json:"dealbreaker" validate:"max=300"`
}

func (p Prompts) values() []string {
	return []string{p.Superpower, p.Obsession, p.CofounderType, p.LookingFor, p.Dealbreaker}
}

// Filled counts answers that are non-empty after trimming.
func (p Prompts) Filled() int {
	n := 0
	for _, v := range p.values() {
		if strings.TrimSpace(v) != "" {
			n++
		}
	}
	return n
}

// Trimmed returns a copy with every answer trimmed.
func (p Prompts) Trimmed() Prompts {
	return Prompts{
		Superpower:    strings.TrimSpace(p.Superpower),
		Obsession:     strings.TrimSpace(p.Obsession),
		CofounderType: strings.TrimSpace(p.CofounderType),
		LookingFor:    strings.TrimSpace(p.LookingFor),
		Dealbreaker:   strings.TrimSpace(p.Dealbreaker),
	}
}

// Profile is the single definition of a co-founder profile. Every handler and
// every storage implementation works with this type and its validate tags.
type Profile struct {
	ID         string        `json:"_id"`
	FirstName  string        `json:"firstName" validate:"required,max=50"`
	LastName   string        `json:"lastName" validate:"required,max=50"`
	Email      string        `json:"email" validate:"required,email"`
	LinkedIn   string        `json:"linkedIn" validate:"required"`
	ProfilePic string        `json:"profilePic" validate:"required"`
	Role       Role          `json:"role" validate:"required,oneof=technical non-technical design hybrid"`
	Stage      Stage         `json:"stage" validate:"required,oneof=idea exploring building experienced"`
	Commitment Commitment    `json:"commitment" validate:"omitempty,oneof=fulltime parttime depends"`
	Industries []string      `json:"industries"`
	Prompts    Prompts       `json:"prompts"`
	Bio        string        `json:"bio" validate:"max=500"`
	Status     ProfileStatus `json:"status" validate:"required,oneof=pending approved matched inactive"`
	Views      int64         `json:"views" validate:"min=0"`
	Likes      int64         `json:"likes" validate:"min=0"`
	CreatedAt  time.Time     `json:"createdAt"`
	UpdatedAt  time.Time     `json:"updatedAt"`
}

// PublicProfile is what the directory exposes. Email and status stay private.
type PublicProfile struct {
	ID         string     `json:"_id"`
	FirstName  string     `json:"firstName"`
	LastName   string     `json:"lastName"`
	LinkedIn   string     `json:"linkedIn"`
	ProfilePic string     `json:"profilePic"`
	Role       Role       `json:"role"`
	Stage      Stage      `json:"stage"`
	Commitment Commitment `json:"commitment"`
	Industries []string   `json:"industries"`
	Prompts    Prompts    `json:"prompts"`
	Bio        string     `json:"bio"`
	Views      int64      `json:"views"`
	Likes      int64      `json:"likes"`
	CreatedAt  time.Time  `json:"createdAt"`
}

func (p *Profile) Public() PublicProfile {
	industries := p.Industries
	if industries == nil {
		industries = []string{}
	}
	return PublicProfile{
		ID:         p.ID,
		FirstName:  p.FirstName,
		LastName:   p.LastName,
		LinkedIn:   p.LinkedIn,
		ProfilePic: p.ProfilePic,
		Role:       p.Role,
		Stage:      p.Stage,
		Commitment: p.Commitment,
		Industries: industries,
		Prompts:    p.Prompts,
		Bio:        p.Bio,
		Views:      p.Views,
		Likes:      p.Likes,
		CreatedAt:  p.CreatedAt,
	}
}

// IsListed reports whether the profile belongs in the public directory.
func (p *Profile) IsListed() bool {
	for _, s := range ListedStatuses {
		if p.Status == s {
			return true
		}
	}
	return false
}

// NormalizeEmail is the form used for storage and every lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeIndustries trims tags and drops empty and repeated ones, keeping
// the first occurrence so display order follows input order.
func NormalizeIndustries(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, tag := range in {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		key := strings.ToLower(tag)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, tag)
	}
	return out
}
