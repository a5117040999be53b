package mongodb

import (
	"time"

	"github.com/gdugdh24/cofounder-backend/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	profilesCollection     = "cofounder_matching"
	interactionsCollection = "cofounder_interactions"
)

type promptsDocument struct {
	Superpower    string `bson:"superpower"`
	Obsession     string `bson:"obsession"`
	CofounderType string `bson:"cofounder_type"`
	LookingFor    string `bson:"looking_for"`
	Dealbreaker   string `bson:"dealbreaker"`
}

type profileDocument struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	FirstName  string             `bson:"firstName"`
	LastName   string             `bson:"lastName"`
	Email      string             `bson:"email"`
	LinkedIn   string             `bson:"linkedIn"`
	ProfilePic string             `bson:"profilePic"`
	Role       string             `bson:"role"`
	Stage      string             `bson:"stage"`
	Commitment string             `bson:"commitment"`
	Industries []string           `bson:"industries"`
	Prompts    promptsDocument    `bson:"prompts"`
	Bio        string             `bson:"bio"`
	Status     string             `bson:"status"`
	Views      int64              `bson:"views"`
	Likes      int64              `bson:"likes"`
	CreatedAt  time.Time          `bson:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt"`
}

func newProfileDocument(p *domain.Profile, now time.Time) profileDocument {
	industries := p.Industries
	if industries == nil {
		industries = []string{}
	}
	return profileDocument{
		FirstName:  p.FirstName,
		LastName:   p.LastName,
		Email:      domain.NormalizeEmail(p.Email),
		LinkedIn:   p.LinkedIn,
		ProfilePic: p.ProfilePic,
		Role:       string(p.Role),
		Stage:      string(p.Stage),
		Commitment: string(p.Commitment),
		Industries: industries,
		Prompts: promptsDocument{
			Superpower:    p.Prompts.Superpower,
			Obsession:     p.Prompts.Obsession,
			CofounderType: p.Prompts.CofounderType,
			LookingFor:    p.Prompts.LookingFor,
			Dealbreaker:   p.Prompts.Dealbreaker,
		},
		Bio:       p.Bio,
		Status:    string(p.Status),
		Views:     p.Views,
		Likes:     p.Likes,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (d profileDocument) toDomain() *domain.Profile {
	industries := d.Industries
	if industries == nil {
		industries = []string{}
	}
	return &domain.Profile{
		ID:         d.ID.Hex(),
		FirstName:  d.FirstName,
		LastName:   d.LastName,
		Email:      d.Email,
		LinkedIn:   d.LinkedIn,
		ProfilePic: d.ProfilePic,
		Role:       domain.Role(d.Role),
		Stage:      domain.Stage(d.Stage),
		Commitment: domain.Commitment(d.Commitment),
		Industries: industries,
		Prompts: domain.Prompts{
			Superpower:    d.Prompts.Superpower,
			Obsession:     d.Prompts.Obsession,
			CofounderType: d.Prompts.CofounderType,
			LookingFor:    d.Prompts.LookingFor,
			Dealbreaker:   d.Prompts.Dealbreaker,
		},
		Bio:       d.Bio,
		Status:    domain.ProfileStatus(d.Status),
		Views:     d.Views,
		Likes:     d.Likes,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type interactionDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	ProfileID primitive.ObjectID `bson:"profileId"`
	VisitorIP string             `bson:"visitorIp"`
	Type      string             `bson:"type"`
	CreatedAt time.Time          `bson:"createdAt"`
}

func (d interactionDocument) toDomain() *domain.Interaction {
	return &domain.Interaction{
		ID:        d.ID.Hex(),
		ProfileID: d.ProfileID.Hex(),
		VisitorID: d.VisitorIP,
		Type:      domain.InteractionType(d.Type),
		CreatedAt: d.CreatedAt,
	}
}

func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, domain.ErrInvalidProfileID
	}
	return oid, nil
}
