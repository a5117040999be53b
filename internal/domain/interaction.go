package domain

import "time"

type InteractionType string

const (
	InteractionView InteractionType = "view"
	InteractionLike InteractionType = "like"
)

func (t InteractionType) Valid() bool {
	return t == InteractionView || t == InteractionLike
}

// CounterField names the profile counter an interaction type feeds.
func (t InteractionType) CounterField() string {
	if t == InteractionLike {
		return "likes"
	}
	return "views"
}

// UnknownVisitor is stored when no address information is available.
const UnknownVisitor = "unknown"

// Interaction is one ledger record: a visitor performed Type on a profile.
type Interaction struct {
	ID        string          `json:"id"`
	ProfileID string          `json:"profileId"`
	VisitorID string          `json:"visitorIp"`
	Type      InteractionType `json:"type"`
	CreatedAt time.Time       `json:"createdAt"`
}

type InteractionAction string

const (
	ActionViewed        InteractionAction = "viewed"
	ActionAlreadyViewed InteractionAction = "already_viewed"
	ActionLiked         InteractionAction = "liked"
	ActionUnliked       InteractionAction = "unliked"
)

// InteractionCounts is the ledger aggregate for one profile.
type InteractionCounts struct {
	Views int64
	Likes int64
}
