package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/gdugdh24/cofounder-backend/internal/domain"
	"github.com/gdugdh24/cofounder-backend/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type interactionRepository struct {
	conn Connector
}

func NewInteractionRepository(conn Connector) repository.InteractionRepository {
	return &interactionRepository{conn: conn}
}

func ledgerFilter(profileID primitive.ObjectID, visitorID string, kind domain.InteractionType) bson.M {
	return bson.M{"profileId": profileID, "visitorIp": visitorID, "type": string(kind)}
}

func (r *interactionRepository) Create(ctx context.Context, interaction *domain.Interaction) error {
	pid, err := objectID(interaction.ProfileID)
	if err != nil {
		return err
	}
	coll, err := collection(ctx, r.conn, interactionsCollection)
	if err != nil {
		return err
	}

	// An upsert with $setOnInsert reports "already there" without a write
	// error, which would otherwise abort an enclosing transaction.
	now := time.Now().UTC()
	res, err := coll.UpdateOne(ctx,
		ledgerFilter(pid, interaction.VisitorID, interaction.Type),
		bson.M{"$setOnInsert": bson.M{"createdAt": now}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrInteractionExists
		}
		return err
	}
	if res.UpsertedCount == 0 {
		return domain.ErrInteractionExists
	}

	if oid, ok := res.UpsertedID.(primitive.ObjectID); ok {
		interaction.ID = oid.Hex()
	}
	interaction.CreatedAt = now
	return nil
}

func (r *interactionRepository) Find(ctx context.Context, profileID, visitorID string, kind domain.InteractionType) (*domain.Interaction, error) {
	pid, err := objectID(profileID)
	if err != nil {
		return nil, err
	}
	coll, err := collection(ctx, r.conn, interactionsCollection)
	if err != nil {
		return nil, err
	}

	var doc interactionDocument
	if err := coll.FindOne(ctx, ledgerFilter(pid, visitorID, kind)).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrInteractionNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *interactionRepository) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}
	coll, err := collection(ctx, r.conn, interactionsCollection)
	if err != nil {
		return false, err
	}

	res, err := coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (r *interactionRepository) Exists(ctx context.Context, profileID, visitorID string, kind domain.InteractionType) (bool, error) {
	pid, err := objectID(profileID)
	if err != nil {
		return false, err
	}
	coll, err := collection(ctx, r.conn, interactionsCollection)
	if err != nil {
		return false, err
	}

	n, err := coll.CountDocuments(ctx, ledgerFilter(pid, visitorID, kind), options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *interactionRepository) CountByProfile(ctx context.Context, profileID string) (domain.InteractionCounts, error) {
	var counts domain.InteractionCounts

	pid, err := objectID(profileID)
	if err != nil {
		return counts, err
	}
	coll, err := collection(ctx, r.conn, interactionsCollection)
	if err != nil {
		return counts, err
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"profileId": pid}}},
		{{Key: "$group", Value: bson.M{"_id": "$type", "n": bson.M{"$sum": 1}}}},
	}
	cur, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return counts, err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var row struct {
			Type  string `bson:"_id"`
			Count int64  `bson:"n"`
		}
		if err := cur.Decode(&row); err != nil {
			return counts, err
		}
		switch domain.InteractionType(row.Type) {
		case domain.InteractionView:
			counts.Views = row.Count
		case domain.InteractionLike:
			counts.Likes = row.Count
		}
	}
	return counts, cur.Err()
}
