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

type profileRepository struct {
	conn Connector
}

func NewProfileRepository(conn Connector) repository.ProfileRepository {
	return &profileRepository{conn: conn}
}

func (r *profileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	coll, err := collection(ctx, r.conn, profilesCollection)
	if err != nil {
		return err
	}

	doc := newProfileDocument(profile, time.Now().UTC())
	res, err := coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateEmail
		}
		return err
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		profile.ID = oid.Hex()
	}
	profile.CreatedAt = doc.CreatedAt
	profile.UpdatedAt = doc.UpdatedAt
	return nil
}

func (r *profileRepository) findOne(ctx context.Context, filter bson.M) (*domain.Profile, error) {
	coll, err := collection(ctx, r.conn, profilesCollection)
	if err != nil {
		return nil, err
	}

	var doc profileDocument
	if err := coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *profileRepository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *profileRepository) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	return r.findOne(ctx, bson.M{"email": domain.NormalizeEmail(email)})
}

func (r *profileRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	coll, err := collection(ctx, r.conn, profilesCollection)
	if err != nil {
		return false, err
	}

	n, err := coll.CountDocuments(ctx, bson.M{"email": domain.NormalizeEmail(email)}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *profileRepository) ListByStatus(ctx context.Context, statuses []domain.ProfileStatus) ([]*domain.Profile, error) {
	coll, err := collection(ctx, r.conn, profilesCollection)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(statuses))
	for i, s := range statuses {
		names[i] = string(s)
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := coll.Find(ctx, bson.M{"status": bson.M{"$in": names}}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []profileDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	profiles := make([]*domain.Profile, 0, len(docs))
	for _, d := range docs {
		profiles = append(profiles, d.toDomain())
	}
	return profiles, nil
}

func (r *profileRepository) ListIDs(ctx context.Context) ([]string, error) {
	coll, err := collection(ctx, r.conn, profilesCollection)
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetProjection(bson.M{"_id": 1}).SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var ids []string
	for cur.Next(ctx) {
		var doc struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		ids = append(ids, doc.ID.Hex())
	}
	return ids, cur.Err()
}

func counterUpdate(kind domain.InteractionType, delta int64) bson.M {
	return bson.M{
		"$inc": bson.M{kind.CounterField(): delta},
		"$set": bson.M{"updatedAt": time.Now().UTC()},
	}
}

func (r *profileRepository) IncrementCounter(ctx context.Context, id string, kind domain.InteractionType) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	coll, err := collection(ctx, r.conn, profilesCollection)
	if err != nil {
		return err
	}

	res, err := coll.UpdateOne(ctx, bson.M{"_id": oid}, counterUpdate(kind, 1))
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

func (r *profileRepository) DecrementCounter(ctx context.Context, id string, kind domain.InteractionType) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	coll, err := collection(ctx, r.conn, profilesCollection)
	if err != nil {
		return err
	}

	field := kind.CounterField()
	_, err = coll.UpdateOne(ctx, bson.M{"_id": oid, field: bson.M{"$gt": 0}}, counterUpdate(kind, -1))
	return err
}

func (r *profileRepository) SetCounters(ctx context.Context, id string, counts domain.InteractionCounts) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	coll, err := collection(ctx, r.conn, profilesCollection)
	if err != nil {
		return err
	}

	res, err := coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"views":     counts.Views,
		"likes":     counts.Likes,
		"updatedAt": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}
