package repository

import (
	"context"

	"github.com/profilehub/profilehub/internal/profile"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepo stores profiles in a MongoDB collection, keyed by the profile's
// own "id" field rather than the store-assigned _id.
type MongoRepo struct {
	col *mongo.Collection
}

func NewMongoRepo(col *mongo.Collection) *MongoRepo {
	// ensure a unique index on "id" for fast keyed lookups
	idxModel := mongo.IndexModel{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)}
	col.Indexes().CreateOne(context.Background(), idxModel)
	return &MongoRepo{col: col}
}

func (m *MongoRepo) Insert(ctx context.Context, p *profile.UserProfile) error {
	_, err := m.col.InsertOne(ctx, p)
	return err
}

func (m *MongoRepo) FindByID(ctx context.Context, id string) (*profile.UserProfile, error) {
	var p profile.UserProfile
	err := m.col.FindOne(ctx, bson.M{"id": id}).Decode(&p)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (m *MongoRepo) FindPage(ctx context.Context, skip, limit int64) ([]*profile.UserProfile, error) {
	// the driver treats a zero limit as "no limit"; the gateway contract is
	// at most limit documents
	if limit <= 0 {
		return []*profile.UserProfile{}, nil
	}
	opts := options.Find().
		SetSkip(skip).
		SetLimit(limit).
		SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := m.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []*profile.UserProfile{}
	for cur.Next(ctx) {
		var p profile.UserProfile
		if err := cur.Decode(&p); err != nil {
			return nil, err
		}
		out = append(out, &p)
	}
	return out, cur.Err()
}

func (m *MongoRepo) Replace(ctx context.Context, id string, p *profile.UserProfile) error {
	res, err := m.col.ReplaceOne(ctx, bson.M{"id": id}, p)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *MongoRepo) DeleteByID(ctx context.Context, id string) error {
	res, err := m.col.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
