package repository

import (
	"context"

	"github.com/hutchinsdata/site/internal/contact"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection is the MongoDB collection submissions are written to.
const Collection = "contact_submissions"

// MongoRepo implements a MongoDB-backed repository for contact submissions.
type MongoRepo struct {
	col *mongo.Collection
}

func NewMongoRepo(ctx context.Context, col *mongo.Collection) *MongoRepo {
	// newest-first listing
	idxModel := mongo.IndexModel{Keys: bson.D{{Key: "createdAt", Value: -1}}}
	_, _ = col.Indexes().CreateOne(ctx, idxModel)
	return &MongoRepo{col: col}
}

func (m *MongoRepo) Save(ctx context.Context, s *contact.Submission) error {
	_, err := m.col.InsertOne(ctx, s)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}

func (m *MongoRepo) Get(ctx context.Context, id string) (*contact.Submission, error) {
	var s contact.Submission
	err := m.col.FindOne(ctx, bson.M{"_id": id}).Decode(&s)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (m *MongoRepo) List(ctx context.Context, limit int) ([]*contact.Submission, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cur, err := m.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []*contact.Submission{}
	for cur.Next(ctx) {
		var s contact.Submission
		if err := cur.Decode(&s); err != nil {
			return nil, err
		}
		out = append(out, &s)
	}
	return out, cur.Err()
}
