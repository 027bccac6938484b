package status

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// listCap bounds how many entries a single list call returns.
const listCap = 1000

// Repository persists status checks. List returns up to 1000 entries in the
// store's natural order; callers must not rely on any particular ordering.
type Repository interface {
	Insert(ctx context.Context, s *StatusCheck) error
	List(ctx context.Context) ([]*StatusCheck, error)
}

// MongoRepo stores status checks in a MongoDB collection.
type MongoRepo struct {
	col *mongo.Collection
}

func NewMongoRepo(col *mongo.Collection) *MongoRepo {
	return &MongoRepo{col: col}
}

func (m *MongoRepo) Insert(ctx context.Context, s *StatusCheck) error {
	_, err := m.col.InsertOne(ctx, s)
	return err
}

func (m *MongoRepo) List(ctx context.Context) ([]*StatusCheck, error) {
	cur, err := m.col.Find(ctx, bson.M{}, options.Find().SetLimit(listCap))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []*StatusCheck{}
	for cur.Next(ctx) {
		var s StatusCheck
		if err := cur.Decode(&s); err != nil {
			return nil, err
		}
		out = append(out, &s)
	}
	return out, cur.Err()
}

// MemoryRepo is the in-process implementation used by tests and when no
// database is configured.
type MemoryRepo struct {
	mu      sync.RWMutex
	entries []StatusCheck
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

func (m *MemoryRepo) Insert(ctx context.Context, s *StatusCheck) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, *s)
	return nil
}

func (m *MemoryRepo) List(ctx context.Context) ([]*StatusCheck, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := len(m.entries)
	if n > listCap {
		n = listCap
	}
	out := make([]*StatusCheck, 0, n)
	for i := 0; i < n; i++ {
		cp := m.entries[i]
		out = append(out, &cp)
	}
	return out, nil
}
