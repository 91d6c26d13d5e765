package records

import (
	"context"

	"github.com/dalemusser/strataministry/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store is the MongoDB-backed record store client.
type Store struct {
	db *mongo.Database
}

// New creates a record store over the given database.
func New(db *mongo.Database) *Store {
	return &Store{db: db}
}

// activeValues are the physical representations of an active flag.
var activeValues = bson.A{true, "true"}

// FetchCollection runs one filtered, ordered read against q.Table.
func (s *Store) FetchCollection(ctx context.Context, q Query) ([]models.Record, error) {
	filter := bson.M{}
	for k, v := range q.Filters {
		filter[k] = v
	}
	if q.ActiveField != "" {
		filter[q.ActiveField] = bson.M{"$in": activeValues}
	}

	opts := options.Find()
	if q.OrderBy != nil {
		dir := -1
		if q.OrderBy.Ascending {
			dir = 1
		}
		opts.SetSort(bson.D{{Key: q.OrderBy.Field, Value: dir}})
	}
	if q.Limit > 0 {
		opts.SetLimit(q.Limit)
	}

	cur, err := s.db.Collection(q.Table).Find(ctx, filter, opts)
	if err != nil {
		return nil, &FetchError{Table: q.Table, Err: err}
	}
	defer cur.Close(ctx)

	var docs []bson.M
	if err := cur.All(ctx, &docs); err != nil {
		return nil, &FetchError{Table: q.Table, Err: err}
	}

	out := make([]models.Record, 0, len(docs))
	for _, d := range docs {
		out = append(out, toRecord(d))
	}
	return out, nil
}

// toRecord converts a decoded document into a plain Record, flattening
// nested documents into map[string]any.
func toRecord(d bson.M) models.Record {
	r := make(models.Record, len(d))
	for k, v := range d {
		r[k] = plain(v)
	}
	return r
}

func plain(v any) any {
	switch t := v.(type) {
	case bson.M:
		m := make(map[string]any, len(t))
		for k, vv := range t {
			m[k] = plain(vv)
		}
		return m
	case bson.D:
		m := make(map[string]any, len(t))
		for _, e := range t {
			m[e.Key] = plain(e.Value)
		}
		return m
	case int32:
		return int64(t)
	default:
		return v
	}
}
