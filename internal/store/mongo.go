package store

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mongo implements Store on top of a MongoDB database handle.
type Mongo struct {
	db *mongo.Database
}

func NewMongo(db *mongo.Database) *Mongo {
	return &Mongo{db: db}
}

func (s *Mongo) collection(name string) *mongo.Collection {
	return s.db.Collection(name)
}

func (s *Mongo) List(ctx context.Context, collection string, q ListQuery) ([]Document, error) {
	filter := bson.M{}
	if q.Search != "" {
		// Prefix range: everything from the term up to (but excluding) the
		// term padded with the maximum codepoint.
		filter[SearchField] = bson.M{
			"$gte": q.Search,
			"$lt":  q.Search + string(utf8.MaxRune),
		}
	}

	dir := 1
	if q.Descending {
		dir = -1
	}
	opts := options.Find().
		SetSort(bson.D{{Key: q.SortField, Value: dir}}).
		SetLimit(int64(q.Limit))

	cur, err := s.collection(collection).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", collection, err)
	}
	defer cur.Close(ctx)

	docs := []Document{}
	for cur.Next(ctx) {
		var raw bson.M
		if err := cur.Decode(&raw); err != nil {
			return nil, fmt.Errorf("decoding %s document: %w", collection, err)
		}
		docs = append(docs, fromBSON(raw))
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s: %w", collection, err)
	}
	return docs, nil
}

func (s *Mongo) Insert(ctx context.Context, collection string, doc Document) (string, error) {
	payload := bson.M{}
	for k, v := range doc {
		if k == "id" {
			continue
		}
		payload[k] = v
	}
	res, err := s.collection(collection).InsertOne(ctx, payload)
	if err != nil {
		return "", fmt.Errorf("inserting into %s: %w", collection, err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("inserting into %s: unexpected id type %T", collection, res.InsertedID)
	}
	return oid.Hex(), nil
}

func (s *Mongo) FindByID(ctx context.Context, collection, id string) (Document, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var raw bson.M
	err = s.collection(collection).FindOne(ctx, bson.M{"_id": oid}).Decode(&raw)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("finding %s/%s: %w", collection, id, err)
	}
	return fromBSON(raw), nil
}

func (s *Mongo) FindOneByField(ctx context.Context, collection, field string, value any) (Document, error) {
	var raw bson.M
	err := s.collection(collection).FindOne(ctx, bson.M{field: value}).Decode(&raw)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("finding %s by %s: %w", collection, field, err)
	}
	return fromBSON(raw), nil
}

func (s *Mongo) UpdateByID(ctx context.Context, collection, id string, fields Document) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	set := bson.M{}
	for k, v := range fields {
		if k == "id" {
			continue
		}
		set[k] = v
	}
	res, err := s.collection(collection).UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("updating %s/%s: %w", collection, id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Mongo) DeleteByID(ctx context.Context, collection, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := s.collection(collection).DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("deleting %s/%s: %w", collection, id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Mongo) DecrementField(ctx context.Context, collection, id, field string, n int) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := s.collection(collection).UpdateOne(ctx,
		bson.M{"_id": oid, field: bson.M{"$gte": n}},
		bson.M{"$inc": bson.M{field: -n}},
	)
	if err != nil {
		return fmt.Errorf("decrementing %s on %s/%s: %w", field, collection, id, err)
	}
	if res.MatchedCount == 0 {
		return ErrConditionFailed
	}
	return nil
}

func (s *Mongo) AdjustField(ctx context.Context, collection, id, field string, delta int) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := s.collection(collection).UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$inc": bson.M{field: delta}},
	)
	if err != nil {
		return fmt.Errorf("adjusting %s on %s/%s: %w", field, collection, id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// fromBSON maps a raw mongo document into a Document, hoisting _id into "id".
func fromBSON(raw bson.M) Document {
	doc := Document{}
	for k, v := range raw {
		if k == "_id" {
			if oid, ok := v.(primitive.ObjectID); ok {
				doc["id"] = oid.Hex()
			} else {
				doc["id"] = v
			}
			continue
		}
		doc[k] = normalizeBSON(v)
	}
	return doc
}

// normalizeBSON converts driver container types into plain maps and slices so
// callers never see bson internals.
func normalizeBSON(v any) any {
	switch t := v.(type) {
	case bson.M:
		m := map[string]any{}
		for k, e := range t {
			m[k] = normalizeBSON(e)
		}
		return m
	case bson.D:
		m := map[string]any{}
		for _, e := range t {
			m[e.Key] = normalizeBSON(e.Value)
		}
		return m
	case bson.A:
		s := make([]any, len(t))
		for i, e := range t {
			s[i] = normalizeBSON(e)
		}
		return s
	case primitive.ObjectID:
		return t.Hex()
	default:
		return v
	}
}
