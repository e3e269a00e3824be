package docstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"dreamhome/internal/domain"
	"dreamhome/internal/listing"
)

type PropertyStore struct{ coll *mongo.Collection }

func NewPropertyStore(d *DB) *PropertyStore {
	return &PropertyStore{coll: d.DB.Collection(propertiesCollection)}
}

func (s *PropertyStore) Insert(ctx context.Context, rec *domain.PropertyRecord) (string, error) {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	res, err := s.coll.InsertOne(ctx, docFromRecord(rec))
	if err != nil {
		return "", fmt.Errorf("insert property: %w", err)
	}
	id := idString(res.InsertedID)
	rec.ID = id
	return id, nil
}

func findOptions(o listing.FindOptions) *options.FindOptions {
	fo := options.Find()
	if o.Sort == listing.SortNewest {
		fo.SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	} else {
		fo.SetSort(bson.D{{Key: "_id", Value: 1}})
	}
	if o.Limit > 0 {
		fo.SetLimit(int64(o.Limit))
	}
	return fo
}

func (s *PropertyStore) Find(ctx context.Context, f listing.Filter, o listing.FindOptions) ([]domain.PropertyRecord, error) {
	q, err := filterDoc(f)
	if err != nil {
		return nil, err
	}
	cur, err := s.coll.Find(ctx, q, findOptions(o))
	if err != nil {
		return nil, fmt.Errorf("find properties: %w", err)
	}
	defer cur.Close(ctx)

	out := []domain.PropertyRecord{}
	for cur.Next(ctx) {
		var doc bson.M
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode property: %w", err)
		}
		out = append(out, recordFromDoc(doc))
	}
	return out, cur.Err()
}

func (s *PropertyStore) Get(ctx context.Context, id string) (domain.PropertyRecord, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.PropertyRecord{}, domain.ErrPropertyNotFound
	}
	var doc bson.M
	err = s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.PropertyRecord{}, domain.ErrPropertyNotFound
	}
	if err != nil {
		return domain.PropertyRecord{}, fmt.Errorf("get property: %w", err)
	}
	return recordFromDoc(doc), nil
}

func (s *PropertyStore) Exists(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}
	n, err := s.coll.CountDocuments(ctx, bson.M{"_id": oid}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count property: %w", err)
	}
	return n > 0, nil
}
