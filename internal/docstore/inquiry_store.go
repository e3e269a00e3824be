package docstore

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"dreamhome/internal/domain"
)

type InquiryStore struct{ coll *mongo.Collection }

func NewInquiryStore(d *DB) *InquiryStore {
	return &InquiryStore{coll: d.DB.Collection(inquiriesCollection)}
}

type inquiryDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Name       string             `bson:"name"`
	ContactNo  string             `bson:"contact_no"`
	Message    string             `bson:"message"`
	PropertyID string             `bson:"property_id"`
	CreatedAt  time.Time          `bson:"createdAt"`
}

func (s *InquiryStore) Create(ctx context.Context, q *domain.Inquiry) (string, error) {
	if q.CreatedAt.IsZero() {
		q.CreatedAt = time.Now().UTC()
	}
	res, err := s.coll.InsertOne(ctx, inquiryDoc{
		Name: q.Name, ContactNo: q.ContactNo, Message: q.Message,
		PropertyID: q.PropertyID, CreatedAt: q.CreatedAt,
	})
	if err != nil {
		return "", fmt.Errorf("insert inquiry: %w", err)
	}
	q.ID = idString(res.InsertedID)
	return q.ID, nil
}

func (s *InquiryStore) ByProperty(ctx context.Context, propertyID string) ([]domain.Inquiry, error) {
	cur, err := s.coll.Find(ctx, bson.M{"property_id": propertyID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find inquiries: %w", err)
	}
	var docs []inquiryDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode inquiries: %w", err)
	}
	out := make([]domain.Inquiry, 0, len(docs))
	for _, d := range docs {
		out = append(out, domain.Inquiry{
			ID: d.ID.Hex(), Name: d.Name, ContactNo: d.ContactNo, Message: d.Message,
			PropertyID: d.PropertyID, CreatedAt: d.CreatedAt,
		})
	}
	return out, nil
}
