package docstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"dreamhome/internal/domain"
)

type UserStore struct{ coll *mongo.Collection }

func NewUserStore(d *DB) *UserStore {
	return &UserStore{coll: d.DB.Collection(usersCollection)}
}

// userDoc matches the documents written by earlier deployments, which kept
// the bcrypt hash under "password" and had no createdAt.
type userDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	Password  string             `bson:"password"`
	CreatedAt time.Time          `bson:"createdAt,omitempty"`
}

func (d userDoc) user() *domain.User {
	return &domain.User{ID: d.ID.Hex(), Name: d.Name, Email: d.Email, Hash: d.Password, CreatedAt: d.CreatedAt}
}

func (s *UserStore) one(ctx context.Context, q bson.M) (*domain.User, error) {
	var d userDoc
	err := s.coll.FindOne(ctx, q).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return d.user(), nil
}

func (s *UserStore) ByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.one(ctx, bson.M{"email": email})
}

func (s *UserStore) ByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return s.one(ctx, bson.M{"_id": oid})
}

func (s *UserStore) Create(ctx context.Context, u *domain.User) error {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	res, err := s.coll.InsertOne(ctx, userDoc{Name: u.Name, Email: u.Email, Password: u.Hash, CreatedAt: u.CreatedAt})
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrEmailInUse
	}
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	u.ID = idString(res.InsertedID)
	return nil
}

func (s *UserStore) update(ctx context.Context, id string, set bson.M) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUserNotFound
	}
	res, err := s.coll.UpdateByID(ctx, oid, bson.M{"$set": set})
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrEmailInUse
	}
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (s *UserStore) UpdateProfile(ctx context.Context, id, name, email string) error {
	return s.update(ctx, id, bson.M{"name": name, "email": email})
}

func (s *UserStore) UpdatePassword(ctx context.Context, id, hash string) error {
	return s.update(ctx, id, bson.M{"password": hash})
}
