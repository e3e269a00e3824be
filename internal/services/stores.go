package services

import (
	"context"

	"dreamhome/internal/domain"
	"dreamhome/internal/listing"
)

// UserStore is implemented by repos.UserRepo and docstore.UserStore.
type UserStore interface {
	ByEmail(ctx context.Context, email string) (*domain.User, error)
	ByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) error
	UpdateProfile(ctx context.Context, id, name, email string) error
	UpdatePassword(ctx context.Context, id, hash string) error
}

type PropertyStore interface {
	Insert(ctx context.Context, rec *domain.PropertyRecord) (string, error)
	Find(ctx context.Context, f listing.Filter, opts listing.FindOptions) ([]domain.PropertyRecord, error)
	Get(ctx context.Context, id string) (domain.PropertyRecord, error)
	Exists(ctx context.Context, id string) (bool, error)
}

type InquiryStore interface {
	Create(ctx context.Context, q *domain.Inquiry) (string, error)
	ByProperty(ctx context.Context, propertyID string) ([]domain.Inquiry, error)
}

// ListingCache is implemented by cache.Listings. A nil cache disables caching.
type ListingCache interface {
	// Get reports the generation it read; Set must be given that same value.
	Get(ctx context.Context, scope string, params map[string]string, dest any) (gen int64, hit bool, err error)
	Set(ctx context.Context, gen int64, scope string, params map[string]string, value any) error
	Invalidate(ctx context.Context) error
}
