package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"dreamhome/internal/domain"
	"dreamhome/internal/formschema"
	"dreamhome/internal/listing"
	applog "dreamhome/internal/log"
	"dreamhome/internal/storage"
)

const (
	MaxImageBytes = 10 << 20
	MaxVideoBytes = 50 << 20

	// VideosField is the multipart field carrying listing videos.
	VideosField = "videos"

	recentLimit = 4
)

// Upload is one file of a create-listing request.
type Upload struct {
	Field       string // a category key or VideosField
	Filename    string
	Size        int64
	ContentType string
	Open        func() (io.ReadCloser, error)
}

type PropertyService struct {
	Users      UserStore
	Properties PropertyStore
	Media      storage.Store
	Cache      ListingCache
}

func NewPropertyService(users UserStore, props PropertyStore, media storage.Store, c ListingCache) *PropertyService {
	return &PropertyService{Users: users, Properties: props, Media: media, Cache: c}
}

// ListAll returns every listing in insertion order.
func (s *PropertyService) ListAll(ctx context.Context) ([]listing.PropertyResponse, error) {
	return s.cached(ctx, "all", nil, listing.Filter{}, listing.FindOptions{})
}

// Filtered runs a search. A non-numeric price bound fails before the store
// is touched.
func (s *PropertyService) Filtered(ctx context.Context, params map[string]string) ([]listing.PropertyResponse, error) {
	f, err := listing.ParseFilter(params)
	if err != nil {
		return nil, err
	}
	key := make(map[string]string, len(listing.FilterParams))
	for _, p := range listing.FilterParams {
		if v := strings.TrimSpace(params[p]); v != "" {
			key[p] = v
		}
	}
	return s.cached(ctx, "filtered", key, f, listing.FindOptions{})
}

// RecentByFamily returns the newest four listings of one family.
func (s *PropertyService) RecentByFamily(ctx context.Context, fam listing.Family) ([]listing.PropertyResponse, error) {
	return s.cached(ctx, "recent:"+fam.String(), nil, listing.FamilyFilter(fam),
		listing.FindOptions{Sort: listing.SortNewest, Limit: recentLimit})
}

// ByOwner returns the caller's own listings, bypassing the cache.
func (s *PropertyService) ByOwner(ctx context.Context, userID string) ([]listing.PropertyResponse, error) {
	recs, err := s.Properties.Find(ctx, listing.OwnerFilter(userID), listing.FindOptions{})
	if err != nil {
		return nil, err
	}
	return listing.NormalizeAll(recs), nil
}

func (s *PropertyService) cached(ctx context.Context, scope string, params map[string]string, f listing.Filter, o listing.FindOptions) ([]listing.PropertyResponse, error) {
	var (
		gen       int64
		cacheable bool
	)
	if s.Cache != nil {
		var hit []listing.PropertyResponse
		g, ok, err := s.Cache.Get(ctx, scope, params, &hit)
		if err != nil {
			applog.Error(nil, "cache.get.fail", err, map[string]any{"scope": scope})
		}
		if ok && err == nil {
			return hit, nil
		}
		gen, cacheable = g, err == nil
	}
	recs, err := s.Properties.Find(ctx, f, o)
	if err != nil {
		return nil, err
	}
	out := listing.NormalizeAll(recs)
	if cacheable {
		if err := s.Cache.Set(ctx, gen, scope, params, out); err != nil {
			applog.Error(nil, "cache.set.fail", err, map[string]any{"scope": scope})
		}
	}
	return out, nil
}

// Create stores the uploaded media and the new listing. If anything fails
// after the first file was written, every file of the request is removed.
func (s *PropertyService) Create(ctx context.Context, userID string, formData []byte, uploads []Upload) (string, error) {
	if _, err := s.Users.ByID(ctx, userID); err != nil {
		return "", err
	}
	form, err := formschema.ParseProperty(formData)
	if err != nil {
		return "", err
	}
	price, err := domain.ParsePrice(form.PropertyDetails.PriceText())
	if err != nil {
		return "", domain.Invalid("price", "Invalid price format")
	}
	if err := checkFields(uploads); err != nil {
		return "", err
	}

	batch := storage.NewBatch(s.Media)
	images, videos, err := s.store(ctx, batch, uploads)
	if err != nil {
		batch.Rollback(context.WithoutCancel(ctx))
		return "", err
	}

	rec := buildRecord(form, price, images, videos, userID)
	id, err := s.Properties.Insert(ctx, &rec)
	if err != nil {
		batch.Rollback(context.WithoutCancel(ctx))
		return "", fmt.Errorf("insert property: %w", err)
	}
	if s.Cache != nil {
		if err := s.Cache.Invalidate(ctx); err != nil {
			applog.Error(nil, "cache.invalidate.fail", err, map[string]any{"property_id": id})
		}
	}
	return id, nil
}

func checkFields(uploads []Upload) error {
	for _, u := range uploads {
		if u.Field != VideosField && !isCategory(u.Field) {
			return domain.Invalid(u.Field, "Unknown upload field")
		}
	}
	return nil
}

func isCategory(field string) bool {
	for _, k := range listing.CategoryKeys {
		if k == field {
			return true
		}
	}
	return false
}

func (s *PropertyService) store(ctx context.Context, batch *storage.Batch, uploads []Upload) (map[string][]string, []string, error) {
	images := make(map[string][]string, len(listing.CategoryKeys))
	for _, k := range listing.CategoryKeys {
		images[k] = []string{}
	}
	videos := []string{}

	for _, u := range uploads {
		kind, limit, tooLarge := storage.Images, int64(MaxImageBytes), "Image too large (max 10MB)"
		if u.Field == VideosField {
			kind, limit, tooLarge = storage.Videos, MaxVideoBytes, "Video too large (max 50MB)"
		}
		if u.Size > limit {
			return nil, nil, domain.Invalid(u.Field, tooLarge)
		}
		ref, err := s.put(ctx, batch, kind, u, limit)
		if errors.Is(err, storage.ErrTooLarge) {
			return nil, nil, domain.Invalid(u.Field, tooLarge)
		}
		if err != nil {
			return nil, nil, err
		}
		if kind == storage.Videos {
			videos = append(videos, ref)
		} else {
			images[u.Field] = append(images[u.Field], ref)
		}
	}
	return images, videos, nil
}

func (s *PropertyService) put(ctx context.Context, batch *storage.Batch, kind storage.Kind, u Upload, limit int64) (string, error) {
	r, err := u.Open()
	if err != nil {
		return "", &domain.StorageError{Key: u.Filename, Err: err}
	}
	defer r.Close()
	return batch.Put(ctx, kind, u.Filename, r, u.Size, limit, u.ContentType)
}

func buildRecord(form formschema.PropertyForm, price domain.Price, images map[string][]string, videos []string, userID string) domain.PropertyRecord {
	d := form.PropertyDetails
	fam := listing.Classify(strings.TrimSpace(d.PropertyType))
	amenities, features := listing.BuildStoredAttributes(fam, form.PropertyFeatures)

	rec := domain.PropertyRecord{
		Title:            strings.TrimSpace(d.Title),
		PropertyType:     strings.TrimSpace(d.PropertyType),
		Price:            &price,
		Negotiable:       d.Negotiable,
		Description:      d.Description,
		Location:         form.LocationDetails.Location().AsMap(),
		Images:           images,
		Videos:           videos,
		Amenities:        amenities,
		PropertyFeatures: features,
		PersonalDetails:  form.PersonalDetails,
		ListedBy:         userID,
	}
	if fam == listing.Residential {
		rec.AvailabilityStatus = d.AvailabilityStatus
		rec.PropertyStatus = d.PropertyStatus
		if bhk, ok := form.PropertyFeatures["bhk"].(string); ok {
			rec.Bhk = &bhk
		}
	}
	return rec
}
