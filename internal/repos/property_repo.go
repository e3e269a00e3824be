package repos

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"dreamhome/internal/domain"
	"dreamhome/internal/listing"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type PropertyRepo struct{ db *sqlx.DB }

func NewPropertyRepo(db *sqlx.DB) *PropertyRepo { return &PropertyRepo{db: db} }

type propertyRow struct {
	ID                 string          `db:"id"`
	Title              string          `db:"title"`
	PropertyType       sql.NullString  `db:"property_type"`
	Price              sql.NullFloat64 `db:"price"`
	Negotiable         *string         `db:"negotiable"`
	Description        *string         `db:"description"`
	AvailabilityStatus *string         `db:"availability_status"`
	PropertyStatus     *string         `db:"property_status"`
	Bhk                *string         `db:"bhk"`
	LocationJSON       sql.NullString  `db:"location_json"`
	ImagesJSON         sql.NullString  `db:"images_json"`
	VideosJSON         sql.NullString  `db:"videos_json"`
	AmenitiesJSON      sql.NullString  `db:"amenities_json"`
	FeaturesJSON       sql.NullString  `db:"features_json"`
	PersonalJSON       sql.NullString  `db:"personal_json"`
	ListedBy           sql.NullString  `db:"listed_by"`
	CreatedAt          string          `db:"created_at"`
}

const propertyColumns = `
    id, title, property_type, price, negotiable, description,
    availability_status, property_status, bhk,
    location_json, images_json, videos_json, amenities_json, features_json, personal_json,
    listed_by, created_at`

func (r propertyRow) record() domain.PropertyRecord {
	rec := domain.PropertyRecord{
		ID:                 r.ID,
		Title:              r.Title,
		PropertyType:       r.PropertyType.String,
		Negotiable:         r.Negotiable,
		Description:        r.Description,
		AvailabilityStatus: r.AvailabilityStatus,
		PropertyStatus:     r.PropertyStatus,
		Bhk:                r.Bhk,
		Location:           decodeJSON(r.LocationJSON),
		Images:             decodeJSON(r.ImagesJSON),
		Amenities:          decodeMap(r.AmenitiesJSON),
		PropertyFeatures:   decodeMap(r.FeaturesJSON),
		PersonalDetails:    decodeMap(r.PersonalJSON),
		ListedBy:           r.ListedBy.String,
		CreatedAt:          parseTime(r.CreatedAt),
	}
	if r.Price.Valid {
		p := domain.Price(r.Price.Float64)
		rec.Price = &p
	}
	if r.VideosJSON.Valid {
		_ = json.Unmarshal([]byte(r.VideosJSON.String), &rec.Videos)
	}
	return rec
}

func decodeJSON(s sql.NullString) any {
	if !s.Valid || s.String == "" {
		return nil
	}
	var v any
	if err := json.Unmarshal([]byte(s.String), &v); err != nil {
		return nil
	}
	return v
}

func decodeMap(s sql.NullString) map[string]any {
	m, _ := decodeJSON(s).(map[string]any)
	return m
}

func encodeJSON(v any) (sql.NullString, error) {
	if v == nil {
		return sql.NullString{}, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}

// Insert stores a new listing and returns its id.
func (r *PropertyRepo) Insert(ctx context.Context, rec *domain.PropertyRecord) (string, error) {
	rec.ID = uuid.NewString()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	enc := map[string]any{
		"location": rec.Location, "images": rec.Images, "videos": rec.Videos,
		"amenities": rec.Amenities, "features": rec.PropertyFeatures, "personal": rec.PersonalDetails,
	}
	js := map[string]sql.NullString{}
	for k, v := range enc {
		s, err := encodeJSON(v)
		if err != nil {
			return "", fmt.Errorf("encode %s: %w", k, err)
		}
		js[k] = s
	}
	var price sql.NullFloat64
	if rec.Price != nil {
		price = sql.NullFloat64{Float64: float64(*rec.Price), Valid: true}
	}
	listedBy := sql.NullString{String: rec.ListedBy, Valid: rec.ListedBy != ""}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO properties(`+propertyColumns+`)
		VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		rec.ID, rec.Title, rec.PropertyType, price, rec.Negotiable, rec.Description,
		rec.AvailabilityStatus, rec.PropertyStatus, rec.Bhk,
		js["location"], js["images"], js["videos"], js["amenities"], js["features"], js["personal"],
		listedBy, formatTime(rec.CreatedAt))
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

// Find returns listings matching f in insertion order, or newest first.
func (r *PropertyRepo) Find(ctx context.Context, f listing.Filter, opts listing.FindOptions) ([]domain.PropertyRecord, error) {
	where, args, err := whereSQL(f)
	if err != nil {
		return nil, err
	}
	q := `SELECT ` + propertyColumns + ` FROM properties WHERE ` + where
	if opts.Sort == listing.SortNewest {
		q += ` ORDER BY created_at DESC, rowid DESC`
	} else {
		q += ` ORDER BY rowid`
	}
	if opts.Limit > 0 {
		q += ` LIMIT ?`
		args = append(args, opts.Limit)
	}

	var rows []propertyRow
	if err := r.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, err
	}
	out := make([]domain.PropertyRecord, len(rows))
	for i, row := range rows {
		out[i] = row.record()
	}
	return out, nil
}

func (r *PropertyRepo) Get(ctx context.Context, id string) (domain.PropertyRecord, error) {
	var row propertyRow
	err := r.db.GetContext(ctx, &row, `SELECT `+propertyColumns+` FROM properties WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.PropertyRecord{}, domain.ErrPropertyNotFound
	}
	if err != nil {
		return domain.PropertyRecord{}, err
	}
	return row.record(), nil
}

func (r *PropertyRepo) Exists(ctx context.Context, id string) (bool, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM properties WHERE id = ?`, id); err != nil {
		return false, err
	}
	return n > 0, nil
}
