package listing

import (
	"maps"
	"time"

	"dreamhome/internal/domain"
)

const unknownOwner = "Unknown"

// PropertyResponse is the uniform listing shape returned by every listing
// endpoint, whatever the family or age of the stored record.
type PropertyResponse struct {
	ID                 string              `json:"id"`
	Title              string              `json:"title"`
	PropertyType       string              `json:"propertyType"`
	Price              string              `json:"price"`
	Location           map[string]any      `json:"location"`
	Bhk                string              `json:"bhk"`
	Description        string              `json:"description"`
	Images             map[string][]string `json:"images"`
	Videos             []string            `json:"videos"`
	CreatedAt          string              `json:"createdAt"`
	Negotiable         string              `json:"negotiable"`
	AvailabilityStatus string              `json:"availabilityStatus"`
	PropertyStatus     string              `json:"propertyStatus"`
	Amenities          map[string]any      `json:"amenities"`
	ListedBy           string              `json:"listedBy"`
	PropertyFeatures   map[string]any      `json:"propertyFeatures"`
}

// Normalize fills every field the record's family mandates. Defaults are
// applied first and stored values always win, except for the residential
// amenity keys that are re-derived from propertyFeatures.
func Normalize(rec domain.PropertyRecord) PropertyResponse {
	fam := Classify(rec.PropertyType)
	s := schemas[fam]

	features := rec.PropertyFeatures
	if features == nil {
		features = map[string]any{}
	}
	amenities := overlay(s.Amenities, rec.Amenities)
	for _, d := range s.Derived {
		amenities[d.Key] = valueOr(features, d.Key, d.Value)
	}
	// Families without a feature schema return their features as stored,
	// null values included.
	var outFeatures map[string]any
	if s.Features == nil {
		outFeatures = maps.Clone(features)
	} else {
		outFeatures = overlay(s.Features, features)
	}

	resp := PropertyResponse{
		ID:                 rec.ID,
		Title:              rec.Title,
		PropertyType:       rec.PropertyType,
		Location:           normalizeLocation(rec.Location),
		Bhk:                strOr(rec.Bhk, s.Bhk),
		Description:        strOr(rec.Description, ""),
		Images:             NormalizeImages(rec.Images),
		Videos:             append([]string{}, rec.Videos...),
		Negotiable:         strOr(rec.Negotiable, "No"),
		AvailabilityStatus: strOr(rec.AvailabilityStatus, s.AvailabilityStatus),
		PropertyStatus:     strOr(rec.PropertyStatus, s.PropertyStatus),
		Amenities:          amenities,
		ListedBy:           rec.ListedBy,
		PropertyFeatures:   outFeatures,
	}
	if rec.Price != nil {
		resp.Price = rec.Price.String()
	}
	if !rec.CreatedAt.IsZero() {
		resp.CreatedAt = rec.CreatedAt.Format(time.RFC3339Nano)
	}
	if resp.ListedBy == "" {
		resp.ListedBy = unknownOwner
	}
	return resp
}

// NormalizeAll keeps the input order.
func NormalizeAll(recs []domain.PropertyRecord) []PropertyResponse {
	out := make([]PropertyResponse, len(recs))
	for i, r := range recs {
		out[i] = Normalize(r)
	}
	return out
}

func normalizeLocation(v any) map[string]any {
	switch t := v.(type) {
	case string:
		return map[string]any{"city": t, "state": ""}
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = val
		}
		return out
	}
	return map[string]any{}
}

func strOr(p *string, def string) string {
	if p == nil {
		return def
	}
	return *p
}
