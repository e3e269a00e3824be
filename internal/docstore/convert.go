package docstore

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"dreamhome/internal/domain"
)

// plain rewrites driver types into the JSON-native values the listing
// package works with.
func plain(v any) any {
	switch t := v.(type) {
	case bson.M:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = plain(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = plain(e)
		}
		return out
	case bson.D:
		out := make(map[string]any, len(t))
		for _, e := range t {
			out[e.Key] = plain(e.Value)
		}
		return out
	case bson.A:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = plain(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = plain(e)
		}
		return out
	case primitive.ObjectID:
		return t.Hex()
	case primitive.DateTime:
		return t.Time().UTC()
	case int32:
		return float64(t)
	case int64:
		return float64(t)
	}
	return v
}

func plainMap(v any) map[string]any {
	m, _ := plain(v).(map[string]any)
	return m
}

func idString(v any) string {
	switch t := v.(type) {
	case primitive.ObjectID:
		return t.Hex()
	case string:
		return t
	case nil:
		return ""
	}
	return fmt.Sprint(v)
}

func str(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case nil:
		return ""
	}
	return fmt.Sprint(plain(v))
}

func optStr(v any) *string {
	if v == nil {
		return nil
	}
	s := str(v)
	return &s
}

func timeOf(v any) time.Time {
	switch t := v.(type) {
	case primitive.DateTime:
		return t.Time().UTC()
	case time.Time:
		return t.UTC()
	}
	return time.Time{}
}

func stringList(v any) []string {
	list, ok := plain(v).([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, e := range list {
		if s, ok := e.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func recordFromDoc(doc bson.M) domain.PropertyRecord {
	rec := domain.PropertyRecord{
		ID:                 idString(doc["_id"]),
		Title:              str(doc["title"]),
		PropertyType:       str(doc["propertyType"]),
		Negotiable:         optStr(doc["negotiable"]),
		Description:        optStr(doc["description"]),
		AvailabilityStatus: optStr(doc["availabilityStatus"]),
		PropertyStatus:     optStr(doc["propertyStatus"]),
		Bhk:                optStr(doc["bhk"]),
		Location:           plain(doc["location"]),
		Images:             plain(doc["images"]),
		Videos:             stringList(doc["videos"]),
		Amenities:          plainMap(doc["amenities"]),
		PropertyFeatures:   plainMap(doc["propertyFeatures"]),
		PersonalDetails:    plainMap(doc["personalDetails"]),
		ListedBy:           str(doc["listedBy"]),
		CreatedAt:          timeOf(doc["createdAt"]),
	}
	if p, ok := domain.PriceFrom(plain(doc["price"])); ok {
		rec.Price = p
	}
	return rec
}

func docFromRecord(rec *domain.PropertyRecord) bson.D {
	d := bson.D{
		{Key: "title", Value: rec.Title},
		{Key: "propertyType", Value: rec.PropertyType},
	}
	if rec.Price != nil {
		d = append(d, bson.E{Key: "price", Value: float64(*rec.Price)})
	}
	for _, f := range []struct {
		key string
		val *string
	}{
		{"negotiable", rec.Negotiable},
		{"description", rec.Description},
		{"availabilityStatus", rec.AvailabilityStatus},
		{"propertyStatus", rec.PropertyStatus},
		{"bhk", rec.Bhk},
	} {
		if f.val != nil {
			d = append(d, bson.E{Key: f.key, Value: *f.val})
		}
	}
	videos := rec.Videos
	if videos == nil {
		videos = []string{}
	}
	d = append(d,
		bson.E{Key: "location", Value: rec.Location},
		bson.E{Key: "images", Value: rec.Images},
		bson.E{Key: "videos", Value: videos},
		bson.E{Key: "amenities", Value: rec.Amenities},
		bson.E{Key: "propertyFeatures", Value: rec.PropertyFeatures},
		bson.E{Key: "personalDetails", Value: rec.PersonalDetails},
		bson.E{Key: "listedBy", Value: rec.ListedBy},
		bson.E{Key: "createdAt", Value: rec.CreatedAt},
	)
	return d
}
