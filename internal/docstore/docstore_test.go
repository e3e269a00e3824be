package docstore

import (
	"reflect"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"dreamhome/internal/listing"
)

func TestFilterDocFromParams(t *testing.T) {
	f, err := listing.ParseFilter(map[string]string{
		"location": "new (delhi)",
		"priceMin": "100",
		"priceMax": "200",
		"search":   "sea",
	})
	if err != nil {
		t.Fatal(err)
	}
	got, err := filterDoc(f)
	if err != nil {
		t.Fatal(err)
	}
	want := bson.M{"$and": bson.A{
		bson.M{"location.city": bson.M{"$regex": `new \(delhi\)`, "$options": "i"}},
		bson.M{"price": bson.M{"$gte": 100.0}},
		bson.M{"price": bson.M{"$lte": 200.0}},
		bson.M{"$or": bson.A{
			bson.M{"title": bson.M{"$regex": "sea", "$options": "i"}},
			bson.M{"location.city": bson.M{"$regex": "sea", "$options": "i"}},
		}},
	}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got  %#v\nwant %#v", got, want)
	}
}

func TestFilterDocSingleAndEmpty(t *testing.T) {
	got, _ := filterDoc(listing.OwnerFilter("u1"))
	if !reflect.DeepEqual(got, bson.M{"listedBy": "u1"}) {
		t.Fatalf("owner filter = %#v", got)
	}
	got, _ = filterDoc(listing.Filter{})
	if len(got) != 0 {
		t.Fatalf("empty filter = %#v", got)
	}
	got, _ = filterDoc(listing.FamilyFilter(listing.Office))
	nin, ok := got["propertyType"].(bson.M)["$nin"].([]string)
	if !ok || len(nin) != len(listing.ResidentialTypes)+len(listing.LandTypes) {
		t.Fatalf("office filter = %#v", got)
	}
}

func TestRecordFromLegacyDoc(t *testing.T) {
	oid := primitive.NewObjectID()
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	doc := bson.M{
		"_id":          oid,
		"title":        "Old Flat",
		"propertyType": "Flat",
		"price":        "2500000",
		"location":     "Pune",
		"images":       bson.A{"uploads/images/a.jpg", int32(7)},
		"amenities":    bson.M{"lift": "Yes", "floors": int32(3)},
		"propertyFeatures": bson.D{
			{Key: "furnishing", Value: "Semi"},
		},
		"createdAt": primitive.NewDateTimeFromTime(created),
	}
	rec := recordFromDoc(doc)
	if rec.ID != oid.Hex() || rec.Price == nil || float64(*rec.Price) != 2500000 {
		t.Fatalf("rec = %+v", rec)
	}
	if rec.Location != "Pune" || !rec.CreatedAt.Equal(created) {
		t.Fatalf("location/createdAt = %v %v", rec.Location, rec.CreatedAt)
	}
	if rec.Amenities["floors"] != 3.0 || rec.PropertyFeatures["furnishing"] != "Semi" {
		t.Fatalf("maps = %v %v", rec.Amenities, rec.PropertyFeatures)
	}
	if rec.Bhk != nil || rec.ListedBy != "" {
		t.Fatalf("absent fields should stay absent: bhk=%v listedBy=%q", rec.Bhk, rec.ListedBy)
	}

	resp := listing.Normalize(rec)
	if got := resp.Images["others"]; len(got) != 1 || got[0] != "uploads/images/a.jpg" {
		t.Fatalf("images = %v", resp.Images)
	}
	if resp.Location["city"] != "Pune" || resp.ListedBy != "Unknown" || resp.Price != "2500000" {
		t.Fatalf("resp = %+v", resp)
	}
}
