package listing_test

import (
	"reflect"
	"testing"
	"time"

	"dreamhome/internal/domain"
	"dreamhome/internal/listing"
)

func strp(s string) *string { return &s }

func TestNormalizeSparseRecordsGetFamilyDefaults(t *testing.T) {
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	cases := []struct {
		name          string
		propertyType  string
		wantAmenities map[string]any
		wantFeatures  map[string]any
		wantAvail     string
		wantStatus    string
	}{
		{
			name:         "residential",
			propertyType: "Apartment",
			wantAmenities: map[string]any{
				"parking": "No", "lift": "No", "security": "No", "powerBackup": "No",
				"waterSupply": "No", "boundaryWall": "No", "gatedCommunity": "No", "bathrooms": "1",
				"totalFloors": "N/A", "floorNo": "N/A", "furnishing": "N/A",
				"builtupArea": "N/A", "carpetArea": "N/A",
			},
			wantFeatures: map[string]any{},
			wantAvail:    "Ready to Move",
			wantStatus:   "New Project",
		},
		{
			name:         "land",
			propertyType: "Residential Land",
			wantAmenities: map[string]any{
				"parking": "No", "security": "No", "powerBackup": "No",
				"waterSupply": "No", "boundaryWall": "No", "gatedCommunity": "No",
			},
			wantFeatures: map[string]any{
				"areaUnit": "N/A", "areaValue": "N/A", "anyConstructionDone": "No",
				"plotFacing": "N/A", "transactionType": "N/A", "roadAccessType": "N/A",
			},
			wantAvail:  "N/A",
			wantStatus: "N/A",
		},
		{
			name:         "office",
			propertyType: "Co-working Space",
			wantAmenities: map[string]any{
				"parking": "No", "security": "No", "powerBackup": "No",
				"waterSupply": "No", "boundaryWall": "No", "gatedCommunity": "No",
				"lift": "No", "internet": "No", "publicTransport": "No",
				"pantry": "Not Available", "washroom": "Not Available",
			},
			wantFeatures: map[string]any{
				"carpetArea": "N/A", "floorNo": "N/A", "furnishing": "N/A",
				"cabins": "N/A", "workstations": "N/A", "roadAccessType": "N/A",
			},
			wantAvail:  "N/A",
			wantStatus: "N/A",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := listing.Normalize(domain.PropertyRecord{
				ID: "p1", Title: "T", PropertyType: tc.propertyType, CreatedAt: created,
			})
			if !reflect.DeepEqual(got.Amenities, tc.wantAmenities) {
				t.Fatalf("amenities = %v, want %v", got.Amenities, tc.wantAmenities)
			}
			if !reflect.DeepEqual(got.PropertyFeatures, tc.wantFeatures) {
				t.Fatalf("features = %v, want %v", got.PropertyFeatures, tc.wantFeatures)
			}
			if got.AvailabilityStatus != tc.wantAvail || got.PropertyStatus != tc.wantStatus || got.Bhk != "N/A" {
				t.Fatalf("top-level defaults wrong: %+v", got)
			}
			if got.Negotiable != "No" || got.ListedBy != "Unknown" || got.Description != "" {
				t.Fatalf("common defaults wrong: %+v", got)
			}
			if got.CreatedAt != "2024-03-01T10:00:00Z" {
				t.Fatalf("createdAt = %q", got.CreatedAt)
			}
			if len(got.Images) != len(listing.CategoryKeys) {
				t.Fatalf("images keys = %d", len(got.Images))
			}
		})
	}
}

func TestNormalizeStoredValuesWin(t *testing.T) {
	got := listing.Normalize(domain.PropertyRecord{
		PropertyType:       "Office",
		AvailabilityStatus: strp("Under Construction"),
		Negotiable:         strp("Yes"),
		Amenities:          map[string]any{"pantry": "Shared", "parking": "Yes", "cctv": "Yes"},
		PropertyFeatures:   map[string]any{"cabins": "4"},
		ListedBy:           "u-1",
	})
	if got.Amenities["pantry"] != "Shared" || got.Amenities["parking"] != "Yes" {
		t.Fatalf("stored amenities overwritten: %v", got.Amenities)
	}
	if got.Amenities["cctv"] != "Yes" {
		t.Fatalf("extra stored key dropped: %v", got.Amenities)
	}
	if got.Amenities["washroom"] != "Not Available" {
		t.Fatalf("default missing: %v", got.Amenities)
	}
	if got.PropertyFeatures["cabins"] != "4" || got.PropertyFeatures["workstations"] != "N/A" {
		t.Fatalf("features = %v", got.PropertyFeatures)
	}
	if got.AvailabilityStatus != "Under Construction" || got.Negotiable != "Yes" || got.ListedBy != "u-1" {
		t.Fatalf("stored top-level overwritten: %+v", got)
	}
}

func TestNormalizeResidentialRederivesFromFeatures(t *testing.T) {
	got := listing.Normalize(domain.PropertyRecord{
		PropertyType: "Villa",
		Amenities: map[string]any{
			"furnishing": "Unfurnished", // stale value, features win
			"floorNo":    "9",
			"lift":       "Yes",
		},
		PropertyFeatures: map[string]any{"furnishing": "Semi-Furnished", "bhk": "3"},
	})
	if got.Amenities["furnishing"] != "Semi-Furnished" {
		t.Fatalf("furnishing = %v, want value from propertyFeatures", got.Amenities["furnishing"])
	}
	if got.Amenities["floorNo"] != "N/A" {
		t.Fatalf("floorNo = %v, want N/A since propertyFeatures lacks it", got.Amenities["floorNo"])
	}
	if got.Amenities["lift"] != "Yes" {
		t.Fatalf("lift = %v", got.Amenities["lift"])
	}
	if !reflect.DeepEqual(got.PropertyFeatures, map[string]any{"furnishing": "Semi-Furnished", "bhk": "3"}) {
		t.Fatalf("residential features should pass through: %v", got.PropertyFeatures)
	}
}

func TestNormalizeNullStoredValueFallsBackToDefault(t *testing.T) {
	got := listing.Normalize(domain.PropertyRecord{
		PropertyType:     "Agriculture Land",
		Amenities:        map[string]any{"parking": nil},
		PropertyFeatures: map[string]any{"plotFacing": nil},
	})
	if got.Amenities["parking"] != "No" || got.PropertyFeatures["plotFacing"] != "N/A" {
		t.Fatalf("nil stored values must not erase defaults: %v %v", got.Amenities, got.PropertyFeatures)
	}
}

func TestNormalizeResidentialFeaturesKeepNulls(t *testing.T) {
	got := listing.Normalize(domain.PropertyRecord{
		PropertyType:     "Flat",
		PropertyFeatures: map[string]any{"floorNo": nil, "custom": "x"},
	})
	want := map[string]any{"floorNo": nil, "custom": "x"}
	if !reflect.DeepEqual(got.PropertyFeatures, want) {
		t.Fatalf("features = %v, want %v", got.PropertyFeatures, want)
	}
	if got.Amenities["floorNo"] != "N/A" {
		t.Fatalf("derived floorNo = %v", got.Amenities["floorNo"])
	}
}

func TestNormalizeLegacyShapes(t *testing.T) {
	p := domain.Price(4500000)
	got := listing.Normalize(domain.PropertyRecord{
		PropertyType: "House",
		Location:     "Pune",
		Images:       []any{"a.jpg", "b.jpg"},
		Price:        &p,
	})
	if !reflect.DeepEqual(got.Location, map[string]any{"city": "Pune", "state": ""}) {
		t.Fatalf("location = %v", got.Location)
	}
	if !reflect.DeepEqual(got.Images["others"], []string{"a.jpg", "b.jpg"}) {
		t.Fatalf("images = %v", got.Images)
	}
	if got.Price != "4500000" {
		t.Fatalf("price = %q", got.Price)
	}
}

func TestNormalizeAllKeepsOrder(t *testing.T) {
	recs := []domain.PropertyRecord{{ID: "c"}, {ID: "a"}, {ID: "b"}}
	got := listing.NormalizeAll(recs)
	for i, r := range recs {
		if got[i].ID != r.ID {
			t.Fatalf("order changed at %d: %s", i, got[i].ID)
		}
	}
}

func TestBuildStoredAttributes(t *testing.T) {
	submitted := map[string]any{"bhk": "2", "furnishing": "Furnished", "parking": "Yes"}

	am, feat := listing.BuildStoredAttributes(listing.Residential, submitted)
	if am["furnishing"] != "Furnished" || am["parking"] != "Yes" || am["bathrooms"] != "1" || am["carpetArea"] != "N/A" {
		t.Fatalf("residential amenities = %v", am)
	}
	if _, ok := am["bhk"]; ok {
		t.Fatalf("bhk leaked into amenities: %v", am)
	}
	if !reflect.DeepEqual(feat, submitted) {
		t.Fatalf("residential features = %v", feat)
	}

	am, feat = listing.BuildStoredAttributes(listing.Office, submitted)
	if am["parking"] != "Yes" || am["pantry"] != "Not Available" {
		t.Fatalf("office amenities = %v", am)
	}
	if feat["furnishing"] != "Furnished" || feat["cabins"] != "N/A" {
		t.Fatalf("office features = %v", feat)
	}
	if _, ok := feat["bhk"]; ok {
		t.Fatalf("office features should only carry schema keys: %v", feat)
	}
}
