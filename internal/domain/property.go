package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// PropertyRecord is a listing as it sits in the store. Older documents may
// carry a flat string location or a flat list of images, so those fields are
// kept loosely typed and shaped at the response boundary.
type PropertyRecord struct {
	ID                 string
	Title              string
	PropertyType       string
	Price              *Price
	Negotiable         *string
	Description        *string
	AvailabilityStatus *string
	PropertyStatus     *string
	Bhk                *string
	Location           any
	Images             any
	Videos             []string
	Amenities          map[string]any
	PropertyFeatures   map[string]any
	PersonalDetails    map[string]any
	ListedBy           string
	CreatedAt          time.Time
}

// Location is the structured address submitted with new listings.
type Location struct {
	State     string `json:"state" bson:"state"`
	City      string `json:"city" bson:"city"`
	Locality  string `json:"locality" bson:"locality"`
	Address   string `json:"address" bson:"address"`
	PinCode   string `json:"pinCode" bson:"pinCode"`
	Landmarks string `json:"landmarks" bson:"landmarks"`
}

// AsMap returns the location in the stored document shape.
func (l Location) AsMap() map[string]any {
	return map[string]any{
		"state":     l.State,
		"city":      l.City,
		"locality":  l.Locality,
		"address":   l.Address,
		"pinCode":   l.PinCode,
		"landmarks": l.Landmarks,
	}
}

// Price is a listing price in whole currency units.
type Price float64

// ParsePrice accepts plain decimal numbers, optionally with thousands
// separators ("4,500,000").
func ParsePrice(s string) (Price, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, fmt.Errorf("empty price")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse price %q: %w", s, err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0, fmt.Errorf("price %q out of range", s)
	}
	return Price(f), nil
}

// PriceFrom converts a loosely typed stored value. Legacy documents keep the
// price as a string.
func PriceFrom(v any) (*Price, bool) {
	switch t := v.(type) {
	case nil:
		return nil, false
	case float64:
		p := Price(t)
		return &p, true
	case float32:
		p := Price(t)
		return &p, true
	case int:
		p := Price(t)
		return &p, true
	case int32:
		p := Price(t)
		return &p, true
	case int64:
		p := Price(t)
		return &p, true
	case string:
		p, err := ParsePrice(t)
		if err != nil {
			return nil, false
		}
		return &p, true
	}
	return nil, false
}

func (p Price) String() string {
	return strconv.FormatFloat(float64(p), 'f', -1, 64)
}
