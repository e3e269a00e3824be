// Package listing shapes stored property records into API responses and
// turns search parameters into store-neutral filters.
package listing

// Family groups property types that share the same amenity and feature
// schema.
type Family int

const (
	Office Family = iota
	Residential
	Land
)

func (f Family) String() string {
	switch f {
	case Residential:
		return "residential"
	case Land:
		return "land"
	default:
		return "office"
	}
}

// ResidentialTypes and LandTypes are matched exactly. Anything else is an
// office listing.
var (
	ResidentialTypes = []string{"Flat", "Apartment", "Villa", "House", "Farm House"}
	LandTypes        = []string{"Residential Land", "Commercial Land", "Agriculture Land"}
)

// Classify maps a free-text property type onto its family.
func Classify(propertyType string) Family {
	switch {
	case contains(ResidentialTypes, propertyType):
		return Residential
	case contains(LandTypes, propertyType):
		return Land
	default:
		return Office
	}
}

func contains(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}
