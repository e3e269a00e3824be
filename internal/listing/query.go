package listing

import (
	"strings"

	"dreamhome/internal/domain"
)

// Op is a comparison understood by every store adapter.
type Op int

const (
	OpEq Op = iota
	// OpContains is a case-insensitive literal substring match.
	OpContains
	OpGte
	OpLte
	OpIn
	OpNotIn
)

// Document paths used in conditions.
const (
	FieldTitle              = "title"
	FieldPropertyType       = "propertyType"
	FieldPrice              = "price"
	FieldCity               = "location.city"
	FieldBhk                = "bhk"
	FieldAvailabilityStatus = "availabilityStatus"
	FieldPropertyStatus     = "propertyStatus"
	FieldListedBy           = "listedBy"
	FieldCreatedAt          = "createdAt"
)

// AmenityField and FeatureField address keys inside the nested maps.
func AmenityField(key string) string { return "amenities." + key }
func FeatureField(key string) string { return "propertyFeatures." + key }

type Condition struct {
	Field  string
	Op     Op
	Value  any
	Values []string
}

// Filter holds conditions that must all hold, plus an optional group of
// which at least one must hold.
type Filter struct {
	All []Condition
	Any []Condition
}

func (f Filter) IsEmpty() bool { return len(f.All) == 0 && len(f.Any) == 0 }

// And merges two filters. Only one side may carry an Any group.
func (f Filter) And(o Filter) Filter {
	out := Filter{All: append(append([]Condition{}, f.All...), o.All...)}
	out.Any = f.Any
	if len(o.Any) > 0 {
		out.Any = o.Any
	}
	return out
}

type Sort int

const (
	SortInserted Sort = iota
	SortNewest
)

// FindOptions control ordering and size of a listing query. Limit <= 0
// means no limit.
type FindOptions struct {
	Sort  Sort
	Limit int
}

// exact maps query parameter -> document path for plain equality filters.
var exact = []struct{ param, field string }{
	{"bhk", FieldBhk},
	{"availabilityStatus", FieldAvailabilityStatus},
	{"propertyStatus", FieldPropertyStatus},
	{"parking", AmenityField("parking")},
	{"lift", AmenityField("lift")},
	{"security", AmenityField("security")},
	{"anyConstructionDone", FeatureField("anyConstructionDone")},
	{"transactionType", FeatureField("transactionType")},
	{"internet", AmenityField("internet")},
	{"publicTransport", AmenityField("publicTransport")},
}

// FilterParams lists every query parameter ParseFilter understands.
var FilterParams = []string{
	"location", "priceMin", "priceMax", "bhk", "propertyType",
	"availabilityStatus", "propertyStatus", "parking", "lift", "security",
	"anyConstructionDone", "plotFacing", "transactionType", "internet",
	"publicTransport", "search",
}

// ParseFilter builds the search predicate. Blank parameters are ignored; a
// price bound that is not a number is rejected.
func ParseFilter(params map[string]string) (Filter, error) {
	get := func(k string) string { return strings.TrimSpace(params[k]) }
	var f Filter

	if v := get("location"); v != "" {
		f.All = append(f.All, Condition{Field: FieldCity, Op: OpContains, Value: v})
	}
	for _, b := range []struct {
		param string
		op    Op
	}{{"priceMin", OpGte}, {"priceMax", OpLte}} {
		v := get(b.param)
		if v == "" {
			continue
		}
		p, err := domain.ParsePrice(v)
		if err != nil {
			return Filter{}, domain.Invalid(b.param, "Invalid price format")
		}
		f.All = append(f.All, Condition{Field: FieldPrice, Op: b.op, Value: float64(p)})
	}
	if v := get("propertyType"); v != "" {
		f.All = append(f.All, Condition{Field: FieldPropertyType, Op: OpContains, Value: v})
	}
	for _, e := range exact {
		if v := get(e.param); v != "" {
			f.All = append(f.All, Condition{Field: e.field, Op: OpEq, Value: v})
		}
	}
	if v := get("plotFacing"); v != "" {
		f.All = append(f.All, Condition{Field: FeatureField("plotFacing"), Op: OpIn, Values: []string{v, na}})
	}
	if v := get("search"); v != "" {
		f.Any = []Condition{
			{Field: FieldTitle, Op: OpContains, Value: v},
			{Field: FieldCity, Op: OpContains, Value: v},
		}
	}
	return f, nil
}

// FamilyFilter restricts a query to one family. Office has no type list of
// its own, so it excludes the other two.
func FamilyFilter(f Family) Filter {
	switch f {
	case Residential:
		return Filter{All: []Condition{{Field: FieldPropertyType, Op: OpIn, Values: ResidentialTypes}}}
	case Land:
		return Filter{All: []Condition{{Field: FieldPropertyType, Op: OpIn, Values: LandTypes}}}
	default:
		others := append(append([]string{}, ResidentialTypes...), LandTypes...)
		return Filter{All: []Condition{{Field: FieldPropertyType, Op: OpNotIn, Values: others}}}
	}
}

func OwnerFilter(userID string) Filter {
	return Filter{All: []Condition{{Field: FieldListedBy, Op: OpEq, Value: userID}}}
}
