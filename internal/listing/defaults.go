package listing

type fieldDefault struct {
	Key   string
	Value string
}

type familySchema struct {
	Amenities []fieldDefault
	// Features is nil for families whose propertyFeatures are passed through
	// as submitted.
	Features []fieldDefault
	// Derived amenity keys are always re-read from propertyFeatures, winning
	// over whatever the amenities map holds.
	Derived []fieldDefault

	AvailabilityStatus string
	PropertyStatus     string
	Bhk                string
}

const (
	no           = "No"
	notAvailable = "Not Available"
	na           = "N/A"
)

var schemas = map[Family]familySchema{
	Residential: {
		Amenities: []fieldDefault{
			{"parking", no}, {"lift", no}, {"security", no}, {"powerBackup", no},
			{"waterSupply", no}, {"boundaryWall", no}, {"gatedCommunity", no},
			{"bathrooms", "1"},
		},
		Derived: []fieldDefault{
			{"totalFloors", na}, {"floorNo", na}, {"furnishing", na},
			{"builtupArea", na}, {"carpetArea", na},
		},
		AvailabilityStatus: "Ready to Move",
		PropertyStatus:     "New Project",
		Bhk:                na,
	},
	Land: {
		Amenities: []fieldDefault{
			{"parking", no}, {"security", no}, {"powerBackup", no},
			{"waterSupply", no}, {"boundaryWall", no}, {"gatedCommunity", no},
		},
		Features: []fieldDefault{
			{"areaUnit", na}, {"areaValue", na}, {"anyConstructionDone", no},
			{"plotFacing", na}, {"transactionType", na}, {"roadAccessType", na},
		},
		AvailabilityStatus: na,
		PropertyStatus:     na,
		Bhk:                na,
	},
	Office: {
		Amenities: []fieldDefault{
			{"parking", no}, {"security", no}, {"powerBackup", no},
			{"waterSupply", no}, {"boundaryWall", no}, {"gatedCommunity", no},
			{"lift", no}, {"internet", no}, {"publicTransport", no},
			{"pantry", notAvailable}, {"washroom", notAvailable},
		},
		Features: []fieldDefault{
			{"carpetArea", na}, {"floorNo", na}, {"furnishing", na},
			{"cabins", na}, {"workstations", na}, {"roadAccessType", na},
		},
		AvailabilityStatus: na,
		PropertyStatus:     na,
		Bhk:                na,
	},
}

// overlay starts from the defaults and lets every non-nil stored value win.
// Stored keys outside the default set are kept.
func overlay(defs []fieldDefault, stored map[string]any) map[string]any {
	out := make(map[string]any, len(defs)+len(stored))
	for _, d := range defs {
		out[d.Key] = d.Value
	}
	for k, v := range stored {
		if v != nil {
			out[k] = v
		}
	}
	return out
}

// pick keeps only the default keys, taking submitted values where present.
func pick(defs []fieldDefault, submitted map[string]any) map[string]any {
	out := make(map[string]any, len(defs))
	for _, d := range defs {
		out[d.Key] = valueOr(submitted, d.Key, d.Value)
	}
	return out
}

func valueOr(m map[string]any, key, def string) any {
	if v, ok := m[key]; ok && v != nil {
		return v
	}
	return def
}

// BuildStoredAttributes splits the submitted feature map of a new listing
// into the amenities and propertyFeatures maps that get persisted.
func BuildStoredAttributes(f Family, submitted map[string]any) (amenities, features map[string]any) {
	s := schemas[f]
	amenities = pick(append(append([]fieldDefault{}, s.Amenities...), s.Derived...), submitted)
	if s.Features == nil {
		features = make(map[string]any, len(submitted))
		for k, v := range submitted {
			features[k] = v
		}
		return amenities, features
	}
	return amenities, pick(s.Features, submitted)
}
