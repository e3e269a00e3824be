package listing

// CategoryKeys are the media groups every listing response carries.
var CategoryKeys = []string{
	"exterior_view", "living_room", "bedrooms", "bathrooms", "kitchen",
	"floor_plan", "master_plan", "location_map", "others",
}

// NormalizeImages coerces whatever is stored under images into the keyed
// media map. A flat list (old listings) lands under "others"; a map is laid
// over the empty canonical map; anything else yields the empty map.
func NormalizeImages(v any) map[string][]string {
	out := make(map[string][]string, len(CategoryKeys))
	for _, k := range CategoryKeys {
		out[k] = []string{}
	}
	switch t := v.(type) {
	case []any, []string:
		out["others"] = stringList(t)
	case map[string]any:
		for k, refs := range t {
			out[k] = stringList(refs)
		}
	case map[string][]string:
		for k, refs := range t {
			out[k] = stringList(refs)
		}
	}
	return out
}

func stringList(v any) []string {
	out := []string{}
	switch t := v.(type) {
	case []string:
		out = append(out, t...)
	case []any:
		for _, e := range t {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
	}
	return out
}
