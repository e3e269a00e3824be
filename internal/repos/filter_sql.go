package repos

import (
	"fmt"
	"strings"

	"dreamhome/internal/listing"
)

// columns maps top-level document paths onto properties columns.
var columns = map[string]string{
	listing.FieldTitle:              "title",
	listing.FieldPropertyType:       "property_type",
	listing.FieldPrice:              "price",
	listing.FieldBhk:                "bhk",
	listing.FieldAvailabilityStatus: "availability_status",
	listing.FieldPropertyStatus:     "property_status",
	listing.FieldListedBy:           "listed_by",
	listing.FieldCreatedAt:          "created_at",
}

// jsonColumns maps the first segment of a nested path onto its JSON column.
var jsonColumns = map[string]string{
	"location":         "location_json",
	"amenities":        "amenities_json",
	"propertyFeatures": "features_json",
}

// fieldExpr returns a SQL expression for a document path plus any args it
// binds. Nested keys are bound as JSON paths, never spliced into the SQL.
func fieldExpr(field string) (string, []any, error) {
	if col, ok := columns[field]; ok {
		return col, nil, nil
	}
	head, rest, ok := strings.Cut(field, ".")
	if col, known := jsonColumns[head]; ok && known && rest != "" {
		return "json_extract(" + col + ", ?)", []any{"$." + rest}, nil
	}
	return "", nil, fmt.Errorf("unsupported filter field %q", field)
}

func conditionSQL(c listing.Condition) (string, []any, error) {
	expr, args, err := fieldExpr(c.Field)
	if err != nil {
		return "", nil, err
	}
	switch c.Op {
	case listing.OpEq:
		return expr + " = ?", append(args, c.Value), nil
	case listing.OpContains:
		return "instr(LOWER(" + expr + "), LOWER(?)) > 0", append(args, c.Value), nil
	case listing.OpGte:
		return expr + " >= ?", append(args, c.Value), nil
	case listing.OpLte:
		return expr + " <= ?", append(args, c.Value), nil
	case listing.OpIn, listing.OpNotIn:
		if len(c.Values) == 0 {
			if c.Op == listing.OpIn {
				return "0", nil, nil
			}
			return "1", nil, nil
		}
		marks := strings.TrimSuffix(strings.Repeat("?,", len(c.Values)), ",")
		values := make([]any, len(c.Values))
		for i, v := range c.Values {
			values[i] = v
		}
		if c.Op == listing.OpIn {
			return expr + " IN (" + marks + ")", append(args, values...), nil
		}
		// Missing values count as "not in", like a document store's $nin.
		// expr appears twice, so its args are bound twice.
		all := append(append(append([]any{}, args...), args...), values...)
		return "(" + expr + " IS NULL OR " + expr + " NOT IN (" + marks + "))", all, nil
	}
	return "", nil, fmt.Errorf("unsupported filter op %d", c.Op)
}

// whereSQL renders a filter as a WHERE clause body ("1" when empty).
func whereSQL(f listing.Filter) (string, []any, error) {
	parts := []string{}
	var args []any
	for _, c := range f.All {
		s, a, err := conditionSQL(c)
		if err != nil {
			return "", nil, err
		}
		parts = append(parts, s)
		args = append(args, a...)
	}
	if len(f.Any) > 0 {
		var ors []string
		for _, c := range f.Any {
			s, a, err := conditionSQL(c)
			if err != nil {
				return "", nil, err
			}
			ors = append(ors, s)
			args = append(args, a...)
		}
		parts = append(parts, "("+strings.Join(ors, " OR ")+")")
	}
	if len(parts) == 0 {
		return "1", nil, nil
	}
	return strings.Join(parts, " AND "), args, nil
}
