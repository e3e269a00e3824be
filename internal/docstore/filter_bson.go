package docstore

import (
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"

	"dreamhome/internal/listing"
)

func conditionDoc(c listing.Condition) (bson.M, error) {
	switch c.Op {
	case listing.OpEq:
		return bson.M{c.Field: c.Value}, nil
	case listing.OpContains:
		return bson.M{c.Field: bson.M{"$regex": regexp.QuoteMeta(fmt.Sprint(c.Value)), "$options": "i"}}, nil
	case listing.OpGte:
		return bson.M{c.Field: bson.M{"$gte": c.Value}}, nil
	case listing.OpLte:
		return bson.M{c.Field: bson.M{"$lte": c.Value}}, nil
	case listing.OpIn:
		return bson.M{c.Field: bson.M{"$in": c.Values}}, nil
	case listing.OpNotIn:
		return bson.M{c.Field: bson.M{"$nin": c.Values}}, nil
	}
	return nil, fmt.Errorf("unsupported filter op %d on %s", c.Op, c.Field)
}

// filterDoc translates a listing filter. Conditions go under $and so two
// bounds on the same field do not overwrite each other.
func filterDoc(f listing.Filter) (bson.M, error) {
	var and bson.A
	for _, c := range f.All {
		d, err := conditionDoc(c)
		if err != nil {
			return nil, err
		}
		and = append(and, d)
	}
	if len(f.Any) > 0 {
		var or bson.A
		for _, c := range f.Any {
			d, err := conditionDoc(c)
			if err != nil {
				return nil, err
			}
			or = append(or, d)
		}
		and = append(and, bson.M{"$or": or})
	}
	switch len(and) {
	case 0:
		return bson.M{}, nil
	case 1:
		return and[0].(bson.M), nil
	}
	return bson.M{"$and": and}, nil
}
