package mongodb

import (
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/akwaba/listing-service/internal/listing/domain"
)

// buildFilter translates a conjunctive clause set to a bson filter document.
// Range ops on the same field merge into one operator document so a
// min+max pair becomes {"$gte": min, "$lte": max}. A contradictory range is
// translated as-is and simply matches nothing.
func buildFilter(clauses []domain.Clause) (bson.M, error) {
	out := bson.M{}
	for _, c := range clauses {
		switch c.Op {
		case domain.OpEq:
			out[c.Field] = c.Value
		case domain.OpGte:
			mergeRange(out, c.Field, "$gte", c.Value)
		case domain.OpLte:
			mergeRange(out, c.Field, "$lte", c.Value)
		case domain.OpContains:
			s, ok := c.Value.(string)
			if !ok {
				return nil, fmt.Errorf("%w: contains wants a string, got %T", domain.ErrUnsupportedClause, c.Value)
			}
			out[c.Field] = bson.M{"$regex": regexp.QuoteMeta(s), "$options": "i"}
		default:
			return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedClause, c.Op)
		}
	}
	return out, nil
}

func mergeRange(filter bson.M, field, op string, value interface{}) {
	if existing, ok := filter[field].(bson.M); ok {
		existing[op] = value
		return
	}
	filter[field] = bson.M{op: value}
}
