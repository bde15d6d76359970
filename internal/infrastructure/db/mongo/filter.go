package mongo

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/univadmin/records-system/internal/core/query"
)

// toBSON renders a translated filter as a Mongo selector. The search term
// becomes a case-insensitive, regex-escaped $or across the search fields.
func toBSON(f query.Filter) bson.M {
	sel := bson.M{}
	for field, v := range f.Equals {
		sel[field] = v
	}

	if f.SearchTerm != "" && len(f.SearchFields) > 0 {
		pattern := regexp.QuoteMeta(f.SearchTerm)
		or := make(bson.A, 0, len(f.SearchFields))
		for _, field := range f.SearchFields {
			or = append(or, bson.M{field: bson.M{"$regex": pattern, "$options": "i"}})
		}
		sel["$or"] = or
	}
	return sel
}

// findOptions renders page options as sort/skip/limit. _id breaks ties so
// consecutive pages never overlap.
func findOptions(p query.PageOptions) *options.FindOptions {
	dir := -1
	if p.SortOrder == query.Asc {
		dir = 1
	}
	return options.Find().
		SetSort(bson.D{{Key: p.SortBy, Value: dir}, {Key: "_id", Value: dir}}).
		SetSkip(int64(p.Skip())).
		SetLimit(int64(p.Limit))
}
