package mongo

import (
	"math"
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/univadmin/records-system/internal/core/query"
)

func TestToBSON_EqualsAndSearch(t *testing.T) {
	sel := toBSON(query.Filter{
		Equals:       map[string]any{"role": "student", "needsPasswordChange": true},
		SearchTerm:   "s-0.1",
		SearchFields: []string{"id"},
	})

	if sel["role"] != "student" || sel["needsPasswordChange"] != true {
		t.Fatalf("equality fields missing: %+v", sel)
	}
	or, ok := sel["$or"].(bson.A)
	if !ok || len(or) != 1 {
		t.Fatalf("expected one $or clause, got %+v", sel["$or"])
	}
	want := bson.M{"id": bson.M{"$regex": `s-0\.1`, "$options": "i"}}
	if !reflect.DeepEqual(or[0], want) {
		t.Fatalf("got %+v, want %+v", or[0], want)
	}
}

func TestToBSON_Empty(t *testing.T) {
	if sel := toBSON(query.Filter{}); len(sel) != 0 {
		t.Fatalf("expected empty selector, got %+v", sel)
	}
	if sel := toBSON(query.Filter{SearchTerm: "x"}); len(sel) != 0 {
		t.Fatalf("search without fields must not filter, got %+v", sel)
	}
}

func TestFindOptions(t *testing.T) {
	opts := findOptions(query.PageOptions{Page: 3, Limit: 10, SortBy: "title", SortOrder: query.Asc})

	if opts.Skip == nil || *opts.Skip != 20 {
		t.Fatalf("expected skip 20, got %v", opts.Skip)
	}
	if opts.Limit == nil || *opts.Limit != 10 {
		t.Fatalf("expected limit 10, got %v", opts.Limit)
	}
	want := bson.D{{Key: "title", Value: 1}, {Key: "_id", Value: 1}}
	if !reflect.DeepEqual(opts.Sort, want) {
		t.Fatalf("got sort %+v, want %+v", opts.Sort, want)
	}

	desc := findOptions(query.PageOptions{Page: 1, Limit: 5, SortBy: "createdAt", SortOrder: query.Desc})
	if got := desc.Sort.(bson.D)[0].Value; got != -1 {
		t.Fatalf("expected descending sort, got %v", got)
	}
}

func TestFindOptions_HugePageSkipStaysPositive(t *testing.T) {
	opts := findOptions(query.PageOptions{Page: math.MaxInt, Limit: 10}.Normalize())

	if opts.Skip == nil || *opts.Skip < 0 {
		t.Fatalf("expected a non-negative skip, got %v", opts.Skip)
	}
}
