package mongo

import (
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/univadmin/records-system/internal/core/domain"
)

func TestToProfileRefs(t *testing.T) {
	oid := primitive.NewObjectID()

	refs, err := toProfileRefs(domain.ProfileLinks{Faculty: oid.Hex()})
	if err != nil {
		t.Fatalf("toProfileRefs returned error: %v", err)
	}
	if refs["faculty"] == nil || *refs["faculty"] != oid {
		t.Fatalf("faculty ref: got %v, want %s", refs["faculty"], oid.Hex())
	}
	if refs["student"] != nil || refs["admin"] != nil {
		t.Fatalf("empty links must map to nil, got %+v", refs)
	}
}

func TestToProfileRefs_RejectsBadHex(t *testing.T) {
	_, err := toProfileRefs(domain.ProfileLinks{Student: "not-an-object-id"})

	var verr *domain.ValidationError
	if !errors.As(err, &verr) || verr.Fields[0].Path != "student" {
		t.Fatalf("expected student validation error, got %v", err)
	}
}

func TestMongoUser_StoresProfileAsObjectID(t *testing.T) {
	oid := primitive.NewObjectID()
	doc := mongoUser{ID: "S-00001", Role: "student", Student: &oid}

	raw, err := bson.Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}
	val := bson.Raw(raw).Lookup("student")
	if val.Type != bson.TypeObjectID {
		t.Fatalf("student stored as %v, want ObjectID", val.Type)
	}
	if _, err := bson.Raw(raw).LookupErr("faculty"); err == nil {
		t.Fatalf("empty faculty link must be omitted")
	}

	var back mongoUser
	if err := bson.Unmarshal(raw, &back); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if got := back.toDomain().Profile.Student; got != oid.Hex() {
		t.Fatalf("round trip: got %q, want %q", got, oid.Hex())
	}
}
