package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/univadmin/records-system/internal/core/domain"
	"github.com/univadmin/records-system/internal/core/query"
)

const collectionUsers = "users"

// withoutPassword is applied to every read except FindCredentials.
var withoutPassword = bson.M{"password": 0}

// UserRepository implements ports.UserRepository using MongoDB.
type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers)}
}

type mongoUser struct {
	ObjectID            primitive.ObjectID  `bson:"_id,omitempty"`
	ID                  string              `bson:"id"`
	Role                string              `bson:"role"`
	Password            string              `bson:"password,omitempty"`
	NeedsPasswordChange bool                `bson:"needsPasswordChange"`
	PasswordChangedAt   *time.Time          `bson:"passwordChangedAt,omitempty"`
	Student             *primitive.ObjectID `bson:"student,omitempty"`
	Faculty             *primitive.ObjectID `bson:"faculty,omitempty"`
	Admin               *primitive.ObjectID `bson:"admin,omitempty"`
	CreatedAt           time.Time           `bson:"createdAt"`
	UpdatedAt           time.Time           `bson:"updatedAt"`
}

func (m mongoUser) toDomain() *domain.User {
	u := &domain.User{
		ID:                  m.ID,
		Role:                domain.Role(m.Role),
		NeedsPasswordChange: m.NeedsPasswordChange,
		Profile: domain.ProfileLinks{
			Student: refHex(m.Student),
			Faculty: refHex(m.Faculty),
			Admin:   refHex(m.Admin),
		},
		CreatedAt: m.CreatedAt.UTC(),
		UpdatedAt: m.UpdatedAt.UTC(),
	}
	if m.PasswordChangedAt != nil {
		t := m.PasswordChangedAt.UTC()
		u.PasswordChangedAt = &t
	}
	return u
}

// Create inserts the account. The unique index on id turns a collision into
// domain.ErrUserExists.
func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	refs, err := toProfileRefs(u.Profile)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoUser{
		ID:                  u.ID,
		Role:                string(u.Role),
		Password:            u.PasswordHash,
		NeedsPasswordChange: u.NeedsPasswordChange,
		PasswordChangedAt:   u.PasswordChangedAt,
		Student:             refs["student"],
		Faculty:             refs["faculty"],
		Admin:               refs["admin"],
		CreatedAt:           u.CreatedAt,
		UpdatedAt:           u.UpdatedAt,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrUserExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) List(ctx context.Context, filter query.Filter, page query.PageOptions) ([]*domain.User, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	sel := toBSON(filter)
	total, err := r.col.CountDocuments(ctx, sel)
	if err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	cur, err := r.col.Find(ctx, sel, findOptions(page).SetProjection(withoutPassword))
	if err != nil {
		return nil, 0, fmt.Errorf("find users: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoUser
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("decode users: %w", err)
	}

	out := make([]*domain.User, len(docs))
	for i, d := range docs {
		out[i] = d.toDomain()
	}
	return out, total, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoUser
	err := r.col.FindOne(ctx, bson.M{"id": id}, options.FindOne().SetProjection(withoutPassword)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return doc.toDomain(), nil
}

// FindCredentials is the only read that selects the password hash.
func (r *UserRepository) FindCredentials(ctx context.Context, id string) (*domain.Credentials, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	projection := bson.M{"id": 1, "role": 1, "password": 1, "needsPasswordChange": 1}
	var doc mongoUser
	err := r.col.FindOne(ctx, bson.M{"id": id}, options.FindOne().SetProjection(projection)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user credentials: %w", err)
	}
	return &domain.Credentials{
		ID:                  doc.ID,
		Role:                domain.Role(doc.Role),
		PasswordHash:        doc.Password,
		NeedsPasswordChange: doc.NeedsPasswordChange,
	}, nil
}

// Update applies patch with $set. The password field is never part of the
// update document.
func (r *UserRepository) Update(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	unset := bson.M{}
	if patch.NeedsPasswordChange != nil {
		set["needsPasswordChange"] = *patch.NeedsPasswordChange
	}
	if p := patch.Profile; p != nil {
		refs, err := toProfileRefs(*p)
		if err != nil {
			return nil, err
		}
		for field, ref := range refs {
			if ref == nil {
				unset[field] = ""
			} else {
				set[field] = *ref
			}
		}
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(withoutPassword)

	var doc mongoUser
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"id": id}, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return doc.toDomain(), nil
}

// SetPassword stores a new hash, clears needsPasswordChange and stamps
// passwordChangedAt in one update.
func (r *UserRepository) SetPassword(ctx context.Context, id, hash string, changedAt time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{
		"password":            hash,
		"needsPasswordChange": false,
		"passwordChangedAt":   changedAt,
		"updatedAt":           changedAt,
	}})
	if err != nil {
		return fmt.Errorf("set user password: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoUser
	err := r.col.FindOneAndDelete(ctx, bson.M{"id": id}, options.FindOneAndDelete().SetProjection(withoutPassword)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("delete user: %w", err)
	}
	return doc.toDomain(), nil
}

// EnsureIndexes creates the unique identifier index and the role lookup index.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "role", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

// toProfileRefs parses the profile links into ObjectIDs keyed by their BSON
// field. Empty links map to nil.
func toProfileRefs(p domain.ProfileLinks) (map[string]*primitive.ObjectID, error) {
	refs := make(map[string]*primitive.ObjectID, 3)
	for field, v := range map[string]string{"student": p.Student, "faculty": p.Faculty, "admin": p.Admin} {
		if v == "" {
			refs[field] = nil
			continue
		}
		oid, err := primitive.ObjectIDFromHex(v)
		if err != nil {
			return nil, domain.NewValidationError(field, "must be a valid ObjectId")
		}
		refs[field] = &oid
	}
	return refs, nil
}

func refHex(ref *primitive.ObjectID) string {
	if ref == nil {
		return ""
	}
	return ref.Hex()
}
