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

const collectionAcademicFaculties = "academic_faculties"

// AcademicFacultyRepository implements ports.AcademicFacultyRepository using MongoDB.
type AcademicFacultyRepository struct {
	col *mongo.Collection
}

func NewAcademicFacultyRepository(db *mongo.Database) *AcademicFacultyRepository {
	return &AcademicFacultyRepository{col: db.Collection(collectionAcademicFaculties)}
}

type mongoFaculty struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Title     string             `bson:"title"`
	Slug      string             `bson:"slug"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func (m mongoFaculty) toDomain() *domain.AcademicFaculty {
	return &domain.AcademicFaculty{
		ID:        m.ID.Hex(),
		Title:     m.Title,
		Slug:      m.Slug,
		CreatedAt: m.CreatedAt.UTC(),
		UpdatedAt: m.UpdatedAt.UTC(),
	}
}

// Create inserts a new faculty document and assigns its ID.
func (r *AcademicFacultyRepository) Create(ctx context.Context, f *domain.AcademicFaculty) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoFaculty{
		ID:        primitive.NewObjectID(),
		Title:     f.Title,
		Slug:      f.Slug,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrFacultyExists
		}
		return fmt.Errorf("insert academic faculty: %w", err)
	}
	f.ID = doc.ID.Hex()
	return nil
}

// List returns a page of faculties and the total matching count.
func (r *AcademicFacultyRepository) List(ctx context.Context, filter query.Filter, page query.PageOptions) ([]*domain.AcademicFaculty, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	sel := toBSON(filter)
	total, err := r.col.CountDocuments(ctx, sel)
	if err != nil {
		return nil, 0, fmt.Errorf("count academic faculties: %w", err)
	}

	cur, err := r.col.Find(ctx, sel, findOptions(page))
	if err != nil {
		return nil, 0, fmt.Errorf("find academic faculties: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoFaculty
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("decode academic faculties: %w", err)
	}

	out := make([]*domain.AcademicFaculty, len(docs))
	for i, d := range docs {
		out[i] = d.toDomain()
	}
	return out, total, nil
}

func (r *AcademicFacultyRepository) FindByID(ctx context.Context, id string) (*domain.AcademicFaculty, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoFaculty
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrFacultyNotFound
		}
		return nil, fmt.Errorf("find academic faculty: %w", err)
	}
	return doc.toDomain(), nil
}

// Update applies patch with $set and returns the document after the update.
func (r *AcademicFacultyRepository) Update(ctx context.Context, id string, patch domain.AcademicFacultyPatch) (*domain.AcademicFaculty, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Slug != nil {
		set["slug"] = *patch.Slug
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoFaculty
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&doc)
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			return nil, domain.ErrFacultyNotFound
		case mongo.IsDuplicateKeyError(err):
			return nil, domain.ErrFacultyExists
		}
		return nil, fmt.Errorf("update academic faculty: %w", err)
	}
	return doc.toDomain(), nil
}

// Delete removes the faculty and returns the removed document.
func (r *AcademicFacultyRepository) Delete(ctx context.Context, id string) (*domain.AcademicFaculty, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoFaculty
	if err := r.col.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrFacultyNotFound
		}
		return nil, fmt.Errorf("delete academic faculty: %w", err)
	}
	return doc.toDomain(), nil
}

// EnsureIndexes creates the unique slug index and the title lookup index.
func (r *AcademicFacultyRepository) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "title", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
