package memory

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/univadmin/records-system/internal/core/domain"
	"github.com/univadmin/records-system/internal/core/query"
)

// AcademicFacultyRepository implements ports.AcademicFacultyRepository in memory.
type AcademicFacultyRepository struct {
	mu    sync.RWMutex
	byID  map[string]*domain.AcademicFaculty
	order []string
}

func NewAcademicFacultyRepository() *AcademicFacultyRepository {
	return &AcademicFacultyRepository{byID: make(map[string]*domain.AcademicFaculty)}
}

func (r *AcademicFacultyRepository) Create(_ context.Context, f *domain.AcademicFaculty) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.slugTaken(f.Slug, "") {
		return domain.ErrFacultyExists
	}
	f.ID = primitive.NewObjectID().Hex()
	clone := *f
	r.byID[f.ID] = &clone
	r.order = append(r.order, f.ID)
	return nil
}

func (r *AcademicFacultyRepository) List(_ context.Context, filter query.Filter, page query.PageOptions) ([]*domain.AcademicFaculty, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]*domain.AcademicFaculty, 0, len(r.order))
	for _, id := range r.order {
		clone := *r.byID[id]
		all = append(all, &clone)
	}
	items, total := window(all, filter, page, facultyFields)
	return items, total, nil
}

func (r *AcademicFacultyRepository) FindByID(_ context.Context, id string) (*domain.AcademicFaculty, error) {
	if !primitive.IsValidObjectID(id) {
		return nil, domain.ErrInvalidID
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrFacultyNotFound
	}
	clone := *f
	return &clone, nil
}

func (r *AcademicFacultyRepository) Update(_ context.Context, id string, patch domain.AcademicFacultyPatch) (*domain.AcademicFaculty, error) {
	if !primitive.IsValidObjectID(id) {
		return nil, domain.ErrInvalidID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	f, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrFacultyNotFound
	}
	if patch.Slug != nil && r.slugTaken(*patch.Slug, id) {
		return nil, domain.ErrFacultyExists
	}
	if patch.Title != nil {
		f.Title = *patch.Title
	}
	if patch.Slug != nil {
		f.Slug = *patch.Slug
	}
	f.UpdatedAt = time.Now().UTC()
	clone := *f
	return &clone, nil
}

func (r *AcademicFacultyRepository) Delete(_ context.Context, id string) (*domain.AcademicFaculty, error) {
	if !primitive.IsValidObjectID(id) {
		return nil, domain.ErrInvalidID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	f, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrFacultyNotFound
	}
	delete(r.byID, id)
	r.order = removeID(r.order, id)
	return f, nil
}

func (r *AcademicFacultyRepository) slugTaken(slug, exceptID string) bool {
	for id, f := range r.byID {
		if id != exceptID && f.Slug == slug {
			return true
		}
	}
	return false
}

func facultyFields(f *domain.AcademicFaculty) map[string]any {
	return map[string]any{
		"title":     f.Title,
		"createdAt": f.CreatedAt,
		"updatedAt": f.UpdatedAt,
	}
}

func removeID(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
