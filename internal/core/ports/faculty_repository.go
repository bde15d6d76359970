package ports

import (
	"context"

	"github.com/univadmin/records-system/internal/core/domain"
	"github.com/univadmin/records-system/internal/core/query"
)

// AcademicFacultyRepository defines persistence operations for academic faculties.
type AcademicFacultyRepository interface {
	// Create stores f and fills in its ID and timestamps. A slug collision
	// returns domain.ErrFacultyExists.
	Create(ctx context.Context, f *domain.AcademicFaculty) error
	// List returns a page of faculties matching filter and the total count.
	List(ctx context.Context, filter query.Filter, page query.PageOptions) ([]*domain.AcademicFaculty, int64, error)
	FindByID(ctx context.Context, id string) (*domain.AcademicFaculty, error)
	// Update applies patch and returns the updated document.
	Update(ctx context.Context, id string, patch domain.AcademicFacultyPatch) (*domain.AcademicFaculty, error)
	// Delete removes the faculty and returns the removed document.
	Delete(ctx context.Context, id string) (*domain.AcademicFaculty, error)
}
