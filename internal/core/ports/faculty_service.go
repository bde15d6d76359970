package ports

import (
	"context"

	"github.com/univadmin/records-system/internal/core/domain"
	"github.com/univadmin/records-system/internal/core/query"
)

// CreateAcademicFacultyInput carries the data for a new academic faculty.
type CreateAcademicFacultyInput struct {
	Title string
}

// UpdateAcademicFacultyInput is a partial update; nil fields are untouched.
type UpdateAcademicFacultyInput struct {
	Title *string
}

// AcademicFacultyService defines use-case operations for academic faculties.
type AcademicFacultyService interface {
	Create(ctx context.Context, input CreateAcademicFacultyInput) (*domain.AcademicFaculty, error)
	List(ctx context.Context, filter query.Filter, page query.PageOptions) (*query.Result[*domain.AcademicFaculty], error)
	Get(ctx context.Context, id string) (*domain.AcademicFaculty, error)
	Update(ctx context.Context, id string, input UpdateAcademicFacultyInput) (*domain.AcademicFaculty, error)
	Delete(ctx context.Context, id string) (*domain.AcademicFaculty, error)
}
