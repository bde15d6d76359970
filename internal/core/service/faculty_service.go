package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"github.com/rs/zerolog"

	"github.com/univadmin/records-system/internal/api/metrics"
	"github.com/univadmin/records-system/internal/core/domain"
	"github.com/univadmin/records-system/internal/core/ports"
	"github.com/univadmin/records-system/internal/core/query"
)

// AcademicFacultyListSpec is the filter whitelist of GET /academic-faculties.
var AcademicFacultyListSpec = query.ListSpec{
	Filters: map[string]query.Kind{"title": query.String},
	Search:  []string{"title"},
	Sorts:   []string{"title", "updatedAt"},
}

// AcademicFacultyService implements ports.AcademicFacultyService.
type AcademicFacultyService struct {
	repo   ports.AcademicFacultyRepository
	logger zerolog.Logger
}

func NewAcademicFacultyService(repo ports.AcademicFacultyRepository, logger zerolog.Logger) *AcademicFacultyService {
	return &AcademicFacultyService{repo: repo, logger: logger}
}

func (s *AcademicFacultyService) Create(ctx context.Context, input ports.CreateAcademicFacultyInput) (*domain.AcademicFaculty, error) {
	title, key, err := normalizeTitle(input.Title)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	f := &domain.AcademicFaculty{
		Title:     title,
		Slug:      key,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, f); err != nil {
		return nil, err
	}

	metrics.AcademicFacultiesCreatedTotal.Inc()
	s.logger.Info().Str("faculty_id", f.ID).Str("title", f.Title).Msg("academic faculty created")
	return f, nil
}

func (s *AcademicFacultyService) List(ctx context.Context, filter query.Filter, page query.PageOptions) (*query.Result[*domain.AcademicFaculty], error) {
	page = page.Normalize()

	items, total, err := s.repo.List(ctx, filter, page)
	if err != nil {
		return nil, fmt.Errorf("list academic faculties: %w", err)
	}
	return &query.Result[*domain.AcademicFaculty]{Meta: query.NewMeta(page, total), Data: items}, nil
}

func (s *AcademicFacultyService) Get(ctx context.Context, id string) (*domain.AcademicFaculty, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.ErrInvalidID
	}
	return s.repo.FindByID(ctx, id)
}

func (s *AcademicFacultyService) Update(ctx context.Context, id string, input ports.UpdateAcademicFacultyInput) (*domain.AcademicFaculty, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.ErrInvalidID
	}

	var patch domain.AcademicFacultyPatch
	if input.Title != nil {
		title, key, err := normalizeTitle(*input.Title)
		if err != nil {
			return nil, err
		}
		patch.Title, patch.Slug = &title, &key
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("faculty_id", id).Msg("academic faculty updated")
	return updated, nil
}

func (s *AcademicFacultyService) Delete(ctx context.Context, id string) (*domain.AcademicFaculty, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.ErrInvalidID
	}
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("faculty_id", id).Msg("academic faculty deleted")
	return deleted, nil
}

// normalizeTitle trims the title and derives the uniqueness key. Titles that
// differ only in case, spacing or punctuation share a slug.
func normalizeTitle(raw string) (title, key string, err error) {
	title = strings.Join(strings.Fields(raw), " ")
	if title == "" {
		return "", "", domain.NewValidationError("title", "is required")
	}
	key = slug.Make(title)
	if key == "" {
		return "", "", domain.NewValidationError("title", "must contain letters or digits")
	}
	return title, key, nil
}
