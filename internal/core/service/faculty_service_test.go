package service

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/univadmin/records-system/internal/core/domain"
	"github.com/univadmin/records-system/internal/core/ports"
	"github.com/univadmin/records-system/internal/core/query"
	"github.com/univadmin/records-system/internal/infrastructure/db/memory"
)

func newFacultyService() *AcademicFacultyService {
	return NewAcademicFacultyService(memory.NewAcademicFacultyRepository(), zerolog.Nop())
}

func TestAcademicFacultyService_Create(t *testing.T) {
	svc := newFacultyService()
	ctx := context.Background()

	f, err := svc.Create(ctx, ports.CreateAcademicFacultyInput{Title: "  Faculty of   Science "})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if f.Title != "Faculty of Science" {
		t.Fatalf("expected collapsed title, got %q", f.Title)
	}
	if f.Slug != "faculty-of-science" {
		t.Fatalf("unexpected slug %q", f.Slug)
	}
	if !primitive.IsValidObjectID(f.ID) {
		t.Fatalf("expected an object id, got %q", f.ID)
	}
	if f.CreatedAt.IsZero() || f.UpdatedAt.IsZero() {
		t.Fatalf("timestamps not set")
	}

	if _, err := svc.Create(ctx, ports.CreateAcademicFacultyInput{Title: "FACULTY OF SCIENCE"}); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict for a duplicate title, got %v", err)
	}
}

func TestAcademicFacultyService_Create_InvalidTitle(t *testing.T) {
	svc := newFacultyService()
	for _, title := range []string{"", "   ", "!!!"} {
		_, err := svc.Create(context.Background(), ports.CreateAcademicFacultyInput{Title: title})
		var ve *domain.ValidationError
		if !errors.As(err, &ve) || ve.Fields[0].Path != "title" {
			t.Fatalf("title %q: expected a title ValidationError, got %v", title, err)
		}
	}
}

func TestAcademicFacultyService_Update(t *testing.T) {
	svc := newFacultyService()
	ctx := context.Background()
	arts, _ := svc.Create(ctx, ports.CreateAcademicFacultyInput{Title: "Arts"})
	_, _ = svc.Create(ctx, ports.CreateAcademicFacultyInput{Title: "Law"})

	title := "Arts and Humanities"
	updated, err := svc.Update(ctx, arts.ID, ports.UpdateAcademicFacultyInput{Title: &title})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Title != title || updated.Slug != "arts-and-humanities" {
		t.Fatalf("unexpected update result: %+v", updated)
	}

	taken := "law"
	if _, err := svc.Update(ctx, arts.ID, ports.UpdateAcademicFacultyInput{Title: &taken}); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	unchanged, err := svc.Update(ctx, arts.ID, ports.UpdateAcademicFacultyInput{})
	if err != nil {
		t.Fatalf("empty Update returned error: %v", err)
	}
	if unchanged.Title != title {
		t.Fatalf("empty patch changed title to %q", unchanged.Title)
	}

	missing := primitive.NewObjectID().Hex()
	if _, err := svc.Update(ctx, missing, ports.UpdateAcademicFacultyInput{Title: &title}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAcademicFacultyService_GetAndDelete(t *testing.T) {
	svc := newFacultyService()
	ctx := context.Background()
	f, _ := svc.Create(ctx, ports.CreateAcademicFacultyInput{Title: "Engineering"})

	if got, err := svc.Get(ctx, f.ID); err != nil || got.Title != "Engineering" {
		t.Fatalf("Get = %+v, %v", got, err)
	}
	if _, err := svc.Delete(ctx, f.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := svc.Delete(ctx, f.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound deleting a missing id, got %v", err)
	}
	if _, err := svc.Get(ctx, "not-an-object-id"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for a malformed id, got %v", err)
	}
}

func TestAcademicFacultyService_List(t *testing.T) {
	svc := newFacultyService()
	ctx := context.Background()
	for _, title := range []string{"Science", "Social Science", "Law", "Medicine"} {
		if _, err := svc.Create(ctx, ports.CreateAcademicFacultyInput{Title: title}); err != nil {
			t.Fatalf("Create %q returned error: %v", title, err)
		}
	}

	filter, page := query.Translate(url.Values{
		"searchTerm": {"SCIENCE"},
		"sortBy":     {"title"},
		"sortOrder":  {"asc"},
		"unknown":    {"ignored"},
	}, AcademicFacultyListSpec)

	res, err := svc.List(ctx, filter, page)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if res.Meta.Total != 2 || len(res.Data) != 2 {
		t.Fatalf("expected 2 matches, got meta=%+v len=%d", res.Meta, len(res.Data))
	}
	if res.Data[0].Title != "Science" || res.Data[1].Title != "Social Science" {
		t.Fatalf("unexpected order: %q, %q", res.Data[0].Title, res.Data[1].Title)
	}

	filter, page = query.Translate(url.Values{"title": {"Law"}}, AcademicFacultyListSpec)
	res, err = svc.List(ctx, filter, page)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if res.Meta.Total != 1 || res.Data[0].Title != "Law" {
		t.Fatalf("exact title filter failed: %+v", res.Meta)
	}
}
