package handler

import (
	"github.com/univadmin/records-system/internal/core/domain"
)

func toAcademicFacultyResponse(f *domain.AcademicFaculty) academicFacultyResponse {
	return academicFacultyResponse{
		ID:        f.ID,
		Title:     f.Title,
		Slug:      f.Slug,
		CreatedAt: f.CreatedAt.UTC(),
		UpdatedAt: f.UpdatedAt.UTC(),
	}
}

func toAcademicFacultyResponses(items []*domain.AcademicFaculty) []academicFacultyResponse {
	out := make([]academicFacultyResponse, len(items))
	for i, f := range items {
		out[i] = toAcademicFacultyResponse(f)
	}
	return out
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:                  u.ID,
		Role:                string(u.Role),
		NeedsPasswordChange: u.NeedsPasswordChange,
		PasswordChangedAt:   u.PasswordChangedAt,
		Profile:             u.Profile,
		CreatedAt:           u.CreatedAt.UTC(),
		UpdatedAt:           u.UpdatedAt.UTC(),
	}
}

func toUserResponses(items []*domain.User) []userResponse {
	out := make([]userResponse, len(items))
	for i, u := range items {
		out[i] = toUserResponse(u)
	}
	return out
}

func toProfileLinks(p profileRequest) domain.ProfileLinks {
	return domain.ProfileLinks{Student: p.Student, Faculty: p.Faculty, Admin: p.Admin}
}
