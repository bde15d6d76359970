package domain

import "time"

// AcademicFaculty is a top-level academic unit (e.g. "Faculty of Science").
type AcademicFaculty struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AcademicFacultyPatch carries a partial update. Nil fields are left untouched.
type AcademicFacultyPatch struct {
	Title *string
	Slug  *string
}
