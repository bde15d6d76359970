// Package seed loads bootstrap data from a YAML file at startup.
//
//	academicFaculties:
//	  - Faculty of Science
//	users:
//	  - role: admin
//	    password: change-me
//
// Faculties whose title already exists are skipped. Users are bootstrap
// accounts: the entries for a role are created only while no account of that
// role exists, so restarts never add duplicates.
package seed

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/univadmin/records-system/internal/core/domain"
	"github.com/univadmin/records-system/internal/core/ports"
	"github.com/univadmin/records-system/internal/core/query"
)

// File is the on-disk seed format.
type File struct {
	AcademicFaculties []string `yaml:"academicFaculties"`
	Users             []User   `yaml:"users"`
}

// User is a bootstrap account. An empty password applies the default one.
type User struct {
	Role     string `yaml:"role"`
	Password string `yaml:"password"`
}

// Report counts what a seeding run created.
type Report struct {
	Faculties int
	Users     int
}

type Seeder struct {
	faculties ports.AcademicFacultyService
	users     ports.UserService
	log       zerolog.Logger
}

func NewSeeder(faculties ports.AcademicFacultyService, users ports.UserService, logger zerolog.Logger) *Seeder {
	return &Seeder{faculties: faculties, users: users, log: logger}
}

// FromFile reads path and applies it.
func (s *Seeder) FromFile(ctx context.Context, path string) (Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Report{}, fmt.Errorf("read seed file: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Report{}, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	return s.Apply(ctx, f)
}

// Apply creates the missing entries of f.
func (s *Seeder) Apply(ctx context.Context, f File) (Report, error) {
	var rep Report

	for _, title := range f.AcademicFaculties {
		_, err := s.faculties.Create(ctx, ports.CreateAcademicFacultyInput{Title: title})
		switch {
		case err == nil:
			rep.Faculties++
		case errors.Is(err, domain.ErrConflict):
			s.log.Debug().Str("title", title).Msg("seed: academic faculty exists, skipping")
		default:
			return rep, fmt.Errorf("seed academic faculty %q: %w", title, err)
		}
	}

	byRole := make(map[domain.Role][]User)
	var order []domain.Role
	for _, u := range f.Users {
		role := domain.Role(u.Role)
		if !role.Valid() {
			return rep, fmt.Errorf("seed user: unknown role %q", u.Role)
		}
		if _, seen := byRole[role]; !seen {
			order = append(order, role)
		}
		byRole[role] = append(byRole[role], u)
	}

	for _, role := range order {
		existing, err := s.users.List(ctx, query.Filter{Equals: map[string]any{"role": string(role)}}, query.PageOptions{Limit: 1})
		if err != nil {
			return rep, fmt.Errorf("seed users: count %s: %w", role, err)
		}
		if existing.Meta.Total > 0 {
			s.log.Debug().Str("role", string(role)).Msg("seed: accounts exist, skipping")
			continue
		}
		for _, u := range byRole[role] {
			created, err := s.users.Create(ctx, ports.CreateUserInput{Role: role, Password: u.Password})
			if err != nil {
				return rep, fmt.Errorf("seed %s user: %w", role, err)
			}
			rep.Users++
			s.log.Info().Str("id", created.ID).Str("role", string(role)).Msg("seed: user created")
		}
	}

	return rep, nil
}
