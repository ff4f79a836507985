package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// CreateProject inserts a new project. An empty ID is filled with a
// generated UUID; optional fields receive their defaults. CreatedAt
// and UpdatedAt are store-assigned.
func (s *Store) CreateProject(p *Project) error {
	if err := s.ready(); err != nil {
		return err
	}
	if p.Name == "" {
		return fmt.Errorf("%w: project name is required", ErrConstraint)
	}

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Genre == "" {
		p.Genre = "drama"
	}
	if p.Tone == "" {
		p.Tone = "cinematic"
	}
	ts := now()
	p.CreatedAt = ts
	p.UpdatedAt = ts

	return s.Transaction(func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO projects (id, name, genre, synopsis, tone, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, p.ID, p.Name, p.Genre, p.Synopsis, p.Tone, p.CreatedAt, p.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert project: %w", wrapConstraint(err))
		}
		return nil
	})
}

// GetProject retrieves a project by id, or ErrNotFound.
func (s *Store) GetProject(id string) (*Project, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	p := &Project{}
	err := s.db.QueryRow(`
		SELECT id, name, genre, synopsis, tone, created_at, updated_at
		FROM projects WHERE id = ?
	`, id).Scan(&p.ID, &p.Name, &p.Genre, &p.Synopsis, &p.Tone, &p.CreatedAt, &p.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("project %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	return p, nil
}

// ListProjects retrieves all projects, oldest first.
func (s *Store) ListProjects() ([]*Project, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(`
		SELECT id, name, genre, synopsis, tone, created_at, updated_at
		FROM projects
		ORDER BY created_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer rows.Close()

	var projects []*Project
	for rows.Next() {
		p := &Project{}
		if err := rows.Scan(&p.ID, &p.Name, &p.Genre, &p.Synopsis, &p.Tone, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, p)
	}

	return projects, rows.Err()
}

// UpdateProject updates a project's scalar fields. The store refreshes
// updated_at; created_at is never touched. The struct's UpdatedAt is
// set to the new value on success.
func (s *Store) UpdateProject(p *Project) error {
	if err := s.ready(); err != nil {
		return err
	}
	if p.Name == "" {
		return fmt.Errorf("%w: project name is required", ErrConstraint)
	}

	ts := now()
	err := s.Transaction(func(tx *sql.Tx) error {
		result, err := tx.Exec(`
			UPDATE projects SET name = ?, genre = ?, synopsis = ?, tone = ?, updated_at = ?
			WHERE id = ?
		`, p.Name, p.Genre, p.Synopsis, p.Tone, ts, p.ID)
		if err != nil {
			return fmt.Errorf("failed to update project: %w", wrapConstraint(err))
		}
		n, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("project %s: %w", p.ID, ErrNotFound)
		}
		return nil
	})
	if err != nil {
		return err
	}

	p.UpdatedAt = ts
	return nil
}

// DeleteProject deletes a project and, through the enabled cascades,
// all of its characters, scenes and the scenes' video jobs in one
// transaction.
func (s *Store) DeleteProject(id string) error {
	if err := s.ready(); err != nil {
		return err
	}

	return s.Transaction(func(tx *sql.Tx) error {
		result, err := tx.Exec("DELETE FROM projects WHERE id = ?", id)
		if err != nil {
			return fmt.Errorf("failed to delete project: %w", err)
		}
		n, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("project %s: %w", id, ErrNotFound)
		}
		return nil
	})
}

// TouchProject refreshes a project's updated_at without changing any
// other field. Callers use it after mutating owned rows so the
// project reflects recent activity.
func (s *Store) TouchProject(id string) error {
	if err := s.ready(); err != nil {
		return err
	}

	return s.Transaction(func(tx *sql.Tx) error {
		result, err := tx.Exec("UPDATE projects SET updated_at = ? WHERE id = ?", now(), id)
		if err != nil {
			return fmt.Errorf("failed to touch project: %w", err)
		}
		n, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("project %s: %w", id, ErrNotFound)
		}
		return nil
	})
}
