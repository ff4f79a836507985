package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// CreateCharacter inserts a new character under its project. The
// project must exist; characters cannot outlive or predate their
// owner.
func (s *Store) CreateCharacter(c *Character) error {
	if err := s.ready(); err != nil {
		return err
	}
	if c.ProjectID == "" {
		return fmt.Errorf("%w: character project_id is required", ErrConstraint)
	}
	if c.Name == "" {
		return fmt.Errorf("%w: character name is required", ErrConstraint)
	}

	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	c.CreatedAt = now()

	return s.Transaction(func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO characters (id, project_id, name, description, photo_data, created_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`, c.ID, c.ProjectID, c.Name, c.Description, c.PhotoData, c.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert character: %w", wrapConstraint(err))
		}
		return nil
	})
}

// GetCharacter retrieves a character by id, or ErrNotFound.
func (s *Store) GetCharacter(id string) (*Character, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	c := &Character{}
	err := s.db.QueryRow(`
		SELECT id, project_id, name, description, photo_data, created_at
		FROM characters WHERE id = ?
	`, id).Scan(&c.ID, &c.ProjectID, &c.Name, &c.Description, &c.PhotoData, &c.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("character %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get character: %w", err)
	}

	return c, nil
}

// ListCharactersByProject retrieves all characters owned by a project.
func (s *Store) ListCharactersByProject(projectID string) ([]*Character, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(`
		SELECT id, project_id, name, description, photo_data, created_at
		FROM characters WHERE project_id = ?
		ORDER BY created_at, id
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to query characters: %w", err)
	}
	defer rows.Close()

	var characters []*Character
	for rows.Next() {
		c := &Character{}
		if err := rows.Scan(&c.ID, &c.ProjectID, &c.Name, &c.Description, &c.PhotoData, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan character: %w", err)
		}
		characters = append(characters, c)
	}

	return characters, rows.Err()
}

// UpdateCharacter updates a character's mutable fields. Ownership is
// fixed at creation; project_id is not updatable.
func (s *Store) UpdateCharacter(c *Character) error {
	if err := s.ready(); err != nil {
		return err
	}
	if c.Name == "" {
		return fmt.Errorf("%w: character name is required", ErrConstraint)
	}

	return s.Transaction(func(tx *sql.Tx) error {
		result, err := tx.Exec(`
			UPDATE characters SET name = ?, description = ?, photo_data = ?
			WHERE id = ?
		`, c.Name, c.Description, c.PhotoData, c.ID)
		if err != nil {
			return fmt.Errorf("failed to update character: %w", wrapConstraint(err))
		}
		n, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("character %s: %w", c.ID, ErrNotFound)
		}
		return nil
	})
}

// DeleteCharacter deletes a character. Scenes that still reference it
// in characters_json keep their dangling entry; those references are
// soft and filtered on read (see ResolveSceneCharacters).
func (s *Store) DeleteCharacter(id string) error {
	if err := s.ready(); err != nil {
		return err
	}

	return s.Transaction(func(tx *sql.Tx) error {
		result, err := tx.Exec("DELETE FROM characters WHERE id = ?", id)
		if err != nil {
			return fmt.Errorf("failed to delete character: %w", err)
		}
		n, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("character %s: %w", id, ErrNotFound)
		}
		return nil
	})
}
