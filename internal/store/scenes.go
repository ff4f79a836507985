package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// CharacterIDs parses the scene's characters_json into a slice of
// character ids. Malformed payloads yield an empty slice rather than
// an error; the references are advisory.
func (sc *Scene) CharacterIDs() []string {
	if sc.CharactersJSON == "" {
		return nil
	}
	var ids []string
	if err := json.Unmarshal([]byte(sc.CharactersJSON), &ids); err != nil {
		return nil
	}
	return ids
}

// SetCharacterIDs serializes character ids into characters_json.
// The ids are stored as-is; existence is not checked.
func (sc *Scene) SetCharacterIDs(ids []string) {
	if ids == nil {
		ids = []string{}
	}
	data, _ := json.Marshal(ids)
	sc.CharactersJSON = string(data)
}

// CreateScene inserts a new scene under its project. Optional fields
// receive the authoring defaults; sort_order defaults to 0 and
// controls the canonical sequence independent of scene_number.
func (s *Store) CreateScene(sc *Scene) error {
	if err := s.ready(); err != nil {
		return err
	}
	if sc.ProjectID == "" {
		return fmt.Errorf("%w: scene project_id is required", ErrConstraint)
	}

	if sc.ID == "" {
		sc.ID = uuid.NewString()
	}
	if sc.CameraAngle == "" {
		sc.CameraAngle = "medium shot"
	}
	if sc.Lighting == "" {
		sc.Lighting = "natural"
	}
	if sc.Duration == 0 {
		sc.Duration = 5
	}
	if sc.CharactersJSON == "" {
		sc.CharactersJSON = "[]"
	}
	if sc.Status == "" {
		sc.Status = SceneStatusPending
	}
	if !sceneStatuses[sc.Status] {
		return fmt.Errorf("%w: invalid scene status %q", ErrConstraint, sc.Status)
	}
	sc.CreatedAt = now()

	return s.Transaction(func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO scenes (id, project_id, scene_number, title, description, prompt,
				camera_angle, lighting, duration, dialog, characters_json,
				status, video_url, sort_order, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, sc.ID, sc.ProjectID, sc.SceneNumber, sc.Title, sc.Description, sc.Prompt,
			sc.CameraAngle, sc.Lighting, sc.Duration, sc.Dialog, sc.CharactersJSON,
			sc.Status, sc.VideoURL, sc.SortOrder, sc.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert scene: %w", wrapConstraint(err))
		}
		return nil
	})
}

// GetScene retrieves a scene by id, or ErrNotFound.
func (s *Store) GetScene(id string) (*Scene, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	sc := &Scene{}
	err := s.db.QueryRow(`
		SELECT id, project_id, scene_number, title, description, prompt,
		       camera_angle, lighting, duration, dialog, characters_json,
		       status, video_url, sort_order, created_at
		FROM scenes WHERE id = ?
	`, id).Scan(
		&sc.ID, &sc.ProjectID, &sc.SceneNumber, &sc.Title, &sc.Description, &sc.Prompt,
		&sc.CameraAngle, &sc.Lighting, &sc.Duration, &sc.Dialog, &sc.CharactersJSON,
		&sc.Status, &sc.VideoURL, &sc.SortOrder, &sc.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("scene %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get scene: %w", err)
	}

	return sc, nil
}

// ListScenesByProject retrieves a project's scenes in canonical
// sequence: sort_order ascending, insertion order breaking ties.
func (s *Store) ListScenesByProject(projectID string) ([]*Scene, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(`
		SELECT id, project_id, scene_number, title, description, prompt,
		       camera_angle, lighting, duration, dialog, characters_json,
		       status, video_url, sort_order, created_at
		FROM scenes WHERE project_id = ?
		ORDER BY sort_order, created_at, id
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to query scenes: %w", err)
	}
	defer rows.Close()

	var scenes []*Scene
	for rows.Next() {
		sc := &Scene{}
		err := rows.Scan(
			&sc.ID, &sc.ProjectID, &sc.SceneNumber, &sc.Title, &sc.Description, &sc.Prompt,
			&sc.CameraAngle, &sc.Lighting, &sc.Duration, &sc.Dialog, &sc.CharactersJSON,
			&sc.Status, &sc.VideoURL, &sc.SortOrder, &sc.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan scene: %w", err)
		}
		scenes = append(scenes, sc)
	}

	return scenes, rows.Err()
}

// UpdateScene updates a scene's mutable fields. project_id and
// created_at are fixed at creation.
func (s *Store) UpdateScene(sc *Scene) error {
	if err := s.ready(); err != nil {
		return err
	}
	if !sceneStatuses[sc.Status] {
		return fmt.Errorf("%w: invalid scene status %q", ErrConstraint, sc.Status)
	}

	return s.Transaction(func(tx *sql.Tx) error {
		result, err := tx.Exec(`
			UPDATE scenes SET scene_number = ?, title = ?, description = ?, prompt = ?,
				camera_angle = ?, lighting = ?, duration = ?, dialog = ?,
				characters_json = ?, status = ?, video_url = ?, sort_order = ?
			WHERE id = ?
		`, sc.SceneNumber, sc.Title, sc.Description, sc.Prompt,
			sc.CameraAngle, sc.Lighting, sc.Duration, sc.Dialog,
			sc.CharactersJSON, sc.Status, sc.VideoURL, sc.SortOrder, sc.ID)
		if err != nil {
			return fmt.Errorf("failed to update scene: %w", wrapConstraint(err))
		}
		n, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("scene %s: %w", sc.ID, ErrNotFound)
		}
		return nil
	})
}

// DeleteScene deletes a scene and, through the enabled cascade, its
// video jobs in one transaction.
func (s *Store) DeleteScene(id string) error {
	if err := s.ready(); err != nil {
		return err
	}

	return s.Transaction(func(tx *sql.Tx) error {
		result, err := tx.Exec("DELETE FROM scenes WHERE id = ?", id)
		if err != nil {
			return fmt.Errorf("failed to delete scene: %w", err)
		}
		n, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("scene %s: %w", id, ErrNotFound)
		}
		return nil
	})
}

// ResolveSceneCharacters returns the characters a scene references
// that still exist, silently dropping dangling ids left behind by
// character deletion.
func (s *Store) ResolveSceneCharacters(sc *Scene) ([]*Character, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	var characters []*Character
	for _, id := range sc.CharacterIDs() {
		c, err := s.GetCharacter(id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return nil, err
		}
		characters = append(characters, c)
	}

	return characters, nil
}
