package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// CreateVideoJob inserts a new generation job under its scene.
// started_at is store-assigned; completed_at stays empty until the
// job reaches a terminal status. A scene may carry any number of
// jobs (retries, alternate providers).
func (s *Store) CreateVideoJob(j *VideoJob) error {
	if err := s.ready(); err != nil {
		return err
	}
	if j.SceneID == "" {
		return fmt.Errorf("%w: video job scene_id is required", ErrConstraint)
	}

	if j.ID == "" {
		j.ID = uuid.NewString()
	}
	if j.Status == "" {
		j.Status = JobStatusQueued
	}
	if !jobStatuses[j.Status] {
		return fmt.Errorf("%w: invalid job status %q", ErrConstraint, j.Status)
	}
	if JobStatusTerminal(j.Status) {
		return fmt.Errorf("%w: cannot create job in terminal status %q", ErrConstraint, j.Status)
	}
	j.StartedAt = now()
	j.CompletedAt = ""

	return s.Transaction(func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO video_jobs (id, scene_id, provider, job_id, status, video_url, cost, started_at, completed_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, NULL)
		`, j.ID, j.SceneID, j.Provider, j.JobID, j.Status, j.VideoURL, j.Cost, j.StartedAt)
		if err != nil {
			return fmt.Errorf("failed to insert video job: %w", wrapConstraint(err))
		}
		return nil
	})
}

// GetVideoJob retrieves a video job by id, or ErrNotFound.
func (s *Store) GetVideoJob(id string) (*VideoJob, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	j := &VideoJob{}
	var completed sql.NullString
	err := s.db.QueryRow(`
		SELECT id, scene_id, provider, job_id, status, video_url, cost, started_at, completed_at
		FROM video_jobs WHERE id = ?
	`, id).Scan(&j.ID, &j.SceneID, &j.Provider, &j.JobID, &j.Status, &j.VideoURL, &j.Cost, &j.StartedAt, &completed)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("video job %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get video job: %w", err)
	}

	j.CompletedAt = completed.String
	return j, nil
}

// ListVideoJobsByScene retrieves a scene's jobs, oldest first.
func (s *Store) ListVideoJobsByScene(sceneID string) ([]*VideoJob, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(`
		SELECT id, scene_id, provider, job_id, status, video_url, cost, started_at, completed_at
		FROM video_jobs WHERE scene_id = ?
		ORDER BY started_at, id
	`, sceneID)
	if err != nil {
		return nil, fmt.Errorf("failed to query video jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*VideoJob
	for rows.Next() {
		j := &VideoJob{}
		var completed sql.NullString
		err := rows.Scan(&j.ID, &j.SceneID, &j.Provider, &j.JobID, &j.Status, &j.VideoURL, &j.Cost, &j.StartedAt, &completed)
		if err != nil {
			return nil, fmt.Errorf("failed to scan video job: %w", err)
		}
		j.CompletedAt = completed.String
		jobs = append(jobs, j)
	}

	return jobs, rows.Err()
}

// UpdateVideoJob updates a job's non-terminal progress: status among
// the non-terminal values, provider tracking id, result URL and cost.
// Terminal transitions go through CompleteVideoJob so completed_at is
// set exactly once.
func (s *Store) UpdateVideoJob(j *VideoJob) error {
	if err := s.ready(); err != nil {
		return err
	}
	if !jobStatuses[j.Status] {
		return fmt.Errorf("%w: invalid job status %q", ErrConstraint, j.Status)
	}
	if JobStatusTerminal(j.Status) {
		return fmt.Errorf("%w: terminal transition for job %s must use CompleteVideoJob", ErrConstraint, j.ID)
	}

	return s.Transaction(func(tx *sql.Tx) error {
		result, err := tx.Exec(`
			UPDATE video_jobs SET provider = ?, job_id = ?, status = ?, video_url = ?, cost = ?
			WHERE id = ? AND completed_at IS NULL
		`, j.Provider, j.JobID, j.Status, j.VideoURL, j.Cost, j.ID)
		if err != nil {
			return fmt.Errorf("failed to update video job: %w", wrapConstraint(err))
		}
		n, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return jobUpdateMiss(tx, j.ID)
		}
		return nil
	})
}

// CompleteVideoJob moves a job to a terminal status, recording the
// result URL and cost and stamping completed_at. The stamp happens
// exactly once: a job already in a terminal state is not modified
// again.
func (s *Store) CompleteVideoJob(id, status, videoURL string, cost float64) error {
	if err := s.ready(); err != nil {
		return err
	}
	if !JobStatusTerminal(status) {
		return fmt.Errorf("%w: %q is not a terminal job status", ErrConstraint, status)
	}

	return s.Transaction(func(tx *sql.Tx) error {
		result, err := tx.Exec(`
			UPDATE video_jobs SET status = ?, video_url = ?, cost = ?, completed_at = ?
			WHERE id = ? AND completed_at IS NULL
		`, status, videoURL, cost, now(), id)
		if err != nil {
			return fmt.Errorf("failed to complete video job: %w", err)
		}
		n, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return jobUpdateMiss(tx, id)
		}
		return nil
	})
}

// jobUpdateMiss distinguishes "row does not exist" from "row is
// already terminal" when a guarded update matched nothing.
func jobUpdateMiss(tx *sql.Tx, id string) error {
	var exists int
	err := tx.QueryRow("SELECT 1 FROM video_jobs WHERE id = ?", id).Scan(&exists)
	if err == sql.ErrNoRows {
		return fmt.Errorf("video job %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return err
	}
	return fmt.Errorf("%w: video job %s is already terminal", ErrConstraint, id)
}

// DeleteVideoJob deletes a single job record.
func (s *Store) DeleteVideoJob(id string) error {
	if err := s.ready(); err != nil {
		return err
	}

	return s.Transaction(func(tx *sql.Tx) error {
		result, err := tx.Exec("DELETE FROM video_jobs WHERE id = ?", id)
		if err != nil {
			return fmt.Errorf("failed to delete video job: %w", err)
		}
		n, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("video job %s: %w", id, ErrNotFound)
		}
		return nil
	})
}
