package store

import (
	"database/sql"
	"fmt"
)

// SetSetting stores a key/value pair, overwriting any existing value.
// Structured values must be serialized by the caller; the store only
// sees strings.
func (s *Store) SetSetting(key, value string) error {
	if err := s.ready(); err != nil {
		return err
	}
	if key == "" {
		return fmt.Errorf("%w: setting key is required", ErrConstraint)
	}

	return s.Transaction(func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO settings (key, value) VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value
		`, key, value)
		if err != nil {
			return fmt.Errorf("failed to set setting: %w", err)
		}
		return nil
	})
}

// GetSetting retrieves a setting's value, or ErrNotFound.
func (s *Store) GetSetting(key string) (string, error) {
	if err := s.ready(); err != nil {
		return "", err
	}

	var value string
	err := s.db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("setting %s: %w", key, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("failed to get setting: %w", err)
	}

	return value, nil
}

// DeleteSetting removes a setting by key.
func (s *Store) DeleteSetting(key string) error {
	if err := s.ready(); err != nil {
		return err
	}

	return s.Transaction(func(tx *sql.Tx) error {
		result, err := tx.Exec("DELETE FROM settings WHERE key = ?", key)
		if err != nil {
			return fmt.Errorf("failed to delete setting: %w", err)
		}
		n, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("setting %s: %w", key, ErrNotFound)
		}
		return nil
	})
}
