package store

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(filepath.Join(t.TempDir(), "projects.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	return s
}

func TestStoreOpenAndMigrate(t *testing.T) {
	s := newTestStore(t)

	version, err := s.getSchemaVersion()
	if err != nil {
		t.Fatalf("failed to get schema version: %v", err)
	}
	if version != currentSchemaVersion {
		t.Errorf("expected schema version %d, got %d", currentSchemaVersion, version)
	}

	tables := []string{"projects", "characters", "scenes", "video_jobs", "settings", "schema_version"}
	for _, table := range tables {
		var count int
		err := s.db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&count)
		if err != nil {
			t.Fatalf("failed to query table %s: %v", table, err)
		}
		if count != 1 {
			t.Errorf("expected table %s to exist", table)
		}
	}

	indexes := []string{
		"idx_characters_project",
		"idx_scenes_project",
		"idx_scenes_order",
		"idx_jobs_scene",
	}
	for _, index := range indexes {
		var count int
		err := s.db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='index' AND name=?", index).Scan(&count)
		if err != nil {
			t.Fatalf("failed to query index %s: %v", index, err)
		}
		if count != 1 {
			t.Errorf("expected index %s to exist", index)
		}
	}
}

func TestInitializationIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "projects.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}

	p := &Project{Name: "Test Film"}
	if err := s.CreateProject(p); err != nil {
		t.Fatalf("failed to create project: %v", err)
	}
	s.Close()

	// Repeated startups must neither fail nor touch existing rows
	for i := 0; i < 3; i++ {
		s, err = Open(path)
		if err != nil {
			t.Fatalf("reopen %d failed: %v", i, err)
		}

		got, err := s.GetProject(p.ID)
		if err != nil {
			t.Fatalf("reopen %d lost the project: %v", i, err)
		}
		if got.Name != "Test Film" {
			t.Errorf("reopen %d: expected name 'Test Film', got %q", i, got.Name)
		}
		s.Close()
	}
}

func TestForeignKeysEnabled(t *testing.T) {
	s := newTestStore(t)

	var enabled int
	if err := s.db.QueryRow("PRAGMA foreign_keys").Scan(&enabled); err != nil {
		t.Fatalf("failed to query foreign_keys pragma: %v", err)
	}
	if enabled != 1 {
		t.Error("expected foreign_keys pragma to be enabled")
	}
}

func TestClosedStoreReturnsErrClosed(t *testing.T) {
	s := newTestStore(t)
	if err := s.Close(); err != nil {
		t.Fatalf("failed to close store: %v", err)
	}

	if err := s.CreateProject(&Project{Name: "x"}); !errors.Is(err, ErrClosed) {
		t.Errorf("CreateProject on closed store: expected ErrClosed, got %v", err)
	}
	if _, err := s.GetProject("any"); !errors.Is(err, ErrClosed) {
		t.Errorf("GetProject on closed store: expected ErrClosed, got %v", err)
	}
	if _, err := s.GetSetting("any"); !errors.Is(err, ErrClosed) {
		t.Errorf("GetSetting on closed store: expected ErrClosed, got %v", err)
	}
	if err := s.DeleteScene("any"); !errors.Is(err, ErrClosed) {
		t.Errorf("DeleteScene on closed store: expected ErrClosed, got %v", err)
	}

	// Close is idempotent
	if err := s.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}

func TestDefaultPath(t *testing.T) {
	path := DefaultPath()

	if !strings.HasSuffix(path, filepath.Join("ai-directors-chair", "projects.db")) {
		t.Errorf("unexpected default path: %s", path)
	}
	if path != DefaultPath() {
		t.Error("expected DefaultPath to be deterministic")
	}
}
