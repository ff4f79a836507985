package store

import (
	"errors"
	"testing"
)

func TestProjectCreateDefaults(t *testing.T) {
	s := newTestStore(t)

	p := &Project{Name: "Midnight Run"}
	if err := s.CreateProject(p); err != nil {
		t.Fatalf("failed to create project: %v", err)
	}

	if p.ID == "" {
		t.Error("expected a generated id")
	}

	got, err := s.GetProject(p.ID)
	if err != nil {
		t.Fatalf("failed to get project: %v", err)
	}

	if got.Genre != "drama" {
		t.Errorf("expected genre 'drama', got %q", got.Genre)
	}
	if got.Tone != "cinematic" {
		t.Errorf("expected tone 'cinematic', got %q", got.Tone)
	}
	if got.Synopsis != "" {
		t.Errorf("expected empty synopsis, got %q", got.Synopsis)
	}
	if got.CreatedAt == "" || got.UpdatedAt == "" {
		t.Error("expected store-assigned timestamps")
	}
	if got.CreatedAt != got.UpdatedAt {
		t.Errorf("expected created_at == updated_at at creation, got %q vs %q", got.CreatedAt, got.UpdatedAt)
	}
}

func TestProjectRequiresName(t *testing.T) {
	s := newTestStore(t)

	err := s.CreateProject(&Project{Genre: "noir"})
	if !errors.Is(err, ErrConstraint) {
		t.Fatalf("expected ErrConstraint, got %v", err)
	}

	projects, err := s.ListProjects()
	if err != nil {
		t.Fatalf("failed to list projects: %v", err)
	}
	if len(projects) != 0 {
		t.Errorf("expected no rows after rejected write, got %d", len(projects))
	}
}

func TestProjectNotFound(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.GetProject("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get: expected ErrNotFound, got %v", err)
	}
	if err := s.UpdateProject(&Project{ID: "missing", Name: "x"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update: expected ErrNotFound, got %v", err)
	}
	if err := s.DeleteProject("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete: expected ErrNotFound, got %v", err)
	}
}

func TestProjectUpdateRefreshesUpdatedAt(t *testing.T) {
	s := newTestStore(t)

	p := &Project{Name: "Midnight Run"}
	if err := s.CreateProject(p); err != nil {
		t.Fatalf("failed to create project: %v", err)
	}
	before := p.UpdatedAt

	p.Synopsis = "A courier takes one last job."
	if err := s.UpdateProject(p); err != nil {
		t.Fatalf("failed to update project: %v", err)
	}

	got, err := s.GetProject(p.ID)
	if err != nil {
		t.Fatalf("failed to get project: %v", err)
	}

	// RFC3339Nano strings compare lexically in time order
	if !(got.UpdatedAt > before) {
		t.Errorf("expected updated_at to strictly increase: before=%q after=%q", before, got.UpdatedAt)
	}
	if got.CreatedAt != p.CreatedAt {
		t.Errorf("created_at must never change: %q vs %q", p.CreatedAt, got.CreatedAt)
	}
	if got.Synopsis != "A courier takes one last job." {
		t.Errorf("unexpected synopsis %q", got.Synopsis)
	}
}

func TestProjectTouch(t *testing.T) {
	s := newTestStore(t)

	p := &Project{Name: "Midnight Run"}
	if err := s.CreateProject(p); err != nil {
		t.Fatalf("failed to create project: %v", err)
	}
	before := p.UpdatedAt

	if err := s.TouchProject(p.ID); err != nil {
		t.Fatalf("failed to touch project: %v", err)
	}

	got, err := s.GetProject(p.ID)
	if err != nil {
		t.Fatalf("failed to get project: %v", err)
	}
	if !(got.UpdatedAt > before) {
		t.Errorf("expected touch to advance updated_at: before=%q after=%q", before, got.UpdatedAt)
	}
	if got.Name != p.Name {
		t.Errorf("touch must not change fields, name became %q", got.Name)
	}

	if err := s.TouchProject("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Touch missing: expected ErrNotFound, got %v", err)
	}
}

func TestProjectDeleteCascades(t *testing.T) {
	s := newTestStore(t)

	p := &Project{Name: "Midnight Run"}
	if err := s.CreateProject(p); err != nil {
		t.Fatalf("failed to create project: %v", err)
	}

	c := &Character{ProjectID: p.ID, Name: "Eddie"}
	if err := s.CreateCharacter(c); err != nil {
		t.Fatalf("failed to create character: %v", err)
	}

	sc := &Scene{ProjectID: p.ID, SceneNumber: 1}
	if err := s.CreateScene(sc); err != nil {
		t.Fatalf("failed to create scene: %v", err)
	}

	j := &VideoJob{SceneID: sc.ID, Provider: "runway", JobID: "r-1"}
	if err := s.CreateVideoJob(j); err != nil {
		t.Fatalf("failed to create video job: %v", err)
	}

	if err := s.DeleteProject(p.ID); err != nil {
		t.Fatalf("failed to delete project: %v", err)
	}

	// Cascade completeness: nothing referencing the project or its
	// former scenes may survive
	for table, want := range map[string]int{"projects": 0, "characters": 0, "scenes": 0, "video_jobs": 0} {
		var count int
		if err := s.db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count); err != nil {
			t.Fatalf("failed to count %s: %v", table, err)
		}
		if count != want {
			t.Errorf("expected %d rows in %s after cascade, got %d", want, table, count)
		}
	}
}
