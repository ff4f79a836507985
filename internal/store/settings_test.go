package store

import (
	"errors"
	"testing"
)

func TestSettingUpsert(t *testing.T) {
	s := newTestStore(t)

	if err := s.SetSetting("runway_api_key", "sk-one"); err != nil {
		t.Fatalf("failed to set setting: %v", err)
	}

	value, err := s.GetSetting("runway_api_key")
	if err != nil {
		t.Fatalf("failed to get setting: %v", err)
	}
	if value != "sk-one" {
		t.Errorf("expected 'sk-one', got %q", value)
	}

	// Upsert by key overwrites
	if err := s.SetSetting("runway_api_key", "sk-two"); err != nil {
		t.Fatalf("failed to overwrite setting: %v", err)
	}

	value, err = s.GetSetting("runway_api_key")
	if err != nil {
		t.Fatalf("failed to get setting after overwrite: %v", err)
	}
	if value != "sk-two" {
		t.Errorf("expected 'sk-two', got %q", value)
	}
}

func TestSettingNotFound(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.GetSetting("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get: expected ErrNotFound, got %v", err)
	}
	if err := s.DeleteSetting("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete: expected ErrNotFound, got %v", err)
	}
}

func TestSettingRequiresKey(t *testing.T) {
	s := newTestStore(t)

	if err := s.SetSetting("", "value"); !errors.Is(err, ErrConstraint) {
		t.Errorf("empty key: expected ErrConstraint, got %v", err)
	}
}

func TestSettingDelete(t *testing.T) {
	s := newTestStore(t)

	if err := s.SetSetting("theme", "dark"); err != nil {
		t.Fatalf("failed to set setting: %v", err)
	}
	if err := s.DeleteSetting("theme"); err != nil {
		t.Fatalf("failed to delete setting: %v", err)
	}
	if _, err := s.GetSetting("theme"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}
