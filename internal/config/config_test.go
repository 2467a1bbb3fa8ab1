package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "weights.yaml")
	doc := `
features:
  - name: combined
    weight: 1.0
defaults:
  add_combined_score: true
  sanity_check: true
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(f.Features) != 1 || f.Features[0].Name != "combined" || f.Features[0].Weight != 1.0 {
		t.Errorf("Features = %+v", f.Features)
	}
	opts := f.ToOptions()
	if !opts.AddCombinedScore || !opts.SanityCheck {
		t.Errorf("ToOptions() = %+v", opts)
	}
	if feats := f.ToFeatures(); len(feats) != 1 {
		t.Errorf("ToFeatures() len = %d, want 1", len(feats))
	}
}

func TestLoadRejectsMissingName(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("features:\n  - weight: 1.0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Errorf("Load() with missing feature name: want error, got nil")
	}
}
