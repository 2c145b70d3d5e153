package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveID(t *testing.T) {
	c := New([]Item{
		{Name: "Aspect of the Dragons", ID: "ASPECT_OF_THE_DRAGONS"},
		{Name: "Hyperion", ID: "HYPERION"},
	})

	id, ok := c.ResolveID("Aspect of the Dragons")
	if !ok || id != "ASPECT_OF_THE_DRAGONS" {
		t.Errorf("ResolveID = %q, %v; want ASPECT_OF_THE_DRAGONS", id, ok)
	}

	if _, ok := c.ResolveID("Nonexistent Item"); ok {
		t.Error("expected a miss for unknown name")
	}
}

func TestResolveIDSkipsStarredAndContinues(t *testing.T) {
	// The starred variant comes first in the dataset; scanning must fall
	// through to the plain entry instead of giving up.
	c := New([]Item{
		{Name: "Midas Sword", ID: "STARRED_MIDAS_SWORD"},
		{Name: "Midas Sword", ID: "MIDAS_SWORD"},
	})

	id, ok := c.ResolveID("Midas Sword")
	if !ok || id != "MIDAS_SWORD" {
		t.Errorf("ResolveID = %q, %v; want MIDAS_SWORD", id, ok)
	}
}

func TestResolveIDOnlyStarred(t *testing.T) {
	c := New([]Item{
		{Name: "Shadow Fury", ID: "STARRED_SHADOW_FURY"},
	})

	if _, ok := c.ResolveID("Shadow Fury"); ok {
		t.Error("expected a miss when only starred variants exist")
	}
}

func TestResolveIDPatchesGodPotion(t *testing.T) {
	c := New([]Item{
		{Name: "God Potion", ID: "GOD_POTION_2"},
	})

	id, ok := c.ResolveID("God Potion")
	if !ok || id != "GOD_POTION" {
		t.Errorf("ResolveID = %q, %v; want GOD_POTION", id, ok)
	}
}

func TestResolveIDStripsDatasetGlyphs(t *testing.T) {
	// Dataset names can carry the same glyphs as live listings; keys are
	// glyph-stripped on load so both sides match.
	c := New([]Item{
		{Name: "⚚ Shadow Assassin Cloak", ID: "SHADOW_ASSASSIN_CLOAK"},
	})

	id, ok := c.ResolveID("Shadow Assassin Cloak")
	if !ok || id != "SHADOW_ASSASSIN_CLOAK" {
		t.Errorf("ResolveID = %q, %v; want SHADOW_ASSASSIN_CLOAK", id, ok)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "items.json")
	payload := `{"items":[{"name":"Hyperion","id":"HYPERION","tier":"LEGENDARY"}]}`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if c.Size() != 1 {
		t.Errorf("Size = %d, want 1", c.Size())
	}
	if id, ok := c.ResolveID("Hyperion"); !ok || id != "HYPERION" {
		t.Errorf("ResolveID = %q, %v; want HYPERION", id, ok)
	}

	if _, err := Load(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected an error for a missing file")
	}

	empty := filepath.Join(dir, "empty.json")
	if err := os.WriteFile(empty, []byte(`{"items":[]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(empty); err == nil {
		t.Error("expected an error for an empty dataset")
	}
}
