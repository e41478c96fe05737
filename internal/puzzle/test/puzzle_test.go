package main

import (
	"os"
	"path/filepath"
	"testing"

	puzzle "parludo/internal/puzzle"
)

func writePuzzleFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "puzzles.json")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("Failed to write puzzle file: %v", err)
	}
	return path
}

func TestFileProviderLoads(t *testing.T) {
	path := writePuzzleFile(t, `[
		{"answer": "jumping", "pairs": [["leap", "hop"]], "synonyms": ["bound"]},
		{"answer": "fade", "pairs": [["dim", "wane"]]}
	]`)
	collection, err := puzzle.NewFileProvider(path).Collection()
	if err != nil {
		t.Fatalf("Collection() error: %v", err)
	}
	if len(collection) != 2 {
		t.Fatalf("Loaded %d puzzles, want 2", len(collection))
	}
	if collection[0].Answer != "jumping" || collection[0].Pairs[0][1] != "hop" {
		t.Error("Puzzle fields not loaded correctly")
	}
	if len(collection[1].Synonyms) != 0 {
		t.Error("Absent synonyms should stay empty")
	}
}

func TestFileProviderFiltersMalformed(t *testing.T) {
	path := writePuzzleFile(t, `[
		{"answer": "", "pairs": [["dim", "wane"]]},
		{"answer": "fade", "pairs": []},
		{"answer": "shine", "pairs": [["glow", "gleam"]]}
	]`)
	collection, err := puzzle.NewFileProvider(path).Collection()
	if err != nil {
		t.Fatalf("Collection() error: %v", err)
	}
	if len(collection) != 1 || collection[0].Answer != "shine" {
		t.Errorf("Expected only the valid puzzle to survive, got %v", collection)
	}
}

func TestFileProviderErrors(t *testing.T) {
	if _, err := puzzle.NewFileProvider(filepath.Join(t.TempDir(), "missing.json")).Collection(); err == nil {
		t.Error("Expected error for missing file")
	}
	path := writePuzzleFile(t, `[]`)
	if _, err := puzzle.NewFileProvider(path).Collection(); err == nil {
		t.Error("Expected error for empty collection")
	}
	path = writePuzzleFile(t, `not json`)
	if _, err := puzzle.NewFileProvider(path).Collection(); err == nil {
		t.Error("Expected error for malformed JSON")
	}
}

func TestFileProviderReloads(t *testing.T) {
	path := writePuzzleFile(t, `[{"answer": "fade", "pairs": [["dim", "wane"]]}]`)
	provider := puzzle.NewFileProvider(path)
	if _, err := provider.Collection(); err != nil {
		t.Fatalf("Initial load error: %v", err)
	}
	if err := os.WriteFile(path, []byte(`[
		{"answer": "fade", "pairs": [["dim", "wane"]]},
		{"answer": "shine", "pairs": [["glow", "gleam"]]}
	]`), 0o644); err != nil {
		t.Fatalf("Failed to rewrite puzzle file: %v", err)
	}
	collection, err := provider.Collection()
	if err != nil {
		t.Fatalf("Reload error: %v", err)
	}
	if len(collection) != 2 {
		t.Errorf("Reloading provider should see the new file, got %d puzzles", len(collection))
	}
}

func TestCachedProviderLoadsOnce(t *testing.T) {
	path := writePuzzleFile(t, `[{"answer": "fade", "pairs": [["dim", "wane"]]}]`)
	provider := puzzle.NewCachedProvider(puzzle.NewFileProvider(path))
	first, err := provider.Collection()
	if err != nil {
		t.Fatalf("Initial load error: %v", err)
	}
	if err := os.Remove(path); err != nil {
		t.Fatalf("Failed to remove puzzle file: %v", err)
	}
	second, err := provider.Collection()
	if err != nil {
		t.Fatalf("Cached load error: %v", err)
	}
	if len(first) != len(second) {
		t.Error("Cached provider should keep serving the first load")
	}
}
