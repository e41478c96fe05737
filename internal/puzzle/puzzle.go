package puzzle

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/samber/lo"
	models "parludo/internal/models"
	util "parludo/internal/util"
)

// FileProvider reads the collection from a JSON file on every call. The
// day-order of the file is the day-order of the game.
type FileProvider struct {
	Path string
}

func NewFileProvider(path string) *FileProvider {
	return &FileProvider{Path: path}
}

func (p *FileProvider) Collection() (models.PuzzleCollection, error) {
	data, err := os.ReadFile(p.Path)
	if err != nil {
		return nil, fmt.Errorf("read puzzle file: %w", err)
	}

	var all models.PuzzleCollection
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, fmt.Errorf("parse puzzle file %s: %w", p.Path, err)
	}

	valid := lo.Filter(all, func(pz models.Puzzle, i int) bool {
		if pz.Answer == "" {
			util.LogWarn("Skipping puzzle %d: empty answer", i)
			return false
		}
		if len(pz.Pairs) == 0 {
			util.LogWarn("Skipping puzzle %d (%q): no clue pairs", i, pz.Answer)
			return false
		}
		return true
	})

	if len(valid) == 0 {
		return nil, fmt.Errorf("no usable puzzles in %s", p.Path)
	}
	return valid, nil
}

// CachedProvider wraps another provider and serves its first successful or
// failed load for the process lifetime. The collection is static, so no
// invalidation is needed.
type CachedProvider struct {
	inner      models.PuzzleProvider
	once       sync.Once
	collection models.PuzzleCollection
	err        error
}

func NewCachedProvider(inner models.PuzzleProvider) *CachedProvider {
	return &CachedProvider{inner: inner}
}

func (p *CachedProvider) Collection() (models.PuzzleCollection, error) {
	p.once.Do(func() {
		p.collection, p.err = p.inner.Collection()
	})
	return p.collection, p.err
}
