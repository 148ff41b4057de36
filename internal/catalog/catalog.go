// Package catalog holds the built-in word list. The list ships embedded in
// the binary so both the server and the offline CLI see the same words.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/hyeon/vocaflash/internal/models"
)

//go:embed words.json
var wordsJSON []byte

// Catalog is an immutable, id-indexed word list.
type Catalog struct {
	words []models.Word
	byID  map[int]models.Word
}

// Load parses the embedded word list. It fails only if the embedded data is
// malformed, so callers treat an error here as fatal.
func Load() (*Catalog, error) {
	var words []models.Word
	if err := json.Unmarshal(wordsJSON, &words); err != nil {
		return nil, fmt.Errorf("parse embedded words: %w", err)
	}
	byID := make(map[int]models.Word, len(words))
	for _, w := range words {
		if _, dup := byID[w.ID]; dup {
			return nil, fmt.Errorf("duplicate word id %d", w.ID)
		}
		byID[w.ID] = w
	}
	sort.Slice(words, func(i, j int) bool { return words[i].ID < words[j].ID })
	return &Catalog{words: words, byID: byID}, nil
}

// Words returns every word, ordered by id.
func (c *Catalog) Words() []models.Word {
	return c.words
}

// ByID looks a word up, reporting whether it exists.
func (c *Catalog) ByID(id int) (models.Word, bool) {
	w, ok := c.byID[id]
	return w, ok
}

// ByLevel returns the words of one content level, ordered by id.
func (c *Catalog) ByLevel(level int) []models.Word {
	var out []models.Word
	for _, w := range c.words {
		if w.Level == level {
			out = append(out, w)
		}
	}
	return out
}

// ForLevels returns the words whose level is in the unlocked set.
func (c *Catalog) ForLevels(levels []int) []models.Word {
	allowed := make(map[int]bool, len(levels))
	for _, l := range levels {
		allowed[l] = true
	}
	var out []models.Word
	for _, w := range c.words {
		if allowed[w.Level] {
			out = append(out, w)
		}
	}
	return out
}

// Len reports the catalog size.
func (c *Catalog) Len() int {
	return len(c.words)
}
