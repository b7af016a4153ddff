package seed

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"

	"github.com/idilsaglam/vtodo/internal/model"
)

// Seed files are read once at startup and never written back.
// JSON and YAML hold the same shape: a list of {id, text, checked}.
// Ids may be left out; missing ids are filled in after the highest given one.

// DefaultCount is the size of a generated seed.
const DefaultCount = 10000

type record struct {
	ID      *int   `json:"id,omitempty" yaml:"id,omitempty"`
	Text    string `json:"text" yaml:"text"`
	Checked bool   `json:"checked" yaml:"checked"`
}

// Load reads entries from a .json, .yaml or .yml file.
func Load(path string) ([]model.Entry, error) {
	p, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("expand path: %w", err)
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return Parse(b, filepath.Ext(p))
}

// Parse decodes seed data. ext selects the format; anything other than
// ".json" is read as YAML, which also accepts JSON.
func Parse(b []byte, ext string) ([]model.Entry, error) {
	var recs []record
	switch strings.ToLower(ext) {
	case ".json":
		if err := json.Unmarshal(b, &recs); err != nil {
			return nil, fmt.Errorf("json unmarshal: %w", err)
		}
	default:
		if err := yaml.Unmarshal(b, &recs); err != nil {
			return nil, fmt.Errorf("yaml unmarshal: %w", err)
		}
	}
	return fill(recs), nil
}

func fill(recs []record) []model.Entry {
	next := 0
	for _, r := range recs {
		if r.ID != nil && *r.ID >= next {
			next = *r.ID + 1
		}
	}
	out := make([]model.Entry, 0, len(recs))
	for _, r := range recs {
		e := model.Entry{Text: r.Text, Checked: r.Checked}
		if r.ID != nil {
			e.ID = *r.ID
		} else {
			e.ID = next
			next++
		}
		out = append(out, e)
	}
	return out
}

// Generate returns n entries with ids 0..n-1. Every third one is checked so
// the list has some texture.
func Generate(n int) []model.Entry {
	if n < 0 {
		n = 0
	}
	out := make([]model.Entry, n)
	for i := range out {
		out[i] = model.Entry{
			ID:      i,
			Text:    fmt.Sprintf("Todo #%d", i+1),
			Checked: i%3 == 2,
		}
	}
	return out
}
