// Package catalog provides read-only catalog snapshots for the engine.
// A snapshot is built once per request from externally fetched items; the
// engine never talks to a network service itself.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/okian/ensemble/internal/domain/model"
)

// Snapshot is an immutable view over a set of catalog items, indexed by
// role. Items missing an id or role are skipped with a recorded warning
// rather than failing the request.
type Snapshot struct {
	items    []model.Item
	byRole   map[model.Role][]model.Item
	warnings []string
}

// NewSnapshot builds a snapshot, validating items as it goes.
func NewSnapshot(items []model.Item) *Snapshot {
	s := &Snapshot{
		byRole: make(map[model.Role][]model.Item),
	}
	for _, it := range items {
		if strings.TrimSpace(it.ID) == "" {
			s.warnings = append(s.warnings, "item with empty id skipped")
			continue
		}
		if !it.Role.Valid() {
			s.warnings = append(s.warnings, fmt.Sprintf("item %s: unknown role %q skipped", it.ID, it.Role))
			continue
		}
		s.items = append(s.items, it)
		s.byRole[it.Role] = append(s.byRole[it.Role], it)
	}
	return s
}

// Load reads a JSON array of items from path and builds a snapshot.
func Load(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadCatalog, err)
	}
	var items []model.Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadCatalog, err)
	}
	s := NewSnapshot(items)
	if s.Len() == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyCatalog, path)
	}
	return s, nil
}

// LoadIntent reads a structured intent from a JSON file. Unknown fields are
// ignored so upstream parsers can evolve independently.
func LoadIntent(path string) (model.Intent, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Intent{}, fmt.Errorf("%w: %v", ErrLoadIntent, err)
	}
	var in model.Intent
	if err := json.Unmarshal(data, &in); err != nil {
		return model.Intent{}, fmt.Errorf("%w: %v", ErrLoadIntent, err)
	}
	return in, nil
}

// Items returns all valid items in input order.
func (s *Snapshot) Items() []model.Item { return s.items }

// ByRole returns the valid items holding the given role.
func (s *Snapshot) ByRole(role model.Role) []model.Item { return s.byRole[role] }

// Len returns the number of valid items.
func (s *Snapshot) Len() int { return len(s.items) }

// Warnings returns validation warnings collected while building.
func (s *Snapshot) Warnings() []string { return s.warnings }
