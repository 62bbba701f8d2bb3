// Package catalog holds the pre-authored solution bundles and selects the ones
// that fit a shopper's intent.
//
// A Catalog is loaded once and never mutated afterwards, so a single instance
// may be shared by concurrent requests without locking.
package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Veraticus/tech-concierge/internal/model"
)

//go:embed default_catalog.yaml
var defaultCatalog []byte

// Validation errors returned by Load.
var (
	ErrNoGroups         = errors.New("catalog has no groups")
	ErrNoFeaturedGroups = errors.New("catalog has no featured groups")
	ErrDuplicateBundle  = errors.New("duplicate bundle id")
	ErrUnknownBundle    = errors.New("unknown bundle id")
	ErrInvalidPrice     = errors.New("invalid bundle price")
)

// Group is a set of bundles serving one primary intent.
type Group struct {
	ID          string         `yaml:"id"`
	Name        string         `yaml:"name"`
	ValueBundle string         `yaml:"value_bundle"`
	Keywords    []string       `yaml:"keywords"`
	Bundles     []model.Bundle `yaml:"bundles"`
	Featured    bool           `yaml:"featured"`
}

// matches reports whether any keyword is a case-insensitive substring of value.
func (g *Group) matches(value string) bool {
	if value == "" {
		return false
	}
	lower := strings.ToLower(value)
	for _, kw := range g.Keywords {
		if kw != "" && strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

type document struct {
	DefaultValueBundle string        `yaml:"default_value_bundle"`
	Groups             []Group       `yaml:"groups"`
	Stores             []model.Store `yaml:"stores"`
	Version            int           `yaml:"version"`
}

// Catalog is an immutable, validated set of bundle groups and stores.
type Catalog struct {
	byID         map[string]model.Bundle
	groupOf      map[string]string
	defaultValue string
	groups       []Group
	stores       []model.Store
}

// Default returns the catalog compiled into the binary.
func Default() (*Catalog, error) {
	return Load(bytes.NewReader(defaultCatalog))
}

// LoadFile reads a YAML catalog from path.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from user configuration
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer func() { _ = f.Close() }()

	c, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Load decodes and validates a YAML catalog.
func Load(r io.Reader) (*Catalog, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	return build(doc)
}

func build(doc document) (*Catalog, error) {
	if len(doc.Groups) == 0 {
		return nil, ErrNoGroups
	}

	c := &Catalog{
		groups:       doc.Groups,
		stores:       doc.Stores,
		defaultValue: doc.DefaultValueBundle,
		byID:         make(map[string]model.Bundle),
		groupOf:      make(map[string]string),
	}

	featured := 0
	for _, g := range doc.Groups {
		if g.Featured {
			featured++
			if len(g.Bundles) == 0 {
				return nil, fmt.Errorf("featured group %q has no bundles", g.ID)
			}
		}
		for _, b := range g.Bundles {
			if b.ID == "" {
				return nil, fmt.Errorf("group %q: bundle without id", g.ID)
			}
			if _, dup := c.byID[b.ID]; dup {
				return nil, fmt.Errorf("%w: %s", ErrDuplicateBundle, b.ID)
			}
			if b.TotalPrice.OneTime < 0 || b.TotalPrice.Monthly < 0 {
				return nil, fmt.Errorf("%w: %s", ErrInvalidPrice, b.ID)
			}
			c.byID[b.ID] = b
			c.groupOf[b.ID] = g.ID
		}
	}
	if featured == 0 {
		return nil, ErrNoFeaturedGroups
	}

	for _, g := range doc.Groups {
		if g.ValueBundle == "" {
			continue
		}
		if c.groupOf[g.ValueBundle] != g.ID {
			return nil, fmt.Errorf("group %q value bundle: %w: %s", g.ID, ErrUnknownBundle, g.ValueBundle)
		}
	}

	if c.defaultValue == "" {
		c.defaultValue = doc.Groups[0].ValueBundle
	}
	if _, ok := c.byID[c.defaultValue]; !ok {
		return nil, fmt.Errorf("default value bundle: %w: %q", ErrUnknownBundle, c.defaultValue)
	}

	return c, nil
}

// Bundles returns every bundle in catalog order.
func (c *Catalog) Bundles() []model.Bundle {
	out := make([]model.Bundle, 0, len(c.byID))
	for _, g := range c.groups {
		out = append(out, g.Bundles...)
	}
	return out
}

// Bundle looks up a bundle by ID.
func (c *Catalog) Bundle(id string) (model.Bundle, bool) {
	b, ok := c.byID[id]
	return b, ok
}

// Groups returns the catalog groups in order.
func (c *Catalog) Groups() []Group {
	out := make([]Group, len(c.groups))
	copy(out, c.groups)
	return out
}

// GroupOf returns the ID of the group a bundle belongs to.
func (c *Catalog) GroupOf(bundleID string) (string, bool) {
	id, ok := c.groupOf[bundleID]
	return id, ok
}

// Stores returns the stores listed in the catalog.
func (c *Catalog) Stores() []model.Store {
	out := make([]model.Store, len(c.stores))
	copy(out, c.stores)
	return out
}
