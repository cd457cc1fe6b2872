package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"momentum/internal/platform/category"
	apperrors "momentum/internal/platform/errors"
)

// Catalog is the vocabulary offered when logging sessions, plus yearly session targets.
type Catalog struct {
	Groups  []Group  `yaml:"groups" validate:"dive"`
	Targets []Target `yaml:"targets" validate:"dive"`
}

// Group is an activity group. ID is the stored value, Label what people see.
type Group struct {
	ID         string     `yaml:"id" validate:"required"`
	Label      string     `yaml:"label"`
	Activities []Activity `yaml:"activities" validate:"dive"`
}

type Activity struct {
	Name       string   `yaml:"name" validate:"required"`
	Highlights []string `yaml:"highlights" validate:"dive,required"`
}

type Target struct {
	Name   string  `yaml:"name" validate:"required"`
	Level  int     `yaml:"level" validate:"min=0,max=3"`
	Yearly float64 `yaml:"yearly" validate:"gte=0"`
}

// DefaultCatalog mirrors the vocabulary the dashboard shipped with.
func DefaultCatalog() Catalog {
	return Catalog{
		Groups: []Group{
			{ID: "Exercise", Label: "Exercise", Activities: []Activity{
				{Name: "Climbing", Highlights: []string{"Lead climbing", "Toprope climbing", "Bouldering"}},
				{Name: "Running", Highlights: []string{"Base", "Tempo", "Intervals"}},
				{Name: "Strength", Highlights: []string{"Bench press", "Deadlifts", "Squats"}},
				{Name: "Cross-country skiing", Highlights: []string{"Classic", "Skate"}},
				{Name: "Cycling"},
			}},
			{ID: "Technical", Label: "Self-development", Activities: []Activity{
				{Name: "Technical skills", Highlights: []string{"Personal projects", "Technical books", "Courses"}},
			}},
			{ID: "Culture", Label: "Culture", Activities: []Activity{
				{Name: "Reading", Highlights: []string{"Fiction", "Non-fiction"}},
				{Name: "Languages"},
			}},
		},
		Targets: []Target{
			{Name: "Climbing", Level: int(category.LevelName), Yearly: 85},
			{Name: "Running", Level: int(category.LevelName), Yearly: 60},
			{Name: "Strength", Level: int(category.LevelName), Yearly: 60},
		},
	}
}

// LoadCatalog reads a catalog file, falling back to DefaultCatalog when path is empty
// or the file does not exist.
func LoadCatalog(path string) (Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultCatalog(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultCatalog(), nil
		}
		return Catalog{}, fmt.Errorf("read catalog: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	var c Catalog
	if err := dec.Decode(&c); err != nil {
		return Catalog{}, fmt.Errorf("decode catalog %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return Catalog{}, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

var validate = validator.New()

// Validate checks field constraints, then that group ids are unique and every
// target names a valid selector.
func (c Catalog) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	seen := map[string]struct{}{}
	for _, g := range c.Groups {
		if _, dup := seen[g.ID]; dup {
			return fmt.Errorf("%w: duplicate group %q", apperrors.ErrValidation, g.ID)
		}
		seen[g.ID] = struct{}{}
	}
	for _, t := range c.Targets {
		if _, err := category.NewSelector(t.Name, category.Level(t.Level)); err != nil {
			return fmt.Errorf("target %q: %w", t.Name, err)
		}
	}
	return nil
}

func (c Catalog) Group(id string) (Group, bool) {
	for _, g := range c.Groups {
		if g.ID == id {
			return g, true
		}
	}
	return Group{}, false
}

// Knows reports whether name is listed under group.
func (c Catalog) Knows(group, name string) bool {
	g, ok := c.Group(group)
	if !ok {
		return false
	}
	for _, a := range g.Activities {
		if a.Name == name {
			return true
		}
	}
	return false
}

func (c Catalog) Highlights(name string) []string {
	for _, g := range c.Groups {
		for _, a := range g.Activities {
			if a.Name == name {
				return a.Highlights
			}
		}
	}
	return nil
}

// Selectors lists the categories offered for plotting: the grand total, every group
// and every activity, in catalog order.
func (c Catalog) Selectors() []category.Selector {
	out := []category.Selector{{Name: "Total", Level: category.LevelTotal}}
	for _, g := range c.Groups {
		out = append(out, category.Selector{Name: g.ID, Level: category.LevelGroup})
	}
	for _, g := range c.Groups {
		for _, a := range g.Activities {
			out = append(out, category.Selector{Name: a.Name, Level: category.LevelName})
		}
	}
	return out
}

// Label is the display name for a selector; group ids map to their label.
func (c Catalog) Label(sel category.Selector) string {
	if sel.Level == category.LevelGroup {
		if g, ok := c.Group(sel.Name); ok && g.Label != "" {
			return g.Label
		}
	}
	return sel.Name
}

// YearlyTargets indexes targets by selector.
func (c Catalog) YearlyTargets() map[category.Selector]float64 {
	out := make(map[category.Selector]float64, len(c.Targets))
	for _, t := range c.Targets {
		out[category.Selector{Name: t.Name, Level: category.Level(t.Level)}] = t.Yearly
	}
	return out
}
