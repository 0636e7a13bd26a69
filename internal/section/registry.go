package section

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Registry is the immutable set of sections known to the client.
type Registry struct {
	sections []Descriptor
	byID     map[string]int
}

// New builds a registry from descriptors, rejecting duplicate section ids,
// duplicate field keys, undefined kinds, enums without options and ranges
// whose max is below their min.
func New(sections ...Descriptor) (*Registry, error) {
	r := &Registry{byID: make(map[string]int, len(sections))}
	for _, desc := range sections {
		id := strings.TrimSpace(desc.ID)
		if id == "" {
			return nil, errors.New("section id is empty")
		}
		if _, dup := r.byID[id]; dup {
			return nil, fmt.Errorf("duplicate section %q", id)
		}
		seen := make(map[string]struct{}, len(desc.Fields))
		for _, f := range desc.Fields {
			if strings.TrimSpace(f.Key) == "" {
				return nil, fmt.Errorf("section %q: field key is empty", id)
			}
			if _, dup := seen[f.Key]; dup {
				return nil, fmt.Errorf("section %q: duplicate field %q", id, f.Key)
			}
			seen[f.Key] = struct{}{}
			if !f.Kind.Valid() {
				return nil, fmt.Errorf("section %q: field %q has undefined kind", id, f.Key)
			}
			if err := checkField(f); err != nil {
				return nil, fmt.Errorf("section %q: field %q: %w", id, f.Key, err)
			}
		}
		desc.ID = id
		r.byID[id] = len(r.sections)
		r.sections = append(r.sections, desc.clone())
	}
	return r, nil
}

func checkField(f Field) error {
	switch {
	case f.Kind == Enum:
		if len(f.Options) == 0 {
			return errors.New("enum has no options")
		}
		for _, opt := range f.Options {
			if strings.TrimSpace(opt) == "" {
				return errors.New("enum option is empty")
			}
		}
	case f.Kind.Ranged():
		if f.Max < f.Min {
			return fmt.Errorf("max %s is below min %s", Format(f.Max), Format(f.Min))
		}
		if f.Step < 0 {
			return fmt.Errorf("step %s is negative", Format(f.Step))
		}
	}
	return nil
}

// Sections returns all sections in registry order.
func (r *Registry) Sections() []Descriptor {
	out := make([]Descriptor, len(r.sections))
	for i, d := range r.sections {
		out[i] = d.clone()
	}
	return out
}

// Stateful returns the sections that have remote state.
func (r *Registry) Stateful() []Descriptor {
	var out []Descriptor
	for _, d := range r.sections {
		if d.Stateful {
			out = append(out, d.clone())
		}
	}
	return out
}

// Lookup returns the section with the given id.
func (r *Registry) Lookup(id string) (Descriptor, bool) {
	idx, ok := r.byID[id]
	if !ok {
		return Descriptor{}, false
	}
	return r.sections[idx].clone(), true
}

// Len returns the number of sections.
func (r *Registry) Len() int {
	return len(r.sections)
}

type registryFile struct {
	Sections []sectionFile `toml:"sections" yaml:"sections" validate:"required,min=1,unique=ID,dive"`
}

type sectionFile struct {
	ID       string      `toml:"id" yaml:"id" validate:"required,max=64"`
	Title    string      `toml:"title" yaml:"title"`
	Endpoint string      `toml:"endpoint" yaml:"endpoint" validate:"omitempty,max=128"`
	Stateful *bool       `toml:"stateful" yaml:"stateful"`
	Fields   []fieldFile `toml:"fields" yaml:"fields" validate:"unique=Key,dive"`
}

type fieldFile struct {
	Key     string   `toml:"key" yaml:"key" validate:"required,max=64"`
	Label   string   `toml:"label" yaml:"label"`
	Kind    string   `toml:"kind" yaml:"kind" validate:"required"`
	Min     float64  `toml:"min" yaml:"min"`
	Max     float64  `toml:"max" yaml:"max" validate:"gtefield=Min"`
	Step    float64  `toml:"step" yaml:"step" validate:"gte=0"`
	Options []string `toml:"options" yaml:"options" validate:"omitempty,dive,required"`
}

var registryValidate = validator.New()

// Load reads a registry file. The format is chosen by extension: .toml, or
// .yaml/.yml.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read registry: %w", err)
	}

	var raw registryFile
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, &raw)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &raw)
	default:
		return nil, fmt.Errorf("registry %s: unsupported format %q", path, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parse registry: %w", err)
	}
	return fromFile(raw)
}

func fromFile(raw registryFile) (*Registry, error) {
	if err := registryValidate.Struct(raw); err != nil {
		return nil, fmt.Errorf("validate registry: %w", err)
	}

	descs := make([]Descriptor, 0, len(raw.Sections))
	for _, s := range raw.Sections {
		desc := Descriptor{
			ID:       s.ID,
			Title:    s.Title,
			Endpoint: s.Endpoint,
			Stateful: s.Stateful == nil || *s.Stateful,
		}
		for _, f := range s.Fields {
			kind, err := ParseKind(f.Kind)
			if err != nil {
				return nil, fmt.Errorf("section %q field %q: %w", s.ID, f.Key, err)
			}
			desc.Fields = append(desc.Fields, Field{
				Key:     f.Key,
				Label:   f.Label,
				Kind:    kind,
				Min:     f.Min,
				Max:     f.Max,
				Step:    f.Step,
				Options: f.Options,
			})
		}
		descs = append(descs, desc)
	}
	return New(descs...)
}
