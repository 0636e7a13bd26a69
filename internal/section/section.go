package section

import "strings"

// Field describes one editable value inside a section.
type Field struct {
	Key     string
	Label   string
	Kind    Kind
	Min     float64
	Max     float64
	Step    float64
	Options []string
}

// DisplayLabel returns the label to show next to the field's control.
func (f Field) DisplayLabel() string {
	if label := strings.TrimSpace(f.Label); label != "" {
		return label
	}
	return f.Key
}

// Descriptor is the static description of a section.
type Descriptor struct {
	ID       string
	Title    string
	Endpoint string
	Stateful bool
	Fields   []Field
}

// RemoteEndpoint returns the path segment used for /state/{section}.
func (d Descriptor) RemoteEndpoint() string {
	if ep := strings.TrimSpace(d.Endpoint); ep != "" {
		return ep
	}
	return d.ID
}

// DisplayTitle returns the tab title for the section.
func (d Descriptor) DisplayTitle() string {
	if title := strings.TrimSpace(d.Title); title != "" {
		return title
	}
	return d.ID
}

// Field looks up a field by key.
func (d Descriptor) Field(key string) (Field, bool) {
	for _, f := range d.Fields {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

func (d Descriptor) clone() Descriptor {
	dup := d
	dup.Fields = make([]Field, len(d.Fields))
	for i, f := range d.Fields {
		f.Options = append([]string(nil), f.Options...)
		dup.Fields[i] = f
	}
	return dup
}
