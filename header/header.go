package header

import (
	"net/http"
	"sort"
	"strings"
)

// Map is an ordered, case-insensitive multimap of header names to values.
// The first spelling used for a name is the one that is written out.
// The zero value is ready to use.
type Map struct {
	fields []field
}

type field struct {
	name   string
	values []string
}

// New returns an empty header map.
func New() *Map {
	return &Map{}
}

// FromHTTP creates a map from a net/http header.
// Names are added in sorted order, since http.Header has no order of its own.
func FromHTTP(h http.Header) *Map {
	m := New()
	for _, name := range sortedNames(h) {
		for _, v := range h[name] {
			m.Add(name, v)
		}
	}
	return m
}

func (m *Map) index(name string) int {
	for i, f := range m.fields {
		if strings.EqualFold(f.name, name) {
			return i
		}
	}
	return -1
}

// Get returns the first value for the name, or "" if not present.
func (m *Map) Get(name string) string {
	if i := m.index(name); i >= 0 && len(m.fields[i].values) > 0 {
		return m.fields[i].values[0]
	}
	return ""
}

// Values returns a copy of all values set for the name.
func (m *Map) Values(name string) []string {
	i := m.index(name)
	if i < 0 {
		return nil
	}
	return append([]string(nil), m.fields[i].values...)
}

// Has reports whether the name is present.
func (m *Map) Has(name string) bool {
	return m.index(name) >= 0
}

// Set replaces all values of the name with value.
// An existing name keeps its position in the map.
func (m *Map) Set(name, value string) {
	if i := m.index(name); i >= 0 {
		m.fields[i].values = []string{value}
		return
	}
	m.fields = append(m.fields, field{name: name, values: []string{value}})
}

// Add appends value to the values of name, keeping existing ones.
func (m *Map) Add(name, value string) {
	if i := m.index(name); i >= 0 {
		m.fields[i].values = append(m.fields[i].values, value)
		return
	}
	m.fields = append(m.fields, field{name: name, values: []string{value}})
}

// Del removes all values of the name.
func (m *Map) Del(name string) {
	if i := m.index(name); i >= 0 {
		m.fields = append(m.fields[:i], m.fields[i+1:]...)
	}
}

// Len returns the number of distinct names.
func (m *Map) Len() int {
	return len(m.fields)
}

// Each calls fn for every name in insertion order.
func (m *Map) Each(fn func(name string, values []string)) {
	for _, f := range m.fields {
		fn(f.name, f.values)
	}
}

// Clone returns a deep copy of the map.
func (m *Map) Clone() *Map {
	c := &Map{fields: make([]field, len(m.fields))}
	for i, f := range m.fields {
		c.fields[i] = field{name: f.name, values: append([]string(nil), f.values...)}
	}
	return c
}

// WriteTo adds all values to h, one entry per value.
// Multi-valued names such as Set-Cookie are never merged into one line.
func (m *Map) WriteTo(h http.Header) {
	for _, f := range m.fields {
		for _, v := range f.values {
			h.Add(f.name, v)
		}
	}
}

func sortedNames(h http.Header) []string {
	names := make([]string, 0, len(h))
	for name := range h {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
