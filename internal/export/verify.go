package export

import (
	"encoding/json"
	"fmt"

	"github.com/keboola/go-utils/pkg/orderedmap"
	"github.com/spf13/afero"

	"github.com/pfrederiksen/stationsdata/internal/station"
)

// Mismatch is one difference between an exported file and the source data
type Mismatch struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

func (m Mismatch) String() string {
	return fmt.Sprintf("%s: %s", m.Path, m.Reason)
}

// ReadFile parses an exported file keeping key order
func ReadFile(fs afero.Fs, path string) (*orderedmap.OrderedMap, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Decode(data)
}

// Decode parses exported JSON keeping key order
func Decode(data []byte) (*orderedmap.OrderedMap, error) {
	parsed := orderedmap.New()
	if err := json.Unmarshal(data, parsed); err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}
	return parsed, nil
}

// Verify compares a parsed export against the document it should hold.
// An empty result means the export is a faithful copy.
func Verify(parsed *orderedmap.OrderedMap, doc *Document) []Mismatch {
	var mismatches []Mismatch

	want := []string{"schematics", "staticData"}
	got := parsed.Keys()
	if !equalStrings(want, got) {
		mismatches = append(mismatches, Mismatch{
			Path:   "$",
			Reason: fmt.Sprintf("top-level keys are %q, expected %q", got, want),
		})
	}

	sections := []struct {
		name  string
		table *station.Table
	}{
		{name: "schematics", table: doc.Schematics},
		{name: "staticData", table: doc.StaticData},
	}

	for _, s := range sections {
		raw, ok := parsed.Get(s.name)
		if !ok {
			mismatches = append(mismatches, Mismatch{Path: s.name, Reason: "missing"})
			continue
		}
		section, ok := asOrderedMap(raw)
		if !ok {
			mismatches = append(mismatches, Mismatch{Path: s.name, Reason: "not an object"})
			continue
		}
		mismatches = append(mismatches, verifySection(s.name, section, s.table)...)
	}

	return mismatches
}

func verifySection(name string, section *orderedmap.OrderedMap, table *station.Table) []Mismatch {
	var mismatches []Mismatch

	if !equalStrings(table.Keys(), section.Keys()) {
		mismatches = append(mismatches, Mismatch{
			Path:   name,
			Reason: fmt.Sprintf("key order differs (%d keys, expected %d)", len(section.Keys()), table.Len()),
		})
	}

	for _, e := range table.Entries() {
		path := fmt.Sprintf("%s[%q]", name, e.Key)

		raw, ok := section.Get(e.Key)
		if !ok {
			mismatches = append(mismatches, Mismatch{Path: path, Reason: "missing"})
			continue
		}
		list, ok := raw.([]interface{})
		if !ok {
			mismatches = append(mismatches, Mismatch{Path: path, Reason: "not an array"})
			continue
		}
		if len(list) != len(e.Values) {
			mismatches = append(mismatches, Mismatch{
				Path:   path,
				Reason: fmt.Sprintf("has %d values, expected %d", len(list), len(e.Values)),
			})
			continue
		}
		for i, v := range list {
			s, ok := v.(string)
			if !ok {
				mismatches = append(mismatches, Mismatch{
					Path:   fmt.Sprintf("%s[%d]", path, i),
					Reason: fmt.Sprintf("is %v, expected string %q", v, e.Values[i]),
				})
				continue
			}
			if s != e.Values[i] {
				mismatches = append(mismatches, Mismatch{
					Path:   fmt.Sprintf("%s[%d]", path, i),
					Reason: fmt.Sprintf("is %q, expected %q", s, e.Values[i]),
				})
			}
		}
	}

	for _, k := range section.Keys() {
		if !table.Has(k) {
			mismatches = append(mismatches, Mismatch{
				Path:   fmt.Sprintf("%s[%q]", name, k),
				Reason: "unexpected key",
			})
		}
	}

	return mismatches
}

func asOrderedMap(v interface{}) (*orderedmap.OrderedMap, bool) {
	switch m := v.(type) {
	case *orderedmap.OrderedMap:
		return m, true
	case orderedmap.OrderedMap:
		return &m, true
	default:
		return nil, false
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
