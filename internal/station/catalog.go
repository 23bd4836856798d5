package station

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var dataFS embed.FS

const (
	schematicsFile = "data/schematics.yaml"
	staticFile     = "data/static.yaml"
)

var (
	// ErrNotFound is returned when no station matches a lookup
	ErrNotFound = errors.New("station not found")
	// ErrAmbiguous is returned when a name matches stations on several lines
	ErrAmbiguous = errors.New("station name is ambiguous")
)

// Catalog holds the two reference mappings
type Catalog struct {
	Schematics *Table
	StaticData *Table
}

// record is one YAML item of a data file
type record struct {
	Station string   `yaml:"station"`
	Values  []string `yaml:"values"`
}

// Load decodes the embedded reference data
func Load() (*Catalog, error) {
	schematics, err := loadTable(schematicsFile)
	if err != nil {
		return nil, err
	}
	static, err := loadTable(staticFile)
	if err != nil {
		return nil, err
	}
	return &Catalog{Schematics: schematics, StaticData: static}, nil
}

func loadTable(name string) (*Table, error) {
	data, err := dataFS.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	table, err := DecodeTable(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", name, err)
	}
	return table, nil
}

// DecodeTable reads a YAML sequence of station records into a Table
func DecodeTable(r io.Reader) (*Table, error) {
	var records []record
	if err := yaml.NewDecoder(r).Decode(&records); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	table := NewTable()
	for i, rec := range records {
		if rec.Station == "" {
			return nil, fmt.Errorf("record %d: missing station key", i+1)
		}
		values := rec.Values
		if values == nil {
			values = []string{}
		}
		table.Set(rec.Station, values)
	}
	return table, nil
}

// Names returns every station key, static data order first, then keys
// that only have a schematic
func (c *Catalog) Names() []string {
	names := c.StaticData.Keys()
	for _, k := range c.Schematics.Keys() {
		if !c.StaticData.Has(k) {
			names = append(names, k)
		}
	}
	return names
}

// Station assembles the entries stored under an exact key
func (c *Catalog) Station(key string) (*Station, bool) {
	schematic, hasSchematic := c.Schematics.Get(key)
	facts, hasFacts := c.StaticData.Get(key)
	if !hasSchematic && !hasFacts {
		return nil, false
	}
	name, line := SplitLine(key)
	return &Station{
		Key:       key,
		Name:      name,
		Line:      line,
		Schematic: Schematic(schematic),
		Facts:     Facts(facts),
	}, true
}

// Lookup finds a station by display name. The query is normalized first;
// a bare name matches its line-suffixed keys when exactly one exists.
func (c *Catalog) Lookup(query string) (*Station, error) {
	key := NormalizeKey(query)
	if key == "" {
		return nil, fmt.Errorf("%w: empty name", ErrNotFound)
	}

	if st, ok := c.Station(key); ok {
		return st, nil
	}

	var matches []string
	for _, k := range c.Names() {
		if base, line := SplitLine(k); line != "" && base == key {
			matches = append(matches, k)
		}
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, query)
	case 1:
		st, _ := c.Station(matches[0])
		return st, nil
	default:
		return nil, fmt.Errorf("%w: %s matches %s", ErrAmbiguous, query, strings.Join(matches, ", "))
	}
}
