package station

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// None is the sentinel stored for absent values. It is exported verbatim.
const None = "None"

// Positions within a static data entry
const (
	factTransports = iota
	factServices
	factAccessibility
	factCommerce
	factCulture
	factImage
	factCommune
)

// Schematic entry positions
const (
	schematicImage = iota
	schematicPDF
	schematicCommune
)

var lineSuffix = regexp.MustCompile(`^(.*\S)\s+(l[1-6]|l4a)$`)

// NormalizeKey converts a display name into key form: lowercase,
// accents stripped, whitespace collapsed to single spaces.
func NormalizeKey(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, name)
	if err != nil {
		stripped = name
	}
	return strings.Join(strings.Fields(strings.ToLower(stripped)), " ")
}

// SplitLine splits a trailing line suffix (l1..l6, l4a) off a key.
// line is empty when the key carries no suffix.
func SplitLine(key string) (base, line string) {
	m := lineSuffix.FindStringSubmatch(key)
	if m == nil {
		return key, ""
	}
	return m[1], m[2]
}

// value returns values[i], mapping the None sentinel and missing
// positions to an empty string
func value(values []string, i int) string {
	if i < 0 || i >= len(values) {
		return ""
	}
	if values[i] == None {
		return ""
	}
	return values[i]
}

// Schematic is a read-only view over a schematic entry
type Schematic []string

// Image returns the isometric image URL
func (s Schematic) Image() string { return value(s, schematicImage) }

// PDF returns the schematic PDF URL
func (s Schematic) PDF() string { return value(s, schematicPDF) }

// Commune returns the comuna override, if any
func (s Schematic) Commune() string { return value(s, schematicCommune) }

// Facts is a read-only view over a static data entry.
//
// Entries normally carry seven values. Six-value entries omit the image
// URL, so the comuna moves up one position. Values past the seventh are
// kept but not interpreted.
type Facts []string

func (f Facts) Transports() string    { return value(f, factTransports) }
func (f Facts) Services() string      { return value(f, factServices) }
func (f Facts) Accessibility() string { return value(f, factAccessibility) }
func (f Facts) Commerce() string      { return value(f, factCommerce) }
func (f Facts) Culture() string       { return value(f, factCulture) }

// Image returns the station image URL
func (f Facts) Image() string {
	if len(f) <= factImage+1 {
		return ""
	}
	return value(f, factImage)
}

// Commune returns the raw comuna field
func (f Facts) Commune() string {
	if len(f) == factImage+1 {
		return value(f, factImage)
	}
	return value(f, factCommune)
}

// Communes splits the comuna field on commas
func (f Facts) Communes() []string {
	raw := f.Commune()
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	communes := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			communes = append(communes, p)
		}
	}
	return communes
}

// Station joins both reference entries of one key
type Station struct {
	Key       string
	Name      string
	Line      string
	Schematic Schematic
	Facts     Facts
}

// Commune returns the comuna, preferring the schematic override
func (s *Station) Commune() string {
	if c := s.Schematic.Commune(); c != "" {
		return c
	}
	return s.Facts.Commune()
}
