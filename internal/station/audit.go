package station

import "fmt"

// Observed entry lengths
const (
	minSchematicLen = 2
	maxSchematicLen = 3
	minFactsLen     = 6
	maxFactsLen     = 8
)

// FindingKind classifies an audit finding
type FindingKind string

const (
	FindingNoSchematic  FindingKind = "no_schematic"
	FindingNoStaticData FindingKind = "no_static_data"
	FindingLength       FindingKind = "unexpected_length"
	FindingKeyForm      FindingKind = "key_not_normalized"
)

// Finding describes one irregularity in the catalog
type Finding struct {
	Kind    FindingKind `json:"kind"`
	Station string      `json:"station"`
	Detail  string      `json:"detail"`
}

func (f Finding) String() string {
	return fmt.Sprintf("%s: %s (%s)", f.Station, f.Detail, f.Kind)
}

// Audit reports irregularities in the catalog. It never changes the data.
func Audit(c *Catalog) []Finding {
	var findings []Finding

	for _, e := range c.StaticData.Entries() {
		if !c.Schematics.Has(e.Key) {
			findings = append(findings, Finding{
				Kind:    FindingNoSchematic,
				Station: e.Key,
				Detail:  "static data has no matching schematic",
			})
		}
		if n := len(e.Values); n < minFactsLen || n > maxFactsLen {
			findings = append(findings, Finding{
				Kind:    FindingLength,
				Station: e.Key,
				Detail:  fmt.Sprintf("static data has %d values, expected %d-%d", n, minFactsLen, maxFactsLen),
			})
		}
	}

	for _, e := range c.Schematics.Entries() {
		if !c.StaticData.Has(e.Key) {
			findings = append(findings, Finding{
				Kind:    FindingNoStaticData,
				Station: e.Key,
				Detail:  "schematic has no matching static data",
			})
		}
		if n := len(e.Values); n < minSchematicLen || n > maxSchematicLen {
			findings = append(findings, Finding{
				Kind:    FindingLength,
				Station: e.Key,
				Detail:  fmt.Sprintf("schematic has %d values, expected %d-%d", n, minSchematicLen, maxSchematicLen),
			})
		}
	}

	for _, k := range c.Names() {
		if NormalizeKey(k) != k {
			findings = append(findings, Finding{
				Kind:    FindingKeyForm,
				Station: k,
				Detail:  fmt.Sprintf("key should be %q", NormalizeKey(k)),
			})
		}
	}

	return findings
}
