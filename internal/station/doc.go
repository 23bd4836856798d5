// Package station provides the metro station reference data.
//
// Two mappings are embedded in the binary: isometric schematics (image and
// PDF links) and static facts (transports, services, accessibility, commerce,
// culture, image, comuna). Both are keyed by a lowercase, accent-stripped
// station name with an optional line suffix, and both keep their declaration
// order. Entries are positional string lists; absent values are the literal
// string "None". The Schematic and Facts views name the positions without
// altering the stored lists.
package station
