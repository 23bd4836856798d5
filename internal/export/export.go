package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/spf13/afero"

	"github.com/pfrederiksen/stationsdata/internal/station"
)

// DefaultFileName is written to the working directory when no path is given
const DefaultFileName = "stationsdata.json"

const indent = "    "

// Document is the exported JSON object. Field order is the key order.
type Document struct {
	Schematics *station.Table `json:"schematics"`
	StaticData *station.Table `json:"staticData"`
}

// Options controls the encoding
type Options struct {
	// ASCII writes every non-ASCII character as a \uXXXX escape
	ASCII bool
}

// NewDocument wraps the two mappings. A nil mapping exports as {}.
func NewDocument(schematics, staticData *station.Table) *Document {
	if schematics == nil {
		schematics = station.NewTable()
	}
	if staticData == nil {
		staticData = station.NewTable()
	}
	return &Document{Schematics: schematics, StaticData: staticData}
}

// FromCatalog wraps the catalog mappings
func FromCatalog(c *station.Catalog) *Document {
	return NewDocument(c.Schematics, c.StaticData)
}

// Encode serializes the document with 4-space indentation and no
// trailing newline
func Encode(doc *Document, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", indent)

	if err := encoder.Encode(doc); err != nil {
		return nil, fmt.Errorf("encoding document: %w", err)
	}

	data := bytes.TrimSuffix(buf.Bytes(), []byte("\n"))
	if opts.ASCII {
		data = escapeNonASCII(data)
	}
	return data, nil
}

// escapeNonASCII rewrites non-ASCII runes as JSON \u escapes. JSON
// structure is pure ASCII, so only string contents are affected.
func escapeNonASCII(data []byte) []byte {
	out := make([]byte, 0, len(data))
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		data = data[size:]

		if r < utf8.RuneSelf {
			out = append(out, byte(r))
			continue
		}
		if r > 0xFFFF {
			r1, r2 := utf16.EncodeRune(r)
			out = fmt.Appendf(out, `\u%04x\u%04x`, r1, r2)
			continue
		}
		out = fmt.Appendf(out, `\u%04x`, r)
	}
	return out
}

// WriteFile encodes the document and writes it to path, truncating any
// existing file
func WriteFile(fs afero.Fs, path string, doc *Document, opts Options) (err error) {
	data, err := Encode(doc, opts)
	if err != nil {
		return err
	}

	f, err := fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, closeErr)
		}
	}()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Confirmation is the message printed after a successful write
func Confirmation(name string) string {
	return fmt.Sprintf("JSON file '%s' has been generated successfully.", name)
}
