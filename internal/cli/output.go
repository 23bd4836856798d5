package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/pfrederiksen/stationsdata/internal/station"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// StationView is the named form of one station's reference data
type StationView struct {
	Key           string   `json:"key"`
	Name          string   `json:"name"`
	Line          string   `json:"line,omitempty"`
	Transports    string   `json:"transports,omitempty"`
	Services      string   `json:"services,omitempty"`
	Accessibility string   `json:"accessibility,omitempty"`
	Commerce      string   `json:"commerce,omitempty"`
	Culture       string   `json:"culture,omitempty"`
	Image         string   `json:"image,omitempty"`
	Communes      []string `json:"communes,omitempty"`
	SchematicImg  string   `json:"schematic_image,omitempty"`
	SchematicPDF  string   `json:"schematic_pdf,omitempty"`
}

// NewStationView maps the positional entries of st to named fields
func NewStationView(st *station.Station) *StationView {
	communes := st.Facts.Communes()
	if override := st.Schematic.Commune(); override != "" {
		communes = []string{override}
	}
	return &StationView{
		Key:           st.Key,
		Name:          st.Name,
		Line:          st.Line,
		Transports:    st.Facts.Transports(),
		Services:      st.Facts.Services(),
		Accessibility: st.Facts.Accessibility(),
		Commerce:      st.Facts.Commerce(),
		Culture:       st.Facts.Culture(),
		Image:         st.Facts.Image(),
		Communes:      communes,
		SchematicImg:  st.Schematic.Image(),
		SchematicPDF:  st.Schematic.PDF(),
	}
}

// WriteStation writes one station in the specified format
func WriteStation(w io.Writer, view *StationView, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, view)
	case FormatText:
		return writeStationText(w, view)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteList writes a station listing in the specified format
func WriteList(w io.Writer, views []*StationView, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, views)
	case FormatText:
		return writeListText(w, views)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// writeStationText outputs one station as labelled sections
func writeStationText(w io.Writer, v *StationView) error {
	title := v.Name
	if v.Line != "" {
		title = fmt.Sprintf("%s (%s)", v.Name, strings.ToUpper(v.Line))
	}
	fmt.Fprintln(w, title)

	sections := []struct {
		label string
		value string
	}{
		{"Comuna", strings.Join(v.Communes, ", ")},
		{"Transports", v.Transports},
		{"Services", v.Services},
		{"Accessibility", v.Accessibility},
		{"Commerce", v.Commerce},
		{"Culture", v.Culture},
		{"Image", v.Image},
		{"Schematic", v.SchematicImg},
		{"Schematic PDF", v.SchematicPDF},
	}

	for _, s := range sections {
		value := orDash(s.value)
		// Multi-line notes are indented under their label
		if strings.Contains(value, "\n") {
			fmt.Fprintf(w, "  %s:\n", s.label)
			for _, line := range strings.Split(value, "\n") {
				fmt.Fprintf(w, "    %s\n", line)
			}
			continue
		}
		fmt.Fprintf(w, "  %s: %s\n", s.label, value)
	}
	return nil
}

// writeListText outputs an aligned station table
func writeListText(w io.Writer, views []*StationView) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "STATION\tLINE\tCOMUNA")
	for _, v := range views {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", v.Name, orDash(strings.ToUpper(v.Line)), orDash(strings.Join(v.Communes, ", ")))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "\nTotal: %d stations\n", len(views))
	return nil
}
