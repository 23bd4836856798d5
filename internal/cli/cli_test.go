package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/pfrederiksen/stationsdata/internal/export"
	"github.com/pfrederiksen/stationsdata/internal/station"
)

// run executes the root command against an in-memory filesystem
func run(t *testing.T, fs afero.Fs, args ...string) (string, string, error) {
	t.Helper()

	previous := appFs
	appFs = fs
	defer func() { appFs = previous }()

	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRootExports(t *testing.T) {
	fs := afero.NewMemMapFs()

	stdout, stderr, err := run(t, fs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stdout != "JSON file 'stationsdata.json' has been generated successfully.\n" {
		t.Errorf("unexpected confirmation %q", stdout)
	}
	if stderr != "" {
		t.Errorf("expected no logs without --verbose, got %q", stderr)
	}

	data, err := afero.ReadFile(fs, "stationsdata.json")
	if err != nil {
		t.Fatalf("export not written: %v", err)
	}
	var parsed map[string]map[string][]string
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(parsed["schematics"]) != 135 || len(parsed["staticData"]) != 136 {
		t.Errorf("unexpected sizes: %d schematics, %d static", len(parsed["schematics"]), len(parsed["staticData"]))
	}
}

func TestExportFlags(t *testing.T) {
	fs := afero.NewMemMapFs()

	stdout, stderr, err := run(t, fs, "export", "-o", "out/stations.json", "--ascii", "--verbose")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(stdout, "'out/stations.json'") {
		t.Errorf("expected confirmation naming the output, got %q", stdout)
	}
	if !strings.Contains(stderr, `"message":"Export written"`) {
		t.Errorf("expected debug log with --verbose, got %q", stderr)
	}

	data, _ := afero.ReadFile(fs, "out/stations.json")
	if !strings.Contains(string(data), `Estaci\u00f3n Central`) {
		t.Error("expected ascii escapes in output")
	}
}

func TestExportWriteFailure(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())

	stdout, stderr, err := run(t, fs)
	if err == nil {
		t.Fatal("expected error on read-only filesystem")
	}
	if !strings.Contains(err.Error(), "exporting: opening stationsdata.json") {
		t.Errorf("unexpected error %v", err)
	}
	if !strings.Contains(stderr, `"message":"Export failed"`) {
		t.Errorf("expected export failure to be logged, got %q", stderr)
	}
	if stdout != "" {
		t.Errorf("expected no confirmation on failure, got %q", stdout)
	}
}

func TestVerifyCommand(t *testing.T) {
	fs := afero.NewMemMapFs()
	if _, _, err := run(t, fs); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	stdout, _, err := run(t, fs, "verify")
	if err != nil {
		t.Fatalf("verify failed on fresh export: %v", err)
	}
	if !strings.Contains(stdout, "matches 135 schematics and 136 static data entries") {
		t.Errorf("unexpected verify output %q", stdout)
	}

	doc := export.NewDocument(station.NewTable(), station.NewTable())
	if err := export.WriteFile(fs, "empty.json", doc, export.Options{}); err != nil {
		t.Fatal(err)
	}
	_, _, err = run(t, fs, "verify", "empty.json")
	if !errors.Is(err, ErrMismatch) {
		t.Errorf("expected ErrMismatch, got %v", err)
	}

	_, _, err = run(t, fs, "verify", "missing.json")
	if err == nil || errors.Is(err, ErrMismatch) {
		t.Errorf("expected read error, got %v", err)
	}
}

func TestShowCommand(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantText []string
		wantErr  error
	}{
		{
			name:     "text",
			args:     []string{"show", "Estación", "Central"},
			wantText: []string{"estacion central\n", "  Comuna: Estación Central\n", "  Schematic PDF: https://www.metro.cl/estacion/isometricas/estacion-central.pdf\n"},
		},
		{
			name:     "multi-line accessibility",
			args:     []string{"show", "quilin"},
			wantText: []string{"  Accessibility:\n    - Ascensor de acceso", "  Schematic: -\n"},
		},
		{
			name:     "line title",
			args:     []string{"show", "los heroes l2"},
			wantText: []string{"los heroes (L2)\n"},
		},
		{
			name:     "json",
			args:     []string{"show", "neptuno", "--format", "json"},
			wantText: []string{`"key": "neptuno"`, `"schematic_pdf": "https://www.metro.cl/estacion/isometricas/neptuno.pdf"`},
		},
		{
			name:    "ambiguous",
			args:    []string{"show", "franklin"},
			wantErr: station.ErrAmbiguous,
		},
		{
			name:    "unknown",
			args:    []string{"show", "plaza italia"},
			wantErr: station.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := run(t, afero.NewMemMapFs(), tt.args...)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for _, want := range tt.wantText {
				if !strings.Contains(stdout, want) {
					t.Errorf("output missing %q:\n%s", want, stdout)
				}
			}
		})
	}
}

func TestInvalidFormat(t *testing.T) {
	_, _, err := run(t, afero.NewMemMapFs(), "list", "--format", "xml")
	if err == nil || !strings.Contains(err.Error(), "invalid format") {
		t.Errorf("expected invalid format error, got %v", err)
	}
}

func TestListCommand(t *testing.T) {
	stdout, _, err := run(t, afero.NewMemMapFs(), "list")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(stdout, "STATION") {
		t.Errorf("expected header first, got %q", stdout[:20])
	}
	if !strings.Contains(stdout, "Total: 136 stations") {
		t.Error("expected 136 stations")
	}

	stdout, _, err = run(t, afero.NewMemMapFs(), "list", "--format", "json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var views []StationView
	if err := json.Unmarshal([]byte(stdout), &views); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(views) != 136 || views[0].Key != "san pablo l1" {
		t.Errorf("unexpected listing: %d views", len(views))
	}

	_, _, err = run(t, afero.NewMemMapFs(), "list", "--sort", "length")
	if err == nil {
		t.Error("expected invalid sort order error")
	}
}

func TestAuditCommand(t *testing.T) {
	stdout, _, err := run(t, afero.NewMemMapFs(), "audit")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(stdout, "quilin: static data has no matching schematic (no_schematic)") {
		t.Errorf("expected quilin finding, got %q", stdout)
	}
	if !strings.Contains(stdout, "Total: 1 findings") {
		t.Errorf("expected one finding, got %q", stdout)
	}
}
