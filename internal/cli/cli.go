package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/pfrederiksen/stationsdata/internal/export"
	"github.com/pfrederiksen/stationsdata/internal/logger"
	"github.com/pfrederiksen/stationsdata/internal/station"
)

// ExitError is the process status for any failed command
const ExitError = 1

var (
	flagOutput  string
	flagASCII   bool
	flagFormat  string
	flagSort    string
	flagVerbose bool
)

// appFs is the filesystem exports are written to and verified from
var appFs afero.Fs = afero.NewOsFs()

// ErrMismatch is returned by verify when the file differs from the catalog
var ErrMismatch = errors.New("exported file does not match station data")

// NewRootCmd creates the root command. Without a subcommand it exports.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stationsdata",
		Short: "Export metro station reference data to JSON",
		Long: `A CLI tool holding the metro station reference data (schematics and static facts).
Running it without a subcommand writes stationsdata.json in the current directory.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := logger.LevelInfo
			if flagVerbose {
				level = logger.LevelDebug
			}
			logger.SetDefault(logger.New(level, cmd.ErrOrStderr()))
		},
		Args: cobra.NoArgs,
		RunE: runExport,
	}

	cmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")
	addExportFlags(cmd)

	cmd.AddCommand(newExportCmd(), newListCmd(), newShowCmd(), newVerifyCmd(), newAuditCmd())

	return cmd
}

func addExportFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&flagOutput, "output", "o", export.DefaultFileName, "Output file path")
	cmd.Flags().BoolVar(&flagASCII, "ascii", false, "Escape non-ASCII characters as \\uXXXX")
}

func addFormatFlag(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
}

func parseFormat() (OutputFormat, error) {
	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON {
		return "", fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}
	return format, nil
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write schematics and static data to a JSON file",
		Args:  cobra.NoArgs,
		RunE:  runExport,
	}
	addExportFlags(cmd)
	return cmd
}

// runExport writes the combined document and prints the confirmation
func runExport(cmd *cobra.Command, args []string) error {
	started := time.Now()

	catalog, err := station.Load()
	if err != nil {
		return fmt.Errorf("loading station data: %w", err)
	}

	logger.Debug("Loaded station data", logger.Fields{
		"schematics":  catalog.Schematics.Len(),
		"static_data": catalog.StaticData.Len(),
	})

	doc := export.FromCatalog(catalog)
	if err := export.WriteFile(appFs, flagOutput, doc, export.Options{ASCII: flagASCII}); err != nil {
		logger.Error("Export failed", logger.Fields{"path": flagOutput}, err)
		return fmt.Errorf("exporting: %w", err)
	}

	logger.Debug("Export written", logger.Fields{
		"path":     flagOutput,
		"ascii":    flagASCII,
		"duration": time.Since(started).String(),
	})

	fmt.Fprintln(cmd.OutOrStdout(), export.Confirmation(flagOutput))
	return nil
}

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every station with its line and comuna",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseFormat()
			if err != nil {
				return err
			}
			order, err := parseSortOrder(flagSort)
			if err != nil {
				return err
			}
			catalog, err := station.Load()
			if err != nil {
				return fmt.Errorf("loading station data: %w", err)
			}

			views := make([]*StationView, 0, len(catalog.Names()))
			for _, name := range catalog.Names() {
				st, _ := catalog.Station(name)
				views = append(views, NewStationView(st))
			}
			sortViews(views, order)
			return WriteList(cmd.OutOrStdout(), views, format)
		},
	}
	addFormatFlag(cmd)
	cmd.Flags().StringVar(&flagSort, "sort", string(SortDeclared), "Sort order: declared, name or commune")
	return cmd
}

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <station>",
		Short: "Show the reference data of one station",
		Long: `Show the reference data of one station. The name is matched
case- and accent-insensitively; a bare name resolves to its line-suffixed
entry when only one exists (e.g. "Estación Central", "Los Héroes L2").`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseFormat()
			if err != nil {
				return err
			}
			catalog, err := station.Load()
			if err != nil {
				return fmt.Errorf("loading station data: %w", err)
			}

			st, err := catalog.Lookup(strings.Join(args, " "))
			if err != nil {
				return err
			}
			return WriteStation(cmd.OutOrStdout(), NewStationView(st), format)
		},
	}
	addFormatFlag(cmd)
	return cmd
}

func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify [file]",
		Short: "Check an exported file against the embedded station data",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := export.DefaultFileName
			if len(args) == 1 {
				path = args[0]
			}

			catalog, err := station.Load()
			if err != nil {
				return fmt.Errorf("loading station data: %w", err)
			}
			parsed, err := export.ReadFile(appFs, path)
			if err != nil {
				return err
			}

			mismatches := export.Verify(parsed, export.FromCatalog(catalog))
			out := cmd.OutOrStdout()
			for _, m := range mismatches {
				fmt.Fprintln(out, m.String())
			}
			if len(mismatches) > 0 {
				return fmt.Errorf("%w: %d differences in %s", ErrMismatch, len(mismatches), path)
			}

			fmt.Fprintf(out, "%s matches %d schematics and %d static data entries.\n",
				path, catalog.Schematics.Len(), catalog.StaticData.Len())
			return nil
		},
	}
}

func newAuditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "audit",
		Short: "Report irregularities in the station data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := station.Load()
			if err != nil {
				return fmt.Errorf("loading station data: %w", err)
			}

			findings := station.Audit(catalog)
			out := cmd.OutOrStdout()
			if len(findings) == 0 {
				fmt.Fprintln(out, "No findings.")
				return nil
			}
			for _, f := range findings {
				fmt.Fprintln(out, f.String())
			}
			fmt.Fprintf(out, "\nTotal: %d findings\n", len(findings))
			return nil
		},
	}
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
