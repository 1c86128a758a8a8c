package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import projects from a JSON file",
	Long: `Import projects from an exported file or a bare project array.
Imported records merge with existing ones; for a project present on both
sides the most recently edited copy wins.

Examples:
  droptrack import backup.json`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export projects to a JSON file",
	Long: `Export every project and custom option to a JSON file. Without a
file argument the JSON is written to stdout.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func runImport(cmd *cobra.Command, args []string) error {
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	count, err := app.Tracker.Import(raw)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	fmt.Printf("✓ Imported. Tracking %d projects.\n", count)
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	data, err := app.Tracker.Export()
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	if len(args) == 0 {
		fmt.Println(string(data))
		return nil
	}

	if err := os.WriteFile(args[0], data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	fmt.Printf("✓ Exported %d projects to %s\n", len(app.Tracker.Projects()), args[0])
	return nil
}
