package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete [project-id]",
	Aliases: []string{"rm"},
	Short:   "Delete a project",
	Long: `Delete a project by its ID.

Examples:
  droptrack delete 3
  droptrack rm 3`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func runDelete(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	p, err := findProject(app.Tracker, args[0])
	if err != nil {
		return err
	}

	if app.Config.ConfirmDelete {
		fmt.Printf("About to delete: \"%s\" (#%d)\n", p.Name, p.ID)
		fmt.Print("Are you sure? [y/N]: ")
		var confirm string
		fmt.Scanln(&confirm)
		if confirm != "y" && confirm != "Y" {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	if err := app.Tracker.DeleteProject(p.ID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	fmt.Printf("🗑️  Deleted: \"%s\"\n", p.Name)
	return nil
}
