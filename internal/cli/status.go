package cli

import (
	"fmt"
	"time"

	"github.com/existflow/droptrack/internal/model"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status [project-id] [status]",
	Short: "Change a project's status",
	Long: `Set the status of a project. Built-in statuses are potential, reward,
and confirmed; custom statuses added with
'droptrack options add status <value> <label>' work too.

Examples:
  droptrack status 3 confirmed
  droptrack status 3 reward --date "until Mar 15"`,
	Args: cobra.ExactArgs(2),
	RunE: runStatus,
}

var statusDate string

func init() {
	statusCmd.Flags().StringVar(&statusDate, "date", "", "Status date label")
}

func runStatus(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	p, err := findProject(app.Tracker, args[0])
	if err != nil {
		return err
	}

	p.Status = args[1]
	if cmd.Flags().Changed("date") {
		p.StatusDate = statusDate
	}
	p.LastEdited = time.Now().UnixMilli()

	if err := app.Tracker.UpdateProject(p); err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}

	label := model.ResolveLabel(model.FieldStatus, p.Status, app.Tracker.Payload().CustomOptions)
	fmt.Printf("✓ \"%s\" is now %s\n", p.Name, label)
	return nil
}
