package cli

import (
	"fmt"
	"time"

	"github.com/existflow/droptrack/internal/model"
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit [project-id]",
	Short: "Edit a project",
	Long: `Edit fields of an existing project. Only the flags you pass change;
everything else keeps its current value.

Examples:
  droptrack edit 3 --name "zkSync Era"
  droptrack edit 3 --status confirmed --status-date "Q2 2026"
  droptrack edit 3 --task-type bridge,swap --note "weekly tx"`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

var (
	editName        string
	editCode        string
	editLink        string
	editNote        string
	editStatus      string
	editStatusDate  string
	editTaskType    []string
	editConnectType []string
	editRewardType  []string
	editTaskCost    string
	editTaskTime    string
)

func init() {
	editCmd.Flags().StringVar(&editName, "name", "", "Project name")
	editCmd.Flags().StringVarP(&editCode, "code", "c", "", "Token ticker code")
	editCmd.Flags().StringVarP(&editLink, "link", "l", "", "Project link (http or https)")
	editCmd.Flags().StringVarP(&editNote, "note", "n", "", "Free-form note")
	editCmd.Flags().StringVarP(&editStatus, "status", "s", "", "Status")
	editCmd.Flags().StringVar(&editStatusDate, "status-date", "", "Status date label")
	editCmd.Flags().StringSliceVar(&editTaskType, "task-type", nil, "Task type tags")
	editCmd.Flags().StringSliceVar(&editConnectType, "connect-type", nil, "Connect type tags")
	editCmd.Flags().StringSliceVar(&editRewardType, "reward-type", nil, "Reward type tags")
	editCmd.Flags().StringVar(&editTaskCost, "task-cost", "", "Estimated cost")
	editCmd.Flags().StringVar(&editTaskTime, "task-time", "", "Estimated time per task")
}

func runEdit(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	existing, err := findProject(app.Tracker, args[0])
	if err != nil {
		return err
	}

	data := model.ProjectToFormData(existing)
	if cmd.Flags().Changed("name") {
		data.Name = editName
	}
	if cmd.Flags().Changed("code") {
		data.Code = editCode
	}
	if cmd.Flags().Changed("link") {
		data.Link = editLink
	}
	if cmd.Flags().Changed("note") {
		data.Note = editNote
	}
	if cmd.Flags().Changed("status") {
		data.Status = editStatus
	}
	if cmd.Flags().Changed("status-date") {
		data.StatusDate = editStatusDate
	}
	if cmd.Flags().Changed("task-type") {
		data.TaskType = editTaskType
	}
	if cmd.Flags().Changed("connect-type") {
		data.ConnectType = editConnectType
	}
	if cmd.Flags().Changed("reward-type") {
		data.RewardType = editRewardType
	}
	if cmd.Flags().Changed("task-cost") {
		data.TaskCost = editTaskCost
	}
	if cmd.Flags().Changed("task-time") {
		data.TaskTime = editTaskTime
	}

	projects := app.Tracker.Projects()
	if err := validateProjectForm(data, projects); err != nil {
		return err
	}

	p := model.FormDataToProject(data, existing.ID, projects, time.Now())
	if err := app.Tracker.UpdateProject(p); err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}

	fmt.Printf("✓ Updated: \"%s\" (#%d)\n", p.Name, p.ID)
	return nil
}
