package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/existflow/droptrack/internal/model"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a new project",
	Long: `Add a new airdrop project to track.

Examples:
  droptrack add "zkSync"
  droptrack add "LayerZero" --code ZRO --link https://layerzero.network
  droptrack add "Scroll" --status reward --task-type bridge,swap`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

var (
	addCode        string
	addLink        string
	addNote        string
	addStatus      string
	addStatusDate  string
	addTaskType    []string
	addConnectType []string
	addRewardType  []string
	addTaskCost    string
	addTaskTime    string
)

func init() {
	addCmd.Flags().StringVarP(&addCode, "code", "c", "", "Token ticker code")
	addCmd.Flags().StringVarP(&addLink, "link", "l", "", "Project link (http or https)")
	addCmd.Flags().StringVarP(&addNote, "note", "n", "", "Free-form note")
	addCmd.Flags().StringVarP(&addStatus, "status", "s", "", "Status (default: potential)")
	addCmd.Flags().StringVar(&addStatusDate, "status-date", "", "Status date label")
	addCmd.Flags().StringSliceVar(&addTaskType, "task-type", nil, "Task type tags")
	addCmd.Flags().StringSliceVar(&addConnectType, "connect-type", nil, "Connect type tags")
	addCmd.Flags().StringSliceVar(&addRewardType, "reward-type", nil, "Reward type tags")
	addCmd.Flags().StringVar(&addTaskCost, "task-cost", "", "Estimated cost")
	addCmd.Flags().StringVar(&addTaskTime, "task-time", "", "Estimated time per task")
}

func runAdd(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	data := model.FormData{
		Name:        strings.Join(args, " "),
		Code:        addCode,
		Link:        addLink,
		Note:        addNote,
		Status:      addStatus,
		StatusDate:  addStatusDate,
		TaskType:    addTaskType,
		ConnectType: addConnectType,
		RewardType:  addRewardType,
		TaskCost:    addTaskCost,
		TaskTime:    addTaskTime,
	}

	projects := app.Tracker.Projects()
	if err := validateProjectForm(data, projects); err != nil {
		return err
	}

	p := model.FormDataToProject(data, 0, projects, time.Now())
	if err := app.Tracker.AddProject(p); err != nil {
		return fmt.Errorf("failed to add project: %w", err)
	}

	fmt.Printf("✓ Added: \"%s\" (#%d, %s)\n", p.Name, p.ID, p.Status)
	return nil
}
