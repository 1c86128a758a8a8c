package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/existflow/droptrack/internal/model"
	"github.com/existflow/droptrack/internal/view"
)

var showCmd = &cobra.Command{
	Use:     "show [project-id]",
	Aliases: []string{"info"},
	Short:   "Show full details for a project",
	Args:    cobra.ExactArgs(1),
	RunE:    runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	p, err := findProject(app.Tracker, args[0])
	if err != nil {
		return err
	}
	options := app.Tracker.Payload().CustomOptions

	fav := ""
	if p.Favorite {
		fav = " ★"
	}
	fmt.Printf("#%d %s%s\n", p.ID, p.Name, fav)
	if p.Code != "" {
		fmt.Printf("  Code:    %s\n", p.Code)
	}

	status := model.ResolveLabel(model.FieldStatus, p.Status, options)
	if p.StatusDate != "" {
		status += " (" + p.StatusDate + ")"
	}
	fmt.Printf("  Status:  %s\n", status)

	if p.Link != "" {
		fmt.Printf("  Link:    %s\n", p.Link)
	}
	sideLinks := model.RenderableSideLinks(p.SideLinks, func(key string) string {
		return model.ResolveLabel(model.FieldSideLinkType, key, options)
	})
	for _, l := range sideLinks {
		fmt.Printf("  %-8s %s\n", l.Label+":", l.Href)
	}

	printTags := func(label, field string, tags []string) {
		if len(tags) == 0 {
			return
		}
		labels := make([]string, 0, len(tags))
		for _, t := range tags {
			labels = append(labels, model.ResolveLabel(field, t, options))
		}
		fmt.Printf("  %-8s %s\n", label+":", strings.Join(labels, ", "))
	}
	printTags("Tasks", model.FieldTaskType, p.TaskType)
	printTags("Connect", model.FieldConnectType, p.ConnectType)
	printTags("Reward", model.FieldRewardType, p.RewardType)

	fmt.Printf("  Cost:    %.4g   Time: %.4g\n", p.TaskCost, p.TaskTime)
	if p.Note != "" {
		fmt.Printf("  Note:    %s\n", p.Note)
	}
	fmt.Printf("  Edited:  %s\n", view.FormatRelativeTime(p.LastEdited, time.Now()))
	return nil
}
