package cli

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/existflow/droptrack/internal/model"
	"github.com/existflow/droptrack/internal/view"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List projects",
	Long: `List tracked projects, optionally filtered and sorted.

Examples:
  droptrack list
  droptrack list --search zk --status confirmed
  droptrack list --task-type bridge --sort code --desc
  droptrack list --recent
  droptrack list --counts`,
	RunE: runList,
}

var (
	listSearch      string
	listStatus      string
	listTaskType    string
	listConnectType string
	listSortKey     string
	listDesc        bool
	listRecent      bool
	listCounts      bool
	listFavorites   bool
)

func init() {
	listCmd.Flags().StringVarP(&listSearch, "search", "q", "", "Substring match over name, code, and note")
	listCmd.Flags().StringVarP(&listStatus, "status", "s", "", "Filter by status")
	listCmd.Flags().StringVar(&listTaskType, "task-type", "", "Filter by task type tag")
	listCmd.Flags().StringVar(&listConnectType, "connect-type", "", "Filter by connect type tag")
	listCmd.Flags().StringVar(&listSortKey, "sort", "", "Sort column (name, code, status, taskType, connectType, rewardType)")
	listCmd.Flags().BoolVar(&listDesc, "desc", false, "Sort descending")
	listCmd.Flags().BoolVarP(&listRecent, "recent", "r", false, "Order by most recently edited")
	listCmd.Flags().BoolVar(&listCounts, "counts", false, "Show tag usage counts instead of the project list")
	listCmd.Flags().BoolVarP(&listFavorites, "favorites", "f", false, "Only show favorites")
}

func runList(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	projects := app.Tracker.Projects()

	if listCounts {
		printCounts(app, projects)
		return nil
	}

	filter := view.FilterState{
		Search:      listSearch,
		TaskType:    listTaskType,
		ConnectType: listConnectType,
		Status:      listStatus,
	}

	sortState := view.DefaultSort
	if app.Config.DefaultSortKey != "" {
		sortState = view.SortState{Key: app.Config.DefaultSortKey, Dir: view.Asc}
		if app.Config.DefaultSortDir == "desc" {
			sortState.Dir = view.Desc
		}
	}
	if listSortKey != "" {
		sortState = view.SortState{Key: listSortKey, Dir: view.Asc}
		if listDesc {
			sortState.Dir = view.Desc
		}
	}

	mode := view.ModeAll
	if listRecent {
		mode = view.ModeRecent
	}

	shown := view.Apply(projects, filter, sortState, mode)
	if listFavorites {
		favs := shown[:0]
		for _, p := range shown {
			if p.Favorite {
				favs = append(favs, p)
			}
		}
		shown = favs
	}

	if len(shown) == 0 {
		fmt.Println("No projects found. Add one with: droptrack add \"Project name\"")
		return nil
	}

	printProjects(app, shown)
	return nil
}

func printProjects(app *App, projects []model.Project) {
	now := time.Now()
	options := app.Tracker.Payload().CustomOptions

	fmt.Printf("\n📁 Projects (%d)\n", len(projects))
	fmt.Println(strings.Repeat("─", 78))

	for _, p := range projects {
		fav := " "
		if p.Favorite {
			fav = "★"
		}

		name := p.Name
		if p.Code != "" {
			name = fmt.Sprintf("%s (%s)", p.Name, p.Code)
		}
		if len(name) > 32 {
			name = name[:29] + "..."
		}

		status := model.ResolveLabel(model.FieldStatus, p.Status, options)
		tags := strings.Join(p.TaskType, ",")
		if len(tags) > 20 {
			tags = tags[:17] + "..."
		}

		fmt.Printf("  %s #%-5d %-32s %-12s %-20s %s\n",
			fav, p.ID, name, status, tags,
			view.FormatRelativeTime(p.LastEdited, now))
	}
	fmt.Println()
}

func printCounts(app *App, projects []model.Project) {
	counts := model.CountByField(projects)
	options := app.Tracker.Payload().CustomOptions

	fmt.Printf("\n%d projects\n", counts.Total)

	printCountGroup := func(title, field string, m map[string]int) {
		if len(m) == 0 {
			return
		}
		fmt.Printf("\n%s:\n", title)
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Printf("  %-24s %d\n", model.ResolveLabel(field, k, options), m[k])
		}
	}

	printCountGroup("By task type", model.FieldTaskType, counts.Task)
	printCountGroup("By connect type", model.FieldConnectType, counts.Connect)
	printCountGroup("By status", model.FieldStatus, counts.Status)
	fmt.Println()
}
