package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var favoriteCmd = &cobra.Command{
	Use:     "favorite [project-id]",
	Aliases: []string{"fav"},
	Short:   "Toggle a project's favorite flag",
	Args:    cobra.ExactArgs(1),
	RunE:    runFavorite,
}

func runFavorite(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	p, err := findProject(app.Tracker, args[0])
	if err != nil {
		return err
	}

	if err := app.Tracker.ToggleFavorite(p.ID); err != nil {
		return err
	}

	if !p.Favorite {
		fmt.Printf("★ Favorited: \"%s\"\n", p.Name)
	} else {
		fmt.Printf("☆ Unfavorited: \"%s\"\n", p.Name)
	}
	return nil
}
