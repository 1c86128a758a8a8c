package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all projects",
	Long: `Delete every tracked project. With no flags only local data is
cleared; a bare --remote clears only the sync server copy; --all (or
--remote together with an explicit --local) clears both.
Custom options are kept either way.`,
	RunE: runClear,
}

func init() {
	clearCmd.Flags().Bool("local", true, "Clear local data (default)")
	clearCmd.Flags().Bool("remote", false, "Clear remote data on the sync server")
	clearCmd.Flags().Bool("all", false, "Clear both local and remote data")
	clearCmd.Flags().Bool("force", false, "Do not ask for confirmation")
}

// clearScope resolves the flag combination into what gets cleared.
// --local defaults to true, but a bare --remote means remote only;
// clearing local too requires passing --local explicitly (or --all).
func clearScope(local, remote, all, localSet bool) (bool, bool) {
	if all {
		return true, true
	}
	if remote && !localSet {
		return false, true
	}
	return local, remote
}

func runClear(cmd *cobra.Command, args []string) error {
	localFlag, _ := cmd.Flags().GetBool("local")
	remoteFlag, _ := cmd.Flags().GetBool("remote")
	all, _ := cmd.Flags().GetBool("all")
	force, _ := cmd.Flags().GetBool("force")

	local, remote := clearScope(localFlag, remoteFlag, all, cmd.Flags().Changed("local"))

	if !force {
		fmt.Printf("Are you sure you want to clear all projects? (y/N): ")
		var response string
		_, _ = fmt.Scanln(&response)
		if strings.ToLower(response) != "y" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	if local {
		fmt.Println("🧹 Clearing local projects...")
		if err := app.Tracker.DeleteAll(); err != nil {
			return fmt.Errorf("failed to clear local projects: %w", err)
		}
		fmt.Println("Local projects cleared.")
	}

	if remote && !local {
		if !app.Client.IsLoggedIn() {
			fmt.Println("Skipping remote clear: not logged in.")
		} else {
			// Clearing local already pushes the empty payload; only an
			// explicit remote-only clear needs a direct push.
			fmt.Println("🌐 Clearing remote projects...")
			payload := app.Tracker.Payload()
			payload.Projects = nil
			payload.LastUpdatedAt = time.Now().UnixMilli()
			if err := app.Client.PushState(payload); err != nil {
				return fmt.Errorf("failed to clear remote projects: %w", err)
			}
			fmt.Println("Remote projects cleared.")
		}
	}

	return nil
}
