package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync projects with server",
	Long: `Sync your projects across devices.

Commands:
  droptrack sync              # Merge with remote and push
  droptrack sync status       # Show sync status`,
	RunE: runSync,
}

var syncStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show sync status",
	RunE:  runSyncStatus,
}

var syncConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Configure sync settings",
	RunE:  runSyncConfig,
}

func init() {
	syncCmd.AddCommand(syncStatusCmd)
	syncCmd.AddCommand(syncConfigCmd)

	syncCmd.Flags().Bool("pull", false, "Force sync from remote (replaces local)")
	syncCmd.Flags().Bool("push", false, "Force sync from local (replaces remote)")

	syncConfigCmd.Flags().String("server", "", "Set server URL")
}

func runSync(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	if !app.Client.IsLoggedIn() {
		return fmt.Errorf("not logged in, run 'droptrack auth login' first")
	}

	pull, _ := cmd.Flags().GetBool("pull")
	push, _ := cmd.Flags().GetBool("push")
	if pull && push {
		return fmt.Errorf("cannot use both --pull and --push")
	}

	switch {
	case pull:
		fmt.Println("⚠️  Forcing sync from remote (replacing local data)...")
		remote, err := app.Client.FetchState()
		if err != nil {
			return fmt.Errorf("sync failed: %w", err)
		}
		if remote == nil {
			return fmt.Errorf("server has no state to pull")
		}
		// Bypass the strictly-newer check: the user asked for the
		// remote copy regardless of timestamps.
		remote.LastUpdatedAt = time.Now().UnixMilli()
		app.Tracker.ApplyRemote(*remote)

	case push:
		fmt.Println("⚠️  Forcing sync from local (replacing remote data)...")
		if err := app.Client.PushState(app.Tracker.Payload()); err != nil {
			return fmt.Errorf("sync failed: %w", err)
		}

	default:
		fmt.Println("🔄 Synchronizing...")
		remote, err := app.Client.FetchState()
		if err != nil {
			return fmt.Errorf("sync failed: %w", err)
		}
		if err := app.Tracker.Reconcile(remote); err != nil {
			return fmt.Errorf("sync failed: %w", err)
		}
		if err := app.Client.PushState(app.Tracker.Payload()); err != nil {
			return fmt.Errorf("sync failed: %w", err)
		}
	}

	fmt.Printf("✓ Sync complete! Tracking %d projects.\n", len(app.Tracker.Projects()))
	return nil
}

func runSyncStatus(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	serverURL, email, lastSync := app.Client.GetStatus()

	fmt.Printf("Server:    %s\n", serverURL)
	if app.Client.IsLoggedIn() {
		fmt.Printf("Account:   %s\n", email)
		if lastSync > 0 {
			fmt.Printf("Last Sync: %s\n", time.UnixMilli(lastSync).Format("2006-01-02 15:04:05"))
		}
		fmt.Println("Status:    ✓ Logged in")
	} else {
		fmt.Println("Status:    Not logged in")
	}

	return nil
}

func runSyncConfig(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	server, _ := cmd.Flags().GetString("server")
	if server != "" {
		if err := app.Client.SetServer(server); err != nil {
			return err
		}
		fmt.Printf("✓ Server set to: %s\n", server)
	} else {
		url, _, _ := app.Client.GetStatus()
		fmt.Printf("Server: %s\n", url)
	}

	return nil
}
