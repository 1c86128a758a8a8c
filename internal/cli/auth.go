package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage authentication",
	Long:  `Manage authentication with the sync server.`,
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Login to the sync server",
	RunE:  runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Logout from the sync server",
	RunE:  runLogout,
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account on the sync server",
	RunE:  runRegister,
}

func init() {
	authCmd.AddCommand(loginCmd)
	authCmd.AddCommand(logoutCmd)
	authCmd.AddCommand(registerCmd)

	loginCmd.Flags().String("email", "", "Login using a one-time sign-in code for this email")
	loginCmd.Flags().String("code", "", "Redeem a sign-in code directly")
}

// reconcileAfterLogin merges local and remote state once a session
// exists, then pushes the merged result so every device converges.
func reconcileAfterLogin(app *App) error {
	remote, err := app.Client.FetchState()
	if err != nil {
		return fmt.Errorf("failed to fetch remote state: %w", err)
	}

	if err := app.Tracker.Reconcile(remote); err != nil {
		return err
	}

	app.Tracker.SetPush(app.Client.PushState)
	payload := app.Tracker.Payload()
	if err := app.Client.PushState(payload); err != nil {
		return fmt.Errorf("failed to push merged state: %w", err)
	}

	fmt.Printf("✓ Synced. Tracking %d projects.\n", len(payload.Projects))
	return nil
}

func runLogin(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	email, _ := cmd.Flags().GetString("email")
	code, _ := cmd.Flags().GetString("code")

	if code != "" {
		fmt.Println("🔄 Redeeming sign-in code...")
		if err := app.Client.RedeemMagicLink(email, code); err != nil {
			return err
		}
		fmt.Println("✅ Logged in successfully!")
		return reconcileAfterLogin(app)
	}

	if email != "" {
		fmt.Printf("🔄 Requesting sign-in code for %s...\n", email)
		if err := app.Client.RequestMagicLink(email); err != nil {
			return err
		}
		fmt.Println("📬 Code requested! Check your email (or server logs in dev).")

		reader := bufio.NewReader(os.Stdin)
		fmt.Print("Enter sign-in code: ")
		inputCode, _ := reader.ReadString('\n')
		inputCode = strings.TrimSpace(inputCode)

		if inputCode == "" {
			fmt.Println("❌ Code required.")
			return nil
		}

		fmt.Println("🔄 Redeeming sign-in code...")
		if err := app.Client.RedeemMagicLink(email, inputCode); err != nil {
			return err
		}
		fmt.Println("✅ Logged in successfully!")
		return reconcileAfterLogin(app)
	}

	// Normal password login
	reader := bufio.NewReader(os.Stdin)

	fmt.Print("Email: ")
	promptEmail, _ := reader.ReadString('\n')
	promptEmail = strings.TrimSpace(promptEmail)

	fmt.Print("Password: ")
	passwordBytes, _ := term.ReadPassword(int(syscall.Stdin))
	password := string(passwordBytes)
	fmt.Println()

	fmt.Println("🔄 Logging in...")
	if err := app.Client.Login(promptEmail, password); err != nil {
		return err
	}

	fmt.Println("✅ Logged in successfully!")
	return reconcileAfterLogin(app)
}

func runLogout(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	if !app.Client.IsLoggedIn() {
		fmt.Println("Not logged in.")
		return nil
	}

	fmt.Println("🔄 Logging out...")
	app.Tracker.SetPush(nil)
	if err := app.Client.Logout(); err != nil {
		return err
	}

	fmt.Println("✅ Logged out successfully.")
	return nil
}

func runRegister(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	reader := bufio.NewReader(os.Stdin)

	fmt.Print("Email: ")
	email, _ := reader.ReadString('\n')
	email = strings.TrimSpace(email)

	fmt.Print("Password: ")
	passwordBytes, _ := term.ReadPassword(int(syscall.Stdin))
	password := string(passwordBytes)
	fmt.Println()

	fmt.Print("Confirm Password: ")
	confirmBytes, _ := term.ReadPassword(int(syscall.Stdin))
	confirm := string(confirmBytes)
	fmt.Println()

	if password != confirm {
		return fmt.Errorf("passwords do not match")
	}

	fmt.Println("🔄 Creating account...")
	if err := app.Client.Register(email, password); err != nil {
		return err
	}

	fmt.Println("✅ Account created and logged in!")
	return reconcileAfterLogin(app)
}
