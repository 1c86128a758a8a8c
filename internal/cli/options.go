package cli

import (
	"fmt"
	"strings"

	"github.com/existflow/droptrack/internal/model"
	"github.com/spf13/cobra"
)

var optionsCmd = &cobra.Command{
	Use:     "options",
	Aliases: []string{"opt"},
	Short:   "Manage custom dropdown options",
	Long: `Manage the custom options backing the tag and status dropdowns.

Fields: taskType, connectType, status, rewardType, sideLinkType

Examples:
  droptrack options list taskType
  droptrack options add taskType galxe "Galxe Quests"
  droptrack options edit taskType galxe "Galxe"
  droptrack options remove taskType galxe`,
}

var optionsListCmd = &cobra.Command{
	Use:     "list [field]",
	Aliases: []string{"ls"},
	Short:   "List options for a field",
	Args:    cobra.ExactArgs(1),
	RunE:    runOptionsList,
}

var optionsAddCmd = &cobra.Command{
	Use:   "add [field] [value] [label]",
	Short: "Add an option",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runOptionsAdd,
}

var optionsEditCmd = &cobra.Command{
	Use:   "edit [field] [value] [new-label]",
	Short: "Rename an option's label",
	Args:  cobra.ExactArgs(3),
	RunE:  runOptionsEdit,
}

var optionsRemoveCmd = &cobra.Command{
	Use:     "remove [field] [value]",
	Aliases: []string{"rm"},
	Short:   "Remove an option",
	Args:    cobra.ExactArgs(2),
	RunE:    runOptionsRemove,
}

func init() {
	optionsCmd.AddCommand(optionsListCmd)
	optionsCmd.AddCommand(optionsAddCmd)
	optionsCmd.AddCommand(optionsEditCmd)
	optionsCmd.AddCommand(optionsRemoveCmd)
}

func checkOptionField(field string) error {
	if !model.IsOptionField(field) {
		return fmt.Errorf("unknown field %q (expected one of: %s)",
			field, strings.Join(model.OptionFields, ", "))
	}
	return nil
}

func runOptionsList(cmd *cobra.Command, args []string) error {
	field := args[0]
	if err := checkOptionField(field); err != nil {
		return err
	}

	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	opts := model.SortOptions(app.Tracker.Options(field))
	if len(opts) == 0 {
		fmt.Printf("No custom options for %s.\n", field)
		return nil
	}

	fmt.Printf("\n%s options:\n", field)
	for _, o := range opts {
		fmt.Printf("  %-24s %s\n", o.Value, o.Text)
	}
	fmt.Println()
	return nil
}

func runOptionsAdd(cmd *cobra.Command, args []string) error {
	field := args[0]
	if err := checkOptionField(field); err != nil {
		return err
	}

	value := args[1]
	label := value
	if len(args) > 2 {
		label = strings.Join(args[2:], " ")
	}

	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	opt := model.CustomOption{Value: value, Text: label}
	if err := app.Tracker.AddOption(field, opt); err != nil {
		return err
	}

	fmt.Printf("✓ Added %s option: %s (%s)\n", field, label, value)
	return nil
}

func runOptionsEdit(cmd *cobra.Command, args []string) error {
	field := args[0]
	if err := checkOptionField(field); err != nil {
		return err
	}

	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.Tracker.EditOption(field, args[1], args[2]); err != nil {
		return err
	}

	fmt.Printf("✓ Renamed %s option %s to %q\n", field, args[1], args[2])
	return nil
}

func runOptionsRemove(cmd *cobra.Command, args []string) error {
	field := args[0]
	if err := checkOptionField(field); err != nil {
		return err
	}

	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.Tracker.RemoveOption(field, args[1]); err != nil {
		return err
	}

	fmt.Printf("✓ Removed %s option: %s\n", field, args[1])
	return nil
}
