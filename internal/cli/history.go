package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/andy/countdown/internal/domain"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded countdown events",
	Long: `List the countdown journal, newest first.

Examples:
  countdown history              # last 20 events
  countdown history --limit 0    # everything
  countdown history clear        # delete the journal`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		a, err := requireApp(ctx)
		if err != nil {
			return err
		}
		if !a.Config.History.Enabled {
			fmt.Fprintln(cmd.OutOrStdout(), "History is disabled (history.enabled: false)")
			return nil
		}

		limit, _ := cmd.Flags().GetInt("limit")
		var session *string
		if cmd.Flags().Changed("session") {
			s, _ := cmd.Flags().GetString("session")
			session = &s
		}

		events, err := a.EventRepo.List(ctx, session, limit)
		if err != nil {
			return fmt.Errorf("failed to list events: %w", err)
		}

		if len(events) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No events found")
			return nil
		}

		printEvents(cmd.OutOrStdout(), events)
		return nil
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every recorded event",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		yes, _ := cmd.Flags().GetBool("yes")
		if !yes && !confirmPrompt(cmd.InOrStdin(), "This will delete the whole countdown history. Continue?") {
			fmt.Println("Cancelled.")
			return nil
		}

		a, err := requireApp(ctx)
		if err != nil {
			return err
		}

		n, err := a.EventRepo.DeleteAll(ctx)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d events.\n", n)
		return nil
	},
}

// printEvents renders events as an aligned table
func printEvents(w io.Writer, events []*domain.Event) {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("WHEN"), bold.Sprint("SESSION"), bold.Sprint("EVENT"), bold.Sprint("REMAINING"), bold.Sprint("SET TO"))
	for _, e := range events {
		setTo := ""
		if e.Packed != nil {
			setTo = domain.FormatWithUnitLabels(domain.PadPackedTo6Digits(*e.Packed))
		}
		tbl.AddRow(
			e.OccurredAt.Local().Format("2006-01-02 15:04:05"),
			e.ShortSession(),
			string(e.Kind),
			domain.FormatSeconds(e.RemainingSeconds, false),
			setTo,
		)
	}
	fmt.Fprintln(w, tbl)
}

func confirmPrompt(in io.Reader, message string) bool {
	fmt.Printf("%s [y/N] ", message)
	reader := bufio.NewReader(in)
	input, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of events (0 for all)")
	historyCmd.Flags().String("session", "", "only show one session id")
	historyClearCmd.Flags().BoolP("yes", "y", false, "skip the confirmation prompt")

	historyCmd.AddCommand(historyClearCmd)
}
