package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/andy/countdown/internal/service"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run [HHMMSS]",
	Short: "Run a countdown in the terminal without the TUI",
	Long: `Run a countdown and print the remaining time every tick.

The optional argument is typed into the edit buffer exactly like the TUI,
so "500" is five minutes and "13000" is one hour thirty minutes. Only the
last six digits are kept. Without an argument the configured default is used.

The run ends at zero unless --overtime is set. Ctrl-C stops it early.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		a, err := requireApp(ctx)
		if err != nil {
			return err
		}
		svc := a.CountdownService

		if len(args) == 1 {
			if err := loadDigits(ctx, svc, args[0]); err != nil {
				return err
			}
		}

		overtime, _ := cmd.Flags().GetBool("overtime")

		svc.Start(ctx)
		ticker := time.NewTicker(svc.TickInterval())
		defer ticker.Stop()

		return runCountdown(ctx, svc, cmd.OutOrStdout(), ticker.C, overtime)
	},
}

// loadDigits types raw into the edit buffer and commits it
func loadDigits(ctx context.Context, svc service.CountdownService, raw string) error {
	svc.BeginEdit(ctx)
	if err := svc.SetDigits(ctx, raw); err != nil {
		svc.Reset(ctx)
		return fmt.Errorf("invalid duration: %w", err)
	}
	svc.CommitEdit(ctx)
	return nil
}

// runCountdown ticks svc on every value from ticks and prints the display
// until the countdown ends, the clock stops, or ctx is cancelled
func runCountdown(ctx context.Context, svc service.CountdownService, w io.Writer, ticks <-chan time.Time, overtime bool) error {
	running := color.New(color.FgGreen, color.Bold)
	overdue := color.New(color.FgRed, color.Bold)
	done := color.New(color.FgYellow)

	show := func() {
		d := svc.Display()
		c := running
		if d.Overdue() {
			c = overdue
		}
		c.Fprintf(w, "\r%-12s", d.Text())
	}

	show()
	if svc.Display().Remaining <= 0 && !overtime {
		svc.Stop(ctx)
		done.Fprintln(w, "\ntime is up\a")
		return nil
	}
	for {
		select {
		case <-ctx.Done():
			svc.Stop(context.Background())
			done.Fprintf(w, "\nstopped with %s left\n", svc.Display().Text())
			return nil

		case <-ticks:
			svc.Tick(ctx)
			show()

			d := svc.Display()
			if d.Remaining <= 0 && !overtime {
				svc.Stop(ctx)
				done.Fprintln(w, "\ntime is up\a")
				return nil
			}
			if !svc.Armed() {
				done.Fprintln(w)
				return nil
			}
		}
	}
}

func init() {
	runCmd.Flags().Bool("overtime", false, "keep counting into negative time after zero")
}
