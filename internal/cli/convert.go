package cli

import (
	"fmt"
	"strconv"

	"github.com/andy/countdown/internal/domain"
	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert between HHMMSS digits and seconds",
	Long: `Convert between packed HHMMSS digits, seconds and the padded edit buffer.

Minute and second groups are not range-checked: 90 converts to 90 seconds.`,
}

var convertToSecondsCmd = &cobra.Command{
	Use:   "to-seconds <HHMMSS>",
	Short: "Convert packed HHMMSS digits to seconds",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		packed, err := domain.ParsePacked(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), domain.PackedToSeconds(packed))
		return nil
	},
}

var convertFromSecondsCmd = &cobra.Command{
	Use:   "from-seconds <seconds>",
	Short: "Convert seconds to packed HHMMSS digits",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		total, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid seconds %q: %w", args[0], err)
		}

		formatted, _ := cmd.Flags().GetBool("formatted")
		padded, _ := cmd.Flags().GetBool("padded")

		out := cmd.OutOrStdout()
		if formatted {
			fmt.Fprintln(out, domain.FormatSeconds(total, padded))
			return nil
		}
		fmt.Fprintln(out, domain.SecondsToPacked(total, padded))
		return nil
	},
}

var convertPadCmd = &cobra.Command{
	Use:   "pad <digits>",
	Short: "Show digits as the 6 digit edit buffer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !domain.IsDigits(args[0]) {
			return fmt.Errorf("invalid digits %q: %w", args[0], domain.ErrInvalidDigits)
		}

		buf := domain.PadTo6Digits(args[0])
		labels, _ := cmd.Flags().GetBool("labels")
		if labels {
			fmt.Fprintln(cmd.OutOrStdout(), domain.FormatWithUnitLabels(buf))
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), buf)
		return nil
	},
}

func init() {
	convertFromSecondsCmd.Flags().Bool("formatted", false, "print with h/m/s suffixes")
	convertFromSecondsCmd.Flags().Bool("padded", true, "pad each field to two digits")
	convertPadCmd.Flags().Bool("labels", false, "print as HHhMMmSSs")

	convertCmd.AddCommand(convertToSecondsCmd)
	convertCmd.AddCommand(convertFromSecondsCmd)
	convertCmd.AddCommand(convertPadCmd)
}
