package cli

import (
	"fmt"
	"time"

	"github.com/andy/countdown/internal/config"
	"github.com/andy/countdown/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or create the configuration file",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to encode config: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "# %s\n%s", resolvedConfigPath(), data)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the configuration file interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		result := newConfigFormResult(cfg)
		if err := newConfigForm(result).Run(); err != nil {
			return fmt.Errorf("config form: %w", err)
		}
		if err := result.apply(cfg); err != nil {
			return err
		}

		path := resolvedConfigPath()
		if err := cfg.Save(path); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Saved %s\n", path)
		return nil
	},
}

// configFormResult holds the string form of the editable settings
type configFormResult struct {
	Default      string
	TickInterval string
	StopAtZero   bool
	Autostart    bool
	History      bool
	Encrypted    bool
	LogLevel     string
}

func newConfigFormResult(cfg *config.Config) *configFormResult {
	return &configFormResult{
		Default:      string(domain.PadPackedTo6Digits(cfg.Timer.Default)),
		TickInterval: cfg.Timer.TickInterval.String(),
		StopAtZero:   cfg.Timer.StopAtZero,
		Autostart:    cfg.Timer.Autostart,
		History:      cfg.History.Enabled,
		Encrypted:    cfg.Database.Encrypted,
		LogLevel:     cfg.Log.Level,
	}
}

// apply validates the form values and copies them into cfg
func (r *configFormResult) apply(cfg *config.Config) error {
	packed, err := domain.ParsePacked(r.Default)
	if err != nil {
		return err
	}
	tick, err := time.ParseDuration(r.TickInterval)
	if err != nil {
		return fmt.Errorf("invalid tick interval: %w", err)
	}

	cfg.Timer.Default = packed
	cfg.Timer.TickInterval = tick
	cfg.Timer.StopAtZero = r.StopAtZero
	cfg.Timer.Autostart = r.Autostart
	cfg.History.Enabled = r.History
	cfg.Database.Encrypted = r.Encrypted
	cfg.Log.Level = r.LogLevel
	return cfg.Validate()
}

func newConfigForm(result *configFormResult) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Default duration").
				Description("HHMMSS digits, e.g. 000500 for five minutes").
				CharLimit(domain.EditWidth).
				Value(&result.Default).
				Validate(func(s string) error {
					_, err := domain.ParsePacked(s)
					return err
				}),

			huh.NewInput().
				Title("Tick interval").
				Value(&result.TickInterval).
				Validate(func(s string) error {
					d, err := time.ParseDuration(s)
					if err != nil {
						return err
					}
					if d <= 0 {
						return fmt.Errorf("must be positive")
					}
					return nil
				}),

			huh.NewConfirm().
				Title("Stop at zero?").
				Description("Otherwise the countdown keeps going into negative time").
				Value(&result.StopAtZero),

			huh.NewConfirm().
				Title("Start on launch?").
				Description("Begin counting down as soon as the TUI opens").
				Value(&result.Autostart),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Record history?").
				Value(&result.History),

			huh.NewConfirm().
				Title("Encrypt history?").
				Description("Uses a password kept in the system keyring").
				Value(&result.Encrypted),

			huh.NewSelect[string]().
				Title("Log level").
				Options(huh.NewOptions("debug", "info", "warn", "error")...).
				Value(&result.LogLevel),
		),
	)
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}
