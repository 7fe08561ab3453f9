package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/andy/countdown/internal/app"
	"github.com/andy/countdown/internal/config"
	"github.com/spf13/cobra"
)

// Version is set at build time
var Version = "dev"

var (
	appInstance *app.App
	configPath  string
)

var rootCmd = &cobra.Command{
	Use:   "countdown",
	Short: "A terminal countdown timer",
	Long: `Countdown runs a timer you can type into as HHMMSS digits.

By default, running countdown without arguments launches the interactive TUI.
Use subcommands for headless runs, conversions and history.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return launchTUI(cmd, args)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("countdown version %s\n", Version)
	},
}

// Execute runs the root command. Interrupts cancel the command context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

// Close releases the app if a command initialized it
func Close() error {
	if appInstance == nil {
		return nil
	}
	return appInstance.Close()
}

// SetApp sets the app instance for commands to use
func SetApp(a *app.App) {
	appInstance = a
}

// requireApp initializes the app on first use so commands that do not
// touch the journal never prompt for a password
func requireApp(ctx context.Context) (*app.App, error) {
	if appInstance != nil {
		return appInstance, nil
	}
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	a, err := app.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize app: %w", err)
	}
	appInstance = a
	return a, nil
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(resolvedConfigPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func resolvedConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return config.DefaultConfigPath()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/countdown/config.yaml)")

	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
