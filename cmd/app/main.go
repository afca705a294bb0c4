package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"BrentDash/internal/di"
	"BrentDash/internal/domain/models"
	"BrentDash/pkg/config"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "brentdash",
	Short:         "Brent oil price analysis dashboard",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadWithEnv(configPath)
		if err != nil {
			return fmt.Errorf("config load failed: %w", err)
		}

		app, cleanup, err := di.InitializeApp(cfg)
		if err != nil {
			return fmt.Errorf("app initialization failed: %w", err)
		}
		defer cleanup()

		// blocks until SIGINT/SIGTERM
		return app.Run()
	},
}

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Inspect or change the persisted dashboard theme",
}

var themeGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the persisted theme",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withThemes(cmd.Context(), func(ctx context.Context, cfg *config.Config, themes themeService) error {
			theme, ok := themes.Resolved()
			if !ok {
				fmt.Fprintf(cmd.OutOrStdout(), "unset (default: %s)\n", cfg.Theme.Default)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), theme)
			return nil
		})
	},
}

var themeSetCmd = &cobra.Command{
	Use:       "set light|dark",
	Short:     "Persist a theme",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(models.ThemeLight), string(models.ThemeDark)},
	RunE: func(cmd *cobra.Command, args []string) error {
		theme, err := models.ParseTheme(args[0])
		if err != nil {
			return err
		}
		return withThemes(cmd.Context(), func(ctx context.Context, _ *config.Config, themes themeService) error {
			if err := themes.Set(ctx, theme); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "theme set to %s\n", theme)
			return nil
		})
	},
}

type themeService interface {
	Load(ctx context.Context) error
	Resolved() (models.Theme, bool)
	Set(ctx context.Context, theme models.Theme) error
}

func withThemes(ctx context.Context, fn func(context.Context, *config.Config, themeService) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.LoadWithEnv(configPath)
	if err != nil {
		return fmt.Errorf("config load failed: %w", err)
	}
	themes, cleanup, err := di.InitializeThemeService(cfg)
	if err != nil {
		return fmt.Errorf("theme store: %w", err)
	}
	defer cleanup()

	if err := themes.Load(ctx); err != nil {
		return err
	}
	return fn(ctx, cfg, themes)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config/config.yaml", "config file path")
	themeCmd.AddCommand(themeGetCmd, themeSetCmd)
	rootCmd.AddCommand(serveCmd, themeCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Printf("brentdash: %v", err)
		os.Exit(1)
	}
}
