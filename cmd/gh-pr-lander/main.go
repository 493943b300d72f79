// gh-pr-lander is a terminal UI for reviewing, annotating, and landing
// GitHub pull requests across tracked repositories.
package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/sassman/gh-pr-lander/pkg/app"
	"github.com/sassman/gh-pr-lander/pkg/config"
	"github.com/sassman/gh-pr-lander/pkg/ghclient"
	"github.com/sassman/gh-pr-lander/pkg/logger"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:           "gh-pr-lander",
		Short:         "Review, annotate, and land GitHub pull requests from the terminal",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run()
		},
	}
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	// Tokens may live in a local .env; absence is fine.
	_ = godotenv.Load()

	logPath := logger.Init()
	mainLog := logger.New("main")
	mainLog.Printf("Starting gh-pr-lander %s", version)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rest, err := ghclient.NewRESTClient("")
	if err != nil {
		return fmt.Errorf("github client: %w", err)
	}
	cachePath, err := config.APICachePath()
	if err != nil {
		cachePath = ""
	}
	cache := ghclient.NewAPICache(cachePath)
	client := ghclient.NewCachedClient(rest, cache, ghclient.CacheReadWrite)
	refresh := client.WithMode(ghclient.CacheWriteOnly)

	initial := app.NewAppState()
	initial.Keymap = initial.Keymap.ApplyOverride(config.LoadKeymapOverride())

	model := app.NewModel(app.Options{
		Ctx:     ctx,
		Client:  client,
		Refresh: refresh,
		Raw:     rest,
		LogPath: logPath,
		Initial: initial,
	})

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("terminal program: %w", err)
	}
	mainLog.Printf("Clean shutdown")
	return nil
}
