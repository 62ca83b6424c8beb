package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/karim3554/akram-library/internal/librarian"
	"github.com/karim3554/akram-library/internal/openlibrary"
	"github.com/karim3554/akram-library/internal/tui"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		baseURL     string
		model       string
		noAltScreen bool
		debug       bool
	)
	cmd := &cobra.Command{
		Use:   "akram",
		Short: "Browse the Open Library catalogue with an AI librarian",
		Long: `akram is a terminal reading room for the Open Library catalogue.

Search millions of records, open work and author overlays, and ask Akram,
the Gemini-backed librarian, for summaries, recommendations, and nearby
libraries.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if debug {
				logFile, err := tea.LogToFile("akram-debug.log", "akram")
				if err != nil {
					return fmt.Errorf("open debug log: %w", err)
				}
				defer logFile.Close()
			} else {
				log.SetOutput(io.Discard)
			}

			var assistant librarian.Client
			if client, err := librarian.NewFromEnv(context.Background(), librarian.Config{Model: model}); err != nil {
				fmt.Fprintln(os.Stderr, "AI librarian disabled:", err)
			} else {
				assistant = client
				defer client.Close()
			}

			opts := []tea.ProgramOption{}
			if !noAltScreen {
				opts = append(opts, tea.WithAltScreen())
			}
			program := tea.NewProgram(
				tui.New(tui.Config{
					Library:   openlibrary.NewClient(baseURL, nil),
					Librarian: assistant,
				}),
				opts...,
			)
			_, err := program.Run()
			return err
		},
	}
	cmd.Flags().StringVar(&baseURL, "base-url", openlibrary.DefaultBaseURL, "Open Library API base URL")
	cmd.Flags().StringVar(&model, "model", "", "override the Gemini model for summaries and recommendations")
	cmd.Flags().BoolVar(&noAltScreen, "no-alt-screen", false, "disable the alternate screen buffer")
	cmd.Flags().BoolVar(&debug, "debug", false, "write debug logs to akram-debug.log")
	return cmd
}
