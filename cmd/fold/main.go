// Command fold plays streaming turn activity into a console that
// groups it under collapsible, animated wrapper sections.
//
// Usage:
//
//	fold replay "testdata/*.jsonl"     Replay recorded event scripts
//	fold replay --follow events.jsonl  Tail a growing script file
//	GEMINI_API_KEY=... fold live <prompt>
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/fwojciec/fold/bubbletea"
	"github.com/fwojciec/fold/config"
	"github.com/fwojciec/fold/gemini"
	"github.com/fwojciec/fold/script"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fold: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var configPath string
	root := &cobra.Command{
		Use:           "fold",
		Short:         "Grouped collapsible display for streaming turn activity",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "path to config file")
	root.AddCommand(newReplayCmd(&configPath), newLiveCmd(&configPath))
	return root.ExecuteContext(ctx)
}

func newReplayCmd(configPath *string) *cobra.Command {
	var follow bool
	cmd := &cobra.Command{
		Use:   "replay <script...>",
		Short: "Replay recorded turn-event scripts",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}

			if follow {
				if len(args) != 1 {
					return fmt.Errorf("--follow takes exactly one script file")
				}
				f, err := script.NewFollower(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				return bubbletea.Run(cmd.Context(), f.Feed(), cfg.Options()...)
			}

			steps, err := loadScripts(args)
			if err != nil {
				return err
			}
			return bubbletea.Run(cmd.Context(), script.Feed(steps), cfg.Options()...)
		},
	}
	cmd.Flags().BoolVar(&follow, "follow", false, "tail the script file as it grows")
	return cmd
}

func newLiveCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "live <prompt...>",
		Short: "Stream live thought activity from the Gemini API",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			apiKey := os.Getenv("GEMINI_API_KEY")
			if apiKey == "" {
				return fmt.Errorf("GEMINI_API_KEY is not set")
			}
			client, err := gemini.New(cmd.Context(), apiKey, gemini.WithModel(cfg.Model))
			if err != nil {
				return err
			}
			feed := client.Feed(strings.Join(args, " "))
			return bubbletea.Run(cmd.Context(), feed, cfg.Options()...)
		},
	}
}

// loadScripts expands glob patterns and concatenates the decoded
// steps in argument, then path, order.
func loadScripts(patterns []string) ([]script.Step, error) {
	var steps []script.Step
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("%s: no scripts matched", pattern)
		}
		for _, path := range matches {
			f, err := os.Open(path)
			if err != nil {
				return nil, err
			}
			s, err := script.Decode(f)
			f.Close()
			if err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
			steps = append(steps, s...)
		}
	}
	return steps, nil
}
