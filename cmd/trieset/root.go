package main

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/aglyzov/go-trieset/internal/config"
	"github.com/aglyzov/go-trieset/internal/logx"
	"github.com/aglyzov/go-trieset/trieset"
	"github.com/aglyzov/go-trieset/wordlist"
)

// app is the state shared by the subcommands, filled in before any of them runs
type app struct {
	cfg    *config.Config
	log    zerolog.Logger
	closer io.Closer
}

func newRootCmd() *cobra.Command {
	a := &app{log: zerolog.Nop()}

	root := &cobra.Command{
		Use:          "trieset",
		Short:        "Concurrent trie set toolbox",
		SilenceUsage: true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("config")

			cfg, err := config.Load(path, cmd.Flags())
			if err != nil {
				return err
			}

			logger, closer, err := logx.New(cfg.Log, os.Stderr)
			if err != nil {
				return err
			}

			a.cfg, a.log, a.closer = cfg, logger, closer
			a.log.Debug().Interface("config", cfg).Msg("config loaded")

			return nil
		},

		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.closer != nil {
				return a.closer.Close()
			}
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "config file (yaml, json or toml)")
	flags.String("log-level", "info", "log level: debug, info, warn, error")
	flags.String("log-format", string(logx.FormatAuto), "log format: auto, console, json")
	flags.String("log-file", "", "also log to this file (rotated)")
	flags.Int("workers", trieset.DefaultWorkers, "batch fan-out degree, 0 means one per CPU")

	root.AddCommand(
		newCleanCmd(a),
		newBenchCmd(a),
		newQueryCmd(a),
		newDemoCmd(a),
	)

	return root
}

// newTrie returns an empty trie configured and logging like the command.
func (a *app) newTrie() *trieset.Trie {
	opts := append(a.cfg.TrieOptions(), trieset.WithLogger(a.log.With().Str("component", "trieset").Logger()))
	return trieset.New(opts...)
}

// loadWords takes words either from a file or from the fake generator.
func (a *app) loadWords(path string, limit, fake int, seed int64) ([]string, error) {
	if fake > 0 {
		words := wordlist.Fake(fake, seed)
		a.log.Info().Int("words", len(words)).Int64("seed", seed).Msg("generated fake words")
		return words, nil
	}

	words, err := wordlist.LoadFile(path, limit)
	if err != nil {
		return nil, err
	}
	a.log.Info().Int("words", len(words)).Str("path", path).Msg("loaded words")

	return words, nil
}
