package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aglyzov/go-trieset/wordlist"
)

// newCleanCmd drops the lines a trie cannot store from a word list
func newCleanCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean <in> <out>",
		Short: "Copy a word list keeping only words within a byte range",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			lo, hi := a.cfg.Wordlist.MinChar, a.cfg.Wordlist.MaxChar
			if cmd.Flags().Changed("min") {
				lo, _ = cmd.Flags().GetInt("min")
			}
			if cmd.Flags().Changed("max") {
				hi, _ = cmd.Flags().GetInt("max")
			}
			if lo < 0 || hi > 255 || lo > hi {
				return fmt.Errorf("invalid byte range [%d..%d]", lo, hi)
			}

			in, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer in.Close()

			out, err := os.Create(args[1])
			if err != nil {
				return err
			}

			kept, dropped, err := wordlist.Clean(in, out, byte(lo), byte(hi))
			if cerr := out.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				return err
			}

			a.log.Info().
				Int("kept", kept).
				Int("dropped", dropped).
				Str("out", args[1]).
				Msg("word list cleaned")

			fmt.Fprintf(cmd.OutOrStdout(), "kept %d, dropped %d\n", kept, dropped)

			return nil
		},
	}

	cmd.Flags().Int("min", 0, "lowest accepted byte (default from config)")
	cmd.Flags().Int("max", 127, "highest accepted byte (default from config)")

	return cmd
}
