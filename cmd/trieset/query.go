package main

import (
	"bufio"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aglyzov/go-trieset/trieset"
)

func newQueryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Load a word list and print the sorted words with a prefix",
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				path, _   = cmd.Flags().GetString("words")
				limit, _  = cmd.Flags().GetInt("limit")
				fake, _   = cmd.Flags().GetInt("fake")
				seed, _   = cmd.Flags().GetInt64("seed")
				prefix, _ = cmd.Flags().GetString("prefix")
				count, _  = cmd.Flags().GetBool("count")
			)

			if path == "" && fake <= 0 {
				return fmt.Errorf("either --words or --fake is required")
			}

			words, err := a.loadWords(path, limit, fake, seed)
			if err != nil {
				return err
			}

			tr := a.newTrie()

			if _, err := tr.AddBatch(words); err != nil {
				var batchErr *trieset.BatchError
				if !errors.As(err, &batchErr) {
					return err
				}
				// skip the words the trie cannot hold, like clean would
				a.log.Warn().
					Int("skipped", len(batchErr.Failures)).
					Err(batchErr.Failures[0]).
					Msg("some words were not loaded")
			}

			keys, err := tr.KeysWithPrefix(prefix)
			if err != nil {
				return err
			}

			out := bufio.NewWriter(cmd.OutOrStdout())

			if count {
				fmt.Fprintln(out, len(keys))
			} else {
				for _, k := range keys {
					fmt.Fprintln(out, k)
				}
			}

			a.log.Debug().Int("words", tr.Len()).Int("found", len(keys)).Str("prefix", prefix).Msg("query done")

			return out.Flush()
		},
	}

	cmd.Flags().String("words", "", "word list file, one word per line")
	cmd.Flags().Int("limit", 0, "read at most this many words (0 means all)")
	cmd.Flags().Int("fake", 0, "generate this many fake words instead of reading a file")
	cmd.Flags().Int64("seed", 1234567890, "seed of the fake generator")
	cmd.Flags().String("prefix", "", "print only the words with this prefix")
	cmd.Flags().Bool("count", false, "print the number of matching words only")

	return cmd
}
