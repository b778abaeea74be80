package main

import (
	"fmt"
	"slices"
	"sync"

	"github.com/spf13/cobra"
)

// newDemoCmd walks through the public API: concurrent batches and single
// adds from several goroutines, an async batch, then a batch lookup.
func newDemoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Add words from several goroutines, then check them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				out    = cmd.OutOrStdout()
				tr     = a.newTrie()
				groups = [][]string{
					{"hello", "world", "this", "is", "a", "test"},
					{"https://www.facebook.com", "https://www.twitter.com", "https://www.instagram.com"},
				}
				async  = []string{"https://www.google.com", "https://www.youtube.com", "https://www.reddit.com"}
				single = []string{"apple", "banana", "orange", "pear"}
				wg     sync.WaitGroup
			)

			for _, g := range groups {
				wg.Add(1)
				go func() {
					defer wg.Done()
					if _, err := tr.AddBatch(g); err != nil {
						a.log.Error().Err(err).Msg("batch add failed")
					}
				}()
				fmt.Fprintf(out, "adding %d words in a goroutine: %v\n", len(g), g)
			}

			for _, w := range single {
				wg.Add(1)
				go func() {
					defer wg.Done()
					if _, err := tr.Add(w); err != nil {
						a.log.Error().Err(err).Str("word", w).Msg("add failed")
					}
				}()
				fmt.Fprintf(out, "adding %q in a goroutine\n", w)
			}

			tr.AddAsync(async)
			fmt.Fprintf(out, "adding %d words asynchronously: %v\n\n", len(async), async)

			wg.Wait()
			tr.Flush()

			all := slices.Concat(append(groups, async, single)...)

			found, err := tr.HasBatch(all)
			if err != nil {
				return err
			}

			var missing int
			for i, ok := range found {
				if ok {
					fmt.Fprintf(out, "%q is in the trie\n", all[i])
				} else {
					fmt.Fprintf(out, "%q should be in the trie, but is not\n", all[i])
					missing++
				}
			}

			keys, err := tr.KeysWithPrefix("https://www.")
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "\nwords starting with %q: %v\n", "https://www.", keys)

			if missing > 0 {
				return fmt.Errorf("%d words missing", missing)
			}

			fmt.Fprintf(out, "%d words stored\n", tr.Len())

			return nil
		},
	}
}
