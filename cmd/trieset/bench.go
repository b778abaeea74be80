package main

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aglyzov/go-trieset/seqtrie"
	"github.com/aglyzov/go-trieset/trieset"
	"github.com/aglyzov/go-trieset/wordlist"
)

const (
	implConc = "conc"
	implSeq  = "seq"
	implMap  = "map"
)

type benchResult struct {
	Impl    string        `yaml:"impl"`
	Op      string        `yaml:"op"`
	Workers int           `yaml:"workers,omitempty"`
	Words   int           `yaml:"words"`
	Total   time.Duration `yaml:"total"`
	PerWord time.Duration `yaml:"per_word"`
}

type benchReport struct {
	Words   int           `yaml:"words"`
	Prefix  string        `yaml:"prefix"`
	Workers int           `yaml:"workers"`
	Results []benchResult `yaml:"results"`
	// Mismatches lists every disagreement between the implementations
	Mismatches []string `yaml:"mismatches,omitempty"`
}

func newBenchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Time the concurrent trie against the sequential trie and a Go map",
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				path, _   = cmd.Flags().GetString("words")
				limit, _  = cmd.Flags().GetInt("limit")
				fake, _   = cmd.Flags().GetInt("fake")
				seed, _   = cmd.Flags().GetInt64("seed")
				prefix, _ = cmd.Flags().GetString("prefix")
				format, _ = cmd.Flags().GetString("format")
			)

			if path == "" && fake <= 0 {
				return fmt.Errorf("either --words or --fake is required")
			}
			if format != "text" && format != "yaml" {
				return fmt.Errorf("unknown format %q", format)
			}

			words, err := a.loadWords(path, limit, fake, seed)
			if err != nil {
				return err
			}
			wordlist.Shuffle(words, seed)

			report := runBench(a.newTrie, words, prefix)

			for _, m := range report.Mismatches {
				a.log.Error().Str("mismatch", m).Msg("implementations disagree")
			}

			if format == "yaml" {
				enc := yaml.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent(2)
				if err := enc.Encode(report); err != nil {
					return err
				}
				return enc.Close()
			}

			writeText(cmd.OutOrStdout(), report)

			return nil
		},
	}

	cmd.Flags().String("words", "", "word list file, one word per line")
	cmd.Flags().Int("limit", 0, "read at most this many words (0 means all)")
	cmd.Flags().Int("fake", 0, "generate this many fake words instead of reading a file")
	cmd.Flags().Int64("seed", 1234567890, "seed of the fake generator and the shuffle")
	cmd.Flags().String("prefix", "ca", "prefix for the prefix query")
	cmd.Flags().String("format", "text", "report format: text or yaml")

	return cmd
}

// runBench times every operation on each implementation and cross-checks
// their answers. Words failing the trie alphabet are counted as failures by
// the tries and still stored by the map, so they show up as mismatches.
func runBench(newTrie func() *trieset.Trie, words []string, prefix string) *benchReport {
	var (
		conc = newTrie()
		seq  = seqtrie.New()
		set  = make(map[string]struct{}, len(words))
		rep  = &benchReport{Words: len(words), Prefix: prefix, Workers: conc.Workers()}
		n    = len(words)
	)

	measure := func(impl, op string, workers int, fn func()) {
		start := time.Now()
		fn()
		took := time.Since(start)

		res := benchResult{Impl: impl, Op: op, Workers: workers, Words: n, Total: took}
		if n > 0 {
			res.PerWord = took / time.Duration(n)
		}
		rep.Results = append(rep.Results, res)
	}

	mismatch := func(format string, args ...any) {
		rep.Mismatches = append(rep.Mismatches, fmt.Sprintf(format, args...))
	}

	// add
	var concAdded, seqAdded []bool
	measure(implSeq, "add", 0, func() {
		seqAdded = make([]bool, n)
		for i, w := range words {
			seqAdded[i], _ = seq.Add(w)
		}
	})
	measure(implConc, "add-batch", conc.Workers(), func() {
		concAdded, _ = conc.AddBatch(words)
	})
	measure(implMap, "add", 0, func() {
		for _, w := range words {
			if w != "" {
				set[w] = struct{}{}
			}
		}
	})
	{
		single := newTrie()
		measure(implConc, "add", 0, func() {
			for _, w := range words {
				_, _ = single.Add(w)
			}
		})

		async := newTrie()
		measure(implConc, "add-async", async.Workers(), func() {
			async.AddAsync(words)
			async.Flush()
		})
		if single.Len() != conc.Len() || async.Len() != conc.Len() {
			mismatch("add: single %d, batch %d, async %d words", single.Len(), conc.Len(), async.Len())
		}
	}

	// duplicates race inside a batch, so only the number of new words is fixed
	if a, b := countTrue(concAdded), countTrue(seqAdded); a != b {
		mismatch("add: conc added %d, seq added %d", a, b)
	}
	if conc.Len() != seq.Len() || conc.Len() != len(set) {
		mismatch("len: conc %d, seq %d, map %d", conc.Len(), seq.Len(), len(set))
	}

	// has
	var (
		concHas []bool
		seqHas  = make([]bool, n)
		mapHas  = make([]bool, n)
	)
	measure(implConc, "has-batch", conc.Workers(), func() {
		concHas, _ = conc.HasBatch(words)
	})
	measure(implConc, "has", 0, func() {
		for _, w := range words {
			_, _ = conc.Has(w)
		}
	})
	measure(implSeq, "has", 0, func() {
		for i, w := range words {
			seqHas[i], _ = seq.Has(w)
		}
	})
	measure(implMap, "has", 0, func() {
		for i, w := range words {
			_, mapHas[i] = set[w]
		}
	})
	for i := range words {
		if concHas[i] != mapHas[i] || seqHas[i] != mapHas[i] {
			mismatch("has %q: conc %v, seq %v, map %v", words[i], concHas[i], seqHas[i], mapHas[i])
			break
		}
	}

	// sorted keys
	var concKeys, seqKeys, mapKeys []string
	measure(implConc, "keys", 0, func() {
		concKeys = conc.Keys()
	})
	measure(implSeq, "keys", 0, func() {
		seqKeys = seq.Keys()
	})
	measure(implMap, "keys", 0, func() {
		mapKeys = make([]string, 0, len(set))
		for w := range set {
			mapKeys = append(mapKeys, w)
		}
		slices.Sort(mapKeys)
	})
	if !slices.Equal(concKeys, mapKeys) || !slices.Equal(seqKeys, mapKeys) {
		mismatch("keys: conc %d, seq %d, map %d", len(concKeys), len(seqKeys), len(mapKeys))
	}

	// prefix query
	var concPre, seqPre, mapPre []string
	measure(implConc, "prefix", 0, func() {
		concPre, _ = conc.KeysWithPrefix(prefix)
	})
	measure(implSeq, "prefix", 0, func() {
		seqPre, _ = seq.KeysWithPrefix(prefix)
	})
	measure(implMap, "prefix", 0, func() {
		mapPre = []string{}
		for w := range set {
			if strings.HasPrefix(w, prefix) {
				mapPre = append(mapPre, w)
			}
		}
		slices.Sort(mapPre)
	})
	if !slices.Equal(concPre, mapPre) || !slices.Equal(seqPre, mapPre) {
		mismatch("prefix %q: conc %d, seq %d, map %d", prefix, len(concPre), len(seqPre), len(mapPre))
	}

	// del
	var concRemoved, seqRemoved []bool
	measure(implConc, "del-batch", conc.Workers(), func() {
		concRemoved, _ = conc.DelBatch(words)
	})
	measure(implSeq, "del", 0, func() {
		seqRemoved = make([]bool, n)
		for i, w := range words {
			seqRemoved[i], _ = seq.Del(w)
		}
	})
	if a, b := countTrue(concRemoved), countTrue(seqRemoved); a != b {
		mismatch("del: conc removed %d, seq removed %d", a, b)
	}
	measure(implMap, "del", 0, func() {
		for _, w := range words {
			delete(set, w)
		}
	})
	{
		async := newTrie()
		_, _ = async.AddBatch(words)
		measure(implConc, "del-async", async.Workers(), func() {
			async.DelAsync(words)
			async.Flush()
		})
		if async.Len() != 0 {
			mismatch("del-async: %d words left", async.Len())
		}
	}

	if conc.Len() != 0 || seq.Len() != 0 || len(set) != 0 {
		mismatch("del: conc %d, seq %d, map %d words left", conc.Len(), seq.Len(), len(set))
	}

	return rep
}

func countTrue(flags []bool) (n int) {
	for _, ok := range flags {
		if ok {
			n++
		}
	}
	return n
}

func writeText(w io.Writer, rep *benchReport) {
	fmt.Fprintf(w, "words: %d, workers: %d, prefix: %q\n\n", rep.Words, rep.Workers, rep.Prefix)

	for _, r := range rep.Results {
		impl := r.Impl
		if r.Workers > 0 {
			impl = fmt.Sprintf("%s(%d)", r.Impl, r.Workers)
		}
		fmt.Fprintf(w, "%-9s %-10s %14v total %12v/word\n", impl, r.Op, r.Total, r.PerWord)
	}

	if len(rep.Mismatches) == 0 {
		fmt.Fprintln(w, "\nall implementations agree")
		return
	}

	fmt.Fprintln(w, "\nMISMATCHES:")
	for _, m := range rep.Mismatches {
		fmt.Fprintln(w, "  "+m)
	}
}
