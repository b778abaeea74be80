// Command trieset cleans word lists, benchmarks the concurrent trie against
// the sequential one and a Go map, and runs prefix queries.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
