// Package wordlist loads, cleans and generates newline-separated word lists.
package wordlist

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"os"

	"github.com/brianvoe/gofakeit/v6"
)

// Load reads up to limit lines (all of them if limit <= 0). Lines are kept
// as-is, trailing CR included; use Clean to drop unusable words.
func Load(r io.Reader, limit int) ([]string, error) {
	var (
		words []string
		scan  = bufio.NewScanner(r)
	)

	scan.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scan.Scan() {
		words = append(words, scan.Text())
		if limit > 0 && len(words) == limit {
			break
		}
	}

	if err := scan.Err(); err != nil {
		return words, fmt.Errorf("wordlist: read: %w", err)
	}

	return words, nil
}

// LoadFile is Load on a named file.
func LoadFile(path string, limit int) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("wordlist: %w", err)
	}
	defer f.Close()

	return Load(f, limit)
}

// Valid reports whether every byte of the word lies in [lo..hi].
func Valid(word string, lo, hi byte) bool {
	for i := 0; i < len(word); i++ {
		if c := word[i]; c < lo || c > hi {
			return false
		}
	}
	return true
}

// Clean copies the lines of r to w dropping those with a byte outside [lo..hi].
func Clean(r io.Reader, w io.Writer, lo, hi byte) (kept, dropped int, err error) {
	var (
		scan = bufio.NewScanner(r)
		out  = bufio.NewWriter(w)
	)

	scan.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scan.Scan() {
		line := scan.Text()
		if !Valid(line, lo, hi) {
			dropped++
			continue
		}
		if _, err = out.WriteString(line + "\n"); err != nil {
			return kept, dropped, fmt.Errorf("wordlist: write: %w", err)
		}
		kept++
	}

	if err = scan.Err(); err != nil {
		return kept, dropped, fmt.Errorf("wordlist: read: %w", err)
	}

	if err = out.Flush(); err != nil {
		return kept, dropped, fmt.Errorf("wordlist: write: %w", err)
	}

	return kept, dropped, nil
}

// Shuffle permutes the words in place, deterministically for a given seed.
func Shuffle(words []string, seed int64) {
	rnd := rand.New(rand.NewSource(seed))
	rnd.Shuffle(len(words), func(i, j int) {
		words[i], words[j] = words[j], words[i]
	})
}

// Fake returns n generated words and phrases, deterministically for a given
// seed. Every byte is within 7-bit ASCII.
func Fake(n int, seed int64) []string {
	var (
		faker = gofakeit.New(seed)
		words = make([]string, 0, n)
	)

	for i := 0; len(words) < n; i++ {
		var word string

		switch i % 4 {
		case 0:
			word = faker.Word()
		case 1:
			word = faker.Username()
		case 2:
			word = faker.URL()
		default:
			word = faker.HipsterSentence(3)
		}

		if word != "" && Valid(word, 0, 127) {
			words = append(words, word)
		}
	}

	return words
}
