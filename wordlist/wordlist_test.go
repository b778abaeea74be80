package wordlist

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Parallel()

	for _, tcase := range []*struct {
		Input string
		Limit int
		Exp   []string
	}{
		{"", 0, nil},
		{"a\nb\nc\n", 0, []string{"a", "b", "c"}},
		{"a\nb\nc", 2, []string{"a", "b"}},
		{"a\n\nc", 0, []string{"a", "", "c"}},
	} {
		words, err := Load(strings.NewReader(tcase.Input), tcase.Limit)

		require.NoError(t, err)
		assert.Equal(t, tcase.Exp, words, "%q", tcase.Input)
	}
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(path, []byte("one\ntwo\n"), 0o644))

	words, err := LoadFile(path, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, words)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing"), 0)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValid(t *testing.T) {
	t.Parallel()

	for _, tcase := range []*struct {
		Word   string
		Lo, Hi byte
		Exp    bool
	}{
		{"", 32, 126, true},
		{"hello world", 32, 126, true},
		{"tab\there", 32, 126, false},
		{"tab\there", 0, 127, true},
		{"caf\xc3\xa9", 0, 127, false},
		{"~", 32, 126, true},
		{"\x7f", 32, 126, false},
	} {
		assert.Equal(t, tcase.Exp, Valid(tcase.Word, tcase.Lo, tcase.Hi), "%q", tcase.Word)
	}
}

func TestClean(t *testing.T) {
	t.Parallel()

	var (
		in  = strings.NewReader("apple\ncaf\xc3\xa9\nbanana\n\x01ctl\n")
		out bytes.Buffer
	)

	kept, dropped, err := Clean(in, &out, 32, 126)

	require.NoError(t, err)
	assert.Equal(t, 2, kept)
	assert.Equal(t, 2, dropped)
	assert.Equal(t, "apple\nbanana\n", out.String())
}

func TestShuffleIsDeterministic(t *testing.T) {
	t.Parallel()

	var (
		a = []string{"a", "b", "c", "d", "e", "f", "g", "h"}
		b = append([]string(nil), a...)
	)

	Shuffle(a, 42)
	Shuffle(b, 42)

	assert.Equal(t, a, b)
	assert.ElementsMatch(t, []string{"a", "b", "c", "d", "e", "f", "g", "h"}, a)
}

func TestFake(t *testing.T) {
	t.Parallel()

	words := Fake(200, 1234567890)

	require.Len(t, words, 200)
	assert.Equal(t, words, Fake(200, 1234567890))

	for _, w := range words {
		assert.NotEmpty(t, w)
		assert.True(t, Valid(w, 0, 127), "%q", w)
	}
}
