package trieset

import (
	"errors"
	"fmt"
)

// ErrInvalidCharacter is wrapped by every error caused by a byte outside
// [MinChar..MaxChar].
var ErrInvalidCharacter = errors.New("invalid character")

// CharError reports an out-of-range byte found while walking a word.
type CharError struct {
	Word string
	Pos  int
	Char byte
}

func (e *CharError) Error() string {
	return fmt.Sprintf("trieset: invalid character 0x%02x at position %d of %q", e.Char, e.Pos, e.Word)
}

func (e *CharError) Unwrap() error {
	return ErrInvalidCharacter
}

// ElementError is a failure of one element of a batch.
type ElementError struct {
	Index int
	Word  string
	Err   error
}

func (e ElementError) Error() string {
	return fmt.Sprintf("element %d (%q): %v", e.Index, e.Word, e.Err)
}

func (e ElementError) Unwrap() error {
	return e.Err
}

// BatchError collects the failed elements of a batch operation. Elements not
// listed were processed normally.
type BatchError struct {
	Op       string
	Total    int
	Failures []ElementError // ordered by Index
}

func (e *BatchError) Error() string {
	if len(e.Failures) == 0 {
		return fmt.Sprintf("trieset: %s batch: no failures", e.Op)
	}
	return fmt.Sprintf("trieset: %s batch: %d of %d elements failed, first: %v",
		e.Op, len(e.Failures), e.Total, e.Failures[0])
}

func (e *BatchError) Unwrap() []error {
	errs := make([]error, len(e.Failures))
	for i, f := range e.Failures {
		errs[i] = f
	}
	return errs
}

// Failed reports whether the element at index i failed.
func (e *BatchError) Failed(i int) bool {
	for _, f := range e.Failures {
		if f.Index == i {
			return true
		}
	}
	return false
}
