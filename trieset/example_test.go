package trieset_test

import (
	"errors"
	"fmt"

	"github.com/aglyzov/go-trieset/trieset"
)

func Example() {
	tr := trieset.New(trieset.WithWorkers(2))

	_, _ = tr.AddBatch([]string{"car", "cat", "cart", "dog"})

	tr.AddAsync([]string{"cab", "cow"})
	tr.Flush()

	ok, _ := tr.Has("cart")
	fmt.Println(ok)

	keys, _ := tr.KeysWithPrefix("ca")
	fmt.Println(keys)

	_, err := tr.Add("caf\xc3\xa9")
	fmt.Println(errors.Is(err, trieset.ErrInvalidCharacter))

	// Output:
	// true
	// [cab car cart cat]
	// true
}
