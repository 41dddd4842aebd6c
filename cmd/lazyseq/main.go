// Command lazyseq assembles a lazy list from configured sources and runs
// list operations on it, fetching only what each operation needs.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
