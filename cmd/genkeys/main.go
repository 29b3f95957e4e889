// Command genkeys is a small offline utility that prints the ring token
// for one or more values, so an operator can sanity check ownership
// without spinning up a client.
package main

import (
	"fmt"
	"os"

	"kvset/internal/cluster"
)

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "usage: genkeys <value> [<value> ...]")
		os.Exit(1)
	}

	for _, value := range args {
		fmt.Printf("%s -> %d\n", value, cluster.Hash(value))
	}
}
