package main

import (
	"fmt"
	"os"

	"github.com/icarus-itcs/lazylink/cmd/lazylink"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := lazylink.Execute(version, commit, date); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
