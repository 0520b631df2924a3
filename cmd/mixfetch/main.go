package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		// interrupted runs have already printed their summary
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintf(os.Stderr, "mixfetch: %v\n", err)
		}
		os.Exit(1)
	}
}
