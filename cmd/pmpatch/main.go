package main

import (
	"fmt"
	"os"

	"github.com/sokinpui/pmpatch"
)

func main() {
	if err := pmpatch.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
