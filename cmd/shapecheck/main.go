package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes: 0 clean, 1 violations found, 2 usage or load errors.
const (
	exitOK         = 0
	exitViolations = 1
	exitError      = 2
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		if errors.Is(err, errViolationsFound) {
			os.Exit(exitViolations)
		}
		fmt.Fprintln(os.Stderr, "shapecheck:", err)
		os.Exit(exitError)
	}
	os.Exit(exitOK)
}
