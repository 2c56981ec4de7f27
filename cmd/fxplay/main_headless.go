//go:build headless

package main

import (
	"fmt"
	"os"
)

func main() {
	_, _ = fmt.Fprintln(os.Stderr, "error: fxplay was built with the headless tag and has no audio output")
	os.Exit(1)
}
