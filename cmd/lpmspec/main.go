// Package main provides a CLI for the LPM form specification resolver.
// It is useful for checking schemas and previewing what a host would render.
package main

import (
	"os"
)

var version = "dev"

func main() {
	if err := Execute(version); err != nil {
		os.Exit(1)
	}
}
