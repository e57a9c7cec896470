//go:build !cgo
// +build !cgo

package main

import (
	"flag"
	"fmt"
	"os"
)

// version, commit, date are injected at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	var showVersion bool

	flag.BoolVar(&showVersion, "version", false, "print version and exit")
	flag.String("config", "", "path to arborist.toml (default: per-user config dir)")
	flag.Parse()

	if showVersion {
		fmt.Printf("Arborist viewer %s (%s) %s\n", version, commit, date)
		return
	}

	fmt.Fprintln(os.Stderr, "The arborist viewer requires a cgo build with raylib.")
	os.Exit(1)
}
