//go:build !windows

package main

import (
	"os"

	"github.com/jessevdk/go-flags"
)

// exit turns err into the process exit code. Help output is not a failure.
func exit(err error) {
	if err != nil && !flags.WroteHelp(err) {
		os.Exit(1)
	}
}
