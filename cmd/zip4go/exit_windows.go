//go:build windows

package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"
	"golang.org/x/term"
)

// exit turns err into the process exit code. On windows, a console opened by
// double-clicking the binary closes with it, so wait for a key press first
// when stdin is interactive.
func exit(err error) {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		_, _ = fmt.Fprintln(os.Stderr, "press enter to close")
		_, _ = bufio.NewReader(os.Stdin).ReadString('\n')
	}

	if err != nil && !flags.WroteHelp(err) {
		os.Exit(1)
	}
}
