package config

import (
	"fmt"
	"io"
	"os"
)

// ExitStatus writes a command failure to w and returns the process exit code.
// A nil error maps to 0.
func ExitStatus(w io.Writer, command string, err error) int {
	if err == nil {
		return 0
	}
	if w != nil {
		fmt.Fprintf(w, "%s: %v\n", command, err)
	}
	return 1
}

// Exit terminates the process with the status derived from err.
func Exit(command string, err error) {
	os.Exit(ExitStatus(os.Stderr, command, err))
}
