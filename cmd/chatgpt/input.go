package main

import (
	"io"
	"os"
	"strings"
)

// stdinIsTerminal reports whether f is an interactive terminal.
func stdinIsTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// resolvePrompt determines the request text. Priority: command-line args
// joined with spaces, else the full contents of a piped input stream, else
// empty string signaling interactive mode.
func resolvePrompt(args []string, in io.Reader, interactive bool) string {
	if len(args) > 0 {
		return strings.TrimSpace(strings.Join(args, " "))
	}
	if !interactive && in != nil {
		data, err := io.ReadAll(in)
		if err != nil {
			return ""
		}
		return strings.TrimSpace(string(data))
	}
	return ""
}
