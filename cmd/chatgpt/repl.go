package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	loggerpkg "github.com/owenwolfe/ChatGPT-Terminal/pkg/logger"
)

// sender issues one chat request for one line of user input.
type sender interface {
	Send(input string) (string, error)
}

// replOptions configures REPL behavior.
type replOptions struct {
	Verbose bool
	Logger  loggerpkg.Logger
}

// runREPL reads lines, sends each non-empty one as a prompt, and prints the
// answer. Exits on end-of-input or the literal commands "exit"/"quit"
// (case-insensitive). A remote failure propagates to the caller.
func runREPL(s sender, opts replOptions, in io.Reader, out io.Writer) error {
	if s == nil {
		return fmt.Errorf("chat session is required")
	}
	if in == nil {
		return fmt.Errorf("input reader is required")
	}
	if out == nil {
		out = io.Discard
	}

	loggerpkg.Debug(opts.Verbose, opts.Logger, "repl start", nil)

	scanner := bufio.NewScanner(in)
	_, _ = fmt.Fprintln(out, "Welcome to the terminal of GPT (to quit -> 'exit')")

	for {
		_, _ = fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			// End-of-input ends the session cleanly.
			_, _ = fmt.Fprintln(out)
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch strings.ToLower(line) {
		case "exit", "quit":
			return nil
		}

		answer, err := s.Send(line)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(out, "%s\n\n", answer)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return nil
}
