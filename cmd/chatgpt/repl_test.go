package main

import (
	"errors"
	"strings"
	"testing"
)

type fakeSender struct {
	calls  []string
	answer string
	err    error
}

func (f *fakeSender) Send(input string) (string, error) {
	f.calls = append(f.calls, input)
	if f.err != nil {
		return "", f.err
	}
	return f.answer, nil
}

func TestREPLExitDoesNotCallRemote(t *testing.T) {
	for _, line := range []string{"exit", "EXIT", "Quit"} {
		f := &fakeSender{answer: "unused"}
		var out strings.Builder
		err := runREPL(f, replOptions{}, strings.NewReader(line+"\n"), &out)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", line, err)
		}
		if len(f.calls) != 0 {
			t.Fatalf("%q: expected no remote calls, got %d", line, len(f.calls))
		}
	}
}

func TestREPLSkipsEmptyLines(t *testing.T) {
	f := &fakeSender{answer: "pong"}
	var out strings.Builder
	err := runREPL(f, replOptions{}, strings.NewReader("\n   \nping\nexit\n"), &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.calls) != 1 || f.calls[0] != "ping" {
		t.Fatalf("expected exactly one call with %q, got %#v", "ping", f.calls)
	}
}

func TestREPLPrintsAnswer(t *testing.T) {
	f := &fakeSender{answer: "pong"}
	var out strings.Builder
	err := runREPL(f, replOptions{}, strings.NewReader("ping\nexit\n"), &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "pong\n\n") {
		t.Fatalf("expected answer in output, got %q", out.String())
	}
	if !strings.Contains(out.String(), "> ") {
		t.Fatalf("expected prompt in output, got %q", out.String())
	}
}

func TestREPLEndsOnEndOfInput(t *testing.T) {
	f := &fakeSender{answer: "pong"}
	var out strings.Builder
	err := runREPL(f, replOptions{}, strings.NewReader(""), &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.calls) != 0 {
		t.Fatalf("expected no remote calls, got %d", len(f.calls))
	}
}

func TestREPLPropagatesRemoteError(t *testing.T) {
	wantErr := errors.New("rate limited")
	f := &fakeSender{err: wantErr}
	var out strings.Builder
	err := runREPL(f, replOptions{}, strings.NewReader("ping\n"), &out)
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected remote error to propagate, got %v", err)
	}
}

func TestREPLRequiresSession(t *testing.T) {
	var out strings.Builder
	if err := runREPL(nil, replOptions{}, strings.NewReader(""), &out); err == nil {
		t.Fatal("expected error for nil session")
	}
}
