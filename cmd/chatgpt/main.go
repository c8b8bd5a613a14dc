// Package main wires config, history, and OpenAI chat completions into a
// terminal ChatGPT client.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/owenwolfe/ChatGPT-Terminal/pkg/chat"
	configpkg "github.com/owenwolfe/ChatGPT-Terminal/pkg/config"
	loggerpkg "github.com/owenwolfe/ChatGPT-Terminal/pkg/logger"
)

// main is the program entry point.
func main() {
	_ = godotenv.Load()

	reset := flag.Bool("reset", false, "delete the saved conversation history and exit")
	verbose := flag.Bool("verbose", false, "verbose debug logging to stderr")
	configPath := flag.String("config", configpkg.DefaultFilePath(), "path to the YAML config file")
	flag.Usage = usage
	flag.Parse()

	cfg, err := loadConfig(*configPath, *verbose)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if cfg.APIKey == "" {
		_, _ = fmt.Fprintln(os.Stderr, "Error: OPENAI_API_KEY is not set.")
		_, _ = fmt.Fprintln(os.Stderr, "Set it with: export OPENAI_API_KEY='sk-...'")
		os.Exit(1)
	}

	appLogger := loggerpkg.NewWriterLogger(os.Stderr)
	sess, err := chat.New(context.Background(), cfg, chat.WithLogger(appLogger))
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *reset {
		if err := sess.Reset(); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("History cleared.")
		return
	}

	interactive := stdinIsTerminal(os.Stdin)
	prompt := resolvePrompt(flag.Args(), os.Stdin, interactive)

	if prompt == "" && interactive {
		if err := runREPL(sess, replOptions{Verbose: cfg.Verbose, Logger: appLogger}, os.Stdin, os.Stdout); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if prompt == "" {
		usage()
		os.Exit(2)
	}

	answer, err := sess.Send(prompt)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(answer)
}

// loadConfig layers env over the optional config file over defaults.
func loadConfig(configPath string, verbose bool) (configpkg.Config, error) {
	cfg := configpkg.DefaultConfig()
	cfg, err := configpkg.LoadFile(cfg, configPath)
	if err != nil {
		return configpkg.Config{}, fmt.Errorf("load config file: %w", err)
	}
	cfg = configpkg.FromEnv(cfg)
	cfg.Verbose = verbose
	return configpkg.Normalize(cfg), nil
}

func usage() {
	_, _ = fmt.Fprintln(os.Stderr, "Usage:")
	_, _ = fmt.Fprintln(os.Stderr, `  chatgpt "Your question here"`)
	_, _ = fmt.Fprintln(os.Stderr, "  chatgpt explain bfs")
	_, _ = fmt.Fprintln(os.Stderr, "  cat file.txt | chatgpt")
	_, _ = fmt.Fprintln(os.Stderr, "  chatgpt --reset")
	_, _ = fmt.Fprintln(os.Stderr, "")
	_, _ = fmt.Fprintln(os.Stderr, "Flags:")
	flag.PrintDefaults()
}
