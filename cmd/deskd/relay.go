package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/1broseidon/deskd/internal/config"
	"github.com/1broseidon/deskd/internal/relay"
	"github.com/1broseidon/deskd/internal/telemetry"
)

func runRelay(args []string) int {
	fs := flag.NewFlagSet("relay", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: deskd relay [flags] <prompt...>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Send the prompt to the configured agent command and stream its")
		fmt.Fprintln(os.Stderr, "output tokens to stdout. The command comes from relay.command in")
		fmt.Fprintln(os.Stderr, "the config unless overridden.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}
	command := fs.String("command", "", "Agent command (overrides relay.command)")
	verbose := fs.Bool("verbose", false, "Log relay telemetry to stderr")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "relay requires a prompt")
		fs.Usage()
		return 2
	}
	prompt := strings.Join(fs.Args(), " ")

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	opts := relay.Options{
		Command: cfg.Relay.Command,
		Args:    cfg.Relay.Args,
		Prompt:  prompt,
	}
	if *command != "" {
		opts.Command = *command
		opts.Args = nil
	}
	if opts.Command == "" {
		fmt.Fprintln(os.Stderr, "no agent command configured (set relay.command or pass --command)")
		return 2
	}

	var reporter telemetry.Reporter
	if *verbose {
		reporter = telemetry.NewLogReporter(log.New(os.Stderr, "relay: ", log.LstdFlags))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	r := relay.New(reporter)
	tokens, err := r.Stream(ctx, opts, os.Stdout)
	fmt.Println()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if *verbose {
		fmt.Fprintf(os.Stderr, "relay: %d tokens\n", tokens)
	}
	return 0
}
