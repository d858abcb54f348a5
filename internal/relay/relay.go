// Package relay streams chat-completion tokens from an external agent
// command to a writer. It is thin I/O glue: no queueing, no retries, no
// state machine. Start/finish markers go to the shared telemetry channel.
package relay

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"

	"github.com/1broseidon/deskd/internal/telemetry"
)

// Telemetry names emitted by the relay.
const (
	EventStarted   = "relay_started"
	EventCompleted = "relay_completed"
	EventFailed    = "relay_failed"
	CounterTokens  = "relay_tokens"
	DistDurationMS = "relay_duration_ms"
)

// Options describe one relay invocation.
type Options struct {
	// Command is the agent executable; Args are passed through unchanged.
	Command string
	Args    []string
	// Prompt is written to the agent's stdin.
	Prompt string
}

// Relay forwards agent output tokens to a destination writer.
type Relay struct {
	reporter telemetry.Reporter
}

// New creates a relay reporting into reporter. A nil reporter disables
// telemetry.
func New(reporter telemetry.Reporter) *Relay {
	if reporter == nil {
		reporter = telemetry.Nop{}
	}
	return &Relay{reporter: reporter}
}

// Stream runs the agent command, writes the prompt to its stdin, and
// copies stdout tokens to w as they arrive. Tokens are whitespace-split
// words; each is written followed by a single space. Returns the token
// count.
func (r *Relay) Stream(ctx context.Context, opts Options, w io.Writer) (int, error) {
	if opts.Command == "" {
		return 0, fmt.Errorf("relay command is not configured")
	}

	started := time.Now()
	r.reporter.LogEvent(EventStarted, map[string]any{
		"command":    opts.Command,
		"prompt_len": len(opts.Prompt),
	})

	cmd := exec.CommandContext(ctx, opts.Command, opts.Args...)
	cmd.Stdin = strings.NewReader(opts.Prompt)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return 0, fmt.Errorf("failed to open agent stdout: %w", err)
	}

	if err := cmd.Start(); err != nil {
		r.reporter.LogEvent(EventFailed, map[string]any{"error": err.Error()})
		return 0, fmt.Errorf("failed to start agent command: %w", err)
	}

	tokens := 0
	scanner := bufio.NewScanner(stdout)
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		if _, err := fmt.Fprintf(w, "%s ", scanner.Text()); err != nil {
			// Stop reading but still reap the process.
			cmd.Process.Kill()
			cmd.Wait()
			return tokens, fmt.Errorf("failed to write token: %w", err)
		}
		tokens++
	}
	scanErr := scanner.Err()

	waitErr := cmd.Wait()
	elapsed := time.Since(started)

	if scanErr != nil || waitErr != nil {
		err := scanErr
		if err == nil {
			err = waitErr
		}
		r.reporter.LogEvent(EventFailed, map[string]any{
			"error":  err.Error(),
			"tokens": tokens,
		})
		return tokens, fmt.Errorf("agent command failed: %w", err)
	}

	r.reporter.LogEvent(EventCompleted, map[string]any{"tokens": tokens})
	r.reporter.IncrementCounter(CounterTokens, int64(tokens), map[string]string{"command": opts.Command})
	r.reporter.RecordDistribution(DistDurationMS, float64(elapsed.Milliseconds()), map[string]string{"command": opts.Command})

	return tokens, nil
}
