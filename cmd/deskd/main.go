package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/1broseidon/deskd/internal/config"
	"github.com/1broseidon/deskd/internal/desktop"
	"github.com/1broseidon/deskd/internal/ipc"
	"github.com/1broseidon/deskd/internal/sessionlog"
	"github.com/1broseidon/deskd/internal/telemetry"
	"github.com/1broseidon/deskd/internal/tui"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "daemon":
		if len(os.Args) > 2 && (os.Args[2] == "help" || os.Args[2] == "-h" || os.Args[2] == "--help") {
			fmt.Fprintln(os.Stdout, "Usage: deskd daemon [--config PATH]")
			os.Exit(0)
		}
		runDaemon(os.Args[2:])
	case "status":
		os.Exit(runStatus(os.Args[2:]))
	case "windows":
		os.Exit(runWindows(os.Args[2:]))
	case "open":
		os.Exit(runOpen(os.Args[2:]))
	case "close":
		os.Exit(runWindowOp(os.Args[2:], "close"))
	case "focus":
		os.Exit(runWindowOp(os.Args[2:], "focus"))
	case "minimize":
		os.Exit(runWindowOp(os.Args[2:], "minimize"))
	case "maximize":
		os.Exit(runWindowOp(os.Args[2:], "maximize"))
	case "restore":
		os.Exit(runWindowOp(os.Args[2:], "restore"))
	case "move":
		os.Exit(runMove(os.Args[2:]))
	case "resize":
		os.Exit(runResize(os.Args[2:]))
	case "metrics":
		os.Exit(runMetrics(os.Args[2:]))
	case "diag":
		os.Exit(runDiag(os.Args[2:]))
	case "relay":
		os.Exit(runRelay(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "tui":
		os.Exit(runTUI(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: deskd <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  daemon              Start the deskd daemon (foreground)")
	fmt.Fprintln(w, "  status              Show daemon status")
	fmt.Fprintln(w, "  windows             List open windows in stacking order")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  open                Open a window (or refocus it if already open)")
	fmt.Fprintln(w, "  close               Close a window")
	fmt.Fprintln(w, "  focus               Focus a window")
	fmt.Fprintln(w, "  minimize            Minimize a window")
	fmt.Fprintln(w, "  maximize            Toggle a window's maximized state")
	fmt.Fprintln(w, "  restore             Restore a minimized window")
	fmt.Fprintln(w, "  move                Reposition a window")
	fmt.Fprintln(w, "  resize              Resize a window")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  metrics             Dump the daemon's telemetry snapshot")
	fmt.Fprintln(w, "  diag                Fire the diagnostics sample emitter")
	fmt.Fprintln(w, "  relay               Relay a prompt to the configured agent command")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print effective configuration")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  tui                 Open the interactive stack inspector")
	fmt.Fprintln(w, "  mcp serve           Start MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'deskd <command> --help' for command-specific options.")
}

// newClient builds an IPC client honoring a config-level socket override.
func newClient() *ipc.Client {
	cfg, err := config.Load()
	if err == nil && cfg.SocketPath != "" {
		return ipc.NewClientForSocket(cfg.SocketPath)
	}
	return ipc.NewClient()
}

func runStatus(args []string) int {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: deskd status")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Show daemon status via IPC.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "status takes no arguments")
		fs.Usage()
		return 2
	}

	client := newClient()
	status, err := client.GetStatus()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Printf("daemon_running:  %v\n", status.DaemonRunning)
	fmt.Printf("open_windows:    %d\n", status.OpenWindows)
	fmt.Printf("top_stack_order: %d\n", status.TopStackOrder)
	fmt.Printf("focused_id:      %s\n", status.FocusedID)
	fmt.Printf("uptime_seconds:  %d\n", status.UptimeSeconds)
	return 0
}

func runMetrics(args []string) int {
	fs := flag.NewFlagSet("metrics", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: deskd metrics")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Dump the daemon's telemetry snapshot as JSON.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	client := newClient()
	snap, err := client.GetMetrics()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runDiag(args []string) int {
	fs := flag.NewFlagSet("diag", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: deskd diag")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Fire the diagnostics sample emitter on the daemon. Emits one sample")
		fmt.Fprintln(os.Stderr, "for every telemetry instrument so the pipeline can be verified end")
		fmt.Fprintln(os.Stderr, "to end.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	client := newClient()
	if err := client.EmitDiagnostics(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Println("diagnostics: emitted")
	return 0
}

func runConfig(args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  deskd config validate [--path PATH]")
		fmt.Fprintln(os.Stderr, "  deskd config print [--path PATH]")
		return 2
	}

	switch args[0] {
	case "validate":
		fs := flag.NewFlagSet("validate", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/deskd/config.yaml)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		var err error
		if *path == "" {
			_, err = config.Load()
		} else {
			_, err = config.LoadFromPath(*path)
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Println("config: ok")
		return 0

	case "print":
		fs := flag.NewFlagSet("print", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/deskd/config.yaml)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		var cfg *config.Config
		var err error
		if *path == "" {
			cfg, err = config.Load()
		} else {
			cfg, err = config.LoadFromPath(*path)
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		if err := cfg.Print(os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown config subcommand: %s\n", args[0])
		return 2
	}
}

func runTUI(args []string) int {
	if len(args) > 0 && (args[0] == "help" || args[0] == "-h" || args[0] == "--help") {
		fmt.Fprintln(os.Stderr, "Usage: deskd tui")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Interactive read-only inspector for the window stack. Polls the")
		fmt.Fprintln(os.Stderr, "daemon once per second.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Keybindings:")
		fmt.Fprintln(os.Stderr, "  r         Refresh now")
		fmt.Fprintln(os.Stderr, "  d         Fire the diagnostics sample emitter")
		fmt.Fprintln(os.Stderr, "  q, Ctrl+C Quit")
		return 0
	}

	fs := flag.NewFlagSet("tui", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	socketPath := ""
	if cfg, err := config.Load(); err == nil {
		socketPath = cfg.SocketPath
	}
	if err := tui.Run(socketPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runDaemon(args []string) {
	fs := flag.NewFlagSet("daemon", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	configPath := fs.String("config", "", "Config file path (default: ~/.config/deskd/config.yaml)")
	if err := fs.Parse(args); err != nil {
		os.Exit(2)
	}

	var cfg *config.Config
	var err error
	if *configPath == "" {
		cfg, err = config.Load()
	} else {
		cfg, err = config.LoadFromPath(*configPath)
	}
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	log.Printf("Configuration loaded (%d app kinds, telemetry: %v)", len(cfg.Apps), cfg.TelemetryEnabled())

	// Telemetry: the collector serves GET_METRICS; the log reporter mirrors
	// every emission to stderr. Disabled telemetry reports to nothing.
	collector := telemetry.NewCollector(cfg.TelemetryEnabled())
	var reporter telemetry.Reporter = telemetry.Nop{}
	if cfg.TelemetryEnabled() {
		reporter = telemetry.Multi{
			collector,
			telemetry.NewLogReporter(log.New(os.Stderr, "telemetry: ", log.LstdFlags)),
		}
	}

	logPath := cfg.Logging.File
	if logPath == "" {
		logPath, err = config.DefaultLogPath()
		if err != nil {
			log.Fatalf("Failed to resolve log path: %v", err)
		}
	}
	logger, err := sessionlog.New(sessionlog.Config{
		Enabled:   cfg.Logging.Enabled,
		Level:     sessionlog.ParseLogLevel(cfg.Logging.Level),
		FilePath:  logPath,
		MaxSizeMB: cfg.Logging.MaxSizeMB,
		MaxFiles:  cfg.Logging.MaxFiles,
	})
	if err != nil {
		log.Fatalf("Failed to create session logger: %v", err)
	}
	defer logger.Close()

	session := desktop.NewSession(reporter)

	ipcServer, err := ipc.NewServer(cfg, session, collector, reporter, logger)
	if err != nil {
		log.Fatalf("Failed to create IPC server: %v", err)
	}
	if err := ipcServer.Start(); err != nil {
		log.Fatalf("Failed to start IPC server: %v", err)
	}
	defer ipcServer.Stop()

	log.Printf("deskd daemon started (socket: %s)", ipcServer.SocketPath())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	sig := <-sigCh
	log.Printf("Received %v, shutting down deskd daemon...", sig)
}
