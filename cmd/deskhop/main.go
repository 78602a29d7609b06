package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/deskhop/deskhop/internal/config"
	"github.com/deskhop/deskhop/internal/daemon"
	"github.com/deskhop/deskhop/internal/desktops"
	"github.com/deskhop/deskhop/internal/focus"
	"github.com/deskhop/deskhop/internal/hotkeys"
	"github.com/deskhop/deskhop/internal/ipc"
	"github.com/deskhop/deskhop/internal/mcp"
	"github.com/deskhop/deskhop/internal/notify"
	"github.com/deskhop/deskhop/internal/registry"
	"github.com/deskhop/deskhop/internal/x11"
)

const (
	appName = "deskhop"
	version = "0.2.0"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "daemon":
		if len(os.Args) > 2 && (os.Args[2] == "help" || os.Args[2] == "-h" || os.Args[2] == "--help") {
			fmt.Fprintln(os.Stdout, "Usage: deskhop daemon")
			os.Exit(0)
		}
		if len(os.Args) > 2 {
			fmt.Fprintln(os.Stderr, "daemon takes no arguments")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "Usage: deskhop daemon")
			os.Exit(2)
		}
		runDaemon()
	case "status":
		os.Exit(runStatus(os.Args[2:]))
	case "switch":
		os.Exit(runSwitch(os.Args[2:]))
	case "move":
		os.Exit(runMove(os.Args[2:]))
	case "about":
		os.Exit(runAbout(os.Args[2:]))
	case "shutdown":
		os.Exit(runShutdown(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "version", "-v", "--version":
		fmt.Printf("%s %s\n", appName, version)
		os.Exit(0)
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
	fmt.Fprintln(w, "Usage: deskhop <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  daemon              Start the deskhop daemon (foreground)")
	fmt.Fprintln(w, "  status              Show daemon status")
	fmt.Fprintln(w, "  switch <n>          Switch to desktop n (0-9)")
	fmt.Fprintln(w, "  move <n>            Move the foreground window to desktop n (0-9)")
	fmt.Fprintln(w, "  about               Show hotkey layout and version")
	fmt.Fprintln(w, "  shutdown            Stop the running daemon")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print effective configuration")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  mcp serve           Start MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'deskhop <command> --help' for command-specific options.")
}

func aboutText(cfg *config.Config) string {
	return fmt.Sprintf(
		"%s %s\n\n"+
			"Switch virtual desktops with %s + <digit>: 1-9 address desktops 1-9,\n"+
			"0 addresses desktop 10. Hold %s + <digit> to move the foreground\n"+
			"window instead. Desktops are created on demand.",
		appName, version, cfg.SwitchModifier, cfg.MoveModifier)
}

func runDaemon() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	logger.Info("configuration loaded",
		"switch_modifier", cfg.SwitchModifier,
		"move_modifier", cfg.MoveModifier,
		"settle_delay", cfg.SettleDelay())

	conn, err := x11.NewConnection()
	if err != nil {
		log.Fatalf("Failed to connect to display: %v", err)
	}
	defer conn.Close()

	var notifier notify.Notifier
	switch {
	case !cfg.NotificationsEnabled():
		notifier = notify.Silent{}
	default:
		dbusNotifier, err := notify.NewDBus(appName)
		if err != nil {
			logger.Warn("session bus unavailable, notifications go to the log", "error", err)
			notifier = notify.Logging{Logger: logger}
		} else {
			defer dbusNotifier.Close()
			notifier = dbusNotifier
		}
	}

	reg := registry.New()
	restorer := focus.NewRestorer(conn, reg, logger)
	navigator := desktops.NewNavigator(conn, reg, restorer, notifier, logger, cfg.SettleDelay())
	mover := desktops.NewMover(conn, notifier, logger)

	table := hotkeys.BuildTable(cfg.SwitchModifier, cfg.MoveModifier)
	handler := hotkeys.NewHandler(conn, logger)
	if err := handler.BindTable(table); err != nil {
		// Failed bindings are reported once; the rest keep working.
		nerr := notifier.Notify("Hotkey Registration Error",
			fmt.Sprintf("Some hotkeys could not be registered:\n%v", err),
			notify.SeverityError)
		if nerr != nil {
			logger.Warn("notification delivery failed", "error", nerr)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	actions := make(chan hotkeys.Action, 4)
	ipcServer, err := ipc.NewServer(conn, reg, actions, aboutText(cfg), cancel, logger)
	if err != nil {
		log.Fatalf("Failed to create IPC server: %v", err)
	}
	if err := ipcServer.Start(); err != nil {
		log.Fatalf("Failed to start IPC server: %v", err)
	}
	defer ipcServer.Stop()

	loop := daemon.NewLoop(table, handler.Events(), actions, navigator, mover, logger)
	go loop.Run(ctx)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigCh:
			logger.Info("signal received, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
		conn.Quit()
	}()

	logger.Info("deskhop daemon started", "version", version)
	conn.EventLoop()
	logger.Info("deskhop daemon stopped")
}

func runStatus(args []string) int {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: deskhop status")
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

	client := ipc.NewClient()
	status, err := client.GetStatus()
	if err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, err)
		return 1
	}

	color.New(color.FgGreen).Printf("daemon_running:     %v\n", status.DaemonRunning)
	fmt.Printf("current_desktop:    %d\n", status.CurrentDesktop)
	fmt.Printf("desktop_count:      %d\n", status.DesktopCount)
	fmt.Printf("remembered_windows: %d\n", status.RememberedWindows)
	fmt.Printf("uptime_seconds:     %d\n", status.UptimeSeconds)
	return 0
}

// parseIndexArg parses the single desktop-index argument for switch/move.
func parseIndexArg(name string, args []string) (int, bool) {
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "Usage: deskhop %s <n>   (n in 0-9)\n", name)
		return 0, false
	}
	index, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid desktop index %q\n", args[0])
		return 0, false
	}
	return index, true
}

func runSwitch(args []string) int {
	index, ok := parseIndexArg("switch", args)
	if !ok {
		return 2
	}

	if err := ipc.NewClient().SwitchDesktop(index); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runMove(args []string) int {
	index, ok := parseIndexArg("move", args)
	if !ok {
		return 2
	}

	if err := ipc.NewClient().MoveWindow(index); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runAbout(args []string) int {
	if len(args) != 0 {
		fmt.Fprintln(os.Stderr, "about takes no arguments")
		return 2
	}

	// Prefer the running daemon's text (it reflects its live config).
	if text, err := ipc.NewClient().About(); err == nil {
		fmt.Println(text)
		return 0
	}

	cfg, err := config.Load()
	if err != nil {
		cfg = config.Default()
	}
	fmt.Println(aboutText(cfg))
	return 0
}

func runShutdown(args []string) int {
	if len(args) != 0 {
		fmt.Fprintln(os.Stderr, "shutdown takes no arguments")
		return 2
	}

	if err := ipc.NewClient().Shutdown(); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Println("daemon shutting down")
	return 0
}

func runConfig(args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: deskhop config <validate|print>")
		return 2
	}

	switch args[0] {
	case "validate":
		if _, err := config.Load(); err != nil {
			color.New(color.FgRed).Fprintln(os.Stderr, err)
			return 1
		}
		color.New(color.FgGreen).Println("configuration is valid")
		return 0
	case "print":
		cfg, err := config.Load()
		if err != nil {
			color.New(color.FgRed).Fprintln(os.Stderr, err)
			return 1
		}
		out, err := yaml.Marshal(cfg)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		os.Stdout.Write(out)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Unknown config command: %s\n", args[0])
		fmt.Fprintln(os.Stderr, "Usage: deskhop config <validate|print>")
		return 2
	}
}

func runMCP(args []string) int {
	if len(args) == 0 || args[0] != "serve" {
		fmt.Fprintln(os.Stderr, "Usage: deskhop mcp serve")
		return 2
	}
	if len(args) > 1 && (args[1] == "help" || args[1] == "-h" || args[1] == "--help") {
		fmt.Fprintln(os.Stdout, "Usage: deskhop mcp serve")
		fmt.Fprintln(os.Stdout, "")
		fmt.Fprintln(os.Stdout, "Start the MCP server on stdio. Designed to be invoked by MCP clients.")
		fmt.Fprintln(os.Stdout, "Requires a running deskhop daemon; tools bridge to it over IPC.")
		return 0
	}

	server := mcp.NewServer()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	if err := server.Run(ctx); err != nil {
		log.Fatalf("MCP server error: %v", err)
	}
	return 0
}
