package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vhscom/calc/internal/api"
	"github.com/vhscom/calc/internal/calc"
	"github.com/vhscom/calc/internal/config"
	"github.com/vhscom/calc/internal/logs"
	"github.com/vhscom/calc/internal/server"
	"github.com/vhscom/calc/internal/session"
	"github.com/vhscom/calc/internal/tools"
	"github.com/vhscom/calc/internal/ui"
)

func printUsage() {
	heading := ui.TitleStyle.Render
	label := ui.PromptStyle.Render
	dim := ui.DimStyle.Render

	fmt.Println(heading("calc") + dim(" - keypad calculator"))
	fmt.Println()
	fmt.Println(heading("Usage:"))
	fmt.Println("  calc [flags]              " + dim("Interactive keypad (default)"))
	fmt.Println("  calc serve [flags]        " + dim("HTTP API and WebSocket keypad sessions"))
	fmt.Println("  calc mcp [flags]          " + dim("MCP tool server on stdio"))
	fmt.Println("  calc eval [flags] <expr>  " + dim("Evaluate one expression"))
	fmt.Println("  calc eval -- -5+3         " + dim("Use -- before an expression starting with -"))
	fmt.Println()
	fmt.Println(heading("Flags:"))
	fmt.Println("  " + label("-h, --help") + "      Show this help message")
	fmt.Println("  " + label("-p") + "              Server port (serve)")
	fmt.Println("  " + label("-api-url") + "        Evaluate on a remote calc server")
	fmt.Println("  " + label("-api-token") + "      Bearer token")
	fmt.Println("  " + label("-error-hold") + "     How long Error stays on the display")
	fmt.Println("  " + label("-strict=true") + "    Report malformed expressions as errors")
	fmt.Println("  " + label("-log-level") + "      debug, info, warn or error")
	fmt.Println("  " + label("-log-file") + "       Log file (keypad mode logs nowhere by default)")
	fmt.Println()
	fmt.Println(heading("Environment:"))
	fmt.Println("  " + label("CALC_PORT") + "           Server port (default 3318)")
	fmt.Println("  " + label("CALC_API_URL") + "        Remote evaluator base URL")
	fmt.Println("  " + label("CALC_API_TOKEN") + "      Bearer token; required by serve when set")
	fmt.Println("  " + label("CALC_ERROR_HOLD") + "     e.g. 900ms")
	fmt.Println("  " + label("CALC_STRICT_SYNTAX") + "  true or false")
	fmt.Println("  " + label("CALC_LOG_LEVEL") + "      Log level")
	fmt.Println("  " + label("CALC_LOG_FILE") + "       Log file")
	fmt.Println()
	fmt.Println(dim("Variables are also read from ./.env."))
	fmt.Println()
	fmt.Println(heading("Keys:"))
	fmt.Println("  0-9 + - * / . ( ) %   " + dim("Append to the expression"))
	fmt.Println("  enter or =            " + dim("Evaluate"))
	fmt.Println("  backspace             " + dim("Delete the last character"))
	fmt.Println("  c                     " + dim("Clear"))
	fmt.Println("  arrows, hjkl, space   " + dim("Move over and press on-screen keys"))
	fmt.Println("  q, esc, ctrl+c        " + dim("Quit"))
}

func main() {
	for _, arg := range os.Args[1:] {
		if arg == "-h" || arg == "--help" {
			printUsage()
			os.Exit(0)
		}
	}

	if err := config.LoadDotEnv(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "Error: load .env: %v\n", err)
		os.Exit(1)
	}

	cmd, args := "keypad", os.Args[1:]
	if len(args) > 0 {
		switch args[0] {
		case "serve", "mcp", "eval":
			cmd, args = args[0], args[1:]
		}
	}

	cfg, err := config.Parse("calc "+cmd, args, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'calc --help' for usage information")
		os.Exit(1)
	}

	var code int
	switch cmd {
	case "serve":
		code = runServe(cfg)
	case "mcp":
		code = runMCP(cfg)
	case "eval":
		code = runEval(cfg, os.Stdout, os.Stderr)
	default:
		code = runKeypad(cfg)
	}
	os.Exit(code)
}

func evaluator(cfg config.Config) session.Evaluator {
	if cfg.APIURL != "" {
		return api.NewClient(cfg.APIURL, cfg.APIToken)
	}
	return session.Local{}
}

func runKeypad(cfg config.Config) int {
	logger := logs.Discard()
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: open log file: %v\n", err)
			return 1
		}
		defer f.Close()
		logger = logs.New(f, cfg.LogLevel)
	}

	if cfg.APIURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := api.NewClient(cfg.APIURL, cfg.APIToken).Health(ctx)
		cancel()
		if err != nil {
			fmt.Fprintln(os.Stderr, ui.ErrorStyle.Render(fmt.Sprintf("Error: %s is not reachable: %v", cfg.APIURL, err)))
			return 1
		}
	}

	render, renders := renderNotifier()
	sess := session.New(evaluator(cfg), render, cfg.SessionOptions(logger))
	defer sess.Stop()

	p := tea.NewProgram(newModel(sess, renders, cfg.APIURL))
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func runServe(cfg config.Config) int {
	logger := logs.New(os.Stderr, cfg.LogLevel)

	mux := server.NewRouter(server.Options{
		Token:   cfg.APIToken,
		Session: cfg.SessionOptions(logger),
		Logger:  logger,
	})

	srv := http.Server{
		Handler:           mux,
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ctrlc
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(ctx)
	}()

	logger.Info("Listening", "port", cfg.Port, "auth", cfg.APIToken != "")
	err := srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server closed", "error", err)
		return 1
	}
	logger.Info("Server closed")
	return 0
}

func runMCP(cfg config.Config) int {
	// stdout carries the protocol
	logger := logs.New(os.Stderr, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := tools.NewServer(evaluator(cfg), logger)
	logger.Info("Serving MCP on stdio", "tool", tools.ToolEvaluate)
	if err := tools.ServeStdio(ctx, s, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("MCP server stopped", "error", err)
		return 1
	}
	return 0
}

func runEval(cfg config.Config, stdout, stderr io.Writer) int {
	if len(cfg.Args) == 0 {
		fmt.Fprintln(stderr, "Error: missing expression")
		fmt.Fprintln(stderr, "Usage: calc eval [flags] [--] <expr>")
		return 1
	}
	expr := strings.Join(cfg.Args, " ")

	ctx, cancel := context.WithTimeout(context.Background(), evalTimeout)
	defer cancel()

	res, err := session.Evaluate(ctx, evaluator(cfg), expr, cfg.StrictSyntax)
	if err != nil {
		fmt.Fprintf(stderr, "%s (%s)\n", session.ErrorText, calc.KindOf(err))
		return 1
	}
	if res == "" {
		res = "0"
	}
	fmt.Fprintln(stdout, res)
	return 0
}
