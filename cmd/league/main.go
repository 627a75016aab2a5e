package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/riskibarqy/slowpitch-league/internal/config"
	"github.com/riskibarqy/slowpitch-league/internal/platform/logging"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadClient()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := logging.NewConsole(cfg.LogLevel)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := newCLI(cfg, logger, os.Stdout)
	if err := app.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		if errors.Is(err, errUsage) {
			printUsage()
			os.Exit(2)
		}
		logger.Error("command failed", "command", os.Args[1], "error", err)
		os.Exit(1)
	}
}

var errUsage = errors.New("usage")

func (c *cli) run(ctx context.Context, command string, args []string) error {
	switch strings.ToLower(strings.TrimSpace(command)) {
	case "login":
		return c.login(ctx, args)
	case "logout":
		return c.logout()
	case "status":
		return c.status(ctx)
	case "sync":
		return c.sync(ctx)
	case "upload":
		return c.upload(ctx, args)
	case "process":
		return c.process(ctx, args)
	case "swap":
		return c.swap(ctx, args)
	case "adddrop":
		return c.addDrop(ctx, args)
	case "draft":
		return c.draft(ctx, args)
	case "finalize":
		return c.finalize(ctx)
	case "reset":
		return c.reset(ctx, args)
	case "standings":
		return c.standings(ctx)
	case "players":
		return c.players(ctx, args)
	case "outbox":
		return c.outbox(ctx, args)
	case "watch":
		return c.watch(ctx)
	default:
		return errUsage
	}
}

func printUsage() {
	name := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "usage: %s <command> [args]\n", name)
	fmt.Fprintln(os.Stderr, "commands:")
	fmt.Fprintln(os.Stderr, "  login <name> <pin>            sign in and remember the session")
	fmt.Fprintln(os.Stderr, "  logout                        forget the session")
	fmt.Fprintln(os.Stderr, "  status                        season, teams and outbox")
	fmt.Fprintln(os.Stderr, "  sync                          pull from the server and deliver queued writes")
	fmt.Fprintln(os.Stderr, "  upload <MON|FRI> <file.csv>   apply a GameChanger export")
	fmt.Fprintln(os.Stderr, "  process <MON|FRI>             process a night that had no game")
	fmt.Fprintln(os.Stderr, "  swap <MON|FRI> <out> <in>     swap a bench player into a night")
	fmt.Fprintln(os.Stderr, "  adddrop <drop> <add>          replace a roster player from the pool")
	fmt.Fprintln(os.Stderr, "  draft <add|bench|remove> <team> <player>")
	fmt.Fprintln(os.Stderr, "  draft save                    send the draft to the server")
	fmt.Fprintln(os.Stderr, "  finalize                      close the week and record scores")
	fmt.Fprintln(os.Stderr, "  reset --confirm               clear the local season")
	fmt.Fprintln(os.Stderr, "  standings                     season table and weekly history")
	fmt.Fprintln(os.Stderr, "  players [query]               stat pool, ranked by query")
	fmt.Fprintln(os.Stderr, "  outbox <flush|retry|discard>  manage queued writes")
	fmt.Fprintln(os.Stderr, "  watch                         sync and flush on a schedule")
	fmt.Fprintln(os.Stderr, "examples:")
	fmt.Fprintf(os.Stderr, "  %s login nora 1234\n", name)
	fmt.Fprintf(os.Stderr, "  %s upload MON ./monday.csv\n", name)
	fmt.Fprintf(os.Stderr, "  %s swap FRI \"amy ace\" \"bo bell\"\n", name)
}
