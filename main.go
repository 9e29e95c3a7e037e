package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/subcommands"

	"chessBattle/config"
)

func main() {
	cfg, err := config.InitConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(int(subcommands.ExitUsageError))
	}

	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")
	subcommands.Register(&guiCommand{matchFlags: matchFlags{cfg: cfg}}, "")
	subcommands.Register(&termCommand{matchFlags: matchFlags{cfg: cfg}}, "")
	subcommands.Register(&serveCommand{matchFlags: matchFlags{cfg: cfg}}, "")
	subcommands.Register(&headlessCommand{matchFlags: matchFlags{cfg: cfg}}, "")

	flag.Parse()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	status := subcommands.Execute(ctx)
	stop()
	os.Exit(int(status))
}
