package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/limaJavier/stablematching/cmd/stablematch/command"
)

func main() {
	ctx, _ := signal.NotifyContext(context.Background(), os.Interrupt)
	os.Exit(command.Run(ctx, os.Stdin, os.Stdout, os.Stderr, os.Args[1:]))
}
