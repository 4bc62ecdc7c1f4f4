// Command bot runs the kart race queue bot.
//
//	bot run     load config, open the Discord gateway and drive the queues
//	bot tracks  print the configured track catalog
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jose-valero/kart-queue-bot/cmd/bot/command"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	root := &cobra.Command{
		Use:           "bot",
		Short:         "Kart race queue bot",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		command.Run{}.Command(ctx),
		command.Tracks{Out: os.Stdout}.Command(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "bot: %v\n", err)
		os.Exit(1)
	}
}
