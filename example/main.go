// Command example is the tableseed CLI with the example seeders linked in.
//
//	DATABASE_URL=sqlite://./example.sqlite go run ./example seed
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Rana718/tableseed/cmd"
	_ "github.com/Rana718/tableseed/example/seeders"
	"github.com/fatih/color"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.Execute(ctx); err != nil {
		color.Red("❌ %v", err)
		stop()
		os.Exit(1)
	}
}
