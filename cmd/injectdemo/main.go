// Package main wires the component builder, expansion engine, and di
// facade together into a small, runnable service graph, so the pieces of
// the core can be exercised end to end instead of only through tests.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	C "github.com/urfave/cli/v3"

	"github.com/injectkit/injectkit/cmd/injectdemo/scenario"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	app := &C.Command{
		Name:  "injectdemo",
		Usage: "run a small service graph through the dependency injection core",
		Flags: []C.Flag{
			&C.StringFlag{
				Name:  "scenario",
				Usage: "which demo scenario to run: greet, plugins",
				Value: "greet",
			},
			&C.StringFlag{
				Name:  "name",
				Usage: "name to greet, used by the greet scenario",
				Value: "world",
			},
		},
		Action: func(ctx context.Context, cmd *C.Command) error {
			runID := uuid.NewString()
			log.Printf("run %s: scenario=%s", runID, cmd.String("scenario"))
			switch s := cmd.String("scenario"); s {
			case "greet":
				out, err := scenario.Greet(cmd.String("name"))
				if err != nil {
					return err
				}
				fmt.Println(out)
			case "plugins":
				out, err := scenario.Plugins()
				if err != nil {
					return err
				}
				for _, line := range out {
					fmt.Println(line)
				}
			default:
				return fmt.Errorf("unknown scenario %q", s)
			}
			return nil
		},
	}

	if err := app.Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}
