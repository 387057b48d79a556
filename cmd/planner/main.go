// Command planner ranks the objectives one side of a campaign should go
// after next and prints them as a mission plan.
//
//	planner [flags]          build a plan from the theater file
//	planner latest [flags]   print the last stored plan
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/OCAP2/planner/internal/objective"
	"github.com/OCAP2/planner/internal/storage"
	"github.com/spf13/pflag"
)

const (
	exitError    = 1
	exitGameOver = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := run(ctx, os.Args[1:], os.Stdout)
	switch {
	case err == nil, errors.Is(err, pflag.ErrHelp):
		return
	case errors.Is(err, objective.ErrNoFriendlyControlPoints):
		fmt.Fprintln(os.Stderr, "planner: side has no control points left, nothing to plan")
		stop()
		os.Exit(exitGameOver)
	case errors.Is(err, storage.ErrNotFound):
		fmt.Fprintln(os.Stderr, "planner: no stored plan for this side")
		stop()
		os.Exit(exitError)
	default:
		fmt.Fprintf(os.Stderr, "planner: %v\n", err)
		stop()
		os.Exit(exitError)
	}
}
