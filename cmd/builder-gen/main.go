// Package main is the entry point for the builder-gen CLI.
//
// builder-gen reads Go struct declarations and writes, for each selected
// struct, a builder type with chainable setters, appenders for slice fields
// annotated with each = "name", and a Build method that fails on the first
// required field left unset.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"builder-gen/cmd/builder-gen/internal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := internal.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
