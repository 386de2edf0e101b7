// Package main provides the CLI entrypoint for accessor-generator.
//
// accessor-generator is a go:generate tool that:
//   - Parses Go packages (AST + go/types) and finds structs marked with
//     //accessor:derive(...) directives
//   - Plans accessor and mutator functions per field, honoring
//     //accessor:getters(...) and //accessor:setters(...) options
//   - Writes one gofmt'ed accessors_gen.go per package
//
// Typical use, in a package source file:
//
//	//go:generate go run accessor-generator/cmd/accessor-generator gen .
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a := newApp(os.Stdout, os.Stderr)

	err := a.rootCommand().ExecuteContext(ctx)
	if err != nil {
		if !errors.Is(err, errStale) {
			a.log.Error(err.Error())
		}

		stop()
		os.Exit(1)
	}
}
