package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/felixgeelhaar/evmkit/internal/infrastructure/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.Execute(ctx); err != nil {
		code := 1
		var cliErr *cli.CLIError
		if errors.As(err, &cliErr) {
			fmt.Fprintf(os.Stderr, "Error: %s\n", cliErr.Error())
			if cliErr.Hint != "" {
				fmt.Fprintf(os.Stderr, "Hint: %s\n", cliErr.Hint)
			}
			code = cliErr.ExitCode
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		stop()
		os.Exit(code)
	}
}
