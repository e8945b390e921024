package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	transmission "github.com/jfxdev/go-transmission"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newRootCommand()
	if err := cmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, describeError(err))
		}
		stop()
		os.Exit(1)
	}
}

// describeError prefixes transport failures with a hint about their cause.
// Daemon-reported failures, errors that already carry a code and anything
// unclassifiable are printed as they are.
func describeError(err error) string {
	var failure *failureError
	var clientErr *transmission.ClientError
	if errors.As(err, &failure) || errors.As(err, &clientErr) {
		return err.Error()
	}
	classified := transmission.ClassifyError(err)
	if classified == nil || classified.Code == transmission.ErrorCodeUnknown {
		return err.Error()
	}
	return fmt.Sprintf("%s: %v", classified.Message, err)
}
