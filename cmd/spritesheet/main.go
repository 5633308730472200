package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/hedin-hiervard/spritesheet-creator/internal/cli"
	spriteerrors "github.com/hedin-hiervard/spritesheet-creator/pkg/errors"
)

// Exit codes besides 0 and 1.
const (
	exitConfig    = 2   // bad option or config value
	exitInterrupt = 130 // SIGINT, by shell convention
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cli.New(os.Stderr, cli.LogInfo).RootCommand().ExecuteContext(ctx)
	stop()
	os.Exit(exitCode(os.Stderr, err))
}

// exitCode reports err on w and returns the process exit status for it.
func exitCode(w io.Writer, err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		return exitInterrupt
	}
	fmt.Fprintln(w, "Error:", err)
	if spriteerrors.IsConfiguration(err) {
		return exitConfig
	}
	return 1
}
