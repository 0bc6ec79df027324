// Command lifeline lays out, renders and serves sequence diagrams.
package main

import (
	"context"
	stderrors "errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/lifeline/internal/cli"
	"github.com/matzehuels/lifeline/pkg/errors"
)

// exitInterrupted follows the shell convention of 128 + SIGINT.
const exitInterrupted = 130

var errStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cli.New(os.Stderr, cli.LogInfo).RootCommand().ExecuteContext(ctx)
	stop()

	switch {
	case err == nil:
	case stderrors.Is(err, context.Canceled):
		os.Exit(exitInterrupted)
	default:
		os.Stderr.WriteString(errStyle.Render("error:") + " " + errors.UserMessage(err) + "\n")
		os.Exit(1)
	}
}
