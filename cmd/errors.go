package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/viper"
	"github.com/tagespoet/tagespoet/internal/composer"
	"github.com/tagespoet/tagespoet/internal/util"
	"github.com/tagespoet/tagespoet/store"
)

// Exit codes
const (
	exitError  = 1
	exitNoPoem = 2
	exitLocked = 3
)

// errOut is where user-facing errors go. Tests replace it.
var errOut io.Writer = os.Stderr

// HandleFatalError handles unrecoverable errors that should terminate the application.
func HandleFatalError(userMsg string, technicalErr error) {
	PrintError(userMsg, technicalErr)
	os.Exit(exitCode(technicalErr))
}

// PrintError prints an error message without exiting, allowing for recovery.
// In verbose mode the technical error replaces the user message.
func PrintError(userMsg string, technicalErr error) {
	if viper.GetBool("verbose") && technicalErr != nil {
		fmt.Fprintf(errOut, "Error: %v\n", technicalErr)
	} else {
		fmt.Fprintln(errOut, userMsg)
	}
}

// LogError records an error at debug level; it is only visible with --verbose.
func LogError(msg string, err error) {
	if err != nil {
		slog.Debug(msg, "error", err)
		return
	}
	slog.Debug(msg)
}

// userMessage turns known failures into one-line explanations.
func userMessage(err error) string {
	switch {
	case errors.Is(err, composer.ErrPoolCeilingExceeded):
		return "No poem found within the keyword ceiling. Try again with more articles or a larger composer.keywords.max."
	case errors.Is(err, store.ErrRunInProgress):
		return "Another compose run is in progress."
	case errors.Is(err, store.ErrPoemNotFound):
		return "No poem stored for that period."
	case errors.Is(err, util.ErrNotFound), errors.Is(err, util.ErrAmbiguousID):
		return err.Error()
	case errors.Is(err, composer.ErrInvalidConfig):
		return fmt.Sprintf("Invalid composer configuration: %v", err)
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, composer.ErrPoolCeilingExceeded):
		return exitNoPoem
	case errors.Is(err, store.ErrRunInProgress):
		return exitLocked
	default:
		return exitError
	}
}
