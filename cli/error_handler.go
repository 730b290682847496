package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/grovetools/termlaunch/errors"
)

// Exit statuses by error class. Option-level mistakes get the
// conventional usage status; everything else is a plain failure.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// ErrorHandler renders structured launch errors as user-facing messages.
type ErrorHandler struct {
	Out     io.Writer
	Verbose bool
}

// NewErrorHandler creates a new error handler writing to out.
func NewErrorHandler(out io.Writer, verbose bool) *ErrorHandler {
	return &ErrorHandler{
		Out:     out,
		Verbose: verbose,
	}
}

// Handle prints a user-friendly message for err and returns the exit
// status the process should terminate with.
func (h *ErrorHandler) Handle(err error) int {
	if err == nil {
		return ExitOK
	}

	switch errors.GetCode(err) {
	case errors.ErrCodeBadValue:
		launchErr, _ := err.(*errors.LaunchError)
		if launchErr != nil && launchErr.Details["option"] != nil {
			fmt.Fprintf(h.Out, "Error parsing option %s: %s\n", launchErr.Details["option"], launchErr.Message)
		} else {
			fmt.Fprintf(h.Out, "Error parsing options: %v\n", err)
		}
		return h.details(err, ExitUsage)

	case errors.ErrCodeUnknownOption, errors.ErrCodeUsageConflict:
		fmt.Fprintf(h.Out, "Error: %s\n", message(err))
		fmt.Fprintf(h.Out, "Run with --help to see the available options.\n")
		return h.details(err, ExitUsage)

	case errors.ErrCodeProfileNotFound:
		launchErr, _ := err.(*errors.LaunchError)
		fmt.Fprintf(h.Out, "Error: %s\n", message(err))
		if launchErr != nil && launchErr.Details["profile"] != nil {
			fmt.Fprintf(h.Out, "Check the profile list in your settings file.\n")
		}
		return h.details(err, ExitFailure)

	case errors.ErrCodeInvalidConfigFile, errors.ErrCodeIncompatibleConfigFile:
		fmt.Fprintf(h.Out, "Error loading configuration: %s\n", message(err))
		return h.details(err, ExitFailure)

	default:
		fmt.Fprintf(h.Out, "Error: %v\n", err)
		return h.details(err, ExitFailure)
	}
}

func (h *ErrorHandler) details(err error, status int) int {
	if !h.Verbose {
		return status
	}
	var launchErr *errors.LaunchError
	if le, ok := err.(*errors.LaunchError); ok {
		launchErr = le
	}
	if launchErr != nil && len(launchErr.Details) > 0 {
		if data, jerr := json.MarshalIndent(launchErr.Details, "", "  "); jerr == nil {
			fmt.Fprintf(h.Out, "\nError details:\n%s\n", data)
		}
	}
	return status
}

// message returns the human-readable part of a structured error,
// falling back to Error() for plain ones.
func message(err error) string {
	if launchErr, ok := err.(*errors.LaunchError); ok {
		return launchErr.Message
	}
	return err.Error()
}
