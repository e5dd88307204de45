package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

const (
	codeValidation = "PAGEKIT_COMMAND_INVALID"
	codeCanceled   = "PAGEKIT_COMMAND_CANCELED"
	codeTimeout    = "PAGEKIT_COMMAND_TIMEOUT"
	codeContext    = "PAGEKIT_COMMAND_CONTEXT"
	codeExecute    = "PAGEKIT_COMMAND_FAILED"
)

// tag wraps err once; errors already carrying a go-errors category keep it.
func tag(err error, category goerrors.Category, message, code string) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, category, message).WithTextCode(code)
}

func wrapValidationError(err error) error {
	return tag(err, goerrors.CategoryValidation, "command message is invalid", codeValidation)
}

func wrapContextError(err error) error {
	switch {
	case errors.Is(err, context.Canceled):
		return tag(err, goerrors.CategoryCommand, "command canceled", codeCanceled)
	case errors.Is(err, context.DeadlineExceeded):
		return tag(err, goerrors.CategoryCommand, "command timed out", codeTimeout)
	default:
		return tag(err, goerrors.CategoryCommand, "command context error", codeContext)
	}
}

func wrapExecuteError(err error) error {
	return tag(err, goerrors.CategoryCommand, "command failed", codeExecute)
}

// ValidationFailure marks a domain error as a validation failure so callers
// can map it to a client error.
func ValidationFailure(err error, textCode string) error {
	if err == nil {
		return nil
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, err.Error()).WithTextCode(textCode)
}
