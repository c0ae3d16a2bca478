package cli

import (
	"context"
	stderrors "errors"

	"github.com/isplab/citegraph/pkg/errors"
)

// Exit statuses returned by ExitCode.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitUsage       = 2
	ExitInterrupted = 130
)

// ExitCode maps an error returned by the root command to a process status.
// Errors caused by the user's input or flags exit with ExitUsage so scripts
// can tell them apart from pipeline failures.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	if stderrors.Is(err, context.Canceled) {
		return ExitInterrupted
	}
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidPalette,
		errors.ErrCodeInvalidOption, errors.ErrCodeInvalidPath, errors.ErrCodeInvalidEdge,
		errors.ErrCodeFileNotFound, errors.ErrCodeEmptyGraph:
		return ExitUsage
	}
	return ExitFailure
}
