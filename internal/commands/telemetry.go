package commands

import (
	"context"
	"time"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-pagekit/internal/logging"
	"github.com/goliatone/go-pagekit/pkg/interfaces"
)

// TelemetryStatus is the outcome of one command execution.
type TelemetryStatus string

const (
	TelemetryStatusSuccess      TelemetryStatus = "success"
	TelemetryStatusFailed       TelemetryStatus = "failed"
	TelemetryStatusContextError TelemetryStatus = "context_error"
)

// TelemetryInfo is handed to telemetry callbacks after each execution.
type TelemetryInfo struct {
	Command   string
	Operation string
	Fields    map[string]any
	Duration  time.Duration
	Error     error
	Status    TelemetryStatus
	Logger    interfaces.Logger
}

// Event names the log entry for the outcome, e.g. pages.publish.success.
// Handlers without an operation fall back to the command type.
func (info TelemetryInfo) Event() string {
	prefix := info.Operation
	if prefix == "" {
		prefix = info.Command
	}
	if prefix == "" {
		prefix = "command"
	}
	return prefix + "." + string(info.Status)
}

// Telemetry is an optional callback invoked after command execution.
type Telemetry[T command.Message] func(ctx context.Context, msg T, info TelemetryInfo)

// DefaultTelemetry logs outcomes with their duration on logger.
func DefaultTelemetry[T command.Message](logger interfaces.Logger) Telemetry[T] {
	if logger == nil {
		logger = logging.NoOp()
	}
	return func(ctx context.Context, _ T, info TelemetryInfo) {
		logOutcome(logging.WithFields(logger.WithContext(ctx), info.Fields), info, "duration_ms", info.Duration.Milliseconds())
	}
}

func logOutcome(logger interfaces.Logger, info TelemetryInfo, args ...any) {
	if info.Status == TelemetryStatusSuccess {
		logger.Info(info.Event(), args...)
		return
	}
	logger.Error(info.Event(), append(args, "error", info.Error)...)
}
