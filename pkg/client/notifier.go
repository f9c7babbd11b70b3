package client

import (
	"context"

	"github.com/VanGog06-SoftUni/ToDAI/internal/components/logging"
)

// Notifier receives the user-facing outcome of store operations.
type Notifier interface {
	Success(msg string)
	Failure(msg string)
}

// NopNotifier drops all notifications. It is the store default.
type NopNotifier struct{}

func (NopNotifier) Success(string) {}
func (NopNotifier) Failure(string) {}

// LogNotifier writes notifications to the application logger.
type LogNotifier struct{}

func (LogNotifier) Success(msg string) { logging.Info(context.Background(), msg) }
func (LogNotifier) Failure(msg string) { logging.Warn(context.Background(), msg) }
