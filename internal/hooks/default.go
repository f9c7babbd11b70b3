package hooks

import (
	"context"
	"log"
)

func init() {
	if err := RegisterHook("log_startup", BeforeStart, func(ctx context.Context) error {
		log.Println("Application is starting...")
		return nil
	}, 100); err != nil {
		log.Printf("Failed to register default hook: %v", err)
	}

	if err := RegisterHook("log_started", AfterStart, func(ctx context.Context) error {
		log.Println("Application started successfully")
		return nil
	}, 100); err != nil {
		log.Printf("Failed to register default hook: %v", err)
	}

	if err := RegisterHook("log_shutdown", BeforeShutdown, func(ctx context.Context) error {
		log.Println("Application is shutting down...")
		return nil
	}, 100); err != nil {
		log.Printf("Failed to register default hook: %v", err)
	}

	if err := RegisterHook("log_shutdown_complete", AfterShutdown, func(ctx context.Context) error {
		log.Println("Application shutdown completed")
		return nil
	}, 100); err != nil {
		log.Printf("Failed to register default hook: %v", err)
	}
}

var globalHookManager = NewManager()

// RegisterHook registers a hook on the global manager.
func RegisterHook(name string, phase Phase, function HookFunc, priority int) error {
	hook := &Hook{
		Name:     name,
		Phase:    phase,
		Function: function,
		Priority: priority,
	}
	return globalHookManager.Register(hook)
}

// ExecuteHooks executes all global hooks of the given phase.
func ExecuteHooks(ctx context.Context, phase Phase) error {
	return globalHookManager.Execute(ctx, phase)
}

func GetGlobalHookManager() *Manager {
	return globalHookManager
}
