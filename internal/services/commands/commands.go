package commands

import (
	"context"
	"sync"
)

type Handler func(ctx context.Context, args string) error

// CommandController dispatches named commands to registered handlers.
// Features register the commands they consume; unknown commands are ignored
// so several subscribers can share the same event stream.
type CommandController interface {
	HandleCommand(ctx context.Context, name string, args string) error
	AddCommand(name string, handler Handler)
}

type CommandControllerImpl struct {
	mu       sync.RWMutex
	commands map[string]Handler
}

func NewCommandController() CommandController {
	return &CommandControllerImpl{
		commands: make(map[string]Handler),
	}
}

func (c *CommandControllerImpl) HandleCommand(ctx context.Context, name string, args string) error {
	c.mu.RLock()
	handler, exists := c.commands[name]
	c.mu.RUnlock()
	if !exists {
		return nil
	}
	return handler(ctx, args)
}

func (c *CommandControllerImpl) AddCommand(name string, handler Handler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.commands[name] = handler
}
