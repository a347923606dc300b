// Package handler defines the contract between routed intents and the
// domain handlers that answer them. Handlers are external collaborators:
// market-data fetchers, calculators, anything that turns extracted
// parameters into structured fields. The core only routes to them and
// formats what they return.
package handler

import (
	"context"
	"errors"
	"fmt"
	"sort"
)

// Result is the structured output of a handler: field name to value.
type Result map[string]any

var (
	// ErrNotRegistered reports an intent with no handler. It is the same
	// failure class as a handler error; the response layer degrades both
	// to the handler-unavailable tier.
	ErrNotRegistered = errors.New("no handler registered for intent")

	// ErrUnavailable wraps any error a handler returns, including context
	// cancellation.
	ErrUnavailable = errors.New("handler unavailable")
)

// Handler executes a routed intent with its extracted parameters.
type Handler interface {
	Execute(ctx context.Context, params map[string]string) (Result, error)
}

// Func adapts a plain function to Handler.
type Func func(ctx context.Context, params map[string]string) (Result, error)

func (f Func) Execute(ctx context.Context, params map[string]string) (Result, error) {
	return f(ctx, params)
}

// Registry maps intents to handlers. Populate it during startup; it is
// read-only once queries flow.
type Registry struct {
	handlers map[string]Handler
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// Register binds a handler to an intent, replacing any previous binding.
func (r *Registry) Register(intent string, h Handler) {
	r.handlers[intent] = h
}

// Lookup returns the handler bound to intent.
func (r *Registry) Lookup(intent string) (Handler, bool) {
	h, ok := r.handlers[intent]
	return h, ok
}

// Execute runs the handler bound to intent. A missing binding yields
// ErrNotRegistered; a handler failure is wrapped in ErrUnavailable with the
// cause preserved.
func (r *Registry) Execute(ctx context.Context, intent string, params map[string]string) (Result, error) {
	h, ok := r.handlers[intent]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotRegistered, intent)
	}
	res, err := h.Execute(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrUnavailable, intent, err)
	}
	return res, nil
}

// Intents returns the registered intents in sorted order.
func (r *Registry) Intents() []string {
	intents := make([]string, 0, len(r.handlers))
	for intent := range r.handlers {
		intents = append(intents, intent)
	}
	sort.Strings(intents)
	return intents
}

// Len returns the number of registered handlers.
func (r *Registry) Len() int {
	return len(r.handlers)
}
