// SPDX-License-Identifier: MPL-2.0

// Package processor hosts named units of work that read their inputs from, and
// publish their outputs to, a shared key/value environment.
package processor

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
)

// ErrProcessorNotRegistered is returned when a processor name has no registration.
var ErrProcessorNotRegistered = errors.New("processor not registered")

type (
	// InputVariable declares an input a processor reads from the environment.
	InputVariable struct {
		// Required inputs must be present once defaults have been applied.
		Required bool
		// Default is copied into the environment when the input is absent.
		// A nil Default means the input has no default.
		Default any
		// Description is shown in help output.
		Description string
	}

	// OutputVariable declares an output a processor writes to the environment.
	OutputVariable struct {
		Description string
	}

	// Processor is a named unit of work run by the host.
	Processor interface {
		// Name returns the processor name used on the command line.
		Name() string
		// Description returns a one-line summary.
		Description() string
		// InputVariables returns the declared inputs keyed by name.
		InputVariables() map[string]InputVariable
		// OutputVariables returns the declared outputs keyed by name.
		OutputVariables() map[string]OutputVariable
		// Main performs the work, reading inputs from and writing outputs to env.
		Main(ctx context.Context, env Env) error
	}

	// OutputFunc receives progress messages from processors.
	OutputFunc func(format string, args ...any)

	// MissingInputError is returned by Run when a required input is absent.
	MissingInputError struct {
		Processor string
		Input     string
	}

	// ProcessorError wraps a failure returned by a processor's Main.
	//
	//nolint:revive // ProcessorError reads better at call sites than Error
	ProcessorError struct {
		Processor string
		Err       error
	}

	// Registry holds processors by name.
	Registry struct {
		processors map[string]Processor
	}
)

// Error implements the error interface.
func (e *MissingInputError) Error() string {
	return fmt.Sprintf("%s: required input %q is missing", e.Processor, e.Input)
}

// Error implements the error interface.
func (e *ProcessorError) Error() string {
	return fmt.Sprintf("%s: %v", e.Processor, e.Err)
}

// Unwrap returns the underlying error.
func (e *ProcessorError) Unwrap() error { return e.Err }

// Discard is an OutputFunc that drops every message.
func Discard(string, ...any) {}

// Run applies p's input defaults to env, verifies required inputs and calls Main.
// Inputs are checked in name order so the reported missing input is stable.
func Run(ctx context.Context, p Processor, env Env) error {
	if env == nil {
		return fmt.Errorf("%s: nil environment", p.Name())
	}

	inputs := p.InputVariables()
	for _, name := range slices.Sorted(maps.Keys(inputs)) {
		in := inputs[name]
		if _, ok := env[name]; ok {
			continue
		}
		if in.Default != nil {
			env[name] = in.Default
			continue
		}
		if in.Required {
			return &MissingInputError{Processor: p.Name(), Input: name}
		}
	}

	if err := p.Main(ctx, env); err != nil {
		return &ProcessorError{Processor: p.Name(), Err: err}
	}
	return nil
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{processors: make(map[string]Processor)}
}

// Register adds p under its own name, replacing any earlier registration.
func (r *Registry) Register(p Processor) {
	r.processors[p.Name()] = p
}

// Get returns the processor registered under name.
func (r *Registry) Get(name string) (Processor, error) {
	p, ok := r.processors[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProcessorNotRegistered, name)
	}
	return p, nil
}

// Names returns the registered processor names in sorted order.
func (r *Registry) Names() []string {
	return slices.Sorted(maps.Keys(r.processors))
}
