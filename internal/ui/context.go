package ui

import (
	"os"
	"sync"

	"github.com/mattn/go-isatty"
)

var (
	contextMu      sync.RWMutex
	nonInteractive bool
)

// SetNonInteractive forces prompts and the pager off, as --non-interactive does.
func SetNonInteractive(value bool) {
	contextMu.Lock()
	defer contextMu.Unlock()
	nonInteractive = value
}

// IsInteractive reports whether metamaas may prompt or page: not forced off,
// with a terminal on both stdin and stdout.
func IsInteractive() bool {
	contextMu.RLock()
	defer contextMu.RUnlock()

	if nonInteractive {
		return false
	}

	return isTerminal(os.Stdin) && isTerminal(os.Stdout)
}

// IsNonInteractive is the negation of IsInteractive.
func IsNonInteractive() bool {
	return !IsInteractive()
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// RunContext is what a command knows about how it was run.
type RunContext struct {
	Interactive bool
	HasConfig   bool
	ConfigPath  string
}

// NewRunContext captures the current interactivity.
func NewRunContext() *RunContext {
	return &RunContext{
		Interactive: IsInteractive(),
	}
}

// WithConfig records the resolved configuration path on the context.
func (c *RunContext) WithConfig(configPath string) *RunContext {
	c.HasConfig = configPath != ""
	c.ConfigPath = configPath
	return c
}
