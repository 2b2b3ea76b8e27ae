package config

import (
	"errors"
	"fmt"
)

// Kind classifies a ConfigError
type Kind int

const (
	// KindNotFound means no configuration file could be located.
	KindNotFound Kind = iota + 1
	// KindLoadFailed means a file was located but could not be read,
	// parsed or validated.
	KindLoadFailed
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindLoadFailed:
		return "load failed"
	default:
		return "unknown"
	}
}

// Sentinels matched by errors.Is against a *ConfigError of the same kind.
var (
	ErrNotFound   = errors.New("config not found")
	ErrLoadFailed = errors.New("config load failed")
)

// ConfigError is the only error type returned by Load.
type ConfigError struct {
	Kind Kind
	// Path is the requested path for KindNotFound (empty when no path was
	// requested) and the resolved path for KindLoadFailed.
	Path string
	// Requested reports whether the caller asked for an explicit path.
	Requested bool
	// Cause is the underlying read, parse or validation error.
	Cause error
}

func (e *ConfigError) Error() string {
	switch e.Kind {
	case KindNotFound:
		if e.Requested {
			return fmt.Sprintf("unable to find config: %s", e.Path)
		}
		return "unable to find config"
	case KindLoadFailed:
		if e.Cause != nil {
			return fmt.Sprintf("unable to load config: %s: %v", e.Path, e.Cause)
		}
		return fmt.Sprintf("unable to load config: %s", e.Path)
	default:
		return "config error"
	}
}

func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is lets errors.Is(err, ErrNotFound) and errors.Is(err, ErrLoadFailed)
// match by kind.
func (e *ConfigError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrLoadFailed:
		return e.Kind == KindLoadFailed
	}
	return false
}

func notFound(requestedPath string) *ConfigError {
	return &ConfigError{
		Kind:      KindNotFound,
		Path:      requestedPath,
		Requested: requestedPath != "",
	}
}

func loadFailed(path string, cause error) *ConfigError {
	return &ConfigError{
		Kind:  KindLoadFailed,
		Path:  path,
		Cause: cause,
	}
}

// IsNotFound reports whether err is a not-found configuration error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsLoadFailed reports whether err is a load or validation failure
func IsLoadFailed(err error) bool {
	return errors.Is(err, ErrLoadFailed)
}
