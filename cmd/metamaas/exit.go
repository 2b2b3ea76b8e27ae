package main

import (
	"github.com/nvandessel/metamaas/internal/config"
)

// Exit codes for metamaas
const (
	ExitSuccess      = 0
	ExitGeneralError = 1
	ExitNotFound     = 2
	ExitLoadFailed   = 3
)

// exitCode maps an error to the process exit status.
func exitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case config.IsNotFound(err):
		return ExitNotFound
	case config.IsLoadFailed(err):
		return ExitLoadFailed
	default:
		return ExitGeneralError
	}
}
