package config

import "os"

// Environment is the slice of process state the Locator depends on.
// Tests supply their own implementation instead of touching the real
// process environment.
type Environment interface {
	// LookupEnv returns the value of an environment variable and whether it is set.
	LookupEnv(key string) (string, bool)

	// Getwd returns the current working directory.
	Getwd() (string, error)

	// UserHomeDir returns the invoking user's home directory.
	UserHomeDir() (string, error)
}

// OSEnvironment reads from the running process.
type OSEnvironment struct{}

// LookupEnv wraps os.LookupEnv.
func (OSEnvironment) LookupEnv(key string) (string, bool) {
	return os.LookupEnv(key)
}

// Getwd wraps os.Getwd.
func (OSEnvironment) Getwd() (string, error) {
	return os.Getwd()
}

// UserHomeDir wraps os.UserHomeDir.
func (OSEnvironment) UserHomeDir() (string, error) {
	return os.UserHomeDir()
}
