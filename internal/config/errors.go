package config

import "errors"

var (
	// ErrInvalidConfig indicates a config file that parsed but failed
	// validation.
	ErrInvalidConfig = errors.New("invalid config")

	// ErrWatcherClosed indicates an operation on a closed watcher.
	ErrWatcherClosed = errors.New("watcher closed")
)
