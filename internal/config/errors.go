package config

import "errors"

var (
	// ErrNotFound is returned by Load when none of the candidate search
	// paths exists on disk.
	ErrNotFound = errors.New("no configuration file found")
)
