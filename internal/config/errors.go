package config

import "errors"

var (
	// ErrNoTargetURLs is returned when no target URLs are configured
	ErrNoTargetURLs = errors.New("no target URLs configured")
	// ErrInvalidTimeout is returned when request timeout is not greater than 0
	ErrInvalidTimeout = errors.New("request_timeout must be greater than 0")
	// ErrEmptyDatabasePath is returned when database path is empty
	ErrEmptyDatabasePath = errors.New("database_path cannot be empty")
	// ErrEmptySnapshotDir is returned when the snapshot directory is empty
	ErrEmptySnapshotDir = errors.New("snapshot_dir cannot be empty")
)
