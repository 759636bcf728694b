package service

import "errors"

var (
	// ErrNoSession means the operation was called without an authenticated
	// session. Operations report it instead of panicking.
	ErrNoSession = errors.New("no active session")

	// ErrPersistFailed means the in-memory change was applied but the write
	// to the store failed. The cache is not rolled back.
	ErrPersistFailed = errors.New("failed to persist changes")
)
