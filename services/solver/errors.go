// Copyright (C) 2025 Oxbow Labs (eng@oxbowlabs.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package solver exposes the river crossing solver as a service.
//
// The package wraps the search engine and the river domain behind a
// Service type that handles request validation, result caching, and
// trace collection. The gin handlers in this package adapt the Service
// to the REST surface served by the wayfind daemon.
//
// # Thread Safety
//
// Service and Handlers are safe for concurrent use. Each solve runs on
// its own engine instance; only the result cache is shared, and it is
// internally synchronized.
//
// # Lifecycle
//
// Create a Service with NewService, optionally call Warmup once at
// startup to prime the cache and mark the service ready, then share it
// across handlers for the life of the process. No shutdown is needed.
package solver

import "errors"

var (
	// ErrInvalidStart indicates the requested start position names a
	// bank that could not be parsed.
	ErrInvalidStart = errors.New("invalid start position")

	// ErrSolveTimeout indicates a solve exceeded the configured time
	// budget.
	ErrSolveTimeout = errors.New("solve timed out")

	// ErrNilContext indicates a nil context was passed to a service
	// method.
	ErrNilContext = errors.New("context must not be nil")
)
