package server

import "time"

const (
	readTimeout = 10 * time.Second
	// writeTimeout covers a cold first page: a fast fetch plus one full
	// browser session.
	writeTimeout = 2 * time.Minute
	idleTimeout  = 60 * time.Second
)

// shutdownTimeout remains a var for tests to override.
var shutdownTimeout = 10 * time.Second
