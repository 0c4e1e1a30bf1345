package domain

import "time"

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// SecureFilePermissions is the permission for sensitive files (rw-------)
	SecureFilePermissions = 0o600
)

// Timeout and duration constants
const (
	// DefaultHTTPClientTimeout is the timeout for provider HTTP requests
	DefaultHTTPClientTimeout = 60 * time.Second
	// DefaultSyncCooldown is the minimum interval between sync attempts
	DefaultSyncCooldown = 30 * time.Second
)

// History constants
const (
	// DefaultMaxMessages is the maximum retained conversation length
	DefaultMaxMessages = 100
	// DefaultWindowSize bounds the message list sent to a provider
	DefaultWindowSize = 30
	// DefaultWindowStride samples every Nth older message into the window
	DefaultWindowStride = 3
)

// Memory constants
const (
	// DefaultMaxMemories bounds the memory collection; oldest entries evict first
	DefaultMaxMemories = 200
	// DefaultMinRelevance is the score threshold below which results are dropped
	DefaultMinRelevance = 0.1
	// DefaultSearchLimit caps memory search results when no limit is given
	DefaultSearchLimit = 5
	// RecencyBoostCap is the maximum recency contribution to a relevance score
	RecencyBoostCap = 0.2
	// RecencyWindow is the span over which the recency boost decays to zero
	RecencyWindow = 30 * 24 * time.Hour
)
