// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

const (
	// Seaplay is the canonical application identifier used for filesystem paths and CLI branding.
	Seaplay = "seaplay"

	// Version is the current application semantic version string.
	Version = "0.3.0"

	// UserAgent is sent with every outbound HTTP and WebSocket handshake.
	UserAgent = Seaplay + "/" + Version

	// Repository hosts releases and the issue tracker.
	Repository = "https://github.com/anisan-cli/seaplay"
)

// Build metadata, overridden with -ldflags "-X" at release time.
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)
