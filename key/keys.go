// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Media Playback - these keys select and tune the external video player.
const (
	Player                     = "player.default"
	PlayerCompletionPercentage = "player.completion_percentage"
	PlayerResume               = "player.resume"
)

// Intro/Outro Skipping - these keys govern AniSkip lookups and automatic skipping.
const (
	Aniskip         = "player.aniskip"
	PlayerAutoSkip  = "player.auto_skip"
	AniskipEndpoint = "player.aniskip_endpoint"
)

// Continuous Seek - these keys configure fast-forward/rewind speeds and jump sizes.
const (
	SeekSpeeds       = "seek.speeds"
	SeekDefaultSpeed = "seek.default_speed"
	SeekIntervalMs   = "seek.interval_ms"
	SeekResumePolicy = "seek.resume_policy"
	SeekJumpShort    = "seek.jump_short"
	SeekJumpLong     = "seek.jump_long"
)

// Control Surface - these keys tune the rendered control panel.
const (
	SurfaceResyncIntervalMs = "surface.resync_interval_ms"
)

// Remote Control - these keys enable the WebSocket remote control link.
const (
	RemoteEnable  = "remote.enable"
	RemoteAddress = "remote.address"
)

// Transport Resilience - these keys bound automatic reconnection.
const (
	TransportMaxAttempts = "transport.max_attempts"
	TransportBackoffMs   = "transport.backoff_ms"
	TransportBackoff     = "transport.backoff"
)

// History Tracking - these keys configure the persistence of watch continuity.
const (
	HistorySaveOnWatch = "history.save_on_watch"
)

// Client Settings - these keys select the persisted settings profile.
const (
	SettingsProfile = "settings.profile"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern the non-TUI application behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
