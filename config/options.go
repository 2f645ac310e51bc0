package config

import (
	"time"

	"github.com/anisan-cli/seaplay/key"
	"github.com/anisan-cli/seaplay/seek"
	"github.com/anisan-cli/seaplay/transport"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Seek builds continuous seek options from the seek.* keys.
func Seek() seek.Options {
	opts := seek.DefaultOptions()

	if speeds := viper.GetIntSlice(key.SeekSpeeds); len(speeds) > 0 {
		opts.Speeds = lo.Map(speeds, func(s int, _ int) seek.Speed { return seek.Speed(s) })
	}
	opts.DefaultSpeed = seek.Speed(viper.GetInt(key.SeekDefaultSpeed))
	opts.Interval = time.Duration(viper.GetInt(key.SeekIntervalMs)) * time.Millisecond
	opts.Resume = seek.ParseResumePolicy(viper.GetString(key.SeekResumePolicy))

	return opts
}

// Transport builds reconnect options from the transport.* keys.
func Transport() transport.Options {
	opts := transport.DefaultOptions()

	opts.MaxAttempts = viper.GetInt(key.TransportMaxAttempts)
	base := time.Duration(viper.GetInt(key.TransportBackoffMs)) * time.Millisecond
	if base > 0 {
		opts.Backoff = transport.ParseBackoff(viper.GetString(key.TransportBackoff), base)
	}

	return opts
}

// ResyncInterval is how often the control panel re-renders on its own. Zero disables it.
func ResyncInterval() time.Duration {
	return time.Duration(viper.GetInt(key.SurfaceResyncIntervalMs)) * time.Millisecond
}

// Jumps returns the short and long jump sizes in seconds.
func Jumps() (short, long float64) {
	return float64(viper.GetInt(key.SeekJumpShort)), float64(viper.GetInt(key.SeekJumpLong))
}
