package transport

import (
	"math"
	"math/rand/v2"
	"time"
)

// Backoff yields the delay before reconnect attempt n, counted from 1.
type Backoff interface {
	Delay(attempt int) time.Duration
}

// Fixed waits the same duration before every attempt.
type Fixed time.Duration

func (f Fixed) Delay(int) time.Duration {
	return time.Duration(f)
}

// Exponential grows the delay by Factor per attempt, capped at Max,
// with up to Jitter (0-1) of the delay added at random.
type Exponential struct {
	Min    time.Duration
	Max    time.Duration
	Factor float64
	Jitter float64
}

func (e Exponential) Delay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}

	factor := e.Factor
	if factor < 1 {
		factor = 2
	}

	delay := float64(e.Min) * math.Pow(factor, float64(attempt-1))
	if e.Max > 0 && delay > float64(e.Max) {
		delay = float64(e.Max)
	}

	if e.Jitter > 0 {
		delay += delay * math.Min(e.Jitter, 1) * rand.Float64()
	}

	return time.Duration(delay)
}

// ParseBackoff builds the backoff named by kind ("fixed" or "exponential") around base.
func ParseBackoff(kind string, base time.Duration) Backoff {
	if kind == "exponential" {
		return Exponential{Min: base, Max: 30 * base, Factor: 2, Jitter: 0.2}
	}
	return Fixed(base)
}
