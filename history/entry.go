package history

import (
	"fmt"
	"math"
	"time"

	"github.com/anisan-cli/seaplay/util"
)

const (
	// positions this close to the start are not worth resuming
	minResume = 5.0
	// nor are positions this close to the end
	endMargin = 10.0
)

type Entry struct {
	Key               string    `json:"key"`
	Title             string    `json:"title"`
	URL               string    `json:"url"`
	MalID             int       `json:"mal_id,omitempty"`
	Episode           int       `json:"episode,omitempty"`
	Position          float64   `json:"position"`
	Duration          float64   `json:"duration"`
	WatchedPercentage float64   `json:"watched_percentage"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// KeyOf identifies a piece of media: by MAL id and episode when known, by URL otherwise.
func KeyOf(url string, malID, episode int) string {
	if malID > 0 {
		return fmt.Sprintf("mal:%d:%d", malID, episode)
	}
	return url
}

func (e *Entry) String() string {
	if e.Episode > 0 {
		return fmt.Sprintf("%s : episode %d at %s (%.0f%%)", e.Title, e.Episode, util.ClockTime(e.Position), e.WatchedPercentage)
	}
	return fmt.Sprintf("%s at %s (%.0f%%)", e.Title, util.ClockTime(e.Position), e.WatchedPercentage)
}

// Update records the latest position.
func (e *Entry) Update(position, duration float64, now time.Time) {
	e.Position = position
	e.Duration = duration
	e.UpdatedAt = now
	if duration > 0 {
		e.WatchedPercentage = math.Min(100, position/duration*100)
	}
}

// ResumeAt returns where playback of a media lasting duration seconds should start.
// Zero means from the beginning: nothing saved, barely started, finished (at least
// completion percent watched), or too close to the end.
func (e *Entry) ResumeAt(duration, completion float64) float64 {
	if e == nil || e.Position < minResume {
		return 0
	}
	if completion > 0 && e.WatchedPercentage >= completion {
		return 0
	}
	if duration > 0 && e.Position >= duration-endMargin {
		return 0
	}
	return e.Position
}
