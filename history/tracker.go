package history

import (
	"time"

	"github.com/anisan-cli/seaplay/log"
)

// Tracker saves an entry as playback progresses, at most once per Every.
type Tracker struct {
	Entry *Entry
	Every time.Duration

	now   func() time.Time
	saved time.Time
	dirty bool
}

func NewTracker(entry *Entry, every time.Duration) *Tracker {
	return &Tracker{Entry: entry, Every: every, now: time.Now}
}

// Observe records a position and saves when the last save is old enough.
func (t *Tracker) Observe(position, duration float64) {
	now := t.now()
	t.Entry.Update(position, duration, now)
	t.dirty = true

	if now.Sub(t.saved) >= t.Every {
		t.Flush()
	}
}

// Flush saves any unsaved progress.
func (t *Tracker) Flush() {
	if !t.dirty {
		return
	}

	if err := Save(t.Entry); err != nil {
		log.Warnf("history: save %s: %s", t.Entry.Key, err)
		return
	}
	t.saved = t.now()
	t.dirty = false
}
