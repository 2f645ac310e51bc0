// Package history remembers where playback stopped so the next session can resume there.
package history

import (
	"sync"

	"github.com/anisan-cli/seaplay/filesystem"
	"github.com/anisan-cli/seaplay/where"
	"github.com/metafates/gache"
)

var (
	cacherOnce sync.Once
	cacher     *gache.Cache[map[string]*Entry]
)

// store is opened lazily so tests can swap the filesystem first.
func store() *gache.Cache[map[string]*Entry] {
	cacherOnce.Do(func() {
		cacher = gache.New[map[string]*Entry](&gache.Options{
			Path:       where.History(),
			FileSystem: &filesystem.GacheFs{},
		})
	})
	return cacher
}

// Get returns every saved entry keyed by Entry.Key.
func Get() (map[string]*Entry, error) {
	cached, expired, err := store().Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return make(map[string]*Entry), nil
	}
	return cached, nil
}

// Find returns the entry saved under key, if any.
func Find(key string) (*Entry, bool, error) {
	saved, err := Get()
	if err != nil {
		return nil, false, err
	}
	entry, ok := saved[key]
	return entry, ok, nil
}

// Save stores entry, replacing the previous record for its key.
// The watched percentage never decreases, so re-watching does not undo completion.
func Save(entry *Entry) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	if existing, ok := saved[entry.Key]; ok && existing.WatchedPercentage > entry.WatchedPercentage {
		entry.WatchedPercentage = existing.WatchedPercentage
	}

	stored := *entry
	saved[entry.Key] = &stored
	return store().Set(saved)
}

// Remove deletes the entry saved under key.
func Remove(key string) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	delete(saved, key)
	return store().Set(saved)
}

// Clear deletes every entry.
func Clear() error {
	return store().Set(make(map[string]*Entry))
}
