package audio

import (
	"log"
	"sort"
)

// Library resolves track and effect IDs to their descriptors. Resolutions
// through the fallback resolver are cached for the life of the process.
type Library struct {
	tracks  map[string]*Track
	effects map[string]*Effect

	// resolver is an optional fallback for IDs that were not registered
	// up front, e.g. tracks discovered on disk after startup.
	resolver func(id string) (*Track, bool)
}

// NewLibrary creates an empty library.
func NewLibrary() *Library {
	return &Library{
		tracks:  make(map[string]*Track),
		effects: make(map[string]*Effect),
	}
}

// SetResolver installs a fallback resolver for unregistered track IDs.
func (l *Library) SetResolver(fn func(id string) (*Track, bool)) {
	l.resolver = fn
}

// AddTrack registers a track under its ID, replacing any previous entry.
func (l *Library) AddTrack(t *Track) {
	if t == nil || t.ID == "" {
		log.Printf("Warning: ignoring track registration without an ID")
		return
	}
	l.tracks[t.ID] = t
}

// AddEffect registers a sound effect under its ID.
func (l *Library) AddEffect(ef *Effect) {
	if ef == nil || ef.ID == "" {
		log.Printf("Warning: ignoring effect registration without an ID")
		return
	}
	l.effects[ef.ID] = ef
}

// Track looks up a track by ID, falling back to the resolver on a miss.
func (l *Library) Track(id string) (*Track, bool) {
	if t, ok := l.tracks[id]; ok {
		return t, true
	}
	if l.resolver != nil {
		if t, ok := l.resolver(id); ok && t != nil {
			l.tracks[id] = t
			return t, true
		}
	}
	return nil, false
}

// Effect looks up a sound effect by ID.
func (l *Library) Effect(id string) (*Effect, bool) {
	ef, ok := l.effects[id]
	return ef, ok
}

// TrackIDs returns the registered track IDs in sorted order.
func (l *Library) TrackIDs() []string {
	ids := make([]string, 0, len(l.tracks))
	for id := range l.tracks {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// EffectIDs returns the registered effect IDs in sorted order.
func (l *Library) EffectIDs() []string {
	ids := make([]string, 0, len(l.effects))
	for id := range l.effects {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
