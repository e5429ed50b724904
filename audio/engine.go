package audio

import (
	"log"
	"math"
	"strings"

	"github.com/tanema/gween"
)

// State describes what the engine is doing with its channels.
type State int

const (
	StateIdle State = iota
	StatePlaying
	StateTransitioning
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StatePlaying:
		return "Playing"
	case StateTransitioning:
		return "Transitioning"
	}
	return "Unknown"
}

// Engine is the music transition engine. It owns two playback channels and
// sequences fades and channel swaps according to the requested transition,
// while a per-tick loop watcher restarts or stops playback based on the
// current track's loop mode.
//
// The engine is single-threaded: all state changes happen inside Tick or a
// request call, and the caller is expected to drive both from the same
// update loop.
type Engine struct {
	library *Library

	channels [2]channel
	active   int

	current   *Track
	loopsDone int
	task      *transition

	volume float64
}

// NewEngine creates an engine with both channels empty. The library may be
// nil when tracks are passed to RequestTransition directly.
func NewEngine(library *Library) *Engine {
	return &Engine{
		library: library,
		volume:  1.0,
	}
}

func (e *Engine) activeChannel() *channel  { return &e.channels[e.active] }
func (e *Engine) standbyChannel() *channel { return &e.channels[1-e.active] }

// swap exchanges the active/standby labels. No channel data moves.
func (e *Engine) swap() { e.active = 1 - e.active }

// target is the effective playback volume for a track. A zero VolumeScale
// means full volume.
func (e *Engine) target(t *Track) float64 {
	scale := t.VolumeScale
	if scale <= 0 {
		scale = 1.0
	}
	return scale * e.volume
}

// RequestTransition cancels any in-flight transition and starts moving
// playback to the given track. A nil track logs a warning and leaves the
// prior state untouched.
func (e *Engine) RequestTransition(t *Track, policy Transition) {
	if t == nil {
		log.Printf("Warning: music transition requested with no track")
		return
	}

	// Preempt the in-flight transition, if any. Channel volumes stay
	// exactly where its last step left them.
	e.task = nil

	switch policy {
	case StopAndStart:
		e.stopAndStart(t, false)
	case StopAndFadeIn:
		e.stopAndStart(t, true)
	case FadeOutThenStart:
		e.fadeOutThenStart(t)
	case Crossfade:
		e.crossfade(t)
	default:
		log.Printf("Warning: unknown music transition %d, using FadeOutThenStart", policy)
		e.fadeOutThenStart(t)
	}
}

// stopAndStart cuts the active channel and starts the new track on the other
// one. With fade set, and the track's fade-in enabled, the new channel ramps
// up from silence instead of starting at full target volume.
func (e *Engine) stopAndStart(t *Track, fade bool) {
	e.activeChannel().clear()

	standby := e.standbyChannel()
	if !standby.assign(t) {
		e.current = nil
		return
	}
	e.swap()

	ch := e.activeChannel()
	target := e.target(t)
	e.current = t
	e.loopsDone = 0

	if fadeIn := t.fadeInSeconds(); fade && fadeIn > 0 {
		ch.setVolume(0)
		ch.play()
		e.task = &transition{
			policy: StopAndFadeIn,
			in:     gween.New(0, float32(target), float32(fadeIn), t.easing()),
			inCh:   ch,
		}
		return
	}

	ch.setVolume(target)
	ch.play()
}

// fadeOutThenStart ramps the active channel to silence over the current
// track's fade-out duration, stops it, and only then starts the new track.
func (e *Engine) fadeOutThenStart(t *Track) {
	ch := e.activeChannel()
	if e.current == nil || !ch.isPlaying() || e.current.FadeOutSeconds <= 0 {
		// Nothing audible to fade out.
		e.stopAndStart(t, true)
		return
	}

	e.task = &transition{
		policy: FadeOutThenStart,
		next:   t,
		out:    gween.New(float32(ch.volume), 0, float32(e.current.FadeOutSeconds), e.current.easing()),
		outCh:  ch,
	}
}

// startNext begins the second phase of FadeOutThenStart once the old channel
// has been stopped. Returns true when the transition is already complete.
func (e *Engine) startNext(tr *transition) bool {
	t := tr.next

	standby := e.standbyChannel()
	if !standby.assign(t) {
		e.current = nil
		return true
	}
	e.swap()

	ch := e.activeChannel()
	target := e.target(t)
	e.current = t
	e.loopsDone = 0

	if fadeIn := t.fadeInSeconds(); fadeIn > 0 {
		ch.setVolume(0)
		ch.play()
		tr.in = gween.New(0, float32(target), float32(fadeIn), t.easing())
		tr.inCh = ch
		return false
	}

	ch.setVolume(target)
	ch.play()
	return true
}

// crossfade swaps roles immediately and ramps both channels concurrently
// over max(old fade-out, new fade-in). Each ramp holds at its endpoint once
// its own duration elapses; the old channel is stopped only after the
// combined duration.
func (e *Engine) crossfade(t *Track) {
	old := e.activeChannel()
	oldTrack := e.current

	standby := e.standbyChannel()
	if !standby.assign(t) {
		return
	}
	e.swap()

	ch := e.activeChannel()
	target := e.target(t)

	fadeOut := 0.0
	if oldTrack != nil && old.isPlaying() {
		fadeOut = oldTrack.FadeOutSeconds
	}
	fadeIn := t.fadeInSeconds()
	total := math.Max(fadeOut, fadeIn)

	ch.setVolume(0)
	ch.play()
	e.current = t
	e.loopsDone = 0

	if total <= 0 {
		old.clear()
		ch.setVolume(target)
		return
	}

	tr := &transition{
		policy: Crossfade,
		total:  total,
		outCh:  old,
		inCh:   ch,
	}
	if fadeOut > 0 {
		tr.out = gween.New(float32(old.volume), 0, float32(fadeOut), oldTrack.easing())
	} else {
		old.setVolume(0)
	}
	if fadeIn > 0 {
		tr.in = gween.New(0, float32(target), float32(fadeIn), t.easing())
	} else {
		ch.setVolume(target)
	}
	e.task = tr
}

// PlayMusic resolves a track ID through the library and requests a
// transition to it. Unknown IDs are logged and leave playback unchanged.
func (e *Engine) PlayMusic(trackID string, policy Transition) {
	if e.library == nil {
		log.Printf("Warning: music requested but engine has no library: %s", trackID)
		return
	}
	t, ok := e.library.Track(trackID)
	if !ok {
		log.Printf("Warning: unknown music track: %s", trackID)
		return
	}
	e.RequestTransition(t, policy)
}

// PlayMusicSpec plays a compact "trackID|TransitionName" request. A missing
// or unknown transition name falls back to FadeOutThenStart.
func (e *Engine) PlayMusicSpec(spec string) {
	id, name, _ := strings.Cut(spec, "|")
	id = strings.TrimSpace(id)
	if id == "" {
		log.Printf("Warning: empty music request: %q", spec)
		return
	}
	e.PlayMusic(id, ParseTransition(name))
}

// StopMusic stops the current track, fading it out over its configured
// fade-out duration unless fadeOut is false or the track has none.
func (e *Engine) StopMusic(fadeOut bool) {
	e.task = nil

	ch := e.activeChannel()
	if !fadeOut || e.current == nil || e.current.FadeOutSeconds <= 0 || !ch.isPlaying() {
		ch.clear()
		e.standbyChannel().clear()
		e.current = nil
		return
	}

	e.task = &transition{
		policy: FadeOutThenStart,
		out:    gween.New(float32(ch.volume), 0, float32(e.current.FadeOutSeconds), e.current.easing()),
		outCh:  ch,
	}
}

// Tick advances the engine by dt seconds of game time. The transition step
// runs first; the loop watcher only acts when no transition is in flight.
func (e *Engine) Tick(dt float64) {
	if e.task != nil {
		if e.task.step(e, dt) {
			e.task = nil
		}
	}
	if e.task == nil {
		e.watchLoop()
	}
}

// watchLoop restarts or clears playback when the active channel reached its
// natural end. LoopInfinite tracks never get here while healthy because the
// voice loops natively.
func (e *Engine) watchLoop() {
	if e.current == nil {
		return
	}
	ch := e.activeChannel()
	if ch.voice == nil || ch.isPlaying() {
		return
	}

	switch e.current.Loop {
	case LoopInfinite:
		// Native voice looping owns continuation.
	case LoopNone:
		e.clearCurrent()
	case LoopFinite:
		e.loopsDone++
		if e.loopsDone <= e.current.LoopCount {
			ch.replay()
		} else {
			e.clearCurrent()
		}
	}
}

func (e *Engine) clearCurrent() {
	e.activeChannel().clear()
	e.current = nil
}

// IsPlaying reports whether a track is assigned, including while it is
// fading in or out.
func (e *Engine) IsPlaying() bool {
	return e.current != nil
}

// CurrentTrackName returns the assigned track's ID, or "" when silent.
func (e *Engine) CurrentTrackName() string {
	if e.current == nil {
		return ""
	}
	return e.current.ID
}

// State reports the session state: Transitioning while a transition is in
// flight, Playing while a track is assigned, Idle otherwise.
func (e *Engine) State() State {
	if e.task != nil {
		return StateTransitioning
	}
	if e.current != nil {
		return StatePlaying
	}
	return StateIdle
}

// SetVolume changes the music volume (0.0 - 1.0). The new volume applies to
// the active channel immediately unless a transition currently owns it, in
// which case it takes effect from the next transition.
func (e *Engine) SetVolume(v float64) {
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}
	e.volume = v

	if e.task == nil && e.current != nil {
		e.activeChannel().setVolume(e.target(e.current))
	}
}

// Volume returns the music volume (0.0 - 1.0).
func (e *Engine) Volume() float64 {
	return e.volume
}

// Shutdown drops all playback immediately. No fades.
func (e *Engine) Shutdown() {
	e.task = nil
	e.channels[0].clear()
	e.channels[1].clear()
	e.current = nil
	e.loopsDone = 0
}
