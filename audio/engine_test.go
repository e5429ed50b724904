package audio

import "testing"

// Test durations are powers of two so float32 tween accumulation lands
// exactly on the configured fade lengths.
const testDt = 0.25

func infiniteTrack(id string, src *fakeSource) *Track {
	return &Track{ID: id, Source: src, Loop: LoopInfinite}
}

func TestStopAndStartImmediate(t *testing.T) {
	src := &fakeSource{}
	e := NewEngine(nil)

	e.RequestTransition(&Track{ID: "theme", Source: src, VolumeScale: 0.5, Loop: LoopInfinite}, StopAndStart)

	v := src.lastVoice()
	if v == nil || !v.playing {
		t.Fatal("expected new track playing immediately")
	}
	if !almost(v.volume, 0.5) {
		t.Errorf("volume = %v, want 0.5", v.volume)
	}
	if !v.loop {
		t.Error("infinite-loop track should use native voice looping")
	}
	if got := e.State(); got != StatePlaying {
		t.Errorf("state = %v, want Playing", got)
	}
	if got := e.CurrentTrackName(); got != "theme" {
		t.Errorf("current track = %q, want theme", got)
	}
}

func TestStopAndStartCutsOldTrack(t *testing.T) {
	oldSrc := &fakeSource{}
	newSrc := &fakeSource{}
	e := NewEngine(nil)

	e.RequestTransition(infiniteTrack("a", oldSrc), StopAndStart)
	oldVoice := oldSrc.lastVoice()
	e.RequestTransition(infiniteTrack("b", newSrc), StopAndStart)

	if oldVoice.playing {
		t.Error("old voice should be stopped")
	}
	if !almost(oldVoice.volume, 0) {
		t.Errorf("old voice volume = %v, want 0", oldVoice.volume)
	}
	if v := newSrc.lastVoice(); v == nil || !v.playing {
		t.Fatal("new track should be playing")
	}
}

func TestStopAndFadeInRampsLinearly(t *testing.T) {
	src := &fakeSource{}
	e := NewEngine(nil)

	e.RequestTransition(&Track{
		ID: "theme", Source: src, Loop: LoopInfinite,
		FadeIn: true, FadeInSeconds: 1.0,
	}, StopAndFadeIn)

	v := src.lastVoice()
	if !v.playing || !almost(v.volume, 0) {
		t.Fatalf("track should start playing at volume 0, got playing=%v volume=%v", v.playing, v.volume)
	}
	if e.State() != StateTransitioning {
		t.Errorf("state = %v, want Transitioning", e.State())
	}

	tick(e, 2, testDt)
	if !almost(v.volume, 0.5) {
		t.Errorf("volume at t=0.5 = %v, want 0.5", v.volume)
	}

	tick(e, 2, testDt)
	if !almost(v.volume, 1.0) {
		t.Errorf("volume at t=1.0 = %v, want 1.0", v.volume)
	}
	if e.State() != StatePlaying {
		t.Errorf("state after fade = %v, want Playing", e.State())
	}
}

func TestStopAndFadeInWithoutFadeBehavesLikeStopAndStart(t *testing.T) {
	src := &fakeSource{}
	e := NewEngine(nil)

	e.RequestTransition(&Track{ID: "theme", Source: src, Loop: LoopInfinite}, StopAndFadeIn)

	v := src.lastVoice()
	if !v.playing || !almost(v.volume, 1.0) {
		t.Errorf("expected immediate full volume, got playing=%v volume=%v", v.playing, v.volume)
	}
	if e.State() != StatePlaying {
		t.Errorf("state = %v, want Playing (no fade task)", e.State())
	}
}

func TestFadeOutThenStartSequencing(t *testing.T) {
	oldSrc := &fakeSource{}
	newSrc := &fakeSource{}
	e := NewEngine(nil)

	e.RequestTransition(&Track{
		ID: "a", Source: oldSrc, Loop: LoopInfinite, FadeOutSeconds: 1.0,
	}, StopAndStart)
	oldVoice := oldSrc.lastVoice()

	e.RequestTransition(&Track{
		ID: "b", Source: newSrc, Loop: LoopInfinite,
		FadeIn: true, FadeInSeconds: 1.0,
	}, FadeOutThenStart)

	if len(newSrc.voices) != 0 {
		t.Fatal("new track must not start before the old channel is stopped")
	}
	if got := e.CurrentTrackName(); got != "a" {
		t.Errorf("current track during fade-out = %q, want a", got)
	}

	tick(e, 2, testDt)
	if !almost(oldVoice.volume, 0.5) {
		t.Errorf("old volume at t=0.5 = %v, want 0.5", oldVoice.volume)
	}
	if len(newSrc.voices) != 0 {
		t.Fatal("new track started mid fade-out")
	}

	// Old fade-out completes at t=1.0; phases run strictly sequentially.
	tick(e, 2, testDt)
	if oldVoice.playing {
		t.Error("old voice should be stopped after its fade-out")
	}
	newVoice := newSrc.lastVoice()
	if newVoice == nil || !newVoice.playing {
		t.Fatal("new track should start once the old channel stopped")
	}
	if !almost(newVoice.volume, 0) {
		t.Errorf("new track should begin its fade-in at 0, got %v", newVoice.volume)
	}
	if got := e.CurrentTrackName(); got != "b" {
		t.Errorf("current track after swap = %q, want b", got)
	}

	tick(e, 4, testDt)
	if !almost(newVoice.volume, 1.0) {
		t.Errorf("new volume after fade-in = %v, want 1.0", newVoice.volume)
	}
	if e.State() != StatePlaying {
		t.Errorf("state = %v, want Playing", e.State())
	}
}

func TestFadeOutThenStartFromSilence(t *testing.T) {
	src := &fakeSource{}
	e := NewEngine(nil)

	e.RequestTransition(&Track{ID: "theme", Source: src, Loop: LoopInfinite}, FadeOutThenStart)

	if v := src.lastVoice(); v == nil || !v.playing || !almost(v.volume, 1.0) {
		t.Error("with nothing to fade out the track should start immediately")
	}
}

func TestCrossfadeOverlapsAndHolds(t *testing.T) {
	oldSrc := &fakeSource{}
	newSrc := &fakeSource{}
	e := NewEngine(nil)

	e.RequestTransition(&Track{
		ID: "a", Source: oldSrc, Loop: LoopInfinite, FadeOutSeconds: 1.0,
	}, StopAndStart)
	oldVoice := oldSrc.lastVoice()

	e.RequestTransition(&Track{
		ID: "b", Source: newSrc, VolumeScale: 0.5, Loop: LoopInfinite,
		FadeIn: true, FadeInSeconds: 2.0,
	}, Crossfade)

	newVoice := newSrc.lastVoice()
	if newVoice == nil || !newVoice.playing || !almost(newVoice.volume, 0) {
		t.Fatal("new channel should start playing at volume 0 concurrently")
	}
	if !oldVoice.playing {
		t.Fatal("old channel should still be audible at crossfade start")
	}
	if got := e.CurrentTrackName(); got != "b" {
		t.Errorf("current track = %q, want b (roles swap immediately)", got)
	}

	// t=0.5: both ramps mid-flight on their own linear slopes.
	tick(e, 2, testDt)
	if !almost(oldVoice.volume, 0.5) {
		t.Errorf("old volume at t=0.5 = %v, want 0.5", oldVoice.volume)
	}
	if !almost(newVoice.volume, 0.125) {
		t.Errorf("new volume at t=0.5 = %v, want 0.125", newVoice.volume)
	}

	// t=1.0: the old ramp elapsed; it holds at 0 but keeps playing until the
	// combined duration is over.
	tick(e, 2, testDt)
	if !almost(oldVoice.volume, 0) {
		t.Errorf("old volume at t=1.0 = %v, want 0", oldVoice.volume)
	}
	if !oldVoice.playing {
		t.Error("old voice is stopped before the combined duration elapsed")
	}

	// t=2.0: crossfade complete.
	tick(e, 4, testDt)
	if oldVoice.playing {
		t.Error("old voice should be stopped after max(fadeOut, fadeIn)")
	}
	if !almost(newVoice.volume, 0.5) {
		t.Errorf("new volume at t=2.0 = %v, want 0.5", newVoice.volume)
	}
	if e.State() != StatePlaying {
		t.Errorf("state = %v, want Playing", e.State())
	}
}

func TestCrossfadeWithFadeInDisabled(t *testing.T) {
	oldSrc := &fakeSource{}
	newSrc := &fakeSource{}
	e := NewEngine(nil)

	e.RequestTransition(&Track{
		ID: "a", Source: oldSrc, Loop: LoopInfinite, FadeOutSeconds: 1.0,
	}, StopAndStart)
	oldVoice := oldSrc.lastVoice()

	e.RequestTransition(infiniteTrack("b", newSrc), Crossfade)

	if v := newSrc.lastVoice(); !almost(v.volume, 1.0) {
		t.Errorf("fade-in disabled: new channel should sit at target immediately, got %v", v.volume)
	}

	tick(e, 4, testDt)
	if oldVoice.playing {
		t.Error("old voice should stop once its fade-out elapsed")
	}
	if e.State() != StatePlaying {
		t.Errorf("state = %v, want Playing", e.State())
	}
}

func TestNewRequestPreemptsInFlightTransition(t *testing.T) {
	srcA := &fakeSource{}
	srcB := &fakeSource{}
	srcC := &fakeSource{}
	e := NewEngine(nil)

	e.RequestTransition(&Track{
		ID: "a", Source: srcA, Loop: LoopInfinite, FadeOutSeconds: 1.0,
	}, StopAndStart)
	voiceA := srcA.lastVoice()

	e.RequestTransition(&Track{
		ID: "b", Source: srcB, Loop: LoopInfinite,
	}, FadeOutThenStart)
	tick(e, 2, testDt)
	if !almost(voiceA.volume, 0.5) {
		t.Fatalf("setup: old volume = %v, want 0.5", voiceA.volume)
	}

	// Preempt. Channel volumes must stay exactly where the cancelled
	// transition left them; track b must never have started.
	e.RequestTransition(&Track{
		ID: "c", Source: srcC, Loop: LoopInfinite, FadeIn: true, FadeInSeconds: 1.0,
	}, Crossfade)

	if !almost(voiceA.volume, 0.5) {
		t.Errorf("cancellation moved the old channel volume to %v, want 0.5", voiceA.volume)
	}
	if len(srcB.voices) != 0 {
		t.Error("preempted transition should never start its track")
	}

	// The new crossfade picks up from the observed state.
	tick(e, 2, testDt)
	if !almost(voiceA.volume, 0.25) {
		t.Errorf("old volume mid-crossfade = %v, want 0.25", voiceA.volume)
	}
}

func TestRerequestBeforeAnyTick(t *testing.T) {
	srcA := &fakeSource{}
	srcB := &fakeSource{}
	e := NewEngine(nil)

	e.RequestTransition(&Track{
		ID: "a", Source: srcA, Loop: LoopInfinite, FadeOutSeconds: 1.0,
	}, StopAndStart)
	e.RequestTransition(&Track{
		ID: "b", Source: srcB, VolumeScale: 0.5, Loop: LoopInfinite,
		FadeIn: true, FadeInSeconds: 1.0,
	}, Crossfade)

	tick(e, 8, testDt)

	voiceA := srcA.lastVoice()
	voiceB := srcB.lastVoice()
	if voiceA.playing || !almost(voiceA.volume, 0) {
		t.Error("track a should be silent after the crossfade settles")
	}
	if !voiceB.playing || !almost(voiceB.volume, 0.5) {
		t.Errorf("track b should be at its target volume, got playing=%v volume=%v", voiceB.playing, voiceB.volume)
	}
	if got := e.CurrentTrackName(); got != "b" {
		t.Errorf("current track = %q, want b", got)
	}
}

func TestFiniteLoopReplaysExactly(t *testing.T) {
	src := &fakeSource{}
	e := NewEngine(nil)

	e.RequestTransition(&Track{
		ID: "jingle", Source: src, Loop: LoopFinite, LoopCount: 2, VolumeScale: 0.5,
	}, StopAndStart)
	v := src.lastVoice()
	if v.loop {
		t.Error("finite-loop track must not use native voice looping")
	}

	for i := 0; i < 2; i++ {
		v.finish()
		tick(e, 1, testDt)
		if !v.playing {
			t.Fatalf("replay %d: voice should be playing again", i+1)
		}
		if !almost(v.volume, 0.5) {
			t.Errorf("replay %d: volume = %v, want 0.5", i+1, v.volume)
		}
	}
	if v.rewindCalls != 2 {
		t.Errorf("rewinds = %d, want 2", v.rewindCalls)
	}

	// Third natural end exhausts the loop count.
	v.finish()
	tick(e, 1, testDt)
	if e.IsPlaying() {
		t.Error("track should be cleared after its final play")
	}
	if v.playCalls != 3 {
		t.Errorf("total plays = %d, want 3 (1 + LoopCount)", v.playCalls)
	}
	if e.State() != StateIdle {
		t.Errorf("state = %v, want Idle", e.State())
	}
}

func TestNoLoopClearsOnNaturalEnd(t *testing.T) {
	src := &fakeSource{}
	e := NewEngine(nil)

	e.RequestTransition(&Track{ID: "stinger", Source: src, Loop: LoopNone}, StopAndStart)
	v := src.lastVoice()

	v.finish()
	tick(e, 1, testDt)

	if e.IsPlaying() {
		t.Error("IsPlaying should be false after a NoLoop track ends")
	}
	if got := e.CurrentTrackName(); got != "" {
		t.Errorf("current track = %q, want empty", got)
	}
	if v.rewindCalls != 0 {
		t.Error("NoLoop track must not be replayed")
	}
}

func TestInfiniteLoopWatcherIsNoOp(t *testing.T) {
	src := &fakeSource{}
	e := NewEngine(nil)

	e.RequestTransition(infiniteTrack("theme", src), StopAndStart)
	v := src.lastVoice()

	// Even if the voice reports stopped for a tick, continuation belongs to
	// the native loop flag, not the watcher.
	v.finish()
	tick(e, 1, testDt)

	if !e.IsPlaying() {
		t.Error("infinite track should stay assigned")
	}
	if v.rewindCalls != 0 {
		t.Error("watcher must not replay an infinite-loop track")
	}
}

func TestWatcherDefersToInFlightTransition(t *testing.T) {
	src := &fakeSource{}
	e := NewEngine(nil)

	e.RequestTransition(&Track{
		ID: "jingle", Source: src, Loop: LoopFinite, LoopCount: 5, FadeOutSeconds: 1.0,
	}, StopAndStart)
	v := src.lastVoice()

	e.StopMusic(true)
	v.finish()
	tick(e, 1, testDt)

	if v.rewindCalls != 0 {
		t.Error("watcher replayed a track while a transition owned the channel")
	}
	if e.State() != StateTransitioning {
		t.Errorf("state = %v, want Transitioning", e.State())
	}
}

func TestStopMusicFadesOut(t *testing.T) {
	src := &fakeSource{}
	e := NewEngine(nil)

	e.RequestTransition(&Track{
		ID: "theme", Source: src, Loop: LoopInfinite, FadeOutSeconds: 1.0,
	}, StopAndStart)
	v := src.lastVoice()

	e.StopMusic(true)
	if !e.IsPlaying() {
		t.Error("track should stay assigned while fading out")
	}

	tick(e, 2, testDt)
	if !almost(v.volume, 0.5) {
		t.Errorf("volume at t=0.5 = %v, want 0.5", v.volume)
	}

	tick(e, 2, testDt)
	if v.playing {
		t.Error("voice should be stopped after the fade-out")
	}
	if e.IsPlaying() || e.State() != StateIdle {
		t.Error("engine should be idle after the stop fade completes")
	}
}

func TestStopMusicImmediate(t *testing.T) {
	src := &fakeSource{}
	e := NewEngine(nil)

	e.RequestTransition(&Track{
		ID: "theme", Source: src, Loop: LoopInfinite, FadeOutSeconds: 1.0,
	}, StopAndStart)
	v := src.lastVoice()

	e.StopMusic(false)

	if v.playing || !almost(v.volume, 0) {
		t.Error("immediate stop should silence the voice on the spot")
	}
	if e.IsPlaying() {
		t.Error("no track should remain assigned")
	}
}

func TestNilTrackRequestPreservesState(t *testing.T) {
	src := &fakeSource{}
	e := NewEngine(nil)

	e.RequestTransition(infiniteTrack("theme", src), StopAndStart)
	e.RequestTransition(nil, Crossfade)

	if !e.IsPlaying() || e.CurrentTrackName() != "theme" {
		t.Error("nil track request should leave prior playback untouched")
	}
	if v := src.lastVoice(); !v.playing {
		t.Error("current voice should keep playing")
	}
}

func TestUnknownTrackKeepsState(t *testing.T) {
	lib := NewLibrary()
	src := &fakeSource{}
	lib.AddTrack(infiniteTrack("theme", src))
	e := NewEngine(lib)

	e.PlayMusic("theme", StopAndStart)
	e.PlayMusic("missing", Crossfade)

	if got := e.CurrentTrackName(); got != "theme" {
		t.Errorf("current track = %q, want theme (unresolved request is a no-op)", got)
	}
}

func TestPlayMusicSpec(t *testing.T) {
	tests := []struct {
		name string
		spec string
		want string // expected current track after settle
	}{
		{"with transition", "theme|Crossfade", "theme"},
		{"unknown transition falls back", "theme|Whatever", "theme"},
		{"no separator", "theme", "theme"},
		{"empty id ignored", "|Crossfade", ""},
		{"unknown id ignored", "missing|StopAndStart", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lib := NewLibrary()
			src := &fakeSource{}
			lib.AddTrack(infiniteTrack("theme", src))
			e := NewEngine(lib)

			e.PlayMusicSpec(tt.spec)
			tick(e, 8, testDt)

			if got := e.CurrentTrackName(); got != tt.want {
				t.Errorf("current track = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSetVolumeAppliesToActiveChannel(t *testing.T) {
	src := &fakeSource{}
	e := NewEngine(nil)

	e.RequestTransition(&Track{ID: "theme", Source: src, VolumeScale: 0.5, Loop: LoopInfinite}, StopAndStart)
	e.SetVolume(0.5)

	if v := src.lastVoice(); !almost(v.volume, 0.25) {
		t.Errorf("volume = %v, want 0.25 (scale * music volume)", v.volume)
	}
}

func TestSetVolumeDeferredDuringTransition(t *testing.T) {
	src := &fakeSource{}
	e := NewEngine(nil)

	e.RequestTransition(&Track{
		ID: "theme", Source: src, Loop: LoopInfinite,
		FadeIn: true, FadeInSeconds: 1.0,
	}, StopAndFadeIn)
	tick(e, 2, testDt)
	v := src.lastVoice()
	mid := v.volume

	e.SetVolume(0.5)
	if !almost(v.volume, mid) {
		t.Error("volume change should not touch a channel owned by a transition")
	}
}

func TestVoiceCreationFailureDegradesToSilence(t *testing.T) {
	good := &fakeSource{}
	bad := &fakeSource{err: errFakeBackend}
	e := NewEngine(nil)

	e.RequestTransition(infiniteTrack("a", good), StopAndStart)
	e.RequestTransition(infiniteTrack("b", bad), StopAndStart)

	if e.IsPlaying() {
		t.Error("engine should be silent when the new voice cannot be created")
	}
	if v := good.lastVoice(); v.playing {
		t.Error("old voice was already cut by the stop phase")
	}
}

func TestShutdownSilencesImmediately(t *testing.T) {
	src := &fakeSource{}
	e := NewEngine(nil)

	e.RequestTransition(&Track{
		ID: "theme", Source: src, Loop: LoopInfinite, FadeOutSeconds: 2.0,
	}, StopAndStart)
	e.Shutdown()

	if v := src.lastVoice(); v.playing || !almost(v.volume, 0) {
		t.Error("shutdown must silence playback without a fade")
	}
	if e.State() != StateIdle {
		t.Errorf("state = %v, want Idle", e.State())
	}
}
