package audio

import "log"

// channel is one of the engine's two playback slots. The active/standby
// labels live in the engine as indices; swapping roles never copies data.
type channel struct {
	track  *Track
	voice  Voice
	volume float64
}

// assign binds a track to the channel and spawns a fresh voice for it.
// The voice loops natively only for LoopInfinite; finite loop counting is
// the engine watcher's job.
func (c *channel) assign(t *Track) bool {
	c.stop()

	voice, err := t.Source.NewVoice(VoiceOptions{Loop: t.Loop == LoopInfinite})
	if err != nil {
		log.Printf("Warning: could not create voice for track %s: %v", t.ID, err)
		c.track = nil
		c.voice = nil
		return false
	}

	c.track = t
	c.voice = voice
	c.volume = 0
	return true
}

func (c *channel) play() {
	if c.voice != nil {
		c.voice.Play()
	}
}

// replay restarts the voice from the beginning at the current volume.
func (c *channel) replay() {
	if c.voice == nil {
		return
	}
	if err := c.voice.Rewind(); err != nil {
		log.Printf("Warning: could not rewind track %s: %v", c.track.ID, err)
	}
	c.voice.SetVolume(c.volume)
	c.voice.Play()
}

// stop halts playback and zeroes the volume.
func (c *channel) stop() {
	if c.voice != nil {
		c.voice.SetVolume(0)
		c.voice.Pause()
	}
	c.volume = 0
}

// clear stops playback and drops the track and voice.
func (c *channel) clear() {
	c.stop()
	c.track = nil
	c.voice = nil
}

func (c *channel) setVolume(v float64) {
	c.volume = v
	if c.voice != nil {
		c.voice.SetVolume(v)
	}
}

func (c *channel) isPlaying() bool {
	return c.voice != nil && c.voice.IsPlaying()
}
