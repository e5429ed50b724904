package assets

import (
	"encoding/binary"
	"math"
	"math/rand"

	"github.com/automoto/jukebox/audio"
	"github.com/automoto/jukebox/ebitenaudio"
	eaudio "github.com/hajimehoshi/ebiten/v2/audio"
)

// Procedural PCM generators so the demo ships without bundled audio files.
// All buffers are 16-bit little endian stereo at the context sample rate.

const bytesPerFrame = 4

// envelope returns a linear attack/release gain for frame i of n, keeping
// tone edges click-free.
func envelope(i, n int) float64 {
	ramp := n / 20
	if ramp < 1 {
		return 1.0
	}
	switch {
	case i < ramp:
		return float64(i) / float64(ramp)
	case i > n-ramp:
		return float64(n-i) / float64(ramp)
	default:
		return 1.0
	}
}

func writeFrame(data []byte, i int, v float64) {
	s := uint16(int16(v * math.MaxInt16))
	binary.LittleEndian.PutUint16(data[i*bytesPerFrame:], s)
	binary.LittleEndian.PutUint16(data[i*bytesPerFrame+2:], s)
}

// Tone renders a sine wave of the given frequency and length
func Tone(sampleRate int, freq, seconds, vol float64) []byte {
	n := int(float64(sampleRate) * seconds)
	data := make([]byte, n*bytesPerFrame)
	for i := 0; i < n; i++ {
		t := float64(i) / float64(sampleRate)
		v := math.Sin(2*math.Pi*freq*t) * vol * envelope(i, n)
		writeFrame(data, i, v)
	}
	return data
}

// Chord renders several sine waves mixed at equal weight
func Chord(sampleRate int, freqs []float64, seconds, vol float64) []byte {
	n := int(float64(sampleRate) * seconds)
	data := make([]byte, n*bytesPerFrame)
	for i := 0; i < n; i++ {
		t := float64(i) / float64(sampleRate)
		var v float64
		for _, f := range freqs {
			v += math.Sin(2 * math.Pi * f * t)
		}
		v = v / float64(len(freqs)) * vol * envelope(i, n)
		writeFrame(data, i, v)
	}
	return data
}

// NoiseBurst renders decaying white noise, useful as a percussive hit
func NoiseBurst(sampleRate int, seconds, vol float64) []byte {
	rng := rand.New(rand.NewSource(1))
	n := int(float64(sampleRate) * seconds)
	data := make([]byte, n*bytesPerFrame)
	for i := 0; i < n; i++ {
		decay := 1.0 - float64(i)/float64(n)
		v := (rng.Float64()*2 - 1) * vol * decay
		writeFrame(data, i, v)
	}
	return data
}

// DemoLibrary builds the demo track and effect library from generated tones
func DemoLibrary(ctx *eaudio.Context) *audio.Library {
	sr := ctx.SampleRate()
	lib := audio.NewLibrary()

	lib.AddTrack(&audio.Track{
		ID:             "ambient",
		Source:         ebitenaudio.NewPCMSource(ctx, Chord(sr, []float64{220, 277.18, 329.63}, 4.0, 0.4)),
		Loop:           audio.LoopInfinite,
		FadeIn:         true,
		FadeInSeconds:  1.5,
		FadeOutSeconds: 2.0,
	})
	lib.AddTrack(&audio.Track{
		ID:             "battle",
		Source:         ebitenaudio.NewPCMSource(ctx, Chord(sr, []float64{330, 392, 494}, 2.0, 0.4)),
		Loop:           audio.LoopInfinite,
		FadeIn:         true,
		FadeInSeconds:  1.0,
		FadeOutSeconds: 1.0,
	})
	lib.AddTrack(&audio.Track{
		ID:        "jingle",
		Source:    ebitenaudio.NewPCMSource(ctx, Tone(sr, 523.25, 1.0, 0.35)),
		Loop:      audio.LoopFinite,
		LoopCount: 2,
	})
	lib.AddTrack(&audio.Track{
		ID:     "stinger",
		Source: ebitenaudio.NewPCMSource(ctx, Tone(sr, 659.25, 0.5, 0.35)),
		Loop:   audio.LoopNone,
	})

	lib.AddEffect(&audio.Effect{
		ID:       "click",
		Source:   ebitenaudio.NewPCMSource(ctx, Tone(sr, 880, 0.08, 0.5)),
		PitchMin: 0.95,
		PitchMax: 1.05,
	})
	lib.AddEffect(&audio.Effect{
		ID:       "hit",
		Source:   ebitenaudio.NewPCMSource(ctx, NoiseBurst(sr, 0.15, 0.5)),
		PitchMin: 0.8,
		PitchMax: 1.2,
	})

	return lib
}
