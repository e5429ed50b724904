package audio

import (
	"log"
	"math/rand"
)

// EffectPool plays one-shot sound effects through a round-robin pool of
// voice slots. The pool starts at a fixed size and grows when every slot is
// busy at once.
type EffectPool struct {
	slots []Voice
	next  int

	volume float64
	rng    *rand.Rand
}

// NewEffectPool creates a pool with the given number of slots.
func NewEffectPool(size int) *EffectPool {
	if size < 1 {
		size = 1
	}
	return &EffectPool{
		slots:  make([]Voice, size),
		volume: 1.0,
		rng:    rand.New(rand.NewSource(rand.Int63())),
	}
}

// Play plays an effect once at its configured volume scale.
func (p *EffectPool) Play(ef *Effect) {
	p.PlayVolume(ef, -1)
}

// PlayVolume plays an effect once. A non-negative volumeOverride replaces
// the effect's own volume scale.
func (p *EffectPool) PlayVolume(ef *Effect, volumeOverride float64) {
	if ef == nil {
		log.Printf("Warning: sound effect requested with no descriptor")
		return
	}
	if p.volume <= 0 {
		return
	}

	idx := p.takeSlot()

	voice, err := ef.Source.NewVoice(VoiceOptions{Pitch: p.pitchFor(ef)})
	if err != nil {
		log.Printf("Warning: could not create voice for effect %s: %v", ef.ID, err)
		return
	}

	vol := ef.VolumeScale
	if vol <= 0 {
		vol = 1.0
	}
	if volumeOverride >= 0 {
		vol = volumeOverride
	}

	voice.SetVolume(vol * p.volume)
	voice.Play()
	p.slots[idx] = voice
}

// takeSlot wrap-scans from the cursor for a slot whose voice has finished,
// growing the pool when all slots are busy.
func (p *EffectPool) takeSlot() int {
	for i := 0; i < len(p.slots); i++ {
		idx := (p.next + i) % len(p.slots)
		if p.slots[idx] == nil || !p.slots[idx].IsPlaying() {
			p.next = (idx + 1) % len(p.slots)
			return idx
		}
	}

	p.slots = append(p.slots, nil)
	idx := len(p.slots) - 1
	p.next = 0
	return idx
}

// pitchFor picks a uniform random pitch within the effect's range. Effects
// without a range play at their natural pitch.
func (p *EffectPool) pitchFor(ef *Effect) float64 {
	if ef.PitchMin <= 0 || ef.PitchMax <= 0 || ef.PitchMax < ef.PitchMin {
		return 1.0
	}
	if ef.PitchMin == ef.PitchMax {
		return ef.PitchMin
	}
	return ef.PitchMin + p.rng.Float64()*(ef.PitchMax-ef.PitchMin)
}

// SetVolume changes the pool's master effect volume (0.0 - 1.0). It affects
// subsequently played effects only.
func (p *EffectPool) SetVolume(v float64) {
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}
	p.volume = v
}

// Volume returns the pool's master effect volume.
func (p *EffectPool) Volume() float64 {
	return p.volume
}

// Size returns the current number of pool slots.
func (p *EffectPool) Size() int {
	return len(p.slots)
}
