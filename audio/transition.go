package audio

import "github.com/tanema/gween"

// transition carries the progress of one in-flight transition. It is stepped
// once per tick and cancelled by dropping the engine's reference to it; a
// cancelled transition leaves channel volumes wherever its last step put
// them.
type transition struct {
	policy Transition

	// next is the track to start after the fade-out phase. Nil means this
	// is a plain stop fade.
	next *Track

	out   *gween.Tween
	in    *gween.Tween
	outCh *channel
	inCh  *channel

	// Crossfade bookkeeping: the old channel is stopped only once the
	// combined duration has elapsed, even if its own ramp finished early.
	elapsed float64
	total   float64
}

// step advances the transition by one tick and reports whether it completed.
func (tr *transition) step(e *Engine, dt float64) bool {
	d := float32(dt)

	if tr.policy == Crossfade {
		tr.elapsed += dt
		if tr.out != nil {
			v, fin := tr.out.Update(d)
			tr.outCh.setVolume(float64(v))
			if fin {
				tr.out = nil
			}
		}
		if tr.in != nil {
			v, fin := tr.in.Update(d)
			tr.inCh.setVolume(float64(v))
			if fin {
				tr.in = nil
			}
		}
		if tr.elapsed >= tr.total {
			tr.outCh.clear()
			return true
		}
		return false
	}

	// Fade-out phase (FadeOutThenStart and stop fades).
	if tr.out != nil {
		v, fin := tr.out.Update(d)
		tr.outCh.setVolume(float64(v))
		if !fin {
			return false
		}
		tr.out = nil
		tr.outCh.clear()
		if tr.next == nil {
			e.current = nil
			return true
		}
		// The old channel is fully stopped; only now may the new track
		// start.
		return e.startNext(tr)
	}

	// Fade-in phase (StopAndFadeIn and FadeOutThenStart's second half).
	if tr.in != nil {
		v, fin := tr.in.Update(d)
		tr.inCh.setVolume(float64(v))
		return fin
	}

	return true
}
