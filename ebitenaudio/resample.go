package ebitenaudio

import (
	"encoding/binary"
	"io"
)

// bytesPerFrame is one 16-bit little endian stereo sample pair.
const bytesPerFrame = 4

// pitchReader resamples 16-bit stereo PCM by stepping through source frames
// at a fractional rate, linearly interpolating between neighboring frames.
// A step above 1.0 raises the pitch and shortens the sound.
type pitchReader struct {
	data []byte
	pos  float64
	step float64
}

func newPitchReader(data []byte, pitch float64) *pitchReader {
	if pitch <= 0 {
		pitch = 1.0
	}
	return &pitchReader{data: data, step: pitch}
}

func (r *pitchReader) Read(b []byte) (int, error) {
	frames := len(b) / bytesPerFrame
	total := len(r.data) / bytesPerFrame

	n := 0
	for i := 0; i < frames; i++ {
		idx := int(r.pos)
		if idx+1 >= total {
			if n == 0 {
				return 0, io.EOF
			}
			return n, nil
		}
		frac := r.pos - float64(idx)

		for ch := 0; ch < 2; ch++ {
			off := idx*bytesPerFrame + ch*2
			s0 := int16(binary.LittleEndian.Uint16(r.data[off:]))
			s1 := int16(binary.LittleEndian.Uint16(r.data[off+bytesPerFrame:]))
			v := float64(s0) + (float64(s1)-float64(s0))*frac
			binary.LittleEndian.PutUint16(b[i*bytesPerFrame+ch*2:], uint16(int16(v)))
		}

		r.pos += r.step
		n += bytesPerFrame
	}
	return n, nil
}
