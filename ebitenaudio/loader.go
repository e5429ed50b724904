package ebitenaudio

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/automoto/jukebox/audio"
	eaudio "github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"gopkg.in/yaml.v3"
)

// Loader decodes audio files from a filesystem and builds track libraries
// from a YAML manifest. Decoded PCM is cached so repeated loads of the same
// file are free.
type Loader struct {
	context *eaudio.Context
	fsys    fs.FS
	cache   map[string][]byte
}

// NewLoader creates a loader reading from the given filesystem, typically
// an embed.FS.
func NewLoader(ctx *eaudio.Context, fsys fs.FS) *Loader {
	return &Loader{
		context: ctx,
		fsys:    fsys,
		cache:   make(map[string][]byte),
	}
}

// LoadPCM reads and decodes an audio file into raw PCM bytes. The format is
// chosen by file extension; ogg and wav are supported.
func (l *Loader) LoadPCM(path string) ([]byte, error) {
	if data, ok := l.cache[path]; ok {
		return data, nil
	}

	data, err := fs.ReadFile(l.fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio file %s: %w", path, err)
	}

	var decoded []byte
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".ogg":
		stream, err := vorbis.DecodeWithSampleRate(l.context.SampleRate(), bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to decode ogg %s: %w", path, err)
		}
		decoded, err = io.ReadAll(stream)
		if err != nil {
			return nil, fmt.Errorf("failed to read decoded audio %s: %w", path, err)
		}

	case ".wav":
		stream, err := wav.DecodeWithSampleRate(l.context.SampleRate(), bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to decode wav %s: %w", path, err)
		}
		decoded, err = io.ReadAll(stream)
		if err != nil {
			return nil, fmt.Errorf("failed to read decoded audio %s: %w", path, err)
		}

	default:
		return nil, fmt.Errorf("unsupported audio format: %s", ext)
	}

	l.cache[path] = decoded
	return decoded, nil
}

// Source loads a file and wraps it as a voice source.
func (l *Loader) Source(path string) (*PCMSource, error) {
	data, err := l.LoadPCM(path)
	if err != nil {
		return nil, err
	}
	return NewPCMSource(l.context, data), nil
}

// LoadLibrary reads a YAML manifest and builds a library with every track
// and effect it lists.
func (l *Loader) LoadLibrary(manifestPath string) (*audio.Library, error) {
	data, err := fs.ReadFile(l.fsys, manifestPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", manifestPath, err)
	}

	m, err := parseManifest(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", manifestPath, err)
	}

	lib := audio.NewLibrary()
	for _, entry := range m.Tracks {
		src, err := l.Source(entry.File)
		if err != nil {
			return nil, err
		}
		track, err := entry.track(src)
		if err != nil {
			return nil, fmt.Errorf("manifest %s: %w", manifestPath, err)
		}
		lib.AddTrack(track)
	}
	for _, entry := range m.Effects {
		src, err := l.Source(entry.File)
		if err != nil {
			return nil, err
		}
		lib.AddEffect(entry.effect(src))
	}
	return lib, nil
}

type manifest struct {
	Tracks  []trackEntry  `yaml:"tracks"`
	Effects []effectEntry `yaml:"effects"`
}

type trackEntry struct {
	ID             string  `yaml:"id"`
	File           string  `yaml:"file"`
	Volume         float64 `yaml:"volume"`
	Loop           string  `yaml:"loop"` // infinite (default), none, finite
	LoopCount      int     `yaml:"loop_count"`
	FadeIn         bool    `yaml:"fade_in"`
	FadeInSeconds  float64 `yaml:"fade_in_seconds"`
	FadeOutSeconds float64 `yaml:"fade_out_seconds"`
}

type effectEntry struct {
	ID       string  `yaml:"id"`
	File     string  `yaml:"file"`
	Volume   float64 `yaml:"volume"`
	PitchMin float64 `yaml:"pitch_min"`
	PitchMax float64 `yaml:"pitch_max"`
}

func parseManifest(data []byte) (*manifest, error) {
	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	for i, entry := range m.Tracks {
		if entry.ID == "" || entry.File == "" {
			return nil, fmt.Errorf("track entry %d is missing id or file", i)
		}
	}
	for i, entry := range m.Effects {
		if entry.ID == "" || entry.File == "" {
			return nil, fmt.Errorf("effect entry %d is missing id or file", i)
		}
	}
	return &m, nil
}

func (e trackEntry) track(src audio.Source) (*audio.Track, error) {
	mode := audio.LoopInfinite
	switch strings.ToLower(e.Loop) {
	case "", "infinite":
	case "none":
		mode = audio.LoopNone
	case "finite":
		mode = audio.LoopFinite
	default:
		return nil, fmt.Errorf("track %s: unknown loop mode %q", e.ID, e.Loop)
	}
	if mode == audio.LoopFinite && e.LoopCount < 1 {
		return nil, fmt.Errorf("track %s: finite loop needs loop_count >= 1", e.ID)
	}

	return &audio.Track{
		ID:             e.ID,
		Source:         src,
		VolumeScale:    e.Volume,
		Loop:           mode,
		LoopCount:      e.LoopCount,
		FadeIn:         e.FadeIn,
		FadeInSeconds:  e.FadeInSeconds,
		FadeOutSeconds: e.FadeOutSeconds,
	}, nil
}

func (e effectEntry) effect(src audio.Source) *audio.Effect {
	return &audio.Effect{
		ID:          e.ID,
		Source:      src,
		VolumeScale: e.Volume,
		PitchMin:    e.PitchMin,
		PitchMax:    e.PitchMax,
	}
}
