package feedback

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const toneSampleRate = beep.SampleRate(44100)

// Note is one step of a cue pattern. A zero Frequency is a rest.
type Note struct {
	Frequency float64
	Length    time.Duration
}

var patterns = map[Kind][]Note{
	Success: {
		{Frequency: 660, Length: 80 * time.Millisecond},
		{Length: 30 * time.Millisecond},
		{Frequency: 880, Length: 120 * time.Millisecond},
	},
	Warning: {
		{Frequency: 440, Length: 120 * time.Millisecond},
		{Length: 40 * time.Millisecond},
		{Frequency: 330, Length: 160 * time.Millisecond},
	},
	Selection: {
		{Frequency: 1200, Length: 25 * time.Millisecond},
	},
}

// Pattern returns the notes played for a cue.
func Pattern(kind Kind) []Note {
	return append([]Note(nil), patterns[kind]...)
}

// ToneSink plays a short synthesized tone per cue through the speaker.
type ToneSink struct {
	mu         sync.Mutex
	sampleRate beep.SampleRate
	volume     float64
	play       func(beep.Streamer)
}

// NewToneSink initializes the speaker. Volume is in the beep exponential
// scale where 0 is unchanged and negative values are quieter.
func NewToneSink(volume float64) (*ToneSink, error) {
	if err := speaker.Init(toneSampleRate, toneSampleRate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	return newToneSink(toneSampleRate, volume, func(streamer beep.Streamer) {
		speaker.Play(streamer)
	}), nil
}

func newToneSink(sampleRate beep.SampleRate, volume float64, play func(beep.Streamer)) *ToneSink {
	return &ToneSink{
		sampleRate: sampleRate,
		volume:     volume,
		play:       play,
	}
}

// SetVolume changes the volume for subsequent cues.
func (sink *ToneSink) SetVolume(volume float64) {
	sink.mu.Lock()
	sink.volume = volume
	sink.mu.Unlock()
}

// Notify plays the cue. Unknown kinds are ignored.
func (sink *ToneSink) Notify(kind Kind) {
	streamer, err := sink.build(kind)
	if err != nil {
		log.Printf("feedback: build %s tone: %v", kind, err)
		return
	}
	if streamer == nil {
		return
	}
	sink.play(streamer)
}

func (sink *ToneSink) build(kind Kind) (beep.Streamer, error) {
	notes, ok := patterns[kind]
	if !ok || len(notes) == 0 {
		return nil, nil
	}

	sink.mu.Lock()
	volume := sink.volume
	sink.mu.Unlock()

	parts := make([]beep.Streamer, 0, len(notes))
	for _, note := range notes {
		samples := sink.sampleRate.N(note.Length)
		if note.Frequency <= 0 {
			parts = append(parts, beep.Silence(samples))
			continue
		}
		tone, err := generators.SineTone(sink.sampleRate, note.Frequency)
		if err != nil {
			return nil, fmt.Errorf("sine %.0fHz: %w", note.Frequency, err)
		}
		parts = append(parts, beep.Take(samples, tone))
	}

	return &effects.Volume{
		Streamer: beep.Seq(parts...),
		Base:     2,
		Volume:   volume,
	}, nil
}
