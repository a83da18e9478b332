package audio

import (
	"fmt"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/lixenwraith/sentry/parameter"
	"github.com/lixenwraith/sentry/vmath"
)

// noise generates white noise for a fixed number of samples
type noise struct {
	rng       *vmath.FastRand
	remaining int
}

func newNoise(duration time.Duration, rate beep.SampleRate, seed uint64) beep.Streamer {
	return &noise{rng: vmath.NewFastRand(seed), remaining: rate.N(duration)}
}

func (n *noise) Stream(samples [][2]float64) (int, bool) {
	if n.remaining <= 0 {
		return 0, false
	}
	count := min(len(samples), n.remaining)
	for i := 0; i < count; i++ {
		v := n.rng.Float64()*2 - 1
		samples[i][0] = v
		samples[i][1] = v
	}
	n.remaining -= count
	return count, true
}

func (n *noise) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// newEnvelope shapes s and truncates it to duration
func newEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	if e.position >= e.totalSamples {
		return 0, false
	}
	if rest := e.totalSamples - e.position; len(samples) > rest {
		samples = samples[:rest]
	}
	n, ok = e.streamer.Stream(samples)

	releaseStart := e.totalSamples - e.releaseSamples
	for i := 0; i < n; i++ {
		vol := 1.0
		if e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = math.Max(0, float64(e.totalSamples-e.position)/float64(e.releaseSamples))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s with a linear volume, zero is silent
// math.Log2(0) is -Inf
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

func tone(freq float64, duration, attack, release time.Duration, rate beep.SampleRate, square bool) (beep.Streamer, error) {
	var (
		osc beep.Streamer
		err error
	)
	if square {
		osc, err = generators.SquareTone(rate, freq)
	} else {
		osc, err = generators.SineTone(rate, freq)
	}
	if err != nil {
		return nil, fmt.Errorf("tone %.0fHz: %w", freq, err)
	}
	return newEnvelope(osc, duration, attack, release, rate), nil
}

// createAcquireSound is a two-note rising chirp
func createAcquireSound(rate beep.SampleRate) (beep.Streamer, error) {
	n1, err := tone(parameter.AcquireNote1Freq, parameter.AcquireNoteDuration,
		parameter.AcquireSoundAttack, parameter.AcquireSoundRelease, rate, false)
	if err != nil {
		return nil, err
	}
	n2, err := tone(parameter.AcquireNote2Freq, parameter.AcquireNoteDuration,
		parameter.AcquireSoundAttack, parameter.AcquireSoundRelease, rate, false)
	if err != nil {
		return nil, err
	}
	return beep.Seq(n1, n2), nil
}

// createFireSound mixes a noise crack with a low thump
func createFireSound(rate beep.SampleRate, seed uint64) (beep.Streamer, error) {
	crack := newEnvelope(newNoise(parameter.FireSoundDuration, rate, seed),
		parameter.FireSoundDuration, parameter.FireSoundAttack, parameter.FireSoundRelease, rate)
	thump, err := tone(parameter.FireThumpFreq, parameter.FireSoundDuration,
		parameter.FireSoundAttack, parameter.FireSoundRelease, rate, false)
	if err != nil {
		return nil, err
	}
	return beep.Mix(newVolume(crack, 0.6), newVolume(thump, 0.8)), nil
}

// createLostSound is a short low square blip
func createLostSound(rate beep.SampleRate) (beep.Streamer, error) {
	return tone(parameter.LostSoundFreq, parameter.LostSoundDuration,
		parameter.LostSoundAttack, parameter.LostSoundRelease, rate, true)
}

// cueStreamer builds a finite streamer for a cue at the configured volume
func cueStreamer(c Cue, cfg Config, seed uint64) (beep.Streamer, error) {
	rate := beep.SampleRate(cfg.SampleRate)

	var (
		s   beep.Streamer
		err error
	)
	switch c {
	case CueAcquire:
		s, err = createAcquireSound(rate)
	case CueFire:
		s, err = createFireSound(rate, seed)
	case CueLost:
		s, err = createLostSound(rate)
	default:
		return nil, fmt.Errorf("%w %d", ErrUnknownCue, c)
	}
	if err != nil {
		return nil, err
	}
	return newVolume(s, cfg.CueVolumes[c]*cfg.MasterVolume), nil
}
