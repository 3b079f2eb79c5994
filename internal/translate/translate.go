// Package translate maps SN76489 register writes onto NES APU channels.
package translate

import (
	"github.com/retroenv/vgm2nsf/internal/looper"
	"github.com/retroenv/vgm2nsf/internal/vgm"
)

// Write is a single translated register write on a NES channel.
type Write struct {
	Value  byte   // pulse period or packed noise register byte
	Volume byte   // volume nibble, pulse channels only
	Sample uint32 // timeline position
}

// Block is a delta-encoded PCM block scheduled on the DPCM channel.
type Block struct {
	Delta  []byte
	Sample uint32
}

// UnmappedWrite preserves a register write that has no NES channel
// assigned: third tone channel writes and YM2413 FM writes. They are
// kept so that callers can detect the information loss instead of
// having events dropped silently.
type UnmappedWrite struct {
	Register byte
	Data     byte
	Sample   uint32
}

// Tracks holds the per-NES-channel write sequences produced from a
// decoded VGM event timeline, plus the optional detected loop point.
type Tracks struct {
	Pulse1   []Write
	Pulse2   []Write
	Noise    []Write
	DPCM     []Block
	Unmapped []UnmappedWrite

	LoopPoint    *looper.Point
	TotalSamples uint32

	amplitudes []byte
}

// SN76489 noise register bit fields
const (
	noiseTypeBit  = 2    // white vs. periodic noise
	noiseRateMask = 0x03 // shift rate
)

// Translate converts the decoded event timeline into NES channel tracks.
// Tone channel 0 maps to pulse 1 and channel 1 to pulse 2, the period
// and volume bits are forwarded as-is without frequency-accurate
// rescaling. Channel 2 has no NES counterpart and lands on the unmapped
// track together with FM writes. Noise events are repacked into a single
// NES noise register byte, or dropped when preserveNoise is off.
func Translate(events []vgm.Event, preserveNoise bool) *Tracks {
	tracks := &Tracks{}

	for _, event := range events {
		switch e := event.(type) {
		case vgm.ToneEvent:
			write := Write{Value: e.Period, Volume: e.Volume, Sample: e.Sample}
			switch e.Channel {
			case 0:
				tracks.Pulse1 = append(tracks.Pulse1, write)
				tracks.amplitudes = append(tracks.amplitudes, e.Period)
			case 1:
				tracks.Pulse2 = append(tracks.Pulse2, write)
				tracks.amplitudes = append(tracks.amplitudes, e.Period)
			default:
				tracks.Unmapped = append(tracks.Unmapped, UnmappedWrite{
					Register: e.Channel,
					Data:     e.Period,
					Sample:   e.Sample,
				})
			}

		case vgm.NoiseEvent:
			if !preserveNoise {
				continue
			}
			value := translateNoise(e.Register)
			tracks.Noise = append(tracks.Noise, Write{Value: value, Sample: e.Sample})
			tracks.amplitudes = append(tracks.amplitudes, value)

		case vgm.FMEvent:
			tracks.Unmapped = append(tracks.Unmapped, UnmappedWrite{
				Register: e.Register,
				Data:     e.Data,
				Sample:   e.Sample,
			})

		case vgm.PCMBlockEvent:
			tracks.DPCM = append(tracks.DPCM, Block{Delta: e.Delta, Sample: e.Sample})

		case vgm.EndEvent:
			tracks.TotalSamples = e.Sample
		}

		if sample := event.SampleIndex(); sample > tracks.TotalSamples {
			tracks.TotalSamples = sample
		}
	}

	return tracks
}

// AmplitudeSequence returns one amplitude value per translated pulse and
// noise write in timeline order, the input of the loop detector.
func (t *Tracks) AmplitudeSequence() []byte {
	return t.amplitudes
}

// translateNoise repacks a SN76489 noise register byte for the NES noise
// channel: the white/periodic mode bit moves to bit 7, the shift rate
// stays in the low nibble.
func translateNoise(register byte) byte {
	noiseType := (register >> noiseTypeBit) & 0x01
	rate := register & noiseRateMask
	return noiseType<<7 | rate&0x0F
}
