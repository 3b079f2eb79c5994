package vgm

// Event is a single entry of the decoded command timeline. Events are
// produced in non-decreasing sample index order, the index is the
// cumulative wait-sample counter at the moment of emission.
type Event interface {
	// SampleIndex returns the position of the event on the sample timeline.
	SampleIndex() uint32
}

// ToneEvent is a SN76489 tone register write for one of the three tone channels.
type ToneEvent struct {
	Channel byte // 0..2
	Period  byte // low 6 bits of the data byte
	Volume  byte // 4 bit attenuation nibble
	Sample  uint32
}

// NoiseEvent is a SN76489 noise register write, the raw data byte is preserved.
type NoiseEvent struct {
	Register byte
	Sample   uint32
}

// FMEvent is a YM2413 register write. FM translation is not supported,
// the write is passed through untouched so that callers can detect the
// information loss.
type FMEvent struct {
	Register byte
	Data     byte
	Sample   uint32
}

// PCMBlockEvent carries a delta-encoded PCM data block.
type PCMBlockEvent struct {
	Delta  []byte // 1 bit per source sample, see the dpcm package
	Sample uint32
}

// EndEvent marks the end of the command stream.
type EndEvent struct {
	Sample uint32
}

// SampleIndex returns the position of the event on the sample timeline.
func (e ToneEvent) SampleIndex() uint32 { return e.Sample }

// SampleIndex returns the position of the event on the sample timeline.
func (e NoiseEvent) SampleIndex() uint32 { return e.Sample }

// SampleIndex returns the position of the event on the sample timeline.
func (e FMEvent) SampleIndex() uint32 { return e.Sample }

// SampleIndex returns the position of the event on the sample timeline.
func (e PCMBlockEvent) SampleIndex() uint32 { return e.Sample }

// SampleIndex returns the position of the event on the sample timeline.
func (e EndEvent) SampleIndex() uint32 { return e.Sample }
