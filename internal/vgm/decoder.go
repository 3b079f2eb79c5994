package vgm

import (
	"github.com/retroenv/vgm2nsf/internal/cursor"
	"github.com/retroenv/vgm2nsf/internal/dpcm"
)

// command stream opcodes
const (
	opPSGWrite   = 0x50 // SN76489 register write, 1 operand byte
	opFMWrite    = 0x51 // YM2413 register write, 2 operand bytes
	opWait       = 0x61 // wait, u16 LE sample count operand
	opWaitNTSC   = 0x62 // wait one NTSC frame
	opWaitPAL    = 0x63 // wait one PAL frame
	opEnd        = 0x66 // end of stream
	opDataBlock  = 0x67 // embedded data block
	samplesNTSC  = 735
	samplesPAL   = 882
	pcmBlockType = 0x00

	// data block header: opcode, type byte, u32 LE size
	dataBlockHeaderSize = 6

	// upper bound on emitted events, protects against malformed or
	// adversarial streams
	maxEvents = 10000
)

// noiseChannel is the bits 5-6 channel value selecting the noise register.
const noiseChannel = 3

// Result holds the decoded event timeline and decoder diagnostics.
type Result struct {
	Events []Event

	// Complete reports whether an end-of-stream opcode was reached.
	// False means the buffer ended early or the event cap was hit,
	// the accumulated events are still usable.
	Complete bool

	// SkippedBytes counts unrecognized opcode bytes that were skipped
	// during best-effort resynchronization.
	SkippedBytes int

	// FMWrites counts YM2413 passthrough events.
	FMWrites int
}

// Decode walks the command stream in a single forward pass starting at
// dataOffset and dispatches on each opcode byte. Unrecognized opcodes
// are skipped one byte at a time instead of aborting, reads past the
// buffer end terminate decoding with the events accumulated so far.
func Decode(buf []byte, dataOffset int, enablePCM bool) Result {
	d := &decoder{
		cursor:    cursor.New(buf),
		pos:       dataOffset,
		enablePCM: enablePCM,
	}
	return d.run()
}

type decoder struct {
	cursor    *cursor.Cursor
	pos       int
	sample    uint32
	enablePCM bool

	result Result
}

func (d *decoder) run() Result {
	for d.pos < d.cursor.Size() && len(d.result.Events) < maxEvents {
		opcode, err := d.cursor.U8(d.pos)
		if err != nil {
			return d.result
		}

		if done := d.dispatch(opcode); done {
			return d.result
		}
	}
	return d.result
}

// dispatch handles a single opcode, returning true when decoding ends.
func (d *decoder) dispatch(opcode byte) bool {
	switch opcode {
	case opPSGWrite:
		data, err := d.cursor.U8(d.pos + 1)
		if err != nil {
			return true
		}
		d.emit(classifyPSGWrite(data, d.sample))
		d.pos += 2

	case opFMWrite:
		operands, err := d.cursor.Bytes(d.pos+1, 2)
		if err != nil {
			return true
		}
		d.emit(FMEvent{Register: operands[0], Data: operands[1], Sample: d.sample})
		d.result.FMWrites++
		d.pos += 3

	case opWait:
		count, err := d.cursor.U16LE(d.pos + 1)
		if err != nil {
			return true
		}
		d.sample += uint32(count)
		d.pos += 3

	case opWaitNTSC:
		d.sample += samplesNTSC
		d.pos++

	case opWaitPAL:
		d.sample += samplesPAL
		d.pos++

	case opEnd:
		d.emit(EndEvent{Sample: d.sample})
		d.result.Complete = true
		return true

	case opDataBlock:
		return d.dataBlock()

	default:
		// best-effort resynchronization, not strict validation
		d.result.SkippedBytes++
		d.pos++
	}
	return false
}

// dataBlock handles an embedded data block: opcode, type byte and u32 LE
// size, followed by the block payload. PCM blocks are delta-encoded when
// PCM handling is enabled, all other block types are skipped. Returns
// true when the block is truncated.
func (d *decoder) dataBlock() bool {
	blockType, err := d.cursor.U8(d.pos + 1)
	if err != nil {
		return true
	}
	size, err := d.cursor.U32LE(d.pos + 2)
	if err != nil {
		return true
	}

	data, err := d.cursor.Bytes(d.pos+dataBlockHeaderSize, int(size))
	if err != nil {
		return true
	}

	if blockType == pcmBlockType && d.enablePCM && size > 0 {
		d.emit(PCMBlockEvent{Delta: dpcm.Encode(data), Sample: d.sample})
	}
	d.pos += dataBlockHeaderSize + int(size)
	return false
}

func (d *decoder) emit(event Event) {
	d.result.Events = append(d.result.Events, event)
}

// classifyPSGWrite maps a SN76489 data byte to a tone or noise event.
// Bits 5-6 select the channel, channel 3 is the noise register.
func classifyPSGWrite(data byte, sample uint32) Event {
	channel := (data >> 5) & 0x03
	if channel == noiseChannel {
		return NoiseEvent{Register: data, Sample: sample}
	}
	return ToneEvent{
		Channel: channel,
		Period:  data & 0x3F,
		Volume:  (data >> 3) & 0x0F,
		Sample:  sample,
	}
}
