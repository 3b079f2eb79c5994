// Package vgm implements parsing of VGM command streams recorded from
// SN76489-class sound chips.
package vgm

import (
	"errors"
	"fmt"

	"github.com/retroenv/vgm2nsf/internal/cursor"
)

// ErrInvalidSignature is returned for buffers that do not start with the VGM marker.
var ErrInvalidSignature = errors.New("invalid VGM signature")

const (
	signature = "Vgm "

	// header field offsets
	versionOffset       = 8
	sn76489ClockOffset  = 12
	ym2413ClockOffset   = 16
	gd3Offset           = 20
	totalSamplesOffset  = 24
	loopOffsetOffset    = 28
	loopSamplesOffset   = 32
	dataOffsetOffset    = 52
	minHeaderSize       = 56
	legacyDataOffset    = 0x40    // files predating the data offset field start here
	defaultSN76489Clock = 3579545 // NTSC master clock in Hz
)

// Header holds the fixed-offset fields of a VGM file header.
type Header struct {
	Version         uint32
	SN76489ClockHz  uint32
	YM2413ClockHz   uint32
	GD3Offset       uint32
	TotalSamples    uint32
	LoopOffset      uint32
	LoopSampleCount uint32
	DataOffset      int // absolute offset of the command stream start
}

// ParseHeader parses the fixed VGM header fields from the buffer.
// It fails on a missing signature or a buffer too short to hold the
// header, any other field value is accepted.
func ParseHeader(buf []byte) (Header, error) {
	c := cursor.New(buf)

	sig, err := c.Bytes(0, 4)
	if err != nil {
		return Header{}, fmt.Errorf("reading signature: %w", err)
	}
	if string(sig) != signature {
		return Header{}, fmt.Errorf("%w: got %q", ErrInvalidSignature, sig)
	}

	if c.Size() < minHeaderSize {
		return Header{}, fmt.Errorf("reading header fields: %w",
			&cursor.OutOfBoundsError{Offset: 0, Length: minHeaderSize, Size: c.Size()})
	}

	var header Header
	fields := []struct {
		offset int
		target *uint32
	}{
		{versionOffset, &header.Version},
		{sn76489ClockOffset, &header.SN76489ClockHz},
		{ym2413ClockOffset, &header.YM2413ClockHz},
		{gd3Offset, &header.GD3Offset},
		{totalSamplesOffset, &header.TotalSamples},
		{loopOffsetOffset, &header.LoopOffset},
		{loopSamplesOffset, &header.LoopSampleCount},
	}
	for _, field := range fields {
		value, err := c.U32LE(field.offset)
		if err != nil {
			return Header{}, fmt.Errorf("reading header field at offset %d: %w", field.offset, err)
		}
		*field.target = value
	}

	relative, err := c.U32LE(dataOffsetOffset)
	if err != nil {
		return Header{}, fmt.Errorf("reading data offset: %w", err)
	}
	if relative == 0 {
		header.DataOffset = legacyDataOffset
	} else {
		header.DataOffset = dataOffsetOffset + int(relative)
	}

	if header.SN76489ClockHz == 0 {
		header.SN76489ClockHz = defaultSN76489Clock
	}

	return header, nil
}
