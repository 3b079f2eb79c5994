package vgm

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

// newHeaderBuffer creates a minimal buffer holding a valid VGM header.
func newHeaderBuffer() []byte {
	buf := make([]byte, minHeaderSize)
	copy(buf, "Vgm ")
	return buf
}

func TestParseHeaderInvalidSignature(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty buffer", nil},
		{"short buffer", []byte{'V', 'g'}},
		{"wrong marker", []byte("NESM\x1a\x00\x00\x00")},
		{"lowercase marker", append([]byte("vgm "), make([]byte, 60)...)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseHeader(tt.data)
			assert.Error(t, err)
			if len(tt.data) >= 4 {
				assert.True(t, errors.Is(err, ErrInvalidSignature))
			}
		})
	}
}

func TestParseHeaderFields(t *testing.T) {
	buf := newHeaderBuffer()
	binary.LittleEndian.PutUint32(buf[versionOffset:], 0x161)
	binary.LittleEndian.PutUint32(buf[sn76489ClockOffset:], 3546893)
	binary.LittleEndian.PutUint32(buf[ym2413ClockOffset:], 3579545)
	binary.LittleEndian.PutUint32(buf[gd3Offset:], 0x1000)
	binary.LittleEndian.PutUint32(buf[totalSamplesOffset:], 441000)
	binary.LittleEndian.PutUint32(buf[loopOffsetOffset:], 0x80)
	binary.LittleEndian.PutUint32(buf[loopSamplesOffset:], 88200)
	binary.LittleEndian.PutUint32(buf[dataOffsetOffset:], 0x0C)

	header, err := ParseHeader(buf)
	assert.NoError(t, err)
	assert.Equal(t, uint32(0x161), header.Version)
	assert.Equal(t, uint32(3546893), header.SN76489ClockHz)
	assert.Equal(t, uint32(3579545), header.YM2413ClockHz)
	assert.Equal(t, uint32(0x1000), header.GD3Offset)
	assert.Equal(t, uint32(441000), header.TotalSamples)
	assert.Equal(t, uint32(0x80), header.LoopOffset)
	assert.Equal(t, uint32(88200), header.LoopSampleCount)
	assert.Equal(t, dataOffsetOffset+0x0C, header.DataOffset)
}

func TestParseHeaderDataOffsetDefaults(t *testing.T) {
	buf := newHeaderBuffer()

	header, err := ParseHeader(buf)
	assert.NoError(t, err)
	assert.Equal(t, legacyDataOffset, header.DataOffset)

	binary.LittleEndian.PutUint32(buf[dataOffsetOffset:], 0x40)
	header, err = ParseHeader(buf)
	assert.NoError(t, err)
	assert.Equal(t, dataOffsetOffset+0x40, header.DataOffset)
}

func TestParseHeaderClockDefault(t *testing.T) {
	buf := newHeaderBuffer()

	header, err := ParseHeader(buf)
	assert.NoError(t, err)
	assert.Equal(t, uint32(defaultSN76489Clock), header.SN76489ClockHz)
}

func TestParseHeaderTruncated(t *testing.T) {
	buf := newHeaderBuffer()[:20]

	_, err := ParseHeader(buf)
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrInvalidSignature))
}
