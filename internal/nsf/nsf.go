// Package nsf assembles NSF containers from translated channel tracks.
//
// The emitted file starts with the fixed 128 byte NSF header. The
// trailing payload is a private track serialization, not a bank-switched
// 6502 program: each channel is written as a tag byte, a little-endian
// record count and its records, in the order pulse 1, pulse 2, noise and
// DPCM, followed by an optional loop marker and the total sample count.
package nsf

import (
	"encoding/binary"

	"github.com/retroenv/vgm2nsf/internal/translate"
	"github.com/retroenv/vgm2nsf/internal/vgm"
)

// HeaderSize is the fixed size of an NSF header.
const HeaderSize = 128

// Signature is the NSF file marker.
var Signature = []byte{'N', 'E', 'S', 'M', 0x1A}

const (
	version      = 1
	songCount    = 1
	startingSong = 1

	// placeholder addresses, no 6502 playback driver is generated
	loadAddress = 0x8000
	initAddress = 0x8000
	playAddress = 0x8003

	playSpeedNTSC = 16666 // microseconds per frame
	playSpeedPAL  = 19997

	fieldSize = 32 // name, artist and copyright field size

	// header field offsets
	versionOffset      = 0x05
	songCountOffset    = 0x06
	startingSongOffset = 0x07
	loadOffset         = 0x08
	initOffset         = 0x0A
	playOffset         = 0x0C
	nameOffset         = 0x0E
	artistOffset       = 0x2E
	copyrightOffset    = 0x4E
	speedNTSCOffset    = 0x6E
	speedPALOffset     = 0x78
	regionOffset       = 0x7A
	soundChipsOffset   = 0x7B
)

// fallbacks for empty GD3 metadata fields
const (
	defaultName      = "Unknown Track"
	defaultArtist    = "Unknown Artist"
	defaultCopyright = "Unknown Game"
)

// payload tags
const (
	tagPulse1       = 'P'
	tagPulse2       = 'Q'
	tagNoise        = 'N'
	tagDPCM         = 'D'
	tagLoop         = 'L'
	tagTotalSamples = 'T'
)

// File is an assembled NSF file.
type File struct {
	data []byte
}

// Bytes returns the serialized file contents.
func (f *File) Bytes() []byte {
	return f.data
}

// Assemble builds the NSF file from the translated tracks and song
// metadata. It operates on validated in-memory structures only and
// cannot fail.
func Assemble(tracks *translate.Tracks, meta vgm.Metadata) *File {
	data := writeHeader(meta)
	data = writePulseTrack(data, tagPulse1, tracks.Pulse1)
	data = writePulseTrack(data, tagPulse2, tracks.Pulse2)
	data = writePulseTrack(data, tagNoise, tracks.Noise)
	data = writeDPCMTrack(data, tracks.DPCM)

	if tracks.LoopPoint != nil {
		data = append(data, tagLoop)
		data = appendU32(data, uint32(tracks.LoopPoint.Offset))
		data = appendU16(data, uint16(tracks.LoopPoint.Correlation*0xFFFF))
		data = appendU32(data, uint32(tracks.LoopPoint.Matches))
	}

	data = append(data, tagTotalSamples)
	data = appendU32(data, tracks.TotalSamples)

	return &File{data: data}
}

// writeHeader emits the fixed 128 byte header: signature, version, a
// single song, placeholder addresses, the truncated metadata fields and
// NTSC region flags with no expansion chips.
func writeHeader(meta vgm.Metadata) []byte {
	header := make([]byte, HeaderSize)
	copy(header, Signature)
	header[versionOffset] = version
	header[songCountOffset] = songCount
	header[startingSongOffset] = startingSong

	binary.LittleEndian.PutUint16(header[loadOffset:], loadAddress)
	binary.LittleEndian.PutUint16(header[initOffset:], initAddress)
	binary.LittleEndian.PutUint16(header[playOffset:], playAddress)

	writeField(header[nameOffset:], meta.TrackName, defaultName)
	writeField(header[artistOffset:], meta.Author, defaultArtist)
	writeField(header[copyrightOffset:], meta.GameName, defaultCopyright)

	binary.LittleEndian.PutUint16(header[speedNTSCOffset:], playSpeedNTSC)
	binary.LittleEndian.PutUint16(header[speedPALOffset:], playSpeedPAL)
	header[regionOffset] = 0 // NTSC
	header[soundChipsOffset] = 0

	return header
}

// writeField copies a metadata string into a fixed 32 byte header field,
// truncating instead of overflowing. Empty values use the fallback.
func writeField(field []byte, value, fallback string) {
	if value == "" {
		value = fallback
	}
	copy(field[:fieldSize], value)
}

func writePulseTrack(data []byte, tag byte, writes []translate.Write) []byte {
	data = append(data, tag)
	data = appendU32(data, uint32(len(writes)))
	for _, write := range writes {
		data = appendU32(data, write.Sample)
		data = append(data, write.Value, write.Volume)
	}
	return data
}

func writeDPCMTrack(data []byte, blocks []translate.Block) []byte {
	data = append(data, tagDPCM)
	data = appendU32(data, uint32(len(blocks)))
	for _, block := range blocks {
		data = appendU32(data, block.Sample)
		data = appendU32(data, uint32(len(block.Delta)))
		data = append(data, block.Delta...)
	}
	return data
}

func appendU16(data []byte, value uint16) []byte {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], value)
	return append(data, buf[:]...)
}

func appendU32(data []byte, value uint32) []byte {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], value)
	return append(data, buf[:]...)
}
