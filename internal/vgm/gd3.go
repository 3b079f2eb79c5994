package vgm

import (
	"golang.org/x/text/encoding/unicode"
)

const (
	gd3Signature = "Gd3 "

	// signature + version + data length precede the string table
	gd3StringTableOffset = 12

	// limit for the fallback heuristic scan
	gd3ScanWindow = 500

	gd3FieldCount = 4
)

// Metadata holds the GD3 tag strings of a VGM file.
// Fields are empty when the tag is missing or malformed, metadata
// extraction never fails a conversion.
type Metadata struct {
	TrackName  string
	GameName   string
	SystemName string
	Author     string
}

// ParseGD3 extracts the GD3 metadata block starting at the given offset.
// A valid "Gd3 " signature selects the UTF-16LE string table decoder,
// anything else falls back to a bounded printable-ASCII scan. Both paths
// degrade to empty fields instead of failing.
func ParseGD3(buf []byte, offset int) Metadata {
	if offset <= 0 || offset+len(gd3Signature) > len(buf) {
		return Metadata{}
	}

	var fields []string
	if string(buf[offset:offset+len(gd3Signature)]) == gd3Signature {
		fields = parseGD3StringTable(buf[offset:])
	} else {
		fields = scanPrintableStrings(buf[offset+len(gd3Signature):])
	}

	var meta Metadata
	targets := []*string{&meta.TrackName, &meta.GameName, &meta.SystemName, &meta.Author}
	for i, target := range targets {
		if i < len(fields) {
			*target = fields[i]
		}
	}
	return meta
}

// parseGD3StringTable decodes the null-terminated UTF-16LE strings of a
// GD3 tag. The table interleaves English and Japanese variants, the
// English entries at indices 0, 2, 4 and 6 map to track name, game name,
// system name and author.
func parseGD3StringTable(tag []byte) []string {
	if len(tag) < gd3StringTableOffset {
		return nil
	}
	table := tag[gd3StringTableOffset:]
	decoder := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()

	var raw []string
	start := 0
	// the English fields end at table index 7, no need to decode further
	for len(raw) < 8 {
		end := start
		for ; end+1 < len(table); end += 2 {
			if table[end] == 0 && table[end+1] == 0 {
				break
			}
		}
		if end+1 >= len(table) { // unterminated string, table is truncated
			break
		}

		decoded, err := decoder.Bytes(table[start:end])
		if err != nil {
			return nil
		}
		raw = append(raw, string(decoded))
		start = end + 2
	}

	fields := make([]string, 0, gd3FieldCount)
	for i := 0; i < len(raw) && len(fields) < gd3FieldCount; i += 2 {
		fields = append(fields, raw[i])
	}
	return fields
}

// scanPrintableStrings collects printable-ASCII runs from a bounded
// window, treating a double null byte as the string terminator. This
// recovers ASCII content from tags with unknown framing.
func scanPrintableStrings(data []byte) []string {
	window := data
	if len(window) > gd3ScanWindow {
		window = window[:gd3ScanWindow]
	}

	var fields []string
	var run []byte
	for i := 0; i < len(window) && len(fields) < gd3FieldCount; i++ {
		b := window[i]
		switch {
		case b >= 32 && b <= 126:
			run = append(run, b)
		case b == 0 && len(run) > 0 && i+1 < len(window) && window[i+1] == 0:
			fields = append(fields, string(run))
			run = nil
			i++
		}
	}
	return fields
}
