package verification

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/vgm2nsf/internal/nsf"
	"github.com/retroenv/vgm2nsf/internal/translate"
	"github.com/retroenv/vgm2nsf/internal/vgm"
)

func writeTestFile(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "out.nsf")
	assert.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestVerifyOutput(t *testing.T) {
	song := &vgm.Song{
		Metadata: vgm.Metadata{TrackName: "Bridge Zone", Author: "Yuzo Koshiro"},
	}
	file := nsf.Assemble(&translate.Tracks{}, song.Metadata)
	path := writeTestFile(t, file.Bytes())

	err := VerifyOutput(log.NewTestLogger(t), path, song)
	assert.NoError(t, err)
}

func TestVerifyOutputCorrupted(t *testing.T) {
	song := &vgm.Song{}
	file := nsf.Assemble(&translate.Tracks{}, song.Metadata)

	tests := []struct {
		name    string
		corrupt func(data []byte) []byte
	}{
		{"truncated file", func(data []byte) []byte { return data[:64] }},
		{"bad signature", func(data []byte) []byte {
			data[0] = 'X'
			return data
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := make([]byte, len(file.Bytes()))
			copy(data, file.Bytes())
			path := writeTestFile(t, tt.corrupt(data))

			err := VerifyOutput(log.NewTestLogger(t), path, song)
			assert.Error(t, err)
		})
	}
}

func TestVerifyOutputMetadataMismatch(t *testing.T) {
	song := &vgm.Song{
		Metadata: vgm.Metadata{TrackName: "Bridge Zone"},
	}
	file := nsf.Assemble(&translate.Tracks{}, vgm.Metadata{TrackName: "Other Track"})
	path := writeTestFile(t, file.Bytes())

	err := VerifyOutput(log.NewTestLogger(t), path, song)
	assert.Error(t, err)
}

func TestVerifyOutputMissingFile(t *testing.T) {
	err := VerifyOutput(log.NewTestLogger(t), filepath.Join(t.TempDir(), "missing.nsf"), &vgm.Song{})
	assert.Error(t, err)
}
