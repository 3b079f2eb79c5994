package cli

import (
	"errors"
	"os"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/vgm2nsf/internal/options"
)

func TestParseFlags_ConversionOptions(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want options.Conversion
	}{
		{
			name: "default flags",
			args: []string{"prog", "test.vgm"},
			want: options.NewConversion(),
		},
		{
			name: "nonoise flag",
			args: []string{"prog", "-nonoise", "test.vgm"},
			want: options.Conversion{EnablePCM: true, DetectLoops: true, LoopThreshold: 0.85},
		},
		{
			name: "nopcm flag",
			args: []string{"prog", "-nopcm", "test.vgm"},
			want: options.Conversion{PreserveNoiseChannel: true, DetectLoops: true, LoopThreshold: 0.85},
		},
		{
			name: "noloops flag",
			args: []string{"prog", "-noloops", "test.vgm"},
			want: options.Conversion{PreserveNoiseChannel: true, EnablePCM: true, LoopThreshold: 0.85},
		},
		{
			name: "loop threshold",
			args: []string{"prog", "-loopthreshold", "0.9", "test.vgm"},
			want: options.Conversion{PreserveNoiseChannel: true, EnablePCM: true, DetectLoops: true, LoopThreshold: 0.9},
		},
		{
			name: "loop threshold clamped low",
			args: []string{"prog", "-loopthreshold", "0.1", "test.vgm"},
			want: options.Conversion{PreserveNoiseChannel: true, EnablePCM: true, DetectLoops: true, LoopThreshold: options.MinLoopThreshold},
		},
		{
			name: "loop threshold clamped high",
			args: []string{"prog", "-loopthreshold", "1.5", "test.vgm"},
			want: options.Conversion{PreserveNoiseChannel: true, EnablePCM: true, DetectLoops: true, LoopThreshold: options.MaxLoopThreshold},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldArgs := os.Args
			t.Cleanup(func() { os.Args = oldArgs })

			os.Args = tt.args

			opts, got, err := ParseFlags()
			assert.NoError(t, err)
			assert.Equal(t, "test.vgm", opts.Input)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFlags_MissingInput(t *testing.T) {
	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })

	os.Args = []string{"prog"}

	_, _, err := ParseFlags()
	assert.Error(t, err)

	var usageErr *UsageError
	assert.True(t, errors.As(err, &usageErr))
}

func TestParseFlags_ArgumentAfterInput(t *testing.T) {
	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })

	os.Args = []string{"prog", "test.vgm", "-q"}

	_, _, err := ParseFlags()
	assert.Error(t, err)
}

func TestParseFlags_BatchMode(t *testing.T) {
	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })

	os.Args = []string{"prog", "-batch", "*.vgm"}

	opts, _, err := ParseFlags()
	assert.NoError(t, err)
	assert.Equal(t, "*.vgm", opts.Batch)
	assert.Equal(t, "", opts.Input)
}
