// Package options contains the program options.
package options

// loop threshold bounds of the loop detector
const (
	MinLoopThreshold     = 0.5
	MaxLoopThreshold     = 1.0
	DefaultLoopThreshold = 0.85
)

// Program options of the converter.
type Program struct {
	Input  string
	Output string
	Batch  string

	Debug  bool
	Quiet  bool
	Verify bool
}

// Conversion defines options to control the conversion pipeline.
// The struct is immutable per call, there is no global mutable
// configuration.
type Conversion struct {
	PreserveNoiseChannel bool
	EnablePCM            bool
	DetectLoops          bool
	LoopThreshold        float64
}

// NewConversion returns a new options instance with default options.
func NewConversion() Conversion {
	return Conversion{
		PreserveNoiseChannel: true,
		EnablePCM:            true,
		DetectLoops:          true,
		LoopThreshold:        DefaultLoopThreshold,
	}
}

// Normalize clamps the loop threshold to its valid range.
func (c *Conversion) Normalize() {
	if c.LoopThreshold < MinLoopThreshold {
		c.LoopThreshold = MinLoopThreshold
	}
	if c.LoopThreshold > MaxLoopThreshold {
		c.LoopThreshold = MaxLoopThreshold
	}
}
