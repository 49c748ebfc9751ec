package cat

import "fmt"

// FormatOptions selects the line transformations applied by an Engine.
type FormatOptions struct {
	NumberNonblank  bool
	ShowEnds        bool
	Number          bool
	SqueezeBlank    bool
	ShowTabs        bool
	ShowNonprinting bool
}

// Option configures FormatOptions. Options are applied in order, so a later
// option overrides an earlier one it conflicts with.
type Option func(*FormatOptions)

// NewFormatOptions returns FormatOptions built from opts.
func NewFormatOptions(opts ...Option) FormatOptions {
	var o FormatOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// WithNumberNonblank numbers non-empty lines and clears Number.
func WithNumberNonblank() Option {
	return func(o *FormatOptions) {
		o.NumberNonblank = true
		o.Number = false
	}
}

// WithShowEnds displays $ at the end of each line.
func WithShowEnds() Option {
	return func(o *FormatOptions) {
		o.ShowEnds = true
	}
}

// WithNumber numbers all output lines and clears NumberNonblank.
func WithNumber() Option {
	return func(o *FormatOptions) {
		o.Number = true
		o.NumberNonblank = false
	}
}

// WithSqueezeBlank suppresses repeated empty output lines.
func WithSqueezeBlank() Option {
	return func(o *FormatOptions) {
		o.SqueezeBlank = true
	}
}

// WithShowTabs displays TAB characters as ^I and clears ShowNonprinting.
func WithShowTabs() Option {
	return func(o *FormatOptions) {
		o.ShowTabs = true
		o.ShowNonprinting = false
	}
}

// WithShowNonprinting uses ^ and M- notation, except for LFD and TAB, and
// clears ShowTabs.
func WithShowNonprinting() Option {
	return func(o *FormatOptions) {
		o.ShowNonprinting = true
		o.ShowTabs = false
	}
}

// Identity reports whether o leaves input bytes unchanged.
func (o FormatOptions) Identity() bool {
	return o == FormatOptions{}
}

// numbering reports whether any line numbering is active.
func (o FormatOptions) numbering() bool {
	return o.Number || o.NumberNonblank
}

// normalize resolves conflicting flags set directly on the struct.
func (o FormatOptions) normalize() FormatOptions {
	if o.NumberNonblank {
		o.Number = false
	}
	if o.ShowNonprinting {
		o.ShowTabs = false
	}
	return o
}

var shortFlags = map[byte]func() Option{
	'b': WithNumberNonblank,
	'E': WithShowEnds,
	'n': WithNumber,
	's': WithSqueezeBlank,
	'T': WithShowTabs,
	'v': WithShowNonprinting,
}

// ShortFlagOption returns the Option selected by a short command line flag
// letter (one of bEnsTv).
func ShortFlagOption(flag byte) (Option, bool) {
	fn, ok := shortFlags[flag]
	if !ok {
		return nil, false
	}
	return fn(), true
}

// ParseShortFlags builds FormatOptions from a run of short flag letters such
// as "nsE", applied left to right.
func ParseShortFlags(flags string) (FormatOptions, error) {
	opts := make([]Option, 0, len(flags))
	for i := 0; i < len(flags); i++ {
		opt, ok := ShortFlagOption(flags[i])
		if !ok {
			return FormatOptions{}, fmt.Errorf("unknown flag %q", flags[i])
		}
		opts = append(opts, opt)
	}
	return NewFormatOptions(opts...), nil
}
