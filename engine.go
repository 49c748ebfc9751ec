package cat

import (
	"errors"
	"fmt"
	"io"
)

// ErrNilWriter reports an Engine or Concat call without a destination.
var ErrNilWriter = errors.New("writer is nil")

const (
	// flushThreshold bounds the scratch output kept before it is written.
	flushThreshold = 32 << 10
	// maxRetainedScratch caps the scratch capacity kept between calls.
	maxRetainedScratch = 4 * flushThreshold
)

// Engine applies FormatOptions to byte buffers and writes the result to an
// io.Writer. Every byte of a buffer is visited exactly once. Numbering and
// blank-line state live in the LineCounter so that consecutive buffers, even
// ones split in the middle of a line, produce the same output as their
// concatenation.
type Engine struct {
	w       io.Writer
	opts    FormatOptions
	counter *LineCounter
	out     []byte

	outArr [4096]byte
}

// NewEngine creates an Engine writing to w. A nil counter starts a fresh
// LineCounter.
func NewEngine(w io.Writer, opts FormatOptions, counter *LineCounter) *Engine {
	e := &Engine{}
	e.reset(w, opts, counter)
	return e
}

// Reset points the engine at a new writer and counter, keeping its options.
func (e *Engine) Reset(w io.Writer, counter *LineCounter) {
	e.reset(w, e.opts, counter)
}

func (e *Engine) reset(w io.Writer, opts FormatOptions, counter *LineCounter) {
	if counter == nil {
		counter = &LineCounter{}
	}
	e.w = w
	e.opts = opts.normalize()
	e.counter = counter
	if e.out == nil || cap(e.out) > maxRetainedScratch {
		e.out = e.outArr[:0]
	}
	e.out = e.out[:0]
}

// release drops references to the writer and counter before pooling.
func (e *Engine) release() {
	e.w = nil
	e.counter = nil
	e.opts = FormatOptions{}
	if cap(e.out) > maxRetainedScratch {
		e.out = e.outArr[:0]
	}
	e.out = e.out[:0]
}

// Options returns the normalized options in effect.
func (e *Engine) Options() FormatOptions {
	return e.opts
}

// Counter returns the LineCounter the engine updates.
func (e *Engine) Counter() *LineCounter {
	return e.counter
}

// Write transforms p. It implements io.Writer so an Engine can sit at the
// end of io.Copy.
func (e *Engine) Write(p []byte) (int, error) {
	if err := e.Transform(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Transform applies the engine's options to buf and writes the result. buf
// is neither modified nor retained.
func (e *Engine) Transform(buf []byte) error {
	if e.w == nil {
		return ErrNilWriter
	}
	if len(buf) == 0 {
		return nil
	}
	if e.opts.Identity() {
		e.counter.observe(buf)
		return e.write(buf)
	}

	opts := e.opts
	c := e.counter
	out := e.out[:0]
	for _, b := range buf {
		if len(out) >= flushThreshold {
			if err := e.write(out); err != nil {
				return err
			}
			out = out[:0]
		}
		if !c.inLine {
			if b == '\n' {
				if opts.SqueezeBlank && c.prevBlank {
					continue
				}
				c.prevBlank = true
				if opts.Number {
					out = appendLineNumber(out, c.advance())
				}
				if opts.ShowEnds {
					out = append(out, '$')
				}
				out = append(out, '\n')
				continue
			}
			c.prevBlank = false
			c.inLine = true
			if opts.numbering() {
				out = appendLineNumber(out, c.advance())
			}
		}
		switch {
		case b == '\n':
			if opts.ShowEnds {
				out = append(out, '$')
			}
			out = append(out, '\n')
			c.inLine = false
		case b == '\t':
			if opts.ShowTabs {
				out = append(out, '^', 'I')
			} else {
				out = append(out, b)
			}
		case opts.ShowNonprinting && !isPrintable(b):
			out = appendCaret(out, b)
		default:
			out = append(out, b)
		}
	}
	e.out = out[:0]
	if cap(e.out) > maxRetainedScratch {
		e.out = e.outArr[:0]
	}
	return e.write(out)
}

func (e *Engine) write(p []byte) error {
	if len(p) == 0 {
		return nil
	}
	if _, err := e.w.Write(p); err != nil {
		return fmt.Errorf("transform: write: %w", err)
	}
	return nil
}
