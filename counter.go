package cat

// LineCounter numbers output lines across every unit of one run. It also
// carries the scan state that must survive buffer boundaries, so the same
// counter has to be passed to every Transform call of a run. The zero value
// is ready to use and numbers from 1.
type LineCounter struct {
	emitted   int
	inLine    bool
	prevBlank bool
}

// Next returns the number the next numbered line will get.
func (c *LineCounter) Next() int {
	return c.emitted + 1
}

// Lines returns how many line numbers have been emitted.
func (c *LineCounter) Lines() int {
	return c.emitted
}

// InLine reports whether the last transformed byte left a line open.
func (c *LineCounter) InLine() bool {
	return c.inLine
}

func (c *LineCounter) advance() int {
	c.emitted++
	return c.emitted
}

// observe updates line state for buf emitted unchanged.
func (c *LineCounter) observe(buf []byte) {
	last := buf[len(buf)-1]
	if last != '\n' {
		c.inLine = true
		c.prevBlank = false
		return
	}
	if len(buf) >= 2 {
		c.prevBlank = buf[len(buf)-2] == '\n'
	} else {
		c.prevBlank = !c.inLine
	}
	c.inLine = false
}
