// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package docparse

import (
	"bufio"
	"io"
)

// maxLineSize bounds a single markdown line. Reference pages occasionally
// carry very long table rows, well past bufio's 64 KiB default.
const maxLineSize = 1 << 20

// lineCursor is a single-pass, pull-based reader over a document's lines.
// The frontmatter splitter and both section scan phases share one cursor,
// so each stage continues exactly where the previous one stopped.
type lineCursor struct {
	scanner *bufio.Scanner
	held    string
	hasHeld bool
}

func newLineCursor(r io.Reader) *lineCursor {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &lineCursor{scanner: s}
}

// next returns the next unconsumed line. ok is false at end of input.
func (c *lineCursor) next() (line string, ok bool) {
	if c.hasHeld {
		c.hasHeld = false
		return c.held, true
	}
	if !c.scanner.Scan() {
		return "", false
	}
	return c.scanner.Text(), true
}

// unread pushes line back so the following next call returns it again.
// Only one line of push-back is supported.
func (c *lineCursor) unread(line string) {
	c.held = line
	c.hasHeld = true
}

// err reports a read error, if any, encountered by the underlying scanner.
func (c *lineCursor) err() error {
	return c.scanner.Err()
}
