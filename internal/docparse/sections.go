// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package docparse

import (
	"regexp"
	"strings"
)

// Header patterns recognized at the start of a body line.
var (
	paramHeaderPattern  = regexp.MustCompile(`^### -param (\w+)`)
	fieldHeaderPattern  = regexp.MustCompile(`^### -field ((?:\w+\.)*\w+)`)
	returnHeaderPattern = regexp.MustCompile(`^###? -returns`)
)

// sections collects the named blocks found in a document body.
type sections struct {
	parameters  map[string]string
	fields      map[string]string
	returnValue *string
}

// scanBody runs both scan phases over the lines remaining in c.
// Phase 2 continues from wherever Phase 1 stopped; it never rewinds.
func scanBody(c *lineCursor) sections {
	s := sections{
		parameters: map[string]string{},
		fields:     map[string]string{},
	}
	scanSections(c, &s)
	if text, ok := scanReturnValue(c); ok {
		s.returnValue = &text
	}
	return s
}

// scanSections is Phase 1. It collects parameter and field blocks until
// input ends or a return header is reached. The return header is pushed
// back onto c for Phase 2. A line that ends a block is examined again as
// a header, so adjacent headers start new blocks without a gap.
func scanSections(c *lineCursor, s *sections) {
	for {
		line, ok := c.next()
		if !ok {
			return
		}
		for {
			var target map[string]string
			m := paramHeaderPattern.FindStringSubmatch(line)
			if m != nil {
				target = s.parameters
			} else if m = fieldHeaderPattern.FindStringSubmatch(line); m != nil {
				target = s.fields
			} else {
				break
			}

			text, stop, more := readBlock(c)
			if _, exists := target[m[1]]; !exists {
				target[m[1]] = text
			}
			if !more {
				return
			}
			line = stop
		}
		if returnHeaderPattern.MatchString(line) {
			c.unread(line)
			return
		}
	}
}

// scanReturnValue is Phase 2. It looks forward for the first return
// header and returns the block beneath it. Lines after that block are
// not read.
func scanReturnValue(c *lineCursor) (string, bool) {
	for line, ok := c.next(); ok; line, ok = c.next() {
		if returnHeaderPattern.MatchString(line) {
			text, _, _ := readBlock(c)
			return text, true
		}
	}
	return "", false
}

// readBlock accumulates lines until one starts with '#' or input ends.
// It returns the trimmed text and, when more is true, the heading line
// that ended the block. That line has been consumed from c and belongs
// to the caller.
func readBlock(c *lineCursor) (text, stop string, more bool) {
	var b strings.Builder
	for {
		line, ok := c.next()
		if !ok {
			return strings.TrimSpace(b.String()), "", false
		}
		if strings.HasPrefix(line, "#") {
			return strings.TrimSpace(b.String()), line, true
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
}
