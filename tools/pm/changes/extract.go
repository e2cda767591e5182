// Package changes works with the Changes.md file format used by this
// project: an optional WIP heading on the first line, then version headings
// of the form "v1.2.3  2023-02-11" in descending order, each followed by
// " * " bullets.
package changes

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
)

// ExtractSection returns a reader over the bullets written below the
// changelog heading for the given version tag. The section runs from the
// heading matching vstring to the next version heading or the end of the
// file, with surrounding blank lines dropped. It returns an error if the
// changelog cannot be read or no heading names the version.
func ExtractSection(fn string, vstring string) (io.Reader, error) {
	r, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }()

	var (
		vprefix = vstring + "  "
		started = false
		pending = 0
		buf     = &bytes.Buffer{}
	)

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()

		if !started {
			started = strings.HasPrefix(line, vprefix)
			continue
		}

		if versionHeading.MatchString(line) {
			break
		}

		// hold blank lines back so the section never ends with one
		if line == "" {
			pending++
			continue
		}

		if buf.Len() > 0 && pending > 0 {
			buf.WriteString(strings.Repeat("\n", pending))
		}
		pending = 0
		buf.WriteString(line)
		buf.WriteRune('\n')
	}

	if err := sc.Err(); err != nil {
		return nil, err
	}

	if !started {
		return nil, fmt.Errorf("a change log section for version %s was not found", vstring)
	}

	return buf, nil
}
