package header

import (
	"bytes"
	"fmt"
	"strings"
)

// BadStartError is returned when the parsed input begins with junk text that
// does not appear to be a header field. This text is preserved in the error
// object.
type BadStartError struct {
	// BadStart is the text found before the start of the header.
	BadStart []byte
}

// Error returns the message associated with the parse error.
func (err *BadStartError) Error() string {
	return fmt.Sprintf("header starts with text that does not appear to be a header field: %q", string(err.BadStart))
}

// detectBreak guesses the line break used by a header block.
func detectBreak(m []byte) Break {
	switch {
	case bytes.Contains(m, CRLF.Bytes()):
		return CRLF
	case bytes.Contains(m, LF.Bytes()):
		return LF
	case bytes.Contains(m, CR.Bytes()):
		return CR
	default:
		return CRLF
	}
}

// Parse will turn the given bytes into a header. It assumes the entire input
// is the header block, stopping early only at a blank line, which is where a
// header ends and a body would begin. Pass the line break the block uses or
// Meh to let Parse guess from the input.
//
// Each field is split on the first colon, with optional whitespace trimmed
// from the name and value. Lines that begin with a space or tab continue the
// previous field's value, folded in with a single space, following the
// obs-fold rule of RFC 9112. Repeated fields keep their values in input
// order.
//
// If the input begins with lines that cannot be fields at all, those lines
// are skipped and a *BadStartError describing them is returned together with
// the parsed header, which is otherwise complete and usable. A line like
// that appearing after the first field is not recoverable and fails with
// ErrHeaderSyntax.
func Parse(m []byte, lbr Break) (*Header, error) {
	if lbr == Meh {
		lbr = detectBreak(m)
	}

	h := &Header{}
	h.SetBreak(lbr)

	var badStart *BadStartError

	var name, value string
	haveField := false

	flush := func() error {
		if !haveField {
			return nil
		}
		if err := h.Add(name, Scalar(value)); err != nil {
			return err
		}
		name, value = "", ""
		haveField = false
		return nil
	}

	for _, line := range bytes.Split(m, lbr.Bytes()) {
		if len(line) == 0 {
			break
		}

		if line[0] == ' ' || line[0] == '\t' {
			if !haveField {
				badStart = appendBadStart(badStart, line, lbr)
				continue
			}
			value += " " + string(bytes.TrimSpace(line))
			continue
		}

		colon := bytes.IndexByte(line, ':')
		if colon < 0 {
			if !haveField {
				badStart = appendBadStart(badStart, line, lbr)
				continue
			}
			return nil, fmt.Errorf("%w: expected a header field, got %q", ErrHeaderSyntax, string(line))
		}

		fieldName := strings.TrimSpace(string(line[:colon]))
		if fieldName == "" {
			if !haveField {
				badStart = appendBadStart(badStart, line, lbr)
				continue
			}
			return nil, fmt.Errorf("%w: header field %q has no name", ErrHeaderSyntax, string(line))
		}

		if err := flush(); err != nil {
			return nil, err
		}

		name = fieldName
		value = strings.TrimSpace(string(line[colon+1:]))
		haveField = true
	}

	if err := flush(); err != nil {
		return nil, err
	}

	if badStart != nil {
		return h, badStart
	}

	return h, nil
}

// appendBadStart collects the lines of a bad start into a single error.
func appendBadStart(e *BadStartError, line []byte, lbr Break) *BadStartError {
	if e == nil {
		return &BadStartError{BadStart: append([]byte{}, line...)}
	}
	e.BadStart = append(e.BadStart, lbr.Bytes()...)
	e.BadStart = append(e.BadStart, line...)
	return e
}
