package header

import (
	"fmt"
	"strconv"
	"strings"
)

// TotalUnknown is the Total of a ContentRangeSpec whose complete length is
// unknown, rendered as "*" in the field.
const TotalUnknown int64 = -1

// bytesUnit is the only range unit this library understands.
const bytesUnit = "bytes"

// RangeSpec is a single byte range from a Range field. It takes one of three
// forms:
//
//   - a closed range "first-last", with First and Last both set,
//   - an open range "first-", with Open set, running to the end of the
//     representation,
//   - a suffix range "-n", with Suffix set, naming the final First bytes.
//
// For a suffix range, First holds the suffix length and Last is unused. Both
// endpoints of a closed range are inclusive.
type RangeSpec struct {
	First  int64
	Last   int64
	Open   bool
	Suffix bool
}

// String renders the spec in the form it takes inside a Range field.
func (r RangeSpec) String() string {
	switch {
	case r.Suffix:
		return fmt.Sprintf("-%d", r.First)
	case r.Open:
		return fmt.Sprintf("%d-", r.First)
	default:
		return fmt.Sprintf("%d-%d", r.First, r.Last)
	}
}

// parseRangeInt parses a non-negative decimal with no sign, spaces, or other
// adornment.
func parseRangeInt(s string) (int64, error) {
	if s == "" {
		return 0, fmt.Errorf("byte range endpoint is empty")
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, fmt.Errorf("byte range endpoint %q is not a number", s)
		}
	}
	return strconv.ParseInt(s, 10, 64)
}

// parseRangeSpec parses a single byte range with surrounding whitespace
// already removed.
func parseRangeSpec(spec string) (RangeSpec, error) {
	dash := strings.IndexByte(spec, '-')
	if dash < 0 {
		return RangeSpec{}, fmt.Errorf("byte range %q has no dash", spec)
	}

	firstStr, lastStr := spec[:dash], spec[dash+1:]

	if firstStr == "" {
		n, err := parseRangeInt(lastStr)
		if err != nil {
			return RangeSpec{}, err
		}
		return RangeSpec{First: n, Suffix: true}, nil
	}

	first, err := parseRangeInt(firstStr)
	if err != nil {
		return RangeSpec{}, err
	}

	if lastStr == "" {
		return RangeSpec{First: first, Open: true}, nil
	}

	last, err := parseRangeInt(lastStr)
	if err != nil {
		return RangeSpec{}, err
	}

	if first > last {
		return RangeSpec{}, fmt.Errorf("byte range %q runs backwards", spec)
	}

	return RangeSpec{First: first, Last: last}, nil
}

// ParseRange parses the body of a Range field. The grammar is
// "bytes=<spec>(,<spec>)*" where each spec is "first-last", "first-", or
// "-suffix". Whitespace around specs is tolerated and empty list elements
// are skipped. At least one spec must be present.
//
// It fails with ErrHeaderSyntax if the body does not match the grammar, if a
// closed spec has first greater than last, or if the parsed set reduces to
// exactly one zero-length suffix spec, which names no bytes at all.
func ParseRange(body string) ([]RangeSpec, error) {
	if !strings.HasPrefix(body, bytesUnit+"=") {
		return nil, fmt.Errorf("%w: Range %q is not a byte range", ErrHeaderSyntax, body)
	}

	parts := strings.Split(body[len(bytesUnit)+1:], ",")
	specs := make([]RangeSpec, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		spec, err := parseRangeSpec(part)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrHeaderSyntax, err)
		}

		specs = append(specs, spec)
	}

	if len(specs) == 0 {
		return nil, fmt.Errorf("%w: Range %q names no ranges", ErrHeaderSyntax, body)
	}

	if len(specs) == 1 && specs[0].Suffix && specs[0].First == 0 {
		return nil, fmt.Errorf("%w: Range %q is a single zero-length suffix", ErrHeaderSyntax, body)
	}

	return specs, nil
}

// checkRanges validates a byte range set before it is rendered.
func checkRanges(rs []RangeSpec) error {
	for _, r := range rs {
		switch {
		case r.First < 0:
			return fmt.Errorf("%w: negative byte range endpoint %d", ErrHeaderSyntax, r.First)
		case r.Suffix || r.Open:
			// a lone endpoint is all there is to check
		case r.Last < 0:
			return fmt.Errorf("%w: negative byte range endpoint %d", ErrHeaderSyntax, r.Last)
		case r.First > r.Last:
			return fmt.Errorf("%w: byte range %s runs backwards", ErrHeaderSyntax, r)
		}
	}

	if len(rs) == 1 && rs[0].Suffix && rs[0].First == 0 {
		return fmt.Errorf("%w: a single zero-length suffix names no bytes", ErrHeaderSyntax)
	}

	return nil
}

// GetRange returns the parsed byte ranges named by the Range field.
//
// It returns nil with ErrNoSuchField if the field is absent and nil with
// ErrHeaderSyntax if the field does not parse. See ParseRange.
func (h *Header) GetRange() ([]RangeSpec, error) {
	body, err := h.Get(Range)
	if err != nil {
		return nil, err
	}

	return ParseRange(body)
}

// SetRanges replaces the Range field with the given byte ranges, rendered as
// "bytes=<spec>(,<spec>)*". Called with no ranges, it deletes the field.
//
// It fails with ErrHeaderSyntax if any spec has a negative endpoint, a
// closed spec runs backwards, or the set is exactly one zero-length suffix
// spec. The header is left unchanged on failure.
func (h *Header) SetRanges(rs ...RangeSpec) error {
	if len(rs) == 0 {
		h.Delete(Range)
		return nil
	}

	if err := checkRanges(rs); err != nil {
		return err
	}

	parts := make([]string, len(rs))
	for i, r := range rs {
		parts[i] = r.String()
	}

	return h.Set(Range, Scalar(bytesUnit+"="+strings.Join(parts, ",")))
}

// SetRange replaces the Range field with the single closed byte range
// "bytes=first-last". Both endpoints are inclusive.
//
// It fails with ErrHeaderSyntax if either endpoint is negative or first is
// greater than last.
func (h *Header) SetRange(first, last int64) error {
	return h.SetRanges(RangeSpec{First: first, Last: last})
}

// SetRangeCount replaces the Range field using a byte count: a positive n
// selects the first n bytes as "bytes=0-(n-1)" and a negative n selects the
// final n bytes as "bytes=-n".
//
// It fails with ErrHeaderSyntax if n is zero, since a zero-length range
// cannot be expressed.
func (h *Header) SetRangeCount(n int64) error {
	switch {
	case n > 0:
		return h.SetRanges(RangeSpec{First: 0, Last: n - 1})
	case n < 0:
		return h.SetRanges(RangeSpec{First: -n, Suffix: true})
	default:
		return fmt.Errorf("%w: cannot express a zero-length range", ErrHeaderSyntax)
	}
}

// ContentRangeSpec is the parsed body of a Content-Range field: the
// inclusive First and Last byte positions of the satisfied range and the
// Total size of the selected representation. Total is TotalUnknown when the
// field carried "*" instead of a size.
type ContentRangeSpec struct {
	First int64
	Last  int64
	Total int64
}

// Length returns the number of bytes in the satisfied range.
func (cr ContentRangeSpec) Length() int64 {
	return cr.Last - cr.First + 1
}

// String renders the spec in the form it takes inside a Content-Range field.
func (cr ContentRangeSpec) String() string {
	total := "*"
	if cr.Total != TotalUnknown {
		total = strconv.FormatInt(cr.Total, 10)
	}
	return fmt.Sprintf("%s %d-%d/%s", bytesUnit, cr.First, cr.Last, total)
}

// ParseContentRange parses the body of a Content-Range field. The grammar is
// "bytes <first>-<last>/<total>" where total is either a byte count or "*"
// when the complete length is unknown.
//
// It fails with ErrHeaderSyntax if the body does not match the grammar or
// first is greater than last.
func ParseContentRange(body string) (ContentRangeSpec, error) {
	bad := func() (ContentRangeSpec, error) {
		return ContentRangeSpec{}, fmt.Errorf("%w: wrong Content-Range format %q", ErrHeaderSyntax, body)
	}

	if !strings.HasPrefix(body, bytesUnit+" ") {
		return bad()
	}
	rest := strings.TrimLeft(body[len(bytesUnit)+1:], " \t")

	slash := strings.IndexByte(rest, '/')
	if slash < 0 {
		return bad()
	}
	rangePart, totalPart := rest[:slash], rest[slash+1:]

	dash := strings.IndexByte(rangePart, '-')
	if dash < 0 {
		return bad()
	}

	first, err := parseRangeInt(rangePart[:dash])
	if err != nil {
		return bad()
	}

	last, err := parseRangeInt(rangePart[dash+1:])
	if err != nil {
		return bad()
	}

	if first > last {
		return ContentRangeSpec{}, fmt.Errorf("%w: Content-Range %q runs backwards", ErrHeaderSyntax, body)
	}

	total := TotalUnknown
	if totalPart != "*" {
		total, err = parseRangeInt(totalPart)
		if err != nil {
			return bad()
		}
	}

	return ContentRangeSpec{First: first, Last: last, Total: total}, nil
}

// GetContentRange returns the parsed Content-Range field.
//
// It returns the zero spec with ErrNoSuchField if the field is absent and
// with ErrHeaderSyntax if the field does not parse. See ParseContentRange.
func (h *Header) GetContentRange() (ContentRangeSpec, error) {
	body, err := h.Get(ContentRange)
	if err != nil {
		return ContentRangeSpec{}, err
	}

	return ParseContentRange(body)
}

// RangeLength returns the number of bytes in the range satisfied by the
// Content-Range field. The errors are those of GetContentRange.
func (h *Header) RangeLength() (int64, error) {
	cr, err := h.GetContentRange()
	if err != nil {
		return 0, err
	}

	return cr.Length(), nil
}

// SetContentRange replaces the Content-Range field with the given spec.
//
// It fails with ErrHeaderSyntax if the spec has a negative endpoint, runs
// backwards, or names a total that does not cover the range it claims to
// satisfy. A Total of TotalUnknown is always permitted.
func (h *Header) SetContentRange(cr ContentRangeSpec) error {
	switch {
	case cr.First < 0:
		return fmt.Errorf("%w: negative byte range endpoint %d", ErrHeaderSyntax, cr.First)
	case cr.Last < 0:
		return fmt.Errorf("%w: negative byte range endpoint %d", ErrHeaderSyntax, cr.Last)
	case cr.First > cr.Last:
		return fmt.Errorf("%w: byte range %d-%d runs backwards", ErrHeaderSyntax, cr.First, cr.Last)
	case cr.Total != TotalUnknown && cr.Total <= cr.Last:
		return fmt.Errorf("%w: total %d does not cover byte range %d-%d", ErrHeaderSyntax, cr.Total, cr.First, cr.Last)
	}

	return h.Set(ContentRange, Scalar(cr.String()))
}
