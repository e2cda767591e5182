package header

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// Errors returned by the low-level storage methods.
var (
	// ErrNoSuchField is returned by header methods when the operation being
	// performed failed because the field named does not exist.
	ErrNoSuchField = errors.New("no such header field")

	// ErrBadFieldName is returned by header modification methods when a field
	// name contains a carriage return or line feed.
	ErrBadFieldName = errors.New("header field name cannot contain CR or LF")

	// ErrBadFieldValue is returned by header modification methods when a field
	// value contains a carriage return or line feed.
	ErrBadFieldValue = errors.New("header field value cannot contain CR or LF")
)

// Verbose enables diagnostics for the conditions Initialize tolerates,
// skipped nil values and duplicate names. The flag belongs to the surrounding
// application and has no effect on correctness, only on logging.
var Verbose = false

// Logger receives the diagnostics enabled by Verbose. It discards everything
// until the application replaces it.
var Logger = zerolog.Nop()

// Base is the low-level storage for a header. It maps canonical (lowercased)
// field names to ordered lists of values, preserves the insertion order of
// names for iteration, and refuses to store any name or value containing a
// carriage return or line feed. A header serialized from a Base therefore
// cannot be corrupted by its contents.
//
// The zero value is an empty header ready for use.
type Base struct {
	lbr    Break
	names  []string
	fields map[string][]string
}

// initBase initializes the Break and fields values lazily.
func (h *Base) initBase() {
	if h.lbr == "" {
		h.lbr = CRLF
	}
	if h.fields == nil {
		h.names = make([]string, 0, 10)
		h.fields = make(map[string][]string, 10)
	}
}

// CanonicalName returns the canonical form of a field name, the lowercased
// form used for storage and lookup.
func CanonicalName(name string) string {
	return strings.ToLower(name)
}

// CapitalizeName returns the display form of a field name: each
// dash-separated segment has its first letter upcased and the rest downcased,
// so "content-TYPE" becomes "Content-Type". This is cosmetic only and never
// affects lookup.
func CapitalizeName(name string) string {
	parts := strings.Split(strings.ToLower(name), "-")
	for i, part := range parts {
		if part == "" {
			continue
		}
		parts[i] = strings.ToUpper(part[:1]) + part[1:]
	}
	return strings.Join(parts, "-")
}

// checkName verifies that a field name is storable.
func checkName(name string) error {
	if strings.ContainsAny(name, "\r\n") {
		return fmt.Errorf("%w: %q", ErrBadFieldName, name)
	}
	return nil
}

// checkValues verifies that every value in vs is storable.
func checkValues(name string, vs []string) error {
	for _, v := range vs {
		if strings.ContainsAny(v, "\r\n") {
			return fmt.Errorf("%w: %s: %q", ErrBadFieldValue, name, v)
		}
	}
	return nil
}

// Break returns the line break used to separate header fields and terminate
// the header.
func (h *Base) Break() Break {
	if h.lbr == "" {
		h.lbr = CRLF
	}
	return h.lbr
}

// SetBreak changes the line break to use with this header.
func (h *Base) SetBreak(lbr Break) {
	h.lbr = lbr
}

// Initialize replaces the entire contents of the header with the given pairs.
// Each value is trimmed of leading and trailing whitespace before storage,
// which the other modification methods never do. A pair with a nil Value is
// skipped. A name repeated in the input overwrites the values stored for the
// earlier occurrence, which keeps its original position. Both conditions are
// reported through Logger when Verbose is set; neither is an error.
//
// If any name or value cannot be stored, Initialize fails and the header is
// left unchanged.
func (h *Base) Initialize(fields Pairs) error {
	type entry struct {
		name string
		vs   []string
	}

	entries := make([]entry, 0, len(fields))
	for _, p := range fields {
		if p.Value == nil {
			if Verbose {
				Logger.Warn().Str("name", p.Name).Msg("ignoring header field with nil value")
			}
			continue
		}

		if err := checkName(p.Name); err != nil {
			return err
		}

		vs := expandValue(p.Value)
		if len(vs) == 0 {
			continue
		}

		for i, v := range vs {
			vs[i] = strings.TrimSpace(v)
		}

		if err := checkValues(p.Name, vs); err != nil {
			return err
		}

		entries = append(entries, entry{p.Name, vs})
	}

	h.initBase()
	h.names = h.names[:0]
	for n := range h.fields {
		delete(h.fields, n)
	}

	for _, e := range entries {
		n := CanonicalName(e.name)
		if _, dup := h.fields[n]; dup {
			if Verbose {
				Logger.Warn().Str("name", e.name).Msg("duplicate header field overwritten")
			}
		} else {
			h.names = append(h.names, n)
		}
		h.fields[n] = e.vs
	}

	return nil
}

// Get returns all the values stored for the named field joined with ", ".
//
// It returns an empty string with ErrNoSuchField if the field is not set on
// the header.
func (h *Base) Get(name string) (string, error) {
	vs, found := h.fields[CanonicalName(name)]
	if !found {
		return "", ErrNoSuchField
	}
	return strings.Join(vs, ", "), nil
}

// GetAll returns a copy of the raw list of values stored for the named field,
// in append order.
//
// It returns nil with ErrNoSuchField if the field is not set on the header.
func (h *Base) GetAll(name string) ([]string, error) {
	vs, found := h.fields[CanonicalName(name)]
	if !found {
		return nil, ErrNoSuchField
	}

	out := make([]string, len(vs))
	copy(out, vs)
	return out, nil
}

// Set replaces the values of the named field with the expansion of the given
// Value. Setting a nil Value deletes the field, as does a Value that expands
// to nothing. A field that already exists keeps its position in the header; a
// new field is appended at the end. Unlike Initialize, Set stores values
// exactly as given, without trimming.
//
// If the name or any expanded value contains a carriage return or line feed,
// Set fails with ErrBadFieldName or ErrBadFieldValue and the header is left
// unchanged.
func (h *Base) Set(name string, v Value) error {
	if err := checkName(name); err != nil {
		return err
	}

	vs := expandValue(v)
	if len(vs) == 0 {
		h.Delete(name)
		return nil
	}

	if err := checkValues(name, vs); err != nil {
		return err
	}

	h.initBase()

	n := CanonicalName(name)
	if _, found := h.fields[n]; !found {
		h.names = append(h.names, n)
	}
	h.fields[n] = vs

	return nil
}

// Add appends the expansion of the given Value to the values of the named
// field, creating the field at the end of the header if it is absent. A nil
// Value or one that expands to nothing is a no-op. The same validation rules
// apply as for Set.
func (h *Base) Add(name string, v Value) error {
	if err := checkName(name); err != nil {
		return err
	}

	vs := expandValue(v)
	if len(vs) == 0 {
		return nil
	}

	if err := checkValues(name, vs); err != nil {
		return err
	}

	h.initBase()

	n := CanonicalName(name)
	if _, found := h.fields[n]; !found {
		h.names = append(h.names, n)
	}
	h.fields[n] = append(h.fields[n], vs...)

	return nil
}

// Delete removes the named field from the header. Deleting an absent field is
// a no-op.
func (h *Base) Delete(name string) {
	n := CanonicalName(name)
	if _, found := h.fields[n]; !found {
		return
	}

	delete(h.fields, n)
	for i, k := range h.names {
		if k == n {
			h.names = append(h.names[:i], h.names[i+1:]...)
			break
		}
	}
}

// Has reports whether the named field is set on the header.
func (h *Base) Has(name string) bool {
	_, found := h.fields[CanonicalName(name)]
	return found
}

// Len returns the number of distinct fields in the header.
func (h *Base) Len() int {
	return len(h.names)
}

// Field is a single name/value snapshot produced by Fields. Name is the
// canonical form of the field name and Value is all the field's values joined
// with ", ".
type Field struct {
	Name  string
	Value string
}

// Fields returns a snapshot of the header as name/value pairs in field
// insertion order, each field's values joined with ", ". The snapshot is
// independent of the header, so it remains stable while the header changes
// and a fresh call restarts the iteration.
func (h *Base) Fields() []Field {
	fs := make([]Field, len(h.names))
	for i, n := range h.names {
		fs[i] = Field{Name: n, Value: strings.Join(h.fields[n], ", ")}
	}
	return fs
}

// Names returns the canonical field names in insertion order.
func (h *Base) Names() []string {
	ns := make([]string, len(h.names))
	copy(ns, h.names)
	return ns
}

// CapitalizedNames returns the display form of the field names in insertion
// order. See CapitalizeName.
func (h *Base) CapitalizedNames() []string {
	ns := make([]string, len(h.names))
	for i, n := range h.names {
		ns[i] = CapitalizeName(n)
	}
	return ns
}

// Values returns the joined values of every field in insertion order.
func (h *Base) Values() []string {
	vs := make([]string, len(h.names))
	for i, n := range h.names {
		vs[i] = strings.Join(h.fields[n], ", ")
	}
	return vs
}

// Map returns a copy of the entire header as a map of canonical names to
// value lists.
func (h *Base) Map() map[string][]string {
	m := make(map[string][]string, len(h.fields))
	for n, vs := range h.fields {
		out := make([]string, len(vs))
		copy(out, vs)
		m[n] = out
	}
	return m
}

// WriteTo writes the header to the given writer, one line per field in the
// form "Name: value1, value2" using the display capitalization of each name,
// each line ending with the header's Break, with a final bare break
// terminating the header. An empty header writes nothing.
func (h *Base) WriteTo(w io.Writer) (int64, error) {
	if len(h.names) == 0 {
		return 0, nil
	}

	var total int64
	for _, n := range h.names {
		m, err := fmt.Fprintf(w, "%s: %s%s",
			CapitalizeName(n), strings.Join(h.fields[n], ", "), h.Break())
		total += int64(m)
		if err != nil {
			return total, err
		}
	}

	m, err := w.Write(h.Break().Bytes())
	total += int64(m)
	return total, err
}

// Bytes returns the rendered header as a slice of bytes.
func (h *Base) Bytes() []byte {
	var buf bytes.Buffer
	_, _ = h.WriteTo(&buf)
	return buf.Bytes()
}

// String returns the rendered header as a string.
func (h *Base) String() string {
	return string(h.Bytes())
}

// Clone returns a deep copy of the header storage.
func (h *Base) Clone() *Base {
	names := make([]string, len(h.names))
	copy(names, h.names)

	fields := make(map[string][]string, len(h.fields))
	for n, vs := range h.fields {
		out := make([]string, len(vs))
		copy(out, vs)
		fields[n] = out
	}

	return &Base{
		lbr:    h.lbr,
		names:  names,
		fields: fields,
	}
}
