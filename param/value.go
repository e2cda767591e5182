package param

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// Charset is the name of the charset parameter that may be present in the
	// Content-Type field.
	Charset = "charset"

	// Boundary is the name of the boundary parameter that may be present in
	// the Content-Type field of a multipart message.
	Boundary = "boundary"

	// Filename is the name of the filename parameter that may be present in
	// the Content-Disposition field.
	Filename = "filename"

	// FilenameExt is the name of the extended filename parameter defined by
	// RFC 8187, which carries a charset tag and a percent-encoded value.
	FilenameExt = "filename*"
)

// ErrEmptyValue is returned by Parse when the field body has no primary value
// before the first semicolon.
var ErrEmptyValue = errors.New("parameterized field has no primary value")

// Param is a single name/value parameter attached to a Value.
type Param struct {
	Name  string
	Value string
}

// Value represents a parsed parameterized header field, such as is used in
// the Content-Type and Content-Disposition fields. Parameters keep the order
// in which they were first written. A Value object is immutable: you cannot
// change it in place. However, a Modify() function is provided to perform
// transformation of a Value into a new Value.
type Value struct {
	v  string
	ks []string
	ps map[string]string
}

// Parse takes a header field body, parses it as a Value and returns it. The
// body splits on semicolons: the first segment is the primary value and each
// remaining segment splits on its first equals sign into a name/value
// parameter, everything trimmed of surrounding whitespace. A segment with no
// equals sign becomes a parameter with an empty value and a segment with no
// name is dropped. A repeated parameter keeps its first position but takes
// its last value.
//
// It returns ErrEmptyValue if the primary value is empty.
func Parse(v string) (*Value, error) {
	segs := strings.Split(v, ";")

	primary := strings.TrimSpace(segs[0])
	if primary == "" {
		return nil, fmt.Errorf("%w: %q", ErrEmptyValue, v)
	}

	val := &Value{
		v:  primary,
		ks: make([]string, 0, len(segs)-1),
		ps: make(map[string]string, len(segs)-1),
	}

	for _, seg := range segs[1:] {
		kv := strings.SplitN(seg, "=", 2)
		name := strings.TrimSpace(kv[0])
		if name == "" {
			continue
		}

		var pval string
		if len(kv) == 2 {
			pval = strings.TrimSpace(kv[1])
		}

		if _, found := val.ps[name]; !found {
			val.ks = append(val.ks, name)
		}
		val.ps[name] = pval
	}

	return val, nil
}

// New creates a new parameterized header field value with the given
// parameters, if any.
func New(v string, ps ...Param) *Value {
	val := &Value{
		v:  v,
		ks: make([]string, 0, len(ps)),
		ps: make(map[string]string, len(ps)),
	}

	for _, p := range ps {
		if _, found := val.ps[p.Name]; !found {
			val.ks = append(val.ks, p.Name)
		}
		val.ps[p.Name] = p.Value
	}

	return val
}

// Modifier is a modification to apply to a Value when calling the Modify()
// function.
type Modifier func(*Value)

// Change is a Modifier that replaces the primary value of the Value.
func Change(value string) Modifier {
	return func(pv *Value) {
		pv.v = value
	}
}

// Set is a Modifier that sets a parameter with the given name on the Value.
// An existing parameter keeps its position; a new one is appended at the end.
func Set(name, value string) Modifier {
	return func(pv *Value) {
		if _, found := pv.ps[name]; !found {
			pv.ks = append(pv.ks, name)
		}
		pv.ps[name] = value
	}
}

// Delete is a Modifier that removes the parameter with the given name from
// the Value.
func Delete(name string) Modifier {
	return func(pv *Value) {
		if _, found := pv.ps[name]; !found {
			return
		}

		delete(pv.ps, name)
		for i, k := range pv.ks {
			if k == name {
				pv.ks = append(pv.ks[:i], pv.ks[i+1:]...)
				break
			}
		}
	}
}

// Modify clones a Value, applies the given modifications (if any) and returns
// the new Value. You can pass multiple changes to this function:
//
//	v, _ := param.Parse("multipart/form-data; boundary=abc123; charset=latin1")
//	nv := param.Modify(v, param.Change("multipart/mixed"), param.Set("charset", "utf-8"))
func Modify(pv *Value, changes ...Modifier) *Value {
	out := pv.Clone()
	for _, change := range changes {
		change(out)
	}
	return out
}

// Value returns the primary value of the Value. This is the value before the
// first semicolon.
func (pv *Value) Value() string {
	return pv.v
}

// MediaType is a synonym for Value() and returns the Content-Type value,
// e.g., "text/html", "image/jpeg", "multipart/form-data", etc.
func (pv *Value) MediaType() string {
	return pv.v
}

// Presentation is a synonym for Value() and returns the Content-Disposition
// value, such as "inline" or "attachment".
func (pv *Value) Presentation() string {
	return pv.v
}

// Type is only intended for use with the Content-Type field. It searches the
// MediaType() for a slash. If found, it will return the string before that
// slash. If no slash is found, it returns an empty string.
//
// For example, if MediaType() returns "image/jpeg", this method will return
// "image".
func (pv *Value) Type() string {
	if ix := strings.IndexRune(pv.v, '/'); ix >= 0 {
		return strings.TrimSpace(pv.v[:ix])
	}
	return ""
}

// Subtype is only intended for use with the Content-Type field. It searches
// the MediaType() for a slash. If found, it will return the string after that
// slash. If no slash is found, it returns an empty string.
//
// For example, if MediaType() returns "text/html", this method will return
// "html".
func (pv *Value) Subtype() string {
	if ix := strings.IndexRune(pv.v, '/'); ix >= 0 {
		return strings.TrimSpace(pv.v[ix+1:])
	}
	return ""
}

// Parameter returns the value of the parameter with the given name or an
// empty string if it is not set.
func (pv *Value) Parameter(name string) string {
	return pv.ps[name]
}

// Parameters returns a copy of the parameters in their original order.
func (pv *Value) Parameters() []Param {
	ps := make([]Param, len(pv.ks))
	for i, k := range pv.ks {
		ps[i] = Param{Name: k, Value: pv.ps[k]}
	}
	return ps
}

// Filename returns the value of the "filename" parameter. It is intended for
// use with the Content-Disposition field.
func (pv *Value) Filename() string {
	return pv.ps[Filename]
}

// Charset returns the value of the "charset" parameter. It is intended for
// use with the Content-Type field.
func (pv *Value) Charset() string {
	return pv.ps[Charset]
}

// Boundary returns the value of the "boundary" parameter. It is intended for
// use with the Content-Type field.
func (pv *Value) Boundary() string {
	return pv.ps[Boundary]
}

// String returns the serialized value of the Value including the primary
// value and all parameters in their original order.
func (pv *Value) String() string {
	parts := make([]string, len(pv.ks)+1)
	parts[0] = pv.v
	for i, k := range pv.ks {
		parts[i+1] = fmt.Sprintf("%s=%s", k, pv.ps[k])
	}
	return strings.Join(parts, "; ")
}

// Bytes returns the serialized value of the Value including the primary value
// and all parameters.
func (pv *Value) Bytes() []byte {
	return []byte(pv.String())
}

// Clone returns a deep copy of the Value.
func (pv *Value) Clone() *Value {
	ks := make([]string, len(pv.ks))
	copy(ks, pv.ks)

	ps := make(map[string]string, len(pv.ps))
	for k, v := range pv.ps {
		ps[k] = v
	}

	return &Value{v: pv.v, ks: ks, ps: ps}
}
