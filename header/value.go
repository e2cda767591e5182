package header

// Value is the value side of a header field mutation. Rather than accepting
// any type and sniffing its shape at runtime, the store requires callers to
// pick one of three explicit variants: a Scalar stores a single value, a List
// contributes the expansion of each element in order, and Pairs contributes
// each pair's name followed by the expansion of that pair's value. Set, Add,
// and Initialize all flatten a Value into the ordered list of field values it
// represents before storing anything.
type Value interface {
	// appendValues appends the flat expansion of this value to vs.
	appendValues(vs []string) []string
}

// Scalar is a Value holding exactly one field value.
type Scalar string

func (s Scalar) appendValues(vs []string) []string {
	return append(vs, string(s))
}

// List is a Value holding an ordered sequence of values. Each element
// contributes its own expansion in order.
type List []Value

func (l List) appendValues(vs []string) []string {
	for _, v := range l {
		if v == nil {
			continue
		}
		vs = v.appendValues(vs)
	}
	return vs
}

// Pair associates a name with a Value. It is the element type used by Pairs
// and by Initialize.
type Pair struct {
	Name  string
	Value Value
}

// Pairs is a Value holding an ordered sequence of name/value pairs. When
// expanded, each pair contributes its name followed by the expansion of its
// value. A pair with a nil Value contributes the name alone.
type Pairs []Pair

func (ps Pairs) appendValues(vs []string) []string {
	for _, p := range ps {
		vs = append(vs, p.Name)
		if p.Value != nil {
			vs = p.Value.appendValues(vs)
		}
	}
	return vs
}

// Strings builds a List of Scalar values. It is a convenience for the common
// case of setting several plain values at once:
//
//	h.Set("Accept-Encoding", header.Strings("gzip", "br"))
func Strings(ss ...string) List {
	l := make(List, len(ss))
	for i, s := range ss {
		l[i] = Scalar(s)
	}
	return l
}

// expandValue resolves a Value into the flat list of field values it
// represents. A nil Value expands to nothing.
func expandValue(v Value) []string {
	if v == nil {
		return nil
	}
	return v.appendValues(make([]string, 0, 1))
}
