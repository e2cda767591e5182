package header_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-httpmsg/header"
)

func TestBase(t *testing.T) {
	t.Parallel()

	// these must safely initialize internal state which is set to zero values
	// first constructed, so let's make sure it all works and nothing panics
	testFuncs := []func(*header.Base){
		func(b *header.Base) { assert.Equal(t, header.CRLF, b.Break()) },
		func(b *header.Base) {
			b.SetBreak(header.LF)
			assert.Equal(t, header.LF, b.Break())
		},
		func(b *header.Base) {
			v, err := b.Get("Accept")
			assert.ErrorIs(t, err, header.ErrNoSuchField)
			assert.Empty(t, v)
		},
		func(b *header.Base) {
			vs, err := b.GetAll("Accept")
			assert.ErrorIs(t, err, header.ErrNoSuchField)
			assert.Nil(t, vs)
		},
		func(b *header.Base) { assert.Equal(t, 0, b.Len()) },
		func(b *header.Base) { assert.False(t, b.Has("Accept")) },
		func(b *header.Base) { assert.Empty(t, b.Fields()) },
		func(b *header.Base) { assert.Empty(t, b.Names()) },
		func(b *header.Base) { assert.Empty(t, b.CapitalizedNames()) },
		func(b *header.Base) { assert.Empty(t, b.Values()) },
		func(b *header.Base) { assert.Empty(t, b.Map()) },
		func(b *header.Base) {
			buf := &bytes.Buffer{}
			n, err := b.WriteTo(buf)
			assert.Zero(t, n)
			assert.NoError(t, err)
			assert.Empty(t, buf.String())
		},
		func(b *header.Base) { assert.NoError(t, b.Set("A", header.Scalar("b"))) },
		func(b *header.Base) { assert.NoError(t, b.Add("A", header.Scalar("b"))) },
		func(b *header.Base) { b.Delete("A") },
		func(b *header.Base) { assert.NoError(t, b.Initialize(nil)) },
		func(b *header.Base) { assert.NotNil(t, b.Clone()) },
	}
	for _, testFunc := range testFuncs {
		b := &header.Base{}
		assert.NotPanics(t, func() { testFunc(b) })
	}
}

func TestBase_GetSet(t *testing.T) {
	t.Parallel()

	b := &header.Base{}
	assert.Equal(t, 0, b.Len())

	require.NoError(t, b.Add("A", header.Scalar("b")))
	require.NoError(t, b.Add("C", header.Scalar("d")))
	require.NoError(t, b.Add("E", header.Scalar("f")))
	require.NoError(t, b.Add("E", header.Scalar("g")))

	assert.Equal(t, 3, b.Len())

	// lookup ignores the case used to store the field
	v, err := b.Get("a")
	assert.NoError(t, err)
	assert.Equal(t, "b", v)

	v, err = b.Get("C")
	assert.NoError(t, err)
	assert.Equal(t, "d", v)

	// multiple values come back joined
	v, err = b.Get("e")
	assert.NoError(t, err)
	assert.Equal(t, "f, g", v)

	vs, err := b.GetAll("E")
	assert.NoError(t, err)
	assert.Equal(t, []string{"f", "g"}, vs)

	v, err = b.Get("H")
	assert.ErrorIs(t, err, header.ErrNoSuchField)
	assert.Empty(t, v)

	assert.True(t, b.Has("A"))
	assert.True(t, b.Has("a"))
	assert.False(t, b.Has("H"))

	// replacing an existing field keeps its position
	require.NoError(t, b.Set("a", header.Scalar("z")))
	assert.Equal(t, []string{"a", "c", "e"}, b.Names())

	v, err = b.Get("A")
	assert.NoError(t, err)
	assert.Equal(t, "z", v)

	// replacing a multi-valued field drops the extra values
	require.NoError(t, b.Set("E", header.Scalar("f")))
	vs, err = b.GetAll("E")
	assert.NoError(t, err)
	assert.Equal(t, []string{"f"}, vs)

	// setting a new field appends it
	require.NoError(t, b.Set("H", header.Scalar("i")))
	assert.Equal(t, []string{"a", "c", "e", "h"}, b.Names())

	// setting nil deletes
	require.NoError(t, b.Set("C", nil))
	assert.False(t, b.Has("C"))
	assert.Equal(t, []string{"a", "e", "h"}, b.Names())

	// setting an empty list deletes too
	require.NoError(t, b.Set("E", header.List{}))
	assert.False(t, b.Has("E"))
	assert.Equal(t, []string{"a", "h"}, b.Names())
}

func TestBase_Add(t *testing.T) {
	t.Parallel()

	b := &header.Base{}

	require.NoError(t, b.Add("A", header.Scalar("b")))
	require.NoError(t, b.Add("C", header.Scalar("d")))

	// adding to an existing field appends values in order
	require.NoError(t, b.Add("a", header.Strings("e", "f")))
	vs, err := b.GetAll("A")
	assert.NoError(t, err)
	assert.Equal(t, []string{"b", "e", "f"}, vs)

	// the field keeps its position
	assert.Equal(t, []string{"a", "c"}, b.Names())

	// adding nothing changes nothing
	require.NoError(t, b.Add("A", nil))
	require.NoError(t, b.Add("G", nil))
	require.NoError(t, b.Add("G", header.List{}))
	assert.False(t, b.Has("G"))

	vs, err = b.GetAll("A")
	assert.NoError(t, err)
	assert.Equal(t, []string{"b", "e", "f"}, vs)
}

func TestBase_Initialize(t *testing.T) {
	t.Parallel()

	b := &header.Base{}
	require.NoError(t, b.Initialize(header.Pairs{
		{Name: "A", Value: header.Scalar("  b  ")},
		{Name: "C", Value: nil},
		{Name: "E", Value: header.Strings("f", "g")},
		{Name: "A", Value: header.Scalar("z")},
	}))

	// values are trimmed on the way in
	v, err := b.Get("A")
	assert.NoError(t, err)
	assert.Equal(t, "z", v)

	// nil values are skipped entirely
	assert.False(t, b.Has("C"))

	vs, err := b.GetAll("E")
	assert.NoError(t, err)
	assert.Equal(t, []string{"f", "g"}, vs)

	// a repeated name overwrites but keeps the original position
	assert.Equal(t, []string{"a", "e"}, b.Names())

	// initializing again replaces everything
	require.NoError(t, b.Initialize(header.Pairs{
		{Name: "H", Value: header.Scalar("i")},
	}))
	assert.Equal(t, []string{"h"}, b.Names())
	assert.False(t, b.Has("A"))
}

func TestBase_InitializeSnapshots(t *testing.T) {
	t.Parallel()

	b := &header.Base{}
	require.NoError(t, b.Initialize(header.Pairs{
		{Name: "Foo", Value: header.Scalar("Bar")},
		{Name: "Baz", Value: header.Scalar("Bat")},
	}))

	assert.Equal(t, []header.Field{
		{Name: "foo", Value: "Bar"},
		{Name: "baz", Value: "Bat"},
	}, b.Fields())
	assert.Equal(t, []string{"Foo", "Baz"}, b.CapitalizedNames())
}

func TestBase_Delete(t *testing.T) {
	t.Parallel()

	b := &header.Base{}

	require.NoError(t, b.Add("A", header.Scalar("b")))
	require.NoError(t, b.Add("C", header.Scalar("d")))
	require.NoError(t, b.Add("E", header.Scalar("f")))
	assert.Equal(t, 3, b.Len())

	b.Delete("c")
	assert.Equal(t, 2, b.Len())
	assert.False(t, b.Has("C"))
	assert.Equal(t, []string{"a", "e"}, b.Names())

	// deleting what is not there is fine
	b.Delete("C")
	assert.Equal(t, 2, b.Len())

	b.Delete("A")
	b.Delete("E")
	assert.Equal(t, 0, b.Len())
}

func TestBase_Snapshots(t *testing.T) {
	t.Parallel()

	b := &header.Base{}

	require.NoError(t, b.Add("Content-type", header.Scalar("text/html")))
	require.NoError(t, b.Add("x-forwarded-for", header.Scalar("192.0.2.60")))
	require.NoError(t, b.Add("X-Forwarded-For", header.Scalar("203.0.113.7")))

	assert.Equal(t, []header.Field{
		{Name: "content-type", Value: "text/html"},
		{Name: "x-forwarded-for", Value: "192.0.2.60, 203.0.113.7"},
	}, b.Fields())

	assert.Equal(t, []string{"content-type", "x-forwarded-for"}, b.Names())
	assert.Equal(t, []string{"Content-Type", "X-Forwarded-For"}, b.CapitalizedNames())
	assert.Equal(t, []string{"text/html", "192.0.2.60, 203.0.113.7"}, b.Values())

	assert.Equal(t, map[string][]string{
		"content-type":    {"text/html"},
		"x-forwarded-for": {"192.0.2.60", "203.0.113.7"},
	}, b.Map())

	// the snapshots are copies, changing them must not touch the header
	m := b.Map()
	m["content-type"][0] = "text/plain"

	v, err := b.Get("Content-Type")
	assert.NoError(t, err)
	assert.Equal(t, "text/html", v)
}

func TestBase_WriteTo(t *testing.T) {
	t.Parallel()

	b := &header.Base{}
	b.SetBreak(header.LF)

	require.NoError(t, b.Add("A", header.Scalar("b")))
	require.NoError(t, b.Add("C", header.Scalar("d")))
	require.NoError(t, b.Add("E", header.Scalar("f")))
	require.NoError(t, b.Add("E", header.Scalar("g")))

	const expect = `A: b
C: d
E: f, g

`

	buf := &bytes.Buffer{}
	n, err := b.WriteTo(buf)
	assert.Equal(t, int64(19), n)
	assert.NoError(t, err)
	assert.Equal(t, expect, buf.String())

	assert.Equal(t, expect, b.String())
	assert.Equal(t, []byte(expect), b.Bytes())
}

func TestBase_WriteTo_CRLF(t *testing.T) {
	t.Parallel()

	b := &header.Base{}

	require.NoError(t, b.Add("content-length", header.Scalar("42")))
	require.NoError(t, b.Add("CONTENT-TYPE", header.Scalar("text/html")))

	const expect = "Content-Length: 42\r\nContent-Type: text/html\r\n\r\n"

	buf := &bytes.Buffer{}
	n, err := b.WriteTo(buf)
	assert.Equal(t, int64(len(expect)), n)
	assert.NoError(t, err)
	assert.Equal(t, expect, buf.String())
}

func TestBase_Validation(t *testing.T) {
	t.Parallel()

	b := &header.Base{}
	require.NoError(t, b.Set("A", header.Scalar("b")))

	err := b.Set("Evil\r\nName", header.Scalar("v"))
	assert.ErrorIs(t, err, header.ErrBadFieldName)

	err = b.Set("A", header.Scalar("evil\r\nvalue"))
	assert.ErrorIs(t, err, header.ErrBadFieldValue)

	err = b.Add("A", header.Scalar("evil\nvalue"))
	assert.ErrorIs(t, err, header.ErrBadFieldValue)

	err = b.Add("Evil\rName", header.Scalar("v"))
	assert.ErrorIs(t, err, header.ErrBadFieldName)

	// a failed mutation leaves the header exactly as it was
	assert.Equal(t, 1, b.Len())
	v, err := b.Get("A")
	assert.NoError(t, err)
	assert.Equal(t, "b", v)

	// a failed Initialize leaves the header exactly as it was too
	err = b.Initialize(header.Pairs{
		{Name: "C", Value: header.Scalar("d")},
		{Name: "E", Value: header.Scalar("evil\r\nvalue")},
	})
	assert.ErrorIs(t, err, header.ErrBadFieldValue)
	assert.Equal(t, 1, b.Len())
	assert.False(t, b.Has("C"))
}

func TestBase_Clone(t *testing.T) {
	t.Parallel()

	b := &header.Base{}
	b.SetBreak(header.LF)
	require.NoError(t, b.Add("A", header.Scalar("b")))
	require.NoError(t, b.Add("C", header.Scalar("d")))

	c := b.Clone()
	assert.Equal(t, header.LF, c.Break())
	assert.Equal(t, b.Names(), c.Names())

	require.NoError(t, c.Set("A", header.Scalar("z")))
	c.Delete("C")

	// the original is untouched
	v, err := b.Get("A")
	assert.NoError(t, err)
	assert.Equal(t, "b", v)
	assert.True(t, b.Has("C"))
}

func TestCanonicalName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "content-type", header.CanonicalName("Content-Type"))
	assert.Equal(t, "content-type", header.CanonicalName("CONTENT-TYPE"))
	assert.Equal(t, "content-type", header.CanonicalName("content-type"))
}

func TestCapitalizeName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Content-Type", header.CapitalizeName("content-TYPE"))
	assert.Equal(t, "X-Forwarded-For", header.CapitalizeName("x-forwarded-for"))
	assert.Equal(t, "Etag", header.CapitalizeName("ETag"))
	assert.Equal(t, "A--B", header.CapitalizeName("a--b"))
}
