package header_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-httpmsg/header"
)

func TestParseRange(t *testing.T) {
	t.Parallel()

	rs, err := header.ParseRange("bytes=0-1023")
	assert.NoError(t, err)
	assert.Equal(t, []header.RangeSpec{{First: 0, Last: 1023}}, rs)

	rs, err = header.ParseRange("bytes=500-")
	assert.NoError(t, err)
	assert.Equal(t, []header.RangeSpec{{First: 500, Open: true}}, rs)

	rs, err = header.ParseRange("bytes=-500")
	assert.NoError(t, err)
	assert.Equal(t, []header.RangeSpec{{First: 500, Suffix: true}}, rs)

	// an open range starting at zero asks for the whole representation,
	// which is odd but legal
	rs, err = header.ParseRange("bytes=0-")
	assert.NoError(t, err)
	assert.Equal(t, []header.RangeSpec{{First: 0, Open: true}}, rs)

	// several specs with whitespace and stray commas
	rs, err = header.ParseRange("bytes=0-499, 500-999, ,-1")
	assert.NoError(t, err)
	assert.Equal(t, []header.RangeSpec{
		{First: 0, Last: 499},
		{First: 500, Last: 999},
		{First: 1, Suffix: true},
	}, rs)

	// a zero-length suffix is fine in company
	rs, err = header.ParseRange("bytes=-0,0-1")
	assert.NoError(t, err)
	assert.Len(t, rs, 2)

	// but alone it names no bytes at all
	_, err = header.ParseRange("bytes=-0")
	assert.ErrorIs(t, err, header.ErrHeaderSyntax)

	// a backwards range is refused
	_, err = header.ParseRange("bytes=999-500")
	assert.ErrorIs(t, err, header.ErrHeaderSyntax)

	// so is anything that is not a byte range
	_, err = header.ParseRange("lines=0-10")
	assert.ErrorIs(t, err, header.ErrHeaderSyntax)

	_, err = header.ParseRange("BYTES=0-10")
	assert.ErrorIs(t, err, header.ErrHeaderSyntax)

	_, err = header.ParseRange("bytes=")
	assert.ErrorIs(t, err, header.ErrHeaderSyntax)

	_, err = header.ParseRange("bytes=,,")
	assert.ErrorIs(t, err, header.ErrHeaderSyntax)

	_, err = header.ParseRange("bytes=abc-def")
	assert.ErrorIs(t, err, header.ErrHeaderSyntax)

	_, err = header.ParseRange("bytes=5")
	assert.ErrorIs(t, err, header.ErrHeaderSyntax)

	_, err = header.ParseRange("bytes=1-2-3")
	assert.ErrorIs(t, err, header.ErrHeaderSyntax)
}

func TestRangeSpec_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "0-1023", header.RangeSpec{First: 0, Last: 1023}.String())
	assert.Equal(t, "500-", header.RangeSpec{First: 500, Open: true}.String())
	assert.Equal(t, "-500", header.RangeSpec{First: 500, Suffix: true}.String())
}

func TestHeader_Range(t *testing.T) {
	t.Parallel()

	h := &header.Header{}

	_, err := h.GetRange()
	assert.ErrorIs(t, err, header.ErrNoSuchField)

	require.NoError(t, h.SetRange(0, 1023))

	v, err := h.Get(header.Range)
	assert.NoError(t, err)
	assert.Equal(t, "bytes=0-1023", v)

	rs, err := h.GetRange()
	assert.NoError(t, err)
	assert.Equal(t, []header.RangeSpec{{First: 0, Last: 1023}}, rs)

	err = h.SetRange(1023, 0)
	assert.ErrorIs(t, err, header.ErrHeaderSyntax)

	// the failed set left the field alone
	v, err = h.Get(header.Range)
	assert.NoError(t, err)
	assert.Equal(t, "bytes=0-1023", v)

	require.NoError(t, h.SetRanges(
		header.RangeSpec{First: 0, Last: 499},
		header.RangeSpec{First: 1, Suffix: true},
	))

	v, err = h.Get(header.Range)
	assert.NoError(t, err)
	assert.Equal(t, "bytes=0-499,-1", v)

	// with no ranges at all the field goes away
	require.NoError(t, h.SetRanges())
	assert.False(t, h.Has(header.Range))

	// a single zero-length suffix cannot be expressed
	err = h.SetRanges(header.RangeSpec{First: 0, Suffix: true})
	assert.ErrorIs(t, err, header.ErrHeaderSyntax)
}

func TestHeader_SetRangeCount(t *testing.T) {
	t.Parallel()

	h := &header.Header{}

	require.NoError(t, h.SetRangeCount(500))

	v, err := h.Get(header.Range)
	assert.NoError(t, err)
	assert.Equal(t, "bytes=0-499", v)

	require.NoError(t, h.SetRangeCount(-500))

	v, err = h.Get(header.Range)
	assert.NoError(t, err)
	assert.Equal(t, "bytes=-500", v)

	err = h.SetRangeCount(0)
	assert.ErrorIs(t, err, header.ErrHeaderSyntax)
}

func TestParseContentRange(t *testing.T) {
	t.Parallel()

	cr, err := header.ParseContentRange("bytes 0-499/1234")
	assert.NoError(t, err)
	assert.Equal(t, header.ContentRangeSpec{First: 0, Last: 499, Total: 1234}, cr)
	assert.Equal(t, int64(500), cr.Length())

	cr, err = header.ParseContentRange("bytes 500-999/*")
	assert.NoError(t, err)
	assert.Equal(t, header.ContentRangeSpec{First: 500, Last: 999, Total: header.TotalUnknown}, cr)

	_, err = header.ParseContentRange("bytes 999-500/1234")
	assert.ErrorIs(t, err, header.ErrHeaderSyntax)

	_, err = header.ParseContentRange("lines 0-499/1234")
	assert.ErrorIs(t, err, header.ErrHeaderSyntax)

	_, err = header.ParseContentRange("bytes 0-499")
	assert.ErrorIs(t, err, header.ErrHeaderSyntax)

	_, err = header.ParseContentRange("bytes */1234")
	assert.ErrorIs(t, err, header.ErrHeaderSyntax)

	_, err = header.ParseContentRange("bytes 0-499/half")
	assert.ErrorIs(t, err, header.ErrHeaderSyntax)
}

func TestContentRangeSpec_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "bytes 0-499/1234",
		header.ContentRangeSpec{First: 0, Last: 499, Total: 1234}.String())
	assert.Equal(t, "bytes 0-499/*",
		header.ContentRangeSpec{First: 0, Last: 499, Total: header.TotalUnknown}.String())
}

func TestHeader_ContentRange(t *testing.T) {
	t.Parallel()

	h := &header.Header{}

	_, err := h.GetContentRange()
	assert.ErrorIs(t, err, header.ErrNoSuchField)

	_, err = h.RangeLength()
	assert.ErrorIs(t, err, header.ErrNoSuchField)

	require.NoError(t, h.Set(header.ContentRange, header.Scalar("bytes 0-499/1234")))

	cr, err := h.GetContentRange()
	assert.NoError(t, err)
	assert.Equal(t, header.ContentRangeSpec{First: 0, Last: 499, Total: 1234}, cr)

	n, err := h.RangeLength()
	assert.NoError(t, err)
	assert.Equal(t, int64(500), n)

	require.NoError(t, h.SetContentRange(header.ContentRangeSpec{
		First: 500,
		Last:  999,
		Total: header.TotalUnknown,
	}))

	v, err := h.Get(header.ContentRange)
	assert.NoError(t, err)
	assert.Equal(t, "bytes 500-999/*", v)

	err = h.SetContentRange(header.ContentRangeSpec{First: 999, Last: 500, Total: 1234})
	assert.ErrorIs(t, err, header.ErrHeaderSyntax)

	err = h.SetContentRange(header.ContentRangeSpec{First: 0, Last: 499, Total: 400})
	assert.ErrorIs(t, err, header.ErrHeaderSyntax)

	require.NoError(t, h.Set(header.ContentRange, header.Scalar("bytes zero-one/2")))

	_, err = h.GetContentRange()
	assert.ErrorIs(t, err, header.ErrHeaderSyntax)
}
