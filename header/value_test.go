package header_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-httpmsg/header"
)

func TestScalar(t *testing.T) {
	t.Parallel()

	h := &header.Base{}
	require.NoError(t, h.Set("Accept", header.Scalar("text/html")))

	vs, err := h.GetAll("Accept")
	assert.NoError(t, err)
	assert.Equal(t, []string{"text/html"}, vs)
}

func TestList(t *testing.T) {
	t.Parallel()

	h := &header.Base{}
	require.NoError(t, h.Set("Accept-Encoding", header.List{
		header.Scalar("gzip"),
		nil,
		header.List{
			header.Scalar("br"),
			header.Scalar("deflate"),
		},
	}))

	vs, err := h.GetAll("Accept-Encoding")
	assert.NoError(t, err)
	assert.Equal(t, []string{"gzip", "br", "deflate"}, vs)
}

func TestPairs(t *testing.T) {
	t.Parallel()

	h := &header.Base{}
	require.NoError(t, h.Set("Forwarded", header.Pairs{
		{Name: "for", Value: header.Scalar("192.0.2.60")},
		{Name: "proto"},
	}))

	vs, err := h.GetAll("Forwarded")
	assert.NoError(t, err)
	assert.Equal(t, []string{"for", "192.0.2.60", "proto"}, vs)
}

func TestStrings(t *testing.T) {
	t.Parallel()

	h := &header.Base{}
	require.NoError(t, h.Set("Accept-Encoding", header.Strings("gzip", "br")))

	vs, err := h.GetAll("Accept-Encoding")
	assert.NoError(t, err)
	assert.Equal(t, []string{"gzip", "br"}, vs)

	v, err := h.Get("Accept-Encoding")
	assert.NoError(t, err)
	assert.Equal(t, "gzip, br", v)
}
