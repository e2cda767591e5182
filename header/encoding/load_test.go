package encoding_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zostay/go-httpmsg/header"
	"github.com/zostay/go-httpmsg/header/encoding"
)

var greekBytes = []byte{0xea, 0xe1, 0xeb, 0xe7, 0xec, 0xdd, 0xf1, 0xe1}

func TestCharsetDecoder(t *testing.T) {
	t.Parallel()

	dec, err := encoding.CharsetDecoder("iso-8859-7", greekBytes)
	assert.NoError(t, err)
	assert.Equal(t, "καλημέρα", dec)

	dec, err = encoding.CharsetDecoder("windows-1252", []byte{0x93, 0x48, 0x69, 0x94})
	assert.NoError(t, err)
	assert.Equal(t, "“Hi”", dec)

	dec, err = encoding.CharsetDecoder("utf-8", []byte("na\xc3\xafve"))
	assert.NoError(t, err)
	assert.Equal(t, "naïve", dec)

	_, err = encoding.CharsetDecoder("martian", greekBytes)
	assert.Error(t, err)
}

func TestCharsetDecoder_Loaded(t *testing.T) {
	t.Parallel()

	// importing this package swaps in the wide decoder for everyone
	dec, err := header.CharsetDecoder("iso-8859-7", greekBytes)
	assert.NoError(t, err)
	assert.Equal(t, "καλημέρα", dec)

	f, err := header.DecodeExtValue("iso-8859-7''%EA%E1%EB%E7%EC%DD%F1%E1")
	assert.NoError(t, err)
	assert.Equal(t, "καλημέρα", f)
}
