package header

import (
	"fmt"
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Decoder represents the character decoding function used by this package
// for transforming the charset-tagged bytes of an RFC 8187 extended field
// value into native unicode.
//
// The decoder should only permit a valid transformation from the source
// format into unicode. Any byte present in the input that is invalid for the
// source character encoding should be replaced with the
// unicode.ReplacementChar.
//
// If the source charset is not supported, an error should be returned.
type Decoder func(charset string, b []byte) (string, error)

// CharsetDecoder is the Decoder used for transforming extended field value
// bytes into unicode for use by GetFilename and DecodeExtValue. You may
// replace this with a custom decoder you prefer or to make use of a decoder
// that supports a broad range of encodings, you can import the encoding
// package:
//
//	import _ "github.com/zostay/go-httpmsg/header/encoding"
var CharsetDecoder Decoder = DefaultCharsetDecoder

// DefaultCharsetDecoder is the default decoder. It is able to handle
// us-ascii, iso-8859-1 (a.k.a. latin1), and utf-8 only. Anything else will
// result in an error.
//
// When us-ascii is input, any NUL or 8-bit character (i.e., bytes greater
// than 0x7f) will be translated into unicode.ReplacementChar.
//
// When utf-8 is input, the bytes will be read in and transformed into runes
// such that only valid unicode bytes will be permitted in. Errors will be
// brought in as unicode.ReplacementChar.
func DefaultCharsetDecoder(charset string, b []byte) (string, error) {
	switch strings.ToLower(charset) {
	case "us-ascii", "":
		var s strings.Builder
		for _, c := range b {
			if c > unicode.MaxASCII {
				s.WriteRune(unicode.ReplacementChar)
			} else {
				s.WriteByte(c)
			}
		}
		return s.String(), nil
	case "iso-8859-1", "latin1":
		return string(b), nil
	case "utf-8":
		var s strings.Builder
		for len(b) > 0 {
			r, size := utf8.DecodeRune(b)
			s.WriteRune(r)
			b = b[size:]
		}
		return s.String(), nil
	default:
		return "", fmt.Errorf("unsupported byte encoding %q", charset)
	}
}

// DecodeExtValue decodes an RFC 8187 extended field value of the form
// "charset'language'percent-encoded", such as the "filename*" parameter of a
// Content-Disposition field. The language tag is ignored. The
// percent-decoded bytes are transformed into a string through
// CharsetDecoder.
//
// It fails with ErrHeaderSyntax if the value does not have three
// quote-separated parts or the percent encoding is malformed. It fails with
// the decoder's error if the named charset is not supported.
func DecodeExtValue(v string) (string, error) {
	parts := strings.SplitN(v, "'", 3)
	if len(parts) != 3 {
		return "", fmt.Errorf("%w: %q is not an extended field value", ErrHeaderSyntax, v)
	}

	raw, err := url.PathUnescape(parts[2])
	if err != nil {
		return "", fmt.Errorf("%w: extended field value %q: %s", ErrHeaderSyntax, v, err)
	}

	return CharsetDecoder(parts[0], []byte(raw))
}
