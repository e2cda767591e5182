// Package encoding provides a replacement decoder for use with
// header.CharsetDecoder. This loads all the encodings provided with:
//
// * golang.org/x/text/encoding/ianaindex
//
// This will make the size of your compiled binaries considerably larger. But
// it will also give your code the ability to decode pretty much any
// character set an extended field value might name in the wild wild world of
// HTTP.
package encoding

import (
	"fmt"

	_ "golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"

	"github.com/zostay/go-httpmsg/header"
)

func init() {
	header.CharsetDecoder = CharsetDecoder
}

// CharsetDecoder provides a replacement decoder for header.CharsetDecoder,
// which can decode a wide range of rare and unusual character sets.
func CharsetDecoder(charset string, b []byte) (string, error) {
	e, err := ianaindex.MIME.Encoding(charset)
	if err != nil {
		return "", err
	}

	if e == nil {
		return "", fmt.Errorf("no encoding found for charset %q", charset)
	}

	eb, err := e.NewDecoder().Bytes(b)
	if err != nil {
		return "", err
	}

	return string(eb), nil
}
