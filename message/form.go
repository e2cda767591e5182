package message

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Form encodings accepted by SetForm.
const (
	// FormURLEncoded is the default form encoding, which SetFormData can
	// render inline.
	FormURLEncoded = "application/x-www-form-urlencoded"

	// FormMultipart is the multipart form encoding. Rendering a multipart
	// body takes streaming machinery this library does not provide, so a
	// multipart form is only ever staged for a later renderer.
	FormMultipart = "multipart/form-data"
)

// ErrInvalidEncoding is returned by SetForm when the requested encoding is
// not one of the two form encodings.
var ErrInvalidEncoding = errors.New("invalid form encoding")

// FormField is a single name/value pair of a form.
type FormField struct {
	Name  string
	Value string
}

// Form is a list of form fields in the order they will be encoded.
type Form []FormField

// Encode renders the form as an application/x-www-form-urlencoded string in
// field order.
func (f Form) Encode() string {
	return f.EncodeWith("&")
}

// EncodeWith renders the form like Encode does, using the given separator
// between fields instead of "&". Names and values are escaped before the
// separator is applied, so the separator never collides with the data.
func (f Form) EncodeWith(sep string) string {
	parts := make([]string, len(f))
	for i, fld := range f {
		parts[i] = url.QueryEscape(fld.Name) + "=" + url.QueryEscape(fld.Value)
	}
	return strings.Join(parts, sep)
}

// FormOptions adjusts how a form is encoded, immediately by SetFormData or
// later by whatever renders a staged form.
type FormOptions struct {
	// Separator replaces the "&" between urlencoded fields when set.
	Separator string

	// Boundary fixes the multipart boundary instead of leaving the choice to
	// the renderer.
	Boundary string

	// Charset names the character set the renderer should declare for the
	// text parts of a multipart form.
	Charset string
}

// FormOption is a setting applied to FormOptions.
type FormOption func(*FormOptions)

// WithSeparator replaces the "&" separator used between urlencoded form
// fields.
func WithSeparator(sep string) FormOption {
	return func(o *FormOptions) {
		o.Separator = sep
	}
}

// WithBoundary fixes the boundary a renderer should use for a multipart
// form.
func WithBoundary(b string) FormOption {
	return func(o *FormOptions) {
		o.Boundary = b
	}
}

// WithCharset names the character set a renderer should declare for the text
// parts of a multipart form.
func WithCharset(c string) FormOption {
	return func(o *FormOptions) {
		o.Charset = c
	}
}

// newFormOptions folds the given options into a FormOptions.
func newFormOptions(opts []FormOption) FormOptions {
	var o FormOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// SetFormData renders the form as application/x-www-form-urlencoded, makes
// it the request body, and sets the Content-Type field to match. The
// WithSeparator option substitutes a custom separator for "&". Any
// previously staged form is dropped.
func (r *Request) SetFormData(f Form, opts ...FormOption) error {
	o := newFormOptions(opts)

	sep := o.Separator
	if sep == "" {
		sep = "&"
	}

	if err := r.SetMediaType(FormURLEncoded); err != nil {
		return err
	}

	r.SetBody([]byte(f.EncodeWith(sep)))

	return nil
}

// SetForm stages the form for a later renderer instead of encoding it now.
// The form, the requested encoding, and the options are recorded, any
// literal body is dropped, and the Content-Type field is set to the
// encoding. The encoding must match FormURLEncoded or FormMultipart,
// compared case-insensitively, and is stored as given.
//
// It fails with ErrInvalidEncoding for any other encoding, leaving the
// request unchanged.
func (r *Request) SetForm(f Form, enctype string, opts ...FormOption) error {
	switch {
	case strings.EqualFold(enctype, FormURLEncoded):
	case strings.EqualFold(enctype, FormMultipart):
	default:
		return fmt.Errorf("%w: %q", ErrInvalidEncoding, enctype)
	}

	if err := r.SetMediaType(enctype); err != nil {
		return err
	}

	r.body = nil
	r.form = f
	r.formEnctype = enctype
	r.formOpts = newFormOptions(opts)

	return nil
}

// FormData returns the staged form, the encoding it should be rendered with,
// and the options recorded for the renderer. The final value is false when
// nothing is staged.
func (r *Request) FormData() (Form, string, FormOptions, bool) {
	if r.form == nil {
		return nil, "", FormOptions{}, false
	}
	return r.form, r.formEnctype, r.formOpts, true
}
