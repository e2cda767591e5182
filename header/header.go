package header

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/zostay/go-addr/pkg/addr"

	"github.com/zostay/go-httpmsg/param"
)

// Errors returned by various header methods and functions.
var (
	// ErrNoSuchFieldParameter is returned by header methods when the
	// operation being performed failed because the field exists, but a
	// parameter of the field does not exist.
	ErrNoSuchFieldParameter = errors.New("no such header field parameter")

	// ErrHeaderSyntax is returned by semantic accessors when a field value
	// does not conform to the grammar for that field.
	ErrHeaderSyntax = errors.New("header field syntax is incorrect")

	// ErrWrongAddressType is returned by address setting methods that accept
	// either a string or an addr.Address when something other than those
	// types is provided.
	ErrWrongAddressType = errors.New("incorrect address type during write")
)

// These are standard field names defined in RFC 9110, in their display
// capitalization.
const (
	Accept             = "Accept"
	Authorization      = "Authorization"
	CacheControl       = "Cache-Control"
	Connection         = "Connection"
	ContentLength      = "Content-Length"
	ContentRange       = "Content-Range"
	ContentType        = "Content-Type"
	Date               = "Date"
	From               = "From"
	Host               = "Host"
	LastModified       = "Last-Modified"
	Location           = "Location"
	ProxyAuthorization = "Proxy-Authorization"
	Range              = "Range"
	Referer            = "Referer"
	TransferEncoding   = "Transfer-Encoding"
	UserAgent          = "User-Agent"
)

// These fields come from outside RFC 9110, but are common enough to deserve
// names here. Content-Disposition is defined by RFC 6266 and Proxy-Connection
// is a de facto legacy of HTTP/1.0 proxies.
const (
	ContentDisposition = "Content-Disposition"
	ProxyConnection    = "Proxy-Connection"
)

// Header wraps a Base, which does the actual storage and low-level field
// manipulation. This provides several methods to make reading and
// manipulating the header more convenient and some caching for complex
// values parsed from header fields.
//
// The getter methods of this object will return an error if the field being
// fetched has not been set on the header. The error returned will be
// ErrNoSuchField.
type Header struct {
	// Base provides the low-level storage of header fields.
	Base

	// valueCache holds the semantic value for a header field, keyed by the
	// canonical field name.
	//
	// REMEMBER: This must only be used to hold "immutable" types. If a type
	// can be modified outside, we can have inconsistencies between what is
	// stored in valueCache and what is set in Base.
	valueCache map[string]any
}

// Clone returns a deep copy of the header object.
func (h *Header) Clone() *Header {
	// the value cache objects are immutable, so they may be copied as-is
	vc := make(map[string]any, len(h.valueCache))
	for k, v := range h.valueCache {
		vc[k] = v
	}

	return &Header{
		Base:       *h.Base.Clone(),
		valueCache: vc,
	}
}

// getValue retrieves the cached value. The first value is the cached value
// (which may be nil). The second value is a boolean that returns true if the
// cache value was set.
func (h *Header) getValue(name string) (any, bool) {
	v, found := h.valueCache[CanonicalName(name)]
	return v, found
}

// setValue replaces the cached value for the given name.
func (h *Header) setValue(name string, value any) {
	if h.valueCache == nil {
		h.valueCache = make(map[string]any, h.Len())
	}
	h.valueCache[CanonicalName(name)] = value
}

// clearValue drops the cached value for the given name.
func (h *Header) clearValue(name string) {
	delete(h.valueCache, CanonicalName(name))
}

// Initialize replaces the entire contents of the header and drops every
// cached semantic value. See Base.Initialize for the handling of nil values,
// duplicate names, and trimming.
func (h *Header) Initialize(fields Pairs) error {
	if err := h.Base.Initialize(fields); err != nil {
		return err
	}
	h.valueCache = nil
	return nil
}

// Set replaces the values of the named field and drops any cached semantic
// value for it. See Base.Set.
func (h *Header) Set(name string, v Value) error {
	if err := h.Base.Set(name, v); err != nil {
		return err
	}
	h.clearValue(name)
	return nil
}

// Add appends to the values of the named field and drops any cached semantic
// value for it. See Base.Add.
func (h *Header) Add(name string, v Value) error {
	if err := h.Base.Add(name, v); err != nil {
		return err
	}
	h.clearValue(name)
	return nil
}

// Delete removes the named field and any cached semantic value for it.
func (h *Header) Delete(name string) {
	h.Base.Delete(name)
	h.clearValue(name)
}

// ParseTime is the time parsing used by GetTime() and GetDate() and may be
// used on any field body. It attempts the three date formats permitted by
// RFC 9110 first, the IMF-fixdate, RFC 850, and asctime forms, and falls
// back to parsing the many other formats seen in the wild.
//
// It either returns a parsed time or the parse error.
func ParseTime(body string) (time.Time, error) {
	t, err := http.ParseTime(body)
	if err == nil {
		return t, nil
	}

	t, err = dateparse.ParseAny(body)
	if err == nil {
		return t, nil
	}

	return t, fmt.Errorf("time string %q cannot be parsed", body)
}

// getTime parses the field body as a date and caches the result.
func (h *Header) getTime(name string) (time.Time, error) {
	body, err := h.Get(name)
	if err != nil {
		return time.Time{}, err
	}

	t, err := ParseTime(body)
	if err != nil {
		return t, err
	}

	h.setValue(name, t)

	return t, nil
}

// GetTime gets the named field as a time.Time. It will attempt to parse the
// date in many formats, not just the formats permitted by RFC 9110 (though,
// it will try those first).
//
// It will return an error if it is unable to parse the time value from the
// field. It will return the zero value and ErrNoSuchField if the field does
// not exist.
func (h *Header) GetTime(name string) (time.Time, error) {
	v, found := h.getValue(name)
	if !found {
		return h.getTime(name)
	}

	t, isTime := v.(time.Time)
	if !isTime {
		return h.getTime(name)
	}

	return t, nil
}

// SetTime replaces the named field with the given time, formatted as an
// IMF-fixdate in UTC as RFC 9110 requires of senders.
func (h *Header) SetTime(name string, t time.Time) error {
	if err := h.Set(name, Scalar(t.UTC().Format(http.TimeFormat))); err != nil {
		return err
	}
	h.setValue(name, t)
	return nil
}

// GetDate retrieves the Date field as a time.Time value.
//
// It will return an error if it is unable to parse the time value from the
// field. It will return the zero value and ErrNoSuchField if the field does
// not exist.
func (h *Header) GetDate() (time.Time, error) {
	return h.GetTime(Date)
}

// SetDate updates the Date field from the given time.Time value.
func (h *Header) SetDate(t time.Time) error {
	return h.SetTime(Date, t)
}

// GetLastModified retrieves the Last-Modified field as a time.Time value.
//
// It will return an error if it is unable to parse the time value from the
// field. It will return the zero value and ErrNoSuchField if the field does
// not exist.
func (h *Header) GetLastModified() (time.Time, error) {
	return h.GetTime(LastModified)
}

// SetLastModified updates the Last-Modified field from the given time.Time
// value.
func (h *Header) SetLastModified(t time.Time) error {
	return h.SetTime(LastModified, t)
}

// getParamValue will parse a param.Value out of the given field or return an
// error.
func (h *Header) getParamValue(name string) (*param.Value, error) {
	body, err := h.Get(name)
	if err != nil {
		return nil, err
	}

	pv, err := param.Parse(body)
	if err != nil {
		return nil, err
	}

	h.setValue(name, pv)

	return pv, nil
}

// GetParamValue will return a param.Value for the header field matching the
// given name.
//
// This will return an error if it is unable to parse a param.Value. This
// will return ErrNoSuchField if no field with the given name is present.
func (h *Header) GetParamValue(name string) (*param.Value, error) {
	v, found := h.getValue(name)
	if !found {
		return h.getParamValue(name)
	}

	pv, isPV := v.(*param.Value)
	if !isPV {
		return h.getParamValue(name)
	}

	if pv == nil {
		return pv, nil
	}

	// return a copy to prevent the cached value from being modified
	return pv.Clone(), nil
}

// SetParamValue will replace the named field with a single field containing
// the rendered param.Value.
func (h *Header) SetParamValue(name string, body *param.Value) error {
	if err := h.Set(name, Scalar(body.String())); err != nil {
		return err
	}
	h.setValue(name, body)
	return nil
}

// getParamValueValue reads the primary value of the param.Value field or
// returns an error.
func (h *Header) getParamValueValue(name string) (string, error) {
	pv, err := h.GetParamValue(name)
	if err != nil {
		return "", err
	}

	return pv.Value(), nil
}

// setParamValueValue sets the primary value of the param.Value field,
// preserving any parameters already present.
func (h *Header) setParamValueValue(name, v string) error {
	pv, err := h.GetParamValue(name)
	if err != nil {
		// nothing parseable there now, just write the whole field
		pv = param.New(v)
	} else {
		// preserve everything else and update
		pv = param.Modify(pv, param.Change(v))
	}

	return h.SetParamValue(name, pv)
}

// getParamValueParam gets a parameter value of the param.Value field or
// returns an error.
func (h *Header) getParamValueParam(name, p string) (string, error) {
	pv, err := h.GetParamValue(name)
	if err != nil {
		return "", err
	}

	if v := pv.Parameter(p); v != "" {
		return v, nil
	}

	return "", ErrNoSuchFieldParameter
}

// setParamValueParam sets a parameter value of the param.Value field. The
// field must already exist before calling this method.
func (h *Header) setParamValueParam(name, p, v string) error {
	pv, err := h.GetParamValue(name)
	if err != nil {
		return err
	}

	return h.SetParamValue(name, param.Modify(pv, param.Set(p, v)))
}

// GetContentType returns the Content-Type field as a param.Value.
//
// It returns nil and ErrNoSuchField if the field is not set on the header.
// It will return nil and an error if there is a problem parsing the
// param.Value.
func (h *Header) GetContentType() (*param.Value, error) {
	return h.GetParamValue(ContentType)
}

// SetContentType replaces the Content-Type field with the given param.Value.
func (h *Header) SetContentType(v *param.Value) error {
	return h.SetParamValue(ContentType, v)
}

// GetMediaType returns the media type set in the Content-Type field (other
// parameters will not be returned).
//
// It returns an empty string and ErrNoSuchField if the field is not set on
// the header.
func (h *Header) GetMediaType() (string, error) {
	return h.getParamValueValue(ContentType)
}

// SetMediaType replaces the Content-Type field with the given media type and
// parameters, composed as "type; k1=v1; k2=v2". Anything already in the
// field, parameters included, is replaced entirely.
func (h *Header) SetMediaType(mt string, ps ...param.Param) error {
	return h.SetParamValue(ContentType, param.New(mt, ps...))
}

// GetMainType returns the part of the media type before the slash, trimmed
// of surrounding whitespace. A media type with no slash is returned whole.
//
// It returns an empty string and ErrNoSuchField if Content-Type is not set
// on the header.
func (h *Header) GetMainType() (string, error) {
	mt, err := h.GetMediaType()
	if err != nil {
		return "", err
	}

	if ix := strings.IndexRune(mt, '/'); ix >= 0 {
		mt = mt[:ix]
	}

	return strings.TrimSpace(mt), nil
}

// GetSubType returns the part of the media type after the slash, trimmed of
// surrounding whitespace. A media type with no slash has no subtype, so this
// returns an empty string with no error.
//
// It returns an empty string and ErrNoSuchField if Content-Type is not set
// on the header.
func (h *Header) GetSubType() (string, error) {
	mt, err := h.GetMediaType()
	if err != nil {
		return "", err
	}

	if ix := strings.IndexRune(mt, '/'); ix >= 0 {
		return strings.TrimSpace(mt[ix+1:]), nil
	}

	return "", nil
}

// GetTypeParams returns the parameters of the Content-Type field in the
// order they appear in the field.
//
// It returns nil and ErrNoSuchField if Content-Type is not set on the
// header.
func (h *Header) GetTypeParams() ([]param.Param, error) {
	pv, err := h.GetContentType()
	if err != nil {
		return nil, err
	}

	return pv.Parameters(), nil
}

// GetCharset gets the charset parameter from the Content-Type field.
//
// This method returns an empty string with ErrNoSuchField if no field is
// present in the header. This method returns an empty string with
// ErrNoSuchFieldParameter if the field is present, but the parameter is not
// set on the field.
func (h *Header) GetCharset() (string, error) {
	return h.getParamValueParam(ContentType, param.Charset)
}

// SetCharset sets the charset parameter on the Content-Type field.
//
// This method fails with ErrNoSuchField if the field is not set on the
// header.
func (h *Header) SetCharset(c string) error {
	return h.setParamValueParam(ContentType, param.Charset, c)
}

// GetBoundary gets the boundary parameter from the Content-Type field.
//
// This method returns an empty string with ErrNoSuchField if no field is
// present in the header. This method returns an empty string with
// ErrNoSuchFieldParameter if the field is present, but the parameter is not
// set on the field.
func (h *Header) GetBoundary() (string, error) {
	return h.getParamValueParam(ContentType, param.Boundary)
}

// SetBoundary sets the boundary parameter on the Content-Type field.
//
// This method fails with ErrNoSuchField if the field is not set on the
// header.
func (h *Header) SetBoundary(b string) error {
	return h.setParamValueParam(ContentType, param.Boundary, b)
}

// GetContentDisposition returns the Content-Disposition field as a
// param.Value.
//
// It returns nil and ErrNoSuchField if the field is not set on the header.
// It will return nil and an error if there is a problem parsing the
// param.Value.
func (h *Header) GetContentDisposition() (*param.Value, error) {
	return h.GetParamValue(ContentDisposition)
}

// SetContentDisposition replaces the Content-Disposition field with the
// given param.Value.
func (h *Header) SetContentDisposition(v *param.Value) error {
	return h.SetParamValue(ContentDisposition, v)
}

// GetPresentation returns the primary value of the Content-Disposition
// field, such as "inline" or "attachment".
//
// It returns an empty string and ErrNoSuchField if the field is not set on
// the header.
func (h *Header) GetPresentation() (string, error) {
	return h.getParamValueValue(ContentDisposition)
}

// SetPresentation sets the primary value of the Content-Disposition field.
// If the field already exists, any parameters already set will be preserved.
func (h *Header) SetPresentation(d string) error {
	return h.setParamValueValue(ContentDisposition, d)
}

// GetFilename gets the filename named by the Content-Disposition field. The
// RFC 8187 "filename*" parameter is preferred when present and decodable,
// with the plain "filename" parameter as the fallback.
//
// This method returns an empty string with ErrNoSuchField if the field is
// not present in the header. This method returns an empty string with
// ErrNoSuchFieldParameter if the field is present, but carries neither
// parameter.
func (h *Header) GetFilename() (string, error) {
	pv, err := h.GetContentDisposition()
	if err != nil {
		return "", err
	}

	if ext := pv.Parameter(param.FilenameExt); ext != "" {
		if f, err := DecodeExtValue(ext); err == nil {
			return f, nil
		}
	}

	if f := pv.Filename(); f != "" {
		return f, nil
	}

	return "", ErrNoSuchFieldParameter
}

// SetFilename sets the filename parameter of the Content-Disposition field.
//
// This method fails with ErrNoSuchField if the field is not set on the
// header.
func (h *Header) SetFilename(f string) error {
	return h.setParamValueParam(ContentDisposition, param.Filename, f)
}

// GetContentLength returns the Content-Length field as an integer. Only the
// leading digit run of the value is read, so a value of "42 bytes" is 42.
//
// It returns zero with ErrNoSuchField if the field is absent and zero with
// ErrHeaderSyntax if the value does not begin with a digit.
func (h *Header) GetContentLength() (int64, error) {
	body, err := h.Get(ContentLength)
	if err != nil {
		return 0, err
	}

	end := 0
	for end < len(body) && body[end] >= '0' && body[end] <= '9' {
		end++
	}

	n, perr := strconv.ParseInt(body[:end], 10, 64)
	if end == 0 || perr != nil {
		return 0, fmt.Errorf("%w: wrong Content-Length format %q", ErrHeaderSyntax, body)
	}

	return n, nil
}

// SetContentLength replaces the Content-Length field with the given length
// rendered in decimal.
func (h *Header) SetContentLength(n int64) error {
	return h.Set(ContentLength, Scalar(strconv.FormatInt(n, 10)))
}

// hasToken reports whether any of the given field bodies contains the token,
// compared case-insensitively, bounded by start-of-value or a comma on one
// side and end-of-value or a comma on the other. Whitespace around the token
// is tolerated. A bare substring of a longer token does not count.
func hasToken(bodies []string, token string) bool {
	for _, body := range bodies {
		for _, part := range strings.Split(body, ",") {
			if strings.EqualFold(strings.TrimSpace(part), token) {
				return true
			}
		}
	}
	return false
}

// Chunked reports whether the Transfer-Encoding field names the "chunked"
// encoding. It is false when the field is absent.
func (h *Header) Chunked() bool {
	vs, err := h.GetAll(TransferEncoding)
	if err != nil {
		return false
	}
	return hasToken(vs, "chunked")
}

// hasConnectionToken scans the Connection and Proxy-Connection fields for
// the given token.
func (h *Header) hasConnectionToken(token string) bool {
	for _, name := range []string{Connection, ProxyConnection} {
		vs, err := h.GetAll(name)
		if err != nil {
			continue
		}
		if hasToken(vs, token) {
			return true
		}
	}
	return false
}

// ConnectionClose reports whether the Connection or Proxy-Connection field
// carries the "close" token.
func (h *Header) ConnectionClose() bool {
	return h.hasConnectionToken("close")
}

// ConnectionKeepAlive reports whether the Connection or Proxy-Connection
// field carries the "keep-alive" token.
func (h *Header) ConnectionKeepAlive() bool {
	return h.hasConnectionToken("keep-alive")
}

// setBasicAuth composes the RFC 7617 credential for the named field.
func (h *Header) setBasicAuth(name, account, password string) error {
	cred := base64.StdEncoding.EncodeToString([]byte(account + ":" + password))
	return h.Set(name, Scalar("Basic "+cred))
}

// SetBasicAuth sets the Authorization field to use HTTP basic authentication
// with the given account and password.
func (h *Header) SetBasicAuth(account, password string) error {
	return h.setBasicAuth(Authorization, account, password)
}

// SetProxyBasicAuth sets the Proxy-Authorization field to use HTTP basic
// authentication with the given account and password.
func (h *Header) SetProxyBasicAuth(account, password string) error {
	return h.setBasicAuth(ProxyAuthorization, account, password)
}

// GetFrom returns the From field as an addr.AddressList. HTTP uses From to
// carry the mailbox of the human driving the request, so the value parses
// the same way an email address field does. The parse here is strict: a
// malformed mailbox returns the parse error rather than a best guess.
//
// It will return nil and ErrNoSuchField if the field is not set on the
// header.
func (h *Header) GetFrom() (addr.AddressList, error) {
	v, found := h.getValue(From)
	if found {
		if al, isAddrList := v.(addr.AddressList); isAddrList {
			return al, nil
		}
	}

	body, err := h.Get(From)
	if err != nil {
		return nil, err
	}

	al, err := addr.ParseEmailAddressList(body)
	if err != nil {
		return nil, err
	}

	h.setValue(From, al)

	return al, nil
}

// SetFrom sets the From field with any mix of strings and addr.Address
// values.
//
// It will fail with an error returned if something other than those types is
// provided or if a given string fails to parse.
func (h *Header) SetFrom(a ...any) error {
	return h.setAddress(From, a)
}

// setAddress allows the setting of an address field either from strings or
// from addr.Address values or fails with an error.
func (h *Header) setAddress(n string, as []any) error {
	var al addr.AddressList
	for _, a := range as {
		switch v := a.(type) {
		case string:
			add, err := addr.ParseEmailAddress(v)
			if err != nil {
				return err
			}
			al = append(al, add)
		case addr.Address:
			al = append(al, v)
		default:
			return ErrWrongAddressType
		}
	}

	if err := h.Set(n, Scalar(al.String())); err != nil {
		return err
	}
	h.setValue(n, al)

	return nil
}
