package message

import (
	"github.com/zostay/go-httpmsg/header"
)

// HeaderBearer names the header store contract shared by Request and
// Response. Any type that owns a header.Header satisfies it by composition.
type HeaderBearer interface {
	Initialize(fields header.Pairs) error
	Get(name string) (string, error)
	GetAll(name string) ([]string, error)
	Set(name string, v header.Value) error
	Add(name string, v header.Value) error
	Delete(name string)
	Has(name string) bool
	Len() int
	Fields() []header.Field
	Names() []string
	CapitalizedNames() []string
	Values() []string
	Map() map[string][]string

	// GetHeader returns the header itself for direct use.
	GetHeader() *header.Header
}

var (
	_ HeaderBearer = &Request{}
	_ HeaderBearer = &Response{}
)

// Request is the semantic half of an outgoing HTTP request: the method and
// target that name the operation, the header, and the body or staged form
// that a transmission layer will render onto the wire. The zero value is a
// GET of nothing with an empty header, ready to use.
type Request struct {
	header.Header

	// Method is the request method, canonically uppercase.
	Method string

	// Target is the request target as it will appear in the request line.
	Target string

	body []byte

	form        Form
	formEnctype string
	formOpts    FormOptions
}

// NewRequest creates a request with the given method and target and an empty
// header.
func NewRequest(method, target string) *Request {
	return &Request{
		Method: method,
		Target: target,
	}
}

// GetHeader returns the header of the request.
func (r *Request) GetHeader() *header.Header {
	return &r.Header
}

// SetBody replaces the request body with the given bytes. Any form staged by
// SetForm is dropped, since a literal body and a staged form cannot both be
// sent.
func (r *Request) SetBody(b []byte) {
	r.body = b
	r.form = nil
	r.formEnctype = ""
	r.formOpts = FormOptions{}
}

// Body returns the literal request body. It is nil when no body has been set
// or a form is staged instead.
func (r *Request) Body() []byte {
	return r.body
}

// Response is the semantic half of a received HTTP response: the status line
// values and the header.
type Response struct {
	header.Header

	// StatusCode is the numeric response status.
	StatusCode int

	// Status is the reason phrase that accompanied the status code.
	Status string
}

// NewResponse creates a response with the given status code and reason
// phrase and an empty header.
func NewResponse(code int, status string) *Response {
	return &Response{
		StatusCode: code,
		Status:     status,
	}
}

// GetHeader returns the header of the response.
func (r *Response) GetHeader() *header.Header {
	return &r.Header
}
