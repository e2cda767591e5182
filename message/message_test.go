package message_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zostay/go-httpmsg/header"
	"github.com/zostay/go-httpmsg/message"
)

func TestRequest_ZeroValue(t *testing.T) {
	t.Parallel()

	var req message.Request

	assert.NotPanics(t, func() {
		_, _ = req.Get(header.ContentType)
	})
	assert.NotPanics(t, func() {
		_ = req.SetContentLength(42)
	})

	cl, err := req.GetContentLength()
	assert.NoError(t, err)
	assert.Equal(t, int64(42), cl)

	assert.Equal(t, "", req.Method)
	assert.Nil(t, req.Body())
}

func TestNewRequest(t *testing.T) {
	t.Parallel()

	req := message.NewRequest("GET", "/index.html")

	assert.Equal(t, "GET", req.Method)
	assert.Equal(t, "/index.html", req.Target)
	assert.Equal(t, 0, req.Len())

	// the embedded header and GetHeader are the same store
	err := req.GetHeader().Set(header.Host, header.Scalar("example.com"))
	assert.NoError(t, err)

	host, err := req.Get(header.Host)
	assert.NoError(t, err)
	assert.Equal(t, "example.com", host)
}

func TestNewResponse(t *testing.T) {
	t.Parallel()

	res := message.NewResponse(206, "Partial Content")

	assert.Equal(t, 206, res.StatusCode)
	assert.Equal(t, "Partial Content", res.Status)

	err := res.SetContentRange(header.ContentRangeSpec{
		First: 0,
		Last:  499,
		Total: 1000,
	})
	assert.NoError(t, err)

	cr, err := res.GetHeader().Get(header.ContentRange)
	assert.NoError(t, err)
	assert.Equal(t, "bytes 0-499/1000", cr)
}

func TestRequest_Body(t *testing.T) {
	t.Parallel()

	req := message.NewRequest("POST", "/submit")
	req.SetBody([]byte("hello"))

	assert.Equal(t, []byte("hello"), req.Body())

	req.SetBody(nil)
	assert.Nil(t, req.Body())
}

func TestRequest_HeaderAccess(t *testing.T) {
	t.Parallel()

	req := message.NewRequest("GET", "/big-file.iso")

	err := req.SetRange(0, 1023)
	assert.NoError(t, err)

	err = req.SetBasicAuth("Aladdin", "open sesame")
	assert.NoError(t, err)

	specs, err := req.GetRange()
	assert.NoError(t, err)
	assert.Equal(t, []header.RangeSpec{{First: 0, Last: 1023}}, specs)

	auth, err := req.Get(header.Authorization)
	assert.NoError(t, err)
	assert.Equal(t, "Basic QWxhZGRpbjpvcGVuIHNlc2FtZQ==", auth)
}
