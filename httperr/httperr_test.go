package httperr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zostay/go-httpmsg/httperr"
	"github.com/zostay/go-httpmsg/message"
)

func TestKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "protocol error", httperr.KindGeneric.String())
	assert.Equal(t, "retriable protocol error", httperr.KindRetriable.String())
	assert.Equal(t, "client protocol error", httperr.KindClient.String())
	assert.Equal(t, "fatal protocol error", httperr.KindFatal.String())
}

func TestNew(t *testing.T) {
	t.Parallel()

	res := message.NewResponse(503, "Service Unavailable")

	err := httperr.NewRetriable("server is overloaded", res)
	assert.Equal(t, httperr.KindRetriable, err.Kind())
	assert.Equal(t, "server is overloaded", err.Message())
	assert.Equal(t, res, err.Response())
	assert.Equal(t, "retriable protocol error: server is overloaded", err.Error())

	// a response is not required
	err = httperr.NewFatal("connection refused", nil)
	assert.Equal(t, httperr.KindFatal, err.Kind())
	assert.Nil(t, err.Response())

	// neither is a message
	err = httperr.NewGeneric("", nil)
	assert.Equal(t, "protocol error", err.Error())

	err = httperr.New(httperr.KindClient, "bad request", res)
	assert.Equal(t, httperr.KindClient, err.Kind())
	assert.Equal(t, "client protocol error: bad request", err.Error())
}

func TestError_Is(t *testing.T) {
	t.Parallel()

	generic := httperr.NewGeneric("mystery", nil)
	retriable := httperr.NewRetriable("try again", nil)
	client := httperr.NewClient("your fault", nil)
	fatal := httperr.NewFatal("give up", nil)

	// every kind matches the generic sentinel
	assert.ErrorIs(t, generic, httperr.ErrProtocol)
	assert.ErrorIs(t, retriable, httperr.ErrProtocol)
	assert.ErrorIs(t, client, httperr.ErrProtocol)
	assert.ErrorIs(t, fatal, httperr.ErrProtocol)

	// each kind matches its own sentinel and nobody else's
	assert.ErrorIs(t, retriable, httperr.ErrRetriable)
	assert.ErrorIs(t, client, httperr.ErrClient)
	assert.ErrorIs(t, fatal, httperr.ErrFatal)

	assert.False(t, errors.Is(generic, httperr.ErrRetriable))
	assert.False(t, errors.Is(generic, httperr.ErrClient))
	assert.False(t, errors.Is(generic, httperr.ErrFatal))
	assert.False(t, errors.Is(retriable, httperr.ErrClient))
	assert.False(t, errors.Is(retriable, httperr.ErrFatal))
	assert.False(t, errors.Is(client, httperr.ErrRetriable))
	assert.False(t, errors.Is(fatal, httperr.ErrRetriable))

	// classification survives wrapping
	wrapped := fmt.Errorf("fetching /index.html: %w", retriable)
	assert.ErrorIs(t, wrapped, httperr.ErrProtocol)
	assert.ErrorIs(t, wrapped, httperr.ErrRetriable)

	perr := &httperr.Error{}
	assert.ErrorAs(t, wrapped, &perr)
	assert.Equal(t, "try again", perr.Message())
}

func TestError_Retriable(t *testing.T) {
	t.Parallel()

	assert.True(t, httperr.NewRetriable("", nil).Retriable())
	assert.False(t, httperr.NewGeneric("", nil).Retriable())
	assert.False(t, httperr.NewClient("", nil).Retriable())
	assert.False(t, httperr.NewFatal("", nil).Retriable())

	assert.True(t, httperr.KindRetriable.Retriable())
	assert.False(t, httperr.KindFatal.Retriable())
}

func TestError_Fields(t *testing.T) {
	t.Parallel()

	res := message.NewResponse(429, "Too Many Requests")
	err := httperr.NewClient("slow down", res)

	// no arguments, both fields in message, response order
	fs := err.Fields()
	assert.Equal(t, []httperr.Field{
		{Name: httperr.FieldMessage, Value: "slow down"},
		{Name: httperr.FieldResponse, Value: res},
	}, fs)

	// requested fields come back in the requested order
	fs = err.Fields(httperr.FieldResponse, httperr.FieldMessage)
	assert.Equal(t, []httperr.Field{
		{Name: httperr.FieldResponse, Value: res},
		{Name: httperr.FieldMessage, Value: "slow down"},
	}, fs)

	fs = err.Fields(httperr.FieldMessage)
	assert.Equal(t, []httperr.Field{
		{Name: httperr.FieldMessage, Value: "slow down"},
	}, fs)

	// unknown names are dropped
	fs = err.Fields(httperr.FieldName("status"), httperr.FieldResponse)
	assert.Equal(t, []httperr.Field{
		{Name: httperr.FieldResponse, Value: res},
	}, fs)

	// a nil response is still a field
	err = httperr.NewGeneric("early failure", nil)
	fs = err.Fields(httperr.FieldResponse)
	assert.Equal(t, []httperr.Field{
		{Name: httperr.FieldResponse, Value: (*message.Response)(nil)},
	}, fs)
}
