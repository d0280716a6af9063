package errors

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMalformedMessage(t *testing.T) {
	cause := errors.New("not valid JSON")
	err := MalformedMessage(`{"broken`, cause)

	assert.Equal(t, CodeMalformedMessage, err.Code())
	assert.Equal(t, CategoryProtocol, err.Category())
	assert.True(t, errors.Is(err, cause))

	data, ok := err.Data().(*MessageErrorData)
	require.True(t, ok)
	assert.Equal(t, `{"broken`, data.Raw)
	assert.Equal(t, "not valid JSON", data.Reason)

	assert.True(t, IsMalformedMessage(err))
	assert.False(t, IsChannelFailure(err))
}

func TestChannelFailure(t *testing.T) {
	cause := errors.New("broken pipe")
	err := ChannelFailure("stdio", "write", cause)

	assert.Equal(t, CodeChannelFailure, err.Code())
	assert.Equal(t, CategoryTransport, err.Category())
	assert.Contains(t, err.Error(), "stdio channel failure during write")
	assert.Contains(t, err.Error(), "broken pipe")

	data, ok := err.Data().(*ChannelErrorData)
	require.True(t, ok)
	assert.Equal(t, "stdio", data.Transport)
	assert.Equal(t, "write", data.Operation)
	assert.False(t, data.EOF)

	assert.True(t, IsChannelFailure(err))
	assert.False(t, IsEndOfStream(err))
}

func TestEndOfStream(t *testing.T) {
	err := EndOfStream("stdio", io.EOF)

	assert.Equal(t, CodeEndOfStream, err.Code())
	assert.Equal(t, SeverityWarning, err.Severity())
	assert.True(t, errors.Is(err, io.EOF), "end-of-stream must keep io.EOF reachable")

	data, ok := err.Data().(*ChannelErrorData)
	require.True(t, ok)
	assert.True(t, data.EOF)

	assert.True(t, IsEndOfStream(err))
	// End of stream is a kind of channel failure for callers that only care
	// about "the channel is gone"
	assert.True(t, IsChannelFailure(err))
}

func TestEncodingFailure(t *testing.T) {
	cause := errors.New("unsupported type")
	err := EncodingFailure(cause)

	assert.Equal(t, CodeEncodingFailure, err.Code())
	assert.Equal(t, CategoryInternal, err.Category())
	assert.True(t, errors.Is(err, cause))
	assert.True(t, IsEncodingFailure(err))
}

func TestPredicatesOnPlainErrors(t *testing.T) {
	plain := errors.New("whatever")

	assert.False(t, IsMalformedMessage(plain))
	assert.False(t, IsChannelFailure(plain))
	assert.False(t, IsEndOfStream(plain))
	assert.False(t, IsEncodingFailure(plain))
	assert.False(t, IsMalformedMessage(nil))
}
