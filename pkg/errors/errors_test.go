package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New(CodeChannelFailure, "channel broke", CategoryTransport, SeverityError)

	assert.Equal(t, CodeChannelFailure, err.Code())
	assert.Equal(t, "channel broke", err.Message())
	assert.Equal(t, CategoryTransport, err.Category())
	assert.Equal(t, SeverityError, err.Severity())
	require.NotNil(t, err.Context())
	assert.False(t, err.Context().Timestamp.IsZero())
}

func TestNewf(t *testing.T) {
	err := Newf(CodeInternalError, CategoryInternal, SeverityCritical, "worker %d crashed", 3)
	assert.Equal(t, "worker 3 crashed", err.Message())
	assert.Equal(t, CodeInternalError, err.Code())
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("underlying")
	err := Wrap(cause, CodeChannelFailure, "read failed", CategoryTransport, SeverityError)

	assert.Equal(t, cause, err.Unwrap())
	assert.True(t, errors.Is(err, cause))
}

func TestWithDetail(t *testing.T) {
	err := New(CodeInternalError, "boom", CategoryInternal, SeverityError)

	detailed := err.WithDetail("while flushing")
	assert.Equal(t, "while flushing", detailed.Detail())
	assert.Equal(t, "boom: while flushing", detailed.Error())
	// The original is unchanged
	assert.Equal(t, "", err.Detail())

	stacked := detailed.WithDetail("attempt 2")
	assert.Equal(t, "while flushing; attempt 2", stacked.Detail())
}

func TestWithData(t *testing.T) {
	err := New(CodeMalformedMessage, "bad line", CategoryProtocol, SeverityError)
	withData := err.WithData(map[string]string{"raw": "not json"})

	assert.Nil(t, err.Data())
	assert.Equal(t, map[string]string{"raw": "not json"}, withData.Data())
}

func TestToJSON(t *testing.T) {
	cause := errors.New("pipe closed")
	err := Wrap(cause, CodeChannelFailure, "write failed", CategoryTransport, SeverityError).
		WithDetail("after 3 messages")

	m := err.ToJSON()
	assert.Equal(t, CodeChannelFailure, m["code"])
	assert.Equal(t, "write failed", m["message"])
	assert.Equal(t, "transport", m["category"])
	assert.Equal(t, "error", m["severity"])
	assert.Equal(t, "after 3 messages", m["detail"])
	assert.Equal(t, "pipe closed", m["cause"])
}

func TestAsWireError(t *testing.T) {
	wireErr := New(CodeEndOfStream, "eof", CategoryTransport, SeverityWarning)

	got, ok := AsWireError(wireErr)
	require.True(t, ok)
	assert.Equal(t, CodeEndOfStream, got.Code())

	_, ok = AsWireError(errors.New("plain"))
	assert.False(t, ok)

	_, ok = AsWireError(nil)
	assert.False(t, ok)
}

func TestIsCategoryAndIsCode(t *testing.T) {
	err := New(CodeMalformedMessage, "bad", CategoryProtocol, SeverityError)

	assert.True(t, IsCategory(err, CategoryProtocol))
	assert.False(t, IsCategory(err, CategoryTransport))
	assert.True(t, IsCode(err, CodeMalformedMessage))
	assert.False(t, IsCode(err, CodeChannelFailure))
	assert.False(t, IsCategory(fmt.Errorf("plain"), CategoryProtocol))
}
