package errors

import (
	"fmt"
)

// MessageErrorData contains structured data for message decode/encode errors
type MessageErrorData struct {
	Raw    string `json:"raw,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// ChannelErrorData contains structured data for byte-stream errors
type ChannelErrorData struct {
	Transport string `json:"transport"`
	Operation string `json:"operation,omitempty"`
	EOF       bool   `json:"eof,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

// MalformedMessage creates an error for text that is not valid JSON or does
// not match the Response, Request or Notification shapes. The raw line is
// attached as structured data so the caller can inspect what was rejected.
func MalformedMessage(raw string, cause error) WireError {
	message := "malformed message"
	if cause != nil {
		message = fmt.Sprintf("malformed message: %s", cause.Error())
	}

	data := &MessageErrorData{Raw: raw}
	if cause != nil {
		data.Reason = cause.Error()
	}

	return Wrap(
		cause,
		CodeMalformedMessage,
		message,
		CategoryProtocol,
		SeverityError,
	).WithData(data)
}

// ChannelFailure creates an error for a failed read or write on the
// underlying byte stream.
func ChannelFailure(transport, operation string, cause error) WireError {
	message := fmt.Sprintf("%s channel failure", transport)
	if operation != "" {
		message = fmt.Sprintf("%s channel failure during %s", transport, operation)
	}
	if cause != nil {
		message = fmt.Sprintf("%s: %s", message, cause.Error())
	}

	data := &ChannelErrorData{
		Transport: transport,
		Operation: operation,
	}
	if cause != nil {
		data.Reason = cause.Error()
	}

	return Wrap(
		cause,
		CodeChannelFailure,
		message,
		CategoryTransport,
		SeverityError,
	).WithData(data)
}

// EndOfStream creates an error for a read that hit end-of-input with no
// bytes available. It wraps the underlying io.EOF so errors.Is still works.
func EndOfStream(transport string, cause error) WireError {
	return Wrap(
		cause,
		CodeEndOfStream,
		fmt.Sprintf("%s input stream closed", transport),
		CategoryTransport,
		SeverityWarning,
	).WithData(&ChannelErrorData{
		Transport: transport,
		Operation: "read",
		EOF:       true,
	})
}

// EncodingFailure creates an error for a message value that could not be
// serialized. Unreachable for values built through the protocol package
// constructors, but part of the contract for robustness.
func EncodingFailure(cause error) WireError {
	message := "message encoding failed"
	if cause != nil {
		message = fmt.Sprintf("message encoding failed: %s", cause.Error())
	}

	return Wrap(
		cause,
		CodeEncodingFailure,
		message,
		CategoryInternal,
		SeverityError,
	)
}

// IsMalformedMessage checks if an error is a malformed message error
func IsMalformedMessage(err error) bool {
	return IsCode(err, CodeMalformedMessage)
}

// IsChannelFailure checks if an error is a channel failure, including
// end-of-stream.
func IsChannelFailure(err error) bool {
	return IsCode(err, CodeChannelFailure) || IsCode(err, CodeEndOfStream)
}

// IsEndOfStream checks if an error is an end-of-stream error
func IsEndOfStream(err error) bool {
	return IsCode(err, CodeEndOfStream)
}

// IsEncodingFailure checks if an error is an encoding failure
func IsEncodingFailure(err error) bool {
	return IsCode(err, CodeEncodingFailure)
}
