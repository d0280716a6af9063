package protocol

import (
	"encoding/json"
	"fmt"
)

const (
	// JSONRPCVersion is the supported JSON-RPC version
	JSONRPCVersion = "2.0"
)

// ErrorCode represents standard JSON-RPC 2.0 error codes
type ErrorCode int32

// Standard error codes as per JSON-RPC 2.0 specification
const (
	ParseError     ErrorCode = -32700
	InvalidRequest ErrorCode = -32600
	MethodNotFound ErrorCode = -32601
	InvalidParams  ErrorCode = -32602
	InternalError  ErrorCode = -32603
)

// Request represents a JSON-RPC 2.0 request. A request always carries an id
// and expects a correlated Response; id uniqueness is the caller's concern.
//
// Field order matches the wire layout: id, method, params, jsonrpc.
type Request struct {
	ID      uint64          `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
	JSONRPC string          `json:"jsonrpc"`
}

// NewRequest creates a new JSON-RPC 2.0 request
func NewRequest(id uint64, method string, params interface{}) (*Request, error) {
	paramsJSON, err := marshalOptional(params)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal params: %w", err)
	}

	return &Request{
		ID:      id,
		Method:  method,
		Params:  paramsJSON,
		JSONRPC: JSONRPCVersion,
	}, nil
}

// Notification represents a JSON-RPC 2.0 notification. The absence of an id
// is the sole trait distinguishing it from a Request on the wire.
type Notification struct {
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
	JSONRPC string          `json:"jsonrpc"`
}

// NewNotification creates a new JSON-RPC 2.0 notification
func NewNotification(method string, params interface{}) (*Notification, error) {
	paramsJSON, err := marshalOptional(params)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal params: %w", err)
	}

	return &Notification{
		Method:  method,
		Params:  paramsJSON,
		JSONRPC: JSONRPCVersion,
	}, nil
}

// Response represents a JSON-RPC 2.0 response. Exactly one of Result and
// Error is expected to be set; this is not structurally enforced.
type Response struct {
	// ID is the request ID this response corresponds to
	ID uint64 `json:"id"`
	// Result holds the outcome of the request, if successful
	Result json.RawMessage `json:"result,omitempty"`
	// Error holds the failure, if the request failed
	Error *Error `json:"error,omitempty"`
	// JSONRPC is the JSON-RPC version
	JSONRPC string `json:"jsonrpc"`
}

// NewResponse creates a new JSON-RPC 2.0 success response
func NewResponse(id uint64, result interface{}) (*Response, error) {
	resultJSON, err := marshalOptional(result)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &Response{
		ID:      id,
		Result:  resultJSON,
		JSONRPC: JSONRPCVersion,
	}, nil
}

// NewErrorResponse creates a new JSON-RPC 2.0 error response
func NewErrorResponse(id uint64, code ErrorCode, message string, data interface{}) (*Response, error) {
	dataJSON, err := marshalOptional(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal error data: %w", err)
	}

	return &Response{
		ID: id,
		Error: &Error{
			Code:    code,
			Message: message,
			Data:    dataJSON,
		},
		JSONRPC: JSONRPCVersion,
	}, nil
}

// Error represents a JSON-RPC 2.0 error object embedded in a Response
type Error struct {
	// Code is the numeric error code
	Code ErrorCode `json:"code"`
	// Message is a short human-readable description
	Message string `json:"message"`
	// Data holds optional additional error data
	Data json.RawMessage `json:"data,omitempty"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("jsonrpc: code %d, message: %s", e.Code, e.Message)
}

// marshalOptional marshals a value to raw JSON, mapping nil to an absent
// field rather than the JSON literal null.
func marshalOptional(v interface{}) (json.RawMessage, error) {
	if v == nil {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return data, nil
}
