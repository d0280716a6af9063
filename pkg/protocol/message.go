package protocol

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	wireerrors "github.com/acpkit/acp-go/pkg/errors"
)

// Message is the union of the three JSON-RPC message kinds. It is a closed
// interface: only *Request, *Notification and *Response implement it.
type Message interface {
	message()
}

func (*Request) message()      {}
func (*Notification) message() {}
func (*Response) message()     {}

// MessageKind returns the wire-level kind of a message: "request",
// "notification" or "response". Useful as a low-cardinality label for
// diagnostics and metrics.
func MessageKind(msg Message) string {
	switch msg.(type) {
	case *Request:
		return "request"
	case *Notification:
		return "notification"
	case *Response:
		return "response"
	default:
		return "unknown"
	}
}

var (
	errInvalidJSON  = errors.New("not valid JSON")
	errNotObject    = errors.New("payload is not a JSON object")
	errUnknownShape = errors.New("does not match response, request or notification")
)

// messageParsers are the candidate shapes in discrimination order. A payload
// is accepted by the first candidate whose required-field and unknown-field
// constraints it satisfies.
var messageParsers = []func([]byte) (Message, bool){
	parseResponse,
	parseRequest,
	parseNotification,
}

// Parse decodes a single JSON-RPC message from its wire form. It fails with
// a MalformedMessage error when the payload is not valid JSON, is not an
// object (batch arrays are unsupported), or matches none of the three shapes.
func Parse(data []byte) (Message, error) {
	trimmed := bytes.TrimSpace(data)

	if !json.Valid(trimmed) {
		return nil, wireerrors.MalformedMessage(string(data), errInvalidJSON)
	}
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, wireerrors.MalformedMessage(string(data), errNotObject)
	}

	for _, parse := range messageParsers {
		if msg, ok := parse(trimmed); ok {
			return msg, nil
		}
	}

	return nil, wireerrors.MalformedMessage(string(data), errUnknownShape)
}

// Encode serializes a message to its canonical wire form. Optional fields
// that are absent are omitted from the output, and a missing version string
// is filled with "2.0" so the wire form is always complete.
func Encode(msg Message) ([]byte, error) {
	var (
		data []byte
		err  error
	)

	switch m := msg.(type) {
	case *Request:
		if m == nil {
			return nil, wireerrors.EncodingFailure(errors.New("nil request"))
		}
		r := *m
		if r.JSONRPC == "" {
			r.JSONRPC = JSONRPCVersion
		}
		data, err = json.Marshal(&r)
	case *Notification:
		if m == nil {
			return nil, wireerrors.EncodingFailure(errors.New("nil notification"))
		}
		n := *m
		if n.JSONRPC == "" {
			n.JSONRPC = JSONRPCVersion
		}
		data, err = json.Marshal(&n)
	case *Response:
		if m == nil {
			return nil, wireerrors.EncodingFailure(errors.New("nil response"))
		}
		r := *m
		if r.JSONRPC == "" {
			r.JSONRPC = JSONRPCVersion
		}
		data, err = json.Marshal(&r)
	default:
		return nil, wireerrors.EncodingFailure(fmt.Errorf("unsupported message type %T", msg))
	}

	if err != nil {
		return nil, wireerrors.EncodingFailure(err)
	}
	return data, nil
}

// Wire shapes with pointer fields so field presence survives decoding.
// Strict decoding rejects unknown fields on every candidate, including the
// nested error object.

type wireRequest struct {
	ID      *uint64          `json:"id"`
	Method  *string          `json:"method"`
	Params  *json.RawMessage `json:"params"`
	JSONRPC *string          `json:"jsonrpc"`
}

type wireNotification struct {
	Method  *string          `json:"method"`
	Params  *json.RawMessage `json:"params"`
	JSONRPC *string          `json:"jsonrpc"`
}

type wireResponse struct {
	ID      *uint64          `json:"id"`
	Result  *json.RawMessage `json:"result"`
	Error   *wireError       `json:"error"`
	JSONRPC *string          `json:"jsonrpc"`
}

type wireError struct {
	Code    *int32           `json:"code"`
	Message *string          `json:"message"`
	Data    *json.RawMessage `json:"data"`
}

// parseResponse matches the Response shape. All fields default, but at least
// one of id, result or error must be present so that an empty object falls
// through to the Notification candidate.
func parseResponse(data []byte) (Message, bool) {
	var w wireResponse
	if err := strictUnmarshal(data, &w); err != nil {
		return nil, false
	}
	if w.ID == nil && w.Result == nil && w.Error == nil {
		return nil, false
	}

	resp := &Response{JSONRPC: JSONRPCVersion}
	if w.ID != nil {
		resp.ID = *w.ID
	}
	if w.Result != nil {
		resp.Result = *w.Result
	}
	if w.Error != nil {
		e := &Error{}
		if w.Error.Code != nil {
			e.Code = ErrorCode(*w.Error.Code)
		}
		if w.Error.Message != nil {
			e.Message = *w.Error.Message
		}
		if w.Error.Data != nil {
			e.Data = *w.Error.Data
		}
		resp.Error = e
	}
	if w.JSONRPC != nil {
		resp.JSONRPC = *w.JSONRPC
	}
	return resp, true
}

// parseRequest matches the Request shape. id, method and jsonrpc are all
// required; only params may be absent.
func parseRequest(data []byte) (Message, bool) {
	var w wireRequest
	if err := strictUnmarshal(data, &w); err != nil {
		return nil, false
	}
	if w.ID == nil || w.Method == nil || w.JSONRPC == nil {
		return nil, false
	}

	req := &Request{
		ID:      *w.ID,
		Method:  *w.Method,
		JSONRPC: *w.JSONRPC,
	}
	if w.Params != nil {
		req.Params = *w.Params
	}
	return req, true
}

// parseNotification matches the Notification shape. Every field defaults, so
// this terminal candidate accepts any object built solely from method, params
// and jsonrpc.
func parseNotification(data []byte) (Message, bool) {
	var w wireNotification
	if err := strictUnmarshal(data, &w); err != nil {
		return nil, false
	}

	n := &Notification{JSONRPC: JSONRPCVersion}
	if w.Method != nil {
		n.Method = *w.Method
	}
	if w.Params != nil {
		n.Params = *w.Params
	}
	if w.JSONRPC != nil {
		n.JSONRPC = *w.JSONRPC
	}
	return n, true
}

// strictUnmarshal decodes data into v rejecting unknown fields and trailing
// content after the first value.
func strictUnmarshal(data []byte, v interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("unexpected trailing data")
	}
	return nil
}
