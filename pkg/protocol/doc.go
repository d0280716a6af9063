// Package protocol defines the JSON-RPC 2.0 message types exchanged between
// a client and an agent, and the codec that maps them to and from the wire.
//
// Three message kinds share a single untagged wire representation and are
// discriminated structurally by which fields are present:
//
//   - Request: a call expecting a response, identified by a numeric id
//   - Notification: a one-way call with no id and no expected response
//   - Response: the outcome of a prior request, carrying a result or an error
//
// Parse matches a wire payload against the Response, Request and Notification
// shapes in that fixed order, rejecting any payload that carries fields not
// defined on the candidate shape. Encode produces canonical JSON with absent
// optional fields omitted entirely rather than emitted as null.
package protocol
