package errors

// JSON-RPC 2.0 Standard Error Codes
const (
	// CodeParseError indicates invalid JSON was received
	CodeParseError int = -32700

	// CodeInvalidRequest indicates the JSON sent is not a valid Request object
	CodeInvalidRequest int = -32600

	// CodeMethodNotFound indicates the method does not exist / is not available
	CodeMethodNotFound int = -32601

	// CodeInvalidParams indicates invalid method parameter(s)
	CodeInvalidParams int = -32602

	// CodeInternalError indicates an internal JSON-RPC error
	CodeInternalError int = -32603
)

// Wire-layer specific error codes
const (
	// Transport errors (-32500 to -32599)
	CodeChannelFailure int = -32500 // Read or write on the byte stream failed
	CodeEndOfStream    int = -32501 // Input stream reached end with no data

	// Message errors (-32900 to -32999)
	CodeMalformedMessage int = -32900 // Text does not decode to any message shape
	CodeEncodingFailure  int = -32901 // Message value could not be serialized
)

// CodeInfo provides human-readable information about error codes
type CodeInfo struct {
	Code        int
	Name        string
	Description string
	Category    Category
	Severity    Severity
}

// codeRegistry maps error codes to their information
var codeRegistry = map[int]CodeInfo{
	CodeParseError:     {CodeParseError, "ParseError", "Invalid JSON was received", CategoryProtocol, SeverityError},
	CodeInvalidRequest: {CodeInvalidRequest, "InvalidRequest", "Invalid Request object", CategoryProtocol, SeverityError},
	CodeMethodNotFound: {CodeMethodNotFound, "MethodNotFound", "Method does not exist", CategoryProtocol, SeverityError},
	CodeInvalidParams:  {CodeInvalidParams, "InvalidParams", "Invalid method parameters", CategoryProtocol, SeverityError},
	CodeInternalError:  {CodeInternalError, "InternalError", "Internal JSON-RPC error", CategoryInternal, SeverityError},

	CodeChannelFailure: {CodeChannelFailure, "ChannelFailure", "Byte stream read or write failed", CategoryTransport, SeverityError},
	CodeEndOfStream:    {CodeEndOfStream, "EndOfStream", "Input stream is at end of input", CategoryTransport, SeverityWarning},

	CodeMalformedMessage: {CodeMalformedMessage, "MalformedMessage", "Message does not match any known shape", CategoryProtocol, SeverityError},
	CodeEncodingFailure:  {CodeEncodingFailure, "EncodingFailure", "Message could not be serialized", CategoryInternal, SeverityError},
}

// GetCodeInfo returns information about an error code
func GetCodeInfo(code int) (CodeInfo, bool) {
	info, exists := codeRegistry[code]
	return info, exists
}

// GetCodeName returns the name of an error code
func GetCodeName(code int) string {
	if info, exists := codeRegistry[code]; exists {
		return info.Name
	}
	return "UnknownError"
}

// IsStandardJSONRPCCode checks if a code is a standard JSON-RPC error code
func IsStandardJSONRPCCode(code int) bool {
	return code >= -32768 && code <= -32000
}
