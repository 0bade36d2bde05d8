package response

// StatusCode is an HTTP status code.
type StatusCode int

const (
	StatusOK           StatusCode = 200
	StatusNoContent    StatusCode = 204
	StatusResetContent StatusCode = 205
	StatusNotModified  StatusCode = 304

	StatusBadRequest           StatusCode = 400
	StatusNotFound             StatusCode = 404
	StatusHeaderFieldsTooLarge StatusCode = 431

	StatusInternalServerError StatusCode = 500
	StatusNotImplemented      StatusCode = 501
)

type statusText struct {
	reason  string
	explain string
}

var statusTexts = map[StatusCode]statusText{
	StatusOK:           {"OK", "Request fulfilled, document follows"},
	StatusNoContent:    {"No Content", "Request fulfilled, nothing follows"},
	StatusResetContent: {"Reset Content", "Clear input form for further input"},
	StatusNotModified:  {"Not Modified", "Document has not changed since given time"},

	StatusBadRequest:           {"Bad Request", "Bad request syntax or unsupported method"},
	StatusNotFound:             {"Not Found", "Nothing matches the given URI"},
	StatusHeaderFieldsTooLarge: {"Request Header Fields Too Large", "The server is unwilling to process the request because its header fields are too large"},

	StatusInternalServerError: {"Internal Server Error", "Server got itself in trouble"},
	StatusNotImplemented:      {"Not Implemented", "Server does not support this operation"},
}

// GetStatusReason returns the reason phrase for the given status code.
func GetStatusReason(s StatusCode) string {
	return statusTexts[s].reason
}

// GetStatusExplanation returns a one line description of the status code,
// used on error pages.
func GetStatusExplanation(s StatusCode) string {
	return statusTexts[s].explain
}

// bodyAllowed reports whether a response with this status may carry a body.
func bodyAllowed(s StatusCode) bool {
	return s >= 200 && s != StatusNoContent && s != StatusResetContent && s != StatusNotModified
}
